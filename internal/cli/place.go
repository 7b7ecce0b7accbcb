package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/UTDA-group/IdeaPlaceEx/pkg/cache"
	"github.com/UTDA-group/IdeaPlaceEx/pkg/config"
	"github.com/UTDA-group/IdeaPlaceEx/pkg/placer"
	"github.com/UTDA-group/IdeaPlaceEx/pkg/store"
)

// placeCommand creates the "place" command: the full end-to-end pipeline.
func (c *CLI) placeCommand() *cobra.Command {
	var configPath string
	var noCache bool
	var toughMode bool
	var mongoURI string

	cmd := &cobra.Command{
		Use:   "place <fixture.json>",
		Short: "Run the full placement pipeline over a cell/net fixture",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, raw, err := loadFixture(args[0])
			if err != nil {
				return err
			}

			cfg := config.Default()
			if configPath != "" {
				cfg, err = config.Load(configPath)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
			}
			cfg.ToughMode = toughMode

			ch, err := newCache(noCache)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			defer ch.Close()

			keyer := cache.NewDefaultKeyer()
			hash := cache.Hash(raw)
			key := keyer.RunKey(hash, cache.RunKeyOpts{UseExactPinAssign: cfg.UseExactPinAssign, Tough: cfg.ToughMode})

			ctx := context.Background()
			if cached, hit, err := ch.Get(ctx, key); err == nil && hit {
				var result placer.Result
				if err := json.Unmarshal(cached, &result); err == nil {
					printInfo("Using cached result for run %s", result.RunID)
					printDetail("HPWL: %.2f", result.HPWL)
					return nil
				}
			}

			var st store.Store
			if mongoURI != "" {
				s, err := store.NewMongoStore(ctx, store.MongoConfig{URI: mongoURI})
				if err != nil {
					return fmt.Errorf("open run store: %w", err)
				}
				defer s.Close(ctx)
				st = s
			}

			sp := newSpinner("placing cells")
			sp.Start()
			result, err := placer.Run(d, placer.Options{Config: cfg, Logger: c.Logger, Store: st, DBHash: hash})
			sp.Stop()
			if err != nil {
				printError("placement failed: %v", err)
				return err
			}

			if data, err := json.Marshal(result); err == nil {
				_ = ch.Set(ctx, key, data, 0)
			}

			printSuccess("Run %s finished (HPWL %.2f)", result.RunID, result.HPWL)
			if result.ToughModeUsed {
				printDetail("tough-mode retry was used")
			}
			printDetail("outer iterations: %d (converged: %v)", result.OuterIterations, result.OuterConverged)
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "TOML config overlay (defaults to the built-in constant table)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "skip the placement-result cache")
	cmd.Flags().BoolVar(&toughMode, "tough", false, "force tough-mode penalties for this run")
	cmd.Flags().StringVar(&mongoURI, "mongo-uri", "", "Mongo connection URI to record this run for later inspection via the serve command")

	return cmd
}
