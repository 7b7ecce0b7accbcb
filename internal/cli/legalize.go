package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/UTDA-group/IdeaPlaceEx/pkg/config"
	"github.com/UTDA-group/IdeaPlaceEx/pkg/legalize"
)

// legalizeCommand creates the "legalize" command: run legalization in
// isolation against an already-placed fixture, for debugging C5 without
// the rest of the pipeline.
func (c *CLI) legalizeCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "legalize <fixture.json>",
		Short: "Run legalization alone over a cell/net fixture",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, _, err := loadFixture(args[0])
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

			if err := legalize.Run(d, cfg); err != nil {
				printError("legalization failed: %v", err)
				return err
			}
			printSuccess("legalization finished")
			printDetail("HPWL: %.2f", d.TotalHPWL())
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "TOML config overlay (defaults to the built-in constant table)")
	return cmd
}
