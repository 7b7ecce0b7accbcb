package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/UTDA-group/IdeaPlaceEx/pkg/config"
	"github.com/UTDA-group/IdeaPlaceEx/pkg/pinassign"
)

// pinassignCommand creates the "pinassign" command: run virtual pin
// assignment in isolation against a legalized fixture, for debugging C6
// without the rest of the pipeline.
func (c *CLI) pinassignCommand() *cobra.Command {
	var configPath string
	var exact bool

	cmd := &cobra.Command{
		Use:   "pinassign <fixture.json>",
		Short: "Run virtual pin assignment alone over a cell/net fixture",
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
			cfg.UseExactPinAssign = exact || cfg.UseExactPinAssign

			if err := pinassign.Run(d, cfg); err != nil {
				printError("pin assignment failed: %v", err)
				return err
			}
			printSuccess("pin assignment finished")
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "TOML config overlay (defaults to the built-in constant table)")
	cmd.Flags().BoolVar(&exact, "exact", false, "force the exact ILP backend instead of the min-cost matching fast path")
	return cmd
}
