package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/UTDA-group/IdeaPlaceEx/pkg/config"
	"github.com/UTDA-group/IdeaPlaceEx/pkg/debugviz"
	"github.com/UTDA-group/IdeaPlaceEx/pkg/legalize"
	"github.com/UTDA-group/IdeaPlaceEx/pkg/pinassign"
)

// debugCommand creates the "debug" command group: Graphviz export of the
// internal graphs a legalizer or pin-assigner failure is usually diagnosed
// from.
func (c *CLI) debugCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "debug",
		Short: "Export internal solver graphs for diagnosis",
	}
	cmd.AddCommand(c.debugLegalizeCommand())
	cmd.AddCommand(c.debugPinassignCommand())
	return cmd
}

func (c *CLI) debugLegalizeCommand() *cobra.Command {
	var vertical bool
	var svg bool
	var detailed bool

	cmd := &cobra.Command{
		Use:   "legalize <fixture.json>",
		Short: "Export the legalizer's H/V constraint graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, _, err := loadFixture(args[0])
			if err != nil {
				return err
			}

			axis := legalize.AxisHorizontal
			if vertical {
				axis = legalize.AxisVertical
			}
			g, err := legalize.DebugConstraintGraph(d, axis)
			if err != nil {
				return fmt.Errorf("build constraint graph: %w", err)
			}
			return emitGraph(g, svg, detailed)
		},
	}

	cmd.Flags().BoolVar(&vertical, "vertical", false, "export the vertical constraint graph instead of horizontal")
	cmd.Flags().BoolVar(&svg, "svg", false, "render SVG instead of printing DOT")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include edge weights and cell labels")
	return cmd
}

func (c *CLI) debugPinassignCommand() *cobra.Command {
	var svg bool
	var detailed bool

	cmd := &cobra.Command{
		Use:   "pinassign <fixture.json>",
		Short: "Export the pin assigner's net/site bipartite graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, _, err := loadFixture(args[0])
			if err != nil {
				return err
			}

			g, err := pinassign.DebugBipartiteGraph(d, config.Default())
			if err != nil {
				return fmt.Errorf("build bipartite graph: %w", err)
			}
			return emitGraph(g, svg, detailed)
		},
	}

	cmd.Flags().BoolVar(&svg, "svg", false, "render SVG instead of printing DOT")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include edge weights and cell labels")
	return cmd
}

func emitGraph(g *debugviz.Graph, svg, detailed bool) error {
	dot := debugviz.ToDOT(g, debugviz.Options{Detailed: detailed})
	if !svg {
		fmt.Println(dot)
		return nil
	}
	data, err := debugviz.RenderSVG(context.Background(), dot)
	if err != nil {
		return fmt.Errorf("render svg: %w", err)
	}
	_, err = os.Stdout.Write(data)
	return err
}
