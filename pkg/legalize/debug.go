package legalize

import (
	"fmt"

	"github.com/UTDA-group/IdeaPlaceEx/pkg/db"
	"github.com/UTDA-group/IdeaPlaceEx/pkg/debugviz"
)

// Axis selects which separation-constraint graph DebugConstraintGraph
// exports.
type Axis int

const (
	AxisHorizontal Axis = iota
	AxisVertical
)

// DebugConstraintGraph rebuilds the sweep-generated, transitively-reduced
// ordering DAG for one axis and renders it as a debugviz.Graph, without
// running the LP solve. Intended for inspecting legalizer input, not for
// production placement.
func DebugConstraintGraph(d *db.DB, axis Axis) (*debugviz.Graph, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	a := axisH
	name := "legalize-h"
	if axis == AxisVertical {
		a = axisV
		name = "legalize-v"
	}

	graph := sweep(d.Cells, a)
	graph.transitiveReduce()

	g := debugviz.New(name)
	for i, c := range d.Cells {
		kind := debugviz.KindCell
		label := c.Name
		if c.Fixed {
			label += " (fixed)"
		}
		if err := g.AddNode(debugviz.Node{ID: nodeID(i), Kind: kind, Label: label}); err != nil {
			return nil, err
		}
	}
	for _, e := range graph.edges {
		if err := g.AddEdge(debugviz.Edge{From: nodeID(e.from), To: nodeID(e.to), Weight: e.weight}); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func nodeID(i int) string { return fmt.Sprintf("cell%d", i) }
