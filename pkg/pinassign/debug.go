package pinassign

import (
	"fmt"

	"github.com/UTDA-group/IdeaPlaceEx/pkg/config"
	"github.com/UTDA-group/IdeaPlaceEx/pkg/db"
	"github.com/UTDA-group/IdeaPlaceEx/pkg/debugviz"
)

// DebugBipartiteGraph renders the free-net-to-ring-site candidate graph
// (the HPWL-increase-weighted bipartite graph that fastAssign/exactAssign
// match over) as a debugviz.Graph, without running the matching itself.
func DebugBipartiteGraph(d *db.DB, cfg config.Config) (*debugviz.Graph, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.WithDefaults()

	ringCfg := RingConfig{
		Extension:        cfg.BoundaryExtension,
		GridStep:         cfg.GridStep,
		Interval:         cfg.VirtualPinInterval,
		IncludeTopBottom: cfg.RingIncludeTopBottom,
	}
	sites, _ := GenerateRing(d.Cells, ringCfg)
	free, _ := classifyNets(d)

	g := debugviz.New("pinassign-candidates")
	for _, fn := range free {
		id := netNodeID(fn.net)
		if err := g.AddNode(debugviz.Node{ID: id, Kind: debugviz.KindNet, Label: fmt.Sprintf("net%d", fn.net)}); err != nil {
			return nil, err
		}
	}
	siteAdded := make(map[int]bool)
	for _, fn := range free {
		box := boxOf(d, fn.net)
		for _, s := range candidateSites(d, sites, fn.net, cfg.GridStep) {
			sID := siteNodeID(s)
			if !siteAdded[s] {
				site := sites[s]
				if err := g.AddNode(debugviz.Node{ID: sID, Kind: debugviz.KindSite, Label: fmt.Sprintf("site%d(%.0f,%.0f)", s, site.X, site.Y)}); err != nil {
					return nil, err
				}
				siteAdded[s] = true
			}
			cost := hpwlIncrease(box, sites[s])
			if err := g.AddEdge(debugviz.Edge{From: netNodeID(fn.net), To: sID, Weight: cost}); err != nil {
				return nil, err
			}
		}
	}
	return g, nil
}

func netNodeID(i int) string  { return fmt.Sprintf("net%d", i) }
func siteNodeID(i int) string { return fmt.Sprintf("site%d", i) }
