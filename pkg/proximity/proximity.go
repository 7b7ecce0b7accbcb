// Package proximity implements the synthetic-net proximity manager
// (component C7): before global placement, every proximity group gets a
// temporary high-weight net pulling its member cells together; after
// legalization and pin assignment, those nets are removed again so they
// never reach grid alignment. They are not IO nets, so pin assignment
// never assigns them a site.
package proximity

import (
	"sort"

	"github.com/UTDA-group/IdeaPlaceEx/pkg/config"
	"github.com/UTDA-group/IdeaPlaceEx/pkg/db"
)

// Injected records the net and pin indices Inject added, so a matching call
// to Remove can strip exactly those entries back out.
type Injected struct {
	NetIdx []int
	PinIdx []int
}

// Inject adds one synthetic net per proximity group (Section 4.6),
// connecting a synthetic center-offset pin at every member cell. Groups of
// fewer than two cells have nothing to pull together and are skipped. The
// new nets and pins are always appended at the tail of d.Nets/d.Pins, which
// Remove relies on.
func Inject(d *db.DB, cfg config.Config) Injected {
	cfg = cfg.WithDefaults()
	var inj Injected
	for _, g := range d.ProxGroups {
		if len(g.Cells) < 2 {
			continue
		}
		pins := make([]int, 0, len(g.Cells))
		for _, ci := range g.Cells {
			c := d.Cells[ci]
			pinIdx := len(d.Pins)
			d.Pins = append(d.Pins, db.Pin{Cell: ci, OffX: c.W / 2, OffY: c.H / 2})
			pins = append(pins, pinIdx)
			inj.PinIdx = append(inj.PinIdx, pinIdx)
		}
		netIdx := len(d.Nets)
		d.Nets = append(d.Nets, db.Net{Pins: pins, Weight: cfg.ProximityWeight, SymPartner: -1})
		inj.NetIdx = append(inj.NetIdx, netIdx)
	}
	return inj
}

// Remove strips the nets and pins a matching Inject call added. The placer
// calls it exactly once per Inject, after legalization and pin assignment
// and before the grid aligner runs.
func Remove(d *db.DB, inj Injected) {
	nets := append([]int(nil), inj.NetIdx...)
	sort.Sort(sort.Reverse(sort.IntSlice(nets)))
	for _, i := range nets {
		d.Nets = append(d.Nets[:i], d.Nets[i+1:]...)
	}

	pins := append([]int(nil), inj.PinIdx...)
	sort.Sort(sort.Reverse(sort.IntSlice(pins)))
	for _, i := range pins {
		d.Pins = append(d.Pins[:i], d.Pins[i+1:]...)
	}
}
