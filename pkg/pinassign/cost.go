package pinassign

import (
	"math"

	"github.com/UTDA-group/IdeaPlaceEx/pkg/db"
)

// netBox is a net's current pin bounding box, used as the basis for the
// HPWL-increase cost function.
type netBox struct {
	xlo, ylo, xhi, yhi float64
}

func boxOf(d *db.DB, netIdx int) netBox {
	xlo, ylo, xhi, yhi := d.NetBBox(netIdx)
	return netBox{xlo: xlo, ylo: ylo, xhi: xhi, yhi: yhi}
}

// hpwlIncrease is the cost function of Section 4.5's final paragraph: the
// HPWL increase incurred by anchoring a net's box at site s.
func hpwlIncrease(box netBox, s Site) float64 {
	dx := math.Max(0, s.X-box.xhi) + math.Max(0, box.xlo-s.X)
	dy := math.Max(0, s.Y-box.yhi) + math.Max(0, box.ylo-s.Y)
	return dx + dy
}
