// Package gridalign implements the grid aligner (component C8): the final
// pipeline pass that snaps a legal, pin-assigned placement onto a user grid
// step, preserving every symmetry group's mirror relationship by
// translating it as a rigid body before any individual cell is snapped.
package gridalign

import (
	"math"

	"github.com/UTDA-group/IdeaPlaceEx/pkg/config"
	"github.com/UTDA-group/IdeaPlaceEx/pkg/db"
)

// Run snaps every movable cell's lower-left onto a multiple of cfg.GridStep,
// per Section 4.7. A GridStep of zero (the default) means "no alignment
// pass" and Run is a no-op, matching config.Config's documented zero value.
// Each symmetry group is translated as a rigid body first, so its axis
// lands on a half-grid point (s mod g = g/2) before any member cell is
// individually snapped; ungrouped cells are snapped directly. Fixed cells
// are never moved.
func Run(d *db.DB, cfg config.Config) error {
	cfg = cfg.WithDefaults()
	g := cfg.GridStep
	if g <= 0 {
		return nil
	}

	inGroup := make([]bool, len(d.Cells))
	for gi := range d.SymGroups {
		alignGroup(d, gi, g)
		for _, pair := range d.SymGroups[gi].Pairs {
			inGroup[pair[0]] = true
			inGroup[pair[1]] = true
		}
		for _, ci := range d.SymGroups[gi].SelfSyms {
			inGroup[ci] = true
		}
	}

	for i, c := range d.Cells {
		if c.Fixed || inGroup[i] {
			continue
		}
		d.Cells[i].X = snap(c.X, g)
		d.Cells[i].Y = snap(c.Y, g)
	}
	return nil
}

// alignGroup rigid-translates every cell of symmetry group gi in x so the
// group's axis lands on the nearest half-grid point, then snaps each
// member's lower-left to the grid.
func alignGroup(d *db.DB, gi int, g float64) {
	sg := d.SymGroups[gi]
	target := snapHalf(sg.Axis, g)
	shift := target - sg.Axis

	members := groupMembers(sg)
	for _, ci := range members {
		if d.Cells[ci].Fixed {
			continue
		}
		d.Cells[ci].X += shift
	}
	for _, ci := range members {
		if d.Cells[ci].Fixed {
			continue
		}
		d.Cells[ci].X = snap(d.Cells[ci].X, g)
		d.Cells[ci].Y = snap(d.Cells[ci].Y, g)
	}
	d.SymGroups[gi].Axis = target
}

func groupMembers(sg db.SymmetryGroup) []int {
	out := make([]int, 0, 2*len(sg.Pairs)+len(sg.SelfSyms))
	for _, pair := range sg.Pairs {
		out = append(out, pair[0], pair[1])
	}
	out = append(out, sg.SelfSyms...)
	return out
}

func snap(v, g float64) float64 {
	return math.Round(v/g) * g
}

// snapHalf rounds v to the nearest value congruent to g/2 modulo g - the
// half-grid points a symmetry axis must land on.
func snapHalf(v, g float64) float64 {
	return math.Round((v-g/2)/g)*g + g/2
}
