package legalize

import (
	"sort"

	"github.com/UTDA-group/IdeaPlaceEx/pkg/db"
)

// axis selects which coordinate the legalizer is currently solving.
type axis int

const (
	axisH axis = iota
	axisV
)

func (a axis) lowEdge(c db.Cell) float64 {
	if a == axisH {
		return c.X
	}
	return c.Y
}

func (a axis) size(c db.Cell) float64 {
	if a == axisH {
		return c.W
	}
	return c.H
}

func (a axis) center(c db.Cell) float64 {
	if a == axisH {
		return c.CenterX()
	}
	return c.CenterY()
}

func (a axis) perpLowEdge(c db.Cell) float64 {
	if a == axisH {
		return c.Y
	}
	return c.X
}

func (a axis) perpSize(c db.Cell) float64 {
	if a == axisH {
		return c.H
	}
	return c.W
}

// sweep generates one separation edge per perpendicular-axis overlap,
// oriented by the existing global-placement center, per Section 4.4 step 1.
// Cells are visited in low-edge order and each is checked against every
// later cell for a perpendicular-axis interval overlap (cells are not
// sorted on the perpendicular axis), so the scan is all-pairs.
func sweep(cells []db.Cell, a axis) *constraintGraph {
	order := make([]int, len(cells))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		return a.lowEdge(cells[order[i]]) < a.lowEdge(cells[order[j]])
	})

	g := newConstraintGraph(len(cells))
	for oi := 0; oi < len(order); oi++ {
		i := order[oi]
		for oj := oi + 1; oj < len(order); oj++ {
			j := order[oj]
			if !overlapsPerp(cells[i], cells[j], a) {
				continue
			}
			if a.center(cells[i]) <= a.center(cells[j]) {
				g.addEdge(i, j, a.size(cells[i]))
			} else {
				g.addEdge(j, i, a.size(cells[j]))
			}
		}
	}
	return g
}

func overlapsPerp(ci, cj db.Cell, a axis) bool {
	loI, hiI := a.perpLowEdge(ci), a.perpLowEdge(ci)+a.perpSize(ci)
	loJ, hiJ := a.perpLowEdge(cj), a.perpLowEdge(cj)+a.perpSize(cj)
	return loI < hiJ && loJ < hiI
}
