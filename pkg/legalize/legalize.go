// Package legalize implements the constraint-graph legalizer (component
// C5): given a (possibly overlapping, possibly out-of-boundary) placement
// from global placement, it produces a legal one by solving two sequential
// per-axis linear programs over a sweep-generated, transitively-reduced
// ordering DAG.
package legalize

import (
	"github.com/UTDA-group/IdeaPlaceEx/pkg/config"
	"github.com/UTDA-group/IdeaPlaceEx/pkg/db"
	"github.com/UTDA-group/IdeaPlaceEx/pkg/errors"
)

// Run legalizes d in place, solving the horizontal axis first and then the
// vertical axis. A failure on either axis is an infeasibility: the caller
// (pkg/placer) may retry global placement in tough mode and call Run again.
func Run(d *db.DB, cfg config.Config) error {
	if err := d.Validate(); err != nil {
		return err
	}
	cfg = cfg.WithDefaults()
	if len(d.Cells) == 0 {
		return nil
	}
	if err := solveAxis(d, cfg, axisH); err != nil {
		return err
	}
	if err := solveAxis(d, cfg, axisV); err != nil {
		return err
	}
	return nil
}

// axisContext records the LP variable assigned to each movable cell (-1 for
// fixed cells, whose coordinate is folded into constraint constants instead)
// and, for the horizontal axis, one axis variable per symmetry group.
type axisContext struct {
	varOf  []int
	dVar   int
	sVarOf []int // len(d.SymGroups); unused (nil) on the vertical axis
}

func solveAxis(d *db.DB, cfg config.Config, a axis) error {
	graph := sweep(d.Cells, a)
	graph.transitiveReduce()

	m := NewModel()
	m.SetNumThreads(cfg.NumLPThreads)
	ctx := axisContext{varOf: make([]int, len(d.Cells))}
	for i, c := range d.Cells {
		if c.Fixed {
			ctx.varOf[i] = -1
		} else {
			ctx.varOf[i] = m.AddVar()
		}
	}
	ctx.dVar = m.AddVar()

	for _, e := range graph.edges {
		addOrderingConstraint(m, d.Cells, ctx, e, a)
	}
	for i, c := range d.Cells {
		addSpanConstraint(m, ctx, i, c, a)
	}
	if a == axisH {
		ctx.sVarOf = make([]int, len(d.SymGroups))
		for g := range d.SymGroups {
			ctx.sVarOf[g] = m.AddVar()
		}
		addSymmetryConstraints(m, d, ctx, a)
	} else {
		addSymmetryConstraints(m, d, ctx, a)
	}

	m.SetObjective(map[int]float64{ctx.dVar: 1})
	sol1, err := m.Solve()
	if err != nil {
		return errors.Wrap(errors.ErrCodeInfeasible, err, "legalization span LP infeasible on axis %d", a)
	}
	dStar := sol1.X[ctx.dVar]

	m.AddConstraint(map[int]float64{ctx.dVar: 1}, LE, dStar*(1+cfg.WhiteSpaceRatio))
	objective := addWirelengthObjective(m, d, ctx, a)
	m.SetObjective(objective)
	sol2, err := m.Solve()
	if err != nil {
		return errors.Wrap(errors.ErrCodeInfeasible, err, "legalization wirelength LP infeasible on axis %d", a)
	}

	writeBack(d, ctx, sol2, a)
	return nil
}

// pos returns the LP variable index (-1 for a fixed cell) and constant term
// for a cell's position on axis a, so callers can fold fixed cells into
// constraint constants uniformly with movable ones.
func pos(cells []db.Cell, ctx axisContext, i int, a axis) (varIdx int, constant float64) {
	if ctx.varOf[i] < 0 {
		return -1, a.lowEdge(cells[i])
	}
	return ctx.varOf[i], 0
}

// addOrderingConstraint adds pos(to) - pos(from) >= weight, folding any
// fixed endpoint into the constant term.
func addOrderingConstraint(m *Model, cells []db.Cell, ctx axisContext, e edge, a axis) {
	fromVar, fromConst := pos(cells, ctx, e.from, a)
	toVar, toConst := pos(cells, ctx, e.to, a)
	coeffs := map[int]float64{}
	if toVar >= 0 {
		coeffs[toVar] += 1
	}
	if fromVar >= 0 {
		coeffs[fromVar] += -1
	}
	if len(coeffs) == 0 {
		return // both endpoints fixed; nothing to solve for.
	}
	rhs := e.weight - toConst + fromConst
	m.AddConstraint(coeffs, GE, rhs)
}

// addSpanConstraint adds D >= pos(i) + size(i), the super-sink constraint
// pinning the placement dimension to the rightmost (or topmost) cell edge.
func addSpanConstraint(m *Model, ctx axisContext, i int, c db.Cell, a axis) {
	coeffs := map[int]float64{ctx.dVar: 1}
	var rhs float64
	if ctx.varOf[i] >= 0 {
		coeffs[ctx.varOf[i]] = -1
		rhs = a.size(c)
	} else {
		rhs = a.size(c) + a.lowEdge(c)
	}
	m.AddConstraint(coeffs, GE, rhs)
}

// addSymmetryConstraints adds, per Section 4.4 step 5: on the horizontal
// axis, x_A + w_A/2 + x_B + w_B/2 = 2s for every pair and x_self + w/2 = s
// for every self-symmetric cell; on the vertical axis, y_A = y_B for every
// pair.
func addSymmetryConstraints(m *Model, d *db.DB, ctx axisContext, a axis) {
	for g, sg := range d.SymGroups {
		for _, pair := range sg.Pairs {
			cA, cB := d.Cells[pair[0]], d.Cells[pair[1]]
			if a == axisH {
				coeffs := map[int]float64{}
				rhs := 0.0
				if ctx.varOf[pair[0]] >= 0 {
					coeffs[ctx.varOf[pair[0]]] += 1
				} else {
					rhs -= cA.X
				}
				if ctx.varOf[pair[1]] >= 0 {
					coeffs[ctx.varOf[pair[1]]] += 1
				} else {
					rhs -= cB.X
				}
				coeffs[ctx.sVarOf[g]] += -2
				rhs -= cA.W/2 + cB.W/2
				m.AddConstraint(coeffs, EQ, rhs)
			} else {
				coeffs := map[int]float64{}
				rhs := 0.0
				if ctx.varOf[pair[0]] >= 0 {
					coeffs[ctx.varOf[pair[0]]] += 1
				} else {
					rhs -= cA.Y
				}
				if ctx.varOf[pair[1]] >= 0 {
					coeffs[ctx.varOf[pair[1]]] += -1
				} else {
					rhs += cB.Y
				}
				m.AddConstraint(coeffs, EQ, rhs)
			}
		}
		if a == axisH {
			for _, cellIdx := range sg.SelfSyms {
				c := d.Cells[cellIdx]
				coeffs := map[int]float64{}
				rhs := 0.0
				if ctx.varOf[cellIdx] >= 0 {
					coeffs[ctx.varOf[cellIdx]] += 1
				} else {
					rhs -= c.X
				}
				coeffs[ctx.sVarOf[g]] += -1
				rhs -= c.W / 2
				m.AddConstraint(coeffs, EQ, rhs)
			}
		}
	}
}

// addWirelengthObjective adds, for every net with at least one pin whose
// owning cell moves on this axis, a pair of auxiliary bound variables
// (hi >= every pin position, lo <= every pin position) and returns the
// objective minimizing sum(weight*(hi-lo)) - an LP relaxation of each net's
// bounding-box span on this axis, the standard linear model for wirelength
// in a legalization LP.
func addWirelengthObjective(m *Model, d *db.DB, ctx axisContext, a axis) map[int]float64 {
	objective := map[int]float64{}
	for _, n := range d.Nets {
		if len(n.Pins) == 0 {
			continue
		}
		weight := n.Weight
		if weight == 0 {
			weight = 1
		}
		hiVar := m.AddVar()
		loVar := m.AddVar()
		for _, pinIdx := range n.Pins {
			pin := d.Pins[pinIdx]
			offset := pin.OffX
			if a == axisV {
				offset = pin.OffY
			}
			constant := 0.0
			if ctx.varOf[pin.Cell] < 0 {
				constant = a.lowEdge(d.Cells[pin.Cell])
			}
			// hi >= pos(cell) + offset
			hiCoeffs := map[int]float64{hiVar: 1}
			hiRhs := offset
			if ctx.varOf[pin.Cell] >= 0 {
				hiCoeffs[ctx.varOf[pin.Cell]] = -1
			} else {
				hiRhs += constant
			}
			m.AddConstraint(hiCoeffs, GE, hiRhs)

			// lo <= pos(cell) + offset  <=>  pos(cell) - lo >= -offset
			loCoeffs := map[int]float64{loVar: -1}
			loRhs := -offset
			if ctx.varOf[pin.Cell] >= 0 {
				loCoeffs[ctx.varOf[pin.Cell]] = 1
			} else {
				loRhs -= constant
			}
			m.AddConstraint(loCoeffs, GE, loRhs)
		}
		objective[hiVar] += weight
		objective[loVar] += -weight
	}
	return objective
}

func writeBack(d *db.DB, ctx axisContext, sol Solution, a axis) {
	for i, c := range d.Cells {
		if c.Fixed {
			continue
		}
		v := sol.X[ctx.varOf[i]]
		if a == axisH {
			d.Cells[i].X = v
		} else {
			d.Cells[i].Y = v
		}
	}
	if a == axisH {
		for g := range d.SymGroups {
			d.SymGroups[g].Axis = sol.X[ctx.sVarOf[g]]
		}
	}
}
