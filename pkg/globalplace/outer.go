// Package globalplace implements the outer Lagrangian-style loop
// (component C4): it wraps the inner first-order optimizer (pkg/optim)
// around the differentiable operator set (pkg/nlpmodel), adjusting penalty
// multipliers and the smoothing schedule between inner solves until the
// placement's violations are small or an iteration cap is hit.
//
// Per the specification's "cyclic references" design note, operators and
// the optimizer are both local to one Run call - nothing here outlives a
// single invocation, so there is no scratch struct to leak across calls.
package globalplace

import (
	"math"

	"github.com/UTDA-group/IdeaPlaceEx/pkg/config"
	"github.com/UTDA-group/IdeaPlaceEx/pkg/db"
	"github.com/UTDA-group/IdeaPlaceEx/pkg/nlpmodel"
	"github.com/UTDA-group/IdeaPlaceEx/pkg/optim"
)

// negligibleRatio marks a penalty gradient as negligible relative to the
// wirelength gradient for the purposes of multiplier initialization.
const negligibleRatio = 1e-9

// innerRelTol is the relative-improvement threshold for the inner solve;
// the specification names the predicate but not a concrete tolerance.
const innerRelTol = 1e-6

// Result reports the outcome of one global-placement run.
type Result struct {
	// Converged is false if the outer loop hit its iteration cap with
	// violations still above threshold (Section 7's "convergence
	// failure" - not fatal, legalization still gets a chance).
	Converged bool
	Iterations int
}

// Run drives the outer loop to completion, writing final cell coordinates
// and symmetry axes back into d. It never returns a retryable error itself
// (gradient-based global placement doesn't fail outright the way an LP
// can); Converged reports whether it settled within threshold.
func Run(d *db.DB, cfg config.Config) (Result, error) {
	if err := d.Validate(); err != nil {
		return Result{}, err
	}
	cfg = cfg.WithDefaults()

	layout := nlpmodel.Layout{NCells: len(d.Cells), NGroups: len(d.SymGroups)}
	if layout.NCells == 0 {
		return Result{Converged: true}, nil
	}
	p := packFromDB(d, layout)

	set, hpwlOps, ovlOps, oobOps, asymOps := buildOperators(d, layout, cfg)
	set.Lambda["hpwl"] = cfg.LambdaHPWLInit
	set.Lambda["cos"] = cfg.LambdaCosInit

	initMultipliers(set, p, cfg)

	f0 := map[string]float64{}
	for name, v := range set.ValuesByName(p) {
		f0[name] = v
	}
	alphaC := map[string]float64{}
	for name, v := range f0 {
		alphaC[name] = alphaSlope(cfg.AlphaMin, cfg.AlphaMax, v)
	}
	applyAlpha(hpwlOps, ovlOps, oobOps, asymOps, cfg, f0, alphaC)

	result := Result{}
	maxOuter := cfg.MaxOuterIter
	for outer := 0; outer < maxOuter; outer++ {
		result.Iterations = outer + 1

		preds := []optim.Predicate{
			optim.MaxIterations(cfg.MaxInnerIter),
			optim.RelativeImprovement(innerRelTol),
		}
		optim.Adam(set, p, optim.DefaultAdamConfig(), preds)

		unpackToDB(d, p, layout)
		ovlArea, oobArea, asymDist := exactViolations(d)
		if ovlArea <= cfg.OvlThreshold*d.TotalCellArea() &&
			oobArea <= cfg.OOBThreshold*d.Boundary.Area() &&
			asymDist <= cfg.AsymThreshold*math.Sqrt(d.TotalCellArea()) {
			result.Converged = true
			break
		}

		updateMultipliers(set, p, cfg, f0)
		values := set.ValuesByName(p)
		applyAlpha(hpwlOps, ovlOps, oobOps, asymOps, cfg, values, alphaC)
	}

	unpackToDB(d, p, layout)
	return result, nil
}

func packFromDB(d *db.DB, layout nlpmodel.Layout) []float64 {
	cellX := make([]float64, layout.NCells)
	cellY := make([]float64, layout.NCells)
	for i, c := range d.Cells {
		cellX[i] = c.X
		cellY[i] = c.Y
	}
	axis := make([]float64, layout.NGroups)
	for g, sg := range d.SymGroups {
		axis[g] = sg.Axis
	}
	return layout.Pack(cellX, cellY, axis)
}

func unpackToDB(d *db.DB, p []float64, layout nlpmodel.Layout) {
	cellX, cellY, axis := layout.Unpack(p)
	for i := range d.Cells {
		if d.Cells[i].Fixed {
			continue
		}
		d.Cells[i].X = cellX[i]
		d.Cells[i].Y = cellY[i]
	}
	for g := range d.SymGroups {
		d.SymGroups[g].Axis = axis[g]
	}
}

func buildOperators(d *db.DB, layout nlpmodel.Layout, cfg config.Config) (
	set *nlpmodel.Set, hpwlOps, ovlOps, oobOps, asymOps []nlpmodel.Operator,
) {
	var all []nlpmodel.Operator

	for _, n := range d.Nets {
		pins := make([]nlpmodel.PinRef, len(n.Pins))
		for k, pinIdx := range n.Pins {
			pin := d.Pins[pinIdx]
			pins[k] = nlpmodel.PinRef{Cell: pin.Cell, OffX: pin.OffX, OffY: pin.OffY}
		}
		w := n.Weight
		if w == 0 {
			w = 1
		}
		op := nlpmodel.NewHPWLOperator(layout, pins, w, cfg.AlphaMax)
		hpwlOps = append(hpwlOps, op)
		all = append(all, op)
	}

	for i := 0; i < len(d.Cells); i++ {
		if d.Cells[i].Fixed {
			continue
		}
		for j := i + 1; j < len(d.Cells); j++ {
			if d.Cells[j].Fixed {
				continue
			}
			ci, cj := d.Cells[i], d.Cells[j]
			op := nlpmodel.NewOverlapOperator(layout, i, j, ci.W, ci.H, cj.W, cj.H, cfg.AlphaMax)
			ovlOps = append(ovlOps, op)
			all = append(all, op)
		}
	}

	for i, c := range d.Cells {
		if c.Fixed {
			continue
		}
		op := nlpmodel.NewOOBOperator(layout, i, c.W, c.H, d.Boundary.XLo, d.Boundary.YLo, d.Boundary.XHi, d.Boundary.YHi, cfg.AlphaMax)
		oobOps = append(oobOps, op)
		all = append(all, op)
	}

	for g, sg := range d.SymGroups {
		var pairs []nlpmodel.AsymPair
		for _, pair := range sg.Pairs {
			pairs = append(pairs, nlpmodel.AsymPair{
				CellA: pair[0], CellB: pair[1],
				WA: d.Cells[pair[0]].W, WB: d.Cells[pair[1]].W,
			})
		}
		selfW := make([]float64, len(sg.SelfSyms))
		for k, c := range sg.SelfSyms {
			selfW[k] = d.Cells[c].W
		}
		op := nlpmodel.NewAsymOperator(layout, g, pairs, sg.SelfSyms, selfW)
		asymOps = append(asymOps, op)
		all = append(all, op)
	}

	set = &nlpmodel.Set{Layout: layout, Operators: all, Lambda: map[string]float64{}}
	return
}

// initMultipliers sets the varied multipliers (ovl, oob, asym) by matching
// their gradient norms against the wirelength gradient's, per Section 4.3.
// The hpwl/cos constant multipliers are set by the caller before this runs
// and are untouched here.
func initMultipliers(set *nlpmodel.Set, p []float64, cfg config.Config) {
	probe := &nlpmodel.Set{Layout: set.Layout, Operators: set.Operators, Lambda: map[string]float64{"hpwl": 1}}
	norms := probe.GradientNorms(p)
	gHpwl := norms["hpwl"]

	fallback := map[string]float64{"ovl": cfg.LambdaOvlInit, "oob": cfg.LambdaOOBInit, "asym": cfg.LambdaAsymInit}
	if gHpwl < negligibleRatio {
		for name, v := range fallback {
			set.Lambda[name] = v
		}
		return
	}
	for _, name := range []string{"ovl", "oob", "asym"} {
		g := norms[name]
		if g < negligibleRatio*gHpwl {
			set.Lambda[name] = fallback[name]
			continue
		}
		set.Lambda[name] = (gHpwl * cfg.PenaltyRatio) / g
	}
	clampLambda(set, cfg)
}

func clampLambda(set *nlpmodel.Set, cfg config.Config) {
	if set.Lambda["ovl"] > cfg.LambdaMaxOvlInit {
		set.Lambda["ovl"] = cfg.LambdaMaxOvlInit
	}
	if set.Lambda["oob"] > cfg.LambdaMax {
		set.Lambda["oob"] = cfg.LambdaMax
	}
	if set.Lambda["asym"] > cfg.LambdaMax {
		set.Lambda["asym"] = cfg.LambdaMax
	}
}

// updateMultipliers applies the subgradient update lambda_t += s*(f_t/f_t0)/lambda_t
// for each varied penalty term, normalized by its value at the first outer
// iteration so the three terms contribute comparably.
func updateMultipliers(set *nlpmodel.Set, p []float64, cfg config.Config, f0 map[string]float64) {
	values := set.ValuesByName(p)
	for _, name := range []string{"ovl", "oob", "asym"} {
		ft := values[name]
		lambda := set.Lambda[name]
		if lambda == 0 {
			continue
		}
		norm := ft
		if f0[name] != 0 {
			norm = ft / f0[name]
		}
		set.Lambda[name] = lambda + cfg.MultiplierStep*norm/lambda
	}
	clampLambda(set, cfg)
}

// alphaSlope returns C_t = log(alphaMax - alphaMin + 1) / f0.
func alphaSlope(alphaMin, alphaMax, f0 float64) float64 {
	if f0 <= 0 {
		return 0
	}
	return math.Log(alphaMax-alphaMin+1) / f0
}

func alphaFor(alphaMin, alphaMax, c, f float64) float64 {
	a := math.Exp(c*f) + alphaMin - 1
	if a < alphaMin {
		return alphaMin
	}
	if a > alphaMax {
		return alphaMax
	}
	return a
}

func applyAlpha(hpwlOps, ovlOps, oobOps, asymOps []nlpmodel.Operator, cfg config.Config, values, slope map[string]float64) {
	setGroup := func(ops []nlpmodel.Operator, name string) {
		c := slope[name]
		f := values[name]
		a := alphaFor(cfg.AlphaMin, cfg.AlphaMax, c, f)
		for _, op := range ops {
			op.SetAlpha(a)
		}
	}
	setGroup(hpwlOps, "hpwl")
	setGroup(ovlOps, "ovl")
	setGroup(oobOps, "oob")
	setGroup(asymOps, "asym")
}

// exactViolations computes the three non-smoothed violation quantities the
// stop condition checks against: total pairwise overlap area, total
// out-of-boundary area, and the worst symmetry-axis distance.
func exactViolations(d *db.DB) (ovlArea, oobArea, asymDist float64) {
	for i := 0; i < len(d.Cells); i++ {
		for j := i + 1; j < len(d.Cells); j++ {
			ci, cj := d.Cells[i], d.Cells[j]
			ox := math.Min(ci.X+ci.W, cj.X+cj.W) - math.Max(ci.X, cj.X)
			oy := math.Min(ci.Y+ci.H, cj.Y+cj.H) - math.Max(ci.Y, cj.Y)
			if ox > 0 && oy > 0 {
				ovlArea += ox * oy
			}
		}
	}

	for _, c := range d.Cells {
		loX := math.Max(0, d.Boundary.XLo-c.X)
		hiX := math.Max(0, (c.X+c.W)-d.Boundary.XHi)
		loY := math.Max(0, d.Boundary.YLo-c.Y)
		hiY := math.Max(0, (c.Y+c.H)-d.Boundary.YHi)
		oobArea += (loX + hiX) * c.H
		oobArea += (loY + hiY) * c.W
	}

	for _, sg := range d.SymGroups {
		s := sg.Axis
		for _, pair := range sg.Pairs {
			a, b := d.Cells[pair[0]], d.Cells[pair[1]]
			mid := (a.CenterX() + b.CenterX()) / 2
			dist := math.Abs(mid - s)
			if dist > asymDist {
				asymDist = dist
			}
			dy := math.Abs(a.CenterY() - b.CenterY())
			if dy > asymDist {
				asymDist = dy
			}
		}
	}
	return
}
