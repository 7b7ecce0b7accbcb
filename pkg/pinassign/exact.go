package pinassign

import (
	"github.com/UTDA-group/IdeaPlaceEx/pkg/db"
	"github.com/UTDA-group/IdeaPlaceEx/pkg/errors"
	"github.com/UTDA-group/IdeaPlaceEx/pkg/legalize"
)

// integralityTolerance is the specification's Section 6/7 band: a decision
// variable must land in [0, 0.001) or (0.99, 1] to count as integral.
const integralityTolerance = 0.001

// exactAssign solves the pin-assignment ILP of Section 4.5 step 4's exact
// path. The assignment polytope (one net per row, one site per column, unit
// capacities) is totally unimodular on its own, so its LP relaxation is
// already integral at any vertex optimum; the additional conflict
// constraints between a sym-pair's mirrored sites and free nets break that
// guarantee, which is exactly why the specification requires an explicit
// integrality check on the relaxed solution rather than assuming it.
func exactAssign(d *db.DB, sites []Site, mirror map[int]int, free, symPairs []classified, gridStep float64) ([]assignment, error) {
	m := legalize.NewModel()

	varOf := map[[2]int]int{} // (kind-tagged index, site) -> var index

	mirrorList := make([][2]int, 0, len(mirror))
	for w, e := range mirror {
		mirrorList = append(mirrorList, [2]int{w, e})
	}

	objective := map[int]float64{}

	for pairIdx, sp := range symPairs {
		boxNet := boxOf(d, sp.net)
		boxPartner := boxOf(d, sp.partner)
		for _, wePair := range mirrorList {
			w, e := wePair[0], wePair[1]
			v := m.AddVar()
			varOf[[2]int{1000000 + pairIdx, w}] = v
			objective[v] = hpwlIncrease(boxNet, sites[w]) + hpwlIncrease(boxPartner, sites[e])
		}
	}
	for netIdx, fn := range free {
		box := boxOf(d, fn.net)
		for _, s := range candidateSites(d, sites, fn.net, gridStep) {
			v := m.AddVar()
			varOf[[2]int{2000000 + netIdx, s}] = v
			objective[v] = hpwlIncrease(box, sites[s])
		}
	}
	m.SetObjective(objective)

	// Each sym pair assigned exactly one mirrored-site orientation.
	for pairIdx := range symPairs {
		coeffs := map[int]float64{}
		for _, wePair := range mirrorList {
			coeffs[varOf[[2]int{1000000 + pairIdx, wePair[0]}]] = 1
		}
		m.AddConstraint(coeffs, legalize.EQ, 1)
	}
	// Each free net assigned exactly one (candidate) site.
	for netIdx, fn := range free {
		coeffs := map[int]float64{}
		for _, s := range candidateSites(d, sites, fn.net, gridStep) {
			coeffs[varOf[[2]int{2000000 + netIdx, s}]] = 1
		}
		m.AddConstraint(coeffs, legalize.EQ, 1)
	}
	// Conflict: a site used by any sym-pair orientation (either of its
	// mirror pair) cannot also be used by a free net.
	for s := range sites {
		coeffs := map[int]float64{}
		for pairIdx := range symPairs {
			for _, wePair := range mirrorList {
				if wePair[0] == s || wePair[1] == s {
					coeffs[varOf[[2]int{1000000 + pairIdx, wePair[0]}]] = 1
				}
			}
		}
		for netIdx := range free {
			if v, ok := varOf[[2]int{2000000 + netIdx, s}]; ok {
				coeffs[v] = 1
			}
		}
		if len(coeffs) > 0 {
			m.AddConstraint(coeffs, legalize.LE, 1)
		}
	}

	sol, err := m.Solve()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInfeasible, err, "pin assignment ILP infeasible")
	}

	for _, x := range sol.X {
		if x > integralityTolerance && x < 1-integralityTolerance {
			return nil, errors.New(errors.ErrCodeNumericNonInteger, "pin assignment LP relaxation gave non-integer value %v", x)
		}
	}

	var results []assignment
	for pairIdx, sp := range symPairs {
		for _, wePair := range mirrorList {
			v := varOf[[2]int{1000000 + pairIdx, wePair[0]}]
			if sol.X[v] > 1-integralityTolerance {
				results = append(results, assignment{net: sp.net, site: wePair[0]}, assignment{net: sp.partner, site: wePair[1]})
			}
		}
	}
	for netIdx, fn := range free {
		for s := range sites {
			v, ok := varOf[[2]int{2000000 + netIdx, s}]
			if ok && sol.X[v] > 1-integralityTolerance {
				results = append(results, assignment{net: fn.net, site: s})
			}
		}
	}
	return results, nil
}
