package pinassign

import "github.com/UTDA-group/IdeaPlaceEx/pkg/db"

// assignment is one net's resolved site.
type assignment struct {
	net  int
	site int
}

// fastAssign runs the two sequential min-cost bipartite matchings of
// Section 4.5 step 4's fast path: sym-pair nets consume mirrored site pairs
// first (picking whichever of the two left/right orientations is cheaper),
// then free nets consume whatever sites remain.
func fastAssign(d *db.DB, sites []Site, mirror map[int]int, free, symPairs []classified, gridStep float64) ([]assignment, error) {
	used := make([]bool, len(sites))
	var results []assignment

	if len(symPairs) > 0 {
		var mirrorPairs [][2]int // (west site idx, east site idx)
		for w, e := range mirror {
			mirrorPairs = append(mirrorPairs, [2]int{w, e})
		}
		costOf := func(pairIdx, slotIdx int) float64 {
			sp := symPairs[pairIdx]
			w, e := mirrorPairs[slotIdx][0], mirrorPairs[slotIdx][1]
			boxNet := boxOf(d, sp.net)
			boxPartner := boxOf(d, sp.partner)
			optA := hpwlIncrease(boxNet, sites[w]) + hpwlIncrease(boxPartner, sites[e])
			optB := hpwlIncrease(boxNet, sites[e]) + hpwlIncrease(boxPartner, sites[w])
			if optA < optB {
				return optA
			}
			return optB
		}
		matches, err := bipartiteMatch(len(symPairs), len(mirrorPairs), costOf, nil)
		if err != nil {
			return nil, err
		}
		for pairIdx, slotIdx := range matches {
			sp := symPairs[pairIdx]
			w, e := mirrorPairs[slotIdx][0], mirrorPairs[slotIdx][1]
			boxNet := boxOf(d, sp.net)
			boxPartner := boxOf(d, sp.partner)
			optA := hpwlIncrease(boxNet, sites[w]) + hpwlIncrease(boxPartner, sites[e])
			optB := hpwlIncrease(boxNet, sites[e]) + hpwlIncrease(boxPartner, sites[w])
			if optA <= optB {
				results = append(results, assignment{net: sp.net, site: w}, assignment{net: sp.partner, site: e})
			} else {
				results = append(results, assignment{net: sp.net, site: e}, assignment{net: sp.partner, site: w})
			}
			used[w] = true
			used[e] = true
		}
	}

	var freeSites []int
	for i, u := range used {
		if !u {
			freeSites = append(freeSites, i)
		}
	}
	if len(free) > 0 {
		siteSlotOf := make(map[int]int, len(freeSites))
		for slot, s := range freeSites {
			siteSlotOf[s] = slot
		}
		costOf := func(netIdx, siteSlot int) float64 {
			return hpwlIncrease(boxOf(d, free[netIdx].net), sites[freeSites[siteSlot]])
		}
		allowed := func(netIdx, siteSlot int) bool {
			for _, s := range candidateSites(d, sites, free[netIdx].net, gridStep) {
				if slot, ok := siteSlotOf[s]; ok && slot == siteSlot {
					return true
				}
			}
			return false
		}
		matches, err := bipartiteMatch(len(free), len(freeSites), costOf, allowed)
		if err != nil {
			return nil, err
		}
		for netIdx, siteSlot := range matches {
			results = append(results, assignment{net: free[netIdx].net, site: freeSites[siteSlot]})
		}
	}

	return results, nil
}

// bipartiteMatch returns, for each of nLeft left nodes successfully
// matched, the right-node index it was matched to, via min-cost flow.
// allowed restricts which (left, right) pairs may be connected at all; a
// pair for which it returns false never becomes a flow-graph edge, so it can
// never be part of a solution regardless of cost. Returns an error if fewer
// sites exist than nets, or no feasible matching exists under allowed.
func bipartiteMatch(nLeft, nRight int, cost func(left, right int) float64, allowed func(left, right int) bool) (map[int]int, error) {
	if nLeft == 0 {
		return map[int]int{}, nil
	}
	if nRight < nLeft {
		return nil, errTooFewSites
	}
	source := 0
	sink := 1 + nLeft + nRight
	g := newMCMF(sink + 1)
	type edgeRef struct{ left, right, idx int }
	var refs []edgeRef
	for l := 0; l < nLeft; l++ {
		g.addEdge(source, 1+l, 1, 0)
	}
	for r := 0; r < nRight; r++ {
		g.addEdge(1+nLeft+r, sink, 1, 0)
	}
	for l := 0; l < nLeft; l++ {
		for r := 0; r < nRight; r++ {
			if allowed != nil && !allowed(l, r) {
				continue
			}
			idx := len(g.edges)
			g.addEdge(1+l, 1+nLeft+r, 1, cost(l, r))
			refs = append(refs, edgeRef{left: l, right: r, idx: idx})
		}
	}
	flow, _ := g.run(source, sink)
	if flow < nLeft {
		return nil, errTooFewSites
	}
	result := make(map[int]int, nLeft)
	for _, ref := range refs {
		if g.edges[ref.idx].flow > 0 {
			result[ref.left] = ref.right
		}
	}
	return result, nil
}
