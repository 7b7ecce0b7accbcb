package pinassign

import (
	"testing"

	"github.com/UTDA-group/IdeaPlaceEx/pkg/db"
)

func TestExactAssignMatchesEveryNet(t *testing.T) {
	d, cells := symAndFreeFixture()
	sites, mirror := GenerateRing(cells, RingConfig{Extension: 10, Interval: 10, IncludeTopBottom: true})
	free, symPairs := classifyNets(d)

	results, err := exactAssign(d, sites, mirror, free, symPairs, 0)
	if err != nil {
		t.Fatalf("exactAssign error: %v", err)
	}
	assigned := map[int]bool{}
	for _, r := range results {
		assigned[r.net] = true
	}
	for i := range d.Nets {
		if !assigned[i] {
			t.Fatalf("net %d never assigned a site", i)
		}
	}
}

func TestExactAssignNoSiteUsedTwice(t *testing.T) {
	d, cells := symAndFreeFixture()
	sites, mirror := GenerateRing(cells, RingConfig{Extension: 10, Interval: 10, IncludeTopBottom: true})
	free, symPairs := classifyNets(d)

	results, err := exactAssign(d, sites, mirror, free, symPairs, 0)
	if err != nil {
		t.Fatalf("exactAssign error: %v", err)
	}
	seen := map[int]bool{}
	for _, r := range results {
		if seen[r.site] {
			t.Fatalf("site %d assigned to more than one net", r.site)
		}
		seen[r.site] = true
	}
}

func TestExactAssignRestrictsSelfSymNetToAxisSite(t *testing.T) {
	d, cells := symAndFreeFixture()
	d.Nets = []db.Net{
		{Pins: []int{0}, IO: true, SymPartner: -1, SelfSym: true},
	}
	d.Pins = []db.Pin{{Cell: 2, IO: true}}
	d.Cells[2].SymGroup = 0

	sites, mirror := GenerateRing(cells, RingConfig{Extension: 10, Interval: 10, IncludeTopBottom: false})
	// Pin the axis a few units off of the west site's exact x (-10), inside a
	// realistic grid-step tolerance, rather than coinciding with it exactly.
	const gridStep = 5
	d.SymGroups[0].Axis = -8
	free, symPairs := classifyNets(d)

	results, err := exactAssign(d, sites, mirror, free, symPairs, gridStep)
	if err != nil {
		t.Fatalf("exactAssign error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	site := sites[results[0].site]
	if site.X != -10 {
		t.Fatalf("self-sym net assigned to site x=%v, want -10 (the group axis)", site.X)
	}
}

func TestExactAssignEmptyNetsYieldsNoResults(t *testing.T) {
	d := db.New(db.Boundary{XHi: 100, YHi: 100})
	d.Cells = []db.Cell{{Name: "a", W: 10, H: 10}}
	sites, mirror := GenerateRing(d.Cells, RingConfig{Extension: 10, Interval: 10})
	results, err := exactAssign(d, sites, mirror, nil, nil, 0)
	if err != nil {
		t.Fatalf("exactAssign error: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("got %d results, want 0", len(results))
	}
}
