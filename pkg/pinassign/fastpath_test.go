package pinassign

import (
	"testing"

	"github.com/UTDA-group/IdeaPlaceEx/pkg/db"
)

func symAndFreeFixture() (*db.DB, []db.Cell) {
	cells := []db.Cell{
		{Name: "a", W: 10, H: 10, X: 0, Y: 0, SymGroup: 0},
		{Name: "b", W: 10, H: 10, X: 40, Y: 0, SymGroup: 0},
		{Name: "c", W: 10, H: 10, X: 20, Y: 30, SymGroup: -1},
	}
	d := db.New(db.Boundary{XLo: -20, YLo: -20, XHi: 70, YHi: 60})
	d.Cells = cells
	d.Pins = []db.Pin{{Cell: 0, IO: true}, {Cell: 1, IO: true}, {Cell: 2, IO: true}}
	d.SymGroups = []db.SymmetryGroup{{Pairs: [][2]int{{0, 1}}, Axis: 25}}
	d.Nets = []db.Net{
		{Pins: []int{0}, IO: true, SymPartner: 1, Primary: true},
		{Pins: []int{1}, IO: true, SymPartner: 0, Primary: false},
		{Pins: []int{2}, IO: true, SymPartner: -1},
	}
	return d, cells
}

func TestFastAssignMatchesEveryNet(t *testing.T) {
	d, cells := symAndFreeFixture()
	sites, mirror := GenerateRing(cells, RingConfig{Extension: 10, Interval: 10, IncludeTopBottom: true})
	free, symPairs := classifyNets(d)

	results, err := fastAssign(d, sites, mirror, free, symPairs, 0)
	if err != nil {
		t.Fatalf("fastAssign error: %v", err)
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

func TestFastAssignNoSiteUsedTwice(t *testing.T) {
	d, cells := symAndFreeFixture()
	sites, mirror := GenerateRing(cells, RingConfig{Extension: 10, Interval: 10, IncludeTopBottom: true})
	free, symPairs := classifyNets(d)

	results, err := fastAssign(d, sites, mirror, free, symPairs, 0)
	if err != nil {
		t.Fatalf("fastAssign error: %v", err)
	}
	seen := map[int]bool{}
	for _, r := range results {
		if seen[r.site] {
			t.Fatalf("site %d assigned to more than one net", r.site)
		}
		seen[r.site] = true
	}
}

func TestFastAssignTooFewSitesErrors(t *testing.T) {
	d, _ := symAndFreeFixture()
	// A single site can't cover three nets' worth of demand.
	sites := []Site{{X: 0, Y: 0, Dir: db.West}}
	mirror := map[int]int{}
	free, symPairs := classifyNets(d)

	_, err := fastAssign(d, sites, mirror, free, symPairs, 0)
	if err == nil {
		t.Fatal("expected an error when sites are scarcer than nets")
	}
}

func TestFastAssignRestrictsSelfSymNetToAxisSite(t *testing.T) {
	d, cells := symAndFreeFixture()
	d.Nets = []db.Net{
		{Pins: []int{0}, IO: true, SymPartner: -1, SelfSym: true},
	}
	d.Pins = []db.Pin{{Cell: 2, IO: true}}
	d.Cells[2].SymGroup = 0

	sites, mirror := GenerateRing(cells, RingConfig{Extension: 10, Interval: 10, IncludeTopBottom: false})
	// The west ring sites sit at x = -10 (bbox xlo 0, minus extension 10); the
	// east ones at x = 60. Pin the axis a few units off of -10, inside a
	// realistic grid-step tolerance, the way an LP-solved continuous axis
	// would actually land relative to a grid-snapped ring site.
	const gridStep = 5
	d.SymGroups[0].Axis = -8
	free, symPairs := classifyNets(d)
	if len(symPairs) != 0 || len(free) != 1 {
		t.Fatalf("fixture setup: got %d sym pairs, %d free; want 0, 1", len(symPairs), len(free))
	}

	results, err := fastAssign(d, sites, mirror, free, symPairs, gridStep)
	if err != nil {
		t.Fatalf("fastAssign error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	site := sites[results[0].site]
	if site.X != -10 {
		t.Fatalf("self-sym net assigned to site x=%v, want -10 (the group axis)", site.X)
	}
}
