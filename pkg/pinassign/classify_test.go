package pinassign

import (
	"testing"

	"github.com/UTDA-group/IdeaPlaceEx/pkg/db"
)

func netsFixture() *db.DB {
	d := db.New(db.Boundary{XLo: 0, YLo: 0, XHi: 100, YHi: 100})
	d.Cells = []db.Cell{
		{Name: "a", W: 10, H: 10, X: 0, Y: 0, SymGroup: 0},
		{Name: "b", W: 10, H: 10, X: 50, Y: 0, SymGroup: 0},
		{Name: "c", W: 10, H: 10, X: 20, Y: 20, SymGroup: 0},
	}
	d.Pins = []db.Pin{
		{Cell: 0, IO: true},
		{Cell: 1, IO: true},
		{Cell: 2, IO: true},
	}
	d.SymGroups = []db.SymmetryGroup{{Pairs: [][2]int{{0, 1}}, Axis: 25}}
	d.Nets = []db.Net{
		{Pins: []int{0}, IO: true, SymPartner: 1, Primary: true},
		{Pins: []int{1}, IO: true, SymPartner: 0, Primary: false},
		{Pins: []int{2}, IO: true, SymPartner: -1, SelfSym: true},
	}
	return d
}

func TestClassifyNetsGroupsSymPairOnce(t *testing.T) {
	d := netsFixture()
	free, symPairs := classifyNets(d)
	if len(symPairs) != 1 {
		t.Fatalf("got %d sym pairs, want 1", len(symPairs))
	}
	if symPairs[0].net != 0 || symPairs[0].partner != 1 {
		t.Fatalf("unexpected sym pair: %+v", symPairs[0])
	}
	if len(free) != 1 || free[0].net != 2 {
		t.Fatalf("expected only net 2 (self-sym) to be free, got %+v", free)
	}
}

func TestClassifyNetsOrdinaryFreeNet(t *testing.T) {
	d := netsFixture()
	d.Nets[0].SymPartner = -1
	d.Nets[1].SymPartner = -1
	free, symPairs := classifyNets(d)
	if len(symPairs) != 0 {
		t.Fatalf("got %d sym pairs, want 0", len(symPairs))
	}
	if len(free) != 3 {
		t.Fatalf("got %d free nets, want 3", len(free))
	}
}

func TestSelfSymAxisFindsGroupAxis(t *testing.T) {
	d := netsFixture()
	axis, ok := selfSymAxis(d, 0)
	if !ok || axis != 25 {
		t.Fatalf("axis = %v, %v; want 25, true", axis, ok)
	}
}

func TestSelfSymAxisFalseWithoutSymGroup(t *testing.T) {
	d := netsFixture()
	d.Cells = append(d.Cells, db.Cell{Name: "d", W: 10, H: 10, X: 80, Y: 80, SymGroup: -1})
	d.Pins = append(d.Pins, db.Pin{Cell: 3, IO: true})
	d.Nets = append(d.Nets, db.Net{Pins: []int{3}, IO: true, SymPartner: -1, SelfSym: true})
	axis, ok := selfSymAxis(d, 3)
	if ok {
		t.Fatalf("expected no axis for a net whose cell has no symmetry group, got %v", axis)
	}
}

func TestCandidateSitesUnrestrictedForOrdinaryNet(t *testing.T) {
	d := netsFixture()
	sites := []Site{{X: 0}, {X: 50}, {X: 100}}
	got := candidateSites(d, sites, 0, 5)
	if len(got) != 3 {
		t.Fatalf("got %d candidates, want 3 (unrestricted)", len(got))
	}
}

// TestCandidateSitesRestrictedForSelfSymNet mirrors a real ring: none of the
// sites sit exactly on the continuous axis (25), only within a grid step of
// it, which is how GenerateRing actually produces sites once snapped.
func TestCandidateSitesRestrictedForSelfSymNet(t *testing.T) {
	d := netsFixture()
	sites := []Site{{X: 0}, {X: 22}, {X: 28}, {X: 100}}
	got := candidateSites(d, sites, 2, 5)
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("got %v, want site indices 1 and 2 (within one grid step of axis 25)", got)
	}
}

// TestCandidateSitesFallsBackToTightToleranceWithoutGridStep covers the
// ungridded case, where only a site landing essentially on the axis counts.
func TestCandidateSitesFallsBackToTightToleranceWithoutGridStep(t *testing.T) {
	d := netsFixture()
	sites := []Site{{X: 0}, {X: 25}, {X: 25.1}, {X: 100}}
	got := candidateSites(d, sites, 2, 0)
	if len(got) != 1 || got[0] != 1 {
		t.Fatalf("got %v, want only site index 1 (x=25, the exact axis)", got)
	}
}
