package pinassign

import (
	"testing"

	"github.com/UTDA-group/IdeaPlaceEx/pkg/db"
)

func TestHPWLIncreaseZeroInsideBox(t *testing.T) {
	box := netBox{xlo: 0, ylo: 0, xhi: 10, yhi: 10}
	if got := hpwlIncrease(box, Site{X: 5, Y: 5}); got != 0 {
		t.Fatalf("got %v, want 0 (site inside box)", got)
	}
}

func TestHPWLIncreasePositiveOutsideBox(t *testing.T) {
	box := netBox{xlo: 0, ylo: 0, xhi: 10, yhi: 10}
	got := hpwlIncrease(box, Site{X: 20, Y: 0})
	if got != 10 {
		t.Fatalf("got %v, want 10 (10 past xhi)", got)
	}
}

func TestBoxOfMatchesNetBBox(t *testing.T) {
	d := db.New(db.Boundary{XHi: 100, YHi: 100})
	d.Cells = []db.Cell{{Name: "a", W: 10, H: 10, X: 0, Y: 0}, {Name: "b", W: 10, H: 10, X: 40, Y: 0}}
	d.Pins = []db.Pin{{Cell: 0, IO: true}, {Cell: 1, IO: true}}
	d.Nets = []db.Net{{Pins: []int{0, 1}, IO: true, SymPartner: -1}}
	box := boxOf(d, 0)
	wantXlo, wantYlo, wantXhi, wantYhi := d.NetBBox(0)
	if box.xlo != wantXlo || box.ylo != wantYlo || box.xhi != wantXhi || box.yhi != wantYhi {
		t.Fatalf("boxOf = %+v, want (%v,%v,%v,%v)", box, wantXlo, wantYlo, wantXhi, wantYhi)
	}
}
