package globalplace

import (
	"math"
	"testing"

	"github.com/UTDA-group/IdeaPlaceEx/pkg/config"
	"github.com/UTDA-group/IdeaPlaceEx/pkg/db"
)

func twoCellNet() *db.DB {
	d := db.New(db.Boundary{XLo: 0, YLo: 0, XHi: 200, YHi: 200})
	d.Cells = []db.Cell{
		{Name: "a", W: 10, H: 10, X: 0, Y: 0, SymGroup: -1},
		{Name: "b", W: 10, H: 10, X: 150, Y: 150, SymGroup: -1},
	}
	d.Pins = []db.Pin{
		{Cell: 0, OffX: 5, OffY: 5},
		{Cell: 1, OffX: 5, OffY: 5},
	}
	d.Nets = []db.Net{
		{Pins: []int{0, 1}, Weight: 1, SymPartner: -1},
	}
	return d
}

func TestRunEmptyDBSucceeds(t *testing.T) {
	d := db.New(db.Boundary{XHi: 100, YHi: 100})
	result, err := Run(d, config.Default())
	if err != nil {
		t.Fatalf("Run returned error on empty DB: %v", err)
	}
	if !result.Converged {
		t.Error("expected empty DB to report converged")
	}
}

func TestRunSingleFixedCellUntouched(t *testing.T) {
	d := db.New(db.Boundary{XHi: 100, YHi: 100})
	d.Cells = []db.Cell{{Name: "a", W: 10, H: 10, X: 42, Y: 7, Fixed: true, SymGroup: -1}}
	_, err := Run(d, config.Default())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if d.Cells[0].X != 42 || d.Cells[0].Y != 7 {
		t.Errorf("fixed cell moved to (%v,%v), want (42,7)", d.Cells[0].X, d.Cells[0].Y)
	}
}

func TestRunPullsConnectedCellsCloser(t *testing.T) {
	d := twoCellNet()
	before := d.TotalHPWL()
	cfg := config.Default()
	cfg.MaxOuterIter = 5
	cfg.MaxInnerIter = 100
	if _, err := Run(d, cfg); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	after := d.TotalHPWL()
	if after >= before {
		t.Errorf("expected HPWL to shrink: before=%v after=%v", before, after)
	}
}

func TestRunRejectsInvalidDB(t *testing.T) {
	d := db.New(db.Boundary{XHi: 10, YHi: 10})
	d.Nets = []db.Net{{Pins: []int{0}}}
	if _, err := Run(d, config.Default()); err == nil {
		t.Error("expected error for net referencing nonexistent pin")
	}
}

func TestExactViolationsDetectsOverlap(t *testing.T) {
	d := db.New(db.Boundary{XHi: 100, YHi: 100})
	d.Cells = []db.Cell{
		{W: 10, H: 10, X: 0, Y: 0},
		{W: 10, H: 10, X: 5, Y: 5},
	}
	ovl, _, _ := exactViolations(d)
	want := 5.0 * 5.0
	if math.Abs(ovl-want) > 1e-9 {
		t.Errorf("ovlArea = %v, want %v", ovl, want)
	}
}

func TestExactViolationsDetectsOutOfBoundary(t *testing.T) {
	d := db.New(db.Boundary{XLo: 0, YLo: 0, XHi: 10, YHi: 10})
	d.Cells = []db.Cell{{W: 5, H: 5, X: 8, Y: 0}}
	_, oob, _ := exactViolations(d)
	if oob <= 0 {
		t.Errorf("expected positive oob area, got %v", oob)
	}
}
