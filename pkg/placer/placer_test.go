package placer

import (
	"testing"

	"github.com/UTDA-group/IdeaPlaceEx/pkg/config"
	"github.com/UTDA-group/IdeaPlaceEx/pkg/db"
)

func pipelineFixture() *db.DB {
	d := db.New(db.Boundary{XLo: 0, YLo: 0, XHi: 200, YHi: 200})
	d.Cells = []db.Cell{
		{Name: "a", W: 10, H: 10, X: 5, Y: 5},
		{Name: "b", W: 10, H: 10, X: 8, Y: 5}, // overlaps a, global placement + legalize must fix it
	}
	d.Pins = []db.Pin{
		{Cell: 0, IO: true},
		{Cell: 1, IO: true},
	}
	d.Nets = []db.Net{
		{Pins: []int{0, 1}, IO: true, SymPartner: -1, Weight: 1},
	}
	return d
}

func TestRunProducesLegalNonOverlappingPlacement(t *testing.T) {
	d := pipelineFixture()
	result, err := Run(d, Options{Config: config.Default()})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if result.RunID == "" {
		t.Fatal("expected a non-empty RunID")
	}
	a, b := d.Cells[0], d.Cells[1]
	overlapX := a.X < b.X+b.W && b.X < a.X+a.W
	overlapY := a.Y < b.Y+b.H && b.Y < a.Y+a.H
	if overlapX && overlapY {
		t.Fatalf("cells still overlap after Run: %+v, %+v", a, b)
	}
}

func TestRunAssignsVirtualPins(t *testing.T) {
	d := pipelineFixture()
	if _, err := Run(d, Options{Config: config.Default()}); err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if !d.Nets[0].VPin.Assigned {
		t.Fatal("expected the IO net to have an assigned virtual pin after Run")
	}
}

func TestRunRemovesInjectedProximityNets(t *testing.T) {
	d := pipelineFixture()
	d.ProxGroups = []db.ProximityGroup{{Cells: []int{0, 1}}}
	originalNets := len(d.Nets)
	if _, err := Run(d, Options{Config: config.Default()}); err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if len(d.Nets) != originalNets {
		t.Fatalf("got %d nets after Run, want %d (proximity nets should be removed)", len(d.Nets), originalNets)
	}
}

func TestRunRejectsInvalidDB(t *testing.T) {
	d := pipelineFixture()
	d.Pins[0].Cell = 99
	if _, err := Run(d, Options{Config: config.Default()}); err == nil {
		t.Fatal("expected an error for a DB referencing an unknown cell")
	}
}

func TestRunAppliesGridAlignmentWhenConfigured(t *testing.T) {
	d := pipelineFixture()
	cfg := config.Default()
	cfg.GridStep = 5
	if _, err := Run(d, Options{Config: cfg}); err != nil {
		t.Fatalf("Run error: %v", err)
	}
	for _, c := range d.Cells {
		if mod := int(c.X) % 5; mod != 0 {
			t.Fatalf("cell %q not grid-aligned: X=%v", c.Name, c.X)
		}
	}
}

func TestRunAssignsSelfSymmetricNetThroughFullPipeline(t *testing.T) {
	d := db.New(db.Boundary{XLo: 0, YLo: 0, XHi: 200, YHi: 200})
	d.Cells = []db.Cell{
		{Name: "a", W: 10, H: 10, X: 50, Y: 50, SymGroup: 0},
		{Name: "b", W: 10, H: 10, X: 120, Y: 50, SymGroup: 0},
		{Name: "c", W: 10, H: 10, X: 85, Y: 120, SymGroup: 0},
	}
	d.Pins = []db.Pin{
		{Cell: 0, IO: true},
		{Cell: 1, IO: true},
		{Cell: 2, IO: true},
	}
	d.SymGroups = []db.SymmetryGroup{{Pairs: [][2]int{{0, 1}}, Axis: 90}}
	d.Nets = []db.Net{
		{Pins: []int{0}, IO: true, SymPartner: 1, Primary: true, Weight: 1},
		{Pins: []int{1}, IO: true, SymPartner: 0, Primary: false, Weight: 1},
		{Pins: []int{2}, IO: true, SymPartner: -1, SelfSym: true, Weight: 1},
	}

	cfg := config.Default()
	cfg.GridStep = 10
	cfg.BoundaryExtension = 10
	cfg.VirtualPinInterval = 10
	if _, err := Run(d, Options{Config: cfg}); err != nil {
		t.Fatalf("Run error with a self-symmetric IO net and a configured grid step: %v", err)
	}
	if !d.Nets[2].VPin.Assigned {
		t.Fatal("expected the self-symmetric net to have an assigned virtual pin after Run")
	}
}

func TestRunEmptyDBSucceeds(t *testing.T) {
	d := db.New(db.Boundary{XHi: 10, YHi: 10})
	if _, err := Run(d, Options{Config: config.Default()}); err != nil {
		t.Fatalf("Run error on empty DB: %v", err)
	}
}
