package proximity

import (
	"testing"

	"github.com/UTDA-group/IdeaPlaceEx/pkg/config"
	"github.com/UTDA-group/IdeaPlaceEx/pkg/db"
)

func groupFixture() *db.DB {
	d := db.New(db.Boundary{XHi: 100, YHi: 100})
	d.Cells = []db.Cell{
		{Name: "a", W: 10, H: 10, X: 0, Y: 0},
		{Name: "b", W: 10, H: 10, X: 50, Y: 0},
		{Name: "c", W: 10, H: 10, X: 20, Y: 20},
	}
	d.Pins = []db.Pin{{Cell: 0, IO: true}}
	d.Nets = []db.Net{{Pins: []int{0}, IO: true, SymPartner: -1}}
	d.ProxGroups = []db.ProximityGroup{{Cells: []int{0, 1}}}
	return d
}

func TestInjectAddsOneNetPerGroup(t *testing.T) {
	d := groupFixture()
	inj := Inject(d, config.Default())
	if len(inj.NetIdx) != 1 {
		t.Fatalf("got %d injected nets, want 1", len(inj.NetIdx))
	}
	if len(d.Nets) != 2 {
		t.Fatalf("got %d total nets, want 2 (1 original + 1 injected)", len(d.Nets))
	}
	injNet := d.Nets[inj.NetIdx[0]]
	if len(injNet.Pins) != 2 {
		t.Fatalf("injected net has %d pins, want 2 (one per group member)", len(injNet.Pins))
	}
	if injNet.Weight != config.Default().ProximityWeight {
		t.Fatalf("injected net weight = %v, want %v", injNet.Weight, config.Default().ProximityWeight)
	}
}

func TestInjectPinsSitAtCellCenter(t *testing.T) {
	d := groupFixture()
	inj := Inject(d, config.Default())
	for _, pinIdx := range inj.PinIdx {
		p := d.Pins[pinIdx]
		c := d.Cells[p.Cell]
		if p.OffX != c.W/2 || p.OffY != c.H/2 {
			t.Fatalf("injected pin offset (%v,%v), want cell center (%v,%v)", p.OffX, p.OffY, c.W/2, c.H/2)
		}
	}
}

func TestInjectSkipsSingleCellGroup(t *testing.T) {
	d := groupFixture()
	d.ProxGroups = []db.ProximityGroup{{Cells: []int{0}}}
	inj := Inject(d, config.Default())
	if len(inj.NetIdx) != 0 {
		t.Fatalf("got %d injected nets for a single-cell group, want 0", len(inj.NetIdx))
	}
}

func TestRemoveRestoresOriginalDB(t *testing.T) {
	d := groupFixture()
	originalNets := len(d.Nets)
	originalPins := len(d.Pins)

	inj := Inject(d, config.Default())
	Remove(d, inj)

	if len(d.Nets) != originalNets {
		t.Fatalf("got %d nets after Remove, want %d (back to original)", len(d.Nets), originalNets)
	}
	if len(d.Pins) != originalPins {
		t.Fatalf("got %d pins after Remove, want %d (back to original)", len(d.Pins), originalPins)
	}
	if d.Nets[0].Pins[0] != 0 || d.Pins[0].Cell != 0 {
		t.Fatal("original net/pin data was corrupted by inject+remove")
	}
}

func TestRemoveHandlesMultipleGroups(t *testing.T) {
	d := groupFixture()
	d.ProxGroups = []db.ProximityGroup{{Cells: []int{0, 1}}, {Cells: []int{1, 2}}}
	originalNets := len(d.Nets)
	originalPins := len(d.Pins)

	inj := Inject(d, config.Default())
	if len(inj.NetIdx) != 2 {
		t.Fatalf("got %d injected nets, want 2", len(inj.NetIdx))
	}
	Remove(d, inj)
	if len(d.Nets) != originalNets || len(d.Pins) != originalPins {
		t.Fatalf("DB not restored: nets %d (want %d), pins %d (want %d)",
			len(d.Nets), originalNets, len(d.Pins), originalPins)
	}
}
