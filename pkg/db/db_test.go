package db

import "testing"

func twoCellDB() *DB {
	d := New(Boundary{0, 0, 100, 100})
	d.Cells = []Cell{
		{Name: "A", W: 10, H: 10, X: 0, Y: 0, SymGroup: -1},
		{Name: "B", W: 10, H: 10, X: 20, Y: 0, SymGroup: -1},
	}
	d.Pins = []Pin{
		{Cell: 0, OffX: 5, OffY: 5},
		{Cell: 1, OffX: 5, OffY: 5},
	}
	d.Nets = []Net{{Pins: []int{0, 1}, Weight: 1, SymPartner: -1}}
	return d
}

func TestPinLocAndHPWL(t *testing.T) {
	d := twoCellDB()
	x, y := d.PinLoc(0)
	if x != 5 || y != 5 {
		t.Fatalf("PinLoc(0) = (%v,%v), want (5,5)", x, y)
	}
	if got := d.HPWL(0); got != 20 {
		t.Fatalf("HPWL = %v, want 20", got)
	}
}

func TestValidateCatchesUnknownRefs(t *testing.T) {
	d := twoCellDB()
	d.Pins[0].Cell = 5
	if err := d.Validate(); err == nil {
		t.Fatal("expected error for unknown cell reference")
	}
}

func TestValidateEmptyNet(t *testing.T) {
	d := twoCellDB()
	d.Nets = append(d.Nets, Net{Pins: nil, SymPartner: -1})
	if err := d.Validate(); err == nil {
		t.Fatal("expected error for empty net")
	}
}

func TestValidateNonReciprocalSymPartner(t *testing.T) {
	d := twoCellDB()
	d.Nets = append(d.Nets, Net{Pins: []int{0}, SymPartner: 0})
	d.Nets[0].SymPartner = -1 // net 0 does not point back at net 1
	if err := d.Validate(); err == nil {
		t.Fatal("expected error for non-reciprocal symmetric partner")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	d := twoCellDB()
	cp := d.Clone()
	cp.Cells[0].X = 999
	if d.Cells[0].X == 999 {
		t.Fatal("Clone shares cell storage with original")
	}
}

func TestValidateEmptyDB(t *testing.T) {
	d := New(Boundary{0, 0, 0, 0})
	if err := d.Validate(); err != nil {
		t.Fatalf("empty DB should validate: %v", err)
	}
}
