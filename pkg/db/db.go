// Package db is the read-mostly placement database view (component C1):
// cells, pins, nets, symmetry and proximity groups, and the mutable cell
// coordinates the rest of the pipeline writes back.
//
// The DB is constructed by callers (in production, by file parsers that are
// out of scope for this module; in tests, directly in Go). It is mutated
// only at the handoff points the specification names: end of global
// placement, end of legalization, end of pin assignment, and by the
// proximity manager and grid aligner.
package db

import "github.com/UTDA-group/IdeaPlaceEx/pkg/errors"

// Cell is a rectangular placement block.
type Cell struct {
	Name  string
	W, H  float64
	X, Y  float64
	Fixed bool

	// SymGroup is the index into DB.SymGroups this cell belongs to, or -1.
	SymGroup int
}

// CenterX returns the cell's current horizontal center.
func (c Cell) CenterX() float64 { return c.X + c.W/2 }

// CenterY returns the cell's current vertical center.
func (c Cell) CenterY() float64 { return c.Y + c.H/2 }

// Pin belongs to exactly one cell and is stored as an offset rectangle
// inside that cell.
type Pin struct {
	Cell       int
	OffX, OffY float64
	W, H       float64
	IO         bool
}

// VirtualPin is the assigned ring location for an IO net, written by the
// pin assigner (C6).
type VirtualPin struct {
	X, Y      float64
	Dir       Direction
	Assigned  bool
}

// Direction is a compass direction on the placement ring.
type Direction int

const (
	North Direction = iota
	South
	East
	West
)

func (d Direction) String() string {
	switch d {
	case North:
		return "N"
	case South:
		return "S"
	case East:
		return "E"
	case West:
		return "W"
	default:
		return "?"
	}
}

// Net is an ordered list of pin indices with placement attributes.
type Net struct {
	Pins   []int
	Weight float64

	// SymPartner is the index of this net's symmetric partner, or -1.
	SymPartner int
	// Primary is true for exactly one of a symmetric pair; the primary
	// member drives pin-assignment's "sym-pair" classification.
	Primary bool
	// SelfSym marks a net that is symmetric with itself (its own pins
	// must sit on the symmetry axis).
	SelfSym bool
	IO      bool

	VPin VirtualPin
}

// SymmetryGroup is a set of cell pairs and self-symmetric cells sharing one
// vertical symmetry axis x = Axis.
type SymmetryGroup struct {
	Pairs    [][2]int // cell index pairs (A, B)
	SelfSyms []int    // self-symmetric cell indices
	Axis     float64
}

// ProximityGroup is a set of cells that should be placed close together.
type ProximityGroup struct {
	Cells []int
}

// Boundary is the placement region.
type Boundary struct {
	XLo, YLo, XHi, YHi float64
}

func (b Boundary) Width() float64  { return b.XHi - b.XLo }
func (b Boundary) Height() float64 { return b.YHi - b.YLo }
func (b Boundary) Area() float64   { return b.Width() * b.Height() }

// DB is the placement database: the full set of collaborators the
// specification lists as inputs, plus the mutable coordinates the pipeline
// writes back as outputs.
type DB struct {
	Cells      []Cell
	Pins       []Pin
	Nets       []Net
	SymGroups  []SymmetryGroup
	ProxGroups []ProximityGroup
	Boundary   Boundary
}

// New returns an empty DB with the given boundary.
func New(boundary Boundary) *DB {
	return &DB{Boundary: boundary}
}

// PinLoc returns the absolute location of pin idx: the owning cell's
// lower-left plus the pin's offset.
func (d *DB) PinLoc(idx int) (x, y float64) {
	p := d.Pins[idx]
	c := d.Cells[p.Cell]
	return c.X + p.OffX, c.Y + p.OffY
}

// NetBBox returns the bounding box of a net's pins in their current
// location.
func (d *DB) NetBBox(netIdx int) (xlo, ylo, xhi, yhi float64) {
	net := d.Nets[netIdx]
	if len(net.Pins) == 0 {
		return 0, 0, 0, 0
	}
	x0, y0 := d.PinLoc(net.Pins[0])
	xlo, xhi = x0, x0
	ylo, yhi = y0, y0
	for _, p := range net.Pins[1:] {
		x, y := d.PinLoc(p)
		if x < xlo {
			xlo = x
		}
		if x > xhi {
			xhi = x
		}
		if y < ylo {
			ylo = y
		}
		if y > yhi {
			yhi = y
		}
	}
	return
}

// HPWL returns the half-perimeter wirelength of a net at its current
// location, ignoring smoothing - this is the exact (non-differentiable)
// metric used for reporting and for the legalizer's second LP objective.
func (d *DB) HPWL(netIdx int) float64 {
	xlo, ylo, xhi, yhi := d.NetBBox(netIdx)
	return (xhi - xlo) + (yhi - ylo)
}

// TotalHPWL sums weighted HPWL over all nets.
func (d *DB) TotalHPWL() float64 {
	total := 0.0
	for i, n := range d.Nets {
		w := n.Weight
		if w == 0 {
			w = 1
		}
		total += w * d.HPWL(i)
	}
	return total
}

// TotalCellArea sums the area of all cells.
func (d *DB) TotalCellArea() float64 {
	total := 0.0
	for _, c := range d.Cells {
		total += c.W * c.H
	}
	return total
}

// Clone returns a deep copy of the DB, safe for independent mutation
// (used by the driver when trying tough-mode retries without corrupting
// the caller's original DB).
func (d *DB) Clone() *DB {
	cp := &DB{
		Cells:      append([]Cell(nil), d.Cells...),
		Pins:       append([]Pin(nil), d.Pins...),
		Nets:       make([]Net, len(d.Nets)),
		ProxGroups: make([]ProximityGroup, len(d.ProxGroups)),
		Boundary:   d.Boundary,
	}
	for i, n := range d.Nets {
		cp.Nets[i] = n
		cp.Nets[i].Pins = append([]int(nil), n.Pins...)
	}
	cp.SymGroups = make([]SymmetryGroup, len(d.SymGroups))
	for i, g := range d.SymGroups {
		cp.SymGroups[i] = SymmetryGroup{
			Pairs:    append([][2]int(nil), g.Pairs...),
			SelfSyms: append([]int(nil), g.SelfSyms...),
			Axis:     g.Axis,
		}
	}
	for i, g := range d.ProxGroups {
		cp.ProxGroups[i] = ProximityGroup{Cells: append([]int(nil), g.Cells...)}
	}
	return cp
}

// Validate checks structural integrity: every pin references an existing
// cell, every net references existing pins, every symmetry pair/self-sym
// references existing cells, and every symmetric-partner index is
// reciprocal and in range. It never validates geometry (overlap,
// out-of-boundary) - that is the solver's job, not an input error.
func (d *DB) Validate() error {
	for i, p := range d.Pins {
		if p.Cell < 0 || p.Cell >= len(d.Cells) {
			return errors.New(errors.ErrCodeInputInvalid, "pin %d references unknown cell %d", i, p.Cell)
		}
	}
	for i, n := range d.Nets {
		if len(n.Pins) == 0 {
			return errors.New(errors.ErrCodeInputInvalid, "net %d has no pins", i)
		}
		for _, p := range n.Pins {
			if p < 0 || p >= len(d.Pins) {
				return errors.New(errors.ErrCodeInputInvalid, "net %d references unknown pin %d", i, p)
			}
		}
		if n.SymPartner >= len(d.Nets) {
			return errors.New(errors.ErrCodeInputInvalid, "net %d references unknown symmetric partner %d", i, n.SymPartner)
		}
		if n.SymPartner >= 0 {
			partner := d.Nets[n.SymPartner]
			if partner.SymPartner != i {
				return errors.New(errors.ErrCodeInputInvalid, "net %d and %d are not reciprocally symmetric", i, n.SymPartner)
			}
		}
	}
	for gi, g := range d.SymGroups {
		for _, pair := range g.Pairs {
			for _, c := range pair {
				if c < 0 || c >= len(d.Cells) {
					return errors.New(errors.ErrCodeInputInvalid, "symmetry group %d references unknown cell %d", gi, c)
				}
			}
		}
		for _, c := range g.SelfSyms {
			if c < 0 || c >= len(d.Cells) {
				return errors.New(errors.ErrCodeInputInvalid, "symmetry group %d references unknown self-sym cell %d", gi, c)
			}
		}
	}
	for gi, g := range d.ProxGroups {
		for _, c := range g.Cells {
			if c < 0 || c >= len(d.Cells) {
				return errors.New(errors.ErrCodeInputInvalid, "proximity group %d references unknown cell %d", gi, c)
			}
		}
	}
	return nil
}
