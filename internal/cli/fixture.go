package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/UTDA-group/IdeaPlaceEx/pkg/db"
)

// fixture is the small JSON layout the place/legalize/pinassign commands
// accept, purely so the CLI is runnable end to end without a technology
// file parser. It is a demo/test convenience, not the production input
// format: pkg/db documents that real callers build db.DB directly.
type fixture struct {
	Boundary struct {
		XLo float64 `json:"xlo"`
		YLo float64 `json:"ylo"`
		XHi float64 `json:"xhi"`
		YHi float64 `json:"yhi"`
	} `json:"boundary"`
	Cells []struct {
		Name     string  `json:"name"`
		W        float64 `json:"w"`
		H        float64 `json:"h"`
		X        float64 `json:"x"`
		Y        float64 `json:"y"`
		Fixed    bool    `json:"fixed"`
		SymGroup int     `json:"sym_group"`
	} `json:"cells"`
	Pins []struct {
		Cell int     `json:"cell"`
		OffX float64 `json:"off_x"`
		OffY float64 `json:"off_y"`
		W    float64 `json:"w"`
		H    float64 `json:"h"`
		IO   bool    `json:"io"`
	} `json:"pins"`
	Nets []struct {
		Pins       []int   `json:"pins"`
		Weight     float64 `json:"weight"`
		SymPartner int     `json:"sym_partner"`
		Primary    bool    `json:"primary"`
		SelfSym    bool    `json:"self_sym"`
		IO         bool    `json:"io"`
	} `json:"nets"`
	SymGroups []struct {
		Pairs    [][2]int `json:"pairs"`
		SelfSyms []int    `json:"self_syms"`
		Axis     float64  `json:"axis"`
	} `json:"sym_groups"`
	ProxGroups [][]int `json:"prox_groups"`
}

// loadFixture reads path and converts it into a db.DB, returning the raw
// bytes too so the caller can hash them for cache keys. A cell with no
// symmetry group, or a net with no symmetric partner, must set sym_group
// or sym_partner to -1 explicitly: JSON's zero default is 0, which is a
// valid group/net index.

func loadFixture(path string) (*db.DB, []byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read fixture: %w", err)
	}

	var f fixture
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, nil, fmt.Errorf("parse fixture: %w", err)
	}

	d := db.New(db.Boundary{
		XLo: f.Boundary.XLo, YLo: f.Boundary.YLo,
		XHi: f.Boundary.XHi, YHi: f.Boundary.YHi,
	})

	for _, c := range f.Cells {
		d.Cells = append(d.Cells, db.Cell{
			Name: c.Name, W: c.W, H: c.H, X: c.X, Y: c.Y,
			Fixed: c.Fixed, SymGroup: c.SymGroup,
		})
	}
	for _, p := range f.Pins {
		d.Pins = append(d.Pins, db.Pin{
			Cell: p.Cell, OffX: p.OffX, OffY: p.OffY, W: p.W, H: p.H, IO: p.IO,
		})
	}
	for _, n := range f.Nets {
		d.Nets = append(d.Nets, db.Net{
			Pins: n.Pins, Weight: n.Weight, SymPartner: n.SymPartner,
			Primary: n.Primary, SelfSym: n.SelfSym, IO: n.IO,
		})
	}
	for _, g := range f.SymGroups {
		d.SymGroups = append(d.SymGroups, db.SymmetryGroup{
			Pairs: g.Pairs, SelfSyms: g.SelfSyms, Axis: g.Axis,
		})
	}
	for _, cells := range f.ProxGroups {
		d.ProxGroups = append(d.ProxGroups, db.ProximityGroup{Cells: cells})
	}

	return d, raw, nil
}
