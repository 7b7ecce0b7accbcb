// Package pinassign implements the virtual-pin assigner (component C6):
// it rings the placed cells with candidate pin sites, classifies nets by
// their symmetry role, and assigns each IO net to a site by minimizing
// HPWL increase - via a fast min-cost bipartite matching or an exact LP
// formulation.
package pinassign

import (
	"math"

	"github.com/UTDA-group/IdeaPlaceEx/pkg/db"
)

// Site is one candidate virtual-pin location on the placement ring.
type Site struct {
	X, Y float64
	Dir  db.Direction
}

// RingConfig controls ring-site generation (Section 4.5 step 1-2).
type RingConfig struct {
	Extension  float64
	GridStep   float64 // 0 disables grid snapping
	Interval   float64
	// IncludeTopBottom resolves the specification's open question about
	// the original source's unconditional `continue` that silently
	// disabled north/south ring sites: set false to reproduce that
	// behavior, true (the default) to host pins on all four edges.
	IncludeTopBottom bool
}

// GenerateRing lays out sites around the bounding box of cells, expanded by
// cfg.Extension and, if cfg.GridStep > 0, padded outward to a grid multiple.
// It returns the sites and a left-site-index -> right-site-index mirror map
// for every west site with a matching east site at the same y (used by
// sym-pair assignment to consume sites in mirrored pairs).
func GenerateRing(cells []db.Cell, cfg RingConfig) ([]Site, map[int]int) {
	xlo, ylo, xhi, yhi := boundingBox(cells)
	xlo -= cfg.Extension
	ylo -= cfg.Extension
	xhi += cfg.Extension
	yhi += cfg.Extension

	interval := cfg.Interval
	if interval <= 0 {
		interval = 1
	}
	if cfg.GridStep > 0 {
		// Center and pad symmetrically on X so the ring stays centered on
		// the cells' x-center once snapped to the grid; Y is not centered,
		// just floored/ceiled to the grid, matching the original assigner's
		// VirtualPinAssigner::reconfigureVirtualPinLocations.
		center := math.Floor((xlo + xhi) / 2)
		targetCenter := math.Floor(center/cfg.GridStep)*cfg.GridStep + cfg.GridStep/2
		targetWidth := math.Max(xhi-targetCenter, targetCenter-xlo)
		targetWidth += cfg.GridStep - math.Mod(targetWidth, cfg.GridStep)
		xlo = targetCenter - targetWidth
		xhi = targetCenter + targetWidth
		ylo = math.Floor(ylo/cfg.GridStep) * cfg.GridStep
		yhi = math.Ceil(yhi/cfg.GridStep) * cfg.GridStep
		interval = lcm(interval, cfg.GridStep)
	}

	var sites []Site
	var westIdx, eastIdx []int

	for y := ylo; y <= yhi; y += interval {
		westIdx = append(westIdx, len(sites))
		sites = append(sites, Site{X: xlo, Y: y, Dir: db.West})
		eastIdx = append(eastIdx, len(sites))
		sites = append(sites, Site{X: xhi, Y: y, Dir: db.East})
	}
	if cfg.IncludeTopBottom {
		for x := xlo; x <= xhi; x += interval {
			sites = append(sites, Site{X: x, Y: ylo, Dir: db.South})
			sites = append(sites, Site{X: x, Y: yhi, Dir: db.North})
		}
	}

	mirror := make(map[int]int, len(westIdx))
	for k := range westIdx {
		mirror[westIdx[k]] = eastIdx[k]
	}
	return sites, mirror
}

func boundingBox(cells []db.Cell) (xlo, ylo, xhi, yhi float64) {
	if len(cells) == 0 {
		return 0, 0, 0, 0
	}
	xlo, ylo = cells[0].X, cells[0].Y
	xhi, yhi = cells[0].X+cells[0].W, cells[0].Y+cells[0].H
	for _, c := range cells[1:] {
		if c.X < xlo {
			xlo = c.X
		}
		if c.Y < ylo {
			ylo = c.Y
		}
		if c.X+c.W > xhi {
			xhi = c.X + c.W
		}
		if c.Y+c.H > yhi {
			yhi = c.Y + c.H
		}
	}
	return
}

func gcd(a, b float64) float64 {
	ai, bi := int64(math.Round(a)), int64(math.Round(b))
	for bi != 0 {
		ai, bi = bi, ai%bi
	}
	if ai < 0 {
		ai = -ai
	}
	return float64(ai)
}

func lcm(a, b float64) float64 {
	g := gcd(a, b)
	if g == 0 {
		return a
	}
	return a * b / g
}
