package pinassign

import (
	"github.com/UTDA-group/IdeaPlaceEx/pkg/config"
	"github.com/UTDA-group/IdeaPlaceEx/pkg/db"
	"github.com/UTDA-group/IdeaPlaceEx/pkg/errors"
)

var errTooFewSites = errors.New(errors.ErrCodeInfeasible, "fewer virtual pin sites than nets to assign")

// Run generates ring sites, classifies every IO net, assigns each to a site
// (fast min-cost matching by default, or the exact ILP path when
// cfg.UseExactPinAssign is set), and writes the result back as d.Nets[i].VPin.
func Run(d *db.DB, cfg config.Config) error {
	if err := d.Validate(); err != nil {
		return err
	}
	cfg = cfg.WithDefaults()

	ringCfg := RingConfig{
		Extension:        cfg.BoundaryExtension,
		GridStep:         cfg.GridStep,
		Interval:         cfg.VirtualPinInterval,
		IncludeTopBottom: cfg.RingIncludeTopBottom,
	}
	sites, mirror := GenerateRing(d.Cells, ringCfg)
	if len(sites) == 0 {
		return nil
	}

	free, symPairs := classifyNets(d)

	var results []assignment
	var err error
	if cfg.UseExactPinAssign {
		results, err = exactAssign(d, sites, mirror, free, symPairs, cfg.GridStep)
	} else {
		results, err = fastAssign(d, sites, mirror, free, symPairs, cfg.GridStep)
	}
	if err != nil {
		return err
	}

	for _, r := range results {
		site := sites[r.site]
		d.Nets[r.net].VPin = db.VirtualPin{X: site.X, Y: site.Y, Dir: site.Dir, Assigned: true}
	}
	return nil
}
