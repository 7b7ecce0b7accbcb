// Package config defines the tunable constants of the placement pipeline
// and loads them from a TOML manifest, following the same "struct with
// defaults, overlay from file" shape as the teacher's dependency manifest
// readers (pkg/deps/python/poetry.go, pkg/deps/rust/cargo.go).
//
// # Two parameter tables
//
// The original source this system was distilled from carried two copies of
// its parameter file with divergent constants. This package keeps exactly
// one: Default returns the larger, more recent table, matching the
// specification's resolution of that discrepancy.
package config

import "github.com/BurntSushi/toml"

// Config carries every tunable constant referenced by the placement
// pipeline: initial penalty multipliers, violation thresholds, the
// smoothing schedule target, grid/ring geometry, and backend knobs.
type Config struct {
	// Initial penalty multipliers (Section 6).
	LambdaHPWLInit   float64 `toml:"lambda_hpwl_init"`
	LambdaOvlInit    float64 `toml:"lambda_ovl_init"`
	LambdaOOBInit    float64 `toml:"lambda_oob_init"`
	LambdaAsymInit   float64 `toml:"lambda_asym_init"`
	LambdaMaxOvlInit float64 `toml:"lambda_maxovl_init"`
	LambdaCosInit    float64 `toml:"lambda_cos_init"`
	LambdaMax        float64 `toml:"lambda_max"`

	// Penalty-to-objective ratio used to initialize varied multipliers
	// (Section 4.3).
	PenaltyRatio float64 `toml:"penalty_ratio"`
	// Subgradient step size for the per-iteration multiplier update.
	MultiplierStep float64 `toml:"multiplier_step"`

	// Violation thresholds that define the outer loop's stop condition.
	OvlThreshold  float64 `toml:"ovl_threshold"`
	OOBThreshold  float64 `toml:"oob_threshold"`
	AsymThreshold float64 `toml:"asym_threshold"`

	// Smoothing schedule.
	AlphaMin    float64 `toml:"alpha_min"`
	AlphaMax    float64 `toml:"alpha_max"`
	AlphaTarget float64 `toml:"alpha_decay_target"`

	// Outer/inner loop bounds.
	MaxOuterIter int `toml:"max_outer_iter"`
	MaxInnerIter int `toml:"max_inner_iter"`

	// Legalization.
	WhiteSpaceRatio float64 `toml:"whitespace_ratio"`
	NumLPThreads    int     `toml:"num_lp_threads"`

	// Virtual pin assignment.
	VirtualPinInterval  float64 `toml:"virtual_pin_interval"`
	BoundaryExtension   float64 `toml:"boundary_extension"`
	UseExactPinAssign   bool    `toml:"use_exact_pin_assign"`
	RingIncludeTopBottom bool   `toml:"ring_include_top_bottom"`

	// Grid alignment. Zero means "no grid alignment pass."
	GridStep float64 `toml:"grid_step"`

	// ProximityWeight is the net weight given to the synthetic nets C7
	// injects for a proximity group, chosen well above any real net weight
	// so global placement pulls those cells together first.
	ProximityWeight float64 `toml:"proximity_weight"`

	// ToughMode doubles the initial multipliers and raises the outer
	// iteration cap (Section 4.3). Set by the driver on legalization
	// retry; also settable directly for a deliberately conservative run.
	ToughMode bool `toml:"tough_mode"`
}

// Default returns the authoritative constant table from spec Section 6.
func Default() Config {
	return Config{
		LambdaHPWLInit:   32,
		LambdaOvlInit:    4,
		LambdaOOBInit:    1,
		LambdaAsymInit:   16,
		LambdaMaxOvlInit: 5000,
		LambdaCosInit:    0,
		LambdaMax:        2048,

		PenaltyRatio:   1.0,
		MultiplierStep: 0.1,

		OvlThreshold:  0.08,
		OOBThreshold:  0.05,
		AsymThreshold: 0.5,

		AlphaMin:    1e-3,
		AlphaMax:    1.0,
		AlphaTarget: 0.05,

		MaxOuterIter: 20,
		MaxInnerIter: 200,

		WhiteSpaceRatio: 0.2,
		NumLPThreads:    1,

		VirtualPinInterval:   1000,
		BoundaryExtension:    1000,
		UseExactPinAssign:    false,
		RingIncludeTopBottom: true,

		GridStep: 0,

		ProximityWeight: 100,

		ToughMode: false,
	}
}

// WithDefaults returns a copy of c with every zero-valued field replaced by
// the corresponding Default() value. Booleans are never defaulted this way
// (a false ToughMode or UseExactPinAssign is a meaningful, explicit value),
// matching the teacher's pipeline.Options.SetLayoutDefaults pattern of only
// filling numeric/string zero values.
func (c Config) WithDefaults() Config {
	d := Default()
	if c.LambdaHPWLInit == 0 {
		c.LambdaHPWLInit = d.LambdaHPWLInit
	}
	if c.LambdaOvlInit == 0 {
		c.LambdaOvlInit = d.LambdaOvlInit
	}
	if c.LambdaOOBInit == 0 {
		c.LambdaOOBInit = d.LambdaOOBInit
	}
	if c.LambdaAsymInit == 0 {
		c.LambdaAsymInit = d.LambdaAsymInit
	}
	if c.LambdaMaxOvlInit == 0 {
		c.LambdaMaxOvlInit = d.LambdaMaxOvlInit
	}
	if c.LambdaMax == 0 {
		c.LambdaMax = d.LambdaMax
	}
	if c.PenaltyRatio == 0 {
		c.PenaltyRatio = d.PenaltyRatio
	}
	if c.MultiplierStep == 0 {
		c.MultiplierStep = d.MultiplierStep
	}
	if c.OvlThreshold == 0 {
		c.OvlThreshold = d.OvlThreshold
	}
	if c.OOBThreshold == 0 {
		c.OOBThreshold = d.OOBThreshold
	}
	if c.AsymThreshold == 0 {
		c.AsymThreshold = d.AsymThreshold
	}
	if c.AlphaMin == 0 {
		c.AlphaMin = d.AlphaMin
	}
	if c.AlphaMax == 0 {
		c.AlphaMax = d.AlphaMax
	}
	if c.AlphaTarget == 0 {
		c.AlphaTarget = d.AlphaTarget
	}
	if c.MaxOuterIter == 0 {
		c.MaxOuterIter = d.MaxOuterIter
	}
	if c.MaxInnerIter == 0 {
		c.MaxInnerIter = d.MaxInnerIter
	}
	if c.WhiteSpaceRatio == 0 {
		c.WhiteSpaceRatio = d.WhiteSpaceRatio
	}
	if c.NumLPThreads == 0 {
		c.NumLPThreads = d.NumLPThreads
	}
	if c.VirtualPinInterval == 0 {
		c.VirtualPinInterval = d.VirtualPinInterval
	}
	if c.BoundaryExtension == 0 {
		c.BoundaryExtension = d.BoundaryExtension
	}
	if c.ProximityWeight == 0 {
		c.ProximityWeight = d.ProximityWeight
	}
	return c
}

// Tough returns a copy of c configured for a tough-mode retry: doubled
// initial multipliers and a raised outer iteration cap, per Section 4.3.
func (c Config) Tough() Config {
	t := c
	t.ToughMode = true
	t.LambdaHPWLInit *= 2
	t.LambdaOvlInit *= 2
	t.LambdaOOBInit *= 2
	t.LambdaAsymInit *= 2
	t.MaxOuterIter *= 2
	return t
}

// Load reads a TOML manifest at path and overlays it onto Default().
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg.WithDefaults(), nil
}
