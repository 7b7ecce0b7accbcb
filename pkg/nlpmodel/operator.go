package nlpmodel

import "gonum.org/v1/gonum/floats"

// Operator is a single penalty family: wirelength, overlap,
// out-of-boundary, asymmetry, or signal cosine alignment. It stores only
// local indices into the shared coordinate vector p and publishes its
// contribution to the global gradient by scatter-add into grad, per the
// specification's contract for component C2.
type Operator interface {
	// Value returns the operator's (weighted) contribution to the
	// objective at p.
	Value(p []float64) float64

	// AddGradient accumulates d(Value)/dp into grad (same length as p).
	AddGradient(p []float64, grad []float64)

	// Alpha returns the operator's current smoothing parameter, so the
	// outer loop can read and retune it between inner solves.
	Alpha() float64

	// SetAlpha updates the smoothing parameter.
	SetAlpha(alpha float64)

	// Name identifies the penalty family for multiplier bookkeeping
	// ("hpwl", "ovl", "oob", "asym", "cos").
	Name() string
}

// Set evaluates and accumulates gradients across a collection of operators,
// each scaled by its current multiplier lambda.
type Set struct {
	Layout    Layout
	Operators []Operator
	Lambda    map[string]float64
}

// Value returns the weighted sum of every operator's value at p.
func (s *Set) Value(p []float64) float64 {
	total := 0.0
	for _, op := range s.Operators {
		total += s.Lambda[op.Name()] * op.Value(p)
	}
	return total
}

// Gradient returns the weighted sum of every operator's gradient at p.
func (s *Set) Gradient(p []float64) []float64 {
	grad := make([]float64, len(p))
	s.AddGradient(p, grad)
	return grad
}

// AddGradient accumulates the weighted gradient of every operator into
// grad, scattering into the caller-owned buffer.
func (s *Set) AddGradient(p []float64, grad []float64) {
	for _, op := range s.Operators {
		lambda := s.Lambda[op.Name()]
		if lambda == 0 {
			continue
		}
		scratch := make([]float64, len(p))
		op.AddGradient(p, scratch)
		floats.AddScaled(grad, lambda, scratch)
	}
}

// ValuesByName returns each operator's unweighted value at p, grouped by
// name (operators sharing a name, e.g. several HPWL instances, sum).
func (s *Set) ValuesByName(p []float64) map[string]float64 {
	out := make(map[string]float64)
	for _, op := range s.Operators {
		out[op.Name()] += op.Value(p)
	}
	return out
}

// GradientNorms returns the L2 norm of each named penalty family's
// unweighted gradient at p, used by the outer loop to initialize
// multipliers by matching gradient magnitudes (Section 4.3).
func (s *Set) GradientNorms(p []float64) map[string]float64 {
	sums := make(map[string][]float64)
	for _, op := range s.Operators {
		if _, ok := sums[op.Name()]; !ok {
			sums[op.Name()] = make([]float64, len(p))
		}
		op.AddGradient(p, sums[op.Name()])
	}
	norms := make(map[string]float64)
	for name, grad := range sums {
		norms[name] = floats.Norm(grad, 2)
	}
	return norms
}
