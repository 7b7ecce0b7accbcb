// Package optim implements the first-order inner solver (component C3):
// plain gradient descent and Adam, each driven by a composable list of
// convergence predicates rather than a single hardcoded stop rule.
package optim

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// GradFunc evaluates an objective and its gradient at p. Implementations
// (pkg/nlpmodel.Set) own p's layout; the optimizer only ever sees a flat
// vector and never dereferences it beyond Value/Gradient.
type GradFunc interface {
	Value(p []float64) float64
	Gradient(p []float64) []float64
}

// Predicate decides whether an inner solve should stop after iteration n,
// having gone from previous to current objective value. Predicates are
// combined with Stop, mirroring the trait/policy composition the outer
// loop also uses for multiplier and alpha updates: a uniform interface,
// held as a slice of values rather than a class hierarchy.
type Predicate func(iter int, previous, current float64) bool

// MaxIterations stops once iter reaches n.
func MaxIterations(n int) Predicate {
	return func(iter int, previous, current float64) bool {
		return iter >= n
	}
}

// RelativeImprovement stops when the fractional decrease in objective
// value falls below tol. Guards against a zero previous value, which
// would otherwise divide by zero on a perfectly-flat start.
func RelativeImprovement(tol float64) Predicate {
	return func(iter int, previous, current float64) bool {
		if previous == 0 {
			return current == 0
		}
		return math.Abs(previous-current)/math.Abs(previous) < tol
	}
}

// StopFlag stops as soon as flag reports true, implementing the
// cooperative-cancellation hook: the caller can poll an external signal
// between inner iterations without the optimizer importing context.
func StopFlag(flag func() bool) Predicate {
	return func(iter int, previous, current float64) bool {
		return flag()
	}
}

// Stop reports whether any predicate in preds asserts stop.
func Stop(preds []Predicate, iter int, previous, current float64) bool {
	for _, pred := range preds {
		if pred(iter, previous, current) {
			return true
		}
	}
	return false
}

// GradientDescent runs naive fixed-step gradient descent: p <- p - eta*grad.
// It mutates p in place and returns the number of iterations run and the
// final objective value.
func GradientDescent(f GradFunc, p []float64, eta float64, preds []Predicate) (iters int, final float64) {
	previous := f.Value(p)
	final = previous
	for iter := 0; ; iter++ {
		grad := f.Gradient(p)
		floats.AddScaled(p, -eta, grad)
		current := f.Value(p)
		iters = iter + 1
		if Stop(preds, iters, previous, current) {
			final = current
			return
		}
		previous = current
		final = current
	}
}

// AdamConfig holds Adam's hyperparameters. Defaults match Section 4.2:
// beta1=0.9, beta2=0.999, eps=1e-8, alpha (step size)=1e-3.
type AdamConfig struct {
	Alpha float64
	Beta1 float64
	Beta2 float64
	Eps   float64
}

// DefaultAdamConfig returns the spec's standard Adam hyperparameters.
func DefaultAdamConfig() AdamConfig {
	return AdamConfig{Alpha: 1e-3, Beta1: 0.9, Beta2: 0.999, Eps: 1e-8}
}

// Adam runs the bias-corrected Adam update until a predicate stops it,
// mutating p in place and returning the number of iterations run and the
// final objective value.
func Adam(f GradFunc, p []float64, cfg AdamConfig, preds []Predicate) (iters int, final float64) {
	m := make([]float64, len(p))
	v := make([]float64, len(p))
	gradSq := make([]float64, len(p))
	previous := f.Value(p)
	final = previous
	for iter := 0; ; iter++ {
		t := float64(iter + 1)
		grad := f.Gradient(p)
		floats.Scale(cfg.Beta1, m)
		floats.AddScaled(m, 1-cfg.Beta1, grad)
		floats.MulTo(gradSq, grad, grad)
		floats.Scale(cfg.Beta2, v)
		floats.AddScaled(v, 1-cfg.Beta2, gradSq)
		for i := range p {
			mHat := m[i] / (1 - math.Pow(cfg.Beta1, t))
			vHat := v[i] / (1 - math.Pow(cfg.Beta2, t))
			p[i] -= cfg.Alpha * mHat / (math.Sqrt(vHat) + cfg.Eps)
		}
		current := f.Value(p)
		iters = iter + 1
		if Stop(preds, iters, previous, current) {
			final = current
			return
		}
		previous = current
		final = current
	}
}
