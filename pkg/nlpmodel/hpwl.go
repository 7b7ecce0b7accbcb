package nlpmodel

// PinRef locates one net pin in the coordinate vector: the owning cell's
// index plus the pin's fixed offset inside that cell. Offsets are
// constants (not optimization variables), so the operator's gradient
// scatters straight into the owning cell's x/y slot.
type PinRef struct {
	Cell       int
	OffX, OffY float64
}

// HPWLOperator smooths a single net's half-perimeter wirelength via
// log-sum-exp, per Section 4.1:
//
//	hpwl_net = alpha*(log(sum(exp(x/alpha))) + log(sum(exp(-x/alpha)))) + same for y
//
// scaled by the net's own weight (the lambda_hpwl multiplier is applied at
// the Set level, not here).
type HPWLOperator struct {
	layout Layout
	pins   []PinRef
	weight float64
	alpha  float64
}

// NewHPWLOperator builds an HPWL operator over one net's pins.
func NewHPWLOperator(layout Layout, pins []PinRef, weight, alpha float64) *HPWLOperator {
	return &HPWLOperator{layout: layout, pins: pins, weight: weight, alpha: alpha}
}

func (op *HPWLOperator) Name() string     { return "hpwl" }
func (op *HPWLOperator) Alpha() float64   { return op.alpha }
func (op *HPWLOperator) SetAlpha(a float64) { op.alpha = a }

func (op *HPWLOperator) pinCoords(p []float64) (xs, ys []float64) {
	xs = make([]float64, len(op.pins))
	ys = make([]float64, len(op.pins))
	for i, pin := range op.pins {
		xs[i] = p[op.layout.X(pin.Cell)] + pin.OffX
		ys[i] = p[op.layout.Y(pin.Cell)] + pin.OffY
	}
	return
}

func (op *HPWLOperator) Value(p []float64) float64 {
	if len(op.pins) == 0 {
		return 0
	}
	xs, ys := op.pinCoords(p)
	negXs := negate(xs)
	negYs := negate(ys)
	maxX, _ := logSumExp(xs, op.alpha)
	minX, _ := logSumExp(negXs, op.alpha)
	maxY, _ := logSumExp(ys, op.alpha)
	minY, _ := logSumExp(negYs, op.alpha)
	return op.weight * ((maxX + minX) + (maxY + minY))
}

func (op *HPWLOperator) AddGradient(p []float64, grad []float64) {
	if len(op.pins) == 0 {
		return
	}
	xs, ys := op.pinCoords(p)
	_, wMaxX := logSumExp(xs, op.alpha)
	_, wMinX := logSumExp(negate(xs), op.alpha)
	_, wMaxY := logSumExp(ys, op.alpha)
	_, wMinY := logSumExp(negate(ys), op.alpha)
	for i, pin := range op.pins {
		// d(minX contribution)/dx_i = d(logSumExp(-x))/dx_i = -wMinX[i]
		dx := op.weight * (wMaxX[i] - wMinX[i])
		dy := op.weight * (wMaxY[i] - wMinY[i])
		grad[op.layout.X(pin.Cell)] += dx
		grad[op.layout.Y(pin.Cell)] += dy
	}
}

func negate(v []float64) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = -x
	}
	return out
}
