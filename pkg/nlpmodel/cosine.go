package nlpmodel

import "math"

// CosineOperator is the optional signal-alignment term from Section 4.1:
// an angular alignment measure between two designated pin-pairs (e.g. the
// two legs of a differential signal), penalizing the degree to which their
// direction vectors diverge.
//
//	vecA = pos(A1) - pos(A0)
//	vecB = pos(B1) - pos(B0)
//	penalty = 1 - cos_similarity(vecA, vecB)
type CosineOperator struct {
	layout     Layout
	a0, a1     PinRef
	b0, b1     PinRef
	alpha      float64
}

// NewCosineOperator builds a cosine-alignment operator over two pin pairs.
func NewCosineOperator(layout Layout, a0, a1, b0, b1 PinRef) *CosineOperator {
	return &CosineOperator{layout: layout, a0: a0, a1: a1, b0: b0, b1: b1}
}

func (op *CosineOperator) Name() string       { return "cos" }
func (op *CosineOperator) Alpha() float64     { return op.alpha }
func (op *CosineOperator) SetAlpha(a float64) { op.alpha = a }

func (op *CosineOperator) loc(p []float64, ref PinRef) (x, y float64) {
	return p[op.layout.X(ref.Cell)] + ref.OffX, p[op.layout.Y(ref.Cell)] + ref.OffY
}

func (op *CosineOperator) vectors(p []float64) (ax, ay, bx, by float64) {
	x0, y0 := op.loc(p, op.a0)
	x1, y1 := op.loc(p, op.a1)
	ax, ay = x1-x0, y1-y0
	x0b, y0b := op.loc(p, op.b0)
	x1b, y1b := op.loc(p, op.b1)
	bx, by = x1b-x0b, y1b-y0b
	return
}

const cosineEps = 1e-9

func (op *CosineOperator) Value(p []float64) float64 {
	ax, ay, bx, by := op.vectors(p)
	na := math.Hypot(ax, ay) + cosineEps
	nb := math.Hypot(bx, by) + cosineEps
	cos := (ax*bx + ay*by) / (na * nb)
	return 1 - cos
}

// AddGradient differentiates cos = (a.b)/(|a||b|) w.r.t. the four endpoint
// coordinates that define a and b, then scatters into their owning cells.
func (op *CosineOperator) AddGradient(p []float64, grad []float64) {
	ax, ay, bx, by := op.vectors(p)
	na := math.Hypot(ax, ay) + cosineEps
	nb := math.Hypot(bx, by) + cosineEps
	dot := ax*bx + ay*by
	inv := 1.0 / (na * nb)

	// d(cos)/da = b/(|a||b|) - (a.b)*a/(|a|^3 |b|)
	dCos_dax := bx*inv - dot*ax/(na*na*na*nb)
	dCos_day := by*inv - dot*ay/(na*na*na*nb)
	dCos_dbx := ax*inv - dot*bx/(na*nb*nb*nb)
	dCos_dby := ay*inv - dot*by/(na*nb*nb*nb)

	// penalty = 1 - cos, so flip sign.
	dax, day, dbx, dby := -dCos_dax, -dCos_day, -dCos_dbx, -dCos_dby

	// a = pos(a1) - pos(a0)
	grad[op.layout.X(op.a1.Cell)] += dax
	grad[op.layout.X(op.a0.Cell)] += -dax
	grad[op.layout.Y(op.a1.Cell)] += day
	grad[op.layout.Y(op.a0.Cell)] += -day

	grad[op.layout.X(op.b1.Cell)] += dbx
	grad[op.layout.X(op.b0.Cell)] += -dbx
	grad[op.layout.Y(op.b1.Cell)] += dby
	grad[op.layout.Y(op.b0.Cell)] += -dby
}
