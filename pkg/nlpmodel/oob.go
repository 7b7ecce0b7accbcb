package nlpmodel

// OOBOperator smooths a single cell's out-of-boundary penalty: the
// distance by which its bounding box extends past the placement boundary
// on any of its four sides, per Section 4.1.
type OOBOperator struct {
	layout     Layout
	cell       int
	w, h       float64
	xlo, ylo   float64
	xhi, yhi   float64
	alpha      float64
}

// NewOOBOperator builds an out-of-boundary operator for a cell of size
// w,h against boundary [xlo,xhi] x [ylo,yhi].
func NewOOBOperator(layout Layout, cell int, w, h, xlo, ylo, xhi, yhi, alpha float64) *OOBOperator {
	return &OOBOperator{layout: layout, cell: cell, w: w, h: h, xlo: xlo, ylo: ylo, xhi: xhi, yhi: yhi, alpha: alpha}
}

func (op *OOBOperator) Name() string       { return "oob" }
func (op *OOBOperator) Alpha() float64     { return op.alpha }
func (op *OOBOperator) SetAlpha(a float64) { op.alpha = a }

func (op *OOBOperator) Value(p []float64) float64 {
	x := p[op.layout.X(op.cell)]
	y := p[op.layout.Y(op.cell)]
	loX, _ := softplus(op.xlo-x, op.alpha)
	hiX, _ := softplus((x+op.w)-op.xhi, op.alpha)
	loY, _ := softplus(op.ylo-y, op.alpha)
	hiY, _ := softplus((y+op.h)-op.yhi, op.alpha)
	return loX + hiX + loY + hiY
}

func (op *OOBOperator) AddGradient(p []float64, grad []float64) {
	x := p[op.layout.X(op.cell)]
	y := p[op.layout.Y(op.cell)]
	_, dLoX := softplus(op.xlo-x, op.alpha)
	_, dHiX := softplus((x+op.w)-op.xhi, op.alpha)
	_, dLoY := softplus(op.ylo-y, op.alpha)
	_, dHiY := softplus((y+op.h)-op.yhi, op.alpha)
	// d(loX)/dx = -dLoX (argument is xlo-x); d(hiX)/dx = +dHiX.
	grad[op.layout.X(op.cell)] += -dLoX + dHiX
	grad[op.layout.Y(op.cell)] += -dLoY + dHiY
}
