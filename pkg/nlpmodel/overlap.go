package nlpmodel

// OverlapOperator smooths the overlap area between one unordered pair of
// cells (i, j), per Section 4.1: on each axis, a smooth_min of the two
// cell widths and the separation between their centers approximates the
// true overlap extent, clamped to zero with a smooth max; the product of
// the two axis overlaps gives the area.
type OverlapOperator struct {
	layout Layout
	i, j   int
	wi, hi float64
	wj, hj float64
	alpha  float64
}

// NewOverlapOperator builds an overlap operator for cells i and j with
// fixed widths/heights wi,hi / wj,hj.
func NewOverlapOperator(layout Layout, i, j int, wi, hi, wj, hj, alpha float64) *OverlapOperator {
	return &OverlapOperator{layout: layout, i: i, j: j, wi: wi, hi: hi, wj: wj, hj: hj, alpha: alpha}
}

func (op *OverlapOperator) Name() string       { return "ovl" }
func (op *OverlapOperator) Alpha() float64     { return op.alpha }
func (op *OverlapOperator) SetAlpha(a float64) { op.alpha = a }

// axisOverlap returns the clamped smooth overlap extent on one axis and
// enough intermediate state to back-propagate into the two cell centers.
//
//	dist = (w_i/2 + w_j/2) - |c_i - c_j|    (positive when cells overlap)
//	raw  = smooth_min(w_i, w_j, dist)
//	clamped = smooth_max(raw, 0)
func axisOverlap(wi, wj, ci, cj, alpha float64) (clamped float64, dClamped_dci, dClamped_dcj float64) {
	diff := ci - cj
	dist := (wi+wj)/2 - absF(diff)
	raw, weights := smoothMin([]float64{wi, wj, dist}, alpha)
	clampedVal, dSig := softplus(raw, alpha)

	// d(dist)/dci = -sign(diff); d(dist)/dcj = +sign(diff)
	ddist := -sign(diff)
	draw_dci := weights[2] * ddist
	draw_dcj := -draw_dci

	dClamped_dci = dSig * draw_dci
	dClamped_dcj = dSig * draw_dcj
	clamped = clampedVal
	return
}

func absF(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func (op *OverlapOperator) coords(p []float64) (cxi, cyi, cxj, cyj float64) {
	cxi = p[op.layout.X(op.i)] + op.wi/2
	cyi = p[op.layout.Y(op.i)] + op.hi/2
	cxj = p[op.layout.X(op.j)] + op.wj/2
	cyj = p[op.layout.Y(op.j)] + op.hj/2
	return
}

func (op *OverlapOperator) Value(p []float64) float64 {
	cxi, cyi, cxj, cyj := op.coords(p)
	ox, _, _ := axisOverlap(op.wi, op.wj, cxi, cxj, op.alpha)
	oy, _, _ := axisOverlap(op.hi, op.hj, cyi, cyj, op.alpha)
	return ox * oy
}

func (op *OverlapOperator) AddGradient(p []float64, grad []float64) {
	cxi, cyi, cxj, cyj := op.coords(p)
	ox, dox_dci, dox_dcj := axisOverlap(op.wi, op.wj, cxi, cxj, op.alpha)
	oy, doy_dci, doy_dcj := axisOverlap(op.hi, op.hj, cyi, cyj, op.alpha)

	// Area = ox*oy; centers are affine in (x,y) with unit slope, so
	// d(center)/d(cell x) == 1.
	grad[op.layout.X(op.i)] += dox_dci * oy
	grad[op.layout.X(op.j)] += dox_dcj * oy
	grad[op.layout.Y(op.i)] += doy_dci * ox
	grad[op.layout.Y(op.j)] += doy_dcj * ox
}
