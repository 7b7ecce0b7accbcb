// Package nlpmodel implements the differentiable operator set (component
// C2): smoothed penalty terms over the flat placement coordinate vector,
// each exposing Value and AddGradient. Operators store only local indices
// into the vector and publish their contribution to the global gradient by
// scatter-add, per the specification's contract.
package nlpmodel

// Layout maps cell indices and symmetry-group axis variables onto offsets
// in the flat coordinate vector p. p has length 2*NCells + NGroups: pairs
// of (x, y) for every cell, followed by one axis variable per symmetry
// group (Section 4.1's Asymmetry operator treats each axis as an
// additional optimization variable).
type Layout struct {
	NCells  int
	NGroups int
}

// Len returns the total vector length 2*NCells + NGroups.
func (l Layout) Len() int { return 2*l.NCells + l.NGroups }

// X returns the offset of cell i's x coordinate.
func (l Layout) X(i int) int { return 2 * i }

// Y returns the offset of cell i's y coordinate.
func (l Layout) Y(i int) int { return 2*i + 1 }

// Axis returns the offset of symmetry group g's axis variable.
func (l Layout) Axis(g int) int { return 2*l.NCells + g }

// Pack writes cell coordinates and initial axis guesses from cellX, cellY
// into a freshly allocated vector.
func (l Layout) Pack(cellX, cellY []float64, axis []float64) []float64 {
	p := make([]float64, l.Len())
	for i := 0; i < l.NCells; i++ {
		p[l.X(i)] = cellX[i]
		p[l.Y(i)] = cellY[i]
	}
	for g := 0; g < l.NGroups; g++ {
		p[l.Axis(g)] = axis[g]
	}
	return p
}

// Unpack writes p's cell coordinates back into cellX, cellY and returns the
// axis variables.
func (l Layout) Unpack(p []float64) (cellX, cellY, axis []float64) {
	cellX = make([]float64, l.NCells)
	cellY = make([]float64, l.NCells)
	axis = make([]float64, l.NGroups)
	for i := 0; i < l.NCells; i++ {
		cellX[i] = p[l.X(i)]
		cellY[i] = p[l.Y(i)]
	}
	for g := 0; g < l.NGroups; g++ {
		axis[g] = p[l.Axis(g)]
	}
	return
}
