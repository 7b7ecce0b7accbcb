package legalize

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/UTDA-group/IdeaPlaceEx/pkg/errors"
)

// Relation is the comparison operator of one linear constraint.
type Relation int

const (
	LE Relation = iota
	EQ
	GE
)

type constraint struct {
	coeffs map[int]float64
	rel    Relation
	rhs    float64
}

// Model is a small LP builder, deliberately narrow per the specification's
// "LP backend as a replaceable capability" design note (Section 9): add
// variables, add linear constraints, set an objective, solve. The only
// implementation is gonum's primal simplex, but callers never see that -
// they build a Model and call Solve.
type Model struct {
	numVars    int
	constraints []constraint
	objective  map[int]float64
	minimize   bool
	numThreads int
}

// NewModel returns an empty LP with no variables or constraints.
func NewModel() *Model {
	return &Model{objective: map[int]float64{}, minimize: true, numThreads: 1}
}

// AddVar allocates one non-negative continuous decision variable and
// returns its index for use in constraints and the objective.
func (m *Model) AddVar() int {
	m.numVars++
	return m.numVars - 1
}

// AddConstraint adds sum(coeffs[i]*x_i) `rel` rhs.
func (m *Model) AddConstraint(coeffs map[int]float64, rel Relation, rhs float64) {
	m.constraints = append(m.constraints, constraint{coeffs: coeffs, rel: rel, rhs: rhs})
}

// SetObjective sets the linear objective sum(coeffs[i]*x_i), minimized.
func (m *Model) SetObjective(coeffs map[int]float64) {
	m.objective = coeffs
}

// SetNumThreads configures the backend's thread count, a no-op for gonum's
// simplex (which is single-threaded) but kept so callers can configure a
// future backend without a signature change.
func (m *Model) SetNumThreads(n int) {
	m.numThreads = n
}

// Solution is a solved LP's variable assignment and objective value.
type Solution struct {
	X   []float64
	Obj float64
}

// Solve converts every constraint to standard equality form (adding one
// slack variable per inequality), assembles the dense A, b, c arrays, and
// hands them to gonum's primal simplex. Returns errors.ErrCodeInfeasible
// if the simplex reports no feasible point.
func (m *Model) Solve() (Solution, error) {
	if m.numVars == 0 {
		return Solution{}, nil
	}

	totalVars := m.numVars
	slackOf := make([]int, len(m.constraints))
	for i, c := range m.constraints {
		if c.rel == EQ {
			slackOf[i] = -1
			continue
		}
		slackOf[i] = totalVars
		totalVars++
	}

	rows := len(m.constraints)
	aData := make([]float64, rows*totalVars)
	b := make([]float64, rows)

	for r, c := range m.constraints {
		rowSign := 1.0
		rhs := c.rhs
		// LE: sum <= rhs  ->  sum + slack = rhs, slack >= 0.
		// GE: sum >= rhs  ->  sum - slack = rhs, slack >= 0.
		if rhs < 0 {
			rowSign = -1.0
			rhs = -rhs
		}
		for idx, coeff := range c.coeffs {
			aData[r*totalVars+idx] = rowSign * coeff
		}
		switch c.rel {
		case LE:
			if slackOf[r] >= 0 {
				aData[r*totalVars+slackOf[r]] = rowSign * 1.0
			}
		case GE:
			if slackOf[r] >= 0 {
				aData[r*totalVars+slackOf[r]] = rowSign * -1.0
			}
		}
		b[r] = rhs
	}

	c := make([]float64, totalVars)
	for idx, coeff := range m.objective {
		c[idx] = coeff
	}

	A := mat.NewDense(rows, totalVars, aData)
	optF, x, err := lp.Simplex(c, A, b, 1e-10, nil)
	if err != nil {
		return Solution{}, errors.Wrap(errors.ErrCodeInfeasible, err, "legalization LP infeasible")
	}
	return Solution{X: x[:m.numVars], Obj: optF}, nil
}
