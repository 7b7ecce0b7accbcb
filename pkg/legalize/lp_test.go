package legalize

import (
	"math"
	"testing"
)

func TestModelSolvesSimpleLP(t *testing.T) {
	// minimize x0 + x1 subject to x0 + x1 >= 10, x0, x1 >= 0.
	m := NewModel()
	x0 := m.AddVar()
	x1 := m.AddVar()
	m.AddConstraint(map[int]float64{x0: 1, x1: 1}, GE, 10)
	m.SetObjective(map[int]float64{x0: 1, x1: 1})
	sol, err := m.Solve()
	if err != nil {
		t.Fatalf("Solve returned error: %v", err)
	}
	if math.Abs(sol.Obj-10) > 1e-6 {
		t.Errorf("Obj = %v, want 10", sol.Obj)
	}
}

func TestModelSolvesOrderingConstraint(t *testing.T) {
	// minimize D subject to x1 >= x0 + 5, D >= x0 + 3, D >= x1 + 3.
	m := NewModel()
	x0 := m.AddVar()
	x1 := m.AddVar()
	d := m.AddVar()
	m.AddConstraint(map[int]float64{x1: 1, x0: -1}, GE, 5)
	m.AddConstraint(map[int]float64{d: 1, x0: -1}, GE, 3)
	m.AddConstraint(map[int]float64{d: 1, x1: -1}, GE, 3)
	m.SetObjective(map[int]float64{d: 1})
	sol, err := m.Solve()
	if err != nil {
		t.Fatalf("Solve returned error: %v", err)
	}
	if sol.X[x1] < sol.X[x0]+5-1e-6 {
		t.Errorf("ordering violated: x0=%v x1=%v", sol.X[x0], sol.X[x1])
	}
	if sol.Obj > 8+1e-6 {
		t.Errorf("Obj = %v, want <= 8", sol.Obj)
	}
}

func TestModelInfeasibleReturnsError(t *testing.T) {
	// x0 >= 10 and x0 <= 5 simultaneously is infeasible.
	m := NewModel()
	x0 := m.AddVar()
	m.AddConstraint(map[int]float64{x0: 1}, GE, 10)
	m.AddConstraint(map[int]float64{x0: 1}, LE, 5)
	m.SetObjective(map[int]float64{x0: 1})
	if _, err := m.Solve(); err == nil {
		t.Error("expected infeasibility error")
	}
}

func TestModelHandlesEqualityConstraint(t *testing.T) {
	m := NewModel()
	x0 := m.AddVar()
	x1 := m.AddVar()
	m.AddConstraint(map[int]float64{x0: 1, x1: -1}, EQ, 0)
	m.AddConstraint(map[int]float64{x0: 1}, GE, 7)
	m.SetObjective(map[int]float64{x0: 1, x1: 1})
	sol, err := m.Solve()
	if err != nil {
		t.Fatalf("Solve returned error: %v", err)
	}
	if math.Abs(sol.X[x0]-sol.X[x1]) > 1e-6 {
		t.Errorf("equality constraint violated: x0=%v x1=%v", sol.X[x0], sol.X[x1])
	}
}
