package solver_test

import (
	"fmt"

	"github.com/katalvlaran/tabumip/model"
	"github.com/katalvlaran/tabumip/solver"
)

// ExampleSolve_capacityPair shows the smallest possible case: two binaries
// competing for a shared capacity of one, objective minimizing -(x+y).
func ExampleSolve_capacityPair() {
	m := model.New(model.Min)
	x, _ := m.CreateVariable("x", nil, 0, 1)
	y, _ := m.CreateVariable("y", nil, 0, 1)
	m.CreateConstraint("cap", model.NewExpression(map[int]float64{x: 1, y: 1}, -1), model.Less)
	m.SetObjective(model.NewExpression(map[int]float64{x: -1, y: -1}, 0))

	opts := solver.DefaultOptions()
	opts.General.IterationMax = 30

	result, err := solver.Solve(m, opts)
	if err != nil {
		panic(err)
	}
	fmt.Println(result.IsFeasible, result.Objective)
	// Output:
	// true -1
}

// ExampleSolve_knapsack shows a 0/1 knapsack: five items, capacity 10,
// weights [2,3,4,5,9] and values [3,4,5,6,10] packed for maximum value.
func ExampleSolve_knapsack() {
	weights := []float64{2, 3, 4, 5, 9}
	values := []float64{3, 4, 5, 6, 10}

	m := model.New(model.Max)
	weightSens := make(map[int]float64, len(weights))
	objSens := make(map[int]float64, len(weights))
	for i := range weights {
		vi, _ := m.CreateVariable("item", nil, 0, 1)
		weightSens[vi] = weights[i]
		objSens[vi] = values[i]
	}
	m.CreateConstraint("capacity", model.NewExpression(weightSens, -10), model.Less)
	m.SetObjective(model.NewExpression(objSens, 0))

	opts := solver.DefaultOptions()
	opts.General.IterationMax = 300

	result, err := solver.Solve(m, opts)
	if err != nil {
		panic(err)
	}
	fmt.Println(result.IsFeasible, result.Objective)
	// Output:
	// true 13
}

// ExampleSolve_fixedBounds shows presolve collapsing a lo==hi variable: the
// passes that follow find no move to make, so Solve returns the fixed
// value.
func ExampleSolve_fixedBounds() {
	m := model.New(model.Min)
	v, _ := m.CreateVariable("v", nil, 7, 7)
	m.SetObjective(model.NewExpression(map[int]float64{v: 1}, 0))

	opts := solver.DefaultOptions()
	opts.General.IterationMax = 10

	result, err := solver.Solve(m, opts)
	if err != nil {
		panic(err)
	}
	fmt.Println(result.IsFeasible, result.Values["v"], result.Objective)
	// Output:
	// true 7 7
}
