package scenario

import "fmt"

// Mechanism identifies a missingness-injection strategy.
type Mechanism string

const (
	MechanismRandom      Mechanism = "Random"
	MechanismEarlyExit   Mechanism = "EarlyExit"
	MechanismLateMissing Mechanism = "LateMissing"
	MechanismCyclical    Mechanism = "Cyclical"
)

// Shape describes the panel geometry: N cross-sectional units observed over T periods.
type Shape struct {
	Name    string `json:"name"`
	Units   int    `json:"units"`
	Periods int    `json:"periods"`
}

// Complexity describes the model dimensionality: k covariates.
type Complexity struct {
	Name       string `json:"name"`
	Covariates int    `json:"covariates"`
}

// Scenario is one immutable cell of the experiment design.
type Scenario struct {
	Shape       Shape      `json:"shape"`
	Complexity  Complexity `json:"complexity"`
	Mechanism   Mechanism  `json:"mechanism"`
	DropoutRate float64    `json:"dropout_rate"`
}

// Feasible reports whether the within transformation can identify k
// coefficients: a unit contributes T-1 degrees of freedom after demeaning,
// so T >= k+1 is required.
func (s Scenario) Feasible() bool {
	return s.Shape.Periods >= s.Complexity.Covariates+1
}

// Key returns a stable human-readable identifier for the scenario.
func (s Scenario) Key() string {
	return fmt.Sprintf("%s|%s|%s|%.2f", s.Shape.Name, s.Complexity.Name, s.Mechanism, s.DropoutRate)
}

// Excluded records a scenario pruned before any trial ran.
type Excluded struct {
	Scenario Scenario `json:"scenario"`
	Reason   string   `json:"reason"`
}

// DefaultShapes returns the reference panel geometries.
func DefaultShapes() []Shape {
	return []Shape{
		{Name: "Wide Panel", Units: 400, Periods: 4},
		{Name: "Square Panel", Units: 200, Periods: 8},
		{Name: "Long Panel", Units: 100, Periods: 16},
	}
}

// DefaultComplexities returns the reference covariate counts.
func DefaultComplexities() []Complexity {
	return []Complexity{
		{Name: "Simple", Covariates: 1},
		{Name: "Moderate", Covariates: 3},
		{Name: "Complex", Covariates: 5},
		{Name: "High-Dimensional", Covariates: 10},
	}
}

// DefaultMechanisms returns all four missingness mechanisms.
func DefaultMechanisms() []Mechanism {
	return []Mechanism{MechanismRandom, MechanismEarlyExit, MechanismLateMissing, MechanismCyclical}
}

// DefaultDropoutRates returns the reference dropout fractions.
func DefaultDropoutRates() []float64 {
	return []float64{0.10, 0.20, 0.30, 0.40}
}

// Grid enumerates the full cross-product of the design dimensions in a
// deterministic order (shape-major, rate-minor).
func Grid(shapes []Shape, complexities []Complexity, mechanisms []Mechanism, rates []float64) []Scenario {
	grid := make([]Scenario, 0, len(shapes)*len(complexities)*len(mechanisms)*len(rates))
	for _, sh := range shapes {
		for _, cx := range complexities {
			for _, m := range mechanisms {
				for _, r := range rates {
					grid = append(grid, Scenario{Shape: sh, Complexity: cx, Mechanism: m, DropoutRate: r})
				}
			}
		}
	}
	return grid
}

// DefaultGrid enumerates the reference 192-cell design.
func DefaultGrid() []Scenario {
	return Grid(DefaultShapes(), DefaultComplexities(), DefaultMechanisms(), DefaultDropoutRates())
}

// Partition splits a grid into feasible scenarios and excluded scenarios.
// The two halves are exhaustive and disjoint over the input.
func Partition(grid []Scenario) (feasible []Scenario, excluded []Excluded) {
	for _, s := range grid {
		if s.Feasible() {
			feasible = append(feasible, s)
			continue
		}
		excluded = append(excluded, Excluded{
			Scenario: s,
			Reason: fmt.Sprintf("infeasible: T=%d < k+1=%d",
				s.Shape.Periods, s.Complexity.Covariates+1),
		})
	}
	return feasible, excluded
}
