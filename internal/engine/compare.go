package engine

import (
	"fmt"

	"github.com/piwi3910/sectionsheets/internal/model"
)

// ComparisonScenario defines a named set of settings to compare.
type ComparisonScenario struct {
	Name     string
	Settings model.Settings
}

// ComparisonResult holds the plan and computed statistics for a single scenario.
type ComparisonResult struct {
	Scenario      ComparisonScenario
	Result        model.PlanResult
	SheetsUsed    int
	PlacedCount   int
	UnplacedCount int
	Efficiency    float64
	Err           error
}

// CompareScenarios plans the same rooms under each scenario and returns the
// results in scenario order. A scenario whose settings are invalid keeps its
// error in Err; the others still run.
func CompareScenarios(scenarios []ComparisonScenario, rooms []model.Room) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		result, err := NewPlanner(scenario.Settings, nil).Plan(rooms)
		results = append(results, ComparisonResult{
			Scenario:      scenario,
			Result:        result,
			SheetsUsed:    len(result.Sheets),
			PlacedCount:   result.PlacedCount(),
			UnplacedCount: len(result.FailuresOf(model.FailureUnplaceable)),
			Efficiency:    result.Efficiency(),
			Err:           err,
		})
	}

	return results
}

// standardScales are the usual section scale denominators, finest first.
var standardScales = []float64{10, 20, 25, 50, 100, 200}

// BuildDefaultScenarios generates what-if alternatives around the current
// settings: the next larger sheet and the next coarser scale.
func BuildDefaultScenarios(base model.Settings) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{
			Name:     "Current Settings",
			Settings: base,
		},
	}

	if larger, ok := model.LargerTitleBlock(base.TitleBlock); ok {
		s := base
		s.TitleBlock = larger.Name
		scenarios = append(scenarios, ComparisonScenario{
			Name:     fmt.Sprintf("Title block %s", larger.Name),
			Settings: s,
		})
	}

	for _, denom := range standardScales {
		if denom > base.Scale {
			s := base
			s.Scale = denom
			scenarios = append(scenarios, ComparisonScenario{
				Name:     fmt.Sprintf("Scale 1:%.0f", denom),
				Settings: s,
			})
			break
		}
	}

	if base.Offset > 0 {
		s := base
		s.Offset = 0
		scenarios = append(scenarios, ComparisonScenario{
			Name:     "No Clearance",
			Settings: s,
		})
	}

	return scenarios
}
