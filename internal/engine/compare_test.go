package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/sectionsheets/internal/model"
)

func TestBuildDefaultScenarios(t *testing.T) {
	scenarios := BuildDefaultScenarios(model.DefaultSettings())

	require.Len(t, scenarios, 4)
	assert.Equal(t, "Current Settings", scenarios[0].Name)
	assert.Equal(t, "A1", scenarios[1].Settings.TitleBlock)
	assert.Equal(t, 25.0, scenarios[2].Settings.Scale)
	assert.Equal(t, "Scale 1:25", scenarios[2].Name)
	assert.Equal(t, 0.0, scenarios[3].Settings.Offset)
}

func TestBuildDefaultScenarios_Limits(t *testing.T) {
	s := model.DefaultSettings()
	s.TitleBlock = "A0"
	s.Scale = 200
	s.Offset = 0

	scenarios := BuildDefaultScenarios(s)
	require.Len(t, scenarios, 1)
}

func TestCompareScenarios(t *testing.T) {
	rooms := []model.Room{office(), office(), office()}
	scenarios := BuildDefaultScenarios(model.DefaultSettings())

	results := CompareScenarios(scenarios, rooms)
	require.Len(t, results, len(scenarios))

	current, larger := results[0], results[1]
	require.NoError(t, current.Err)
	assert.Equal(t, 3, current.SheetsUsed)
	assert.Equal(t, 6, current.PlacedCount)
	assert.Equal(t, 0, current.UnplacedCount)
	assert.Greater(t, current.Efficiency, 0.0)

	require.NoError(t, larger.Err)
	assert.Less(t, larger.SheetsUsed, current.SheetsUsed)
}

func TestCompareScenarios_InvalidScenarioKeepsError(t *testing.T) {
	bad := model.DefaultSettings()
	bad.Scale = -1
	scenarios := []ComparisonScenario{
		{Name: "bad", Settings: bad},
		{Name: "good", Settings: model.DefaultSettings()},
	}

	results := CompareScenarios(scenarios, []model.Room{office()})
	require.Len(t, results, 2)
	assert.Error(t, results[0].Err)
	assert.Equal(t, 0, results[0].SheetsUsed)
	assert.NoError(t, results[1].Err)
	assert.Equal(t, 1, results[1].SheetsUsed)
}
