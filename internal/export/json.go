package export

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/piwi3910/sectionsheets/internal/model"
)

// ExportJSON writes the full plan (sections, sheets and failures) as indented JSON.
func ExportJSON(path string, plan model.PlanResult) error {
	data, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal plan: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
