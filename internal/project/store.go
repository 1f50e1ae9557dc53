package project

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	apperrors "github.com/piwi3910/sectionsheets/internal/errors"
)

// writeJSON writes v as indented JSON, creating parent directories.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInternal, err, "encode %s", filepath.Base(path))
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// readJSON decodes path into v. It reports false with no error when the
// file does not exist, leaving v untouched.
func readJSON(path string, v any) (bool, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return true, apperrors.Wrap(apperrors.ErrCodeInvalidFormat, err, "cannot parse %s", path)
	}
	return true, nil
}
