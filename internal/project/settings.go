package project

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	apperrors "github.com/piwi3910/sectionsheets/internal/errors"
	"github.com/piwi3910/sectionsheets/internal/model"
)

// settingsFormat returns the codec name for path based on its extension.
func settingsFormat(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json", nil
	case ".toml":
		return "toml", nil
	case ".yaml", ".yml":
		return "yaml", nil
	default:
		return "", apperrors.New(apperrors.ErrCodeInvalidFormat,
			"unsupported settings file %q (use .json, .toml, .yaml or .yml)", path)
	}
}

// LoadSettings reads layout settings from a JSON, TOML or YAML file chosen by
// extension. Keys absent from the file keep their DefaultSettings value. A
// missing file yields the defaults with no error.
func LoadSettings(path string) (model.Settings, error) {
	format, err := settingsFormat(path)
	if err != nil {
		return model.Settings{}, err
	}

	settings := model.DefaultSettings()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return model.Settings{}, err
	}

	switch format {
	case "json":
		err = json.Unmarshal(data, &settings)
	case "toml":
		err = toml.Unmarshal(data, &settings)
	case "yaml":
		err = yaml.Unmarshal(data, &settings)
	}
	if err != nil {
		return model.Settings{}, apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "cannot parse %s", path)
	}
	return settings, nil
}

// SaveSettings writes settings to path in the format implied by its extension,
// creating parent directories as needed.
func SaveSettings(path string, settings model.Settings) error {
	format, err := settingsFormat(path)
	if err != nil {
		return err
	}

	var data []byte
	switch format {
	case "json":
		data, err = json.MarshalIndent(settings, "", "  ")
	case "toml":
		var buf bytes.Buffer
		err = toml.NewEncoder(&buf).Encode(settings)
		data = buf.Bytes()
	case "yaml":
		data, err = yaml.Marshal(settings)
	}
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
