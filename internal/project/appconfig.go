package project

import (
	"os"
	"path/filepath"

	"github.com/piwi3910/sectionsheets/internal/model"
)

const configDirName = ".sectionsheets"

// DefaultConfigDir is ~/.sectionsheets, or ./.sectionsheets when the home
// directory cannot be determined.
func DefaultConfigDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, configDirName)
	}
	return configDirName
}

// DefaultConfigPath is the application config file inside DefaultConfigDir.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// SaveAppConfig writes cfg to path.
func SaveAppConfig(path string, cfg model.AppConfig) error {
	return writeJSON(path, cfg)
}

// LoadAppConfig reads the config at path over DefaultAppConfig, so keys
// missing from the file keep their defaults. A missing file is not an error.
func LoadAppConfig(path string) (model.AppConfig, error) {
	cfg := model.DefaultAppConfig()
	if _, err := readJSON(path, &cfg); err != nil {
		return model.AppConfig{}, err
	}
	if cfg.RecentInputs == nil {
		cfg.RecentInputs = []string{}
	}
	return cfg, nil
}
