package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/piwi3910/sectionsheets/internal/errors"
	"github.com/piwi3910/sectionsheets/internal/model"
)

func TestAppConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "config.json")

	cfg := model.DefaultAppConfig()
	cfg.DefaultScale = 50
	cfg.DefaultTitleBlock = "A1"
	cfg.OutputFormats = []string{"pdf", "dxf"}
	cfg.AddRecentInput("/plans/one.csv", 10)
	cfg.AddRecentInput("/plans/two.xlsx", 10)

	require.NoError(t, SaveAppConfig(path, cfg))
	require.FileExists(t, path)

	loaded, err := LoadAppConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
	assert.Equal(t, "/plans/two.xlsx", loaded.RecentInputs[0])
}

func TestLoadAppConfigMissingFile(t *testing.T) {
	cfg, err := LoadAppConfig(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)
	assert.Equal(t, model.DefaultAppConfig(), cfg)
}

func TestLoadAppConfigFileContents(t *testing.T) {
	tests := []struct {
		name    string
		content string
		check   func(t *testing.T, cfg model.AppConfig)
	}{
		{
			name:    "partial file keeps defaults",
			content: `{"default_scale":100}`,
			check: func(t *testing.T, cfg model.AppConfig) {
				if cfg.DefaultScale != 100 {
					t.Errorf("DefaultScale = %v, want 100", cfg.DefaultScale)
				}
				if cfg.DefaultTitleBlock != "A2" {
					t.Errorf("DefaultTitleBlock = %q, want A2", cfg.DefaultTitleBlock)
				}
			},
		},
		{
			name:    "null recent inputs",
			content: `{"recent_inputs":null}`,
			check: func(t *testing.T, cfg model.AppConfig) {
				if cfg.RecentInputs == nil {
					t.Error("RecentInputs should not be nil after loading")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			cfg, err := LoadAppConfig(path)
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestLoadAppConfigInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("not valid json{{{"), 0644))

	_, err := LoadAppConfig(path)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeInvalidFormat))
}

func TestDefaultConfigPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	assert.Equal(t, filepath.Join(home, ".sectionsheets"), DefaultConfigDir())
	assert.Equal(t, filepath.Join(home, ".sectionsheets", "config.json"), DefaultConfigPath())
}
