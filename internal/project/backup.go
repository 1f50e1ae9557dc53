package project

import (
	"fmt"
	"time"

	apperrors "github.com/piwi3910/sectionsheets/internal/errors"
	"github.com/piwi3910/sectionsheets/internal/model"
)

const backupVersion = "1.0.0"

// BackupData bundles the application config and the custom title block
// library into one portable file.
type BackupData struct {
	Version     string             `json:"version"`
	CreatedAt   string             `json:"created_at"`
	Config      model.AppConfig    `json:"config"`
	TitleBlocks []model.TitleBlock `json:"title_blocks"`
}

// ExportAllData writes cfg and blocks to path.
func ExportAllData(path string, cfg model.AppConfig, blocks []model.TitleBlock) error {
	if blocks == nil {
		blocks = []model.TitleBlock{}
	}
	backup := BackupData{
		Version:     backupVersion,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
		Config:      cfg,
		TitleBlocks: blocks,
	}
	if err := writeJSON(path, backup); err != nil {
		return fmt.Errorf("write backup: %w", err)
	}
	return nil
}

// ImportAllData reads and validates a backup written by ExportAllData.
// Nothing is applied; the caller decides where the data goes.
func ImportAllData(path string) (BackupData, error) {
	var backup BackupData
	found, err := readJSON(path, &backup)
	switch {
	case err != nil:
		return BackupData{}, err
	case !found:
		return BackupData{}, apperrors.New(apperrors.ErrCodeFileNotFound, "backup %s not found", path)
	case backup.Version == "":
		return BackupData{}, apperrors.New(apperrors.ErrCodeInvalidFormat, "%s is not a backup: missing version", path)
	}

	for i, tb := range backup.TitleBlocks {
		if err := validateTitleBlock(tb); err != nil {
			return BackupData{}, apperrors.Wrap(apperrors.ErrCodeInvalidFormat, err, "backup title block %d", i+1)
		}
	}
	if backup.Config.RecentInputs == nil {
		backup.Config.RecentInputs = []string{}
	}
	if backup.TitleBlocks == nil {
		backup.TitleBlocks = []model.TitleBlock{}
	}
	return backup, nil
}
