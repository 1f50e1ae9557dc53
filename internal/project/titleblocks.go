package project

import (
	"path/filepath"

	apperrors "github.com/piwi3910/sectionsheets/internal/errors"
	"github.com/piwi3910/sectionsheets/internal/model"
)

// DefaultTitleBlocksPath is the custom title block library, stored next to
// the application config.
func DefaultTitleBlocksPath() string {
	return filepath.Join(DefaultConfigDir(), "titleblocks.json")
}

// SaveCustomTitleBlocks writes the library to path.
func SaveCustomTitleBlocks(path string, blocks []model.TitleBlock) error {
	if blocks == nil {
		blocks = []model.TitleBlock{}
	}
	return writeJSON(path, blocks)
}

// LoadCustomTitleBlocks reads the library at path. A missing file yields an
// empty library. Every entry must have a name and a positive paper size.
func LoadCustomTitleBlocks(path string) ([]model.TitleBlock, error) {
	blocks := []model.TitleBlock{}
	if _, err := readJSON(path, &blocks); err != nil {
		return nil, err
	}
	for i := range blocks {
		if err := validateTitleBlock(blocks[i]); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "%s entry %d", path, i+1)
		}
		blocks[i].IsBuiltIn = false
	}
	return blocks, nil
}

// ImportTitleBlock reads a single shared title block definition.
func ImportTitleBlock(path string) (model.TitleBlock, error) {
	var tb model.TitleBlock
	found, err := readJSON(path, &tb)
	if err != nil {
		return model.TitleBlock{}, err
	}
	if !found {
		return model.TitleBlock{}, apperrors.New(apperrors.ErrCodeFileNotFound, "title block %s not found", path)
	}
	if err := validateTitleBlock(tb); err != nil {
		return model.TitleBlock{}, err
	}
	return tb, nil
}

func validateTitleBlock(tb model.TitleBlock) error {
	switch {
	case tb.Name == "":
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "title block has no name")
	case !(tb.Width > 0) || !(tb.Height > 0):
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "title block %q must have a positive size", tb.Name)
	case tb.TitleAllowance < 0 || tb.TitleAllowance >= tb.Height:
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "title block %q has an invalid title allowance", tb.Name)
	}
	return nil
}
