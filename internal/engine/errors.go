package engine

import (
	"fmt"
	"strings"

	apperrors "github.com/piwi3910/sectionsheets/internal/errors"
	"github.com/piwi3910/sectionsheets/internal/model"
)

// Sentinels for errors.Is. Both carry their apperrors code.
var (
	ErrDegenerateInput = apperrors.New(apperrors.ErrCodeDegenerateInput, "degenerate room geometry")
	ErrUnplaceable     = apperrors.New(apperrors.ErrCodeUnplaceable, "viewport does not fit the page")
)

// DegenerateInputError reports a room whose bounding box cannot produce a
// section box. It is recovered per room and orientation.
type DegenerateInputError struct {
	RoomID      string
	Orientation model.Orientation
	Reason      string
}

func (e *DegenerateInputError) Error() string {
	if e.RoomID == "" {
		return fmt.Sprintf("degenerate input (%s): %s", e.Orientation.Tag(), e.Reason)
	}
	return fmt.Sprintf("degenerate input for room %s (%s): %s", e.RoomID, e.Orientation.Tag(), e.Reason)
}

func (e *DegenerateInputError) Unwrap() error {
	return ErrDegenerateInput
}

// UnplaceableRectangleError reports a viewport larger than the usable page.
type UnplaceableRectangleError struct {
	RectID    string
	Label     string
	Width     float64
	Height    float64
	MaxWidth  float64
	MaxHeight float64
}

func (e *UnplaceableRectangleError) Error() string {
	return fmt.Sprintf("viewport %s (%s) is %.1f x %.1f, page allows %.1f x %.1f",
		e.RectID, e.Label, e.Width, e.Height, e.MaxWidth, e.MaxHeight)
}

func (e *UnplaceableRectangleError) Unwrap() error {
	return ErrUnplaceable
}

// UnplaceableError collects every viewport left unplaced by a packing run.
// The pages built before the run stopped are still valid.
type UnplaceableError struct {
	Rects []*UnplaceableRectangleError
}

func (e *UnplaceableError) Error() string {
	ids := make([]string, len(e.Rects))
	for i, r := range e.Rects {
		ids[i] = r.RectID
	}
	return fmt.Sprintf("%d viewport(s) cannot be placed on any page: %s", len(e.Rects), strings.Join(ids, ", "))
}

func (e *UnplaceableError) Unwrap() []error {
	errs := make([]error, len(e.Rects))
	for i, r := range e.Rects {
		errs[i] = r
	}
	return errs
}
