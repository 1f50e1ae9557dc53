package engine

import (
	"math"

	apperrors "github.com/piwi3910/sectionsheets/internal/errors"
	"github.com/piwi3910/sectionsheets/internal/model"
)

// Scheduler allocates pages until every viewport is placed or no further
// progress is possible.
type Scheduler struct {
	Config model.PackingConfig
	Trace  Tracer
}

func NewScheduler(cfg model.PackingConfig, tracer Tracer) *Scheduler {
	return &Scheduler{Config: cfg, Trace: tracerOrNop(tracer)}
}

// PackAll packs rects onto as many pages as needed with no tracing.
// See Scheduler.Run.
func PackAll(rects []model.ViewportRect, cfg model.PackingConfig) ([]model.Page, error) {
	return NewScheduler(cfg, nil).Run(rects)
}

// Run packs rects page by page. Each page is one shelf pass over the full
// collection; already placed rects are skipped. Pages are numbered from 1.
//
// Invalid configuration or rect dimensions fail before any packing. When a
// pass places nothing while rects remain, the remaining rects cannot fit any
// page: Run stops and returns the pages built so far together with an
// *UnplaceableError naming each of them.
//
// Run mutates the Placed flags of rects; callers must not share one
// collection between concurrent runs.
func (s *Scheduler) Run(rects []model.ViewportRect) ([]model.Page, error) {
	tr := tracerOrNop(s.Trace)
	if err := s.Config.Validate(); err != nil {
		return nil, err
	}
	if err := validateRects(rects); err != nil {
		return nil, err
	}

	var pages []model.Page
	for hasUnplaced(rects) {
		index := len(pages) + 1
		placements := packPage(rects, s.Config, index, tr)
		if len(placements) == 0 {
			break
		}
		page := model.Page{Index: index, Placements: placements}
		pages = append(pages, page)
		tr.OnPage(page)
	}

	var unplaced []*UnplaceableRectangleError
	for _, r := range rects {
		if r.Placed {
			continue
		}
		uerr := &UnplaceableRectangleError{
			RectID:    r.ID,
			Label:     r.Label,
			Width:     r.Width,
			Height:    r.Height,
			MaxWidth:  s.Config.AvailableWidth,
			MaxHeight: s.Config.AvailableHeight,
		}
		tr.OnUnplaceable(uerr)
		unplaced = append(unplaced, uerr)
	}
	if len(unplaced) > 0 {
		return pages, &UnplaceableError{Rects: unplaced}
	}
	return pages, nil
}

func hasUnplaced(rects []model.ViewportRect) bool {
	for _, r := range rects {
		if !r.Placed {
			return true
		}
	}
	return false
}

func validateRects(rects []model.ViewportRect) error {
	for _, r := range rects {
		if !(r.Width > 0) || !(r.Height > 0) || math.IsInf(r.Width, 0) || math.IsInf(r.Height, 0) {
			return apperrors.New(apperrors.ErrCodeInvalidInput,
				"viewport %s has non-positive size %v x %v", r.ID, r.Width, r.Height)
		}
	}
	return nil
}
