package engine

import (
	"github.com/piwi3910/sectionsheets/internal/model"
)

// PackOnePage lays out unplaced rects on a single page using a greedy
// left-to-right, top-to-bottom shelf strategy. Rects are taken in the given
// order; there is no sorting and no backtracking, so identical inputs always
// produce identical placements.
//
// Every rect placed here has its Placed flag set. The page stops at the first
// rect that does not fit vertically; it and everything after it stay unplaced
// for a later page. Rects larger than width x height are skipped since no
// page can ever hold them.
//
// The returned placements have PageIndex 0; PackAll assigns page numbers.
func PackOnePage(rects []model.ViewportRect, width, height, margin, gap float64) []model.Placement {
	cfg := model.PackingConfig{AvailableWidth: width, AvailableHeight: height, Margin: margin, Gap: gap}
	return packPage(rects, cfg, 0, NopTracer{})
}

// packPage is PackOnePage with a page number and a tracer.
func packPage(rects []model.ViewportRect, cfg model.PackingConfig, page int, tr Tracer) []model.Placement {
	var placements []model.Placement
	x, y := cfg.Margin, cfg.Margin
	rowHeight := 0.0

	for i := range rects {
		r := &rects[i]
		if r.Placed || !cfg.Fits(r.Width, r.Height) {
			continue
		}
		w, h := r.Width, r.Height

		// Row overflow: wrap to a new shelf
		if x+w > cfg.AvailableWidth+cfg.Margin {
			x = cfg.Margin
			y += rowHeight + cfg.Gap
			rowHeight = 0
			tr.OnRowBreak(page, y)
		}

		// Page overflow: this rect and the rest wait for the next page
		if y+h > cfg.AvailableHeight+cfg.Margin {
			tr.OnPageFull(page, r.ID)
			break
		}

		p := model.Placement{
			RectID:    r.ID,
			Label:     r.Label,
			CenterX:   x + w/2,
			CenterY:   y + h/2,
			Width:     w,
			Height:    h,
			PageIndex: page,
		}
		placements = append(placements, p)
		r.Placed = true
		tr.OnPlace(p)

		x += w + cfg.Gap
		if h > rowHeight {
			rowHeight = h
		}
	}
	return placements
}
