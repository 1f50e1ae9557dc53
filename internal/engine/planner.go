package engine

import (
	"errors"
	"fmt"

	"github.com/piwi3910/sectionsheets/internal/model"
)

// Planner runs the full room-to-sheet pipeline: filter rooms, derive both
// sections per room, size the viewports and pack them onto sheets.
type Planner struct {
	Settings   model.Settings
	TitleBlock model.TitleBlock
	Trace      Tracer
}

// NewPlanner builds a planner using the title block named in settings.
func NewPlanner(settings model.Settings, tracer Tracer) *Planner {
	return &Planner{
		Settings:   settings,
		TitleBlock: model.GetTitleBlock(settings.TitleBlock),
		Trace:      tracerOrNop(tracer),
	}
}

// Plan lays out rooms. Per-room and per-viewport problems are recorded as
// Failures and do not stop the run; invalid settings or page capacity are
// returned as an error before any work is done.
func (p *Planner) Plan(rooms []model.Room) (model.PlanResult, error) {
	tr := tracerOrNop(p.Trace)
	if err := p.Settings.Validate(); err != nil {
		return model.PlanResult{}, err
	}
	cfg := p.Settings.PackingConfig(p.TitleBlock)
	if err := cfg.Validate(); err != nil {
		return model.PlanResult{}, err
	}

	result := model.PlanResult{Config: cfg}
	result.Sections, result.Failures = p.DeriveAll(rooms)

	rects := make([]model.ViewportRect, len(result.Sections))
	for i, s := range result.Sections {
		rects[i] = s.Rect
	}

	pages, err := NewScheduler(cfg, tr).Run(rects)
	var unplaceable *UnplaceableError
	switch {
	case errors.As(err, &unplaceable):
		for _, u := range unplaceable.Rects {
			f := model.Failure{
				Kind:    model.FailureUnplaceable,
				RectID:  u.RectID,
				Message: u.Error(),
			}
			if s := result.SectionByRect(u.RectID); s != nil {
				f.RoomID, f.Room, f.Tag = s.RoomID, s.RoomName, s.Spec.Tag
			}
			result.Failures = append(result.Failures, f)
		}
	case err != nil:
		return model.PlanResult{}, err
	}

	for i := range result.Sections {
		result.Sections[i].Rect.Placed = rects[i].Placed
	}
	for _, page := range pages {
		result.Sheets = append(result.Sheets, model.Sheet{
			Number: model.SheetNumber(p.Settings.SheetPrefix, page.Index),
			Name:   model.SheetName(page.Index),
			Page:   page,
		})
	}
	return result, nil
}

// DeriveAll derives the vertical and horizontal section of every room that
// passes the phase and area filter, in room order. Rooms are numbered from 1
// after filtering.
func (p *Planner) DeriveAll(rooms []model.Room) ([]model.SectionView, []model.Failure) {
	tr := tracerOrNop(p.Trace)
	kept := model.FilterRooms(rooms, p.Settings.Phase)
	if len(kept) < len(rooms) {
		keptIDs := make(map[string]bool, len(kept))
		for _, r := range kept {
			keptIDs[r.ID] = true
		}
		for _, r := range rooms {
			if !keptIDs[r.ID] {
				tr.OnRoomSkipped(r, "not in phase or zero reported area")
			}
		}
	}

	var sections []model.SectionView
	var failures []model.Failure
	for i, room := range kept {
		counter := i + 1
		for _, o := range model.Orientations {
			spec, err := DeriveRoomSection(room, o, p.Settings.Offset)
			if err != nil {
				var derr *DegenerateInputError
				if errors.As(err, &derr) {
					tr.OnDegenerate(derr)
				}
				failures = append(failures, model.Failure{
					Kind:    model.FailureDegenerateInput,
					RoomID:  room.ID,
					Room:    room.DisplayName(),
					Tag:     o.Tag(),
					Message: err.Error(),
				})
				continue
			}
			w, h := p.ViewportSize(spec)
			if !(w > 0) || !(h > 0) {
				failures = append(failures, model.Failure{
					Kind:    model.FailureDegenerateInput,
					RoomID:  room.ID,
					Room:    room.DisplayName(),
					Tag:     o.Tag(),
					Message: fmt.Sprintf("section %s of room %s has an empty viewport (%.1f x %.1f)", o.Tag(), room.ID, w, h),
				})
				continue
			}
			tr.OnDerive(room.ID, spec)

			name := model.SectionName(room, counter, o)
			sections = append(sections, model.SectionView{
				Name:        name,
				RoomID:      room.ID,
				RoomName:    room.DisplayName(),
				Orientation: o,
				Spec:        spec,
				Rect:        model.NewViewportRect(name, w, h),
			})
		}
	}
	return sections, failures
}

// ViewportSize converts a section box to its paper footprint: the cut
// volume seen along BasisView, divided by the scale, plus padding.
func (p *Planner) ViewportSize(spec model.SectionBoxSpec) (w, h float64) {
	ext := spec.Extent()
	return ext.X/p.Settings.Scale + p.Settings.Padding, ext.Y/p.Settings.Scale + p.Settings.Padding
}
