package engine

import (
	"github.com/charmbracelet/log"

	"github.com/piwi3910/sectionsheets/internal/model"
)

// Tracer receives diagnostic events from derivation and packing. Events are
// informational only; a tracer cannot change the outcome of a run.
type Tracer interface {
	OnRoomSkipped(room model.Room, reason string)
	OnDerive(roomID string, spec model.SectionBoxSpec)
	OnDegenerate(err *DegenerateInputError)
	OnRowBreak(page int, y float64)
	OnPlace(p model.Placement)
	OnPageFull(page int, rectID string)
	OnPage(page model.Page)
	OnUnplaceable(err *UnplaceableRectangleError)
}

// NopTracer discards every event.
type NopTracer struct{}

func (NopTracer) OnRoomSkipped(model.Room, string)         {}
func (NopTracer) OnDerive(string, model.SectionBoxSpec)    {}
func (NopTracer) OnDegenerate(*DegenerateInputError)       {}
func (NopTracer) OnRowBreak(int, float64)                  {}
func (NopTracer) OnPlace(model.Placement)                  {}
func (NopTracer) OnPageFull(int, string)                   {}
func (NopTracer) OnPage(model.Page)                        {}
func (NopTracer) OnUnplaceable(*UnplaceableRectangleError) {}

// LogTracer writes events to a charmbracelet logger. Per-item events go to
// debug, failures to warn.
type LogTracer struct {
	Logger *log.Logger
}

// NewLogTracer returns a tracer on l, or on log.Default() when l is nil.
func NewLogTracer(l *log.Logger) *LogTracer {
	if l == nil {
		l = log.Default()
	}
	return &LogTracer{Logger: l}
}

func (t *LogTracer) OnRoomSkipped(room model.Room, reason string) {
	t.Logger.Debug("room skipped", "room", room.DisplayName(), "id", room.ID, "reason", reason)
}

func (t *LogTracer) OnDerive(roomID string, spec model.SectionBoxSpec) {
	t.Logger.Debug("section derived", "room", roomID, "tag", spec.Tag,
		"width", spec.Width, "depth", spec.Depth, "height", spec.Height)
}

func (t *LogTracer) OnDegenerate(err *DegenerateInputError) {
	t.Logger.Warn("section skipped", "room", err.RoomID, "tag", err.Orientation.Tag(), "reason", err.Reason)
}

func (t *LogTracer) OnRowBreak(page int, y float64) {
	t.Logger.Debug("new row", "page", page, "y", y)
}

func (t *LogTracer) OnPlace(p model.Placement) {
	t.Logger.Debug("viewport placed", "rect", p.RectID, "label", p.Label, "page", p.PageIndex,
		"x", p.CenterX, "y", p.CenterY)
}

func (t *LogTracer) OnPageFull(page int, rectID string) {
	t.Logger.Debug("page full", "page", page, "next", rectID)
}

func (t *LogTracer) OnPage(page model.Page) {
	t.Logger.Debug("page packed", "page", page.Index, "viewports", len(page.Placements))
}

func (t *LogTracer) OnUnplaceable(err *UnplaceableRectangleError) {
	t.Logger.Warn("viewport unplaceable", "rect", err.RectID, "label", err.Label,
		"width", err.Width, "height", err.Height)
}

func tracerOrNop(t Tracer) Tracer {
	if t == nil {
		return NopTracer{}
	}
	return t
}
