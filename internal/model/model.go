package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/piwi3910/sectionsheets/internal/geom"
)

// Orientation selects which horizontal room extent becomes the section width.
type Orientation int

const (
	Vertical   Orientation = iota // Width along the room's major axis
	Horizontal                    // Width along the room's minor axis
)

// Orientations lists both orientations in derivation order.
var Orientations = []Orientation{Vertical, Horizontal}

func (o Orientation) String() string {
	switch o {
	case Horizontal:
		return "Horizontal"
	default:
		return "Vertical"
	}
}

// Tag returns the short suffix used in section names: "V" or "H".
func (o Orientation) Tag() string {
	if o == Horizontal {
		return "H"
	}
	return "V"
}

// Room is the host's view of a room: an identity, a phase and a bounding
// box. BBox is nil when the host could not compute one.
//
// Area is the host-reported floor area when AreaSet is true. Otherwise it
// is the bounding box footprint and only informational.
type Room struct {
	ID      string             `json:"id"`
	Number  string             `json:"number"`
	Name    string             `json:"name"`
	Phase   string             `json:"phase,omitempty"`
	Area    float64            `json:"area"`
	AreaSet bool               `json:"area_set,omitempty"`
	BBox    *geom.BoundingBox3 `json:"bbox,omitempty"`
}

// NewRoom creates a room with a fresh id and its footprint as Area.
func NewRoom(number, name string, bbox *geom.BoundingBox3) Room {
	r := Room{
		ID:     uuid.New().String()[:8],
		Number: number,
		Name:   name,
		BBox:   bbox,
	}
	if bbox != nil {
		size := bbox.Size()
		r.Area = size.X * size.Y
	}
	return r
}

// DisplayName returns the room name, or "Room" when it is empty.
func (r Room) DisplayName() string {
	if n := strings.TrimSpace(r.Name); n != "" && n != "N/A" {
		return n
	}
	return "Room"
}

// DisplayNumber returns the room number, or counter when it is empty.
func (r Room) DisplayNumber(counter int) string {
	if n := strings.TrimSpace(r.Number); n != "" && n != "N/A" {
		return n
	}
	return strconv.Itoa(counter)
}

// FilterRooms keeps rooms in the given phase (all phases when phase is empty)
// unless the host reported a non-positive area for them. Rooms without a
// reported area are kept so that bad geometry surfaces as a derivation
// failure. Input order is preserved.
func FilterRooms(rooms []Room, phase string) []Room {
	var kept []Room
	for _, r := range rooms {
		if phase != "" && r.Phase != phase {
			continue
		}
		if r.AreaSet && r.Area <= 0 {
			continue
		}
		kept = append(kept, r)
	}
	return kept
}

// SectionBoxSpec is an oriented cut volume. Local axes are x = BasisRight
// (width), y = BasisUp (height) and z = BasisView (depth), all centered on
// Origin.
type SectionBoxSpec struct {
	Origin     geom.Vec3 `json:"origin"`
	BasisRight geom.Vec3 `json:"basis_right"`
	BasisUp    geom.Vec3 `json:"basis_up"`
	BasisView  geom.Vec3 `json:"basis_view"`
	LocalMin   geom.Vec3 `json:"local_min"`
	LocalMax   geom.Vec3 `json:"local_max"`
	Tag        string    `json:"tag"`

	Width  float64 `json:"width"`  // Room extent along BasisRight, without offset
	Depth  float64 `json:"depth"`  // Room extent along BasisView, without offset
	Height float64 `json:"height"` // Room extent along BasisUp, without offset
}

// Frame returns the section basis.
func (s SectionBoxSpec) Frame() geom.Frame {
	return geom.Frame{Right: s.BasisRight, Up: s.BasisUp, View: s.BasisView}
}

// Extent returns the local size of the cut volume including offsets.
func (s SectionBoxSpec) Extent() geom.Vec3 {
	return s.LocalMax.Sub(s.LocalMin)
}

// ViewportRect is the page-space footprint of one section view, padding included.
type ViewportRect struct {
	ID     string  `json:"id"`
	Label  string  `json:"label"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Placed bool    `json:"placed"`
}

func NewViewportRect(label string, w, h float64) ViewportRect {
	return ViewportRect{
		ID:     uuid.New().String()[:8],
		Label:  label,
		Width:  w,
		Height: h,
	}
}

// Placement is the center of a placed viewport on a page.
type Placement struct {
	RectID    string  `json:"rect_id"`
	Label     string  `json:"label"`
	CenterX   float64 `json:"center_x"`
	CenterY   float64 `json:"center_y"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	PageIndex int     `json:"page_index"`
}

// Bounds returns the lower-left and upper-right corners of the placed footprint.
func (p Placement) Bounds() (minX, minY, maxX, maxY float64) {
	return p.CenterX - p.Width/2, p.CenterY - p.Height/2,
		p.CenterX + p.Width/2, p.CenterY + p.Height/2
}

// Overlaps reports whether two placed footprints share interior area.
// Touching edges do not count as overlap.
func (p Placement) Overlaps(o Placement) bool {
	const eps = 1e-9
	ax0, ay0, ax1, ay1 := p.Bounds()
	bx0, by0, bx1, by1 := o.Bounds()
	return ax0 < bx1-eps && ax1 > bx0+eps && ay0 < by1-eps && ay1 > by0+eps
}

// Page is one packed page. Index starts at 1.
type Page struct {
	Index      int         `json:"index"`
	Placements []Placement `json:"placements"`
}

// UsedArea returns the total footprint of the placements on the page.
func (p Page) UsedArea() float64 {
	var total float64
	for _, pl := range p.Placements {
		total += pl.Width * pl.Height
	}
	return total
}

// PackingConfig is the usable page area. AvailableWidth and AvailableHeight
// already exclude the margins.
type PackingConfig struct {
	AvailableWidth  float64 `json:"available_width"`
	AvailableHeight float64 `json:"available_height"`
	Margin          float64 `json:"margin"`
	Gap             float64 `json:"gap"`
}

// Area returns the usable page area.
func (c PackingConfig) Area() float64 {
	return c.AvailableWidth * c.AvailableHeight
}

// Fits reports whether a w x h footprint can ever be placed on a page.
func (c PackingConfig) Fits(w, h float64) bool {
	return w <= c.AvailableWidth && h <= c.AvailableHeight
}

// SectionView is one derived section together with its page footprint.
type SectionView struct {
	Name        string         `json:"name"`
	RoomID      string         `json:"room_id"`
	RoomName    string         `json:"room_name"`
	Orientation Orientation    `json:"orientation"`
	Spec        SectionBoxSpec `json:"spec"`
	Rect        ViewportRect   `json:"rect"`
}

// SectionName builds "<name>_<number>_<counter>_<tag>" with spaces replaced
// by underscores.
func SectionName(r Room, counter int, o Orientation) string {
	clean := func(s string) string { return strings.ReplaceAll(s, " ", "_") }
	return fmt.Sprintf("%s_%s_%d_%s", clean(r.DisplayName()), clean(r.DisplayNumber(counter)), counter, o.Tag())
}

// Sheet is a page realised as a numbered drawing sheet.
type Sheet struct {
	Number string `json:"number"`
	Name   string `json:"name"`
	Page   Page   `json:"page"`
}

// SheetNumber formats the sheet number, e.g. "RS-001".
func SheetNumber(prefix string, index int) string {
	return fmt.Sprintf("%s-%03d", prefix, index)
}

// SheetName formats the sheet title, e.g. "Room Sections - Sheet 1".
func SheetName(index int) string {
	return fmt.Sprintf("Room Sections - Sheet %d", index)
}

// FailureKind classifies a per-item failure.
type FailureKind string

const (
	FailureDegenerateInput FailureKind = "degenerate_input"
	FailureUnplaceable     FailureKind = "unplaceable"
)

// Failure is a traceable per-room or per-rectangle diagnostic.
type Failure struct {
	Kind    FailureKind `json:"kind"`
	RoomID  string      `json:"room_id,omitempty"`
	Room    string      `json:"room,omitempty"`
	Tag     string      `json:"tag,omitempty"`
	RectID  string      `json:"rect_id,omitempty"`
	Message string      `json:"message"`
}

func (f Failure) String() string {
	var parts []string
	if f.Room != "" {
		parts = append(parts, fmt.Sprintf("room %q", f.Room))
	}
	if f.Tag != "" {
		parts = append(parts, "section "+f.Tag)
	}
	if f.RectID != "" {
		parts = append(parts, "viewport "+f.RectID)
	}
	return fmt.Sprintf("%s [%s]: %s", f.Kind, strings.Join(parts, ", "), f.Message)
}

// PlanResult holds the full layout for one run.
type PlanResult struct {
	Sections []SectionView `json:"sections"`
	Sheets   []Sheet       `json:"sheets"`
	Failures []Failure     `json:"failures"`
	Config   PackingConfig `json:"config"`
}

// PlacedCount returns the number of viewports placed across all sheets.
func (pr PlanResult) PlacedCount() int {
	total := 0
	for _, s := range pr.Sheets {
		total += len(s.Page.Placements)
	}
	return total
}

// Efficiency returns the share of the usable sheet area covered by viewports,
// as a percentage.
func (pr PlanResult) Efficiency() float64 {
	pageArea := pr.Config.Area()
	if len(pr.Sheets) == 0 || pageArea <= 0 {
		return 0
	}
	var used float64
	for _, s := range pr.Sheets {
		used += s.Page.UsedArea()
	}
	return used / (pageArea * float64(len(pr.Sheets))) * 100.0
}

// FailuresOf returns the failures of the given kind.
func (pr PlanResult) FailuresOf(kind FailureKind) []Failure {
	var out []Failure
	for _, f := range pr.Failures {
		if f.Kind == kind {
			out = append(out, f)
		}
	}
	return out
}

// SectionByRect returns the section whose viewport has the given id, or nil.
func (pr PlanResult) SectionByRect(rectID string) *SectionView {
	for i := range pr.Sections {
		if pr.Sections[i].Rect.ID == rectID {
			return &pr.Sections[i]
		}
	}
	return nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
