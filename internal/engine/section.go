package engine

import (
	"math"

	"github.com/piwi3910/sectionsheets/internal/geom"
	"github.com/piwi3910/sectionsheets/internal/model"
)

// DeriveSection computes the cut volume for one room and orientation.
//
// The major horizontal axis is X when widthX >= widthY, otherwise Y.
// Vertical sections run along the major axis (width = major extent, depth =
// minor extent); Horizontal sections run along the minor axis. BasisRight is
// the world axis of the width direction, BasisUp is world Z and BasisView is
// BasisRight × BasisUp.
//
// The volume is centered on the room: Origin is the bounding box center and
// every local axis spans ±(extent/2 + offset).
func DeriveSection(bbox *geom.BoundingBox3, o model.Orientation, offset float64) (model.SectionBoxSpec, error) {
	if bbox == nil {
		return model.SectionBoxSpec{}, &DegenerateInputError{Orientation: o, Reason: "room has no bounding box"}
	}
	if !bbox.Valid() {
		return model.SectionBoxSpec{}, &DegenerateInputError{Orientation: o, Reason: "bounding box is inverted or not finite"}
	}
	if math.IsNaN(offset) || math.IsInf(offset, 0) || offset < 0 {
		return model.SectionBoxSpec{}, &DegenerateInputError{Orientation: o, Reason: "offset must be a finite value >= 0"}
	}

	size := bbox.Size()
	widthX, widthY, heightZ := size.X, size.Y, size.Z

	majorAxis, minorAxis := geom.BasisX, geom.BasisY
	major, minor := widthX, widthY
	if widthX < widthY {
		majorAxis, minorAxis = geom.BasisY, geom.BasisX
		major, minor = widthY, widthX
	}
	if major <= 0 {
		return model.SectionBoxSpec{}, &DegenerateInputError{Orientation: o, Reason: "room footprint has zero width"}
	}

	right, width, depth := majorAxis, major, minor
	if o == model.Horizontal {
		right, width, depth = minorAxis, minor, major
	}

	frame := geom.NewFrame(right, geom.BasisZ)
	if !frame.Valid() {
		return model.SectionBoxSpec{}, &DegenerateInputError{Orientation: o, Reason: "section basis is degenerate"}
	}

	half := geom.V(width/2+offset, heightZ/2+offset, depth/2+offset)
	return model.SectionBoxSpec{
		Origin:     bbox.Center(),
		BasisRight: frame.Right,
		BasisUp:    frame.Up,
		BasisView:  frame.View,
		LocalMin:   half.Scale(-1),
		LocalMax:   half,
		Tag:        o.Tag(),
		Width:      width,
		Depth:      depth,
		Height:     heightZ,
	}, nil
}

// DeriveRoomSection derives a section for room and stamps the room id on
// any DegenerateInputError.
func DeriveRoomSection(room model.Room, o model.Orientation, offset float64) (model.SectionBoxSpec, error) {
	spec, err := DeriveSection(room.BBox, o, offset)
	if derr, ok := err.(*DegenerateInputError); ok {
		derr.RoomID = room.ID
	}
	return spec, err
}
