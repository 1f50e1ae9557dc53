package importer

import (
	"fmt"
	"math"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/piwi3910/sectionsheets/internal/geom"
	"github.com/piwi3910/sectionsheets/internal/model"
)

// point is a plan-view coordinate.
type point struct {
	X, Y float64
}

// outline is a closed plan-view polygon with the layer it was drawn on.
type outline struct {
	points []point
	layer  string
}

// segment is a line segment between two plan points, used for chaining
// disconnected LINE and ARC entities into closed outlines.
type segment struct {
	start point
	end   point
	layer string
}

// ImportDXF imports room footprints from a DXF plan. Each closed shape
// (LWPOLYLINE, CIRCLE, or chain of connected LINEs/ARCs) becomes a Room whose
// bounding box spans the shape in plan and 0..height vertically. The entity
// layer becomes the room phase and the room area is the polygon area.
func ImportDXF(path string, height float64) ImportResult {
	result := ImportResult{}

	if !(height > 0) || math.IsInf(height, 0) {
		result.Errors = append(result.Errors, fmt.Sprintf("Room height must be positive, got %v", height))
		return result
	}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	var outlines []outline
	var segments []segment

	for _, ent := range entities {
		layer := layerName(ent)
		switch e := ent.(type) {
		case *entity.LwPolyline:
			pts := lwPolylinePoints(e)
			if len(pts) >= 3 {
				outlines = append(outlines, outline{points: pts, layer: layer})
			} else {
				result.Warnings = append(result.Warnings,
					"Skipped LWPOLYLINE with fewer than 3 vertices")
			}

		case *entity.Circle:
			outlines = append(outlines, outline{points: circlePoints(e, 64), layer: layer})

		case *entity.Arc:
			pts := arcToPoints(e, 32)
			if len(pts) >= 2 {
				segments = append(segments, pointsToSegments(pts, layer)...)
			}

		case *entity.Line:
			segments = append(segments, segment{
				start: point{X: e.Start[0], Y: e.Start[1]},
				end:   point{X: e.End[0], Y: e.End[1]},
				layer: layer,
			})

		default:
			// Unsupported entity types are silently skipped
		}
	}

	outlines = append(outlines, chainSegments(segments, 0.01)...)

	if len(outlines) == 0 {
		result.Errors = append(result.Errors, "No closed shapes found in DXF file")
		return result
	}

	roomNum := 0
	for _, o := range outlines {
		minP, maxP := boundingBox(o.points)
		if maxP.X-minP.X < 0.01 || maxP.Y-minP.Y < 0.01 {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Skipped degenerate shape (%.2f x %.2f)", maxP.X-minP.X, maxP.Y-minP.Y))
			continue
		}

		roomNum++
		bbox := geom.NewBoundingBox(geom.V(minP.X, minP.Y, 0), geom.V(maxP.X, maxP.Y, height))
		room := model.NewRoom(fmt.Sprintf("%d", roomNum), fmt.Sprintf("DXF Room %d", roomNum), &bbox)
		room.Phase = o.layer
		room.Area = outlineArea(o.points)
		result.Rooms = append(result.Rooms, room)
	}

	return result
}

// layerName returns the name of the entity's layer, or "" when unset.
func layerName(e entity.Entity) string {
	if l := e.Layer(); l != nil {
		return l.Name()
	}
	return ""
}

// lwPolylinePoints converts a DXF LWPOLYLINE entity to a point list.
// Bulge values on vertices produce interpolated arc segments.
func lwPolylinePoints(lw *entity.LwPolyline) []point {
	var pts []point

	for i := 0; i < len(lw.Vertices); i++ {
		v := lw.Vertices[i]
		current := point{X: v[0], Y: v[1]}

		bulge := 0.0
		if i < len(lw.Bulges) {
			bulge = lw.Bulges[i]
		}

		if math.Abs(bulge) > 1e-9 {
			nextIdx := (i + 1) % len(lw.Vertices)
			next := point{X: lw.Vertices[nextIdx][0], Y: lw.Vertices[nextIdx][1]}
			arcPts := bulgeArcPoints(current, next, bulge, 32)
			// The next vertex is added by the following iteration
			pts = append(pts, arcPts[:len(arcPts)-1]...)
		} else {
			pts = append(pts, current)
		}
	}

	return pts
}

// arcPoints samples n+1 points on the circle (cx, cy, r) from angle a0 to a1
// in radians.
func arcPoints(cx, cy, r, a0, a1 float64, n int) []point {
	pts := make([]point, n+1)
	for i := range pts {
		a := a0 + (a1-a0)*float64(i)/float64(n)
		pts[i] = point{X: cx + r*math.Cos(a), Y: cy + r*math.Sin(a)}
	}
	return pts
}

// bulgeArcPoints samples the arc from p1 to p2 described by a DXF bulge,
// the tangent of a quarter of the included angle. Positive bulges run
// counter-clockwise.
func bulgeArcPoints(p1, p2 point, bulge float64, n int) []point {
	chord := math.Hypot(p2.X-p1.X, p2.Y-p1.Y)
	if chord < 1e-9 {
		return []point{p1, p2}
	}

	included := 4 * math.Atan(bulge)
	r := chord / (2 * math.Sin(math.Abs(included)/2))

	// Center sits on the chord bisector, offset toward the arc's inside.
	mx, my := (p1.X+p2.X)/2, (p1.Y+p2.Y)/2
	ux, uy := (p2.X-p1.X)/chord, (p2.Y-p1.Y)/chord
	d := math.Sqrt(math.Max(r*r-chord*chord/4, 0))
	if math.Abs(included) > math.Pi {
		d = -d
	}
	if bulge < 0 {
		d = -d
	}
	cx, cy := mx-uy*d, my+ux*d

	a0 := math.Atan2(p1.Y-cy, p1.X-cx)
	return arcPoints(cx, cy, r, a0, a0+included, n)
}

// circlePoints approximates a circle as a regular n-gon.
func circlePoints(c *entity.Circle, n int) []point {
	pts := arcPoints(c.Center[0], c.Center[1], c.Radius, 0, 2*math.Pi, n)
	return pts[:n]
}

// arcToPoints samples a DXF ARC, whose angles are in degrees counter-clockwise.
func arcToPoints(a *entity.Arc, n int) []point {
	a0 := a.Angle[0] * math.Pi / 180
	a1 := a.Angle[1] * math.Pi / 180
	if a1 <= a0 {
		a1 += 2 * math.Pi
	}
	return arcPoints(a.Circle.Center[0], a.Circle.Center[1], a.Circle.Radius, a0, a1, n)
}

// pointsToSegments converts a point sequence to a slice of connected segments.
func pointsToSegments(pts []point, layer string) []segment {
	segs := make([]segment, 0, len(pts)-1)
	for i := 0; i < len(pts)-1; i++ {
		segs = append(segs, segment{start: pts[i], end: pts[i+1], layer: layer})
	}
	return segs
}

// chainSegments connects individual segments into closed outlines in the
// order their first segment appears. Open chains are dropped. tolerance is
// the maximum distance between endpoints to consider them connected.
func chainSegments(segs []segment, tolerance float64) []outline {
	if len(segs) == 0 {
		return nil
	}

	used := make([]bool, len(segs))
	var outlines []outline

	for startIdx := range segs {
		if used[startIdx] {
			continue
		}

		chain := []point{segs[startIdx].start, segs[startIdx].end}
		used[startIdx] = true

		changed := true
		for changed {
			changed = false
			tail := chain[len(chain)-1]

			for i, seg := range segs {
				if used[i] {
					continue
				}
				if pointsClose(tail, seg.start, tolerance) {
					chain = append(chain, seg.end)
					used[i] = true
					changed = true
					break
				}
				if pointsClose(tail, seg.end, tolerance) {
					chain = append(chain, seg.start)
					used[i] = true
					changed = true
					break
				}
			}
		}

		if len(chain) >= 4 && pointsClose(chain[0], chain[len(chain)-1], tolerance) {
			// Remove the duplicate closing point
			outlines = append(outlines, outline{points: chain[:len(chain)-1], layer: segs[startIdx].layer})
		}
	}

	return outlines
}

// pointsClose checks whether two points are within the given tolerance.
func pointsClose(a, b point, tolerance float64) bool {
	return math.Hypot(a.X-b.X, a.Y-b.Y) <= tolerance
}

// outlineArea computes the absolute area of a polygon using the shoelace formula.
func outlineArea(pts []point) float64 {
	n := len(pts)
	if n < 3 {
		return 0
	}
	var area float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += pts[i].X * pts[j].Y
		area -= pts[j].X * pts[i].Y
	}
	return math.Abs(area) / 2
}

func boundingBox(pts []point) (point, point) {
	minP := point{X: math.Inf(1), Y: math.Inf(1)}
	maxP := point{X: math.Inf(-1), Y: math.Inf(-1)}
	for _, p := range pts {
		minP.X = math.Min(minP.X, p.X)
		minP.Y = math.Min(minP.Y, p.Y)
		maxP.X = math.Max(maxP.X, p.X)
		maxP.Y = math.Max(maxP.Y, p.Y)
	}
	return minP, maxP
}
