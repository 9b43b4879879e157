package schematic

import (
	"math"
)

// Place maps a point from library symbol coordinates to schematic
// coordinates for this instance.
//
// Library symbols are defined with Y increasing upward, schematic
// coordinates have Y increasing downward. The symbol is rotated
// counter-clockwise by Angle first, then mirrored.
func (s *Symbol) Place(p Position) Position {
	x, y := rotate(p.X, p.Y, s.Angle)

	switch s.Mirror {
	case "x":
		y = -y
	case "y":
		x = -x
	case "xy":
		x, y = -x, -y
	}

	return Position{X: s.Position.X + x, Y: s.Position.Y - y}
}

// rotate turns (x, y) counter-clockwise. Right angles are exact so pin
// tips stay on the grid.
func rotate(x, y, degrees float64) (float64, float64) {
	switch math.Mod(math.Mod(degrees, 360)+360, 360) {
	case 0:
		return x, y
	case 90:
		return -y, x
	case 180:
		return -x, -y
	case 270:
		return y, -x
	}
	rad := degrees * math.Pi / 180
	sin, cos := math.Sincos(rad)
	return x*cos - y*sin, x*sin + y*cos
}

// gridKey identifies a point, tolerating float noise below 0.1 µm
type gridKey struct {
	x, y int64
}

func keyOf(p Position) gridKey {
	return gridKey{x: int64(math.Round(p.X * 1e4)), y: int64(math.Round(p.Y * 1e4))}
}

// pointTolerance is the distance in mm under which a point is on a segment
const pointTolerance = 1e-3

// onSegment reports whether p lies on the segment a-b, ends included
func onSegment(p, a, b Position) bool {
	dx, dy := b.X-a.X, b.Y-a.Y
	length2 := dx*dx + dy*dy
	if length2 == 0 {
		return math.Hypot(p.X-a.X, p.Y-a.Y) <= pointTolerance
	}

	// Distance from the line through a-b
	cross := (p.X-a.X)*dy - (p.Y-a.Y)*dx
	if math.Abs(cross)/math.Sqrt(length2) > pointTolerance {
		return false
	}

	// Projection must fall between the ends
	dot := (p.X-a.X)*dx + (p.Y-a.Y)*dy
	slack := pointTolerance * math.Sqrt(length2)
	return dot >= -slack && dot <= length2+slack
}

// touches reports whether p lies anywhere on the wire
func (w *Wire) touches(p Position) bool {
	for i := 1; i < len(w.Points); i++ {
		if onSegment(p, w.Points[i-1], w.Points[i]) {
			return true
		}
	}
	return false
}

// ends returns the two free ends of the wire
func (w *Wire) ends() [2]Position {
	return [2]Position{w.Points[0], w.Points[len(w.Points)-1]}
}
