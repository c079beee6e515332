package rtree

import "math"

// positiveInfinity is used as the initial "nothing is better yet" sentinel
// when sweeping for a minimal enlargement, overlap or area.
var positiveInfinity = math.Inf(1)

// Envelope is an axis-aligned bounding rectangle.
// A freshly-declared Envelope is not usable until Extended at least once;
// use emptyEnvelope() to get the correct (+inf,+inf,-inf,-inf) sentinel.
type Envelope struct {
	MinX, MinY, MaxX, MaxY float64
}

// emptyEnvelope returns the sentinel envelope that Extend grows from.
func emptyEnvelope() Envelope {
	return Envelope{
		MinX: math.Inf(1),
		MinY: math.Inf(1),
		MaxX: math.Inf(-1),
		MaxY: math.Inf(-1),
	}
}

// Area returns the envelope's area. Undefined on an empty (never-extended) envelope.
func (e Envelope) Area() float64 {
	return (e.MaxX - e.MinX) * (e.MaxY - e.MinY)
}

// Margin returns the half-perimeter, used by the R* split heuristic.
func (e Envelope) Margin() float64 {
	return (e.MaxX - e.MinX) + (e.MaxY - e.MinY)
}

// Extend grows e in place to the MBR of e and other.
func (e *Envelope) Extend(other Envelope) {
	if other.MinX < e.MinX {
		e.MinX = other.MinX
	}
	if other.MinY < e.MinY {
		e.MinY = other.MinY
	}
	if other.MaxX > e.MaxX {
		e.MaxX = other.MaxX
	}
	if other.MaxY > e.MaxY {
		e.MaxY = other.MaxY
	}
}

// Intersects reports whether e and other share at least one point (closed test).
func (e Envelope) Intersects(other Envelope) bool {
	return other.MinX <= e.MaxX && other.MinY <= e.MaxY &&
		other.MaxX >= e.MinX && other.MaxY >= e.MinY
}

// Contains reports whether other is fully covered by e.
func (e Envelope) Contains(other Envelope) bool {
	return e.MinX <= other.MinX && e.MinY <= other.MinY &&
		other.MaxX <= e.MaxX && other.MaxY <= e.MaxY
}

// EnlargedArea returns the area of the MBR of e and other, without mutating either.
func (e Envelope) EnlargedArea(other Envelope) float64 {
	width := math.Max(other.MaxX, e.MaxX) - math.Min(other.MinX, e.MinX)
	height := math.Max(other.MaxY, e.MaxY) - math.Min(other.MinY, e.MinY)
	return width * height
}

// Valid reports whether e satisfies MinX<=MaxX and MinY<=MaxY, i.e. it can
// legally be passed to Insert/Load/Remove/Search.
func (e Envelope) Valid() bool {
	return e.MinX <= e.MaxX && e.MinY <= e.MaxY
}

// intersectionArea returns the area covered by both a and b, or 0 if they
// don't overlap.
func intersectionArea(a, b Envelope) float64 {
	width := math.Min(a.MaxX, b.MaxX) - math.Max(a.MinX, b.MinX)
	if width < 0 {
		width = 0
	}
	height := math.Min(a.MaxY, b.MaxY) - math.Max(a.MinY, b.MinY)
	if height < 0 {
		height = 0
	}
	return width * height
}
