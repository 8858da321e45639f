package geom

import "math"

// Point2D is a position, in pixels or world units depending on the caller
type Point2D struct {
	X, Y float64
}

// Vector2D is a displacement between two points
type Vector2D struct {
	X, Y float64
}

func Pt(x, y float64) Point2D   { return Point2D{X: x, Y: y} }
func Vec(x, y float64) Vector2D { return Vector2D{X: x, Y: y} }

// Add translates p by v
func (p Point2D) Add(v Vector2D) Point2D { return Point2D{p.X + v.X, p.Y + v.Y} }

// Sub returns the vector from q to p
func (p Point2D) Sub(q Point2D) Vector2D { return Vector2D{p.X - q.X, p.Y - q.Y} }

// Average returns the midpoint of p and q
func Average(p, q Point2D) Point2D {
	return Point2D{(p.X + q.X) * 0.5, (p.Y + q.Y) * 0.5}
}

func (v Vector2D) Add(w Vector2D) Vector2D  { return Vector2D{v.X + w.X, v.Y + w.Y} }
func (v Vector2D) Scale(s float64) Vector2D { return Vector2D{v.X * s, v.Y * s} }
func (v Vector2D) LengthSquared() float64   { return v.X*v.X + v.Y*v.Y }
func (v Vector2D) Length() float64          { return math.Sqrt(v.LengthSquared()) }
func (v Vector2D) Negate() Vector2D         { return Vector2D{-v.X, -v.Y} }
func (v Vector2D) IsZero() bool             { return v.X == 0 && v.Y == 0 }

// AlignedRectangle2D is an axis-aligned rectangle. The zero value is empty:
// it bounds no point until Bound is called.
type AlignedRectangle2D struct {
	min, max Point2D
	nonEmpty bool
}

// NewRect returns the rectangle spanning the two corners, in any order
func NewRect(a, b Point2D) AlignedRectangle2D {
	var r AlignedRectangle2D
	r.Bound(a)
	r.Bound(b)
	return r
}

// Bound grows r to contain p
func (r *AlignedRectangle2D) Bound(p Point2D) {
	if !r.nonEmpty {
		r.min, r.max = p, p
		r.nonEmpty = true
		return
	}
	r.min.X = math.Min(r.min.X, p.X)
	r.min.Y = math.Min(r.min.Y, p.Y)
	r.max.X = math.Max(r.max.X, p.X)
	r.max.Y = math.Max(r.max.Y, p.Y)
}

func (r AlignedRectangle2D) IsEmpty() bool { return !r.nonEmpty }
func (r AlignedRectangle2D) Min() Point2D  { return r.min }
func (r AlignedRectangle2D) Max() Point2D  { return r.max }

// Diagonal is max - min; zero for an empty rectangle
func (r AlignedRectangle2D) Diagonal() Vector2D {
	if !r.nonEmpty {
		return Vector2D{}
	}
	return r.max.Sub(r.min)
}

func (r AlignedRectangle2D) Width() float64  { return r.Diagonal().X }
func (r AlignedRectangle2D) Height() float64 { return r.Diagonal().Y }

func (r AlignedRectangle2D) Center() Point2D {
	return Average(r.min, r.max)
}

// IsDegenerate reports whether r is empty or has zero extent on an axis
func (r AlignedRectangle2D) IsDegenerate() bool {
	d := r.Diagonal()
	return !r.nonEmpty || d.X == 0 || d.Y == 0
}

// Expand returns r grown by v on every side
func (r AlignedRectangle2D) Expand(v Vector2D) AlignedRectangle2D {
	if !r.nonEmpty {
		return r
	}
	return NewRect(r.min.Add(v.Negate()), r.max.Add(v))
}
