package geometry2D

import (
	"fmt"
	"math"
)

// ParaDir is one of the two parametric axes of a rectangular element
type ParaDir uint8

const (
	U ParaDir = iota
	V
)

func (d ParaDir) String() string {
	switch d {
	case U:
		return "U"
	case V:
		return "V"
	}
	return fmt.Sprintf("ParaDir(%d)", uint8(d))
}

// Other returns the orthogonal axis
func (d ParaDir) Other() ParaDir {
	if d == U {
		return V
	}
	return U
}

// Point is a location in real space
type Point struct {
	X [2]float64
}

func NewPoint(x, y float64) Point {
	return Point{X: [2]float64{x, y}}
}

func (p Point) Minus(o Point) V2D {
	return V2D{p.X[0] - o.X[0], p.X[1] - o.X[1]}
}

// Lerp returns the point a fraction f of the way from p to o
func (p Point) Lerp(o Point, f float64) Point {
	return Point{X: [2]float64{
		p.X[0] + f*(o.X[0]-p.X[0]),
		p.X[1] + f*(o.X[1]-p.X[1]),
	}}
}

// Near compares locations within an absolute tolerance
func (p Point) Near(o Point, tol float64) bool {
	return math.Abs(p.X[0]-o.X[0]) <= tol && math.Abs(p.X[1]-o.X[1]) <= tol
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X[0], p.X[1])
}

// V2D is a two component vector, in either real or parametric space
type V2D [2]float64

func (v V2D) Dot(o V2D) float64 {
	return v[0]*o[0] + v[1]*o[1]
}

func (v V2D) Scale(a float64) V2D {
	return V2D{a * v[0], a * v[1]}
}

// Mul is the component-wise product
func (v V2D) Mul(o V2D) V2D {
	return V2D{v[0] * o[0], v[1] * o[1]}
}

func (v V2D) Add(o V2D) V2D {
	return V2D{v[0] + o[0], v[1] + o[1]}
}

func (v V2D) Norm() float64 {
	return math.Hypot(v[0], v[1])
}

/*
M2D is a 2x2 matrix stored by rows. For a coordinate transform T = d(x,y)/d(u,v), the rows of its
inverse are the real space gradients of the parametric coordinates: Ti.U = grad(u), Ti.V = grad(v).
*/
type M2D struct {
	U, V V2D
}

func NewM2D(r0, r1 V2D) M2D {
	return M2D{U: r0, V: r1}
}

// Diag builds a diagonal transform
func Diag(a, b float64) M2D {
	return M2D{U: V2D{a, 0}, V: V2D{0, b}}
}

func (m M2D) Det() float64 {
	return m.U[0]*m.V[1] - m.U[1]*m.V[0]
}

// Inverse panics on a singular matrix, a degenerate element is not recoverable
func (m M2D) Inverse() M2D {
	det := m.Det()
	if det == 0 {
		panic(fmt.Errorf("singular transform %v has no inverse", m))
	}
	return M2D{
		U: V2D{m.V[1] / det, -m.U[1] / det},
		V: V2D{-m.V[0] / det, m.U[0] / det},
	}
}

// ScaleCols multiplies column 0 by a and column 1 by b, i.e. m * Diag(a, b)
func (m M2D) ScaleCols(a, b float64) M2D {
	return M2D{
		U: V2D{m.U[0] * a, m.U[1] * b},
		V: V2D{m.V[0] * a, m.V[1] * b},
	}
}

func (m M2D) String() string {
	return fmt.Sprintf("[[%g, %g], [%g, %g]]", m.U[0], m.U[1], m.V[0], m.V[1])
}

/*
ParaRange is a sub-rectangle of a parametric square, [[uMin, uMax], [vMin, vMax]].
The full square is [[-1, 1], [-1, 1]].
*/
type ParaRange [2][2]float64

func FullRange() ParaRange {
	return ParaRange{{-1, 1}, {-1, 1}}
}

// Width is the extent along an axis
func (r ParaRange) Width(d ParaDir) float64 {
	return r[d][1] - r[d][0]
}

// Within maps a range given relative to r's own (-1,1) square into the coordinates r lives in
func (r ParaRange) Within(inner ParaRange) (out ParaRange) {
	for d := 0; d < 2; d++ {
		h := 0.5 * (r[d][1] - r[d][0])
		for e := 0; e < 2; e++ {
			out[d][e] = r[d][0] + (inner[d][e]+1)*h
		}
	}
	return
}

// Relative maps a range given in the coordinates r lives in, onto r's own (-1,1) square
func (r ParaRange) Relative(outer ParaRange) (out ParaRange) {
	for d := 0; d < 2; d++ {
		h := 0.5 * (r[d][1] - r[d][0])
		for e := 0; e < 2; e++ {
			out[d][e] = (outer[d][e]-r[d][0])/h - 1
		}
	}
	return
}
