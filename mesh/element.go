package mesh

import (
	"fmt"

	"github.com/jedbrown/fem-2d/geometry2D"
)

// Materials are the complex valued relative permittivity and permeability of an Element
type Materials struct {
	EpsRel complex128
	MuRel  complex128
}

// MaterialsFromArray reads [eps_re, eps_im, mu_re, mu_im]
func MaterialsFromArray(props [4]float64) Materials {
	return Materials{
		EpsRel: complex(props[0], props[1]),
		MuRel:  complex(props[2], props[3]),
	}
}

func DefaultMaterials() Materials {
	return Materials{EpsRel: 1, MuRel: 1}
}

func (m Materials) String() string {
	return fmt.Sprintf("(ε_r: %v, μ_r: %v)", m.EpsRel, m.MuRel)
}

/*
Element is the rectangle in real space that an Elem tree is refined out of. Points are the
corners in the order bottom-left, bottom-right, top-left, top-right. The parametric square of an
Element is (-1,1) x (-1,1).
*/
type Element struct {
	ID        int
	Points    [4]geometry2D.Point
	Materials Materials
}

func NewElement(id int, points [4]geometry2D.Point, materials Materials) (el *Element, err error) {
	var (
		p = points
	)
	if p[0].X[1] != p[1].X[1] || p[2].X[1] != p[3].X[1] ||
		p[0].X[0] != p[2].X[0] || p[1].X[0] != p[3].X[0] {
		err = fmt.Errorf("%w: element %d is not an axis aligned rectangle: %v", ErrMalformedMesh, id, p)
		return
	}
	if !(p[3].X[0] > p[0].X[0] && p[3].X[1] > p[0].X[1]) {
		err = fmt.Errorf("%w: element %d corners are not ordered bottom-left, bottom-right, top-left, top-right: %v",
			ErrMalformedMesh, id, p)
		return
	}
	el = &Element{ID: id, Points: points, Materials: materials}
	return
}

// ParametricProjection maps a real point strictly inside the Element onto its parametric square
func (el *Element) ParametricProjection(real geometry2D.Point) (para geometry2D.V2D, err error) {
	var (
		p0, p3 = el.Points[0], el.Points[3]
	)
	for d := 0; d < 2; d++ {
		if !(real.X[d] > p0.X[d] && real.X[d] < p3.X[d]) {
			err = fmt.Errorf("real point %v is outside element %d; cannot project onto parametric space", real, el.ID)
			return
		}
		para[d] = mapRange(real.X[d], p0.X[d], p3.X[d], -1, 1)
	}
	return
}

// RealPoint maps a parametric point back into real space
func (el *Element) RealPoint(para geometry2D.V2D) geometry2D.Point {
	var (
		p0, p3 = el.Points[0], el.Points[3]
	)
	return geometry2D.NewPoint(
		mapRange(para[0], -1, 1, p0.X[0], p3.X[0]),
		mapRange(para[1], -1, 1, p0.X[1], p3.X[1]),
	)
}

// ParametricGradient is d(x,y)/d(u,v), constant over a rectangle
func (el *Element) ParametricGradient(_ geometry2D.V2D) geometry2D.M2D {
	dxdu := (el.Points[3].X[0] - el.Points[0].X[0]) / 2
	dydv := (el.Points[3].X[1] - el.Points[0].X[1]) / 2
	return geometry2D.Diag(dxdu, dydv)
}

func mapRange(val, inMin, inMax, outMin, outMax float64) float64 {
	return (val-inMin)*(outMax-outMin)/(inMax-inMin) + outMin
}
