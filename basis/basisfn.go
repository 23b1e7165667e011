package basis

import (
	"fmt"
	"math"

	"github.com/jedbrown/fem-2d/basis1D"
	"github.com/jedbrown/fem-2d/geometry2D"
	"github.com/jedbrown/fem-2d/mesh"
)

/*
BasisFn samples the directed vector basis functions of an Elem on a tensor grid of points.
A U directed function of orders [i,j] has the parametric scalar poly_i(u) power_j(v) along u,
a V directed function has power_i(u) poly_j(v) along v.

When sampled over a descendant, the points are the quadrature points of the descendant mapped into
the Elem's parametric square, ParaScale holds the half widths of the descendant's range and every
value is still expressed in the Elem's own coordinates.
*/
type BasisFn struct {
	T, Ti     [][]geometry2D.M2D // Forward and inverse parametric gradient, indexed [m][n]
	Dt        [][]float64
	ParaScale [2]float64
	U, V      ShapeFn
	Materials mesh.Materials
}

func NewBasisFn(iMax, jMax int, computeD2 bool, uPoints, vPoints []float64, factory ShapeFnFactory,
	m *mesh.Mesh, elem, overDesc *mesh.Elem) (bf *BasisFn, err error) {
	var (
		uSample, vSample = uPoints, vPoints
	)
	bf = &BasisFn{
		ParaScale: [2]float64{1, 1},
		Materials: elem.Element.Materials,
	}
	if overDesc != nil {
		var r geometry2D.ParaRange
		if r, err = m.RelativeParametricRange(overDesc.ID, elem.ID); err != nil {
			return nil, fmt.Errorf("sampling elem %d over elem %d: %w", elem.ID, overDesc.ID, err)
		}
		bf.ParaScale[0], uSample = basis1D.ScaleGaussQuadPoints(uPoints, r[0][0], r[0][1])
		bf.ParaScale[1], vSample = basis1D.ScaleGaussQuadPoints(vPoints, r[1][0], r[1][1])
	}
	bf.T = make([][]geometry2D.M2D, len(uSample))
	bf.Ti = make([][]geometry2D.M2D, len(uSample))
	bf.Dt = make([][]float64, len(uSample))
	for m, u := range uSample {
		bf.T[m] = make([]geometry2D.M2D, len(vSample))
		bf.Ti[m] = make([]geometry2D.M2D, len(vSample))
		bf.Dt[m] = make([]float64, len(vSample))
		for n, v := range vSample {
			t := elem.ParametricGradient(geometry2D.V2D{u, v})
			bf.T[m][n], bf.Ti[m][n], bf.Dt[m][n] = t, t.Inverse(), t.Det()
		}
	}
	bf.U = factory(iMax, uSample, computeD2)
	bf.V = factory(jMax, vSample, computeD2)
	return
}

// Scalar is the parametric amplitude of a directed basis function at sample [m,n]
func (bf *BasisFn) Scalar(dir geometry2D.ParaDir, ij, mn [2]int) float64 {
	if dir == geometry2D.U {
		return bf.U.Poly(ij[0], mn[0]) * bf.V.Power(ij[1], mn[1])
	}
	return bf.U.Power(ij[0], mn[0]) * bf.V.Poly(ij[1], mn[1])
}

// DuScalar is the derivative of Scalar along u
func (bf *BasisFn) DuScalar(dir geometry2D.ParaDir, ij, mn [2]int) float64 {
	if dir == geometry2D.U {
		return bf.U.PolyD1(ij[0], mn[0]) * bf.V.Power(ij[1], mn[1])
	}
	return bf.U.PowerD1(ij[0], mn[0]) * bf.V.Poly(ij[1], mn[1])
}

// DvScalar is the derivative of Scalar along v
func (bf *BasisFn) DvScalar(dir geometry2D.ParaDir, ij, mn [2]int) float64 {
	if dir == geometry2D.U {
		return bf.U.Poly(ij[0], mn[0]) * bf.V.PowerD1(ij[1], mn[1])
	}
	return bf.U.Power(ij[0], mn[0]) * bf.V.PolyD1(ij[1], mn[1])
}

func (bf *BasisFn) DuuScalar(dir geometry2D.ParaDir, ij, mn [2]int) float64 {
	if dir == geometry2D.U {
		return bf.U.PolyD2(ij[0], mn[0]) * bf.V.Power(ij[1], mn[1])
	}
	return bf.U.PowerD2(ij[0], mn[0]) * bf.V.Poly(ij[1], mn[1])
}

func (bf *BasisFn) DvvScalar(dir geometry2D.ParaDir, ij, mn [2]int) float64 {
	if dir == geometry2D.U {
		return bf.U.Poly(ij[0], mn[0]) * bf.V.PowerD2(ij[1], mn[1])
	}
	return bf.U.Power(ij[0], mn[0]) * bf.V.PolyD2(ij[1], mn[1])
}

func (bf *BasisFn) DuvScalar(dir geometry2D.ParaDir, ij, mn [2]int) float64 {
	if dir == geometry2D.U {
		return bf.U.PolyD1(ij[0], mn[0]) * bf.V.PowerD1(ij[1], mn[1])
	}
	return bf.U.PowerD1(ij[0], mn[0]) * bf.V.PolyD1(ij[1], mn[1])
}

// Vector is the real space field of a directed basis function at sample [m,n]
func (bf *BasisFn) Vector(dir geometry2D.ParaDir, ij, mn [2]int) geometry2D.V2D {
	ti := bf.Ti[mn[0]][mn[1]]
	if dir == geometry2D.U {
		return ti.U.Scale(bf.Scalar(dir, ij, mn))
	}
	return ti.V.Scale(bf.Scalar(dir, ij, mn))
}

// Curl is the real space curl (dE_v/du - dE_u/dv) / det(T) of a directed basis function
func (bf *BasisFn) Curl(dir geometry2D.ParaDir, ij, mn [2]int) float64 {
	dt := bf.Dt[mn[0]][mn[1]]
	if dir == geometry2D.U {
		return -bf.DvScalar(dir, ij, mn) / dt
	}
	return bf.DuScalar(dir, ij, mn) / dt
}

// GLQScale converts quadrature weights of the sampled range into the Elem's parametric measure
func (bf *BasisFn) GLQScale() float64 {
	return bf.ParaScale[0] * bf.ParaScale[1]
}

// EdgeGLQScale converts 1D quadrature weights along the edge in the given slot into real arc length
func (bf *BasisFn) EdgeGLQScale(slot int) float64 {
	t := bf.T[0][0]
	if mesh.SlotDir(slot) == geometry2D.U {
		return math.Hypot(t.U[0], t.V[0]) * bf.ParaScale[0]
	}
	return math.Hypot(t.U[1], t.V[1]) * bf.ParaScale[1]
}

// DerivScale converts derivatives in the Elem's coordinates into derivatives in the sampled range's own coordinates
func (bf *BasisFn) DerivScale() [2]float64 {
	return bf.ParaScale
}

// SampleScale is the area element of sample [m,n]
func (bf *BasisFn) SampleScale(m, n int) float64 {
	return bf.Dt[m][n] * bf.GLQScale()
}

func (bf *BasisFn) NumSamples() (nu, nv int) {
	return bf.U.NumPoints(), bf.V.NumPoints()
}
