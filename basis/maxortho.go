package basis

import (
	"github.com/jedbrown/fem-2d/basis1D"
)

/*
MaxOrthoShapeFn uses bubble power modes (1-x^2) P^(2,2)_{n-2}(x), which are mutually orthogonal in
L2, and the orthonormal Legendre polynomials P^(0,0)_n for poly functions.
*/
type MaxOrthoShapeFn struct {
	shapeTables
}

func NewMaxOrthoShapeFn(maxOrder int, points []float64, computeD2 bool) (mo *MaxOrthoShapeFn) {
	mo = &MaxOrthoShapeFn{shapeTables: newShapeTables(maxOrder, len(points), computeD2)}
	mo.setHats(points)
	for n := 0; n <= maxOrder; n++ {
		copy(mo.poly[n], basis1D.JacobiP(points, 0, 0, n))
		copy(mo.polyD1[n], basis1D.DerivJacobiP(points, 0, 0, n, 1))
		if computeD2 {
			copy(mo.polyD2[n], basis1D.DerivJacobiP(points, 0, 0, n, 2))
		}
		if n < 2 {
			continue
		}
		var (
			j   = basis1D.JacobiP(points, 2, 2, n-2)
			jD1 = basis1D.DerivJacobiP(points, 2, 2, n-2, 1)
			jD2 []float64
		)
		if computeD2 {
			jD2 = basis1D.DerivJacobiP(points, 2, 2, n-2, 2)
		}
		for p, x := range points {
			bub := 1 - x*x
			mo.power[n][p] = bub * j[p]
			mo.powerD1[n][p] = -2*x*j[p] + bub*jD1[p]
			if computeD2 {
				mo.powerD2[n][p] = -2*j[p] - 4*x*jD1[p] + bub*jD2[p]
			}
		}
	}
	return
}
