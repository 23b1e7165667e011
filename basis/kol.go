package basis

import (
	"math"

	"github.com/jedbrown/fem-2d/basis1D"
)

/*
KOLShapeFn uses the integrated Legendre (kernel) modes for power functions,

	phi_n = (L_n - L_{n-2}) / sqrt(2(2n-1)),  n >= 2

and the Legendre polynomials L_n for poly functions.
*/
type KOLShapeFn struct {
	shapeTables
}

func NewKOLShapeFn(maxOrder int, points []float64, computeD2 bool) (kol *KOLShapeFn) {
	var (
		leg, legD1, legD2 = basis1D.LegendreTable(maxOrder, points)
	)
	kol = &KOLShapeFn{shapeTables: newShapeTables(maxOrder, len(points), computeD2)}
	kol.setHats(points)
	for n := 0; n <= maxOrder; n++ {
		copy(kol.poly[n], leg[n])
		copy(kol.polyD1[n], legD1[n])
		if computeD2 {
			copy(kol.polyD2[n], legD2[n])
		}
		if n < 2 {
			continue
		}
		var (
			fn    = float64(n)
			norm  = 1 / math.Sqrt(2*(2*fn-1))
			dnorm = math.Sqrt((2*fn - 1) / 2)
		)
		for p := range points {
			kol.power[n][p] = norm * (leg[n][p] - leg[n-2][p])
			kol.powerD1[n][p] = dnorm * leg[n-1][p]
			if computeD2 {
				kol.powerD2[n][p] = dnorm * legD1[n-1][p]
			}
		}
	}
	return
}
