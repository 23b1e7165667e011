package basis1D

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/integrate/quad"
)

/*
GaussLegendre returns the N point Gauss-Legendre abscissas (ascending) and weights on (-1,1).
With withEndpoints set, -1 and +1 are added as the first and last samples with zero weight, so
second derivative tables can be evaluated on the interval ends without changing any integral.
*/
func GaussLegendre(N int, withEndpoints bool) (X, W []float64) {
	if N < 1 {
		panic("at least one quadrature point is required")
	}
	x := make([]float64, N)
	w := make([]float64, N)
	quad.Legendre{}.FixedLocations(x, w, -1, 1)

	ind := make([]int, N)
	for i := range ind {
		ind[i] = i
	}
	sort.Slice(ind, func(i, j int) bool { return x[ind[i]] < x[ind[j]] })

	if withEndpoints {
		X = make([]float64, 0, N+2)
		W = make([]float64, 0, N+2)
		X, W = append(X, -1), append(W, 0)
	}
	for _, i := range ind {
		X, W = append(X, x[i]), append(W, w[i])
	}
	if withEndpoints {
		X, W = append(X, 1), append(W, 0)
	}
	return
}

/*
ScaleGaussQuadPoints maps abscissas defined on (-1,1) into the sub-interval (min, max) of the
same axis. The scale is the half width of the sub-interval, i.e. the chain rule factor between the
two parametric coordinates.
*/
func ScaleGaussQuadPoints(points []float64, min, max float64) (scale float64, scaled []float64) {
	scale = 0.5 * (max - min)
	scaled = make([]float64, len(points))
	for i, p := range points {
		scaled[i] = min + (p+1)*scale
	}
	return
}

// DefaultNumPoints is five times the expansion order, rounded up to a power of two (never below 2)
func DefaultNumPoints(maxOrder int) int {
	conv := float64(5 * maxOrder)
	if conv < 2 {
		return 2
	}
	return int(math.Round(math.Pow(2, math.Ceil(math.Log2(conv)))))
}
