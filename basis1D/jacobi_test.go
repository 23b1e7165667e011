package basis1D

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJacobiPOrthonormality(t *testing.T) {
	// The Jacobi weights here are polynomials, so a Legendre rule with the weight folded in is exact
	x, wl := GaussLegendre(16, false)
	for _, ab := range [][2]float64{{0, 0}, {1, 1}, {2, 2}, {2, 1}} {
		w := make([]float64, len(x))
		for i, xi := range x {
			w[i] = wl[i] * math.Pow(1-xi, ab[0]) * math.Pow(1+xi, ab[1])
		}
		for n := 0; n < 6; n++ {
			pn := JacobiP(x, ab[0], ab[1], n)
			for m := 0; m <= n; m++ {
				pm := JacobiP(x, ab[0], ab[1], m)
				var sum float64
				for i := range x {
					sum += w[i] * pn[i] * pm[i]
				}
				want := 0.
				if n == m {
					want = 1.
				}
				assert.InDeltaf(t, want, sum, 1e-11, "alpha,beta = %v, <P%d, P%d> = %v", ab, n, m, sum)
			}
		}
	}
}

func TestDerivJacobiP(t *testing.T) {
	var (
		x = []float64{-0.9, -0.3, 0.1, 0.45, 0.8}
		h = 1e-5
	)
	shift := func(d float64) (r []float64) {
		r = make([]float64, len(x))
		for i := range x {
			r[i] = x[i] + d
		}
		return
	}
	for N := 0; N < 6; N++ {
		p := JacobiP(x, 2, 2, N)
		pp, pm := JacobiP(shift(h), 2, 2, N), JacobiP(shift(-h), 2, 2, N)
		d1, d2 := DerivJacobiP(x, 2, 2, N, 1), DerivJacobiP(x, 2, 2, N, 2)
		assert.Equal(t, d1, GradJacobiP(x, 2, 2, N))
		for i := range x {
			fd1 := (pp[i] - pm[i]) / (2 * h)
			fd2 := (pp[i] - 2*p[i] + pm[i]) / (h * h)
			assert.InDeltaf(t, fd1, d1[i], 1e-6, "N = %d, x = %v", N, x[i])
			assert.InDeltaf(t, fd2, d2[i], 1e-3, "N = %d, x = %v", N, x[i])
		}
	}
}

func TestLegendreTable(t *testing.T) {
	p, d1, d2 := LegendreTable(3, []float64{0.5, 1})
	assert.InDelta(t, -0.125, p[2][0], 1e-15)
	assert.InDelta(t, 1.5, d1[2][0], 1e-15)
	assert.InDelta(t, 3., d2[2][0], 1e-15)
	assert.InDelta(t, -0.4375, p[3][0], 1e-15)
	assert.InDelta(t, 0.375, d1[3][0], 1e-15)
	assert.InDelta(t, 7.5, d2[3][0], 1e-15)
	for n := 0; n <= 3; n++ {
		// L_n(1) = 1, L'_n(1) = n(n+1)/2
		assert.InDelta(t, 1., p[n][1], 1e-15)
		assert.InDelta(t, float64(n*(n+1))/2, d1[n][1], 1e-14)
	}

	p0, _, _ := LegendreTable(0, []float64{0.3})
	assert.Equal(t, [][]float64{{1}}, p0)

	// Orthonormal Legendre from JacobiP is sqrt((2n+1)/2) L_n
	x := []float64{-0.7, 0.2, 0.6}
	p, _, _ = LegendreTable(4, x)
	for n := 0; n <= 4; n++ {
		j := JacobiP(x, 0, 0, n)
		for i := range x {
			assert.InDelta(t, math.Sqrt(float64(2*n+1)/2)*p[n][i], j[i], 1e-13)
		}
	}
}
