package basis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jedbrown/fem-2d/basis1D"
)

func TestParseFamily(t *testing.T) {
	f, err := ParseFamily("KOL")
	require.NoError(t, err)
	assert.Equal(t, KOL, f)
	f, err = ParseFamily("maxortho")
	require.NoError(t, err)
	assert.Equal(t, MaxOrtho, f)
	assert.Equal(t, "MaxOrtho", f.String())
	_, err = ParseFamily("hermite")
	assert.Error(t, err)
	assert.Panics(t, func() { Family(7).Factory() })
}

func TestKOLValues(t *testing.T) {
	x := []float64{-1, -0.5, 0, 0.5, 1}
	kol := NewKOLShapeFn(4, x, true)
	assert.Equal(t, 4, kol.MaxOrder())
	assert.Equal(t, 5, kol.NumPoints())
	for p, xx := range x {
		assert.InDelta(t, (1-xx)/2, kol.Power(0, p), 1e-15)
		assert.InDelta(t, (1+xx)/2, kol.Power(1, p), 1e-15)
		assert.InDelta(t, -0.5, kol.PowerD1(0, p), 1e-15)
		assert.InDelta(t, 0., kol.PowerD2(1, p), 1e-15)
		// phi_2 = (L_2 - L_0) / sqrt(6) = 3(x^2 - 1) / (2 sqrt(6))
		assert.InDelta(t, 3*(xx*xx-1)/(2*math.Sqrt(6)), kol.Power(2, p), 1e-14)
		assert.InDelta(t, 3*xx/math.Sqrt(6), kol.PowerD1(2, p), 1e-14)
		assert.InDelta(t, 3/math.Sqrt(6), kol.PowerD2(2, p), 1e-14)
		// Poly modes are Legendre polynomials
		assert.InDelta(t, 1., kol.Poly(0, p), 1e-15)
		assert.InDelta(t, xx, kol.Poly(1, p), 1e-15)
		assert.InDelta(t, (3*xx*xx-1)/2, kol.Poly(2, p), 1e-14)
	}
	// Bubbles vanish on the ends
	for n := 2; n <= 4; n++ {
		assert.InDelta(t, 0., kol.Power(n, 0), 1e-14)
		assert.InDelta(t, 0., kol.Power(n, 4), 1e-14)
	}
}

func TestMaxOrthoOrthogonality(t *testing.T) {
	X, W := basis1D.GaussLegendre(24, false)
	mo := NewMaxOrthoShapeFn(8, X, false)
	inner := func(f func(n, p int) float64, a, b int) (sum float64) {
		for p := range X {
			sum += W[p] * f(a, p) * f(b, p)
		}
		return
	}
	for a := 2; a <= 8; a++ {
		for b := 2; b <= 8; b++ {
			if a != b {
				assert.InDelta(t, 0., inner(mo.Power, a, b), 1e-12, "bubbles %d, %d", a, b)
			}
		}
	}
	for a := 0; a <= 8; a++ {
		for b := 0; b <= 8; b++ {
			expected := 0.
			if a == b {
				expected = 1
			}
			assert.InDelta(t, expected, inner(mo.Poly, a, b), 1e-12, "poly %d, %d", a, b)
		}
	}
	for p, x := range X {
		assert.InDelta(t, (1-x)/2, mo.Power(0, p), 1e-15)
		assert.InDelta(t, (1+x)/2, mo.Power(1, p), 1e-15)
	}
}

func TestShapeFnDerivatives(t *testing.T) {
	var (
		x  = []float64{-0.9, -0.3, 0.1, 0.6, 0.85}
		h  = 1e-5
		xp = make([]float64, len(x))
		xm = make([]float64, len(x))
	)
	for i := range x {
		xp[i], xm[i] = x[i]+h, x[i]-h
	}
	for _, family := range []Family{KOL, MaxOrtho} {
		var (
			fac    = family.Factory()
			sf     = fac(6, x, true)
			sfp    = fac(6, xp, true)
			sfm    = fac(6, xm, true)
			fd1    = func(f, g func(n, p int) float64, n, p int) float64 { return (f(n, p) - g(n, p)) / (2 * h) }
			fdNear = func(expected, got float64) bool {
				return math.Abs(expected-got) <= 1e-5*math.Max(1, math.Abs(expected))
			}
		)
		for n := 0; n <= 6; n++ {
			for p := range x {
				assert.True(t, fdNear(fd1(sfp.Power, sfm.Power, n, p), sf.PowerD1(n, p)), "%s power d1 n=%d", family, n)
				assert.True(t, fdNear(fd1(sfp.PowerD1, sfm.PowerD1, n, p), sf.PowerD2(n, p)), "%s power d2 n=%d", family, n)
				assert.True(t, fdNear(fd1(sfp.Poly, sfm.Poly, n, p), sf.PolyD1(n, p)), "%s poly d1 n=%d", family, n)
				assert.True(t, fdNear(fd1(sfp.PolyD1, sfm.PolyD1, n, p), sf.PolyD2(n, p)), "%s poly d2 n=%d", family, n)
			}
		}
	}
}

func TestShapeFnNoD2(t *testing.T) {
	for _, family := range []Family{KOL, MaxOrtho} {
		sf := family.Factory()(3, []float64{0, 0.5}, false)
		assert.NotPanics(t, func() { sf.PowerD1(3, 1) })
		assert.Panics(t, func() { sf.PowerD2(3, 1) })
		assert.Panics(t, func() { sf.PolyD2(0, 0) })
	}
}

func TestZeroOrderHats(t *testing.T) {
	x := []float64{-1, 0, 1}
	for _, f := range []Family{KOL, MaxOrtho} {
		sf := f.Factory()(0, x, false)
		assert.Equal(t, 0, sf.MaxOrder())
		poly0 := 1.
		if f == MaxOrtho {
			poly0 = 1 / math.Sqrt2
		}
		for p, xx := range x {
			assert.InDelta(t, (1-xx)/2, sf.Power(0, p), 1e-15, "%s", f)
			assert.InDelta(t, (1+xx)/2, sf.Power(1, p), 1e-15, "%s", f)
			assert.InDelta(t, 0.5, sf.PowerD1(1, p), 1e-15, "%s", f)
			assert.InDelta(t, poly0, sf.Poly(0, p), 1e-15, "%s", f)
		}
	}
}
