package basis

import (
	"fmt"
	"strings"
)

/*
ShapeFn is a table of 1D shape functions sampled on a fixed set of points. Power modes n=0,1 are
the linear hats (1-x)/2 and (1+x)/2, higher power modes vanish at both ends of (-1,1). Poly modes
are the polynomials paired with power modes in the directed basis functions.
*/
type ShapeFn interface {
	Power(n, p int) float64
	PowerD1(n, p int) float64
	PowerD2(n, p int) float64
	Poly(n, p int) float64
	PolyD1(n, p int) float64
	PolyD2(n, p int) float64
	MaxOrder() int
	NumPoints() int
}

type ShapeFnFactory func(maxOrder int, points []float64, computeD2 bool) ShapeFn

type Family uint8

const (
	KOL Family = iota
	MaxOrtho
)

func ParseFamily(label string) (f Family, err error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "kol", "":
		f = KOL
	case "maxortho", "max_ortho":
		f = MaxOrtho
	default:
		err = fmt.Errorf("unknown shape function family %q, must be one of KOL, MaxOrtho", label)
	}
	return
}

func (f Family) String() string {
	switch f {
	case KOL:
		return "KOL"
	case MaxOrtho:
		return "MaxOrtho"
	}
	return fmt.Sprintf("Family(%d)", uint8(f))
}

func (f Family) Factory() ShapeFnFactory {
	switch f {
	case KOL:
		return func(maxOrder int, points []float64, computeD2 bool) ShapeFn {
			return NewKOLShapeFn(maxOrder, points, computeD2)
		}
	case MaxOrtho:
		return func(maxOrder int, points []float64, computeD2 bool) ShapeFn {
			return NewMaxOrthoShapeFn(maxOrder, points, computeD2)
		}
	}
	panic(fmt.Errorf("no shape functions for %s", f))
}

// shapeTables holds the sampled modes, indexed [order][point]. Both hat modes are always present:
// edge functions use power mode 1 whatever the expansion order.
type shapeTables struct {
	maxOrder, numPoints     int
	hasD2                   bool
	power, powerD1, powerD2 [][]float64
	poly, polyD1, polyD2    [][]float64
}

func newShapeTables(maxOrder, numPoints int, computeD2 bool) (st shapeTables) {
	alloc := func() (t [][]float64) {
		t = make([][]float64, max(maxOrder, 1)+1)
		for n := range t {
			t[n] = make([]float64, numPoints)
		}
		return
	}
	st = shapeTables{
		maxOrder:  maxOrder,
		numPoints: numPoints,
		hasD2:     computeD2,
		power:     alloc(),
		powerD1:   alloc(),
		poly:      alloc(),
		polyD1:    alloc(),
	}
	if computeD2 {
		st.powerD2, st.polyD2 = alloc(), alloc()
	}
	return
}

// setHats fills power modes 0 and 1
func (st *shapeTables) setHats(points []float64) {
	for p, x := range points {
		st.power[0][p], st.powerD1[0][p] = (1-x)/2, -0.5
		st.power[1][p], st.powerD1[1][p] = (1+x)/2, 0.5
	}
}

func (st *shapeTables) checkD2() {
	if !st.hasD2 {
		panic("second derivatives were not computed for these shape functions")
	}
}

func (st *shapeTables) Power(n, p int) float64   { return st.power[n][p] }
func (st *shapeTables) PowerD1(n, p int) float64 { return st.powerD1[n][p] }
func (st *shapeTables) PowerD2(n, p int) float64 { st.checkD2(); return st.powerD2[n][p] }
func (st *shapeTables) Poly(n, p int) float64    { return st.poly[n][p] }
func (st *shapeTables) PolyD1(n, p int) float64  { return st.polyD1[n][p] }
func (st *shapeTables) PolyD2(n, p int) float64  { st.checkD2(); return st.polyD2[n][p] }
func (st *shapeTables) MaxOrder() int            { return st.maxOrder }
func (st *shapeTables) NumPoints() int           { return st.numPoints }
