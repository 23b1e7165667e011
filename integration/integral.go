package integration

import (
	"github.com/jedbrown/fem-2d/basis"
	"github.com/jedbrown/fem-2d/geometry2D"
)

// Integral is a bilinear form evaluated on a pair of directed basis functions over a shared sample grid
type Integral interface {
	Integrate(pDir, qDir geometry2D.ParaDir, pOrders, qOrders [2]int, p, q *basis.BasisFn) IntegralResult
}

// IntegralFactory builds an Integral from the quadrature weights of the samplers
type IntegralFactory func(uWeights, vWeights []float64) Integral

// IntegralResult holds the weighted integrand at every sample
type IntegralResult struct {
	grid [][]float64
}

func newIntegralResult(nu, nv int) (ir IntegralResult) {
	ir.grid = make([][]float64, nu)
	for m := range ir.grid {
		ir.grid[m] = make([]float64, nv)
	}
	return
}

// Surface is the value of the integral
func (ir IntegralResult) Surface() (sum float64) {
	for _, row := range ir.grid {
		for _, v := range row {
			sum += v
		}
	}
	return
}

// Full is the weighted integrand per sample, indexed [m][n]
func (ir IntegralResult) Full() [][]float64 {
	return ir.grid
}

// weightedGrid fills the grid with f at every sample times the quadrature weight and area element of p
func weightedGrid(uW, vW []float64, p *basis.BasisFn, f func(mn [2]int) float64) (ir IntegralResult) {
	ir = newIntegralResult(len(uW), len(vW))
	for m, wu := range uW {
		for n, wv := range vW {
			ir.grid[m][n] = wu * wv * p.SampleScale(m, n) * f([2]int{m, n})
		}
	}
	return
}

// CurlProduct is the curl-curl form weighted by the inverse relative permeability
type CurlProduct struct {
	uWeights, vWeights []float64
}

func NewCurlProduct(uWeights, vWeights []float64) Integral {
	return &CurlProduct{uWeights: uWeights, vWeights: vWeights}
}

func (cp *CurlProduct) Integrate(pDir, qDir geometry2D.ParaDir, pOrders, qOrders [2]int, p, q *basis.BasisFn) IntegralResult {
	scale := 1 / real(p.Materials.MuRel)
	return weightedGrid(cp.uWeights, cp.vWeights, p, func(mn [2]int) float64 {
		return scale * p.Curl(pDir, pOrders, mn) * q.Curl(qDir, qOrders, mn)
	})
}

// L2InnerProduct is the field inner product weighted by the relative permittivity
type L2InnerProduct struct {
	uWeights, vWeights []float64
}

func NewL2InnerProduct(uWeights, vWeights []float64) Integral {
	return &L2InnerProduct{uWeights: uWeights, vWeights: vWeights}
}

func (l2 *L2InnerProduct) Integrate(pDir, qDir geometry2D.ParaDir, pOrders, qOrders [2]int, p, q *basis.BasisFn) IntegralResult {
	scale := real(p.Materials.EpsRel)
	return weightedGrid(l2.uWeights, l2.vWeights, p, func(mn [2]int) float64 {
		return scale * p.Vector(pDir, pOrders, mn).Dot(q.Vector(qDir, qOrders, mn))
	})
}
