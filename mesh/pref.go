package mesh

import "fmt"

const (
	MaxPolynomialOrder = 20
	MinPolynomialOrder = 0
)

// PolyOrders is the expansion order per parametric axis
type PolyOrders [2]int

func DefaultPolyOrders() PolyOrders { return PolyOrders{1, 1} }

func (po PolyOrders) Validate() error {
	for d, o := range po {
		if o > MaxPolynomialOrder {
			return fmt.Errorf("%w: order %d on axis %d, max is %d", ErrMaxPolyOrder, o, d, MaxPolynomialOrder)
		}
		if o < MinPolynomialOrder {
			return fmt.Errorf("%w: order %d on axis %d", ErrNegativePolyOrder, o, d)
		}
	}
	return nil
}

// PRef is a change in expansion order per axis
type PRef struct {
	DU, DV int
}

func NewPRef(du, dv int) PRef { return PRef{DU: du, DV: dv} }

// Apply returns the refined orders, or an error if they leave the allowed range
func (pr PRef) Apply(po PolyOrders) (out PolyOrders, err error) {
	out = PolyOrders{po[0] + pr.DU, po[1] + pr.DV}
	if err = out.Validate(); err != nil {
		out = po
	}
	return
}

func (pr PRef) String() string {
	return fmt.Sprintf("[%+d, %+d]", pr.DU, pr.DV)
}
