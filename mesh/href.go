package mesh

import (
	"fmt"
	"strings"

	"github.com/jedbrown/fem-2d/geometry2D"
)

// MinEdgeLength is the smallest parametric extent a refined Elem may have, relative to its Element
const MinEdgeLength = 1e-6

type HRefKind uint8

const (
	RefT HRefKind = iota // Quad split into 4 children: BL, BR, TL, TR
	RefU                 // Split across the u-axis: left, right
	RefV                 // Split across the v-axis: bottom, top
)

func (k HRefKind) String() string {
	switch k {
	case RefT:
		return "T"
	case RefU:
		return "U"
	case RefV:
		return "V"
	}
	return fmt.Sprintf("HRefKind(%d)", uint8(k))
}

// HRef is an h-refinement. Ratio is the fraction of the parent extent taken by child 0 for U and V
// refinements, a zero Ratio is a bisection.
type HRef struct {
	Kind  HRefKind
	Ratio float64
}

func NewHRefT() HRef { return HRef{Kind: RefT} }

func NewHRefU(ratio float64) HRef { return HRef{Kind: RefU, Ratio: ratio} }

func NewHRefV(ratio float64) HRef { return HRef{Kind: RefV, Ratio: ratio} }

// ParseHRef reads "T", "U" or "V" (case insensitive) with an optional ratio for U and V
func ParseHRef(label string, ratio float64) (ref HRef, err error) {
	switch strings.ToUpper(strings.TrimSpace(label)) {
	case "T":
		ref = HRef{Kind: RefT, Ratio: ratio}
	case "U":
		ref = NewHRefU(ratio)
	case "V":
		ref = NewHRefV(ratio)
	default:
		err = fmt.Errorf("unknown h-refinement type %q, must be one of T, U, V", label)
		return
	}
	err = ref.Validate()
	return
}

func (h HRef) Validate() error {
	if h.Kind > RefV {
		return fmt.Errorf("unknown h-refinement kind %d", h.Kind)
	}
	if h.Ratio == 0 {
		return nil
	}
	if h.Kind == RefT {
		return fmt.Errorf("T refinements are always bisections, got ratio %v", h.Ratio)
	}
	if !(h.Ratio > 0 && h.Ratio < 1) {
		return fmt.Errorf("h-refinement ratio must be in (0,1), got %v", h.Ratio)
	}
	return nil
}

func (h HRef) ratio() float64 {
	if h.Ratio == 0 {
		return 0.5
	}
	return h.Ratio
}

func (h HRef) NumChildren() int {
	if h.Kind == RefT {
		return 4
	}
	return 2
}

// Location of the child at index within the parent
func (h HRef) Location(index int) HRefLoc {
	if index < 0 || index >= h.NumChildren() {
		panic(fmt.Errorf("child index %d out of range for %s refinement", index, h))
	}
	return HRefLoc{Kind: h.Kind, Index: index, Ratio: h.ratio()}
}

// Splits reports whether the refinement splits the parent's extent along an axis
func (h HRef) Splits(d geometry2D.ParaDir) bool {
	switch h.Kind {
	case RefT:
		return true
	case RefU:
		return d == geometry2D.U
	}
	return d == geometry2D.V
}

func (h HRef) String() string {
	if h.Kind == RefT || h.Ratio == 0 {
		return h.Kind.String()
	}
	return fmt.Sprintf("%s(%v)", h.Kind, h.Ratio)
}

// HRefLoc is the position of a child within its parent
type HRefLoc struct {
	Kind  HRefKind
	Index int
	Ratio float64
}

// Range is the child's parametric range within the parent's (-1,1) square
func (l HRefLoc) Range() (r geometry2D.ParaRange) {
	var (
		split = -1 + 2*l.Ratio
	)
	r = geometry2D.FullRange()
	switch l.Kind {
	case RefT:
		// Index bit 0 is the u half, bit 1 is the v half
		r[0] = [2]float64{-1, 0}
		if l.Index&1 == 1 {
			r[0] = [2]float64{0, 1}
		}
		r[1] = [2]float64{-1, 0}
		if l.Index&2 == 2 {
			r[1] = [2]float64{0, 1}
		}
	case RefU:
		if l.Index == 0 {
			r[0][1] = split
		} else {
			r[0][0] = split
		}
	case RefV:
		if l.Index == 0 {
			r[1][1] = split
		} else {
			r[1][0] = split
		}
	}
	return
}

func (l HRefLoc) String() string {
	return fmt.Sprintf("%s child %d", l.Kind, l.Index)
}

// HLevels counts h-refinements per axis
type HLevels [2]int

func (hl HLevels) Refined(ref HRef) (out HLevels) {
	out = hl
	for _, d := range []geometry2D.ParaDir{geometry2D.U, geometry2D.V} {
		if ref.Splits(d) {
			out[d]++
		}
	}
	return
}
