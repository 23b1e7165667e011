package domain

import (
	"fmt"

	"github.com/jedbrown/fem-2d/geometry2D"
)

type DoFKind uint8

const (
	EdgeDoF DoFKind = iota
	ElemDoF
)

func (k DoFKind) String() string {
	if k == EdgeDoF {
		return "Edge"
	}
	return "Elem"
}

// DoF is a global unknown, owned by an edge or by a leaf Elem
type DoF struct {
	ID     int
	Kind   DoFKind
	Owner  int
	Dir    geometry2D.ParaDir
	Orders [2]int
}

func (d DoF) String() string {
	return fmt.Sprintf("DoF %d: %s %d %s %v", d.ID, d.Kind, d.Owner, d.Dir, d.Orders)
}

/*
BasisSpec is the restriction of a DoF to one Elem: a directed basis function of orders [i,j] on
the Elem. Edge DoFs have one BasisSpec on each side of the edge, EdgeSlot is the slot the edge
fills on the Elem (-1 for Elem DoFs).
*/
type BasisSpec struct {
	ID       int
	Elem     int
	Dir      geometry2D.ParaDir
	Orders   [2]int
	DoF      int
	Kind     DoFKind
	EdgeSlot int
}

func (bs BasisSpec) String() string {
	return fmt.Sprintf("BasisSpec %d: elem %d %s %v (dof %d)", bs.ID, bs.Elem, bs.Dir, bs.Orders, bs.DoF)
}
