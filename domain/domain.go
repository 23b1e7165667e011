package domain

import (
	"github.com/jedbrown/fem-2d/geometry2D"
	"github.com/jedbrown/fem-2d/mesh"
	"github.com/jedbrown/fem-2d/utils"
)

// Domain is a refined mesh and the degrees of freedom of the H(curl) space built on it
type Domain struct {
	Mesh      *mesh.Mesh
	DoFs      []DoF
	Specs     []BasisSpec
	elemSpecs map[int][]int
}

func NewDomain(m *mesh.Mesh) (d *Domain) {
	d = &Domain{Mesh: m}
	d.GenDoFs()
	return
}

/*
GenDoFs enumerates the degrees of freedom, edges in ascending id order first, then Elems.

An edge carries DoFs when it is interior, an Elem has the full edge as a side on both sides of it
and at least one of the two is a leaf. A refined side Elem keeps its BasisSpecs; the field of its
descendants along the edge comes from it.

Leaf Elems carry the interior functions, whose power modes vanish on every edge.
*/
func (d *Domain) GenDoFs() {
	d.DoFs, d.Specs = nil, nil
	d.elemSpecs = make(map[int][]int)
	m := d.Mesh
	for _, edge := range m.Edges {
		if edge.Boundary || edge.Elems[0] < 0 || edge.Elems[1] < 0 {
			continue
		}
		below, above := m.Elems[edge.Elems[0]], m.Elems[edge.Elems[1]]
		if !below.IsLeaf() && !above.IsLeaf() {
			continue
		}
		dir := edge.Dir
		maxOrder := below.PolyOrders[dir]
		if above.PolyOrders[dir] < maxOrder {
			maxOrder = above.PolyOrders[dir]
		}
		for k := 0; k <= maxOrder; k++ {
			dof := d.addDoF(EdgeDoF, edge.ID, dir, edgeOrders(dir, k, 0))
			d.addSpec(below.ID, dir, edgeOrders(dir, k, 1), dof, mesh.SideSlot(0, dir))
			d.addSpec(above.ID, dir, edgeOrders(dir, k, 0), dof, mesh.SideSlot(1, dir))
		}
	}
	for _, e := range m.Leaves() {
		pu, pv := e.PolyOrders[0], e.PolyOrders[1]
		for i := 0; i <= pu; i++ {
			for j := 2; j <= pv; j++ {
				dof := d.addDoF(ElemDoF, e.ID, geometry2D.U, [2]int{i, j})
				d.addSpec(e.ID, geometry2D.U, [2]int{i, j}, dof, -1)
			}
		}
		for i := 2; i <= pu; i++ {
			for j := 0; j <= pv; j++ {
				dof := d.addDoF(ElemDoF, e.ID, geometry2D.V, [2]int{i, j})
				d.addSpec(e.ID, geometry2D.V, [2]int{i, j}, dof, -1)
			}
		}
	}
	utils.Logger().Debug("generated degrees of freedom", "numDoFs", len(d.DoFs), "numSpecs", len(d.Specs),
		"numElems", len(d.elemSpecs))
}

// edgeOrders places the order along the edge and the hat index across it
func edgeOrders(dir geometry2D.ParaDir, k, hat int) [2]int {
	if dir == geometry2D.U {
		return [2]int{k, hat}
	}
	return [2]int{hat, k}
}

func (d *Domain) addDoF(kind DoFKind, owner int, dir geometry2D.ParaDir, orders [2]int) int {
	id := len(d.DoFs)
	d.DoFs = append(d.DoFs, DoF{ID: id, Kind: kind, Owner: owner, Dir: dir, Orders: orders})
	return id
}

func (d *Domain) addSpec(elemID int, dir geometry2D.ParaDir, orders [2]int, dof, slot int) {
	id := len(d.Specs)
	d.Specs = append(d.Specs, BasisSpec{
		ID:       id,
		Elem:     elemID,
		Dir:      dir,
		Orders:   orders,
		DoF:      dof,
		Kind:     d.DoFs[dof].Kind,
		EdgeSlot: slot,
	})
	d.elemSpecs[elemID] = append(d.elemSpecs[elemID], id)
}

func (d *Domain) NumDoFs() int { return len(d.DoFs) }

// LocalBasisSpecs are the BasisSpecs on an Elem, in id order
func (d *Domain) LocalBasisSpecs(elemID int) (specs []BasisSpec) {
	for _, id := range d.elemSpecs[elemID] {
		specs = append(specs, d.Specs[id])
	}
	return
}

type ElemSpecs struct {
	Elem  *mesh.Elem
	Specs []BasisSpec
}

// DescendantBasisSpecs groups the BasisSpecs of every descendant of an Elem that has any, in Elem id order
func (d *Domain) DescendantBasisSpecs(elemID int) (groups []ElemSpecs, err error) {
	var (
		desc []int
	)
	if desc, err = d.Mesh.Descendants(elemID); err != nil {
		return
	}
	for _, id := range desc {
		if specs := d.LocalBasisSpecs(id); len(specs) != 0 {
			groups = append(groups, ElemSpecs{Elem: d.Mesh.Elems[id], Specs: specs})
		}
	}
	return
}

// Elems are the Elems carrying at least one BasisSpec, in id order
func (d *Domain) Elems() (elems []*mesh.Elem) {
	for _, e := range d.Mesh.Elems {
		if len(d.elemSpecs[e.ID]) != 0 {
			elems = append(elems, e)
		}
	}
	return
}
