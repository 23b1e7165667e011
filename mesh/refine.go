package mesh

import (
	"fmt"
	"math"

	"github.com/jedbrown/fem-2d/geometry2D"
	"github.com/jedbrown/fem-2d/utils"
)

// splitSlots are the edge slots a refinement splits and the fraction along each edge of the split
func splitSlots(ref HRef) (slots []int, frac float64) {
	switch ref.Kind {
	case RefT:
		return []int{EdgeBottom, EdgeTop, EdgeLeft, EdgeRight}, 0.5
	case RefU:
		return []int{EdgeBottom, EdgeTop}, ref.ratio()
	default:
		return []int{EdgeLeft, EdgeRight}, ref.ratio()
	}
}

func (m *Mesh) splitPoint(edgeID int, frac float64) geometry2D.Point {
	edge := m.Edges[edgeID]
	return m.Nodes[edge.Nodes[0]].Point.Lerp(m.Nodes[edge.Nodes[1]].Point, frac)
}

func (m *Mesh) splitTolerance(edgeID int) float64 {
	edge := m.Edges[edgeID]
	return 1e-9 * m.Nodes[edge.Nodes[1]].Point.Minus(m.Nodes[edge.Nodes[0]].Point).Norm()
}

// checkHRefinement runs every check of a refinement batch without touching the mesh
func (m *Mesh) checkHRefinement(ids []int, ref HRef) (err error) {
	var (
		seen    = make(map[int]bool, len(ids))
		planned = make(map[int]geometry2D.Point)
	)
	if err = ref.Validate(); err != nil {
		return
	}
	slots, frac := splitSlots(ref)
	for _, id := range ids {
		var e *Elem
		if e, err = m.Elem(id); err != nil {
			return
		}
		if seen[id] || e.HasChildren() {
			return fmt.Errorf("%w: elem %d", ErrElemHasChildren, id)
		}
		seen[id] = true
		if _, err = e.childRanges(ref); err != nil {
			return
		}
		for _, slot := range slots {
			var (
				edgeID = e.Edges[slot]
				edge   = m.Edges[edgeID]
				point  = m.splitPoint(edgeID, frac)
				tol    = m.splitTolerance(edgeID)
			)
			if edge.HasChildren() {
				if existing := m.Nodes[edge.SplitNode].Point; !existing.Near(point, tol) {
					return fmt.Errorf("%w: elem %d would split edge %d at %v, it is split at %v",
						ErrIncompatibleSplit, id, edgeID, point, existing)
				}
				continue
			}
			if p, ok := planned[edgeID]; ok && !p.Near(point, tol) {
				return fmt.Errorf("%w: elem %d would split edge %d at %v, another elem in the batch splits it at %v",
					ErrIncompatibleSplit, id, edgeID, point, p)
			}
			planned[edgeID] = point
		}
	}
	return
}

/*
HRefineElems refines each listed Elem. The whole batch is checked first: if any Elem is unknown,
already refined, would produce children below MinEdgeLength, or would split an edge at a point
other than an existing split, the mesh is left unchanged.
*/
func (m *Mesh) HRefineElems(ids []int, ref HRef) (err error) {
	if err = m.checkHRefinement(ids, ref); err != nil {
		return
	}
	for _, id := range ids {
		if err = m.hRefineElem(m.Elems[id], ref); err != nil {
			return
		}
	}
	utils.Logger().Debug("h-refined elems", "elems", ids, "refinement", ref.String(),
		"numElems", len(m.Elems), "numNodes", len(m.Nodes), "numEdges", len(m.Edges),
		"minWidth", m.minParametricWidth())
	return
}

// GlobalHRefinement refines every leaf
func (m *Mesh) GlobalHRefinement(ref HRef) error {
	leaves := m.Leaves()
	ids := make([]int, len(leaves))
	for i, e := range leaves {
		ids[i] = e.ID
	}
	return m.HRefineElems(ids, ref)
}

type edgeSplit struct {
	node   int
	halves [2]int
}

func (m *Mesh) newNode(point geometry2D.Point, boundary bool) int {
	id := len(m.Nodes)
	m.Nodes = append(m.Nodes, NewNode(id, point, boundary))
	return id
}

func (m *Mesh) newEdge(nodes [2]int, dir geometry2D.ParaDir, boundary bool) int {
	id := len(m.Edges)
	m.Edges = append(m.Edges, NewEdge(id, nodes, dir, boundary))
	return id
}

// splitEdge reuses the existing split of an edge or creates the split node and the two halves
func (m *Mesh) splitEdge(edgeID int, frac float64) edgeSplit {
	edge := m.Edges[edgeID]
	if edge.HasChildren() {
		return edgeSplit{node: edge.SplitNode, halves: [2]int{edge.Children[0], edge.Children[1]}}
	}
	mid := m.newNode(m.splitPoint(edgeID, frac), edge.Boundary)
	halves := [2]int{
		m.newEdge([2]int{edge.Nodes[0], mid}, edge.Dir, edge.Boundary),
		m.newEdge([2]int{mid, edge.Nodes[1]}, edge.Dir, edge.Boundary),
	}
	for _, h := range halves {
		m.Edges[h].Parent = edgeID
	}
	edge.Children = halves[:]
	edge.SplitNode = mid
	return edgeSplit{node: mid, halves: halves}
}

func (m *Mesh) hRefineElem(e *Elem, ref HRef) (err error) {
	var (
		counter  = len(m.Elems)
		children []*ElemUninit
		n, ed    = e.Nodes, e.Edges
		frac     = ref.ratio()
	)
	if children, err = e.HRefine(ref, &counter); err != nil {
		return
	}
	setSlots := func(c *ElemUninit, nodes, edges [4]int) {
		for k := 0; k < 4; k++ {
			c.SetNode(k, nodes[k])
			c.SetEdge(k, edges[k])
		}
	}
	switch ref.Kind {
	case RefT:
		var (
			b = m.splitEdge(ed[EdgeBottom], 0.5)
			t = m.splitEdge(ed[EdgeTop], 0.5)
			l = m.splitEdge(ed[EdgeLeft], 0.5)
			r = m.splitEdge(ed[EdgeRight], 0.5)
		)
		center := m.newNode(m.Nodes[b.node].Point.Lerp(m.Nodes[t.node].Point, 0.5), false)
		var (
			cb = m.newEdge([2]int{b.node, center}, geometry2D.V, false)
			ct = m.newEdge([2]int{center, t.node}, geometry2D.V, false)
			cl = m.newEdge([2]int{l.node, center}, geometry2D.U, false)
			cr = m.newEdge([2]int{center, r.node}, geometry2D.U, false)
		)
		setSlots(children[0], [4]int{n[0], b.node, l.node, center}, [4]int{b.halves[0], cl, l.halves[0], cb})
		setSlots(children[1], [4]int{b.node, n[1], center, r.node}, [4]int{b.halves[1], cr, cb, r.halves[0]})
		setSlots(children[2], [4]int{l.node, center, n[2], t.node}, [4]int{cl, t.halves[0], l.halves[1], ct})
		setSlots(children[3], [4]int{center, r.node, t.node, n[3]}, [4]int{cr, t.halves[1], ct, r.halves[1]})
	case RefU:
		var (
			b = m.splitEdge(ed[EdgeBottom], frac)
			t = m.splitEdge(ed[EdgeTop], frac)
		)
		mid := m.newEdge([2]int{b.node, t.node}, geometry2D.V, false)
		setSlots(children[0], [4]int{n[0], b.node, n[2], t.node}, [4]int{b.halves[0], t.halves[0], ed[EdgeLeft], mid})
		setSlots(children[1], [4]int{b.node, n[1], t.node, n[3]}, [4]int{b.halves[1], t.halves[1], mid, ed[EdgeRight]})
	case RefV:
		var (
			l = m.splitEdge(ed[EdgeLeft], frac)
			r = m.splitEdge(ed[EdgeRight], frac)
		)
		mid := m.newEdge([2]int{l.node, r.node}, geometry2D.U, false)
		setSlots(children[0], [4]int{n[0], n[1], l.node, r.node}, [4]int{ed[EdgeBottom], mid, l.halves[0], r.halves[0]})
		setSlots(children[1], [4]int{l.node, r.node, n[2], n[3]}, [4]int{mid, ed[EdgeTop], l.halves[1], r.halves[1]})
	}
	ids := make([]int, len(children))
	for i, cu := range children {
		var c *Elem
		if c, err = cu.IntoElem(); err != nil {
			return
		}
		if c.ID != len(m.Elems) {
			panic(fmt.Errorf("child elem id %d does not follow the last elem id %d", c.ID, len(m.Elems)-1))
		}
		m.Elems = append(m.Elems, c)
		for slot, edgeID := range c.Edges {
			m.Edges[edgeID].Elems[slotSide(slot)] = c.ID
		}
		ids[i] = c.ID
	}
	e.setChildren(ids, ref)
	return
}

func (m *Mesh) lookupElems(ids []int) (elems []*Elem, err error) {
	elems = make([]*Elem, len(ids))
	for i, id := range ids {
		if elems[i], err = m.Elem(id); err != nil {
			return nil, err
		}
	}
	return
}

func (m *Mesh) allElemIDs() (ids []int) {
	ids = make([]int, len(m.Elems))
	for i := range ids {
		ids[i] = i
	}
	return
}

// PRefineElems adjusts the expansion orders of the listed Elems. Nothing changes if any Elem would leave the allowed range.
func (m *Mesh) PRefineElems(ids []int, pref PRef) (err error) {
	var (
		elems  []*Elem
		orders []PolyOrders
	)
	if elems, err = m.lookupElems(ids); err != nil {
		return
	}
	orders = make([]PolyOrders, len(elems))
	for i, e := range elems {
		if orders[i], err = pref.Apply(e.PolyOrders); err != nil {
			return fmt.Errorf("p-refining elem %d by %s: %w", e.ID, pref, err)
		}
	}
	for i, e := range elems {
		e.PolyOrders = orders[i]
	}
	utils.Logger().Debug("p-refined elems", "elems", ids, "refinement", pref.String())
	return
}

func (m *Mesh) GlobalPRefinement(pref PRef) error {
	return m.PRefineElems(m.allElemIDs(), pref)
}

// SetExpansionOnElems sets the expansion orders of the listed Elems
func (m *Mesh) SetExpansionOnElems(ids []int, orders PolyOrders) (err error) {
	var (
		elems []*Elem
	)
	if err = orders.Validate(); err != nil {
		return
	}
	if elems, err = m.lookupElems(ids); err != nil {
		return
	}
	for _, e := range elems {
		e.PolyOrders = orders
	}
	return
}

func (m *Mesh) SetGlobalExpansion(orders PolyOrders) error {
	return m.SetExpansionOnElems(m.allElemIDs(), orders)
}

// minParametricWidth is the narrowest extent of any leaf, used in diagnostics
func (m *Mesh) minParametricWidth() (w float64) {
	w = math.MaxFloat64
	for _, e := range m.Leaves() {
		for _, d := range []geometry2D.ParaDir{geometry2D.U, geometry2D.V} {
			w = math.Min(w, e.paraRange.Width(d))
		}
	}
	return
}
