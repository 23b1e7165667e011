package mesh

import (
	"fmt"

	"github.com/jedbrown/fem-2d/geometry2D"
)

/*
Elem is a node of the refinement tree grown out of an Element. The corner slots of Nodes are
bottom-left, bottom-right, top-left, top-right; the Edges slots are bottom, top, left, right.
Once refined, an Elem stays in the mesh as the parent of its children.
*/
type Elem struct {
	ID         int
	Nodes      [4]int
	Edges      [4]int
	Element    *Element
	HLevels    HLevels
	PolyOrders PolyOrders
	paraRange  geometry2D.ParaRange
	children   *elemChildren
	parent     *elemParent
}

type elemChildren struct {
	IDs []int
	Ref HRef
}

type elemParent struct {
	ID  int
	Loc HRefLoc
}

func NewElem(id int, nodes, edges [4]int, element *Element) *Elem {
	return &Elem{
		ID:         id,
		Nodes:      nodes,
		Edges:      edges,
		Element:    element,
		PolyOrders: DefaultPolyOrders(),
		paraRange:  geometry2D.FullRange(),
	}
}

func (e *Elem) HasChildren() bool { return e.children != nil }

func (e *Elem) IsLeaf() bool { return e.children == nil }

func (e *Elem) ChildIDs() []int {
	if e.children == nil {
		return nil
	}
	return e.children.IDs
}

// Refinement is the h-refinement applied to the Elem, if any
func (e *Elem) Refinement() (ref HRef, ok bool) {
	if e.children == nil {
		return
	}
	return e.children.Ref, true
}

func (e *Elem) ParentID() (id int, ok bool) {
	if e.parent == nil {
		return -1, false
	}
	return e.parent.ID, true
}

// Location is where the Elem sits within its parent
func (e *Elem) Location() (loc HRefLoc, ok bool) {
	if e.parent == nil {
		return
	}
	return e.parent.Loc, true
}

// ParametricRange is the Elem's extent within its Element's (-1,1) square
func (e *Elem) ParametricRange() geometry2D.ParaRange { return e.paraRange }

// ParametricGradient is d(x,y)/d(u,v) with (u,v) the Elem's own (-1,1) coordinates
func (e *Elem) ParametricGradient(para geometry2D.V2D) geometry2D.M2D {
	r := e.paraRange
	return e.Element.ParametricGradient(e.elementCoords(para)).
		ScaleCols(r.Width(geometry2D.U)/2, r.Width(geometry2D.V)/2)
}

// RealPoint maps a point in the Elem's (-1,1) coordinates into real space
func (e *Elem) RealPoint(para geometry2D.V2D) geometry2D.Point {
	return e.Element.RealPoint(e.elementCoords(para))
}

func (e *Elem) elementCoords(para geometry2D.V2D) (out geometry2D.V2D) {
	r := e.paraRange
	for d := 0; d < 2; d++ {
		out[d] = r[d][0] + (para[d]+1)*0.5*(r[d][1]-r[d][0])
	}
	return
}

// childRanges are the parametric ranges of the children a refinement would produce
func (e *Elem) childRanges(ref HRef) (ranges []geometry2D.ParaRange, err error) {
	ranges = make([]geometry2D.ParaRange, ref.NumChildren())
	for i := range ranges {
		ranges[i] = e.paraRange.Within(ref.Location(i).Range())
		for _, d := range []geometry2D.ParaDir{geometry2D.U, geometry2D.V} {
			if ranges[i].Width(d) < MinEdgeLength {
				err = fmt.Errorf("%w: elem %d %s child %d has %s width %g",
					ErrMinEdgeLength, e.ID, ref, i, d, ranges[i].Width(d))
				return
			}
		}
	}
	return
}

/*
HRefine produces the uninitialized children of an h-refinement. Ids are taken sequentially from
idCounter. The caller fills the node and edge slots and promotes each child with IntoElem.
*/
func (e *Elem) HRefine(ref HRef, idCounter *int) (children []*ElemUninit, err error) {
	var (
		ranges []geometry2D.ParaRange
	)
	if e.HasChildren() {
		err = fmt.Errorf("%w: elem %d", ErrElemHasChildren, e.ID)
		return
	}
	if err = ref.Validate(); err != nil {
		return
	}
	if ranges, err = e.childRanges(ref); err != nil {
		return
	}
	children = make([]*ElemUninit, len(ranges))
	for i := range children {
		children[i] = newElemUninit(*idCounter, e, ref.Location(i), ranges[i], e.HLevels.Refined(ref))
		*idCounter++
	}
	return
}

func (e *Elem) setChildren(ids []int, ref HRef) {
	e.children = &elemChildren{IDs: ids, Ref: ref}
}

func (e *Elem) String() string {
	var (
		sb = fmt.Sprintf("Elem %d (element %d) nodes: %v edges: %v orders: %v h-levels: %v",
			e.ID, e.Element.ID, e.Nodes, e.Edges, e.PolyOrders, e.HLevels)
	)
	if e.parent != nil {
		sb += fmt.Sprintf(" parent: %d (%s)", e.parent.ID, e.parent.Loc)
	}
	if e.children != nil {
		sb += fmt.Sprintf(" children: %v (%s)", e.children.IDs, e.children.Ref)
	}
	return sb
}

// ElemUninit is a child Elem under construction
type ElemUninit struct {
	ID         int
	nodes      [4]int
	edges      [4]int
	nodeSet    [4]bool
	edgeSet    [4]bool
	element    *Element
	parent     elemParent
	paraRange  geometry2D.ParaRange
	hLevels    HLevels
	polyOrders PolyOrders
}

func newElemUninit(id int, parent *Elem, loc HRefLoc, r geometry2D.ParaRange, hl HLevels) *ElemUninit {
	return &ElemUninit{
		ID:         id,
		element:    parent.Element,
		parent:     elemParent{ID: parent.ID, Loc: loc},
		paraRange:  r,
		hLevels:    hl,
		polyOrders: parent.PolyOrders,
	}
}

// SetNode fills a corner slot. Setting a filled slot to a different node is a contract violation.
func (eu *ElemUninit) SetNode(slot, nodeID int) {
	if eu.nodeSet[slot] {
		if eu.nodes[slot] != nodeID {
			panic(fmt.Errorf("elem %d node slot %d already holds node %d, cannot set it to %d",
				eu.ID, slot, eu.nodes[slot], nodeID))
		}
		return
	}
	eu.nodes[slot], eu.nodeSet[slot] = nodeID, true
}

// SetEdge fills an edge slot. Setting a filled slot to a different edge is a contract violation.
func (eu *ElemUninit) SetEdge(slot, edgeID int) {
	if eu.edgeSet[slot] {
		if eu.edges[slot] != edgeID {
			panic(fmt.Errorf("elem %d edge slot %d already holds edge %d, cannot set it to %d",
				eu.ID, slot, eu.edges[slot], edgeID))
		}
		return
	}
	eu.edges[slot], eu.edgeSet[slot] = edgeID, true
}

func (eu *ElemUninit) IntoElem() (e *Elem, err error) {
	for i := 0; i < 4; i++ {
		if !eu.nodeSet[i] || !eu.edgeSet[i] {
			err = fmt.Errorf("%w: elem %d nodes set: %v edges set: %v", ErrUninitializedElem, eu.ID, eu.nodeSet, eu.edgeSet)
			return
		}
	}
	parent := eu.parent
	e = &Elem{
		ID:         eu.ID,
		Nodes:      eu.nodes,
		Edges:      eu.edges,
		Element:    eu.element,
		HLevels:    eu.hLevels,
		PolyOrders: eu.polyOrders,
		paraRange:  eu.paraRange,
		parent:     &parent,
	}
	return
}

func (eu *ElemUninit) String() string {
	return fmt.Sprintf("ElemUninit %d parent: %d (%s) nodes: %v %v edges: %v %v",
		eu.ID, eu.parent.ID, eu.parent.Loc, eu.nodes, eu.nodeSet, eu.edges, eu.edgeSet)
}
