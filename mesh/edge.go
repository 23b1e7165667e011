package mesh

import (
	"fmt"

	"github.com/jedbrown/fem-2d/geometry2D"
)

/*
Edge is the side shared by (up to) two Elems. Nodes are ordered along the edge direction:
left to right for U directed edges, bottom to top for V directed edges.

Side 0 is below (U edges) or left of (V edges) the edge, side 1 is above or right of it.
Elems holds, per side, the deepest Elem whose full side is exactly this edge (-1 for none).
After an h-refinement splits the edge, the halves are recorded as Children and the Elem that
was split stays on its side of the parent edge.
*/
type Edge struct {
	ID        int
	Nodes     [2]int
	Dir       geometry2D.ParaDir
	Boundary  bool
	Parent    int
	Children  []int
	SplitNode int
	Elems     [2]int
}

func NewEdge(id int, nodes [2]int, dir geometry2D.ParaDir, boundary bool) *Edge {
	return &Edge{
		ID:        id,
		Nodes:     nodes,
		Dir:       dir,
		Boundary:  boundary,
		Parent:    -1,
		SplitNode: -1,
		Elems:     [2]int{-1, -1},
	}
}

func (e *Edge) HasChildren() bool { return len(e.Children) != 0 }

// NumAdjacent counts the sides with an adjacent Elem
func (e *Edge) NumAdjacent() (n int) {
	for _, id := range e.Elems {
		if id >= 0 {
			n++
		}
	}
	return
}

func (e *Edge) String() string {
	return fmt.Sprintf("Edge %d %s nodes: %v elems: %v boundary: %v children: %v",
		e.ID, e.Dir, e.Nodes, e.Elems, e.Boundary, e.Children)
}

// Elem edge slots, matching the corner layout
//
//	2 --------- 3
//	|     1     |
//	|2         3|
//	|     0     |
//	0 --------- 1
const (
	EdgeBottom = iota
	EdgeTop
	EdgeLeft
	EdgeRight
)

// slotSide is the side of an edge an Elem lies on, given the slot the edge fills on that Elem
func slotSide(slot int) int {
	switch slot {
	case EdgeBottom, EdgeLeft:
		return 1
	case EdgeTop, EdgeRight:
		return 0
	}
	panic(fmt.Errorf("edge slot %d out of range", slot))
}

// SideSlot is the slot an edge fills on an Elem lying on the given side of it
func SideSlot(side int, dir geometry2D.ParaDir) int {
	switch {
	case side == 0 && dir == geometry2D.U:
		return EdgeTop
	case side == 1 && dir == geometry2D.U:
		return EdgeBottom
	case side == 0 && dir == geometry2D.V:
		return EdgeRight
	case side == 1 && dir == geometry2D.V:
		return EdgeLeft
	}
	panic(fmt.Errorf("edge side %d out of range", side))
}

// SlotDir is the direction of the edge filling a slot
func SlotDir(slot int) geometry2D.ParaDir {
	if slot == EdgeBottom || slot == EdgeTop {
		return geometry2D.U
	}
	return geometry2D.V
}
