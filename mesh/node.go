package mesh

import (
	"fmt"

	"github.com/jedbrown/fem-2d/geometry2D"
)

// Node is a corner point shared by Elems
type Node struct {
	ID       int
	Point    geometry2D.Point
	Boundary bool
}

func NewNode(id int, point geometry2D.Point, boundary bool) *Node {
	return &Node{ID: id, Point: point, Boundary: boundary}
}

func (n *Node) String() string {
	return fmt.Sprintf("Node %d %v boundary: %v", n.ID, n.Point, n.Boundary)
}
