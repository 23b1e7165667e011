package mesh

import (
	"fmt"
	"os"
	"sort"

	"github.com/ghodss/yaml"

	"github.com/jedbrown/fem-2d/geometry2D"
	"github.com/jedbrown/fem-2d/types"
)

/*
Mesh holds the Elements read from a mesh file and the refinement tree of Elems grown out of them.
Elems, Nodes and Edges are indexed by id.
*/
type Mesh struct {
	Elements []*Element
	Elems    []*Elem
	Nodes    []*Node
	Edges    []*Edge
}

type meshFile struct {
	Nodes    [][]float64   `json:"Nodes"`
	Elements []elementFile `json:"Elements"`
}

type elementFile struct {
	NodeIDs   []int     `json:"node_ids"`
	Materials []float64 `json:"materials"`
}

func NewMeshFromFile(path string) (m *Mesh, err error) {
	var (
		data []byte
	)
	if data, err = os.ReadFile(path); err != nil {
		return
	}
	if m, err = ParseMesh(data); err != nil {
		err = fmt.Errorf("reading mesh file %s: %w", path, err)
	}
	return
}

// ParseMesh reads a JSON or YAML mesh description and builds the unrefined mesh
func ParseMesh(data []byte) (m *Mesh, err error) {
	var (
		mf meshFile
	)
	if err = yaml.Unmarshal(data, &mf); err != nil {
		err = fmt.Errorf("%w: %v", ErrMalformedMesh, err)
		return
	}
	if mf.Nodes == nil {
		err = fmt.Errorf("%w: missing Nodes", ErrMalformedMesh)
		return
	}
	if mf.Elements == nil {
		err = fmt.Errorf("%w: missing Elements", ErrMalformedMesh)
		return
	}
	m = &Mesh{}
	if err = m.readNodes(mf.Nodes); err != nil {
		return nil, err
	}
	if err = m.readElements(mf.Elements); err != nil {
		return nil, err
	}
	if err = m.buildEdges(); err != nil {
		return nil, err
	}
	return
}

func (m *Mesh) readNodes(coords [][]float64) (err error) {
	var (
		seen = make(map[[2]float64]int, len(coords))
	)
	m.Nodes = make([]*Node, len(coords))
	for i, xy := range coords {
		if len(xy) != 2 {
			return fmt.Errorf("%w: node %d has %d coordinates, need 2", ErrMalformedMesh, i, len(xy))
		}
		key := [2]float64{xy[0], xy[1]}
		if j, ok := seen[key]; ok {
			return fmt.Errorf("%w: nodes %d and %d share the location %v", ErrMalformedMesh, j, i, key)
		}
		seen[key] = i
		m.Nodes[i] = NewNode(i, geometry2D.NewPoint(xy[0], xy[1]), false)
	}
	return
}

func (m *Mesh) readElements(elements []elementFile) (err error) {
	var (
		nodeCounts = make([]int, len(m.Nodes))
	)
	m.Elements = make([]*Element, len(elements))
	m.Elems = make([]*Elem, len(elements))
	for i, ef := range elements {
		var (
			nodeIDs [4]int
			points  [4]geometry2D.Point
			props   [4]float64
		)
		if ef.NodeIDs == nil {
			return fmt.Errorf("%w: element %d is missing node_ids", ErrMalformedMesh, i)
		}
		if len(ef.NodeIDs) != 4 {
			return fmt.Errorf("%w: element %d has %d node_ids, need 4", ErrMalformedMesh, i, len(ef.NodeIDs))
		}
		if ef.Materials == nil {
			return fmt.Errorf("%w: element %d is missing materials", ErrMalformedMesh, i)
		}
		if len(ef.Materials) != 4 {
			return fmt.Errorf("%w: element %d has %d materials, need 4", ErrMalformedMesh, i, len(ef.Materials))
		}
		for k, id := range ef.NodeIDs {
			if id < 0 || id >= len(m.Nodes) {
				return fmt.Errorf("%w: element %d references node %d, valid ids are [0,%d)",
					ErrMalformedMesh, i, id, len(m.Nodes))
			}
			for kk := 0; kk < k; kk++ {
				if nodeIDs[kk] == id {
					return fmt.Errorf("%w: element %d references node %d twice", ErrMalformedMesh, i, id)
				}
			}
			nodeIDs[k] = id
			points[k] = m.Nodes[id].Point
			nodeCounts[id]++
		}
		copy(props[:], ef.Materials)
		if m.Elements[i], err = NewElement(i, points, MaterialsFromArray(props)); err != nil {
			return
		}
		// Edge slots are filled in by buildEdges
		m.Elems[i] = NewElem(i, nodeIDs, [4]int{-1, -1, -1, -1}, m.Elements[i])
	}
	for id, count := range nodeCounts {
		if count == 0 {
			return fmt.Errorf("%w: node %d is not referenced by any element", ErrMalformedMesh, id)
		}
		if count > 4 {
			return fmt.Errorf("%w: node %d is referenced by %d elements, at most 4 are allowed",
				ErrMalformedMesh, id, count)
		}
		m.Nodes[id].Boundary = count < 4
	}
	return
}

type edgeDef struct {
	corners [2]int
	side    int
}

// Each element contributes its bottom, top, left and right edges, with the side of the edge it lies on
var elementEdgeDefs = [4]edgeDef{
	{[2]int{0, 1}, 1},
	{[2]int{2, 3}, 0},
	{[2]int{0, 2}, 1},
	{[2]int{1, 3}, 0},
}

func (m *Mesh) buildEdges() (err error) {
	type edgeEntry struct {
		nodes [2]int
		dir   geometry2D.ParaDir
		elems [2]int
	}
	var (
		entries = make(map[types.PairKey]*edgeEntry)
	)
	for _, el := range m.Elems {
		for k, def := range elementEdgeDefs {
			nodes := [2]int{el.Nodes[def.corners[0]], el.Nodes[def.corners[1]]}
			dir := SlotDir(k)
			key := types.NewPairKey(nodes)
			entry, ok := entries[key]
			if !ok {
				entry = &edgeEntry{nodes: nodes, dir: dir, elems: [2]int{-1, -1}}
				entries[key] = entry
			}
			if entry.dir != dir || entry.nodes != nodes {
				return fmt.Errorf("%w: elements disagree on the orientation of the edge between nodes %v",
					ErrMalformedMesh, nodes)
			}
			if entry.elems[def.side] != -1 {
				return fmt.Errorf("%w: edge between nodes %v is claimed from side %d by elements %d and %d",
					ErrMalformedMesh, nodes, def.side, entry.elems[def.side], el.ID)
			}
			entry.elems[def.side] = el.ID
		}
	}
	keys := make([]types.PairKey, 0, len(entries))
	for key := range entries {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
	m.Edges = make([]*Edge, len(keys))
	for id, key := range keys {
		entry := entries[key]
		edge := NewEdge(id, entry.nodes, entry.dir, false)
		edge.Elems = entry.elems
		edge.Boundary = edge.NumAdjacent() == 1
		m.Edges[id] = edge
		for side, elID := range entry.elems {
			if elID >= 0 {
				m.Elems[elID].Edges[SideSlot(side, entry.dir)] = id
			}
		}
	}
	return
}

// Elem looks up an Elem by id
func (m *Mesh) Elem(id int) (e *Elem, err error) {
	if id < 0 || id >= len(m.Elems) {
		err = fmt.Errorf("%w: %d, mesh has %d elems", ErrUnknownElem, id, len(m.Elems))
		return
	}
	return m.Elems[id], nil
}

// Leaves are the Elems without children, in id order
func (m *Mesh) Leaves() (leaves []*Elem) {
	for _, e := range m.Elems {
		if e.IsLeaf() {
			leaves = append(leaves, e)
		}
	}
	return
}

// MaxExpansionOrders is the largest order per axis over all Elems
func (m *Mesh) MaxExpansionOrders() (max PolyOrders) {
	for _, e := range m.Elems {
		for d := 0; d < 2; d++ {
			if e.PolyOrders[d] > max[d] {
				max[d] = e.PolyOrders[d]
			}
		}
	}
	return
}

// Descendants are all Elems refined out of an Elem, in ascending id order
func (m *Mesh) Descendants(id int) (ids []int, err error) {
	var (
		e     *Elem
		queue []int
	)
	if e, err = m.Elem(id); err != nil {
		return
	}
	queue = append(queue, e.ChildIDs()...)
	for len(queue) != 0 {
		c := queue[0]
		queue = queue[1:]
		ids = append(ids, c)
		queue = append(queue, m.Elems[c].ChildIDs()...)
	}
	sort.Ints(ids)
	return
}

// Ancestors run from the parent of an Elem up to the root of its tree
func (m *Mesh) Ancestors(id int) (ids []int, err error) {
	var (
		e *Elem
	)
	if e, err = m.Elem(id); err != nil {
		return
	}
	for p, ok := e.ParentID(); ok; p, ok = m.Elems[p].ParentID() {
		ids = append(ids, p)
	}
	return
}

// ParametricRange is the extent of an Elem within its Element
func (m *Mesh) ParametricRange(id int) (r geometry2D.ParaRange, err error) {
	var (
		e *Elem
	)
	if e, err = m.Elem(id); err != nil {
		return
	}
	return e.ParametricRange(), nil
}

// RelativeParametricRange is the extent of an Elem within the (-1,1) square of one of its ancestors
func (m *Mesh) RelativeParametricRange(id, ancestorID int) (r geometry2D.ParaRange, err error) {
	var (
		e, anc *Elem
	)
	if e, err = m.Elem(id); err != nil {
		return
	}
	if anc, err = m.Elem(ancestorID); err != nil {
		return
	}
	if id == ancestorID {
		return geometry2D.FullRange(), nil
	}
	if e.Element != anc.Element {
		err = fmt.Errorf("elem %d is not a descendant of elem %d", id, ancestorID)
		return
	}
	ancestors, _ := m.Ancestors(id)
	for _, a := range ancestors {
		if a == ancestorID {
			return anc.ParametricRange().Relative(e.ParametricRange()), nil
		}
	}
	err = fmt.Errorf("elem %d is not a descendant of elem %d", id, ancestorID)
	return
}

func (m *Mesh) String() string {
	return fmt.Sprintf("Mesh with %d elements, %d elems (%d leaves), %d nodes, %d edges",
		len(m.Elements), len(m.Elems), len(m.Leaves()), len(m.Nodes), len(m.Edges))
}
