package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jedbrown/fem-2d/geometry2D"
	"github.com/jedbrown/fem-2d/mesh"
)

const testMeshJSON = `{
  "Nodes": [[0,0],[1,0],[2,0],[0,1],[1,1],[2,1],[0,2],[1,2],[2,2]],
  "Elements": [
    {"node_ids": [0,1,3,4], "materials": [1,0,1,0]},
    {"node_ids": [1,2,4,5], "materials": [1,0,1,0]},
    {"node_ids": [3,4,6,7], "materials": [1,0,1,0]},
    {"node_ids": [4,5,7,8], "materials": [1,0,1,0]}
  ]
}`

func newTestMesh(t *testing.T) *mesh.Mesh {
	m, err := mesh.ParseMesh([]byte(testMeshJSON))
	require.NoError(t, err)
	return m
}

func specCounts(d *Domain) (counts map[int]int) {
	counts = make(map[int]int)
	for _, e := range d.Elems() {
		counts[e.ID] = len(d.LocalBasisSpecs(e.ID))
	}
	return
}

func TestGenDoFsUnrefined(t *testing.T) {
	d := NewDomain(newTestMesh(t))
	// Two functions on each of the 4 interior edges
	assert.Equal(t, 8, d.NumDoFs())
	assert.Equal(t, 16, len(d.Specs))
	assert.Equal(t, map[int]int{0: 4, 1: 4, 2: 4, 3: 4}, specCounts(d))
	for i, dof := range d.DoFs {
		assert.Equal(t, i, dof.ID)
		assert.Equal(t, EdgeDoF, dof.Kind)
	}
	// Edges in ascending order: 3, 5, 7, 8
	assert.Equal(t, []int{3, 3, 5, 5, 7, 7, 8, 8}, func() (owners []int) {
		for _, dof := range d.DoFs {
			owners = append(owners, dof.Owner)
		}
		return
	}())

	// Edge 5 is the top of elem 0 and the bottom of elem 2
	specs := d.LocalBasisSpecs(0)
	require.Equal(t, 4, len(specs))
	var top []BasisSpec
	for _, s := range specs {
		if s.EdgeSlot == mesh.EdgeTop {
			top = append(top, s)
		}
	}
	require.Equal(t, 2, len(top))
	assert.Equal(t, geometry2D.U, top[0].Dir)
	assert.Equal(t, [2]int{0, 1}, top[0].Orders)
	assert.Equal(t, [2]int{1, 1}, top[1].Orders)
	for _, s := range d.LocalBasisSpecs(2) {
		if s.DoF == top[0].DoF {
			assert.Equal(t, [2]int{0, 0}, s.Orders)
			assert.Equal(t, mesh.EdgeBottom, s.EdgeSlot)
		}
	}
	// Edge 3 is the right side of elem 0 and the left of elem 1
	for _, s := range d.LocalBasisSpecs(1) {
		if s.DoF == 0 {
			assert.Equal(t, geometry2D.V, s.Dir)
			assert.Equal(t, [2]int{0, 0}, s.Orders)
			assert.Equal(t, mesh.EdgeLeft, s.EdgeSlot)
		}
	}
	for _, s := range specs {
		if s.DoF == 1 {
			assert.Equal(t, [2]int{1, 1}, s.Orders)
			assert.Equal(t, mesh.EdgeRight, s.EdgeSlot)
		}
	}
}

func TestGenDoFsRefined(t *testing.T) {
	m := newTestMesh(t)
	require.NoError(t, m.HRefineElems([]int{0}, mesh.NewHRefT()))
	d := NewDomain(m)
	assert.Equal(t, 16, d.NumDoFs())
	// The refined elem keeps the specs on the edges it shares with unrefined neighbors
	assert.Equal(t, map[int]int{0: 4, 1: 4, 2: 4, 3: 4, 4: 4, 5: 4, 6: 4, 7: 4}, specCounts(d))

	groups, err := d.DescendantBasisSpecs(0)
	require.NoError(t, err)
	require.Equal(t, 4, len(groups))
	for i, g := range groups {
		assert.Equal(t, 4+i, g.Elem.ID)
		assert.Equal(t, 4, len(g.Specs))
	}

	require.NoError(t, m.HRefineElems([]int{5}, mesh.NewHRefU(0)))
	d.GenDoFs()
	assert.Equal(t, 18, d.NumDoFs())
	assert.Equal(t, map[int]int{0: 4, 1: 4, 2: 4, 3: 4, 4: 4, 5: 2, 6: 4, 7: 4, 8: 4, 9: 2}, specCounts(d))
	groups, err = d.DescendantBasisSpecs(0)
	require.NoError(t, err)
	var ids []int
	for _, g := range groups {
		ids = append(ids, g.Elem.ID)
	}
	assert.Equal(t, []int{4, 5, 6, 7, 8, 9}, ids)
	groups, err = d.DescendantBasisSpecs(1)
	require.NoError(t, err)
	assert.Empty(t, groups)
	_, err = d.DescendantBasisSpecs(42)
	assert.ErrorIs(t, err, mesh.ErrUnknownElem)

	// Every DoF has exactly two specs, on elems that are not nested
	specsPerDoF := make(map[int][]int)
	for _, s := range d.Specs {
		specsPerDoF[s.DoF] = append(specsPerDoF[s.DoF], s.Elem)
	}
	for dof, elems := range specsPerDoF {
		require.Equal(t, 2, len(elems), "dof %d", dof)
		anc, err := m.Ancestors(elems[1])
		require.NoError(t, err)
		assert.NotContains(t, anc, elems[0])
	}
}

func TestGenDoFsHigherOrder(t *testing.T) {
	m := newTestMesh(t)
	require.NoError(t, m.SetGlobalExpansion(mesh.PolyOrders{2, 2}))
	d := NewDomain(m)
	// 3 per interior edge, 6 interior functions per elem
	assert.Equal(t, 12+24, d.NumDoFs())
	var interior int
	for _, dof := range d.DoFs {
		if dof.Kind == ElemDoF {
			interior++
			if dof.Dir == geometry2D.U {
				assert.Equal(t, 2, dof.Orders[1])
			} else {
				assert.Equal(t, 2, dof.Orders[0])
			}
		}
	}
	assert.Equal(t, 24, interior)
	// Edge DoFs come first
	assert.Equal(t, EdgeDoF, d.DoFs[11].Kind)
	assert.Equal(t, ElemDoF, d.DoFs[12].Kind)

	// Orders along an edge are limited by the lower order side
	m = newTestMesh(t)
	require.NoError(t, m.SetExpansionOnElems([]int{1}, mesh.PolyOrders{3, 1}))
	d = NewDomain(m)
	assert.Equal(t, 8+4, d.NumDoFs())

	// Deterministic
	before := append([]DoF(nil), d.DoFs...)
	d.GenDoFs()
	assert.Equal(t, before, d.DoFs)
}
