package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jedbrown/fem-2d/geometry2D"
)

func TestHRef(t *testing.T) {
	ref, err := ParseHRef("t", 0)
	require.NoError(t, err)
	assert.Equal(t, NewHRefT(), ref)
	ref, err = ParseHRef("U", 0.25)
	require.NoError(t, err)
	assert.Equal(t, "U(0.25)", ref.String())
	_, err = ParseHRef("X", 0)
	assert.Error(t, err)
	_, err = ParseHRef("V", 1)
	assert.Error(t, err)
	_, err = ParseHRef("T", 0.3)
	assert.Error(t, err)

	assert.Equal(t, 4, NewHRefT().NumChildren())
	assert.Equal(t, 2, NewHRefV(0).NumChildren())
	assert.Panics(t, func() { NewHRefU(0).Location(2) })

	tests := []struct {
		ref   HRef
		index int
		r     geometry2D.ParaRange
	}{
		{NewHRefT(), 0, geometry2D.ParaRange{{-1, 0}, {-1, 0}}},
		{NewHRefT(), 1, geometry2D.ParaRange{{0, 1}, {-1, 0}}},
		{NewHRefT(), 2, geometry2D.ParaRange{{-1, 0}, {0, 1}}},
		{NewHRefT(), 3, geometry2D.ParaRange{{0, 1}, {0, 1}}},
		{NewHRefU(0), 0, geometry2D.ParaRange{{-1, 0}, {-1, 1}}},
		{NewHRefU(0.25), 1, geometry2D.ParaRange{{-0.5, 1}, {-1, 1}}},
		{NewHRefV(0.75), 0, geometry2D.ParaRange{{-1, 1}, {-1, 0.5}}},
		{NewHRefV(0), 1, geometry2D.ParaRange{{-1, 1}, {0, 1}}},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.r, tc.ref.Location(tc.index).Range(), "%s child %d", tc.ref, tc.index)
	}

	assert.Equal(t, HLevels{1, 1}, HLevels{}.Refined(NewHRefT()))
	assert.Equal(t, HLevels{2, 1}, HLevels{1, 1}.Refined(NewHRefU(0)))
	assert.Equal(t, HLevels{1, 2}, HLevels{1, 1}.Refined(NewHRefV(0)))
}

func TestElemUninit(t *testing.T) {
	m := newTestMesh(t)
	counter := len(m.Elems)
	children, err := m.Elems[2].HRefine(NewHRefV(0), &counter)
	require.NoError(t, err)
	require.Equal(t, 2, len(children))
	assert.Equal(t, 4, children[0].ID)
	assert.Equal(t, 5, children[1].ID)
	assert.Equal(t, 6, counter)
	// The mesh is untouched until the children are committed
	assert.True(t, m.Elems[2].IsLeaf())

	c := children[0]
	_, err = c.IntoElem()
	assert.ErrorIs(t, err, ErrUninitializedElem)

	for k := 0; k < 4; k++ {
		c.SetNode(k, 10+k)
	}
	for k := 0; k < 3; k++ {
		c.SetEdge(k, 20+k)
	}
	_, err = c.IntoElem()
	assert.ErrorIs(t, err, ErrUninitializedElem)

	// Same value is a no-op, a different value is a contract violation
	assert.NotPanics(t, func() { c.SetNode(0, 10) })
	assert.Panics(t, func() { c.SetNode(0, 11) })
	assert.Panics(t, func() { c.SetEdge(1, 30) })

	c.SetEdge(3, 23)
	e, err := c.IntoElem()
	require.NoError(t, err)
	assert.Equal(t, [4]int{10, 11, 12, 13}, e.Nodes)
	assert.Equal(t, [4]int{20, 21, 22, 23}, e.Edges)
	assert.Equal(t, HLevels{0, 1}, e.HLevels)
	assert.Equal(t, geometry2D.ParaRange{{-1, 1}, {-1, 0}}, e.ParametricRange())
	p, ok := e.ParentID()
	assert.True(t, ok)
	assert.Equal(t, 2, p)
	loc, ok := e.Location()
	assert.True(t, ok)
	assert.Equal(t, 0, loc.Index)
	assert.Equal(t, RefV, loc.Kind)
}

func TestPolyOrders(t *testing.T) {
	out, err := NewPRef(2, -1).Apply(PolyOrders{1, 1})
	require.NoError(t, err)
	assert.Equal(t, PolyOrders{3, 0}, out)
	out, err = NewPRef(0, -2).Apply(PolyOrders{1, 1})
	assert.ErrorIs(t, err, ErrNegativePolyOrder)
	assert.Equal(t, PolyOrders{1, 1}, out)
	_, err = NewPRef(20, 0).Apply(PolyOrders{1, 1})
	assert.ErrorIs(t, err, ErrMaxPolyOrder)
	assert.Equal(t, "[+1, -1]", NewPRef(1, -1).String())
}
