package types

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPairKey(t *testing.T) {
	{ // Test packed int for pair labeling
		pk := NewPairKey([2]int{1, 0})
		assert.Equal(t, PairKey(1<<32), pk)
		assert.Equal(t, 0, pk.Lo())
		assert.Equal(t, 1, pk.Hi())

		pk = NewPairKey([2]int{0, 1})
		assert.Equal(t, PairKey(1<<32), pk)

		pk = NewPairKey([2]int{100, 1})
		assert.Equal(t, PairKey(100*(1<<32)+1), pk)
		assert.Equal(t, 1, pk.Lo())
		assert.Equal(t, 100, pk.Hi())

		// Test maximum/minimum indices
		pk = NewPairKey([2]int{1<<32 - 1, 1<<32 - 1})
		assert.Equal(t, PairKey(1<<64-1), pk)
		assert.Equal(t, 1<<32-1, pk.Lo())
		assert.Equal(t, 1<<32-1, pk.Hi())
	}
	{ // Out of range indices are a programming error
		assert.Panics(t, func() { NewPairKey([2]int{-1, 2}) })
		assert.Panics(t, func() { NewPairKey([2]int{0, 1 << 32}) })
	}
	{ // Row then column ordering
		keys := []PairKey{
			NewPairKey([2]int{2, 3}),
			NewPairKey([2]int{0, 4}),
			NewPairKey([2]int{1, 1}),
			NewPairKey([2]int{0, 1}),
		}
		sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
		var got [][2]int
		for _, k := range keys {
			got = append(got, [2]int{k.Lo(), k.Hi()})
		}
		assert.Equal(t, [][2]int{{0, 1}, {0, 4}, {1, 1}, {2, 3}}, got)
	}
}
