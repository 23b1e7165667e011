package types

import (
	"fmt"
	"math"
)

/*
PairKey is an always positive number that stores a pair of indices in a way that can be compared.
A pair [4, 0] is always stored as [0, 4], in the ascending order of the index values, so the key
identifies an unordered pair, such as the mesh edge between two nodes.
*/
type PairKey uint64

func NewPairKey(pair [2]int) (packed PairKey) {
	// This packs two indices into two 32 bit unsigned integers to act as a hash and an indirect access method
	var (
		limit = math.MaxUint32
	)
	for _, ind := range pair {
		if ind < 0 || ind > limit {
			panic(fmt.Errorf("unable to pack two ints into a uint64, have %d and %d as inputs",
				pair[0], pair[1]))
		}
	}
	var i1, i2 int
	if pair[0] <= pair[1] {
		i1, i2 = pair[0], pair[1]
	} else {
		i1, i2 = pair[1], pair[0]
	}
	packed = PairKey(uint64(i1) | uint64(i2)<<32)
	return
}

// Lo and Hi are the smaller and larger index of the pair
func (pk PairKey) Lo() int { return int(pk & math.MaxUint32) }
func (pk PairKey) Hi() int { return int(pk >> 32) }

// Less orders keys by their low index, then their high index (row then column for matrix keys)
func (pk PairKey) Less(other PairKey) bool {
	if pk.Lo() != other.Lo() {
		return pk.Lo() < other.Lo()
	}
	return pk.Hi() < other.Hi()
}
