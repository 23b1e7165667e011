package eigensolver

import (
	"github.com/james-bowman/sparse"
)

/*
AIJMatrix is the compressed sparse row form of a full symmetric matrix: I holds the offset of each
row into J and A (length Dim+1), J the column index of every stored value.
*/
type AIJMatrix struct {
	A   []float64
	I   []int
	J   []int
	Dim int
}

func (sm *SparseMatrix) ToAIJ() (aij AIJMatrix) {
	full := sm.fullEntries()
	aij = AIJMatrix{
		A:   make([]float64, len(full)),
		I:   make([]int, sm.Dimension+1),
		J:   make([]int, len(full)),
		Dim: sm.Dimension,
	}
	for k, e := range full {
		aij.A[k], aij.J[k] = e.Value, e.Col
		aij.I[e.Row+1]++
	}
	for r := 1; r <= sm.Dimension; r++ {
		aij.I[r] += aij.I[r-1]
	}
	return
}

func (aij AIJMatrix) NNZ() int { return len(aij.A) }

func (aij AIJMatrix) ToCSR() *sparse.CSR {
	return sparse.NewCSR(aij.Dim, aij.Dim, aij.I, aij.J, aij.A)
}
