package eigensolver

import (
	"fmt"
	"math"
	"sort"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"
)

/*
SparseMatrix is a square symmetric matrix holding only its upper triangle in a dictionary of keys.
Inserting [r,c] or [c,r] accumulates into the same entry.
*/
type SparseMatrix struct {
	Dimension int
	upper     *sparse.DOK
}

type Entry struct {
	Row, Col int
	Value    float64
}

func NewSparseMatrix(dimension int) *SparseMatrix {
	if dimension < 0 || uint64(dimension) > math.MaxUint32 {
		panic(fmt.Errorf("matrix dimension %d cannot exceed the size of a uint32", dimension))
	}
	return &SparseMatrix{
		Dimension: dimension,
		upper:     sparse.NewDOK(dimension, dimension),
	}
}

func upperIndex(row, col int) (lo, hi int) {
	if row <= col {
		return row, col
	}
	return col, row
}

func (sm *SparseMatrix) Insert(row, col int, value float64) {
	if row < 0 || row >= sm.Dimension || col < 0 || col >= sm.Dimension {
		panic(fmt.Errorf("index [%d,%d] exceeds matrix dimension %d", row, col, sm.Dimension))
	}
	lo, hi := upperIndex(row, col)
	sm.upper.Set(lo, hi, sm.upper.At(lo, hi)+value)
}

func (sm *SparseMatrix) InsertGroup(group []Entry) {
	for _, e := range group {
		sm.Insert(e.Row, e.Col, e.Value)
	}
}

// ConsumeMatrix moves every entry of other into sm, leaving other empty
func (sm *SparseMatrix) ConsumeMatrix(other *SparseMatrix) error {
	if sm.Dimension != other.Dimension {
		return fmt.Errorf("cannot consume a matrix of dimension %d into one of dimension %d",
			other.Dimension, sm.Dimension)
	}
	other.upper.DoNonZero(func(i, j int, v float64) {
		sm.upper.Set(i, j, sm.upper.At(i, j)+v)
	})
	other.upper = sparse.NewDOK(other.Dimension, other.Dimension)
	return nil
}

// NumEntries counts the stored entries of the full matrix, both triangles
func (sm *SparseMatrix) NumEntries() int {
	var (
		diag int
	)
	sm.upper.DoNonZero(func(i, j int, _ float64) {
		if i == j {
			diag++
		}
	})
	return 2*sm.upper.NNZ() - diag
}

// At returns the value at [row,col] in either triangle
func (sm *SparseMatrix) At(row, col int) float64 {
	return sm.upper.At(upperIndex(row, col))
}

func sortEntries(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Row != entries[j].Row {
			return entries[i].Row < entries[j].Row
		}
		return entries[i].Col < entries[j].Col
	})
}

// IterUpperTri visits the upper triangle in row then column order
func (sm *SparseMatrix) IterUpperTri(fn func(row, col int, value float64)) {
	upper := make([]Entry, 0, sm.upper.NNZ())
	sm.upper.DoNonZero(func(i, j int, v float64) {
		upper = append(upper, Entry{Row: i, Col: j, Value: v})
	})
	sortEntries(upper)
	for _, e := range upper {
		fn(e.Row, e.Col, e.Value)
	}
}

func (sm *SparseMatrix) ToDense() (d *mat.Dense) {
	if sm.Dimension == 0 {
		return &mat.Dense{}
	}
	d = sm.upper.ToDense()
	sm.upper.DoNonZero(func(i, j int, v float64) {
		d.Set(j, i, v)
	})
	return
}

// fullEntries lists both triangles sorted by row then column
func (sm *SparseMatrix) fullEntries() (full []Entry) {
	full = make([]Entry, 0, sm.NumEntries())
	sm.upper.DoNonZero(func(i, j int, v float64) {
		full = append(full, Entry{Row: i, Col: j, Value: v})
		if i != j {
			full = append(full, Entry{Row: j, Col: i, Value: v})
		}
	})
	sortEntries(full)
	return
}

func (sm *SparseMatrix) String() string {
	return fmt.Sprintf("SparseMatrix dimension: %d, entries: %d", sm.Dimension, sm.NumEntries())
}
