package eigensolver

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// PETScMatClassID opens a PETSc binary matrix file
const PETScMatClassID = 1211216

// AIJMatrixBinary is the PETSc binary layout: nonzeros per row, then columns and values in row order
type AIJMatrixBinary struct {
	A         []float64
	RowCounts []int32
	J         []int32
	Dim       int
}

func (sm *SparseMatrix) ToAIJBinary() (ab AIJMatrixBinary) {
	full := sm.fullEntries()
	ab = AIJMatrixBinary{
		A:         make([]float64, len(full)),
		RowCounts: make([]int32, sm.Dimension),
		J:         make([]int32, len(full)),
		Dim:       sm.Dimension,
	}
	for k, e := range full {
		ab.A[k], ab.J[k] = e.Value, int32(e.Col)
		ab.RowCounts[e.Row]++
	}
	return
}

// WritePETSc writes the matrix in PETSc's big endian MatLoad format
func (ab AIJMatrixBinary) WritePETSc(w io.Writer) (err error) {
	bw := bufio.NewWriter(w)
	header := []int32{PETScMatClassID, int32(ab.Dim), int32(ab.Dim), int32(len(ab.A))}
	for _, block := range []any{header, ab.RowCounts, ab.J, ab.A} {
		if err = binary.Write(bw, binary.BigEndian, block); err != nil {
			return
		}
	}
	return bw.Flush()
}

func (ab AIJMatrixBinary) WritePETScFile(path string) (err error) {
	var (
		f *os.File
	)
	if f, err = os.Create(path); err != nil {
		return
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if err = ab.WritePETSc(f); err != nil {
		err = fmt.Errorf("writing PETSc matrix to %s: %w", path, err)
	}
	return
}

// ReadPETSc reads a matrix written by WritePETSc
func ReadPETSc(r io.Reader) (ab AIJMatrixBinary, err error) {
	var (
		header [4]int32
	)
	br := bufio.NewReader(r)
	if err = binary.Read(br, binary.BigEndian, &header); err != nil {
		return
	}
	if header[0] != PETScMatClassID {
		err = fmt.Errorf("not a PETSc matrix, class id %d", header[0])
		return
	}
	if header[1] != header[2] {
		err = fmt.Errorf("matrix is not square: %d x %d", header[1], header[2])
		return
	}
	ab.Dim = int(header[1])
	ab.RowCounts = make([]int32, ab.Dim)
	ab.J = make([]int32, header[3])
	ab.A = make([]float64, header[3])
	for _, block := range []any{ab.RowCounts, ab.J, ab.A} {
		if err = binary.Read(br, binary.BigEndian, block); err != nil {
			return
		}
	}
	return
}

// ToAIJ converts the row counts back into row offsets
func (ab AIJMatrixBinary) ToAIJ() (aij AIJMatrix) {
	aij = AIJMatrix{
		A:   ab.A,
		I:   make([]int, ab.Dim+1),
		J:   make([]int, len(ab.J)),
		Dim: ab.Dim,
	}
	for r, c := range ab.RowCounts {
		aij.I[r+1] = aij.I[r] + int(c)
	}
	for k, c := range ab.J {
		aij.J[k] = int(c)
	}
	return
}
