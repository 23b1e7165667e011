package eigensolver

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

var ErrNotConverged = errors.New("eigensolver did not converge")

// GEP is the generalized eigenproblem A u = lambda B u
type GEP struct {
	A, B AIJMatrix
}

func NewGEP(a, b *SparseMatrix) GEP {
	return GEP{A: a.ToAIJ(), B: b.ToAIJ()}
}

type EigenPair struct {
	Value  float64
	Vector []float64
}

func aijToDense(aij AIJMatrix) *mat.Dense {
	return aij.ToCSR().ToDense()
}

/*
SolveGEP finds the eigenpair of A u = lambda B u whose eigenvalue is closest to target, for
symmetric A and symmetric positive definite B. With B = L L^T the problem is reduced to the
standard symmetric problem C w = lambda w, C = L^-1 A L^-T, and u = L^-T w, normalized so that
u^T B u = 1.
*/
func SolveGEP(gep GEP, target float64) (ep EigenPair, err error) {
	var (
		n = gep.A.Dim
	)
	if n == 0 {
		err = errors.New("empty eigenproblem")
		return
	}
	if gep.B.Dim != n {
		err = fmt.Errorf("A is %d x %d but B is %d x %d", n, n, gep.B.Dim, gep.B.Dim)
		return
	}
	var (
		aD, bD = aijToDense(gep.A), aijToDense(gep.B)
		bSym   = mat.NewSymDense(n, nil)
		chol   mat.Cholesky
		L, Li  mat.TriDense
	)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			bSym.SetSym(i, j, 0.5*(bD.At(i, j)+bD.At(j, i)))
		}
	}
	if ok := chol.Factorize(bSym); !ok {
		err = fmt.Errorf("%w: B is not positive definite", ErrNotConverged)
		return
	}
	chol.LTo(&L)
	if err = Li.InverseTri(&L); err != nil {
		err = fmt.Errorf("%w: %v", ErrNotConverged, err)
		return
	}
	var lia, c mat.Dense
	lia.Mul(&Li, aD)
	c.Mul(&lia, Li.T())
	cSym := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			cSym.SetSym(i, j, 0.5*(c.At(i, j)+c.At(j, i)))
		}
	}
	var (
		es   mat.EigenSym
		vecs mat.Dense
	)
	if ok := es.Factorize(cSym, true); !ok {
		err = ErrNotConverged
		return
	}
	values := es.Values(nil)
	es.VectorsTo(&vecs)
	diffs := make([]float64, n)
	for i, v := range values {
		diffs[i] = math.Abs(v - target)
	}
	k := floats.MinIdx(diffs)
	var (
		w = mat.NewVecDense(n, nil)
		u = mat.NewVecDense(n, nil)
	)
	w.CopyVec(vecs.ColView(k))
	u.MulVec(Li.T(), w)
	ep = EigenPair{Value: values[k], Vector: u.RawVector().Data}
	return
}
