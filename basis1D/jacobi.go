package basis1D

import (
	"math"
)

/*
JacobiP evaluates the orthonormal Jacobi polynomial of order N with weight (1-x)^alpha (1+x)^beta
at the points r, using the three term recurrence.
*/
func JacobiP(r []float64, alpha, beta float64, N int) (p []float64) {
	var (
		Nc = len(r)
	)
	rg := 1. / math.Sqrt(gamma0(alpha, beta))
	if N == 0 {
		p = constArray(Nc, rg)
		return
	}
	pl := make([][]float64, N+1)
	pl[0] = constArray(Nc, rg)

	ab := alpha + beta
	rg1 := 1. / math.Sqrt(gamma1(alpha, beta))
	pl[1] = make([]float64, Nc)
	for i := 0; i < Nc; i++ {
		pl[1][i] = rg1 * ((ab+2.0)*r[i]/2.0 + (alpha-beta)/2.0)
	}
	if N == 1 {
		p = pl[1]
		return
	}

	a1 := alpha + 1.
	b1 := beta + 1.
	ab1 := ab + 1.
	aold := 2.0 * math.Sqrt(a1*b1/(ab+3.0)) / (ab + 2.0)
	for i := 0; i < N-1; i++ {
		ip1 := float64(i + 1)
		ip2 := ip1 + 1
		h1 := 2.0*ip1 + ab
		anew := 2.0 / (h1 + 2.0) * math.Sqrt(ip2*(ip1+ab1)*(ip1+a1)*(ip1+b1)/(h1+1.0)/(h1+3.0))
		bnew := -(alpha*alpha - beta*beta) / h1 / (h1 + 2.0)
		xi, xip1 := pl[i], pl[i+1]
		pl[i+2] = make([]float64, Nc)
		for j := range xi {
			pl[i+2][j] = (-aold*xi[j] + (r[j]-bnew)*xip1[j]) / anew
		}
		aold = anew
	}
	p = pl[N]
	return
}

// GradJacobiP is the first derivative of JacobiP
func GradJacobiP(r []float64, alpha, beta float64, N int) (p []float64) {
	return DerivJacobiP(r, alpha, beta, N, 1)
}

/*
DerivJacobiP is the k-th derivative of JacobiP. Each derivative of an orthonormal Jacobi polynomial
is a scaled orthonormal Jacobi polynomial of one lower order with both weight exponents raised by one.
*/
func DerivJacobiP(r []float64, alpha, beta float64, N, k int) (p []float64) {
	if k == 0 {
		return JacobiP(r, alpha, beta, N)
	}
	if N < k {
		p = make([]float64, len(r))
		return
	}
	fac := 1.
	for d := 0; d < k; d++ {
		n := float64(N - d)
		ab := alpha + beta + 2*float64(d)
		fac *= math.Sqrt(n * (n + ab + 1))
	}
	p = JacobiP(r, alpha+float64(k), beta+float64(k), N-k)
	for i, val := range p {
		p[i] = val * fac
	}
	return
}

func gamma0(alpha, beta float64) float64 {
	ab1 := alpha + beta + 1.
	a1 := alpha + 1.
	b1 := beta + 1.
	return math.Gamma(a1) * math.Gamma(b1) * math.Pow(2, ab1) / ab1 / math.Gamma(ab1)
}

func gamma1(alpha, beta float64) float64 {
	ab := alpha + beta
	a1 := alpha + 1.
	b1 := beta + 1.
	return a1 * b1 * gamma0(alpha, beta) / (ab + 3.0)
}

func constArray(N int, val float64) (v []float64) {
	v = make([]float64, N)
	for i := range v {
		v[i] = val
	}
	return
}
