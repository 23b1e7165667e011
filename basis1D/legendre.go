package basis1D

/*
LegendreTable evaluates the (unnormalized, L_n(1) = 1) Legendre polynomials up to maxOrder and their
first two derivatives at every point of x. Tables are indexed [order][point].

	(n+1) L_{n+1} = (2n+1) x L_n - n L_{n-1}
	L'_{n+1}      = L'_{n-1} + (2n+1) L_n
	L''_{n+1}     = L''_{n-1} + (2n+1) L'_n
*/
func LegendreTable(maxOrder int, x []float64) (p, d1, d2 [][]float64) {
	var (
		Np = len(x)
	)
	p = make([][]float64, maxOrder+1)
	d1 = make([][]float64, maxOrder+1)
	d2 = make([][]float64, maxOrder+1)
	for n := range p {
		p[n] = make([]float64, Np)
		d1[n] = make([]float64, Np)
		d2[n] = make([]float64, Np)
	}
	for i, xi := range x {
		p[0][i] = 1
		if maxOrder == 0 {
			continue
		}
		p[1][i] = xi
		d1[1][i] = 1
		for n := 1; n < maxOrder; n++ {
			fn := float64(n)
			p[n+1][i] = ((2*fn+1)*xi*p[n][i] - fn*p[n-1][i]) / (fn + 1)
			d1[n+1][i] = d1[n-1][i] + (2*fn+1)*p[n][i]
			d2[n+1][i] = d2[n-1][i] + (2*fn+1)*d1[n][i]
		}
	}
	return
}
