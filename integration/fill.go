package integration

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/jedbrown/fem-2d/basis"
	"github.com/jedbrown/fem-2d/domain"
	"github.com/jedbrown/fem-2d/eigensolver"
	"github.com/jedbrown/fem-2d/mesh"
	"github.com/jedbrown/fem-2d/utils"
)

// Config selects the bilinear forms and the sampling of an assembly
type Config struct {
	A, B       IntegralFactory
	Family     basis.Family
	NumU, NumV int // Quadrature points per axis, zero for the default of the expansion order
	Workers    int // Parallel workers, zero for one per CPU
}

// DefaultConfig assembles the Maxwell eigenproblem: curl-curl on the left, the L2 mass on the right
func DefaultConfig() Config {
	return Config{A: NewCurlProduct, B: NewL2InnerProduct, Family: basis.KOL}
}

type basisSampler interface {
	SampleBasisFn(m *mesh.Mesh, elem, overDesc *mesh.Elem) (*basis.BasisFn, error)
}

type elemFiller struct {
	dom     *domain.Domain
	sampler basisSampler
	a, b    Integral
}

/*
fill adds the contributions of one Elem: every pair of its own BasisSpecs, and every pairing of its
BasisSpecs with those of its descendants, sampled over the descendant.
*/
func (ef *elemFiller) fill(elem *mesh.Elem, matA, matB *eigensolver.SparseMatrix) (err error) {
	var (
		m     = ef.dom.Mesh
		local = ef.dom.LocalBasisSpecs(elem.ID)
		bf    *basis.BasisFn
		desc  []domain.ElemSpecs
	)
	if bf, err = ef.sampler.SampleBasisFn(m, elem, nil); err != nil {
		return
	}
	for i, p := range local {
		for _, q := range local[i:] {
			ef.insert(p, q, bf, bf, matA, matB)
		}
	}
	if desc, err = ef.dom.DescendantBasisSpecs(elem.ID); err != nil {
		return
	}
	for _, group := range desc {
		var over, own *basis.BasisFn
		if over, err = ef.sampler.SampleBasisFn(m, elem, group.Elem); err != nil {
			return
		}
		if own, err = ef.sampler.SampleBasisFn(m, group.Elem, nil); err != nil {
			return
		}
		for _, p := range local {
			for _, q := range group.Specs {
				ef.insert(p, q, over, own, matA, matB)
			}
		}
	}
	return
}

func (ef *elemFiller) insert(p, q domain.BasisSpec, pb, qb *basis.BasisFn, matA, matB *eigensolver.SparseMatrix) {
	matA.Insert(p.DoF, q.DoF, ef.a.Integrate(p.Dir, q.Dir, p.Orders, q.Orders, pb, qb).Surface())
	matB.Insert(p.DoF, q.DoF, ef.b.Integrate(p.Dir, q.Dir, p.Orders, q.Orders, pb, qb).Surface())
}

func (cfg Config) check() error {
	if cfg.A == nil || cfg.B == nil {
		return errors.New("assembly needs both an A and a B integral")
	}
	return nil
}

// FillMatrices assembles the A and B matrices of the domain on one goroutine
func FillMatrices(dom *domain.Domain, cfg Config) (mats [2]*eigensolver.SparseMatrix, err error) {
	if err = cfg.check(); err != nil {
		return
	}
	var (
		orders     = dom.Mesh.MaxExpansionOrders()
		sampler, w = basis.NewBasisFnSampler(orders[0], orders[1], cfg.NumU, cfg.NumV, false, cfg.Family)
		ef         = &elemFiller{dom: dom, sampler: sampler, a: cfg.A(w[0], w[1]), b: cfg.B(w[0], w[1])}
		elems      = dom.Elems()
	)
	utils.Logger().Info("assembling", "numDoFs", dom.NumDoFs(), "numElems", len(elems), "parallel", false)
	mats = [2]*eigensolver.SparseMatrix{
		eigensolver.NewSparseMatrix(dom.NumDoFs()),
		eigensolver.NewSparseMatrix(dom.NumDoFs()),
	}
	for _, elem := range elems {
		if err = ef.fill(elem, mats[0], mats[1]); err != nil {
			return
		}
	}
	utils.Logger().Info("assembled", "entriesA", mats[0].NumEntries(), "entriesB", mats[1].NumEntries(),
		"basisComputations", sampler.Stats().Computations)
	return
}

type elemResult struct {
	elem int
	mats [2]*eigensolver.SparseMatrix
	err  error
}

/*
FillMatricesParallel splits the Elems over Workers goroutines sharing one basis cache. Each Elem's
contributions are assembled into their own matrices and merged by the caller. The first failure
stops the workers; results already in flight are drained and dropped.
*/
func FillMatricesParallel(dom *domain.Domain, cfg Config) (mats [2]*eigensolver.SparseMatrix, err error) {
	if err = cfg.check(); err != nil {
		return
	}
	var (
		orders     = dom.Mesh.MaxExpansionOrders()
		sampler, w = basis.NewParBasisFnSampler(orders[0], orders[1], cfg.NumU, cfg.NumV, false, cfg.Family)
		ef         = &elemFiller{dom: dom, sampler: sampler, a: cfg.A(w[0], w[1]), b: cfg.B(w[0], w[1])}
		elems      = dom.Elems()
		chunks     = utils.PartitionSlice(elems, utils.DefaultWorkers(cfg.Workers))
		results    = make(chan elemResult, len(elems)+len(chunks))
		failed     atomic.Bool
		wg         sync.WaitGroup
		nDoFs      = dom.NumDoFs()
	)
	utils.Logger().Info("assembling", "numDoFs", nDoFs, "numElems", len(elems), "parallel", true,
		"workers", len(chunks))
	for np, chunk := range chunks {
		wg.Add(1)
		go func(np int, chunk []*mesh.Elem) {
			defer wg.Done()
			var current = -1
			defer func() {
				if r := recover(); r != nil {
					failed.Store(true)
					results <- elemResult{elem: current, err: fmt.Errorf("assembling elem %d: panic: %v", current, r)}
				}
			}()
			for _, elem := range chunk {
				if failed.Load() {
					return
				}
				current = elem.ID
				res := elemResult{elem: elem.ID, mats: [2]*eigensolver.SparseMatrix{
					eigensolver.NewSparseMatrix(nDoFs),
					eigensolver.NewSparseMatrix(nDoFs),
				}}
				if res.err = ef.fill(elem, res.mats[0], res.mats[1]); res.err != nil {
					failed.Store(true)
				}
				results <- res
			}
			utils.Logger().Debug("assembly worker done", "worker", np, "numElems", len(chunk))
		}(np, chunk)
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	mats = [2]*eigensolver.SparseMatrix{
		eigensolver.NewSparseMatrix(nDoFs),
		eigensolver.NewSparseMatrix(nDoFs),
	}
	for res := range results {
		if err != nil {
			continue
		}
		if res.err != nil {
			err = res.err
			continue
		}
		for k := range mats {
			if err = mats[k].ConsumeMatrix(res.mats[k]); err != nil {
				break
			}
		}
	}
	if err != nil {
		mats = [2]*eigensolver.SparseMatrix{}
		return
	}
	stats := sampler.Stats()
	utils.Logger().Info("assembled", "entriesA", mats[0].NumEntries(), "entriesB", mats[1].NumEntries(),
		"basisComputations", stats.Computations, "basisHits", stats.Hits, "basisFallbacks", stats.Fallbacks)
	return
}
