package basis

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/jedbrown/fem-2d/basis1D"
	"github.com/jedbrown/fem-2d/mesh"
	"github.com/jedbrown/fem-2d/utils"
)

/*
BSDescription identifies a sampled BasisFn by the diagonal corner nodes of the sampled Elem and,
when sampled over a descendant, of the descendant. Corner pairs are unique per Elem within a mesh.
*/
type BSDescription struct {
	Space     [2]int
	Sample    [2]int
	HasSample bool
}

func NewBSDescription(elem, overDesc *mesh.Elem) (bsd BSDescription) {
	bsd.Space = [2]int{elem.Nodes[0], elem.Nodes[3]}
	if overDesc != nil {
		bsd.Sample = [2]int{overDesc.Nodes[0], overDesc.Nodes[3]}
		bsd.HasSample = true
	}
	return
}

func (bsd BSDescription) String() string {
	if bsd.HasSample {
		return fmt.Sprintf("%v over %v", bsd.Space, bsd.Sample)
	}
	return fmt.Sprint(bsd.Space)
}

type SamplerStats struct {
	Computations, Hits, Fallbacks int64
}

// samplerConfig is what every BasisFn of a sampler shares
type samplerConfig struct {
	iMax, jMax       int
	computeD2        bool
	uPoints, vPoints []float64
	factory          ShapeFnFactory
}

func newSamplerConfig(iMax, jMax, nu, nv int, computeD2 bool, family Family) (sc samplerConfig, weights [2][]float64) {
	if nu <= 0 {
		nu = basis1D.DefaultNumPoints(iMax)
	}
	if nv <= 0 {
		nv = basis1D.DefaultNumPoints(jMax)
	}
	sc = samplerConfig{
		iMax:      iMax,
		jMax:      jMax,
		computeD2: computeD2,
		factory:   family.Factory(),
	}
	sc.uPoints, weights[0] = basis1D.GaussLegendre(nu, computeD2)
	sc.vPoints, weights[1] = basis1D.GaussLegendre(nv, computeD2)
	return
}

func (sc *samplerConfig) compute(m *mesh.Mesh, elem, overDesc *mesh.Elem) (*BasisFn, error) {
	return NewBasisFn(sc.iMax, sc.jMax, sc.computeD2, sc.uPoints, sc.vPoints, sc.factory, m, elem, overDesc)
}

// BasisFnSampler caches BasisFns for a single owner
type BasisFnSampler struct {
	samplerConfig
	cache map[BSDescription]*BasisFn
	stats SamplerStats
}

/*
NewBasisFnSampler builds a sampler for expansions up to [iMax,jMax] with nu x nv quadrature points,
zero or less meaning the default for the order. The quadrature weights are returned alongside.
*/
func NewBasisFnSampler(iMax, jMax, nu, nv int, computeD2 bool, family Family) (s *BasisFnSampler, weights [2][]float64) {
	s = &BasisFnSampler{cache: make(map[BSDescription]*BasisFn)}
	s.samplerConfig, weights = newSamplerConfig(iMax, jMax, nu, nv, computeD2, family)
	return
}

func (s *BasisFnSampler) SampleBasisFn(m *mesh.Mesh, elem, overDesc *mesh.Elem) (bf *BasisFn, err error) {
	var (
		key = NewBSDescription(elem, overDesc)
		ok  bool
	)
	if bf, ok = s.cache[key]; ok {
		s.stats.Hits++
		return
	}
	s.stats.Computations++
	utils.Logger().Debug("sampling basis", "key", key.String())
	if bf, err = s.compute(m, elem, overDesc); err != nil {
		return
	}
	s.cache[key] = bf
	return
}

func (s *BasisFnSampler) Stats() SamplerStats { return s.stats }

type parEntry struct {
	ready   chan struct{}
	bf      *BasisFn
	err     error
	failed  bool
	waiters int // guarded by the sampler mutex
}

/*
ParBasisFnSampler is a BasisFnSampler safe for concurrent use. Each key is computed once, outside
the lock, by the first caller; concurrent callers for the same key wait for it. If that computation
panics the entry is dropped and the waiting callers compute their own uncached copy.
*/
type ParBasisFnSampler struct {
	samplerConfig
	mu                            sync.Mutex
	cache                         map[BSDescription]*parEntry
	computations, hits, fallbacks atomic.Int64
}

func NewParBasisFnSampler(iMax, jMax, nu, nv int, computeD2 bool, family Family) (s *ParBasisFnSampler, weights [2][]float64) {
	s = &ParBasisFnSampler{cache: make(map[BSDescription]*parEntry)}
	s.samplerConfig, weights = newSamplerConfig(iMax, jMax, nu, nv, computeD2, family)
	return
}

func (s *ParBasisFnSampler) SampleBasisFn(m *mesh.Mesh, elem, overDesc *mesh.Elem) (bf *BasisFn, err error) {
	var (
		key = NewBSDescription(elem, overDesc)
	)
	s.mu.Lock()
	if entry, ok := s.cache[key]; ok {
		entry.waiters++
		s.mu.Unlock()
		<-entry.ready
		if entry.failed {
			s.fallbacks.Add(1)
			utils.Logger().Warn("cached basis computation failed, sampling uncached", "key", key.String())
			return s.compute(m, elem, overDesc)
		}
		s.hits.Add(1)
		return entry.bf, entry.err
	}
	entry := &parEntry{ready: make(chan struct{})}
	s.cache[key] = entry
	s.mu.Unlock()

	s.computations.Add(1)
	utils.Logger().Debug("sampling basis", "key", key.String())
	defer func() {
		if r := recover(); r != nil {
			s.mu.Lock()
			delete(s.cache, key)
			waiters := entry.waiters
			s.mu.Unlock()
			utils.Logger().Warn("basis computation panicked", "key", key.String(), "waiters", waiters, "panic", r)
			entry.failed = true
			close(entry.ready)
			panic(r)
		}
	}()
	entry.bf, entry.err = s.compute(m, elem, overDesc)
	close(entry.ready)
	return entry.bf, entry.err
}

func (s *ParBasisFnSampler) Stats() SamplerStats {
	return SamplerStats{
		Computations: s.computations.Load(),
		Hits:         s.hits.Load(),
		Fallbacks:    s.fallbacks.Load(),
	}
}
