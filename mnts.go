package gochroma

import (
	"fmt"
	"math/rand"
)

// MNTSResult is the outcome of one [RunMNTS] search.
type MNTSResult struct {
	// Set holds the vertex ids of the returned independent set, in no
	// particular order.
	Set    []int
	Weight int
}

// RunMNTS performs multi-neighborhood tabu search for a maximum weight
// independent set of the graph described by adj (one adjacency row per
// vertex), with per-vertex weights (all 1 for gochroma's unweighted
// callers). An independent set of a graph is exactly a clique of its
// complement, so the search keeps the input adjacency as the conflict
// relation (see mntsState.adjacMatrix) and grows complement-cliques
// against it.
//
// waim is the aspiration weight target (search stops early once reached),
// mntsLength the total iteration budget, lenImprove the number of
// iterations per restart (len_time = mntsLength/lenImprove + 1 restarts
// are run), seed the deterministic RNG seed. RunMNTS panics wrapping
// [ErrInvariant] if the returned set is not independent, since that would
// signal a bug in the search rather than a reachable runtime condition.
func RunMNTS(adj []Bitset, weights []int, waim, mntsLength, lenImprove int, seed int64) MNTSResult {
	n := len(adj)
	if n == 0 {
		return MNTSResult{}
	}
	if lenImprove <= 0 {
		lenImprove = 1
	}
	m := newMNTSState(adj, weights, waim, mntsLength, lenImprove, seed)
	best := m.maxTabu()
	set := make([]int, 0, m.lenW)
	for v := range m.ttbest.Range {
		set = append(set, v)
	}
	if !verifyIndependent(adj, set) {
		panic(fmt.Errorf("%w: MNTS returned a non-independent set", ErrInvariant))
	}
	return MNTSResult{Set: set, Weight: best}
}

func verifyIndependent(adj []Bitset, set []int) bool {
	for i, u := range set {
		for _, v := range set[i+1:] {
			if adj[u].Test(v) {
				return false
			}
		}
	}
	return true
}

// mntsState is the working state of the tabu search: it explores the
// complement graph's clique space, tracked through
// partitioned index arrays (c0 = addable candidates, c1 = one-conflict
// candidates, cruset = the current clique) with O(1) membership swaps via
// the paired address[] inverse-permutation arrays.
type mntsState struct {
	n int

	waim       int
	lenImprove int
	lenTime    int
	tabul      int

	iter    int
	wbest   int
	wf      int
	len0    int
	len1    int
	len     int
	lenBest int
	lenW    int

	we      []int
	vectex  Bitset
	funch   []int
	address []int
	tabuin  []int
	c0, c1  []int
	bc      []int
	cruset  []int

	adjacMatrix [][]int // conflict adjacency: the caller's adj as lists

	tbest  Bitset
	ttbest Bitset

	rng *rand.Rand
}

func newMNTSState(adj []Bitset, weights []int, waim, mntsLength, lenImprove int, seed int64) *mntsState {
	n := len(adj)
	m := &mntsState{
		n:          n,
		waim:       waim,
		lenImprove: lenImprove,
		tabul:      7,
		we:         append([]int(nil), weights...),
		vectex:     NewBitset(n),
		funch:      make([]int, n),
		address:    make([]int, n),
		tabuin:     make([]int, n),
		c0:         make([]int, n),
		c1:         make([]int, n),
		bc:         make([]int, n),
		cruset:     make([]int, n),
		tbest:      NewBitset(n),
		ttbest:     NewBitset(n),
		rng:        rand.New(rand.NewSource(seed)),
	}
	m.lenTime = mntsLength/lenImprove + 1
	if m.we == nil {
		m.we = make([]int, n)
		for i := range m.we {
			m.we[i] = 1
		}
	}
	// adjacMatrix is the conflict adjacency: u conflicts with a working
	// set containing v exactly when {u,v} is an edge of adj, since the
	// working set is a clique of adj's complement.
	m.adjacMatrix = make([][]int, n)
	for v := 0; v < n; v++ {
		for u := range adj[v].Range {
			m.adjacMatrix[v] = append(m.adjacMatrix[v], u)
		}
	}
	return m
}

func (m *mntsState) randomInt(rangeN int) int {
	if rangeN <= 0 {
		return 0
	}
	return m.rng.Intn(rangeN)
}

func (m *mntsState) clearGamma() {
	m.vectex = NewBitset(m.n)
	for i := range m.funch {
		m.funch[i] = 0
		m.address[i] = i
		m.tabuin[i] = 0
		m.c0[i] = i
	}
	m.len0 = m.n
	m.len1 = 0
	m.len = 0
	m.wf = 0
	m.wbest = 0
}

func (m *mntsState) selectC0() int {
	if m.len0 > 30 {
		return m.randomInt(m.len0)
	}
	var tc1 []int
	for i := 0; i < m.len0; i++ {
		if m.tabuin[m.c0[i]] <= m.iter {
			tc1 = append(tc1, i)
		}
	}
	if len(tc1) == 0 {
		return -1
	}
	return tc1[m.randomInt(len(tc1))]
}

func (m *mntsState) wSelectC0() int {
	var fc1, tc1 []int
	w1, w2 := 0, 0
	for i := 0; i < m.len0; i++ {
		k := m.c0[i]
		if m.tabuin[k] <= m.iter {
			switch {
			case m.we[k] > w1:
				w1 = m.we[k]
				fc1 = []int{i}
			case m.we[k] == w1:
				fc1 = append(fc1, i)
			}
		} else {
			switch {
			case m.we[k] > w2:
				w2 = m.we[k]
				tc1 = []int{i}
			case m.we[k] == w2:
				tc1 = append(tc1, i)
			}
		}
	}
	if len(tc1) > 0 && w2 > w1 && w2+m.wf > m.wbest {
		return tc1[m.randomInt(len(tc1))]
	}
	if len(fc1) > 0 {
		return fc1[m.randomInt(len(fc1))]
	}
	return -1
}

func (m *mntsState) expand(selN int) {
	v := m.c0[selN]
	m.cruset[m.len] = v
	m.len++
	m.vectex.Set(v)
	m.wf += m.we[v]

	m.len0--
	n1 := m.c0[m.len0]
	k1 := m.address[v]
	m.c0[k1] = n1
	m.address[n1] = k1

	for _, u := range m.adjacMatrix[v] {
		m.funch[u]++
		switch m.funch[u] {
		case 1:
			k1 = m.address[u]
			m.len0--
			n1 = m.c0[m.len0]
			m.c0[k1] = n1
			m.address[n1] = k1

			m.c1[m.len1] = u
			m.address[u] = m.len1
			m.len1++
			m.bc[u] = v
		case 2:
			m.len1--
			n1 = m.c1[m.len1]
			k1 = m.address[u]
			m.c1[k1] = n1
			m.address[n1] = k1
		}
	}

	if m.wf > m.wbest {
		m.wbest = m.wf
		m.lenBest = m.len
		m.tbest = m.vectex.Clone()
	}
}

func (m *mntsState) wSelectC1() int {
	for i := 0; i < m.len1; i++ {
		v := m.c1[i]
		n := m.bc[v]
		if !(m.vectex.Test(n) && adjacent(m.adjacMatrix, v, n)) {
			for _, k := range m.cruset[:m.len] {
				if adjacent(m.adjacMatrix, v, k) {
					m.bc[v] = k
					break
				}
			}
		}
	}

	var fc1, tc1 []int
	w1, w2 := -1000000, -1000000
	for i := 0; i < m.len1; i++ {
		v := m.c1[i]
		n := m.bc[v]
		wvn := m.we[v] - m.we[n]
		if m.tabuin[v] <= m.iter {
			switch {
			case wvn > w1:
				w1 = wvn
				fc1 = []int{i}
			case wvn == w1:
				fc1 = append(fc1, i)
			}
		} else {
			switch {
			case wvn > w2:
				w2 = wvn
				tc1 = []int{i}
			case wvn == w2:
				tc1 = append(tc1, i)
			}
		}
	}
	if len(tc1) > 0 && w2 > w1 && m.wf+w2 > m.wbest {
		return tc1[m.randomInt(len(tc1))]
	}
	if len(fc1) > 0 {
		return fc1[m.randomInt(len(fc1))]
	}
	return -1
}

func adjacent(adjacMatrix [][]int, a, b int) bool {
	for _, x := range adjacMatrix[a] {
		if x == b {
			return true
		}
	}
	return false
}

func (m *mntsState) plateau(selN int) {
	v := m.c1[selN]
	var v1 int
	ti := 0
	for ; ti < m.len; ti++ {
		v1 = m.cruset[ti]
		if adjacent(m.adjacMatrix, v1, v) {
			break
		}
	}

	m.wf = m.wf + m.we[v] - m.we[v1]

	m.vectex.Set(v)
	m.cruset[m.len] = v
	m.len++

	k1 := m.address[v]
	m.len1--
	n1 := m.c1[m.len1]
	m.c1[k1] = n1
	m.address[n1] = k1

	for _, u := range m.adjacMatrix[v] {
		m.funch[u]++
		if m.funch[u] == 1 && !m.vectex.Test(u) {
			k1 = m.address[u]
			m.len0--
			n1 = m.c0[m.len0]
			m.c0[k1] = n1
			m.address[n1] = k1

			m.c1[m.len1] = u
			m.address[u] = m.len1
			m.len1++
			m.bc[u] = v
		}
		if m.funch[u] == 2 {
			m.len1--
			n1 = m.c1[m.len1]
			k1 = m.address[u]
			m.c1[k1] = n1
			m.address[n1] = k1
		}
	}

	m.vectex.Clear(v1)
	m.tabuin[v1] = m.iter + m.tabul + m.randomInt(m.len1+2)

	m.len--
	m.cruset[ti] = m.cruset[m.len]
	m.c1[m.len1] = v1
	m.address[v1] = m.len1
	m.len1++

	for _, u := range m.adjacMatrix[v1] {
		m.funch[u]--
		switch {
		case m.funch[u] == 0 && !m.vectex.Test(u):
			k1 = m.address[u]
			m.len1--
			n1 = m.c1[m.len1]
			m.c1[k1] = n1
			m.address[n1] = k1

			m.c0[m.len0] = u
			m.address[u] = m.len0
			m.len0++
		case m.funch[u] == 1:
			m.c1[m.len1] = u
			m.address[u] = m.len1
			m.len1++
		}
	}

	if m.wf > m.wbest {
		m.wbest = m.wf
		m.lenBest = m.len
		m.tbest = m.vectex.Clone()
	}
}

// mumiWeight returns the index within cruset[:m.len] of a minimum-weight
// member, chosen uniformly among ties.
func (m *mntsState) mumiWeight() int {
	w1 := 5000000
	var fc1 []int
	for i := 0; i < m.len; i++ {
		k := m.cruset[i]
		switch {
		case m.we[k] < w1:
			w1 = m.we[k]
			fc1 = []int{i}
		case m.we[k] == w1:
			fc1 = append(fc1, i)
		}
	}
	if len(fc1) == 0 {
		return -1
	}
	return fc1[m.randomInt(len(fc1))]
}

func (m *mntsState) backtrack() int {
	ti := m.mumiWeight()
	if ti == -1 {
		return -1
	}
	v1 := m.cruset[ti]
	m.wf -= m.we[v1]
	m.vectex.Clear(v1)
	m.tabuin[v1] = m.iter + m.tabul

	m.len--
	m.cruset[ti] = m.cruset[m.len]
	m.c0[m.len0] = v1
	m.address[v1] = m.len0
	m.len0++

	for _, u := range m.adjacMatrix[v1] {
		m.funch[u]--
		switch {
		case m.funch[u] == 0 && !m.vectex.Test(u):
			k1 := m.address[u]
			m.len1--
			n1 := m.c1[m.len1]
			m.c1[k1] = n1
			m.address[n1] = k1

			m.c0[m.len0] = u
			m.address[u] = m.len0
			m.len0++
		case m.funch[u] == 1:
			m.c1[m.len1] = u
			m.address[u] = m.len1
			m.len1++
		}
	}
	return 1
}

// tabu runs one restart of up to maxIter iterations, returning the best
// weight seen during it.
func (m *mntsState) tabu(maxIter int) int {
	m.iter = 0
	m.clearGamma()

	for {
		am := m.selectC0()
		if am == -1 {
			break
		}
		m.expand(am)
		m.iter++
		if m.wbest >= m.waim {
			return m.wbest
		}
	}

	for m.iter < maxIter {
		am := m.wSelectC0()
		am1 := m.wSelectC1()

		switch {
		case am != -1 && am1 != -1:
			ww := m.we[m.c0[am]]
			ww1 := m.we[m.c1[am1]] - m.we[m.bc[m.c1[am1]]]
			if ww > ww1 {
				m.expand(am)
			} else {
				m.plateau(am1)
			}
			m.iter++
			if m.wbest >= m.waim {
				return m.wbest
			}
		case am != -1:
			m.expand(am)
			m.iter++
			if m.wbest >= m.waim {
				return m.wbest
			}
		case am1 != -1:
			ti := m.mumiWeight()
			v1 := m.cruset[ti]
			ww1 := m.we[m.c1[am1]] - m.we[m.bc[m.c1[am1]]]
			ww2 := -m.we[v1]
			if ww1 > ww2 {
				m.plateau(am1)
				m.iter++
				if m.wbest >= m.waim {
					return m.wbest
				}
			} else {
				if m.backtrack() == -1 {
					return m.wbest
				}
				m.iter++
			}
		default:
			if m.backtrack() == -1 {
				return m.wbest
			}
			m.iter++
		}
	}
	return m.wbest
}

func (m *mntsState) maxTabu() int {
	lbest := 0
	for i := 0; i < m.lenTime; i++ {
		l := m.tabu(m.lenImprove)
		if l > lbest {
			lbest = l
			m.lenW = m.lenBest
			m.ttbest = m.tbest.Clone()
		}
		if l >= m.waim {
			return lbest
		}
	}
	return lbest
}
