// core/shuffle/shuffle.go
package shuffle

import (
	"errors"
	"fmt"
	"math/rand"
)

// Shuffler generates random permutations of a byte sequence that
// preserve the multiset of its length-k substrings (k-lets). It uses
// the Euler-walk construction: the sequence is a walk over its
// (k-1)-lets, a random arborescence toward the walk's final vertex
// fixes each vertex's last exit, and reading off a random Euler path
// yields a permutation with identical k-let counts.
//
// The RNG is injected; a Shuffler never touches package-level rand
// state, so runs with the same seed reproduce the same permutations.
//
// Lifecycle per sequence: Init, any number of Next calls, Release.
type Shuffler struct {
	rng *rand.Rand

	seq []byte
	k   int

	// (k-1)-let graph, built once per Init when 1 < k < len(seq).
	verts [][]byte // distinct (k-1)-lets
	outs  [][]int  // per-vertex out-edge targets, one entry per edge
	start int      // vertex of the first (k-1)-let
	root  int      // vertex of the last (k-1)-let
}

var (
	errNotInitialized     = errors.New("shuffle: Next before Init")
	errAlreadyInitialized = errors.New("shuffle: Init without Release")
)

// New returns a Shuffler drawing from rng. rng must not be nil.
func New(rng *rand.Rand) *Shuffler {
	if rng == nil {
		panic("shuffle: nil rng")
	}
	return &Shuffler{rng: rng}
}

// Init establishes per-sequence state. It must be called exactly once
// before Next; call Release before reusing the Shuffler for another
// sequence.
//
// k >= len(seq) is accepted: the only arrangement preserving all
// k-lets is the sequence itself, and Next returns copies of it. k == 1
// degenerates to a plain Fisher-Yates shuffle.
func (s *Shuffler) Init(seq []byte, k int) error {
	if s.seq != nil {
		return errAlreadyInitialized
	}
	if len(seq) == 0 {
		return errors.New("shuffle: empty sequence")
	}
	if k < 1 {
		return fmt.Errorf("shuffle: k must be >= 1 (got %d)", k)
	}
	s.seq = append([]byte(nil), seq...)
	s.k = k
	if k > 1 && k < len(seq) {
		s.buildGraph()
	}
	return nil
}

// Release drops all per-sequence state. After Release, Init may be
// called again.
func (s *Shuffler) Release() {
	s.seq = nil
	s.k = 0
	s.verts = nil
	s.outs = nil
	s.start = 0
	s.root = 0
}

// Next produces one fresh permutation. Successive calls are
// independent draws and are not required to differ from each other or
// from the source.
func (s *Shuffler) Next() ([]byte, error) {
	switch {
	case s.seq == nil:
		return nil, errNotInitialized
	case s.k >= len(s.seq):
		return append([]byte(nil), s.seq...), nil
	case s.k == 1:
		t := append([]byte(nil), s.seq...)
		s.rng.Shuffle(len(t), func(i, j int) { t[i], t[j] = t[j], t[i] })
		return t, nil
	}
	return s.eulerWalk()
}

// buildGraph indexes the distinct (k-1)-lets and records, per vertex,
// the multiset of out-edges induced by consecutive (k-1)-lets.
func (s *Shuffler) buildGraph() {
	m := s.k - 1
	index := make(map[string]int)
	prev := -1
	for i := 0; i+m <= len(s.seq); i++ {
		key := string(s.seq[i : i+m])
		v, ok := index[key]
		if !ok {
			v = len(s.verts)
			index[key] = v
			s.verts = append(s.verts, []byte(key))
			s.outs = append(s.outs, nil)
		}
		if prev >= 0 {
			s.outs[prev] = append(s.outs[prev], v)
		} else {
			s.start = v
		}
		prev = v
	}
	s.root = prev
}

// eulerWalk draws a random arborescence toward root (loop-erased
// random walks, Wilson's algorithm), orders each vertex's out-edges
// randomly with the tree edge last, and reads off the Euler path.
func (s *Shuffler) eulerWalk() ([]byte, error) {
	n := len(s.verts)
	inTree := make([]bool, n)
	inTree[s.root] = true
	next := make([]int, n)
	for v := 0; v < n; v++ {
		u := v
		for !inTree[u] {
			next[u] = s.outs[u][s.rng.Intn(len(s.outs[u]))]
			u = next[u]
		}
		for u = v; !inTree[u]; u = next[u] {
			inTree[u] = true
		}
	}

	order := make([][]int, n)
	for v := 0; v < n; v++ {
		edges := append([]int(nil), s.outs[v]...)
		s.rng.Shuffle(len(edges), func(i, j int) { edges[i], edges[j] = edges[j], edges[i] })
		if v != s.root {
			// Edges to the same target are interchangeable; any one
			// pointing at the tree successor may serve as last exit.
			for i, e := range edges {
				if e == next[v] {
					last := len(edges) - 1
					edges[i], edges[last] = edges[last], edges[i]
					break
				}
			}
		}
		order[v] = edges
	}

	out := make([]byte, 0, len(s.seq))
	out = append(out, s.verts[s.start]...)
	used := make([]int, n)
	for u := s.start; used[u] < len(order[u]); {
		e := order[u][used[u]]
		used[u]++
		out = append(out, s.verts[e][s.k-2])
		u = e
	}
	if len(out) != len(s.seq) {
		return nil, fmt.Errorf("shuffle: euler walk emitted %d of %d symbols", len(out), len(s.seq))
	}
	return out, nil
}
