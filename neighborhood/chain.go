package neighborhood

import (
	"math"
	"math/rand"
	"sort"

	"github.com/katalvlaran/tabumip/model"
)

// chainHistorySize bounds how many recently accepted moves are remembered
// for composing with the next accepted move.
const chainHistorySize = 8

// chainMaxAlterations bounds how many simultaneous variable alterations a
// single composed Chain move may carry, keeping its incremental evaluation
// cost bounded even after several rounds of a chain move itself being
// accepted and composed further.
const chainMaxAlterations = 6

// chainGenerator has no structural source of its own: its candidates are
// synthesized by composing a just-accepted move with a bounded history of
// recently accepted moves (RegisterAccepted), triggered once per acceptance
// in the tabu-search loop — not by recombining this pass's untried
// candidates. UpdateMoves returns whatever has accumulated in pending.
type chainGenerator struct {
	m *model.Model

	recent  []*Move // ring buffer of accepted moves, oldest first
	pending []*Move
	seen    map[uint64]bool
}

func (g *chainGenerator) Setup(m *model.Model) error {
	g.m = m
	g.recent = nil
	g.pending = nil
	g.seen = make(map[uint64]bool)
	return nil
}

// UpdateMoves is a pure accessor: the pending set is populated by
// RegisterAccepted, not by anything UpdateMoves itself computes.
func (g *chainGenerator) UpdateMoves(AcceptMask, bool, *rand.Rand, int) []*Move { return g.pending }

// RegisterAccepted composes justAccepted with every move currently held in
// the recent-move history, skipping any pairing that shares a variable
// (two simultaneous alterations of the same variable make no sense) or
// whose OverlapRate falls below overlapThreshold. Each surviving composite
// is added to pending, deduplicated by hash, and the whole pending set is
// then reordered and truncated to capacity. justAccepted is finally pushed
// onto the history ring buffer, so a Chain move that is itself later
// accepted can go on to compose into a longer chain.
func (g *chainGenerator) RegisterAccepted(justAccepted *Move, capacity int, shuffle bool, overlapThreshold float64, r *rand.Rand) {
	if justAccepted == nil {
		return
	}

	for _, recent := range g.recent {
		mv := composeChain(g.m, justAccepted, recent)
		if mv == nil || mv.OverlapRate < overlapThreshold || g.seen[mv.Hash] {
			continue
		}
		g.seen[mv.Hash] = true
		g.pending = append(g.pending, mv)
	}

	g.recent = append(g.recent, justAccepted)
	if len(g.recent) > chainHistorySize {
		g.recent = g.recent[1:]
	}

	g.reduce(capacity, shuffle, r)
}

// composeChain fuses two non-overlapping moves into a Chain candidate, or
// returns nil when they touch a common variable or the fused move would
// exceed chainMaxAlterations.
func composeChain(m *model.Model, a, b *Move) *Move {
	if len(a.Alterations)+len(b.Alterations) > chainMaxAlterations {
		return nil
	}
	touched := make(map[int]bool, len(a.Alterations))
	for _, alt := range a.Alterations {
		touched[alt.VarIndex] = true
	}
	for _, alt := range b.Alterations {
		if touched[alt.VarIndex] {
			return nil
		}
	}

	alterations := append(append([]model.Alteration(nil), a.Alterations...), b.Alterations...)
	mv := newMove(m, Chain, alterations)
	mv.IsSpecial = true
	mv.OverlapRate = overlapRate([]*Move{a, b})
	return mv
}

// overlapRate is the geometric mean, over every pair of links composing the
// move, of the Jaccard ratio (intersection over union) of their
// RelatedConstraints sets, per the glossary's definition of overlap rate.
func overlapRate(links []*Move) float64 {
	if len(links) < 2 {
		return 0
	}
	product := 1.0
	pairs := 0
	for i := 0; i < len(links); i++ {
		for j := i + 1; j < len(links); j++ {
			product *= jaccard(links[i].RelatedConstraints, links[j].RelatedConstraints)
			pairs++
		}
	}
	if pairs == 0 {
		return 0
	}
	return math.Pow(product, 1/float64(pairs))
}

// jaccard computes the intersection-over-union ratio of two ascending,
// already-deduplicated int slices (model.Model.UnionRelatedConstraints's
// contract).
func jaccard(a, b []int) float64 {
	i, j, inter, union := 0, 0, 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			inter++
			union++
			i++
			j++
		case a[i] < b[j]:
			union++
			i++
		default:
			union++
			j++
		}
	}
	union += (len(a) - i) + (len(b) - j)
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// reduce orders pending by descending OverlapRate (or shuffles it when
// shuffle is set) and truncates it to capacity; any dropped move's hash is
// freed from seen so an equivalent composite can be re-admitted later.
func (g *chainGenerator) reduce(capacity int, shuffle bool, r *rand.Rand) {
	if capacity <= 0 {
		g.pending = nil
		return
	}
	if shuffle {
		perm := r.Perm(len(g.pending))
		shuffled := make([]*Move, len(g.pending))
		for i, p := range perm {
			shuffled[i] = g.pending[p]
		}
		g.pending = shuffled
	} else {
		sort.Slice(g.pending, func(i, j int) bool { return g.pending[i].OverlapRate > g.pending[j].OverlapRate })
	}
	if len(g.pending) > capacity {
		for _, mv := range g.pending[capacity:] {
			delete(g.seen, mv.Hash)
		}
		g.pending = g.pending[:capacity]
	}
}
