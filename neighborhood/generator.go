package neighborhood

import (
	"math/rand"
	"sort"

	"github.com/katalvlaran/tabumip/internal/rng"
	"github.com/katalvlaran/tabumip/internal/workerpool"
	"github.com/katalvlaran/tabumip/model"
)

// Generator produces every candidate Move of one MoveKind for the current
// model state. Setup is called once after model.Model.Setup/presolve.Run;
// UpdateMoves is called once per tabu-search iteration.
type Generator interface {
	Setup(m *model.Model) error
	UpdateMoves(mask AcceptMask, shuffle bool, r *rand.Rand, workers int) []*Move
}

// Neighborhood owns one Generator per MoveKind plus the enabled-flags
// bitset the option group describes (eighteen independent on/off
// switches) and the shared chain-move buffer.
type Neighborhood struct {
	m          *model.Model
	generators [NumMoveKinds]Generator
	enabled    [NumMoveKinds]bool

	chainCapacity         int
	chainShuffle          bool
	chainOverlapThreshold float64
}

// New builds a Neighborhood wired to m with every standard generator
// registered (UserDefined is left nil until SetUserDefined is called).
func New(m *model.Model) *Neighborhood {
	nb := &Neighborhood{m: m}
	nb.generators[Binary] = &binaryGenerator{}
	nb.generators[Integer] = &integerGenerator{}
	nb.generators[Selection] = &selectionGenerator{}
	nb.generators[ExclusiveOr] = &exclusiveGenerator{negate: true}
	nb.generators[ExclusiveNor] = &exclusiveGenerator{negate: false}
	nb.generators[InvertedIntegers] = &binomialInvariantGenerator{variant: invertedVariant}
	nb.generators[BalancedIntegers] = &binomialInvariantGenerator{variant: balancedVariant}
	nb.generators[ConstantSumIntegers] = &binomialInvariantGenerator{variant: constantSumVariant}
	nb.generators[ConstantDifferenceIntegers] = &binomialInvariantGenerator{variant: constantDifferenceVariant}
	nb.generators[ConstantRatioIntegers] = &binomialInvariantGenerator{variant: constantRatioVariant}
	nb.generators[Aggregation] = &aggregationGenerator{}
	nb.generators[Precedence] = &precedenceGenerator{}
	nb.generators[VariableBound] = &variableBoundGenerator{}
	nb.generators[SoftSelection] = &softSelectionGenerator{}
	nb.generators[TrinomialExclusiveNor] = &trinomialExclusiveNorGenerator{}
	nb.generators[TwoFlip] = &twoFlipGenerator{}
	nb.generators[Chain] = &chainGenerator{}

	for k := range nb.enabled {
		nb.enabled[k] = true
	}
	nb.chainCapacity = 1000
	return nb
}

// SetUserDefined installs a caller-supplied generator for the UserDefined
// slot, the one extension point the move catalogue names without
// constraining its internals.
func (nb *Neighborhood) SetUserDefined(g Generator) { nb.generators[UserDefined] = g }

// Enable / Disable flip a move kind's participation flag.
func (nb *Neighborhood) Enable(k MoveKind)  { nb.enabled[k] = true }
func (nb *Neighborhood) Disable(k MoveKind) { nb.enabled[k] = false }
func (nb *Neighborhood) IsEnabled(k MoveKind) bool { return nb.enabled[k] }

// SetChainOptions configures the chain-move buffer's capacity, whether
// truncation shuffles (true) or sorts by descending OverlapRate (false),
// and the minimum OverlapRate a composed candidate must clear to be kept at
// all (composites below threshold are dropped before the buffer is ever
// sorted or truncated).
func (nb *Neighborhood) SetChainOptions(capacity int, shuffle bool, overlapThreshold float64) {
	nb.chainCapacity = capacity
	nb.chainShuffle = shuffle
	nb.chainOverlapThreshold = overlapThreshold
}

// Setup wires every enabled, non-nil generator to the model; call once after
// presolve.Run.
func (nb *Neighborhood) Setup() error {
	for k, g := range nb.generators {
		if g == nil || !nb.enabled[k] {
			continue
		}
		if err := g.Setup(nb.m); err != nil {
			return err
		}
	}
	return nil
}

// UpdateMoves collects every enabled generator's candidates for this
// iteration. Generators run in the bulk-parallel region internal/workerpool
// provides; each generator writes into its own result slot, so there is no
// shared write across workers. base derives one RNG substream per generator
// via internal/rng.Derive, serially and before the parallel region starts,
// so the overall ordering stays deterministic for a fixed base seed
// regardless of worker count.
func (nb *Neighborhood) UpdateMoves(mask AcceptMask, shuffle bool, base *rand.Rand, workers int) []*Move {
	active := make([]int, 0, NumMoveKinds)
	for k, g := range nb.generators {
		if g != nil && nb.enabled[k] {
			active = append(active, k)
		}
	}

	subs := make([]*rand.Rand, len(active))
	for i, k := range active {
		subs[i] = rng.Derive(base, uint64(k)+1)
	}

	results := make([][]*Move, len(active))
	workerpool.Run(len(active), workers, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			k := active[i]
			results[i] = nb.generators[k].UpdateMoves(mask, shuffle, subs[i], 1)
		}
	})

	var all []*Move
	for _, r := range results {
		all = append(all, r...)
	}
	return all
}

// RegisterAcceptedMove notifies the chain generator (if enabled) that mv was
// just applied by the search, so it can compose mv with its recent-move
// history into new Chain candidates for the following iterations. A no-op
// when Chain is disabled or the Chain slot does not hold the built-in chain
// generator.
func (nb *Neighborhood) RegisterAcceptedMove(mv *Move, r *rand.Rand) {
	if !nb.enabled[Chain] {
		return
	}
	chainGen, ok := nb.generators[Chain].(*chainGenerator)
	if !ok {
		return
	}
	chainGen.RegisterAccepted(mv, nb.chainCapacity, nb.chainShuffle, nb.chainOverlapThreshold, r)
}

// sortMovesByHash gives generators a single deterministic tie-break helper
// when candidate order must not depend on map iteration.
func sortMovesByHash(moves []*Move) {
	sort.Slice(moves, func(i, j int) bool { return moves[i].Hash < moves[j].Hash })
}
