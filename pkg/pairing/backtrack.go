package pairing

import (
	"math/rand"
	"slices"

	"github.com/matzehuels/giftring/pkg/errors"
)

// =============================================================================
// Backtracking Pairing Search
// =============================================================================

// Backtracker constructs a valid pairing via randomized recursive assignment.
// Unlike the Hamiltonian search it does not require a single-cycle structure:
// the result is any bijection satisfying Fixed and Block, sub-cycles included.
type Backtracker struct {
	// Rand is the random source for participant and pick selection. Required.
	Rand *rand.Rand
}

// Search assigns participants one at a time, undoing and re-trying on
// failure. Failure is returned only when the top-level retry loop exhausts
// all options, which proves the constraints admit no valid bijection at all.
func (b *Backtracker) Search(names []string, fixed Fixed, block Block) (Pairing, error) {
	if err := Validate(names, fixed, block); err != nil {
		return nil, err
	}

	unpaired := slices.Clone(names)
	picksLeft := slices.Clone(names)
	for _, pick := range fixed {
		if i := slices.Index(picksLeft, pick); i >= 0 {
			picksLeft = slices.Delete(picksLeft, i, i+1)
		}
	}

	pairs, ok := b.step(Pairing{}, unpaired, picksLeft, fixed.Clone(), block.Clone())
	if !ok {
		return nil, errors.New(errors.ErrCodeInfeasible, "constraints admit no valid pairing")
	}
	return pairs, nil
}

// step tries to assign one participant and recurses on the reduced problem.
// Each recursive call receives its own copies of every structure, so a failed
// branch never corrupts the caller's state. When a pick leads to a dead end,
// it is added to this frame's local Block copy, preventing immediate
// re-exploration of the same dead branch; the negative result is deliberately
// not shared across sibling branches.
func (b *Backtracker) step(pairs Pairing, unpaired, picksLeft []string, fixed Fixed, block Block) (Pairing, bool) {
	if len(unpaired) == 0 && len(picksLeft) == 0 {
		return pairs, true
	}

	who := unpaired[b.Rand.Intn(len(unpaired))]
	// Resolve forced edges first to fail fast. Scanning unpaired (not the
	// fixed map) keeps the priority choice deterministic under a fixed seed.
	for _, candidate := range unpaired {
		if _, ok := fixed[candidate]; ok {
			who = candidate
			break
		}
	}

	for {
		options := eligible(who, picksLeft, fixed, block)
		if len(options) == 0 {
			return nil, false
		}
		pick := options[b.Rand.Intn(len(options))]

		nextPairs := make(Pairing, len(pairs)+1)
		for k, v := range pairs {
			nextPairs[k] = v
		}
		nextPairs[who] = pick

		nextUnpaired := slices.Clone(unpaired)
		if i := slices.Index(nextUnpaired, who); i >= 0 {
			nextUnpaired = slices.Delete(nextUnpaired, i, i+1)
		}
		nextPicks := slices.Clone(picksLeft)
		if i := slices.Index(nextPicks, pick); i >= 0 {
			nextPicks = slices.Delete(nextPicks, i, i+1)
		}

		if result, ok := b.step(nextPairs, nextUnpaired, nextPicks, fixed.Clone(), block.Clone()); ok {
			return result, true
		}

		// Dead end below this pick; forbid it at this level and retry.
		block.Add(who, pick)
		if _, forced := fixed[who]; forced {
			// The forced target failed, so no other pick can succeed.
			return nil, false
		}
	}
}

// eligible returns every pick who may receive: the sole fixed target if one
// exists (unless blocked), otherwise every remaining pick that is not who
// themselves and not blocked for who.
func eligible(who string, picksLeft []string, fixed Fixed, block Block) []string {
	if to, ok := fixed[who]; ok {
		if to == who || block.Has(who, to) {
			return nil
		}
		return []string{to}
	}

	var finals []string
	for _, pick := range picksLeft {
		if pick == who || block.Has(who, pick) {
			continue
		}
		finals = append(finals, pick)
	}
	return finals
}
