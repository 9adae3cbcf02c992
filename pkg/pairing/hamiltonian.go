package pairing

import (
	"math/big"
	"math/rand"

	"github.com/matzehuels/giftring/pkg/errors"
)

// =============================================================================
// Hamiltonian Pairing Search
// =============================================================================

// Hamiltonian searches for a pairing forming one single directed cycle
// through all participants, using only edges of an allowed-edge graph.
//
// Permutations of the participant list are addressed in the factorial number
// system: position i has N-i possible choices among the not-yet-used
// participants, so a digit vector selections[0..N-1] with selections[i] < N-i
// addresses each of the N! permutations exactly once. The search starts at a
// uniformly random rank and walks permutations in lexicographic order of the
// digit vector, skipping every permutation that shares a rejected prefix.
type Hamiltonian struct {
	// Rand is the random source for the initial rank. Required.
	Rand *rand.Rand

	// Budget bounds the number of logical tries (skipped permutations count
	// against it). Zero means the full N! space.
	Budget *big.Int
}

// Search returns a single-cycle pairing over names using only edges in
// allowed, or an ErrCodeNoCycle error once the budget is exhausted.
//
// The wrap-around edge from the last participant back to the first is
// validated like any other, so a successful path is always a closed ring:
// pairing[path[i]] = path[(i+1) mod N].
func (h *Hamiltonian) Search(names []string, allowed Allowed) (Pairing, error) {
	n := len(names)
	if n < 2 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "cannot form a cycle with %d participants", n)
	}

	space := factorial(n)
	budget := h.Budget
	if budget == nil || budget.Sign() == 0 {
		budget = space
	}

	sel := digitsFromRank(new(big.Int).Rand(h.Rand, space), n)
	tries := new(big.Int)
	path := make([]string, 0, n)
	remaining := make([]string, 0, n)

	for {
		bad := h.walk(names, allowed, sel, &path, &remaining)
		if bad < 0 {
			return ringPairing(path), nil
		}

		// A rejection at position bad discards every permutation sharing the
		// prefix: (N-1-bad)! of them.
		tries.Add(tries, factorial(n-1-bad))
		if tries.Cmp(budget) > 0 {
			return nil, errors.New(errors.ErrCodeNoCycle, "no single-cycle pairing found in %s tries", tries.String())
		}
		advance(sel, bad, n)
	}
}

// walk resolves the digit vector into a path, left to right, and returns the
// first position whose edge is not allowed (-1 if the full cycle is valid).
// The path and remaining slices are reused across calls to avoid churn.
func (h *Hamiltonian) walk(names []string, allowed Allowed, sel []int, path, remaining *[]string) int {
	*path = (*path)[:0]
	*remaining = append((*remaining)[:0], names...)

	for i := 0; i < len(names); i++ {
		// The digit is taken relative to participants not yet in the path,
		// which mechanically rules out repeats.
		next := (*remaining)[sel[i]]
		if i > 0 && !allowed[(*path)[i-1]][next] {
			return i
		}
		*path = append(*path, next)
		*remaining = append((*remaining)[:sel[i]], (*remaining)[sel[i]+1:]...)
	}

	// Full length: the wrap-around edge closes the ring.
	last := (*path)[len(*path)-1]
	if !allowed[last][(*path)[0]] {
		return len(names) - 1
	}
	return -1
}

// advance moves the digit vector to the next permutation that does not share
// the rejected prefix: digits after pos reset to zero, the digit at pos
// increments, and overflow carries leftward. Carrying past position zero
// wraps to the all-zero vector; the tries budget handles exhaustion.
func advance(sel []int, pos, n int) {
	for i := pos + 1; i < n; i++ {
		sel[i] = 0
	}
	for i := pos; i >= 0; i-- {
		sel[i]++
		if sel[i] < n-i {
			return
		}
		sel[i] = 0
	}
}

// digitsFromRank decomposes rank into factorial-number-system digits:
// position i (0-indexed) has base n-i.
func digitsFromRank(rank *big.Int, n int) []int {
	sel := make([]int, n)
	r := new(big.Int).Set(rank)
	mod := new(big.Int)
	for i := n - 1; i >= 0; i-- {
		base := big.NewInt(int64(n - i))
		r.DivMod(r, base, mod)
		sel[i] = int(mod.Int64())
	}
	return sel
}

// ringPairing builds the pairing from a closed path: each participant gives
// to the next, and the last wraps around to the first.
func ringPairing(path []string) Pairing {
	p := make(Pairing, len(path))
	for i, from := range path {
		p[from] = path[(i+1)%len(path)]
	}
	return p
}

// factorial returns n! as a big integer; the permutation space outgrows
// int64 at n = 21.
func factorial(n int) *big.Int {
	result := big.NewInt(1)
	for i := 2; i <= n; i++ {
		result.Mul(result, big.NewInt(int64(i)))
	}
	return result
}
