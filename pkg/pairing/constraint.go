package pairing

import (
	"slices"

	"github.com/matzehuels/giftring/pkg/errors"
)

// =============================================================================
// Constraint Model
// =============================================================================

// Fixed is a partial mapping of mandatory assignments: Fixed[a] = b means the
// final pairing must assign a to b.
type Fixed map[string]string

// Block maps each participant to the set of participants they must not be
// assigned to.
type Block map[string]map[string]bool

// Pairing is a total bijective mapping of participant to pick with no fixed
// point, satisfying all Fixed and Block entries.
type Pairing map[string]string

// Clone returns a deep copy, so a search attempt can mutate its own copy
// without corrupting the caller's.
func (f Fixed) Clone() Fixed {
	out := make(Fixed, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Clone returns a deep copy including the nested sets.
func (b Block) Clone() Block {
	out := make(Block, len(b))
	for k, set := range b {
		cp := make(map[string]bool, len(set))
		for v := range set {
			cp[v] = true
		}
		out[k] = cp
	}
	return out
}

// Add records that from must not be assigned to, creating the set if needed.
func (b Block) Add(from, to string) {
	if b[from] == nil {
		b[from] = make(map[string]bool)
	}
	b[from][to] = true
}

// Has reports whether the assignment from -> to is blocked.
func (b Block) Has(from, to string) bool {
	return b[from][to]
}

// =============================================================================
// Validation
// =============================================================================

// Validate checks the structural invariants of the constraint model:
//   - at least two participants
//   - every Fixed key and value is a participant, with no self-assignment
//   - no participant is the forced target of two different sources
//   - every Block key and entry is a participant
//
// Two sources forced to the same target can never form a bijection, so this
// is rejected eagerly rather than surfacing as infeasibility mid-search.
func Validate(names []string, fixed Fixed, block Block) error {
	if len(names) < 2 {
		return errors.New(errors.ErrCodeInvalidConfig, "need at least 2 participants, got %d", len(names))
	}

	member := make(map[string]bool, len(names))
	for _, n := range names {
		if member[n] {
			return errors.New(errors.ErrCodeInvalidConfig, "duplicate participant %q", n)
		}
		member[n] = true
	}

	targets := make(map[string]string, len(fixed))
	for _, from := range sortedKeys(fixed) {
		to := fixed[from]
		if !member[from] {
			return errors.New(errors.ErrCodeUnknownParticipant, "%q in force is not a participant", from)
		}
		if !member[to] {
			return errors.New(errors.ErrCodeUnknownParticipant, "%q in force is not a participant", to)
		}
		if from == to {
			return errors.New(errors.ErrCodeConflictingForce, "%q cannot be forced to themselves", from)
		}
		if prev, ok := targets[to]; ok {
			return errors.New(errors.ErrCodeConflictingForce, "both %q and %q are forced to %q", prev, from, to)
		}
		targets[to] = from
	}

	for from, set := range block {
		if !member[from] {
			return errors.New(errors.ErrCodeUnknownParticipant, "%q in block is not a participant", from)
		}
		for to := range set {
			if !member[to] {
				return errors.New(errors.ErrCodeUnknownParticipant, "%q in block is not a participant", to)
			}
		}
	}

	return nil
}

// sortedKeys returns the keys of f in sorted order for deterministic
// validation messages and iteration.
func sortedKeys(f Fixed) []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// =============================================================================
// Pairing helpers
// =============================================================================

// SingleCycle reports whether the pairing forms exactly one cycle covering
// all participants: following assignments from any start returns to the start
// after exactly len(p) steps, never fewer.
func (p Pairing) SingleCycle() bool {
	if len(p) == 0 {
		return false
	}
	var start string
	for k := range p {
		start = k
		break
	}
	cur := start
	for i := 0; i < len(p); i++ {
		next, ok := p[cur]
		if !ok {
			return false
		}
		cur = next
		if cur == start {
			return i == len(p)-1
		}
	}
	return false
}

// Ring returns the participants in cycle order starting at start, or nil if
// the pairing does not form a single cycle.
func (p Pairing) Ring(start string) []string {
	if !p.SingleCycle() {
		return nil
	}
	if _, ok := p[start]; !ok {
		return nil
	}
	ring := make([]string, 0, len(p))
	cur := start
	for i := 0; i < len(p); i++ {
		ring = append(ring, cur)
		cur = p[cur]
	}
	return ring
}
