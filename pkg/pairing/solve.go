package pairing

import (
	"math/big"
	"math/rand"

	"github.com/matzehuels/giftring/pkg/errors"
)

// =============================================================================
// Orchestrator
// =============================================================================

// Algorithm selects the search strategy.
type Algorithm string

const (
	// AlgorithmDefault attempts the Hamiltonian search and silently falls
	// back to backtracking when no single cycle can be found.
	AlgorithmDefault Algorithm = "default"

	// AlgorithmHamiltonian runs only the structured single-cycle search.
	AlgorithmHamiltonian Algorithm = "hamiltonian"

	// AlgorithmRandom runs only the randomized backtracking search.
	AlgorithmRandom Algorithm = "random"
)

// ParseAlgorithm validates an algorithm token. The empty string maps to
// AlgorithmDefault; any other unknown token is a configuration error.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch Algorithm(s) {
	case "":
		return AlgorithmDefault, nil
	case AlgorithmDefault, AlgorithmHamiltonian, AlgorithmRandom:
		return Algorithm(s), nil
	}
	return "", errors.New(errors.ErrCodeUnknownAlgorithm, "unknown algorithm %q (want default, hamiltonian, or random)", s)
}

// Options configures Solve.
type Options struct {
	// Algorithm selects the strategy; empty means AlgorithmDefault.
	Algorithm Algorithm

	// Rand is the shared random source for both strategies. If nil, a
	// deterministic source with seed 1 is used.
	Rand *rand.Rand

	// Budget bounds the Hamiltonian search; zero means the full N! space.
	Budget *big.Int

	// Logger receives progress messages (optional).
	Logger func(msg string, args ...any)
}

// Solve validates the constraint model, runs the selected strategy, and
// returns the final pairing.
//
// Error codes distinguish root causes: ErrCodeNoCycle means no single-cycle
// pairing exists or was found within budget (try the random algorithm);
// ErrCodeInfeasible means the constraints admit no valid bijection at all.
func Solve(names []string, fixed Fixed, block Block, opts Options) (Pairing, error) {
	if err := Validate(names, fixed, block); err != nil {
		return nil, err
	}

	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	logf := opts.Logger
	if logf == nil {
		logf = func(string, ...any) {}
	}

	algorithm := opts.Algorithm
	if algorithm == "" {
		algorithm = AlgorithmDefault
	}

	switch algorithm {
	case AlgorithmHamiltonian:
		return solveStructured(names, fixed, block, rng, opts.Budget)

	case AlgorithmRandom:
		return (&Backtracker{Rand: rng}).Search(names, fixed, block)

	case AlgorithmDefault:
		pairs, err := solveStructured(names, fixed, block, rng, opts.Budget)
		if err == nil {
			return pairs, nil
		}
		if !errors.Is(err, errors.ErrCodeNoCycle) {
			return nil, err
		}
		logf("no single cycle found, falling back to backtracking search")
		return (&Backtracker{Rand: rng}).Search(names, fixed, block)
	}

	return nil, errors.New(errors.ErrCodeUnknownAlgorithm, "unknown algorithm %q", algorithm)
}

// solveStructured builds the allowed-edge graph, proves or disproves basic
// cycle feasibility via reachability, and runs the Hamiltonian search.
func solveStructured(names []string, fixed Fixed, block Block, rng *rand.Rand, budget *big.Int) (Pairing, error) {
	allowed := BuildAllowed(names, fixed, block)
	if !allowed.Reachable(names) {
		return nil, errors.New(errors.ErrCodeNoCycle, "allowed-edge graph is not fully reachable, no single-cycle pairing exists")
	}
	return (&Hamiltonian{Rand: rng, Budget: budget}).Search(names, allowed)
}
