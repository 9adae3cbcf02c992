// Package pairing computes randomized, constraint-respecting one-to-one
// assignments over a set of participants.
//
// The input is a participant list plus two constraint structures: Fixed
// (directed assignments that must appear in the result) and Block (directed
// assignments that must never appear). The output is a Pairing: a total
// bijection over the participants with no fixed points, honoring every
// constraint.
//
// Two search strategies are provided:
//
//   - Hamiltonian: finds a pairing that forms one single cycle through all
//     participants, by enumerating permutations addressed in the factorial
//     number system with prefix pruning. Guarantees a single ring but can
//     fail on instances where constraints rule out every full cycle.
//   - Backtracking: randomized recursive assignment that only guarantees the
//     bijection property; sub-cycles (including mutual 2-cycles) may occur
//     unless explicitly blocked.
//
// Solve orchestrates both: the default algorithm attempts the Hamiltonian
// search and silently falls back to backtracking when no single cycle can be
// found, distinguishing "no single-cycle pairing" (errors.ErrCodeNoCycle)
// from "constraints admit no pairing at all" (errors.ErrCodeInfeasible).
//
// All randomness flows through an injected *rand.Rand; a fixed seed yields
// identical results across runs.
package pairing
