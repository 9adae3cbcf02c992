package pairing

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/matzehuels/giftring/pkg/errors"
)

func testRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// checkPairing verifies the output contract shared by both strategies:
// a bijection over names with no fixed point, honoring Fixed and Block.
func checkPairing(t *testing.T, p Pairing, names []string, fixed Fixed, block Block) {
	t.Helper()

	if len(p) != len(names) {
		t.Fatalf("pairing has %d entries, want %d: %v", len(p), len(names), p)
	}
	picked := make(map[string]int)
	for _, from := range names {
		to, ok := p[from]
		if !ok {
			t.Fatalf("%s has no pick: %v", from, p)
		}
		if to == from {
			t.Errorf("%s is paired with themselves", from)
		}
		picked[to]++
	}
	for to, count := range picked {
		if count != 1 {
			t.Errorf("%s was picked %d times", to, count)
		}
	}
	for from, to := range fixed {
		if p[from] != to {
			t.Errorf("forced pair %s -> %s not honored, got %s", from, to, p[from])
		}
	}
	for from, set := range block {
		for to := range set {
			if p[from] == to {
				t.Errorf("blocked pair %s -> %s appears in output", from, to)
			}
		}
	}
}

func TestHamiltonianSearch(t *testing.T) {
	tests := []struct {
		name  string
		names []string
		fixed Fixed
		block Block
	}{
		{
			name:  "FourUnconstrained",
			names: []string{"a", "b", "c", "d"},
		},
		{
			name:  "TwoParticipants",
			names: []string{"a", "b"},
		},
		{
			name:  "SingleForcedEdge",
			names: []string{"a", "b", "c", "d"},
			fixed: Fixed{"a": "b"},
		},
		{
			name:  "DenseBlocks",
			names: []string{"a", "b", "c", "d", "e"},
			block: Block{
				"a": {"b": true, "c": true},
				"b": {"a": true},
				"c": {"d": true},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			allowed := BuildAllowed(tt.names, tt.fixed, tt.block)
			h := &Hamiltonian{Rand: testRand(7)}

			p, err := h.Search(tt.names, allowed)
			if err != nil {
				t.Fatalf("Search: %v", err)
			}
			checkPairing(t, p, tt.names, tt.fixed, tt.block)
			if !p.SingleCycle() {
				t.Errorf("pairing is not a single cycle: %v", p)
			}
		})
	}
}

func TestHamiltonianTooFewParticipants(t *testing.T) {
	h := &Hamiltonian{Rand: testRand(1)}
	if _, err := h.Search([]string{"a"}, Allowed{}); err == nil {
		t.Fatal("expected error for a single participant")
	}
}

// nonHamiltonian is reachable from every node but has no Hamiltonian cycle:
// d can only be entered and left through c, so any full cycle would visit c
// twice.
func nonHamiltonian() ([]string, Allowed) {
	names := []string{"a", "b", "c", "d"}
	allowed := Allowed{
		"a": {"b": true},
		"b": {"c": true},
		"c": {"a": true, "d": true},
		"d": {"c": true},
	}
	return names, allowed
}

func TestHamiltonianExhaustsBudget(t *testing.T) {
	names, allowed := nonHamiltonian()
	if !allowed.Reachable(names) {
		t.Fatal("test graph should be reachable")
	}

	h := &Hamiltonian{Rand: testRand(3)}
	_, err := h.Search(names, allowed)
	if err == nil {
		t.Fatal("expected no cycle to be found")
	}
	if !errors.Is(err, errors.ErrCodeNoCycle) {
		t.Errorf("code = %s, want %s", errors.GetCode(err), errors.ErrCodeNoCycle)
	}
}

func TestHamiltonianTunableBudget(t *testing.T) {
	names, allowed := nonHamiltonian()

	// A budget of one logical try gives up after the first rejection instead
	// of walking the whole 4! space.
	h := &Hamiltonian{Rand: testRand(2), Budget: big.NewInt(1)}
	_, err := h.Search(names, allowed)
	if !errors.Is(err, errors.ErrCodeNoCycle) {
		t.Fatalf("err = %v, want %s", err, errors.ErrCodeNoCycle)
	}
}

func TestHamiltonianDeterminism(t *testing.T) {
	names := []string{"a", "b", "c", "d", "e", "f", "g"}
	allowed := BuildAllowed(names, nil, nil)

	first, err := (&Hamiltonian{Rand: testRand(42)}).Search(names, allowed)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	second, err := (&Hamiltonian{Rand: testRand(42)}).Search(names, allowed)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	for _, n := range names {
		if first[n] != second[n] {
			t.Fatalf("same seed produced different pairings: %v vs %v", first, second)
		}
	}
}

func TestFactorialDigits(t *testing.T) {
	tests := []struct {
		rank int64
		n    int
		want []int
	}{
		{rank: 0, n: 3, want: []int{0, 0, 0}},
		{rank: 1, n: 3, want: []int{0, 1, 0}},
		{rank: 5, n: 3, want: []int{2, 1, 0}},
		{rank: 23, n: 4, want: []int{3, 2, 1, 0}},
	}

	for _, tt := range tests {
		got := digitsFromRank(big.NewInt(tt.rank), tt.n)
		for i := range tt.want {
			if got[i] != tt.want[i] {
				t.Errorf("digits(%d, %d) = %v, want %v", tt.rank, tt.n, got, tt.want)
				break
			}
		}
	}
}

func TestAdvanceCarries(t *testing.T) {
	// n=4: bases are 4, 3, 2, 1.
	sel := []int{0, 2, 1, 0}
	advance(sel, 1, 4) // increment position 1 (base 3): 2 -> carry into position 0
	want := []int{1, 0, 0, 0}
	for i := range want {
		if sel[i] != want[i] {
			t.Fatalf("advance = %v, want %v", sel, want)
		}
	}

	// Carrying past position zero wraps to all zeros.
	sel = []int{3, 2, 1, 0}
	advance(sel, 0, 4)
	for i, d := range sel {
		if d != 0 {
			t.Fatalf("wrap: sel[%d] = %d, want 0", i, d)
		}
	}
}

func TestFactorial(t *testing.T) {
	tests := []struct {
		n    int
		want int64
	}{
		{0, 1}, {1, 1}, {2, 2}, {5, 120}, {10, 3628800},
	}
	for _, tt := range tests {
		if got := factorial(tt.n); got.Int64() != tt.want {
			t.Errorf("factorial(%d) = %s, want %d", tt.n, got, tt.want)
		}
	}
}
