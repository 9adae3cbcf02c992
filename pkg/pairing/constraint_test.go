package pairing

import (
	"testing"

	"github.com/matzehuels/giftring/pkg/errors"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		names    []string
		fixed    Fixed
		block    Block
		wantCode errors.Code
	}{
		{
			name:  "Valid",
			names: []string{"alice", "bob", "carol"},
			fixed: Fixed{"alice": "bob"},
			block: Block{"bob": {"alice": true}},
		},
		{
			name:     "TooFewParticipants",
			names:    []string{"alice"},
			wantCode: errors.ErrCodeInvalidConfig,
		},
		{
			name:     "DuplicateParticipant",
			names:    []string{"alice", "bob", "alice"},
			wantCode: errors.ErrCodeInvalidConfig,
		},
		{
			name:     "UnknownForceSource",
			names:    []string{"alice", "bob"},
			fixed:    Fixed{"mallory": "bob"},
			wantCode: errors.ErrCodeUnknownParticipant,
		},
		{
			name:     "UnknownForceTarget",
			names:    []string{"alice", "bob"},
			fixed:    Fixed{"alice": "mallory"},
			wantCode: errors.ErrCodeUnknownParticipant,
		},
		{
			name:     "SelfForce",
			names:    []string{"alice", "bob"},
			fixed:    Fixed{"alice": "alice"},
			wantCode: errors.ErrCodeConflictingForce,
		},
		{
			name:     "DuplicateForceTarget",
			names:    []string{"alice", "bob", "carol"},
			fixed:    Fixed{"alice": "carol", "bob": "carol"},
			wantCode: errors.ErrCodeConflictingForce,
		},
		{
			name:     "UnknownBlockSource",
			names:    []string{"alice", "bob"},
			block:    Block{"mallory": {"bob": true}},
			wantCode: errors.ErrCodeUnknownParticipant,
		},
		{
			name:     "UnknownBlockTarget",
			names:    []string{"alice", "bob"},
			block:    Block{"alice": {"mallory": true}},
			wantCode: errors.ErrCodeUnknownParticipant,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.names, tt.fixed, tt.block)
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("Validate: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected %s error, got nil", tt.wantCode)
			}
			if got := errors.GetCode(err); got != tt.wantCode {
				t.Errorf("code = %s, want %s", got, tt.wantCode)
			}
		})
	}
}

func TestCloneIsolation(t *testing.T) {
	fixed := Fixed{"alice": "bob"}
	block := Block{"alice": {"carol": true}}

	fc := fixed.Clone()
	bc := block.Clone()
	fc["dave"] = "erin"
	bc.Add("alice", "dave")
	bc.Add("frank", "alice")

	if _, ok := fixed["dave"]; ok {
		t.Error("Fixed.Clone shares storage with original")
	}
	if block.Has("alice", "dave") || block.Has("frank", "alice") {
		t.Error("Block.Clone shares storage with original")
	}
	if !bc.Has("alice", "carol") {
		t.Error("Block.Clone dropped existing entry")
	}
}

func TestPairingSingleCycle(t *testing.T) {
	tests := []struct {
		name string
		p    Pairing
		want bool
	}{
		{
			name: "FourCycle",
			p:    Pairing{"a": "b", "b": "c", "c": "d", "d": "a"},
			want: true,
		},
		{
			name: "TwoTwoCycles",
			p:    Pairing{"a": "b", "b": "a", "c": "d", "d": "c"},
			want: false,
		},
		{
			name: "MutualPair",
			p:    Pairing{"a": "b", "b": "a"},
			want: true,
		},
		{
			name: "Empty",
			p:    Pairing{},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.SingleCycle(); got != tt.want {
				t.Errorf("SingleCycle = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPairingRing(t *testing.T) {
	p := Pairing{"a": "b", "b": "c", "c": "a"}

	ring := p.Ring("b")
	want := []string{"b", "c", "a"}
	if len(ring) != len(want) {
		t.Fatalf("ring = %v, want %v", ring, want)
	}
	for i := range want {
		if ring[i] != want[i] {
			t.Fatalf("ring = %v, want %v", ring, want)
		}
	}

	if got := (Pairing{"a": "b", "b": "a", "c": "d", "d": "c"}).Ring("a"); got != nil {
		t.Errorf("Ring on multi-cycle pairing = %v, want nil", got)
	}
	if got := p.Ring("zed"); got != nil {
		t.Errorf("Ring from unknown start = %v, want nil", got)
	}
}
