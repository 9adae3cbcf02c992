package server

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"sync"
	"time"

	"github.com/matzehuels/giftring/pkg/errors"
)

// Claim is one participant's pending assignment, redeemable exactly once
// through its claim code.
type Claim struct {
	Code string    `json:"code"`
	Name string    `json:"name"`
	Pick string    `json:"pick"`
	At   time.Time `json:"at"`
}

// ClaimStore issues and redeems one-time claim codes.
type ClaimStore interface {
	// Put stores a pending claim under its code.
	Put(ctx context.Context, c Claim) error

	// Redeem returns the claim for code and invalidates it. A second redeem
	// returns ErrCodeClaimed; an unknown code returns ErrCodeNotFound.
	Redeem(ctx context.Context, code string) (Claim, error)
}

// GenerateCode creates a cryptographically secure random claim code.
func GenerateCode() (string, error) {
	b := make([]byte, 12)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "generate claim code")
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// MemoryStore is an in-memory ClaimStore for single-instance serving.
type MemoryStore struct {
	mu       sync.Mutex
	pending  map[string]Claim
	redeemed map[string]time.Time
}

// NewMemoryStore creates an empty in-memory claim store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		pending:  make(map[string]Claim),
		redeemed: make(map[string]time.Time),
	}
}

// Put stores a pending claim under its code.
func (s *MemoryStore) Put(ctx context.Context, c Claim) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[c.Code] = c
	return nil
}

// Redeem returns the claim and invalidates the code. Redeemed codes are
// remembered so a second attempt is distinguishable from an unknown code.
func (s *MemoryStore) Redeem(ctx context.Context, code string) (Claim, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.pending[code]; ok {
		delete(s.pending, code)
		s.redeemed[code] = time.Now()
		return c, nil
	}
	if _, ok := s.redeemed[code]; ok {
		return Claim{}, errors.New(errors.ErrCodeClaimed, "code already redeemed")
	}
	return Claim{}, errors.New(errors.ErrCodeNotFound, "unknown claim code")
}
