package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/giftring/pkg/errors"
	"github.com/matzehuels/giftring/pkg/pairing"
)

func newTestServer(t *testing.T) (*Server, map[string]string) {
	t.Helper()

	s := New(log.New(io.Discard), NewMemoryStore())
	codes, err := s.Seed(context.Background(), pairing.Pairing{
		"alice": "bob",
		"bob":   "alice",
	})
	if err != nil {
		t.Fatalf("Seed: %v", err)
	}
	return s, codes
}

func TestClaimFlow(t *testing.T) {
	s, codes := newTestServer(t)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	// First redeem succeeds.
	resp, err := http.Get(ts.URL + "/claim/" + codes["alice"])
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var claim claimResponse
	if err := json.NewDecoder(resp.Body).Decode(&claim); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if claim.Name != "alice" || claim.Pick != "bob" {
		t.Errorf("claim = %+v, want alice -> bob", claim)
	}

	// Second redeem of the same code is gone.
	resp2, err := http.Get(ts.URL + "/claim/" + codes["alice"])
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp2.Body.Close()
	if resp2.StatusCode != http.StatusGone {
		t.Errorf("second redeem status = %d, want 410", resp2.StatusCode)
	}

	// Unknown codes are not found.
	resp3, err := http.Get(ts.URL + "/claim/nonsense")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp3.Body.Close()
	if resp3.StatusCode != http.StatusNotFound {
		t.Errorf("unknown code status = %d, want 404", resp3.StatusCode)
	}
}

func TestHealthz(t *testing.T) {
	s, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestMemoryStoreRedeem(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Put(ctx, Claim{Code: "c1", Name: "alice", Pick: "bob"}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	claim, err := store.Redeem(ctx, "c1")
	if err != nil {
		t.Fatalf("Redeem: %v", err)
	}
	if claim.Pick != "bob" {
		t.Errorf("pick = %q, want bob", claim.Pick)
	}

	if _, err := store.Redeem(ctx, "c1"); !errors.Is(err, errors.ErrCodeClaimed) {
		t.Errorf("second redeem err = %v, want %s", err, errors.ErrCodeClaimed)
	}
	if _, err := store.Redeem(ctx, "c2"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("unknown code err = %v, want %s", err, errors.ErrCodeNotFound)
	}
}

func TestGenerateCodeUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code, err := GenerateCode()
		if err != nil {
			t.Fatalf("GenerateCode: %v", err)
		}
		if code == "" {
			t.Fatal("empty code")
		}
		if seen[code] {
			t.Fatalf("duplicate code %s", code)
		}
		seen[code] = true
	}
}
