// Package history persists completed draws so later draws can avoid
// repeating them.
//
// Every draw is stored as a Record (draw ID, seed, algorithm, final pairs).
// Avoid merges the pairings of recent records into a Block structure, so
// nobody is assigned the same pick as in the last few draws.
//
// Two backends implement Store: a JSON file store for single-machine CLI use
// and a MongoDB store for shared deployments.
package history

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/giftring/pkg/pairing"
)

// Record is one completed draw.
type Record struct {
	ID        string            `json:"id" bson:"_id"`
	CreatedAt time.Time         `json:"created_at" bson:"created_at"`
	Seed      int64             `json:"seed" bson:"seed"`
	Algorithm string            `json:"algorithm" bson:"algorithm"`
	Names     []string          `json:"names" bson:"names"`
	Pairs     map[string]string `json:"pairs" bson:"pairs"`
}

// NewRecord builds a record for a completed draw with a fresh draw ID.
func NewRecord(seed int64, algorithm string, names []string, pairs pairing.Pairing) Record {
	return Record{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Seed:      seed,
		Algorithm: algorithm,
		Names:     names,
		Pairs:     pairs,
	}
}

// Store is the interface for draw history backends.
type Store interface {
	// Append persists a completed draw.
	Append(ctx context.Context, rec Record) error

	// List returns all records, oldest first.
	List(ctx context.Context) ([]Record, error)
}

// Avoid returns a copy of block extended with every pair from the most
// recent n records, so a new draw cannot repeat them. With n <= 0, all
// records are merged.
func Avoid(block pairing.Block, records []Record, n int) pairing.Block {
	out := block.Clone()

	start := 0
	if n > 0 && len(records) > n {
		start = len(records) - n
	}
	for _, rec := range records[start:] {
		for from, to := range rec.Pairs {
			out.Add(from, to)
		}
	}
	return out
}
