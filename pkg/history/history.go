// Package history records compilation runs.
//
// Backends:
//   - FileStore: JSON files under ~/.local/state/typst/history, for the CLI
//   - MongoStore: a MongoDB collection, for servers
//   - NullStore: records nothing
//
// Records are append-only; Recent lists the newest first.
package history

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/neunenak/typst/pkg/diag"
	"github.com/neunenak/typst/pkg/geom"
)

// DefaultLimit is the number of records Recent returns for limit <= 0.
const DefaultLimit = 20

// Record describes one compilation.
type Record struct {
	ID          string    `json:"id" bson:"_id"`
	DocHash     string    `json:"doc_hash" bson:"doc_hash"`
	Path        string    `json:"path,omitempty" bson:"path,omitempty"`
	Lang        string    `json:"lang" bson:"lang"`
	Final       string    `json:"final" bson:"final"`
	Diagnostics []string  `json:"diagnostics,omitempty" bson:"diagnostics,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

// NewRecord creates a record with a fresh ID, rendering the final
// alignment and the diagnostics as text.
func NewRecord(docHash, path, lang string, final geom.LayoutAlign, diags []diag.Diagnostic) Record {
	msgs := make([]string, len(diags))
	for i, d := range diags {
		msgs[i] = d.String()
	}
	return Record{
		ID:          uuid.NewString(),
		DocHash:     docHash,
		Path:        path,
		Lang:        lang,
		Final:       final.String(),
		Diagnostics: msgs,
		CreatedAt:   time.Now().UTC(),
	}
}

// Store persists records.
type Store interface {
	// Append stores a record. Records without an ID get one.
	Append(ctx context.Context, rec Record) error

	// Recent returns up to limit records, newest first.
	Recent(ctx context.Context, limit int) ([]Record, error)

	// Close releases backend resources.
	Close() error
}

// NullStore discards records.
type NullStore struct{}

func (NullStore) Append(context.Context, Record) error          { return nil }
func (NullStore) Recent(context.Context, int) ([]Record, error) { return nil, nil }
func (NullStore) Close() error                                  { return nil }

var _ Store = NullStore{}

func normalize(rec *Record) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
}

func limitOrDefault(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	return limit
}
