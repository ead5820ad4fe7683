// Package store persists organization documents. The document shape is the
// de-facto serialization contract: whatever the in-memory model holds is
// what gets written, and Save returns only once the write is durable — the
// workflow layer awaits that instead of guessing with a settling delay.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/Musyoka2020-eng/Contriflow/internal/core"
)

var (
	// ErrNotFound is returned by Load when the organization has no
	// stored document yet.
	ErrNotFound = errors.New("organization document not found")

	// ErrVersionConflict is returned by Save when the stored version
	// moved past the one being written.
	ErrVersionConflict = errors.New("document version conflict")
)

// OrgDocument is one organization's complete persisted state.
type OrgDocument struct {
	Contributions core.ContributionsData `json:"contributions"`
	Blacklist     core.BlacklistData     `json:"blacklist"`
	Budget        core.BudgetData        `json:"budget"`
	Campaigns     core.CampaignsData     `json:"campaigns"`
	Version       int64                  `json:"version"`
	UpdatedAt     time.Time              `json:"updatedAt"`
}

// DefaultDocument returns an empty document with every collection
// initialized, so loaded documents never surface nil maps.
func DefaultDocument() *OrgDocument {
	return &OrgDocument{
		Contributions: make(core.ContributionsData),
		Blacklist:     core.BlacklistData{},
		Budget:        core.BudgetData{Expenses: make(map[string][]core.Expense)},
		Campaigns:     make(core.CampaignsData),
	}
}

// Store is the narrow persistence interface the rest of the service
// consumes. Save reports completion (or failure) through its error.
type Store interface {
	// Load returns the stored document for orgID, or ErrNotFound.
	Load(ctx context.Context, orgID string) (*OrgDocument, error)
	// Save writes the document and returns the new stored version.
	Save(ctx context.Context, orgID string, doc *OrgDocument) (int64, error)
	Close() error
}
