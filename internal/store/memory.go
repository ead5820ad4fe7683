package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"dario.cat/mergo"
)

// MemoryStore keeps documents in memory and mirrors them to JSON files
// under a data directory. It is the default single-user backend and the
// seed mechanism for local development.
type MemoryStore struct {
	mu      sync.Mutex
	dataDir string
	docs    map[string]*OrgDocument
}

func NewMemoryStore(dataDir string) *MemoryStore {
	return &MemoryStore{
		dataDir: dataDir,
		docs:    make(map[string]*OrgDocument),
	}
}

func (s *MemoryStore) Load(ctx context.Context, orgID string) (*OrgDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if doc, ok := s.docs[orgID]; ok {
		return doc, nil
	}

	raw, err := os.ReadFile(s.path(orgID))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read document file: %w", err)
	}

	var doc OrgDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode document for org %s: %w", orgID, err)
	}

	// Older files may predate some collections; fill the gaps from the
	// default document so consumers never see nil maps.
	if err := mergo.Merge(&doc, *DefaultDocument()); err != nil {
		return nil, fmt.Errorf("merge document defaults: %w", err)
	}

	s.docs[orgID] = &doc
	return &doc, nil
}

func (s *MemoryStore) Save(ctx context.Context, orgID string, doc *OrgDocument) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc.Version++
	doc.UpdatedAt = time.Now().UTC()

	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("encode document for org %s: %w", orgID, err)
	}

	if err := os.MkdirAll(s.dataDir, 0755); err != nil {
		return 0, fmt.Errorf("create data directory: %w", err)
	}
	if err := os.WriteFile(s.path(orgID), raw, 0644); err != nil {
		return 0, fmt.Errorf("write document file: %w", err)
	}

	s.docs[orgID] = doc
	return doc.Version, nil
}

func (s *MemoryStore) Close() error {
	return nil
}

func (s *MemoryStore) path(orgID string) string {
	return filepath.Join(s.dataDir, orgID+".json")
}
