package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists one versioned document row per organization.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Load(ctx context.Context, orgID string) (*OrgDocument, error) {
	var (
		raw       []byte
		version   int64
		updatedAt string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT document, version, updated_at FROM org_documents WHERE org_id = ?`,
		orgID,
	).Scan(&raw, &version, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query document for org %s: %w", orgID, err)
	}

	doc := DefaultDocument()
	if err := json.Unmarshal(raw, doc); err != nil {
		return nil, fmt.Errorf("decode document for org %s: %w", orgID, err)
	}
	doc.Version = version
	if t, err := time.Parse(time.RFC3339Nano, updatedAt); err == nil {
		doc.UpdatedAt = t
	}
	return doc, nil
}

func (s *SQLiteStore) Save(ctx context.Context, orgID string, doc *OrgDocument) (int64, error) {
	newVersion := doc.Version + 1
	now := time.Now().UTC()

	snapshot := *doc
	snapshot.Version = newVersion
	snapshot.UpdatedAt = now
	raw, err := json.Marshal(&snapshot)
	if err != nil {
		return 0, fmt.Errorf("encode document for org %s: %w", orgID, err)
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO org_documents (org_id, document, version, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (org_id) DO UPDATE SET
		   document = excluded.document,
		   version = excluded.version,
		   updated_at = excluded.updated_at
		 WHERE org_documents.version < excluded.version`,
		orgID, raw, newVersion, now.Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("save document for org %s: %w", orgID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return 0, fmt.Errorf("save document for org %s: %w", orgID, ErrVersionConflict)
	}

	doc.Version = newVersion
	doc.UpdatedAt = now

	slog.InfoContext(ctx, "Document saved",
		"org_id", orgID,
		"version", newVersion,
		"bytes", len(raw))
	return newVersion, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
