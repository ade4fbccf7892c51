package store

import (
	"database/sql"
	"embed"
	"fmt"
	"time"

	"cardsync/internal/models"
)

//go:embed sql/*.sql
var migrationFiles embed.FS

// Links is the association store contract consumed by the resolver and the
// orchestrator.
type Links interface {
	// Get returns the association for sourceID, or nil when none exists.
	Get(sourceID string) (*models.Association, error)

	// Upsert inserts or replaces the association keyed by its SourceID.
	Upsert(assoc models.Association) error

	// List returns every stored association ordered by source name.
	List() ([]models.Association, error)

	// Delete removes the association for sourceID. Deleting a missing
	// record is not an error.
	Delete(sourceID string) error
}

// LinkStore implements [Links] on SQLite.
type LinkStore struct {
	db *sql.DB
}

// NewLinkStore creates a LinkStore with the given database connection.
func NewLinkStore(db *sql.DB) *LinkStore {
	return &LinkStore{db: db}
}

// Migrate applies the embedded schema migrations.
func Migrate(db *sql.DB) error {
	entries, err := migrationFiles.ReadDir("sql")
	if err != nil {
		return fmt.Errorf("failed to read migration directory: %w", err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || len(name) < 7 || name[len(name)-7:] != "_up.sql" {
			continue
		}

		content, err := migrationFiles.ReadFile("sql/" + name)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", name, err)
		}
		if _, err := db.Exec(string(content)); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", name, err)
		}
	}

	return nil
}

// Get returns the association for sourceID, or nil when none exists.
func (s *LinkStore) Get(sourceID string) (*models.Association, error) {
	query := `
		SELECT source_id, target_id, target_name, source_name, last_synced_at
		FROM associations
		WHERE source_id = ?
	`

	var (
		assoc    models.Association
		syncedAt time.Time
	)
	err := s.db.QueryRow(query, sourceID).Scan(
		&assoc.SourceID,
		&assoc.TargetID,
		&assoc.TargetName,
		&assoc.SourceName,
		&syncedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan association: %w", err)
	}

	assoc.LastSyncedAt = syncedAt
	return &assoc, nil
}

// Upsert inserts or replaces the association keyed by its SourceID.
func (s *LinkStore) Upsert(assoc models.Association) error {
	if err := assoc.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO associations (source_id, target_id, target_name, source_name, last_synced_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(source_id) DO UPDATE SET
			target_id = excluded.target_id,
			target_name = excluded.target_name,
			source_name = excluded.source_name,
			last_synced_at = excluded.last_synced_at
	`

	if _, err := s.db.Exec(query,
		assoc.SourceID,
		assoc.TargetID,
		assoc.TargetName,
		assoc.SourceName,
		assoc.LastSyncedAt,
	); err != nil {
		return fmt.Errorf("failed to upsert association: %w", err)
	}

	return nil
}

// List returns every stored association ordered by source name.
func (s *LinkStore) List() ([]models.Association, error) {
	query := `
		SELECT source_id, target_id, target_name, source_name, last_synced_at
		FROM associations
		ORDER BY source_name ASC
	`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query associations: %w", err)
	}
	defer rows.Close()

	var assocs []models.Association
	for rows.Next() {
		var assoc models.Association
		if err := rows.Scan(
			&assoc.SourceID,
			&assoc.TargetID,
			&assoc.TargetName,
			&assoc.SourceName,
			&assoc.LastSyncedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan association: %w", err)
		}
		assocs = append(assocs, assoc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return assocs, nil
}

// Delete removes the association for sourceID.
func (s *LinkStore) Delete(sourceID string) error {
	if _, err := s.db.Exec(`DELETE FROM associations WHERE source_id = ?`, sourceID); err != nil {
		return fmt.Errorf("failed to delete association: %w", err)
	}
	return nil
}
