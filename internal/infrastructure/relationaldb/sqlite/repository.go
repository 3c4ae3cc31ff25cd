// Package sqlite provides a SQLite implementation of the Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/rabindrakharel/pmo-core/internal/domain/entities"
	"github.com/rabindrakharel/pmo-core/internal/infrastructure/config"
)

// generateUUID returns a new UUID string.
func generateUUID() string {
	return uuid.New().String()
}

// timeNow returns the current time (can be mocked in tests).
var timeNow = time.Now

// Repository implements ports.Store using SQLite.
type Repository struct {
	db   *sql.DB
	path string
}

// NewRepository creates a new SQLite repository.
func NewRepository(cfg config.SQLiteConfig) (*Repository, error) {
	if cfg.Path == "" {
		return nil, errors.New("sqlite path is required")
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w: %v", entities.ErrStoreUnavailable, err)
	}

	// Enable foreign keys for referential integrity
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w: %v", entities.ErrStoreUnavailable, err)
	}

	// Enable WAL mode for better concurrent read/write performance
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w: %v", entities.ErrStoreUnavailable, err)
	}

	// Set busy timeout to avoid "database is locked" errors
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w: %v", entities.ErrStoreUnavailable, err)
	}

	return &Repository{
		db:   db,
		path: cfg.Path,
	}, nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	return r.db.Close()
}

// Path returns the database file path.
func (r *Repository) Path() string {
	return r.path
}

// EnsureSchema creates the database schema if it doesn't exist.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	schema := `
	-- Entity type catalog
	CREATE TABLE IF NOT EXISTS entity_types (
		code TEXT PRIMARY KEY,
		label TEXT NOT NULL,
		icon TEXT,
		allowed_child_codes TEXT NOT NULL DEFAULT '[]',
		active INTEGER NOT NULL DEFAULT 1,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	-- Instance registry (denormalized name/existence cache)
	CREATE TABLE IF NOT EXISTS entity_instances (
		entity_type TEXT NOT NULL,
		entity_id TEXT NOT NULL,
		display_name TEXT NOT NULL,
		display_code TEXT,
		active INTEGER NOT NULL DEFAULT 1,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (entity_type, entity_id)
	);
	CREATE INDEX IF NOT EXISTS idx_instances_type ON entity_instances(entity_type);

	-- Relationship graph (directed parent/child edges)
	CREATE TABLE IF NOT EXISTS entity_links (
		id TEXT PRIMARY KEY,
		parent_type TEXT NOT NULL,
		parent_id TEXT NOT NULL,
		child_type TEXT NOT NULL,
		child_id TEXT NOT NULL,
		label TEXT NOT NULL DEFAULT 'contains',
		active INTEGER NOT NULL DEFAULT 1,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(parent_type, parent_id, child_type, child_id)
	);
	CREATE INDEX IF NOT EXISTS idx_links_parent ON entity_links(parent_type, parent_id);
	CREATE INDEX IF NOT EXISTS idx_links_child ON entity_links(child_type, child_id);

	-- Permission grants (one row per subject/type/id key)
	CREATE TABLE IF NOT EXISTS permission_grants (
		id TEXT PRIMARY KEY,
		subject_id TEXT NOT NULL,
		entity_type TEXT NOT NULL,
		entity_id TEXT NOT NULL,
		level INTEGER NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(subject_id, entity_type, entity_id)
	);
	CREATE INDEX IF NOT EXISTS idx_grants_subject ON permission_grants(subject_id);
	CREATE INDEX IF NOT EXISTS idx_grants_entity ON permission_grants(entity_type, entity_id);

	-- Audit log (lifecycle operations)
	CREATE TABLE IF NOT EXISTS audit_log (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		action TEXT NOT NULL,
		entity_type TEXT NOT NULL,
		entity_id TEXT NOT NULL,
		details TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_audit_entity ON audit_log(entity_type, entity_id);
	CREATE INDEX IF NOT EXISTS idx_audit_action ON audit_log(action);
	`

	_, err := r.db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// Entity type operations

// SaveEntityType inserts or updates an entity type by code.
func (r *Repository) SaveEntityType(ctx context.Context, et *entities.EntityType) error {
	children, err := json.Marshal(et.AllowedChildCodes)
	if err != nil {
		return fmt.Errorf("encoding child codes: %w", err)
	}
	query := `
		INSERT INTO entity_types (code, label, icon, allowed_child_codes, active, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(code) DO UPDATE SET
			label = excluded.label,
			icon = excluded.icon,
			allowed_child_codes = excluded.allowed_child_codes,
			active = excluded.active
	`
	_, err = r.db.ExecContext(ctx, query,
		et.Code,
		et.Label,
		et.Icon,
		string(children),
		boolToInt(et.Active),
		timeNow(),
	)
	if err != nil {
		return fmt.Errorf("saving entity type: %w", err)
	}
	return nil
}

// FindEntityType finds an entity type by code.
func (r *Repository) FindEntityType(ctx context.Context, code string) (*entities.EntityType, error) {
	query := `
		SELECT code, label, icon, allowed_child_codes, active, created_at
		FROM entity_types
		WHERE code = ?
	`
	row := r.db.QueryRowContext(ctx, query, code)
	et, err := scanEntityType(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning entity type: %w", err)
	}
	return et, nil
}

// ListEntityTypes lists all entity types ordered by code.
func (r *Repository) ListEntityTypes(ctx context.Context) ([]entities.EntityType, error) {
	query := `
		SELECT code, label, icon, allowed_child_codes, active, created_at
		FROM entity_types
		ORDER BY code ASC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying entity types: %w", err)
	}
	defer rows.Close()

	var result []entities.EntityType
	for rows.Next() {
		et, err := scanEntityType(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning entity type: %w", err)
		}
		result = append(result, *et)
	}
	return result, rows.Err()
}

func scanEntityType(scan func(...any) error) (*entities.EntityType, error) {
	var et entities.EntityType
	var icon sql.NullString
	var children string
	var active int
	if err := scan(&et.Code, &et.Label, &icon, &children, &active, &et.CreatedAt); err != nil {
		return nil, err
	}
	et.Icon = icon.String
	et.Active = active != 0
	if err := json.Unmarshal([]byte(children), &et.AllowedChildCodes); err != nil {
		return nil, fmt.Errorf("decoding child codes: %w", err)
	}
	return &et, nil
}

// Instance registry operations

// UpsertInstance inserts or updates a registry record.
// Last write wins for the display fields; a previously removed key can
// be registered again.
func (r *Repository) UpsertInstance(ctx context.Context, rec *entities.InstanceRecord) error {
	query := `
		INSERT INTO entity_instances (entity_type, entity_id, display_name, display_code, active, created_at, updated_at)
		VALUES (?, ?, ?, ?, 1, ?, ?)
		ON CONFLICT(entity_type, entity_id) DO UPDATE SET
			display_name = excluded.display_name,
			display_code = excluded.display_code,
			active = 1,
			updated_at = excluded.updated_at
	`
	now := timeNow()
	_, err := r.db.ExecContext(ctx, query,
		rec.EntityType,
		rec.EntityID,
		rec.DisplayName,
		nullableString(rec.DisplayCode),
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("saving instance: %w", err)
	}
	return nil
}

// FindInstance finds a registry record by key.
func (r *Repository) FindInstance(ctx context.Context, entityType, entityID string) (*entities.InstanceRecord, error) {
	query := `
		SELECT entity_type, entity_id, display_name, display_code, active, created_at, updated_at
		FROM entity_instances
		WHERE entity_type = ? AND entity_id = ?
	`
	row := r.db.QueryRowContext(ctx, query, entityType, entityID)
	rec, err := scanInstance(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning instance: %w", err)
	}
	return rec, nil
}

// ListInstancesByType lists registry records for a type with pagination.
func (r *Repository) ListInstancesByType(ctx context.Context, entityType string, limit, offset int) ([]*entities.InstanceRecord, error) {
	query := `
		SELECT entity_type, entity_id, display_name, display_code, active, created_at, updated_at
		FROM entity_instances
		WHERE entity_type = ?
		ORDER BY display_name ASC
		LIMIT ? OFFSET ?
	`
	rows, err := r.db.QueryContext(ctx, query, entityType, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("querying instances: %w", err)
	}
	defer rows.Close()

	result := make([]*entities.InstanceRecord, 0, limit)
	for rows.Next() {
		rec, err := scanInstance(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning instance: %w", err)
		}
		result = append(result, rec)
	}
	return result, rows.Err()
}

// DeleteInstance removes a registry record. Idempotent.
func (r *Repository) DeleteInstance(ctx context.Context, entityType, entityID string) error {
	query := `DELETE FROM entity_instances WHERE entity_type = ? AND entity_id = ?`
	if _, err := r.db.ExecContext(ctx, query, entityType, entityID); err != nil {
		return fmt.Errorf("deleting instance: %w", err)
	}
	return nil
}

func scanInstance(scan func(...any) error) (*entities.InstanceRecord, error) {
	var rec entities.InstanceRecord
	var code sql.NullString
	var active int
	if err := scan(&rec.EntityType, &rec.EntityID, &rec.DisplayName, &code, &active, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		return nil, err
	}
	rec.DisplayCode = code.String
	rec.Active = active != 0
	return &rec, nil
}

// Relationship graph operations

// FindEdgeByTuple finds the edge for an exact endpoint tuple, active
// or inactive.
func (r *Repository) FindEdgeByTuple(ctx context.Context, parentType, parentID, childType, childID string) (*entities.Edge, error) {
	query := `
		SELECT id, parent_type, parent_id, child_type, child_id, label, active, created_at
		FROM entity_links
		WHERE parent_type = ? AND parent_id = ? AND child_type = ? AND child_id = ?
	`
	row := r.db.QueryRowContext(ctx, query, parentType, parentID, childType, childID)
	edge, err := scanEdge(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning edge: %w", err)
	}
	return edge, nil
}

// FindEdgeByID finds an edge by row id.
func (r *Repository) FindEdgeByID(ctx context.Context, id string) (*entities.Edge, error) {
	query := `
		SELECT id, parent_type, parent_id, child_type, child_id, label, active, created_at
		FROM entity_links
		WHERE id = ?
	`
	row := r.db.QueryRowContext(ctx, query, id)
	edge, err := scanEdge(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning edge: %w", err)
	}
	return edge, nil
}

// SaveEdge inserts an edge, or reactivates the existing row for the
// same endpoint tuple. The ON CONFLICT clause makes two racing inserts
// for the same tuple converge on a single surviving row, which keeps
// its original id.
func (r *Repository) SaveEdge(ctx context.Context, edge *entities.Edge) error {
	query := `
		INSERT INTO entity_links (id, parent_type, parent_id, child_type, child_id, label, active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, 1, ?)
		ON CONFLICT(parent_type, parent_id, child_type, child_id) DO UPDATE SET
			label = excluded.label,
			active = 1
	`
	id := edge.ID
	if id == "" {
		id = generateUUID()
	}
	_, err := r.db.ExecContext(ctx, query,
		id,
		edge.ParentType,
		edge.ParentID,
		edge.ChildType,
		edge.ChildID,
		edge.Label,
		timeNow(),
	)
	if err != nil {
		return fmt.Errorf("saving edge: %w", err)
	}
	return nil
}

// FindEdges returns active edges matching the filter.
func (r *Repository) FindEdges(ctx context.Context, filter entities.EdgeFilter) ([]entities.Edge, error) {
	conditions := []string{"active = 1"}
	args := []any{}
	if filter.ParentType != "" {
		conditions = append(conditions, "parent_type = ?")
		args = append(args, filter.ParentType)
	}
	if filter.ParentID != "" {
		conditions = append(conditions, "parent_id = ?")
		args = append(args, filter.ParentID)
	}
	if filter.ChildType != "" {
		conditions = append(conditions, "child_type = ?")
		args = append(args, filter.ChildType)
	}
	if filter.ChildID != "" {
		conditions = append(conditions, "child_id = ?")
		args = append(args, filter.ChildID)
	}

	query := fmt.Sprintf(`
		SELECT id, parent_type, parent_id, child_type, child_id, label, active, created_at
		FROM entity_links
		WHERE %s
		ORDER BY created_at ASC
	`, strings.Join(conditions, " AND "))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying edges: %w", err)
	}
	defer rows.Close()

	var result []entities.Edge
	for rows.Next() {
		edge, err := scanEdge(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning edge: %w", err)
		}
		result = append(result, *edge)
	}
	return result, rows.Err()
}

// DeleteEdge removes an edge by id. Idempotent.
func (r *Repository) DeleteEdge(ctx context.Context, id string) error {
	query := `DELETE FROM entity_links WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("deleting edge: %w", err)
	}
	return nil
}

func scanEdge(scan func(...any) error) (*entities.Edge, error) {
	var edge entities.Edge
	var active int
	if err := scan(&edge.ID, &edge.ParentType, &edge.ParentID, &edge.ChildType, &edge.ChildID, &edge.Label, &active, &edge.CreatedAt); err != nil {
		return nil, err
	}
	edge.Active = active != 0
	return &edge, nil
}

// Permission grant operations

// FindGrant finds the stored grant for an exact key.
func (r *Repository) FindGrant(ctx context.Context, subjectID, entityType, entityID string) (*entities.Grant, error) {
	query := `
		SELECT id, subject_id, entity_type, entity_id, level, created_at, updated_at
		FROM permission_grants
		WHERE subject_id = ? AND entity_type = ? AND entity_id = ?
	`
	row := r.db.QueryRowContext(ctx, query, subjectID, entityType, entityID)
	grant, err := scanGrant(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning grant: %w", err)
	}
	return grant, nil
}

// UpsertGrantMax inserts a grant or raises the stored level.
// MAX(level, excluded.level) makes re-granting a monotone merge:
// a lower requested level never overwrites a higher stored one.
func (r *Repository) UpsertGrantMax(ctx context.Context, grant *entities.Grant) error {
	query := `
		INSERT INTO permission_grants (id, subject_id, entity_type, entity_id, level, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(subject_id, entity_type, entity_id) DO UPDATE SET
			level = MAX(permission_grants.level, excluded.level),
			updated_at = excluded.updated_at
	`
	id := grant.ID
	if id == "" {
		id = generateUUID()
	}
	now := timeNow()
	_, err := r.db.ExecContext(ctx, query,
		id,
		grant.SubjectID,
		grant.EntityType,
		grant.EntityID,
		int(grant.Level),
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("saving grant: %w", err)
	}
	return nil
}

// DeleteGrants removes every grant for the exact key. Idempotent.
func (r *Repository) DeleteGrants(ctx context.Context, subjectID, entityType, entityID string) error {
	query := `DELETE FROM permission_grants WHERE subject_id = ? AND entity_type = ? AND entity_id = ?`
	if _, err := r.db.ExecContext(ctx, query, subjectID, entityType, entityID); err != nil {
		return fmt.Errorf("deleting grants: %w", err)
	}
	return nil
}

// FindGrantsForSubjects returns all grants held by any of the subjects
// for one entity type.
func (r *Repository) FindGrantsForSubjects(ctx context.Context, subjectIDs []string, entityType string) ([]entities.Grant, error) {
	if len(subjectIDs) == 0 {
		return []entities.Grant{}, nil
	}

	placeholders := make([]string, len(subjectIDs))
	args := make([]any, 0, len(subjectIDs)+1)
	for i, id := range subjectIDs {
		placeholders[i] = "?"
		args = append(args, id)
	}
	args = append(args, entityType)

	query := fmt.Sprintf(`
		SELECT id, subject_id, entity_type, entity_id, level, created_at, updated_at
		FROM permission_grants
		WHERE subject_id IN (%s) AND entity_type = ?
	`, strings.Join(placeholders, ","))

	return r.queryGrants(ctx, query, args...)
}

// FindAllGrantsForSubjects returns all grants held by any of the
// subjects across every entity type.
func (r *Repository) FindAllGrantsForSubjects(ctx context.Context, subjectIDs []string) ([]entities.Grant, error) {
	if len(subjectIDs) == 0 {
		return []entities.Grant{}, nil
	}

	placeholders := make([]string, len(subjectIDs))
	args := make([]any, len(subjectIDs))
	for i, id := range subjectIDs {
		placeholders[i] = "?"
		args[i] = id
	}

	query := fmt.Sprintf(`
		SELECT id, subject_id, entity_type, entity_id, level, created_at, updated_at
		FROM permission_grants
		WHERE subject_id IN (%s)
	`, strings.Join(placeholders, ","))

	return r.queryGrants(ctx, query, args...)
}

func (r *Repository) queryGrants(ctx context.Context, query string, args ...any) ([]entities.Grant, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying grants: %w", err)
	}
	defer rows.Close()

	var result []entities.Grant
	for rows.Next() {
		grant, err := scanGrant(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning grant: %w", err)
		}
		result = append(result, *grant)
	}
	return result, rows.Err()
}

func scanGrant(scan func(...any) error) (*entities.Grant, error) {
	var grant entities.Grant
	var level int
	if err := scan(&grant.ID, &grant.SubjectID, &grant.EntityType, &grant.EntityID, &level, &grant.CreatedAt, &grant.UpdatedAt); err != nil {
		return nil, err
	}
	grant.Level = entities.Level(level)
	grant.Via = entities.ViaDirect
	return &grant, nil
}

// Orchestration

// PurgeInstance removes the registry record, every edge touching the
// instance, and (optionally) every grant scoped to it, in a single
// transaction. A crash mid-purge can never leave the registry and the
// graph disagreeing about the instance.
func (r *Repository) PurgeInstance(ctx context.Context, entityType, entityID string, removeGrants bool) (*entities.PurgeCounts, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning purge transaction: %w", err)
	}
	defer tx.Rollback()

	counts := &entities.PurgeCounts{}

	res, err := tx.ExecContext(ctx,
		`DELETE FROM entity_instances WHERE entity_type = ? AND entity_id = ?`,
		entityType, entityID)
	if err != nil {
		return nil, fmt.Errorf("purging instance: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil {
		counts.Deregistered = int(n)
	}

	res, err = tx.ExecContext(ctx,
		`DELETE FROM entity_links
		 WHERE (parent_type = ? AND parent_id = ?) OR (child_type = ? AND child_id = ?)`,
		entityType, entityID, entityType, entityID)
	if err != nil {
		return nil, fmt.Errorf("purging edges: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil {
		counts.EdgesRemoved = int(n)
	}

	if removeGrants {
		res, err = tx.ExecContext(ctx,
			`DELETE FROM permission_grants WHERE entity_type = ? AND entity_id = ?`,
			entityType, entityID)
		if err != nil {
			return nil, fmt.Errorf("purging grants: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil {
			counts.GrantsRevoked = int(n)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing purge: %w", err)
	}
	return counts, nil
}

// Audit log

// LogAction appends an audit entry.
func (r *Repository) LogAction(ctx context.Context, action, entityType, entityID string, details map[string]any) error {
	var detailsJSON sql.NullString
	if details != nil {
		data, err := json.Marshal(details)
		if err != nil {
			return fmt.Errorf("encoding audit details: %w", err)
		}
		detailsJSON = sql.NullString{String: string(data), Valid: true}
	}

	query := `INSERT INTO audit_log (action, entity_type, entity_id, details, created_at) VALUES (?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, action, entityType, entityID, detailsJSON, timeNow()); err != nil {
		return fmt.Errorf("logging action: %w", err)
	}
	return nil
}

// FindAuditLog returns audit entries for one instance, newest first.
func (r *Repository) FindAuditLog(ctx context.Context, entityType, entityID string) ([]entities.AuditEntry, error) {
	query := `
		SELECT id, action, entity_type, entity_id, details, created_at
		FROM audit_log
		WHERE entity_type = ? AND entity_id = ?
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, query, entityType, entityID)
	if err != nil {
		return nil, fmt.Errorf("querying audit log: %w", err)
	}
	defer rows.Close()

	var result []entities.AuditEntry
	for rows.Next() {
		var entry entities.AuditEntry
		var details sql.NullString
		if err := rows.Scan(&entry.ID, &entry.Action, &entry.EntityType, &entry.EntityID, &details, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning audit entry: %w", err)
		}
		if details.Valid {
			if err := json.Unmarshal([]byte(details.String), &entry.Details); err != nil {
				return nil, fmt.Errorf("decoding audit details: %w", err)
			}
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
