package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ncruces/go-sqlite3"

	"github.com/zjrosen/wamark/internal/log"
	"github.com/zjrosen/wamark/internal/template/domain"
)

const templateColumns = `id, name, category, language, body, footer, version, created_at, updated_at, deleted_at`

// templateRepository implements domain.Repository using SQLite.
type templateRepository struct {
	db *sql.DB
}

func newTemplateRepository(db *sql.DB) *templateRepository {
	return &templateRepository{db: db}
}

var _ domain.Repository = (*templateRepository)(nil)

func scanTemplate(scanner interface{ Scan(...any) error }) (*TemplateModel, error) {
	var m TemplateModel
	err := scanner.Scan(
		&m.ID, &m.Name, &m.Category, &m.Language, &m.Body, &m.Footer,
		&m.Version, &m.CreatedAt, &m.UpdatedAt, &m.DeletedAt,
	)
	return &m, err
}

// Save inserts or updates t inside one transaction and appends a revision
// whenever the body or footer changed.
func (r *templateRepository) Save(ctx context.Context, t *domain.Template) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	model := toTemplateModel(t)
	var version int
	if t.IsNew() {
		version, err = insertTemplate(ctx, tx, model)
	} else {
		version, err = updateTemplate(ctx, tx, model)
	}
	if err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit template: %w", err)
	}
	t.SetVersion(version)
	return nil
}

func insertTemplate(ctx context.Context, tx *sql.Tx, m *TemplateModel) (int, error) {
	var exists int
	err := tx.QueryRowContext(ctx,
		`SELECT 1 FROM templates WHERE name = ? AND deleted_at IS NULL`, m.Name,
	).Scan(&exists)
	if err == nil {
		return 0, &domain.DuplicateNameError{Name: m.Name}
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("failed to check template name: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO templates (`+templateColumns+`) VALUES (?, ?, ?, ?, ?, ?, 1, ?, ?, NULL)`,
		m.ID, m.Name, m.Category, m.Language, m.Body, m.Footer, m.CreatedAt, m.UpdatedAt,
	)
	if errors.Is(err, sqlite3.CONSTRAINT_UNIQUE) || errors.Is(err, sqlite3.CONSTRAINT_PRIMARYKEY) {
		return 0, &domain.DuplicateNameError{Name: m.Name}
	}
	if err != nil {
		return 0, fmt.Errorf("failed to insert template: %w", err)
	}

	if err := insertRevision(ctx, tx, m, 1); err != nil {
		return 0, err
	}
	return 1, nil
}

func updateTemplate(ctx context.Context, tx *sql.Tx, m *TemplateModel) (int, error) {
	current, err := scanTemplate(tx.QueryRowContext(ctx,
		`SELECT `+templateColumns+` FROM templates WHERE id = ? AND deleted_at IS NULL`, m.ID))
	if errors.Is(err, sql.ErrNoRows) {
		return 0, &domain.NotFoundError{ID: m.ID}
	}
	if err != nil {
		return 0, fmt.Errorf("failed to load template: %w", err)
	}

	version := current.Version
	changed := current.Body != m.Body || deref(current.Footer) != deref(m.Footer)
	if changed {
		version++
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE templates SET category = ?, language = ?, body = ?, footer = ?, version = ?, updated_at = ?
		 WHERE id = ?`,
		m.Category, m.Language, m.Body, m.Footer, version, m.UpdatedAt, m.ID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to update template: %w", err)
	}

	if changed {
		if err := insertRevision(ctx, tx, m, version); err != nil {
			return 0, err
		}
	}
	return version, nil
}

func insertRevision(ctx context.Context, tx *sql.Tx, m *TemplateModel, version int) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO template_revisions (template_id, version, body, footer, created_at) VALUES (?, ?, ?, ?, ?)`,
		m.ID, version, m.Body, m.Footer, time.Now().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert revision: %w", err)
	}
	log.Debug(log.CatDB, "revision stored", "template", m.Name, "version", version)
	return nil
}

// FindByID returns a live template or NotFoundError.
func (r *templateRepository) FindByID(ctx context.Context, id string) (*domain.Template, error) {
	model, err := scanTemplate(r.db.QueryRowContext(ctx,
		`SELECT `+templateColumns+` FROM templates WHERE id = ? AND deleted_at IS NULL`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find template by id: %w", err)
	}
	return model.toDomain(), nil
}

// FindByName returns a live template or NotFoundError.
func (r *templateRepository) FindByName(ctx context.Context, name string) (*domain.Template, error) {
	model, err := scanTemplate(r.db.QueryRowContext(ctx,
		`SELECT `+templateColumns+` FROM templates WHERE name = ? AND deleted_at IS NULL`, name))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Name: name}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find template by name: %w", err)
	}
	return model.toDomain(), nil
}

// List returns templates matching filter ordered by name.
func (r *templateRepository) List(ctx context.Context, filter domain.ListFilter) ([]*domain.Template, error) {
	query := `SELECT ` + templateColumns + ` FROM templates WHERE 1 = 1`
	var args []any

	if filter.Category != "" {
		query += ` AND category = ?`
		args = append(args, string(filter.Category))
	}
	if filter.Language != "" {
		query += ` AND language = ?`
		args = append(args, filter.Language)
	}
	if !filter.IncludeDeleted {
		query += ` AND deleted_at IS NULL`
	}

	query += ` ORDER BY name ASC, created_at DESC`

	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var templates []*domain.Template
	for rows.Next() {
		model, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan template row: %w", err)
		}
		templates = append(templates, model.toDomain())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating template rows: %w", err)
	}
	return templates, nil
}

// Delete soft-deletes a live template.
func (r *templateRepository) Delete(ctx context.Context, id string) error {
	now := time.Now().UnixMilli()
	result, err := r.db.ExecContext(ctx,
		`UPDATE templates SET deleted_at = ?, updated_at = ? WHERE id = ? AND deleted_at IS NULL`,
		now, now, id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return &domain.NotFoundError{ID: id}
	}
	return nil
}

// Revisions returns every stored revision of id, oldest first. Deleted
// templates keep their history.
func (r *templateRepository) Revisions(ctx context.Context, id string) ([]domain.Revision, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT template_id, version, body, footer, created_at FROM template_revisions
		 WHERE template_id = ? ORDER BY version ASC`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list revisions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var revisions []domain.Revision
	for rows.Next() {
		var m RevisionModel
		if err := rows.Scan(&m.TemplateID, &m.Version, &m.Body, &m.Footer, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan revision row: %w", err)
		}
		revisions = append(revisions, m.toDomain())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating revision rows: %w", err)
	}
	if len(revisions) == 0 {
		return nil, &domain.NotFoundError{ID: id}
	}
	return revisions, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
