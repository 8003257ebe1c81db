package domain

import "context"

// ListFilter narrows List results.
type ListFilter struct {
	// Category keeps only one category. Empty means all.
	Category Category

	// Language keeps only one language code. Empty means all.
	Language string

	// Limit caps the number of results. Zero means no limit.
	Limit int

	// IncludeDeleted returns soft-deleted templates as well.
	IncludeDeleted bool
}

// Repository persists templates and their revision history.
type Repository interface {
	// Save inserts a new template or updates an existing one. A new revision
	// is appended when the template is new or its body or footer changed, and
	// the template's version is updated to match.
	// Returns DuplicateNameError when a new template reuses a live name.
	Save(ctx context.Context, t *Template) error

	// FindByID returns a live template. Returns NotFoundError otherwise.
	FindByID(ctx context.Context, id string) (*Template, error)

	// FindByName returns a live template. Returns NotFoundError otherwise.
	FindByName(ctx context.Context, name string) (*Template, error)

	// List returns templates ordered by name.
	List(ctx context.Context, filter ListFilter) ([]*Template, error)

	// Delete soft-deletes a template. Returns NotFoundError if none is live.
	Delete(ctx context.Context, id string) error

	// Revisions returns the history of a template, oldest first.
	Revisions(ctx context.Context, id string) ([]Revision, error)
}
