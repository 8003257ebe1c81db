// Package domain holds the WhatsApp message template entity, its validation
// rules and the repository contract. It has no infrastructure dependencies.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Category is the WhatsApp template category.
type Category string

const (
	CategoryMarketing      Category = "marketing"
	CategoryUtility        Category = "utility"
	CategoryAuthentication Category = "authentication"
)

// Categories lists every category in display order.
func Categories() []Category {
	return []Category{CategoryMarketing, CategoryUtility, CategoryAuthentication}
}

func (c Category) String() string {
	return string(c)
}

// IsValid reports whether c is a known category.
func (c Category) IsValid() bool {
	switch c {
	case CategoryMarketing, CategoryUtility, CategoryAuthentication:
		return true
	default:
		return false
	}
}

// Template is a WhatsApp message template. Fields are unexported; use
// NewTemplate or ReconstituteTemplate and the accessor methods.
type Template struct {
	id       string
	name     string
	category Category
	language string
	body     string
	footer   string
	version  int

	createdAt time.Time
	updatedAt time.Time
	deletedAt *time.Time
}

// NewTemplate creates an unsaved template with a fresh UUID at version 0.
// The repository assigns version 1 on first save.
func NewTemplate(name string, category Category, language, body string) *Template {
	now := time.Now()
	return &Template{
		id:        uuid.NewString(),
		name:      name,
		category:  category,
		language:  language,
		body:      body,
		createdAt: now,
		updatedAt: now,
	}
}

// TemplateSnapshot carries persisted state back into a Template.
type TemplateSnapshot struct {
	ID        string
	Name      string
	Category  Category
	Language  string
	Body      string
	Footer    string
	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// ReconstituteTemplate rebuilds a Template from storage.
func ReconstituteTemplate(s TemplateSnapshot) *Template {
	return &Template{
		id:        s.ID,
		name:      s.Name,
		category:  s.Category,
		language:  s.Language,
		body:      s.Body,
		footer:    s.Footer,
		version:   s.Version,
		createdAt: s.CreatedAt,
		updatedAt: s.UpdatedAt,
		deletedAt: s.DeletedAt,
	}
}

func (t *Template) ID() string            { return t.id }
func (t *Template) Name() string          { return t.name }
func (t *Template) Category() Category    { return t.category }
func (t *Template) Language() string      { return t.language }
func (t *Template) Body() string          { return t.body }
func (t *Template) Footer() string        { return t.footer }
func (t *Template) Version() int          { return t.version }
func (t *Template) CreatedAt() time.Time  { return t.createdAt }
func (t *Template) UpdatedAt() time.Time  { return t.updatedAt }
func (t *Template) DeletedAt() *time.Time { return t.deletedAt }

// IsDeleted reports whether the template was soft-deleted.
func (t *Template) IsDeleted() bool {
	return t.deletedAt != nil
}

// IsNew reports whether the template has never been saved.
func (t *Template) IsNew() bool {
	return t.version == 0
}

// SetBody replaces the body and bumps updatedAt.
func (t *Template) SetBody(body string) {
	t.body = body
	t.touch()
}

func (t *Template) SetFooter(footer string) {
	t.footer = footer
	t.touch()
}

func (t *Template) SetCategory(c Category) {
	t.category = c
	t.touch()
}

func (t *Template) SetLanguage(language string) {
	t.language = language
	t.touch()
}

// SetVersion is called by the repository after a revision is stored.
func (t *Template) SetVersion(v int) {
	t.version = v
}

// MarkDeleted stamps the soft-delete time.
func (t *Template) MarkDeleted(at time.Time) {
	t.deletedAt = &at
	t.updatedAt = at
}

// Snapshot exports the template state for persistence.
func (t *Template) Snapshot() TemplateSnapshot {
	return TemplateSnapshot{
		ID:        t.id,
		Name:      t.name,
		Category:  t.category,
		Language:  t.language,
		Body:      t.body,
		Footer:    t.footer,
		Version:   t.version,
		CreatedAt: t.createdAt,
		UpdatedAt: t.updatedAt,
		DeletedAt: t.deletedAt,
	}
}

func (t *Template) touch() {
	t.updatedAt = time.Now()
}

// Revision is an immutable copy of a template body at one version.
type Revision struct {
	TemplateID string
	Version    int
	Body       string
	Footer     string
	CreatedAt  time.Time
}
