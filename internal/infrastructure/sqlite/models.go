package sqlite

import (
	"time"

	"github.com/zjrosen/wamark/internal/template/domain"
)

// TemplateModel is one row of the templates table. Times are Unix milliseconds.
type TemplateModel struct {
	ID        string
	Name      string
	Category  string
	Language  string
	Body      string
	Footer    *string // nullable
	Version   int
	CreatedAt int64
	UpdatedAt int64
	DeletedAt *int64 // nullable
}

func toTemplateModel(t *domain.Template) *TemplateModel {
	s := t.Snapshot()
	m := &TemplateModel{
		ID:        s.ID,
		Name:      s.Name,
		Category:  string(s.Category),
		Language:  s.Language,
		Body:      s.Body,
		Version:   s.Version,
		CreatedAt: s.CreatedAt.UnixMilli(),
		UpdatedAt: s.UpdatedAt.UnixMilli(),
	}
	if s.Footer != "" {
		footer := s.Footer
		m.Footer = &footer
	}
	if s.DeletedAt != nil {
		deletedAt := s.DeletedAt.UnixMilli()
		m.DeletedAt = &deletedAt
	}
	return m
}

func (m *TemplateModel) toDomain() *domain.Template {
	s := domain.TemplateSnapshot{
		ID:        m.ID,
		Name:      m.Name,
		Category:  domain.Category(m.Category),
		Language:  m.Language,
		Body:      m.Body,
		Version:   m.Version,
		CreatedAt: time.UnixMilli(m.CreatedAt),
		UpdatedAt: time.UnixMilli(m.UpdatedAt),
	}
	if m.Footer != nil {
		s.Footer = *m.Footer
	}
	if m.DeletedAt != nil {
		deletedAt := time.UnixMilli(*m.DeletedAt)
		s.DeletedAt = &deletedAt
	}
	return domain.ReconstituteTemplate(s)
}

// RevisionModel is one row of the template_revisions table.
type RevisionModel struct {
	TemplateID string
	Version    int
	Body       string
	Footer     *string
	CreatedAt  int64
}

func (m *RevisionModel) toDomain() domain.Revision {
	r := domain.Revision{
		TemplateID: m.TemplateID,
		Version:    m.Version,
		Body:       m.Body,
		CreatedAt:  time.UnixMilli(m.CreatedAt),
	}
	if m.Footer != nil {
		r.Footer = *m.Footer
	}
	return r
}
