package presentation

import (
	"time"

	"github.com/zjrosen/wamark/internal/markup"
	"github.com/zjrosen/wamark/internal/template"
	"github.com/zjrosen/wamark/internal/template/domain"
)

// SegmentDTO is one parsed segment for CLI output.
type SegmentDTO struct {
	Index int    `json:"index" yaml:"index"`
	Style string `json:"style" yaml:"style"`
	Text  string `json:"text" yaml:"text"`
}

// WrapDTO is the result of a selection wrap.
type WrapDTO struct {
	Text      string           `json:"text" yaml:"text"`
	Selection markup.Selection `json:"selection" yaml:"selection"`
}

// TemplateDTO represents a stored template for presentation
type TemplateDTO struct {
	ID        string    `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	Category  string    `json:"category" yaml:"category"`
	Language  string    `json:"language" yaml:"language"`
	Version   int       `json:"version" yaml:"version"`
	Body      string    `json:"body" yaml:"body"`
	Footer    string    `json:"footer,omitempty" yaml:"footer,omitempty"`
	Variables []int     `json:"variables" yaml:"variables"` // always present, may be empty
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}

// MatchDTO is a template list row, optionally ranked by a filter query.
type MatchDTO struct {
	TemplateDTO `json:",inline" yaml:",inline"`
	Score       int `json:"score,omitempty" yaml:"score,omitempty"`
}

// RevisionDTO is one entry of a template's history.
type RevisionDTO struct {
	Version   int       `json:"version" yaml:"version"`
	Body      string    `json:"body" yaml:"body"`
	Footer    string    `json:"footer,omitempty" yaml:"footer,omitempty"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// FromSegments numbers segments in document order.
func FromSegments(segments []markup.Segment) []SegmentDTO {
	dtos := make([]SegmentDTO, len(segments))
	for i, s := range segments {
		dtos[i] = SegmentDTO{Index: i, Style: s.Style.String(), Text: s.Text}
	}
	return dtos
}

// FromTemplate converts a domain template to a DTO
func FromTemplate(t *domain.Template) TemplateDTO {
	vars := domain.Variables(t.Body())
	if vars == nil {
		vars = []int{}
	}
	return TemplateDTO{
		ID:        t.ID(),
		Name:      t.Name(),
		Category:  t.Category().String(),
		Language:  t.Language(),
		Version:   t.Version(),
		Body:      t.Body(),
		Footer:    t.Footer(),
		Variables: vars,
		CreatedAt: t.CreatedAt(),
		UpdatedAt: t.UpdatedAt(),
	}
}

// FromMatches converts ranked list results.
func FromMatches(matches []template.Match) []MatchDTO {
	dtos := make([]MatchDTO, len(matches))
	for i, m := range matches {
		dtos[i] = MatchDTO{TemplateDTO: FromTemplate(m.Template), Score: m.Score}
	}
	return dtos
}

// FromRevisions converts history entries, oldest first.
func FromRevisions(revs []domain.Revision) []RevisionDTO {
	dtos := make([]RevisionDTO, len(revs))
	for i, r := range revs {
		dtos[i] = RevisionDTO{Version: r.Version, Body: r.Body, Footer: r.Footer, CreatedAt: r.CreatedAt}
	}
	return dtos
}
