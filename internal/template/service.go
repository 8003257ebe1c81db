// Package template manages WhatsApp message templates: validated CRUD over a
// Repository, revision history and diffs, fuzzy lookup and rendered previews.
package template

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/wamark/internal/cachemanager"
	"github.com/zjrosen/wamark/internal/log"
	"github.com/zjrosen/wamark/internal/pubsub"
	"github.com/zjrosen/wamark/internal/render"
	"github.com/zjrosen/wamark/internal/template/domain"
	"github.com/zjrosen/wamark/internal/tracing"
)

// ErrRevisionNotFound is returned by Diff when a requested version does not exist.
var ErrRevisionNotFound = errors.New("revision not found")

// Event is the payload published after a template changes.
type Event struct {
	ID      string
	Name    string
	Version int
}

// CreateRequest describes a new template.
type CreateRequest struct {
	Name     string
	Category domain.Category
	Language string
	Body     string
	Footer   string
}

// UpdateRequest carries optional field changes. Nil fields are left alone.
// Names are immutable.
type UpdateRequest struct {
	Category *domain.Category
	Language *string
	Body     *string
	Footer   *string
}

// lookupTTL bounds how long Get serves a template saved by another process.
const lookupTTL = time.Minute

// Service is the application entry point for template operations.
type Service struct {
	repo     domain.Repository
	renderer *render.Renderer
	tracer   trace.Tracer
	broker   *pubsub.Broker[Event]
	lookups  *cachemanager.ReadThroughCache[string, domain.TemplateSnapshot, string]
}

// NewService wires a Service. A nil tracer disables tracing.
func NewService(repo domain.Repository, renderer *render.Renderer, tracer trace.Tracer) *Service {
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("wamark")
	}
	s := &Service{
		repo:     repo,
		renderer: renderer,
		tracer:   tracer,
		broker:   pubsub.NewBroker[Event](),
	}
	cache := cachemanager.NewInMemoryCacheManager[string, domain.TemplateSnapshot](
		"templates", lookupTTL, cachemanager.DefaultCleanupInterval)
	s.lookups = cachemanager.NewReadThroughCache[string, domain.TemplateSnapshot, string](cache, s.load, false)
	return s
}

// load reads the live template called name for the lookup cache. Snapshots
// are cached so callers never share a mutable Template.
func (s *Service) load(ctx context.Context, name string) (domain.TemplateSnapshot, error) {
	t, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return domain.TemplateSnapshot{}, err
	}
	log.Debug(log.CatCache, "template lookup miss", "name", name)
	return t.Snapshot(), nil
}

func (s *Service) forget(ctx context.Context, name string) {
	if err := s.lookups.Invalidate(ctx, name); err != nil {
		log.Warn(log.CatCache, "template lookup invalidate failed", "name", name, "error", err)
	}
}

// Events returns the broker that receives created, updated and deleted events.
func (s *Service) Events() *pubsub.Broker[Event] {
	return s.broker
}

// Close shuts down the event broker.
func (s *Service) Close() {
	s.broker.Close()
}

// Create validates and stores a new template.
func (s *Service) Create(ctx context.Context, req CreateRequest) (_ *domain.Template, err error) {
	ctx, span := tracing.Start(ctx, s.tracer, tracing.SpanTemplateSave,
		attribute.String(tracing.AttrTemplateName, req.Name),
		attribute.String(tracing.AttrTemplateCategory, string(req.Category)),
	)
	defer func() { tracing.End(span, err) }()

	t := domain.NewTemplate(req.Name, req.Category, req.Language, req.Body)
	if req.Footer != "" {
		t.SetFooter(req.Footer)
	}

	if err := s.store(ctx, span, t); err != nil {
		return nil, err
	}
	s.forget(ctx, t.Name())
	s.broker.Publish(pubsub.CreatedEvent, eventFor(t))
	log.Info(log.CatTemplate, "template created", "name", t.Name(), "id", t.ID())
	return t, nil
}

// Update applies req to the live template called name.
func (s *Service) Update(ctx context.Context, name string, req UpdateRequest) (_ *domain.Template, err error) {
	ctx, span := tracing.Start(ctx, s.tracer, tracing.SpanTemplateSave,
		attribute.String(tracing.AttrTemplateName, name),
	)
	defer func() { tracing.End(span, err) }()

	t, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}

	if req.Category != nil {
		t.SetCategory(*req.Category)
	}
	if req.Language != nil {
		t.SetLanguage(*req.Language)
	}
	if req.Body != nil {
		t.SetBody(*req.Body)
	}
	if req.Footer != nil {
		t.SetFooter(*req.Footer)
	}

	before := t.Version()
	if err := s.store(ctx, span, t); err != nil {
		return nil, err
	}
	s.forget(ctx, name)
	s.broker.Publish(pubsub.UpdatedEvent, eventFor(t))
	log.Info(log.CatTemplate, "template updated", "name", t.Name(), "from", before, "to", t.Version())
	return t, nil
}

// store validates t and saves it, annotating span.
func (s *Service) store(ctx context.Context, span trace.Span, t *domain.Template) error {
	if err := domain.Validate(t); err != nil {
		log.Debug(log.CatTemplate, "validation failed", "name", t.Name(), "error", err)
		return err
	}
	span.AddEvent(tracing.EventValidated, trace.WithAttributes(
		attribute.Int(tracing.AttrBodyRunes, len([]rune(t.Body()))),
		attribute.Int(tracing.AttrVariableCount, len(domain.Variables(t.Body()))),
	))

	before := t.Version()
	if err := s.repo.Save(ctx, t); err != nil {
		return fmt.Errorf("save template %s: %w", t.Name(), err)
	}
	if t.Version() != before {
		span.AddEvent(tracing.EventRevisionCreated, trace.WithAttributes(
			attribute.Int(tracing.AttrTemplateVersion, t.Version()),
		))
	}
	span.SetAttributes(
		attribute.String(tracing.AttrTemplateID, t.ID()),
		attribute.Int(tracing.AttrTemplateVersion, t.Version()),
	)
	return nil
}

// Get returns the live template called name. Lookups are cached until the
// template changes through this Service or lookupTTL passes.
func (s *Service) Get(ctx context.Context, name string) (_ *domain.Template, err error) {
	ctx, span := tracing.Start(ctx, s.tracer, tracing.SpanTemplateGet,
		attribute.String(tracing.AttrTemplateName, name),
	)
	defer func() { tracing.End(span, err) }()

	snap, err := s.lookups.Get(ctx, name, name, lookupTTL)
	if err != nil {
		return nil, err
	}
	return domain.ReconstituteTemplate(snap), nil
}

// List returns templates matching filter, fuzzily ranked by query when set.
func (s *Service) List(ctx context.Context, filter domain.ListFilter, query string) (_ []Match, err error) {
	ctx, span := tracing.Start(ctx, s.tracer, tracing.SpanTemplateList)
	defer func() { tracing.End(span, err) }()

	// Limit applies after ranking so the best matches survive.
	limit := filter.Limit
	if query != "" {
		filter.Limit = 0
	}

	templates, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	matches := FuzzyFilter(templates, query)
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}

	span.SetAttributes(attribute.Int(tracing.AttrResultCount, len(matches)))
	return matches, nil
}

// Delete soft-deletes the live template called name.
func (s *Service) Delete(ctx context.Context, name string) (err error) {
	ctx, span := tracing.Start(ctx, s.tracer, tracing.SpanTemplateDelete,
		attribute.String(tracing.AttrTemplateName, name),
	)
	defer func() { tracing.End(span, err) }()

	t, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, t.ID()); err != nil {
		return err
	}
	s.forget(ctx, name)

	s.broker.Publish(pubsub.DeletedEvent, eventFor(t))
	log.Info(log.CatTemplate, "template deleted", "name", name)
	return nil
}

// History returns every revision of the live template called name, oldest first.
func (s *Service) History(ctx context.Context, name string) (_ []domain.Revision, err error) {
	ctx, span := tracing.Start(ctx, s.tracer, tracing.SpanTemplateRevisions,
		attribute.String(tracing.AttrTemplateName, name),
	)
	defer func() { tracing.End(span, err) }()

	t, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	revisions, err := s.repo.Revisions(ctx, t.ID())
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int(tracing.AttrResultCount, len(revisions)))
	return revisions, nil
}

// Diff compares two versions of a template. A zero to means the latest
// version and a zero from means the version before to.
func (s *Service) Diff(ctx context.Context, name string, from, to int) ([]Change, error) {
	revisions, err := s.History(ctx, name)
	if err != nil {
		return nil, err
	}

	if to == 0 {
		to = revisions[len(revisions)-1].Version
	}
	if from == 0 {
		from = max(to-1, 1)
	}

	a, ok := findRevision(revisions, from)
	if !ok {
		return nil, fmt.Errorf("%w: %s version %d", ErrRevisionNotFound, name, from)
	}
	b, ok := findRevision(revisions, to)
	if !ok {
		return nil, fmt.Errorf("%w: %s version %d", ErrRevisionNotFound, name, to)
	}
	return DiffRevisions(a, b), nil
}

// Preview fills the template's variables with values and renders the result,
// footer included, in format. Variables without a value stay as {{n}}.
func (s *Service) Preview(ctx context.Context, name string, values map[int]string, format render.Format) (string, error) {
	t, err := s.Get(ctx, name)
	if err != nil {
		return "", err
	}
	return s.PreviewTemplate(ctx, t, values, format)
}

// PreviewTemplate renders an unsaved or loaded template.
func (s *Service) PreviewTemplate(ctx context.Context, t *domain.Template, values map[int]string, format render.Format) (string, error) {
	text := domain.Fill(t.Body(), values)
	if t.Footer() != "" {
		text += "\n\n" + t.Footer()
	}
	return s.renderer.Render(ctx, text, format)
}

func findRevision(revisions []domain.Revision, version int) (domain.Revision, bool) {
	for _, r := range revisions {
		if r.Version == version {
			return r, true
		}
	}
	return domain.Revision{}, false
}

func eventFor(t *domain.Template) Event {
	return Event{ID: t.ID(), Name: t.Name(), Version: t.Version()}
}
