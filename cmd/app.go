package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/zjrosen/wamark/internal/flags"
	"github.com/zjrosen/wamark/internal/infrastructure/sqlite"
	"github.com/zjrosen/wamark/internal/log"
	"github.com/zjrosen/wamark/internal/render"
	"github.com/zjrosen/wamark/internal/template"
	"github.com/zjrosen/wamark/internal/tracing"
)

// app bundles the long-lived dependencies a command needs. Storage and
// tracing are opened only by commands that touch templates.
type app struct {
	flags    *flags.Registry
	renderer *render.Renderer

	tracer  *tracing.Provider
	db      *sqlite.DB
	service *template.Service
}

// newApp builds the renderer from cfg. width overrides the configured
// preview width when positive.
func newApp(width int) *app {
	reg := flags.New(cfg.Flags)

	opts := cfg.RenderOptions()
	if width > 0 {
		opts.Width = width
	}
	var cache render.SegmentCache
	if reg.Enabled(flags.FlagSegmentCache) {
		cache = render.NewSegmentCache()
	}

	return &app{
		flags:    reg,
		renderer: render.New(opts, cache),
	}
}

// openTemplates opens the database and tracing provider and wires the
// template service.
func (a *app) openTemplates(ctx context.Context) (*template.Service, error) {
	if a.service != nil {
		return a.service, nil
	}

	provider, err := tracing.NewProvider(ctx, cfg.Tracing.TracingOptions())
	if err != nil {
		return nil, fmt.Errorf("initializing tracing: %w", err)
	}
	a.tracer = provider

	db, err := sqlite.NewDB(cfg.Storage.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening template store: %w", err)
	}
	a.db = db

	a.service = template.NewService(db.TemplateRepository(), a.renderer, provider.Tracer())
	return a.service, nil
}

// Close releases everything openTemplates acquired.
func (a *app) Close() {
	if a.service != nil {
		a.service.Close()
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			log.ErrorErr(log.CatDB, "closing database", err)
		}
	}
	if a.tracer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.tracer.Shutdown(ctx); err != nil {
			log.ErrorErr(log.CatTrace, "tracer shutdown", err)
		}
	}
}
