package tracing

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Span attribute keys.
const (
	AttrTemplateID       = "template.id"
	AttrTemplateName     = "template.name"
	AttrTemplateCategory = "template.category"
	AttrTemplateVersion  = "template.version"
	AttrBodyRunes        = "template.body.runes"
	AttrVariableCount    = "template.variables"
	AttrResultCount      = "result.count"
	AttrErrorType        = "error.type"
)

// Span names.
const (
	SpanTemplateSave      = "template.save"
	SpanTemplateGet       = "template.get"
	SpanTemplateList      = "template.list"
	SpanTemplateDelete    = "template.delete"
	SpanTemplateRevisions = "template.revisions"
)

// Event names.
const (
	EventValidated       = "template.validated"
	EventRevisionCreated = "template.revision.created"
)

// Start opens a span with attributes.
func Start(ctx context.Context, tracer trace.Tracer, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// End records err on span, if any, and ends it.
func End(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
