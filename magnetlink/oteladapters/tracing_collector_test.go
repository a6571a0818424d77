package oteladapters_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/AntonStoeckl/magnet-links-go/magnetlink/oteladapters"
)

func Test_NewTracingCollector_Construction(t *testing.T) {
	tracer := noop.NewTracerProvider().Tracer("test")

	collector := oteladapters.NewTracingCollector(tracer)
	assert.NotNil(t, collector)
}

func Test_TracingCollector_StartAndFinishSpan(t *testing.T) {
	tracer := noop.NewTracerProvider().Tracer("test")
	collector := oteladapters.NewTracingCollector(tracer)

	ctx, span := collector.StartSpan(
		context.Background(),
		"linkstore.save",
		map[string]string{"db.table": "magnet_links"},
	)

	assert.NotNil(t, ctx)
	assert.NotNil(t, span)

	assert.NotPanics(t, func() {
		collector.FinishSpan(span, "ok", map[string]string{"rows_affected": "1"})
	})
}

func Test_TracingCollector_FinishSpan_IgnoresForeignSpanContext(t *testing.T) {
	tracer := noop.NewTracerProvider().Tracer("test")
	collector := oteladapters.NewTracingCollector(tracer)

	assert.NotPanics(t, func() {
		collector.FinishSpan(foreignSpanContext{}, "ok", nil)
	})
}

func Test_OTelSpanContext_StatusMapping(t *testing.T) {
	tracer := noop.NewTracerProvider().Tracer("test")
	collector := oteladapters.NewTracingCollector(tracer)

	statuses := []string{"ok", "success", "completed", "error", "failed", "failure", "cancelled", "canceled", "timeout", "something-else"}

	for _, status := range statuses {
		t.Run(status, func(t *testing.T) {
			_, span := collector.StartSpan(context.Background(), "linkstore.query", nil)

			assert.NotPanics(t, func() {
				span.SetStatus(status)
				span.AddAttribute("db.table", "magnet_links")
				collector.FinishSpan(span, status, nil)
			})
		})
	}
}

type foreignSpanContext struct{}

func (foreignSpanContext) SetStatus(string)         {}
func (foreignSpanContext) AddAttribute(_, _ string) {}
