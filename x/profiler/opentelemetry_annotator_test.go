package profiler_test

import (
	"context"
	"testing"

	"github.com/carbidelang/carbide/analysis"
	"github.com/carbidelang/carbide/asttest"
	"github.com/carbidelang/carbide/x/profiler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newTestExporter(t *testing.T) *tracetest.InMemoryExporter {
	exporter := tracetest.NewInMemoryExporter()

	tp := trace.NewTracerProvider(
		trace.WithSyncer(exporter),
		trace.WithSampler(trace.AlwaysSample()),
	)
	t.Cleanup(func() {
		err := tp.Shutdown(context.Background())
		assert.NoError(t, err, "TracerProvider shutdown")
	})
	otel.SetTracerProvider(tp)
	return exporter
}

func TestNewOpenTelemetryAnnotator(t *testing.T) {
	exporter := newTestExporter(t)

	b := asttest.NewBuilder("test.crb")
	unit := b.SourceUnit(b.Contract("Token",
		b.Function("transfer", nil, nil, b.Block()),
		b.Modifier("onlyOwner", nil, b.Block()),
	))

	ann := profiler.NewOpenTelemetryAnnotator(context.Background())
	require.NoError(t, ann.Enable())
	result := analysis.Analyze(unit, &analysis.Config{Profiler: ann})
	assert.True(t, result.Succeeded)
	assert.NoError(t, ann.Complete())

	spans := exporter.GetSpans()
	require.Len(t, spans, 3)
	// Spans export in end order: members close before their contract.
	assert.Equal(t, "transfer", spans[0].Name)
	assert.Equal(t, "onlyOwner", spans[1].Name)
	assert.Equal(t, "Token", spans[2].Name)

	assert.Contains(t, spans[0].Attributes, semconv.CodeFunction("transfer"))
	assert.Contains(t, spans[0].Attributes, semconv.CodeNamespace("Token"))
	assert.Contains(t, spans[0].Attributes, semconv.CodeFilepath("test.crb"))
	assert.Contains(t, spans[2].Attributes, semconv.CodeFunction("Token"))
}

func TestNewOpenTelemetryAnnotatorSkip(t *testing.T) {
	exporter := newTestExporter(t)

	b := asttest.NewBuilder("test.crb")
	settle := b.Function("settle", nil, nil, b.Block())
	settle.Documentation = b.Doc("@trace { settle up }")
	audit := b.Function("audit", nil, nil, b.Block())
	audit.Documentation = b.Doc("@trace")
	unit := b.SourceUnit(b.Contract("Ledger",
		settle,
		audit,
		b.Function("peek", nil, nil, b.Block()),
	))

	ann := profiler.NewOpenTelemetryAnnotator(context.Background(),
		profiler.WithDocFilter(),
		profiler.WithDocLabeler())
	require.NoError(t, ann.Enable())
	result := analysis.Analyze(unit, &analysis.Config{Profiler: ann})
	assert.True(t, result.Succeeded)
	assert.NoError(t, ann.Complete())

	spans := exporter.GetSpans()
	require.Len(t, spans, 2, "expected selective spans")
	assert.Equal(t, "settle_up", spans[0].Name, "expected custom label")
	assert.Equal(t, "audit", spans[1].Name, "expected declared name")
}

func TestOpenTelemetryAnnotatorRequiresContext(t *testing.T) {
	ann := profiler.NewOpenTelemetryAnnotator(nil)
	assert.Error(t, ann.Enable())
}
