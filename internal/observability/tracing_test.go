package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitTracing_Disabled(t *testing.T) {
	shutdown, err := InitTracing(TracingConfig{ServiceName: "stylmou-test"})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestInitTracing_NoneExporterProducesValidSpans(t *testing.T) {
	shutdown, err := InitTracing(TracingConfig{
		ServiceName:  "stylmou-test",
		Enabled:      true,
		Exporter:     "none",
		SamplerRatio: 1,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = shutdown(context.Background()) })

	ctx, span := StartSpan(context.Background(), "ledger", "issue")
	assert.True(t, span.SpanContext().IsValid())
	assert.NotNil(t, ctx)
	EndSpan(span, errors.New("boom"))
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, "success", Outcome(nil))
	assert.Equal(t, "error", Outcome(errors.New("x")))
}
