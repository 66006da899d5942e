package otel_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"lodge/infras/otel"
	"lodge/shared/failure"
)

func recordSpan(t *testing.T, fn func(scope otel.Scope)) trace.ReadOnlySpan {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	provider := trace.NewTracerProvider(trace.WithSpanProcessor(recorder))

	_, span := provider.Tracer("test").Start(context.Background(), "op")
	scope := otel.NewScope(span)
	fn(scope)
	scope.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)

	return ended[0]
}

func TestScope_TraceError(t *testing.T) {
	t.Run("server failure marks the span", func(t *testing.T) {
		span := recordSpan(t, func(scope otel.Scope) {
			scope.TraceError(errors.New("connection reset"))
		})

		assert.Equal(t, codes.Error, span.Status().Code)
		require.Len(t, span.Events(), 1)
		assert.Contains(t, span.Events()[0].Attributes, attribute.Int("error.code", 500))
	})

	t.Run("client failure is recorded only", func(t *testing.T) {
		span := recordSpan(t, func(scope otel.Scope) {
			scope.TraceError(failure.Conflict("venue is not available"))
		})

		assert.Equal(t, codes.Unset, span.Status().Code)
		require.Len(t, span.Events(), 1)
		assert.Contains(t, span.Events()[0].Attributes, attribute.Int("error.code", 409))
	})

	t.Run("nil is ignored", func(t *testing.T) {
		span := recordSpan(t, func(scope otel.Scope) {
			scope.TraceIfError(nil)
		})

		assert.Empty(t, span.Events())
	})
}

func TestScope_SetAttributes(t *testing.T) {
	span := recordSpan(t, func(scope otel.Scope) {
		scope.SetAttributes(map[string]any{
			"booking.nights": 3,
			"booking.paid":   true,
			"venue.id":       "venue-1",
		})
		scope.SetAttribute("booking.window", 24*time.Hour)
	})

	attrs := span.Attributes()

	assert.Contains(t, attrs, attribute.Int("booking.nights", 3))
	assert.Contains(t, attrs, attribute.Bool("booking.paid", true))
	assert.Contains(t, attrs, attribute.String("venue.id", "venue-1"))
	assert.Contains(t, attrs, attribute.String("booking.window", "24h0m0s"))
}

func TestAttribute(t *testing.T) {
	assert.Equal(t, attribute.Int64("n", 7), otel.Attribute("n", int64(7)))
	assert.Equal(t, attribute.Float64("f", 1.5), otel.Attribute("f", 1.5))
	assert.Equal(t, attribute.StringSlice("s", []string{"a"}), otel.Attribute("s", []string{"a"}))
	assert.Equal(t, attribute.String("x", "[1 2]"), otel.Attribute("x", []int{1, 2}))
}
