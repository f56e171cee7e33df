package otel_test

import (
	"context"
	"errors"
	"testing"

	"bayleaf/infras/otel"
	"bayleaf/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func record(t *testing.T, fn func(scope otel.Scope)) sdktrace.ReadOnlySpan {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	_, span := provider.Tracer("test").Start(context.Background(), "scope")
	scope := otel.NewScope(span)
	fn(scope)
	scope.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)

	return spans[0]
}

func TestScope_TraceError(t *testing.T) {
	t.Run("server failure marks the span", func(t *testing.T) {
		span := record(t, func(scope otel.Scope) {
			scope.TraceIfError(errors.New("connection refused"))
		})

		assert.Equal(t, codes.Error, span.Status().Code)
		assert.Equal(t, "connection refused", span.Status().Description)
	})

	t.Run("client failure is an event", func(t *testing.T) {
		span := record(t, func(scope otel.Scope) {
			scope.TraceIfError(failure.BadRequestFromString("guests must be less than or equal to 8"))
		})

		assert.Equal(t, codes.Unset, span.Status().Code)
		require.Len(t, span.Events(), 1)
		assert.Equal(t, "request.rejected", span.Events()[0].Name)
	})

	t.Run("nil error", func(t *testing.T) {
		span := record(t, func(scope otel.Scope) { scope.TraceIfError(nil) })

		assert.Equal(t, codes.Unset, span.Status().Code)
		assert.Empty(t, span.Events())
	})
}

func TestScope_SetAttributes(t *testing.T) {
	span := record(t, func(scope otel.Scope) {
		scope.SetAttributes(map[string]any{
			"reservation.id":        "r-1",
			"reservation.guests":    4,
			"reservation.duplicate": false,
			"menu_item.price":       12.5,
		})
	})

	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range span.Attributes() {
		attrs[kv.Key] = kv.Value
	}

	assert.Equal(t, "r-1", attrs["reservation.id"].AsString())
	assert.Equal(t, int64(4), attrs["reservation.guests"].AsInt64())
	assert.False(t, attrs["reservation.duplicate"].AsBool())
	assert.InDelta(t, 12.5, attrs["menu_item.price"].AsFloat64(), 0.001)
}
