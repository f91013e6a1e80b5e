package otel_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"resort/infras/otel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newRecordedScope(t *testing.T) (otel.Scope, *tracetest.SpanRecorder) {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	_, span := provider.Tracer("test").Start(context.Background(), "booking.Create")

	return otel.NewScope(span), recorder
}

func TestScope_SetAttributes(t *testing.T) {
	scope, recorder := newRecordedScope(t)

	checkIn := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	scope.SetAttributes(map[string]any{
		"booking.id":        "b-1",
		"booking.nights":    3,
		"booking.total":     990.0,
		"booking.meal":      true,
		"booking.check_in":  checkIn,
		"booking.room_ids":  []string{"r-1", "r-2"},
		"booking.guest_ids": []int{1, 2},
		"booking.note":      nil,
	})
	scope.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)

	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range spans[0].Attributes() {
		attrs[kv.Key] = kv.Value
	}

	assert.Equal(t, "b-1", attrs["booking.id"].AsString())
	assert.Equal(t, int64(3), attrs["booking.nights"].AsInt64())
	assert.InDelta(t, 990.0, attrs["booking.total"].AsFloat64(), 0.0001)
	assert.True(t, attrs["booking.meal"].AsBool())
	assert.Equal(t, "2026-06-01T00:00:00Z", attrs["booking.check_in"].AsString())
	assert.Equal(t, []string{"r-1", "r-2"}, attrs["booking.room_ids"].AsStringSlice())
	assert.Equal(t, []int64{1, 2}, attrs["booking.guest_ids"].AsInt64Slice())
	assert.Empty(t, attrs["booking.note"].AsString())
}

func TestScope_TraceIfError(t *testing.T) {
	t.Run("nil error leaves status unset", func(t *testing.T) {
		scope, recorder := newRecordedScope(t)

		scope.TraceIfError(nil)
		scope.End()

		assert.Equal(t, codes.Unset, recorder.Ended()[0].Status().Code)
	})

	t.Run("error marks the span", func(t *testing.T) {
		scope, recorder := newRecordedScope(t)

		scope.TraceIfError(errors.New("room no longer available"))
		scope.End()

		status := recorder.Ended()[0].Status()
		assert.Equal(t, codes.Error, status.Code)
		assert.Equal(t, "room no longer available", status.Description)
		assert.Len(t, recorder.Ended()[0].Events(), 1)
	})
}
