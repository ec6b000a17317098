package middleware

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestIDFromContext(t *testing.T) {
	t.Run("present", func(t *testing.T) {
		ctx := ContextWithRequestID(context.Background(), "req-123")

		assert.Equal(t, "req-123", RequestIDFromContext(ctx))
	})

	t.Run("absent", func(t *testing.T) {
		assert.Empty(t, RequestIDFromContext(context.Background()))
	})

	t.Run("nil context", func(t *testing.T) {
		assert.Empty(t, RequestIDFromContext(nil)) //nolint:staticcheck // verifying nil safety
	})
}

func TestCorrelationIDFromContext(t *testing.T) {
	t.Run("present", func(t *testing.T) {
		ctx := ContextWithCorrelationID(context.Background(), "corr-456")

		assert.Equal(t, "corr-456", CorrelationIDFromContext(ctx))
	})

	t.Run("absent", func(t *testing.T) {
		assert.Empty(t, CorrelationIDFromContext(context.Background()))
	})

	t.Run("nil context", func(t *testing.T) {
		assert.Empty(t, CorrelationIDFromContext(nil)) //nolint:staticcheck // verifying nil safety
	})
}

func TestContextKeysAreIndependent(t *testing.T) {
	ctx := ContextWithRequestID(context.Background(), "req-123")
	ctx = ContextWithCorrelationID(ctx, "corr-456")

	assert.Equal(t, "req-123", RequestIDFromContext(ctx))
	assert.Equal(t, "corr-456", CorrelationIDFromContext(ctx))
}
