package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func observedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	return zap.New(core), logs
}

func TestWithContext_FromContext(t *testing.T) {
	log, _ := observedLogger()
	ctx := WithContext(context.Background(), log)

	assert.Same(t, log, FromContext(ctx))
}

func TestFromContext_MissingReturnsNop(t *testing.T) {
	log := FromContext(context.Background())
	require.NotNil(t, log)
	// no-op logger must not panic
	log.Info("ignored")
}

func TestWithRequestID(t *testing.T) {
	log, logs := observedLogger()

	ctx, enriched := WithRequestID(context.Background(), log, "req-123")
	enriched.Info("handling")

	assert.Equal(t, "req-123", GetRequestID(ctx))
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "req-123", logs.All()[0].ContextMap()["request_id"])
}

func TestWithUserID(t *testing.T) {
	log, logs := observedLogger()

	ctx, enriched := WithUserID(context.Background(), log, "user-9")
	enriched.Warn("denied")

	assert.Equal(t, "user-9", GetUserID(ctx))
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "user-9", logs.All()[0].ContextMap()["user_id"])
}

func TestContextLogger_EnrichesFromContext(t *testing.T) {
	log, logs := observedLogger()

	ctx := WithContext(context.Background(), log)
	ctx = context.WithValue(ctx, RequestIDKey, "req-42")
	ctx = context.WithValue(ctx, UserIDKey, "user-7")

	L(ctx).Info("processing order", zap.String("orderNumber", "ORD-1"))

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "req-42", fields["request_id"])
	assert.Equal(t, "user-7", fields["user_id"])
	assert.Equal(t, "ORD-1", fields["orderNumber"])
}

func TestContextLogger_With(t *testing.T) {
	log, logs := observedLogger()

	WithLogger(context.Background(), log).
		With(zap.String("component", "inventory")).
		Info("stock reserved")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "inventory", logs.All()[0].ContextMap()["component"])
}

func TestContextLogger_NilLoggerDoesNotPanic(t *testing.T) {
	cl := &ContextLogger{ctx: context.Background()}
	assert.NotPanics(t, func() {
		cl.Info("ignored")
	})
}
