package logger_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"taskflow/pkg/logger"
)

func TestNewLogger(t *testing.T) {
	levels := []string{"debug", "info", "warn", "warning", "error", "invalid", ""}

	for _, env := range []logger.Environment{logger.Development, logger.Production} {
		for _, level := range levels {
			t.Run(string(env)+"/level="+level, func(t *testing.T) {
				log, err := logger.NewLogger(env, level)
				require.NoError(t, err)
				require.NotNil(t, log)
			})
		}
	}

	t.Run("logging methods do not panic", func(t *testing.T) {
		log, err := logger.NewLogger(logger.Development, "debug")
		require.NoError(t, err)

		ctx := logger.NewRequestIDContext(context.Background(), "req-1")

		assert.NotPanics(t, func() {
			log.Debug(ctx, "debug message", zap.String("k", "v"))
			log.Info(ctx, "info message")
			log.Warn(ctx, "warn message")
			log.Error(ctx, "error message")
		})
	})

	t.Run("with returns a new instance", func(t *testing.T) {
		log, err := logger.NewLogger(logger.Development, "info")
		require.NoError(t, err)

		assert.NotSame(t, log, log.With(zap.String("component", "test")))
	})
}

func TestFromContext(t *testing.T) {
	t.Run("logger present", func(t *testing.T) {
		testLogger, err := logger.NewLogger(logger.Development, "debug")
		require.NoError(t, err)

		ctx := logger.NewContext(context.Background(), testLogger)

		got, err := logger.FromContext(ctx)
		require.NoError(t, err)
		assert.Same(t, testLogger, got)
	})

	t.Run("logger missing", func(t *testing.T) {
		got, err := logger.FromContext(context.Background())
		require.ErrorIs(t, err, logger.ErrLoggerNotFound)
		assert.Nil(t, got)
	})

	t.Run("foreign value under other key", func(t *testing.T) {
		type otherKey struct{}
		ctx := context.WithValue(context.Background(), otherKey{}, "not a logger")

		_, err := logger.FromContext(ctx)
		require.ErrorIs(t, err, logger.ErrLoggerNotFound)
	})
}

func TestLog(t *testing.T) {
	t.Cleanup(func() { logger.SetGlobalLogger(nil) })

	t.Run("context logger wins over global", func(t *testing.T) {
		ctxLogger, err := logger.NewLogger(logger.Development, "debug")
		require.NoError(t, err)
		global, err := logger.NewLogger(logger.Production, "error")
		require.NoError(t, err)

		logger.SetGlobalLogger(global)
		ctx := logger.NewContext(context.Background(), ctxLogger)

		assert.Same(t, ctxLogger, logger.Log(ctx))
	})

	t.Run("global used without context logger", func(t *testing.T) {
		global, err := logger.NewLogger(logger.Development, "info")
		require.NoError(t, err)

		logger.SetGlobalLogger(global)

		assert.Same(t, global, logger.Log(context.Background()))
	})

	t.Run("fallback when nothing configured", func(t *testing.T) {
		logger.SetGlobalLogger(nil)

		log := logger.Log(context.Background())
		require.NotNil(t, log)
		assert.NotPanics(t, func() { log.Warn(context.Background(), "fallback works") })
	})
}

func TestInitGlobalLogger(t *testing.T) {
	t.Cleanup(func() { logger.SetGlobalLogger(nil) })
	logger.SetGlobalLogger(nil)

	require.NoError(t, logger.InitGlobalLogger(logger.Production))
	first := logger.Log(context.Background())

	require.NoError(t, logger.InitGlobalLoggerWithLevel(logger.Development, "debug"))
	second := logger.Log(context.Background())

	assert.Same(t, first, second, "repeated initialization must keep the first logger")
}

func TestRequestID(t *testing.T) {
	t.Run("explicit id is stored", func(t *testing.T) {
		ctx := logger.NewRequestIDContext(context.Background(), "abc")

		id, ok := logger.GetRequestID(ctx)
		assert.True(t, ok)
		assert.Equal(t, "abc", id)
	})

	t.Run("empty id is generated", func(t *testing.T) {
		ctx := logger.NewRequestIDContext(context.Background(), "")

		id, ok := logger.GetRequestID(ctx)
		require.True(t, ok)
		parsed, err := uuid.Parse(id)
		require.NoError(t, err)
		assert.Equal(t, uuid.Version(4), parsed.Version())
	})

	t.Run("missing id", func(t *testing.T) {
		id, ok := logger.GetRequestID(context.Background())
		assert.False(t, ok)
		assert.Empty(t, id)
	})

	t.Run("generated ids are unique", func(t *testing.T) {
		assert.NotEqual(t, logger.GenerateRequestID(), logger.GenerateRequestID())
	})

	t.Run("WithRequestID", func(t *testing.T) {
		log, err := logger.NewLogger(logger.Development, "debug")
		require.NoError(t, err)

		withID := log.WithRequestID(logger.NewRequestIDContext(context.Background(), "r-1"))
		assert.NotSame(t, log, withID)

		assert.Same(t, log, log.WithRequestID(context.Background()))
	})
}
