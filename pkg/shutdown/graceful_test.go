package shutdown_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"taskflow/pkg/shutdown"
)

var errHook = errors.New("hook failed")

func TestWait_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls atomic.Int32
	shutdown.Wait(ctx, time.Second,
		func(context.Context) error { calls.Add(1); return nil },
		func(context.Context) error { calls.Add(1); return errHook },
	)

	assert.Equal(t, int32(2), calls.Load(), "all hooks must run even if one fails")
}

func TestRun_HookContextIsAlive(t *testing.T) {
	var sawErr atomic.Value

	shutdown.Run(context.Background(), time.Second, func(ctx context.Context) error {
		sawErr.Store(ctx.Err() == nil)
		return nil
	})

	assert.Equal(t, true, sawErr.Load())
}

func TestRun_Timeout(t *testing.T) {
	start := time.Now()

	shutdown.Run(context.Background(), 50*time.Millisecond, func(ctx context.Context) error {
		<-ctx.Done()
		time.Sleep(time.Second)
		return nil
	})

	assert.Less(t, time.Since(start), 500*time.Millisecond, "Run must return after timeout")
}
