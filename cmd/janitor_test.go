package cmd

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type countingCleaner struct {
	calls atomic.Int32
	fail  bool
}

func (c *countingCleaner) CleanExpired(context.Context) (int64, error) {
	c.calls.Add(1)
	if c.fail {
		return 0, errors.New("database unavailable")
	}
	return 3, nil
}

func TestTokenJanitorRunsUntilCancelled(t *testing.T) {
	for _, fail := range []bool{false, true} {
		cleaner := &countingCleaner{fail: fail}
		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan struct{})
		go func() {
			TokenJanitor(ctx, cleaner, 5*time.Millisecond, zap.NewNop())
			close(done)
		}()

		assert.Eventually(t, func() bool { return cleaner.calls.Load() >= 2 }, time.Second, time.Millisecond)
		cancel()

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("janitor did not stop after cancel")
		}
	}
}
