package limiter

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsNonPositiveLimit(t *testing.T) {
	_, err := New(0)
	require.ErrorIs(t, err, ErrInvalidLimit)

	_, err = New(-3)
	require.ErrorIs(t, err, ErrInvalidLimit)
}

func TestDoNeverExceedsBound(t *testing.T) {
	const (
		bound   = 4
		callers = 32
	)

	lim, err := New(bound)
	require.NoError(t, err)

	var (
		active atomic.Int64
		peak   atomic.Int64
		wg     sync.WaitGroup
	)

	for range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := lim.Do(context.Background(), func() error {
				n := active.Add(1)
				defer active.Add(-1)

				// Record the high-water mark of concurrent bodies.
				for {
					p := peak.Load()
					if n <= p || peak.CompareAndSwap(p, n) {
						break
					}
				}
				time.Sleep(5 * time.Millisecond)
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, peak.Load(), int64(bound))
	assert.Positive(t, peak.Load())
}

func TestDoReleasesSlotOnError(t *testing.T) {
	lim, err := New(1)
	require.NoError(t, err)

	failure := errors.New("collaborator failed")
	err = lim.Do(context.Background(), func() error {
		return failure
	})
	require.ErrorIs(t, err, failure)

	// The slot must have been released despite the error.
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = lim.Do(context.Background(), func() error { return nil })
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("slot leaked after failed call")
	}
}

func TestDoCancelledWhileWaiting(t *testing.T) {
	lim, err := New(1)
	require.NoError(t, err)

	hold := make(chan struct{})
	go func() {
		_ = lim.Do(context.Background(), func() error {
			<-hold
			return nil
		})
	}()

	// Wait for the slot to be taken.
	time.Sleep(20 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	invoked := false
	err = lim.Do(ctx, func() error {
		invoked = true
		return nil
	})
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, invoked)

	close(hold)
}
