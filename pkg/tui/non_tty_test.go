package tui

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	clocktesting "k8s.io/utils/clock/testing"
)

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestRunNonTTY_PrintsOnStartAndEveryTick(t *testing.T) {
	t.Parallel()
	be := &fakeBackend{reports: fixture()}
	fc := clocktesting.NewFakeClock(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	out := &lockedBuffer{}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- RunNonTTY(ctx, PlainOptions{
			Backend:  be,
			Interval: 30 * time.Second,
			Search:   "in",
			Logger:   zerolog.Nop(),
			Clock:    fc,
		}, out)
	}()

	require.Eventually(t, func() bool { return strings.Count(out.String(), "--- ") == 1 }, time.Second, 5*time.Millisecond)
	assert.Contains(t, out.String(), "--- 2024-05-01T12:00:00Z")
	assert.Contains(t, out.String(), "REPORTS: 2 of 3 shown", "search applies from the first render")

	require.Eventually(t, fc.HasWaiters, time.Second, 5*time.Millisecond)
	be.mu.Lock()
	be.fetchErr = errors.New("gateway timeout")
	be.mu.Unlock()
	fc.Step(30 * time.Second)

	require.Eventually(t, func() bool { return strings.Count(out.String(), "--- ") == 2 }, time.Second, 5*time.Millisecond)
	assert.Contains(t, out.String(), "Failed to load reports: gateway timeout")
	assert.Equal(t, 2, strings.Count(out.String(), "REPORTS: 2 of 3 shown"), "failed reload keeps the last list")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("RunNonTTY did not return after cancel")
	}
}
