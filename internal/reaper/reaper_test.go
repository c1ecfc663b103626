package reaper

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auth-server/internal/domain"
)

type stubSessions struct {
	purges atomic.Int64
	err    error
}

func (s *stubSessions) Create(context.Context, int64) (*domain.Session, error) { return nil, nil }
func (s *stubSessions) Validate(context.Context, string) (int64, error)        { return 0, nil }
func (s *stubSessions) Revoke(context.Context, string) error                   { return nil }

func (s *stubSessions) PurgeExpired(context.Context) (int64, error) {
	s.purges.Add(1)
	return 3, s.err
}

func TestReaperSweeps(t *testing.T) {
	stub := &stubSessions{}
	r := New(Config{Interval: 5 * time.Millisecond}, stub)

	r.Start(context.Background())
	require.Eventually(t, func() bool {
		return stub.purges.Load() >= 2
	}, time.Second, time.Millisecond)
	r.Shutdown()

	after := stub.purges.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, after, stub.purges.Load(), "no sweeps after shutdown")
}

func TestReaperShutdownWithoutStart(t *testing.T) {
	r := New(Config{}, &stubSessions{})
	r.Shutdown() // must not panic or block
}

func TestReaperKeepsRunningOnError(t *testing.T) {
	stub := &stubSessions{err: context.DeadlineExceeded}
	r := New(Config{Interval: 5 * time.Millisecond}, stub)

	r.Start(context.Background())
	require.Eventually(t, func() bool {
		return stub.purges.Load() >= 2
	}, time.Second, time.Millisecond)
	r.Shutdown()
}
