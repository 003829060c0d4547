package autosave_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/inkhq/inkwell/internal/autosave"
)

// collector records flush invocations for assertions.
type collector struct {
	mu    sync.Mutex
	fired []string
	ch    chan string
}

func newCollector() *collector {
	return &collector{ch: make(chan string, 16)}
}

func (c *collector) flush(sceneID string) {
	c.mu.Lock()
	c.fired = append(c.fired, sceneID)
	c.mu.Unlock()
	c.ch <- sceneID
}

func (c *collector) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.fired)
}

func (c *collector) wait(t *testing.T) string {
	t.Helper()
	select {
	case id := <-c.ch:
		return id
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for flush")
		return ""
	}
}

func TestScheduler_DebouncesSameScene(t *testing.T) {
	c := newCollector()
	s := autosave.New(30*time.Millisecond, c.flush)

	s.Schedule("s1")
	s.Schedule("s1")
	s.Schedule("s1")

	require.Equal(t, "s1", c.wait(t))

	// Quiescence after the burst yields exactly one flush.
	time.Sleep(60 * time.Millisecond)
	require.Equal(t, 1, c.count())
}

func TestScheduler_ScenesDebounceIndependently(t *testing.T) {
	c := newCollector()
	s := autosave.New(30*time.Millisecond, c.flush)

	s.Schedule("s1")
	s.Schedule("s2")

	first := c.wait(t)
	second := c.wait(t)
	require.ElementsMatch(t, []string{"s1", "s2"}, []string{first, second})
}

func TestScheduler_RescheduleForOtherSceneDoesNotCancel(t *testing.T) {
	c := newCollector()
	s := autosave.New(30*time.Millisecond, c.flush)

	s.Schedule("s1")
	s.Schedule("s2")
	s.Schedule("s2") // re-arms s2 only

	require.True(t, s.Pending("s1"))
	c.wait(t)
	c.wait(t)
	require.Equal(t, 2, c.count())
}

func TestScheduler_Cancel(t *testing.T) {
	c := newCollector()
	s := autosave.New(20*time.Millisecond, c.flush)

	s.Schedule("s1")
	require.True(t, s.Cancel("s1"))
	require.False(t, s.Cancel("s1"))

	time.Sleep(50 * time.Millisecond)
	require.Equal(t, 0, c.count())
}

func TestScheduler_SuspendReturnsPendingAndBlocksScheduling(t *testing.T) {
	c := newCollector()
	s := autosave.New(20*time.Millisecond, c.flush)

	s.Schedule("s1")
	pending := s.Suspend()
	require.Equal(t, []string{"s1"}, pending)

	// Scheduling while suspended is a no-op.
	s.Schedule("s2")
	require.False(t, s.Pending("s2"))

	time.Sleep(50 * time.Millisecond)
	require.Equal(t, 0, c.count())

	s.Resume()
	s.Schedule("s2")
	require.Equal(t, "s2", c.wait(t))
}

func TestScheduler_Drain(t *testing.T) {
	c := newCollector()
	s := autosave.New(20*time.Millisecond, c.flush)

	s.Schedule("s1")
	s.Schedule("s2")
	pending := s.Drain()
	require.ElementsMatch(t, []string{"s1", "s2"}, pending)

	time.Sleep(50 * time.Millisecond)
	require.Equal(t, 0, c.count())
}
