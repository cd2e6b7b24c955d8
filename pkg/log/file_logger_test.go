package log

import (
	"errors"
	"io"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileLoggerWritesAndAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "link.slog")

	first, err := NewFileLogger(path)
	require.NoError(t, err)
	first.Log(Event{Timestamp: time.Now(), SupervisorID: "a", Category: CategoryAttempt, Attempt: 1})
	require.NoError(t, first.Close())

	second, err := NewFileLogger(path)
	require.NoError(t, err)
	second.Log(Event{Timestamp: time.Now(), SupervisorID: "b", Category: CategoryAttempt, Attempt: 1})
	require.NoError(t, second.Close())

	r, err := NewReader(path)
	require.NoError(t, err)
	defer r.Close()

	events, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "a", events[0].SupervisorID)
	assert.Equal(t, "b", events[1].SupervisorID)
}

func TestFileLoggerCloseIsIdempotent(t *testing.T) {
	l, err := NewFileLogger(filepath.Join(t.TempDir(), "link.slog"))
	require.NoError(t, err)

	require.NoError(t, l.Close())
	require.NoError(t, l.Close())

	// Logging after close is ignored.
	l.Log(Event{Category: CategoryMiss})
	assert.Equal(t, 0, l.Dropped())
}

func TestNewFileLoggerBadPath(t *testing.T) {
	_, err := NewFileLogger(filepath.Join(t.TempDir(), "missing", "link.slog"))
	assert.Error(t, err)
}

func TestFileLoggerConcurrent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "link.slog")
	l, err := NewFileLogger(path)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				l.Log(Event{Timestamp: time.Now(), Category: CategoryAttempt, Attempt: uint64(i*100 + j + 1)})
			}
		}(i)
	}
	wg.Wait()
	require.NoError(t, l.Close())

	r, err := NewReader(path)
	require.NoError(t, err)
	defer r.Close()
	events, err := r.ReadAll()
	require.NoError(t, err)
	assert.Len(t, events, 200)
}

type failingWriter struct{ closed bool }

func (w *failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }
func (w *failingWriter) Close() error              { w.closed = true; return nil }

func TestStreamLoggerCountsDropped(t *testing.T) {
	w := &failingWriter{}
	l := NewStreamLogger(w)

	l.Log(Event{Category: CategoryBind})
	l.Log(Event{Category: CategoryBind})
	assert.Equal(t, 2, l.Dropped())

	require.NoError(t, l.Close())
	assert.True(t, w.closed)
}

var _ io.WriteCloser = (*failingWriter)(nil)
