package jobs

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type memorySink struct {
	mu    sync.Mutex
	files map[string][]byte
}

func newMemorySink() *memorySink {
	return &memorySink{files: make(map[string][]byte)}
}

func (s *memorySink) Save(filename string, data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[filename] = data
	return filename, nil
}

func (s *memorySink) get(filename string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.files[filename]
	return data, ok
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestRunnerRendersAndSaves(t *testing.T) {
	sink := newMemorySink()
	r := NewRunner(sink, RunnerConfig{Workers: 2})
	r.Start(context.Background())
	defer r.Stop()

	require.NoError(t, r.Enqueue(ExportJob{
		Name:   "summary.pdf",
		Render: func() ([]byte, error) { return []byte("%PDF"), nil },
	}))
	require.NoError(t, r.Enqueue(ExportJob{
		Name:   "tags.csv",
		Render: func() ([]byte, error) { return []byte("Name\n"), nil },
	}))

	r.Drain()

	data, ok := sink.get("summary.pdf")
	require.True(t, ok)
	require.Equal(t, "%PDF", string(data))
	_, ok = sink.get("tags.csv")
	require.True(t, ok)
}

func TestRunnerRetriesFailedRender(t *testing.T) {
	sink := newMemorySink()
	var attempts int
	var mu sync.Mutex

	r := NewRunner(sink, RunnerConfig{Workers: 1, MaxRetries: 3, RetryDelay: 10 * time.Millisecond})
	r.Start(context.Background())
	defer r.Stop()

	require.NoError(t, r.Enqueue(ExportJob{
		Name: "flaky.csv",
		Render: func() ([]byte, error) {
			mu.Lock()
			attempts++
			n := attempts
			mu.Unlock()
			if n < 3 {
				return nil, errors.New("transient")
			}
			return []byte("ok"), nil
		},
	}))

	waitFor(t, func() bool {
		data, ok := sink.get("flaky.csv")
		return ok && string(data) == "ok"
	})
}

func TestEnqueueBeforeStartFails(t *testing.T) {
	r := NewRunner(newMemorySink(), RunnerConfig{})
	err := r.Enqueue(ExportJob{Name: "x.csv", Render: func() ([]byte, error) { return nil, nil }})
	require.Error(t, err)
}

func TestEnqueueAfterStopFails(t *testing.T) {
	r := NewRunner(newMemorySink(), RunnerConfig{})
	r.Start(context.Background())
	r.Stop()

	err := r.Enqueue(ExportJob{Name: "x.csv", Render: func() ([]byte, error) { return nil, nil }})
	require.Error(t, err)
}
