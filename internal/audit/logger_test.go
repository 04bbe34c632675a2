package audit

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"task-market.com/task-market/internal/constants"
	model "task-market.com/task-market/internal/models"
)

type recordingStore struct {
	mu      sync.Mutex
	entries []*model.ModerationLog
	err     error
	block   chan struct{}
}

func (s *recordingStore) CreateModerationLog(ctx context.Context, entry *model.ModerationLog) error {
	if s.block != nil {
		<-s.block
	}
	if s.err != nil {
		return s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return nil
}

func (s *recordingStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func entry(taskID string) *model.ModerationLog {
	return &model.ModerationLog{
		TaskID:      taskID,
		Action:      constants.ModerationAutoApproved,
		StatusAfter: constants.TaskActive,
	}
}

func TestLogger_WritesQueuedEntries(t *testing.T) {
	store := &recordingStore{}
	logger := NewLogger(store, 2, 10)

	for _, id := range []string{"a", "b", "c"} {
		logger.Record(entry(id))
	}
	logger.Shutdown(context.Background())

	if got := store.count(); got != 3 {
		t.Fatalf("expected 3 entries written, got %d", got)
	}
}

func TestLogger_RecordDoesNotBlockOnSlowStore(t *testing.T) {
	store := &recordingStore{block: make(chan struct{})}
	logger := NewLogger(store, 1, 1)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			logger.Record(entry("slow"))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Record blocked on a stalled store")
	}

	close(store.block)
	logger.Shutdown(context.Background())
}

func TestLogger_StoreFailureIsSwallowed(t *testing.T) {
	store := &recordingStore{err: errors.New("disk full")}
	logger := NewLogger(store, 1, 4)

	logger.Record(entry("x"))
	logger.Shutdown(context.Background())

	if got := store.count(); got != 0 {
		t.Fatalf("expected no entries stored, got %d", got)
	}
}

func TestLogger_RecordAfterShutdownIsDropped(t *testing.T) {
	store := &recordingStore{}
	logger := NewLogger(store, 1, 4)
	logger.Shutdown(context.Background())
	logger.Shutdown(context.Background())

	logger.Record(entry("late"))

	if got := store.count(); got != 0 {
		t.Fatalf("expected no entries after shutdown, got %d", got)
	}
}
