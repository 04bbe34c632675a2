package audit

import (
	"context"
	"log"
	"sync"
	"time"

	model "task-market.com/task-market/internal/models"
)

type Store interface {
	CreateModerationLog(ctx context.Context, entry *model.ModerationLog) error
}

// Logger records moderation decisions off the request path. Record never
// blocks; entries that cannot be queued or written are logged and dropped.
type Logger struct {
	queue        chan *model.ModerationLog
	wg           sync.WaitGroup
	store        Store
	writeTimeout time.Duration

	mu     sync.RWMutex
	closed bool
}

func NewLogger(store Store, workers int, queueSize int) *Logger {
	if workers <= 0 {
		workers = 1
	}
	l := &Logger{
		queue:        make(chan *model.ModerationLog, queueSize),
		store:        store,
		writeTimeout: 5 * time.Second,
	}

	for i := 1; i <= workers; i++ {
		l.wg.Add(1)
		go l.worker(i)
	}

	return l
}

// Record hands the entry to the background writers and returns immediately.
func (l *Logger) Record(entry *model.ModerationLog) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.closed {
		log.Printf("audit: logger closed, dropping moderation entry for task %s", entry.TaskID)
		return
	}

	select {
	case l.queue <- entry:
	default:
		log.Printf("audit: queue full, dropping moderation entry for task %s", entry.TaskID)
	}
}

func (l *Logger) worker(workerID int) {
	defer l.wg.Done()

	for entry := range l.queue {
		l.write(workerID, entry)
	}
}

func (l *Logger) write(workerID int, entry *model.ModerationLog) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("audit: worker %d recovered while writing entry for task %s: %v", workerID, entry.TaskID, r)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), l.writeTimeout)
	defer cancel()

	if err := l.store.CreateModerationLog(ctx, entry); err != nil {
		log.Printf("audit: worker %d failed to write entry for task %s: %v", workerID, entry.TaskID, err)
	}
}

// Shutdown stops accepting entries and waits for queued ones to be written
// until ctx expires.
func (l *Logger) Shutdown(ctx context.Context) {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.closed = true
	close(l.queue)
	l.mu.Unlock()

	done := make(chan struct{})
	go func() {
		l.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Println("audit: logger shut down cleanly")
	case <-ctx.Done():
		log.Println("audit: logger shutdown timed out")
	}
}
