package memory

import (
	"sync"

	"assistant/internal/domain/reminder"
	"assistant/internal/domain/task"
)

// Store keeps the task and reminder books in process. txMu serializes
// transactions; mu guards the books for single reads and writes.
type Store struct {
	txMu      sync.Mutex
	mu        sync.RWMutex
	tasks     task.Book
	reminders reminder.Book
}

func NewStore() *Store {
	return &Store{
		tasks:     task.NewBook(),
		reminders: reminder.NewBook(),
	}
}
