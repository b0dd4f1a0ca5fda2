package memory

import (
	"context"
	"time"

	"assistant/internal/app/ports"
	"assistant/internal/domain/reminder"
)

type ReminderRepo struct {
	store *Store
}

func NewReminderRepo(store *Store) ReminderRepo {
	return ReminderRepo{store: store}
}

func (r ReminderRepo) Add(_ context.Context, text string, remindAt *time.Time) (reminder.Reminder, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.reminders.Add(text, remindAt), nil
}

func (r ReminderRepo) Complete(_ context.Context, id int) (reminder.Reminder, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	rem, ok := r.store.reminders.Complete(id)
	if !ok {
		return reminder.Reminder{}, ports.ErrNotFound
	}
	return rem, nil
}

func (r ReminderRepo) List(_ context.Context) ([]reminder.Reminder, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.store.reminders.Sorted(), nil
}

func (r ReminderRepo) ListDue(_ context.Context, now time.Time) ([]reminder.Reminder, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var due []reminder.Reminder
	for _, rem := range r.store.reminders.Sorted() {
		if rem.Due(now) {
			due = append(due, rem)
		}
	}
	return due, nil
}

func (r ReminderRepo) MarkNotified(_ context.Context, id int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if !r.store.reminders.MarkNotified(id) {
		return ports.ErrNotFound
	}
	return nil
}
