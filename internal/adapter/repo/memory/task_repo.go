package memory

import (
	"context"

	"assistant/internal/app/ports"
	"assistant/internal/domain/task"
)

type TaskRepo struct {
	store *Store
}

func NewTaskRepo(store *Store) TaskRepo {
	return TaskRepo{store: store}
}

func (r TaskRepo) Add(_ context.Context, description string) (task.Task, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.tasks.Add(description), nil
}

func (r TaskRepo) Complete(_ context.Context, id int) (task.Task, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	t, ok := r.store.tasks.Complete(id)
	if !ok {
		return task.Task{}, ports.ErrNotFound
	}
	return t, nil
}

func (r TaskRepo) Get(_ context.Context, id int) (task.Task, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	t, ok := r.store.tasks.Tasks[id]
	if !ok {
		return task.Task{}, ports.ErrNotFound
	}
	return t, nil
}

func (r TaskRepo) List(_ context.Context) ([]task.Task, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.store.tasks.Sorted(), nil
}

func (r TaskRepo) Clear(_ context.Context) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.tasks.Clear()
	return nil
}
