// Package filerepo stores tasks in a single JSON document on disk. The task
// map keeps the {"<id>": {"description", "completed"}} shape; the counter
// sits next to it.
package filerepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"assistant/internal/app/ports"
	"assistant/internal/domain/task"
)

type entry struct {
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

type document struct {
	NextID int              `json:"next_id"`
	Tasks  map[string]entry `json:"tasks"`
}

type TaskRepo struct {
	path string
	txMu sync.Mutex
	mu   sync.Mutex
}

func NewTaskRepo(path string) *TaskRepo {
	return &TaskRepo{path: path}
}

// RunInTx holds the writer lock for the whole read-modify-write cycle.
func (r *TaskRepo) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()
	return fn(ctx)
}

func (r *TaskRepo) Add(_ context.Context, description string) (task.Task, error) {
	var added task.Task
	err := r.update(func(b *task.Book) error {
		added = b.Add(description)
		return nil
	})
	return added, err
}

func (r *TaskRepo) Complete(_ context.Context, id int) (task.Task, error) {
	var done task.Task
	err := r.update(func(b *task.Book) error {
		t, ok := b.Complete(id)
		if !ok {
			return ports.ErrNotFound
		}
		done = t
		return nil
	})
	return done, err
}

func (r *TaskRepo) Get(_ context.Context, id int) (task.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, err := r.load()
	if err != nil {
		return task.Task{}, err
	}
	t, ok := b.Tasks[id]
	if !ok {
		return task.Task{}, ports.ErrNotFound
	}
	return t, nil
}

func (r *TaskRepo) List(_ context.Context) ([]task.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, err := r.load()
	if err != nil {
		return nil, err
	}
	return b.Sorted(), nil
}

func (r *TaskRepo) Clear(_ context.Context) error {
	return r.update(func(b *task.Book) error {
		b.Clear()
		return nil
	})
}

func (r *TaskRepo) update(fn func(b *task.Book) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, err := r.load()
	if err != nil {
		return err
	}
	if err := fn(&b); err != nil {
		return err
	}
	return r.save(b)
}

func (r *TaskRepo) load() (task.Book, error) {
	raw, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return task.NewBook(), nil
	}
	if err != nil {
		return task.Book{}, fmt.Errorf("read task file: %w", err)
	}
	doc, err := decodeDocument(raw)
	if err != nil {
		return task.Book{}, fmt.Errorf("decode task file: %w", err)
	}
	b := task.Book{NextID: doc.NextID, Tasks: make(map[int]task.Task, len(doc.Tasks))}
	for key, e := range doc.Tasks {
		id, err := strconv.Atoi(key)
		if err != nil {
			return task.Book{}, fmt.Errorf("decode task file: bad id %q", key)
		}
		b.Tasks[id] = task.Task{ID: id, Description: e.Description, Completed: e.Completed}
	}
	for id := range b.Tasks {
		if id >= b.NextID {
			b.NextID = id + 1
		}
	}
	if b.NextID < 1 {
		b.NextID = 1
	}
	return b, nil
}

// decodeDocument also reads the bare {"<id>": {...}} map written by older
// versions, which had no counter.
func decodeDocument(raw []byte) (document, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return document{}, err
	}
	if _, ok := fields["tasks"]; ok {
		var doc document
		err := json.Unmarshal(raw, &doc)
		return doc, err
	}
	doc := document{Tasks: map[string]entry{}}
	err := json.Unmarshal(raw, &doc.Tasks)
	return doc, err
}

func (r *TaskRepo) save(b task.Book) error {
	doc := document{NextID: b.NextID, Tasks: make(map[string]entry, len(b.Tasks))}
	for id, t := range b.Tasks {
		doc.Tasks[strconv.Itoa(id)] = entry{Description: t.Description, Completed: t.Completed}
	}
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode task file: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("create task dir: %w", err)
	}
	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write task file: %w", err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return fmt.Errorf("replace task file: %w", err)
	}
	return nil
}
