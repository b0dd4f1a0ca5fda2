package tasks

import (
	"context"
	"errors"
	"strings"
	"testing"

	"assistant/internal/app/ports"
	"assistant/internal/domain/task"
)

func TestUseCase_AddListDeleteRoundTrip(t *testing.T) {
	repo := newBookRepo()
	uc := UseCase{Repo: repo, TxManager: countingTx{n: new(int)}}
	ctx := context.Background()

	msg, err := uc.Add(ctx, "Buy milk")
	if err != nil {
		t.Fatalf("Add error: %v", err)
	}
	if msg != "Task 1 added: Buy milk" {
		t.Fatalf("unexpected add message %q", msg)
	}

	list, err := uc.List(ctx)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if !strings.Contains(list, "1. Buy milk [ ]") {
		t.Fatalf("expected open task in list, got %q", list)
	}

	if _, err := uc.Delete(ctx, 1); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	list, err = uc.List(ctx)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if !strings.Contains(list, "1. Buy milk [x]") {
		t.Fatalf("expected same id marked completed, got %q", list)
	}
}

func TestUseCase_WritesRunInTx(t *testing.T) {
	n := 0
	uc := UseCase{Repo: newBookRepo(), TxManager: countingTx{n: &n}}
	ctx := context.Background()
	_, _ = uc.Add(ctx, "a")
	_, _ = uc.Delete(ctx, 1)
	_ = uc.Clear(ctx)
	if n != 3 {
		t.Fatalf("expected 3 transactions, got %d", n)
	}
}

func TestUseCase_AddRejectsEmptyDescription(t *testing.T) {
	uc := UseCase{Repo: newBookRepo()}
	if _, err := uc.Add(context.Background(), "   "); !errors.Is(err, ErrEmptyDescription) {
		t.Fatalf("expected ErrEmptyDescription, got %v", err)
	}
}

func TestUseCase_DeleteUnknownIDIsNotAnError(t *testing.T) {
	uc := UseCase{Repo: newBookRepo()}
	msg, err := uc.Delete(context.Background(), 42)
	if err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if msg != "Task 42 not found." {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestUseCase_ClearTwiceLeavesEmptyStore(t *testing.T) {
	uc := UseCase{Repo: newBookRepo()}
	ctx := context.Background()
	_, _ = uc.Add(ctx, "a")
	for i := 0; i < 2; i++ {
		if err := uc.Clear(ctx); err != nil {
			t.Fatalf("Clear #%d error: %v", i+1, err)
		}
		all, err := uc.Snapshot(ctx)
		if err != nil {
			t.Fatalf("Snapshot error: %v", err)
		}
		if len(all) != 0 {
			t.Fatalf("expected empty store after clear #%d, got %v", i+1, all)
		}
	}
	list, _ := uc.List(ctx)
	if list != task.EmptyListText {
		t.Fatalf("expected empty indicator, got %q", list)
	}
}

func TestUseCase_HelpSeedsCompletionWithTaskList(t *testing.T) {
	repo := newBookRepo()
	completer := &recordingCompleter{reply: "1. Open the report\n2. Write it"}
	uc := UseCase{Repo: repo, Completer: completer}
	ctx := context.Background()
	_, _ = uc.Add(ctx, "Finish the report")
	_, _ = uc.Add(ctx, "Buy milk")
	_, _ = uc.Delete(ctx, 1)

	got, err := uc.Help(ctx, 1)
	if err != nil {
		t.Fatalf("Help error: %v", err)
	}
	if got != completer.reply {
		t.Fatalf("unexpected guidance %q", got)
	}
	if !strings.Contains(completer.system, "1. Finish the report [x]") || !strings.Contains(completer.system, "2. Buy milk [ ]") {
		t.Fatalf("system prompt missing task list: %q", completer.system)
	}
	if !strings.HasPrefix(completer.user, "```") || !strings.Contains(completer.user, "task 1") {
		t.Fatalf("unexpected user text %q", completer.user)
	}
}

func TestUseCase_HelpUnknownTask(t *testing.T) {
	completer := &recordingCompleter{}
	uc := UseCase{Repo: newBookRepo(), Completer: completer}
	got, err := uc.Help(context.Background(), 9)
	if err != nil {
		t.Fatalf("Help error: %v", err)
	}
	if got != "Task 9 not found." {
		t.Fatalf("unexpected message %q", got)
	}
	if completer.calls != 0 {
		t.Fatalf("completion must not run for unknown task")
	}
}

func TestUseCase_HelpPropagatesCompletionError(t *testing.T) {
	wantErr := errors.New("model down")
	repo := newBookRepo()
	uc := UseCase{Repo: repo, Completer: &recordingCompleter{err: wantErr}}
	_, _ = uc.Add(context.Background(), "x")
	if _, err := uc.Help(context.Background(), 1); !errors.Is(err, wantErr) {
		t.Fatalf("expected completion error, got %v", err)
	}
}

func TestUseCase_PropagatesRepoError(t *testing.T) {
	wantErr := errors.New("disk full")
	uc := UseCase{Repo: failingRepo{err: wantErr}}
	if _, err := uc.Add(context.Background(), "x"); !errors.Is(err, wantErr) {
		t.Fatalf("expected repo error, got %v", err)
	}
	if _, err := uc.List(context.Background()); !errors.Is(err, wantErr) {
		t.Fatalf("expected repo error, got %v", err)
	}
}

type bookRepo struct {
	book *task.Book
}

func newBookRepo() bookRepo {
	b := task.NewBook()
	return bookRepo{book: &b}
}

func (r bookRepo) Add(_ context.Context, description string) (task.Task, error) {
	return r.book.Add(description), nil
}

func (r bookRepo) Complete(_ context.Context, id int) (task.Task, error) {
	t, ok := r.book.Complete(id)
	if !ok {
		return task.Task{}, ports.ErrNotFound
	}
	return t, nil
}

func (r bookRepo) Get(_ context.Context, id int) (task.Task, error) {
	t, ok := r.book.Tasks[id]
	if !ok {
		return task.Task{}, ports.ErrNotFound
	}
	return t, nil
}

func (r bookRepo) List(_ context.Context) ([]task.Task, error) {
	return r.book.Sorted(), nil
}

func (r bookRepo) Clear(_ context.Context) error {
	r.book.Clear()
	return nil
}

type failingRepo struct {
	err error
}

func (r failingRepo) Add(context.Context, string) (task.Task, error) { return task.Task{}, r.err }
func (r failingRepo) Complete(context.Context, int) (task.Task, error) {
	return task.Task{}, r.err
}
func (r failingRepo) Get(context.Context, int) (task.Task, error) { return task.Task{}, r.err }
func (r failingRepo) List(context.Context) ([]task.Task, error)   { return nil, r.err }
func (r failingRepo) Clear(context.Context) error                 { return r.err }

type countingTx struct {
	n *int
}

func (c countingTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	*c.n++
	return fn(ctx)
}

type recordingCompleter struct {
	reply  string
	err    error
	system string
	user   string
	calls  int
}

func (c *recordingCompleter) Complete(_ context.Context, systemPrompt, userText string) (string, error) {
	c.calls++
	c.system = systemPrompt
	c.user = userText
	if c.err != nil {
		return "", c.err
	}
	return c.reply, nil
}
