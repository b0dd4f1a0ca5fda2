package tasks

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"assistant/internal/app/ports"
	"assistant/internal/app/prompt"
	"assistant/internal/domain/task"

	"go.uber.org/zap"
)

var ErrEmptyDescription = errors.New("task description is required")

type UseCase struct {
	Repo      ports.TaskRepository
	TxManager ports.TxManager
	// Completer serves the nested help call.
	Completer ports.Completer
	Logger    *zap.Logger
}

func (u UseCase) Add(ctx context.Context, description string) (string, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return "", ErrEmptyDescription
	}
	var added task.Task
	err := u.runInTx(ctx, func(txCtx context.Context) error {
		t, err := u.Repo.Add(txCtx, description)
		if err != nil {
			return err
		}
		added = t
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("add task: %w", err)
	}
	u.logger().Info("task added", zap.Int("task_id", added.ID))
	return fmt.Sprintf("Task %d added: %s", added.ID, added.Description), nil
}

// Delete marks the task completed. The id stays valid for Help.
func (u UseCase) Delete(ctx context.Context, id int) (string, error) {
	var done task.Task
	err := u.runInTx(ctx, func(txCtx context.Context) error {
		t, err := u.Repo.Complete(txCtx, id)
		if err != nil {
			return err
		}
		done = t
		return nil
	})
	if errors.Is(err, ports.ErrNotFound) {
		return notFound(id), nil
	}
	if err != nil {
		return "", fmt.Errorf("delete task %d: %w", id, err)
	}
	u.logger().Info("task completed", zap.Int("task_id", done.ID))
	return fmt.Sprintf("Task %d deleted: %s", done.ID, done.Description), nil
}

func (u UseCase) Help(ctx context.Context, id int) (string, error) {
	if u.Completer == nil {
		return "", errors.New("help requires a completion service")
	}
	target, err := u.Repo.Get(ctx, id)
	if errors.Is(err, ports.ErrNotFound) {
		return notFound(id), nil
	}
	if err != nil {
		return "", fmt.Errorf("load task %d: %w", id, err)
	}
	all, err := u.Repo.List(ctx)
	if err != nil {
		return "", fmt.Errorf("list tasks: %w", err)
	}
	request := fmt.Sprintf("Help me with task %d: %s", target.ID, target.Description)
	guidance, err := u.Completer.Complete(ctx, prompt.TaskHelp(task.RenderList(all)), prompt.Wrap(request))
	if err != nil {
		return "", fmt.Errorf("task help completion: %w", err)
	}
	guidance = strings.TrimSpace(guidance)
	if guidance == "" {
		return fmt.Sprintf("I have no guidance for task %d right now.", target.ID), nil
	}
	return guidance, nil
}

func (u UseCase) List(ctx context.Context) (string, error) {
	all, err := u.Snapshot(ctx)
	if err != nil {
		return "", err
	}
	return task.RenderList(all), nil
}

// Snapshot returns every stored task, completed ones included, ordered by id.
func (u UseCase) Snapshot(ctx context.Context) ([]task.Task, error) {
	all, err := u.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return task.SortByID(all), nil
}

// Clear drops every task. Calling it on an empty store is a no-op.
func (u UseCase) Clear(ctx context.Context) error {
	if err := u.runInTx(ctx, u.Repo.Clear); err != nil {
		return fmt.Errorf("clear tasks: %w", err)
	}
	u.logger().Info("tasks cleared")
	return nil
}

func (u UseCase) runInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if u.TxManager == nil {
		return fn(ctx)
	}
	return u.TxManager.RunInTx(ctx, fn)
}

func (u UseCase) logger() *zap.Logger {
	if u.Logger == nil {
		return zap.NewNop()
	}
	return u.Logger
}

func notFound(id int) string {
	return fmt.Sprintf("Task %d not found.", id)
}
