package gormrepo

import (
	"context"
	"errors"
	"fmt"

	"assistant/internal/adapter/repo/gorm/model"
	"assistant/internal/app/ports"
	"assistant/internal/domain/task"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const taskCounterName = "tasks"

type TaskRepo struct {
	db *gorm.DB
}

func NewTaskRepo(db *gorm.DB) TaskRepo {
	return TaskRepo{db: db}
}

// Add takes the next id from the counter row under a row lock, so concurrent
// writers never share an id and a cleared table never reuses one.
func (r TaskRepo) Add(ctx context.Context, description string) (task.Task, error) {
	var out task.Task
	err := r.inTx(ctx, func(tx *gorm.DB) error {
		var counter model.TaskCounter
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("name = ?", taskCounterName).
			First(&counter).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			counter = model.TaskCounter{Name: taskCounterName, NextID: 1}
			if err := tx.Create(&counter).Error; err != nil {
				return fmt.Errorf("create task counter: %w", err)
			}
		} else if err != nil {
			return fmt.Errorf("lock task counter: %w", err)
		}

		m := model.Task{ID: counter.NextID, Description: description}
		if err := tx.Create(&m).Error; err != nil {
			return fmt.Errorf("insert task: %w", err)
		}
		if err := tx.Model(&model.TaskCounter{}).
			Where("name = ?", taskCounterName).
			Update("next_id", counter.NextID+1).Error; err != nil {
			return fmt.Errorf("advance task counter: %w", err)
		}
		out = toTask(m)
		return nil
	})
	return out, err
}

func (r TaskRepo) Complete(ctx context.Context, id int) (task.Task, error) {
	db := conn(ctx, r.db)
	res := db.Model(&model.Task{}).Where("id = ?", id).Update("completed", true)
	if res.Error != nil {
		return task.Task{}, res.Error
	}
	if res.RowsAffected == 0 {
		return task.Task{}, ports.ErrNotFound
	}
	return r.Get(ctx, id)
}

func (r TaskRepo) Get(ctx context.Context, id int) (task.Task, error) {
	var m model.Task
	if err := conn(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return task.Task{}, ports.ErrNotFound
		}
		return task.Task{}, err
	}
	return toTask(m), nil
}

func (r TaskRepo) List(ctx context.Context) ([]task.Task, error) {
	var rows []model.Task
	if err := conn(ctx, r.db).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]task.Task, 0, len(rows))
	for _, m := range rows {
		out = append(out, toTask(m))
	}
	return out, nil
}

// Clear drops every task and leaves the counter alone.
func (r TaskRepo) Clear(ctx context.Context) error {
	return conn(ctx, r.db).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&model.Task{}).Error
}

func (r TaskRepo) inTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if tx, ok := txFromContext(ctx); ok {
		return fn(tx.WithContext(ctx))
	}
	return r.db.WithContext(ctx).Transaction(fn)
}

func toTask(m model.Task) task.Task {
	return task.Task{ID: int(m.ID), Description: m.Description, Completed: m.Completed}
}
