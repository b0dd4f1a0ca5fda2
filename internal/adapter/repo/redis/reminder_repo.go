// Package redisrepo keeps reminders in redis: an INCR counter for ids, a
// sorted set of ids and one hash per reminder.
package redisrepo

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"assistant/internal/app/ports"
	"assistant/internal/domain/reminder"

	"github.com/redis/go-redis/v9"
)

const defaultPrefix = "assistant:reminders"

type Config struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

type ReminderRepo struct {
	rdb    *redis.Client
	prefix string
}

// Open connects and pings, failing fast when redis is unreachable.
func Open(ctx context.Context, cfg Config) (*ReminderRepo, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return NewReminderRepo(rdb, cfg.Prefix), nil
}

func NewReminderRepo(rdb *redis.Client, prefix string) *ReminderRepo {
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &ReminderRepo{rdb: rdb, prefix: prefix}
}

func (r *ReminderRepo) Close() error {
	return r.rdb.Close()
}

func (r *ReminderRepo) counterKey() string { return r.prefix + ":next_id" }
func (r *ReminderRepo) indexKey() string   { return r.prefix + ":ids" }
func (r *ReminderRepo) itemKey(id int) string {
	return r.prefix + ":" + strconv.Itoa(id)
}

func (r *ReminderRepo) Add(ctx context.Context, text string, remindAt *time.Time) (reminder.Reminder, error) {
	id64, err := r.rdb.Incr(ctx, r.counterKey()).Result()
	if err != nil {
		return reminder.Reminder{}, fmt.Errorf("next reminder id: %w", err)
	}
	rem := reminder.Reminder{ID: int(id64), Text: text, RemindAt: remindAt}
	_, err = r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, r.itemKey(rem.ID), toFields(rem))
		pipe.ZAdd(ctx, r.indexKey(), redis.Z{Score: float64(rem.ID), Member: rem.ID})
		return nil
	})
	if err != nil {
		return reminder.Reminder{}, fmt.Errorf("store reminder %d: %w", rem.ID, err)
	}
	return rem, nil
}

func (r *ReminderRepo) Complete(ctx context.Context, id int) (reminder.Reminder, error) {
	if err := r.setFlag(ctx, id, "completed"); err != nil {
		return reminder.Reminder{}, err
	}
	return r.get(ctx, id)
}

func (r *ReminderRepo) MarkNotified(ctx context.Context, id int) error {
	return r.setFlag(ctx, id, "notified")
}

func (r *ReminderRepo) List(ctx context.Context) ([]reminder.Reminder, error) {
	ids, err := r.rdb.ZRange(ctx, r.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list reminder ids: %w", err)
	}
	cmds := make([]*redis.MapStringStringCmd, len(ids))
	_, err = r.rdb.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, raw := range ids {
			cmds[i] = pipe.HGetAll(ctx, r.prefix+":"+raw)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load reminders: %w", err)
	}
	out := make([]reminder.Reminder, 0, len(ids))
	for i, cmd := range cmds {
		fields := cmd.Val()
		if len(fields) == 0 {
			continue
		}
		id, _ := strconv.Atoi(ids[i])
		rem, err := fromFields(id, fields)
		if err != nil {
			return nil, err
		}
		out = append(out, rem)
	}
	return reminder.SortByID(out), nil
}

func (r *ReminderRepo) ListDue(ctx context.Context, now time.Time) ([]reminder.Reminder, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	var due []reminder.Reminder
	for _, rem := range all {
		if rem.Due(now) {
			due = append(due, rem)
		}
	}
	return due, nil
}

func (r *ReminderRepo) setFlag(ctx context.Context, id int, field string) error {
	n, err := r.rdb.Exists(ctx, r.itemKey(id)).Result()
	if err != nil {
		return fmt.Errorf("check reminder %d: %w", id, err)
	}
	if n == 0 {
		return ports.ErrNotFound
	}
	if err := r.rdb.HSet(ctx, r.itemKey(id), field, "1").Err(); err != nil {
		return fmt.Errorf("update reminder %d: %w", id, err)
	}
	return nil
}

func (r *ReminderRepo) get(ctx context.Context, id int) (reminder.Reminder, error) {
	fields, err := r.rdb.HGetAll(ctx, r.itemKey(id)).Result()
	if err != nil {
		return reminder.Reminder{}, fmt.Errorf("load reminder %d: %w", id, err)
	}
	if len(fields) == 0 {
		return reminder.Reminder{}, ports.ErrNotFound
	}
	return fromFields(id, fields)
}

func toFields(rem reminder.Reminder) map[string]any {
	at := ""
	if rem.RemindAt != nil {
		at = rem.RemindAt.Format(time.RFC3339)
	}
	return map[string]any{
		"text":      rem.Text,
		"remind_at": at,
		"completed": boolField(rem.Completed),
		"notified":  boolField(rem.Notified),
	}
}

func fromFields(id int, f map[string]string) (reminder.Reminder, error) {
	rem := reminder.Reminder{
		ID:        id,
		Text:      f["text"],
		Completed: f["completed"] == "1",
		Notified:  f["notified"] == "1",
	}
	if raw := f["remind_at"]; raw != "" {
		at, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return reminder.Reminder{}, fmt.Errorf("reminder %d: bad remind_at %q", id, raw)
		}
		rem.RemindAt = &at
	}
	return rem, nil
}

func boolField(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
