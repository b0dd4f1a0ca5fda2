package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"assistant/internal/app/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskRepo_IdentifiersSurviveDeleteAndClear(t *testing.T) {
	store := NewStore()
	repo := NewTaskRepo(store)
	ctx := context.Background()

	first, err := repo.Add(ctx, "Buy milk")
	require.NoError(t, err)
	second, err := repo.Add(ctx, "Walk dog")
	require.NoError(t, err)
	assert.Equal(t, 1, first.ID)
	assert.Equal(t, 2, second.ID)

	done, err := repo.Complete(ctx, 1)
	require.NoError(t, err)
	assert.True(t, done.Completed)

	got, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", got.Description)

	require.NoError(t, repo.Clear(ctx))
	require.NoError(t, repo.Clear(ctx))
	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	third, err := repo.Add(ctx, "Read")
	require.NoError(t, err)
	assert.Equal(t, 3, third.ID)

	_, err = repo.Complete(ctx, 42)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestTxManager_SerializesWriters(t *testing.T) {
	store := NewStore()
	repo := NewTaskRepo(store)
	tx := NewTxManager(store)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = tx.RunInTx(ctx, func(ctx context.Context) error {
				_, err := repo.Add(ctx, "task")
				return err
			})
		}()
	}
	wg.Wait()

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 20)
	for i, tk := range all {
		assert.Equal(t, i+1, tk.ID)
	}
}

func TestReminderRepo_DueAndNotified(t *testing.T) {
	repo := NewReminderRepo(NewStore())
	ctx := context.Background()
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Minute)
	future := now.Add(time.Hour)

	due, err := repo.Add(ctx, "Stretch", &past)
	require.NoError(t, err)
	_, err = repo.Add(ctx, "Lunch", &future)
	require.NoError(t, err)
	_, err = repo.Add(ctx, "Someday", nil)
	require.NoError(t, err)

	list, err := repo.ListDue(ctx, now)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, due.ID, list[0].ID)

	require.NoError(t, repo.MarkNotified(ctx, due.ID))
	list, err = repo.ListDue(ctx, now)
	require.NoError(t, err)
	assert.Empty(t, list)

	assert.ErrorIs(t, repo.MarkNotified(ctx, 99), ports.ErrNotFound)
}
