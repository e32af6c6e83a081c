package inbox_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/hugh/cardlink/internal/inbox"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInbox(t *testing.T, max int64) *inbox.Inbox {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return inbox.New(client, max)
}

func TestInbox_PushAndList(t *testing.T) {
	ctx := context.Background()
	ib := newInbox(t, 10)

	t.Run("empty inbox", func(t *testing.T) {
		list, err := ib.List(ctx, 1)
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("newest first", func(t *testing.T) {
		updated := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
		require.NoError(t, ib.Push(ctx, 1, inbox.Notification{ID: "a", CardID: 7, Name: "Bob", CompanyName: "Initech", Title: "CTO", ShareCode: "ABCDEFGH", UpdatedAt: updated}))
		require.NoError(t, ib.Push(ctx, 1, inbox.Notification{ID: "b", CardID: 8}))

		list, err := ib.List(ctx, 1)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "b", list[0].ID)
		assert.Equal(t, "a", list[1].ID)
		assert.Equal(t, "Initech", list[1].CompanyName)
		assert.True(t, updated.Equal(list[1].UpdatedAt))
	})

	t.Run("inboxes are per card", func(t *testing.T) {
		list, err := ib.List(ctx, 2)
		require.NoError(t, err)
		assert.Empty(t, list)
	})
}

func TestInbox_Cap(t *testing.T) {
	ctx := context.Background()
	ib := newInbox(t, 3)

	for i := 0; i < 5; i++ {
		require.NoError(t, ib.Push(ctx, 1, inbox.Notification{ID: fmt.Sprint(i)}))
	}

	list, err := ib.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "4", list[0].ID)
	assert.Equal(t, "2", list[2].ID)
}
