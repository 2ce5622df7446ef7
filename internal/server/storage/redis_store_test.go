package storage

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T, limit int64) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisStore(client, limit), mr
}

func TestRedisStore_RecordAndHistory(t *testing.T) {
	t.Parallel()

	store, _ := newTestRedisStore(t, 10)
	ctx := context.Background()

	require.NoError(t, store.Record(ctx, GameEvent{Room: "booth", Kind: EventGameStarted, Players: 3}))
	require.NoError(t, store.Record(ctx, GameEvent{Room: "booth", Kind: EventCardDrawn, PlayerID: "p1", TargetID: "p2"}))
	require.NoError(t, store.Record(ctx, GameEvent{Room: "other", Kind: EventCardDrawn}))

	events, err := store.History(ctx, "booth", 0)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, EventGameStarted, events[0].Kind)
	assert.Equal(t, 3, events[0].Players)
	assert.Equal(t, "p2", events[1].TargetID)
	assert.NotZero(t, events[1].Timestamp)

	latest, err := store.History(ctx, "booth", 1)
	require.NoError(t, err)
	require.Len(t, latest, 1)
	assert.Equal(t, EventCardDrawn, latest[0].Kind)
}

func TestRedisStore_HistoryIsCapped(t *testing.T) {
	t.Parallel()

	store, mr := newTestRedisStore(t, 3)
	ctx := context.Background()

	for range 5 {
		require.NoError(t, store.Record(ctx, GameEvent{Room: "booth", Kind: EventCardDrawn}))
	}

	items, err := mr.List(historyKeyPrefix + "booth")
	require.NoError(t, err)
	assert.Len(t, items, 3)
}

func TestRedisStore_StatsAndLeaderboard(t *testing.T) {
	t.Parallel()

	store, _ := newTestRedisStore(t, 100)
	ctx := context.Background()

	require.NoError(t, store.Record(ctx, GameEvent{Room: "booth", Kind: EventPlayerJoined}))
	require.NoError(t, store.Record(ctx, GameEvent{Room: "booth", Kind: EventGameStarted}))
	require.NoError(t, store.Record(ctx, GameEvent{Room: "booth", Kind: EventCardDrawn}))
	require.NoError(t, store.Record(ctx, GameEvent{Room: "booth", Kind: EventCardDrawn}))
	require.NoError(t, store.Record(ctx, GameEvent{
		Room: "booth", Kind: EventPairsDiscarded, PlayerName: "Alice", Cards: []string{"c1", "c14", "c2", "c15"},
	}))
	require.NoError(t, store.Record(ctx, GameEvent{
		Room: "booth", Kind: EventPairsDiscarded, PlayerName: "Bob", Cards: []string{"c3", "c16"},
	}))

	stats, err := store.Stats(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.GamesStarted)
	assert.Equal(t, int64(2), stats.Draws)
	assert.Equal(t, int64(6), stats.CardsDiscarded)
	assert.Equal(t, int64(1), stats.PlayersJoined)

	require.Len(t, stats.Leaderboard, 2)
	assert.Equal(t, LeaderboardEntry{Rank: 1, PlayerName: "Alice", Pairs: 2}, stats.Leaderboard[0])
	assert.Equal(t, LeaderboardEntry{Rank: 2, PlayerName: "Bob", Pairs: 1}, stats.Leaderboard[1])

	noBoard, err := store.Stats(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, noBoard.Leaderboard)
}

func TestRedisStore_EmptyStats(t *testing.T) {
	t.Parallel()

	store, _ := newTestRedisStore(t, 10)
	stats, err := store.Stats(context.Background(), 5)
	require.NoError(t, err)
	assert.Zero(t, stats.GamesStarted)
	assert.Empty(t, stats.Leaderboard)
}

func TestRedisStore_ConnectionError(t *testing.T) {
	t.Parallel()

	store, mr := newTestRedisStore(t, 10)
	mr.Close()

	err := store.Record(context.Background(), GameEvent{Room: "booth", Kind: EventCardDrawn})
	assert.Error(t, err)
}

func TestNopStore(t *testing.T) {
	t.Parallel()

	var s Store = NopStore{}
	ctx := context.Background()
	assert.NoError(t, s.Record(ctx, GameEvent{Kind: EventCardDrawn}))

	events, err := s.History(ctx, "booth", 10)
	require.NoError(t, err)
	assert.Empty(t, events)

	stats, err := s.Stats(ctx, 10)
	require.NoError(t, err)
	assert.Zero(t, stats.Draws)
}
