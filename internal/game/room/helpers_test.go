package room

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/palemoky/old-maid/internal/game/card"
	"github.com/palemoky/old-maid/internal/protocol"
	"github.com/palemoky/old-maid/internal/protocol/codec"
	"github.com/palemoky/old-maid/internal/server/storage"
	"github.com/palemoky/old-maid/internal/testutil"
)

const (
	eventuallyWait = time.Second
	eventuallyTick = 10 * time.Millisecond
)

func newTestRoom(opts ...Option) *Room {
	base := []Option{WithRand(rand.New(rand.NewPCG(1, 2)))}
	return NewRoom("booth", append(base, opts...)...)
}

// joinN 加入 n 个客户端，返回客户端及对应的玩家 ID
func joinN(t *testing.T, r *Room, n int) ([]*testutil.SimpleClient, []string) {
	t.Helper()
	clients := make([]*testutil.SimpleClient, n)
	ids := make([]string, n)
	for i := range n {
		clients[i] = testutil.NewSimpleClient(string(rune('a'+i)) + "-conn")
		ids[i] = r.AddPlayer(clients[i]).ID
	}
	return clients, ids
}

func resetAll(clients []*testutil.SimpleClient) {
	for _, c := range clients {
		c.Reset()
	}
}

func decode[T any](t *testing.T, msg *protocol.Message) *T {
	t.Helper()
	require.NotNil(t, msg)
	p, err := codec.ParsePayload[T](msg)
	require.NoError(t, err)
	return p
}

// setHands 直接摆好对局：进入 playing，首位玩家先手
func setHands(r *Room, hands ...[]card.Card) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = RoomStatePlaying
	r.currentTurn = r.players[0].ID
	for i, h := range hands {
		r.players[i].Hand = h
	}
}

func c(id string, s card.Suit, rank card.Rank) card.Card {
	return card.Card{ID: id, Suit: s, Rank: rank}
}

func cardIDs(cards []protocol.CardInfo) []string {
	ids := make([]string, len(cards))
	for i, ci := range cards {
		ids[i] = ci.ID
	}
	return ids
}

// discardedSeen 从某个观察者收到的消息中统计公开的弃牌
func discardedSeen(t *testing.T, observer *testutil.SimpleClient) []string {
	t.Helper()
	var ids []string
	for _, msg := range observer.Messages() {
		switch msg.Type {
		case protocol.MsgGameStarted:
			ids = ids[:0]
			for _, s := range decode[protocol.GameStartedPayload](t, msg).PairRemovalSummary {
				ids = append(ids, cardIDs(s.Discarded)...)
			}
		case protocol.MsgPairsDiscarded:
			ids = append(ids, cardIDs(decode[protocol.PairsDiscardedPayload](t, msg).Discarded)...)
		}
	}
	return ids
}

func countKind(kinds []storage.EventKind, kind storage.EventKind) int {
	n := 0
	for _, k := range kinds {
		if k == kind {
			n++
		}
	}
	return n
}

func newSimpleJoined(r *Room, connID string) *testutil.SimpleClient {
	cl := testutil.NewSimpleClient(connID)
	r.AddPlayer(cl)
	return cl
}
