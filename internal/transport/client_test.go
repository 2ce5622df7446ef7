package transport

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/old-maid/internal/config"
	"github.com/palemoky/old-maid/internal/protocol"
	"github.com/palemoky/old-maid/internal/protocol/codec"
	"github.com/palemoky/old-maid/internal/server"
)

const waitFor = 2 * time.Second

func startServer(t *testing.T, codecName string) string {
	t.Helper()
	cfg := config.Default()
	cfg.Server.Codec = codecName
	s, err := server.NewServer(cfg)
	require.NoError(t, err)

	ts := httptest.NewServer(s.Router())
	t.Cleanup(func() {
		ts.Close()
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = s.Shutdown(ctx)
	})
	return "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
}

func connect(t *testing.T, url string, c codec.Codec) *Client {
	t.Helper()
	client := NewClient(url, c)
	require.NoError(t, client.Connect())
	t.Cleanup(client.Close)
	return client
}

// waitType 等待指定类型的消息
func waitType(t *testing.T, c *Client, msgType protocol.MessageType) *protocol.Message {
	t.Helper()
	timeout := time.After(waitFor)
	for {
		select {
		case msg, ok := <-c.Receive():
			require.True(t, ok, "connection closed while waiting for %s", msgType)
			if msg.Type == msgType {
				return msg
			}
		case <-timeout:
			require.FailNow(t, "timed out waiting for "+string(msgType))
		}
	}
}

func TestClient_JoinAndPlay(t *testing.T) {
	t.Parallel()

	url := startServer(t, "json")
	a := connect(t, url, nil)
	waitType(t, a, protocol.MsgJoined)
	assert.NotEmpty(t, a.PlayerID())
	assert.Equal(t, "Player1", a.PlayerName())

	b := connect(t, url, codec.JSONCodec{})
	waitType(t, b, protocol.MsgJoined)

	require.NoError(t, a.SetName("Ann"))
	waitType(t, a, protocol.MsgNameSet)
	assert.Equal(t, "Ann", a.PlayerName())

	require.NoError(t, b.StartGame())
	hand, err := codec.ParsePayload[protocol.YourHandPayload](waitType(t, a, protocol.MsgYourHand))
	require.NoError(t, err)
	assert.NotEmpty(t, hand.Hand)

	turn, err := codec.ParsePayload[protocol.TurnUpdatePayload](waitType(t, a, protocol.MsgTurnUpdate))
	require.NoError(t, err)
	assert.Equal(t, a.PlayerID(), turn.CurrentTurn)

	require.NoError(t, a.DrawCard(turn.TargetID, 0))
	next, err := codec.ParsePayload[protocol.TurnUpdatePayload](waitType(t, b, protocol.MsgTurnUpdate))
	require.NoError(t, err)
	// b 先收到开局时的回合，再收到抽牌后的回合
	if next.CurrentTurn == a.PlayerID() {
		next, err = codec.ParsePayload[protocol.TurnUpdatePayload](waitType(t, b, protocol.MsgTurnUpdate))
		require.NoError(t, err)
	}
	assert.Equal(t, b.PlayerID(), next.CurrentTurn)

	require.NoError(t, b.RequestOpponentsHand())
	view, err := codec.ParsePayload[protocol.YourOpponentsHandPayload](waitType(t, b, protocol.MsgYourOpponentsHand))
	require.NoError(t, err)
	require.Len(t, view.OpponentsHands, 1)
	assert.Equal(t, a.PlayerID(), view.OpponentsHands[0].ID)
}

func TestClient_PingMeasuresLatency(t *testing.T) {
	t.Parallel()

	url := startServer(t, "protobuf")
	c := connect(t, url, codec.ProtobufCodec{})
	waitType(t, c, protocol.MsgJoined)

	require.NoError(t, c.Ping())
	waitType(t, c, protocol.MsgPong)
	assert.GreaterOrEqual(t, c.Latency(), time.Duration(0))
}

func TestClient_Close(t *testing.T) {
	t.Parallel()

	url := startServer(t, "json")
	closed := make(chan struct{})
	c := NewClient(url, nil)
	c.OnClose = func() { close(closed) }
	require.NoError(t, c.Connect())
	waitType(t, c, protocol.MsgJoined)

	c.Close()
	c.Close()
	assert.True(t, c.IsClosed())
	assert.ErrorIs(t, c.StartGame(), ErrClosed)

	select {
	case <-closed:
	case <-time.After(waitFor):
		t.Fatal("OnClose not called")
	}
}

func TestClient_ConnectFailure(t *testing.T) {
	t.Parallel()

	c := NewClient("ws://127.0.0.1:1/ws", nil)
	assert.Error(t, c.Connect())
}
