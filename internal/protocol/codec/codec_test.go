package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/old-maid/internal/protocol"
)

func TestByName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
		binary   bool
		hasError bool
	}{
		{name: "Default is JSON", input: "", expected: NameJSON},
		{name: "JSON", input: "json", expected: NameJSON},
		{name: "Protobuf", input: "protobuf", expected: NameProtobuf, binary: true},
		{name: "Unknown", input: "xml", hasError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c, err := ByName(tt.input)
			if tt.hasError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, c.Name())
			assert.Equal(t, tt.binary, c.Binary())
		})
	}
}

func TestCodecs_RoundTrip(t *testing.T) {
	t.Parallel()

	messages := []*protocol.Message{
		MustNewMessage(protocol.MsgDrawCard, protocol.DrawCardPayload{From: "p2", Index: 3}),
		MustNewMessage(protocol.MsgStartGame, nil),
		NewErrorMessageWithText("Need at least 2 players to start"),
		MustNewMessage(protocol.MsgOpponentsSummary, []protocol.PlayerInfo{
			{ID: "p1", Name: "Alice", CardCount: 12},
			{ID: "p2", Name: "Bob", CardCount: 0},
		}),
		MustNewMessage(protocol.MsgYourHand, protocol.YourHandPayload{
			Hand: []protocol.CardInfo{{ID: "c1", Suit: "♠", Rank: "A"}, {ID: "c53", Suit: "joker", Rank: "JOKER"}},
		}),
	}

	for _, c := range []Codec{JSONCodec{}, ProtobufCodec{}} {
		t.Run(c.Name(), func(t *testing.T) {
			t.Parallel()

			for _, original := range messages {
				data, err := c.Encode(original)
				require.NoError(t, err)
				require.NotEmpty(t, data)

				decoded, err := c.Decode(data)
				require.NoError(t, err)
				assert.Equal(t, original.Type, decoded.Type)
				if len(original.Payload) == 0 {
					assert.Empty(t, decoded.Payload)
				} else {
					assert.JSONEq(t, string(original.Payload), string(decoded.Payload))
				}
				PutMessage(decoded)
			}
		})
	}
}

func TestJSONCodec_WireShape(t *testing.T) {
	t.Parallel()

	data, err := JSONCodec{}.Encode(MustNewMessage(protocol.MsgJoined, protocol.JoinedPayload{ID: "p1", Name: "Player1"}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"joined","payload":{"id":"p1","name":"Player1"}}`, string(data))
}

func TestDecode_Invalid(t *testing.T) {
	t.Parallel()

	_, err := JSONCodec{}.Decode([]byte("not json"))
	assert.Error(t, err)

	_, err = JSONCodec{}.Decode([]byte(`{"payload":{}}`))
	assert.ErrorIs(t, err, ErrMissingType)

	_, err = ProtobufCodec{}.Decode([]byte{0xff, 0xff, 0xff})
	assert.Error(t, err)
}

func TestParsePayload(t *testing.T) {
	t.Parallel()

	msg := MustNewMessage(protocol.MsgSetName, protocol.SetNamePayload{Name: "Alice"})
	payload, err := ParsePayload[protocol.SetNamePayload](msg)
	require.NoError(t, err)
	assert.Equal(t, "Alice", payload.Name)

	// Missing payload yields the zero value
	empty, err := ParsePayload[protocol.DrawCardPayload](&protocol.Message{Type: protocol.MsgDrawCard})
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Index)

	_, err = ParsePayload[protocol.DrawCardPayload](&protocol.Message{
		Type:    protocol.MsgDrawCard,
		Payload: []byte(`{"from": 12, "index": "x"}`),
	})
	assert.Error(t, err)
}

func TestNewErrorMessage(t *testing.T) {
	t.Parallel()

	msg := NewErrorMessage(protocol.ErrCodeNotEnoughPlayer)
	assert.Equal(t, protocol.MsgErrorMsg, msg.Type)
	assert.JSONEq(t, `"Need at least 2 players to start"`, string(msg.Payload))

	unknown := NewErrorMessage(99999)
	assert.JSONEq(t, `"Unknown error"`, string(unknown.Payload))
}
