package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestServerURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		addr string
		want string
	}{
		{"localhost:3000", "ws://localhost:3000/ws"},
		{"cards.example.com", "ws://cards.example.com/ws"},
		{"ws://localhost:3000/ws", "ws://localhost:3000/ws"},
		{"wss://cards.example.com/ws", "wss://cards.example.com/ws"},
	}

	for _, tt := range tests {
		t.Run(tt.addr, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, serverURL(tt.addr))
		})
	}
}

func TestRun_UnknownCodec(t *testing.T) {
	t.Parallel()

	err := run(&options{server: "localhost:3000", codec: "xml"})
	assert.ErrorContains(t, err, "unknown codec")
}
