// Package ui contains the terminal client for the Old Maid room.
package ui

import (
	"time"

	"github.com/palemoky/old-maid/internal/protocol"
)

// Conn 终端界面依赖的连接能力，transport.Client 实现了该接口
type Conn interface {
	Connect() error
	Receive() <-chan *protocol.Message
	SetName(name string) error
	StartGame() error
	DrawCard(from string, index int) error
	RequestOpponentsHand() error
	Latency() time.Duration
	Close()
}

// --- tea.Msg ---

// ConnectedMsg 连接成功
type ConnectedMsg struct{}

// ConnectionErrorMsg 连接失败
type ConnectionErrorMsg struct {
	Err error
}

// DisconnectedMsg 服务器关闭了连接
type DisconnectedMsg struct{}

// ServerMessage 服务器推送
type ServerMessage struct {
	Msg *protocol.Message
}

// Phase 界面阶段
type Phase int

const (
	PhaseConnecting Phase = iota
	PhaseWaiting
	PhasePlaying
	PhaseDisconnected
)

func (p Phase) String() string {
	switch p {
	case PhaseConnecting:
		return "connecting"
	case PhaseWaiting:
		return "waiting"
	case PhasePlaying:
		return "playing"
	case PhaseDisconnected:
		return "disconnected"
	}
	return "unknown"
}

// maxLogLines 弃牌记录最多保留的行数
const maxLogLines = 8
