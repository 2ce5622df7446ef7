package types

import (
	"github.com/palemoky/old-maid/internal/protocol"
)

// ClientInterface 定义客户端（连接句柄）接口。
// 连接 ID 与玩家 ID 相互独立，由房间维护映射。
type ClientInterface interface {
	GetID() string
	GetRoom() string
	SetRoom(code string)
	// SendMessage 不得阻塞：缓冲区满时丢弃或断开
	SendMessage(msg *protocol.Message)
	Close()
}
