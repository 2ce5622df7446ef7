package handler

import (
	"time"

	"github.com/palemoky/old-maid/internal/apperrors"
	"github.com/palemoky/old-maid/internal/protocol"
	"github.com/palemoky/old-maid/internal/protocol/codec"
	"github.com/palemoky/old-maid/internal/types"
)

// OnConnect 新连接建立：加入默认房间
func (h *Handler) OnConnect(client types.ClientInterface) {
	h.roomManager.Join(client)
}

// OnDisconnect 连接断开：移除玩家
func (h *Handler) OnDisconnect(client types.ClientInterface) {
	h.roomManager.Leave(client)
}

// handlePing 处理心跳消息
func (h *Handler) handlePing(client types.ClientInterface, msg *protocol.Message) error {
	payload, err := codec.ParsePayload[protocol.PingPayload](msg)
	if err != nil {
		return apperrors.ErrInvalidMessage
	}

	// 立即回复 pong
	client.SendMessage(codec.MustNewMessage(protocol.MsgPong, protocol.PongPayload{
		ClientTimestamp: payload.Timestamp,
		ServerTimestamp: time.Now().UnixMilli(),
	}))
	return nil
}
