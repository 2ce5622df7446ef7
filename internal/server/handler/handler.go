package handler

import (
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/palemoky/old-maid/internal/apperrors"
	"github.com/palemoky/old-maid/internal/game/room"
	"github.com/palemoky/old-maid/internal/logger"
	"github.com/palemoky/old-maid/internal/protocol"
	"github.com/palemoky/old-maid/internal/protocol/codec"
	"github.com/palemoky/old-maid/internal/types"
)

// Handler 消息处理器：把客户端指令分发到房间操作
type Handler struct {
	roomManager *room.RoomManager
	handlers    map[protocol.MessageType]handlerFunc
}

// handlerFunc 统一的处理器函数签名
type handlerFunc func(client types.ClientInterface, msg *protocol.Message) error

// NewHandler 创建处理器
func NewHandler(rm *room.RoomManager) *Handler {
	h := &Handler{roomManager: rm}
	h.initHandlers()
	return h
}

// initHandlers 初始化消息处理器映射
func (h *Handler) initHandlers() {
	h.handlers = map[protocol.MessageType]handlerFunc{
		// 连接
		protocol.MsgPing: h.handlePing,

		// 房间
		protocol.MsgSetName: h.handleSetName,

		// 游戏
		protocol.MsgStartGame:            h.handleStartGame,
		protocol.MsgDrawCard:             h.handleDrawCard,
		protocol.MsgRequestOpponentsHand: h.handleRequestOpponentsHand,
	}
}

// Handle 处理一条消息。每条指令独立恢复 panic，失败只回报给发送者。
func (h *Handler) Handle(client types.ClientInterface, msg *protocol.Message) {
	defer func() {
		if r := recover(); r != nil {
			logger.LogPanic(r)
			client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeUnknown))
		}
	}()

	handler, ok := h.handlers[msg.Type]
	if !msg.Type.IsClientMessage() || !ok {
		logger.WithFields(logrus.Fields{"conn": client.GetID(), "type": msg.Type}).
			Warnf("⚠️ 非客户端消息类型，Payload 长度 %d bytes", len(msg.Payload))
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	if err := handler(client, msg); err != nil {
		h.reportError(client, msg.Type, err)
	}
}

// reportError 非法指令静默忽略，其余错误以 error_msg 回报给请求者
func (h *Handler) reportError(client types.ClientInterface, msgType protocol.MessageType, err error) {
	entry := logger.WithFields(logrus.Fields{"conn": client.GetID(), "type": msgType})
	if apperrors.IsIllegal(err) {
		entry.Debugf("忽略非法指令: %v", err)
		return
	}

	var gameErr *apperrors.GameError
	if errors.As(err, &gameErr) {
		entry.Infof("指令失败: %v", err)
		client.SendMessage(codec.NewErrorMessageWithText(gameErr.Message))
		return
	}

	entry.Errorf("指令处理错误: %v", err)
	client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeUnknown))
}

// roomOf 获取连接所在房间
func (h *Handler) roomOf(client types.ClientInterface) (*room.Room, error) {
	r := h.roomManager.GetRoomForClient(client)
	if r == nil {
		return nil, apperrors.ErrNotInRoom
	}
	return r, nil
}
