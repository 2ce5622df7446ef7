package handler

import (
	"github.com/palemoky/old-maid/internal/apperrors"
	"github.com/palemoky/old-maid/internal/protocol"
	"github.com/palemoky/old-maid/internal/protocol/codec"
	"github.com/palemoky/old-maid/internal/types"
)

// handleSetName 处理设置昵称
func (h *Handler) handleSetName(client types.ClientInterface, msg *protocol.Message) error {
	payload, err := codec.ParsePayload[protocol.SetNamePayload](msg)
	if err != nil {
		return apperrors.ErrInvalidMessage
	}
	r, err := h.roomOf(client)
	if err != nil {
		return err
	}
	_, err = r.SetName(client, payload.Name)
	return err
}

// handleStartGame 处理开始游戏
func (h *Handler) handleStartGame(client types.ClientInterface, _ *protocol.Message) error {
	r, err := h.roomOf(client)
	if err != nil {
		return err
	}
	return r.StartGame(client)
}

// handleDrawCard 处理抽牌
func (h *Handler) handleDrawCard(client types.ClientInterface, msg *protocol.Message) error {
	payload, err := codec.ParsePayload[protocol.DrawCardPayload](msg)
	if err != nil {
		// 格式错误的抽牌指令同样视为误触
		return apperrors.ErrInvalidCardIndex
	}
	r, err := h.roomOf(client)
	if err != nil {
		return err
	}
	return r.DrawCard(client, payload.From, payload.Index)
}

// handleRequestOpponentsHand 处理请求对手牌背视图
func (h *Handler) handleRequestOpponentsHand(client types.ClientInterface, _ *protocol.Message) error {
	r, err := h.roomOf(client)
	if err != nil {
		return err
	}
	return r.SendOpponentsHand(client)
}
