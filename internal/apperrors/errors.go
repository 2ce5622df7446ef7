package apperrors

import (
	"errors"

	"github.com/palemoky/old-maid/internal/protocol"
)

// GameError 游戏错误
type GameError struct {
	Code    int
	Message string
	// Silent 为 true 的错误属于非法指令：静默忽略，不回显给客户端
	Silent bool
}

func (e *GameError) Error() string {
	return e.Message
}

// 预定义错误
var (
	// 前置条件不满足，报告给请求者
	ErrNotEnoughPlayers = &GameError{Code: protocol.ErrCodeNotEnoughPlayer, Message: protocol.ErrorMessages[protocol.ErrCodeNotEnoughPlayer]}
	ErrNotInRoom        = &GameError{Code: protocol.ErrCodeNotInRoom, Message: protocol.ErrorMessages[protocol.ErrCodeNotInRoom]}
	ErrInvalidMessage   = &GameError{Code: protocol.ErrCodeInvalidMsg, Message: protocol.ErrorMessages[protocol.ErrCodeInvalidMsg]}

	// 非法指令，静默忽略
	ErrNotYourTurn      = &GameError{Code: protocol.ErrCodeNotYourTurn, Message: protocol.ErrorMessages[protocol.ErrCodeNotYourTurn], Silent: true}
	ErrPlayerNotFound   = &GameError{Code: protocol.ErrCodePlayerNotFound, Message: protocol.ErrorMessages[protocol.ErrCodePlayerNotFound], Silent: true}
	ErrInvalidCardIndex = &GameError{Code: protocol.ErrCodeInvalidIndex, Message: protocol.ErrorMessages[protocol.ErrCodeInvalidIndex], Silent: true}
)

// IsIllegal 判断错误是否为应静默忽略的非法指令
func IsIllegal(err error) bool {
	var gameErr *GameError
	return errors.As(err, &gameErr) && gameErr.Silent
}
