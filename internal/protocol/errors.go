package protocol

// 错误码
const (
	ErrCodeUnknown         = 1000
	ErrCodeInvalidMsg      = 1001
	ErrCodeRateLimit       = 1002 // 速率限制
	ErrCodeRateWarning     = 1003 // 接近速率上限
	ErrCodeNotInRoom       = 2003
	ErrCodeNotEnoughPlayer = 3001 // 人数不足
	ErrCodeNotYourTurn     = 3002
	ErrCodePlayerNotFound  = 3003
	ErrCodeInvalidIndex    = 3004
)

// ErrorMessages 错误码对应的消息
var ErrorMessages = map[int]string{
	ErrCodeUnknown:         "Unknown error",
	ErrCodeInvalidMsg:      "Invalid message",
	ErrCodeRateLimit:       "Too many requests",
	ErrCodeRateWarning:     "Slow down, approaching the message limit",
	ErrCodeNotInRoom:       "You are not in the room",
	ErrCodeNotEnoughPlayer: "Need at least 2 players to start",
	ErrCodeNotYourTurn:     "It is not your turn",
	ErrCodePlayerNotFound:  "Player not found",
	ErrCodeInvalidIndex:    "Invalid card index",
}
