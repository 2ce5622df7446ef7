package protocol

import "encoding/json"

// Message 基础消息结构
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// MessageType 消息类型
type MessageType string

// 客户端 → 服务端 消息类型
const (
	MsgPing                 MessageType = "ping"                   // 心跳 ping
	MsgSetName              MessageType = "set_name"               // 设置昵称
	MsgStartGame            MessageType = "start_game"             // 开始游戏
	MsgDrawCard             MessageType = "draw_card"              // 抽牌
	MsgRequestOpponentsHand MessageType = "request_opponents_hand" // 请求对手牌背
)

// 服务端 → 客户端 消息类型
const (
	// 连接相关
	MsgJoined MessageType = "joined" // 加入成功（连接即加入）
	MsgPong   MessageType = "pong"   // 心跳 pong

	// 房间相关
	MsgNameSet    MessageType = "name_set"    // 昵称设置结果
	MsgRoomUpdate MessageType = "room_update" // 房间成员变化

	// 游戏流程
	MsgGameStarted       MessageType = "game_started"        // 发牌完成，公开弃牌
	MsgYourHand          MessageType = "your_hand"           // 私有手牌
	MsgOpponentsSummary  MessageType = "opponents_summary"   // 全员牌数
	MsgYourOpponentsHand MessageType = "your_opponents_hand" // 对手牌背
	MsgTurnUpdate        MessageType = "turn_update"         // 回合变化
	MsgPairsDiscarded    MessageType = "pairs_discarded"     // 抽牌后配对弃牌

	// 错误
	MsgErrorMsg MessageType = "error_msg" // 错误消息（纯文本）
)

// IsClientMessage 判断是否为客户端可发送的消息类型
func (t MessageType) IsClientMessage() bool {
	switch t {
	case MsgPing, MsgSetName, MsgStartGame, MsgDrawCard, MsgRequestOpponentsHand:
		return true
	}
	return false
}
