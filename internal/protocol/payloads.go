package protocol

// --- 通用结构 ---

// CardInfo 牌的完整信息（只出现在私有手牌和公开弃牌中）
type CardInfo struct {
	ID   string `json:"id"`
	Suit string `json:"suit"`
	Rank string `json:"rank"`
}

// CardBack 牌背，不含牌面
type CardBack struct {
	Back bool `json:"back"`
}

// PlayerInfo 玩家公开信息
type PlayerInfo struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CardCount int    `json:"cardCount"`
}

// --- 客户端请求 Payloads ---

// PingPayload 心跳请求
type PingPayload struct {
	Timestamp int64 `json:"timestamp"` // 客户端时间戳（毫秒）
}

// SetNamePayload 设置昵称请求
type SetNamePayload struct {
	Name string `json:"name"`
}

// DrawCardPayload 抽牌请求
type DrawCardPayload struct {
	From  string `json:"from"`  // 被抽牌的玩家 ID
	Index int    `json:"index"` // 目标手牌下标
}

// --- 服务端响应 Payloads ---

// JoinedPayload 加入成功响应
type JoinedPayload struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PongPayload 心跳响应
type PongPayload struct {
	ClientTimestamp int64 `json:"client_timestamp"` // 客户端发送的时间戳
	ServerTimestamp int64 `json:"server_timestamp"` // 服务器时间戳（毫秒）
}

// NameSetPayload 昵称设置结果
type NameSetPayload struct {
	Success bool   `json:"success"`
	Name    string `json:"name"`
}

// RoomUpdatePayload 房间成员变化
type RoomUpdatePayload struct {
	Players []PlayerInfo `json:"players"`
}

// DiscardSummary 单个玩家的发牌弃牌汇总
type DiscardSummary struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Discarded []CardInfo `json:"discarded"`
}

// GameStartedPayload 游戏开始（发牌汇总）
type GameStartedPayload struct {
	PairRemovalSummary []DiscardSummary `json:"pairRemovalSummary"`
	Players            []PlayerInfo     `json:"players"`
}

// YourHandPayload 私有手牌
type YourHandPayload struct {
	Hand []CardInfo `json:"hand"`
}

// OpponentHand 对手牌背视图
type OpponentHand struct {
	ID        string     `json:"id"`
	CardCount int        `json:"cardCount"`
	Cards     []CardBack `json:"cards"`
}

// YourOpponentsHandPayload 对手牌背推送
type YourOpponentsHandPayload struct {
	OpponentsHands []OpponentHand `json:"opponentsHands"`
}

// TurnUpdatePayload 回合变化
type TurnUpdatePayload struct {
	CurrentTurn string       `json:"currentTurn"`
	TargetID    string       `json:"targetId"`
	Players     []PlayerInfo `json:"players"`
}

// PairsDiscardedPayload 抽牌后配对弃牌（公开）
type PairsDiscardedPayload struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Discarded []CardInfo `json:"discarded"`
}
