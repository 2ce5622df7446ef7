package room

import (
	"context"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/palemoky/old-maid/internal/game/card"
	"github.com/palemoky/old-maid/internal/logger"
	"github.com/palemoky/old-maid/internal/protocol"
	"github.com/palemoky/old-maid/internal/server/storage"
	"github.com/palemoky/old-maid/internal/types"
)

const (
	defaultMinPlayers = 2
	recordTimeout     = 2 * time.Second
	recordBuffer      = 256
)

// Player 房间中的玩家。玩家 ID 与连接 ID 相互独立。
type Player struct {
	ID     string
	Name   string
	Hand   []card.Card // 只能由状态机修改
	Client types.ClientInterface
}

func (p *Player) info() protocol.PlayerInfo {
	return protocol.PlayerInfo{ID: p.ID, Name: p.Name, CardCount: len(p.Hand)}
}

// Room 游戏房间。所有状态由 mu 串行化：每条指令持锁执行到底，推送也在锁内发出。
type Room struct {
	ID string

	state       RoomState
	players     []*Player          // 加入顺序即回合顺序
	byConn      map[string]*Player // 连接 ID -> 玩家
	currentTurn string             // 当前可抽牌的玩家 ID，空表示无
	minPlayers  int
	rng         *rand.Rand
	recorder    storage.Recorder
	events      chan storage.GameEvent // 单写协程按发出顺序落库
	eventsSize  int
	closed      bool

	mu sync.Mutex
}

// Option 房间配置项
type Option func(*Room)

// WithRand 指定洗牌用的随机源
func WithRand(rng *rand.Rand) Option {
	return func(r *Room) {
		if rng != nil {
			r.rng = rng
		}
	}
}

// WithRecorder 指定对局事件记录器
func WithRecorder(rec storage.Recorder) Option {
	return func(r *Room) {
		if rec != nil {
			r.recorder = rec
		}
	}
}

// WithRecordBuffer 指定对局事件缓冲大小，写满后丢弃新事件
func WithRecordBuffer(n int) Option {
	return func(r *Room) {
		if n > 0 {
			r.eventsSize = n
		}
	}
}

// WithMinPlayers 指定开局最少人数（不小于 2）
func WithMinPlayers(n int) Option {
	return func(r *Room) {
		if n >= defaultMinPlayers {
			r.minPlayers = n
		}
	}
}

// NewRoom 创建房间
func NewRoom(id string, opts ...Option) *Room {
	r := &Room{
		ID:         id,
		state:      RoomStateWaiting,
		byConn:     make(map[string]*Player),
		minPlayers: defaultMinPlayers,
		rng:        rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		recorder:   storage.NopStore{},
		eventsSize: recordBuffer,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.events = make(chan storage.GameEvent, r.eventsSize)
	go r.recordLoop(r.recorder, r.events)
	return r
}

// Close 停止事件记录协程，已缓冲的事件会写完
func (r *Room) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.closed {
		r.closed = true
		close(r.events)
	}
}

// State 房间状态
func (r *Room) State() RoomState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// CurrentTurn 当前回合玩家 ID
func (r *Room) CurrentTurn() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.currentTurn
}

// PlayerCount 房间人数
func (r *Room) PlayerCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.players)
}

// Players 按回合顺序返回玩家公开信息
func (r *Room) Players() []protocol.PlayerInfo {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.playerInfos()
}

// PlayerIDByConn 查询连接对应的玩家 ID
func (r *Room) PlayerIDByConn(connID string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byConn[connID]
	if !ok {
		return "", false
	}
	return p.ID, true
}

// Hand 返回玩家手牌的副本
func (r *Room) Hand(playerID string) ([]card.Card, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.playerByID(playerID)
	if p == nil {
		return nil, false
	}
	return slices.Clone(p.Hand), true
}

// CardsInPlay 所有玩家手牌总数
func (r *Room) CardsInPlay() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := 0
	for _, p := range r.players {
		total += len(p.Hand)
	}
	return total
}

func (r *Room) playerByID(id string) *Player {
	for _, p := range r.players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (r *Room) indexOf(id string) int {
	return slices.IndexFunc(r.players, func(p *Player) bool { return p.ID == id })
}

// nextPlayerID 回合顺序中 id 之后的玩家（循环），id 不在房间时返回空
func (r *Room) nextPlayerID(id string) string {
	idx := r.indexOf(id)
	if idx < 0 {
		return ""
	}
	return r.players[(idx+1)%len(r.players)].ID
}

// record 将事件交给记录协程，不阻塞指令处理。调用方持有 r.mu。
func (r *Room) record(ev storage.GameEvent) {
	if r.closed {
		return
	}
	ev.Room = r.ID
	if ev.Timestamp == 0 {
		ev.Timestamp = time.Now().UnixMilli()
	}
	select {
	case r.events <- ev:
	default:
		logger.WithFields(logrus.Fields{"room": r.ID, "kind": ev.Kind}).Warn("⚠️ 记录队列已满，丢弃对局事件")
	}
}

func (r *Room) recordLoop(rec storage.Recorder, events <-chan storage.GameEvent) {
	for ev := range events {
		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		if err := rec.Record(ctx, ev); err != nil {
			logger.WithFields(logrus.Fields{"room": ev.Room, "kind": ev.Kind}).
				Warnf("⚠️ 记录对局事件失败: %v", err)
		}
		cancel()
	}
}
