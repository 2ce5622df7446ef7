package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// Redis key 前缀
	historyKeyPrefix = "oldmaid:history:"
	statsKey         = "oldmaid:stats"
	leaderboardKey   = "oldmaid:leaderboard:pairs"

	// 统计字段
	fieldGamesStarted   = "games_started"
	fieldDraws          = "draws"
	fieldCardsDiscarded = "cards_discarded"
	fieldPlayersJoined  = "players_joined"
)

// EventKind 对局事件类型
type EventKind string

const (
	EventPlayerJoined   EventKind = "player_joined"
	EventPlayerLeft     EventKind = "player_left"
	EventGameStarted    EventKind = "game_started"
	EventCardDrawn      EventKind = "card_drawn"
	EventPairsDiscarded EventKind = "pairs_discarded"
)

// GameEvent 对局事件记录
type GameEvent struct {
	Room       string    `json:"room"`
	Kind       EventKind `json:"kind"`
	PlayerID   string    `json:"player_id,omitempty"`
	PlayerName string    `json:"player_name,omitempty"`
	TargetID   string    `json:"target_id,omitempty"`
	Cards      []string  `json:"cards,omitempty"`   // 公开的牌（弃牌）
	Players    int       `json:"players,omitempty"` // 开局人数
	Timestamp  int64     `json:"timestamp"`
}

// LeaderboardEntry 排行榜条目（按累计弃掉的对子数）
type LeaderboardEntry struct {
	Rank       int    `json:"rank"`
	PlayerName string `json:"player_name"`
	Pairs      int64  `json:"pairs"`
}

// Stats 全局统计
type Stats struct {
	GamesStarted   int64              `json:"games_started"`
	Draws          int64              `json:"draws"`
	CardsDiscarded int64              `json:"cards_discarded"`
	PlayersJoined  int64              `json:"players_joined"`
	Leaderboard    []LeaderboardEntry `json:"leaderboard"`
}

// Recorder 对局事件记录器
type Recorder interface {
	Record(ctx context.Context, ev GameEvent) error
}

// Store 对局记录的读写接口
type Store interface {
	Recorder
	History(ctx context.Context, room string, limit int64) ([]GameEvent, error)
	Stats(ctx context.Context, top int64) (*Stats, error)
}

// RedisStore Redis 存储
type RedisStore struct {
	client       *redis.Client
	historyLimit int64
}

// NewRedisStore 创建 Redis 存储
func NewRedisStore(client *redis.Client, historyLimit int64) *RedisStore {
	if historyLimit <= 0 {
		historyLimit = 500
	}
	return &RedisStore{client: client, historyLimit: historyLimit}
}

// Record 追加事件到房间记录，并更新统计和排行榜
func (rs *RedisStore) Record(ctx context.Context, ev GameEvent) error {
	if ev.Timestamp == 0 {
		ev.Timestamp = time.Now().UnixMilli()
	}
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("序列化事件失败: %w", err)
	}

	key := historyKeyPrefix + ev.Room
	pipe := rs.client.TxPipeline()
	pipe.RPush(ctx, key, data)
	pipe.LTrim(ctx, key, -rs.historyLimit, -1)

	switch ev.Kind {
	case EventGameStarted:
		pipe.HIncrBy(ctx, statsKey, fieldGamesStarted, 1)
	case EventCardDrawn:
		pipe.HIncrBy(ctx, statsKey, fieldDraws, 1)
	case EventPlayerJoined:
		pipe.HIncrBy(ctx, statsKey, fieldPlayersJoined, 1)
	case EventPairsDiscarded:
		pipe.HIncrBy(ctx, statsKey, fieldCardsDiscarded, int64(len(ev.Cards)))
		if ev.PlayerName != "" && len(ev.Cards) >= 2 {
			pipe.ZIncrBy(ctx, leaderboardKey, float64(len(ev.Cards)/2), ev.PlayerName)
		}
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("写入对局记录失败: %w", err)
	}
	return nil
}

// History 获取房间最近的事件，limit <= 0 时返回全部保留记录
func (rs *RedisStore) History(ctx context.Context, room string, limit int64) ([]GameEvent, error) {
	start := int64(0)
	if limit > 0 {
		start = -limit
	}
	raw, err := rs.client.LRange(ctx, historyKeyPrefix+room, start, -1).Result()
	if err != nil {
		return nil, err
	}

	events := make([]GameEvent, 0, len(raw))
	for _, item := range raw {
		var ev GameEvent
		if err := json.Unmarshal([]byte(item), &ev); err != nil {
			return nil, fmt.Errorf("反序列化事件失败: %w", err)
		}
		events = append(events, ev)
	}
	return events, nil
}

// Stats 获取全局统计和前 top 名排行榜
func (rs *RedisStore) Stats(ctx context.Context, top int64) (*Stats, error) {
	fields, err := rs.client.HGetAll(ctx, statsKey).Result()
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		GamesStarted:   parseCount(fields[fieldGamesStarted]),
		Draws:          parseCount(fields[fieldDraws]),
		CardsDiscarded: parseCount(fields[fieldCardsDiscarded]),
		PlayersJoined:  parseCount(fields[fieldPlayersJoined]),
		Leaderboard:    []LeaderboardEntry{},
	}

	if top <= 0 {
		return stats, nil
	}
	entries, err := rs.client.ZRevRangeWithScores(ctx, leaderboardKey, 0, top-1).Result()
	if err != nil {
		return nil, err
	}
	for i, z := range entries {
		name, _ := z.Member.(string)
		stats.Leaderboard = append(stats.Leaderboard, LeaderboardEntry{
			Rank:       i + 1,
			PlayerName: name,
			Pairs:      int64(z.Score),
		})
	}
	return stats, nil
}

func parseCount(s string) int64 {
	n, _ := strconv.ParseInt(s, 10, 64)
	return n
}

// NopStore 未启用 Redis 时使用的空实现
type NopStore struct{}

func (NopStore) Record(context.Context, GameEvent) error { return nil }

func (NopStore) History(context.Context, string, int64) ([]GameEvent, error) {
	return []GameEvent{}, nil
}

func (NopStore) Stats(context.Context, int64) (*Stats, error) {
	return &Stats{Leaderboard: []LeaderboardEntry{}}, nil
}
