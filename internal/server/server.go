package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"

	"github.com/palemoky/old-maid/internal/config"
	"github.com/palemoky/old-maid/internal/game/room"
	"github.com/palemoky/old-maid/internal/logger"
	"github.com/palemoky/old-maid/internal/protocol/codec"
	"github.com/palemoky/old-maid/internal/server/handler"
	"github.com/palemoky/old-maid/internal/server/storage"
)

// Server WebSocket 服务器
type Server struct {
	config      *config.Config
	redis       *redis.Client // 未启用时为 nil
	store       storage.Store
	roomManager *room.RoomManager
	handler     *handler.Handler
	codec       codec.Codec
	upgrader    websocket.Upgrader

	clients   map[string]*Client
	clientsMu sync.RWMutex

	// 安全组件
	originChecker  *OriginChecker
	messageLimiter *MessageRateLimiter

	// 连接控制
	maxConnections int
	semaphore      chan struct{} // 信号量控制并发连接数

	httpServer *http.Server
	startedAt  time.Time
}

// Option 服务器配置项
type Option func(*Server)

// WithRedisClient 使用已有的 Redis 客户端（跳过按配置建连）
func WithRedisClient(rdb *redis.Client) Option {
	return func(s *Server) {
		s.redis = rdb
	}
}

// WithStore 使用指定的对局记录存储（优先于 Redis）
func WithStore(store storage.Store) Option {
	return func(s *Server) {
		s.store = store
	}
}

// NewServer 创建服务器实例
func NewServer(cfg *config.Config, opts ...Option) (*Server, error) {
	wireCodec, err := codec.ByName(cfg.Server.Codec)
	if err != nil {
		return nil, err
	}

	s := &Server{
		config:         cfg,
		codec:          wireCodec,
		clients:        make(map[string]*Client),
		originChecker:  NewOriginChecker(cfg.Server.AllowedOrigins),
		messageLimiter: NewMessageRateLimiter(cfg.Security.MessageLimit.MaxPerSecond),
		maxConnections: cfg.Server.MaxConnections,
		semaphore:      make(chan struct{}, cfg.Server.MaxConnections),
		startedAt:      time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.redis == nil && s.store == nil && cfg.Redis.Enabled {
		s.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		// 测试 Redis 连接
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.redis.Ping(ctx).Err(); err != nil {
			_ = s.redis.Close()
			return nil, fmt.Errorf("redis 连接失败: %w", err)
		}
	}
	switch {
	case s.store != nil:
	case s.redis != nil:
		s.store = storage.NewRedisStore(s.redis, cfg.Redis.HistoryLimit)
	default:
		s.store = storage.NopStore{}
	}

	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.originChecker.Check,
	}

	s.roomManager = room.NewRoomManager(cfg.Game.RoomID,
		room.WithMinPlayers(cfg.Game.MinPlayers),
		room.WithRecorder(s.store),
	)
	s.handler = handler.NewHandler(s.roomManager)

	s.httpServer = &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second, // 防止 Slowloris 攻击
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	logger.LogInfo("🔒 安全配置: 消息限制=%d/s, 最大连接数=%d, 编码=%s, 对局记录=%t",
		cfg.Security.MessageLimit.MaxPerSecond, cfg.Server.MaxConnections, wireCodec.Name(), s.redis != nil)

	return s, nil
}

// Start 启动服务器，阻塞直到关闭
func (s *Server) Start(ctx context.Context) error {
	go s.monitorStats(ctx)

	logger.LogInfo("🚀 服务器启动在 ws://%s/ws (CPU核心数: %d)", s.httpServer.Addr, runtime.NumCPU())
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// RoomManager 返回游戏服务
func (s *Server) RoomManager() *room.RoomManager {
	return s.roomManager
}
