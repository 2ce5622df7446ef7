package server

import (
	"context"
	"runtime"
	"time"

	"github.com/palemoky/old-maid/internal/logger"
)

// monitorStats 定期输出服务器状态，ctx 取消时退出
func (s *Server) monitorStats(ctx context.Context) {
	period := s.config.Server.MonitorPeriodDuration()
	if period <= 0 {
		return
	}
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.logStats()
		}
	}
}

func (s *Server) logStats() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	_, players, active := s.roomManager.Stats()
	logger.LogInfo("📊 [监控] 在线: %d | 玩家: %d | 对局: %d | Goroutines: %d | 活跃连接: %d/%d | 内存: %.2f MB",
		s.GetOnlineCount(),
		players,
		active,
		runtime.NumGoroutine(),
		len(s.semaphore),
		s.maxConnections,
		float64(m.Alloc)/1024/1024)
}

// Shutdown 停止接受新连接，关闭所有客户端和 Redis
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)

	// 关闭所有客户端连接
	s.clientsMu.RLock()
	for _, client := range s.clients {
		client.Close()
	}
	s.clientsMu.RUnlock()

	s.roomManager.Close()
	if s.redis != nil {
		_ = s.redis.Close()
	}

	logger.LogInfo("服务器已关闭")
	return err
}
