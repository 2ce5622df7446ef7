package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/skip2/go-qrcode"

	"github.com/palemoky/old-maid/internal/logger"
)

const (
	qrSize             = 320 // 手机扫码友好的尺寸
	leaderboardSize    = 10
	defaultHistorySize = 50
	maxHistorySize     = 500
)

// Router 构建 HTTP 路由
func (s *Server) Router() http.Handler {
	router := httprouter.New()
	router.GET("/ws", s.handleWebSocket)
	router.GET("/health", s.handleHealth)
	router.GET("/stats", s.handleStats)
	router.GET("/history", s.handleHistory)
	router.GET("/qr", s.handleQR)
	return LogMiddleware(logger.L())(router)
}

// LogMiddleware 记录每个 HTTP 请求的方法、路径和耗时
func LogMiddleware(log *logrus.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			log.WithFields(logrus.Fields{
				"method":   r.Method,
				"path":     r.URL.Path,
				"duration": time.Since(start),
				"remote":   GetClientIP(r),
			}).Debug("HTTP Request")
		})
	}
}

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status      string `json:"status"`
	Online      int    `json:"online"`
	Players     int    `json:"players"`
	ActiveGames int    `json:"active_games"`
	Uptime      string `json:"uptime"`
}

// handleHealth 健康检查接口
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	_, players, active := s.roomManager.Stats()
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:      "ok",
		Online:      s.GetOnlineCount(),
		Players:     players,
		ActiveGames: active,
		Uptime:      time.Since(s.startedAt).Truncate(time.Second).String(),
	})
}

// handleStats 全局统计和弃对排行榜
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	stats, err := s.store.Stats(r.Context(), leaderboardSize)
	if err != nil {
		logger.LogError("读取统计失败: %v", err)
		http.Error(w, "stats unavailable", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// handleHistory 房间最近的对局事件，?limit=N
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit := int64(defaultHistorySize)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n <= 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = min(n, maxHistorySize)
	}

	events, err := s.store.History(r.Context(), s.config.Game.RoomID, limit)
	if err != nil {
		logger.LogError("读取对局记录失败: %v", err)
		http.Error(w, "history unavailable", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

// handleQR 生成加入地址的二维码 PNG
func (s *Server) handleQR(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	png, err := qrcode.Encode(s.joinURL(r), qrcode.Medium, qrSize)
	if err != nil {
		http.Error(w, "qr generation failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}

// joinURL 优先使用配置的公开地址，否则按请求推断（兼容 TLS 和反向代理）
func (s *Server) joinURL(r *http.Request) string {
	if s.config.Server.PublicURL != "" {
		return s.config.Server.PublicURL
	}

	scheme := "ws"
	if r.TLS != nil {
		scheme = "wss"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = strings.Replace(strings.ToLower(proto), "http", "ws", 1)
	}
	return scheme + "://" + r.Host + "/ws"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.LogError("写入响应失败: %v", err)
	}
}
