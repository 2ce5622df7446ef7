package server

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"

	"github.com/palemoky/old-maid/internal/logger"
)

// handleWebSocket 处理 WebSocket 连接：建立即加入房间
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	clientIP := GetClientIP(r)
	entry := logger.WithFields(logrus.Fields{"remote": clientIP})

	// 连接数限制检查
	select {
	case s.semaphore <- struct{}{}:
	default:
		entry.Warnf("🚫 达到最大连接数限制 (%d)", s.maxConnections)
		http.Error(w, "Server Full", http.StatusServiceUnavailable)
		return
	}

	// 来源验证失败时 Upgrade 会返回 403
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		<-s.semaphore
		entry.Warnf("WebSocket 升级失败: %v (Origin: %s)", err, r.Header.Get("Origin"))
		return
	}

	client := NewClient(s, conn)
	client.IP = clientIP
	s.registerClient(client)

	entry.WithField("conn", client.ID).Info("✅ 连接已建立")

	// 加入房间的回执在写协程启动前进入缓冲区
	s.handler.OnConnect(client)

	go client.WritePump()
	go func() {
		defer func() { <-s.semaphore }()
		client.ReadPump()
	}()
}

// registerClient 注册客户端
func (s *Server) registerClient(client *Client) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	s.clients[client.ID] = client
}

// unregisterClient 注销客户端
func (s *Server) unregisterClient(client *Client) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()

	if _, ok := s.clients[client.ID]; ok {
		delete(s.clients, client.ID)
		client.log().Info("❌ 连接已断开")
	}
}
