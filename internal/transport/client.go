package transport

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/palemoky/old-maid/internal/protocol"
	"github.com/palemoky/old-maid/internal/protocol/codec"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	// 应用层心跳间隔（用于测量延迟）
	heartbeatInterval = 5 * time.Second
)

// ErrClosed 连接已关闭
var ErrClosed = errors.New("connection closed")

// Client WebSocket 客户端
type Client struct {
	ServerURL string
	codec     codec.Codec
	conn      *websocket.Conn
	send      chan []byte
	receive   chan *protocol.Message
	done      chan struct{}

	playerID   atomic.Value // string
	playerName atomic.Value // string
	latency    atomic.Int64 // 毫秒

	// 回调
	OnError func(error) // 读取错误回调
	OnClose func()      // 关闭回调

	mu     sync.RWMutex
	closed bool
}

// NewClient 创建客户端
func NewClient(serverURL string, c codec.Codec) *Client {
	if c == nil {
		c = codec.JSONCodec{}
	}
	return &Client{
		ServerURL: serverURL,
		codec:     c,
		send:      make(chan []byte, 256),
		receive:   make(chan *protocol.Message, 256),
		done:      make(chan struct{}),
	}
}

// Connect 连接服务器并启动读写协程
func (c *Client) Connect() error {
	dialer := websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}

	conn, _, err := dialer.Dial(c.ServerURL, nil)
	if err != nil {
		return err
	}
	c.conn = conn

	go c.readPump()
	go c.writePump()
	go c.heartbeat()

	return nil
}

// Receive 服务器推送的消息
func (c *Client) Receive() <-chan *protocol.Message {
	return c.receive
}

// SendMessage 发送消息，不阻塞
func (c *Client) SendMessage(msgType protocol.MessageType, payload any) error {
	msg, err := codec.NewMessage(msgType, payload)
	if err != nil {
		return err
	}
	data, err := c.codec.Encode(msg)
	if err != nil {
		return err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrClosed
	}
	select {
	case c.send <- data:
		return nil
	default:
		return errors.New("send buffer full")
	}
}

// SetName 设置昵称
func (c *Client) SetName(name string) error {
	return c.SendMessage(protocol.MsgSetName, protocol.SetNamePayload{Name: name})
}

// StartGame 请求开局
func (c *Client) StartGame() error {
	return c.SendMessage(protocol.MsgStartGame, nil)
}

// DrawCard 从 from 的手牌中抽第 index 张
func (c *Client) DrawCard(from string, index int) error {
	return c.SendMessage(protocol.MsgDrawCard, protocol.DrawCardPayload{From: from, Index: index})
}

// RequestOpponentsHand 请求对手牌背视图
func (c *Client) RequestOpponentsHand() error {
	return c.SendMessage(protocol.MsgRequestOpponentsHand, nil)
}

// Ping 发送应用层心跳
func (c *Client) Ping() error {
	return c.SendMessage(protocol.MsgPing, protocol.PingPayload{Timestamp: time.Now().UnixMilli()})
}

// PlayerID 服务器分配的玩家 ID
func (c *Client) PlayerID() string {
	id, _ := c.playerID.Load().(string)
	return id
}

// PlayerName 当前昵称
func (c *Client) PlayerName() string {
	name, _ := c.playerName.Load().(string)
	return name
}

// Latency 最近一次心跳的往返延迟
func (c *Client) Latency() time.Duration {
	return time.Duration(c.latency.Load()) * time.Millisecond
}

// Close 关闭连接
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	close(c.done)
	close(c.send)
}

// IsClosed 连接是否已关闭
func (c *Client) IsClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

func (c *Client) heartbeat() {
	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			if err := c.Ping(); err != nil {
				return
			}
		}
	}
}
