package room

import (
	"sync"

	"github.com/palemoky/old-maid/internal/types"
)

// RoomManager 房间管理器（游戏服务）。当前只有一个默认房间，所有连接都加入其中。
type RoomManager struct {
	lobbyID string
	rooms   map[string]*Room
	mu      sync.RWMutex
}

// NewRoomManager 创建房间管理器并建立默认房间
func NewRoomManager(lobbyID string, opts ...Option) *RoomManager {
	rm := &RoomManager{
		lobbyID: lobbyID,
		rooms:   make(map[string]*Room),
	}
	rm.rooms[lobbyID] = NewRoom(lobbyID, opts...)
	return rm
}

// Lobby 默认房间
func (rm *RoomManager) Lobby() *Room {
	return rm.GetRoom(rm.lobbyID)
}

// GetRoom 获取房间，不存在返回 nil
func (rm *RoomManager) GetRoom(code string) *Room {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	return rm.rooms[code]
}

// GetRoomForClient 获取连接所在的房间
func (rm *RoomManager) GetRoomForClient(client types.ClientInterface) *Room {
	code := client.GetRoom()
	if code == "" {
		return nil
	}
	return rm.GetRoom(code)
}

// Join 新连接加入默认房间
func (rm *RoomManager) Join(client types.ClientInterface) *Room {
	lobby := rm.Lobby()
	lobby.AddPlayer(client)
	return lobby
}

// Leave 连接断开时移除其玩家
func (rm *RoomManager) Leave(client types.ClientInterface) {
	if room := rm.GetRoomForClient(client); room != nil {
		room.RemovePlayer(client)
	}
}

// Stats 房间数、玩家数、进行中的对局数
func (rm *RoomManager) Stats() (rooms, players, activeGames int) {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	for _, r := range rm.rooms {
		rooms++
		players += r.PlayerCount()
		if r.State() == RoomStatePlaying {
			activeGames++
		}
	}
	return rooms, players, activeGames
}

// Close 关闭所有房间的事件记录
func (rm *RoomManager) Close() {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	for _, r := range rm.rooms {
		r.Close()
	}
}
