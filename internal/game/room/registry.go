package room

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/palemoky/old-maid/internal/apperrors"
	"github.com/palemoky/old-maid/internal/game/card"
	"github.com/palemoky/old-maid/internal/logger"
	"github.com/palemoky/old-maid/internal/protocol"
	"github.com/palemoky/old-maid/internal/protocol/codec"
	"github.com/palemoky/old-maid/internal/server/storage"
	"github.com/palemoky/old-maid/internal/types"
)

// AddPlayer 为新连接创建玩家并追加到回合顺序末尾。
// 默认昵称为 Player<N>，N 为加入时的房间人数 + 1。重复加入返回已有玩家。
func (r *Room) AddPlayer(client types.ClientInterface) protocol.JoinedPayload {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p, ok := r.byConn[client.GetID()]; ok {
		return protocol.JoinedPayload{ID: p.ID, Name: p.Name}
	}

	p := &Player{
		ID:     uuid.NewString(),
		Name:   fmt.Sprintf("Player%d", len(r.players)+1),
		Hand:   []card.Card{},
		Client: client,
	}
	r.players = append(r.players, p)
	r.byConn[client.GetID()] = p
	client.SetRoom(r.ID)

	logger.WithFields(logrus.Fields{"room": r.ID, "player": p.ID, "conn": client.GetID()}).
		Infof("👤 玩家 %s 加入房间", p.Name)

	joined := protocol.JoinedPayload{ID: p.ID, Name: p.Name}
	r.sendTo(p, codec.MustNewMessage(protocol.MsgJoined, joined))
	r.broadcast(r.roomUpdateMessage())

	r.record(storage.GameEvent{Kind: storage.EventPlayerJoined, PlayerID: p.ID, PlayerName: p.Name})
	return joined
}

// RemovePlayer 移除连接对应的玩家，返回是否存在。
// 对局中离开时其手牌随之退出；若其持有回合则顺延给下一位；人数不足时回到等待状态。
func (r *Room) RemovePlayer(client types.ClientInterface) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byConn[client.GetID()]
	if !ok {
		return false
	}

	idx := r.indexOf(p.ID)
	heldTurn := r.currentTurn == p.ID
	r.players = slices.Delete(r.players, idx, idx+1)
	delete(r.byConn, client.GetID())
	client.SetRoom("")

	entry := logger.WithFields(logrus.Fields{"room": r.ID, "player": p.ID, "conn": client.GetID()})
	entry.Infof("👋 玩家 %s 离开房间", p.Name)

	reset, turnPassed := false, false
	if r.state == RoomStatePlaying {
		switch {
		case len(r.players) < r.minPlayers:
			r.resetToWaiting()
			reset = true
			entry.Info("⏸️ 人数不足，对局中止")
		case heldTurn:
			r.currentTurn = r.players[idx%len(r.players)].ID
			turnPassed = true
		}
	}

	r.broadcast(r.roomUpdateMessage())
	switch {
	case reset:
		r.pushHands(r.players...)
	case turnPassed:
		r.broadcast(r.turnUpdateMessage())
	}

	r.record(storage.GameEvent{Kind: storage.EventPlayerLeft, PlayerID: p.ID, PlayerName: p.Name})
	return true
}

// SetName 修改昵称。去除首尾空白后为空则保持原名；总是回执最终昵称。
func (r *Room) SetName(client types.ClientInterface, proposed string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byConn[client.GetID()]
	if !ok {
		return "", apperrors.ErrNotInRoom
	}

	old := p.Name
	if name := strings.TrimSpace(proposed); name != "" {
		p.Name = name
	}

	logger.WithFields(logrus.Fields{"room": r.ID, "player": p.ID}).
		Infof("✏️ 玩家昵称 '%s' -> '%s'", old, p.Name)

	r.broadcast(r.roomUpdateMessage())
	r.sendTo(p, codec.MustNewMessage(protocol.MsgNameSet, protocol.NameSetPayload{Success: true, Name: p.Name}))
	return p.Name, nil
}

func (r *Room) resetToWaiting() {
	r.state = RoomStateWaiting
	r.currentTurn = ""
	for _, p := range r.players {
		p.Hand = []card.Card{}
	}
}
