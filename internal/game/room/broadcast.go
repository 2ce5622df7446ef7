package room

import (
	"github.com/palemoky/old-maid/internal/protocol"
	"github.com/palemoky/old-maid/internal/protocol/codec"
	"github.com/palemoky/old-maid/internal/protocol/convert"
)

// 以下方法都要求调用方持有 r.mu。

// broadcast 广播消息给房间内所有玩家
func (r *Room) broadcast(msg *protocol.Message) {
	for _, p := range r.players {
		r.sendTo(p, msg)
	}
}

func (r *Room) sendTo(p *Player, msg *protocol.Message) {
	if p.Client != nil {
		p.Client.SendMessage(msg)
	}
}

func (r *Room) playerInfos() []protocol.PlayerInfo {
	infos := make([]protocol.PlayerInfo, len(r.players))
	for i, p := range r.players {
		infos[i] = p.info()
	}
	return infos
}

func (r *Room) roomUpdateMessage() *protocol.Message {
	return codec.MustNewMessage(protocol.MsgRoomUpdate, protocol.RoomUpdatePayload{Players: r.playerInfos()})
}

func (r *Room) opponentsSummaryMessage() *protocol.Message {
	return codec.MustNewMessage(protocol.MsgOpponentsSummary, r.playerInfos())
}

func (r *Room) turnUpdateMessage() *protocol.Message {
	return codec.MustNewMessage(protocol.MsgTurnUpdate, protocol.TurnUpdatePayload{
		CurrentTurn: r.currentTurn,
		TargetID:    r.nextPlayerID(r.currentTurn),
		Players:     r.playerInfos(),
	})
}

// opponentsHandMessage 观察者视角：除自己外每位玩家的牌数和牌背，不含牌面
func (r *Room) opponentsHandMessage(viewer *Player) *protocol.Message {
	hands := make([]protocol.OpponentHand, 0, len(r.players))
	for _, p := range r.players {
		if p == viewer {
			continue
		}
		hands = append(hands, protocol.OpponentHand{
			ID:        p.ID,
			CardCount: len(p.Hand),
			Cards:     convert.CardBacks(len(p.Hand)),
		})
	}
	return codec.MustNewMessage(protocol.MsgYourOpponentsHand, protocol.YourOpponentsHandPayload{OpponentsHands: hands})
}

// pushHands 私发手牌，只发给手牌的主人
func (r *Room) pushHands(players ...*Player) {
	for _, p := range players {
		r.sendTo(p, codec.MustNewMessage(protocol.MsgYourHand, protocol.YourHandPayload{Hand: convert.CardsToInfos(p.Hand)}))
	}
}

func (r *Room) pushOpponentsHands() {
	for _, p := range r.players {
		r.sendTo(p, r.opponentsHandMessage(p))
	}
}
