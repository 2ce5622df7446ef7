package room

import (
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/palemoky/old-maid/internal/apperrors"
	"github.com/palemoky/old-maid/internal/game/card"
	"github.com/palemoky/old-maid/internal/logger"
	"github.com/palemoky/old-maid/internal/protocol"
	"github.com/palemoky/old-maid/internal/protocol/codec"
	"github.com/palemoky/old-maid/internal/protocol/convert"
	"github.com/palemoky/old-maid/internal/server/storage"
	"github.com/palemoky/old-maid/internal/types"
)

// StartGame 开局：清空手牌，洗牌后轮流发完整副牌，每位玩家各自消对，首位玩家先手。
// 对局中再次调用会重新发牌。
func (r *Room) StartGame(client types.ClientInterface) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byConn[client.GetID()]; !ok {
		return apperrors.ErrNotInRoom
	}
	if len(r.players) < r.minPlayers {
		return apperrors.ErrNotEnoughPlayers
	}

	r.state = RoomStatePlaying
	for _, p := range r.players {
		p.Hand = make([]card.Card, 0, card.DeckSize/len(r.players)+1)
	}
	r.currentTurn = r.players[0].ID

	deck := card.NewDeck()
	deck.Shuffle(r.rng)
	deal(deck, r.players)

	summary := make([]protocol.DiscardSummary, 0, len(r.players))
	discards := make([][]card.Card, len(r.players))
	for i, p := range r.players {
		kept, discarded := card.ResolvePairs(p.Hand)
		p.Hand = kept
		discards[i] = discarded
		summary = append(summary, protocol.DiscardSummary{
			ID:        p.ID,
			Name:      p.Name,
			Discarded: convert.CardsToInfos(discarded),
		})
	}

	logger.WithFields(logrus.Fields{"room": r.ID, "players": len(r.players)}).Info("🎮 对局开始")

	r.pushHands(r.players...)
	r.broadcast(codec.MustNewMessage(protocol.MsgGameStarted, protocol.GameStartedPayload{
		PairRemovalSummary: summary,
		Players:            r.playerInfos(),
	}))
	r.broadcast(r.opponentsSummaryMessage())
	r.pushOpponentsHands()
	r.broadcast(r.roomUpdateMessage())
	r.broadcast(r.turnUpdateMessage())

	r.record(storage.GameEvent{Kind: storage.EventGameStarted, Players: len(r.players)})
	for i, p := range r.players {
		if len(discards[i]) > 0 {
			r.recordDiscards(p, discards[i])
		}
	}
	return nil
}

// deal 从第一位玩家开始逐张轮流发牌直到发完
func deal(deck card.Deck, players []*Player) {
	for i, c := range deck {
		p := players[i%len(players)]
		p.Hand = append(p.Hand, c)
	}
}

// DrawCard 抽牌事务：当前回合玩家从 from 的手牌中抽走第 index 张，
// 消对后回合顺延给请求者的下一位。非法指令返回静默错误且不改变任何状态。
func (r *Room) DrawCard(client types.ClientInterface, from string, index int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	requester, ok := r.byConn[client.GetID()]
	if !ok || r.state != RoomStatePlaying || requester.ID != r.currentTurn {
		return apperrors.ErrNotYourTurn
	}
	target := r.playerByID(from)
	if target == nil {
		return apperrors.ErrPlayerNotFound
	}
	if index < 0 || index >= len(target.Hand) {
		return apperrors.ErrInvalidCardIndex
	}

	drawn := target.Hand[index]
	target.Hand = slices.Delete(target.Hand, index, index+1)
	requester.Hand = append(requester.Hand, drawn)

	kept, discarded := card.ResolvePairs(requester.Hand)
	requester.Hand = kept

	r.currentTurn = r.players[(r.indexOf(requester.ID)+1)%len(r.players)].ID

	logger.WithFields(logrus.Fields{"room": r.ID, "player": requester.ID, "target": target.ID}).
		Debugf("🃏 %s 从 %s 抽牌，弃 %d 张", requester.Name, target.Name, len(discarded))

	// 私有手牌先于房间广播
	r.pushHands(requester, target)
	if len(discarded) > 0 {
		r.broadcast(codec.MustNewMessage(protocol.MsgPairsDiscarded, protocol.PairsDiscardedPayload{
			ID:        requester.ID,
			Name:      requester.Name,
			Discarded: convert.CardsToInfos(discarded),
		}))
	}
	r.pushOpponentsHands()
	r.broadcast(r.opponentsSummaryMessage())
	r.broadcast(r.roomUpdateMessage())
	r.broadcast(r.turnUpdateMessage())

	r.record(storage.GameEvent{
		Kind:       storage.EventCardDrawn,
		PlayerID:   requester.ID,
		PlayerName: requester.Name,
		TargetID:   target.ID,
	})
	if len(discarded) > 0 {
		r.recordDiscards(requester, discarded)
	}
	return nil
}

// SendOpponentsHand 向请求者推送对手牌背视图
func (r *Room) SendOpponentsHand(client types.ClientInterface) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byConn[client.GetID()]
	if !ok {
		return apperrors.ErrNotInRoom
	}
	r.sendTo(p, r.opponentsHandMessage(p))
	return nil
}

func (r *Room) recordDiscards(p *Player, discarded []card.Card) {
	ids := make([]string, len(discarded))
	for i, c := range discarded {
		ids[i] = c.ID
	}
	r.record(storage.GameEvent{
		Kind:       storage.EventPairsDiscarded,
		PlayerID:   p.ID,
		PlayerName: p.Name,
		Cards:      ids,
	})
}
