package convert

import (
	"github.com/palemoky/old-maid/internal/game/card"
	"github.com/palemoky/old-maid/internal/protocol"
)

var (
	suitByName = map[string]card.Suit{
		card.Spade.String():   card.Spade,
		card.Heart.String():   card.Heart,
		card.Diamond.String(): card.Diamond,
		card.Club.String():    card.Club,
		card.Joker.String():   card.Joker,
	}
	rankByName = func() map[string]card.Rank {
		m := make(map[string]card.Rank, 14)
		for r := card.RankA; r <= card.RankJoker; r++ {
			m[r.String()] = r
		}
		return m
	}()
)

// CardToInfo 将 card.Card 转换为 protocol.CardInfo
func CardToInfo(c card.Card) protocol.CardInfo {
	return protocol.CardInfo{
		ID:   c.ID,
		Suit: c.Suit.String(),
		Rank: c.Rank.String(),
	}
}

// CardsToInfos 将 []card.Card 转换为 []protocol.CardInfo，nil 输入得到空切片
func CardsToInfos(cards []card.Card) []protocol.CardInfo {
	infos := make([]protocol.CardInfo, len(cards))
	for i, c := range cards {
		infos[i] = CardToInfo(c)
	}
	return infos
}

// InfoToCard 将 protocol.CardInfo 转换为 card.Card，未知花色或点数返回 false
func InfoToCard(info protocol.CardInfo) (card.Card, bool) {
	suit, okSuit := suitByName[info.Suit]
	rank, okRank := rankByName[info.Rank]
	if !okSuit || !okRank {
		return card.Card{}, false
	}
	return card.Card{ID: info.ID, Suit: suit, Rank: rank}, true
}

// InfosToCards 将 []protocol.CardInfo 转换为 []card.Card，跳过无法识别的牌
func InfosToCards(infos []protocol.CardInfo) []card.Card {
	cards := make([]card.Card, 0, len(infos))
	for _, info := range infos {
		if c, ok := InfoToCard(info); ok {
			cards = append(cards, c)
		}
	}
	return cards
}

// CardBacks 生成 n 张牌背
func CardBacks(n int) []protocol.CardBack {
	backs := make([]protocol.CardBack, n)
	for i := range backs {
		backs[i] = protocol.CardBack{Back: true}
	}
	return backs
}
