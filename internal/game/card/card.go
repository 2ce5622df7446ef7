package card

import (
	"fmt"
	"math/rand/v2"
	"strconv"
)

// DeckSize 一副牌的张数：52 张标准牌 + 1 张鬼牌
const DeckSize = 53

// Suit 定义花色
type Suit int

// Rank 定义点数
type Rank int

// Card 定义一张牌，创建后不可变
type Card struct {
	ID   string
	Suit Suit
	Rank Rank
}

const (
	Spade   Suit = iota // 黑桃
	Heart               // 红心
	Diamond             // 方块
	Club                // 梅花
	Joker               // 鬼牌
)

// suitSymbols 花色符号映射表
var suitSymbols = map[Suit]string{
	Spade:   "♠",
	Heart:   "♥",
	Diamond: "♦",
	Club:    "♣",
	Joker:   "joker",
}

func (s Suit) String() string {
	if symbol, ok := suitSymbols[s]; ok {
		return symbol
	}
	return ""
}

const (
	RankA Rank = iota + 1
	Rank2
	Rank3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
	Rank9
	Rank10
	RankJ // Jack
	RankQ // Queen
	RankK // King
	RankJoker
)

// rankNames 牌面值字符串映射表
var rankNames = map[Rank]string{
	RankA:     "A",
	Rank2:     "2",
	Rank3:     "3",
	Rank4:     "4",
	Rank5:     "5",
	Rank6:     "6",
	Rank7:     "7",
	Rank8:     "8",
	Rank9:     "9",
	Rank10:    "10",
	RankJ:     "J",
	RankQ:     "Q",
	RankK:     "K",
	RankJoker: "JOKER",
}

func (r Rank) String() string {
	if name, ok := rankNames[r]; ok {
		return name
	}
	return strconv.Itoa(int(r))
}

// IsJoker 是否为鬼牌
func (c Card) IsJoker() bool {
	return c.Rank == RankJoker
}

func (c Card) String() string {
	if c.IsJoker() {
		return "🃏"
	}
	return c.Suit.String() + c.Rank.String()
}

// Deck 定义一副牌
type Deck []Card

// NewDeck 按 ♠♥♦♣、A..K 的顺序构造 52 张标准牌，最后追加鬼牌。
// ID 按构造顺序分配为 c1..c53。
func NewDeck() Deck {
	deck := make(Deck, 0, DeckSize)
	next := 1
	for s := Spade; s <= Club; s++ {
		for r := RankA; r <= RankK; r++ {
			deck = append(deck, Card{ID: cardID(next), Suit: s, Rank: r})
			next++
		}
	}
	deck = append(deck, Card{ID: cardID(next), Suit: Joker, Rank: RankJoker})
	return deck
}

func cardID(n int) string {
	return fmt.Sprintf("c%d", n)
}

// Shuffle 原地洗牌（Fisher–Yates）：从最后一个位置向前，与 [0, i] 中均匀选出的位置交换
func (d Deck) Shuffle(r *rand.Rand) {
	for i := len(d) - 1; i > 0; i-- {
		j := r.IntN(i + 1)
		d[i], d[j] = d[j], d[i]
	}
}
