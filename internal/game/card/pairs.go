package card

// pairKey 配对键：点数相同即可配对，鬼牌以自身 ID 为键，永远无法配对
func pairKey(c Card) string {
	if c.IsJoker() {
		return "id:" + c.ID
	}
	return "rank:" + c.Rank.String()
}

// ResolvePairs 消除手牌中的对子。
// 每组同键的牌：偶数张全部弃掉；奇数张保留最后一张，其余弃掉。
// kept 按各组首次出现的顺序排列；输入切片不会被修改。
func ResolvePairs(hand []Card) (kept, discarded []Card) {
	order := make([]string, 0, len(hand))
	groups := make(map[string][]Card, len(hand))
	for _, c := range hand {
		key := pairKey(c)
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], c)
	}

	kept = make([]Card, 0, len(order))
	discarded = make([]Card, 0, len(hand))
	for _, key := range order {
		cards := groups[key]
		if len(cards)%2 == 0 {
			discarded = append(discarded, cards...)
			continue
		}
		discarded = append(discarded, cards[:len(cards)-1]...)
		kept = append(kept, cards[len(cards)-1])
	}
	return kept, discarded
}
