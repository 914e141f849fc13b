package domain

import (
	"fmt"
	"strings"
)

// Suit is the suit of a card. Jokers carry their own suit.
type Suit uint8

const (
	SuitSpade Suit = iota + 1
	SuitHeart
	SuitClub
	SuitDiamond
	SuitJoker
)

var suitTokens = map[Suit]string{
	SuitSpade:   "spade",
	SuitHeart:   "heart",
	SuitClub:    "club",
	SuitDiamond: "diamond",
	SuitJoker:   "joker",
}

// StandardSuits lists the four non-joker suits in deck order.
var StandardSuits = []Suit{SuitSpade, SuitHeart, SuitClub, SuitDiamond}

func (s Suit) String() string {
	if tok, ok := suitTokens[s]; ok {
		return tok
	}
	return "unknown"
}

// Rank is the face value of a card. Its numeric value is the card weight (3..17).
type Rank uint8

const (
	Rank3 Rank = iota + 3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
	Rank9
	Rank10
	RankJ
	RankQ
	RankK
	RankA
	Rank2
	RankSmallJoker
	RankBigJoker
)

// MaxRunWeight is the highest weight allowed inside a straight, consecutive pairs or plane (ace).
const MaxRunWeight = int(RankA)

var rankTokens = map[Rank]string{
	Rank3: "3", Rank4: "4", Rank5: "5", Rank6: "6", Rank7: "7", Rank8: "8", Rank9: "9",
	Rank10: "10", RankJ: "J", RankQ: "Q", RankK: "K", RankA: "A", Rank2: "2",
	RankSmallJoker: "S", RankBigJoker: "B",
}

func (r Rank) String() string {
	if tok, ok := rankTokens[r]; ok {
		return tok
	}
	return "?"
}

// Card is an immutable playing card.
type Card struct {
	Suit Suit
	Rank Rank
}

var (
	SmallJoker = Card{Suit: SuitJoker, Rank: RankSmallJoker}
	BigJoker   = Card{Suit: SuitJoker, Rank: RankBigJoker}
)

// Weight orders cards 3 < 4 < ... < A < 2 < small joker < big joker.
func (c Card) Weight() int {
	return int(c.Rank)
}

// IsJoker reports whether the card is either joker.
func (c Card) IsJoker() bool {
	return c.Suit == SuitJoker
}

// ID returns the stable "<suit>_<rank>" token, e.g. "spade_10" or "joker_B".
func (c Card) ID() string {
	return c.Suit.String() + "_" + c.Rank.String()
}

func (c Card) String() string {
	return c.ID()
}

// Valid reports whether the suit/rank pair exists in a standard deck.
func (c Card) Valid() bool {
	if _, ok := suitTokens[c.Suit]; !ok {
		return false
	}
	if c.Suit == SuitJoker {
		return c.Rank == RankSmallJoker || c.Rank == RankBigJoker
	}
	return c.Rank >= Rank3 && c.Rank <= Rank2
}

// MarshalText encodes the card as its id so JSON payloads carry plain tokens.
func (c Card) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("marshal card: invalid card %d/%d", c.Suit, c.Rank)
	}
	return []byte(c.ID()), nil
}

// UnmarshalText decodes a card id.
func (c *Card) UnmarshalText(text []byte) error {
	parsed, err := ParseCard(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseCard decodes a "<suit>_<rank>" token.
func ParseCard(id string) (Card, error) {
	suitTok, rankTok, ok := strings.Cut(id, "_")
	if !ok {
		return Card{}, fmt.Errorf("parse card %q: missing separator", id)
	}

	var card Card
	for s, tok := range suitTokens {
		if tok == suitTok {
			card.Suit = s
			break
		}
	}
	for r, tok := range rankTokens {
		if tok == rankTok {
			card.Rank = r
			break
		}
	}
	if !card.Valid() {
		return Card{}, fmt.Errorf("parse card %q: unknown suit or rank", id)
	}
	return card, nil
}

// ParseCards decodes a list of ids, failing on the first bad token.
func ParseCards(ids []string) ([]Card, error) {
	cards := make([]Card, 0, len(ids))
	for _, id := range ids {
		c, err := ParseCard(id)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// CardIDs encodes cards as ids, preserving order.
func CardIDs(cards []Card) []string {
	ids := make([]string, len(cards))
	for i, c := range cards {
		ids[i] = c.ID()
	}
	return ids
}
