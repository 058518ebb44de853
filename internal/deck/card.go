package deck

import "fmt"

// Suit identifies a card's suit. The Joker suit is reserved for the two
// joker cards and never appears on a numbered card.
type Suit string

const (
	SuitHearts   Suit = "♥"
	SuitDiamonds Suit = "♦"
	SuitClubs    Suit = "♣"
	SuitSpades   Suit = "♠"
	SuitJoker    Suit = "Joker"
)

// Suits lists the four standard suits in deck-building order.
var Suits = []Suit{SuitHearts, SuitDiamonds, SuitClubs, SuitSpades}

// Rank identifies a card's rank. RankJokerA and RankJokerB are the two
// joker ranks; they carry no point value.
type Rank string

const (
	Rank2      Rank = "2"
	Rank3      Rank = "3"
	Rank4      Rank = "4"
	Rank5      Rank = "5"
	Rank6      Rank = "6"
	Rank7      Rank = "7"
	Rank8      Rank = "8"
	Rank9      Rank = "9"
	Rank10     Rank = "10"
	RankAce    Rank = "A"
	RankJack   Rank = "J"
	RankQueen  Rank = "Q"
	RankKing   Rank = "K"
	RankJokerA Rank = "0"
	RankJokerB Rank = "1"
)

// rankPoints maps the ranks that contribute to a play's point total.
// Aces, faces and jokers have no numeric value.
var rankPoints = map[Rank]int{
	Rank2: 2, Rank3: 3, Rank4: 4, Rank5: 5, Rank6: 6,
	Rank7: 7, Rank8: 8, Rank9: 9, Rank10: 10,
}

// Card is an immutable value object; two cards are equal when both rank
// and suit match.
type Card struct {
	Value Rank `json:"value"`
	Suit  Suit `json:"suit"`
}

// Points returns the card's numeric point value. ok is false for ranks
// without one (A, J, Q, K and the jokers).
func (c Card) Points() (int, bool) {
	p, ok := rankPoints[c.Value]
	return p, ok
}

// IsJoker reports whether the card is one of the two jokers.
func (c Card) IsJoker() bool {
	return c.Suit == SuitJoker
}

func (c Card) String() string {
	if c.IsJoker() {
		return fmt.Sprintf("Joker(%s)", string(c.Value))
	}
	return string(c.Value) + string(c.Suit)
}
