package deck

import "math/rand"

// mainRanks are the ranks dealt into player hands.
var mainRanks = []Rank{
	Rank2, Rank3, Rank4, Rank5, Rank6, Rank7, Rank8, Rank9, Rank10, RankAce,
}

// bossRanks are the ranks that become bosses.
var bossRanks = []Rank{RankJack, RankQueen, RankKing}

// NewMainDeck builds the 42-card draw deck: every main rank in every
// standard suit plus the two jokers. The deck is returned unshuffled.
func NewMainDeck() []Card {
	cards := make([]Card, 0, len(mainRanks)*len(Suits)+2)
	for _, suit := range Suits {
		for _, rank := range mainRanks {
			cards = append(cards, Card{Value: rank, Suit: suit})
		}
	}
	cards = append(cards,
		Card{Value: RankJokerA, Suit: SuitJoker},
		Card{Value: RankJokerB, Suit: SuitJoker},
	)
	return cards
}

// NewBossDeck builds the 12-card boss deck: J, Q and K of every
// standard suit, unshuffled.
func NewBossDeck() []Card {
	cards := make([]Card, 0, len(bossRanks)*len(Suits))
	for _, suit := range Suits {
		for _, rank := range bossRanks {
			cards = append(cards, Card{Value: rank, Suit: suit})
		}
	}
	return cards
}

// Shuffle permutes cards in place with an unbiased Fisher-Yates pass.
func Shuffle(cards []Card) {
	rand.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
}

// Draw removes and returns the top card (slice end). ok is false when
// the pile is empty.
func Draw(pile []Card) ([]Card, Card, bool) {
	if len(pile) == 0 {
		return pile, Card{}, false
	}
	top := pile[len(pile)-1]
	return pile[:len(pile)-1], top, true
}
