package game

import "github.com/crownfall/crownfall-server/internal/deck"

// Event is an outbound notification produced by the engine. The caller
// (the session gateway) decides delivery: HandUpdate goes privately to
// one player, BoardUpdate to the whole room.
type Event interface {
	event()
}

// HandUpdate carries a player's hand after it changed.
type HandUpdate struct {
	PlayerID string
	Hand     []deck.Card
}

// BoardUpdate carries the shared board after it changed.
type BoardUpdate struct {
	Board Snapshot
}

func (HandUpdate) event()  {}
func (BoardUpdate) event() {}

// BossSnapshot is the externally visible view of the current boss.
type BossSnapshot struct {
	Value         deck.Rank `json:"value"`
	Suit          deck.Suit `json:"suit"`
	Health        int       `json:"health"`
	Damage        int       `json:"damage"`
	Effects       string    `json:"effects"`
	EffectBlocked bool      `json:"effectBlocked"`
}

// Snapshot is a consistent copy of the board for broadcast to a room.
type Snapshot struct {
	Deck        []deck.Card  `json:"deck"`
	Grave       []deck.Card  `json:"grave"`
	Table       []deck.Card  `json:"table"`
	Bosses      []deck.Card  `json:"bosses"`
	CurrentBoss BossSnapshot `json:"currentBoss"`
	PlayerTurn  string       `json:"playerTurn"`
	EndGame     bool         `json:"endGame"`
	WinGame     bool         `json:"winGame"`
}
