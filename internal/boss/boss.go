// Package boss derives the shared enemy fought each round from a boss
// card and tracks its per-fight effect-block state.
package boss

import (
	"github.com/crownfall/crownfall-server/internal/deck"
)

// Effect is the gameplay bonus a boss's suit suppresses while the boss
// remains unblocked.
type Effect int

const (
	EffectNone Effect = iota
	EffectRevive
	EffectDraw
	EffectDouble
	EffectShield
)

// Description returns the display text carried on board snapshots.
func (e Effect) Description() string {
	switch e {
	case EffectRevive:
		return "blocks reviving cards"
	case EffectDraw:
		return "blocks drawing cards"
	case EffectDouble:
		return "blocks doubling damage"
	case EffectShield:
		return "blocks protecting from damage"
	default:
		return ""
	}
}

// EffectForSuit maps a suit to the play effect it triggers.
func EffectForSuit(suit deck.Suit) Effect {
	switch suit {
	case deck.SuitHearts:
		return EffectRevive
	case deck.SuitDiamonds:
		return EffectDraw
	case deck.SuitClubs:
		return EffectDouble
	case deck.SuitSpades:
		return EffectShield
	default:
		return EffectNone
	}
}

// Boss is the shared enemy entity. EffectBlocked flips to true for the
// rest of the fight once any joker is played against it, which lifts
// the suppression of the boss's own suit effect.
type Boss struct {
	Card          deck.Card
	Health        int
	Damage        int
	Effect        Effect
	EffectBlocked bool
}

// statsForRank maps a boss rank to its starting health and damage.
var statsForRank = map[deck.Rank]struct{ health, damage int }{
	deck.RankJack:  {20, 10},
	deck.RankQueen: {30, 15},
	deck.RankKing:  {40, 20},
}

// New instantiates a boss from its card. Stats derive deterministically
// from rank, the suppressed effect from suit.
func New(card deck.Card) *Boss {
	stats := statsForRank[card.Value]
	return &Boss{
		Card:   card,
		Health: stats.health,
		Damage: stats.damage,
		Effect: EffectForSuit(card.Suit),
	}
}

// Suppresses reports whether the boss currently suppresses the given
// effect. Once EffectBlocked is set nothing is suppressed.
func (b *Boss) Suppresses(effect Effect) bool {
	return !b.EffectBlocked && b.Effect == effect
}
