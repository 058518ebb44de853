// Package game implements the turn engine for a cooperative boss fight:
// players take turns playing cards from their hands against a shared
// boss until every boss is defeated or the deck runs dry.
package game

import (
	"errors"

	"go.uber.org/zap"

	"github.com/crownfall/crownfall-server/internal/boss"
	"github.com/crownfall/crownfall-server/internal/deck"
)

var (
	ErrGameStarted      = errors.New("game already started")
	ErrNotStarted       = errors.New("game not started")
	ErrGameOver         = errors.New("game is over")
	ErrNotEnoughPlayers = errors.New("not enough players")
	ErrTableFull        = errors.New("table is full")
	ErrNotYourTurn      = errors.New("not your turn")
)

// Rules holds the tunable limits of a session.
type Rules struct {
	MinPlayers int
	MaxPlayers int
	HandSize   int
}

// DefaultRules returns the standard 2-6 player, 5-card game.
func DefaultRules() Rules {
	return Rules{MinPlayers: 2, MaxPlayers: 6, HandSize: 5}
}

// Player is a seated participant. The ID is the connection identity
// issued by the gateway and never changes for the session's lifetime.
type Player struct {
	ID   string
	Hand []deck.Card
}

// Board is the shared game state all players act on. Deck and Bosses
// are draw piles (top = slice end); Grave collects spent cards; Table
// holds the cards played against the current boss.
type Board struct {
	Deck   []deck.Card
	Grave  []deck.Card
	Table  []deck.Card
	Bosses []deck.Card
	Boss   *boss.Boss
}

// Game is one room's state machine. It performs no locking of its own;
// the owning room serializes access.
type Game struct {
	rules   Rules
	logger  *zap.Logger
	players []*Player

	board     Board
	turnIndex int
	started   bool
	over      bool
	won       bool
}

// New creates an empty lobby-state game.
func New(rules Rules, logger *zap.Logger) *Game {
	return &Game{rules: rules, logger: logger}
}

// AddPlayer seats a new player. Fails once the game has started or the
// table is full.
func (g *Game) AddPlayer(id string) error {
	if g.started {
		return ErrGameStarted
	}
	if len(g.players) >= g.rules.MaxPlayers {
		return ErrTableFull
	}
	g.players = append(g.players, &Player{ID: id})
	return nil
}

// PlayerIDs returns the roster in seating order.
func (g *Game) PlayerIDs() []string {
	ids := make([]string, len(g.players))
	for i, p := range g.players {
		ids[i] = p.ID
	}
	return ids
}

// PlayerCount returns the number of seated players.
func (g *Game) PlayerCount() int { return len(g.players) }

// Started reports whether the game left the lobby.
func (g *Game) Started() bool { return g.started }

// Over reports whether the game reached a terminal state.
func (g *Game) Over() bool { return g.over }

// Won reports whether the terminal state was a victory.
func (g *Game) Won() bool { return g.won }

// CurrentPlayer returns the ID of the player who owns the turn.
func (g *Game) CurrentPlayer() string {
	if !g.started || len(g.players) == 0 {
		return ""
	}
	return g.players[g.turnIndex].ID
}

// Start deals the opening state: shuffled main deck, shuffled boss
// pile with the first boss revealed, a hand per player, turn to seat 0.
// Dealing stops silently if the deck empties, so late seats may start
// short-handed.
func (g *Game) Start() ([]Event, error) {
	if g.started {
		return nil, ErrGameStarted
	}
	if len(g.players) < g.rules.MinPlayers {
		return nil, ErrNotEnoughPlayers
	}
	g.started = true

	g.board.Deck = deck.NewMainDeck()
	deck.Shuffle(g.board.Deck)

	bosses := deck.NewBossDeck()
	deck.Shuffle(bosses)
	var first deck.Card
	bosses, first, _ = deck.Draw(bosses)
	g.board.Bosses = bosses
	g.board.Boss = boss.New(first)

	for _, p := range g.players {
		for i := 0; i < g.rules.HandSize; i++ {
			rest, card, ok := deck.Draw(g.board.Deck)
			if !ok {
				break
			}
			g.board.Deck = rest
			p.Hand = append(p.Hand, card)
		}
	}

	g.turnIndex = 0

	g.logger.Info("game started",
		zap.Int("players", len(g.players)),
		zap.String("first_turn", g.players[0].ID),
		zap.String("boss", g.board.Boss.Card.String()),
	)

	events := make([]Event, 0, len(g.players)+1)
	for _, p := range g.players {
		events = append(events, HandUpdate{PlayerID: p.ID, Hand: cloneCards(p.Hand)})
	}
	events = append(events, BoardUpdate{Board: g.Snapshot()})
	return events, nil
}

// PlayTurn resolves one play by the active player. Cards not actually
// held are ignored; duplicates in the submission match at most one hand
// card each. A rejected call mutates nothing.
func (g *Game) PlayTurn(playerID string, cards []deck.Card) ([]Event, error) {
	if !g.started {
		return nil, ErrNotStarted
	}
	if g.over {
		return nil, ErrGameOver
	}
	actor := g.players[g.turnIndex]
	if actor.ID != playerID {
		return nil, ErrNotYourTurn
	}

	played := g.takeFromHand(actor, cards)
	g.board.Table = append(g.board.Table, played...)

	totalPoints := 0
	jokerPlayed := false
	playedSuits := make(map[deck.Suit]bool)
	for _, c := range played {
		if c.IsJoker() {
			jokerPlayed = true
			continue
		}
		playedSuits[c.Suit] = true
		if p, ok := c.Points(); ok {
			totalPoints += p
		}
	}

	doubleDamage := false
	drawnBy := make(map[string]bool)
	if jokerPlayed {
		// A joker cancels all suit effects this turn and unblocks the
		// boss's suppression for the rest of the fight.
		g.board.Boss.EffectBlocked = true
		g.logger.Debug("joker played, boss effect lifted",
			zap.String("player", playerID))
	} else {
		for _, suit := range deck.Suits {
			if !playedSuits[suit] {
				continue
			}
			effect := boss.EffectForSuit(suit)
			if g.board.Boss.Suppresses(effect) {
				continue
			}
			switch effect {
			case boss.EffectRevive:
				g.reviveFromGrave(totalPoints)
			case boss.EffectDraw:
				g.dealRoundRobin(totalPoints, drawnBy)
			case boss.EffectDouble:
				doubleDamage = true
			case boss.EffectShield:
				g.board.Boss.Damage -= totalPoints
				if g.board.Boss.Damage < 0 {
					g.board.Boss.Damage = 0
				}
			}
		}
	}

	damage := totalPoints
	if doubleDamage {
		damage *= 2
	}
	g.board.Boss.Health -= damage

	if g.board.Boss.Health <= 0 {
		g.resolveBossDefeat()
	}

	if !g.over {
		g.turnIndex = (g.turnIndex + 1) % len(g.players)
		if g.deckExhausted() {
			g.over = true
			g.logger.Info("deck exhausted with a boss standing, game lost")
		}
	}

	events := make([]Event, 0, len(drawnBy)+2)
	events = append(events, HandUpdate{PlayerID: actor.ID, Hand: cloneCards(actor.Hand)})
	for _, p := range g.players {
		if p.ID != actor.ID && drawnBy[p.ID] {
			events = append(events, HandUpdate{PlayerID: p.ID, Hand: cloneCards(p.Hand)})
		}
	}
	events = append(events, BoardUpdate{Board: g.Snapshot()})
	return events, nil
}

// RemovePlayer unseats a player, reassigning the turn by identity: if
// the leaver held the turn it passes to the next survivor in seating
// order. Returns false if the player was not seated.
func (g *Game) RemovePlayer(id string) bool {
	idx := -1
	for i, p := range g.players {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return false
	}

	current := ""
	if g.started && len(g.players) > 0 {
		current = g.players[g.turnIndex].ID
	}

	g.players = append(g.players[:idx], g.players[idx+1:]...)
	if len(g.players) == 0 {
		return true
	}

	if current == id {
		g.turnIndex = idx % len(g.players)
	} else if current != "" {
		for i, p := range g.players {
			if p.ID == current {
				g.turnIndex = i
				break
			}
		}
	}
	return true
}

// Hand returns a copy of the given player's hand.
func (g *Game) Hand(playerID string) []deck.Card {
	for _, p := range g.players {
		if p.ID == playerID {
			return cloneCards(p.Hand)
		}
	}
	return nil
}

// Snapshot returns a consistent copy of the board for broadcast.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Deck:       cloneCards(g.board.Deck),
		Grave:      cloneCards(g.board.Grave),
		Table:      cloneCards(g.board.Table),
		Bosses:     cloneCards(g.board.Bosses),
		PlayerTurn: g.CurrentPlayer(),
		EndGame:    g.over,
		WinGame:    g.won,
	}
	if b := g.board.Boss; b != nil {
		snap.CurrentBoss = BossSnapshot{
			Value:         b.Card.Value,
			Suit:          b.Card.Suit,
			Health:        b.Health,
			Damage:        b.Damage,
			Effects:       b.Effect.Description(),
			EffectBlocked: b.EffectBlocked,
		}
	}
	return snap
}

// takeFromHand moves the requested cards out of the player's hand,
// matching by value+suit, each hand card at most once.
func (g *Game) takeFromHand(p *Player, cards []deck.Card) []deck.Card {
	taken := make([]deck.Card, 0, len(cards))
	for _, want := range cards {
		for i, held := range p.Hand {
			if held == want {
				p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
				taken = append(taken, held)
				break
			}
		}
	}
	return taken
}

// reviveFromGrave shuffles the grave and returns up to n cards from its
// front to the deck, then reshuffles the deck.
func (g *Game) reviveFromGrave(n int) {
	if n <= 0 || len(g.board.Grave) == 0 {
		return
	}
	deck.Shuffle(g.board.Grave)
	if n > len(g.board.Grave) {
		n = len(g.board.Grave)
	}
	g.board.Deck = append(g.board.Deck, g.board.Grave[:n]...)
	g.board.Grave = append([]deck.Card(nil), g.board.Grave[n:]...)
	deck.Shuffle(g.board.Deck)
}

// dealRoundRobin hands out up to n single-card draws, starting at the
// current seat, to players holding fewer than a full hand. A complete
// pass with no eligible player ends the loop.
func (g *Game) dealRoundRobin(n int, drawnBy map[string]bool) {
	idx := g.turnIndex
	idle := 0
	for n > 0 && len(g.board.Deck) > 0 && idle < len(g.players) {
		p := g.players[idx]
		if len(p.Hand) < g.rules.HandSize {
			rest, card, _ := deck.Draw(g.board.Deck)
			g.board.Deck = rest
			p.Hand = append(p.Hand, card)
			drawnBy[p.ID] = true
			n--
			idle = 0
		} else {
			idle++
		}
		idx = (idx + 1) % len(g.players)
	}
}

// resolveBossDefeat retires the current boss. An exact kill returns the
// boss card to the deck front (drawn again later); overkill sends it to
// the grave. The table is spent either way. Defeating the final boss
// wins the game.
func (g *Game) resolveBossDefeat() {
	b := g.board.Boss
	if len(g.board.Bosses) == 0 {
		g.over = true
		g.won = true
		g.logger.Info("final boss defeated, game won",
			zap.String("boss", b.Card.String()))
		return
	}

	if b.Health == 0 {
		g.board.Deck = append([]deck.Card{b.Card}, g.board.Deck...)
	} else {
		g.board.Grave = append(g.board.Grave, b.Card)
	}
	g.board.Grave = append(g.board.Grave, g.board.Table...)
	g.board.Table = nil

	var next deck.Card
	g.board.Bosses, next, _ = deck.Draw(g.board.Bosses)
	g.board.Boss = boss.New(next)

	g.logger.Debug("boss defeated",
		zap.String("defeated", b.Card.String()),
		zap.String("next", next.String()),
		zap.Int("remaining", len(g.board.Bosses)),
	)
}

// deckExhausted reports the loss condition: a boss still stands but the
// deck and every hand are empty, so no further play can ever happen.
func (g *Game) deckExhausted() bool {
	if len(g.board.Deck) > 0 {
		return false
	}
	for _, p := range g.players {
		if len(p.Hand) > 0 {
			return false
		}
	}
	return true
}

func cloneCards(cards []deck.Card) []deck.Card {
	if cards == nil {
		return nil
	}
	out := make([]deck.Card, len(cards))
	copy(out, cards)
	return out
}
