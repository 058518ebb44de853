// Package room maintains the registry of named game rooms and owns all
// access to their state. Every mutation of a room's game happens under
// that room's lock, so concurrently arriving intents are serialized
// per room.
package room

import (
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/crownfall/crownfall-server/internal/deck"
	"github.com/crownfall/crownfall-server/internal/game"
)

var (
	ErrRoomExists   = errors.New("room already exists")
	ErrRoomNotFound = errors.New("room not found")
	ErrRoomFull     = errors.New("room is full")
)

// Room is one named session. The manager resolves the room by name;
// the room's own lock covers every touch of its game.
type Room struct {
	Name string

	mu   sync.Mutex
	game *game.Game
}

// Departure describes the effect of a player leaving one room, so the
// gateway can notify the survivors or drop the room from its listings.
type Departure struct {
	Room    string
	Players []string
	Deleted bool
}

// Manager is the single owner of the room registry.
type Manager struct {
	mu    sync.RWMutex
	rooms map[string]*Room
	order []string

	rules  game.Rules
	logger *zap.Logger
}

// NewManager creates an empty registry applying the given game rules to
// every room it creates.
func NewManager(rules game.Rules, logger *zap.Logger) *Manager {
	return &Manager{
		rooms:  make(map[string]*Room),
		rules:  rules,
		logger: logger,
	}
}

// Create registers a fresh, unstarted room under a unique name.
func (m *Manager) Create(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.rooms[name]; exists {
		return ErrRoomExists
	}
	m.rooms[name] = &Room{
		Name: name,
		game: game.New(m.rules, m.logger.Named("game").With(zap.String("room", name))),
	}
	m.order = append(m.order, name)

	m.logger.Info("room created", zap.String("room", name))
	return nil
}

// Names returns a snapshot of room names in creation order.
func (m *Manager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, len(m.order))
	copy(names, m.order)
	return names
}

// Count returns the number of live rooms.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rooms)
}

// Join seats a player in a room and returns the updated roster.
func (m *Manager) Join(name, playerID string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.rooms[name]
	if !ok {
		return nil, ErrRoomNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.game.Started() {
		return nil, game.ErrGameStarted
	}
	if err := r.game.AddPlayer(playerID); err != nil {
		if errors.Is(err, game.ErrTableFull) {
			return nil, ErrRoomFull
		}
		return nil, err
	}

	m.logger.Info("player joined room",
		zap.String("room", name),
		zap.String("player", playerID),
		zap.Int("players", r.game.PlayerCount()),
	)
	return r.game.PlayerIDs(), nil
}

// StartGame transitions a room out of the lobby and returns the events
// the engine emitted for delivery.
func (m *Manager) StartGame(name string) ([]game.Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.rooms[name]
	if !ok {
		return nil, ErrRoomNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.game.Start()
}

// PlayTurn resolves one play in a room and returns the emitted events.
func (m *Manager) PlayTurn(name, playerID string, cards []deck.Card) ([]game.Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.rooms[name]
	if !ok {
		return nil, ErrRoomNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.game.PlayTurn(playerID, cards)
}

// RemovePlayer drops a player from every room holding them, deleting
// rooms that become empty. It is idempotent and reports each affected
// room so the gateway can broadcast updates.
func (m *Manager) RemovePlayer(playerID string) []Departure {
	m.mu.Lock()
	defer m.mu.Unlock()

	var departures []Departure
	for _, name := range m.order {
		r := m.rooms[name]
		r.mu.Lock()
		if !r.game.RemovePlayer(playerID) {
			r.mu.Unlock()
			continue
		}
		dep := Departure{Room: name, Players: r.game.PlayerIDs()}
		if r.game.PlayerCount() == 0 {
			dep.Deleted = true
			delete(m.rooms, name)
		}
		r.mu.Unlock()
		departures = append(departures, dep)

		m.logger.Info("player left room",
			zap.String("room", name),
			zap.String("player", playerID),
			zap.Bool("room_deleted", dep.Deleted),
		)
	}

	if len(departures) > 0 {
		kept := m.order[:0]
		for _, name := range m.order {
			if _, ok := m.rooms[name]; ok {
				kept = append(kept, name)
			}
		}
		m.order = kept
	}
	return departures
}
