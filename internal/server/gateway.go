// Package server is the session gateway: it owns the websocket
// connections, assigns connection identities, translates inbound
// intents into registry and engine calls, and delivers the resulting
// events to the right players.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/crownfall/crownfall-server/internal/config"
	"github.com/crownfall/crownfall-server/internal/game"
	"github.com/crownfall/crownfall-server/internal/room"
)

// Gateway bridges websocket clients and the room registry.
type Gateway struct {
	rooms    *room.Manager
	logger   *zap.Logger
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[string]*Client
}

// NewGateway creates a gateway over the given registry.
func NewGateway(rooms *room.Manager, logger *zap.Logger) *Gateway {
	return &Gateway{
		rooms:  rooms,
		logger: logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[string]*Client),
	}
}

// Start listens on the configured address and serves websocket
// sessions until the listener fails.
func Start(cfg config.WebSocketConfig, rooms *room.Manager, logger *zap.Logger) error {
	g := NewGateway(rooms, logger)

	mux := http.NewServeMux()
	mux.HandleFunc(cfg.Path, g.serveWS)

	logger.Info("websocket gateway listening",
		zap.String("address", cfg.Address),
		zap.String("path", cfg.Path),
	)
	return http.ListenAndServe(cfg.Address, mux)
}

// serveWS upgrades one HTTP request into a player session.
func (g *Gateway) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := &Client{
		id:   uuid.New().String(),
		conn: conn,
		send: make(chan []byte, sendBufferSize),
	}

	g.mu.Lock()
	g.clients[client.id] = client
	g.mu.Unlock()

	g.logger.Info("player connected", zap.String("player", client.id))

	go client.writePump()
	go client.readPump(g)
}

// handleMessage dispatches one inbound intent.
func (g *Gateway) handleMessage(c *Client, msg clientMessage) {
	g.logger.Debug("intent received",
		zap.String("type", msg.Type),
		zap.String("player", c.id),
		zap.String("room", msg.Room),
	)

	switch msg.Type {
	case intentCreateRoom:
		g.createRoom(c, msg.Room)
	case intentGetRooms:
		g.sendTo(c, eventUpdateRooms, roomsPayload{Rooms: g.rooms.Names()})
	case intentJoinRoom:
		g.joinRoom(c, msg.Room)
	case intentStartGame:
		g.startGame(c, msg.Room)
	case intentPlayTurn:
		g.playTurn(c, msg)
	default:
		g.logger.Debug("unknown intent", zap.String("type", msg.Type))
	}
}

func (g *Gateway) createRoom(c *Client, name string) {
	if err := g.rooms.Create(name); err != nil {
		g.sendTo(c, eventAck, ackPayload{
			Intent:  intentCreateRoom,
			Success: false,
			Message: "room already exists",
		})
		return
	}

	g.sendTo(c, eventAck, ackPayload{
		Intent:  intentCreateRoom,
		Success: true,
		Message: "room created",
	})
	g.broadcastAll(eventUpdateRooms, roomsPayload{Rooms: g.rooms.Names()})
}

func (g *Gateway) joinRoom(c *Client, name string) {
	roster, err := g.rooms.Join(name, c.id)
	if err != nil {
		g.sendTo(c, eventAck, ackPayload{
			Intent:  intentJoinRoom,
			Success: false,
			Message: joinFailureMessage(err),
		})
		return
	}

	g.mu.Lock()
	c.room = name
	g.mu.Unlock()

	g.sendTo(c, eventAck, ackPayload{
		Intent:   intentJoinRoom,
		Success:  true,
		Message:  "joined room",
		PlayerID: c.id,
	})
	g.broadcastRoom(name, eventUpdatePlayer, playersPayload{Room: name, Players: roster})
}

func joinFailureMessage(err error) string {
	switch {
	case errors.Is(err, room.ErrRoomNotFound):
		return "room not found"
	case errors.Is(err, room.ErrRoomFull):
		return "room is full"
	case errors.Is(err, game.ErrGameStarted):
		return "game already in progress"
	default:
		return err.Error()
	}
}

func (g *Gateway) startGame(c *Client, name string) {
	events, err := g.rooms.StartGame(name)
	if err != nil {
		// Fire-and-forget intent: precondition failures are silent.
		g.logger.Debug("startGame rejected",
			zap.String("room", name),
			zap.String("player", c.id),
			zap.Error(err),
		)
		return
	}
	g.deliver(name, events)
}

func (g *Gateway) playTurn(c *Client, msg clientMessage) {
	playerID := msg.PlayerID
	if playerID == "" {
		playerID = c.id
	}

	events, err := g.rooms.PlayTurn(msg.Room, playerID, msg.Cards)
	if err != nil {
		g.logger.Debug("playTurn rejected",
			zap.String("room", msg.Room),
			zap.String("player", playerID),
			zap.Error(err),
		)
		return
	}
	g.deliver(msg.Room, events)
}

// disconnect handles the implicit intent fired when a connection
// drops: the player leaves every room, empty rooms are deleted, and
// the survivors are notified.
func (g *Gateway) disconnect(c *Client) {
	g.mu.Lock()
	if _, ok := g.clients[c.id]; !ok {
		g.mu.Unlock()
		return
	}
	delete(g.clients, c.id)
	close(c.send)
	g.mu.Unlock()

	g.logger.Info("player disconnected", zap.String("player", c.id))

	departures := g.rooms.RemovePlayer(c.id)
	deleted := false
	for _, dep := range departures {
		if dep.Deleted {
			deleted = true
			continue
		}
		g.broadcastRoom(dep.Room, eventUpdatePlayer, playersPayload{
			Room:    dep.Room,
			Players: dep.Players,
		})
	}
	if deleted {
		g.broadcastAll(eventUpdateRooms, roomsPayload{Rooms: g.rooms.Names()})
	}
}

// deliver routes engine events: hand updates privately, board updates
// to the whole room.
func (g *Gateway) deliver(roomName string, events []game.Event) {
	for _, ev := range events {
		switch ev := ev.(type) {
		case game.HandUpdate:
			g.sendToPlayer(ev.PlayerID, eventPlayerData, handPayload{Hand: ev.Hand})
		case game.BoardUpdate:
			g.broadcastRoom(roomName, eventBoardStatus, ev.Board)
		}
	}
}

func (g *Gateway) sendTo(c *Client, event string, data any) {
	raw, err := json.Marshal(serverMessage{Type: event, Data: data})
	if err != nil {
		g.logger.Error("marshal outbound message", zap.Error(err))
		return
	}
	c.enqueue(raw)
}

// sendToPlayer delivers privately to one player. The lock is held
// through the enqueue so a concurrent disconnect cannot close the send
// channel mid-delivery.
func (g *Gateway) sendToPlayer(playerID, event string, data any) {
	raw, err := json.Marshal(serverMessage{Type: event, Data: data})
	if err != nil {
		g.logger.Error("marshal outbound message", zap.Error(err))
		return
	}

	g.mu.RLock()
	defer g.mu.RUnlock()
	if c, ok := g.clients[playerID]; ok {
		c.enqueue(raw)
	}
}

func (g *Gateway) broadcastRoom(roomName, event string, data any) {
	raw, err := json.Marshal(serverMessage{Type: event, Data: data})
	if err != nil {
		g.logger.Error("marshal outbound message", zap.Error(err))
		return
	}

	g.mu.RLock()
	defer g.mu.RUnlock()
	for _, c := range g.clients {
		if c.room == roomName {
			c.enqueue(raw)
		}
	}
}

func (g *Gateway) broadcastAll(event string, data any) {
	raw, err := json.Marshal(serverMessage{Type: event, Data: data})
	if err != nil {
		g.logger.Error("marshal outbound message", zap.Error(err))
		return
	}

	g.mu.RLock()
	defer g.mu.RUnlock()
	for _, c := range g.clients {
		c.enqueue(raw)
	}
}
