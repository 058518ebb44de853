package server

import "github.com/crownfall/crownfall-server/internal/deck"

// Inbound intent names.
const (
	intentCreateRoom = "createRoom"
	intentGetRooms   = "getRooms"
	intentJoinRoom   = "joinRoom"
	intentStartGame  = "startGame"
	intentPlayTurn   = "playTurn"
)

// Outbound event names.
const (
	eventAck          = "ack"
	eventUpdateRooms  = "updateRooms"
	eventUpdatePlayer = "updatePlayers"
	eventPlayerData   = "getPlayerData"
	eventBoardStatus  = "boardStatus"
)

// clientMessage is the inbound JSON envelope.
type clientMessage struct {
	Type     string      `json:"type"`
	Room     string      `json:"room,omitempty"`
	PlayerID string      `json:"playerId,omitempty"`
	Cards    []deck.Card `json:"cards,omitempty"`
}

// serverMessage is the outbound JSON envelope.
type serverMessage struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// ackPayload answers the request/response intents.
type ackPayload struct {
	Intent   string `json:"intent"`
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	PlayerID string `json:"playerId,omitempty"`
}

// handPayload carries a private hand snapshot.
type handPayload struct {
	Hand []deck.Card `json:"hand"`
}

// roomsPayload carries the global room listing.
type roomsPayload struct {
	Rooms []string `json:"rooms"`
}

// playersPayload carries a room's roster.
type playersPayload struct {
	Room    string   `json:"room"`
	Players []string `json:"players"`
}
