package events

import (
	"gridclue/internal/board"
	"gridclue/internal/knowledge"
)

// Event is a marker interface for all event types.
type Event interface{}

// Listener defines an interface for any component that wants to react to events.
type Listener interface {
	HandleEvent(e Event)
}

// Manager dispatches events to subscribed listeners in subscription order.
// Only public table knowledge travels here; privately shown cards are
// delivered straight to the players who saw them and never cross the bus.
type Manager struct {
	listeners []Listener
}

func NewManager() *Manager {
	return &Manager{}
}

func (em *Manager) Subscribe(l Listener) {
	em.listeners = append(em.listeners, l)
}

func (em *Manager) Publish(e Event) {
	for _, l := range em.listeners {
		l.HandleEvent(e)
	}
}

// --- Event Types for Rendering ---

// SeatInfo describes one seat at the start of the game.
type SeatInfo struct {
	Name    string
	IsHuman bool
	Pos     board.Pos
}

// GameReadyEvent is published once the table is seated and every hand is
// dealt.
type GameReadyEvent struct {
	GameID string
	Seats  []SeatInfo
}

type HandDealtEvent struct {
	PlayerName string
	Cards      int
}

type TurnStartEvent struct {
	TurnNumber int
	PlayerName string
}

type DiceRolledEvent struct {
	PlayerName string
	Roll       int
}

// PawnMovedEvent reports a completed walk. Room is set when the walk ended
// inside a room.
type PawnMovedEvent struct {
	PlayerName string
	From       board.Pos
	To         board.Pos
	Room       string
}

type PassageUsedEvent struct {
	PlayerName string
	From       string
	To         string
}

// PawnDraggedEvent reports a suspect's pawn pulled into the suggested room.
type PawnDraggedEvent struct {
	PlayerName string
	Room       string
}

// WeaponMovedEvent reports the weapon token carried to the suggested room.
// From is empty the first time a weapon leaves the box.
type WeaponMovedEvent struct {
	Weapon string
	From   string
	To     string
}

type SuggestionMadeEvent struct {
	SuggesterName string
	Suggestion    knowledge.Triple
}

// RefutedEvent says who disproved whom. The card itself stays private.
type RefutedEvent struct {
	SuggesterName string
	RefuterName   string
}

type NoRefuteEvent struct {
	SuggesterName string
}

type AccusationEvent struct {
	PlayerName string
	Accusation knowledge.Triple
	Correct    bool
}

type PlayerEliminatedEvent struct {
	PlayerName string
}

type GameOverEvent struct {
	GameID   string
	Winner   string
	Solution knowledge.Triple
	Turns    int
}
