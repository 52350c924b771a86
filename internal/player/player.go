package player

import (
	"gridclue/internal/catalog"
	"gridclue/internal/knowledge"
)

// Player is the interface that all player types (human or AI) must implement.
// The game loop drives every seat through the same surface; only the
// decision-making behind it differs.
type Player interface {
	Name() string
	IsHuman() bool
	Hand() []string
	Notebook() *knowledge.Notebook

	Setup(cat *catalog.Catalog, playerNames []string, myName string) error
	ReceiveHand(cards []string) error
	BeginTurn()
	EnteredRoom(room string)

	// Decisions, asked by the game loop at the matching point of a turn.
	DecideMoveTarget(current string) (string, error)
	DecidePassage(from, to string) (bool, error)
	WantSuggestion(room string) bool
	DecideSuggestion(room string) (knowledge.Triple, error)
	DecideAccusation() (knowledge.Triple, bool, error)
	DecideRefutation(s knowledge.Suggestion) (string, error)

	// Observations, delivered per seat. A suggester's copy of a refuted
	// suggestion carries the shown card; everyone else's does not.
	ObserveSuggestion(s knowledge.Suggestion) error
	ObserveReveal(player, card string) error
}

// Console is the interactive surface a Human player talks to. The CLI
// implements it with real prompts; tests script it.
type Console interface {
	ShowHand(cards []string)
	ShowReveal(refuter, card string)

	PickMoveTarget(current string, rooms []string) (string, error)
	ConfirmPassage(from, to string) (bool, error)
	ConfirmSuggestion(room string) (bool, error)
	PickSuggestion(room string, characters, weapons []string) (string, string, error)
	ConfirmAccusation() (bool, error)
	PickAccusation(characters, weapons, rooms []string) (string, string, string, error)
	PickReveal(suggester string, matching []string) (string, error)
}
