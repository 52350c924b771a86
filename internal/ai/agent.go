package ai

import (
	"fmt"
	"gridclue/internal/catalog"
	"gridclue/internal/knowledge"
	"math/rand"
	"sort"

	"github.com/sirupsen/logrus"
)

// Phase tracks where an agent stands inside its own turn. Decisions may be
// skipped but never revisited, so the phase only ever moves forward until
// BeginTurn resets it.
type Phase int

const (
	PhaseAwaitingMove Phase = iota
	PhaseAwaitingSuggestion
	PhaseAwaitingAccusation
	PhaseTurnComplete
)

func (p Phase) String() string {
	return []string{"awaiting move", "awaiting suggestion", "awaiting accusation", "turn complete"}[p]
}

// Agent is a rule-based player built around a deduction notebook. It keeps
// its own view of the game and decides moves, suggestions, accusations, and
// refutations when the game loop asks.
type Agent struct {
	name     string
	cat      *catalog.Catalog
	notebook *knowledge.Notebook
	hand     map[string]struct{}
	shown    map[string]struct{}
	visited  map[string]struct{}
	phase    Phase
	rng      *rand.Rand
	log      logrus.FieldLogger
}

// NewAgent is the constructor for the AI player. It injects dependencies;
// the notebook is built later in Setup once the table is known.
func NewAgent(logger logrus.FieldLogger, rng *rand.Rand) *Agent {
	return &Agent{
		log: logger,
		rng: rng,
	}
}

func (a *Agent) Name() string  { return a.name }
func (a *Agent) IsHuman() bool { return false }
func (a *Agent) Phase() Phase  { return a.phase }

// Notebook exposes the agent's belief state for rendering and inspection.
func (a *Agent) Notebook() *knowledge.Notebook { return a.notebook }

func (a *Agent) Hand() []string {
	var cards []string
	for card := range a.hand {
		cards = append(cards, card)
	}
	sort.Strings(cards)
	return cards
}

// Setup seats the agent at a table and opens a fresh notebook.
func (a *Agent) Setup(cat *catalog.Catalog, players []string, myName string) error {
	a.name = myName
	a.cat = cat
	a.log = a.log.WithField("player", myName)
	a.hand = make(map[string]struct{})
	a.shown = make(map[string]struct{})
	a.visited = make(map[string]struct{})

	nb, err := knowledge.New(cat, myName, players, a.log)
	if err != nil {
		return fmt.Errorf("setting up %s: %w", myName, err)
	}
	a.notebook = nb
	a.log.Debugf("Notebook opened for a table of %d.", len(players))
	return nil
}

// ReceiveHand records the dealt cards in the notebook.
func (a *Agent) ReceiveHand(cards []string) error {
	for _, card := range cards {
		a.hand[card] = struct{}{}
	}
	return a.notebook.RecordOwnHand(cards)
}

// BeginTurn resets the turn phase.
func (a *Agent) BeginTurn() {
	a.phase = PhaseAwaitingMove
}

// EnteredRoom notes a visit so movement keeps seeking fresh rooms.
func (a *Agent) EnteredRoom(room string) {
	a.visited[room] = struct{}{}
}

// ObserveSuggestion folds an observed exchange into the notebook. An error
// here means the reported history is inconsistent and the game must stop.
func (a *Agent) ObserveSuggestion(s knowledge.Suggestion) error {
	return a.notebook.RecordSuggestion(s)
}

// ObserveReveal folds a card this agent was shown into the notebook.
func (a *Agent) ObserveReveal(player, card string) error {
	return a.notebook.RecordShown(player, card)
}
