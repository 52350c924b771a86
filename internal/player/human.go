package player

import (
	"fmt"
	"slices"
	"sort"

	"gridclue/internal/catalog"
	"gridclue/internal/knowledge"

	"github.com/sirupsen/logrus"
)

// Human represents a player controlled by a person. Every decision is
// forwarded to the injected Console; the Human itself only enforces the
// rules around the answer. It keeps a notebook of its own so the table
// view can render auto-maintained detective notes.
type Human struct {
	name     string
	cat      *catalog.Catalog
	hand     map[string]struct{}
	notebook *knowledge.Notebook
	console  Console
	log      logrus.FieldLogger
}

func NewHuman(console Console, logger logrus.FieldLogger) *Human {
	return &Human{
		hand:    make(map[string]struct{}),
		console: console,
		log:     logger,
	}
}

func (h *Human) Name() string                  { return h.name }
func (h *Human) IsHuman() bool                 { return true }
func (h *Human) Notebook() *knowledge.Notebook { return h.notebook }

func (h *Human) Hand() []string {
	var cards []string
	for card := range h.hand {
		cards = append(cards, card)
	}
	sort.Strings(cards)
	return cards
}

func (h *Human) Setup(cat *catalog.Catalog, playerNames []string, myName string) error {
	h.name = myName
	h.cat = cat
	h.log = h.log.WithField("player", myName)

	nb, err := knowledge.New(cat, myName, playerNames, h.log)
	if err != nil {
		return err
	}
	h.notebook = nb
	return nil
}

func (h *Human) ReceiveHand(cards []string) error {
	for _, card := range cards {
		h.hand[card] = struct{}{}
	}
	if err := h.notebook.RecordOwnHand(cards); err != nil {
		return err
	}
	h.console.ShowHand(h.Hand())
	return nil
}

func (h *Human) BeginTurn()              {}
func (h *Human) EnteredRoom(room string) {}

func (h *Human) DecideMoveTarget(current string) (string, error) {
	var rooms []string
	for _, room := range h.cat.Rooms {
		if room != current {
			rooms = append(rooms, room)
		}
	}
	target, err := h.console.PickMoveTarget(current, rooms)
	if err != nil {
		return "", err
	}
	if target != "" && !slices.Contains(rooms, target) {
		return "", fmt.Errorf("%q is not a room you can head for", target)
	}
	return target, nil
}

func (h *Human) DecidePassage(from, to string) (bool, error) {
	return h.console.ConfirmPassage(from, to)
}

func (h *Human) WantSuggestion(room string) bool {
	want, err := h.console.ConfirmSuggestion(room)
	if err != nil {
		return false
	}
	return want
}

func (h *Human) DecideSuggestion(room string) (knowledge.Triple, error) {
	character, weapon, err := h.console.PickSuggestion(room, h.cat.Characters, h.cat.Weapons)
	if err != nil {
		return knowledge.Triple{}, err
	}
	return knowledge.Triple{Character: character, Weapon: weapon, Room: room}, nil
}

func (h *Human) DecideAccusation() (knowledge.Triple, bool, error) {
	want, err := h.console.ConfirmAccusation()
	if err != nil || !want {
		return knowledge.Triple{}, false, err
	}
	character, weapon, room, err := h.console.PickAccusation(h.cat.Characters, h.cat.Weapons, h.cat.Rooms)
	if err != nil {
		return knowledge.Triple{}, false, err
	}
	return knowledge.Triple{Character: character, Weapon: weapon, Room: room}, true, nil
}

// DecideRefutation lets the person choose which matching card to show, but
// never whether to show one: holding a suggested card obliges you to reveal
// it.
func (h *Human) DecideRefutation(s knowledge.Suggestion) (string, error) {
	var matching []string
	for _, card := range s.Triple().Cards() {
		if _, ok := h.hand[card]; ok {
			matching = append(matching, card)
		}
	}
	if len(matching) == 0 {
		return "", nil
	}
	card, err := h.console.PickReveal(s.Suggester, matching)
	if err != nil {
		return "", err
	}
	if !slices.Contains(matching, card) {
		return "", fmt.Errorf("you must show one of your matching cards, not %q", card)
	}
	return card, nil
}

func (h *Human) ObserveSuggestion(s knowledge.Suggestion) error {
	if s.Suggester == h.name && s.Shown != "" {
		h.console.ShowReveal(s.Refuter, s.Shown)
	}
	return h.notebook.RecordSuggestion(s)
}

func (h *Human) ObserveReveal(player, card string) error {
	return h.notebook.RecordShown(player, card)
}
