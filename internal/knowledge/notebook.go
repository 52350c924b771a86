package knowledge

import (
	"errors"
	"fmt"
	"gridclue/internal/catalog"
	"sort"

	"github.com/sirupsen/logrus"
)

// Fact defines the knowledge state of a single (card, holder) cell.
type Fact int

const (
	FactUnknown Fact = iota
	FactHas
	FactLacks
)

// EnvelopeHolder is the virtual holder standing in for the hidden solution.
// It takes part in elimination like a seat nobody can peek at, so no real
// player may use the name.
const EnvelopeHolder = "envelope"

var (
	ErrUnknownCard   = errors.New("card not in the catalog")
	ErrUnknownPlayer = errors.New("player not in the game")
	ErrContradiction = errors.New("contradictory observation history")
)

// Notebook is one observer's belief state over who holds which card. Every
// cell is an explicit tri-state fact; invisible refutations are kept as
// pending at-least-one-of mysteries until elimination resolves them. Each
// record call runs propagation to a fixed point before returning, so queries
// always see a settled state. A notebook is owned by exactly one observer
// and never shared.
type Notebook struct {
	cat     *catalog.Catalog
	owner   string
	players []string
	holders []string
	facts   map[string]map[string]Fact
	pending []mystery
	log     logrus.FieldLogger
}

// mystery tracks a disproval where the specific card shown is unknown.
type mystery struct {
	holder string
	cards  map[string]struct{}
}

// New creates an all-unknown notebook for owner. The player list must
// contain the owner, hold no duplicates, and stay clear of the reserved
// envelope name.
func New(cat *catalog.Catalog, owner string, players []string, log logrus.FieldLogger) (*Notebook, error) {
	if len(players) < 2 {
		return nil, fmt.Errorf("need at least 2 players, got %d", len(players))
	}
	seen := make(map[string]struct{}, len(players))
	for _, p := range players {
		if p == EnvelopeHolder {
			return nil, fmt.Errorf("player name %q is reserved", EnvelopeHolder)
		}
		if _, dup := seen[p]; dup {
			return nil, fmt.Errorf("duplicate player %q", p)
		}
		seen[p] = struct{}{}
	}
	if _, ok := seen[owner]; !ok {
		return nil, fmt.Errorf("%w: owner %q is not seated", ErrUnknownPlayer, owner)
	}

	n := &Notebook{
		cat:     cat,
		owner:   owner,
		players: append([]string(nil), players...),
		log:     log,
	}
	n.holders = append(append([]string(nil), n.players...), EnvelopeHolder)
	n.facts = make(map[string]map[string]Fact, cat.Size())
	for _, card := range cat.All() {
		n.facts[card] = make(map[string]Fact, len(n.holders))
		for _, h := range n.holders {
			n.facts[card][h] = FactUnknown
		}
	}
	return n, nil
}

func (n *Notebook) Owner() string             { return n.owner }
func (n *Notebook) Players() []string         { return n.players }
func (n *Notebook) Holders() []string         { return n.holders }
func (n *Notebook) Catalog() *catalog.Catalog { return n.cat }

// Fact returns the recorded state for a card and holder. Unrecorded pairs
// read as unknown.
func (n *Notebook) Fact(card, holder string) Fact {
	return n.facts[card][holder]
}

// RecordOwnHand marks the cards dealt to the owner. A hand is complete
// knowledge, so every card not in it is marked lacking for the owner in the
// same pass.
func (n *Notebook) RecordOwnHand(cards []string) error {
	inHand := make(map[string]struct{}, len(cards))
	for _, card := range cards {
		if err := n.checkCard(card); err != nil {
			return err
		}
		inHand[card] = struct{}{}
		if _, err := n.setHas(n.owner, card); err != nil {
			return err
		}
	}
	for _, card := range n.cat.All() {
		if _, ok := inHand[card]; ok {
			continue
		}
		if _, err := n.setLacks(n.owner, card); err != nil {
			return err
		}
	}
	return n.propagate()
}

// RecordDealt marks a card as held by a player, ruling out every other
// holder for it.
func (n *Notebook) RecordDealt(player, card string) error {
	if err := n.checkPlayer(player); err != nil {
		return err
	}
	if err := n.checkCard(card); err != nil {
		return err
	}
	if _, err := n.setHas(player, card); err != nil {
		return err
	}
	return n.propagate()
}

// RecordShown marks a card this observer saw directly, such as a private
// reveal during a refutation.
func (n *Notebook) RecordShown(player, card string) error {
	return n.RecordDealt(player, card)
}

// RecordCannotHave marks a derived negative fact, such as a pass observed
// outside a recorded suggestion.
func (n *Notebook) RecordCannotHave(player, card string) error {
	if err := n.checkPlayer(player); err != nil {
		return err
	}
	if err := n.checkCard(card); err != nil {
		return err
	}
	if _, err := n.setLacks(player, card); err != nil {
		return err
	}
	return n.propagate()
}

// RecordSuggestion folds one suggestion exchange into the notebook. Players
// asked before the refuter passed, so each lacks all three cards unless one
// is already known to be theirs. A visible refutation pins the shown card;
// an invisible one leaves a mystery to resolve later; no refuter at all
// rules the three cards out for every asked player.
func (n *Notebook) RecordSuggestion(s Suggestion) error {
	if err := n.checkSuggestion(s); err != nil {
		return err
	}
	for _, p := range s.Asked {
		if p == s.Refuter {
			break
		}
		for _, card := range s.Triple().Cards() {
			if n.facts[card][p] == FactHas {
				continue
			}
			if _, err := n.setLacks(p, card); err != nil {
				return err
			}
		}
	}
	switch {
	case s.Refuter == "":
		// The passes above already carry everything there is to learn.
	case s.Shown != "":
		if _, err := n.setHas(s.Refuter, s.Shown); err != nil {
			return err
		}
	default:
		if err := n.addMystery(s.Refuter, s.Triple().Cards()); err != nil {
			return err
		}
	}
	return n.propagate()
}

func (n *Notebook) checkCard(card string) error {
	if !n.cat.Contains(card) {
		return fmt.Errorf("%w: %q", ErrUnknownCard, card)
	}
	return nil
}

func (n *Notebook) checkPlayer(name string) error {
	for _, p := range n.players {
		if p == name {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownPlayer, name)
}

// setHas settles a cell to FactHas and rules the card out for every other
// holder. Settling a cell already known to lack the card is a contradiction.
func (n *Notebook) setHas(holder, card string) (bool, error) {
	switch n.facts[card][holder] {
	case FactHas:
		return false, nil
	case FactLacks:
		return false, fmt.Errorf("%w: %s was ruled out for %q", ErrContradiction, holder, card)
	}
	n.facts[card][holder] = FactHas
	n.log.Debugf("Learned that %q is with %s.", card, holder)
	for _, other := range n.holders {
		if other == holder {
			continue
		}
		if _, err := n.setLacks(other, card); err != nil {
			return false, err
		}
	}
	return true, nil
}

func (n *Notebook) setLacks(holder, card string) (bool, error) {
	switch n.facts[card][holder] {
	case FactLacks:
		return false, nil
	case FactHas:
		return false, fmt.Errorf("%w: %s is known to hold %q", ErrContradiction, holder, card)
	}
	n.facts[card][holder] = FactLacks
	return true, nil
}

// addMystery files an invisible refutation. Cards the holder is known to
// lack are dropped up front; a mystery that is already satisfied or already
// filed adds nothing.
func (n *Notebook) addMystery(holder string, cards []string) error {
	remaining := make(map[string]struct{}, len(cards))
	for _, card := range cards {
		switch n.facts[card][holder] {
		case FactHas:
			return nil
		case FactUnknown:
			remaining[card] = struct{}{}
		}
	}
	if len(remaining) == 0 {
		return fmt.Errorf("%w: %s refuted yet holds none of %v", ErrContradiction, holder, cards)
	}
	if len(remaining) == 1 {
		_, err := n.setHas(holder, mapKeys(remaining)[0])
		return err
	}
	for _, m := range n.pending {
		if m.holder == holder && subset(m.cards, remaining) {
			return nil
		}
	}
	n.pending = append(n.pending, mystery{holder: holder, cards: remaining})
	n.log.Debugf("Noted that %s holds one of %v.", holder, mapKeys(remaining))
	return nil
}

// propagate applies the deduction rules until none of them learns anything
// new. Every productive pass settles a cell or shrinks a mystery, so the
// loop is bounded by the size of the fact table.
func (n *Notebook) propagate() error {
	for {
		c1, err := n.resolveMysteries()
		if err != nil {
			return err
		}
		c2, err := n.locateByElimination()
		if err != nil {
			return err
		}
		c3, err := n.closeCategories()
		if err != nil {
			return err
		}
		if !c1 && !c2 && !c3 {
			return nil
		}
	}
}

// resolveMysteries prunes each pending mystery against the fact table,
// discharges the satisfied ones, and converts singletons into has facts.
func (n *Notebook) resolveMysteries() (bool, error) {
	var changed bool
	var remaining []mystery
	for _, m := range n.pending {
		kept := make(map[string]struct{}, len(m.cards))
		satisfied := false
		for card := range m.cards {
			switch n.facts[card][m.holder] {
			case FactHas:
				satisfied = true
			case FactUnknown:
				kept[card] = struct{}{}
			}
		}
		if satisfied {
			changed = true
			continue
		}
		switch len(kept) {
		case 0:
			return false, fmt.Errorf("%w: %s holds none of %v", ErrContradiction, m.holder, mapKeys(m.cards))
		case 1:
			card := mapKeys(kept)[0]
			n.log.Infof("Mystery solved: %s must have shown %q.", m.holder, card)
			if _, err := n.setHas(m.holder, card); err != nil {
				return false, err
			}
			changed = true
		default:
			if len(kept) < len(m.cards) {
				n.log.Debugf("Narrowed %s's mystery to %v.", m.holder, mapKeys(kept))
				changed = true
			}
			remaining = append(remaining, mystery{holder: m.holder, cards: kept})
		}
	}
	n.pending = remaining
	return changed, nil
}

// locateByElimination settles any card with a single holder still open. A
// card every holder lacks has nowhere to be, which is a contradiction.
func (n *Notebook) locateByElimination() (bool, error) {
	var changed bool
	for _, card := range n.cat.All() {
		located := false
		var open []string
		for _, h := range n.holders {
			switch n.facts[card][h] {
			case FactHas:
				located = true
			case FactUnknown:
				open = append(open, h)
			}
		}
		if located {
			continue
		}
		switch len(open) {
		case 0:
			return false, fmt.Errorf("%w: nobody can hold %q", ErrContradiction, card)
		case 1:
			n.log.Debugf("Only %s is left for %q.", open[0], card)
			if _, err := n.setHas(open[0], card); err != nil {
				return false, err
			}
			changed = true
		}
	}
	return changed, nil
}

// closeCategories works the envelope row category by category: a known
// envelope card rules out the rest of its category, and a category down to
// its last open card must be the envelope's. An empty candidate set means
// the observation history was inconsistent.
func (n *Notebook) closeCategories() (bool, error) {
	var changed bool
	for _, cat := range catalog.Categories {
		var inEnvelope []string
		var open []string
		for _, card := range n.cat.List(cat) {
			switch n.facts[card][EnvelopeHolder] {
			case FactHas:
				inEnvelope = append(inEnvelope, card)
			case FactUnknown:
				open = append(open, card)
			}
		}
		switch {
		case len(inEnvelope) > 1:
			return false, fmt.Errorf("%w: envelope holds several %s: %v", ErrContradiction, cat, inEnvelope)
		case len(inEnvelope) == 1:
			for _, card := range open {
				if _, err := n.setLacks(EnvelopeHolder, card); err != nil {
					return false, err
				}
				changed = true
			}
		case len(open) == 1:
			n.log.Infof("Deduced that %q is in the envelope.", open[0])
			if _, err := n.setHas(EnvelopeHolder, open[0]); err != nil {
				return false, err
			}
			changed = true
		case len(open) == 0:
			return false, fmt.Errorf("%w: no %s left for the envelope", ErrContradiction, cat)
		}
	}
	return changed, nil
}

func mapKeys(m map[string]struct{}) []string {
	k := make([]string, 0, len(m))
	for key := range m {
		k = append(k, key)
	}
	sort.Strings(k)
	return k
}

func subset(a, b map[string]struct{}) bool {
	for card := range a {
		if _, ok := b[card]; !ok {
			return false
		}
	}
	return true
}
