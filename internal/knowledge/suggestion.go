package knowledge

import (
	"fmt"
	"gridclue/internal/catalog"
	"slices"
)

// Triple is one card of each category: the shape of a suggestion, an
// accusation, and the envelope itself.
type Triple struct {
	Character string
	Weapon    string
	Room      string
}

// Cards returns the triple in category order.
func (t Triple) Cards() []string {
	return []string{t.Character, t.Weapon, t.Room}
}

func (t Triple) String() string {
	return fmt.Sprintf("%s with the %s in the %s", t.Character, t.Weapon, t.Room)
}

// Suggestion is the read-only record of one suggestion exchange as seen by a
// single observer. Asked lists the players questioned in order. Refuter is
// empty when nobody could disprove. Shown is set only when the revealed card
// was visible to this observer.
type Suggestion struct {
	Suggester string
	Character string
	Weapon    string
	Room      string
	Asked     []string
	Refuter   string
	Shown     string
}

// Triple returns the suggested cards.
func (s Suggestion) Triple() Triple {
	return Triple{Character: s.Character, Weapon: s.Weapon, Room: s.Room}
}

// checkSuggestion rejects records that no legal exchange could have
// produced. Accepting one silently would poison the fact table.
func (n *Notebook) checkSuggestion(s Suggestion) error {
	if err := n.checkPlayer(s.Suggester); err != nil {
		return err
	}
	for _, p := range s.Asked {
		if err := n.checkPlayer(p); err != nil {
			return err
		}
	}
	for want, card := range map[catalog.Category]string{
		catalog.CategoryCharacter: s.Character,
		catalog.CategoryWeapon:    s.Weapon,
		catalog.CategoryRoom:      s.Room,
	} {
		got, ok := n.cat.CategoryOf(card)
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownCard, card)
		}
		if got != want {
			return fmt.Errorf("%q is not one of the %s", card, want)
		}
	}
	if s.Refuter != "" {
		if err := n.checkPlayer(s.Refuter); err != nil {
			return err
		}
		if !slices.Contains(s.Asked, s.Refuter) {
			return fmt.Errorf("refuter %q was never asked", s.Refuter)
		}
	}
	if s.Shown != "" {
		if s.Refuter == "" {
			return fmt.Errorf("card %q shown without a refuter", s.Shown)
		}
		if !slices.Contains(s.Triple().Cards(), s.Shown) {
			return fmt.Errorf("shown card %q is not part of the suggestion", s.Shown)
		}
	}
	return nil
}
