package knowledge

import "gridclue/internal/catalog"

// Constraint is the display form of a pending mystery: the holder showed at
// least one of the listed cards.
type Constraint struct {
	Holder string
	Cards  []string
}

// Candidates returns the cards of one category still possible for the
// envelope, in catalog order.
func (n *Notebook) Candidates(cat catalog.Category) []string {
	var out []string
	for _, card := range n.cat.List(cat) {
		if n.facts[card][EnvelopeHolder] != FactLacks {
			out = append(out, card)
		}
	}
	return out
}

// Unresolved returns the candidates of one category whose envelope cell is
// still open, in catalog order. A resolved category returns nothing.
func (n *Notebook) Unresolved(cat catalog.Category) []string {
	var out []string
	for _, card := range n.cat.List(cat) {
		if n.facts[card][EnvelopeHolder] == FactUnknown {
			out = append(out, card)
		}
	}
	return out
}

// SolutionCertain reports whether every category is down to exactly one
// candidate. Certainty is strictly Boolean; a near-certain notebook is not
// certain.
func (n *Notebook) SolutionCertain() bool {
	for _, cat := range catalog.Categories {
		if len(n.Candidates(cat)) != 1 {
			return false
		}
	}
	return true
}

// Solution returns the envelope triple once SolutionCertain holds.
func (n *Notebook) Solution() (Triple, bool) {
	if !n.SolutionCertain() {
		return Triple{}, false
	}
	return Triple{
		Character: n.Candidates(catalog.CategoryCharacter)[0],
		Weapon:    n.Candidates(catalog.CategoryWeapon)[0],
		Room:      n.Candidates(catalog.CategoryRoom)[0],
	}, true
}

// ConstraintMentions counts the pending mysteries that name a card. The
// suggestion policy uses it to rank cards by how much they would untangle.
func (n *Notebook) ConstraintMentions(card string) int {
	count := 0
	for _, m := range n.pending {
		if _, ok := m.cards[card]; ok {
			count++
		}
	}
	return count
}

// PendingConstraints returns a snapshot of the unresolved mysteries.
func (n *Notebook) PendingConstraints() []Constraint {
	out := make([]Constraint, 0, len(n.pending))
	for _, m := range n.pending {
		out = append(out, Constraint{Holder: m.holder, Cards: mapKeys(m.cards)})
	}
	return out
}

// UnknownCount returns the number of unsettled cells in the fact table.
func (n *Notebook) UnknownCount() int {
	count := 0
	for _, row := range n.facts {
		for _, f := range row {
			if f == FactUnknown {
				count++
			}
		}
	}
	return count
}
