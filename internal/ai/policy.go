package ai

import (
	"errors"
	"fmt"
	"gridclue/internal/catalog"
	"gridclue/internal/knowledge"
)

// ErrOutOfTurn reports a decision requested after its slot in the turn has
// already passed. The game loop drives the phases; asking twice is a bug.
var ErrOutOfTurn = errors.New("decision requested out of turn")

// advance gates a decision on its phase slot and moves the turn forward.
// Earlier slots may be skipped (a dragged player suggests without moving),
// but a passed slot never reopens.
func (a *Agent) advance(slot, next Phase) error {
	if a.phase > slot {
		return fmt.Errorf("%w: %s while %s", ErrOutOfTurn, slot, a.phase)
	}
	a.phase = next
	return nil
}

// DecideMoveTarget picks the room worth walking toward: an unvisited
// candidate room first, then any candidate, then anywhere new. Returns ""
// when no room is worth the walk.
func (a *Agent) DecideMoveTarget(current string) (string, error) {
	if err := a.advance(PhaseAwaitingMove, PhaseAwaitingSuggestion); err != nil {
		return "", err
	}
	candidates := a.notebook.Candidates(catalog.CategoryRoom)
	tiers := [][]string{
		a.filterRooms(candidates, true, current),
		a.filterRooms(candidates, false, current),
		a.filterRooms(a.cat.Rooms, true, current),
		a.filterRooms(a.cat.Rooms, false, current),
	}
	for _, tier := range tiers {
		if len(tier) == 0 {
			continue
		}
		target := tier[a.rng.Intn(len(tier))]
		a.log.Debugf("Heading for the %s.", target)
		return target, nil
	}
	return "", nil
}

func (a *Agent) filterRooms(rooms []string, unvisitedOnly bool, exclude string) []string {
	var out []string
	for _, room := range rooms {
		if room == exclude {
			continue
		}
		if unvisitedOnly {
			if _, seen := a.visited[room]; seen {
				continue
			}
		}
		out = append(out, room)
	}
	return out
}

// DecidePassage chooses whether to slip through a secret passage instead of
// rolling. Worth it when the far side is an unvisited candidate room.
func (a *Agent) DecidePassage(from, to string) (bool, error) {
	if a.notebook.SolutionCertain() {
		return false, nil
	}
	for _, room := range a.notebook.Candidates(catalog.CategoryRoom) {
		if room != to {
			continue
		}
		if _, seen := a.visited[to]; !seen {
			return true, nil
		}
	}
	return a.rng.Intn(2) == 0, nil
}

// WantSuggestion reports whether the agent takes an optional suggestion.
// Probing costs nothing, so it always does.
func (a *Agent) WantSuggestion(room string) bool { return true }

// DecideSuggestion builds the suggestion for the room the agent stands in.
// The character and weapon are picked independently by pickCard.
func (a *Agent) DecideSuggestion(room string) (knowledge.Triple, error) {
	if err := a.advance(PhaseAwaitingSuggestion, PhaseAwaitingAccusation); err != nil {
		return knowledge.Triple{}, err
	}
	t := knowledge.Triple{
		Character: a.pickCard(catalog.CategoryCharacter),
		Weapon:    a.pickCard(catalog.CategoryWeapon),
		Room:      room,
	}
	a.log.Infof("Suggesting %s.", t)
	return t, nil
}

// pickCard selects one card of a category for a suggestion. A category
// already pinned to the envelope reuses the pinned card, which nobody can
// refute. Otherwise the unresolved card named in the most pending mysteries
// wins, and ties fall back to catalog order so the choice is reproducible.
func (a *Agent) pickCard(cat catalog.Category) string {
	if candidates := a.notebook.Candidates(cat); len(candidates) == 1 {
		a.log.Debugf("Exploiting the pinned %q.", candidates[0])
		return candidates[0]
	}
	unresolved := a.notebook.Unresolved(cat)
	best := unresolved[0]
	bestCount := a.notebook.ConstraintMentions(best)
	for _, card := range unresolved[1:] {
		if count := a.notebook.ConstraintMentions(card); count > bestCount {
			best, bestCount = card, count
		}
	}
	if bestCount > 0 {
		a.log.Debugf("Targeting %q, named in %d open mysteries.", best, bestCount)
	} else {
		a.log.Debugf("Exploring with %q.", best)
	}
	return best
}

// DecideAccusation accuses only on full certainty. A nearly settled notebook
// keeps quiet; a wrong accusation ends the agent's game.
func (a *Agent) DecideAccusation() (knowledge.Triple, bool, error) {
	if err := a.advance(PhaseAwaitingAccusation, PhaseTurnComplete); err != nil {
		return knowledge.Triple{}, false, err
	}
	t, ok := a.notebook.Solution()
	if !ok {
		return knowledge.Triple{}, false, nil
	}
	a.log.Infof("Certain of the solution: %s.", t)
	return t, true, nil
}

// DecideRefutation picks the card to show against a suggestion, or "" when
// the hand holds none of the three. Cards already shown before leak nothing
// new and go first; fresh cards follow the weapon, character, room order.
func (a *Agent) DecideRefutation(s knowledge.Suggestion) (string, error) {
	var matching []string
	for _, card := range []string{s.Weapon, s.Character, s.Room} {
		if _, ok := a.hand[card]; ok {
			matching = append(matching, card)
		}
	}
	if len(matching) == 0 {
		return "", nil
	}
	choice := matching[0]
	for _, card := range matching {
		if _, leaked := a.shown[card]; leaked {
			choice = card
			break
		}
	}
	a.shown[choice] = struct{}{}
	a.log.Debugf("Refuting with %q.", choice)
	return choice, nil
}
