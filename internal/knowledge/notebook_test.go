package knowledge

import (
	"errors"
	"gridclue/internal/catalog"
	"io"
	"slices"
	"testing"

	"github.com/sirupsen/logrus"
)

// setupNotebook creates a clean four-player notebook owned by Player 1.
// Each test gets its own instance so tests stay isolated.
func setupNotebook() *Notebook {
	log := logrus.New()
	log.SetOutput(io.Discard)
	players := []string{"Player 1", "Player 2", "Player 3", "Player 4"}
	n, _ := New(catalog.Default(), "Player 1", players, log)
	return n
}

func TestNewValidation(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	t.Run("it rejects the reserved envelope name", func(t *testing.T) {
		_, err := New(catalog.Default(), "Player 1", []string{"Player 1", EnvelopeHolder}, log)
		if err == nil {
			t.Errorf("Expected an error for a player named %q, got nil", EnvelopeHolder)
		}
	})

	t.Run("it rejects an owner who is not seated", func(t *testing.T) {
		_, err := New(catalog.Default(), "Ghost", []string{"Player 1", "Player 2"}, log)
		if !errors.Is(err, ErrUnknownPlayer) {
			t.Errorf("Expected ErrUnknownPlayer, got %v", err)
		}
	})

	t.Run("it rejects duplicate players", func(t *testing.T) {
		_, err := New(catalog.Default(), "Player 1", []string{"Player 1", "Player 1"}, log)
		if err == nil {
			t.Errorf("Expected an error for duplicate players, got nil")
		}
	})

	t.Run("it lists holders as the seated players plus the envelope", func(t *testing.T) {
		n, err := New(catalog.Default(), "Player 1", []string{"Player 1", "Player 2"}, log)
		if err != nil {
			t.Fatal(err)
		}
		want := []string{"Player 1", "Player 2", EnvelopeHolder}
		if !slices.Equal(n.Holders(), want) {
			t.Errorf("Expected holders %v, but got %v", want, n.Holders())
		}
	})
}

func TestRecordDealt(t *testing.T) {
	// GIVEN a fresh notebook
	n := setupNotebook()

	// WHEN we learn a definitive fact (Player 2 holds the Wrench)
	if err := n.RecordDealt("Player 2", "Wrench"); err != nil {
		t.Fatalf("Expected the record to succeed, got error: %v", err)
	}

	// THEN the Wrench row should be settled for every holder
	t.Run("it marks the holder as has", func(t *testing.T) {
		if n.Fact("Wrench", "Player 2") != FactHas {
			t.Errorf("Expected Player 2 to hold the Wrench, but the fact was not has")
		}
	})

	t.Run("it marks every other player as lacks", func(t *testing.T) {
		for _, p := range []string{"Player 1", "Player 3", "Player 4"} {
			if n.Fact("Wrench", p) != FactLacks {
				t.Errorf("Expected %s to lack the Wrench, but the fact was not lacks", p)
			}
		}
	})

	t.Run("it marks the envelope as lacks", func(t *testing.T) {
		if n.Fact("Wrench", EnvelopeHolder) != FactLacks {
			t.Errorf("Expected the envelope to lack the Wrench, but the fact was not lacks")
		}
	})

	t.Run("it drops the Wrench from the weapon candidates", func(t *testing.T) {
		for _, card := range n.Candidates(catalog.CategoryWeapon) {
			if card == "Wrench" {
				t.Errorf("Expected the Wrench to be eliminated as a candidate, but it is still listed")
			}
		}
	})
}

func TestRecordOwnHand(t *testing.T) {
	// GIVEN a fresh notebook
	n := setupNotebook()

	// WHEN the owner records a dealt hand
	hand := []string{"Miss Scarlett", "Candlestick", "Study", "Hall"}
	if err := n.RecordOwnHand(hand); err != nil {
		t.Fatalf("Expected the hand to record cleanly, got error: %v", err)
	}

	// THEN the owner's column is complete knowledge
	t.Run("it marks every hand card as has", func(t *testing.T) {
		for _, card := range hand {
			if n.Fact(card, "Player 1") != FactHas {
				t.Errorf("Expected Player 1 to hold %q, but the fact was not has", card)
			}
		}
	})

	t.Run("it marks every other card as lacks for the owner", func(t *testing.T) {
		if n.Fact("Professor Plum", "Player 1") != FactLacks {
			t.Errorf("Expected Player 1 to lack Professor Plum, but the fact was not lacks")
		}
		if n.Fact("Kitchen", "Player 1") != FactLacks {
			t.Errorf("Expected Player 1 to lack the Kitchen, but the fact was not lacks")
		}
	})
}

func TestLocateByElimination(t *testing.T) {
	// GIVEN a notebook that has ruled the Rope out for three of four players
	n := setupNotebook()
	if err := n.RecordOwnHand([]string{"Miss Scarlett", "Candlestick", "Study", "Hall"}); err != nil {
		t.Fatal(err)
	}
	for _, p := range []string{"Player 2", "Player 3"} {
		if err := n.RecordCannotHave(p, "Rope"); err != nil {
			t.Fatal(err)
		}
	}
	if n.Fact("Rope", "Player 4") != FactUnknown {
		t.Fatalf("Expected the Rope to still be open for Player 4")
	}

	// WHEN the last competing holder is eliminated
	if err := n.RecordCannotHave("Player 4", "Rope"); err != nil {
		t.Fatal(err)
	}

	// THEN only the envelope is left for the Rope
	if n.Fact("Rope", EnvelopeHolder) != FactHas {
		t.Errorf("Expected the envelope to hold the Rope, but the fact was not has")
	}

	t.Run("it closes the weapon category around the Rope", func(t *testing.T) {
		got := n.Candidates(catalog.CategoryWeapon)
		if len(got) != 1 || got[0] != "Rope" {
			t.Errorf("Expected the weapon candidates to collapse to [Rope], got %v", got)
		}
		if n.Fact("Dagger", EnvelopeHolder) != FactLacks {
			t.Errorf("Expected the envelope to lack the Dagger once the Rope is pinned")
		}
	})
}

func TestEnvelopeByCategoryElimination(t *testing.T) {
	// GIVEN a notebook that has located five of the six weapons with players
	n := setupNotebook()
	located := map[string]string{
		"Candlestick": "Player 1",
		"Dagger":      "Player 2",
		"Lead Pipe":   "Player 2",
		"Revolver":    "Player 3",
		"Wrench":      "Player 4",
	}
	for card, holder := range located {
		if err := n.RecordDealt(holder, card); err != nil {
			t.Fatal(err)
		}
	}

	// THEN the last weapon must be the envelope's
	if n.Fact("Rope", EnvelopeHolder) != FactHas {
		t.Errorf("Expected the envelope to hold the Rope by elimination, but the fact was not has")
	}
}

func TestPassesMarkLacks(t *testing.T) {
	t.Run("it marks every asked player when nobody refutes", func(t *testing.T) {
		// GIVEN a fresh notebook
		n := setupNotebook()

		// WHEN a suggestion passes around the table unrefuted
		s := Suggestion{
			Suggester: "Player 1",
			Character: "Professor Plum", Weapon: "Rope", Room: "Kitchen",
			Asked: []string{"Player 2", "Player 3", "Player 4"},
		}
		if err := n.RecordSuggestion(s); err != nil {
			t.Fatalf("Expected the suggestion to record cleanly, got error: %v", err)
		}

		// THEN every asked player lacks all three cards
		for _, p := range s.Asked {
			for _, card := range s.Triple().Cards() {
				if n.Fact(card, p) != FactLacks {
					t.Errorf("Expected %s to lack %q after passing, but the fact was not lacks", p, card)
				}
			}
		}
	})

	t.Run("it only marks players ahead of the refuter", func(t *testing.T) {
		// GIVEN a suggestion refuted by the second asked player
		n := setupNotebook()
		s := Suggestion{
			Suggester: "Player 1",
			Character: "Professor Plum", Weapon: "Rope", Room: "Kitchen",
			Asked:   []string{"Player 2", "Player 3", "Player 4"},
			Refuter: "Player 3",
			Shown:   "Rope",
		}
		if err := n.RecordSuggestion(s); err != nil {
			t.Fatal(err)
		}

		// THEN the player past the refuter is untouched
		if n.Fact("Professor Plum", "Player 2") != FactLacks {
			t.Errorf("Expected Player 2 to lack Professor Plum after passing")
		}
		if n.Fact("Professor Plum", "Player 4") != FactUnknown {
			t.Errorf("Expected Player 4 to stay unknown for Professor Plum, it was never asked")
		}
		if n.Fact("Rope", "Player 3") != FactHas {
			t.Errorf("Expected Player 3 to hold the shown Rope")
		}
	})

	t.Run("it skips a pass for a card the player is known to hold", func(t *testing.T) {
		// GIVEN the observer knows Player 2 holds the Rope
		n := setupNotebook()
		if err := n.RecordDealt("Player 2", "Rope"); err != nil {
			t.Fatal(err)
		}

		// WHEN a suggestion naming the Rope passes Player 2 by
		s := Suggestion{
			Suggester: "Player 3",
			Character: "Professor Plum", Weapon: "Rope", Room: "Kitchen",
			Asked: []string{"Player 4", "Player 1", "Player 2"},
		}
		err := n.RecordSuggestion(s)

		// THEN the known fact survives instead of tripping a contradiction
		if err != nil {
			t.Fatalf("Expected the pass over a known card to be skipped, got error: %v", err)
		}
		if n.Fact("Rope", "Player 2") != FactHas {
			t.Errorf("Expected Player 2 to still hold the Rope, but the fact was retracted")
		}
	})
}

func TestInvisibleRefutationMystery(t *testing.T) {
	// GIVEN a suggestion between two other players, refuted out of sight
	n := setupNotebook()
	s := Suggestion{
		Suggester: "Player 2",
		Character: "Miss Scarlett", Weapon: "Rope", Room: "Kitchen",
		Asked:   []string{"Player 3", "Player 4", "Player 1"},
		Refuter: "Player 3",
	}

	// WHEN it is recorded
	if err := n.RecordSuggestion(s); err != nil {
		t.Fatalf("Expected the suggestion to record cleanly, got error: %v", err)
	}

	// THEN a three-card mystery is pending for the refuter
	if len(n.pending) != 1 {
		t.Fatalf("Expected 1 pending mystery, got %d", len(n.pending))
	}
	if len(n.pending[0].cards) != 3 {
		t.Errorf("Expected the mystery to name 3 cards, got %d", len(n.pending[0].cards))
	}

	t.Run("it narrows the mystery as cards are ruled out", func(t *testing.T) {
		// WHEN the refuter is shown to lack the Kitchen
		if err := n.RecordCannotHave("Player 3", "Kitchen"); err != nil {
			t.Fatal(err)
		}

		// THEN the mystery is down to two cards
		if len(n.pending) != 1 || len(n.pending[0].cards) != 2 {
			t.Fatalf("Expected a 2-card mystery, got %v", n.PendingConstraints())
		}
	})

	t.Run("it resolves the mystery and cascades", func(t *testing.T) {
		// WHEN independent elimination removes the Rope as well
		if err := n.RecordDealt("Player 4", "Rope"); err != nil {
			t.Fatal(err)
		}

		// THEN the refuter must have shown Miss Scarlett
		if n.Fact("Miss Scarlett", "Player 3") != FactHas {
			t.Errorf("Expected Player 3 to hold Miss Scarlett, but the fact was not has")
		}
		// AND the resolution cascades to every other holder
		for _, h := range []string{"Player 1", "Player 2", "Player 4", EnvelopeHolder} {
			if n.Fact("Miss Scarlett", h) != FactLacks {
				t.Errorf("Expected %s to lack Miss Scarlett after the cascade", h)
			}
		}
		if len(n.pending) != 0 {
			t.Errorf("Expected no pending mysteries, got %d", len(n.pending))
		}
	})
}

func TestSatisfiedMysteryIsDischarged(t *testing.T) {
	// GIVEN a pending mystery for Player 2
	n := setupNotebook()
	s := Suggestion{
		Suggester: "Player 3",
		Character: "Miss Scarlett", Weapon: "Rope", Room: "Kitchen",
		Asked:   []string{"Player 4", "Player 1", "Player 2"},
		Refuter: "Player 2",
	}
	if err := n.RecordSuggestion(s); err != nil {
		t.Fatal(err)
	}

	// WHEN one of its cards turns out to be with Player 2 anyway
	if err := n.RecordShown("Player 2", "Rope"); err != nil {
		t.Fatal(err)
	}

	// THEN the mystery is satisfied and dropped without further inference
	if len(n.pending) != 0 {
		t.Errorf("Expected the satisfied mystery to be discharged, %d remain", len(n.pending))
	}
	if n.Fact("Miss Scarlett", "Player 2") != FactUnknown {
		t.Errorf("Expected Miss Scarlett to stay unknown for Player 2")
	}
}

func TestIdempotence(t *testing.T) {
	t.Run("replaying a dealt record is a no-op", func(t *testing.T) {
		// GIVEN a notebook that already knows Player 2 holds the Wrench
		n := setupNotebook()
		if err := n.RecordDealt("Player 2", "Wrench"); err != nil {
			t.Fatal(err)
		}
		before := n.UnknownCount()

		// WHEN the same event is replayed
		if err := n.RecordDealt("Player 2", "Wrench"); err != nil {
			t.Fatalf("Expected the replay to be accepted, got error: %v", err)
		}

		// THEN nothing changes
		if n.UnknownCount() != before {
			t.Errorf("Expected the unknown count to stay at %d, got %d", before, n.UnknownCount())
		}
	})

	t.Run("replaying a suggestion does not stack mysteries", func(t *testing.T) {
		// GIVEN a recorded invisible refutation
		n := setupNotebook()
		s := Suggestion{
			Suggester: "Player 2",
			Character: "Miss Scarlett", Weapon: "Rope", Room: "Kitchen",
			Asked:   []string{"Player 3", "Player 4", "Player 1"},
			Refuter: "Player 3",
		}
		if err := n.RecordSuggestion(s); err != nil {
			t.Fatal(err)
		}

		// WHEN the same suggestion is replayed
		if err := n.RecordSuggestion(s); err != nil {
			t.Fatalf("Expected the replay to be accepted, got error: %v", err)
		}

		// THEN only one mystery is pending
		if len(n.pending) != 1 {
			t.Errorf("Expected 1 pending mystery after the replay, got %d", len(n.pending))
		}
	})
}

func TestMonotonicity(t *testing.T) {
	// GIVEN a notebook and a stream of observed events
	n := setupNotebook()
	events := []func(n *Notebook) error{
		func(n *Notebook) error {
			return n.RecordOwnHand([]string{"Miss Scarlett", "Candlestick", "Study", "Hall"})
		},
		func(n *Notebook) error { return n.RecordDealt("Player 2", "Wrench") },
		func(n *Notebook) error {
			return n.RecordSuggestion(Suggestion{
				Suggester: "Player 2",
				Character: "Colonel Mustard", Weapon: "Rope", Room: "Kitchen",
				Asked:   []string{"Player 3", "Player 4", "Player 1"},
				Refuter: "Player 4",
			})
		},
		func(n *Notebook) error { return n.RecordCannotHave("Player 4", "Kitchen") },
		func(n *Notebook) error { return n.RecordShown("Player 3", "Lounge") },
	}

	last := n.UnknownCount()
	for i, ev := range events {
		// WHEN each event lands
		if err := ev(n); err != nil {
			t.Fatalf("Event %d failed: %v", i, err)
		}

		// THEN the unknown count never grows and has facts survive
		if got := n.UnknownCount(); got > last {
			t.Errorf("Expected the unknown count to be non-increasing, went %d -> %d at event %d", last, got, i)
		} else {
			last = got
		}
		if n.Fact("Miss Scarlett", "Player 1") != FactHas {
			t.Errorf("Expected the owner's Miss Scarlett fact to survive event %d", i)
		}
	}
}

func TestFailFast(t *testing.T) {
	t.Run("it rejects a card outside the universe", func(t *testing.T) {
		n := setupNotebook()
		before := n.UnknownCount()
		err := n.RecordDealt("Player 2", "Leaden Mace")
		if !errors.Is(err, ErrUnknownCard) {
			t.Errorf("Expected ErrUnknownCard, got %v", err)
		}
		if n.UnknownCount() != before {
			t.Errorf("Expected the rejected event to leave the notebook untouched")
		}
	})

	t.Run("it rejects an unknown player", func(t *testing.T) {
		n := setupNotebook()
		if err := n.RecordDealt("Player 9", "Wrench"); !errors.Is(err, ErrUnknownPlayer) {
			t.Errorf("Expected ErrUnknownPlayer, got %v", err)
		}
	})

	t.Run("it rejects a miscategorized suggestion", func(t *testing.T) {
		n := setupNotebook()
		err := n.RecordSuggestion(Suggestion{
			Suggester: "Player 1",
			Character: "Rope", Weapon: "Professor Plum", Room: "Kitchen",
			Asked: []string{"Player 2", "Player 3", "Player 4"},
		})
		if err == nil {
			t.Errorf("Expected an error for swapped character and weapon slots, got nil")
		}
	})

	t.Run("it rejects a refuter that was never asked", func(t *testing.T) {
		n := setupNotebook()
		err := n.RecordSuggestion(Suggestion{
			Suggester: "Player 1",
			Character: "Professor Plum", Weapon: "Rope", Room: "Kitchen",
			Asked:   []string{"Player 2", "Player 3"},
			Refuter: "Player 4",
		})
		if err == nil {
			t.Errorf("Expected an error for a refuter outside the asked list, got nil")
		}
	})

	t.Run("it surfaces a second holder as a contradiction", func(t *testing.T) {
		n := setupNotebook()
		if err := n.RecordDealt("Player 2", "Wrench"); err != nil {
			t.Fatal(err)
		}
		if err := n.RecordDealt("Player 3", "Wrench"); !errors.Is(err, ErrContradiction) {
			t.Errorf("Expected ErrContradiction for a second Wrench holder, got %v", err)
		}
	})

	t.Run("it surfaces a refuter with nothing to show", func(t *testing.T) {
		// GIVEN Player 3 is known to lack all three suggested cards
		n := setupNotebook()
		for _, card := range []string{"Miss Scarlett", "Rope", "Kitchen"} {
			if err := n.RecordCannotHave("Player 3", card); err != nil {
				t.Fatal(err)
			}
		}

		// WHEN Player 3 nevertheless refutes out of sight
		err := n.RecordSuggestion(Suggestion{
			Suggester: "Player 2",
			Character: "Miss Scarlett", Weapon: "Rope", Room: "Kitchen",
			Asked:   []string{"Player 3", "Player 4", "Player 1"},
			Refuter: "Player 3",
		})

		// THEN the impossible refutation is reported
		if !errors.Is(err, ErrContradiction) {
			t.Errorf("Expected ErrContradiction, got %v", err)
		}
	})
}
