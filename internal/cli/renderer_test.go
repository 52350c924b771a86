package cli

import "testing"

func TestRoomCode(t *testing.T) {
	t.Run("it keeps a short name whole", func(t *testing.T) {
		if got := roomCode("Up"); got != "Up" {
			t.Errorf("Expected the label %q, but got %q", "Up", got)
		}
	})

	t.Run("it shortens a long name to two letters", func(t *testing.T) {
		if got := roomCode("Conservatory"); got != "Co" {
			t.Errorf("Expected the label %q, but got %q", "Co", got)
		}
	})

	t.Run("it cuts between runes, not bytes", func(t *testing.T) {
		// GIVEN a custom deck room starting with a two-byte rune
		if got := roomCode("Étude"); got != "Ét" {
			t.Errorf("Expected the label %q, but got %q", "Ét", got)
		}
	})
}
