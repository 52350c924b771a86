package cli

import (
	"fmt"
	"strings"

	"gridclue/internal/board"
	"gridclue/internal/events"
	"gridclue/internal/player"
)

// TableRenderer implements events.Listener and prints the public state of a
// running game to the console. It rebuilds pawn positions purely from the
// event stream, so it never sees hidden information.
type TableRenderer struct {
	layout    *board.Layout
	showBoard bool

	order     []string
	tokens    map[string]string
	positions map[string]board.Pos
	rooms     map[string]string
	out       map[string]bool
}

// NewTableRenderer creates a renderer. A board drawing is included on each
// turn when showBoard is set; all-AI simulations keep it off.
func NewTableRenderer(layout *board.Layout, showBoard bool) *TableRenderer {
	return &TableRenderer{
		layout:    layout,
		showBoard: showBoard,
		tokens:    make(map[string]string),
		positions: make(map[string]board.Pos),
		rooms:     make(map[string]string),
		out:       make(map[string]bool),
	}
}

// HandleEvent is the central dispatcher for rendering events.
func (r *TableRenderer) HandleEvent(e events.Event) {
	switch event := e.(type) {
	case events.GameReadyEvent:
		C.Header.Println("\n--- The table is set ---")
		for i, seat := range event.Seats {
			r.order = append(r.order, seat.Name)
			r.tokens[seat.Name] = fmt.Sprintf("P%d", i+1)
			r.positions[seat.Name] = seat.Pos
			kind := "AI"
			if seat.IsHuman {
				kind = "human"
			}
			C.Info.Printf("  %s %s (%s)\n", r.token(seat.Name), ColorizeCard(seat.Name), kind)
		}
	case events.HandDealtEvent:
		C.Info.Printf("%d cards dealt to %s.\n", event.Cards, ColorizeCard(event.PlayerName))
	case events.TurnStartEvent:
		C.Header.Printf("\n--- Turn %d: %s ---\n", event.TurnNumber, ColorizeCard(event.PlayerName))
		if r.showBoard {
			r.renderBoard()
		}
	case events.DiceRolledEvent:
		C.Info.Printf("%s rolls a %d.\n", ColorizeCard(event.PlayerName), event.Roll)
	case events.PawnMovedEvent:
		r.positions[event.PlayerName] = event.To
		r.rooms[event.PlayerName] = event.Room
		if event.Room != "" {
			C.Info.Printf("%s enters the %s.\n", ColorizeCard(event.PlayerName), event.Room)
		} else if event.From != event.To {
			C.Info.Printf("%s walks to (%d,%d).\n", ColorizeCard(event.PlayerName), event.To.R, event.To.C)
		}
	case events.PassageUsedEvent:
		if anchor, ok := r.layout.Anchor(event.To); ok {
			r.positions[event.PlayerName] = anchor
		}
		r.rooms[event.PlayerName] = event.To
		C.Info.Printf("%s slips through the secret passage from the %s to the %s.\n",
			ColorizeCard(event.PlayerName), event.From, event.To)
	case events.PawnDraggedEvent:
		if anchor, ok := r.layout.Anchor(event.Room); ok {
			r.positions[event.PlayerName] = anchor
		}
		r.rooms[event.PlayerName] = event.Room
		C.Info.Printf("-> %s is dragged to the %s.\n", ColorizeCard(event.PlayerName), event.Room)
	case events.WeaponMovedEvent:
		C.Info.Printf("-> The %s is carried to the %s.\n", event.Weapon, event.To)
	case events.SuggestionMadeEvent:
		s := event.Suggestion
		C.Info.Printf("%s suggests: %s with the %s in the %s.\n",
			ColorizeCard(event.SuggesterName), ColorizeCard(s.Character), s.Weapon, s.Room)
	case events.RefutedEvent:
		C.Info.Printf("-> %s shows a card to %s.\n", ColorizeCard(event.RefuterName), ColorizeCard(event.SuggesterName))
	case events.NoRefuteEvent:
		C.Warn.Println("-> No player could show a card!")
	case events.AccusationEvent:
		a := event.Accusation
		C.Header.Printf("%s ACCUSES: %s with the %s in the %s.\n",
			ColorizeCard(event.PlayerName), ColorizeCard(a.Character), a.Weapon, a.Room)
		if event.Correct {
			C.Yes.Printf("The accusation is CORRECT! %s wins!\n", ColorizeCard(event.PlayerName))
		} else {
			C.No.Println("The accusation is WRONG!")
		}
	case events.PlayerEliminatedEvent:
		r.out[event.PlayerName] = true
		C.No.Printf("%s is out of the game, but keeps refuting.\n", ColorizeCard(event.PlayerName))
	case events.GameOverEvent:
		r.renderGameResult(event)
	}
}

func (r *TableRenderer) renderGameResult(event events.GameOverEvent) {
	C.Header.Println("\n--- GAME OVER ---")
	if event.Winner != "" {
		C.Yes.Printf("%s wins after %d turns.\n", ColorizeCard(event.Winner), event.Turns)
	} else {
		C.Warn.Println("Nobody cracked the case before the turn limit.")
	}
	s := event.Solution
	C.Info.Printf("It was %s with the %s in the %s.\n", ColorizeCard(s.Character), s.Weapon, s.Room)
}

// renderBoard draws the 11x11 grid with two-character cells: room codes at
// their anchors, pawn tokens wherever pawns stand, dots elsewhere.
func (r *TableRenderer) renderBoard() {
	codes := make(map[board.Pos]string)
	for _, room := range r.layout.Rooms() {
		anchor, ok := r.layout.Anchor(room)
		if !ok {
			continue
		}
		codes[anchor] = roomCode(room)
	}

	for row := 0; row < board.GridSize; row++ {
		cells := make([]string, 0, board.GridSize)
		for col := 0; col < board.GridSize; col++ {
			p := board.Pos{R: row, C: col}
			cell := " ·"
			if code, ok := codes[p]; ok {
				cell = C.Debug.Sprint(code)
			}
			for _, name := range r.order {
				if r.positions[name] == p && !r.out[name] {
					cell = r.token(name)
					break
				}
			}
			cells = append(cells, cell)
		}
		fmt.Println(strings.Join(cells, " "))
	}

	for _, name := range r.order {
		where := fmt.Sprintf("(%d,%d)", r.positions[name].R, r.positions[name].C)
		if room := r.rooms[name]; room != "" {
			where = room
		}
		if r.out[name] {
			where += " (eliminated)"
		}
		fmt.Printf("  %s %s: %s\n", r.token(name), ColorizeCard(name), where)
	}
}

func (r *TableRenderer) token(name string) string {
	if c, ok := SuspectColors[name]; ok {
		return c.Sprint(r.tokens[name])
	}
	return r.tokens[name]
}

// roomCode shortens a room name to its two-rune cell label. Custom decks
// may name rooms beyond ASCII, so the cut is by runes, not bytes.
func roomCode(room string) string {
	runes := []rune(room)
	if len(runes) > 2 {
		runes = runes[:2]
	}
	return string(runes)
}

// DisplayNotes renders a player's notebook, when it keeps one.
func DisplayNotes(p player.Player) {
	if nb := p.Notebook(); nb != nil {
		fmt.Println()
		C.Header.Printf("--- Notes for %s ---\n", ColorizeCard(p.Name()))
		RenderNotes(nb)
	}
}
