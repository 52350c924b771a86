package game

import (
	"fmt"
	"math/rand"

	"gridclue/internal/board"
	"gridclue/internal/catalog"
	"gridclue/internal/events"
	"gridclue/internal/knowledge"
	"gridclue/internal/player"

	"github.com/sirupsen/logrus"
)

// maxTurns caps a session that never produces a correct accusation.
const maxTurns = 100

// Seat pairs a player with their pawn's state on the grid.
type Seat struct {
	Player     player.Player
	Pos        board.Pos
	Room       string // empty while in a hallway
	Dragged    bool   // pulled into Room by someone else's suggestion
	Eliminated bool
	Accused    bool
}

// Game represents the state and logic of a single session.
type Game struct {
	ID           string
	Catalog      *catalog.Catalog
	Layout       *board.Layout
	Seats        []*Seat
	Solution     knowledge.Triple
	EventManager *events.Manager

	weaponRooms map[string]string
	turn        int
	log         logrus.FieldLogger
	rand        *rand.Rand
}

// Run executes the main game loop until somebody wins or the turn limit is
// reached. It returns the winner's name, empty when the game stalls out. An
// error means a player or notebook broke its contract; the session is
// unrecoverable then.
func (g *Game) Run() (string, error) {
	for g.turn = 0; g.turn < maxTurns; g.turn++ {
		seat := g.Seats[g.turn%len(g.Seats)]
		if seat.Eliminated {
			continue
		}

		winner, err := g.playTurn(seat)
		if err != nil {
			return "", err
		}
		if winner == "" {
			if last := g.lastStanding(); last != nil {
				winner = last.Player.Name()
			}
		}
		if winner != "" {
			g.finish(winner, g.turn+1)
			return winner, nil
		}
	}

	g.finish("", maxTurns)
	return "", nil
}

func (g *Game) finish(winner string, turns int) {
	g.EventManager.Publish(events.GameOverEvent{
		GameID:   g.ID,
		Winner:   winner,
		Solution: g.Solution,
		Turns:    turns,
	})
}

// playTurn drives one seat through a full turn. The returned name is set
// when the seat won by accusation.
func (g *Game) playTurn(s *Seat) (string, error) {
	p := s.Player
	p.BeginTurn()
	g.EventManager.Publish(events.TurnStartEvent{TurnNumber: g.turn + 1, PlayerName: p.Name()})

	suggested := false

	// A pawn dragged here by someone else's suggestion may open with one of
	// its own. Taking it spends the walk.
	if s.Dragged && s.Room != "" && p.WantSuggestion(s.Room) {
		if err := g.runSuggestion(s); err != nil {
			return "", err
		}
		suggested = true
	}
	s.Dragged = false

	if !suggested {
		entered, err := g.movePhase(s)
		if err != nil {
			return "", err
		}
		if entered {
			p.EnteredRoom(s.Room)
			if err := g.runSuggestion(s); err != nil {
				return "", err
			}
		}
	}

	return g.accusationPhase(s)
}

// movePhase resolves the movement part of a turn: either a secret passage
// or a dice roll and a walk. It reports whether a room was entered.
func (g *Game) movePhase(s *Seat) (bool, error) {
	p := s.Player

	if s.Room != "" {
		if to, ok := g.Layout.Passage(s.Room); ok {
			use, err := p.DecidePassage(s.Room, to)
			if err != nil {
				return false, err
			}
			if use {
				from := s.Room
				g.placeInRoom(s, to)
				g.EventManager.Publish(events.PassageUsedEvent{PlayerName: p.Name(), From: from, To: to})
				return true, nil
			}
		}
	}

	roll := g.rand.Intn(6) + 1
	g.EventManager.Publish(events.DiceRolledEvent{PlayerName: p.Name(), Roll: roll})

	target, err := p.DecideMoveTarget(s.Room)
	if err != nil {
		return false, err
	}
	if target == "" {
		return false, nil
	}
	return g.walk(s, target, roll), nil
}

// walk advances the pawn along the shortest path toward target, at most
// roll steps, stopping the moment any room is entered. A pawn with no open
// exit stays put, room membership included.
func (g *Game) walk(s *Seat, target string, roll int) bool {
	from, fromRoom := s.Pos, s.Room
	s.Room = ""

	occupied := g.occupiedHallway(s)
	path := g.Layout.Path(s.Pos, target, occupied)
	if len(path) > roll {
		path = path[:roll]
	}
	for _, d := range path {
		next, ok := g.Layout.Step(s.Pos, d, occupied)
		if !ok {
			break
		}
		s.Pos = next
		if room, entered := g.Layout.RoomAt(s.Pos); entered {
			s.Room = room
			break
		}
	}
	if s.Pos == from {
		// Every exit was blocked. The pawn keeps its spot and its room.
		s.Room = fromRoom
		return false
	}

	g.EventManager.Publish(events.PawnMovedEvent{PlayerName: s.Player.Name(), From: from, To: s.Pos, Room: s.Room})
	return s.Room != ""
}

// runSuggestion resolves one suggestion in the seat's current room: tokens
// are dragged, refutation proceeds clockwise, and every seat records the
// exchange. Only the suggester's record carries the shown card.
func (g *Game) runSuggestion(s *Seat) error {
	p := s.Player
	suggestion, err := p.DecideSuggestion(s.Room)
	if err != nil {
		return err
	}
	if suggestion.Room != s.Room {
		return fmt.Errorf("%s suggested the %s while standing in the %s", p.Name(), suggestion.Room, s.Room)
	}
	g.EventManager.Publish(events.SuggestionMadeEvent{SuggesterName: p.Name(), Suggestion: suggestion})

	g.dragSuspect(s, suggestion.Character, s.Room)
	g.moveWeapon(suggestion.Weapon, s.Room)

	query := knowledge.Suggestion{
		Suggester: p.Name(),
		Character: suggestion.Character,
		Weapon:    suggestion.Weapon,
		Room:      suggestion.Room,
	}

	// Clockwise refutation. Eliminated players still show cards.
	var asked []string
	refuter, shown := "", ""
	idx := g.seatIndex(s)
	for i := 1; i < len(g.Seats); i++ {
		other := g.Seats[(idx+i)%len(g.Seats)]
		asked = append(asked, other.Player.Name())
		card, err := other.Player.DecideRefutation(query)
		if err != nil {
			return err
		}
		if card != "" {
			refuter, shown = other.Player.Name(), card
			break
		}
	}

	if refuter != "" {
		g.EventManager.Publish(events.RefutedEvent{SuggesterName: p.Name(), RefuterName: refuter})
	} else {
		g.EventManager.Publish(events.NoRefuteEvent{SuggesterName: p.Name()})
	}

	record := query
	record.Asked = asked
	record.Refuter = refuter
	for _, seat := range g.Seats {
		observed := record
		if seat == s {
			observed.Shown = shown
		}
		if err := seat.Player.ObserveSuggestion(observed); err != nil {
			return fmt.Errorf("recording %s's suggestion: %w", p.Name(), err)
		}
	}
	return nil
}

// accusationPhase gives the seat its end-of-turn chance to accuse. A correct
// accusation wins, a wrong one eliminates the seat.
func (g *Game) accusationPhase(s *Seat) (string, error) {
	p := s.Player
	if s.Accused {
		return "", nil
	}

	accusation, accuse, err := p.DecideAccusation()
	if err != nil {
		return "", err
	}
	if !accuse {
		return "", nil
	}

	s.Accused = true
	correct := accusation == g.Solution
	g.EventManager.Publish(events.AccusationEvent{PlayerName: p.Name(), Accusation: accusation, Correct: correct})
	if correct {
		return p.Name(), nil
	}

	s.Eliminated = true
	g.EventManager.Publish(events.PlayerEliminatedEvent{PlayerName: p.Name()})
	return "", nil
}

// dragSuspect pulls the named suspect's pawn into the room. The suggester
// stays put and eliminated pawns are left alone.
func (g *Game) dragSuspect(suggester *Seat, character, room string) {
	for _, seat := range g.Seats {
		if seat == suggester || seat.Eliminated || seat.Player.Name() != character {
			continue
		}
		g.placeInRoom(seat, room)
		seat.Dragged = true
		g.EventManager.Publish(events.PawnDraggedEvent{PlayerName: character, Room: room})
		return
	}
}

func (g *Game) moveWeapon(weapon, room string) {
	from := g.weaponRooms[weapon]
	g.weaponRooms[weapon] = room
	g.EventManager.Publish(events.WeaponMovedEvent{Weapon: weapon, From: from, To: room})
}

func (g *Game) placeInRoom(s *Seat, room string) {
	if anchor, ok := g.Layout.Anchor(room); ok {
		s.Pos = anchor
	}
	s.Room = room
}

func (g *Game) occupiedHallway(current *Seat) map[board.Pos]struct{} {
	occupied := make(map[board.Pos]struct{})
	for _, s := range g.Seats {
		if s == current || s.Eliminated || s.Room != "" {
			continue
		}
		occupied[s.Pos] = struct{}{}
	}
	return occupied
}

func (g *Game) seatIndex(s *Seat) int {
	for i, seat := range g.Seats {
		if seat == s {
			return i
		}
	}
	return -1
}

// lastStanding returns the sole surviving seat, nil while two or more are
// still in the game.
func (g *Game) lastStanding() *Seat {
	var last *Seat
	for _, s := range g.Seats {
		if s.Eliminated {
			continue
		}
		if last != nil {
			return nil
		}
		last = s
	}
	return last
}
