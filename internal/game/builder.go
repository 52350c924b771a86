package game

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"gridclue/internal/ai"
	"gridclue/internal/board"
	"gridclue/internal/catalog"
	"gridclue/internal/events"
	"gridclue/internal/player"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Builder provides a step-by-step API for constructing a Game object.
type Builder struct {
	cat          *catalog.Catalog
	console      player.Console
	eventManager *events.Manager
	log          *logrus.Logger
	rand         *rand.Rand
	numHumans    int
	numAI        int
}

// NewBuilder creates a new Builder with its required dependencies.
func NewBuilder(cat *catalog.Catalog, logger *logrus.Logger, rand *rand.Rand) *Builder {
	return &Builder{
		cat:          cat,
		log:          logger,
		rand:         rand,
		eventManager: events.NewManager(),
	}
}

// EventManager is a public getter for the unexported field, so callers can
// subscribe renderers before Build publishes the first event.
func (b *Builder) EventManager() *events.Manager {
	return b.eventManager
}

func (b *Builder) WithHumans(n int) *Builder {
	b.numHumans = n
	return b
}

func (b *Builder) WithAIs(n int) *Builder {
	b.numAI = n
	return b
}

// WithConsole supplies the prompt surface human seats talk to.
func (b *Builder) WithConsole(c player.Console) *Builder {
	b.console = c
	return b
}

// Build constructs the Game object after all options have been configured.
func (b *Builder) Build() (*Game, error) {
	total := b.numHumans + b.numAI
	if total < 2 || total > 6 {
		return nil, errors.New("a table seats 2 to 6 players")
	}
	if total > len(b.cat.Characters) {
		return nil, fmt.Errorf("the deck has pawns for %d players at most", len(b.cat.Characters))
	}
	if b.numHumans > 0 && b.console == nil {
		return nil, errors.New("human seats need a console")
	}

	// 1. Seats are named after the suspects, in shuffled order.
	names := make([]string, total)
	copy(names, b.cat.Characters[:total])
	b.rand.Shuffle(len(names), func(i, j int) { names[i], names[j] = names[j], names[i] })

	layout, err := board.NewLayout(b.cat.Rooms)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	log := b.log.WithField("game", id)
	game := &Game{
		ID:           id,
		Catalog:      b.cat,
		Layout:       layout,
		EventManager: b.eventManager,
		weaponRooms:  make(map[string]string),
		log:          log,
		rand:         b.rand,
	}

	// 2. Create players and seat them on random free hallway cells.
	for i, name := range names {
		var p player.Player
		if i < b.numHumans {
			p = player.NewHuman(b.console, log)
		} else {
			// Inject logger and a new random source for each AI
			aiRand := rand.New(rand.NewSource(b.rand.Int63()))
			p = ai.NewAgent(log, aiRand)
		}

		namesCopy := make([]string, len(names))
		copy(namesCopy, names)
		if err := p.Setup(b.cat.Clone(), namesCopy, name); err != nil {
			return nil, fmt.Errorf("seating %s: %w", name, err)
		}

		game.Seats = append(game.Seats, &Seat{Player: p, Pos: game.freeHallwayCell()})
	}

	// 3. Fill the envelope and deal the rest.
	if err := game.deal(); err != nil {
		return nil, err
	}

	seats := make([]events.SeatInfo, len(game.Seats))
	for i, s := range game.Seats {
		seats[i] = events.SeatInfo{Name: s.Player.Name(), IsHuman: s.Player.IsHuman(), Pos: s.Pos}
	}
	b.eventManager.Publish(events.GameReadyEvent{GameID: game.ID, Seats: seats})

	return game, nil
}

// freeHallwayCell picks a random grid cell that is neither a room nor an
// occupied hallway square.
func (g *Game) freeHallwayCell() board.Pos {
	taken := make(map[board.Pos]struct{})
	for _, s := range g.Seats {
		taken[s.Pos] = struct{}{}
	}

	var free []board.Pos
	for r := 0; r < board.GridSize; r++ {
		for c := 0; c < board.GridSize; c++ {
			p := board.Pos{R: r, C: c}
			if _, isRoom := g.Layout.RoomAt(p); isRoom {
				continue
			}
			if _, occupied := taken[p]; occupied {
				continue
			}
			free = append(free, p)
		}
	}
	return free[g.rand.Intn(len(free))]
}

// deal puts one card of each category in the envelope and splits the rest
// round-robin across the seats.
func (g *Game) deal() error {
	deck := make([]string, len(g.Catalog.All()))
	copy(deck, g.Catalog.All())
	g.rand.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })

	sealed := make(map[catalog.Category]bool)
	var cardsToDeal []string
	for i := len(deck) - 1; i >= 0; i-- {
		card := deck[i]
		category, _ := g.Catalog.CategoryOf(card)
		if !sealed[category] {
			g.setSolutionCard(category, card)
			sealed[category] = true
		} else {
			cardsToDeal = append(cardsToDeal, card)
		}
	}
	sort.Strings(cardsToDeal)

	hands := make([][]string, len(g.Seats))
	for i, card := range cardsToDeal {
		seatIndex := i % len(g.Seats)
		hands[seatIndex] = append(hands[seatIndex], card)
	}

	for i, s := range g.Seats {
		if err := s.Player.ReceiveHand(hands[i]); err != nil {
			return fmt.Errorf("dealing to %s: %w", s.Player.Name(), err)
		}
		g.EventManager.Publish(events.HandDealtEvent{PlayerName: s.Player.Name(), Cards: len(hands[i])})
		g.log.Debugf("%s Hand: %v", s.Player.Name(), hands[i])
	}
	g.log.Debugf("Ground Truth Initialized. Solution: %s", g.Solution)
	return nil
}

func (g *Game) setSolutionCard(category catalog.Category, card string) {
	switch category {
	case catalog.CategoryCharacter:
		g.Solution.Character = card
	case catalog.CategoryWeapon:
		g.Solution.Weapon = card
	case catalog.CategoryRoom:
		g.Solution.Room = card
	}
}
