package cli

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strconv"
	"strings"

	"gridclue/internal/ai"
	"gridclue/internal/board"
	"gridclue/internal/catalog"
	"gridclue/internal/game"
	"gridclue/internal/knowledge"

	"github.com/peterh/liner"
	"github.com/sirupsen/logrus"
)

// CLI manages all command-line interactions.
type CLI struct {
	log  *logrus.Logger
	line *liner.State
}

// NewCLI creates a new command-line interface manager.
func NewCLI(log *logrus.Logger) *CLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	return &CLI{
		log:  log,
		line: line,
	}
}

// Run is the main entry point for the CLI application.
func (c *CLI) Run(args []string, cat *catalog.Catalog, rand *rand.Rand) error {
	defer c.line.Close()
	if len(args) < 1 {
		c.printUsage()
		return errors.New("no command provided")
	}

	switch args[0] {
	case "detective":
		return c.runDetectiveMode(cat)
	case "start":
		if len(args) != 3 {
			c.printUsage()
			return errors.New("invalid arguments for 'start' command")
		}
		numHumans, _ := strconv.Atoi(args[1])
		numAI, _ := strconv.Atoi(args[2])
		return c.runBoardMode(cat, numHumans, numAI, rand)
	default:
		c.printUsage()
		return fmt.Errorf("unknown command '%s'", args[0])
	}
}

func (c *CLI) runBoardMode(cat *catalog.Catalog, numHumans, numAI int, rand *rand.Rand) error {
	C.Header.Printf("--- Starting a table: %d human(s), %d AI ---\n", numHumans, numAI)

	layout, err := board.NewLayout(cat.Rooms)
	if err != nil {
		return err
	}

	// Create a builder and subscribe the renderer to it. The board drawing
	// only pays off when a person is watching.
	builder := game.NewBuilder(cat, c.log, rand)
	builder.EventManager().Subscribe(NewTableRenderer(layout, numHumans > 0))

	g, err := builder.WithHumans(numHumans).WithAIs(numAI).WithConsole(c).Build()
	if err != nil {
		return fmt.Errorf("failed to build game: %w", err)
	}

	winner, err := g.Run()
	if err != nil {
		return err
	}

	// If there was a winner, show the notebook that cracked the case.
	if winner != "" {
		for _, s := range g.Seats {
			if s.Player.Name() == winner {
				DisplayNotes(s.Player)
				break
			}
		}
	}
	return nil
}

func (c *CLI) runDetectiveMode(cat *catalog.Catalog) error {
	C.Info.Println("\n--- Starting Detective Mode Co-Pilot ---")
	numPlayers := c.promptForInt("How many players are in the real game? (2-6): ", 2, 6)
	var playerNames []string
	for i := 0; i < numPlayers; i++ {
		name := c.promptForString(fmt.Sprintf("Enter name for Player %d (clockwise): ", i+1))
		playerNames = append(playerNames, name)
	}
	myPlayerName := c.promptForSelection("Which player are you?", playerNames)
	C.Info.Println("\nSelect the cards in your hand. Type 'done' when finished.")
	myHand := c.promptForCards(cat, true, 0)

	// Set up the notebook-keeping agent as a co-pilot.
	agent := ai.NewAgent(c.log, rand.New(rand.NewSource(1)))
	pNamesCopy := make([]string, len(playerNames))
	copy(pNamesCopy, playerNames)
	if err := agent.Setup(cat.Clone(), pNamesCopy, myPlayerName); err != nil {
		return err
	}
	if err := agent.ReceiveHand(myHand); err != nil {
		return err
	}

	C.Info.Println("\nDetective Mode is active! Your co-pilot is ready.")
	RenderNotes(agent.Notebook())
	c.printDetectiveHelp()

	// Main command loop for detective mode
	for {
		input, err := c.line.Prompt("(detective) ")
		if err != nil {
			if err == liner.ErrPromptAborted || err == io.EOF {
				C.Info.Println("\nGoodbye!")
				return nil
			}
			return fmt.Errorf("error reading line: %w", err)
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		c.line.AppendHistory(input)
		parts := strings.Fields(input)
		cmd := strings.ToLower(parts[0])

		switch cmd {
		case "log", "l":
			c.handleLogCommand(agent)
		case "reveal", "r":
			c.handleRevealCommand(agent)
		case "suggest", "s":
			c.handleSuggestCommand(agent)
		case "accuse", "a":
			c.handleAccuseCommand(agent)
		case "notes", "n":
			RenderNotes(agent.Notebook())
		case "hand", "ha":
			c.handleHandCommand(agent)
		case "help", "h":
			c.printDetectiveHelp()
		case "quit", "q":
			C.Info.Println("Exiting detective mode.")
			return nil
		default:
			C.Warn.Printf("Unknown command '%s'. Type 'help' for a list of commands.\n", cmd)
		}
	}
}

// handleLogCommand records one observed table turn: the suggestion, who
// passed, who refuted, and the card when the user was shown one. The asked
// list is reconstructed from the clockwise seating order.
func (c *CLI) handleLogCommand(agent *ai.Agent) {
	C.Info.Println("\n--- Log a Game Turn ---")
	nb := agent.Notebook()
	cat := nb.Catalog()

	suggester := c.promptForSelection("Who made the suggestion?", nb.Players())
	character := c.promptForSelection("Which character was suggested?", cat.Characters)
	weapon := c.promptForSelection("Which weapon?", cat.Weapons)
	room := c.promptForSelection("In which room?", cat.Rooms)

	var others []string
	for _, name := range nb.Players() {
		if name != suggester {
			others = append(others, name)
		}
	}
	refuter := c.promptForSelection("Who showed a card?", append(others, "No One"))
	if refuter == "No One" {
		refuter = ""
	}

	s := knowledge.Suggestion{
		Suggester: suggester,
		Character: character,
		Weapon:    weapon,
		Room:      room,
		Asked:     askedBetween(nb.Players(), suggester, refuter),
		Refuter:   refuter,
	}
	if refuter != "" && suggester == agent.Name() {
		s.Shown = c.promptForSelection("Which card were you shown?", []string{character, weapon, room})
	}

	if err := agent.ObserveSuggestion(s); err != nil {
		C.Warn.Printf("That turn contradicts the notebook: %v\n", err)
		C.Warn.Println("The notes may be inconsistent now. Double-check your entries.")
		return
	}
	C.Info.Println("Turn logged. Here are your updated notes:")
	RenderNotes(agent.Notebook())
}

// askedBetween lists the players queried for a suggestion, clockwise from
// the suggester up to and including the refuter. An empty refuter means
// everyone was asked.
func askedBetween(players []string, suggester, refuter string) []string {
	start := 0
	for i, name := range players {
		if name == suggester {
			start = i
			break
		}
	}

	var asked []string
	for i := 1; i < len(players); i++ {
		name := players[(start+i)%len(players)]
		asked = append(asked, name)
		if name == refuter {
			break
		}
	}
	return asked
}

func (c *CLI) handleRevealCommand(agent *ai.Agent) {
	C.Info.Println("\n--- Log a Revealed Card ---")
	nb := agent.Notebook()

	var others []string
	for _, name := range nb.Players() {
		if name != agent.Name() {
			others = append(others, name)
		}
	}
	pName := c.promptForSelection("Which player revealed a card?", others)
	C.Info.Println("Which card did they reveal?")
	revealedCards := c.promptForCards(nb.Catalog(), true, 1)
	if len(revealedCards) == 0 {
		return
	}

	if err := agent.ObserveReveal(pName, revealedCards[0]); err != nil {
		C.Warn.Printf("That reveal contradicts the notebook: %v\n", err)
		return
	}
	C.Info.Println("Revealed card logged.")
	RenderNotes(agent.Notebook())
}

func (c *CLI) handleSuggestCommand(agent *ai.Agent) {
	C.Header.Println("\n--- Co-Pilot Suggestion ---")
	room := c.promptForSelection("Which room will you suggest in?", agent.Notebook().Catalog().Rooms)

	agent.BeginTurn()
	suggestion, err := agent.DecideSuggestion(room)
	if err != nil {
		C.Warn.Printf("No suggestion available: %v\n", err)
		return
	}
	C.Info.Printf("Propose: %s with the %s in the %s\n",
		ColorizeCard(suggestion.Character), suggestion.Weapon, suggestion.Room)
}

func (c *CLI) handleAccuseCommand(agent *ai.Agent) {
	C.Header.Println("\n--- Accusation Check ---")
	agent.BeginTurn()
	accusation, certain, err := agent.DecideAccusation()
	if err != nil {
		C.Warn.Printf("No verdict available: %v\n", err)
		return
	}
	if !certain {
		C.Warn.Println("Not certain yet. Keep gathering evidence:")
		renderCandidates(agent.Notebook())
		return
	}
	C.Yes.Printf("Accuse now: %s with the %s in the %s\n",
		ColorizeCard(accusation.Character), accusation.Weapon, accusation.Room)
}

func (c *CLI) handleHandCommand(agent *ai.Agent) {
	C.Header.Println("\n--- Your Hand ---")
	for _, card := range agent.Hand() {
		C.Info.Println(" - " + ColorizeCard(card))
	}
}
