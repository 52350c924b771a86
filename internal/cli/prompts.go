package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gridclue/internal/catalog"
	"gridclue/internal/knowledge"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// C holds pre-configured color objects for printing to the console.
var C = struct {
	Yes, No, Maybe, Info, Warn, Header, Prompt, Debug *color.Color
}{
	Yes:    color.New(color.FgGreen),
	No:     color.New(color.FgRed),
	Maybe:  color.New(color.FgYellow),
	Info:   color.New(color.FgCyan),
	Warn:   color.New(color.FgHiYellow),
	Header: color.New(color.FgWhite, color.Bold),
	Prompt: color.New(color.FgHiWhite),
	Debug:  color.New(color.FgMagenta),
}

// SuspectColors maps suspect names to specific colors for display.
var SuspectColors = map[string]*color.Color{
	"Miss Scarlett":   color.New(color.FgRed),
	"Colonel Mustard": color.New(color.FgYellow),
	"Mrs. White":      color.New(color.FgWhite),
	"Reverend Green":  color.New(color.FgGreen),
	"Mrs. Peacock":    color.New(color.FgBlue),
	"Professor Plum":  color.New(color.FgMagenta),
}

// ColorizeCard returns a card name as a colored string if it's a suspect.
func ColorizeCard(name string) string {
	if c, ok := SuspectColors[name]; ok {
		return c.Sprint(name)
	}
	return name
}

// RenderNotes displays a notebook's knowledge grid in a formatted table,
// one column per holder and one row per card.
func RenderNotes(nb *knowledge.Notebook) {
	cat := nb.Catalog()

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle(fmt.Sprintf("%s's Detective Notes", nb.Owner()))
	header := table.Row{"ID", "Card", "Type"}
	for _, holder := range nb.Holders() {
		header = append(header, holderLabel(holder))
	}
	t.AppendHeader(header)

	for cardID, card := range cat.All() {
		category, _ := cat.CategoryOf(card)
		if cardID > 0 {
			if prev, _ := cat.CategoryOf(cat.All()[cardID-1]); prev != category {
				t.AppendSeparator()
			}
		}
		row := table.Row{cardID + 1, ColorizeCard(card), category.String()}
		for _, holder := range nb.Holders() {
			row = append(row, factToSymbol(nb.Fact(card, holder)))
		}
		t.AppendRow(row)
	}
	t.SetStyle(table.StyleRounded)
	t.Style().Options.SeparateRows = false
	t.Style().Title.Align = text.AlignCenter
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 1, Align: text.AlignRight}})
	t.Render()

	renderCandidates(nb)
}

// renderCandidates prints the per-category envelope candidates under the
// notes grid, green once a category is down to a single card.
func renderCandidates(nb *knowledge.Notebook) {
	for _, category := range catalog.Categories {
		candidates := nb.Candidates(category)
		if len(candidates) == 1 {
			C.Yes.Printf("%-10s %s\n", category.String()+":", candidates[0])
			continue
		}
		C.Info.Printf("%-10s %d possible: %s\n", category.String()+":", len(candidates), strings.Join(candidates, ", "))
	}
	if _, certain := nb.Solution(); certain {
		C.Yes.Println("The solution is certain. Accuse!")
	}
}

func holderLabel(holder string) string {
	if holder == knowledge.EnvelopeHolder {
		return "Envelope"
	}
	return ColorizeCard(holder)
}

func factToSymbol(f knowledge.Fact) string {
	switch f {
	case knowledge.FactHas:
		return C.Yes.Sprint("✔")
	case knowledge.FactLacks:
		return C.No.Sprint("✖")
	default:
		return C.Maybe.Sprint("?")
	}
}

// --- Prompting and Usage ---

func (c *CLI) printUsage() {
	C.Header.Println("\n--- GridClue ---")
	fmt.Println("Usage:")
	fmt.Println("  go run ./cmd/gridclue start <humans> <ai>")
	fmt.Println("    To play a full board game with a mix of players.")
	fmt.Println("  go run ./cmd/gridclue detective")
	fmt.Println("    To run the deduction co-pilot for a real-life game.")
	fmt.Println("\nFlags:")
	fmt.Println("  -loglevel debug    Enable detailed deduction tracing.")
	fmt.Println("  -seed 42           Fix dice and dealing for reproducible games.")
	fmt.Println("  -deck custom.json  Play with a custom card deck.")
}

func (c *CLI) printDetectiveHelp() {
	C.Header.Println("\n--- Detective Mode Help ---")
	fmt.Println("Log events from your real-life game, and the notebook will track everything for you.")

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Command", "Alias", "Description"})
	t.AppendSeparator()
	t.AppendRows([]table.Row{
		{"log", "l", "Log a full game turn (suggestion and result)."},
		{"reveal", "r", "Log a single card revealed by a player."},
		{"suggest", "s", "Ask the co-pilot for a strategic suggestion."},
		{"accuse", "a", "Ask whether the notebook is certain enough to accuse."},
		{"notes", "n", "Display the current detective notes grid."},
		{"hand", "ha", "Display the cards currently in your hand."},
		{"help", "h", "Show this help message."},
		{"quit", "q", "Exit detective mode."},
	})
	t.SetStyle(table.StyleLight)
	t.Render()

	C.Prompt.Print("\nEnter a command: ")
}

func (c *CLI) promptForString(prompt string) string {
	for {
		C.Prompt.Print(prompt)
		input, err := c.line.Prompt("")
		if err != nil {
			C.Info.Println("\nGoodbye!")
			os.Exit(0)
		}
		trimmed := strings.TrimSpace(input)
		if trimmed != "" {
			c.line.AppendHistory(trimmed)
			return trimmed
		}
	}
}

func (c *CLI) promptForInt(prompt string, min, max int) int {
	for {
		input := c.promptForString(prompt)
		num, err := strconv.Atoi(input)
		if err != nil || num < min || num > max {
			C.Warn.Printf("Invalid input. Please enter a number between %d and %d.\n", min, max)
			continue
		}
		return num
	}
}

func (c *CLI) promptForYesNo(prompt string) bool {
	for {
		switch strings.ToLower(c.promptForString(prompt + " (y/n): ")) {
		case "y", "yes":
			return true
		case "n", "no":
			return false
		}
		C.Warn.Println("Please answer y or n.")
	}
}

func (c *CLI) promptForSelection(prompt string, options []string) string {
	for {
		C.Header.Println("\n" + prompt)
		for i, opt := range options {
			fmt.Printf(" %2d: %s\n", i+1, ColorizeCard(opt))
		}
		input := c.promptForString("Enter number or name: ")
		if num, err := strconv.Atoi(input); err == nil && num >= 1 && num <= len(options) {
			return options[num-1]
		}
		for _, opt := range options {
			if strings.EqualFold(opt, input) {
				return opt
			}
		}
		C.Warn.Println("Invalid selection.")
	}
}

// promptForCards collects cards from the full deck list, either exactly
// exactCount of them or free-form until 'done'.
func (c *CLI) promptForCards(cat *catalog.Catalog, requireAtLeastOne bool, exactCount int) []string {
	var cards []string
	cardSet := make(map[string]struct{})
	C.Header.Println("\n--- Card List ---")
	for i, card := range cat.All() {
		fmt.Printf("%2d: %-18s", i+1, card)
		if (i+1)%3 == 0 {
			fmt.Println()
		}
	}
	fmt.Println()

	for {
		if exactCount > 0 && len(cards) == exactCount {
			break
		}
		prompt := "Enter card name/number"
		if exactCount > 0 {
			prompt = fmt.Sprintf("Enter card %d of %d", len(cards)+1, exactCount)
		} else {
			prompt += " (or 'done')"
		}
		input := c.promptForString(prompt + ": ")
		if exactCount == 0 && strings.ToLower(input) == "done" {
			if requireAtLeastOne && len(cards) == 0 {
				C.Warn.Println("Please enter at least one card.")
				continue
			}
			break
		}
		var foundCard string
		if num, err := strconv.Atoi(input); err == nil && num >= 1 && num <= cat.Size() {
			foundCard = cat.All()[num-1]
		} else {
			for _, card := range cat.All() {
				if strings.EqualFold(card, input) {
					foundCard = card
					break
				}
			}
		}
		if foundCard == "" {
			C.Warn.Printf("Error: Card '%s' not found.\n", input)
		} else if _, exists := cardSet[foundCard]; exists {
			C.Warn.Printf("You have already entered '%s'.\n", foundCard)
		} else {
			cards = append(cards, foundCard)
			cardSet[foundCard] = struct{}{}
			C.Info.Printf(" -> Added: %s\n", ColorizeCard(foundCard))
		}
	}
	return cards
}
