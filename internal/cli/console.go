package cli

import (
	"strings"
)

// The CLI doubles as the player.Console human seats talk to, so the board
// game and the detective mode share one set of prompts.

const stayPut = "Stay where you are"

func (c *CLI) ShowHand(cards []string) {
	var parts []string
	for _, card := range cards {
		parts = append(parts, ColorizeCard(card))
	}
	C.Info.Printf("\nYour hand: %s\n", strings.Join(parts, ", "))
}

func (c *CLI) ShowReveal(refuter, card string) {
	C.Info.Printf("  [Only you see it: %s shows you %s]\n", ColorizeCard(refuter), ColorizeCard(card))
}

func (c *CLI) PickMoveTarget(current string, rooms []string) (string, error) {
	options := append([]string{}, rooms...)
	options = append(options, stayPut)
	picked := c.promptForSelection("Which room do you head for?", options)
	if picked == stayPut {
		return "", nil
	}
	return picked, nil
}

func (c *CLI) ConfirmPassage(from, to string) (bool, error) {
	C.Info.Printf("\n*** Secret passage from the %s to the %s available! ***\n", from, to)
	return c.promptForYesNo("Use the secret passage?"), nil
}

func (c *CLI) ConfirmSuggestion(room string) (bool, error) {
	C.Info.Printf("\n*** You were dragged into the %s by another player's suggestion! ***\n", room)
	return c.promptForYesNo("Make a suggestion here? (it spends your walk)"), nil
}

func (c *CLI) PickSuggestion(room string, characters, weapons []string) (string, string, error) {
	C.Header.Printf("\nYour suggestion is about WHO did it, with WHAT, in the %s.\n", room)
	character := c.promptForSelection("Who?", characters)
	weapon := c.promptForSelection("With what weapon?", weapons)
	return character, weapon, nil
}

func (c *CLI) ConfirmAccusation() (bool, error) {
	return c.promptForYesNo("\nMake an ACCUSATION? (wrong means elimination)"), nil
}

func (c *CLI) PickAccusation(characters, weapons, rooms []string) (string, string, string, error) {
	C.Header.Println("\nName the murderer, the weapon and the room.")
	character := c.promptForSelection("Who did it?", characters)
	weapon := c.promptForSelection("With what weapon?", weapons)
	room := c.promptForSelection("In which room?", rooms)
	return character, weapon, room, nil
}

func (c *CLI) PickReveal(suggester string, matching []string) (string, error) {
	C.Info.Printf("\nYou must disprove %s's suggestion.\n", ColorizeCard(suggester))
	if len(matching) == 1 {
		C.Info.Printf("  [Auto-selected: %s (your only matching card)]\n", ColorizeCard(matching[0]))
		return matching[0], nil
	}
	return c.promptForSelection("Which card do you show?", matching), nil
}
