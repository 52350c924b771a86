package catalog

import (
	"encoding/json"
	"fmt"
	"os"
)

// Category identifies the kind of a card using a typed enum.
type Category int

const (
	CategoryCharacter Category = iota
	CategoryWeapon
	CategoryRoom
)

// Categories lists every category in enumeration order. Deductions and
// tie-breaks iterate in this order, so it must never change at runtime.
var Categories = []Category{CategoryCharacter, CategoryWeapon, CategoryRoom}

func (c Category) String() string {
	return []string{"characters", "weapons", "rooms"}[c]
}

// Catalog holds the card definitions for one game. Card lists keep their
// declaration order; that order doubles as the deterministic enumeration
// order used by the AI for tie-breaking, so the catalog never sorts them.
type Catalog struct {
	Characters []string `json:"characters"`
	Weapons    []string `json:"weapons"`
	Rooms      []string `json:"rooms"`

	all        []string
	categoryOf map[string]Category
}

// New builds a catalog from explicit card lists and validates it: every
// category must be non-empty and no name may appear twice.
func New(characters, weapons, rooms []string) (*Catalog, error) {
	c := &Catalog{
		Characters: append([]string(nil), characters...),
		Weapons:    append([]string(nil), weapons...),
		Rooms:      append([]string(nil), rooms...),
	}
	if err := c.index(); err != nil {
		return nil, err
	}
	return c, nil
}

// Load reads and parses a card deck from a JSON file. Decks destined for a
// full game need exactly nine rooms so each can take a grid anchor.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing deck %s: %w", path, err)
	}
	if len(c.Rooms) != 9 {
		return nil, fmt.Errorf("deck %s: want 9 rooms, got %d", path, len(c.Rooms))
	}
	if err := c.index(); err != nil {
		return nil, fmt.Errorf("deck %s: %w", path, err)
	}
	return &c, nil
}

// Default returns the classic deck: 6 characters, 6 weapons, 9 rooms.
func Default() *Catalog {
	c, err := New(
		[]string{
			"Miss Scarlett", "Colonel Mustard", "Mrs. White",
			"Reverend Green", "Mrs. Peacock", "Professor Plum",
		},
		[]string{
			"Candlestick", "Dagger", "Lead Pipe",
			"Revolver", "Rope", "Wrench",
		},
		[]string{
			"Study", "Hall", "Lounge",
			"Library", "Billiard", "Dining",
			"Conservatory", "Ballroom", "Kitchen",
		},
	)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Catalog) index() error {
	for cat, list := range map[Category][]string{
		CategoryCharacter: c.Characters,
		CategoryWeapon:    c.Weapons,
		CategoryRoom:      c.Rooms,
	} {
		if len(list) == 0 {
			return fmt.Errorf("category %s has no cards", cat)
		}
	}
	c.all = nil
	c.categoryOf = make(map[string]Category)
	for _, cat := range Categories {
		for _, card := range c.List(cat) {
			if _, dup := c.categoryOf[card]; dup {
				return fmt.Errorf("duplicate card %q", card)
			}
			c.all = append(c.all, card)
			c.categoryOf[card] = cat
		}
	}
	return nil
}

// List returns the cards of one category in enumeration order. The returned
// slice is the catalog's own; callers must not modify it.
func (c *Catalog) List(cat Category) []string {
	switch cat {
	case CategoryCharacter:
		return c.Characters
	case CategoryWeapon:
		return c.Weapons
	case CategoryRoom:
		return c.Rooms
	default:
		return nil
	}
}

// All returns every card, characters then weapons then rooms, each category
// in enumeration order.
func (c *Catalog) All() []string {
	return c.all
}

// CategoryOf resolves a card name to its category.
func (c *Catalog) CategoryOf(card string) (Category, bool) {
	cat, ok := c.categoryOf[card]
	return cat, ok
}

// Contains reports whether the card belongs to this catalog.
func (c *Catalog) Contains(card string) bool {
	_, ok := c.categoryOf[card]
	return ok
}

// Size returns the total number of cards.
func (c *Catalog) Size() int {
	return len(c.all)
}

// Clone creates a new catalog with all slices copied to prevent shared state.
func (c *Catalog) Clone() *Catalog {
	clone, err := New(c.Characters, c.Weapons, c.Rooms)
	if err != nil {
		panic(err)
	}
	return clone
}
