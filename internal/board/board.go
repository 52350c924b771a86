package board

import "fmt"

// GridSize is the edge length of the square playing field.
const GridSize = 11

// Pos is a grid coordinate, row then column.
type Pos struct {
	R int
	C int
}

// InBounds reports whether a position lies on the grid.
func InBounds(p Pos) bool {
	return p.R >= 0 && p.R < GridSize && p.C >= 0 && p.C < GridSize
}

// Direction is a single-step move on the grid.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Directions lists the four moves in the order pathfinding tries them.
var Directions = []Direction{Up, Down, Left, Right}

func (d Direction) String() string {
	return []string{"U", "D", "L", "R"}[d]
}

// Delta returns the row and column offsets of one step.
func (d Direction) Delta() (int, int) {
	switch d {
	case Up:
		return -1, 0
	case Down:
		return 1, 0
	case Left:
		return 0, -1
	default:
		return 0, 1
	}
}

// anchors are the nine room cells: three per edge row, corners and centers.
var anchors = []Pos{
	{0, 0}, {0, 5}, {0, 10},
	{5, 0}, {5, 5}, {5, 10},
	{10, 0}, {10, 5}, {10, 10},
}

// Layout binds room names to their grid anchors. Secret passages join the
// diagonally opposite corner rooms. Rooms hold any number of pawns; hallway
// cells hold at most one.
type Layout struct {
	rooms    []string
	anchor   map[string]Pos
	roomAt   map[Pos]string
	passages map[string]string
}

// NewLayout places the given rooms on the anchors in order. Exactly nine
// rooms fit the grid.
func NewLayout(rooms []string) (*Layout, error) {
	if len(rooms) != len(anchors) {
		return nil, fmt.Errorf("want %d rooms for the grid, got %d", len(anchors), len(rooms))
	}
	l := &Layout{
		rooms:    append([]string(nil), rooms...),
		anchor:   make(map[string]Pos, len(rooms)),
		roomAt:   make(map[Pos]string, len(rooms)),
		passages: make(map[string]string, 4),
	}
	for i, room := range rooms {
		if _, dup := l.anchor[room]; dup {
			return nil, fmt.Errorf("duplicate room %q", room)
		}
		l.anchor[room] = anchors[i]
		l.roomAt[anchors[i]] = room
	}
	l.passages[rooms[0]] = rooms[8]
	l.passages[rooms[8]] = rooms[0]
	l.passages[rooms[2]] = rooms[6]
	l.passages[rooms[6]] = rooms[2]
	return l, nil
}

// Rooms returns the room names in placement order.
func (l *Layout) Rooms() []string { return l.rooms }

// Anchor returns the grid cell of a room.
func (l *Layout) Anchor(room string) (Pos, bool) {
	p, ok := l.anchor[room]
	return p, ok
}

// RoomAt names the room occupying a cell, if any.
func (l *Layout) RoomAt(p Pos) (string, bool) {
	room, ok := l.roomAt[p]
	return room, ok
}

// Passage returns the far end of a room's secret passage, if it has one.
func (l *Layout) Passage(room string) (string, bool) {
	dest, ok := l.passages[room]
	return dest, ok
}

// Step applies one move and reports whether it is legal: the destination
// must be on the grid, and a hallway destination must be free. Room cells
// are never blocked.
func (l *Layout) Step(from Pos, d Direction, occupied map[Pos]struct{}) (Pos, bool) {
	dr, dc := d.Delta()
	to := Pos{R: from.R + dr, C: from.C + dc}
	if !InBounds(to) {
		return from, false
	}
	if _, isRoom := l.roomAt[to]; !isRoom {
		if _, taken := occupied[to]; taken {
			return from, false
		}
	}
	return to, true
}

// Path finds a shortest walk from a position to a room by breadth-first
// search. Occupied hallway cells block the way; room cells never do. The
// returned moves reach the room's anchor, or nil when no way is open.
func (l *Layout) Path(from Pos, room string, occupied map[Pos]struct{}) []Direction {
	target, ok := l.anchor[room]
	if !ok || from == target {
		return nil
	}

	type node struct {
		pos  Pos
		path []Direction
	}
	queue := []node{{pos: from}}
	visited := map[Pos]struct{}{from: {}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, d := range Directions {
			next, legal := l.Step(cur.pos, d, occupied)
			if !legal {
				continue
			}
			if _, seen := visited[next]; seen {
				continue
			}
			path := append(append([]Direction(nil), cur.path...), d)
			if next == target {
				return path
			}
			visited[next] = struct{}{}
			queue = append(queue, node{pos: next, path: path})
		}
	}
	return nil
}
