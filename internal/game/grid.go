package game

import (
	"fmt"
	"strings"
)

// TileKind identifies the semantic state of one grid cell.
type TileKind uint8

const (
	TileEmpty    TileKind = iota // open ground, buildable and walkable
	TileWall                     // border or impassable terrain
	TilePath                     // on the current route; buildable, forces a re-route
	TileSpawn                    // enemies enter here
	TileGoal                     // enemies leave through here
	TileDistance                 // transient flood-fill marker
	TileTower                    // occupied by a tower
)

func (k TileKind) String() string {
	switch k {
	case TileEmpty:
		return "empty"
	case TileWall:
		return "wall"
	case TilePath:
		return "path"
	case TileSpawn:
		return "spawn"
	case TileGoal:
		return "goal"
	case TileDistance:
		return "distance"
	case TileTower:
		return "tower"
	default:
		return fmt.Sprintf("tile(%d)", uint8(k))
	}
}

// Tile is one cell of the map. Dist is only meaningful for TileDistance and
// Tower only for TileTower.
type Tile struct {
	Kind  TileKind
	Dist  int
	Tower TowerID
}

// Cell is an integer grid coordinate.
type Cell struct {
	C, R int
}

// Add returns the component-wise sum.
func (c Cell) Add(d Cell) Cell { return Cell{C: c.C + d.C, R: c.R + d.R} }

// Adjacent reports whether o is one of c's four neighbours.
func (c Cell) Adjacent(o Cell) bool {
	dc, dr := c.C-o.C, c.R-o.R
	return dc*dc+dr*dr == 1
}

func (c Cell) String() string { return fmt.Sprintf("(%d,%d)", c.C, c.R) }

// Grid is the authoritative per-cell map. Tiles are row-major: index = r*Cols + c.
type Grid struct {
	Cols  int
	Rows  int
	tiles []Tile
	spawn Cell
	goal  Cell
}

// NewGrid creates a walled grid with a spawn opening on the left border at
// spawnRow and a goal opening on the right border at goalRow.
func NewGrid(cols, rows, spawnRow, goalRow int) *Grid {
	if cols < 3 || rows < 3 {
		panic(fmt.Sprintf("game: grid %dx%d too small", cols, rows))
	}
	if spawnRow < 1 || spawnRow > rows-2 || goalRow < 1 || goalRow > rows-2 {
		panic(fmt.Sprintf("game: spawn row %d / goal row %d must be interior rows", spawnRow, goalRow))
	}
	g := &Grid{
		Cols:  cols,
		Rows:  rows,
		tiles: make([]Tile, cols*rows),
		spawn: Cell{C: 0, R: spawnRow},
		goal:  Cell{C: cols - 1, R: goalRow},
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if c == 0 || r == 0 || c == cols-1 || r == rows-1 {
				g.tiles[g.index(c, r)].Kind = TileWall
			}
		}
	}
	// The openings start life as border wall and are retagged.
	g.tiles[g.index(g.spawn.C, g.spawn.R)].Kind = TileSpawn
	g.tiles[g.index(g.goal.C, g.goal.R)].Kind = TileGoal
	return g
}

func (g *Grid) index(c, r int) int { return r*g.Cols + c }

// clone returns an independent copy for what-if checks.
func (g *Grid) clone() *Grid {
	cp := *g
	cp.tiles = g.Tiles()
	return &cp
}

// IsOutside reports whether (c, r) lies off the grid.
func (g *Grid) IsOutside(c, r int) bool {
	return c < 0 || r < 0 || c >= g.Cols || r >= g.Rows
}

// At returns the tile at (c, r). Cells off the grid read as wall.
func (g *Grid) At(c, r int) Tile {
	if g.IsOutside(c, r) {
		return Tile{Kind: TileWall}
	}
	return g.tiles[g.index(c, r)]
}

// Spawn returns the spawn cell.
func (g *Grid) Spawn() Cell { return g.spawn }

// Goal returns the goal cell.
func (g *Grid) Goal() Cell { return g.goal }

// Tiles returns a copy of the row-major tile slice.
func (g *Grid) Tiles() []Tile {
	out := make([]Tile, len(g.tiles))
	copy(out, g.tiles)
	return out
}

// PlacePath marks (c, r) as part of the route. Spawn, goal and off-grid cells
// are left alone.
func (g *Grid) PlacePath(c, r int) {
	if g.IsOutside(c, r) {
		return
	}
	t := &g.tiles[g.index(c, r)]
	if t.Kind == TileSpawn || t.Kind == TileGoal {
		return
	}
	*t = Tile{Kind: TilePath}
}

// IsEmpty reports whether a tower could stand on (c, r) without displacing
// anything: open ground or the current path.
func (g *Grid) IsEmpty(c, r int) bool {
	if g.IsOutside(c, r) {
		return false
	}
	k := g.tiles[g.index(c, r)].Kind
	return k == TileEmpty || k == TilePath
}

// HasTower reports whether (c, r) holds an occupant other than spawn, wall,
// path or goal.
func (g *Grid) HasTower(c, r int) bool {
	if g.IsOutside(c, r) {
		return false
	}
	return g.tiles[g.index(c, r)].Kind == TileTower
}

// TowerAt returns the tower id at (c, r), or 0.
func (g *Grid) TowerAt(c, r int) TowerID {
	if !g.HasTower(c, r) {
		return 0
	}
	return g.tiles[g.index(c, r)].Tower
}

func (g *Grid) setTower(c, r int, id TowerID) {
	if g.IsOutside(c, r) {
		return
	}
	g.tiles[g.index(c, r)] = Tile{Kind: TileTower, Tower: id}
}

// clearTower returns an occupied cell to open ground.
func (g *Grid) clearTower(c, r int) {
	if !g.HasTower(c, r) {
		return
	}
	g.tiles[g.index(c, r)] = Tile{Kind: TileEmpty}
}

func (g *Grid) markDistance(c Cell, d int) {
	g.tiles[g.index(c.C, c.R)] = Tile{Kind: TileDistance, Dist: d}
}

// distance returns the recorded flood-fill distance at c. The goal is
// always distance 0.
func (g *Grid) distance(c Cell) (int, bool) {
	if c == g.goal {
		return 0, true
	}
	t := g.At(c.C, c.R)
	if t.Kind != TileDistance {
		return 0, false
	}
	return t.Dist, true
}

// clearDistances wipes every transient marker back to open ground.
func (g *Grid) clearDistances() {
	for i := range g.tiles {
		if g.tiles[i].Kind == TileDistance {
			g.tiles[i] = Tile{Kind: TileEmpty}
		}
	}
}

func (g *Grid) clearPath() {
	for i := range g.tiles {
		if g.tiles[i].Kind == TilePath {
			g.tiles[i] = Tile{Kind: TileEmpty}
		}
	}
}

// exitCell is the cell one step past the goal, off the grid.
func (g *Grid) exitCell() Cell {
	switch {
	case g.goal.C == g.Cols-1:
		return Cell{C: g.goal.C + 1, R: g.goal.R}
	case g.goal.C == 0:
		return Cell{C: -1, R: g.goal.R}
	case g.goal.R == 0:
		return Cell{C: g.goal.C, R: -1}
	default:
		return Cell{C: g.goal.C, R: g.goal.R + 1}
	}
}

// tileGlyph is the ASCII rendering of a tile used by String.
func tileGlyph(t Tile) byte {
	switch t.Kind {
	case TileWall:
		return '#'
	case TilePath:
		return '*'
	case TileSpawn:
		return 'S'
	case TileGoal:
		return 'G'
	case TileDistance:
		return '?'
	case TileTower:
		return 'T'
	default:
		return '.'
	}
}

// String dumps the grid one row per line.
//
//	#####
//	S***G
//	#####
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow((g.Cols + 1) * g.Rows)
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			sb.WriteByte(tileGlyph(g.tiles[g.index(c, r)]))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
