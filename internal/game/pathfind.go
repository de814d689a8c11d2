package game

import (
	"fmt"
	"sort"
	"strings"
)

// Path is the ordered route from spawn, through the goal, to one cell past it.
type Path []Cell

// neighbours is the fixed base order of four-connected steps. It decides ties
// between steps that are equally aligned with the bearing to the goal.
var neighbours = [4]Cell{
	{C: 1, R: 0},  // right
	{C: 0, R: 1},  // down
	{C: -1, R: 0}, // left
	{C: 0, R: -1}, // up
}

// Len returns the number of waypoints.
func (p Path) Len() int { return len(p) }

// String renders the waypoints as "(c,r)>(c,r)>...".
func (p Path) String() string {
	parts := make([]string, len(p))
	for i, w := range p {
		parts[i] = w.String()
	}
	return strings.Join(parts, ">")
}

// Contains reports whether c is a waypoint.
func (p Path) Contains(c Cell) bool {
	for _, w := range p {
		if w == c {
			return true
		}
	}
	return false
}

// FindPath recomputes the route from spawn to goal. On success the interior
// waypoints are marked TilePath and the route is returned. It returns nil when
// the goal is unreachable; in that case no TilePath tiles remain on the grid.
// Transient distance markers never outlive the call.
func (g *Grid) FindPath() Path {
	g.clearPath()
	g.fillDistances()
	path := g.walk()
	g.clearDistances()
	if path == nil {
		return nil
	}
	for _, w := range path {
		g.PlacePath(w.C, w.R)
	}
	return path
}

// fillDistances floods integer distances outward from the goal. The queue keeps
// writes in non-decreasing distance order, so the first write to a cell is final.
func (g *Grid) fillDistances() {
	queue := []Cell{g.goal}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		d, _ := g.distance(cur)
		for _, step := range neighbours {
			n := cur.Add(step)
			if g.IsOutside(n.C, n.R) {
				continue
			}
			t := g.tiles[g.index(n.C, n.R)]
			switch t.Kind {
			case TileEmpty, TilePath:
			case TileDistance:
				if t.Dist <= d+1 {
					continue
				}
			default:
				// Walls, towers, the spawn and the goal itself never expand.
				continue
			}
			g.markDistance(n, d+1)
			queue = append(queue, n)
		}
	}
}

// walk greedily descends the distance field from spawn. It must run while the
// distance markers are still on the grid.
func (g *Grid) walk() Path {
	cur := g.spawn
	path := Path{cur}
	visited := map[Cell]bool{cur: true}
	for {
		next, d, ok := g.bestStep(cur, visited)
		if !ok {
			return nil
		}
		path = append(path, next)
		visited[next] = true
		if d == 1 {
			break
		}
		cur = next
		if len(path) > len(g.tiles) {
			panic(fmt.Sprintf("game: path walk did not converge at %v", cur))
		}
	}
	return append(path, g.goal, g.exitCell())
}

// bestStep picks the unvisited numbered neighbour of cur with the lowest
// distance. Candidates are ranked by how closely their direction matches the
// bearing from cur to the goal; the first candidate in that ranking wins ties.
func (g *Grid) bestStep(cur Cell, visited map[Cell]bool) (Cell, int, bool) {
	order := g.preferredSteps(cur)
	var (
		best     Cell
		bestDist int
		found    bool
	)
	for _, step := range order {
		n := cur.Add(step)
		if visited[n] || n == g.goal {
			continue
		}
		if t := g.At(n.C, n.R); t.Kind != TileDistance {
			continue
		}
		d, _ := g.distance(n)
		if !found || d < bestDist {
			best, bestDist, found = n, d, true
		}
	}
	return best, bestDist, found
}

// preferredSteps orders the four steps by their dot product with the bearing
// to the goal, most aligned first. Equal dot products keep the base order.
func (g *Grid) preferredSteps(cur Cell) []Cell {
	bc, br := g.goal.C-cur.C, g.goal.R-cur.R
	order := make([]Cell, len(neighbours))
	copy(order, neighbours[:])
	sort.SliceStable(order, func(i, j int) bool {
		return order[i].C*bc+order[i].R*br > order[j].C*bc+order[j].R*br
	})
	return order
}
