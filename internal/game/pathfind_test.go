package game

import "testing"

// assertNoDistance fails if any transient flood-fill marker survived.
func assertNoDistance(t *testing.T, g *Grid) {
	t.Helper()
	for i, tile := range g.tiles {
		if tile.Kind == TileDistance {
			t.Fatalf("orphaned distance marker at (%d,%d)", i%g.Cols, i/g.Cols)
		}
	}
}

func assertConnected(t *testing.T, p Path) {
	t.Helper()
	for i := 1; i < len(p); i++ {
		if !p[i-1].Adjacent(p[i]) {
			t.Fatalf("waypoints %d %v and %d %v are not four-connected", i-1, p[i-1], i, p[i])
		}
	}
}

func TestFindPath_StraightCorridor(t *testing.T) {
	g := NewGrid(7, 5, 2, 2)
	p := g.FindPath()
	want := Path{{0, 2}, {1, 2}, {2, 2}, {3, 2}, {4, 2}, {5, 2}, {6, 2}, {7, 2}}
	if p.String() != want.String() {
		t.Fatalf("expected %v, got %v", want, p)
	}
	for c := 1; c <= 5; c++ {
		if k := g.At(c, 2).Kind; k != TilePath {
			t.Fatalf("expected (%d,2) marked path, got %v", c, k)
		}
	}
	assertNoDistance(t, g)
}

func TestFindPath_BearingTieBreakIsDeterministic(t *testing.T) {
	// Spawn top-left, goal bottom-right: right is preferred over down on ties.
	g := NewGrid(7, 5, 1, 3)
	p := g.FindPath()
	want := Path{{0, 1}, {1, 1}, {2, 1}, {3, 1}, {4, 1}, {5, 1}, {5, 2}, {5, 3}, {6, 3}, {7, 3}}
	if p.String() != want.String() {
		t.Fatalf("expected %v, got %v", want, p)
	}
	again := g.FindPath()
	if again.String() != p.String() {
		t.Fatalf("expected identical recompute, got %v", again)
	}
	assertNoDistance(t, g)
}

func TestFindPath_DetoursAroundTower(t *testing.T) {
	g := NewGrid(7, 5, 2, 2)
	g.FindPath()
	g.setTower(3, 2, 1)
	p := g.FindPath()
	if p == nil {
		t.Fatal("expected a detour path")
	}
	if p.Contains(Cell{C: 3, R: 2}) {
		t.Fatal("path must not cross the tower")
	}
	if p[0] != g.Spawn() || p[len(p)-2] != g.Goal() || p[len(p)-1] != g.exitCell() {
		t.Fatalf("path must run spawn..goal..exit, got %v", p)
	}
	assertConnected(t, p)
	assertNoDistance(t, g)
}

func TestFindPath_BlockedReturnsNil(t *testing.T) {
	g := NewGrid(7, 5, 2, 2)
	g.FindPath()
	for r := 1; r <= 3; r++ {
		g.setTower(3, r, TowerID(r))
	}
	if p := g.FindPath(); p != nil {
		t.Fatalf("expected nil path, got %v", p)
	}
	for i, tile := range g.tiles {
		if tile.Kind == TilePath {
			t.Fatalf("stale path tile at (%d,%d)", i%g.Cols, i/g.Cols)
		}
	}
	assertNoDistance(t, g)
}

func TestFindPath_ClearsOldPathTiles(t *testing.T) {
	g := NewGrid(7, 5, 2, 2)
	g.FindPath()
	g.setTower(3, 2, 1)
	p := g.FindPath()
	for i, tile := range g.tiles {
		c := Cell{C: i % g.Cols, R: i / g.Cols}
		if tile.Kind == TilePath && !p.Contains(c) {
			t.Fatalf("path tile %v is not on the current route", c)
		}
	}
}

func TestPreferredSteps_OrderedByBearing(t *testing.T) {
	g := NewGrid(9, 9, 4, 4)
	// Bearing from (4,8) to goal (8,4) is (4,-4): right and up tie, base order decides.
	order := g.preferredSteps(Cell{C: 4, R: 8})
	if order[0] != (Cell{C: 1, R: 0}) || order[1] != (Cell{C: 0, R: -1}) {
		t.Fatalf("expected right then up, got %v", order)
	}
}
