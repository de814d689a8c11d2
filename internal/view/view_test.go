package view

import (
	"strings"
	"testing"

	"github.com/Garsondee/Grid-Defense/internal/game"
)

func TestCellAt(t *testing.T) {
	cases := []struct {
		mx, my int
		c, r   int
		ok     bool
	}{
		{0, hudHeight, 0, 0, true},
		{cellSize*3 + 5, hudHeight + cellSize*2 + 39, 3, 2, true},
		{10, hudHeight - 1, 0, 0, false},
		{-1, hudHeight + 5, 0, 0, false},
		{cellSize * 20, hudHeight + 5, 0, 0, false},
		{5, hudHeight + cellSize*12, 0, 0, false},
	}
	for _, tc := range cases {
		c, r, ok := cellAt(tc.mx, tc.my, 20, 12)
		if ok != tc.ok || c != tc.c || r != tc.r {
			t.Fatalf("cellAt(%d,%d): expected (%d,%d,%v), got (%d,%d,%v)", tc.mx, tc.my, tc.c, tc.r, tc.ok, c, r, ok)
		}
	}
}

func TestNextSpeedCycles(t *testing.T) {
	got := []int{}
	s := 1
	for i := 0; i < 4; i++ {
		s = nextSpeed(s)
		got = append(got, s)
	}
	want := []int{2, 4, 1, 2}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected speeds %v, got %v", want, got)
		}
	}
	if nextSpeed(3) != 1 {
		t.Fatalf("expected unknown speed to reset to 1, got %d", nextSpeed(3))
	}
}

func TestKindForSlot(t *testing.T) {
	inv := []game.TowerKind{game.TowerGun, game.TowerWall}
	if k, ok := kindForSlot(inv, 1); !ok || k != game.TowerWall {
		t.Fatalf("expected wall in slot 2, got %q ok=%v", k, ok)
	}
	if _, ok := kindForSlot(inv, 2); ok {
		t.Fatal("expected locked slot to be rejected")
	}
	if _, ok := kindForSlot(inv, -1); ok {
		t.Fatal("expected negative slot to be rejected")
	}
}

func TestTileColoursDistinct(t *testing.T) {
	kinds := []game.TileKind{game.TileEmpty, game.TileWall, game.TilePath, game.TileSpawn, game.TileGoal, game.TileTower}
	seen := map[[4]uint8]game.TileKind{}
	for _, k := range kinds {
		c := tileColour(k)
		key := [4]uint8{c.R, c.G, c.B, c.A}
		if prev, dup := seen[key]; dup {
			t.Fatalf("expected distinct colours, %s and %s share one", prev, k)
		}
		seen[key] = k
	}
}

func TestHealthFractionClamps(t *testing.T) {
	e := &game.Enemy{Health: 50, MaxHealth: 100}
	if f := healthFraction(e); f != 0.5 {
		t.Fatalf("expected 0.5, got %.2f", f)
	}
	e.Health = -10
	if f := healthFraction(e); f != 0 {
		t.Fatalf("expected 0 for overkill, got %.2f", f)
	}
	e.MaxHealth = 0
	if f := healthFraction(e); f != 0 {
		t.Fatalf("expected 0 without max health, got %.2f", f)
	}
}

func TestEventFeedRingOrder(t *testing.T) {
	f := NewEventFeed()
	for i := 0; i < feedMaxEntries+5; i++ {
		f.Add(i, "--", "wave", "m")
	}
	r := f.Recent()
	if len(r) != feedMaxEntries {
		t.Fatalf("expected %d entries, got %d", feedMaxEntries, len(r))
	}
	if r[0].Tick != 5 || r[len(r)-1].Tick != feedMaxEntries+4 {
		t.Fatalf("expected ticks 5..%d, got %d..%d", feedMaxEntries+4, r[0].Tick, r[len(r)-1].Tick)
	}
}

func TestEventFeedSyncSkipsChatter(t *testing.T) {
	log := game.NewSimLog(true)
	log.Add(1, "E1", "wave", "spawn", "red", 100)
	log.Add(2, "T1", "enemy", "target", "e1", 1)
	log.Add(3, "E1", "economy", "kill", "red", 1)

	f := NewEventFeed()
	f.Sync(log)
	r := f.Recent()
	if len(r) != 1 || r[0].Message != "kill red" {
		t.Fatalf("expected only the kill entry, got %+v", r)
	}

	log.Add(4, "--", "wave", "cleared", "level 1", 1)
	f.Sync(log)
	f.Sync(log)
	if n := len(f.Recent()); n != 2 {
		t.Fatalf("expected 2 entries after resync, got %d", n)
	}
}

func TestInspectorLines(t *testing.T) {
	g := game.New()
	g.OnVictory(func() {})
	tw := g.PlaceTower(3, 3, game.TowerGun)
	if tw == nil {
		t.Fatal("expected gun to be placed")
	}
	var in Inspector
	in.Select(tw)
	lines := in.lines(g, tw)
	if !strings.Contains(lines[0], "GUN T1 L1") {
		t.Fatalf("expected title with kind and id, got %q", lines[0])
	}
	joined := strings.Join(lines, "\n")
	if !strings.Contains(joined, "state: idle") || !strings.Contains(joined, "upgrade: 30") {
		t.Fatalf("expected idle state and upgrade price, got:\n%s", joined)
	}

	in.Toggle()
	raw := strings.Join(in.lines(g, tw), "\n")
	if !strings.Contains(raw, "view: RAW") || !strings.Contains(raw, "cell=(3,3)") {
		t.Fatalf("expected raw dump, got:\n%s", raw)
	}
}

func TestCanStart(t *testing.T) {
	g := game.New()
	g.OnVictory(func() {})
	if !canStart(g) {
		t.Fatal("expected a fresh game to accept a wave")
	}
	g.Start()
	if canStart(g) {
		t.Fatal("expected a running game to refuse a second start")
	}
}

func TestSlotLineMarksSelection(t *testing.T) {
	inv := []game.TowerKind{game.TowerGun, game.TowerWall}
	s := slotLine(inv, game.TowerWall, game.DefaultCatalog())
	if !strings.Contains(s, " 1 gun $15") || !strings.Contains(s, ">2 wall $2") {
		t.Fatalf("expected marked wall slot, got %q", s)
	}
}

func TestClip(t *testing.T) {
	if got := clip("abcdef", 4); got != "abc~" {
		t.Fatalf("expected abc~, got %q", got)
	}
	if got := clip("ab", 4); got != "ab" {
		t.Fatalf("expected ab, got %q", got)
	}
}
