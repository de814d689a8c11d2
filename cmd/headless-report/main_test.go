package main

import (
	"math/rand"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Garsondee/Grid-Defense/internal/game"
)

func TestPathSideCells_AreOpenAndAdjacent(t *testing.T) {
	g := game.New()
	cells := pathSideCells(g)
	if len(cells) == 0 {
		t.Fatal("expected side cells along the default corridor")
	}
	path := g.Path()
	for _, c := range cells {
		if g.Tile(c.C, c.R).Kind != game.TileEmpty {
			t.Fatalf("side cell %v is not open ground", c)
		}
		adjacent := false
		for _, w := range path {
			if w.Adjacent(c) {
				adjacent = true
				break
			}
		}
		if !adjacent {
			t.Fatalf("side cell %v does not touch the path", c)
		}
	}
}

func TestBestAttackKind_PrefersHighestDPS(t *testing.T) {
	kind, ok := bestAttackKind(game.New())
	if !ok || kind != game.TowerGun {
		t.Fatalf("expected gun at level 1, got %q ok=%v", kind, ok)
	}
	kind, _ = bestAttackKind(game.New(game.WithLevel(8)))
	if kind != game.TowerLaser {
		t.Fatalf("expected laser once unlocked, got %q", kind)
	}
}

func TestBuildGunLine_SpendsMoney(t *testing.T) {
	g := game.New()
	buildGunLine(g, rand.New(rand.NewSource(1)))
	if len(g.Towers()) != 3 {
		t.Fatalf("expected 45 money to buy 3 guns, got %d towers", len(g.Towers()))
	}
	if g.Money() != 0 {
		t.Fatalf("expected all money spent, got %d", g.Money())
	}
}

func TestBuildMaze_KeepsPathOpen(t *testing.T) {
	g := game.New(game.WithMoney(200))
	before := len(g.Path())
	buildMaze(g, rand.New(rand.NewSource(7)))
	if len(g.Path()) < before {
		t.Fatalf("expected path no shorter than %d, got %d", before, len(g.Path()))
	}
	if len(g.Towers()) == 0 {
		t.Fatal("expected towers to be built")
	}
}

func TestRunGame_IsDeterministicPerSeed(t *testing.T) {
	a := runGame(1, 99, 3, "gunline", game.DefaultCatalog())
	b := runGame(1, 99, 3, "gunline", game.DefaultCatalog())
	if a.outcome != b.outcome || a.firstKillTick != b.firstKillTick {
		t.Fatalf("expected identical runs for one seed, got %+v vs %+v", a.outcome, b.outcome)
	}
	if a.outcome.LevelsWon == 0 {
		t.Fatalf("expected at least one level won, got %+v", a.outcome)
	}
}

func TestFormatRun_ContainsOutcome(t *testing.T) {
	rs := runStats{
		runIndex: 2,
		seed:     43,
		outcome: game.MatchOutcomeReason{
			Outcome:     game.OutcomeDefeated,
			Description: "defeated_at_level_7",
			Level:       7,
		},
		towersByKind: map[game.TowerKind]int{game.TowerGun: 3, game.TowerWall: 1},
	}
	out := formatRun(rs)
	for _, want := range []string{"Run 2 (seed=43)", "outcome=defeated", "gun=3 wall=1", "best_tower: n/a"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in:\n%s", want, out)
		}
	}
}

func TestFormatAggregate_CountsDefeats(t *testing.T) {
	all := []runStats{
		{outcome: game.MatchOutcomeReason{Outcome: game.OutcomeDefeated, Level: 5, LevelsWon: 4}, firstKillTick: 100},
		{outcome: game.MatchOutcomeReason{Outcome: game.OutcomeInProgress, Level: 9, LevelsWon: 8}, firstKillTick: -1},
	}
	out := formatAggregate(all)
	if !strings.Contains(out, "defeats=1 best_level=9") {
		t.Fatalf("unexpected aggregate:\n%s", out)
	}
	if !strings.Contains(out, "levels_won=6.0") || !strings.Contains(out, "first_kill_avg_tick=100.0") {
		t.Fatalf("unexpected averages:\n%s", out)
	}
}

func TestFormatBest_UsesTopGrade(t *testing.T) {
	grades := []game.TowerGrade{
		{ID: 4, Kind: game.TowerLaser, Grade: "A", DamageShare: 0.5, Kills: 7},
		{ID: 1, Kind: game.TowerGun, Grade: "C"},
	}
	if got := formatBest(grades); got != "T4 laser grade=A share=50% kills=7" {
		t.Fatalf("unexpected best tower: %q", got)
	}
}

func TestAvgTickString_Empty(t *testing.T) {
	if got := avgTickString(nil); got != "n/a" {
		t.Fatalf("expected n/a, got %s", got)
	}
}

func TestDump_RecordsSurviveFile(t *testing.T) {
	rs := runGame(1, 42, 2, "gunline", game.DefaultCatalog())
	path := filepath.Join(t.TempDir(), "runs.msgpack")
	rec := newRunRecord("rid-1", "gunline", rs)
	if err := writeDump(path, []runRecord{rec}); err != nil {
		t.Fatalf("writeDump: %v", err)
	}
	got, err := readDump(path)
	if err != nil {
		t.Fatalf("readDump: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 record, got %d", len(got))
	}
	r := got[0]
	if r.ReportID != "rid-1" || r.Seed != 42 || r.Strategy != "gunline" {
		t.Fatalf("expected header fields to survive, got %+v", r)
	}
	if r.Kills != rs.outcome.Kills || r.LevelsWon != rs.outcome.LevelsWon {
		t.Fatalf("expected kills=%d won=%d, got kills=%d won=%d", rs.outcome.Kills, rs.outcome.LevelsWon, r.Kills, r.LevelsWon)
	}
	if r.Towers["gun"] != rs.towersByKind[game.TowerGun] {
		t.Fatalf("expected %d guns, got %d", rs.towersByKind[game.TowerGun], r.Towers["gun"])
	}
	if want := formatBest(rs.grades); r.BestTower != want {
		t.Fatalf("expected best tower %q, got %q", want, r.BestTower)
	}
}

func TestReadDump_MissingFile(t *testing.T) {
	if _, err := readDump(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Fatal("expected an error for a missing dump")
	}
}
