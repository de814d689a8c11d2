package game

import (
	"math"
	"strings"
	"testing"
)

func gunLineSim(t *testing.T) *TestSim {
	t.Helper()
	opts := []SimOption{WithSimMoney(1000)}
	for c := 3; c <= 17; c += 2 {
		opts = append(opts, WithTower(c, 5, TowerGun))
	}
	return NewTestSim(opts...)
}

func TestPerf_TracksDamageAndKills(t *testing.T) {
	ts := gunLineSim(t)
	if !ts.RunLevel(10000) {
		t.Fatal("expected level 1 to be won")
	}
	g := ts.Game
	kills := g.Log().CountCategory("economy", "kill")

	total, credited := 0.0, 0
	for _, tw := range g.Towers() {
		pt := g.Perf(tw.ID)
		if pt == nil {
			t.Fatalf("expected metrics for %s", tw.label())
		}
		if pt.TicksActive != g.TickCount() {
			t.Fatalf("expected %s active for all %d ticks, got %d", tw.label(), g.TickCount(), pt.TicksActive)
		}
		if pt.TicksEngaged > pt.TicksActive || pt.TicksCharging > pt.TicksEngaged {
			t.Fatalf("expected charging <= engaged <= active, got %d/%d/%d", pt.TicksCharging, pt.TicksEngaged, pt.TicksActive)
		}
		total += pt.DamageDealt
		credited += pt.Kills
	}
	if credited < kills {
		t.Fatalf("expected every kill credited to a tower, got %d credits for %d kills", credited, kills)
	}
	minDamage := float64(kills) * g.Catalog().Enemies[EnemyRed].Health * HealthScale(1, DefaultLives)
	if total < minDamage {
		t.Fatalf("expected at least %.0f damage, got %.0f", minDamage, total)
	}
}

// oneShotCatalog makes guns kill a red in a single tick from cold.
func oneShotCatalog() Catalog {
	cat := DefaultCatalog()
	gun := cat.Towers[TowerGun]
	gun.DPS = 9000
	gun.ChargeTime = 0.001
	cat.Towers[TowerGun] = gun
	return cat
}

func TestPerf_SharedTargetCountsNoOverkill(t *testing.T) {
	// Both guns flank the straight spawn row and hold the same front-runner.
	ts := NewTestSim(
		WithSimCatalog(oneShotCatalog()),
		WithTower(4, DefaultRows/2-1, TowerGun),
		WithTower(4, DefaultRows/2+1, TowerGun),
	)
	if !ts.RunLevel(10000) {
		t.Fatal("expected level 1 to be won")
	}
	g := ts.Game
	if esc := g.Log().CountCategory("enemy", "escaped"); esc != 0 {
		t.Fatalf("expected no escapes, got %d", esc)
	}
	kills := g.Log().CountCategory("economy", "kill")
	if kills == 0 {
		t.Fatal("expected kills")
	}

	total := 0.0
	for _, tw := range g.Towers() {
		total += g.Perf(tw.ID).DamageDealt
	}
	waveHealth := float64(kills) * g.Catalog().Enemies[EnemyRed].Health * HealthScale(1, DefaultLives)
	if math.Abs(total-waveHealth) > 1e-6 {
		t.Fatalf("expected damage dealt to equal wave health %.2f, got %.2f", waveHealth, total)
	}
}

func TestPerf_InvestedIncludesUpgrades(t *testing.T) {
	g := New(WithMoney(100))
	tw := g.PlaceTower(3, 3, TowerGun)
	g.PlaceTower(3, 3, TowerGun)
	if got := g.Perf(tw.ID).Invested; got != 45 {
		t.Fatalf("expected 45 invested (15 + 30), got %d", got)
	}
	if got := g.Perf(tw.ID).DamagePerCoin(); got != 0 {
		t.Fatalf("expected no damage before a wave, got %.2f", got)
	}
}

func TestGradeTowers_SkipsNonAttackAndSorts(t *testing.T) {
	ts := gunLineSim(t)
	ts.Game.GridClick(10, 2, TowerWall)
	ts.RunLevel(10000)

	grades := GradeTowers(ts.Game)
	if len(grades) != 8 {
		t.Fatalf("expected 8 graded guns, got %d", len(grades))
	}
	share := 0.0
	for i, gr := range grades {
		if gr.Kind != TowerGun {
			t.Fatalf("expected only guns graded, got %s", gr.Kind)
		}
		if gr.Grade != PerfLetterGrade(gr.Score) {
			t.Fatalf("expected grade %s for score %.1f, got %s", PerfLetterGrade(gr.Score), gr.Score, gr.Grade)
		}
		if i > 0 && grades[i-1].Score < gr.Score {
			t.Fatalf("expected grades sorted best first at %d", i)
		}
		share += gr.DamageShare
	}
	if share < 0.999 || share > 1.001 {
		t.Fatalf("expected damage shares to sum to 1, got %.3f", share)
	}
	if out := FormatGrades(grades); !strings.Contains(out, "T1") || !strings.Contains(out, "gun") {
		t.Fatalf("expected formatted grades to list towers, got:\n%s", out)
	}
}

func TestGradeTowers_NeedsRunningTime(t *testing.T) {
	g := New()
	g.PlaceTower(3, 3, TowerGun)
	if grades := GradeTowers(g); len(grades) != 0 {
		t.Fatalf("expected no grades before any wave, got %d", len(grades))
	}
	if out := FormatGrades(nil); !strings.Contains(out, "none") {
		t.Fatalf("expected empty report, got %q", out)
	}
}

func TestPerfLetterGrade_Boundaries(t *testing.T) {
	cases := map[float64]string{100: "A+", 93: "A+", 92.9: "A", 78: "B+", 70: "B", 62: "C+", 55: "C", 45: "D", 44.9: "F", 0: "F"}
	for score, want := range cases {
		if got := PerfLetterGrade(score); got != want {
			t.Fatalf("expected %s for %.1f, got %s", want, score, got)
		}
	}
}
