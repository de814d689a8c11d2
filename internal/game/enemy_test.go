package game

import (
	"math"
	"testing"
)

func straightPath() Path {
	return Path{{0, 0}, {1, 0}, {2, 0}, {3, 0}}
}

func testWalker(p Path, speed float64) *Enemy {
	return newEnemy(EnemyStats{Kind: EnemyRed, Health: 100, Speed: speed, Reward: 1}, 1, p)
}

func TestNewEnemy_StartsAtSpawnFacingFirstStep(t *testing.T) {
	e := newEnemy(EnemyStats{Kind: EnemyRed, Health: 100, Speed: 1}, 1.5, Path{{0, 2}, {0, 3}})
	if e.C != 0 || e.R != 2 {
		t.Fatalf("expected (0,2), got (%.1f,%.1f)", e.C, e.R)
	}
	if e.PathIndex != 1 {
		t.Fatalf("expected path index 1, got %d", e.PathIndex)
	}
	if math.Abs(e.Rotation-math.Pi/2) > 1e-9 {
		t.Fatalf("expected facing down, got %.3f", e.Rotation)
	}
	if e.Health != 150 || e.MaxHealth != 150 {
		t.Fatalf("expected scaled health 150, got %.1f/%.1f", e.Health, e.MaxHealth)
	}
}

func TestEnemyTick_WalksTowardWaypoint(t *testing.T) {
	e := testWalker(straightPath(), 1)
	e.Tick(500)
	if math.Abs(e.C-0.5) > 1e-9 || e.R != 0 {
		t.Fatalf("expected (0.5,0), got (%.3f,%.3f)", e.C, e.R)
	}
	if math.Abs(e.Travelled-0.5) > 1e-9 {
		t.Fatalf("expected travelled 0.5, got %.3f", e.Travelled)
	}
}

func TestEnemyTick_SnapsAndAdvances(t *testing.T) {
	e := testWalker(straightPath(), 1)
	e.Tick(1000)
	if e.C != 1 || e.PathIndex != 2 {
		t.Fatalf("expected snap to (1,0) and index 2, got c=%.3f index=%d", e.C, e.PathIndex)
	}
}

func TestEnemyTick_EscapesAtPathEnd(t *testing.T) {
	p := straightPath()
	e := testWalker(p, 2)
	for i := 0; i < 200 && !e.Escaped; i++ {
		e.Tick(TickMS)
	}
	if !e.Escaped {
		t.Fatal("expected enemy to escape")
	}
	if e.PathIndex != len(p)-1 {
		t.Fatalf("expected index clamped at %d, got %d", len(p)-1, e.PathIndex)
	}
	c := e.C
	e.Tick(1000)
	if e.C != c {
		t.Fatal("escaped enemy should not move")
	}
}

func TestEnemyTick_TurnsBeforeWalking(t *testing.T) {
	e := testWalker(Path{{0, 0}, {1, 0}, {1, 1}}, 1)
	e.Tick(1000) // reach the corner
	if e.PathIndex != 2 {
		t.Fatalf("expected corner reached, index %d", e.PathIndex)
	}
	e.Tick(TickMS)
	if e.C != 1 || e.R != 0 {
		t.Fatalf("expected no translation while turning, got (%.3f,%.3f)", e.C, e.R)
	}
	if e.Rotation <= 0 || e.Rotation >= math.Pi/2 {
		t.Fatalf("expected partial turn toward pi/2, got %.3f", e.Rotation)
	}
	for i := 0; i < 60; i++ {
		e.Tick(TickMS)
	}
	if e.R <= 0 {
		t.Fatal("expected walking once the turn completed")
	}
}

func TestAngleDiff_ShorterArc(t *testing.T) {
	// From 3.0 rad to -3.0 rad the short way is forward across pi.
	d := angleDiff(-3.0, 3.0)
	if d <= 0 || math.Abs(d-(2*math.Pi-6)) > 1e-9 {
		t.Fatalf("expected +%.4f, got %.4f", 2*math.Pi-6, d)
	}
}

func TestEnemySlow_DecaysLinearlyAndResetsExactly(t *testing.T) {
	e := testWalker(straightPath(), 1)
	e.ApplySlow(0.5, 1.0)
	e.decaySlow(0.5)
	if math.Abs(e.Slow-0.25) > 1e-9 || math.Abs(e.SlowTime-0.5) > 1e-9 {
		t.Fatalf("expected slow 0.25 for 0.5s, got %.3f for %.3fs", e.Slow, e.SlowTime)
	}
	e.decaySlow(0.5)
	if e.Slow != 0 || e.SlowTime != 0 {
		t.Fatalf("expected slow reset to exactly 0, got %v for %v", e.Slow, e.SlowTime)
	}
}

func TestEnemySlow_ReducesSpeed(t *testing.T) {
	e := testWalker(straightPath(), 2)
	e.ApplySlow(5, 10)
	if e.Slow != MaxSlow || e.SlowTime != MaxSlowTime {
		t.Fatalf("expected caps %.1f/%.1f, got %.2f/%.2f", MaxSlow, MaxSlowTime, e.Slow, e.SlowTime)
	}
	want := 2 * (1 - SlowDamping)
	if math.Abs(e.EffectiveSpeed()-want) > 1e-9 {
		t.Fatalf("expected effective speed %.2f, got %.2f", want, e.EffectiveSpeed())
	}
}

func TestEnemyDelay_InverseSpeed(t *testing.T) {
	if d := testWalker(straightPath(), 4).Delay(); d != 0.25 {
		t.Fatalf("expected 0.25, got %.3f", d)
	}
}

func TestEnemyReroute_NearestWaypoint(t *testing.T) {
	e := testWalker(straightPath(), 1)
	e.C, e.R = 1.9, 1
	e.reroute(Path{{0, 1}, {1, 1}, {2, 1}, {3, 1}})
	if e.PathIndex != 2 {
		t.Fatalf("expected index 2, got %d", e.PathIndex)
	}
}

func TestEnemyReroute_NeverHeadsBackwards(t *testing.T) {
	e := testWalker(straightPath(), 1)
	e.C, e.R = 2.1, 1
	e.reroute(Path{{0, 1}, {1, 1}, {2, 1}, {3, 1}})
	if e.PathIndex != 3 {
		t.Fatalf("expected index 3 once past waypoint 2, got %d", e.PathIndex)
	}
	before := e.C
	e.Tick(100)
	if e.C < before {
		t.Fatalf("expected to keep moving forward from %.2f, got %.2f", before, e.C)
	}
}
