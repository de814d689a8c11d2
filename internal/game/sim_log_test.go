package game

import (
	"strings"
	"testing"
)

func TestSimLog_FilterAndCount(t *testing.T) {
	sl := NewSimLog(false)
	sl.Add(1, "E1", "economy", "kill", "red", 1)
	sl.Add(2, "E2", "enemy", "escaped", "red", 19)
	sl.Add(3, "E3", "economy", "kill", "speedy", 1)
	if got := sl.CountCategory("economy", "kill"); got != 2 {
		t.Fatalf("expected 2 kills, got %d", got)
	}
	if got := len(sl.Filter("", "escaped")); got != 1 {
		t.Fatalf("expected 1 escape, got %d", got)
	}
	last, ok := sl.LastOf("economy", "kill")
	if !ok || last.Subject != "E3" {
		t.Fatalf("expected last kill by E3, got %+v", last)
	}
	if !sl.HasEntry("economy", "kill", "speed") {
		t.Fatal("expected substring match on value")
	}
	if got := len(sl.FilterSubject("E2")); got != 1 {
		t.Fatalf("expected 1 entry for E2, got %d", got)
	}
	if got := len(sl.FilterTickRange(2, 3)); got != 2 {
		t.Fatalf("expected 2 entries in [2,3], got %d", got)
	}
}

func TestSimLog_VerboseGate(t *testing.T) {
	quiet := NewSimLog(false)
	quiet.AddVerbose(1, "E1", "wave", "spawn", "red", 100)
	if len(quiet.Entries()) != 0 {
		t.Fatal("verbose entries must be dropped when not verbose")
	}
	loud := NewSimLog(true)
	loud.AddVerbose(1, "E1", "wave", "spawn", "red", 100)
	if len(loud.Entries()) != 1 {
		t.Fatal("verbose entries must be kept when verbose")
	}
}

func TestSimLog_TailAndFormat(t *testing.T) {
	sl := NewSimLog(false)
	for i := 0; i < 5; i++ {
		sl.Add(i, "--", "state", "phase", "running", 0)
	}
	if got := len(sl.Tail(3)); got != 3 {
		t.Fatalf("expected 3, got %d", got)
	}
	if got := len(sl.Tail(10)); got != 5 {
		t.Fatalf("expected all 5, got %d", got)
	}
	out := sl.Format()
	if strings.Count(out, "\n") != 5 || !strings.HasPrefix(out, "[T=000] --") {
		t.Fatalf("unexpected format:\n%s", out)
	}
}

func TestSimLog_SummaryMentionsState(t *testing.T) {
	g := New()
	g.PlaceTower(3, 3, TowerGun)
	s := g.Log().Summary(g)
	for _, want := range []string{"Level: 1", "Money: 30", "gun=1"} {
		if !strings.Contains(s, want) {
			t.Fatalf("expected summary to contain %q:\n%s", want, s)
		}
	}
}
