package game

import (
	"fmt"
	"sort"
	"strings"
)

// Performance grading weights.
const (
	perfUptimeWeight = 0.5
	perfShareWeight  = 0.5
	perfMinTicks     = 60 // towers that saw less than a second of waves are not graded
)

// ---------------------------------------------------------------------------
// TowerPerf: per-tower, per-tick accumulator
// ---------------------------------------------------------------------------

// TowerPerf accumulates combat metrics for one tower across every wave it
// took part in.
type TowerPerf struct {
	ID   TowerID
	Kind TowerKind

	Invested int // build price plus every upgrade

	// Time during running waves (ticks).
	TicksActive   int
	TicksEngaged  int // target held
	TicksCharging int // target held, intensity below 1

	DamageDealt float64
	Kills       int // enemies that died while this tower held them
}

func newTowerPerf(t *Tower, price int) *TowerPerf {
	return &TowerPerf{ID: t.ID, Kind: t.Kind, Invested: price}
}

// update accumulates one tick for t; dealt is the damage it did this tick.
func (pt *TowerPerf) update(t *Tower, dealt float64) {
	pt.TicksActive++
	if t.Target != 0 {
		pt.TicksEngaged++
		if t.Intensity < 1 {
			pt.TicksCharging++
		}
	}
	pt.DamageDealt += dealt
}

// Uptime is the fraction of active time spent holding a target.
func (pt *TowerPerf) Uptime() float64 { return perfFrac(pt.TicksEngaged, pt.TicksActive) }

// DamagePerCoin is damage dealt per unit of money invested.
func (pt *TowerPerf) DamagePerCoin() float64 {
	if pt.Invested <= 0 {
		return 0
	}
	return pt.DamageDealt / float64(pt.Invested)
}

// ---------------------------------------------------------------------------
// TowerGrade: computed performance result
// ---------------------------------------------------------------------------

// TowerGrade is the computed grade for one attack tower.
type TowerGrade struct {
	ID    TowerID
	Kind  TowerKind
	Grade string  // A+ .. F
	Score float64 // 0-100

	Uptime        float64
	DamageShare   float64 // fraction of all tower damage
	DamagePerCoin float64
	Kills         int
}

// GradeTowers grades every attack tower that saw enough running time, best
// first. Obstacle and economy towers are skipped.
func GradeTowers(g *Game) []TowerGrade {
	total := 0.0
	var graded []*TowerPerf
	for _, t := range g.towers {
		if !t.Attacks() {
			continue
		}
		pt := g.perf[t.ID]
		if pt == nil || pt.TicksActive < perfMinTicks {
			continue
		}
		graded = append(graded, pt)
		total += pt.DamageDealt
	}

	grades := make([]TowerGrade, 0, len(graded))
	for _, pt := range graded {
		share := 0.0
		if total > 0 {
			share = pt.DamageDealt / total
		}
		// An average tower's share times the tower count is 1.
		score := 100 * (perfUptimeWeight*pt.Uptime() + perfShareWeight*perfClamp01(share*float64(len(graded))))
		score = perfClamp(score)
		grades = append(grades, TowerGrade{
			ID:            pt.ID,
			Kind:          pt.Kind,
			Grade:         PerfLetterGrade(score),
			Score:         score,
			Uptime:        pt.Uptime(),
			DamageShare:   share,
			DamagePerCoin: pt.DamagePerCoin(),
			Kills:         pt.Kills,
		})
	}
	sort.Slice(grades, func(i, j int) bool {
		if grades[i].Score != grades[j].Score {
			return grades[i].Score > grades[j].Score
		}
		return grades[i].ID < grades[j].ID
	})
	return grades
}

// FormatGrades returns a human-readable performance report.
func FormatGrades(grades []TowerGrade) string {
	var sb strings.Builder
	sb.WriteString("=== Tower Performance Grades ===\n")
	if len(grades) == 0 {
		sb.WriteString("  none\n")
		return sb.String()
	}
	for _, g := range grades {
		fmt.Fprintf(&sb, "  %-3s  T%-3d %-6s  uptime=%.0f%%  share=%.0f%%  dmg/coin=%.1f  kills=%d\n",
			g.Grade, g.ID, g.Kind, g.Uptime*100, g.DamageShare*100, g.DamagePerCoin, g.Kills)
	}
	return sb.String()
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func perfFrac(num, denom int) float64 {
	if denom <= 0 {
		return 0
	}
	return float64(num) / float64(denom)
}

func perfClamp(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}

func perfClamp01(v float64) float64 { return perfClamp(v*100) / 100 }

// PerfLetterGrade maps a 0-100 score to a letter grade.
func PerfLetterGrade(score float64) string {
	switch {
	case score >= 93:
		return "A+"
	case score >= 85:
		return "A"
	case score >= 78:
		return "B+"
	case score >= 70:
		return "B"
	case score >= 62:
		return "C+"
	case score >= 55:
		return "C"
	case score >= 45:
		return "D"
	default:
		return "F"
	}
}
