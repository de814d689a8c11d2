package game

const (
	// FinalLevel releases the single titan.
	FinalLevel = 50
	// BossEvery marks boss-only milestone levels.
	BossEvery = 10
	// LowLivesThreshold is the lives count at or below which waves ease off.
	LowLivesThreshold = 3
	// LowLivesEase multiplies enemy health when lives are low.
	LowLivesEase = 0.9
)

// Composition returns the enemy kinds of a level's wave in release order.
//
//	1-9     4+level reds
//	11-29   reds and speedies, two reds per speedy
//	10k     (level/10)^2 bosses
//	31+     elites, then trailing speedies
//	50      one titan
func Composition(level int) []EnemyKind {
	if level < 1 {
		level = 1
	}
	switch {
	case level == FinalLevel:
		return []EnemyKind{EnemyTitan}
	case level%BossEvery == 0:
		n := level / BossEvery
		return repeatKind(EnemyBoss, n*n)
	case level > 30:
		step := (level - 31) / 2
		out := repeatKind(EnemyElite, 6+step)
		return append(out, repeatKind(EnemySpeedy, 8+step)...)
	case level > 10:
		step := (level - 11) / 2
		return interleave(10+step, 3+step)
	default:
		return repeatKind(EnemyRed, 4+level)
	}
}

func repeatKind(k EnemyKind, n int) []EnemyKind {
	out := make([]EnemyKind, n)
	for i := range out {
		out[i] = k
	}
	return out
}

// interleave emits reds and speedies two-to-one until both run out.
func interleave(reds, speedies int) []EnemyKind {
	out := make([]EnemyKind, 0, reds+speedies)
	for reds > 0 || speedies > 0 {
		for i := 0; i < 2 && reds > 0; i++ {
			out = append(out, EnemyRed)
			reds--
		}
		if speedies > 0 {
			out = append(out, EnemySpeedy)
			speedies--
		}
	}
	return out
}

// HealthScale is the per-level health multiplier, eased when lives are low.
func HealthScale(level, lives int) float64 {
	s := 1 + 0.15*float64(level-1)
	if lives <= LowLivesThreshold {
		s *= LowLivesEase
	}
	return s
}

// Wave holds the not-yet-released enemies of one level as a stack: Pop takes
// from the end, so the stack is stored in reverse release order.
type Wave struct {
	Level   int
	pending []*Enemy
}

// NewWave builds the release stack for a level. Every enemy shares path.
func NewWave(level, lives int, path Path, cat Catalog) *Wave {
	kinds := Composition(level)
	scale := HealthScale(level, lives)
	w := &Wave{Level: level, pending: make([]*Enemy, len(kinds))}
	for i, k := range kinds {
		w.pending[len(kinds)-1-i] = newEnemy(cat.Enemies[k], scale, path)
	}
	return w
}

// Pop releases the next enemy, or nil when the wave is exhausted.
func (w *Wave) Pop() *Enemy {
	if w == nil || len(w.pending) == 0 {
		return nil
	}
	e := w.pending[len(w.pending)-1]
	w.pending = w.pending[:len(w.pending)-1]
	return e
}

// Len is the number of unreleased enemies.
func (w *Wave) Len() int {
	if w == nil {
		return 0
	}
	return len(w.pending)
}

// Empty reports whether every enemy has been released.
func (w *Wave) Empty() bool { return w.Len() == 0 }

// Health sums the health of the unreleased enemies.
func (w *Wave) Health() float64 {
	if w == nil {
		return 0
	}
	var hp float64
	for _, e := range w.pending {
		hp += e.Health
	}
	return hp
}

// reroute points every unreleased enemy at a new path.
func (w *Wave) reroute(p Path) {
	if w == nil {
		return
	}
	for _, e := range w.pending {
		e.Path = p
		e.C, e.R = float64(p[0].C), float64(p[0].R)
		e.PathIndex = 0
		if len(p) > 1 {
			e.PathIndex = 1
		}
	}
}
