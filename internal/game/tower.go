package game

import (
	"fmt"
	"math"
)

// TowerID identifies a tower: its 1-based position in the game's tower list.
type TowerID int

// MaxTowerLevel is the highest upgrade level a tower can reach.
const MaxTowerLevel = 5

// TowerState is the derived behavioural state of a tower.
type TowerState int

const (
	TowerIdle     TowerState = iota // no target
	TowerCharging                   // target held, intensity still ramping
	TowerEngaged                    // target held at full intensity
)

func (s TowerState) String() string {
	switch s {
	case TowerIdle:
		return "idle"
	case TowerCharging:
		return "charging"
	case TowerEngaged:
		return "engaged"
	default:
		return "unknown"
	}
}

// Tower is a built tower on one grid cell.
type Tower struct {
	ID        TowerID
	Cell      Cell
	Kind      TowerKind
	Level     int
	Price     int     // price paid for the most recent build or upgrade
	Target    EnemyID // zero when idle
	Intensity float64 // 0..1 damage ramp
	Rotation  float64

	stats TowerStats
}

func newTower(id TowerID, c Cell, st TowerStats) *Tower {
	return &Tower{
		ID:    id,
		Cell:  c,
		Kind:  st.Kind,
		Level: 1,
		Price: st.Price,
		stats: st,
	}
}

// label is the sim-log subject, e.g. "T3".
func (t *Tower) label() string { return fmt.Sprintf("T%d", t.ID) }

// LevelFactor scales base stats for a tower level.
func LevelFactor(level int) float64 {
	return 1 + 0.9*float64(level-1)
}

// UpgradePrice is the price of building at the given level: base for a fresh
// tower (level 0 occupant), doubling with each existing level.
func UpgradePrice(base, level int) int {
	return base << level
}

// Stats returns the catalog record the tower was built from.
func (t *Tower) Stats() TowerStats { return t.stats }

// Attacks reports whether the tower ever acquires targets.
func (t *Tower) Attacks() bool { return t.stats.Role == RoleAttack }

// State derives the tower's behavioural state.
func (t *Tower) State() TowerState {
	switch {
	case t.Target == 0:
		return TowerIdle
	case t.Intensity < 1:
		return TowerCharging
	default:
		return TowerEngaged
	}
}

// Range is the level-independent Euclidean reach in grid units.
func (t *Tower) Range() float64 { return t.stats.Range }

// InRange reports whether e is alive and within reach.
func (t *Tower) InRange(e *Enemy) bool {
	if e == nil || !e.Alive() || e.Escaped {
		return false
	}
	return math.Hypot(e.C-float64(t.Cell.C), e.R-float64(t.Cell.R)) <= t.stats.Range
}

// Interest is the rate this tower adds to the end-of-level interest.
func (t *Tower) Interest() float64 {
	if t.stats.Role != RoleEconomy {
		return 0
	}
	return t.stats.Interest * LevelFactor(t.Level)
}

// PickTarget chooses the front-runner among in-range enemies. Sticky towers
// keep a current target that is still in range. It reports whether the target
// changed; a change resets intensity.
func (t *Tower) PickTarget(enemies []*Enemy) bool {
	if !t.Attacks() {
		return false
	}
	if t.stats.Sticky && t.Target != 0 {
		for _, e := range enemies {
			if e.ID == t.Target && t.InRange(e) {
				return false
			}
		}
	}
	var best *Enemy
	for _, e := range enemies {
		if !t.InRange(e) {
			continue
		}
		if best == nil || e.Travelled > best.Travelled {
			best = e
		}
	}
	var id EnemyID
	if best != nil {
		id = best.ID
	}
	if id == t.Target {
		return false
	}
	t.Target = id
	t.Intensity = 0
	return true
}

// Tick charges and fires at target for ms milliseconds. It is a no-op without
// a live target; another tower may have killed it earlier in the tick.
func (t *Tower) Tick(ms float64, target *Enemy) {
	if !t.Attacks() || target == nil || !target.Alive() {
		return
	}
	dt := ms / 1000
	t.Intensity = math.Min(t.Intensity+dt/t.stats.ChargeTime, 1)
	lf := LevelFactor(t.Level)
	target.Damage(t.stats.DPS * lf * t.Intensity * dt)
	if t.stats.SlowRate > 0 {
		target.ApplySlow(t.stats.SlowRate*lf*t.Intensity*dt, t.stats.SlowDuration*t.Intensity*dt)
	}
	t.Rotation = math.Atan2(target.R-float64(t.Cell.R), target.C-float64(t.Cell.C))
}

// upgrade raises the level in place.
func (t *Tower) upgrade(price int) {
	t.Level++
	t.Price = price
}
