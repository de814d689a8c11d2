package game

import (
	"fmt"
	"math"
)

// EnemyID identifies a released enemy. Zero means "no enemy".
type EnemyID int

const (
	// SlowDamping scales the slow accumulator into a speed reduction.
	SlowDamping = 0.6
	// MaxSlow caps the slow accumulator.
	MaxSlow = 1.0
	// MaxSlowTime caps the remaining slow duration in seconds.
	MaxSlowTime = 3.0
	// TurnRate is the angular speed in radians per cell of effective speed.
	TurnRate = 8.0
)

// Enemy is one walker on the path. Positions are continuous grid coordinates
// with cell centres on integer values.
type Enemy struct {
	ID        EnemyID
	Kind      EnemyKind
	C, R      float64
	Health    float64
	MaxHealth float64
	Speed     float64 // cells per second before slow
	Reward    int

	Path      Path // shared with the game; replaced wholesale on reroute
	PathIndex int  // index of the waypoint being walked toward

	Slow     float64 // 0..MaxSlow
	SlowTime float64 // seconds of slow remaining

	Travelled float64 // cells walked so far

	Rotation       float64
	TargetRotation float64

	Escaped bool
}

// newEnemy places an enemy of the given stats at the start of path, facing
// its first step. healthScale multiplies the base health.
func newEnemy(st EnemyStats, healthScale float64, path Path) *Enemy {
	hp := st.Health * healthScale
	e := &Enemy{
		Kind:      st.Kind,
		Health:    hp,
		MaxHealth: hp,
		Speed:     st.Speed,
		Reward:    st.Reward,
		Path:      path,
	}
	if len(path) > 0 {
		e.C, e.R = float64(path[0].C), float64(path[0].R)
	}
	if len(path) > 1 {
		e.PathIndex = 1
		e.Rotation = math.Atan2(float64(path[1].R-path[0].R), float64(path[1].C-path[0].C))
		e.TargetRotation = e.Rotation
	}
	return e
}

// label is the sim-log subject, e.g. "E12".
func (e *Enemy) label() string { return fmt.Sprintf("E%d", e.ID) }

// Alive reports whether the enemy still has health.
func (e *Enemy) Alive() bool { return e.Health > 0 }

// Delay is the spawn spacing this enemy adds to the release accumulator.
func (e *Enemy) Delay() float64 { return 1 / e.Speed }

// EffectiveSpeed is the walking speed after slow.
func (e *Enemy) EffectiveSpeed() float64 {
	return e.Speed * (1 - e.Slow*SlowDamping)
}

// ApplySlow stacks more slow onto the enemy.
func (e *Enemy) ApplySlow(amount, duration float64) {
	e.Slow = math.Min(e.Slow+amount, MaxSlow)
	e.SlowTime = math.Min(e.SlowTime+duration, MaxSlowTime)
}

// Damage removes health.
func (e *Enemy) Damage(amount float64) {
	e.Health -= amount
}

// decaySlow winds the slow down linearly so it reaches zero with SlowTime.
func (e *Enemy) decaySlow(dt float64) {
	if e.SlowTime <= 0 {
		e.Slow, e.SlowTime = 0, 0
		return
	}
	if dt >= e.SlowTime {
		e.Slow, e.SlowTime = 0, 0
		return
	}
	e.Slow -= e.Slow * dt / e.SlowTime
	e.SlowTime -= dt
}

// Tick advances the enemy by ms milliseconds: turn first, then walk.
func (e *Enemy) Tick(ms float64) {
	dt := ms / 1000
	e.decaySlow(dt)
	if !e.Alive() || e.Escaped || e.PathIndex >= len(e.Path) {
		return
	}

	wp := e.Path[e.PathIndex]
	dx, dy := float64(wp.C)-e.C, float64(wp.R)-e.R
	dist := math.Hypot(dx, dy)
	speed := e.EffectiveSpeed()
	if dist > 0 {
		e.TargetRotation = math.Atan2(dy, dx)
	}

	turn := TurnRate * speed * dt
	diff := angleDiff(e.TargetRotation, e.Rotation)
	if math.Abs(diff) > turn {
		e.Rotation = normalizeAngle(e.Rotation + math.Copysign(turn, diff))
		return
	}
	e.Rotation = e.TargetRotation

	step := speed * dt
	if dist <= step {
		e.C, e.R = float64(wp.C), float64(wp.R)
		e.Travelled += dist
		if e.PathIndex == len(e.Path)-1 {
			e.Escaped = true
			return
		}
		e.PathIndex++
		return
	}
	e.C += dx / dist * step
	e.R += dy / dist * step
	e.Travelled += step
}

// reroute swaps in a new path and heads for the waypoint nearest the enemy's
// current position, or the one after it when the enemy is already past it.
func (e *Enemy) reroute(p Path) {
	e.Path = p
	if len(p) == 0 {
		e.PathIndex = 0
		return
	}
	best, bestD := 0, math.Inf(1)
	for i, w := range p {
		d := math.Hypot(float64(w.C)-e.C, float64(w.R)-e.R)
		if d < bestD {
			best, bestD = i, d
		}
	}
	if best+1 < len(p) {
		w, next := p[best], p[best+1]
		toW := [2]float64{float64(w.C) - e.C, float64(w.R) - e.R}
		seg := [2]float64{float64(next.C - w.C), float64(next.R - w.R)}
		if toW[0]*seg[0]+toW[1]*seg[1] < 0 {
			best++
		}
	}
	e.PathIndex = best
}

// angleDiff returns a-b folded into [-pi, pi], the shorter arc.
func angleDiff(a, b float64) float64 {
	return math.Remainder(a-b, 2*math.Pi)
}

func normalizeAngle(a float64) float64 {
	return math.Remainder(a, 2*math.Pi)
}
