package game

import (
	"encoding/json"
	"fmt"
	"os"
)

// TowerKind names a buildable tower type.
type TowerKind string

const (
	TowerGun   TowerKind = "gun"   // cheap single-target damage
	TowerFrost TowerKind = "frost" // low damage, slows its target
	TowerLaser TowerKind = "laser" // long charge, heavy damage
	TowerWall  TowerKind = "wall"  // pure obstacle, reshapes the path
	TowerBank  TowerKind = "bank"  // economy only, raises interest
)

// TowerRole decides whether a tower takes part in combat.
type TowerRole string

const (
	RoleAttack   TowerRole = "attack"
	RoleObstacle TowerRole = "obstacle"
	RoleEconomy  TowerRole = "economy"
)

// TowerStats is the static stat record for a tower kind at level 1.
type TowerStats struct {
	Kind       TowerKind `json:"kind"`
	Role       TowerRole `json:"role"`
	Price      int       `json:"price"`
	Range      float64   `json:"range"`       // grid units, Euclidean
	DPS        float64   `json:"dps"`         // damage per second at full intensity
	ChargeTime float64   `json:"charge_time"` // seconds from intensity 0 to 1
	Sticky     bool      `json:"sticky"`      // keeps its target while it stays in range

	// Slow towers: slow amount and slow seconds added to the target per
	// second of exposure at full intensity.
	SlowRate     float64 `json:"slow_rate,omitempty"`
	SlowDuration float64 `json:"slow_duration,omitempty"`

	// Economy towers: interest rate added per level factor.
	Interest float64 `json:"interest,omitempty"`
}

// EnemyKind names an enemy variant.
type EnemyKind string

const (
	EnemyRed    EnemyKind = "red"
	EnemySpeedy EnemyKind = "speedy"
	EnemyElite  EnemyKind = "elite"
	EnemyBoss   EnemyKind = "boss"
	EnemyTitan  EnemyKind = "titan"
)

// EnemyStats is the static stat record for an enemy kind before level scaling.
type EnemyStats struct {
	Kind   EnemyKind `json:"kind"`
	Health float64   `json:"health"`
	Speed  float64   `json:"speed"` // cells per second
	Reward int       `json:"reward"`
}

// Catalog holds the stat tables keyed by variant tag.
type Catalog struct {
	Towers  map[TowerKind]TowerStats
	Enemies map[EnemyKind]EnemyStats
}

// DefaultCatalog returns the built-in stat tables.
func DefaultCatalog() Catalog {
	towers := []TowerStats{
		{Kind: TowerGun, Role: RoleAttack, Price: 15, Range: 2.5, DPS: 30, ChargeTime: 0.5},
		{Kind: TowerFrost, Role: RoleAttack, Price: 25, Range: 2.0, DPS: 8, ChargeTime: 1.0, Sticky: true,
			SlowRate: 0.8, SlowDuration: 1.5},
		{Kind: TowerLaser, Role: RoleAttack, Price: 60, Range: 4.0, DPS: 90, ChargeTime: 2.0, Sticky: true},
		{Kind: TowerWall, Role: RoleObstacle, Price: 2},
		{Kind: TowerBank, Role: RoleEconomy, Price: 40, Interest: 0.03},
	}
	enemies := []EnemyStats{
		{Kind: EnemyRed, Health: 100, Speed: 1.5, Reward: 1},
		{Kind: EnemySpeedy, Health: 60, Speed: 3.0, Reward: 1},
		{Kind: EnemyElite, Health: 600, Speed: 1.2, Reward: 4},
		{Kind: EnemyBoss, Health: 2000, Speed: 0.8, Reward: 20},
		{Kind: EnemyTitan, Health: 200000, Speed: 0.5, Reward: 500},
	}
	c := Catalog{
		Towers:  make(map[TowerKind]TowerStats, len(towers)),
		Enemies: make(map[EnemyKind]EnemyStats, len(enemies)),
	}
	for _, t := range towers {
		c.Towers[t.Kind] = t
	}
	for _, e := range enemies {
		c.Enemies[e.Kind] = e
	}
	return c
}

// catalogFile is the on-disk override format.
type catalogFile struct {
	Towers  []TowerStats `json:"towers"`
	Enemies []EnemyStats `json:"enemies"`
}

// LoadCatalog reads a JSON override file and merges it over DefaultCatalog.
// Only known kinds may be overridden; each override replaces the whole record.
func LoadCatalog(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog merges JSON overrides over DefaultCatalog and validates the result.
func ParseCatalog(data []byte) (Catalog, error) {
	var f catalogFile
	if err := json.Unmarshal(data, &f); err != nil {
		return Catalog{}, fmt.Errorf("failed to unmarshal catalog: %w", err)
	}
	c := DefaultCatalog()
	for _, t := range f.Towers {
		if _, ok := c.Towers[t.Kind]; !ok {
			return Catalog{}, fmt.Errorf("unknown tower kind %q", t.Kind)
		}
		c.Towers[t.Kind] = t
	}
	for _, e := range f.Enemies {
		if _, ok := c.Enemies[e.Kind]; !ok {
			return Catalog{}, fmt.Errorf("unknown enemy kind %q", e.Kind)
		}
		c.Enemies[e.Kind] = e
	}
	if err := c.Validate(); err != nil {
		return Catalog{}, err
	}
	return c, nil
}

// Validate reports the first stat record that cannot drive the simulation.
func (c Catalog) Validate() error {
	for kind, t := range c.Towers {
		if t.Price <= 0 {
			return fmt.Errorf("tower %q: price must be > 0", kind)
		}
		switch t.Role {
		case RoleAttack:
			if t.Range <= 0 || t.DPS < 0 || t.ChargeTime <= 0 {
				return fmt.Errorf("tower %q: attack towers need range > 0, dps >= 0, charge_time > 0", kind)
			}
		case RoleObstacle, RoleEconomy:
		default:
			return fmt.Errorf("tower %q: unknown role %q", kind, t.Role)
		}
	}
	for kind, e := range c.Enemies {
		if e.Health <= 0 || e.Speed <= 0 {
			return fmt.Errorf("enemy %q: health and speed must be > 0", kind)
		}
	}
	return nil
}
