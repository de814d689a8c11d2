package game

import (
	"fmt"
	"math"
)

const (
	DefaultCols  = 20
	DefaultRows  = 12
	DefaultMoney = 45
	DefaultLives = 20
	// MaxLives caps the life restored on perfect milestone levels.
	MaxLives = 20
	// LifeRestoreEvery is the milestone spacing for perfect-level life restores.
	LifeRestoreEvery = 5

	baseInterest = 0.05
	maxInterest  = 0.25
)

// unlocks maps a level to the tower kind that becomes available on reaching it.
var unlocks = map[int]TowerKind{
	3: TowerFrost,
	5: TowerBank,
	8: TowerLaser,
}

// Phase is the orchestrator state.
type Phase int

const (
	PhaseSetup    Phase = iota // built, no wave started yet
	PhasePaused                // between waves
	PhaseRunning               // wave active
	PhaseDefeated              // lives exhausted; terminal
)

func (p Phase) String() string {
	switch p {
	case PhaseSetup:
		return "setup"
	case PhasePaused:
		return "paused"
	case PhaseRunning:
		return "running"
	case PhaseDefeated:
		return "defeated"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Rejection reasons returned by placement checks.
const (
	ReasonDefeated     = "defeated"
	ReasonLocked       = "locked"
	ReasonUnknownKind  = "unknown kind"
	ReasonIllegalCell  = "illegal cell"
	ReasonOccupied     = "occupied"
	ReasonMaxLevel     = "max level"
	ReasonWaveRunning  = "wave running"
	ReasonBlocksPath   = "blocks path"
	ReasonUnaffordable = "unaffordable"
)

// Game is the aggregate root of one match. All mutation goes through its
// methods; it is not safe for concurrent use.
type Game struct {
	grid    *Grid
	path    Path
	catalog Catalog

	money int
	level int
	lives int
	phase Phase

	towers  []*Tower
	enemies []*Enemy
	wave    *Wave
	perf    map[TowerID]*TowerPerf

	spawnDelay  float64
	nextEnemyID EnemyID
	perfect     bool
	inventory   []TowerKind
	onVictory   func()

	tick int
	log  *SimLog
}

type config struct {
	cols, rows        int
	spawnRow, goalRow int
	money, lives      int
	level             int
	catalog           Catalog
	verbose           bool
}

// Option configures a Game at construction.
type Option func(*config)

// WithGridSize sets the grid dimensions. Spawn and goal rows default to the
// middle row.
func WithGridSize(cols, rows int) Option {
	return func(c *config) { c.cols, c.rows = cols, rows }
}

// WithSpawnRow sets the row of the left-border spawn opening.
func WithSpawnRow(r int) Option { return func(c *config) { c.spawnRow = r } }

// WithGoalRow sets the row of the right-border goal opening.
func WithGoalRow(r int) Option { return func(c *config) { c.goalRow = r } }

// WithMoney sets the starting money.
func WithMoney(m int) Option { return func(c *config) { c.money = m } }

// WithLives sets the starting lives.
func WithLives(n int) Option { return func(c *config) { c.lives = n } }

// WithLevel starts the match at a later level with its unlocks applied.
func WithLevel(l int) Option { return func(c *config) { c.level = l } }

// WithCatalog replaces the stat tables.
func WithCatalog(cat Catalog) Option { return func(c *config) { c.catalog = cat } }

// WithVerboseLog records per-spawn and per-target entries in the sim log.
func WithVerboseLog(v bool) Option { return func(c *config) { c.verbose = v } }

// New builds a game in the Setup phase with its initial path computed.
func New(opts ...Option) *Game {
	cfg := config{
		cols:     DefaultCols,
		rows:     DefaultRows,
		spawnRow: -1,
		goalRow:  -1,
		money:    DefaultMoney,
		lives:    DefaultLives,
		level:    1,
		catalog:  DefaultCatalog(),
	}
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.spawnRow < 0 {
		cfg.spawnRow = cfg.rows / 2
	}
	if cfg.goalRow < 0 {
		cfg.goalRow = cfg.rows / 2
	}
	if cfg.level < 1 {
		cfg.level = 1
	}

	g := &Game{
		grid:      NewGrid(cfg.cols, cfg.rows, cfg.spawnRow, cfg.goalRow),
		catalog:   cfg.catalog,
		money:     cfg.money,
		level:     cfg.level,
		lives:     cfg.lives,
		phase:     PhaseSetup,
		perfect:   true,
		inventory: []TowerKind{TowerGun, TowerWall},
		perf:      map[TowerID]*TowerPerf{},
		log:       NewSimLog(cfg.verbose),
	}
	for l := 1; l <= cfg.level; l++ {
		g.unlock(l)
	}
	g.path = g.grid.FindPath()
	if g.path == nil {
		panic("game: initial grid has no path from spawn to goal")
	}
	g.log.Add(g.tick, "--", "path", "computed", g.path.String(), float64(len(g.path)))
	return g
}

// OnVictory registers the callback invoked at each level completion.
func (g *Game) OnVictory(fn func()) { g.onVictory = fn }

// Start begins the current level's wave. Starting while a wave is active,
// after defeat, or without a victory callback is a programming error.
func (g *Game) Start() {
	switch {
	case g.phase == PhaseRunning:
		panic("game: Start called while a wave is running")
	case g.lives <= 0 || g.phase == PhaseDefeated:
		panic("game: Start called after defeat")
	case g.onVictory == nil:
		panic("game: Start called without a victory callback")
	case len(g.enemies) > 0:
		panic("game: Start called with enemies on the field")
	case g.path == nil:
		panic("game: Start called without a path")
	}
	g.wave = NewWave(g.level, g.lives, g.path, g.catalog)
	g.perfect = true
	g.spawnDelay = 0
	g.phase = PhaseRunning
	g.log.Add(g.tick, "--", "wave", "start", fmt.Sprintf("level %d", g.level), float64(g.wave.Len()))
	g.log.Add(g.tick, "--", "state", "phase", g.phase.String(), 0)
}

// Tick advances the simulation by ms milliseconds. It does nothing while
// paused or after defeat.
func (g *Game) Tick(ms float64) {
	if g.lives <= 0 || g.phase != PhaseRunning {
		return
	}
	g.tick++

	for _, t := range g.towers {
		target := g.enemy(t.Target)
		before := 0.0
		if target != nil {
			before = target.Health
		}
		t.Tick(ms, target)
		// Overkill removes no health.
		dealt := 0.0
		if target != nil && before > 0 {
			dealt = math.Min(before, before-target.Health)
		}
		g.perf[t.ID].update(t, dealt)
	}
	for _, e := range g.enemies {
		e.Tick(ms)
	}
	g.release(ms / 1000)
	g.reconcile()

	if g.lives <= 0 {
		g.phase = PhaseDefeated
		g.log.Add(g.tick, "--", "state", "defeated", fmt.Sprintf("level %d", g.level), float64(g.level))
		return
	}

	for _, t := range g.towers {
		if t.PickTarget(g.enemies) {
			g.log.AddVerbose(g.tick, t.label(), "enemy", "target", fmt.Sprintf("e%d", t.Target), float64(t.Target))
		}
	}

	if g.wave.Empty() && len(g.enemies) == 0 {
		g.victory()
	}
}

// release decrements the spawn delay and lets due enemies onto the field.
func (g *Game) release(dt float64) {
	g.spawnDelay -= dt
	for g.spawnDelay <= 0 && !g.wave.Empty() {
		e := g.wave.Pop()
		g.nextEnemyID++
		e.ID = g.nextEnemyID
		g.enemies = append(g.enemies, e)
		g.spawnDelay += e.Delay()
		g.log.AddVerbose(g.tick, e.label(), "wave", "spawn", string(e.Kind), e.Health)
	}
}

// reconcile removes dead and escaped enemies, paying rewards and taking lives.
func (g *Game) reconcile() {
	alive := g.enemies[:0]
	for _, e := range g.enemies {
		switch {
		case !e.Alive():
			g.money += e.Reward
			for _, t := range g.towers {
				if t.Target == e.ID {
					g.perf[t.ID].Kills++
				}
			}
			g.log.Add(g.tick, e.label(), "economy", "kill", string(e.Kind), float64(e.Reward))
		case e.Escaped:
			if g.lives > 0 {
				g.lives--
			}
			g.perfect = false
			g.log.Add(g.tick, e.label(), "enemy", "escaped", string(e.Kind), float64(g.lives))
		default:
			alive = append(alive, e)
		}
	}
	for i := len(alive); i < len(g.enemies); i++ {
		g.enemies[i] = nil
	}
	g.enemies = alive
}

// victory closes a level. It must only be reached from a running wave with
// nothing left to release or kill.
func (g *Game) victory() {
	if g.phase != PhaseRunning || !g.wave.Empty() || len(g.enemies) > 0 {
		panic("game: victory outside a finished running wave")
	}
	if g.perfect && g.level%LifeRestoreEvery == 0 && g.lives < MaxLives {
		g.lives++
		g.log.Add(g.tick, "--", "economy", "life_restored", fmt.Sprintf("level %d", g.level), float64(g.lives))
	}
	reward := g.LevelReward()
	g.money += reward
	g.log.Add(g.tick, "--", "economy", "level_reward", fmt.Sprintf("level %d", g.level), float64(reward))
	g.log.Add(g.tick, "--", "wave", "cleared", fmt.Sprintf("level %d perfect=%v", g.level, g.perfect), float64(g.level))

	g.level++
	g.unlock(g.level)
	g.wave = nil
	g.phase = PhasePaused
	g.log.Add(g.tick, "--", "state", "phase", g.phase.String(), 0)
	g.onVictory()
}

// InterestRate is the fraction of money paid as interest at level end.
func (g *Game) InterestRate() float64 {
	rate := baseInterest
	for _, t := range g.towers {
		rate += t.Interest()
	}
	return math.Min(rate, maxInterest)
}

// LevelReward is the money a victory at the current level would pay now.
func (g *Game) LevelReward() int {
	return 10 + g.level + int(math.Floor(float64(g.money)*g.InterestRate()))
}

func (g *Game) unlock(level int) {
	k, ok := unlocks[level]
	if !ok || g.unlocked(k) {
		return
	}
	g.inventory = append(g.inventory, k)
	g.log.Add(g.tick, "--", "economy", "unlock", string(k), float64(level))
}

func (g *Game) unlocked(k TowerKind) bool {
	for _, have := range g.inventory {
		if have == k {
			return true
		}
	}
	return false
}

// enemy resolves an id against the active enemies.
func (g *Game) enemy(id EnemyID) *Enemy {
	if id == 0 {
		return nil
	}
	for _, e := range g.enemies {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// Money returns the current money.
func (g *Game) Money() int { return g.money }

// Level returns the level being played or up next.
func (g *Game) Level() int { return g.level }

// Lives returns the remaining lives.
func (g *Game) Lives() int { return g.lives }

// Paused reports whether no wave is active.
func (g *Game) Paused() bool { return g.phase != PhaseRunning }

// Phase returns the orchestrator state.
func (g *Game) Phase() Phase { return g.phase }

// Perfect reports whether no life has been lost this level.
func (g *Game) Perfect() bool { return g.perfect }

// Towers returns the towers in build order. The slice must not be modified.
func (g *Game) Towers() []*Tower { return g.towers }

// Enemies returns the active enemies in release order. The slice must not be
// modified.
func (g *Game) Enemies() []*Enemy { return g.enemies }

// Pending returns how many enemies of the running wave are still unreleased.
func (g *Game) Pending() int { return g.wave.Len() }

// Tiles returns a copy of the row-major tile state.
func (g *Game) Tiles() []Tile { return g.grid.Tiles() }

// Tile returns the tile at (c, r).
func (g *Game) Tile(c, r int) Tile { return g.grid.At(c, r) }

// Cols returns the grid width.
func (g *Game) Cols() int { return g.grid.Cols }

// Rows returns the grid height.
func (g *Game) Rows() int { return g.grid.Rows }

// Spawn returns the spawn cell.
func (g *Game) Spawn() Cell { return g.grid.Spawn() }

// Goal returns the goal cell.
func (g *Game) Goal() Cell { return g.grid.Goal() }

// Path returns the current route.
func (g *Game) Path() Path { return g.path }

// Inventory returns the unlocked tower kinds in unlock order.
func (g *Game) Inventory() []TowerKind {
	out := make([]TowerKind, len(g.inventory))
	copy(out, g.inventory)
	return out
}

// Perf returns the accumulated metrics for tower id, or nil.
func (g *Game) Perf(id TowerID) *TowerPerf { return g.perf[id] }

// Catalog returns the stat tables in use.
func (g *Game) Catalog() Catalog { return g.catalog }

// Log returns the structured event log.
func (g *Game) Log() *SimLog { return g.log }

// TickCount returns the number of ticks simulated.
func (g *Game) TickCount() int { return g.tick }

// String renders the grid for debugging.
func (g *Game) String() string { return g.grid.String() }
