package game

// TickMS is the fixed timestep used by the headless harness and front-ends.
const TickMS = 1000.0 / 60.0

// TestSim is a headless harness around Game used by tests and the headless
// report. It drives the fixed-timestep loop the front-ends drive and counts
// victories through the mandatory callback.
type TestSim struct {
	Game      *Game
	Victories int

	opts    []Option
	builder func(*Game)
}

type simOptionKind int

const (
	simOptInfra   simOptionKind = iota // grid, money, lives, catalog, verbose: applied to game.New
	simOptTower                        // towers: placed after the game exists
	simOptBuilder                      // between-wave build strategy
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithSimGridSize sets the grid dimensions.
func WithSimGridSize(cols, rows int) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.opts = append(ts.opts, WithGridSize(cols, rows))
	}}
}

// WithSimRows sets the spawn and goal rows.
func WithSimRows(spawnRow, goalRow int) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.opts = append(ts.opts, WithSpawnRow(spawnRow), WithGoalRow(goalRow))
	}}
}

// WithSimMoney sets the starting money.
func WithSimMoney(m int) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.opts = append(ts.opts, WithMoney(m))
	}}
}

// WithSimLives sets the starting lives.
func WithSimLives(n int) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.opts = append(ts.opts, WithLives(n))
	}}
}

// WithSimLevel sets the starting level.
func WithSimLevel(l int) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.opts = append(ts.opts, WithLevel(l))
	}}
}

// WithSimCatalog replaces the stat tables.
func WithSimCatalog(cat Catalog) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.opts = append(ts.opts, WithCatalog(cat))
	}}
}

// WithVerbose enables per-spawn and per-target logging.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.opts = append(ts.opts, WithVerboseLog(v))
	}}
}

// WithTower places a tower of kind at (c, r) once the game is built. Rejected
// placements are recorded in the sim log like any grid click.
func WithTower(c, r int, kind TowerKind) SimOption {
	return SimOption{simOptTower, func(ts *TestSim) {
		ts.Game.GridClick(c, r, kind)
	}}
}

// WithBuilder installs a strategy called before every wave started by RunLevel.
func WithBuilder(fn func(*Game)) SimOption {
	return SimOption{simOptBuilder, func(ts *TestSim) {
		ts.builder = fn
	}}
}

// NewTestSim constructs a TestSim from the given options in ordered passes:
//  1. Infrastructure (grid, money, lives, catalog, verbose)
//  2. Build the Game and register the victory callback
//  3. Towers
//  4. Builder
func NewTestSim(opts ...SimOption) *TestSim {
	ts := &TestSim{}
	for _, o := range opts {
		if o.kind == simOptInfra {
			o.fn(ts)
		}
	}
	ts.Game = New(ts.opts...)
	ts.Game.OnVictory(func() { ts.Victories++ })
	for _, o := range opts {
		if o.kind == simOptTower {
			o.fn(ts)
		}
	}
	for _, o := range opts {
		if o.kind == simOptBuilder {
			o.fn(ts)
		}
	}
	return ts
}

// RunTicks advances the game n fixed steps.
func (ts *TestSim) RunTicks(n int) {
	for i := 0; i < n; i++ {
		ts.Game.Tick(TickMS)
	}
}

// RunUntil advances the game up to maxTicks, stopping early if predicate
// returns true. Returns the number of ticks run when the predicate was
// satisfied, or -1.
func (ts *TestSim) RunUntil(predicate func(*TestSim) bool, maxTicks int) int {
	for i := 1; i <= maxTicks; i++ {
		ts.Game.Tick(TickMS)
		if predicate(ts) {
			return i
		}
	}
	return -1
}

// RunLevel runs the builder, starts the next wave and ticks until the game is
// paused again or defeated. It reports whether the level was won.
func (ts *TestSim) RunLevel(maxTicks int) bool {
	g := ts.Game
	if g.Phase() == PhaseDefeated {
		return false
	}
	if ts.builder != nil {
		ts.builder(g)
	}
	before := ts.Victories
	g.Start()
	ts.RunUntil(func(ts *TestSim) bool { return ts.Game.Paused() }, maxTicks)
	return ts.Victories > before
}

// Snapshot is a lightweight copy of the game's headline numbers.
type Snapshot struct {
	Tick    int
	Level   int
	Phase   Phase
	Money   int
	Lives   int
	Towers  int
	Enemies int
	Pending int
}

// Snapshot returns the current headline state.
func (ts *TestSim) Snapshot() Snapshot {
	g := ts.Game
	return Snapshot{
		Tick:    g.TickCount(),
		Level:   g.Level(),
		Phase:   g.Phase(),
		Money:   g.Money(),
		Lives:   g.Lives(),
		Towers:  len(g.Towers()),
		Enemies: len(g.Enemies()),
		Pending: g.Pending(),
	}
}
