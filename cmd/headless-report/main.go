package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"sort"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/google/uuid"

	"github.com/Garsondee/Grid-Defense/internal/game"
)

// maxTicksPerLevel bounds a single wave (~10 minutes of 60 TPS play).
const maxTicksPerLevel = 36000

type runStats struct {
	runIndex int
	seed     int64

	outcome game.MatchOutcomeReason

	firstKillTick   int
	firstEscapeTick int
	rejected        int
	reroutes        int
	finalPathLen    int
	towersByKind    map[game.TowerKind]int
	grades          []game.TowerGrade
}

func main() {
	var runs int
	var levels int
	var seedBase int64
	var seedStep int64
	var strategy string
	var defs string
	var copyReport bool
	var dump string
	var showGrades bool

	flag.IntVar(&runs, "runs", 5, "number of headless games")
	flag.IntVar(&levels, "levels", 20, "maximum levels per game")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&strategy, "strategy", "gunline", "build strategy (gunline, maze)")
	flag.StringVar(&defs, "defs", "", "optional catalog JSON overrides")
	flag.BoolVar(&copyReport, "copy", false, "also copy the report to the clipboard")
	flag.BoolVar(&showGrades, "grades", false, "append per-tower performance grades to each run")
	flag.StringVar(&dump, "dump", "", "also write per-run records as msgpack to this file")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if levels <= 0 {
		fmt.Println("error: -levels must be > 0")
		return
	}
	if _, ok := strategies[strategy]; !ok {
		fmt.Printf("error: unsupported strategy %q (supported: %s)\n", strategy, strategyNames())
		return
	}

	cat := game.DefaultCatalog()
	if defs != "" {
		var err error
		if cat, err = game.LoadCatalog(defs); err != nil {
			log.Fatalf("load catalog: %v", err)
		}
	}

	reportID := uuid.New().String()

	var sb strings.Builder
	fmt.Fprintf(&sb, "=== Headless Defense Report ===\n")
	fmt.Fprintf(&sb, "report_id=%s\n", reportID)
	fmt.Fprintf(&sb, "strategy=%s runs=%d levels=%d seed_base=%d seed_step=%d\n\n", strategy, runs, levels, seedBase, seedStep)

	all := make([]runStats, 0, runs)
	records := make([]runRecord, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		rs := runGame(i+1, seed, levels, strategy, cat)
		all = append(all, rs)
		records = append(records, newRunRecord(reportID, strategy, rs))
		sb.WriteString(formatRun(rs))
		if showGrades {
			sb.WriteString(game.FormatGrades(rs.grades))
			sb.WriteByte('\n')
		}
	}
	sb.WriteString(formatAggregate(all))

	if dump != "" {
		if err := writeDump(dump, records); err != nil {
			log.Fatalf("dump: %v", err)
		}
	}

	report := sb.String()
	fmt.Print(report)
	if copyReport {
		if err := clipboard.WriteAll(report); err != nil {
			fmt.Fprintf(os.Stderr, "clipboard: %v\n", err)
		}
	}
}

// builder spends money between waves.
type builder func(g *game.Game, rng *rand.Rand)

var strategies = map[string]builder{
	"gunline": buildGunLine,
	"maze":    buildMaze,
}

func strategyNames() string {
	names := make([]string, 0, len(strategies))
	for n := range strategies {
		names = append(names, n)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

func runGame(runIndex int, seed int64, levels int, strategy string, cat game.Catalog) runStats {
	rng := rand.New(rand.NewSource(seed)) // #nosec G404 -- report strategy
	build := strategies[strategy]
	ts := game.NewTestSim(
		game.WithSimCatalog(cat),
		game.WithBuilder(func(g *game.Game) { build(g, rng) }),
	)
	for i := 0; i < levels; i++ {
		if !ts.RunLevel(maxTicksPerLevel) {
			break
		}
		if ts.Game.Level() > game.FinalLevel {
			break
		}
	}

	entries := ts.Game.Log().Entries()
	towers := map[game.TowerKind]int{}
	for _, t := range ts.Game.Towers() {
		towers[t.Kind]++
	}
	return runStats{
		runIndex:        runIndex,
		seed:            seed,
		outcome:         game.DetermineMatchOutcome(ts.Game),
		firstKillTick:   firstTick(entries, "economy", "kill"),
		firstEscapeTick: firstTick(entries, "enemy", "escaped"),
		rejected:        ts.Game.Log().CountCategory("place", "rejected"),
		reroutes:        ts.Game.Log().CountCategory("path", "computed") - 1,
		finalPathLen:    len(ts.Game.Path()),
		towersByKind:    towers,
		grades:          game.GradeTowers(ts.Game),
	}
}

func firstTick(entries []game.SimLogEntry, category, key string) int {
	for _, e := range entries {
		if e.Category == category && e.Key == key {
			return e.Tick
		}
	}
	return -1
}

// bestAttackKind is the strongest unlocked attack tower by catalog DPS.
func bestAttackKind(g *game.Game) (game.TowerKind, bool) {
	cat := g.Catalog()
	var best game.TowerKind
	bestDPS := -1.0
	for _, k := range g.Inventory() {
		st := cat.Towers[k]
		if st.Role != game.RoleAttack {
			continue
		}
		if st.DPS > bestDPS {
			best, bestDPS = k, st.DPS
		}
	}
	return best, bestDPS >= 0
}

// pathSideCells lists open cells four-adjacent to the current path, in path order.
func pathSideCells(g *game.Game) []game.Cell {
	seen := map[game.Cell]bool{}
	var out []game.Cell
	steps := []game.Cell{{C: 0, R: -1}, {C: 0, R: 1}, {C: -1, R: 0}, {C: 1, R: 0}}
	for _, w := range g.Path() {
		for _, s := range steps {
			n := w.Add(s)
			if seen[n] || g.Tile(n.C, n.R).Kind != game.TileEmpty {
				continue
			}
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}

// buildGunLine places the best attack tower beside the path, preferring the
// early stretch, and upgrades existing towers once the side cells run out.
func buildGunLine(g *game.Game, rng *rand.Rand) {
	kind, ok := bestAttackKind(g)
	if !ok {
		return
	}
	cells := pathSideCells(g)
	for len(cells) > 0 && g.CanAfford(kind, cells[0].C, cells[0].R) {
		// Pick among the first few candidates so seeds diverge.
		n := len(cells)
		if n > 4 {
			n = 4
		}
		i := rng.Intn(n)
		c := cells[i]
		if g.CanPlace(c.C, c.R, kind) {
			g.GridClick(c.C, c.R, kind)
		}
		cells = append(cells[:i], cells[i+1:]...)
	}
	for _, t := range g.Towers() {
		if t.Kind == kind && g.CanAfford(kind, t.Cell.C, t.Cell.R) && g.CanPlace(t.Cell.C, t.Cell.R, kind) {
			g.GridClick(t.Cell.C, t.Cell.R, kind)
		}
	}
}

// buildMaze drops a few walls on the path to lengthen it, then builds a gun line.
func buildMaze(g *game.Game, rng *rand.Rand) {
	for tries := 0; tries < 6; tries++ {
		p := g.Path()
		if len(p) < 6 {
			break
		}
		w := p[2+rng.Intn(len(p)-5)]
		if g.CanAfford(game.TowerWall, w.C, w.R) && g.CanPlace(w.C, w.R, game.TowerWall) {
			g.GridClick(w.C, w.R, game.TowerWall)
		}
	}
	buildGunLine(g, rng)
}

func formatRun(rs runStats) string {
	var sb strings.Builder
	o := rs.outcome
	fmt.Fprintf(&sb, "--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Fprintf(&sb, "outcome=%s description=%s\n", o.Outcome, o.Description)
	fmt.Fprintf(&sb, "levels_won=%d level=%d lives=%d money=%d\n", o.LevelsWon, o.Level, o.Lives, o.Money)
	fmt.Fprintf(&sb, "event_totals: kills=%d escapes=%d rejected=%d reroutes=%d\n", o.Kills, o.Escapes, rs.rejected, rs.reroutes)
	fmt.Fprintf(&sb, "phase_markers: first_kill=%d first_escape=%d\n", rs.firstKillTick, rs.firstEscapeTick)
	fmt.Fprintf(&sb, "towers: %s path_len=%d\n", formatTowers(rs.towersByKind), rs.finalPathLen)
	fmt.Fprintf(&sb, "best_tower: %s\n\n", formatBest(rs.grades))
	return sb.String()
}

func formatBest(grades []game.TowerGrade) string {
	if len(grades) == 0 {
		return "n/a"
	}
	b := grades[0]
	return fmt.Sprintf("T%d %s grade=%s share=%.0f%% kills=%d", b.ID, b.Kind, b.Grade, b.DamageShare*100, b.Kills)
}

func formatTowers(m map[game.TowerKind]int) string {
	if len(m) == 0 {
		return "none"
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%d", k, m[game.TowerKind(k)])
	}
	return strings.Join(parts, " ")
}

func formatAggregate(all []runStats) string {
	var sb strings.Builder
	totalWon, totalKills, totalEscapes := 0, 0, 0
	defeats := 0
	bestLevel := 0
	firstKills := make([]int, 0, len(all))
	for _, rs := range all {
		totalWon += rs.outcome.LevelsWon
		totalKills += rs.outcome.Kills
		totalEscapes += rs.outcome.Escapes
		if rs.outcome.Outcome == game.OutcomeDefeated {
			defeats++
		}
		if rs.outcome.Level > bestLevel {
			bestLevel = rs.outcome.Level
		}
		if rs.firstKillTick >= 0 {
			firstKills = append(firstKills, rs.firstKillTick)
		}
	}
	fmt.Fprintln(&sb, "=== Aggregate ===")
	fmt.Fprintf(&sb, "runs=%d defeats=%d best_level=%d\n", len(all), defeats, bestLevel)
	fmt.Fprintf(&sb, "avg_per_run: levels_won=%.1f kills=%.1f escapes=%.1f\n",
		avg(totalWon, len(all)), avg(totalKills, len(all)), avg(totalEscapes, len(all)))
	fmt.Fprintf(&sb, "first_kill_avg_tick=%s\n", avgTickString(firstKills))
	return sb.String()
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}
