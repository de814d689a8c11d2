// Package tui is a terminal front-end over the simulation core, drawn with
// tcell. Each grid cell is two terminal columns wide.
package tui

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Grid-Defense/internal/game"
)

const (
	gridTop  = 2 // rows above the grid: HUD and inventory
	cellCols = 2
	frame    = 16 * time.Millisecond // ~60 FPS
)

var speeds = []int{1, 2, 4}

// App binds a tcell screen to a game.
type App struct {
	screen   tcell.Screen
	core     *game.Game
	sound    CuePlayer
	cursor   game.Cell
	selected game.TowerKind
	speed    int
	status   string
	seen     int // log entries already turned into cues
}

// New wraps core. The screen must already be initialised; sound may be nil.
func New(screen tcell.Screen, core *game.Game, sound CuePlayer) *App {
	a := &App{
		screen:   screen,
		core:     core,
		sound:    sound,
		cursor:   game.Cell{C: 1, R: 1},
		selected: game.TowerGun,
		speed:    1,
		status:   "n: next wave  space: build  u: upgrade  1-5: kind  f: speed  q: quit",
	}
	core.OnVictory(func() {
		a.status = fmt.Sprintf("level %d cleared, n for the next wave", core.Level()-1)
	})
	a.seen = len(core.Log().Entries())
	return a
}

// Cursor returns the cell under the cursor.
func (a *App) Cursor() game.Cell { return a.cursor }

// Selected returns the tower kind space builds.
func (a *App) Selected() game.TowerKind { return a.selected }

// Status is the message shown beneath the grid.
func (a *App) Status() string { return a.status }

// HandleKey applies one key event. It returns false when the user quits.
func (a *App) HandleKey(ev *tcell.EventKey) bool {
	return a.handle(ev.Key(), ev.Rune())
}

func (a *App) handle(k tcell.Key, r rune) bool {
	switch k {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyLeft:
		a.moveCursor(-1, 0)
	case tcell.KeyRight:
		a.moveCursor(1, 0)
	case tcell.KeyUp:
		a.moveCursor(0, -1)
	case tcell.KeyDown:
		a.moveCursor(0, 1)
	case tcell.KeyEnter:
		a.build(a.selected)
	case tcell.KeyRune:
		return a.handleRune(r)
	}
	return true
}

func (a *App) handleRune(r rune) bool {
	switch r {
	case 'q':
		return false
	case 'h':
		a.moveCursor(-1, 0)
	case 'l':
		a.moveCursor(1, 0)
	case 'k':
		a.moveCursor(0, -1)
	case 'j':
		a.moveCursor(0, 1)
	case ' ':
		a.build(a.selected)
	case 'u':
		if t := a.core.TowerAt(a.cursor.C, a.cursor.R); t != nil {
			a.build(t.Kind)
		} else {
			a.status = "no tower to upgrade"
		}
	case 'n':
		a.startWave()
	case 'f':
		a.speed = nextSpeed(a.speed)
		a.status = fmt.Sprintf("speed %dx", a.speed)
	case '1', '2', '3', '4', '5':
		inv := a.core.Inventory()
		if i := int(r - '1'); i < len(inv) {
			a.selected = inv[i]
			a.status = fmt.Sprintf("building %s ($%d)", a.selected, a.core.Catalog().Towers[a.selected].Price)
		} else {
			a.status = "slot locked"
		}
	}
	return true
}

func (a *App) moveCursor(dc, dr int) {
	c := a.cursor.Add(game.Cell{C: dc, R: dr})
	if c.C < 0 || c.R < 0 || c.C >= a.core.Cols() || c.R >= a.core.Rows() {
		return
	}
	a.cursor = c
}

func (a *App) build(kind game.TowerKind) {
	c := a.cursor
	if t := a.core.GridClick(c.C, c.R, kind); t != nil {
		a.status = fmt.Sprintf("%s L%d at %v", t.Kind, t.Level, t.Cell)
		return
	}
	if e, ok := a.core.Log().LastOf("place", "rejected"); ok {
		a.status = "rejected: " + e.Value
	}
}

func (a *App) startWave() {
	g := a.core
	if !g.Paused() || g.Phase() == game.PhaseDefeated || len(g.Enemies()) > 0 {
		return
	}
	g.Start()
	a.status = fmt.Sprintf("wave %d: %d enemies", g.Level(), g.Pending())
}

// Step advances the core one frame and plays cues for what happened.
func (a *App) Step() {
	for i := 0; i < a.speed && !a.core.Paused(); i++ {
		a.core.Tick(game.TickMS)
	}
	entries := a.core.Log().Entries()
	if a.seen > len(entries) {
		a.seen = 0
	}
	fresh := entries[a.seen:]
	a.seen = len(entries)
	if a.sound == nil {
		return
	}
	for _, c := range cuesFor(fresh) {
		a.sound.Play(c)
	}
}

func nextSpeed(cur int) int {
	for i, s := range speeds {
		if s == cur {
			return speeds[(i+1)%len(speeds)]
		}
	}
	return speeds[0]
}

// Draw renders the whole frame and shows it.
func (a *App) Draw() {
	s := a.screen
	s.Clear()
	g := a.core

	hud := fmt.Sprintf("LEVEL %d  LIVES %d  MONEY %d  %s  %dx", g.Level(), g.Lives(), g.Money(), g.Phase(), a.speed)
	drawText(s, 0, 0, tcell.StyleDefault.Bold(true), hud)
	x := 0
	for i, k := range g.Inventory() {
		st := tcell.StyleDefault
		if k == a.selected {
			st = st.Reverse(true)
		}
		x += drawText(s, x, 1, st, fmt.Sprintf("%d:%s", i+1, k)) + 1
	}

	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			glyph, st := tileCell(g.Tile(c, r))
			if t := g.TowerAt(c, r); t != nil {
				glyph, st = towerCell(t)
			}
			if c == a.cursor.C && r == a.cursor.R {
				st = st.Reverse(true)
			}
			s.SetContent(c*cellCols, gridTop+r, glyph[0], nil, st)
			s.SetContent(c*cellCols+1, gridTop+r, glyph[1], nil, st)
		}
	}
	for _, e := range g.Enemies() {
		if !e.Alive() || e.Escaped {
			continue
		}
		c, r := int(e.C+0.5), int(e.R+0.5)
		if c < 0 || r < 0 || c >= g.Cols() || r >= g.Rows() {
			continue
		}
		s.SetContent(c*cellCols, gridTop+r, enemyRune(e.Kind), nil, enemyStyle(e))
	}

	y := gridTop + g.Rows()
	if g.Phase() == game.PhaseDefeated {
		drawText(s, 0, y, tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true), "DEFEATED  q: quit")
	} else {
		drawText(s, 0, y, tcell.StyleDefault, a.status)
	}
	s.Show()
}

// Run drives the app until the user quits.
func (a *App) Run() {
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go a.poll(events, done)

	a.Draw()
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !a.HandleKey(ev) {
					return
				}
			case *tcell.EventResize:
				a.screen.Sync()
			}
		case <-ticker.C:
			a.Step()
			a.Draw()
		}
	}
}

// poll forwards screen events until the screen finalises or done closes.
func (a *App) poll(events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			close(events)
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// drawText writes s at (x, y) and returns the number of columns used.
func drawText(s tcell.Screen, x, y int, st tcell.Style, text string) int {
	n := 0
	for _, r := range text {
		s.SetContent(x+n, y, r, nil, st)
		n++
	}
	return n
}

func tileCell(t game.Tile) ([2]rune, tcell.Style) {
	st := tcell.StyleDefault
	switch t.Kind {
	case game.TileWall:
		return [2]rune{'#', '#'}, st.Foreground(tcell.ColorGray)
	case game.TilePath:
		return [2]rune{'.', ' '}, st.Foreground(tcell.ColorOlive)
	case game.TileSpawn:
		return [2]rune{'S', ' '}, st.Foreground(tcell.ColorRed).Bold(true)
	case game.TileGoal:
		return [2]rune{'G', ' '}, st.Foreground(tcell.ColorGreen).Bold(true)
	default:
		return [2]rune{' ', ' '}, st
	}
}

func towerCell(t *game.Tower) ([2]rune, tcell.Style) {
	st := tcell.StyleDefault.Bold(true)
	var r rune
	switch t.Kind {
	case game.TowerGun:
		r, st = 'g', st.Foreground(tcell.ColorWhite)
	case game.TowerFrost:
		r, st = 'f', st.Foreground(tcell.ColorAqua)
	case game.TowerLaser:
		r, st = 'l', st.Foreground(tcell.ColorFuchsia)
	case game.TowerWall:
		r, st = 'w', st.Foreground(tcell.ColorSilver)
	case game.TowerBank:
		r, st = 'b', st.Foreground(tcell.ColorYellow)
	default:
		r = '?'
	}
	return [2]rune{r, rune('0' + t.Level)}, st
}

func enemyRune(k game.EnemyKind) rune {
	switch k {
	case game.EnemyRed:
		return 'o'
	case game.EnemySpeedy:
		return '>'
	case game.EnemyElite:
		return 'O'
	case game.EnemyBoss:
		return 'B'
	case game.EnemyTitan:
		return 'X'
	default:
		return '?'
	}
}

// enemyStyle shades an enemy by remaining health; slowed enemies are blue.
func enemyStyle(e *game.Enemy) tcell.Style {
	st := tcell.StyleDefault.Bold(true)
	switch {
	case e.Slow > 0:
		return st.Foreground(tcell.ColorBlue)
	case e.Health < e.MaxHealth/3:
		return st.Foreground(tcell.ColorMaroon)
	default:
		return st.Foreground(tcell.ColorRed)
	}
}
