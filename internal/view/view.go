// Package view is the ebiten front-end. It reads the core's state every frame
// and routes all input through the core's public operations.
package view

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/Garsondee/Grid-Defense/internal/game"
)

const (
	cellSize     = 40
	hudHeight    = 48
	bannerFrames = 150
)

// speeds are the fast-forward multipliers cycled with F.
var speeds = []int{1, 2, 4}

// View implements ebiten.Game over a *game.Game.
type View struct {
	core      *game.Game
	selected  game.TowerKind
	speed     int
	feed      *EventFeed
	inspector Inspector

	banner      string
	bannerTicks int

	width, height int
}

// New wraps core and registers the victory callback the core requires.
func New(core *game.Game) *View {
	v := &View{
		core:     core,
		selected: game.TowerGun,
		speed:    1,
		feed:     NewEventFeed(),
		width:    core.Cols()*cellSize + feedPanelWidth,
		height:   hudHeight + core.Rows()*cellSize,
	}
	core.OnVictory(v.onVictory)
	v.feed.Sync(core.Log())
	return v
}

func (v *View) onVictory() {
	v.banner = fmt.Sprintf("LEVEL %d CLEARED  +%d", v.core.Level()-1, lastReward(v.core.Log()))
	v.bannerTicks = bannerFrames
}

// lastReward is the most recent end-of-level payout recorded in the log.
func lastReward(log *game.SimLog) int {
	e, ok := log.LastOf("economy", "level_reward")
	if !ok {
		return 0
	}
	return int(e.NumVal)
}

// Update handles input every frame, then advances the core speed fixed steps.
func (v *View) Update() error {
	v.handleInput()
	for i := 0; i < v.speed && !v.core.Paused(); i++ {
		v.core.Tick(game.TickMS)
	}
	v.feed.Sync(v.core.Log())
	if v.bannerTicks > 0 {
		v.bannerTicks--
	}
	return nil
}

func (v *View) handleInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) && canStart(v.core) {
		v.core.Start()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		v.speed = nextSpeed(v.speed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyI) {
		v.inspector.Toggle()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		v.inspector.Select(nil)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyU) {
		if t := v.inspector.Selected(); t != nil {
			v.core.GridClick(t.Cell.C, t.Cell.R, t.Kind)
		}
	}
	slotKeys := []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5}
	for i, k := range slotKeys {
		if inpututil.IsKeyJustPressed(k) {
			if kind, ok := kindForSlot(v.core.Inventory(), i); ok {
				v.selected = kind
			}
		}
	}

	mx, my := ebiten.CursorPosition()
	c, r, onGrid := cellAt(mx, my, v.core.Cols(), v.core.Rows())
	if !onGrid {
		return
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		v.core.GridClick(c, r, v.selected)
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		v.inspector.Select(v.core.TowerAt(c, r))
	}
}

// canStart reports whether a wave may be released now.
func canStart(core *game.Game) bool {
	return core.Paused() && core.Phase() != game.PhaseDefeated && len(core.Enemies()) == 0
}

// nextSpeed cycles through speeds, wrapping to the first.
func nextSpeed(cur int) int {
	for i, s := range speeds {
		if s == cur {
			return speeds[(i+1)%len(speeds)]
		}
	}
	return speeds[0]
}

// kindForSlot maps a zero-based number key to an unlocked tower kind.
func kindForSlot(inv []game.TowerKind, slot int) (game.TowerKind, bool) {
	if slot < 0 || slot >= len(inv) {
		return "", false
	}
	return inv[slot], true
}

// cellAt converts a cursor position to grid coordinates.
func cellAt(mx, my, cols, rows int) (int, int, bool) {
	if mx < 0 || my < hudHeight {
		return 0, 0, false
	}
	c, r := mx/cellSize, (my-hudHeight)/cellSize
	if c >= cols || r >= rows {
		return 0, 0, false
	}
	return c, r, true
}

// cellOrigin is the top-left pixel of a cell.
func cellOrigin(c, r int) (float32, float32) {
	return float32(c * cellSize), float32(hudHeight + r*cellSize)
}

// centre maps continuous grid coordinates (cell centres on integers) to pixels.
func centre(c, r float64) (float32, float32) {
	return float32((c + 0.5) * cellSize), float32(hudHeight + (r+0.5)*cellSize)
}

// Draw renders the grid, towers, enemies, the HUD and the side panel.
func (v *View) Draw(screen *ebiten.Image) {
	screen.Fill(colBackground)
	v.drawTiles(screen)
	v.drawTowers(screen)
	v.drawEnemies(screen)
	v.drawHUD(screen)

	gridW := v.core.Cols() * cellSize
	v.feed.Draw(screen, gridW, v.height)
	v.inspector.Draw(screen, v.core, gridW+8, v.height-inspBufH-8)
}

func (v *View) drawTiles(screen *ebiten.Image) {
	cols, rows := v.core.Cols(), v.core.Rows()
	tiles := v.core.Tiles()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			x, y := cellOrigin(c, r)
			vector.FillRect(screen, x, y, cellSize, cellSize, tileColour(tiles[r*cols+c].Kind), false)
			vector.StrokeRect(screen, x, y, cellSize, cellSize, 1, colGridLine, false)
		}
	}
	// Route line through waypoint centres, including the off-grid exit.
	p := v.core.Path()
	for i := 1; i < len(p); i++ {
		x0, y0 := centre(float64(p[i-1].C), float64(p[i-1].R))
		x1, y1 := centre(float64(p[i].C), float64(p[i].R))
		vector.StrokeLine(screen, x0, y0, x1, y1, 2, color.RGBA{R: 120, G: 100, B: 60, A: 160}, false)
	}
}

func (v *View) drawTowers(screen *ebiten.Image) {
	sel := v.inspector.Selected()
	for _, t := range v.core.Towers() {
		x, y := cellOrigin(t.Cell.C, t.Cell.R)
		inset := float32(6)
		vector.FillRect(screen, x+inset, y+inset, cellSize-2*inset, cellSize-2*inset, towerColour(t.Kind), false)
		// One pip per level along the bottom edge.
		for l := 0; l < t.Level; l++ {
			vector.FillRect(screen, x+inset+float32(l)*5, y+cellSize-inset-4, 3, 3, colBackground, false)
		}
		cx, cy := centre(float64(t.Cell.C), float64(t.Cell.R))
		if t.Attacks() && t.Target != 0 {
			if e := findEnemy(v.core.Enemies(), t.Target); e != nil {
				ex, ey := centre(e.C, e.R)
				w := 1 + 2*float32(t.Intensity)
				vector.StrokeLine(screen, cx, cy, ex, ey, w, towerColour(t.Kind), false)
			}
		}
		if t == sel {
			vector.StrokeRect(screen, x+1, y+1, cellSize-2, cellSize-2, 2, colSelected, false)
			if t.Attacks() {
				vector.StrokeCircle(screen, cx, cy, float32(t.Range()*cellSize), 1, colRange, false)
			}
		}
	}
}

func findEnemy(enemies []*game.Enemy, id game.EnemyID) *game.Enemy {
	for _, e := range enemies {
		if e.ID == id {
			return e
		}
	}
	return nil
}

func (v *View) drawEnemies(screen *ebiten.Image) {
	for _, e := range v.core.Enemies() {
		if !e.Alive() || e.Escaped {
			continue
		}
		cx, cy := centre(e.C, e.R)
		radius := float32(cellSize) * 0.25
		if e.Kind == game.EnemyBoss || e.Kind == game.EnemyTitan {
			radius = float32(cellSize) * 0.38
		}
		vector.FillCircle(screen, cx, cy, radius, enemyColour(e.Kind), true)
		if e.Slow > 0 {
			vector.StrokeCircle(screen, cx, cy, radius+2, 1.5, colSlowed, true)
		}

		w := float32(cellSize) * 0.8
		frac := float32(healthFraction(e))
		bx, by := cx-w/2, cy-radius-7
		vector.FillRect(screen, bx, by, w, 4, colHealthBack, false)
		vector.FillRect(screen, bx, by, w*frac, 4, colHealth, false)
	}
}

// healthFraction is remaining health in [0,1].
func healthFraction(e *game.Enemy) float64 {
	if e.MaxHealth <= 0 {
		return 0
	}
	f := e.Health / e.MaxHealth
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

func (v *View) drawHUD(screen *ebiten.Image) {
	g := v.core
	gridW := float32(g.Cols() * cellSize)
	vector.FillRect(screen, 0, 0, gridW, hudHeight, colHUD, false)

	line1 := fmt.Sprintf("LEVEL %d  LIVES %d  MONEY %d  PHASE %s  SPEED %s",
		g.Level(), g.Lives(), g.Money(), g.Phase(), speedLabel(v.speed))
	text.Draw(screen, line1, basicfont.Face7x13, 8, 18, color.White)
	text.Draw(screen, slotLine(g.Inventory(), v.selected, g.Catalog()), basicfont.Face7x13, 8, 38, color.White)

	switch {
	case g.Phase() == game.PhaseDefeated:
		v.drawBanner(screen, "DEFEATED", color.RGBA{R: 210, G: 70, B: 70, A: 255})
	case v.bannerTicks > 0:
		v.drawBanner(screen, v.banner, colSelected)
	case canStart(g):
		text.Draw(screen, "SPACE: next wave", basicfont.Face7x13, int(gridW)-130, 38, colSelected)
	}
}

func (v *View) drawBanner(screen *ebiten.Image, msg string, clr color.Color) {
	gridW := v.core.Cols() * cellSize
	cy := hudHeight + v.core.Rows()*cellSize/2
	vector.FillRect(screen, 0, float32(cy-20), float32(gridW), 40, color.RGBA{R: 0, G: 0, B: 0, A: 170}, false)
	x := gridW/2 - len(msg)*7/2
	text.Draw(screen, msg, basicfont.Face7x13, x, cy+4, clr)
}

// slotLine lists the number-key slots with prices, marking the selected kind.
func slotLine(inv []game.TowerKind, selected game.TowerKind, cat game.Catalog) string {
	s := ""
	for i, k := range inv {
		mark := " "
		if k == selected {
			mark = ">"
		}
		s += fmt.Sprintf("%s%d %s $%d  ", mark, i+1, k, cat.Towers[k].Price)
	}
	return s
}

func speedLabel(speed int) string {
	return fmt.Sprintf("%dx", speed)
}

// Layout returns the fixed logical screen size.
func (v *View) Layout(_, _ int) (int, int) {
	return v.width, v.height
}

// Size is the logical window size in pixels.
func (v *View) Size() (int, int) { return v.width, v.height }
