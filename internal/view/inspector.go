package view

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/Garsondee/Grid-Defense/internal/game"
)

// Inspector panel: composed in an offscreen buffer, then blitted over the feed.
const (
	inspBufW  = feedPanelWidth - 16
	inspBufH  = 150
	inspPad   = 4
	inspLineH = 13
)

// Inspector holds the tower picked with a right click and the view toggle.
type Inspector struct {
	selected *game.Tower
	rawView  bool // false = curated, true = raw dump
	buf      *ebiten.Image
}

// Select picks t, or clears the selection when t is nil.
func (in *Inspector) Select(t *game.Tower) { in.selected = t }

// Selected returns the inspected tower, or nil.
func (in *Inspector) Selected() *game.Tower { return in.selected }

// Toggle flips between the curated and raw views.
func (in *Inspector) Toggle() { in.rawView = !in.rawView }

// lines is the text content of the panel for t.
func (in *Inspector) lines(core *game.Game, t *game.Tower) []string {
	viewName := "CURATED"
	if in.rawView {
		viewName = "RAW"
	}
	out := []string{
		fmt.Sprintf("[ %s T%d L%d ]", strings.ToUpper(string(t.Kind)), t.ID, t.Level),
		fmt.Sprintf("view: %s  [I]", viewName),
	}
	if in.rawView {
		return append(out, rawLines(t)...)
	}
	return append(out, curatedLines(core, t)...)
}

func curatedLines(core *game.Game, t *game.Tower) []string {
	st := t.Stats()
	lf := game.LevelFactor(t.Level)
	var out []string
	switch st.Role {
	case game.RoleAttack:
		out = append(out,
			fmt.Sprintf("state: %s", t.State()),
			fmt.Sprintf("range: %.1f  dps: %.0f", st.Range, st.DPS*lf),
			fmt.Sprintf("charge %s", bar(t.Intensity, 10)),
		)
		if t.Target != 0 {
			out = append(out, fmt.Sprintf("target: E%d", t.Target))
		} else {
			out = append(out, "target: none")
		}
		if st.SlowRate > 0 {
			out = append(out, fmt.Sprintf("slow: %.2f/s", st.SlowRate*lf))
		}
		if pt := core.Perf(t.ID); pt != nil {
			out = append(out, fmt.Sprintf("dealt: %.0f  kills: %d  up: %.0f%%", pt.DamageDealt, pt.Kills, pt.Uptime()*100))
		}
	case game.RoleEconomy:
		out = append(out, fmt.Sprintf("interest: +%.1f%%", t.Interest()*100))
	default:
		out = append(out, "obstacle")
	}
	if t.Level >= game.MaxTowerLevel {
		out = append(out, "upgrade: max level")
	} else {
		p := core.Price(t.Kind, t.Cell.C, t.Cell.R)
		hint := ""
		if !core.CanAfford(t.Kind, t.Cell.C, t.Cell.R) {
			hint = " (short)"
		}
		out = append(out, fmt.Sprintf("upgrade: %d%s [U]", p, hint))
	}
	return out
}

func rawLines(t *game.Tower) []string {
	st := t.Stats()
	return []string{
		fmt.Sprintf("id=%d cell=%v lvl=%d", t.ID, t.Cell, t.Level),
		fmt.Sprintf("paid=%d role=%s", t.Price, st.Role),
		fmt.Sprintf("tgt=%d int=%.2f", t.Target, t.Intensity),
		fmt.Sprintf("rot=%.2f sticky=%v", t.Rotation, st.Sticky),
		fmt.Sprintf("rng=%.1f dps=%.0f chg=%.1f", st.Range, st.DPS, st.ChargeTime),
		fmt.Sprintf("slow=%.2f/%.1f", st.SlowRate, st.SlowDuration),
		fmt.Sprintf("lf=%.2f", game.LevelFactor(t.Level)),
	}
}

// bar renders v in [0,1] as an ASCII gauge of width n.
func bar(v float64, n int) string {
	filled := int(v * float64(n))
	if filled < 0 {
		filled = 0
	}
	if filled > n {
		filled = n
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", n-filled) + "]"
}

// Draw renders the panel for the selected tower with its top-left at (px, py).
func (in *Inspector) Draw(screen *ebiten.Image, core *game.Game, px, py int) {
	t := in.selected
	if t == nil {
		return
	}
	if in.buf == nil {
		in.buf = ebiten.NewImage(inspBufW, inspBufH)
	}
	buf := in.buf
	buf.Clear()

	bw := float32(inspBufW)
	bh := float32(inspBufH)
	panelBorder := color.RGBA{R: 55, G: 80, B: 55, A: 255}
	vector.FillRect(buf, 0, 0, bw, bh, color.RGBA{R: 14, G: 16, B: 14, A: 230}, false)
	vector.StrokeRect(buf, 0, 0, bw, bh, 1.0, panelBorder, false)

	ly := inspPad + 10
	for i, s := range in.lines(core, t) {
		text.Draw(buf, s, basicfont.Face7x13, inspPad, ly, color.White)
		ly += inspLineH
		if i == 1 {
			vector.StrokeLine(buf, inspPad, float32(ly-8), bw-inspPad, float32(ly-8), 1.0, panelBorder, false)
			ly += 4
		}
	}

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Translate(float64(px), float64(py))
	screen.DrawImage(buf, opts)
}
