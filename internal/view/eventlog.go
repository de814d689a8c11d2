package view

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/Garsondee/Grid-Defense/internal/game"
)

const (
	feedPanelWidth = 320
	feedMaxEntries = 60
	feedLineHeight = 14
)

// FeedEntry is a single line in the event feed.
type FeedEntry struct {
	Tick     int
	Subject  string // e.g. "T3", "E12", "--"
	Category string
	Message  string
}

// EventFeed is a ring buffer of recent sim-log events rendered beside the grid.
type EventFeed struct {
	entries []FeedEntry
	head    int
	count   int
	seen    int // sim-log entries already consumed
}

// NewEventFeed creates a feed with a fixed capacity.
func NewEventFeed() *EventFeed {
	return &EventFeed{
		entries: make([]FeedEntry, feedMaxEntries),
	}
}

// Add appends an entry, overwriting the oldest once full.
func (f *EventFeed) Add(tick int, subject, category, msg string) {
	f.entries[f.head] = FeedEntry{
		Tick:     tick,
		Subject:  subject,
		Category: category,
		Message:  msg,
	}
	f.head = (f.head + 1) % feedMaxEntries
	if f.count < feedMaxEntries {
		f.count++
	}
}

// Sync pulls sim-log entries recorded since the last call. Verbose spawn and
// target chatter is skipped.
func (f *EventFeed) Sync(log *game.SimLog) {
	all := log.Entries()
	if f.seen > len(all) {
		f.seen = 0
	}
	for _, e := range all[f.seen:] {
		if e.Key == "spawn" || e.Key == "target" {
			continue
		}
		f.Add(e.Tick, e.Subject, e.Category, fmt.Sprintf("%s %s", e.Key, e.Value))
	}
	f.seen = len(all)
}

// Recent returns entries in chronological order (oldest first).
func (f *EventFeed) Recent() []FeedEntry {
	result := make([]FeedEntry, f.count)
	for i := 0; i < f.count; i++ {
		idx := (f.head - f.count + i + feedMaxEntries) % feedMaxEntries
		result[i] = f.entries[idx]
	}
	return result
}

// Draw renders the feed panel at panelX, newest entries at the bottom.
func (f *EventFeed) Draw(screen *ebiten.Image, panelX int, panelH int) {
	vector.FillRect(screen, float32(panelX), 0, float32(feedPanelWidth), float32(panelH), color.RGBA{R: 10, G: 12, B: 10, A: 248}, false)
	vector.StrokeLine(screen, float32(panelX), 0, float32(panelX), float32(panelH), 1.0, color.RGBA{R: 50, G: 70, B: 50, A: 255}, false)

	vector.FillRect(screen, float32(panelX), 0, float32(feedPanelWidth), 18, color.RGBA{R: 20, G: 30, B: 20, A: 255}, false)
	text.Draw(screen, "EVENTS", basicfont.Face7x13, panelX+8, 13, color.White)
	vector.StrokeLine(screen, float32(panelX), 18, float32(panelX+feedPanelWidth), 18, 1.0, color.RGBA{R: 50, G: 80, B: 50, A: 200}, false)

	entries := f.Recent()
	maxVisible := (panelH - 24) / feedLineHeight
	if len(entries) > maxVisible {
		entries = entries[len(entries)-maxVisible:]
	}

	const recent = 3
	y := 22
	for i, e := range entries {
		if i >= len(entries)-recent {
			vector.FillRect(screen, float32(panelX+2), float32(y), float32(feedPanelWidth-4), float32(feedLineHeight), color.RGBA{R: 30, G: 40, B: 30, A: 160}, false)
		}
		vector.FillRect(screen, float32(panelX+5), float32(y+4), 3, 6, categoryColour(e.Category), false)
		line := fmt.Sprintf("%5d %-3s %s", e.Tick, e.Subject, e.Message)
		text.Draw(screen, clip(line, (feedPanelWidth-16)/7), basicfont.Face7x13, panelX+12, y+11, color.White)
		y += feedLineHeight
	}
}

// clip truncates s to at most n bytes; feed lines are ASCII.
func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "~"
}
