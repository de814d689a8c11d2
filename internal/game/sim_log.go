package game

import (
	"fmt"
	"strings"
)

// SimLogEntry is one recorded simulation event.
type SimLogEntry struct {
	Tick     int
	Subject  string  // label e.g. "T2", "E14", or "--" for global events
	Category string  // wave, enemy, economy, place, path, state
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[T=042] E3   economy  kill            red
func (e SimLogEntry) String() string {
	return fmt.Sprintf("[T=%03d] %-4s %-8s %-15s %s",
		e.Tick, e.Subject, e.Category, e.Key, e.Value)
}

// SimLog collects structured events for a game. It is unbounded and
// machine-readable; front-ends show its tail, tests query it.
type SimLog struct {
	entries []SimLogEntry
	verbose bool
}

// NewSimLog creates a SimLog. If verbose is true, per-spawn and per-target
// entries are also recorded.
func NewSimLog(verbose bool) *SimLog {
	return &SimLog{verbose: verbose}
}

// Verbose reports whether high-frequency entries are recorded.
func (sl *SimLog) Verbose() bool { return sl.verbose }

// Add records a new entry.
func (sl *SimLog) Add(tick int, subject, category, key, value string, numVal float64) {
	sl.entries = append(sl.entries, SimLogEntry{
		Tick:     tick,
		Subject:  subject,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose records an entry only when verbose mode is on.
func (sl *SimLog) AddVerbose(tick int, subject, category, key, value string, numVal float64) {
	if !sl.verbose {
		return
	}
	sl.Add(tick, subject, category, key, value, numVal)
}

// Entries returns all recorded entries.
func (sl *SimLog) Entries() []SimLogEntry {
	return sl.entries
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (sl *SimLog) Filter(category, key string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterSubject returns entries for a specific tower or enemy label.
func (sl *SimLog) FilterSubject(label string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Subject == label {
			out = append(out, e)
		}
	}
	return out
}

// FilterTickRange returns entries within [fromTick, toTick] inclusive.
func (sl *SimLog) FilterTickRange(fromTick, toTick int) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Tick >= fromTick && e.Tick <= toTick {
			out = append(out, e)
		}
	}
	return out
}

// CountCategory returns how many entries match the given category and key.
func (sl *SimLog) CountCategory(category, key string) int {
	return len(sl.Filter(category, key))
}

// LastOf returns the most recent entry matching category+key, or false if none.
func (sl *SimLog) LastOf(category, key string) (SimLogEntry, bool) {
	entries := sl.Filter(category, key)
	if len(entries) == 0 {
		return SimLogEntry{}, false
	}
	return entries[len(entries)-1], true
}

// HasEntry returns true if at least one entry matches category, key, and value substring.
func (sl *SimLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		if valueSubstr != "" && !strings.Contains(e.Value, valueSubstr) {
			continue
		}
		return true
	}
	return false
}

// Tail returns the last n entries.
func (sl *SimLog) Tail(n int) []SimLogEntry {
	if n >= len(sl.entries) {
		return sl.entries
	}
	return sl.entries[len(sl.entries)-n:]
}

// Format returns the full log as a single string for t.Log output.
func (sl *SimLog) Format() string {
	var sb strings.Builder
	for _, e := range sl.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// FormatRange returns a log string filtered to a tick range.
func (sl *SimLog) FormatRange(fromTick, toTick int) string {
	var sb strings.Builder
	for _, e := range sl.FilterTickRange(fromTick, toTick) {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Summary returns a short human-readable summary of the game state.
func (sl *SimLog) Summary(g *Game) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Summary at T=%03d ---\n", g.TickCount())
	fmt.Fprintf(&sb, "Level: %d  Phase: %s  Lives: %d  Money: %d\n", g.Level(), g.Phase(), g.Lives(), g.Money())

	kinds := map[TowerKind]int{}
	for _, t := range g.Towers() {
		kinds[t.Kind]++
	}
	sb.WriteString("Towers: ")
	if len(kinds) == 0 {
		sb.WriteString("none")
	}
	for _, k := range []TowerKind{TowerGun, TowerFrost, TowerLaser, TowerWall, TowerBank} {
		if n := kinds[k]; n > 0 {
			fmt.Fprintf(&sb, "%s=%d  ", k, n)
		}
	}
	sb.WriteByte('\n')

	fmt.Fprintf(&sb, "Kills: %d  Escapes: %d  Rejected placements: %d\n",
		sl.CountCategory("economy", "kill"), sl.CountCategory("enemy", "escaped"), sl.CountCategory("place", "rejected"))
	fmt.Fprintf(&sb, "Path length: %d  Interest: %.2f\n", len(g.Path()), g.InterestRate())
	return sb.String()
}
