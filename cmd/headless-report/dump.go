package main

import (
	"fmt"
	"os"

	"github.com/vmihailenco/msgpack/v5"
)

// runRecord is the machine-readable form of one run, written with -dump.
type runRecord struct {
	ReportID     string         `msgpack:"report_id"`
	Run          int            `msgpack:"run"`
	Seed         int64          `msgpack:"seed"`
	Strategy     string         `msgpack:"strategy"`
	Outcome      string         `msgpack:"outcome"`
	Description  string         `msgpack:"description"`
	Level        int            `msgpack:"level"`
	LevelsWon    int            `msgpack:"levels_won"`
	Lives        int            `msgpack:"lives"`
	Money        int            `msgpack:"money"`
	Kills        int            `msgpack:"kills"`
	Escapes      int            `msgpack:"escapes"`
	Rejected     int            `msgpack:"rejected"`
	FirstKill    int            `msgpack:"first_kill_tick"`
	FirstEscape  int            `msgpack:"first_escape_tick"`
	FinalPathLen int            `msgpack:"path_len"`
	Towers       map[string]int `msgpack:"towers"`
	BestTower    string         `msgpack:"best_tower"`
}

func newRunRecord(reportID, strategy string, rs runStats) runRecord {
	towers := make(map[string]int, len(rs.towersByKind))
	for k, n := range rs.towersByKind {
		towers[string(k)] = n
	}
	o := rs.outcome
	return runRecord{
		ReportID:     reportID,
		Run:          rs.runIndex,
		Seed:         rs.seed,
		Strategy:     strategy,
		Outcome:      o.Outcome.String(),
		Description:  o.Description,
		Level:        o.Level,
		LevelsWon:    o.LevelsWon,
		Lives:        o.Lives,
		Money:        o.Money,
		Kills:        o.Kills,
		Escapes:      o.Escapes,
		Rejected:     rs.rejected,
		FirstKill:    rs.firstKillTick,
		FirstEscape:  rs.firstEscapeTick,
		FinalPathLen: rs.finalPathLen,
		Towers:       towers,
		BestTower:    formatBest(rs.grades),
	}
}

// writeDump encodes records as one msgpack array.
func writeDump(path string, records []runRecord) error {
	data, err := msgpack.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode dump: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write dump: %w", err)
	}
	return nil
}

// readDump is the inverse of writeDump.
func readDump(path string) ([]runRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dump: %w", err)
	}
	var records []runRecord
	if err := msgpack.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode dump: %w", err)
	}
	return records, nil
}
