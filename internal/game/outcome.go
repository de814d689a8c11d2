package game

import "fmt"

type MatchOutcome int

const (
	OutcomeInProgress MatchOutcome = iota
	OutcomeDefeated
	OutcomeCompleted
)

func (o MatchOutcome) String() string {
	switch o {
	case OutcomeInProgress:
		return "in_progress"
	case OutcomeDefeated:
		return "defeated"
	case OutcomeCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

type MatchOutcomeReason struct {
	Outcome     MatchOutcome
	Level       int // level being played or up next
	LevelsWon   int
	Lives       int
	Money       int
	Kills       int
	Escapes     int
	Towers      int
	Description string
}

// DetermineMatchOutcome classifies a game from its state and log. A match is
// completed once the final level has been cleared.
func DetermineMatchOutcome(g *Game) MatchOutcomeReason {
	log := g.Log()
	r := MatchOutcomeReason{
		Level:     g.Level(),
		LevelsWon: log.CountCategory("wave", "cleared"),
		Lives:     g.Lives(),
		Money:     g.Money(),
		Kills:     log.CountCategory("economy", "kill"),
		Escapes:   log.CountCategory("enemy", "escaped"),
		Towers:    len(g.Towers()),
	}
	switch {
	case g.Phase() == PhaseDefeated:
		r.Outcome = OutcomeDefeated
		r.Description = fmt.Sprintf("defeated_at_level_%d", g.Level())
	case g.Level() > FinalLevel:
		r.Outcome = OutcomeCompleted
		if r.Escapes == 0 {
			r.Description = "completed_flawless"
		} else {
			r.Description = fmt.Sprintf("completed_with_%d_lives", g.Lives())
		}
	default:
		r.Outcome = OutcomeInProgress
		r.Description = fmt.Sprintf("in_progress_level_%d_%s", g.Level(), g.Phase())
	}
	return r
}
