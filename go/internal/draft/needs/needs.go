// Package needs evaluates how complete a roster is at each position and how
// urgent the remaining holes are given the current round. The evaluation is
// pure; it drives both UI emphasis and the autopick fallback.
package needs

import (
	"github.com/draftday/warroom/go/internal/models"
)

// Urgency grades a position need.
type Urgency string

const (
	UrgencyGood     Urgency = "good"
	UrgencyNeutral  Urgency = "neutral"
	UrgencyWarning  Urgency = "warning"
	UrgencyCritical Urgency = "critical"
)

// PositionNeed is the derived view for one position. It is never persisted.
type PositionNeed struct {
	Position    models.Position `json:"position"`
	Current     int             `json:"current"`
	Minimum     int             `json:"minimum"`
	Recommended int             `json:"recommended"`
	Urgency     Urgency         `json:"urgency"`
}

// Config holds the evaluator's tunable thresholds. Keeping these external
// lets tests and leagues with unusual roster shapes adjust them.
type Config struct {
	Minimums           map[models.Position]int `yaml:"minimums"`
	Recommended        map[models.Position]int `yaml:"recommended"`
	MidRoundThreshold  int                     `yaml:"mid_round_threshold"`
	LateRoundThreshold int                     `yaml:"late_round_threshold"`
}

// DefaultConfig mirrors a standard 12-team, 18-round league: one starting
// QB/TE, multiple RB/WR, with urgency ramping up from round 8 and turning
// critical at round 12.
func DefaultConfig() Config {
	return Config{
		Minimums: map[models.Position]int{
			models.PositionQB: 1,
			models.PositionRB: 2,
			models.PositionWR: 2,
			models.PositionTE: 1,
		},
		Recommended: map[models.Position]int{
			models.PositionQB: 2,
			models.PositionRB: 4,
			models.PositionWR: 4,
			models.PositionTE: 2,
		},
		MidRoundThreshold:  8,
		LateRoundThreshold: 12,
	}
}

// Evaluator computes position needs against a fixed config.
type Evaluator struct {
	cfg Config
}

// NewEvaluator creates an evaluator with the given thresholds.
func NewEvaluator(cfg Config) *Evaluator {
	return &Evaluator{cfg: cfg}
}

// Evaluate returns the need for every tracked position, in models.AllPositions
// order.
func (e *Evaluator) Evaluate(counts map[models.Position]int, currentRound int) []PositionNeed {
	out := make([]PositionNeed, 0, len(models.AllPositions))
	for _, pos := range models.AllPositions {
		out = append(out, e.evaluateOne(pos, counts[pos], currentRound))
	}
	return out
}

func (e *Evaluator) evaluateOne(pos models.Position, current, currentRound int) PositionNeed {
	minimum := e.cfg.Minimums[pos]
	need := PositionNeed{
		Position:    pos,
		Current:     current,
		Minimum:     minimum,
		Recommended: e.cfg.Recommended[pos],
	}

	needed := minimum - current
	switch {
	case needed <= 0:
		need.Urgency = UrgencyGood
	case currentRound >= e.cfg.LateRoundThreshold:
		need.Urgency = UrgencyCritical
	case currentRound >= e.cfg.MidRoundThreshold:
		need.Urgency = UrgencyWarning
	default:
		need.Urgency = UrgencyNeutral
	}
	return need
}

// MostUrgent returns the unmet position the autopick fallback should target:
// the highest urgency first, largest shortfall as tiebreaker, position order
// as the final tiebreaker. ok is false when every minimum is met.
func (e *Evaluator) MostUrgent(counts map[models.Position]int, currentRound int) (models.Position, bool) {
	var (
		best      models.Position
		bestRank  = -1
		bestShort = 0
	)
	for _, need := range e.Evaluate(counts, currentRound) {
		short := need.Minimum - need.Current
		if short <= 0 {
			continue
		}
		rank := urgencyRank(need.Urgency)
		if rank > bestRank || (rank == bestRank && short > bestShort) {
			best = need.Position
			bestRank = rank
			bestShort = short
		}
	}
	return best, bestRank >= 0
}

func urgencyRank(u Urgency) int {
	switch u {
	case UrgencyCritical:
		return 3
	case UrgencyWarning:
		return 2
	case UrgencyNeutral:
		return 1
	default:
		return 0
	}
}
