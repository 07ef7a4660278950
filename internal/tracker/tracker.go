// Package tracker exposes the goal operations a caller drives: create,
// record, display, score, save and load.
package tracker

import (
	"errors"
	"log/slog"

	"github.com/rcliao/eternal-quest/internal/goal"
	"github.com/rcliao/eternal-quest/internal/goalfile"
)

// Tracker owns the goal ledger for one session.
type Tracker struct {
	ledger *goal.Ledger
	codec  goalfile.Codec
	log    *slog.Logger
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithChecklistProgress persists checklist progress in the goal file.
func WithChecklistProgress(on bool) Option {
	return func(t *Tracker) { t.codec.ChecklistProgress = on }
}

// WithLogger sets the logger used for load diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(t *Tracker) { t.log = l }
}

// New returns a tracker with an empty ledger.
func New(opts ...Option) *Tracker {
	t := &Tracker{ledger: goal.NewLedger(), log: slog.Default()}
	for _, opt := range opts {
		opt(t)
	}
	t.codec.Logger = t.log
	return t
}

// CreateGoal appends a new goal. target is only used by checklist goals;
// 0 selects the default.
func (t *Tracker) CreateGoal(kind goal.Kind, name string, points, target int) (*goal.Goal, error) {
	g, err := t.ledger.Create(goal.Params{Kind: kind, Name: name, Points: points, Target: target})
	if err != nil {
		return nil, err
	}
	t.log.Debug("goal created", "kind", kind, "name", name, "index", t.ledger.Len())
	return g, nil
}

// RecordEvent records an event on the goal at the 1-based index.
func (t *Tracker) RecordEvent(index int) (goal.Outcome, error) {
	out, err := t.ledger.RecordEventAt(index)
	if err != nil {
		return out, err
	}
	t.log.Debug("event recorded", "index", index, "goal", out.Name, "delta", out.Delta, "points", out.Points)
	return out, nil
}

// DisplayGoals renders every goal with its 1-based index.
func (t *Tracker) DisplayGoals() []string {
	return t.ledger.DisplayAll()
}

// TotalScore sums the points of every goal.
func (t *Tracker) TotalScore() int {
	return t.ledger.TotalScore()
}

// Goals returns the goals in display order.
func (t *Tracker) Goals() []*goal.Goal {
	return t.ledger.Goals()
}

// SaveGoals overwrites path with the current ledger.
func (t *Tracker) SaveGoals(path string) error {
	if err := t.codec.Save(t.ledger.Goals(), path); err != nil {
		return err
	}
	t.log.Info("goals saved", "path", path, "count", t.ledger.Len())
	return nil
}

// LoadGoals clears the ledger and fills it from path. The ledger stays
// empty when the file is missing (goalfile.ErrNotFound), unreadable, or
// names an unknown variant. Skipped lines are returned in the result.
func (t *Tracker) LoadGoals(path string) (*goalfile.LoadResult, error) {
	t.ledger.Reset()

	res, err := t.codec.Load(path)
	if err != nil {
		if errors.Is(err, goalfile.ErrNotFound) {
			t.log.Info("no saved goals found", "path", path)
		}
		return res, err
	}
	t.ledger.Replace(res.Goals)
	t.log.Info("goals loaded", "path", path, "count", len(res.Goals), "skipped", len(res.Skipped))
	return res, nil
}
