// Package goal defines the goal variants, their scoring rules, and the
// ordered ledger that holds them for a session.
package goal

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// Kind identifies one of the fixed goal variants.
type Kind int

const (
	Simple Kind = iota + 1
	Eternal
	Checklist
	Penalty
)

const (
	SimplePoints           = 1000
	EternalPoints          = 100
	ChecklistPoints        = 50
	ChecklistBonus         = 500
	PenaltyPoints          = -50
	DefaultChecklistTarget = 10
)

var (
	ErrValidation  = errors.New("validation error")
	ErrUnknownKind = errors.New("unknown goal kind")
)

var kindNames = map[Kind]string{
	Simple:    "SimpleGoal",
	Eternal:   "EternalGoal",
	Checklist: "ChecklistGoal",
	Penalty:   "PenaltyGoal",
}

// Kinds lists every variant in display order.
var Kinds = []Kind{Simple, Eternal, Checklist, Penalty}

// String returns the persisted variant name, e.g. "ChecklistGoal".
func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Short returns the lowercase CLI name, e.g. "checklist".
func (k Kind) Short() string {
	return strings.ToLower(strings.TrimSuffix(k.String(), "Goal"))
}

// ParseKind matches a persisted variant name exactly.
func ParseKind(s string) (Kind, error) {
	for k, n := range kindNames {
		if n == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// ParseKindName accepts either the short name ("eternal") or the persisted
// name ("EternalGoal"), case-insensitively.
func ParseKindName(s string) (Kind, error) {
	fold := cases.Fold()
	s = fold.String(strings.TrimSpace(s))
	for _, k := range Kinds {
		if s == fold.String(k.Short()) || s == fold.String(k.String()) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q (valid: simple, eternal, checklist, penalty)", ErrUnknownKind, s)
}

// rule is the scoring law of one variant. record mutates the goal and
// returns the point delta it applied.
type rule struct {
	record   func(g *Goal) int
	complete func(g *Goal) bool
}

var rules = map[Kind]rule{
	Simple: {
		record:   func(*Goal) int { return SimplePoints },
		complete: func(*Goal) bool { return true },
	},
	Eternal: {
		record:   func(*Goal) int { return EternalPoints },
		complete: func(*Goal) bool { return false },
	},
	Checklist: {
		record: func(g *Goal) int {
			g.completed++
			if g.completed == g.target {
				return ChecklistPoints + ChecklistBonus
			}
			return ChecklistPoints
		},
		complete: func(g *Goal) bool { return g.completed == g.target },
	},
	Penalty: {
		record:   func(*Goal) int { return PenaltyPoints },
		complete: func(*Goal) bool { return false },
	},
}

// Params holds parameters for creating a goal.
type Params struct {
	Kind   Kind
	Name   string
	Points int
	Target int // Checklist only; 0 means DefaultChecklistTarget
}

// Goal is a trackable objective. The name is fixed at creation and points
// change only through RecordEvent.
type Goal struct {
	kind      Kind
	name      string
	points    int
	target    int
	completed int
}

// New creates a goal after validating its parameters.
func New(p Params) (*Goal, error) {
	if _, ok := rules[p.Kind]; !ok {
		return nil, fmt.Errorf("%w: %w: %s", ErrValidation, ErrUnknownKind, p.Kind)
	}
	if strings.TrimSpace(p.Name) == "" {
		return nil, fmt.Errorf("%w: goal name is required", ErrValidation)
	}
	if p.Points < 0 && p.Kind != Penalty {
		return nil, fmt.Errorf("%w: only penalty goals may hold negative points, got %d", ErrValidation, p.Points)
	}

	g := &Goal{kind: p.Kind, name: p.Name, points: p.Points}
	if p.Kind == Checklist {
		switch {
		case p.Target == 0:
			g.target = DefaultChecklistTarget
		case p.Target < 0:
			return nil, fmt.Errorf("%w: checklist target must be positive, got %d", ErrValidation, p.Target)
		default:
			g.target = p.Target
		}
	}
	return g, nil
}

// Restore rebuilds a goal from a persisted record, including checklist
// progress. A negative completed count is restored as 0.
func Restore(kind Kind, name string, points, completed, target int) (*Goal, error) {
	g, err := New(Params{Kind: kind, Name: name, Points: points, Target: target})
	if err != nil {
		return nil, err
	}
	if kind == Checklist {
		g.completed = max(0, completed)
	}
	return g, nil
}

// RecordEvent applies the variant's scoring rule and returns the delta.
func (g *Goal) RecordEvent() int {
	delta := rules[g.kind].record(g)
	g.points += delta
	return delta
}

// IsComplete reports the variant's completion predicate.
func (g *Goal) IsComplete() bool {
	return rules[g.kind].complete(g)
}

// DisplayStatus renders "[X] name" or "[ ] name"; checklist goals also
// report their progress.
func (g *Goal) DisplayStatus() string {
	mark := " "
	if g.IsComplete() {
		mark = "X"
	}
	line := fmt.Sprintf("[%s] %s", mark, g.name)
	if g.kind == Checklist {
		line += fmt.Sprintf(" (Completed %d/%d times)", g.completed, g.target)
	}
	return line
}

func (g *Goal) Kind() Kind     { return g.kind }
func (g *Goal) Name() string   { return g.name }
func (g *Goal) Points() int    { return g.points }
func (g *Goal) Target() int    { return g.target }
func (g *Goal) Completed() int { return g.completed }
