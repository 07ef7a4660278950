package goal

import "fmt"

// ErrOutOfRange is returned for a goal index outside [1, len].
var ErrOutOfRange = fmt.Errorf("%w: goal index out of range", ErrValidation)

// Outcome describes the effect of one recorded event.
type Outcome struct {
	Index     int    `json:"index"`
	Name      string `json:"name"`
	Kind      string `json:"kind"`
	Delta     int    `json:"delta"`
	Points    int    `json:"points"`
	Completed bool   `json:"completed"`
}

// Ledger is the ordered, append-only collection of goals for one session.
// Insertion order is display order; callers address goals by 1-based index.
type Ledger struct {
	goals []*Goal
}

// NewLedger returns a ledger holding the given goals in order.
func NewLedger(goals ...*Goal) *Ledger {
	l := &Ledger{}
	for _, g := range goals {
		if g != nil {
			l.goals = append(l.goals, g)
		}
	}
	return l
}

// Add appends a goal.
func (l *Ledger) Add(g *Goal) error {
	if g == nil {
		return fmt.Errorf("%w: goal is nil", ErrValidation)
	}
	l.goals = append(l.goals, g)
	return nil
}

// Create builds a goal from p and appends it.
func (l *Ledger) Create(p Params) (*Goal, error) {
	g, err := New(p)
	if err != nil {
		return nil, err
	}
	l.goals = append(l.goals, g)
	return g, nil
}

// At returns the goal at the 1-based index.
func (l *Ledger) At(index int) (*Goal, error) {
	if index < 1 || index > len(l.goals) {
		return nil, fmt.Errorf("%w: %d (have %d goals)", ErrOutOfRange, index, len(l.goals))
	}
	return l.goals[index-1], nil
}

// RecordEventAt records an event on the goal at the 1-based index.
// The ledger is unchanged when the index is out of range.
func (l *Ledger) RecordEventAt(index int) (Outcome, error) {
	g, err := l.At(index)
	if err != nil {
		return Outcome{}, err
	}
	delta := g.RecordEvent()
	return Outcome{
		Index:     index,
		Name:      g.Name(),
		Kind:      g.Kind().String(),
		Delta:     delta,
		Points:    g.Points(),
		Completed: g.IsComplete(),
	}, nil
}

// TotalScore sums the points of every goal.
func (l *Ledger) TotalScore() int {
	total := 0
	for _, g := range l.goals {
		total += g.Points()
	}
	return total
}

// DisplayAll renders each goal's status prefixed with its 1-based index.
func (l *Ledger) DisplayAll() []string {
	lines := make([]string, 0, len(l.goals))
	for i, g := range l.goals {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, g.DisplayStatus()))
	}
	return lines
}

// Goals returns a copy of the goal slice.
func (l *Ledger) Goals() []*Goal {
	out := make([]*Goal, len(l.goals))
	copy(out, l.goals)
	return out
}

func (l *Ledger) Len() int { return len(l.goals) }

// Replace swaps the ledger contents for goals.
func (l *Ledger) Replace(goals []*Goal) {
	l.Reset()
	for _, g := range goals {
		if g != nil {
			l.goals = append(l.goals, g)
		}
	}
}

// Reset empties the ledger.
func (l *Ledger) Reset() {
	l.goals = nil
}
