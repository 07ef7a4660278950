package store

import (
	"context"
	"fmt"
	"time"

	"github.com/rcliao/eternal-quest/internal/model"
	"github.com/rcliao/eternal-quest/internal/quest"
)

// Export is a full dump of one user's stored state.
type Export struct {
	ExportedAt      time.Time      `json:"exported_at"`
	User            *quest.User    `json:"user"`
	CompletedQuests []*quest.Quest `json:"completed_quests"`
	Events          []model.Event  `json:"events"`
}

// ExportAll returns the user's profile, finished quests and full event
// history, oldest event first.
func (s *SQLiteStore) ExportAll(ctx context.Context, username string) (*Export, error) {
	u, err := s.LoadUser(ctx, username)
	if err != nil {
		return nil, err
	}
	completed, err := s.CompletedQuests(ctx, username)
	if err != nil {
		return nil, err
	}
	events, err := s.queryEvents(ctx,
		`SELECT `+eventColumns+` FROM events WHERE username = ? ORDER BY recorded_at, id`, username)
	if err != nil {
		return nil, err
	}

	return &Export{
		ExportedAt:      time.Now().UTC(),
		User:            u,
		CompletedQuests: completed,
		Events:          events,
	}, nil
}

// Import stores an export. Events already present (same ID) are skipped.
// Returns the number of events read from the export.
func (s *SQLiteStore) Import(ctx context.Context, e *Export) (int, error) {
	if e == nil || e.User == nil {
		return 0, fmt.Errorf("import: export has no user")
	}
	if err := validateRewards(e); err != nil {
		return 0, err
	}
	if err := s.SaveUser(ctx, SaveUserParams{User: e.User, Completed: e.CompletedQuests}); err != nil {
		return 0, fmt.Errorf("import user: %w", err)
	}

	imported := 0
	for i := range e.Events {
		ev := e.Events[i]
		ev.Username = e.User.Username
		if ev.ID == "" {
			ev.ID = s.newID()
		}
		if err := s.insertEvent(ctx, &ev, true); err != nil {
			return imported, err
		}
		imported++
	}
	return imported, nil
}

func validateRewards(e *Export) error {
	for _, qs := range [][]*quest.Quest{e.User.ActiveQuests, e.CompletedQuests} {
		for _, q := range qs {
			if q == nil {
				return fmt.Errorf("import: empty quest entry")
			}
			if q.RewardPoints < 0 {
				return fmt.Errorf("import: quest %q: %w: %d", q.Name, quest.ErrInvalidPoints, q.RewardPoints)
			}
		}
	}
	if e.User.ExperiencePoints < 0 {
		return fmt.Errorf("import: %w: %d", quest.ErrInvalidPoints, e.User.ExperiencePoints)
	}
	return nil
}
