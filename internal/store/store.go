// Package store provides the profile storage interface and SQLite implementation.
package store

import (
	"context"

	"github.com/rcliao/eternal-quest/internal/model"
	"github.com/rcliao/eternal-quest/internal/quest"
)

// SaveUserParams holds parameters for persisting a user.
type SaveUserParams struct {
	User *quest.User
	// Completed are quests finished since the user was loaded; they are
	// moved out of the active set and kept as history.
	Completed []*quest.Quest
}

// EventParams holds parameters for appending a goal event.
type EventParams struct {
	Username  string
	GoalIndex int
	GoalName  string
	Kind      string
	Delta     int
	Points    int
	Completed bool
}

// HistoryParams holds parameters for listing goal events.
type HistoryParams struct {
	Username string
	Goal     string // substring match on goal name
	Kind     string
	Limit    int
}

// Store defines the profile storage interface.
type Store interface {
	// LoadUser returns the stored user, creating a fresh level 1 profile on
	// first use.
	LoadUser(ctx context.Context, username string) (*quest.User, error)

	// SaveUser writes the user's level, experience, avatar, badges and
	// active quests in one transaction.
	SaveUser(ctx context.Context, p SaveUserParams) error

	// CompletedQuests lists a user's finished quests, newest first.
	CompletedQuests(ctx context.Context, username string) ([]*quest.Quest, error)

	// AppendEvent adds a goal event to the history log.
	AppendEvent(ctx context.Context, p EventParams) (*model.Event, error)

	// History lists goal events matching the given filters, newest first.
	History(ctx context.Context, p HistoryParams) ([]model.Event, error)

	// Close closes the store.
	Close() error
}
