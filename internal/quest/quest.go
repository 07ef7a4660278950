// Package quest tracks a user's quests, experience points and level.
package quest

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// PointsPerLevel is the experience needed for one level-up.
const PointsPerLevel = 1000

var (
	ErrInvalidPoints = errors.New("experience points must not be negative")
	ErrInvalidName   = errors.New("name is required")
	ErrNotActive     = errors.New("quest is not active")
)

// Quest is a one-shot rewarded task. Completion is one-way.
type Quest struct {
	ID           string     `json:"id,omitempty"`
	Key          string     `json:"key,omitempty"`
	Name         string     `json:"name"`
	Description  string     `json:"description,omitempty"`
	RewardPoints int        `json:"reward_points"`
	StartedAt    time.Time  `json:"started_at,omitempty"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

// New creates an uncompleted quest.
func New(name, description string, reward int) (*Quest, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("quest: %w", ErrInvalidName)
	}
	if reward < 0 {
		return nil, fmt.Errorf("quest %q: %w", name, ErrInvalidPoints)
	}
	return &Quest{Name: name, Description: description, RewardPoints: reward}, nil
}

// Complete marks the quest completed. Later calls keep the first timestamp.
func (q *Quest) Complete() {
	if q.CompletedAt != nil {
		return
	}
	now := time.Now().UTC()
	q.CompletedAt = &now
}

func (q *Quest) IsCompleted() bool { return q.CompletedAt != nil }

// Award reports the result of completing a quest.
type Award struct {
	Quest    string `json:"quest"`
	Points   int    `json:"points"`
	LevelsUp int    `json:"levels_up"`
	Level    int    `json:"level"`
	XP       int    `json:"experience_points"`
}
