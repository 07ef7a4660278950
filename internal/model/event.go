// Package model defines the records kept in the profile store.
package model

import "time"

// Event is one recorded goal event in the history log.
type Event struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	GoalIndex  int       `json:"goal_index"`
	GoalName   string    `json:"goal_name"`
	Kind       string    `json:"kind"`
	Delta      int       `json:"delta"`
	Points     int       `json:"points"`
	Completed  bool      `json:"completed"`
	RecordedAt time.Time `json:"recorded_at"`
}

