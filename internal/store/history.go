package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rcliao/eternal-quest/internal/model"
)

const eventColumns = `id, username, goal_index, goal_name, kind, delta, points, completed, recorded_at`

func (s *SQLiteStore) AppendEvent(ctx context.Context, p EventParams) (*model.Event, error) {
	now := time.Now().UTC()
	ev := &model.Event{
		ID:         s.newID(),
		Username:   p.Username,
		GoalIndex:  p.GoalIndex,
		GoalName:   p.GoalName,
		Kind:       p.Kind,
		Delta:      p.Delta,
		Points:     p.Points,
		Completed:  p.Completed,
		RecordedAt: now,
	}
	if err := s.insertEvent(ctx, ev, false); err != nil {
		return nil, err
	}
	return ev, nil
}

func (s *SQLiteStore) insertEvent(ctx context.Context, ev *model.Event, ignoreDup bool) error {
	verb := "INSERT"
	if ignoreDup {
		verb = "INSERT OR IGNORE"
	}
	_, err := s.db.ExecContext(ctx,
		verb+` INTO events (`+eventColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ev.ID, ev.Username, ev.GoalIndex, ev.GoalName, ev.Kind, ev.Delta, ev.Points,
		ev.Completed, ev.RecordedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

// History finds events whose goal name contains p.Goal.
func (s *SQLiteStore) History(ctx context.Context, p HistoryParams) ([]model.Event, error) {
	limit := p.Limit
	if limit <= 0 {
		limit = 20
	}

	where := []string{"username = ?"}
	args := []interface{}{p.Username}

	if p.Goal != "" {
		where = append(where, "goal_name LIKE ?")
		args = append(args, "%"+p.Goal+"%")
	}
	if p.Kind != "" {
		where = append(where, "kind = ?")
		args = append(args, p.Kind)
	}

	query := fmt.Sprintf(`SELECT %s FROM events WHERE %s
		ORDER BY recorded_at DESC, id DESC
		LIMIT ?`, eventColumns, strings.Join(where, " AND "))
	args = append(args, limit)

	return s.queryEvents(ctx, query, args...)
}

func (s *SQLiteStore) queryEvents(ctx context.Context, query string, args ...interface{}) ([]model.Event, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []model.Event{}
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

func scanEvent(row scanner) (model.Event, error) {
	var ev model.Event
	var recordedAt string

	err := row.Scan(&ev.ID, &ev.Username, &ev.GoalIndex, &ev.GoalName, &ev.Kind,
		&ev.Delta, &ev.Points, &ev.Completed, &recordedAt)
	if err != nil {
		return ev, err
	}
	ev.RecordedAt, _ = time.Parse(time.RFC3339, recordedAt)
	return ev, nil
}
