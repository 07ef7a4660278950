package store

import (
	"context"
	"os"
)

// Stats holds database statistics.
type Stats struct {
	DBPath          string      `json:"db_path"`
	DBSizeBytes     int64       `json:"db_size_bytes"`
	Users           int         `json:"users"`
	ActiveQuests    int         `json:"active_quests"`
	CompletedQuests int         `json:"completed_quests"`
	TotalEvents     int         `json:"total_events"`
	Kinds           []KindStats `json:"kinds"`
}

// KindStats holds per-variant event counts for one user.
type KindStats struct {
	Kind   string `json:"kind"`
	Events int    `json:"events"`
	Points int    `json:"points"`
}

// Stats returns database statistics for username.
func (s *SQLiteStore) Stats(ctx context.Context, dbPath, username string) (*Stats, error) {
	st := &Stats{DBPath: dbPath, Kinds: []KindStats{}}

	// DB file size
	if info, err := os.Stat(dbPath); err == nil {
		st.DBSizeBytes = info.Size()
	}

	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&st.Users)
	s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM user_quests WHERE username = ? AND completed_at IS NULL`, username).Scan(&st.ActiveQuests)
	s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM user_quests WHERE username = ? AND completed_at IS NOT NULL`, username).Scan(&st.CompletedQuests)
	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events WHERE username = ?`, username).Scan(&st.TotalEvents)

	rows, err := s.db.QueryContext(ctx, `
		SELECT kind, COUNT(*) AS cnt, SUM(delta) AS pts
		FROM events WHERE username = ?
		GROUP BY kind ORDER BY cnt DESC, kind`, username)
	if err != nil {
		return st, err
	}
	defer rows.Close()

	for rows.Next() {
		var k KindStats
		if err := rows.Scan(&k.Kind, &k.Events, &k.Points); err != nil {
			return st, err
		}
		st.Kinds = append(st.Kinds, k)
	}

	return st, rows.Err()
}
