package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/rcliao/eternal-quest/internal/quest"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db      *sql.DB
	entropy *ulid.MonotonicEntropy
}

// NewSQLiteStore opens or creates a SQLite database at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{
		db:      db,
		entropy: ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0),
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

func (s *SQLiteStore) LoadUser(ctx context.Context, username string) (*quest.User, error) {
	if username == "" {
		return nil, fmt.Errorf("load user: %w", quest.ErrInvalidName)
	}

	u := quest.NewUser(username)
	err := s.db.QueryRowContext(ctx,
		`SELECT level, xp, appearance FROM users WHERE username = ?`, username).
		Scan(&u.Level, &u.ExperiencePoints, &u.Avatar.Appearance)
	if errors.Is(err, sql.ErrNoRows) {
		now := time.Now().UTC().Format(time.RFC3339)
		_, err = s.db.ExecContext(ctx,
			`INSERT INTO users (username, level, xp, appearance, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			username, u.Level, u.ExperiencePoints, u.Avatar.Appearance, now, now)
		if err != nil {
			return nil, fmt.Errorf("create user: %w", err)
		}
		return u, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, quest_key, name, description, reward, started_at, completed_at
		 FROM user_quests WHERE username = ? AND completed_at IS NULL
		 ORDER BY seq`, username)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		q, err := scanQuest(rows)
		if err != nil {
			return nil, err
		}
		u.ActiveQuests = append(u.ActiveQuests, q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if u.Avatar.Accessories, err = s.names(ctx, "user_accessories", username); err != nil {
		return nil, err
	}
	if u.Badges, err = s.names(ctx, "user_badges", username); err != nil {
		return nil, err
	}
	return u, nil
}

// names reads an ordered list from one of the per-user name tables.
func (s *SQLiteStore) names(ctx context.Context, table, username string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name FROM `+table+` WHERE username = ? ORDER BY seq`, username)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) SaveUser(ctx context.Context, p SaveUserParams) error {
	u := p.User
	if u == nil || u.Username == "" {
		return fmt.Errorf("save user: %w", quest.ErrInvalidName)
	}
	now := time.Now().UTC()
	stamp := now.Format(time.RFC3339)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO users (username, level, xp, appearance, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(username) DO UPDATE SET
		   level = excluded.level, xp = excluded.xp,
		   appearance = excluded.appearance, updated_at = excluded.updated_at`,
		u.Username, u.Level, u.ExperiencePoints, u.Avatar.Appearance, stamp, stamp)
	if err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}

	// Active quests are rewritten wholesale so order and duplicates survive.
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM user_quests WHERE username = ? AND completed_at IS NULL`, u.Username); err != nil {
		return err
	}
	seen := map[*quest.Quest]bool{}
	for i, q := range u.ActiveQuests {
		id := ""
		if seen[q] {
			// The same quest started twice still takes two rows.
			id = s.newID()
		}
		seen[q] = true
		if err := s.putQuest(ctx, tx, u.Username, i, q, id, now); err != nil {
			return err
		}
	}
	for i, q := range p.Completed {
		if !q.IsCompleted() {
			return fmt.Errorf("save user: quest %q is not completed", q.Name)
		}
		if err := s.putQuest(ctx, tx, u.Username, i, q, "", now); err != nil {
			return err
		}
	}

	if err := replaceNames(ctx, tx, "user_accessories", u.Username, u.Avatar.Accessories); err != nil {
		return err
	}
	if err := replaceNames(ctx, tx, "user_badges", u.Username, u.Badges); err != nil {
		return err
	}

	return tx.Commit()
}

// putQuest inserts or replaces one quest row, assigning an ID and start
// time to quests that have never been stored. A non-empty rowID overrides
// the quest's own ID for this row.
func (s *SQLiteStore) putQuest(ctx context.Context, tx *sql.Tx, username string, seq int, q *quest.Quest, rowID string, now time.Time) error {
	if q.ID == "" {
		q.ID = s.newID()
	}
	if rowID == "" {
		rowID = q.ID
	}
	if q.StartedAt.IsZero() {
		q.StartedAt = now
	}
	var completedAt *string
	if q.CompletedAt != nil {
		c := q.CompletedAt.UTC().Format(time.RFC3339)
		completedAt = &c
	}
	_, err := tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO user_quests (id, username, seq, quest_key, name, description, reward, started_at, completed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rowID, username, seq, q.Key, q.Name, q.Description, q.RewardPoints,
		q.StartedAt.UTC().Format(time.RFC3339), completedAt)
	if err != nil {
		return fmt.Errorf("insert quest: %w", err)
	}
	return nil
}

func replaceNames(ctx context.Context, tx *sql.Tx, table, username string, names []string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE username = ?`, username); err != nil {
		return err
	}
	for i, n := range names {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO `+table+` (username, seq, name) VALUES (?, ?, ?)`, username, i, n); err != nil {
			return fmt.Errorf("insert %s: %w", table, err)
		}
	}
	return nil
}

func (s *SQLiteStore) CompletedQuests(ctx context.Context, username string) ([]*quest.Quest, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, quest_key, name, description, reward, started_at, completed_at
		 FROM user_quests WHERE username = ? AND completed_at IS NOT NULL
		 ORDER BY completed_at DESC, id DESC`, username)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	quests := []*quest.Quest{}
	for rows.Next() {
		q, err := scanQuest(rows)
		if err != nil {
			return nil, err
		}
		quests = append(quests, q)
	}
	return quests, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanQuest(row scanner) (*quest.Quest, error) {
	q := &quest.Quest{}
	var key, description, completedAt sql.NullString
	var startedAt string

	err := row.Scan(&q.ID, &key, &q.Name, &description, &q.RewardPoints, &startedAt, &completedAt)
	if err != nil {
		return nil, err
	}

	q.Key = key.String
	q.Description = description.String
	q.StartedAt, _ = time.Parse(time.RFC3339, startedAt)
	if completedAt.Valid {
		t, _ := time.Parse(time.RFC3339, completedAt.String)
		q.CompletedAt = &t
	}
	return q, nil
}
