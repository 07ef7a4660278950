package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rcliao/eternal-quest/internal/quest"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dir := t.TempDir()
	s, err := NewSQLiteStore(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestLoadUserCreatesProfile(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	u, err := s.LoadUser(ctx, "ana")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if u.Username != "ana" || u.Level != 1 || u.ExperiencePoints != 0 {
		t.Errorf("unexpected fresh user %+v", u)
	}
	if u.Avatar.Appearance != quest.DefaultAppearance {
		t.Errorf("expected default appearance, got %q", u.Avatar.Appearance)
	}

	if _, err := s.LoadUser(ctx, ""); err == nil {
		t.Error("expected error for empty username")
	}
}

func TestSaveAndLoadUser(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	u, _ := s.LoadUser(ctx, "ana")
	u.EarnExperiencePoints(2500)
	u.Avatar.Customize("Knight")
	u.Avatar.AddAccessory("Shield")
	u.Avatar.AddAccessory("Cape")
	u.AwardBadge("Early Riser")

	catalog := quest.Catalog()
	u.StartQuest(catalog[3])
	u.StartQuest(catalog[0])
	u.StartQuest(catalog[3]) // duplicate start is kept

	if err := s.SaveUser(ctx, SaveUserParams{User: u}); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.LoadUser(ctx, "ana")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.Level != 3 || got.ExperiencePoints != 500 {
		t.Errorf("expected level 3 xp 500, got level %d xp %d", got.Level, got.ExperiencePoints)
	}
	if got.Avatar.Appearance != "Knight" || len(got.Avatar.Accessories) != 2 || got.Avatar.Accessories[1] != "Cape" {
		t.Errorf("avatar not persisted: %+v", got.Avatar)
	}
	if len(got.Badges) != 1 || got.Badges[0] != "Early Riser" {
		t.Errorf("badges not persisted: %v", got.Badges)
	}
	if len(got.ActiveQuests) != 3 {
		t.Fatalf("expected 3 active quests, got %d", len(got.ActiveQuests))
	}
	keys := []string{got.ActiveQuests[0].Key, got.ActiveQuests[1].Key, got.ActiveQuests[2].Key}
	if keys[0] != "read-book" || keys[1] != "learn-skill" || keys[2] != "read-book" {
		t.Errorf("active quest order not kept: %v", keys)
	}
	if got.ActiveQuests[0].ID == got.ActiveQuests[2].ID {
		t.Error("duplicate starts should be stored as separate rows")
	}
	if got.ActiveQuests[0].ID == "" || got.ActiveQuests[0].StartedAt.IsZero() {
		t.Error("expected stored quests to carry an ID and start time")
	}

	// Saving the reloaded profile again keeps both entries.
	if err := s.SaveUser(ctx, SaveUserParams{User: got}); err != nil {
		t.Fatalf("resave: %v", err)
	}
	again, _ := s.LoadUser(ctx, "ana")
	if len(again.ActiveQuests) != 3 {
		t.Errorf("expected 3 active quests after resave, got %d", len(again.ActiveQuests))
	}
}

func TestSaveCompletedQuest(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	u, _ := s.LoadUser(ctx, "ana")
	q, _ := quest.Lookup("volunteer")
	u.StartQuest(q)
	if err := s.SaveUser(ctx, SaveUserParams{User: u}); err != nil {
		t.Fatalf("save: %v", err)
	}

	u, _ = s.LoadUser(ctx, "ana")
	active := u.ActiveQuests[0]
	award, err := u.CompleteQuest(active)
	if err != nil || award.LevelsUp != 1 {
		t.Fatalf("unexpected award %+v err=%v", award, err)
	}
	if err := s.SaveUser(ctx, SaveUserParams{User: u, Completed: []*quest.Quest{active}}); err != nil {
		t.Fatalf("save completed: %v", err)
	}

	u, _ = s.LoadUser(ctx, "ana")
	if len(u.ActiveQuests) != 0 {
		t.Errorf("expected no active quests, got %d", len(u.ActiveQuests))
	}
	if u.Level != 2 {
		t.Errorf("expected level 2, got %d", u.Level)
	}

	done, err := s.CompletedQuests(ctx, "ana")
	if err != nil {
		t.Fatalf("completed quests: %v", err)
	}
	if len(done) != 1 || done[0].Key != "volunteer" || !done[0].IsCompleted() {
		t.Errorf("unexpected completed quests %+v", done)
	}
}

func TestSaveRejectsUncompletedHistory(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	u, _ := s.LoadUser(ctx, "ana")
	q, _ := quest.Lookup("garden")
	if err := s.SaveUser(ctx, SaveUserParams{User: u, Completed: []*quest.Quest{q}}); err == nil {
		t.Error("expected error saving an unfinished quest as completed")
	}
}

func TestUsersAreIsolated(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	a, _ := s.LoadUser(ctx, "ana")
	a.EarnExperiencePoints(1200)
	a.StartQuest(quest.Catalog()[1])
	s.SaveUser(ctx, SaveUserParams{User: a})

	b, _ := s.LoadUser(ctx, "ben")
	if b.Level != 1 || len(b.ActiveQuests) != 0 {
		t.Errorf("ben should start fresh, got %+v", b)
	}
}

func TestDBPathCreation(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "sub", "dir", "test.db")
	s, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	s.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("expected db file to be created")
	}
}

func TestReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	s, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	u, _ := s.LoadUser(ctx, "ana")
	u.EarnExperiencePoints(1500)
	if err := s.SaveUser(ctx, SaveUserParams{User: u}); err != nil {
		t.Fatalf("save: %v", err)
	}
	s.Close()

	// Migrations already applied are skipped on the second open.
	s, err = NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer s.Close()

	got, err := s.LoadUser(ctx, "ana")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Level != 2 || got.ExperiencePoints != 500 {
		t.Errorf("expected level 2 with 500 xp, got %+v", got)
	}
}
