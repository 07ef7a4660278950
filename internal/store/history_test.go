package store

import (
	"context"
	"errors"
	"testing"

	"github.com/rcliao/eternal-quest/internal/quest"
)

func seedEvents(t *testing.T, s *SQLiteStore) {
	t.Helper()
	ctx := context.Background()
	events := []EventParams{
		{Username: "ana", GoalIndex: 1, GoalName: "Pray Daily", Kind: "EternalGoal", Delta: 100, Points: 100},
		{Username: "ana", GoalIndex: 1, GoalName: "Pray Daily", Kind: "EternalGoal", Delta: 100, Points: 200},
		{Username: "ana", GoalIndex: 2, GoalName: "Junk food", Kind: "PenaltyGoal", Delta: -50, Points: -50},
		{Username: "ana", GoalIndex: 3, GoalName: "Run a marathon", Kind: "SimpleGoal", Delta: 1000, Points: 1000, Completed: true},
		{Username: "ben", GoalIndex: 1, GoalName: "Pray Daily", Kind: "EternalGoal", Delta: 100, Points: 100},
	}
	for _, e := range events {
		if _, err := s.AppendEvent(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
}

func TestHistoryNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	seedEvents(t, s)

	events, err := s.History(ctx, HistoryParams{Username: "ana"})
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(events) != 4 {
		t.Fatalf("expected 4 events, got %d", len(events))
	}
	if events[0].GoalName != "Run a marathon" || !events[0].Completed {
		t.Errorf("expected newest event first, got %+v", events[0])
	}
	if events[3].Points != 100 {
		t.Errorf("expected oldest event last, got %+v", events[3])
	}
	if events[0].ID == "" || events[0].RecordedAt.IsZero() {
		t.Error("expected ID and timestamp on stored events")
	}
}

func TestHistoryFilters(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	seedEvents(t, s)

	tests := []struct {
		name string
		p    HistoryParams
		want int
	}{
		{"goal substring", HistoryParams{Username: "ana", Goal: "pray"}, 2},
		{"kind", HistoryParams{Username: "ana", Kind: "PenaltyGoal"}, 1},
		{"limit", HistoryParams{Username: "ana", Limit: 3}, 3},
		{"no match", HistoryParams{Username: "ana", Goal: "nothing"}, 0},
		{"other user", HistoryParams{Username: "ben"}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.History(ctx, tt.p)
			if err != nil {
				t.Fatalf("history: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("expected %d events, got %d", tt.want, len(got))
			}
		})
	}
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	seedEvents(t, s)

	u, _ := s.LoadUser(ctx, "ana")
	u.StartQuest(quest.Catalog()[0])
	s.SaveUser(ctx, SaveUserParams{User: u})

	st, err := s.Stats(ctx, "", "ana")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if st.TotalEvents != 4 || st.ActiveQuests != 1 || st.Users != 1 {
		t.Errorf("unexpected stats %+v", st)
	}
	if len(st.Kinds) != 3 || st.Kinds[0].Kind != "EternalGoal" || st.Kinds[0].Points != 200 {
		t.Errorf("unexpected kind stats %+v", st.Kinds)
	}
}

func TestExportImport(t *testing.T) {
	ctx := context.Background()
	src := newTestStore(t)
	seedEvents(t, src)

	u, _ := src.LoadUser(ctx, "ana")
	q := quest.Catalog()[2]
	u.StartQuest(q)
	u.StartQuest(quest.Catalog()[5])
	u.CompleteQuest(q)
	u.Avatar.AddAccessory("Hat")
	if err := src.SaveUser(ctx, SaveUserParams{User: u, Completed: []*quest.Quest{q}}); err != nil {
		t.Fatalf("save: %v", err)
	}

	exp, err := src.ExportAll(ctx, "ana")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if len(exp.Events) != 4 || exp.Events[0].Points != 100 {
		t.Errorf("expected 4 events oldest first, got %+v", exp.Events)
	}
	if len(exp.CompletedQuests) != 1 || len(exp.User.ActiveQuests) != 1 {
		t.Errorf("unexpected quests in export: %d completed, %d active",
			len(exp.CompletedQuests), len(exp.User.ActiveQuests))
	}

	dst := newTestStore(t)
	n, err := dst.Import(ctx, exp)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if n != 4 {
		t.Errorf("expected 4 imported events, got %d", n)
	}
	// Importing twice does not duplicate events.
	if _, err := dst.Import(ctx, exp); err != nil {
		t.Fatalf("re-import: %v", err)
	}
	events, _ := dst.History(ctx, HistoryParams{Username: "ana", Limit: 100})
	if len(events) != 4 {
		t.Errorf("expected 4 events after re-import, got %d", len(events))
	}

	got, _ := dst.LoadUser(ctx, "ana")
	if got.Level != 2 || len(got.ActiveQuests) != 1 || got.Avatar.Accessories[0] != "Hat" {
		t.Errorf("profile not restored: %+v", got)
	}
}

func TestImportRejectsNegativeReward(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	u := quest.NewUser("ana")
	u.StartQuest(&quest.Quest{Name: "Broken", RewardPoints: -10})
	_, err := s.Import(ctx, &Export{User: u})
	if !errors.Is(err, quest.ErrInvalidPoints) {
		t.Fatalf("expected ErrInvalidPoints, got %v", err)
	}

	got, _ := s.LoadUser(ctx, "ana")
	if len(got.ActiveQuests) != 0 {
		t.Errorf("rejected import should store nothing, got %d quests", len(got.ActiveQuests))
	}
}
