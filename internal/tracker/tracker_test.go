package tracker

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rcliao/eternal-quest/internal/goal"
	"github.com/rcliao/eternal-quest/internal/goalfile"
)

func quietTracker(opts ...Option) *Tracker {
	log := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	return New(append([]Option{WithLogger(log)}, opts...)...)
}

func TestPrayDailyScore(t *testing.T) {
	tr := quietTracker()
	if _, err := tr.CreateGoal(goal.Eternal, "Pray Daily", 0, 0); err != nil {
		t.Fatalf("create: %v", err)
	}
	for i := 0; i < 3; i++ {
		if _, err := tr.RecordEvent(1); err != nil {
			t.Fatalf("record: %v", err)
		}
	}
	if got := tr.TotalScore(); got != 300 {
		t.Errorf("expected 300, got %d", got)
	}
}

func TestRecordEventOutOfRange(t *testing.T) {
	tr := quietTracker()
	tr.CreateGoal(goal.Simple, "a", 0, 0)
	if _, err := tr.RecordEvent(5); !errors.Is(err, goal.ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange, got %v", err)
	}
	if tr.TotalScore() != 0 {
		t.Errorf("score changed after failed record")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "goals.txt")

	tr := quietTracker()
	tr.CreateGoal(goal.Simple, "Run", 0, 0)
	tr.CreateGoal(goal.Eternal, "Pray", 0, 0)
	tr.CreateGoal(goal.Penalty, "Junk food", 0, 0)
	tr.RecordEvent(1)
	tr.RecordEvent(2)
	tr.RecordEvent(3)
	if err := tr.SaveGoals(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	other := quietTracker()
	if _, err := other.LoadGoals(path); err != nil {
		t.Fatalf("load: %v", err)
	}
	want := tr.DisplayGoals()
	got := other.DisplayGoals()
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Errorf("got %v, want %v", got, want)
	}
	if other.TotalScore() != 1000+100-50 {
		t.Errorf("expected score %d, got %d", 1050, other.TotalScore())
	}
}

func TestLoadClearsLedger(t *testing.T) {
	dir := t.TempDir()
	tr := quietTracker()
	tr.CreateGoal(goal.Eternal, "stale", 500, 0)

	_, err := tr.LoadGoals(filepath.Join(dir, "missing.txt"))
	if !errors.Is(err, goalfile.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if len(tr.Goals()) != 0 {
		t.Errorf("expected empty ledger after missing file, got %d", len(tr.Goals()))
	}

	tr.CreateGoal(goal.Eternal, "stale", 500, 0)
	bad := filepath.Join(dir, "bad.txt")
	os.WriteFile(bad, []byte("EternalGoal|ok|1\nMysteryGoal|x|2\n"), 0o644)
	_, err = tr.LoadGoals(bad)
	if !errors.Is(err, goalfile.ErrUnknownVariant) {
		t.Fatalf("expected ErrUnknownVariant, got %v", err)
	}
	if len(tr.Goals()) != 0 {
		t.Errorf("expected empty ledger after fatal load, got %d", len(tr.Goals()))
	}
}

func TestLoadReportsSkippedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "goals.txt")
	os.WriteFile(path, []byte("EternalGoal|a|1\nnot a record\nSimpleGoal|b|2\n"), 0o644)

	var logs bytes.Buffer
	tr := New(WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))
	res, err := tr.LoadGoals(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(res.Skipped) != 1 || res.Skipped[0].Line != 2 {
		t.Errorf("expected line 2 skipped, got %+v", res.Skipped)
	}
	if len(tr.Goals()) != 2 {
		t.Errorf("expected 2 goals, got %d", len(tr.Goals()))
	}
	if !strings.Contains(logs.String(), "skipping malformed goal record") {
		t.Errorf("expected a diagnostic in the log, got %q", logs.String())
	}
}

func TestChecklistProgressOption(t *testing.T) {
	path := filepath.Join(t.TempDir(), "goals.txt")

	tr := quietTracker(WithChecklistProgress(true))
	tr.CreateGoal(goal.Checklist, "Gym", 0, 3)
	tr.RecordEvent(1)
	tr.RecordEvent(1)
	tr.SaveGoals(path)

	again := quietTracker(WithChecklistProgress(true))
	if _, err := again.LoadGoals(path); err != nil {
		t.Fatalf("load: %v", err)
	}
	out, _ := again.RecordEvent(1)
	if !out.Completed || out.Points != 650 {
		t.Errorf("expected checklist to complete on third event, got %+v", out)
	}
}
