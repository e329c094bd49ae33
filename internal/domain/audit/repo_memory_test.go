package audit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func seedLogs(t *testing.T, repo *LogRepoMemory, n int) {
	t.Helper()
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		err := repo.Insert(context.Background(), &Log{
			ID:        uuid.New(),
			Action:    "Manual Entry",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("insert: %v", err)
		}
	}
}

func TestLogRepoMemory_ListRecent_Empty(t *testing.T) {
	repo := NewLogRepoMemory()

	_, err := repo.ListRecent(context.Background(), 100)
	if !errors.Is(err, ErrNoLogs) {
		t.Fatalf("expected ErrNoLogs, got %v", err)
	}
}

func TestLogRepoMemory_ListRecent_NewestFirstAndLimited(t *testing.T) {
	repo := NewLogRepoMemory()
	seedLogs(t, repo, 10)

	logs, err := repo.ListRecent(context.Background(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(logs) != 3 {
		t.Fatalf("expected 3 logs, got %d", len(logs))
	}
	for i := 1; i < len(logs); i++ {
		if logs[i].CreatedAt.After(logs[i-1].CreatedAt) {
			t.Fatalf("logs not ordered newest first at index %d", i)
		}
	}
}

func TestLogRepoMemory_List_Pagination(t *testing.T) {
	repo := NewLogRepoMemory()
	seedLogs(t, repo, 5)

	logs, total, err := repo.List(context.Background(), 2, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 5 {
		t.Errorf("expected total 5, got %d", total)
	}
	if len(logs) != 2 {
		t.Errorf("expected 2 logs, got %d", len(logs))
	}

	logs, total, err = repo.List(context.Background(), 2, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 5 || len(logs) != 0 {
		t.Errorf("expected empty page with total 5, got %d logs total %d", len(logs), total)
	}
}
