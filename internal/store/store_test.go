package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/talentscout/screener/internal/screening"

	"go.uber.org/zap"
)

func testSummary(name string) screening.Summary {
	return screening.Summary{
		CreatedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		Record: screening.CandidateRecord{
			Name:       name,
			Email:      "john@example.com",
			Phone:      "9876543210",
			Experience: "3",
			Position:   "Backend Developer",
			Location:   "Pune",
			TechStack:  []string{"Python", "Django"},
		},
		Questions: []string{"q1", "q2", "q3"},
		Sentiment: "positive",
	}
}

func TestAppendWritesHeaderOnce(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "data", "candidates.csv")
	csvStore := NewCSV(path, zap.NewNop())

	if err := csvStore.Append(testSummary("John Doe")); err != nil {
		t.Fatalf("first append failed: %v", err)
	}
	if err := csvStore.Append(testSummary("Jane Roe")); err != nil {
		t.Fatalf("second append failed: %v", err)
	}

	rows, err := csvStore.ReadAll()
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "timestamp" || rows[0][1] != "name" {
		t.Fatalf("unexpected header: %v", rows[0])
	}
	if rows[1][1] != "John Doe" || rows[2][1] != "Jane Roe" {
		t.Fatalf("unexpected row order: %v", rows)
	}
	if rows[1][7] != "Python, Django" {
		t.Fatalf("expected joined tech stack, got %q", rows[1][7])
	}
	if rows[1][8] != "q1 | q2 | q3" {
		t.Fatalf("expected joined questions, got %q", rows[1][8])
	}
}

func TestReadAllMissingFileIsEmpty(t *testing.T) {
	t.Parallel()

	csvStore := NewCSV(filepath.Join(t.TempDir(), "missing.csv"), zap.NewNop())

	rows, err := csvStore.ReadAll()
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	if rows != nil {
		t.Fatalf("expected empty result, got %v", rows)
	}
}
