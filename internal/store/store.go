package store

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/talentscout/screener/internal/screening"

	"go.uber.org/zap"
)

var header = []string{
	"timestamp", "name", "email", "phone", "experience",
	"position", "location", "tech_stack", "questions",
}

// CSV is an append-only candidate sink backed by a single flat file. The
// header row is written on first use.
type CSV struct {
	path   string
	logger *zap.Logger
}

func NewCSV(path string, log *zap.Logger) *CSV {
	if log == nil {
		log = zap.NewNop()
	}
	return &CSV{path: path, logger: log}
}

func (c *CSV) Path() string { return c.path }

// Append writes one row for the finalized session. At-least-once semantics:
// callers surface the error as a warning and close the session regardless.
func (c *CSV) Append(s screening.Summary) error {
	if dir := filepath.Dir(c.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create data directory: %w", err)
		}
	}

	file, err := os.OpenFile(c.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open candidate store: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("stat candidate store: %w", err)
	}

	writer := csv.NewWriter(file)
	if info.Size() == 0 {
		if err := writer.Write(header); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	created := s.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}

	row := []string{
		created.Format(time.RFC3339),
		s.Record.Name,
		s.Record.Email,
		s.Record.Phone,
		s.Record.Experience,
		s.Record.Position,
		s.Record.Location,
		strings.Join(s.Record.TechStack, ", "),
		strings.Join(s.Questions, " | "),
	}
	if err := writer.Write(row); err != nil {
		return fmt.Errorf("write candidate row: %w", err)
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush candidate row: %w", err)
	}

	c.logger.Debug("candidate row appended", zap.String("path", c.path))
	return nil
}

// ReadAll returns every stored row, including the header. A missing file is
// not an error: the store is simply empty.
func (c *CSV) ReadAll() ([][]string, error) {
	file, err := os.Open(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open candidate store: %w", err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read candidate store: %w", err)
	}
	return rows, nil
}
