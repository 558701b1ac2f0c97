// Package audit keeps an append-only journal of the events the API records,
// one JSON object per line, so admins can review recent activity after a
// restart.
package audit

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/orchid-haven/orchid-backend/internal/events"
	"github.com/orchid-haven/orchid-backend/pkg/logger"
	"go.uber.org/zap"
)

// Journal manages the activity log file
type Journal struct {
	filePath string
	file     *os.File
	mu       sync.Mutex
}

// Open creates the journal file (and its directory) if missing and opens it
// for appending.
func Open(filePath string) (*Journal, error) {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}

	return &Journal{
		filePath: filePath,
		file:     file,
	}, nil
}

// Append writes one event and syncs it to disk.
func (j *Journal) Append(e events.Event) error {
	start := time.Now()
	j.mu.Lock()
	defer j.mu.Unlock()

	data, err := json.Marshal(e)
	if err != nil {
		logger.Log.Error("Journal: Failed to encode entry",
			zap.String("event_id", e.ID),
			zap.Error(err),
		)
		return err
	}

	if _, err := j.file.Write(append(data, '\n')); err != nil {
		logger.Log.Error("Journal: Failed to write entry",
			zap.String("event_id", e.ID),
			zap.Error(err),
		)
		return err
	}

	if err := j.file.Sync(); err != nil {
		logger.Log.Error("Journal: Failed to sync to disk",
			zap.String("event_id", e.ID),
			zap.Error(err),
		)
		return err
	}

	logger.Log.Debug("Journal: Entry written",
		zap.String("event_id", e.ID),
		zap.Duration("duration", time.Since(start)),
	)
	return nil
}

// Record implements events.Sink. Failures are logged by Append.
func (j *Journal) Record(_ context.Context, e events.Event) {
	_ = j.Append(e)
}

// Recent returns up to limit entries, newest first. A limit <= 0 returns
// everything.
func (j *Journal) Recent(limit int) ([]events.Event, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	all, err := j.readAllUnsafe()
	if err != nil {
		return nil, err
	}

	if limit <= 0 || limit > len(all) {
		limit = len(all)
	}

	result := make([]events.Event, 0, limit)
	for i := len(all) - 1; i >= 0 && len(result) < limit; i-- {
		result = append(result, all[i])
	}
	return result, nil
}

// Compact rewrites the journal keeping only the newest keep entries.
func (j *Journal) Compact(keep int) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	all, err := j.readAllUnsafe()
	if err != nil {
		return err
	}
	if keep < 0 || len(all) <= keep {
		return nil
	}

	remaining := all[len(all)-keep:]

	if err := j.file.Close(); err != nil {
		return err
	}

	tempFile := j.filePath + ".tmp"
	if err := writeEntries(tempFile, remaining); err != nil {
		logger.Log.Error("Journal: Failed to write compacted file",
			zap.String("temp_file", tempFile),
			zap.Error(err),
		)
		j.reopen()
		return err
	}

	if err := os.Rename(tempFile, j.filePath); err != nil {
		logger.Log.Error("Journal: Failed to rename temp file",
			zap.String("temp_file", tempFile),
			zap.String("target_file", j.filePath),
			zap.Error(err),
		)
		j.reopen()
		return err
	}

	if err := j.reopen(); err != nil {
		return err
	}

	logger.Log.Info("Journal: Compacted",
		zap.Int("before_count", len(all)),
		zap.Int("remaining_count", len(remaining)),
	)
	return nil
}

// reopen restores the append handle after the file was replaced or closed.
func (j *Journal) reopen() error {
	file, err := os.OpenFile(j.filePath, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0644)
	if err != nil {
		logger.Log.Error("Journal: Failed to reopen file",
			zap.String("file_path", j.filePath),
			zap.Error(err),
		)
		return err
	}
	j.file = file
	return nil
}

func writeEntries(path string, entries []events.Event) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, e := range entries {
		data, err := json.Marshal(e)
		if err != nil {
			return err
		}
		w.Write(data)
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return f.Sync()
}

// readAllUnsafe reads every entry without locking. Corrupt lines (a torn
// final write after a crash) are skipped.
func (j *Journal) readAllUnsafe() ([]events.Event, error) {
	file, err := os.Open(j.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []events.Event{}, nil
		}
		return nil, err
	}
	defer file.Close()

	var entries []events.Event
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		var e events.Event
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			continue
		}
		entries = append(entries, e)
	}

	return entries, scanner.Err()
}

func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.file.Close()
}
