// Package timelog reads and writes the per-day activity log files.
package timelog

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"time"

	"github.com/amacleod/ttstat/internal/model"
)

// TimestampLayout is the 14-digit timestamp format used in log entries.
const TimestampLayout = "20060102150405"

// FileDateLayout is the date portion of a log file name.
const FileDateLayout = "02-01-2006"

var logFilePattern = regexp.MustCompile(`^timesheet-\d{2}-\d{2}-\d{4}\.log$`)

// Load parses every matching log file in dir and returns events converted
// from UTC to local time, sorted ascending by timestamp. When two lines
// normalize to the same local timestamp the last one read wins. Lines that
// fail to parse are skipped with a diagnostic; only an unreadable
// directory or file is an error.
func Load(dir string) ([]model.Event, error) {
	return load(dir, time.Local, logErrf)
}

func load(dir string, loc *time.Location, warnf func(format string, args ...any)) ([]model.Event, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read log directory: %w", err)
	}

	byTimestamp := map[string]string{}
	for _, entry := range entries {
		if entry.IsDir() || !logFilePattern.MatchString(entry.Name()) {
			continue
		}
		if err := loadFile(filepath.Join(dir, entry.Name()), loc, byTimestamp, warnf); err != nil {
			return nil, err
		}
	}

	events := make([]model.Event, 0, len(byTimestamp))
	for ts, activity := range byTimestamp {
		parsed, err := time.ParseInLocation(TimestampLayout, ts, loc)
		if err != nil {
			// Keys are produced by Format below and always parse back.
			continue
		}
		events = append(events, model.Event{Timestamp: parsed, Activity: activity})
	}
	sort.Slice(events, func(i, j int) bool {
		return events[i].Timestamp.Before(events[j].Timestamp)
	})
	return events, nil
}

func loadFile(path string, loc *time.Location, byTimestamp map[string]string, warnf func(format string, args ...any)) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			// Best-effort close of a read-only file.
			_ = cerr
		}
	}()

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" {
			continue
		}
		ts, activity, ok := splitEntry(line)
		if !ok {
			warnf("skipping malformed entry %s:%d: %q\n", path, lineNo, line)
			continue
		}
		utc, err := time.ParseInLocation(TimestampLayout, ts, time.UTC)
		if err != nil {
			warnf("skipping entry with bad timestamp %s:%d: %q\n", path, lineNo, ts)
			continue
		}
		byTimestamp[utc.In(loc).Format(TimestampLayout)] = activity
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read log file %s: %w", path, err)
	}
	return nil
}

func splitEntry(line string) (ts, activity string, ok bool) {
	for i := 0; i < len(line); i++ {
		if line[i] == ' ' {
			if i == 0 || i == len(line)-1 {
				return "", "", false
			}
			return line[:i], line[i+1:], true
		}
	}
	return "", "", false
}

// Append writes a UTC-stamped entry for activity into the per-day log
// file, creating the directory and file as needed.
func Append(dir, activity string, now time.Time) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	utc := now.UTC()
	path := filepath.Join(dir, fmt.Sprintf("timesheet-%s.log", utc.Format(FileDateLayout)))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	if _, err := fmt.Fprintf(f, "%s %s\n", utc.Format(TimestampLayout), activity); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to append log entry: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close log file: %w", err)
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
