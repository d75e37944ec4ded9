package diaglog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// Entry is one finding from extracting or building a workbook.
type Entry struct {
	Timestamp time.Time `json:"timestamp"`
	Workbook  string    `json:"workbook"`
	Stage     string    `json:"stage"` // extract, build
	Code      string    `json:"code"`
	Subject   string    `json:"subject"`
	Detail    string    `json:"detail"`
}

// key identifies a finding regardless of when it was logged.
func (e Entry) key() string {
	return strings.Join([]string{filepath.Clean(e.Workbook), e.Stage, e.Code, e.Subject, e.Detail}, "\x1f")
}

func (e Entry) record() []string {
	return []string{e.Timestamp.Format(time.RFC3339), e.Workbook, e.Stage, e.Code, e.Subject, e.Detail}
}

func parseEntry(rec []string) (Entry, error) {
	ts, err := time.Parse(time.RFC3339, rec[0])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", rec[0], err)
	}
	return Entry{Timestamp: ts, Workbook: rec[1], Stage: rec[2], Code: rec[3], Subject: rec[4], Detail: rec[5]}, nil
}

// Header is the first row of every diagnostics log.
var Header = []string{"timestamp", "workbook", "stage", "code", "subject", "detail"}

// Filter selects entries. Empty fields match everything.
type Filter struct {
	Workbook string
	Stage    string
	Code     string
}

func (f Filter) match(e Entry) bool {
	if f.Workbook != "" && filepath.Clean(f.Workbook) != filepath.Clean(e.Workbook) {
		return false
	}
	if f.Stage != "" && f.Stage != e.Stage {
		return false
	}
	return f.Code == "" || f.Code == e.Code
}

// Log is a diagnostics CSV file. Rebuilding the same workbook does not log
// its findings twice.
type Log struct {
	path    string
	entries []Entry
}

// Open loads the log at path. A missing file is an empty log.
func Open(path string) (*Log, error) {
	l := &Log{path: path}
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return l, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening diagnostics log: %w", err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = len(Header)
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading diagnostics log: %w", err)
		}
		if line == 1 {
			if !slices.Equal(rec, Header) {
				return nil, fmt.Errorf("%s is not a diagnostics log: header %q", path, strings.Join(rec, ","))
			}
			continue
		}
		e, err := parseEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		l.entries = append(l.entries, e)
	}
	return l, nil
}

// Path returns the file backing the log.
func (l *Log) Path() string { return l.path }

// Entries returns the logged entries matching f, oldest first.
func (l *Log) Entries(f Filter) []Entry {
	var out []Entry
	for _, e := range l.entries {
		if f.match(e) {
			out = append(out, e)
		}
	}
	return out
}

// Record appends the entries the log does not already hold and returns how
// many were written. A finding logged n times absorbs up to n repeats.
func (l *Log) Record(entries []Entry) (int, error) {
	seen := make(map[string]int, len(l.entries))
	for _, e := range l.entries {
		seen[e.key()]++
	}
	var fresh []Entry
	for _, e := range entries {
		k := e.key()
		if seen[k] > 0 {
			seen[k]--
			continue
		}
		fresh = append(fresh, e)
	}
	if len(fresh) == 0 {
		return 0, nil
	}

	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return 0, fmt.Errorf("creating log dir: %w", err)
	}
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return 0, fmt.Errorf("opening diagnostics log: %w", err)
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return 0, fmt.Errorf("stat diagnostics log: %w", err)
	}

	cw := csv.NewWriter(f)
	if info.Size() == 0 {
		cw.Write(Header)
	}
	for _, e := range fresh {
		cw.Write(e.record())
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return 0, fmt.Errorf("writing diagnostics log: %w", err)
	}

	l.entries = append(l.entries, fresh...)
	return len(fresh), nil
}
