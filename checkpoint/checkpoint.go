package checkpoint

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"
)

// sentinelTime predates any real EverQuest log line, so the cutoff is
// well-defined before the first run and the whole log gets processed.
var sentinelTime = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

// Entry is one processed action with the log timestamp it came from.
type Entry struct {
	Time   time.Time `json:"time"`
	Action string    `json:"action"`
}

// Store holds the ordered processing history across every scanned log.
// Entries are append-only within a run and their timestamps never
// decrease; the newest entry's timestamp is the cutoff for the next run.
type Store struct {
	path    string
	entries []Entry
	latest  time.Time
}

// New returns a fresh store containing only the sentinel entry.
func New(path string) *Store {
	return &Store{
		path:    path,
		entries: []Entry{{Time: sentinelTime}},
		latest:  sentinelTime,
	}
}

// Load reads the persisted checkpoint at path. A missing file yields a
// fresh store. Anything else that prevents reading it is fatal to the run:
// a cutoff that cannot be trusted must never silently reset, or the next
// scan would double-count the entire log.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return New(path), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read checkpoint %s: %w", path, err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse checkpoint %s: %w", path, err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("checkpoint %s has no entries", path)
	}
	s := &Store{path: path, entries: entries, latest: sentinelTime}
	for _, e := range entries {
		if e.Time.After(s.latest) {
			s.latest = e.Time
		}
	}
	return s, nil
}

// Record appends one processed action. Prior entries are never removed or
// reordered. Entries arrive in timestamp order per log file, but a later
// source may record older timestamps than an earlier one.
func (s *Store) Record(t time.Time, action string) {
	s.entries = append(s.entries, Entry{Time: t, Action: action})
	if t.After(s.latest) {
		s.latest = t
	}
}

// LastProcessed returns the most recent timestamp recorded. Log lines at
// or before it have already been counted, so it is the cutoff for the next
// run.
func (s *Store) LastProcessed() time.Time {
	return s.latest
}

// Entries returns the full history, oldest first.
func (s *Store) Entries() []Entry {
	return s.entries
}

// Persist writes the whole history back, replacing the previous file via a
// temp file and rename. Call it once, after every source has been scanned:
// persisting mid-scan would let a crash skip lines on the retry, whereas an
// unpersisted run is simply redone in full.
func (s *Store) Persist() error {
	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode checkpoint: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write checkpoint: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace checkpoint %s: %w", s.path, err)
	}
	return nil
}
