// Package schedule decides when the pipeline may run and drives it on
// a polling loop.
package schedule

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"
)

const dayKeyFormat = "2006-01-02"

// State is what the scheduler persists between attempts: enough to
// enforce the daily cap, the minimum gap, and the post-failure delay
// across restarts.
type State struct {
	LastRun     time.Time      `json:"last_run"`
	LastFailure time.Time      `json:"last_failure"`
	DailyCounts map[string]int `json:"daily_counts"`
	LastCleanup time.Time      `json:"last_cleanup"`
}

// CountFor returns how many videos were created on now's local date.
func (s *State) CountFor(now time.Time) int {
	return s.DailyCounts[now.Format(dayKeyFormat)]
}

// RecordRun notes a successful run and bumps the day's counter.
func (s *State) RecordRun(now time.Time) {
	if s.DailyCounts == nil {
		s.DailyCounts = make(map[string]int)
	}
	s.LastRun = now
	s.DailyCounts[now.Format(dayKeyFormat)]++
	s.prune(now)
}

// RecordFailure notes a failed attempt.
func (s *State) RecordFailure(now time.Time) {
	s.LastFailure = now
}

// prune drops daily counters older than a week.
func (s *State) prune(now time.Time) {
	cutoff := now.AddDate(0, 0, -7).Format(dayKeyFormat)
	for day := range s.DailyCounts {
		if day < cutoff {
			delete(s.DailyCounts, day)
		}
	}
}

// LoadState reads persisted scheduler state. A missing file yields a
// zero state.
func LoadState(path string) (State, error) {
	var state State
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return state, nil
	}
	if err != nil {
		return state, fmt.Errorf("read scheduler state: %w", err)
	}
	if err := json.Unmarshal(data, &state); err != nil {
		return State{}, fmt.Errorf("parse scheduler state: %w", err)
	}
	return state, nil
}

// Save writes the state atomically.
func (s State) Save(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal scheduler state: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write scheduler state: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace scheduler state: %w", err)
	}
	return nil
}
