// Package model defines shared data structures.
package model

import "time"

// Config defines practice settings.
type Config struct {
	Set        string
	Level      string
	Flash      time.Duration
	Hints      bool
	FocusWeak  bool
	WeakTop    int
	WeakFactor float64
	WeakWindow int
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Set    string
	Since  *time.Time
	Last   int
	Window int
	Top    int
}

// AttemptStats captures one scored dictation attempt.
type AttemptStats struct {
	RunID          string
	StartedAt      time.Time
	EndedAt        time.Time
	Set            string
	ItemID         int
	Reference      string
	Candidate      string
	Score          int
	MaxScore       int
	IncorrectCount int
	Substitutions  int
	Insertions     int
	Deletions      int
	DurationMs     int64
}

// WordStats stores how one reference word fared in an attempt.
type WordStats struct {
	Word    string
	Correct int
	Missed  int
}

// WordAggregate aggregates word stats across attempts.
type WordAggregate struct {
	Word    string
	Correct int
	Missed  int
}

// AttemptAggregate summarizes an attempt for reporting.
type AttemptAggregate struct {
	AttemptID      int64
	RunID          string
	EndedAt        time.Time
	Score          int
	MaxScore       int
	IncorrectCount int
	Substitutions  int
	Insertions     int
	Deletions      int
	DurationMs     int64
}
