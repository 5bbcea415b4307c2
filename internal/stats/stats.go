// Package stats computes mood statistics from journal snapshots.
//
// Every function is pure: callers pass the collections they fetched and get
// fresh results back, nothing is cached between calls.
package stats

import (
	"time"

	"github.com/priscillasauvan-boop/Mon-journal-de-stage/internal/model"
	"github.com/priscillasauvan-boop/Mon-journal-de-stage/pkg/calendar"
)

// MoodStat count and rounded share of one mood
type MoodStat struct {
	Mood       model.Mood
	Count      int
	Percentage int
}

// Breakdown per-mood statistics, always in model.Moods order
type Breakdown struct {
	Moods []MoodStat
	Total int
}

// Count returns the count recorded for m
func (b Breakdown) Count(m model.Mood) int {
	for _, s := range b.Moods {
		if s.Mood == m {
			return s.Count
		}
	}
	return 0
}

// Percentage returns the rounded share recorded for m
func (b Breakdown) Percentage(m model.Mood) int {
	for _, s := range b.Moods {
		if s.Mood == m {
			return s.Percentage
		}
	}
	return 0
}

// StageStats statistics of one placement
type StageStats struct {
	Stage      model.Stage
	Breakdown  Breakdown
	TotalDays  int // |end - start| in days
	LoggedDays int // distinct dates with at least one entry
}

// Percent rounds count/total*100 half up; a zero total yields 0
func Percent(count, total int) int {
	if total <= 0 || count <= 0 {
		return 0
	}
	// (count*100)/total + 0.5, kept in integers
	return (count*200 + total) / (2 * total)
}

// Aggregate counts entries per mood. Entries carrying an unknown mood are
// left out of every count.
func Aggregate(entries []model.Note) Breakdown {
	counts := make(map[model.Mood]int, len(model.Moods))
	total := 0
	for i := range entries {
		m := entries[i].Mood
		if !m.Valid() {
			continue
		}
		counts[m]++
		total++
	}

	b := Breakdown{Moods: make([]MoodStat, 0, len(model.Moods)), Total: total}
	for _, m := range model.Moods {
		b.Moods = append(b.Moods, MoodStat{
			Mood:       m,
			Count:      counts[m],
			Percentage: Percent(counts[m], total),
		})
	}
	return b
}

// EntriesForStage filters entries down to one placement, keeping order
func EntriesForStage(entries []model.Note, stageID uint) []model.Note {
	var out []model.Note
	for i := range entries {
		if entries[i].StageID == stageID {
			out = append(out, entries[i])
		}
	}
	return out
}

// ForStage computes the statistics of stage from the full entry collection
func ForStage(stage model.Stage, entries []model.Note) StageStats {
	own := EntriesForStage(entries, stage.StageID)

	days := make(map[time.Time]struct{}, len(own))
	for i := range own {
		days[calendar.Day(own[i].Date)] = struct{}{}
	}

	return StageStats{
		Stage:      stage,
		Breakdown:  Aggregate(own),
		TotalDays:  calendar.SpanDays(stage.StartDate, stage.EndDate),
		LoggedDays: len(days),
	}
}

// Overview global breakdown plus one StageStats per placement that has
// at least one entry, in placement collection order
type Overview struct {
	Global Breakdown
	Stages []StageStats
}

// Summarize builds the Overview of a snapshot
func Summarize(stages []model.Stage, entries []model.Note) Overview {
	ov := Overview{Global: Aggregate(entries)}
	for i := range stages {
		st := ForStage(stages[i], entries)
		if st.Breakdown.Total == 0 {
			continue
		}
		ov.Stages = append(ov.Stages, st)
	}
	return ov
}

// FindStageForDate returns the first placement, in collection order, whose
// [start, end] window contains day. Overlapping placements are not ranked.
func FindStageForDate(day time.Time, stages []model.Stage) (*model.Stage, bool) {
	for i := range stages {
		if calendar.Contains(stages[i].StartDate, stages[i].EndDate, day) {
			return &stages[i], true
		}
	}
	return nil, false
}
