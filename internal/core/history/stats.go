package history

import (
	"strconv"
	"strings"
	"time"

	"github.com/neilberkman/rinselog/internal/core/models"
)

// Stats summarizes the saved logs
type Stats struct {
	TotalLogs       int
	TotalRounds     int
	AvgRounds       float64
	AvgTotalTimeMin float64
	TimedLogs       int
	OldestSave      time.Time
	NewestSave      time.Time
	OverallFeels    map[models.OverallFeel]int
	RoundTypes      map[models.RoundType]int
}

// Stats computes totals over the current collection.
func (s *Store) Stats() *Stats {
	return Summarize(s.Entries())
}

// Summarize computes totals over entries. Unparsable or blank total times
// are left out of the average.
func Summarize(entries []models.HistoryEntry) *Stats {
	stats := &Stats{
		OverallFeels: map[models.OverallFeel]int{},
		RoundTypes:   map[models.RoundType]int{},
	}

	var totalTime float64
	for _, e := range entries {
		stats.TotalLogs++
		stats.TotalRounds += len(e.Data.Rounds)

		at := e.SavedAt()
		if stats.OldestSave.IsZero() || at.Before(stats.OldestSave) {
			stats.OldestSave = at
		}
		if at.After(stats.NewestSave) {
			stats.NewestSave = at
		}

		if e.Data.OverallFeel != models.OverallUnset {
			stats.OverallFeels[e.Data.OverallFeel]++
		}
		for _, r := range e.Data.Rounds {
			stats.RoundTypes[r.Type]++
		}

		if v := strings.TrimSpace(e.Data.TotalTimeMin); v != "" {
			if minutes, err := strconv.ParseFloat(v, 64); err == nil {
				totalTime += minutes
				stats.TimedLogs++
			}
		}
	}

	if stats.TotalLogs > 0 {
		stats.AvgRounds = float64(stats.TotalRounds) / float64(stats.TotalLogs)
	}
	if stats.TimedLogs > 0 {
		stats.AvgTotalTimeMin = totalTime / float64(stats.TimedLogs)
	}
	return stats
}
