package services

import (
	"context"
	"math"
	"time"

	"github.com/AnshRaj112/jurnal-backend/internal/i18n"
	"github.com/AnshRaj112/jurnal-backend/internal/models"
	"github.com/AnshRaj112/jurnal-backend/internal/observability"
	"github.com/AnshRaj112/jurnal-backend/internal/store"
)

const (
	// OverviewEntryLimit is how many recent entries the dashboard looks at.
	OverviewEntryLimit = 30
	// TrendWindowDays is the length of the daily mood chart.
	TrendWindowDays = 14
)

// MoodTotal is one row of the per-mood breakdown.
type MoodTotal struct {
	Mood  models.Mood `json:"mood"`
	Label string      `json:"label"`
	Color string      `json:"color"`
	Count int         `json:"count"`
}

// DayMoods is one column of the daily mood chart.
type DayMoods struct {
	Date   string            `json:"date"`
	Counts models.MoodCounts `json:"counts"`
}

// MoodTrend backs the journal page's mood tracker.
type MoodTrend struct {
	TotalEntries  int         `json:"total_entries"`
	Totals        []MoodTotal `json:"totals"`
	DominantMood  models.Mood `json:"dominant_mood,omitempty"`
	DominantLabel string      `json:"dominant_label"`
	Days          []DayMoods  `json:"days"`
}

// Overview backs the landing dashboard.
type Overview struct {
	TotalEntries     int         `json:"total_entries"`
	SummarizedCount  int         `json:"summarized_count"`
	ProgressRate     int         `json:"progress_rate"`
	Totals           []MoodTotal `json:"totals"`
	TopMood          models.Mood `json:"top_mood,omitempty"`
	TopMoodLabel     string      `json:"top_mood_label"`
	LatestSuggestion string      `json:"latest_suggestion,omitempty"`
}

// CountMoods tallies entries per mood. Entries with no mood or an unknown one are skipped.
func CountMoods(entries []models.JournalEntry) models.MoodCounts {
	counts := models.NewMoodCounts()
	for _, e := range entries {
		counts.Add(e.Mood)
	}
	return counts
}

// DominantMood returns the most frequent mood; ties go to the mood listed first.
// ok is false when every count is zero.
func DominantMood(counts models.MoodCounts) (mood models.Mood, ok bool) {
	best := 0
	for _, m := range models.Moods() {
		if counts[m] > best {
			mood, best = m, counts[m]
		}
	}
	return mood, best > 0
}

func dayStart(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// DailyMoodMatrix buckets entries by calendar day in loc. The chart runs from the
// later of (oldest entry's day, today minus 13 days) through today, and every day
// carries a zero-filled count for all six moods.
func DailyMoodMatrix(entries []models.JournalEntry, today time.Time, loc *time.Location) []DayMoods {
	if loc == nil {
		loc = time.UTC
	}
	end := dayStart(today, loc)
	start := end.AddDate(0, 0, -(TrendWindowDays - 1))

	if len(entries) > 0 {
		oldest := entries[0].CreatedAt
		for _, e := range entries[1:] {
			if e.CreatedAt.Before(oldest) {
				oldest = e.CreatedAt
			}
		}
		if o := dayStart(oldest, loc); o.After(start) {
			start = o
		}
	} else {
		start = end
	}
	if start.After(end) {
		start = end
	}

	var days []DayMoods
	index := make(map[string]int)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := d.Format(DateLayout)
		index[key] = len(days)
		days = append(days, DayMoods{Date: key, Counts: models.NewMoodCounts()})
	}

	for _, e := range entries {
		i, ok := index[e.CreatedAt.In(loc).Format(DateLayout)]
		if !ok {
			continue
		}
		days[i].Counts.Add(e.Mood)
	}
	return days
}

func moodTotals(counts models.MoodCounts, t i18n.Translator) []MoodTotal {
	out := make([]MoodTotal, 0, len(counts))
	for _, o := range models.MoodOptions() {
		out = append(out, MoodTotal{
			Mood:  o.Value,
			Label: t.T(o.Value.LabelKey()),
			Color: o.Color,
			Count: counts[o.Value],
		})
	}
	return out
}

func dominantLabel(counts models.MoodCounts, t i18n.Translator) (models.Mood, string) {
	m, ok := DominantMood(counts)
	if !ok {
		return "", t.T("common.noData")
	}
	return m, t.T(m.LabelKey())
}

// ProgressRate is the share of entries with a summary, as a rounded percentage.
func ProgressRate(summarized, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(summarized) / float64(total) * 100))
}

type insightStore interface {
	store.EntryStore
	store.RecapStore
}

// InsightService computes read-only mood statistics.
type InsightService struct {
	store    insightStore
	location *time.Location
	now      func() time.Time
}

func NewInsightService(st insightStore, loc *time.Location) *InsightService {
	if loc == nil {
		loc = time.UTC
	}
	return &InsightService{store: st, location: loc, now: time.Now}
}

func plainEntries(rows []models.EntryWithSummary) []models.JournalEntry {
	out := make([]models.JournalEntry, len(rows))
	for i, r := range rows {
		out[i] = r.JournalEntry
	}
	return out
}

// MoodTrend computes totals over every entry plus the daily chart.
func (s *InsightService) MoodTrend(ctx context.Context, userID string, locale i18n.Locale) (*MoodTrend, error) {
	t := i18n.For(locale)
	if userID == "" {
		return nil, newError(KindUnauthorized, "", t.T("auth.required"), nil)
	}

	rows, err := s.store.ListEntries(ctx, userID, 0, 0)
	if err != nil {
		observability.LoggerFromContext(ctx).Error("failed to load entries for mood trend", "error", err)
		return nil, newError(KindPersistence, OpFetch, t.T("insights.failure"), err)
	}
	entries := plainEntries(rows)
	counts := CountMoods(entries)
	dominant, label := dominantLabel(counts, t)

	return &MoodTrend{
		TotalEntries:  len(entries),
		Totals:        moodTotals(counts, t),
		DominantMood:  dominant,
		DominantLabel: label,
		Days:          DailyMoodMatrix(entries, s.now(), s.location),
	}, nil
}

// Overview summarises the most recent entries for the dashboard.
func (s *InsightService) Overview(ctx context.Context, userID string, locale i18n.Locale) (*Overview, error) {
	t := i18n.For(locale)
	log := observability.LoggerFromContext(ctx)
	if userID == "" {
		return nil, newError(KindUnauthorized, "", t.T("auth.required"), nil)
	}

	rows, err := s.store.ListEntries(ctx, userID, OverviewEntryLimit, 0)
	if err != nil {
		log.Error("failed to load entries for overview", "error", err)
		return nil, newError(KindPersistence, OpFetch, t.T("insights.failure"), err)
	}

	summarized := 0
	latestEntrySuggestion := ""
	for _, r := range rows {
		if r.Summary == nil {
			continue
		}
		summarized++
		if latestEntrySuggestion == "" && r.Summary.Suggestion != "" {
			latestEntrySuggestion = r.Summary.Suggestion
		}
	}

	recaps, err := s.store.ListWeeklyRecaps(ctx, userID, 1)
	if err != nil {
		log.Error("failed to load latest weekly recap", "error", err)
		return nil, newError(KindPersistence, OpFetch, t.T("insights.failure"), err)
	}

	latest := latestEntrySuggestion
	if len(recaps) > 0 {
		if recaps[0].Suggestion != "" {
			latest = recaps[0].Suggestion
		} else if recaps[0].Summary != "" {
			latest = recaps[0].Summary
		}
	}

	counts := CountMoods(plainEntries(rows))
	top, label := dominantLabel(counts, t)

	return &Overview{
		TotalEntries:     len(rows),
		SummarizedCount:  summarized,
		ProgressRate:     ProgressRate(summarized, len(rows)),
		Totals:           moodTotals(counts, t),
		TopMood:          top,
		TopMoodLabel:     label,
		LatestSuggestion: latest,
	}, nil
}
