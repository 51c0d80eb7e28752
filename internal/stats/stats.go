// Package stats computes the student dashboard aggregate from a store
// snapshot.
package stats

import (
	"context"
	"math"
	"sort"
	"time"

	"personalearn/internal/model"
	"personalearn/internal/store"
)

// weeklyGoal is the number of study activities that counts as 100% of
// the weekly goal.
const weeklyGoal = 10

// weekdayNames is the histogram label order, Monday first.
var weekdayNames = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// WeekdayActivity is one bucket of the Mon..Sun activity histogram.
type WeekdayActivity struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// StudentStats is the dashboard aggregate.
type StudentStats struct {
	// Streak counts distinct calendar days with any saved activity,
	// over all time. The name is kept for the dashboard card even
	// though it is not a consecutive-day streak.
	Streak            int               `json:"streak"`
	WeeklyGoalPercent int               `json:"weeklyGoalPercent"`
	MaterialsCount    int               `json:"materialsCount"`
	ActivityByWeekday []WeekdayActivity `json:"activityByWeekday"`
	UpcomingExams     []model.Exam      `json:"upcomingExams"`
}

// Aggregator reads a snapshot from the store and reduces it.
type Aggregator struct {
	store *store.Store
}

// New creates an aggregator over the given store.
func New(s *store.Store) *Aggregator {
	return &Aggregator{store: s}
}

// StudentStats loads the student snapshot and computes the dashboard
// aggregate as of now.
func (a *Aggregator) StudentStats(ctx context.Context, now time.Time) (StudentStats, error) {
	history, err := a.store.History(model.PersonaStudent)
	if err != nil {
		return StudentStats{}, err
	}
	materialCount, err := a.store.MaterialCount(ctx)
	if err != nil {
		return StudentStats{}, err
	}
	exams, err := a.store.Exams()
	if err != nil {
		return StudentStats{}, err
	}
	return Compute(now, history, materialCount, exams), nil
}

// Compute reduces a snapshot to the dashboard aggregate. It is pure:
// the same snapshot and clock always give the same stats.
func Compute(now time.Time, history []model.HistoryItem, materialCount int, exams []model.Exam) StudentStats {
	weekAgo := now.Add(-7 * 24 * time.Hour)

	activity := make([]WeekdayActivity, len(weekdayNames))
	for i, name := range weekdayNames {
		activity[i] = WeekdayActivity{Name: name}
	}
	recent := 0
	for _, item := range history {
		if item.CreatedAt.After(weekAgo) && !item.CreatedAt.After(now) {
			recent++
			activity[mondayIndex(item.CreatedAt.Local().Weekday())].Value++
		}
	}

	percent := int(math.Round(float64(recent) / weeklyGoal * 100))
	if percent > 100 {
		percent = 100
	}

	return StudentStats{
		Streak:            distinctActiveDayCount(history),
		WeeklyGoalPercent: percent,
		MaterialsCount:    materialCount,
		ActivityByWeekday: activity,
		UpcomingExams:     upcomingExams(now, exams),
	}
}

// distinctActiveDayCount counts local calendar days that have at least
// one history entry, over all time.
func distinctActiveDayCount(history []model.HistoryItem) int {
	days := make(map[string]struct{}, len(history))
	for _, item := range history {
		days[item.CreatedAt.Local().Format(time.DateOnly)] = struct{}{}
	}
	return len(days)
}

// mondayIndex maps time.Weekday (Sunday-first) onto a Monday-first
// histogram index.
func mondayIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}

// upcomingExams returns exams dated now or later, soonest first,
// capped at three.
func upcomingExams(now time.Time, exams []model.Exam) []model.Exam {
	upcoming := []model.Exam{}
	for _, e := range exams {
		if !e.Date.Before(now) {
			upcoming = append(upcoming, e)
		}
	}
	sort.Slice(upcoming, func(i, j int) bool {
		return upcoming[i].Date.Before(upcoming[j].Date)
	})
	if len(upcoming) > 3 {
		upcoming = upcoming[:3]
	}
	return upcoming
}
