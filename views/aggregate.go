package views

import (
	"math"
	"time"

	"github.com/dhwiwwx/tracker-api/models"
)

// BurnDownDays is the length of the forward-looking projection.
const BurnDownDays = 7

// PriorityOther buckets unrecognized priority values in the
// distribution.
const PriorityOther = "other"

type DayPoint struct {
	Date      string `json:"date"`
	Remaining int    `json:"remaining"`
	Due       int    `json:"due"`
}

type Summary struct {
	TotalIssues          int            `json:"totalIssues"`
	StatusCounts         map[string]int `json:"statusCounts"`
	PriorityDistribution map[string]int `json:"priorityDistribution"`
	CompletionRate       int            `json:"completionRate"`
	BurnDown             []DayPoint     `json:"burnDown"`
}

// Summarize computes the dashboard metrics for a project's issues.
//
// The burn-down is a snapshot projection, not a historical trend: for
// each of the next BurnDownDays calendar days starting at now,
// "remaining" counts non-done issues whose deadline is absent or on or
// after that day, and "due" counts issues (any status) whose deadline
// falls exactly on that day. Deadlines that fail to parse are treated
// as absent. All date math is at day granularity.
func Summarize(issues []models.Issue, now time.Time) Summary {
	s := Summary{
		TotalIssues: len(issues),
		StatusCounts: map[string]int{
			models.StatusTodo:       0,
			models.StatusInProgress: 0,
			models.StatusDone:       0,
		},
		PriorityDistribution: map[string]int{},
	}

	for _, issue := range issues {
		s.StatusCounts[models.NormalizeStatus(issue.Status)]++

		p := issue.Priority
		if models.PriorityRank(p) == 0 {
			p = PriorityOther
		}
		s.PriorityDistribution[p]++
	}

	if s.TotalIssues > 0 {
		done := s.StatusCounts[models.StatusDone]
		s.CompletionRate = int(math.Round(100 * float64(done) / float64(s.TotalIssues)))
	}

	today := truncateToDay(now)
	s.BurnDown = make([]DayPoint, 0, BurnDownDays)
	for i := 0; i < BurnDownDays; i++ {
		day := today.AddDate(0, 0, i)
		point := DayPoint{Date: day.Format(models.DeadlineLayout)}
		for _, issue := range issues {
			deadline, ok := parseDeadline(issue.Deadline, now.Location())
			if models.NormalizeStatus(issue.Status) != models.StatusDone {
				if !ok || !deadline.Before(day) {
					point.Remaining++
				}
			}
			if ok && deadline.Equal(day) {
				point.Due++
			}
		}
		s.BurnDown = append(s.BurnDown, point)
	}
	return s
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func parseDeadline(s string, loc *time.Location) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(models.DeadlineLayout, s, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
