package views

import (
	"testing"
	"time"

	"github.com/dhwiwwx/tracker-api/models"
)

var noon = time.Date(2026, 8, 31, 12, 34, 56, 0, time.UTC)

func TestSummarize_StatusCountsAndCompletionRate(t *testing.T) {
	issues := []models.Issue{
		{Status: models.StatusTodo},
		{Status: models.StatusDone},
		{Status: models.StatusDone},
		{Status: ""}, // missing status counts as todo
	}

	s := Summarize(issues, noon)

	if s.StatusCounts[models.StatusTodo] != 2 ||
		s.StatusCounts[models.StatusInProgress] != 0 ||
		s.StatusCounts[models.StatusDone] != 2 {
		t.Errorf("status counts = %v, want todo:2 inProgress:0 done:2", s.StatusCounts)
	}
	if s.CompletionRate != 50 {
		t.Errorf("completion rate = %d, want 50", s.CompletionRate)
	}
}

func TestSummarize_EmptyCollection(t *testing.T) {
	s := Summarize(nil, noon)

	if s.CompletionRate != 0 {
		t.Errorf("completion rate = %d, want 0 for empty collection", s.CompletionRate)
	}
	if s.TotalIssues != 0 {
		t.Errorf("total = %d, want 0", s.TotalIssues)
	}
	if len(s.BurnDown) != BurnDownDays {
		t.Errorf("burn-down has %d days, want %d", len(s.BurnDown), BurnDownDays)
	}
	for _, p := range s.BurnDown {
		if p.Remaining != 0 || p.Due != 0 {
			t.Errorf("day %s: remaining=%d due=%d, want zeros", p.Date, p.Remaining, p.Due)
		}
	}
}

func TestSummarize_CompletionRateBounds(t *testing.T) {
	testCases := [][]models.Issue{
		{{Status: models.StatusDone}},
		{{Status: models.StatusTodo}},
		{{Status: models.StatusDone}, {Status: models.StatusTodo}, {Status: models.StatusDone}},
		{{Status: "junk"}, {Status: models.StatusDone}},
	}

	for i, issues := range testCases {
		s := Summarize(issues, noon)
		if s.CompletionRate < 0 || s.CompletionRate > 100 {
			t.Errorf("case %d: completion rate %d out of [0,100]", i, s.CompletionRate)
		}
	}
}

func TestSummarize_CompletionRateRounds(t *testing.T) {
	issues := []models.Issue{
		{Status: models.StatusDone},
		{Status: models.StatusTodo},
		{Status: models.StatusTodo},
	}
	// 100 / 3 rounds to 33
	if s := Summarize(issues, noon); s.CompletionRate != 33 {
		t.Errorf("completion rate = %d, want 33", s.CompletionRate)
	}

	issues = append(issues, models.Issue{Status: models.StatusDone})
	// 200 / 4 = 50
	if s := Summarize(issues, noon); s.CompletionRate != 50 {
		t.Errorf("completion rate = %d, want 50", s.CompletionRate)
	}
}

func TestSummarize_PriorityDistribution(t *testing.T) {
	issues := []models.Issue{
		{Priority: models.PriorityUrgent},
		{Priority: models.PriorityUrgent},
		{Priority: models.PriorityLow},
		{Priority: "whatever"},
		{Priority: ""},
	}

	s := Summarize(issues, noon)

	if s.PriorityDistribution[models.PriorityUrgent] != 2 {
		t.Errorf("urgent = %d, want 2", s.PriorityDistribution[models.PriorityUrgent])
	}
	if s.PriorityDistribution[models.PriorityLow] != 1 {
		t.Errorf("low = %d, want 1", s.PriorityDistribution[models.PriorityLow])
	}
	if s.PriorityDistribution[PriorityOther] != 2 {
		t.Errorf("other = %d, want 2", s.PriorityDistribution[PriorityOther])
	}
}

// An open issue due in two days stays in "remaining" through day 2 and
// shows up in "due" only on day 2.
func TestSummarize_BurnDownDeadlineInTwoDays(t *testing.T) {
	deadline := noon.AddDate(0, 0, 2).Format(models.DeadlineLayout)
	issues := []models.Issue{{Status: models.StatusTodo, Deadline: deadline}}

	s := Summarize(issues, noon)

	for i, p := range s.BurnDown {
		wantRemaining := 0
		if i <= 2 {
			wantRemaining = 1
		}
		if p.Remaining != wantRemaining {
			t.Errorf("day %d: remaining = %d, want %d", i, p.Remaining, wantRemaining)
		}
		wantDue := 0
		if i == 2 {
			wantDue = 1
		}
		if p.Due != wantDue {
			t.Errorf("day %d: due = %d, want %d", i, p.Due, wantDue)
		}
	}
}

func TestSummarize_BurnDownDoneIssuesStillDue(t *testing.T) {
	today := noon.Format(models.DeadlineLayout)
	issues := []models.Issue{{Status: models.StatusDone, Deadline: today}}

	s := Summarize(issues, noon)

	if s.BurnDown[0].Remaining != 0 {
		t.Errorf("done issue counted as remaining")
	}
	if s.BurnDown[0].Due != 1 {
		t.Errorf("done issue missing from due, got %d", s.BurnDown[0].Due)
	}
}

// Issues without a parsable deadline count as remaining on every
// projected day and never come due.
func TestSummarize_BurnDownUnparsableDeadline(t *testing.T) {
	issues := []models.Issue{
		{Status: models.StatusTodo, Deadline: "soonish"},
		{Status: models.StatusInProgress, Deadline: ""},
	}

	s := Summarize(issues, noon)

	for i, p := range s.BurnDown {
		if p.Remaining != 2 {
			t.Errorf("day %d: remaining = %d, want 2", i, p.Remaining)
		}
		if p.Due != 0 {
			t.Errorf("day %d: due = %d, want 0", i, p.Due)
		}
	}
}
