package domain

import "sort"

// StudyProgress carries the learner's state across all views: the
// uploaded document, which plan days are done, and per-day scores and
// replayable results.
//
// Invariant: a day present in Scores or Results is present in
// CompletedDays, and CompletedDays only holds days in [1, PlanDays].
type StudyProgress struct {
	DocumentName  string
	StudyEnded    bool
	CompletedDays map[int]bool
	Scores        map[int]int
	Results       map[int]QuizResult
}

// NewStudyProgress returns an empty progress record.
func NewStudyProgress() *StudyProgress {
	return &StudyProgress{
		CompletedDays: make(map[int]bool),
		Scores:        make(map[int]int),
		Results:       make(map[int]QuizResult),
	}
}

// Completed reports whether the given day has been finished.
func (p *StudyProgress) Completed(day int) bool {
	return p.CompletedDays[day]
}

// CompletedCount returns the number of completed days.
func (p *StudyProgress) CompletedCount() int {
	return len(p.CompletedDays)
}

// AllCompleted reports whether every day of the plan is done.
func (p *StudyProgress) AllCompleted() bool {
	return len(p.CompletedDays) >= PlanDays
}

// Unlockable reports whether the given day may be started. Day 1 is
// always unlockable; day n requires day n-1 to be completed. The rule
// is derived, never stored.
func (p *StudyProgress) Unlockable(day int) bool {
	if day < 1 || day > PlanDays {
		return false
	}
	return day == 1 || p.CompletedDays[day-1]
}

// DayStatus returns the dashboard presentation for a day. A completed
// day is always shown as completed regardless of the unlock rule.
func (p *StudyProgress) DayStatus(day int) DayStatus {
	switch {
	case p.CompletedDays[day]:
		return DayCompleted
	case p.Unlockable(day):
		return DayUpcoming
	default:
		return DayLocked
	}
}

// CompletedList returns the completed days in ascending order.
func (p *StudyProgress) CompletedList() []int {
	days := make([]int, 0, len(p.CompletedDays))
	for d := range p.CompletedDays {
		days = append(days, d)
	}
	sort.Ints(days)
	return days
}

// Prune drops out-of-range completed days and any score or result for
// a day not in CompletedDays. It restores the invariant after loading
// torn or corrupt persisted state.
func (p *StudyProgress) Prune() {
	for d := range p.CompletedDays {
		if d < 1 || d > PlanDays {
			delete(p.CompletedDays, d)
		}
	}
	for d := range p.Scores {
		if !p.CompletedDays[d] {
			delete(p.Scores, d)
		}
	}
	for d := range p.Results {
		if !p.CompletedDays[d] {
			delete(p.Results, d)
		}
	}
}
