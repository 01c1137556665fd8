package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(n int) *int { return &n }

func TestParseView(t *testing.T) {
	assert.Equal(t, ViewDashboard, ParseView("dashboard"))
	assert.Equal(t, ViewQuiz, ParseView("quiz"))
	assert.Equal(t, ViewFlashcards, ParseView("flashcards"))
	assert.Equal(t, ViewUpload, ParseView("upload"))
	assert.Equal(t, ViewUpload, ParseView(""))
	assert.Equal(t, ViewUpload, ParseView("garbage"))
}

func TestQuestion_IsCorrect(t *testing.T) {
	q := Question{Text: "q", Options: []string{"a", "b", "c"}, CorrectAnswer: 2}

	assert.True(t, q.IsCorrect(intPtr(1)), "correct_answer is 1-based")
	assert.False(t, q.IsCorrect(intPtr(2)))
	assert.False(t, q.IsCorrect(nil), "unanswered is incorrect, never a panic")
}

func TestScore_RoundTrip(t *testing.T) {
	questions := []Question{
		{Text: "q1", Options: []string{"a", "b"}, CorrectAnswer: 2},
		{Text: "q2", Options: []string{"a", "b"}, CorrectAnswer: 1},
	}
	answers := []*int{intPtr(1), nil}

	assert.Equal(t, 50, Score(questions, answers))
}

func TestScore_Rounding(t *testing.T) {
	questions := []Question{
		{Text: "q1", Options: []string{"a", "b"}, CorrectAnswer: 1},
		{Text: "q2", Options: []string{"a", "b"}, CorrectAnswer: 1},
		{Text: "q3", Options: []string{"a", "b"}, CorrectAnswer: 1},
	}
	// 1/3 -> 33, 2/3 -> 67
	assert.Equal(t, 33, Score(questions, []*int{intPtr(0), nil, nil}))
	assert.Equal(t, 67, Score(questions, []*int{intPtr(0), intPtr(0), nil}))
	assert.Equal(t, 100, Score(questions, []*int{intPtr(0), intPtr(0), intPtr(0)}))
	assert.Equal(t, 0, Score(questions, []*int{nil, nil, nil}))
}

func TestScore_NoQuestions(t *testing.T) {
	assert.Equal(t, 0, Score(nil, nil))
}

func TestScore_ShortAnswerVector(t *testing.T) {
	questions := []Question{
		{Text: "q1", Options: []string{"a", "b"}, CorrectAnswer: 1},
		{Text: "q2", Options: []string{"a", "b"}, CorrectAnswer: 1},
	}
	// A truncated vector counts missing positions as incorrect.
	assert.Equal(t, 50, Score(questions, []*int{intPtr(0)}))
}

func TestStudyProgress_UnlockRule(t *testing.T) {
	p := NewStudyProgress()

	assert.True(t, p.Unlockable(1), "day 1 is always unlockable")
	assert.False(t, p.Unlockable(2))
	assert.False(t, p.Unlockable(0))
	assert.False(t, p.Unlockable(PlanDays+1))

	// Completion order does not matter for the derived rule.
	p.CompletedDays[3] = true
	assert.True(t, p.Unlockable(4))
	assert.False(t, p.Unlockable(3), "unlockable is about starting, not completed days")

	p.CompletedDays[1] = true
	assert.True(t, p.Unlockable(2))
}

func TestStudyProgress_DayStatus(t *testing.T) {
	p := NewStudyProgress()
	p.CompletedDays[3] = true

	assert.Equal(t, DayUpcoming, p.DayStatus(1))
	assert.Equal(t, DayLocked, p.DayStatus(2))
	assert.Equal(t, DayCompleted, p.DayStatus(3), "completed always wins over the unlock rule")
	assert.Equal(t, DayUpcoming, p.DayStatus(4))
	assert.Equal(t, DayLocked, p.DayStatus(5))
}

func TestStudyProgress_Prune(t *testing.T) {
	p := NewStudyProgress()
	p.CompletedDays[1] = true
	p.CompletedDays[99] = true
	p.Scores[1] = 80
	p.Scores[2] = 50
	p.Results[2] = QuizResult{Questions: []Question{{Text: "q", Options: []string{"a", "b"}, CorrectAnswer: 1}}}

	p.Prune()

	assert.Equal(t, map[int]bool{1: true}, p.CompletedDays)
	assert.Equal(t, map[int]int{1: 80}, p.Scores)
	assert.Empty(t, p.Results, "results for uncompleted days are dropped")
}

func TestStudyProgress_CompletedList(t *testing.T) {
	p := NewStudyProgress()
	p.CompletedDays[3] = true
	p.CompletedDays[1] = true
	p.CompletedDays[2] = true

	assert.Equal(t, []int{1, 2, 3}, p.CompletedList())
	assert.False(t, p.AllCompleted())

	for d := 1; d <= PlanDays; d++ {
		p.CompletedDays[d] = true
	}
	assert.True(t, p.AllCompleted())
}
