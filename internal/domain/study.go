package domain

import "math"

// PlanDays is the fixed length of a study plan.
const PlanDays = 7

// View identifies the single visible screen of the client.
type View string

const (
	ViewUpload     View = "upload"
	ViewDashboard  View = "dashboard"
	ViewQuiz       View = "quiz"
	ViewFlashcards View = "flashcards"
)

// ValidViews is the canonical set of accepted view strings.
var ValidViews = map[View]bool{
	ViewUpload: true, ViewDashboard: true, ViewQuiz: true, ViewFlashcards: true,
}

// ParseView maps a persisted string onto a View, falling back to
// ViewUpload for anything unrecognized.
func ParseView(s string) View {
	v := View(s)
	if ValidViews[v] {
		return v
	}
	return ViewUpload
}

// DayStatus describes how a plan day is presented on the dashboard.
type DayStatus string

const (
	DayCompleted DayStatus = "completed"
	DayUpcoming  DayStatus = "upcoming"
	DayLocked    DayStatus = "locked"
)

// Question is a single test question as served by the backend.
// CorrectAnswer is 1-based on the wire and is carried through unmodified;
// comparisons against a 0-based selection must subtract one.
type Question struct {
	Text          string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
}

// IsCorrect reports whether the given 0-based selection matches the
// question's correct option. A nil (unanswered) selection is incorrect.
func (q Question) IsCorrect(answer *int) bool {
	return answer != nil && *answer == q.CorrectAnswer-1
}

// QuizResult is a snapshot of a finished quiz: the questions as fetched
// and the learner's answer vector, sufficient to replay the quiz in
// review mode without refetching.
type QuizResult struct {
	Questions []Question `json:"questions"`
	Answers   []*int     `json:"answers"`
}

// Score computes the percentage score for an answer vector, rounded to
// the nearest integer. Unanswered questions count as incorrect.
func Score(questions []Question, answers []*int) int {
	if len(questions) == 0 {
		return 0
	}
	correct := 0
	for i, q := range questions {
		if i < len(answers) && q.IsCorrect(answers[i]) {
			correct++
		}
	}
	return int(math.Round(100 * float64(correct) / float64(len(questions))))
}

// FlashcardEntry is one flashcard as served by the backend.
type FlashcardEntry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}
