package session

import (
	"context"

	"github.com/alexanderramin/studymaster/internal/domain"
)

// QuestionFetcher fetches one day's question set from the backend.
// *api.Client satisfies it.
type QuestionFetcher interface {
	FetchTest(ctx context.Context, day int) ([]domain.Question, error)
}

// Quiz drives a single day's test: the question position, the
// in-progress answer vector, and the uncommitted selection for the
// current question. In review mode the quiz replays a stored result
// read-only.
//
// Everything after construction is a pure in-memory transformation;
// fetching happens once, in StartQuiz.
type Quiz struct {
	day       int
	review    bool
	questions []domain.Question
	answers   []*int

	pos      int
	selected *int
}

// StartQuiz fetches the question set for a day and returns a fresh
// quiz. A fetch failure is the only hard failure path; the caller must
// navigate back to the dashboard and surface it.
func StartQuiz(ctx context.Context, fetcher QuestionFetcher, day int) (*Quiz, error) {
	questions, err := fetcher.FetchTest(ctx, day)
	if err != nil {
		return nil, err
	}
	return &Quiz{
		day:       day,
		questions: questions,
		answers:   make([]*int, len(questions)),
	}, nil
}

// ReviewQuiz replays a previously completed day from its stored
// snapshot: no fetch, answers fixed, mutation disabled.
func ReviewQuiz(day int, result domain.QuizResult) *Quiz {
	q := &Quiz{
		day:       day,
		review:    true,
		questions: result.Questions,
		answers:   make([]*int, len(result.Questions)),
	}
	copy(q.answers, result.Answers)
	if len(q.answers) > 0 {
		q.selected = q.answers[0]
	}
	return q
}

func (q *Quiz) Day() int       { return q.day }
func (q *Quiz) Review() bool   { return q.review }
func (q *Quiz) Len() int       { return len(q.questions) }
func (q *Quiz) Pos() int       { return q.pos }
func (q *Quiz) Selected() *int { return q.selected }

// Question returns the current question.
func (q *Quiz) Question() domain.Question {
	return q.questions[q.pos]
}

// Select records or clears the selection for the current question only.
// It does not advance, and is a no-op in review mode.
func (q *Quiz) Select(option *int) {
	if q.review {
		return
	}
	q.selected = option
}

// Advance commits the current selection into the answer vector and
// moves to the next question, restoring any answer previously recorded
// there. On the last question it computes the final score instead and
// reports completion.
func (q *Quiz) Advance() (done bool, score int) {
	q.commit()
	if q.pos >= len(q.questions)-1 {
		return true, domain.Score(q.questions, q.answers)
	}
	q.pos++
	q.selected = q.answers[q.pos]
	return false, 0
}

// Retreat commits the current selection and moves back one question.
// It is a no-op on the first question.
func (q *Quiz) Retreat() {
	if q.pos == 0 {
		return
	}
	q.commit()
	q.pos--
	q.selected = q.answers[q.pos]
}

// CorrectHere reports whether the committed answer for the current
// question is correct. Only meaningful in review mode, where the answer
// vector is the stored one.
func (q *Quiz) CorrectHere() bool {
	return q.Question().IsCorrect(q.answers[q.pos])
}

// Result snapshots the quiz for durable storage.
func (q *Quiz) Result() domain.QuizResult {
	answers := make([]*int, len(q.answers))
	copy(answers, q.answers)
	return domain.QuizResult{Questions: q.questions, Answers: answers}
}

func (q *Quiz) commit() {
	if q.review {
		return
	}
	q.answers[q.pos] = q.selected
}
