package session

import (
	"testing"

	"github.com/alexanderramin/studymaster/internal/domain"
	"github.com/alexanderramin/studymaster/internal/store"
	"github.com/alexanderramin/studymaster/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() domain.QuizResult {
	b := 1
	return domain.QuizResult{
		Questions: []domain.Question{
			{Text: "q1", Options: []string{"a", "b"}, CorrectAnswer: 2},
			{Text: "q2", Options: []string{"a", "b"}, CorrectAnswer: 1},
		},
		Answers: []*int{&b, nil},
	}
}

func TestEngine_FreshSessionClearsLeftovers(t *testing.T) {
	durable := testutil.NewTestStore(t)
	// A previous run left a study behind.
	require.NoError(t, durable.Set(store.KeyView, "dashboard"))
	require.NoError(t, durable.Set(store.KeyDocumentName, "old.pdf"))
	require.NoError(t, durable.Set(store.KeyCompletedDays, "[1,2]"))
	require.NoError(t, durable.Set(store.KeyAPIBase, "http://cached.example"))

	e := NewEngine(durable, store.NewMemoryScope())
	resumed := e.Restore()

	assert.False(t, resumed, "no session marker means a fresh run")
	assert.Equal(t, domain.ViewUpload, e.View())
	assert.Empty(t, e.Progress().CompletedDays)
	assert.Empty(t, e.Progress().DocumentName)

	for _, key := range store.StudyKeys {
		_, ok := durable.Get(key)
		assert.False(t, ok, "durable key %q must be cleared on a fresh session", key)
	}
	_, ok := durable.Get(store.KeyAPIBase)
	assert.True(t, ok, "the resolved endpoint survives a fresh session")
}

func TestEngine_ReloadRestoresState(t *testing.T) {
	durable := testutil.NewTestStore(t)
	sessionScope := store.NewMemoryScope()

	e1 := NewEngine(durable, sessionScope)
	assert.False(t, e1.Restore())

	e1.SetDocumentName("biology.pdf")
	e1.SetView(domain.ViewDashboard)
	e1.CompleteDay(1, 50, sampleResult())

	// Same process, fresh engine: the session marker is still set, so
	// this is a reload, not a new session.
	e2 := NewEngine(durable, sessionScope)
	resumed := e2.Restore()

	assert.True(t, resumed)
	assert.Equal(t, domain.ViewDashboard, e2.View())
	assert.Equal(t, "biology.pdf", e2.Progress().DocumentName)
	assert.True(t, e2.Progress().Completed(1))
	assert.Equal(t, 50, e2.Progress().Scores[1])

	result, ok := e2.Progress().Results[1]
	require.True(t, ok, "the replayable result survives the reload")
	require.Len(t, result.Questions, 2)
	require.Len(t, result.Answers, 2)
	require.NotNil(t, result.Answers[0])
	assert.Equal(t, 1, *result.Answers[0])
	assert.Nil(t, result.Answers[1])
}

func TestEngine_ReloadRestoresQuizView(t *testing.T) {
	durable := testutil.NewTestStore(t)
	sessionScope := store.NewMemoryScope()
	require.NoError(t, sessionScope.Set(store.KeySessionID, "existing"))

	require.NoError(t, durable.Set(store.KeyView, "quiz"))
	require.NoError(t, durable.Set(store.KeyCompletedDays, "[1]"))

	e := NewEngine(durable, sessionScope)
	resumed := e.Restore()

	assert.True(t, resumed)
	assert.Equal(t, domain.ViewQuiz, e.View(), "the engine restores the persisted view verbatim")
	assert.True(t, e.Progress().Completed(1))
}

func TestEngine_NewProcessStartsOver(t *testing.T) {
	durable := testutil.NewTestStore(t)

	e1 := NewEngine(durable, store.NewMemoryScope())
	e1.Restore()
	e1.SetDocumentName("biology.pdf")
	e1.SetView(domain.ViewDashboard)
	e1.CompleteDay(1, 100, sampleResult())

	// A new process gets a new session scope, so the marker is gone.
	e2 := NewEngine(durable, store.NewMemoryScope())
	resumed := e2.Restore()

	assert.False(t, resumed)
	assert.Equal(t, domain.ViewUpload, e2.View())
	assert.Empty(t, e2.Progress().CompletedDays)
}

func TestEngine_CompleteDayUnlocksNext(t *testing.T) {
	e := NewEngine(testutil.NewTestStore(t), store.NewMemoryScope())
	e.Restore()

	assert.False(t, e.Progress().Unlockable(2))
	e.CompleteDay(1, 80, sampleResult())
	assert.True(t, e.Progress().Unlockable(2))
	assert.Equal(t, domain.DayCompleted, e.Progress().DayStatus(1))
}

func TestEngine_EndStudyRequiresAllDays(t *testing.T) {
	durable := testutil.NewTestStore(t)
	e := NewEngine(durable, store.NewMemoryScope())
	e.Restore()

	e.CompleteDay(1, 80, sampleResult())
	e.EndStudy()
	assert.False(t, e.Progress().StudyEnded, "end-study is a no-op before all days are done")

	for d := 2; d <= domain.PlanDays; d++ {
		e.CompleteDay(d, 80, sampleResult())
	}
	e.EndStudy()
	assert.True(t, e.Progress().StudyEnded)

	v, ok := durable.Get(store.KeyStudyEnded)
	assert.True(t, ok)
	assert.Equal(t, "true", v)
}

func TestEngine_DeleteStudy(t *testing.T) {
	durable := testutil.NewTestStore(t)
	sessionScope := store.NewMemoryScope()
	require.NoError(t, durable.Set(store.KeyAPIBase, "http://cached.example"))

	e := NewEngine(durable, sessionScope)
	e.Restore()
	e.SetDocumentName("biology.pdf")
	e.SetView(domain.ViewDashboard)
	e.CompleteDay(1, 80, sampleResult())

	e.DeleteStudy()

	assert.Equal(t, domain.ViewUpload, e.View())
	assert.Empty(t, e.Progress().CompletedDays)
	assert.Empty(t, e.Progress().DocumentName)

	for _, key := range store.StudyKeys {
		if key == store.KeyView {
			continue
		}
		_, ok := durable.Get(key)
		assert.False(t, ok, "durable key %q must be gone after delete", key)
	}
	_, ok := durable.Get(store.KeyAPIBase)
	assert.False(t, ok, "delete also forgets the resolved endpoint")

	v, _ := durable.Get(store.KeyView)
	assert.Equal(t, "upload", v)
}

func TestEngine_RestoreDefaultsOnCorruptValues(t *testing.T) {
	durable := testutil.NewTestStore(t)
	sessionScope := store.NewMemoryScope()
	require.NoError(t, sessionScope.Set(store.KeySessionID, "existing"))

	require.NoError(t, durable.Set(store.KeyView, "not-a-view"))
	require.NoError(t, durable.Set(store.KeyCompletedDays, "{broken"))
	require.NoError(t, durable.Set(store.KeyScores, "also broken"))
	require.NoError(t, durable.Set(store.KeyStudyEnded, "maybe"))

	e := NewEngine(durable, sessionScope)
	resumed := e.Restore()

	assert.True(t, resumed)
	assert.Equal(t, domain.ViewUpload, e.View(), "unknown view falls back to upload")
	assert.Empty(t, e.Progress().CompletedDays)
	assert.Empty(t, e.Progress().Scores)
	assert.False(t, e.Progress().StudyEnded)
}

func TestEngine_RestorePrunesInconsistentProgress(t *testing.T) {
	durable := testutil.NewTestStore(t)
	sessionScope := store.NewMemoryScope()
	require.NoError(t, sessionScope.Set(store.KeySessionID, "existing"))

	// A torn write: a score for a day that never made it into the
	// completed list, plus a day outside the plan.
	require.NoError(t, durable.Set(store.KeyCompletedDays, "[1,99]"))
	require.NoError(t, durable.Set(store.KeyScores, `{"1":80,"4":50}`))

	e := NewEngine(durable, sessionScope)
	e.Restore()

	assert.Equal(t, map[int]bool{1: true}, e.Progress().CompletedDays)
	assert.Equal(t, map[int]int{1: 80}, e.Progress().Scores)
}
