package session

import (
	"encoding/json"
	"strconv"

	"github.com/alexanderramin/studymaster/internal/domain"
	"github.com/alexanderramin/studymaster/internal/store"
	"github.com/google/uuid"
)

// Engine is the top-level study session state machine. It owns the
// current view and the learner's StudyProgress, mirrors every mutation
// to the durable scope write-through, and uses the session scope to
// tell a restart of the same process apart from a fresh run.
//
// Engine is the single owner of the study's durable keys; the quiz and
// deck engines report back through it.
type Engine struct {
	durable store.Scope
	session store.Scope

	sessionID string
	view      domain.View
	progress  *domain.StudyProgress
}

// NewEngine creates an Engine over the two store scopes. Call Restore
// before use.
func NewEngine(durable, session store.Scope) *Engine {
	return &Engine{
		durable:  durable,
		session:  session,
		view:     domain.ViewUpload,
		progress: domain.NewStudyProgress(),
	}
}

// Restore decides between a fresh session and a resumed one. When the
// session marker is absent this is a fresh run: the view is forced to
// upload and all durable study keys are cleared, regardless of what a
// previous run left behind. When the marker is present the view and
// progress are restored from durable storage, defaulting to
// upload/empty on absent or corrupt values. The marker is set either
// way and reports whether the session was resumed.
func (e *Engine) Restore() bool {
	_, resumed := e.session.Get(store.KeySessionID)
	if !resumed {
		for _, key := range store.StudyKeys {
			_ = e.durable.Remove(key)
		}
		e.view = domain.ViewUpload
		e.progress = domain.NewStudyProgress()
		e.sessionID = uuid.NewString()
		_ = e.session.Set(store.KeySessionID, e.sessionID)
		return false
	}

	e.sessionID, _ = e.session.Get(store.KeySessionID)
	e.view = domain.ParseView(e.loadString(store.KeyView))
	e.progress = e.loadProgress()
	return true
}

// View returns the currently visible screen.
func (e *Engine) View() domain.View {
	return e.view
}

// SetView navigates to the given screen, write-through.
func (e *Engine) SetView(v domain.View) {
	e.view = v
	e.persist(store.KeyView, string(v))
}

// Progress returns the learner's progress. Callers must mutate it only
// through Engine methods so persistence stays write-through.
func (e *Engine) Progress() *domain.StudyProgress {
	return e.progress
}

// SetDocumentName records the uploaded document's display name.
func (e *Engine) SetDocumentName(name string) {
	e.progress.DocumentName = name
	e.persist(store.KeyDocumentName, name)
}

// CompleteDay records a finished quiz for the given day: the day joins
// the completed set and its score and replayable result are stored.
// The keys are written lower-risk first (result, score, then the
// completed-days list) so a crash mid-update degrades to "day not
// completed" rather than a completed day with no result.
func (e *Engine) CompleteDay(day, score int, result domain.QuizResult) {
	e.progress.Results[day] = result
	e.progress.Scores[day] = score
	e.progress.CompletedDays[day] = true

	e.persistJSON(store.KeyResults, e.progress.Results)
	e.persistJSON(store.KeyScores, e.progress.Scores)
	e.persistJSON(store.KeyCompletedDays, e.progress.CompletedList())
}

// EndStudy marks the study ended once every day is completed. Ending a
// study only changes how the backend is expected to weight flashcards;
// the client records the flag and nothing else.
func (e *Engine) EndStudy() {
	if !e.progress.AllCompleted() {
		return
	}
	e.progress.StudyEnded = true
	e.persist(store.KeyStudyEnded, "true")
}

// DeleteStudy clears every durable key, including the resolved endpoint
// base, and resets in-memory state to the fresh-session initial state.
func (e *Engine) DeleteStudy() {
	for _, key := range store.StudyKeys {
		_ = e.durable.Remove(key)
	}
	_ = e.durable.Remove(store.KeyAPIBase)

	e.view = domain.ViewUpload
	e.progress = domain.NewStudyProgress()
	e.persist(store.KeyView, string(domain.ViewUpload))
}

// ── persistence helpers ──────────────────────────────────────────────────────

// persist mirrors one value to durable storage. Write failures degrade
// silently: the in-memory state stands and the next write retries.
func (e *Engine) persist(key, value string) {
	_ = e.durable.Set(key, value)
}

func (e *Engine) persistJSON(key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	e.persist(key, string(data))
}

func (e *Engine) loadString(key string) string {
	v, _ := e.durable.Get(key)
	return v
}

// loadProgress reads the persisted progress, substituting safe defaults
// for absent or corrupt values and pruning anything that violates the
// progress invariant.
func (e *Engine) loadProgress() *domain.StudyProgress {
	p := domain.NewStudyProgress()

	p.DocumentName = e.loadString(store.KeyDocumentName)
	if v, ok := e.durable.Get(store.KeyStudyEnded); ok {
		p.StudyEnded, _ = strconv.ParseBool(v)
	}

	var days []int
	e.loadJSON(store.KeyCompletedDays, &days)
	for _, d := range days {
		p.CompletedDays[d] = true
	}
	e.loadJSON(store.KeyScores, &p.Scores)
	e.loadJSON(store.KeyResults, &p.Results)

	p.Prune()
	return p
}

func (e *Engine) loadJSON(key string, out any) {
	v, ok := e.durable.Get(key)
	if !ok || v == "" {
		return
	}
	// Corrupt JSON is discarded; the caller's zero value is the default.
	_ = json.Unmarshal([]byte(v), out)
}
