package api

import (
	"errors"
	"fmt"
	"io"
	"time"
)

// CallEvent records metadata about a single backend call.
type CallEvent struct {
	Op        string // "probe", "upload", "test", "flashcard"
	Target    string
	Status    int // HTTP status, 0 when the request never completed
	LatencyMs int64
	Success   bool
	ErrorCode string
}

// Observer receives events about backend calls for logging.
type Observer interface {
	OnCallComplete(event CallEvent)
}

// LogObserver writes backend call events to an io.Writer.
type LogObserver struct {
	w io.Writer
}

// NewLogObserver creates an Observer that logs events to w.
func NewLogObserver(w io.Writer) *LogObserver {
	return &LogObserver{w: w}
}

func (o *LogObserver) OnCallComplete(event CallEvent) {
	ts := time.Now().UTC().Format(time.RFC3339)
	status := "ok"
	if !event.Success {
		status = "err:" + event.ErrorCode
	}
	fmt.Fprintf(o.w, "[%s] api_call op=%s target=%s http=%d latency_ms=%d status=%s\n",
		ts, event.Op, event.Target, event.Status, event.LatencyMs, status)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(CallEvent) {}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMalformedResponse):
		return "MALFORMED"
	case errors.Is(err, ErrFileTooLarge):
		return "TOO_LARGE"
	case errors.Is(err, ErrFetch):
		return "FETCH"
	default:
		return "UNKNOWN"
	}
}
