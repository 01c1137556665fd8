package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/alexanderramin/studymaster/internal/domain"
)

// Client talks to the StudyMaster backend through a Resolver.
type Client struct {
	cfg      Config
	resolver *Resolver
	http     *http.Client
	observer Observer
}

// NewClient creates a backend Client.
func NewClient(cfg Config, resolver *Resolver, observer Observer) *Client {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &Client{
		cfg:      cfg,
		resolver: resolver,
		http:     &http.Client{},
		observer: observer,
	}
}

// UploadResponse is the JSON body returned by POST /upload-pdf.
type UploadResponse struct {
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	Message  string `json:"message"`
}

// testResponse is the JSON body returned by GET /test/{day}.
type testResponse struct {
	TestID    int               `json:"test_id"`
	Questions []domain.Question `json:"questions"`
}

// UploadPDF uploads the PDF at path as the multipart field "file".
// Files over the configured size cap are rejected before any network
// activity. A non-2xx response surfaces the body text as the error.
func (c *Client) UploadPDF(ctx context.Context, path string) (*UploadResponse, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if info.Size() > c.cfg.MaxUploadBytes {
		return nil, fmt.Errorf("%w: %d bytes", ErrFileTooLarge, info.Size())
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	defer f.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("building upload body: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, fmt.Errorf("building upload body: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("building upload body: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.UploadTimeout)
	defer cancel()

	url := c.resolver.Base(ctx) + "/upload-pdf"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var resp UploadResponse
	if err := c.do(req, "upload", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// FetchTest fetches the question set for the given plan day and
// validates the wire shape at the boundary.
func (c *Client) FetchTest(ctx context.Context, day int) ([]domain.Question, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.FetchTimeout)
	defer cancel()

	url := fmt.Sprintf("%s/test/%d", c.resolver.Base(ctx), day)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	var resp testResponse
	if err := c.do(req, "test", &resp); err != nil {
		return nil, err
	}
	if len(resp.Questions) == 0 {
		return nil, fmt.Errorf("%w: no questions for day %d", ErrMalformedResponse, day)
	}
	for i, q := range resp.Questions {
		if q.Text == "" || len(q.Options) < 2 {
			return nil, fmt.Errorf("%w: question %d incomplete", ErrMalformedResponse, i+1)
		}
		if q.CorrectAnswer < 1 || q.CorrectAnswer > len(q.Options) {
			return nil, fmt.Errorf("%w: question %d correct_answer out of range", ErrMalformedResponse, i+1)
		}
	}
	return resp.Questions, nil
}

// FetchFlashcard fetches exactly one new flashcard.
func (c *Client) FetchFlashcard(ctx context.Context) (*domain.FlashcardEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.FetchTimeout)
	defer cancel()

	url := c.resolver.Base(ctx) + "/flashcard/"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	var card domain.FlashcardEntry
	if err := c.do(req, "flashcard", &card); err != nil {
		return nil, err
	}
	if card.Question == "" || card.Answer == "" {
		return nil, fmt.Errorf("%w: flashcard missing question or answer", ErrMalformedResponse)
	}
	return &card, nil
}

// do executes the request, decodes a 2xx JSON body into out, and emits
// a call event. Non-2xx responses carry the body text in the error.
func (c *Client) do(req *http.Request, op string, out any) error {
	start := time.Now()
	event := CallEvent{Op: op, Target: req.URL.String()}

	finish := func(err error) error {
		event.LatencyMs = time.Since(start).Milliseconds()
		event.Success = err == nil
		event.ErrorCode = errorCode(err)
		c.observer.OnCallComplete(event)
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return finish(fmt.Errorf("%w: %v", ErrFetch, err))
	}
	defer resp.Body.Close()
	event.Status = resp.StatusCode

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return finish(fmt.Errorf("%w: reading response: %v", ErrFetch, err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := string(bytes.TrimSpace(respBody))
		if msg == "" {
			msg = resp.Status
		}
		return finish(fmt.Errorf("%w: %s", ErrFetch, msg))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return finish(fmt.Errorf("%w: decoding response: %v", ErrMalformedResponse, err))
	}
	return finish(nil)
}
