package api

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the backend API subsystem.
type Config struct {
	// BaseOverride pins the backend base address, bypassing the
	// candidate probe entirely. Empty means resolve normally.
	BaseOverride string

	// Candidates are tried in order during endpoint resolution.
	Candidates []string

	LogCalls bool

	ProbeTimeout  time.Duration
	FetchTimeout  time.Duration
	UploadTimeout time.Duration

	// MaxUploadBytes caps the PDF size client-side.
	MaxUploadBytes int64
}

// DefaultConfig returns a Config with the stock candidate list and
// timeouts: a loopback backend is preferred over the public one.
func DefaultConfig() Config {
	return Config{
		Candidates: []string{
			"http://127.0.0.1:8000",
			"http://43.204.227.202:8000",
			"http://43.204.227.202",
		},
		ProbeTimeout:   1500 * time.Millisecond,
		FetchTimeout:   15 * time.Second,
		UploadTimeout:  60 * time.Second,
		MaxUploadBytes: 50 << 20, // 50 MB
	}
}

// LoadConfig reads API configuration from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("STUDYMASTER_API_BASE"); v != "" {
		cfg.BaseOverride = strings.TrimRight(v, "/")
	}
	if v := os.Getenv("STUDYMASTER_API_CANDIDATES"); v != "" {
		var candidates []string
		for _, c := range strings.Split(v, ",") {
			if c = strings.TrimSpace(c); c != "" {
				candidates = append(candidates, strings.TrimRight(c, "/"))
			}
		}
		if len(candidates) > 0 {
			cfg.Candidates = candidates
		}
	}
	if v := os.Getenv("STUDYMASTER_API_LOG"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	applyTimeoutEnv(&cfg.ProbeTimeout, "STUDYMASTER_PROBE_TIMEOUT_MS")
	applyTimeoutEnv(&cfg.FetchTimeout, "STUDYMASTER_FETCH_TIMEOUT_MS")
	applyTimeoutEnv(&cfg.UploadTimeout, "STUDYMASTER_UPLOAD_TIMEOUT_MS")

	return cfg
}

// FallbackBase returns the designated best-effort candidate selected
// when no candidate responds to a probe: the first public address if
// there is one, otherwise the head of the list.
func (c Config) FallbackBase() string {
	if len(c.Candidates) >= 2 {
		return c.Candidates[1]
	}
	if len(c.Candidates) == 1 {
		return c.Candidates[0]
	}
	return ""
}

func applyTimeoutEnv(d *time.Duration, envName string) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return
	}
	*d = time.Duration(n) * time.Millisecond
}
