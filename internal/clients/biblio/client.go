package biblio

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/vostrano/heritage-backend/internal/logger"
	"github.com/vostrano/heritage-backend/internal/utils"
)

// Author is the CSL author shape shared by both lookup providers.
type Author struct {
	Family string `json:"family"`
	Given  string `json:"given"`
}

// Reference is a normalized bibliographic record assembled from a DOI or
// ISBN lookup. Raw carries the provider payload so it can be stored as CSL.
type Reference struct {
	Kind           string
	DOI            string
	ISBN           string
	Title          string
	Authors        []Author
	ContainerTitle string
	Publisher      string
	PublisherPlace string
	Year           int
	Volume         string
	Issue          string
	Pages          string
	URL            string
	Raw            json.RawMessage
}

type httpError struct {
	StatusCode int
	Body       string
}

func (e *httpError) Error() string {
	return fmt.Sprintf("biblio http %d: %s", e.StatusCode, e.Body)
}

func (e *httpError) HTTPStatusCode() int {
	if e == nil {
		return 0
	}
	return e.StatusCode
}

type httpGetter struct {
	log        *logger.Logger
	httpClient *http.Client
	userAgent  string
	maxRetries int
}

func newHTTPGetter(log *logger.Logger, service string) *httpGetter {
	timeoutSec := 30
	if v := os.Getenv("BIBLIO_TIMEOUT_SECONDS"); v != "" {
		if parsed, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && parsed > 0 {
			timeoutSec = parsed
		}
	}
	maxRetries := 3
	if v := os.Getenv("BIBLIO_MAX_RETRIES"); v != "" {
		if parsed, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && parsed >= 0 {
			maxRetries = parsed
		}
	}
	ua := strings.TrimSpace(os.Getenv("BIBLIO_USER_AGENT"))
	if ua == "" {
		ua = "heritage-backend/1.0"
	}
	return &httpGetter{
		log:        log.With("service", service),
		httpClient: &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
		userAgent:  ua,
		maxRetries: maxRetries,
	}
}

func (g *httpGetter) getOnce(ctx context.Context, url string) (*http.Response, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", g.userAgent)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, nil, err
	}

	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return resp, nil, readErr
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp, raw, &httpError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	return resp, raw, nil
}

func (g *httpGetter) getJSON(ctx context.Context, url string, out any) error {
	backoff := 1 * time.Second

	for attempt := 0; attempt <= g.maxRetries; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		resp, raw, err := g.getOnce(ctx, url)
		if err == nil {
			if out == nil {
				return nil
			}
			if uErr := json.Unmarshal(raw, out); uErr != nil {
				return fmt.Errorf("biblio decode error: %w", uErr)
			}
			return nil
		}

		if !utils.IsRetryableError(err) {
			return err
		}
		if attempt == g.maxRetries {
			return err
		}

		sleepFor := utils.RetryAfterDuration(resp, backoff, 10*time.Second)
		sleepFor = utils.JitterSleep(sleepFor)

		g.log.Warn("lookup request retrying",
			"url", url,
			"attempt", attempt+1,
			"max_retries", g.maxRetries,
			"sleep", sleepFor.String(),
			"error", err.Error(),
		)

		time.Sleep(sleepFor)
		backoff *= 2
	}

	return fmt.Errorf("unreachable retry loop")
}
