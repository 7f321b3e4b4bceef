package submit

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"github.com/tbxark/formsubmit/logger"
)

const (
	HeaderSubmissionID = "X-Submission-ID"
	HeaderWorkflowForm = "X-Workflow-Form"
)

// HTTPSubmitter posts the payload of a submission to the workflow engine.
type HTTPSubmitter[T any] struct {
	URL    string
	Token  string
	Client *http.Client
}

// StatusError is returned when the workflow engine answers with a non-2xx
// status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("workflow engine returned HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("workflow engine returned HTTP %d: %s", e.StatusCode, e.Body)
}

func NewHTTPSubmitter[T any](url, token string, timeout time.Duration) *HTTPSubmitter[T] {
	return &HTTPSubmitter[T]{
		URL:    url,
		Token:  token,
		Client: &http.Client{Timeout: timeout},
	}
}

func (h *HTTPSubmitter[T]) Submit(ctx context.Context, sub Submission[T]) error {
	body, err := sonic.Marshal(sub.Payload)
	if err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(HeaderSubmissionID, sub.ID)
	req.Header.Set(HeaderWorkflowForm, sub.Form)
	if h.Token != "" {
		req.Header.Set("Authorization", "Bearer "+h.Token)
	}

	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}

	logger.Debug(ctx, "Posting submission", "url", h.URL, "bytes", len(body))
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to post submission: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(snippet))}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

var _ Submitter[map[string]any] = (*HTTPSubmitter[map[string]any])(nil)
