package submit

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

type websitePayload struct {
	WebsiteURL string `json:"website_url"`
}

func TestHTTPSubmitterPostsPayload(t *testing.T) {
	var (
		gotBody    string
		gotHeaders http.Header
		gotMethod  string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		gotBody = string(data)
		gotHeaders = r.Header.Clone()
		gotMethod = r.Method
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	s := NewHTTPSubmitter[websitePayload](srv.URL, "secret", time.Second)
	err := s.Submit(context.Background(), Submission[websitePayload]{
		ID:      "sub-1",
		Form:    "website",
		Payload: websitePayload{WebsiteURL: "https://example.com"},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if gotMethod != http.MethodPost {
		t.Errorf("method = %s, want POST", gotMethod)
	}
	if diff := cmp.Diff(`{"website_url":"https://example.com"}`, gotBody); diff != "" {
		t.Errorf("body mismatch (-want +got):\n%s", diff)
	}
	want := map[string]string{
		"Authorization":    "Bearer secret",
		"Content-Type":     "application/json",
		HeaderSubmissionID: "sub-1",
		HeaderWorkflowForm: "website",
	}
	for key, value := range want {
		if got := gotHeaders.Get(key); got != value {
			t.Errorf("header %s = %q, want %q", key, got, value)
		}
	}
}

func TestHTTPSubmitterStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "workflow task already completed", http.StatusConflict)
	}))
	defer srv.Close()

	s := NewHTTPSubmitter[websitePayload](srv.URL, "", time.Second)
	err := s.Submit(context.Background(), Submission[websitePayload]{ID: "sub-2", Form: "website"})

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.StatusCode != http.StatusConflict {
		t.Errorf("status = %d", statusErr.StatusCode)
	}
	if statusErr.Body != "workflow task already completed" {
		t.Errorf("body = %q", statusErr.Body)
	}
}

func TestHTTPSubmitterHonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := NewHTTPSubmitter[websitePayload](srv.URL, "", 5*time.Second)
	if err := s.Submit(ctx, Submission[websitePayload]{ID: "sub-3"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestAsyncReturnsBeforeInnerCompletes(t *testing.T) {
	release := make(chan struct{})
	done := make(chan error, 1)
	inner := Func[websitePayload](func(ctx context.Context, sub Submission[websitePayload]) error {
		<-release
		return errors.New("engine unavailable")
	})

	a := Async[websitePayload](inner, func(sub Submission[websitePayload], err error) {
		done <- err
	})
	if err := a.Submit(context.Background(), Submission[websitePayload]{ID: "sub-4"}); err != nil {
		t.Fatalf("async submit returned error: %v", err)
	}

	select {
	case <-done:
		t.Fatal("onDone fired before inner submitter finished")
	default:
	}

	close(release)
	select {
	case err := <-done:
		if err == nil || err.Error() != "engine unavailable" {
			t.Fatalf("unexpected outcome: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("onDone not called")
	}
}

func TestAsyncRecoversPanics(t *testing.T) {
	done := make(chan error, 1)
	inner := Func[websitePayload](func(ctx context.Context, sub Submission[websitePayload]) error {
		panic("boom")
	})
	a := Async[websitePayload](inner, func(sub Submission[websitePayload], err error) {
		done <- err
	})
	_ = a.Submit(context.Background(), Submission[websitePayload]{ID: "sub-5"})

	select {
	case err := <-done:
		if err == nil {
			t.Fatal("expected panic to surface as error")
		}
	case <-time.After(time.Second):
		t.Fatal("onDone not called")
	}
}
