package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/triply/triply-go/internal/session"
	"github.com/triply/triply-go/internal/token"
)

// testNavigator records redirects for assertions.
type testNavigator struct {
	mu       sync.Mutex
	path     string
	replaces []string
}

func (n *testNavigator) CurrentPath() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.path
}

func (n *testNavigator) Replace(url string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.replaces = append(n.replaces, url)
}

func (n *testNavigator) redirects() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.replaces)
}

type fixture struct {
	client *Client
	store  *token.MemoryStore
	nav    *testNavigator
}

func newFixture(t *testing.T, baseURL string) *fixture {
	t.Helper()
	store := token.NewMemoryStore()
	nav := &testNavigator{path: "/trips"}
	guard := session.NewGuard(store, nav)
	return &fixture{
		client: New(baseURL, 0, store, guard, zap.NewNop()),
		store:  store,
		nav:    nav,
	}
}

func TestDoAttachesBearerToken(t *testing.T) {
	t.Parallel()

	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	f := newFixture(t, server.URL)
	_ = f.store.Set("tok-123")

	if _, err := f.client.Do(context.Background(), http.MethodGet, "/api/Trips", nil, nil); err != nil {
		t.Fatalf("Do returned error: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("Authorization = %q, want Bearer tok-123", gotAuth)
	}
}

func TestDoWithoutTokenOmitsHeader(t *testing.T) {
	t.Parallel()

	var hadAuth bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hadAuth = r.Header.Get("Authorization") != ""
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	f := newFixture(t, server.URL)
	if _, err := f.client.Do(context.Background(), http.MethodGet, "/api/Trips", nil, nil); err != nil {
		t.Fatalf("Do returned error: %v", err)
	}
	if hadAuth {
		t.Error("request carried an Authorization header with no stored token")
	}
}

func TestDoClassifiesAPIError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		status      int
		body        string
		header      http.Header
		wantMessage string
		wantReqID   string
	}{
		{
			name:        "error field with request id",
			status:      http.StatusNotFound,
			body:        `{"error": "trip not found"}`,
			header:      http.Header{"X-Request-Id": []string{"req-7"}},
			wantMessage: "trip not found",
			wantReqID:   "req-7",
		},
		{
			name:        "message field preferred",
			status:      http.StatusBadRequest,
			body:        `{"message": "bad depart date"}`,
			wantMessage: "bad depart date",
		},
		{
			name:        "traceparent fallback",
			status:      http.StatusInternalServerError,
			body:        `{}`,
			header:      http.Header{"Traceparent": []string{"00-abc-def-01"}},
			wantMessage: "request failed with status code 500",
			wantReqID:   "00-abc-def-01",
		},
		{
			name:        "unparseable body",
			status:      http.StatusBadGateway,
			body:        `<html>boom</html>`,
			wantMessage: "request failed with status code 502",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				for key, vals := range tt.header {
					for _, v := range vals {
						w.Header().Add(key, v)
					}
				}
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			f := newFixture(t, server.URL)
			_, err := f.client.Do(context.Background(), http.MethodGet, "/x", nil, nil)
			if err == nil {
				t.Fatal("expected an error")
			}

			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected *APIError, got %T", err)
			}
			if apiErr.Status != tt.status {
				t.Errorf("Status = %d, want %d", apiErr.Status, tt.status)
			}
			if apiErr.Message != tt.wantMessage {
				t.Errorf("Message = %q, want %q", apiErr.Message, tt.wantMessage)
			}
			if apiErr.RequestID != tt.wantReqID {
				t.Errorf("RequestID = %q, want %q", apiErr.RequestID, tt.wantReqID)
			}
		})
	}
}

func TestFormattedErrorContract(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": "trip not found"}`))
	}))
	defer server.Close()

	f := newFixture(t, server.URL)
	_, err := f.client.Do(context.Background(), http.MethodGet, "/x", nil, nil)
	if err == nil {
		t.Fatal("expected an error")
	}

	if err.Error() != "HTTP 404: trip not found" {
		t.Errorf("Error() = %q, want %q", err.Error(), "HTTP 404: trip not found")
	}
	if got := ParseHTTPStatus(err.Error()); got != 404 {
		t.Errorf("ParseHTTPStatus round trip = %d, want 404", got)
	}
}

func TestUnauthorizedRedirectsOnceAcrossConcurrentRequests(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": "Invalid or expired token"}`))
	}))
	defer server.Close()

	f := newFixture(t, server.URL)
	_ = f.store.Set("expired")

	const n = 8
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.client.Do(context.Background(), http.MethodGet, "/api/Trips", nil, nil)
		}(i)
	}
	wg.Wait()

	// Every caller still gets its error back.
	for i, err := range errs {
		var apiErr *APIError
		if !errors.As(err, &apiErr) || apiErr.Status != http.StatusUnauthorized {
			t.Errorf("request %d: err = %v, want APIError with status 401", i, err)
		}
	}

	if got := f.nav.redirects(); got != 1 {
		t.Errorf("got %d redirects, want exactly 1", got)
	}
	if _, ok := f.store.Get(); ok {
		t.Error("credential should be cleared after 401")
	}
}

func TestUnauthorizedOnAuthPageDoesNotRedirect(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": "bad credentials"}`))
	}))
	defer server.Close()

	f := newFixture(t, server.URL)
	f.nav.path = "/login"

	_, err := f.client.Do(context.Background(), http.MethodPost, "/api/Auth/login", credentials{Email: "a@b.c", Password: "nope"}, nil)
	if err == nil {
		t.Fatal("expected an error")
	}
	if got := f.nav.redirects(); got != 0 {
		t.Errorf("got %d redirects on the login page, want 0", got)
	}
}

func TestTransportTimeout(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer server.Close()

	f := newFixture(t, server.URL)
	f.client.SetHTTPClient(&http.Client{Timeout: 50 * time.Millisecond})

	_, err := f.client.Do(context.Background(), http.MethodGet, "/slow", nil, nil)
	if err == nil {
		t.Fatal("expected a timeout error")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.Code != "timeout" {
		t.Errorf("Code = %q, want timeout", apiErr.Code)
	}
	if apiErr.Status != 0 {
		t.Errorf("Status = %d, want 0 for a transport failure", apiErr.Status)
	}
}

func TestParseHTTPStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		msg  string
		want int
	}{
		{msg: "HTTP 401: Invalid or expired token", want: 401},
		{msg: "http 404: trip not found", want: 404},
		{msg: "something HTTP 500: boom", want: 500},
		{msg: "connection refused", want: 0},
		{msg: "", want: 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.msg, func(t *testing.T) {
			t.Parallel()
			if got := ParseHTTPStatus(tt.msg); got != tt.want {
				t.Errorf("ParseHTTPStatus(%q) = %d, want %d", tt.msg, got, tt.want)
			}
		})
	}
}
