//go:build integration

package mock

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
)

// ApiMock is a stand-in for the upstream analytics API. Responses are keyed
// by method and path; requests are recorded in arrival order.
type ApiMock struct {
	mu sync.Mutex

	server   *httptest.Server
	queries  map[string][]map[string]string
	headers  map[string][]http.Header
	bodies   map[string]any
	statuses map[string]int
}

func NewApiServer() *ApiMock {
	return &ApiMock{
		queries:  map[string][]map[string]string{},
		headers:  map[string][]http.Header{},
		bodies:   map[string]any{},
		statuses: map[string]int{},
	}
}

func (a *ApiMock) Start() {
	a.server = httptest.NewServer(http.HandlerFunc(a.handle))
}

func (a *ApiMock) Close() {
	if a.server != nil {
		a.server.Close()
	}
}

func (a *ApiMock) GetUrl() string {
	return a.server.URL
}

func (a *ApiMock) handle(w http.ResponseWriter, r *http.Request) {
	key := r.Method + r.URL.Path

	a.mu.Lock()
	query := map[string]string{}
	for name, values := range r.URL.Query() {
		query[name] = values[0]
	}
	a.queries[key] = append(a.queries[key], query)
	a.headers[key] = append(a.headers[key], r.Header.Clone())

	status, ok := a.statuses[key]
	if !ok {
		status = http.StatusOK
	}
	body, ok := a.bodies[key]
	if !ok {
		body = map[string]any{}
	}
	a.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// SetResponse makes every later request to method and path answer with
// status and body.
func (a *ApiMock) SetResponse(method, path string, status int, body any) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.statuses[method+path] = status
	a.bodies[method+path] = body
}

// GetRequestQueries returns the query of the index-th request, or nil.
func (a *ApiMock) GetRequestQueries(method, path string, index int) map[string]string {
	a.mu.Lock()
	defer a.mu.Unlock()
	received := a.queries[method+path]
	if index < 0 || index >= len(received) {
		return nil
	}
	return received[index]
}

// GetRequestHeaders returns the headers of the index-th request, or nil.
func (a *ApiMock) GetRequestHeaders(method, path string, index int) http.Header {
	a.mu.Lock()
	defer a.mu.Unlock()
	received := a.headers[method+path]
	if index < 0 || index >= len(received) {
		return nil
	}
	return received[index]
}

// RequestCount returns how many requests reached method and path.
func (a *ApiMock) RequestCount(method, path string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.queries[method+path])
}

// Reset forgets recorded requests and configured responses.
func (a *ApiMock) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.queries = map[string][]map[string]string{}
	a.headers = map[string][]http.Header{}
	a.bodies = map[string]any{}
	a.statuses = map[string]int{}
}
