package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/evaluaasi/support-gateway/internal/backend"
	"github.com/evaluaasi/support-gateway/internal/events"
)

// fakeBackend routes "METHOD /path" to canned handlers and counts hits.
type fakeBackend struct {
	mu     sync.Mutex
	routes map[string]http.HandlerFunc
	hits   map[string]int
	srv    *httptest.Server
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	fb := &fakeBackend{routes: map[string]http.HandlerFunc{}, hits: map[string]int{}}
	fb.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + r.URL.Path
		fb.mu.Lock()
		fb.hits[key]++
		h, ok := fb.routes[key]
		fb.mu.Unlock()
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]any{"error": "not found"})
			return
		}
		h(w, r)
	}))
	t.Cleanup(fb.srv.Close)
	return fb
}

func (fb *fakeBackend) handle(method, path string, h http.HandlerFunc) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.routes[method+" "+path] = h
}

func (fb *fakeBackend) reply(method, path string, status int, body any) {
	fb.handle(method, path, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, status, body)
	})
}

func (fb *fakeBackend) count(method, path string) int {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return fb.hits[method+" "+path]
}

func (fb *fakeBackend) client() *backend.Client {
	return backend.NewClient(backend.Config{BaseURL: fb.srv.URL}, nil)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

type recordedSource struct {
	accessor string
	source   string
}

type fakeRecorder struct {
	mu       sync.Mutex
	sources  []recordedSource
	failures int
}

func (r *fakeRecorder) RecordSource(accessor, source string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sources = append(r.sources, recordedSource{accessor, source})
}

func (r *fakeRecorder) RecordFanOutFailures(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures += n
}

func (r *fakeRecorder) last() recordedSource {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.sources) == 0 {
		return recordedSource{}
	}
	return r.sources[len(r.sources)-1]
}

// eventSink captures every published event of the given types.
type eventSink struct {
	mu     sync.Mutex
	events []events.Event
}

func newEventSink(d events.Dispatcher, types ...events.EventType) *eventSink {
	sink := &eventSink{}
	for _, et := range types {
		d.Subscribe(et, func(_ context.Context, e events.Event) error {
			sink.mu.Lock()
			defer sink.mu.Unlock()
			sink.events = append(sink.events, e)
			return nil
		})
	}
	return sink
}

func (s *eventSink) all() []events.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]events.Event(nil), s.events...)
}

func liveService(fb *fakeBackend, rec *fakeRecorder, d events.Dispatcher) *SupportService {
	deps := SupportDependencies{Backend: fb.client(), Dispatcher: d}
	if rec != nil {
		deps.Metrics = rec
	}
	return NewSupportService(Options{FanOutLimit: 4}, deps)
}

func previewService() *SupportService {
	return NewSupportService(Options{Preview: true}, SupportDependencies{})
}

func ptr[T any](v T) *T {
	return &v
}
