package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// StubServer is an httptest server speaking the Tasks collection protocol.
// Tasks are kept as raw JSON objects so tests can check exactly what the
// client sent. New ids are random UUIDs unless NextID is set.
type StubServer struct {
	*httptest.Server

	mu       sync.Mutex
	tasks    []map[string]any
	requests []StubRequest

	// NextID overrides id assignment on POST.
	NextID func() string

	// FailWith, when non-zero, makes every request answer with this status.
	FailWith int

	// OmitIDs drops the id from create and update responses.
	OmitIDs bool
}

// StubRequest is one request seen by the server.
type StubRequest struct {
	Method      string
	Path        string
	ContentType string
	Body        map[string]any
}

// NewStubServer starts a stub serving under /api/Tasks and registers its
// shutdown with t.Cleanup.
func NewStubServer(t *testing.T) *StubServer {
	t.Helper()

	s := &StubServer{}
	r := chi.NewRouter()
	r.Use(s.record)
	r.Route("/api/Tasks", func(r chi.Router) {
		r.Get("/", s.list)
		r.Post("/", s.create)
		r.Put("/{id}", s.update)
		r.Delete("/{id}", s.delete)
	})

	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Close)
	return s
}

// BaseURL returns the API root to configure the client with.
func (s *StubServer) BaseURL() string {
	return s.URL + "/api"
}

// Seed stores a raw task object.
func (s *StubServer) Seed(task map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append(s.tasks, task)
}

// Requests returns every request received so far.
func (s *StubServer) Requests() []StubRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]StubRequest, len(s.requests))
	copy(out, s.requests)
	return out
}

// Stored returns the raw tasks held by the server.
func (s *StubServer) Stored() []map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]map[string]any, len(s.tasks))
	copy(out, s.tasks)
	return out
}

func (s *StubServer) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req := StubRequest{
			Method:      r.Method,
			Path:        r.URL.Path,
			ContentType: r.Header.Get("Content-Type"),
		}
		if r.Body != nil && (r.Method == http.MethodPost || r.Method == http.MethodPut) {
			var body map[string]any
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				http.Error(w, "bad json", http.StatusBadRequest)
				return
			}
			req.Body = body
			r = r.WithContext(withBody(r.Context(), body))
		}

		s.mu.Lock()
		s.requests = append(s.requests, req)
		fail := s.FailWith
		s.mu.Unlock()

		if fail != 0 {
			http.Error(w, http.StatusText(fail), fail)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *StubServer) list(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	tasks := make([]map[string]any, len(s.tasks))
	copy(tasks, s.tasks)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, tasks)
}

func (s *StubServer) create(w http.ResponseWriter, r *http.Request) {
	body := bodyFrom(r.Context())
	if title, _ := body["title"].(string); title == "" {
		http.Error(w, "title is required", http.StatusBadRequest)
		return
	}

	task := make(map[string]any, len(body)+1)
	for k, v := range body {
		task[k] = v
	}

	s.mu.Lock()
	if s.NextID != nil {
		task["id"] = s.NextID()
	} else {
		task["id"] = uuid.NewString()
	}
	s.tasks = append(s.tasks, task)
	omit := s.OmitIDs
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, withoutID(task, omit))
}

func (s *StubServer) update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	body := bodyFrom(r.Context())

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.tasks {
		if idString(t["id"]) == id {
			// A typed key rejects an id of another JSON type, e.g. "1" for 1.
			if sent, ok := body["id"]; ok && sent != t["id"] {
				http.Error(w, "id does not match", http.StatusBadRequest)
				return
			}
			task := make(map[string]any, len(body))
			for k, v := range body {
				task[k] = v
			}
			task["id"] = t["id"]
			s.tasks[i] = task
			writeJSON(w, http.StatusOK, withoutID(task, s.OmitIDs))
			return
		}
	}
	http.NotFound(w, r)
}

func (s *StubServer) delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.tasks {
		if idString(t["id"]) == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	http.NotFound(w, r)
}

func withoutID(task map[string]any, omit bool) map[string]any {
	if !omit {
		return task
	}
	out := make(map[string]any, len(task))
	for k, v := range task {
		if k != "id" {
			out[k] = v
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func idString(v any) string {
	switch id := v.(type) {
	case string:
		return id
	case float64:
		b, _ := json.Marshal(id)
		return string(b)
	case int:
		return strconv.Itoa(id)
	}
	return ""
}
