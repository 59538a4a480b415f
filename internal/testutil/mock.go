// Package testutil provides testing utilities for the kanban project.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"
	"testing"

	"github.com/pablasso/kanban/internal/task"
)

// RecordedRequest is a request seen by TaskServer.
type RecordedRequest struct {
	Method    string
	Path      string
	RequestID string
	Body      string
}

// TaskServer is an in-memory fake of the task API. It assigns IDs, appends
// created tasks to the end of their column, applies partial updates as-is and
// answers unknown IDs with {"detail": "Task not found"}.
type TaskServer struct {
	*httptest.Server

	mu       sync.Mutex
	tasks    map[int]task.Task
	nextID   int
	failures map[string][]int
	requests []RecordedRequest
}

// NewTaskServer starts a fake API seeded with tasks. Seed IDs are kept; new
// IDs continue after the highest one. The server is closed on test cleanup.
func NewTaskServer(t *testing.T, seed ...task.Task) *TaskServer {
	t.Helper()

	s := &TaskServer{
		tasks:    make(map[int]task.Task),
		nextID:   1,
		failures: make(map[string][]int),
	}
	for _, tk := range seed {
		s.tasks[tk.ID] = tk
		if tk.ID >= s.nextID {
			s.nextID = tk.ID + 1
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /tasks", s.handleList)
	mux.HandleFunc("POST /tasks", s.handleCreate)
	mux.HandleFunc("PUT /tasks/{id}", s.handleUpdate)
	mux.HandleFunc("DELETE /tasks/{id}", s.handleDelete)

	s.Server = httptest.NewServer(s.record(mux))
	t.Cleanup(s.Close)
	return s
}

// FailNext makes the next request with the given method answer with status.
// Calls queue up.
func (s *TaskServer) FailNext(method string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method] = append(s.failures[method], status)
}

// Tasks returns the stored tasks sorted by index.
func (s *TaskServer) Tasks() []task.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortedLocked()
}

// Requests returns every request received so far.
func (s *TaskServer) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]RecordedRequest, len(s.requests))
	copy(out, s.requests)
	return out
}

func (s *TaskServer) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body []byte
		if r.Body != nil {
			body, _ = io.ReadAll(r.Body)
			r.Body.Close()
			r.Body = io.NopCloser(bytes.NewReader(body))
		}

		s.mu.Lock()
		s.requests = append(s.requests, RecordedRequest{
			Method:    r.Method,
			Path:      r.URL.Path,
			RequestID: r.Header.Get("X-Request-ID"),
			Body:      string(body),
		})
		var fail int
		if queued := s.failures[r.Method]; len(queued) > 0 {
			fail = queued[0]
			s.failures[r.Method] = queued[1:]
		}
		s.mu.Unlock()

		if fail != 0 {
			writeJSON(w, fail, map[string]string{"detail": http.StatusText(fail)})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *TaskServer) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Task API is running"})
}

func (s *TaskServer) handleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Tasks())
}

func (s *TaskServer) handleCreate(w http.ResponseWriter, r *http.Request) {
	var in task.Create
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Title == "" {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"detail": []map[string]string{{"loc": "body.title", "msg": "field required"}},
		})
		return
	}
	if in.Status == "" {
		in.Status = task.StatusTodo
	}

	s.mu.Lock()
	index := 0
	last := -1
	for _, tk := range s.tasks {
		if tk.Status == in.Status && tk.Index > last {
			last = tk.Index
		}
	}
	if last >= 0 {
		index = last + 1
	}
	created := task.Task{
		ID:          s.nextID,
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status,
		Index:       index,
	}
	s.tasks[created.ID] = created
	s.nextID++
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, created)
}

func (s *TaskServer) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := s.lookup(w, r)
	if !ok {
		return
	}

	var in task.Update
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": err.Error()})
		return
	}

	s.mu.Lock()
	tk := s.tasks[id]
	if in.Title != nil {
		tk.Title = *in.Title
	}
	if in.Description != nil {
		tk.Description = *in.Description
	}
	if in.Status != nil {
		tk.Status = *in.Status
	}
	if in.Index != nil {
		tk.Index = *in.Index
	}
	s.tasks[id] = tk
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, tk)
}

func (s *TaskServer) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := s.lookup(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	delete(s.tasks, id)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *TaskServer) lookup(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": "invalid id"})
		return 0, false
	}

	s.mu.Lock()
	_, exists := s.tasks[id]
	s.mu.Unlock()

	if !exists {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Task not found"})
		return 0, false
	}
	return id, true
}

func (s *TaskServer) sortedLocked() []task.Task {
	out := make([]task.Task, 0, len(s.tasks))
	for _, tk := range s.tasks {
		out = append(out, tk)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Index != out[j].Index {
			return out[i].Index < out[j].Index
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// SetupTestDir creates a temp directory, resolves symlinks (for macOS),
// changes to it, and registers cleanup to restore the original working directory.
// Returns the resolved temp directory path.
func SetupTestDir(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()
	// Resolve symlinks for macOS (/var -> /private/var)
	if resolved, err := filepath.EvalSymlinks(tmpDir); err != nil {
		t.Logf("warning: could not resolve symlinks for temp dir: %v", err)
	} else {
		tmpDir = resolved
	}

	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}

	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("failed to change to temp dir: %v", err)
	}

	t.Cleanup(func() {
		os.Chdir(originalWd)
	})

	return tmpDir
}
