package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"
)

// naiveLayout mirrors the backend's zone-less ISO timestamps.
const naiveLayout = "2006-01-02T15:04:05.000000"

// RecordedRequest is one request seen by FakeServer.
type RecordedRequest struct {
	Method        string
	Path          string
	Authorization string
}

type serverTask struct {
	ID          string
	Title       string
	Description string
	Status      string
	Owner       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// FakeServer is an httptest server speaking the task REST contract:
// bcrypt-hashed users, HS256 JWT sessions and per-user tasks.
type FakeServer struct {
	*httptest.Server

	mu       sync.Mutex
	secret   []byte
	users    map[string][]byte
	tasks    []*serverTask
	requests []RecordedRequest

	// FailStatus, when non-zero, makes every /tasks request answer with it.
	FailStatus int

	// WrapTasks answers single-task endpoints as {"task": {...}}.
	WrapTasks bool

	// Now stamps tasks and tokens.
	Now func() time.Time

	// TokenTTL is the lifetime of issued tokens.
	TokenTTL time.Duration
}

// NewFakeServer starts a FakeServer. Close it with Close.
func NewFakeServer() *FakeServer {
	s := &FakeServer{
		secret:   []byte("fake-server-secret"),
		users:    make(map[string][]byte),
		Now:      time.Now,
		TokenTTL: time.Hour,
	}

	r := mux.NewRouter()
	r.Use(s.record)
	r.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost)
	r.HandleFunc("/auth/register", s.handleRegister).Methods(http.MethodPost)

	tasks := r.PathPrefix("/tasks").Subrouter()
	tasks.Use(s.failInjected)
	tasks.HandleFunc("", s.authed(s.handleListTasks)).Methods(http.MethodGet)
	tasks.HandleFunc("", s.authed(s.handleCreateTask)).Methods(http.MethodPost)
	tasks.HandleFunc("/{id}", s.authed(s.handleGetTask)).Methods(http.MethodGet)
	tasks.HandleFunc("/{id}", s.authed(s.handleUpdateTask)).Methods(http.MethodPut)
	tasks.HandleFunc("/{id}", s.authed(s.handleDeleteTask)).Methods(http.MethodDelete)

	s.Server = httptest.NewServer(r)
	return s
}

// AddUser creates an account.
func (s *FakeServer) AddUser(username, password string) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[username] = hash
}

// IssueToken returns a valid token for username without a login round-trip.
func (s *FakeServer) IssueToken(username string) string {
	tok, err := s.issue(username)
	if err != nil {
		panic(err)
	}
	return tok
}

// SeedTask stores a task owned by username and returns its id.
func (s *FakeServer) SeedTask(username, title, status string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.Now().UTC()
	t := &serverTask{
		ID:        uuid.NewString(),
		Title:     title,
		Status:    status,
		Owner:     username,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.tasks = append(s.tasks, t)
	return t.ID
}

// Requests returns every request seen so far.
func (s *FakeServer) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]RecordedRequest, len(s.requests))
	copy(out, s.requests)
	return out
}

// LastRequest returns the most recent request.
func (s *FakeServer) LastRequest() RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return RecordedRequest{}
	}
	return s.requests[len(s.requests)-1]
}

func (s *FakeServer) issue(username string) (string, error) {
	now := s.Now()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.TokenTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *FakeServer) verify(header string) (string, bool) {
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || raw == "" {
		return "", false
	}
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.Now))
	if err != nil || claims.Subject == "" {
		return "", false
	}
	return claims.Subject, true
}

func (s *FakeServer) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, RecordedRequest{
			Method:        r.Method,
			Path:          r.URL.Path,
			Authorization: r.Header.Get("Authorization"),
		})
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *FakeServer) failInjected(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		status := s.FailStatus
		s.mu.Unlock()
		if status != 0 {
			writeError(w, status, "injected failure")
			return
		}
		next.ServeHTTP(w, r)
	})
}

type authedHandler func(w http.ResponseWriter, r *http.Request, user string)

func (s *FakeServer) authed(h authedHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := s.verify(r.Header.Get("Authorization"))
		if !ok {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		h(w, r, user)
	}
}

type credentialsBody struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *FakeServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body credentialsBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Username == "" || body.Password == "" {
		writeError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	s.mu.Lock()
	hash, ok := s.users[body.Username]
	s.mu.Unlock()
	if !ok || bcrypt.CompareHashAndPassword(hash, []byte(body.Password)) != nil {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	tok, err := s.issue(body.Username)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": tok})
}

func (s *FakeServer) handleRegister(w http.ResponseWriter, r *http.Request) {
	var body credentialsBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if len(body.Username) < 3 || len(body.Password) < 6 {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error": map[string]string{
				"message": "Invalid credentials format",
				"type":    "ValidationError",
			},
		})
		return
	}

	s.mu.Lock()
	if _, exists := s.users[body.Username]; exists {
		s.mu.Unlock()
		writeError(w, http.StatusBadRequest, "User already exists")
		return
	}
	s.mu.Unlock()

	s.AddUser(body.Username, body.Password)
	tok, err := s.issue(body.Username)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"token": tok})
}

type taskBody struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

func validStatus(s string) bool {
	return s == "pending" || s == "in_progress" || s == "completed"
}

func (s *FakeServer) handleListTasks(w http.ResponseWriter, r *http.Request, user string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]map[string]any, 0, len(s.tasks))
	for _, t := range s.tasks {
		if t.Owner == user {
			out = append(out, t.wire())
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"tasks": out})
}

func (s *FakeServer) handleCreateTask(w http.ResponseWriter, r *http.Request, user string) {
	var body taskBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if body.Title == nil || strings.TrimSpace(*body.Title) == "" {
		writeError(w, http.StatusUnprocessableEntity, "Title is required")
		return
	}
	status := "pending"
	if body.Status != nil {
		status = *body.Status
	}
	if !validStatus(status) {
		writeError(w, http.StatusUnprocessableEntity, "Invalid status")
		return
	}

	s.mu.Lock()
	now := s.Now().UTC()
	t := &serverTask{
		ID:        uuid.NewString(),
		Title:     *body.Title,
		Status:    status,
		Owner:     user,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if body.Description != nil {
		t.Description = *body.Description
	}
	s.tasks = append(s.tasks, t)
	wire := t.wire()
	s.mu.Unlock()

	s.writeTask(w, http.StatusCreated, wire)
}

func (s *FakeServer) handleGetTask(w http.ResponseWriter, r *http.Request, user string) {
	s.mu.Lock()
	t := s.find(mux.Vars(r)["id"], user)
	var wire map[string]any
	if t != nil {
		wire = t.wire()
	}
	s.mu.Unlock()

	if wire == nil {
		writeError(w, http.StatusNotFound, "Task not found")
		return
	}
	s.writeTask(w, http.StatusOK, wire)
}

func (s *FakeServer) handleUpdateTask(w http.ResponseWriter, r *http.Request, user string) {
	var body taskBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if body.Status != nil && !validStatus(*body.Status) {
		writeError(w, http.StatusUnprocessableEntity, "Invalid status")
		return
	}
	if body.Title != nil && strings.TrimSpace(*body.Title) == "" {
		writeError(w, http.StatusUnprocessableEntity, "Title is required")
		return
	}

	s.mu.Lock()
	t := s.find(mux.Vars(r)["id"], user)
	if t == nil {
		s.mu.Unlock()
		writeError(w, http.StatusNotFound, "Task not found")
		return
	}
	if body.Title != nil {
		t.Title = *body.Title
	}
	if body.Description != nil {
		t.Description = *body.Description
	}
	if body.Status != nil {
		t.Status = *body.Status
	}
	t.UpdatedAt = s.Now().UTC()
	wire := t.wire()
	s.mu.Unlock()

	s.writeTask(w, http.StatusOK, wire)
}

func (s *FakeServer) handleDeleteTask(w http.ResponseWriter, r *http.Request, user string) {
	id := mux.Vars(r)["id"]

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.tasks {
		if t.ID == id && t.Owner == user {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeError(w, http.StatusNotFound, "Task not found")
}

// find must be called with s.mu held.
func (s *FakeServer) find(id, user string) *serverTask {
	for _, t := range s.tasks {
		if t.ID == id && t.Owner == user {
			return t
		}
	}
	return nil
}

func (s *FakeServer) writeTask(w http.ResponseWriter, status int, wire map[string]any) {
	s.mu.Lock()
	wrap := s.WrapTasks
	s.mu.Unlock()
	if wrap {
		writeJSON(w, status, map[string]any{"task": wire})
		return
	}
	writeJSON(w, status, wire)
}

func (t *serverTask) wire() map[string]any {
	return map[string]any{
		"task_id":     t.ID,
		"title":       t.Title,
		"description": t.Description,
		"status":      t.Status,
		"created_at":  t.CreatedAt.Format(naiveLayout),
		"updated_at":  t.UpdatedAt.Format(naiveLayout),
		"created_by":  t.Owner,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
