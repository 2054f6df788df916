package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/priyankaj04/Gymlogs/internal/models"
	"github.com/priyankaj04/Gymlogs/internal/wire"
)

// memorySessions is an in-process SessionStore.
type memorySessions struct {
	mu    sync.Mutex
	token string
	user  *models.User
}

func (m *memorySessions) Token(context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, nil
}

func (m *memorySessions) User(context.Context) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return nil, nil
	}
	u := *m.user
	return &u, nil
}

func (m *memorySessions) Save(_ context.Context, token string, user models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	m.user = &user
	return nil
}

func (m *memorySessions) SaveUser(_ context.Context, user models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.user = &user
	return nil
}

func (m *memorySessions) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	m.user = nil
	return nil
}

// fakeBackend is a minimal in-memory rendition of the HTTP contract.
type fakeBackend struct {
	mu        sync.Mutex
	requests  []*http.Request
	users     map[string]wire.User
	passwords map[string]string
	tokens    map[string]string
	exercises []wire.Exercise
	plans     map[string]*wire.WorkoutPlan
	nextID    int
}

func newFakeBackend(t *testing.T) (*fakeBackend, *httptest.Server) {
	t.Helper()
	fb := &fakeBackend{
		users:     map[string]wire.User{},
		passwords: map[string]string{},
		tokens:    map[string]string{},
		plans:     map[string]*wire.WorkoutPlan{},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/users/register", fb.register)
	mux.HandleFunc("POST /api/users/login", fb.login)
	mux.HandleFunc("GET /api/users/health", fb.health)
	mux.HandleFunc("GET /api/users/{id}", fb.getUser)
	mux.HandleFunc("PUT /api/users/{id}", fb.updateUser)
	mux.HandleFunc("DELETE /api/users/{id}", fb.deleteUser)
	mux.HandleFunc("GET /api/exercises", fb.listExercises)
	mux.HandleFunc("GET /api/workout-plans/{id}", fb.getPlan)
	mux.HandleFunc("POST /api/workout-plans/{id}/exercises", fb.addPlanExercise)
	mux.HandleFunc("DELETE /api/workout-plans/{id}/exercises/{exerciseId}", fb.removePlanExercise)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fb.mu.Lock()
		fb.requests = append(fb.requests, r.Clone(context.Background()))
		fb.mu.Unlock()
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)
	return fb, srv
}

func (fb *fakeBackend) requestCount() int {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return len(fb.requests)
}

func (fb *fakeBackend) lastRequest() *http.Request {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	if len(fb.requests) == 0 {
		return nil
	}
	return fb.requests[len(fb.requests)-1]
}

func (fb *fakeBackend) id(prefix string) string {
	fb.nextID++
	return prefix + strconv.Itoa(fb.nextID)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, wire.ErrorBody{Error: code, Message: message})
}

// authorized returns the user id behind the bearer token.
func (fb *fakeBackend) authorized(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if len(header) < len("Bearer ") {
		return "", false
	}
	userID, ok := fb.tokens[header[len("Bearer "):]]
	return userID, ok
}

func (fb *fakeBackend) register(w http.ResponseWriter, r *http.Request) {
	var req wire.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	fb.mu.Lock()
	defer fb.mu.Unlock()
	for _, u := range fb.users {
		if u.Email == req.Email {
			writeError(w, http.StatusConflict, "email_taken", "User with this email already exists")
			return
		}
	}
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	user := wire.User{ID: fb.id("u"), Email: req.Email, Name: req.Name, CreatedAt: now, UpdatedAt: now}
	fb.users[user.ID] = user
	fb.passwords[req.Email] = req.Password
	token := fb.id("tok")
	fb.tokens[token] = user.ID
	writeJSON(w, http.StatusCreated, wire.Envelope[wire.User]{Data: user, Token: token})
}

func (fb *fakeBackend) login(w http.ResponseWriter, r *http.Request) {
	var req wire.LoginRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	fb.mu.Lock()
	defer fb.mu.Unlock()
	for _, u := range fb.users {
		if u.Email == req.Email && fb.passwords[req.Email] == req.Password {
			token := fb.id("tok")
			fb.tokens[token] = u.ID
			writeJSON(w, http.StatusOK, wire.Envelope[wire.User]{Data: u, Token: token})
			return
		}
	}
	writeError(w, http.StatusUnauthorized, "invalid_credentials", "Invalid email or password")
}

func (fb *fakeBackend) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (fb *fakeBackend) getUser(w http.ResponseWriter, r *http.Request) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	userID, ok := fb.authorized(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "Invalid or expired token")
		return
	}
	if userID != r.PathValue("id") {
		writeError(w, http.StatusForbidden, "forbidden", "Access denied")
		return
	}
	writeJSON(w, http.StatusOK, wire.Envelope[wire.User]{Data: fb.users[userID]})
}

func (fb *fakeBackend) updateUser(w http.ResponseWriter, r *http.Request) {
	var patch wire.UserPatch
	_ = json.NewDecoder(r.Body).Decode(&patch)

	fb.mu.Lock()
	defer fb.mu.Unlock()
	userID, ok := fb.authorized(r)
	if !ok || userID != r.PathValue("id") {
		writeError(w, http.StatusUnauthorized, "unauthorized", "Invalid or expired token")
		return
	}
	user := fb.users[userID]
	if patch.Name != nil {
		user.Name = *patch.Name
	}
	if patch.Email != nil {
		user.Email = *patch.Email
	}
	fb.users[userID] = user
	writeJSON(w, http.StatusOK, wire.Envelope[wire.User]{Data: user})
}

func (fb *fakeBackend) deleteUser(w http.ResponseWriter, r *http.Request) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	userID, ok := fb.authorized(r)
	if !ok || userID != r.PathValue("id") {
		writeError(w, http.StatusUnauthorized, "unauthorized", "Invalid or expired token")
		return
	}
	delete(fb.users, userID)
	writeJSON(w, http.StatusOK, wire.MessageBody{Message: "User deleted successfully"})
}

func (fb *fakeBackend) listExercises(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	fb.mu.Lock()
	defer fb.mu.Unlock()
	var matched []wire.Exercise
	for _, e := range fb.exercises {
		if bp := q.Get("body_part"); bp != "" && string(e.BodyPart) != bp {
			continue
		}
		matched = append(matched, e)
	}

	start := (page - 1) * limit
	end := start + limit
	if start > len(matched) {
		start = len(matched)
	}
	if end > len(matched) {
		end = len(matched)
	}
	total := len(matched)
	writeJSON(w, http.StatusOK, wire.Envelope[[]wire.Exercise]{
		Data: append([]wire.Exercise{}, matched[start:end]...),
		Pagination: &wire.Pagination{
			Page: page, Limit: limit, Total: total, TotalPages: (total + limit - 1) / limit,
		},
	})
}

func (fb *fakeBackend) getPlan(w http.ResponseWriter, r *http.Request) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	plan, ok := fb.plans[r.PathValue("id")]
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", "Workout plan not found")
		return
	}
	writeJSON(w, http.StatusOK, wire.Envelope[wire.WorkoutPlan]{Data: *plan})
}

func (fb *fakeBackend) addPlanExercise(w http.ResponseWriter, r *http.Request) {
	var entry wire.PlanExercise
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	fb.mu.Lock()
	defer fb.mu.Unlock()
	if _, ok := fb.authorized(r); !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "Missing token")
		return
	}
	plan, ok := fb.plans[r.PathValue("id")]
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", "Workout plan not found")
		return
	}
	for _, existing := range plan.Exercises {
		if existing.ExerciseID == entry.ExerciseID {
			writeError(w, http.StatusConflict, "duplicate_exercise", "Exercise already in workout plan")
			return
		}
	}
	plan.Exercises = append(plan.Exercises, entry)
	writeJSON(w, http.StatusCreated, wire.Envelope[wire.PlanExercise]{Data: entry})
}

func (fb *fakeBackend) removePlanExercise(w http.ResponseWriter, r *http.Request) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	if _, ok := fb.authorized(r); !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "Missing token")
		return
	}
	plan, ok := fb.plans[r.PathValue("id")]
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", "Workout plan not found")
		return
	}
	kept := plan.Exercises[:0]
	for _, existing := range plan.Exercises {
		if existing.ExerciseID != r.PathValue("exerciseId") {
			kept = append(kept, existing)
		}
	}
	plan.Exercises = kept
	writeJSON(w, http.StatusOK, wire.MessageBody{Message: "Exercise removed from workout plan"})
}
