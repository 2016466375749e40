package users

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"mindful/internal/sessions"
)

// Mock sessions service for the detail view
type mockSessionService struct {
	sessions.Service
	sessionsForUserFunc func(ctx context.Context, userID int64) ([]sessions.Session, error)
}

func (m *mockSessionService) SessionsForUser(ctx context.Context, userID int64) ([]sessions.Session, error) {
	if m.sessionsForUserFunc != nil {
		return m.sessionsForUserFunc(ctx, userID)
	}
	return []sessions.Session{}, nil
}

var handlerNow = time.Date(2025, time.March, 10, 9, 0, 0, 0, time.Local)

func setupRouter(store Store, sessionSvc sessions.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)

	if sessionSvc == nil {
		sessionSvc = &mockSessionService{}
	}
	h := NewHandler(NewService(store, nil, nil), sessionSvc)
	h.now = func() time.Time { return handlerNow }

	r := gin.New()
	h.RegisterRoutes(r.Group("/api"))
	return r
}

func send(r http.Handler, method, path string, form url.Values) *httptest.ResponseRecorder {
	var req *http.Request
	if form == nil {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func registerForm() url.Values {
	return url.Values{
		"fullName":  {"Ana"},
		"email":     {"a@x.io"},
		"password":  {"secret1"},
		"focusArea": {"Sleep"},
	}
}

func TestRegister_Created(t *testing.T) {
	var stored *User
	r := setupRouter(&mockStore{
		insertFunc: func(ctx context.Context, u *User) (int64, error) {
			stored = u
			return 1, nil
		},
	}, nil)

	w := send(r, http.MethodPost, "/api/register", registerForm())

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
	}
	if w.Body.String() != `{"message":"User registered","userId":1}` {
		t.Errorf("Unexpected body %s", w.Body.String())
	}
	if stored.FullName != "Ana" || stored.Email != "a@x.io" || stored.Password != "secret1" || stored.FocusArea != "Sleep" {
		t.Errorf("Form fields not mapped: %+v", stored)
	}
}

func TestRegister_ShortPassword(t *testing.T) {
	r := setupRouter(&mockStore{}, nil)

	form := registerForm()
	form.Set("password", "abc")
	w := send(r, http.MethodPost, "/api/register", form)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", w.Code)
	}
	if w.Body.String() != `{"error":"Password must contain at least 6 characters"}` {
		t.Errorf("Unexpected body %s", w.Body.String())
	}
}

func TestRegister_StorageFailure(t *testing.T) {
	r := setupRouter(&mockStore{
		insertFunc: func(context.Context, *User) (int64, error) {
			return 0, errors.New("duplicate key value violates unique constraint \"users_email_key\"")
		},
	}, nil)

	w := send(r, http.MethodPost, "/api/register", registerForm())

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("Expected status 500, got %d", w.Code)
	}
	if w.Body.String() != `{"error":"Internal error"}` {
		t.Errorf("Storage details leaked: %s", w.Body.String())
	}
}

func TestList_HidesPasswords(t *testing.T) {
	r := setupRouter(&mockStore{
		findAllFunc: func(ctx context.Context) ([]User, error) {
			return []User{{ID: 1, FullName: "Ana", Email: "a@x.io", Password: "secret1"}}, nil
		},
	}, nil)

	w := send(r, http.MethodGet, "/api/users", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "secret1") || strings.Contains(w.Body.String(), "password") {
		t.Errorf("Password leaked: %s", w.Body.String())
	}
}

func TestGet_IncludesCompletedSessions(t *testing.T) {
	past := sessions.New()
	past.ID, past.UserID, past.Title = 1, 1, "Body scan"
	past.ScheduledAt = handlerNow.Add(-2 * time.Hour)
	upcoming := sessions.New()
	upcoming.ID, upcoming.UserID, upcoming.Title = 2, 1, "Walking"
	upcoming.ScheduledAt = handlerNow.Add(24 * time.Hour)

	r := setupRouter(
		memoryStore(map[int64]User{1: {ID: 1, FullName: "Ana", Email: "a@x.io", Password: "secret1"}}),
		&mockSessionService{
			sessionsForUserFunc: func(ctx context.Context, userID int64) ([]sessions.Session, error) {
				return []sessions.Session{*upcoming, *past}, nil
			},
		},
	)

	w := send(r, http.MethodGet, "/api/users/1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var body struct {
		ID                int64              `json:"id"`
		CompletedSessions []sessions.Session `json:"completedSessions"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if len(body.CompletedSessions) != 1 || body.CompletedSessions[0].Title != "Body scan" {
		t.Errorf("Expected only the past session, got %+v", body.CompletedSessions)
	}
}

func TestGet_NotFoundAndBadID(t *testing.T) {
	r := setupRouter(memoryStore(map[int64]User{}), nil)

	if w := send(r, http.MethodGet, "/api/users/2", nil); w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
	if w := send(r, http.MethodGet, "/api/users/two", nil); w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

func TestUpdate(t *testing.T) {
	r := setupRouter(memoryStore(map[int64]User{1: {ID: 1, FullName: "Ana", Email: "a@x.io", Password: "secret1"}}), nil)

	form := registerForm()
	form.Set("fullName", "Ana B")

	if w := send(r, http.MethodPut, "/api/users/1", form); w.Body.String() != `{"updated":true}` {
		t.Errorf("Expected updated true, got %d %s", w.Code, w.Body.String())
	}
	if w := send(r, http.MethodPut, "/api/users/999999", form); w.Body.String() != `{"updated":false}` {
		t.Errorf("Expected updated false, got %d %s", w.Code, w.Body.String())
	}
	if w := send(r, http.MethodPut, "/api/users/0", form); w.Code != http.StatusBadRequest || w.Body.String() != `{"error":"User id is required for update"}` {
		t.Errorf("Expected id error, got %d %s", w.Code, w.Body.String())
	}
}

func TestDelete(t *testing.T) {
	r := setupRouter(memoryStore(map[int64]User{1: {ID: 1}}), nil)

	if w := send(r, http.MethodDelete, "/api/users/1", nil); w.Body.String() != `{"deleted":true}` {
		t.Errorf("Expected deleted true, got %s", w.Body.String())
	}
	if w := send(r, http.MethodDelete, "/api/users/1", nil); w.Code != http.StatusOK || w.Body.String() != `{"deleted":false}` {
		t.Errorf("Expected deleted false, got %d %s", w.Code, w.Body.String())
	}
}

func TestList_ByEmail(t *testing.T) {
	r := setupRouter(memoryStore(map[int64]User{1: {ID: 1, FullName: "Ana", Email: "a@x.io", Password: "secret1"}}), nil)

	w := send(r, http.MethodGet, "/api/users?email=a@x.io", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	var found []User
	if err := json.Unmarshal(w.Body.Bytes(), &found); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if len(found) != 1 || found[0].ID != 1 || found[0].Email != "a@x.io" {
		t.Errorf("Expected the matching user, got %+v", found)
	}

	w = send(r, http.MethodGet, "/api/users?email=nobody@x.io", nil)
	if w.Code != http.StatusOK || w.Body.String() != "[]" {
		t.Errorf("Expected empty list, got %d %s", w.Code, w.Body.String())
	}
}
