package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charityhub/charityhub/internal/auth"
	"github.com/charityhub/charityhub/internal/domain/user"
	"github.com/charityhub/charityhub/internal/http/handlers"
	"github.com/charityhub/charityhub/internal/security"
	"github.com/gin-gonic/gin"
)

// Make sure Gin does not spam the console during the test

func init() {
	gin.SetMode(gin.TestMode)
}

// Fake store implementing the handlers.UserReader/UserWriter/UserLister
// interfaces, with call counters so tests can assert the store stayed idle.

type fakeUsersRepo struct {
	getFn    func(ctx context.Context, email string) (user.User, error)
	createFn func(ctx context.Context, name, email, passwordHash string) (user.User, error)
	listFn   func(ctx context.Context) ([]user.User, error)

	getCalls    int
	createCalls int
	listCalls   int
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	f.getCalls++

	if f.getFn != nil {
		return f.getFn(ctx, email)
	}

	return user.User{}, user.ErrNotFound
}

func (f *fakeUsersRepo) Create(ctx context.Context, name, email, passwordHash string) (user.User, error) {
	f.createCalls++

	if f.createFn != nil {
		return f.createFn(ctx, name, email, passwordHash)
	}

	return user.NewFromSignUp(name, email, passwordHash), nil
}

func (f *fakeUsersRepo) ListAll(ctx context.Context) ([]user.User, error) {
	f.listCalls++

	if f.listFn != nil {
		return f.listFn(ctx)
	}

	return []user.User{}, nil
}

func testJWTManager() *auth.Manager {
	return auth.NewManager("test-secret-key", 30*24*time.Hour)
}

func newAuthRouter(repo *fakeUsersRepo) *gin.Engine {
	h := handlers.NewAuthHandler(repo, repo, repo, testJWTManager(), testLogger())

	r := gin.New()
	r.POST("/signup", h.SignUp)
	r.POST("/login", h.Login)
	r.GET("/users", h.ListUsers)

	return r
}

func doJSON(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any

	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to unmarshal body %q: %v", w.Body.String(), err)
	}

	return out
}

// Signup tests

func TestSignUpSuccess(t *testing.T) {
	repo := &fakeUsersRepo{}

	var storedHash string

	repo.createFn = func(ctx context.Context, name, email, passwordHash string) (user.User, error) {
		storedHash = passwordHash
		return user.NewFromSignUp(name, email, passwordHash), nil
	}

	r := newAuthRouter(repo)

	w := doJSON(r, http.MethodPost, "/signup", `{"name":"A","email":"a@x.com","password":"secret"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body=%s", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)

	if body["acknowledged"] != true {
		t.Errorf("acknowledged = %v, want true", body["acknowledged"])
	}

	id, _ := body["insertedId"].(string)
	if id == "" {
		t.Errorf("insertedId missing from response: %v", body)
	}

	if repo.createCalls != 1 {
		t.Errorf("createCalls = %d, want 1", repo.createCalls)
	}

	// the stored value is a verifying hash, never the plaintext
	if storedHash == "secret" {
		t.Fatalf("plaintext password reached the store")
	}

	if err := security.CheckPassword(storedHash, "secret"); err != nil {
		t.Errorf("stored hash does not verify against the password: %v", err)
	}
}

func TestSignUpMissingFields(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "missing_name", body: `{"email":"a@x.com","password":"secret"}`},
		{name: "missing_email", body: `{"name":"A","password":"secret"}`},
		{name: "missing_password", body: `{"name":"A","email":"a@x.com"}`},
		{name: "empty_body", body: `{}`},
		{name: "invalid_json", body: `{"name":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeUsersRepo{}
			r := newAuthRouter(repo)

			w := doJSON(r, http.MethodPost, "/signup", tt.body)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400, body=%s", w.Code, w.Body.String())
			}

			body := decodeBody(t, w)
			if body["error"] != "All fields are required" {
				t.Errorf("error = %v, want %q", body["error"], "All fields are required")
			}

			// validation fails before any store access
			if repo.getCalls != 0 || repo.createCalls != 0 {
				t.Errorf("store observed %d reads and %d writes, want zero", repo.getCalls, repo.createCalls)
			}
		})
	}
}

func TestSignUpDuplicateEmail(t *testing.T) {
	repo := &fakeUsersRepo{
		getFn: func(ctx context.Context, email string) (user.User, error) {
			return user.User{ID: "existing", Email: email}, nil
		},
	}

	r := newAuthRouter(repo)

	w := doJSON(r, http.MethodPost, "/signup", `{"name":"A","email":"a@x.com","password":"secret"}`)

	// soft error: HTTP 200 with an error payload, by contract
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body=%s", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	if body["error"] != "User already exists" {
		t.Errorf("error = %v, want %q", body["error"], "User already exists")
	}

	if repo.createCalls != 0 {
		t.Errorf("createCalls = %d, want 0 (no second record)", repo.createCalls)
	}
}

func TestSignUpInsertConflict(t *testing.T) {
	// Two concurrent signups can both pass the existence read; the unique
	// email index then rejects the second insert. The loser still gets the
	// same soft conflict payload.
	repo := &fakeUsersRepo{
		createFn: func(ctx context.Context, name, email, passwordHash string) (user.User, error) {
			return user.User{}, user.ErrEmailTaken
		},
	}

	r := newAuthRouter(repo)

	w := doJSON(r, http.MethodPost, "/signup", `{"name":"A","email":"a@x.com","password":"secret"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body=%s", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	if body["error"] != "User already exists" {
		t.Errorf("error = %v, want %q", body["error"], "User already exists")
	}
}

func TestSignUpStoreErrors(t *testing.T) {
	tests := []struct {
		name      string
		repoSetUp func(*fakeUsersRepo)
	}{
		{
			name: "lookup_error",
			repoSetUp: func(f *fakeUsersRepo) {
				f.getFn = func(ctx context.Context, email string) (user.User, error) {
					return user.User{}, errors.New("db down")
				}
			},
		},
		{
			name: "insert_error",
			repoSetUp: func(f *fakeUsersRepo) {
				f.createFn = func(ctx context.Context, name, email, passwordHash string) (user.User, error) {
					return user.User{}, errors.New("db down")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeUsersRepo{}
			tt.repoSetUp(repo)

			r := newAuthRouter(repo)

			w := doJSON(r, http.MethodPost, "/signup", `{"name":"A","email":"a@x.com","password":"secret"}`)

			if w.Code != http.StatusInternalServerError {
				t.Fatalf("status = %d, want 500, body=%s", w.Code, w.Body.String())
			}
		})
	}
}

// Login tests

func seededRepo(t *testing.T, email, password string) *fakeUsersRepo {
	t.Helper()

	hash, err := security.HashPassword(password)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	stored := user.NewFromSignUp("A", email, hash)

	return &fakeUsersRepo{
		getFn: func(ctx context.Context, e string) (user.User, error) {
			if e == email {
				return stored, nil
			}
			return user.User{}, user.ErrNotFound
		},
	}
}

func TestLoginSuccess(t *testing.T) {
	repo := seededRepo(t, "a@x.com", "secret")
	r := newAuthRouter(repo)

	w := doJSON(r, http.MethodPost, "/login", `{"email":"a@x.com","password":"secret"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body=%s", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)

	if body["message"] != "Login successful" {
		t.Errorf("message = %v, want %q", body["message"], "Login successful")
	}

	token, _ := body["token"].(string)
	if token == "" {
		t.Fatalf("token missing from response: %v", body)
	}

	claims, err := testJWTManager().Parse(token)
	if err != nil {
		t.Fatalf("issued token does not parse: %v", err)
	}

	if claims.Email != "a@x.com" {
		t.Errorf("token email = %q, want %q", claims.Email, "a@x.com")
	}
}

func TestLoginBadCredentials(t *testing.T) {
	repo := seededRepo(t, "a@x.com", "secret")
	r := newAuthRouter(repo)

	wrongPassword := doJSON(r, http.MethodPost, "/login", `{"email":"a@x.com","password":"wrong"}`)
	unknownEmail := doJSON(r, http.MethodPost, "/login", `{"email":"nobody@x.com","password":"secret"}`)

	for name, w := range map[string]*httptest.ResponseRecorder{
		"wrong_password": wrongPassword,
		"unknown_email":  unknownEmail,
	} {
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s: status = %d, want 401, body=%s", name, w.Code, w.Body.String())
		}
	}

	// both failures must be textually indistinguishable
	pw := decodeBody(t, wrongPassword)
	em := decodeBody(t, unknownEmail)

	if pw["error"] != "Invalid email or password" || pw["error"] != em["error"] {
		t.Errorf("error payloads differ: %v vs %v", pw["error"], em["error"])
	}
}

func TestLoginMalformedStoredHash(t *testing.T) {
	// a corrupt stored hash is an internal failure, never a 401
	repo := &fakeUsersRepo{
		getFn: func(ctx context.Context, email string) (user.User, error) {
			return user.User{ID: "u1", Email: email, PasswordHash: "not-a-bcrypt-hash"}, nil
		},
	}

	r := newAuthRouter(repo)

	w := doJSON(r, http.MethodPost, "/login", `{"email":"a@x.com","password":"secret"}`)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500, body=%s", w.Code, w.Body.String())
	}
}

func TestLoginStoreError(t *testing.T) {
	repo := &fakeUsersRepo{
		getFn: func(ctx context.Context, email string) (user.User, error) {
			return user.User{}, errors.New("db down")
		},
	}

	r := newAuthRouter(repo)

	w := doJSON(r, http.MethodPost, "/login", `{"email":"a@x.com","password":"secret"}`)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500, body=%s", w.Code, w.Body.String())
	}
}

// List users tests

func TestListUsers(t *testing.T) {
	repo := &fakeUsersRepo{
		listFn: func(ctx context.Context) ([]user.User, error) {
			return []user.User{
				{ID: "u2", Name: "B", Email: "b@x.com", PasswordHash: "hash-b", Date: "Aug 30, 2026"},
				{ID: "u1", Name: "A", Email: "a@x.com", PasswordHash: "hash-a", Date: "Aug 29, 2026"},
			}, nil
		},
	}

	r := newAuthRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body=%s", w.Code, w.Body.String())
	}

	var users []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &users); err != nil {
		t.Fatalf("body is not a bare array: %v, body=%s", err, w.Body.String())
	}

	if len(users) != 2 || users[0]["id"] != "u2" {
		t.Errorf("unexpected listing: %v", users)
	}

	if strings.Contains(w.Body.String(), "hash-") {
		t.Errorf("password hashes leaked into the listing: %s", w.Body.String())
	}

	if w.Header().Get("ETag") == "" {
		t.Errorf("listing response missing ETag")
	}
}

func TestListUsersNotModified(t *testing.T) {
	repo := &fakeUsersRepo{}
	r := newAuthRouter(repo)

	first := httptest.NewRecorder()
	r.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/users", nil))

	etag := first.Header().Get("ETag")
	if etag == "" {
		t.Fatalf("no ETag on first response")
	}

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("If-None-Match", etag)

	second := httptest.NewRecorder()
	r.ServeHTTP(second, req)

	if second.Code != http.StatusNotModified {
		t.Fatalf("status = %d, want 304", second.Code)
	}
}

func TestListUsersStoreError(t *testing.T) {
	repo := &fakeUsersRepo{
		listFn: func(ctx context.Context) ([]user.User, error) {
			return nil, errors.New("db down")
		},
	}

	r := newAuthRouter(repo)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500, body=%s", w.Code, w.Body.String())
	}
}
