package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"credauth/internal/auth"
	"credauth/internal/auth/credentials"
	"credauth/internal/auth/signin"
	"credauth/internal/middleware"
	"credauth/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCredentials struct {
	identity    *auth.Identity
	authErr     error
	setErr      error
	authCalls   int
	setPassword []string
}

func (s *stubCredentials) Authenticate(ctx context.Context, email, password string) (*auth.Identity, error) {
	s.authCalls++
	return s.identity, s.authErr
}

func (s *stubCredentials) SetPassword(ctx context.Context, userID, plaintext string) error {
	s.setPassword = append(s.setPassword, plaintext)
	return s.setErr
}

type fakeStore struct {
	created   []session.Session
	deleted   []string
	createErr error
}

func (f *fakeStore) Create(ctx context.Context, s session.Session) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, s)
	return nil
}

func (f *fakeStore) Get(ctx context.Context, token string) (*session.Session, error) {
	return nil, nil
}

func (f *fakeStore) Delete(ctx context.Context, token string) error {
	f.deleted = append(f.deleted, token)
	return nil
}

func newTestRouter(t *testing.T, creds *stubCredentials, store *fakeStore) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := NewHandler(creds, signin.NewIssuer(store, false), store, false)

	r := gin.New()
	r.POST("/api/auth/callback/credentials", h.Callback)
	r.POST("/auth/logout", h.Logout)
	return r
}

func loginForm(email, password string) *http.Request {
	form := url.Values{}
	form.Set("email", email)
	form.Set("password", password)

	req := httptest.NewRequest(
		http.MethodPost,
		"/api/auth/callback/credentials",
		strings.NewReader(form.Encode()),
	)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == session.CookieName {
			return c
		}
	}
	return nil
}

func TestCallback_Success(t *testing.T) {
	creds := &stubCredentials{identity: &auth.Identity{ID: "user-1", Email: "a@b.com"}}
	store := &fakeStore{}
	router := newTestRouter(t, creds, store)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, loginForm("a@b.com", "Secret1!"))

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, store.created, 1)

	record := store.created[0]
	assert.Equal(t, "user-1", record.UserID)
	assert.WithinDuration(t, time.Now().Add(session.Validity), record.ExpiresAt, time.Second)

	cookie := sessionCookie(w)
	require.NotNil(t, cookie)
	assert.Equal(t, record.Token, cookie.Value)
}

func TestCallback_InvalidCredentials(t *testing.T) {
	// Unknown email and wrong password are the same nil identity; the
	// response must not distinguish them.
	creds := &stubCredentials{identity: nil}
	store := &fakeStore{}
	router := newTestRouter(t, creds, store)

	w1 := httptest.NewRecorder()
	router.ServeHTTP(w1, loginForm("unknown@x.com", "Secret1!"))

	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, loginForm("a@b.com", "wrong"))

	assert.Equal(t, http.StatusUnauthorized, w1.Code)
	assert.Equal(t, http.StatusUnauthorized, w2.Code)
	assert.Equal(t, w1.Body.String(), w2.Body.String())
	assert.Empty(t, store.created)
	assert.Nil(t, sessionCookie(w1))
}

func TestCallback_LookupFailure(t *testing.T) {
	creds := &stubCredentials{authErr: errors.New("store down")}
	store := &fakeStore{}
	router := newTestRouter(t, creds, store)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, loginForm("a@b.com", "Secret1!"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, store.created)
}

func TestCallback_SessionStoreFailure(t *testing.T) {
	creds := &stubCredentials{identity: &auth.Identity{ID: "user-1"}}
	store := &fakeStore{createErr: errors.New("store down")}
	router := newTestRouter(t, creds, store)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, loginForm("a@b.com", "Secret1!"))

	// Sign-in aborts: no success response, no cookie.
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Nil(t, sessionCookie(w))
}

func TestLogout(t *testing.T) {
	t.Run("with session cookie", func(t *testing.T) {
		store := &fakeStore{}
		router := newTestRouter(t, &stubCredentials{}, store)

		req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "tok-1"})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, []string{"tok-1"}, store.deleted)

		cleared := sessionCookie(w)
		require.NotNil(t, cleared)
		assert.Empty(t, cleared.Value)
		assert.Negative(t, cleared.MaxAge)
	})

	t.Run("without cookie is idempotent", func(t *testing.T) {
		store := &fakeStore{}
		router := newTestRouter(t, &stubCredentials{}, store)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/auth/logout", nil))

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, store.deleted)
	})
}

func changePasswordRouter(t *testing.T, creds *stubCredentials, userID string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := NewHandler(creds, signin.NewIssuer(&fakeStore{}, false), &fakeStore{}, false)

	r := gin.New()
	r.POST("/api/auth/password", func(c *gin.Context) {
		if userID != "" {
			ctx := middleware.ContextWithUserID(c.Request.Context(), userID)
			c.Request = c.Request.WithContext(ctx)
		}
		h.ChangePassword(c)
	})
	return r
}

func passwordForm(password string) *http.Request {
	form := url.Values{}
	form.Set("password", password)

	req := httptest.NewRequest(
		http.MethodPost,
		"/api/auth/password",
		strings.NewReader(form.Encode()),
	)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestChangePassword(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		creds := &stubCredentials{}
		router := changePasswordRouter(t, creds, "user-1")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, passwordForm("NewSecret1"))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{"NewSecret1"}, creds.setPassword)
	})

	t.Run("weak password", func(t *testing.T) {
		creds := &stubCredentials{setErr: credentials.ErrWeakPassword}
		router := changePasswordRouter(t, creds, "user-1")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, passwordForm("short1"))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("no authenticated user", func(t *testing.T) {
		creds := &stubCredentials{}
		router := changePasswordRouter(t, creds, "")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, passwordForm("NewSecret1"))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Empty(t, creds.setPassword)
	})
}
