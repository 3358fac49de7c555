package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/cinema-booking/internal/session"
)

// gate builds the middleware chain admin endpoints run behind and returns
// the response for a request carrying the given Authorization header.
func gate(t *testing.T, store *session.Store, authorization string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/admin/movies", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Session(store)(RequireAdmin()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}))
	assert.NoError(t, handler(c))
	return rec
}

func TestRequireAdmin_Anonymous(t *testing.T) {
	db, _ := redismock.NewClientMock()
	store := session.NewStore(db)

	rec := gate(t, store, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "user is not logged in")
}

func TestRequireAdmin_UnknownToken(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := session.NewStore(db)

	mock.ExpectHGetAll("session:stale").SetVal(map[string]string{})

	rec := gate(t, store, "Bearer stale")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "user is not logged in")
}

func TestRequireAdmin_StandardClient(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := session.NewStore(db)

	mock.ExpectHGetAll("session:tok1").SetVal(map[string]string{
		"client_id": "7",
		"role":      "STANDARD",
	})
	mock.ExpectExpire("session:tok1", 30*time.Minute).SetVal(true)

	rec := gate(t, store, "Bearer tok1")

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "user does not have access rights")
}

func TestRequireAdmin_Admin(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := session.NewStore(db)

	mock.ExpectHGetAll("session:tok2").SetVal(map[string]string{
		"client_id": "1",
		"role":      "ADMIN",
	})
	mock.ExpectExpire("session:tok2", 30*time.Minute).SetVal(true)

	rec := gate(t, store, "Bearer tok2")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSession_InjectsIdentity(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := session.NewStore(db)

	mock.ExpectHGetAll("session:tok3").SetVal(map[string]string{
		"client_id": "42",
		"role":      "STANDARD",
	})
	mock.ExpectExpire("session:tok3", 30*time.Minute).SetVal(true)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer tok3")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Session(store)(func(c echo.Context) error {
		assert.Equal(t, uint64(42), c.Get("client_id"))
		assert.Equal(t, "tok3", c.Get("session_token"))
		return c.NoContent(http.StatusOK)
	})
	assert.NoError(t, handler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}
