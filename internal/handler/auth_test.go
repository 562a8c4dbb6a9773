package handler

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/longhouse/storymap/api/internal/middleware"
	"github.com/longhouse/storymap/api/internal/model"
	"github.com/longhouse/storymap/api/internal/repository"
	"github.com/longhouse/storymap/api/internal/service"
	"github.com/longhouse/storymap/api/pkg/jwt"
)

func newAuthHandler(t *testing.T) (*AuthHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	tokens := jwt.NewTestService(key, "storymap-test", 15*time.Minute)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.NewAuthService(repository.NewUserRepository(db), tokens, logger)
	return NewAuthHandler(svc), mock
}

func TestAuthHandler_Login_Success(t *testing.T) {
	t.Parallel()
	h, mock := newAuthHandler(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("speak-friend"), bcrypt.MinCost)
	require.NoError(t, err)

	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT .+ FROM users`).
		WithArgs("anna@community.example").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "email", "display_name", "password_hash", "role", "community_id",
			"created_on", "updated_on",
		}).AddRow(int64(3), "anna@community.example", "Anna", string(hash), "elder", int64(1), now, now))

	req := httptest.NewRequest(http.MethodPost, "/v1/login",
		strings.NewReader(`{"email":"anna@community.example","password":"speak-friend"}`))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data model.LoginResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Data.AccessToken)
	assert.Equal(t, model.RoleElder, resp.Data.Identity.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthHandler_Login_BadCredentials_Unauthorized(t *testing.T) {
	t.Parallel()
	h, mock := newAuthHandler(t)

	mock.ExpectQuery(`SELECT .+ FROM users`).
		WithArgs("ghost@community.example").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "email", "display_name", "password_hash", "role", "community_id",
			"created_on", "updated_on",
		}))

	req := httptest.NewRequest(http.MethodPost, "/v1/login",
		strings.NewReader(`{"email":"ghost@community.example","password":"nope"}`))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthHandler_Login_MalformedBody_BadRequest(t *testing.T) {
	t.Parallel()
	h, mock := newAuthHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/login", strings.NewReader(`{`))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthHandler_Profile_ReturnsIdentity(t *testing.T) {
	t.Parallel()
	h, _ := newAuthHandler(t)

	identity := &model.SessionIdentity{UserID: 3, Email: "anna@community.example", Role: model.RoleElder, CommunityID: 1}
	req := httptest.NewRequest(http.MethodGet, "/v1/profile", nil)
	req = req.WithContext(context.WithValue(req.Context(), middleware.IdentityKey, identity))
	rec := httptest.NewRecorder()
	h.Profile(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data model.SessionIdentity `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(3), resp.Data.UserID)
}

func TestAuthHandler_Profile_NoIdentity_Unauthorized(t *testing.T) {
	t.Parallel()
	h, _ := newAuthHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/profile", nil)
	rec := httptest.NewRecorder()
	h.Profile(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
