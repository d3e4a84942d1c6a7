package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contacts-api/internal/domain/entity"
	repo "contacts-api/internal/domain/repository"
	"contacts-api/pkg/helpers"
)

// stubUserRepo serves a fixed set of users keyed by email.
type stubUserRepo struct {
	users map[string]*entity.User
}

func (r *stubUserRepo) Create(context.Context, *entity.User) error { return nil }

func (r *stubUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return u, nil
}

func (r *stubUserRepo) UpdateRefreshToken(context.Context, int64, string) error { return nil }
func (r *stubUserRepo) ConfirmEmail(context.Context, string) error              { return nil }
func (r *stubUserRepo) UpdateAvatar(context.Context, int64, string) error       { return nil }

func guardFixture(t *testing.T) (*gin.Engine, *helpers.TokenManager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens, err := helpers.NewTokenManager("test-secret", time.Minute, time.Hour, time.Hour)
	require.NoError(t, err)
	users := &stubUserRepo{users: map[string]*entity.User{
		"user@example.com": {ID: 7, Username: "testUser", Email: "user@example.com", Confirmed: true},
	}}

	r := gin.New()
	r.GET("/me", Auth(tokens, users), func(c *gin.Context) {
		u := CurrentUser(c)
		require.NotNil(t, u)
		c.JSON(http.StatusOK, gin.H{"id": u.ID, "email": u.Email})
	})
	return r, tokens
}

func getMe(r *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthResolvesUser(t *testing.T) {
	r, tokens := guardFixture(t)

	token, _, err := tokens.Issue("user@example.com", helpers.ScopeAccess, 0)
	require.NoError(t, err)

	w := getMe(r, "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		ID    int64  `json:"id"`
		Email string `json:"email"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, int64(7), body.ID)
	assert.Equal(t, "user@example.com", body.Email)
}

func TestAuthRejectsMissingHeader(t *testing.T) {
	r, _ := guardFixture(t)

	w := getMe(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRejectsMalformedHeader(t *testing.T) {
	r, tokens := guardFixture(t)

	token, _, err := tokens.Issue("user@example.com", helpers.ScopeAccess, 0)
	require.NoError(t, err)

	for _, header := range []string{"Bearer", "Token " + token, token} {
		w := getMe(r, header)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
	}
}

func TestAuthRejectsWrongScope(t *testing.T) {
	r, tokens := guardFixture(t)

	for _, scope := range []helpers.TokenScope{helpers.ScopeRefresh, helpers.ScopeEmailConfirm} {
		token, _, err := tokens.Issue("user@example.com", scope, 0)
		require.NoError(t, err)

		w := getMe(r, "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "scope %q", scope)
	}
}

func TestAuthRejectsExpiredToken(t *testing.T) {
	r, tokens := guardFixture(t)

	token, _, err := tokens.Issue("user@example.com", helpers.ScopeAccess, time.Nanosecond)
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)

	w := getMe(r, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRejectsUnknownSubject(t *testing.T) {
	r, tokens := guardFixture(t)

	token, _, err := tokens.Issue("deleted@example.com", helpers.ScopeAccess, 0)
	require.NoError(t, err)

	w := getMe(r, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBearerToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		header string
		want   string
	}{
		{"Bearer abc.def.ghi", "abc.def.ghi"},
		{"bearer abc.def.ghi", "abc.def.ghi"},
		{"", ""},
		{"Bearer", ""},
		{"Basic dXNlcjpwYXNz", ""},
	}
	for _, tc := range cases {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		if tc.header != "" {
			c.Request.Header.Set("Authorization", tc.header)
		}
		assert.Equal(t, tc.want, BearerToken(c), "header %q", tc.header)
	}
}
