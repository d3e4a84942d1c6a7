package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"contacts-api/internal/domain/entity"
	repo "contacts-api/internal/domain/repository"
	"contacts-api/pkg/helpers"
	"contacts-api/pkg/response"
)

// CtxUserKey is the gin context key holding the authenticated user.
const CtxUserKey = "authUser"

// BearerToken extracts the credential from the Authorization header.
func BearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// Auth resolves the bearer token into a live user identity. The token must
// carry the access scope; the user is re-resolved from the store on every
// request. Any failure aborts with a generic unauthorized response.
func Auth(tokens *helpers.TokenManager, users repo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := BearerToken(c)
		if token == "" {
			response.AbortError(c, http.StatusUnauthorized, "could not validate credentials", nil)
			return
		}
		email, err := tokens.Decode(token, helpers.ScopeAccess)
		if err != nil {
			// expired, malformed, and wrong-scope tokens all collapse to 401
			response.AbortError(c, http.StatusUnauthorized, "could not validate credentials", nil)
			return
		}
		u, err := users.GetByEmail(c.Request.Context(), email)
		if err != nil || u == nil {
			response.AbortError(c, http.StatusUnauthorized, "could not validate credentials", nil)
			return
		}
		c.Set(CtxUserKey, u)
		c.Next()
	}
}

// CurrentUser returns the user resolved by Auth, or nil outside the guard.
func CurrentUser(c *gin.Context) *entity.User {
	v, ok := c.Get(CtxUserKey)
	if !ok {
		return nil
	}
	u, _ := v.(*entity.User)
	return u
}
