package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-ddd-todo/internal/domain/entity"
	"github.com/oksasatya/go-ddd-todo/pkg/helpers"
	"github.com/oksasatya/go-ddd-todo/pkg/response"
)

const (
	identityKey = "auth.identity"
	// CtxUserIDKey is read by KeyByUserID.
	CtxUserIDKey = "userID"
)

// TokenVerifier is satisfied by *helpers.JWTManager.
type TokenVerifier interface {
	Verify(token string) (*helpers.Claims, error)
}

// Auth validates the bearer token in the Authorization header.
// No header or an empty token answers 401; anything present but unusable
// answers 403. On success the caller's Identity is attached to the context.
func Auth(tokens TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" {
			response.Abort(c, http.StatusUnauthorized, "missing access token", nil)
			return
		}
		scheme, token, found := strings.Cut(header, " ")
		if !strings.EqualFold(scheme, "Bearer") {
			response.Abort(c, http.StatusForbidden, "invalid access token", nil)
			return
		}
		token = strings.TrimSpace(token)
		if !found || token == "" {
			response.Abort(c, http.StatusUnauthorized, "missing access token", nil)
			return
		}
		claims, err := tokens.Verify(token)
		if err != nil || claims.UserID == "" {
			response.Abort(c, http.StatusForbidden, "invalid access token", nil)
			return
		}

		c.Set(identityKey, entity.Identity{UserID: claims.UserID})
		c.Set(CtxUserIDKey, claims.UserID)
		c.Next()
	}
}

// IdentityFrom returns the Identity attached by Auth.
func IdentityFrom(c *gin.Context) (entity.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return entity.Identity{}, false
	}
	who, ok := v.(entity.Identity)
	return who, ok && who.UserID != ""
}
