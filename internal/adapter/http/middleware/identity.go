package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/iPad7/gantt-4team/internal/core/ports"
	"github.com/iPad7/gantt-4team/pkg/apierrors"
)

const actorIDKey = "actor_id"

// IdentityMiddleware resolves the bearer token to the acting user id.
// Requests without a valid token are rejected with 401.
func IdentityMiddleware(auth ports.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || strings.TrimSpace(token) == "" {
			abortUnauthorized(c)
			return
		}

		actorID, err := auth.ParseToken(strings.TrimSpace(token))
		if err != nil {
			abortUnauthorized(c)
			return
		}

		c.Set(actorIDKey, actorID)
		c.Next()
	}
}

func GetActorID(c *gin.Context) (uint64, bool) {
	value, exists := c.Get(actorIDKey)
	if !exists {
		return 0, false
	}
	id, ok := value.(uint64)
	return id, ok
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(
		http.StatusUnauthorized,
		apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgUnauthorized, GetLang(c)),
	)
}
