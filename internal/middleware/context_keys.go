package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/vidanueva/church_admin_app/internal/core/domain"
)

const (
	// userIDKey is the key used to store the authenticated user's ID.
	userIDKey = contextKey("userID")
	// identityKey is the key used to store the resolved actor identity.
	identityKey = contextKey("identity")
)

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get(string(userIDKey))
	if !exists {
		// check in the request context as well
		userIDVal := c.Request.Context().Value(userIDKey)
		if userIDVal != nil {
			return userIDVal.(string), true
		}
		return "", false
	}

	userID, ok := userIDVal.(string)
	if !ok {
		return "", false
	}

	return userID, true
}

// GetIdentityFromContext retrieves the resolved actor identity from the Gin
// context. The auth middleware stores it on every authenticated request.
func GetIdentityFromContext(c *gin.Context) (domain.Identity, bool) {
	identityVal, exists := c.Get(string(identityKey))
	if !exists {
		identityVal = c.Request.Context().Value(identityKey)
		if identityVal == nil {
			return domain.Identity{}, false
		}
	}

	identity, ok := identityVal.(domain.Identity)
	if !ok {
		return domain.Identity{}, false
	}
	return identity, true
}

// GetIdentityFromCtx retrieves the resolved actor identity from a standard
// context.
func GetIdentityFromCtx(ctx context.Context) (domain.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(domain.Identity)
	return identity, ok
}
