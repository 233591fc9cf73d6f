package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mmdatafocus/autoservice_backend/config"
	"github.com/mmdatafocus/autoservice_backend/models"
	"github.com/mmdatafocus/autoservice_backend/utils"
)

// SessionMiddleware resolves the session token to the logged-in user and
// stamps username, user id and business id into the request context. Routes
// that require a session check the context themselves; requests without a
// token pass through untouched.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Request.Header.Get("token")
		if token == "" {
			c.Next()
			return
		}
		username, exists, err := config.GetRedisValue("Token:" + token)
		if err != nil || !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}

		ctx := utils.SetTokenInContext(c.Request.Context(), token)
		ctx = utils.SetUsernameInContext(ctx, username)

		if user, err := models.GetUserByUsername(ctx, username); err == nil {
			ctx = utils.SetUserIdInContext(ctx, user.ID)
			ctx = utils.SetUserNameInContext(ctx, user.Name)
			ctx = utils.SetBusinessIdInContext(ctx, user.BusinessId)
			if user.Role == models.UserRoleAdmin {
				ctx = utils.SetIsAdminInContext(ctx, true)
			}
		}

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequireSession guards routes that must have a resolved business scope.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		businessId, ok := utils.GetBusinessIdFromContext(c.Request.Context())
		if !ok || businessId == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}
		c.Next()
	}
}
