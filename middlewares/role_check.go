package middlewares

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/qrmenu-app/models"
	"github.com/yeremiapane/qrmenu-app/utils"
)

// RequireRoles passes only authenticated users holding one of the given
// roles. The owner role passes every gate.
func RequireRoles(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}

	return func(c *gin.Context) {
		userRole, exists := c.Get("role")
		if !exists {
			utils.RespondError(c, http.StatusUnauthorized, fmt.Errorf("unauthorized"))
			c.Abort()
			return
		}

		role, ok := userRole.(string)
		if !ok || (!allowed[role] && role != models.RoleOwner) {
			utils.RespondError(c, http.StatusForbidden, fmt.Errorf("insufficient role"))
			c.Abort()
			return
		}
		c.Next()
	}
}
