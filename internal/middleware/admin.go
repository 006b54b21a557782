package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/playmatatu/ballpark/internal/admin"
)

// AdminPhoneKey is the gin context key holding the authenticated admin.
const AdminPhoneKey = "admin_phone"

// AdminAuth checks the X-Admin-Phone and X-Admin-Token headers against the
// admin_accounts table.
func AdminAuth(db *sqlx.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		phone := c.GetHeader("X-Admin-Phone")
		token := c.GetHeader("X-Admin-Token")
		if phone == "" || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}
		if db == nil {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Admin API unavailable"})
			return
		}

		acc, err := admin.Authenticate(c.Request.Context(), db, phone, token, c.ClientIP())
		if err != nil {
			admin.LogAdminAction(c.Request.Context(), db, phone, c.ClientIP(), c.FullPath(), "authenticate", nil, false)
			status := http.StatusUnauthorized
			if errors.Is(err, admin.ErrIPNotAllowed) {
				status = http.StatusForbidden
			}
			c.AbortWithStatusJSON(status, gin.H{"error": "Invalid admin credentials"})
			return
		}

		c.Set(AdminPhoneKey, acc.Phone)
		c.Next()
	}
}
