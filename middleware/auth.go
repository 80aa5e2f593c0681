package middleware

import (
	"fmt"
	"strings"

	"github.com/akhil-629/EventSphere/config"
	"github.com/akhil-629/EventSphere/models"
	"github.com/akhil-629/EventSphere/utils"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"gorm.io/gorm"
)

// AdminRequired guards admin-only routes. It accepts either the session
// cookie set by the login endpoint or a non-blacklisted bearer JWT, and sets
// the authenticated-admin flag on the request context. Handlers downstream
// read the flag from the context, never from any ambient state.
func AdminRequired(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		if isAdmin, ok := session.Get("is_admin").(bool); ok && isAdmin {
			c.Set("is_admin", true)
			c.Set("admin_username", session.Get("admin_username"))
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") || cfg.JWTSecret == "" {
			utils.LogError("Unauthorized admin access attempt: %s %s", c.Request.Method, c.Request.URL.Path)
			utils.Unauthorized(c, "Unauthorized")
			c.Abort()
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			utils.LogError("Invalid admin token: %v", err)
			utils.Unauthorized(c, "Unauthorized")
			c.Abort()
			return
		}

		var blacklisted models.BlacklistedToken
		if err := db.Where("token = ?", tokenString).First(&blacklisted).Error; err == nil {
			utils.LogSecurity("Blacklisted admin token presented")
			utils.Unauthorized(c, "Unauthorized")
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			utils.Unauthorized(c, "Unauthorized")
			c.Abort()
			return
		}
		adminID, ok := claims["admin_id"].(float64)
		if !ok {
			utils.Unauthorized(c, "Unauthorized")
			c.Abort()
			return
		}

		var admin models.Admin
		if err := db.First(&admin, uint(adminID)).Error; err != nil {
			utils.LogError("Admin not found for token: %v", err)
			utils.Unauthorized(c, "Unauthorized")
			c.Abort()
			return
		}
		if !admin.IsActive {
			utils.LogError("Inactive admin attempted access: %d", admin.ID)
			utils.Forbidden(c, "Admin account is inactive")
			c.Abort()
			return
		}

		c.Set("is_admin", true)
		c.Set("admin_username", admin.Username)
		c.Next()
	}
}
