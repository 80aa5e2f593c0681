package controllers

import (
	"strings"
	"time"

	"github.com/akhil-629/EventSphere/config"
	"github.com/akhil-629/EventSphere/models"
	"github.com/akhil-629/EventSphere/utils"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthController handles admin authentication. The payment flow takes no
// dependency on any of this; it only guards the registration read paths.
type AuthController struct {
	db  *gorm.DB
	cfg *config.Config
}

// NewAuthController creates an AuthController
func NewAuthController(db *gorm.DB, cfg *config.Config) *AuthController {
	return &AuthController{db: db, cfg: cfg}
}

// AdminLoginRequest represents the admin login request
type AdminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// POST /api/admin/login
func (a *AuthController) AdminLogin(c *gin.Context) {
	utils.LogInfo("AdminLogin called")

	var req AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Password == "" {
		utils.LogError("Invalid admin login request")
		utils.BadRequest(c, "Username and password are required")
		return
	}

	var admin models.Admin
	if err := a.db.Where("username = ?", req.Username).First(&admin).Error; err != nil {
		utils.LogError("Admin not found for username: %s", req.Username)
		utils.Unauthorized(c, "Invalid credentials")
		return
	}

	if !admin.IsActive {
		utils.LogError("Inactive admin account attempted login: %s", admin.Username)
		utils.Forbidden(c, "Admin account is inactive")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(req.Password)); err != nil {
		utils.LogSecurity("Invalid password for admin: %s", admin.Username)
		utils.Unauthorized(c, "Invalid credentials")
		return
	}

	// Update last login
	admin.LastLogin = time.Now()
	if err := a.db.Save(&admin).Error; err != nil {
		utils.LogError("Failed to update last login for admin: %s: %v", admin.Username, err)
	}

	session := sessions.Default(c)
	session.Set("is_admin", true)
	session.Set("admin_username", admin.Username)
	if err := session.Save(); err != nil {
		utils.LogError("Failed to save session for admin: %s: %v", admin.Username, err)
		utils.InternalServerError(c, "Login failed. Please try again.")
		return
	}

	payload := gin.H{"message": "Login successful"}

	// Non-browser clients authenticate with a bearer token instead of the
	// session cookie.
	if a.cfg.JWTSecret != "" {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"admin_id": admin.ID,
			"exp":      time.Now().Add(time.Hour * 24).Unix(),
		})
		tokenString, err := token.SignedString([]byte(a.cfg.JWTSecret))
		if err != nil {
			utils.LogError("Failed to sign JWT token for admin: %s: %v", admin.Username, err)
			utils.InternalServerError(c, "Login failed. Please try again.")
			return
		}
		payload["token"] = tokenString
	}

	utils.LogInfo("Admin login successful: %s", admin.Username)
	utils.Success(c, payload)
}

// GET /api/admin/check-auth
func (a *AuthController) CheckAuth(c *gin.Context) {
	session := sessions.Default(c)
	if isAdmin, ok := session.Get("is_admin").(bool); ok && isAdmin {
		c.JSON(200, gin.H{
			"authenticated": true,
			"username":      session.Get("admin_username"),
		})
		return
	}
	c.JSON(200, gin.H{"authenticated": false})
}

// POST /api/admin/logout
func (a *AuthController) AdminLogout(c *gin.Context) {
	utils.LogInfo("AdminLogout called")

	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		utils.LogError("Failed to clear session on logout: %v", err)
		utils.InternalServerError(c, "Logout failed")
		return
	}

	// Blacklist the bearer token if one was presented
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		a.blacklistToken(tokenString)
	}

	utils.Success(c, gin.H{"message": "Logged out successfully"})
}

func (a *AuthController) blacklistToken(tokenString string) {
	expiresAt := time.Now().Add(24 * time.Hour) // fallback

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(a.cfg.JWTSecret), nil
	})
	if err == nil {
		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			if exp, ok := claims["exp"].(float64); ok {
				expiresAt = time.Unix(int64(exp), 0)
			}
		}
	}

	blacklisted := models.BlacklistedToken{
		Token:     tokenString,
		ExpiresAt: expiresAt,
	}
	if err := a.db.Create(&blacklisted).Error; err != nil {
		utils.LogError("Failed to blacklist token on logout: %v", err)
	}
}

// SeedAdmin ensures the configured admin account exists. The password is
// bcrypt-hashed before it ever touches the database.
func SeedAdmin(db *gorm.DB, cfg *config.Config) error {
	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		utils.LogInfo("ADMIN_USERNAME/ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return utils.WrapError(err, "failed to hash admin password")
	}

	admin := models.Admin{
		Username: cfg.AdminUsername,
		Password: string(hashedPassword),
		IsActive: true,
	}
	if err := db.FirstOrCreate(&admin, models.Admin{Username: admin.Username}).Error; err != nil {
		return utils.WrapError(err, "failed to seed admin")
	}

	utils.LogInfo("Admin account ready: %s", admin.Username)
	return nil
}
