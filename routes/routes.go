package routes

import (
	"github.com/akhil-629/EventSphere/config"
	"github.com/akhil-629/EventSphere/controllers"
	"github.com/akhil-629/EventSphere/gateway"
	"github.com/akhil-629/EventSphere/middleware"
	"github.com/akhil-629/EventSphere/repository"
	"github.com/akhil-629/EventSphere/utils"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter initializes and returns the Gin router with all routes
func SetupRouter(db *gorm.DB, cfg *config.Config) *gin.Engine {
	router := gin.New()

	router.Use(utils.LoggerMiddleware())
	router.Use(utils.RecoveryMiddleware())
	router.Use(utils.CORSMiddleware())
	router.Use(utils.RequestIDMiddleware())
	router.Use(utils.SecurityHeadersMiddleware())

	// Admin session cookie store
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		MaxAge:   utils.SessionMaxAge,
		Path:     "/",
		Secure:   cfg.Env == "production",
		HttpOnly: true,
	})
	router.Use(sessions.Sessions(utils.SessionCookieName, store))

	repo := repository.NewRegistrationRepository(db)
	issuer := gateway.NewRazorpayIssuer(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)

	payments := controllers.NewPaymentController(repo, issuer, cfg)
	registrations := controllers.NewRegistrationController(repo)
	auth := controllers.NewAuthController(db, cfg)

	api := router.Group("/api")
	{
		// Public payment flow
		api.POST("/create-order", payments.CreateOrder)
		api.POST("/verify-payment", payments.VerifyPayment)

		// Admin authentication
		admin := api.Group("/admin")
		{
			admin.POST("/login", auth.AdminLogin)
			admin.GET("/check-auth", auth.CheckAuth)
			admin.POST("/logout", auth.AdminLogout)
		}

		// Admin-only registration read paths
		protected := api.Group("")
		protected.Use(middleware.AdminRequired(db, cfg))
		{
			protected.GET("/registrations", registrations.List)
			protected.GET("/registrations/export", registrations.Export)
			protected.GET("/registrations/:id/receipt", registrations.DownloadReceipt)
		}
	}

	return router
}
