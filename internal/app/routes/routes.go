package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stellarion/backend/internal/app/controllers"
	"github.com/stellarion/backend/internal/app/models"
	"github.com/stellarion/backend/internal/app/models/dto"
	"github.com/stellarion/backend/internal/middleware"
)

// Controllers bundles everything SetupRouter wires.
type Controllers struct {
	Auth          *controllers.AuthController
	Users         *controllers.UserController
	Blogs         *controllers.BlogController
	Guide         *controllers.ApplicationController
	Mentor        *controllers.ApplicationController
	Influencer    *controllers.ApplicationController
	NightCamps    *controllers.NightCampController
	Payments      *controllers.PaymentController
	Subscriptions *controllers.SubscriptionController
	Chatbot       *controllers.ChatbotController
	NASA          *controllers.NASAController
}

// SetupRouter configures all application routes.
func SetupRouter(router *gin.Engine, c Controllers, authMw *middleware.AuthMiddleware) {
	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, dto.Success(gin.H{"status": "ok"}))
	})

	v1 := router.Group("/api/v1")

	// --- Public routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/signup", c.Auth.Signup)
		auth.POST("/signin", c.Auth.Signin)
	}

	// The gateway webhook authenticates by signature, not by token.
	v1.POST("/payments/payhere/notify", c.Payments.Notify)

	v1.GET("/nasa-opportunities", c.NASA.List)
	v1.GET("/nasa-opportunities/:id", c.NASA.Get)

	// --- Authenticated routes ---
	authed := v1.Group("")
	authed.Use(authMw.Authenticate())
	{
		authed.POST("/auth/signout", c.Auth.Signout)
		authed.GET("/auth/profile", c.Auth.Profile)
		authed.PUT("/auth/password", c.Auth.ChangePassword)
		authed.GET("/auth/verify", c.Auth.Verify)

		user := authed.Group("/user")
		{
			user.GET("/profile", c.Users.Detail)
			user.PUT("/profile", c.Users.UpdateProfile)
			user.GET("/settings", c.Users.Settings)
			user.PUT("/settings", c.Users.UpdateSettings)
			user.POST("/role-upgrade", c.Users.RequestRoleUpgrade)
			user.GET("/role-upgrade", c.Users.MyRoleUpgrades)
			user.GET("/export", c.Users.ExportData)
			user.DELETE("", c.Users.DeleteAccount)
		}

		admin := authed.Group("/users")
		admin.Use(authMw.RequireRoles(models.RoleAdmin, models.RoleModerator))
		{
			admin.GET("", c.Users.List)
			admin.GET("/role-upgrades", c.Users.ListRoleUpgrades)
			admin.PUT("/role-upgrades/:id", c.Users.ReviewRoleUpgrade)
		}
		adminOnly := authed.Group("/users")
		adminOnly.Use(authMw.RequireRoles(models.RoleAdmin))
		{
			adminOnly.PUT("/:id/role", c.Users.AssignRole)
			adminOnly.PUT("/:id/activation", c.Users.SetActive)
		}

		blogs := authed.Group("/blogs")
		{
			blogs.GET("", c.Blogs.List)
			blogs.GET("/:id", c.Blogs.Get)
			blogs.POST("", c.Blogs.Create)
			blogs.PUT("/:id", c.Blogs.Update)
			blogs.DELETE("/:id", c.Blogs.Delete)
			blogs.POST("/:id/like", c.Blogs.ToggleLike)
			blogs.GET("/:id/comments", c.Blogs.ListComments)
			blogs.POST("/:id/comments", c.Blogs.AddComment)
			blogs.DELETE("/:id/comments/:commentId", c.Blogs.DeleteComment)
		}

		registerApplicationRoutes(authed, "/guide-applications", c.Guide, authMw)
		registerApplicationRoutes(authed, "/mentor-applications", c.Mentor, authMw)
		registerApplicationRoutes(authed, "/influencer-applications", c.Influencer, authMw)

		camps := authed.Group("/nightcamps")
		{
			camps.GET("", c.NightCamps.List)
			camps.GET("/:id", c.NightCamps.Get)

			organizers := camps.Group("")
			organizers.Use(authMw.RequireRoles(models.RoleAdmin, models.RoleModerator, models.RoleGuide, models.RoleMentor))
			{
				organizers.POST("", c.NightCamps.Create)
				organizers.PUT("/:id", c.NightCamps.Update)
				organizers.DELETE("/:id", c.NightCamps.Delete)
			}
		}

		subs := authed.Group("/subscriptions")
		{
			subs.GET("/plans", c.Subscriptions.Plans)
			subs.GET("/current", c.Subscriptions.Current)
			subs.GET("/history", c.Subscriptions.History)
			subs.POST("/cancel", c.Subscriptions.Cancel)
		}

		payments := authed.Group("/payments")
		{
			payments.POST("/checkout", c.Payments.Checkout)
			payments.GET("/history", c.Payments.History)
		}

		// 50 requests per 15 minutes on the family, 10 per minute on the
		// completion path.
		familyLimiter := middleware.NewRateLimiter(50, 15*time.Minute)
		chatLimiter := middleware.NewRateLimiter(10, time.Minute)

		chatbot := authed.Group("/chatbot")
		chatbot.Use(familyLimiter.Middleware())
		chatbot.Use(authMw.RequireFeature(models.FeatureChatbot))
		{
			chatbot.GET("", c.Chatbot.Status)
			chatbot.POST("/chat", chatLimiter.Middleware(), c.Chatbot.Chat)
		}
	}
}

func registerApplicationRoutes(group *gin.RouterGroup, prefix string, ctrl *controllers.ApplicationController, authMw *middleware.AuthMiddleware) {
	apps := group.Group(prefix)
	{
		apps.POST("", ctrl.Submit)
		apps.GET("/mine", ctrl.Mine)
		apps.DELETE("/:id", ctrl.Withdraw)

		reviewers := apps.Group("")
		reviewers.Use(authMw.RequireRoles(models.RoleAdmin, models.RoleModerator))
		{
			reviewers.GET("", ctrl.List)
			reviewers.PUT("/:id", ctrl.Review)
		}
	}
}
