package routes

import (
	"net/http"
	"time"

	userRepo "motoslot/database/repository/user"
	"motoslot/handlers"
	"motoslot/middleware"
	"motoslot/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle carries the assembled handlers and the repositories the
// middleware needs.
type HandlerBundle struct {
	UserRepo userRepo.UserRepository

	PaymentHandler      *handlers.PaymentHandler
	BookingHandler      *handlers.BookingHandler
	NotificationHandler *handlers.NotificationHandler
}

// RegisterPaymentRoutes registers the payment intent and verification
// endpoints.
func RegisterPaymentRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/payments")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.POST("/intent", hb.PaymentHandler.CreatePaymentIntentHandler)
		api.POST("/verify", hb.PaymentHandler.VerifyPaymentHandler)
	}
}

// RegisterBookingRoutes registers the admin manual booking endpoint.
func RegisterBookingRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.POST("/manual", middleware.RequireAdmin(), hb.BookingHandler.CreateManualBookingHandler)
	}
}

// RegisterNotificationRoutes registers the direct booking SMS endpoint.
func RegisterNotificationRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/notifications")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.POST("/sms", hb.NotificationHandler.SendBookingSMSHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "health": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterPaymentRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterNotificationRoutes(r, hb)
	RegisterHealthRoute(r)
}
