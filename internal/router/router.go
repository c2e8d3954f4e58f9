package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"gharbazaar/internal/config"
	"gharbazaar/internal/handler"
	"gharbazaar/internal/middleware"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authMW *middleware.AuthMiddleware,
	authHandler *handler.AuthHandler,
	listingHandler *handler.ListingHandler,
	messageHandler *handler.MessageHandler,
	favoriteHandler *handler.FavoriteHandler,
	reviewHandler *handler.ReviewHandler,
	contactHandler *handler.ContactHandler,
	adminHandler *handler.AdminHandler,
) {
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Uploaded listing images are served from disk.
	e.Static("/uploads", cfg.UploadDir)

	api := e.Group("/api")

	// Auth
	api.POST("/auth/signup", authHandler.Signup)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/admin-login", authHandler.AdminLogin)
	api.GET("/auth/profile", authHandler.Profile, authMW.RequireAuth)
	api.GET("/auth/verify", authHandler.Verify, authMW.RequireAuth)
	api.PUT("/auth/change-password", authHandler.ChangePassword, authMW.RequireAuth)

	// Properties
	api.GET("/properties", listingHandler.List)
	api.GET("/properties/user/:userId", listingHandler.ByUser, authMW.RequireAuth)
	api.GET("/properties/my-listings", listingHandler.MyListings, authMW.RequireAuth)
	api.POST("/properties", listingHandler.Create, authMW.RequireAuth)
	api.GET("/properties/:id", listingHandler.Get)
	api.PUT("/properties/:id", listingHandler.Update, authMW.RequireAuth)
	api.DELETE("/properties/:id", listingHandler.Delete, authMW.RequireAuth)

	// Messages
	messages := api.Group("/messages", authMW.RequireAuth)
	messages.GET("/conversations", messageHandler.Conversations)
	messages.GET("/conversation/:listingId/:otherUserId", messageHandler.Conversation)
	messages.GET("", messageHandler.List)
	messages.GET("/listing/:listingId", messageHandler.ByListing)
	messages.POST("", messageHandler.Send)
	messages.PATCH("/:id/read", messageHandler.MarkRead)
	messages.DELETE("/:id", messageHandler.Delete)

	// Favorites
	favorites := api.Group("/favorites", authMW.RequireAuth)
	favorites.GET("", favoriteHandler.List)
	favorites.POST("", favoriteHandler.Add)
	favorites.DELETE("/:listing_id", favoriteHandler.Remove)
	favorites.GET("/check/:listing_id", favoriteHandler.Check)

	// Reviews
	api.GET("/reviews/listing/:listing_id", reviewHandler.ByListing)
	api.POST("/reviews", reviewHandler.Upsert, authMW.RequireAuth)
	api.GET("/reviews/user/:listing_id", reviewHandler.UserReview, authMW.RequireAuth)
	api.DELETE("/reviews/:listing_id", reviewHandler.Delete, authMW.RequireAuth)

	// Contact: public submit, admin-gated management
	api.POST("/contact/submit", contactHandler.Submit)
	api.GET("/contact/submissions", contactHandler.List, authMW.RequireAuth, authMW.RequireAdmin)
	api.PUT("/contact/submissions/:id/status", contactHandler.UpdateStatus, authMW.RequireAuth, authMW.RequireAdmin)
	api.DELETE("/contact/submissions/:id", contactHandler.Delete, authMW.RequireAuth, authMW.RequireAdmin)

	// Admin
	admin := api.Group("/admin", authMW.RequireAuth, authMW.RequireAdmin)
	admin.GET("/users", adminHandler.Users)
	admin.GET("/dashboard-stats", adminHandler.DashboardStats)
	admin.GET("/properties", adminHandler.Properties)
	admin.DELETE("/properties/:id", adminHandler.DeleteProperty)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
