package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/seatswap/seatswap/internal/config"
	"github.com/seatswap/seatswap/internal/handler"
	"github.com/seatswap/seatswap/internal/middleware"
)

// RegisterRoutes registers routes that need no authentication. Currently
// only the health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the session endpoints. Register, login and the
// refresh flows live under /v1/auth without middleware; /v1/me and
// /v1/auth/logout sit behind JWTAuth so logout-without-body can revoke
// all of the caller's sessions.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)
	g.POST("/logout", a.Logout, middleware.JWTAuth(jwtSecret))

	auth := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
}

// RegisterPublic registers unauthenticated browse endpoints. The listing
// browse and detail routes sit behind the Redis response cache; profile,
// review and proof reads are always served fresh.
func RegisterPublic(e *echo.Echo, u *handler.UserHandler, l *handler.ListingHandler, cacheCfg config.CacheConfig, rdb *redis.Client) {
	cache := middleware.NewRedisCache(cacheCfg, rdb)

	e.GET("/v1/listings", l.List, cache)
	e.GET("/v1/listings/:id", l.Get, cache)

	e.GET("/v1/users/search", u.SearchUsers)
	e.GET("/v1/users/:id", u.GetProfile)
	e.GET("/v1/users/:id/reviews", u.ListReviews)
	e.GET("/v1/users/:id/proof", u.ListProof)
	e.GET("/v1/users/:id/listings", u.ListingsBySeller)
}

// RegisterProtected registers everything that needs a valid access token
// under /v1.
func RegisterProtected(e *echo.Echo, u *handler.UserHandler, l *handler.ListingHandler, m *handler.MessageHandler, jwtSecret string) {
	g := e.Group("/v1", middleware.JWTAuth(jwtSecret))

	g.GET("/profile", u.MyProfile)
	g.PUT("/profile", u.UpdateMyProfile)
	g.DELETE("/profile", u.DeleteMe)

	g.POST("/users/:id/reviews", u.CreateReview)
	g.POST("/proof", u.UploadProof)

	g.POST("/listings", l.Create)
	g.PUT("/listings/:id", l.Update)
	g.DELETE("/listings/:id", l.Delete)

	g.POST("/messages", m.Send)
	g.GET("/messages", m.ListMine)
	g.GET("/messages/unread-count", m.UnreadCount)
	g.GET("/messages/:id", m.GetOne)
	g.PUT("/messages/:id/read", m.MarkRead)
	g.DELETE("/messages/:id", m.Delete)

	g.GET("/conversations", m.Conversations)
	g.GET("/conversations/:id", m.Conversation)
}
