// Package app wires the HTTP routes to their handlers
package app

import (
	"context"
	"time"

	"bitwise74/social-api/app/article"
	"bitwise74/social-api/app/auth"
	"bitwise74/social-api/app/comment"
	"bitwise74/social-api/app/events"
	"bitwise74/social-api/app/friend"
	"bitwise74/social-api/app/root"
	"bitwise74/social-api/app/user"
	"bitwise74/social-api/internal"
	"bitwise74/social-api/pkg/middleware"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter builds the engine serving /api/v1. Background work started for
// the router stops when ctx is done.
func NewRouter(ctx context.Context, d *internal.Deps) *gin.Engine {
	router := gin.New()

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     d.Config.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		requestLogger(),
	)

	router.HandleMethodNotAllowed = true
	router.RedirectFixedPath = true

	store := persist.NewMemoryStore(time.Minute)
	cacheFor := func(sec int) gin.HandlerFunc {
		return cache.CacheByRequestURI(store, time.Second*time.Duration(sec))
	}

	jwt := middleware.NewJWTMiddleware(d.Tokens)
	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		RequestsPerSecond: d.Config.RateLimit,
		Burst:             d.Config.RateLimit * 2,
	})
	go rateLimiter.Run(ctx.Done())

	// the websocket lives outside the rate limited, body limited group
	// GET /api/v1/events			-> Events websocket
	router.GET("/api/v1/events", func(c *gin.Context) { events.Socket(c, d) })

	m := router.Group("/api/v1", rateLimiter.Middleware(), middleware.BodySizeLimiter(d.Config.BodyLimit))
	{
		// GET /api/v1			-> Hello
		m.GET("", root.Hello)

		// HEAD /api/v1/heartbeat		-> Used to check if the server is alive
		m.HEAD("/heartbeat", root.Heartbeat)
	}

	a := m.Group("/auth")
	{
		// POST /api/v1/auth/login		-> Logs in a user and returns a token pair
		a.POST("/login", func(c *gin.Context) { auth.Login(c, d) })

		// POST /api/v1/auth/registration	-> Registers a new user
		a.POST("/registration", func(c *gin.Context) { auth.Registration(c, d) })

		// POST /api/v1/auth/forgot		-> Mails the user a new password
		a.POST("/forgot", func(c *gin.Context) { auth.Forgot(c, d) })

		// POST /api/v1/auth/refresh		-> Exchanges a refresh token for a new pair
		a.POST("/refresh", func(c *gin.Context) { auth.Refresh(c, d) })
	}

	u := m.Group("/users", jwt)
	{
		// GET /api/v1/users			-> Lists every user
		u.GET("", func(c *gin.Context) { user.FetchAll(c, d) })

		// GET /api/v1/users/:id		-> Returns a user by their ID
		u.GET("/:id", func(c *gin.Context) { user.Fetch(c, d) })

		// PUT /api/v1/users/:id		-> Updates a user's profile
		u.PUT("/:id", func(c *gin.Context) { user.Update(c, d) })

		// PATCH /api/v1/users/:id/change-password	-> Changes a user's password
		u.PATCH("/:id/change-password", func(c *gin.Context) { user.ChangePassword(c, d) })

		// DELETE /api/v1/users/:id		-> Deletes a user account
		u.DELETE("/:id", func(c *gin.Context) { user.Delete(c, d) })
	}

	f := m.Group("/friends", jwt)
	{
		// POST /api/v1/friends/request	-> Sends a friend request
		f.POST("/request", func(c *gin.Context) { friend.Request(c, d) })

		// GET /api/v1/friends/:id		-> Returns a user's friends and pending requests
		f.GET("/:id", func(c *gin.Context) { friend.List(c, d) })

		// PATCH /api/v1/friends/accept	-> Accepts a friend request
		f.PATCH("/accept", func(c *gin.Context) { friend.Accept(c, d) })

		// PATCH /api/v1/friends/delete	-> Removes a friend
		f.PATCH("/delete", func(c *gin.Context) { friend.Delete(c, d) })
	}

	ar := m.Group("/articles", jwt)
	{
		// POST /api/v1/articles		-> Publishes an article
		ar.POST("", func(c *gin.Context) { article.Create(c, d) })

		// GET /api/v1/articles		-> Lists every article
		ar.GET("", cacheFor(5), func(c *gin.Context) { article.FetchAll(c, d) })

		// GET /api/v1/articles/:id		-> Returns an article by its ID
		ar.GET("/:id", func(c *gin.Context) { article.Fetch(c, d) })

		// GET /api/v1/articles/user/:id	-> Lists a user's articles
		ar.GET("/user/:id", func(c *gin.Context) { article.FetchByUser(c, d) })

		// PUT /api/v1/articles/:id/like	-> Toggles a like
		ar.PUT("/:id/like", func(c *gin.Context) { article.Like(c, d) })

		// DELETE /api/v1/articles/:id		-> Deletes an article
		ar.DELETE("/:id", func(c *gin.Context) { article.Delete(c, d) })
	}

	cm := m.Group("/comments", jwt)
	{
		// POST /api/v1/comments		-> Comments on an article
		cm.POST("", func(c *gin.Context) { comment.Add(c, d) })

		// GET /api/v1/comments/:id		-> Lists the comments of an article
		cm.GET("/:id", func(c *gin.Context) { comment.FetchForArticle(c, d) })

		// DELETE /api/v1/comments/:id		-> Deletes a comment
		cm.DELETE("/:id", func(c *gin.Context) { comment.Delete(c, d) })
	}

	return router
}
