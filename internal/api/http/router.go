package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/spec-kit/marketplace-service/internal/api/http/handlers"
	"github.com/spec-kit/marketplace-service/internal/auth"
	"github.com/spec-kit/marketplace-service/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Communities    *handlers.CommunityHandler
	Posts          *handlers.PostHandler
	Stores         *handlers.StoreHandler
	Themes         *handlers.ThemeHandler
	Transactions   *handlers.TransactionHandler
	AuthMiddleware *auth.AuthMiddleware
	Metrics        *observability.Metrics
}

// RegisterRoutes wires HTTP routes. Groups mixing public reads with gated writes attach the
// gate per route; a group-level handler would also run for the public routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	gate := cfg.AuthMiddleware.Handle
	with := auth.WithRequester

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(cfg.Metrics.Registry(), promhttp.HandlerOpts{})))
	}

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/logout", cfg.Auth.Logout)
	authGroup.Get("/me", gate, with(cfg.Auth.Me))

	communities := api.Group("/communities")
	communities.Get("/", cfg.Communities.List)
	communities.Get("/:id", cfg.Communities.Get)
	communities.Post("/", gate, with(cfg.Communities.Create))

	posts := api.Group("/community-posts")
	posts.Get("/", cfg.Posts.List)
	posts.Get("/community/:communityId", cfg.Posts.ListByCommunity)
	posts.Get("/user/:userId", cfg.Posts.ListByUser)
	posts.Get("/:id", cfg.Posts.Get)
	posts.Get("/:id/likes", cfg.Posts.Likes)
	posts.Post("/", gate, with(cfg.Posts.Create))
	posts.Put("/:id", gate, with(cfg.Posts.Update))
	posts.Delete("/:id", gate, with(cfg.Posts.Delete))
	posts.Post("/:id/like", gate, with(cfg.Posts.Like))
	posts.Delete("/:id/like", gate, with(cfg.Posts.Unlike))

	stores := api.Group("/stores")
	stores.Get("/name/:name", cfg.Stores.GetByName)
	stores.Get("/mine", gate, with(cfg.Stores.Mine))
	stores.Post("/", gate, with(cfg.Stores.Create))
	stores.Put("/:id", gate, with(cfg.Stores.Update))

	themes := api.Group("/theme-customizations")
	themes.Get("/store/:name", cfg.Themes.GetByStoreName)
	themes.Get("/mine", gate, with(cfg.Themes.Mine))
	themes.Post("/", gate, with(cfg.Themes.Create))
	themes.Put("/:storeId", gate, with(cfg.Themes.Upsert))
	themes.Delete("/:storeId", gate, with(cfg.Themes.Delete))

	transactions := api.Group("/transactions", gate)
	transactions.Post("/", with(cfg.Transactions.Create))
	transactions.Get("/", with(cfg.Transactions.List))
	transactions.Get("/:id", with(cfg.Transactions.Get))
	transactions.Delete("/:id", with(cfg.Transactions.Delete))
}
