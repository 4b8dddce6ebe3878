package handler

import (
	"database/sql"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"quilthub/docs"
	"quilthub/internal/config"
	"quilthub/internal/service"
)

// Dependencies are the collaborators the HTTP layer needs.
type Dependencies struct {
	// DB is optional; when nil /health reports the database as disabled.
	DB       *sql.DB
	Profiles service.ProfileService
	Site     config.SiteConfig
	// Gatherer backs /metrics. Defaults to prometheus.DefaultGatherer.
	Gatherer prometheus.Gatherer
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, deps Dependencies) {
	var pinger Pinger
	if deps.DB != nil {
		pinger = deps.DB
	}
	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	app.Get("/", Home(deps.Site))
	app.Get("/share/:slug", SharePage(deps.Profiles, deps.Site))

	api := app.Group("/api")
	api.Get("/profiles/:slug", GetProfile(deps.Profiles))
	api.Get("/lookups", ListLookups(deps.Profiles))

	app.Get("/health", HealthCheck(pinger))
	app.Get("/healthz", LivenessProbe())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})
}
