// Package router builds the Fiber app: global middleware, the liveness route,
// and one list/create pair per table-backed resource.
package router

import (
	"github.com/gofiber/fiber/v2"
	// logger prints request details (method, path, status, duration) to stdout
	"github.com/gofiber/fiber/v2/middleware/logger"
	// recover turns a panicking handler into a 500 instead of killing the process
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/trentd187/ticklist/internal/handlers"
	"github.com/trentd187/ticklist/internal/middleware"
	"github.com/trentd187/ticklist/internal/models"
)

// Resources is everything the handlers depend on, built once at startup and
// passed in explicitly. Tests fill it with in-memory fakes.
type Resources struct {
	Crags   handlers.Repository[models.Crag]
	Routes  handlers.Repository[models.Route]
	Ascents handlers.Repository[models.Ascent]
}

// Options tweaks the app for its environment.
type Options struct {
	// RequestLogging enables the per-request access log. Off in tests to keep output quiet.
	RequestLogging bool
}

// New returns a Fiber app serving:
//
//	GET  /          liveness, 200 with empty body
//	GET  /crags     POST /crags
//	GET  /routes    POST /routes
//	GET  /ascents   POST /ascents
//
// Any other path gets Fiber's default 404, and a known path with the wrong
// method gets its default 405.
func New(res Resources, opts Options) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Ticklist API",
		ErrorHandler: handlers.ErrorHandler,
	})

	// --- Global middleware ---
	// Recovered panics become errors and are handled by handlers.ErrorHandler.
	app.Use(recover.New())
	if opts.RequestLogging {
		app.Use(logger.New())
	}

	app.Get("/", handlers.Ready)

	mount(app, "/crags", res.Crags)
	mount(app, "/routes", res.Routes)
	mount(app, "/ascents", res.Ascents)

	return app
}

// mount registers the list (GET) and create (POST) routes for one resource.
func mount[T models.Entity](app *fiber.App, path string, repo handlers.Repository[T]) {
	app.Get(path, handlers.List(repo))
	app.Post(path, middleware.RequireJSON(), handlers.Create(repo))
}
