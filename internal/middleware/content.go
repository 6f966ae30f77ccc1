// Package middleware contains HTTP middleware functions for the Ticklist API.
// Middleware sits between the HTTP server and route handlers, which makes it the
// right place for checks that apply to a whole class of routes.
package middleware

import "github.com/gofiber/fiber/v2"

// RequireJSON returns a middleware handler that only lets a request through when
// its Content-Type is JSON ("application/json", optionally with parameters such
// as charset). Anything else is answered with 415 Unsupported Media Type before
// the handler reads the body.
//
// It is applied to write routes only:
//
//	app.Post("/crags", middleware.RequireJSON(), handlers.Create(crags))
func RequireJSON() fiber.Handler {
	return func(c *fiber.Ctx) error {
		// c.Is compares the Content-Type header against the MIME type for the
		// given extension, ignoring parameters.
		if !c.Is("json") {
			return fiber.ErrUnsupportedMediaType
		}
		return c.Next()
	}
}
