package handlers

import (
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

// stackTracer is implemented by errors created or wrapped with github.com/pkg/errors.
type stackTracer interface {
	StackTrace() errors.StackTrace
}

// InternalServerError is the single place a failed request becomes a 500.
// The full error chain and a backtrace are logged server-side; the client gets
// the status code and nothing else, whatever the cause (connection loss,
// constraint violation, bad query).
func InternalServerError(c *fiber.Ctx, err error) error {
	slog.ErrorContext(c.UserContext(), "internal server error",
		"error", err.Error(),
		"backtrace", Backtrace(err),
		"method", c.Method(),
		"path", c.Path(),
	)

	c.Status(fiber.StatusInternalServerError)
	return nil
}

// ErrorHandler is the app-wide fiber.ErrorHandler. A *fiber.Error (bad body, 404,
// 405, 415) keeps its status and message; anything else, including a recovered
// panic, goes through InternalServerError so nothing internal reaches the client.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
		return c.Status(fe.Code).SendString(fe.Message)
	}
	// Drop anything a handler wrote before failing.
	c.Response().ResetBody()
	return InternalServerError(c, err)
}

// Backtrace formats the stack recorded closest to where err originated.
// Errors that never went through pkg/errors get the current stack instead.
func Backtrace(err error) string {
	var deepest stackTracer
	for e := err; e != nil; e = errors.Unwrap(e) {
		if st, ok := e.(stackTracer); ok {
			deepest = st
		}
	}
	if deepest == nil {
		deepest = errors.WithStack(err).(stackTracer)
	}
	return fmt.Sprintf("%+v", deepest.StackTrace())
}
