// Package handlers contains HTTP route handler functions for the Ticklist API.
// This file handles the table-backed resources: /crags, /routes and /ascents.
//
// All three resources behave identically, so the handlers are written once as
// generic "handler factories": each takes the resource's Repository and returns
// a fiber.Handler. The repository is injected rather than read from a global,
// which lets tests swap in an in-memory fake.
//
//	GET  /<resource>  — every row of the table as a JSON array, status 200
//	POST /<resource>  — insert one row with a server-generated id, status 201, empty body
//
// Any storage failure becomes an opaque 500 via InternalServerError.
package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trentd187/ticklist/internal/models"
)

// Repository is the storage a resource needs. database.Table implements it
// against Postgres.
type Repository[T models.Entity] interface {
	// List returns every stored row, in no particular order.
	List(ctx context.Context) ([]T, error)
	// Insert stores entity under id. Any id already set on entity is not used.
	Insert(ctx context.Context, id uuid.UUID, entity T) error
}

// List returns a handler for GET /<resource>.
func List[T models.Entity](repo Repository[T]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rows, err := repo.List(c.UserContext())
		if err != nil {
			return InternalServerError(c, err)
		}

		// Always an array, never null, even for an empty table.
		if rows == nil {
			rows = []T{}
		}
		return c.JSON(rows)
	}
}

// Create returns a handler for POST /<resource>.
// The body must carry every non-id field of T; an "id" key is accepted and discarded.
// Each call creates a new row with a fresh UUIDv7, so identical bodies posted twice
// produce two rows.
func Create[T models.Entity](repo Repository[T]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		entity, err := DecodeEntity[T](c.Body())
		if err != nil {
			// Decoding problems arrive as *fiber.Error carrying the 4xx status.
			var clientErr *fiber.Error
			if errors.As(err, &clientErr) {
				return clientErr
			}
			return InternalServerError(c, err)
		}

		id, err := uuid.NewV7()
		if err != nil {
			return InternalServerError(c, errors.Wrap(err, "generate id"))
		}

		if err := repo.Insert(c.UserContext(), id, entity); err != nil {
			return InternalServerError(c, err)
		}

		// Status only: SendStatus would fill the empty body with "Created".
		c.Status(fiber.StatusCreated)
		return nil
	}
}
