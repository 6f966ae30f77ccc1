package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"github.com/trentd187/ticklist/internal/models"
)

// DecodeEntity turns a request body into a T, mapping every failure to a client error:
//   - 400 Bad Request when the body is not valid JSON
//   - 422 Unprocessable Entity when it is JSON of the wrong shape: not an object,
//     a missing or null field, an unknown field, or a value of the wrong type
//
// The set of accepted keys is T's column list. "id" is optional; when present it
// must be a UUID, but its value is never used since the caller assigns the real id.
func DecodeEntity[T models.Entity](body []byte) (T, error) {
	var entity T

	if !json.Valid(body) {
		return entity, fiber.NewError(fiber.StatusBadRequest, "request body is not valid JSON")
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || fields == nil {
		return entity, fiber.NewError(fiber.StatusUnprocessableEntity, "request body must be a JSON object")
	}

	columns := entity.Columns()
	known := make(map[string]bool, len(columns))
	for _, col := range columns {
		known[col] = true
	}
	for key := range fields {
		if !known[key] {
			return entity, unprocessable("unknown field %q", key)
		}
	}

	// columns[0] is always "id", which clients may omit.
	for _, col := range columns[1:] {
		raw, ok := fields[col]
		if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			return entity, unprocessable("missing field %q", col)
		}
	}

	// A supplied id must still parse as a UUID; the caller overwrites it.
	if err := json.Unmarshal(body, &entity); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return entity, unprocessable("field %q has the wrong type", typeErr.Field)
		}
		return entity, unprocessable("%s", err.Error())
	}

	return entity, nil
}

func unprocessable(format string, args ...any) error {
	return fiber.NewError(fiber.StatusUnprocessableEntity, fmt.Sprintf(format, args...))
}
