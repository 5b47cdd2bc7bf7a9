package v0

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"

	"github.com/mcpbuilder/mcp-builder/internal/database"
	"github.com/mcpbuilder/mcp-builder/internal/mapping"
	"github.com/mcpbuilder/mcp-builder/internal/store"
	"github.com/mcpbuilder/mcp-builder/internal/validators"
)

// httpError maps a service error to a huma status error. what names the entity for 404s,
// action describes the failed operation for 500s.
func httpError(err error, what, action string) error {
	switch {
	case errors.Is(err, database.ErrNotFound), errors.Is(err, store.ErrSessionNotFound):
		return huma.Error404NotFound(what + " not found")
	case errors.Is(err, database.ErrAlreadyExists):
		return huma.Error409Conflict(what+" already exists", err)
	case errors.Is(err, validators.ErrInvalidIntegration):
		return huma.Error422UnprocessableEntity("Integration is invalid", problemErrors(err)...)
	case errors.Is(err, database.ErrInvalidInput), errors.Is(err, mapping.ErrInvalidPath):
		return huma.Error400BadRequest(err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return huma.Error504GatewayTimeout(action + " timed out")
	default:
		return huma.Error500InternalServerError("Failed to "+action, err)
	}
}

func problemErrors(err error) []error {
	problems := validators.Problems(err)
	out := make([]error, len(problems))
	for i, p := range problems {
		out[i] = errors.New(p)
	}
	return out
}
