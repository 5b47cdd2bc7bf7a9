// Package mapping evaluates tool response mappings against API responses
package mapping

import (
	"errors"
	"fmt"

	"github.com/jmespath/go-jmespath"

	"github.com/mcpbuilder/mcp-builder/pkg/model"
)

var (
	// ErrNoMatch is returned under the throw policy when the success path selects nothing
	ErrNoMatch = errors.New("success path matched nothing")

	// ErrInvalidPath is returned when the success path does not compile
	ErrInvalidPath = errors.New("invalid success path")
)

// Apply extracts the success path from body and resolves a miss according to the
// mapping's error policy. A nil mapping or an empty path returns body unchanged.
func Apply(m *model.ResponseMapping, body any) (any, error) {
	if m == nil || m.SuccessPath == "" {
		return body, nil
	}

	expr, err := jmespath.Compile(m.SuccessPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPath, err)
	}

	result, err := expr.Search(body)
	if err == nil && result != nil {
		return result, nil
	}

	switch m.ErrorHandling {
	case model.ErrorPolicyReturnNull:
		return nil, nil
	case model.ErrorPolicyPassthrough:
		return body, nil
	default:
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrNoMatch, m.SuccessPath, err)
		}
		return nil, fmt.Errorf("%w: %s", ErrNoMatch, m.SuccessPath)
	}
}
