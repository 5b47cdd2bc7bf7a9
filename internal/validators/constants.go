package validators

import "errors"

// Error messages for validation
var (
	// ErrInvalidIntegration wraps every problem reported by ValidateIntegration
	ErrInvalidIntegration = errors.New("invalid integration")

	ErrInvalidVersion      = errors.New("version must be a semantic version (major.minor.patch)")
	ErrDuplicateID         = errors.New("duplicate id")
	ErrUnknownAPIReference = errors.New("tool references an unknown API")
	ErrUnknownRouteRef     = errors.New("tool references a route the API does not expose")
	ErrInvalidInputSchema  = errors.New("invalid tool input schema")
	ErrInvalidSuccessPath  = errors.New("invalid response mapping success path")
	ErrInvalidFieldValue   = errors.New("invalid field value")
	ErrInvalidBaseURL      = errors.New("invalid API base URL")
	ErrRouteHasSpaces      = errors.New("route path cannot contain spaces")
)
