package v0

// Response is a generic wrapper for Huma responses
// Usage: Response[HealthBody] instead of HealthOutput
type Response[T any] struct {
	Body T
}

// NoContent is returned by operations that answer 204
type NoContent struct{}
