package provider

// ErrorKind classifies why a provider call produced no data. The composer
// treats every kind as "had none"; Network vs RateLimited matter only for logs.
type ErrorKind string

const (
	ErrNetwork      ErrorKind = "network"
	ErrRateLimited  ErrorKind = "rate_limited"
	ErrEmptyPayload ErrorKind = "empty_payload"
	ErrParse        ErrorKind = "parse_error"
)

// Result is the uniform envelope every provider call returns. A provider
// never lets a raw error or panic cross this boundary, and never retries
// internally: one attempt per call.
type Result[T any] struct {
	OK      bool
	Data    T
	ErrKind ErrorKind
}

// Ok wraps data in a successful result.
func Ok[T any](data T) Result[T] {
	return Result[T]{OK: true, Data: data}
}

// Fail wraps a failure kind in an empty result.
func Fail[T any](kind ErrorKind) Result[T] {
	return Result[T]{ErrKind: kind}
}
