package lookup

// ErrorKind classifies why a lookup failed
type ErrorKind string

const (
	ErrNetwork      ErrorKind = "NETWORK"       // no response reached us
	ErrTimeout      ErrorKind = "TIMEOUT"       // exceeded the request bound
	ErrInvalidInput ErrorKind = "INVALID_INPUT" // bad hex, short query, no results, 4xx
	ErrRemote       ErrorKind = "REMOTE_ERROR"  // 5xx or malformed success payload
	ErrUnknown      ErrorKind = "UNKNOWN"
)

// Error codes carried in Error.Code
const (
	CodeInvalidFormat   = "INVALID_FORMAT"
	CodeInvalidResponse = "INVALID_RESPONSE"
	CodeQueryTooShort   = "QUERY_TOO_SHORT"
	CodeNotFound        = "NOT_FOUND"
	CodeTimeout         = "TIMEOUT"
	CodeNetwork         = "NETWORK_FAILURE"
	CodeHTTPStatus      = "HTTP_STATUS"
	CodeUnknown         = "UNKNOWN_ERROR"
)

// Error is the user-facing description of a failed lookup. Message is keyed
// by classification and never carries raw transport error text.
type Error struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Status  int    `json:"status,omitempty"`
}

// Result is the tagged outcome of every lookup. When Success is true Data is
// set, otherwise Error and ErrorType are.
type Result[T any] struct {
	Success   bool      `json:"success"`
	Data      T         `json:"data"`
	Error     *Error    `json:"error,omitempty"`
	ErrorType ErrorKind `json:"errorType,omitempty"`
}

// Ok wraps data in a successful Result
func Ok[T any](data T) Result[T] {
	return Result[T]{Success: true, Data: data}
}

// Fail builds a failed Result
func Fail[T any](kind ErrorKind, e Error) Result[T] {
	return Result[T]{Success: false, Error: &e, ErrorType: kind}
}

// Is reports whether r failed with the given kind
func (r Result[T]) Is(kind ErrorKind) bool {
	return !r.Success && r.ErrorType == kind
}

// Message returns the failure message, or "" for a successful result
func (r Result[T]) Message() string {
	if r.Success || r.Error == nil {
		return ""
	}
	return r.Error.Message
}
