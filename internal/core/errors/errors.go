package errors

const (
	HttpInternalError       = "internal_error"
	HttpInvalidJsonError    = "invalid_json"
	HttpInvalidRequestError = "invalid_request"
	HttpInvalidValueError   = "invalid_value"
	HttpNotFoundError       = "accumulator_not_found"
	HttpKindMismatchError   = "kind_mismatch"
)

// ErrorResponse is the error response body returned by every API handler.
type ErrorResponse struct {
	ErrorType string      `json:"error_type"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
}
