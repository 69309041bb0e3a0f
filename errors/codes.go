package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Input errors
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeMissingField indicates a required field is missing.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
	// ErrCodeNotFound indicates a referenced project, source or policy does not exist.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeParse indicates a project document could not be decoded.
	ErrCodeParse ErrorCode = "PARSE_ERROR"
	// ErrCodeUnsupportedVersion indicates a document version this build cannot read.
	ErrCodeUnsupportedVersion ErrorCode = "UNSUPPORTED_VERSION"
)

// Graph errors
const (
	// ErrCodeCyclicGraph indicates a dependency cycle.
	ErrCodeCyclicGraph ErrorCode = "CYCLIC_GRAPH"
	// ErrCodeDependencyResolution indicates nodes that could not be placed in any batch.
	ErrCodeDependencyResolution ErrorCode = "DEPENDENCY_RESOLUTION"
)

// Service errors
const (
	// ErrCodeRateLimited indicates a client exceeded its request rate.
	ErrCodeRateLimited ErrorCode = "RATE_LIMITED"
	// ErrCodePayloadTooLarge indicates a request body over the size limit.
	ErrCodePayloadTooLarge ErrorCode = "PAYLOAD_TOO_LARGE"
)

// Internal errors
const (
	// ErrCodeInternal indicates an unexpected failure.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// Process exit codes used by the command line.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitInput   = 2
	ExitGraph   = 3
)

var exitCodes = map[ErrorCode]int{
	ErrCodeInvalidInput:         ExitInput,
	ErrCodeMissingField:         ExitInput,
	ErrCodeNotFound:             ExitInput,
	ErrCodeParse:                ExitInput,
	ErrCodeUnsupportedVersion:   ExitInput,
	ErrCodeCyclicGraph:          ExitGraph,
	ErrCodeDependencyResolution: ExitGraph,
	ErrCodeInternal:             ExitFailure,
}

// ExitCode returns the process exit code for err. A nil error maps to
// ExitOK, an error that is not an AppError to ExitFailure.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	appErr, ok := AsAppError(err)
	if !ok {
		return ExitFailure
	}
	if code, ok := exitCodes[appErr.Code]; ok {
		return code
	}
	return ExitFailure
}
