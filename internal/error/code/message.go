package code

// Error code to message mapping.
var codeMessageMap = map[int]string{
	// General
	ErrSuccess:          "success",
	ErrUnknown:          "internal server error",
	ErrBind:             "failed to bind request body",
	ErrValidation:       "request validation failed",
	ErrTokenInvalid:     "invalid authentication token",
	ErrPermissionDenied: "insufficient permissions",
	ErrTooManyRequests:  "too many requests",

	// User
	ErrUserNotFound:        "user not found",
	ErrUserAlreadyExist:    "username already exists",
	ErrInvalidCredentials:  "invalid credentials",
	ErrUserNotApproved:     "account is pending approval",
	ErrUserAlreadyApproved: "user is already approved",
	ErrSelfMutation:        "operation not allowed on own account",

	// Survey
	ErrSurveyNotFound: "survey not found",

	// Database
	ErrDatabase:       "database error",
	ErrRecordNotFound: "record not found",
}

// Error code to HTTP status mapping.
var codeStatusMap = map[int]int{
	// General
	ErrSuccess:          StatusOK,
	ErrUnknown:          StatusInternalServerError,
	ErrBind:             StatusBadRequest,
	ErrValidation:       StatusBadRequest,
	ErrTokenInvalid:     StatusUnauthorized,
	ErrPermissionDenied: StatusForbidden,
	ErrTooManyRequests:  StatusTooManyRequests,

	// User
	ErrUserNotFound:        StatusNotFound,
	ErrUserAlreadyExist:    StatusConflict,
	ErrInvalidCredentials:  StatusUnauthorized,
	ErrUserNotApproved:     StatusUnauthorized,
	ErrUserAlreadyApproved: StatusBadRequest,
	ErrSelfMutation:        StatusBadRequest,

	// Survey
	ErrSurveyNotFound: StatusNotFound,

	// Database
	ErrDatabase:       StatusInternalServerError,
	ErrRecordNotFound: StatusNotFound,
}

// GetMessage returns the message for an error code.
func GetMessage(code int) string {
	if msg, ok := codeMessageMap[code]; ok {
		return msg
	}
	return "unknown error"
}

// GetStatus returns the HTTP status for an error code.
func GetStatus(code int) int {
	if status, ok := codeStatusMap[code]; ok {
		return status
	}
	return StatusInternalServerError
}
