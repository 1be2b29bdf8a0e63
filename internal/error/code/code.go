package code

// HTTP status codes.
const (
	// StatusOK - 200: success.
	StatusOK = 200
	// StatusBadRequest - 400: invalid request parameters.
	StatusBadRequest = 400
	// StatusUnauthorized - 401: authentication required.
	StatusUnauthorized = 401
	// StatusForbidden - 403: access denied.
	StatusForbidden = 403
	// StatusNotFound - 404: resource not found.
	StatusNotFound = 404
	// StatusConflict - 409: duplicate resource.
	StatusConflict = 409
	// StatusInternalServerError - 500: internal server error.
	StatusInternalServerError = 500
	// StatusTooManyRequests - 429: too many requests.
	StatusTooManyRequests = 429
)

// General error codes (100xxx).
const (
	// ErrSuccess - 200: success.
	ErrSuccess int = iota + 100000
	// ErrUnknown - 500: unknown error.
	ErrUnknown
	// ErrBind - 400: request body binding error.
	ErrBind
	// ErrValidation - 400: request validation error.
	ErrValidation
	// ErrTokenInvalid - 401: invalid authentication token.
	ErrTokenInvalid
	// ErrPermissionDenied - 403: insufficient role.
	ErrPermissionDenied
	// ErrTooManyRequests - 429: request rate too high.
	ErrTooManyRequests
)

// User error codes (101xxx).
const (
	// ErrUserNotFound - 404: user not found.
	ErrUserNotFound int = iota + 101000
	// ErrUserAlreadyExist - 409: username already taken.
	ErrUserAlreadyExist
	// ErrInvalidCredentials - 401: username or password incorrect.
	ErrInvalidCredentials
	// ErrUserNotApproved - 401: account awaiting approval.
	ErrUserNotApproved
	// ErrUserAlreadyApproved - 400: account already approved.
	ErrUserAlreadyApproved
	// ErrSelfMutation - 400: operation not allowed on own account.
	ErrSelfMutation
)

// Survey error codes (102xxx).
const (
	// ErrSurveyNotFound - 404: survey not found.
	ErrSurveyNotFound int = iota + 102000
)

// Database error codes (105xxx).
const (
	// ErrDatabase - 500: database error.
	ErrDatabase int = iota + 105000
	// ErrRecordNotFound - 404: record not found.
	ErrRecordNotFound
)
