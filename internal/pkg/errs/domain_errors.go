package errs

// Categories shared by the usecase layer. Concrete errors are marked with one
// of these so transport code can map them with Is.
var (
	ErrNotFound      = New("not found")
	ErrConflict      = New("conflict")
	ErrExpired       = New("expired")
	ErrValidation    = New("validation failed")
	ErrPaymentFailed = New("payment failed")
	ErrForbidden     = New("forbidden")
	ErrUnavailable   = New("upstream unavailable")

	ErrDatabaseOperationFailed = New("database operation failed")
)
