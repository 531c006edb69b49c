package domain

import "errors"

var (
	// Lookup errors
	ErrRowNotFound   = errors.New("row not found")
	ErrEditNotFound  = errors.New("edit affordance not found")
	ErrInputNotFound = errors.New("price input not found")
	ErrSaveNotFound  = errors.New("save button not found")

	// Record errors
	ErrIdentityMismatch   = errors.New("opened record does not match code")
	ErrUnparsableAmount   = errors.New("amount cannot be parsed")
	ErrWriteVerification  = errors.New("written value does not read back as target")
	ErrSaveTimeout        = errors.New("edit surface did not navigate after save")
	ErrSessionUnavailable = errors.New("automation session unavailable")
	ErrCanceled           = errors.New("run canceled")
)

// IsRetryable reports whether a bounded retry may fix err.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrIdentityMismatch) || errors.Is(err, ErrWriteVerification)
}

// Kind maps an error onto a short taxonomy label used in metrics and logs.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrRowNotFound), errors.Is(err, ErrEditNotFound),
		errors.Is(err, ErrInputNotFound), errors.Is(err, ErrSaveNotFound):
		return "not_found"
	case errors.Is(err, ErrIdentityMismatch):
		return "identity_mismatch"
	case errors.Is(err, ErrUnparsableAmount):
		return "unparsable_amount"
	case errors.Is(err, ErrWriteVerification):
		return "write_verification"
	case errors.Is(err, ErrSaveTimeout):
		return "save_timeout"
	case errors.Is(err, ErrCanceled):
		return "canceled"
	default:
		return "unexpected"
	}
}
