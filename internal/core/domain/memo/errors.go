package memo

import "github.com/cockroachdb/errors"

var (
	// ErrKeyDerivation marks arguments that could not be canonically encoded.
	// It always reaches the caller.
	ErrKeyDerivation = errors.New("memo: key derivation failed")

	// ErrBackendUnavailable marks any failure talking to a cache channel.
	// The memoizer recovers from it and never returns it to callers.
	ErrBackendUnavailable = errors.New("memo: cache backend unavailable")
)

// BackendError records which channel operation failed.
type BackendError struct {
	Op  string
	Err error
}

func (e *BackendError) Error() string { return "cache " + e.Op + ": " + e.Err.Error() }
func (e *BackendError) Unwrap() error { return e.Err }

// BackendUnavailable wraps err for op and marks it as ErrBackendUnavailable.
func BackendUnavailable(err error, op string) error {
	if err == nil {
		return nil
	}
	return errors.Mark(&BackendError{Op: op, Err: err}, ErrBackendUnavailable)
}

// IsBackendUnavailable reports whether err carries the ErrBackendUnavailable mark.
func IsBackendUnavailable(err error) bool {
	return errors.Is(err, ErrBackendUnavailable)
}

// BackendOp returns the failed operation recorded in err, or "" if none.
func BackendOp(err error) string {
	var be *BackendError
	if errors.As(err, &be) {
		return be.Op
	}
	return ""
}
