package pipeline

import "errors"

// InputError aborts the run before any processing: no usable documents, or
// too many of them. It is the only user-fatal error class; everything else
// degrades to "contributes nothing".
type InputError struct {
	Reason string
}

func (e *InputError) Error() string { return e.Reason }

// IsInputError reports whether err is (or wraps) an InputError.
func IsInputError(err error) bool {
	var ie *InputError
	return errors.As(err, &ie)
}
