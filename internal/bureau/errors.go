package bureau

import "errors"

// Error kinds raised by the clearance workflow. They are returned to the
// immediate caller untranslated; this package performs no retries and no
// recovery. Match with errors.Is.
var (
	// ErrGradeTooHigh means a grade value would fall below 1, i.e. the
	// request asks for authority beyond the maximum.
	ErrGradeTooHigh = errors.New("grade is too high")

	// ErrGradeTooLow means a grade value would exceed 150, or an actor's
	// grade is numerically greater than a required threshold.
	ErrGradeTooLow = errors.New("grade is too low")

	// ErrFormNotSigned means execution was attempted on an unsigned form.
	ErrFormNotSigned = errors.New("form is not signed")

	// ErrFormNotFound means the factory received an unrecognized kind key.
	ErrFormNotFound = errors.New("form not found")
)
