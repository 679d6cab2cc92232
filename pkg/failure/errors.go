package failure

import "errors"

type Severity int

// Severity decides what the caller does with a failed operation:
// recoverable failures fall back to an empty value and keep the editor usable,
// fatal ones reject the action that produced them.
const (
	SeverityFatal Severity = iota
	SeverityRecoverable
)

type ClassifiedError interface {
	error
	Severity() Severity
}

// IsRecoverable reports whether err wraps a ClassifiedError with recoverable severity.
// Unclassified errors are treated as fatal.
func IsRecoverable(err error) bool {
	var ce ClassifiedError
	if !errors.As(err, &ce) {
		return false
	}
	return ce.Severity() == SeverityRecoverable
}
