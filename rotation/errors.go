/*
errors.go - Centralized error types for the rotation engine

PURPOSE:
  All error types in one place for consistency and discoverability.

ERROR CATEGORIES:
  1. Validation errors - bad Generate arguments. Fatal to the call,
     surfaced to the caller, never silently defaulted.
  2. Storage errors - ledger read/write failures. Recovered locally: the
     engine degrades to computing everything fresh from the rotation epoch.

USAGE:
  var verr *rotation.ValidationError
  if errors.As(err, &verr) {
      // 400-class failure; verr.Arg names the offending argument
  }
*/
package rotation

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidYear is returned when the target year is outside 1900-2100.
	ErrInvalidYear = errors.New("year out of range")

	// ErrInvalidMonth is returned when the target month is outside
	// January-December.
	ErrInvalidMonth = errors.New("month out of range")

	// ErrEmptyRotationOrder is returned when the rotation cycle has no
	// members.
	ErrEmptyRotationOrder = errors.New("rotation order is empty")
)

// =============================================================================
// VALIDATION ERROR - Fatal to the current Generate call
// =============================================================================

// ValidationError identifies which Generate argument was invalid and why.
type ValidationError struct {
	Arg    string // argument name: "year", "month", "rotationOrder"
	Reason string
	Err    error // wrapped sentinel
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Arg, e.Reason)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// IsValidationError reports whether err is fatal client input, as opposed to
// a degraded-but-recovered storage condition.
func IsValidationError(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}
