/*
errors.go - Error types for the projection engine

PURPOSE:
  The engine has exactly one failure mode: invalid inputs. Validation
  rejects the whole run before the loop starts and names every offending
  field, so a caller can surface all problems at once instead of
  whack-a-mole.

USAGE:
  _, err := projection.Project(a)
  var inv *projection.InvalidAssumptionsError
  if errors.As(err, &inv) {
      for _, fe := range inv.Fields {
          fmt.Println(fe.Field, fe.Message)
      }
  }

SEE ALSO:
  - assumptions.go: Where FieldErrors are produced
*/
package projection

import (
	"errors"
	"fmt"
	"strings"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidAssumptions is returned when one or more input fields are
	// out of range. Wraps every FieldError and InvalidAssumptionsError.
	ErrInvalidAssumptions = errors.New("invalid assumptions")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// FieldError names a single offending input field.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e FieldError) Unwrap() error {
	return ErrInvalidAssumptions
}

// InvalidAssumptionsError aggregates every field that failed validation.
type InvalidAssumptionsError struct {
	Fields []FieldError
}

func (e *InvalidAssumptionsError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, fe := range e.Fields {
		msgs[i] = fe.Error()
	}
	return "invalid assumptions: " + strings.Join(msgs, "; ")
}

func (e *InvalidAssumptionsError) Unwrap() error {
	return ErrInvalidAssumptions
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidAssumptions)
}
