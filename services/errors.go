// ABOUTME: Typed errors for the sparing computation services
// ABOUTME: InvalidParameterError rejects inputs outside their valid domain

package services

import (
	"errors"
	"fmt"
)

// InvalidParameterError reports an input outside its valid domain.
// Computation halts without a partial result when one is returned.
type InvalidParameterError struct {
	Param  string
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s: %s", e.Param, e.Reason)
}

// IsInvalidParameter reports whether err is an InvalidParameterError.
func IsInvalidParameter(err error) bool {
	var ipe *InvalidParameterError
	return errors.As(err, &ipe)
}
