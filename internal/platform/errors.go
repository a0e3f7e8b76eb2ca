package platform

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateManager is returned when two managers (ports included)
	// share a name.
	ErrDuplicateManager = errors.New("duplicate effect manager")

	// ErrInvalidConfig is returned when a program is missing Init or Update.
	ErrInvalidConfig = errors.New("invalid program config")
)

// ManagerError ties a setup error to the manager that caused it.
type ManagerError struct {
	Name string
	Err  error
}

func (e *ManagerError) Error() string {
	return fmt.Sprintf("manager %q: %v", e.Name, e.Err)
}

func (e *ManagerError) Unwrap() error { return e.Err }
