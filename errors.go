package weave

import (
	"errors"

	"github.com/AnatoleLucet/weave/internal/platform"
)

var (
	// ErrMissingView is returned by Element for apps without a View.
	ErrMissingView = errors.New("weave: Element needs a View")

	// ErrDuplicatePort is returned when two ports share a name, or a port is
	// named like the built-in "Task" manager.
	ErrDuplicatePort = platform.ErrDuplicateManager

	// ErrInvalidApp is returned for apps without Init or Update.
	ErrInvalidApp = platform.ErrInvalidConfig
)
