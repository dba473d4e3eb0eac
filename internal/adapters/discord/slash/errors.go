package slash

import "errors"

var (
	// ErrInvalidArgument is returned before any request is made when an argument is missing or malformed.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrCommandNotFound is returned when a name reference matches no command in the scope.
	ErrCommandNotFound = errors.New("command not found")

	// ErrHandlerExists is returned when a handler is already bound to a command name.
	ErrHandlerExists = errors.New("handler already registered")
)
