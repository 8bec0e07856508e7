package routing

import (
	"errors"
	"strconv"
)

var (
	// ErrMalformedDeclaration is wrapped by every DeclarationError. The
	// declaration is skipped and compilation goes on.
	ErrMalformedDeclaration = errors.New("malformed route declaration")

	// ErrNoRouteMatched is returned by Match when no path through the trie
	// accepts the given path.
	ErrNoRouteMatched = errors.New("no route matched")

	// ErrNoReverseRoute is returned by Reverse when no indexed route accepts
	// the given module, action and arguments.
	ErrNoReverseRoute = errors.New("no reverse route matched")

	// ErrConstraintViolation marks a value rejected by a "with" constraint.
	// It only disqualifies the candidate route being considered.
	ErrConstraintViolation = errors.New("constraint violation")

	errMissingArgument = errors.New("missing argument")
	errMissingFixed    = errors.New("missing fixed argument")
)

// DeclarationError describes a declaration skipped by Compile.
type DeclarationError struct {
	Index int
	Name  string
	URL   string
	Err   error
}

func (e *DeclarationError) Error() string {
	id := "#" + strconv.Itoa(e.Index)
	if e.Name != "" {
		id += " (" + e.Name + ")"
	}

	return "route " + id + " '" + e.URL + "': " + e.Err.Error()
}

// Unwrap returns the cause together with ErrMalformedDeclaration.
func (e *DeclarationError) Unwrap() []error {
	return []error{ErrMalformedDeclaration, e.Err}
}
