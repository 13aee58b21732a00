package emit

import "github.com/cockroachdb/errors"

var (
	// ErrNotImplemented is returned when a map has no rendering for a node
	// kind the input contains.
	ErrNotImplemented = errors.New("operation not implemented")
	// ErrUnsupported is returned when a back end has no rendering for a
	// construct in its target language.
	ErrUnsupported = errors.New("construct not supported")
	// ErrUnhandledNode is returned for a node type Visit does not know.
	ErrUnhandledNode = errors.New("unhandled node type")
)
