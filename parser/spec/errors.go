package spec

import "github.com/pkg/errors"

var (
	// ErrNotFound is returned when a node is expected to be a child of another
	// node but is not.
	ErrNotFound = errors.New("node not found")
	// ErrNotImplemented is returned by the parts of the DOM surface that the
	// parser never needs.
	ErrNotImplemented = errors.New("not implemented")
	// ErrHierarchyRequest is returned when an operation would put a node in a
	// position it cannot occupy.
	ErrHierarchyRequest = errors.New("hierarchy request")
)

func notImplemented(method string) error {
	return errors.Wrap(ErrNotImplemented, method)
}
