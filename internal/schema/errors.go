package schema

import "fmt"

// UnknownAssociationError reports a path segment that is not an association on
// the schema it was looked up on.
type UnknownAssociationError struct {
	Schema      string
	Association string
}

func (e *UnknownAssociationError) Error() string {
	return fmt.Sprintf("unknown association %q on schema %q", e.Association, e.Schema)
}

// CyclicAssociationError reports a through-chain that expands back into itself.
type CyclicAssociationError struct {
	Schema      string
	Association string
}

func (e *CyclicAssociationError) Error() string {
	return fmt.Sprintf("cyclic through association %q on schema %q", e.Association, e.Schema)
}

// UnknownFieldError reports a filter or sort target field that does not exist
// on the resolved schema.
type UnknownFieldError struct {
	Schema string
	Field  string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown field %q on schema %q", e.Field, e.Schema)
}
