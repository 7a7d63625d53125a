package listspec

import "fmt"

// DuplicateKeyError reports two specs in one list sharing a key. Spec lists
// are caller configuration, so this fails interpretation outright instead of
// silently picking one.
type DuplicateKeyError struct {
	Key string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate spec key %q", e.Key)
}

// MalformedSortTokenError reports a sort token that cannot be split into a
// key and an optional direction.
type MalformedSortTokenError struct {
	Token string
}

func (e *MalformedSortTokenError) Error() string {
	return fmt.Sprintf("malformed sort token %q (want key or key:asc|desc)", e.Token)
}

// ComputedDefaultError reports a default-value function that failed.
type ComputedDefaultError struct {
	Key string
	Err error
}

func (e *ComputedDefaultError) Error() string {
	return fmt.Sprintf("computed default for %q failed: %v", e.Key, e.Err)
}

func (e *ComputedDefaultError) Unwrap() error {
	return e.Err
}
