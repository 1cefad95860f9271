package service

import "fmt"

// ValidationError means the submission violated a field requirement. Nothing
// was written.
type ValidationError struct {
	Missing []Field
}

func (e ValidationError) Error() string {
	if len(e.Missing) == 0 {
		return "validation failed"
	}
	msg := "missing required fields:"
	for _, f := range e.Missing {
		msg += " " + string(f)
	}
	return msg
}

// PersistenceError means a local write failed. Fatal to the item it occurred
// on; in bulk mode it never touches sibling items.
type PersistenceError struct {
	Op  string
	Err error
}

func (e PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e PersistenceError) Unwrap() error {
	return e.Err
}
