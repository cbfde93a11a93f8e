package timing

import (
	"errors"
	"fmt"
)

// ErrMalformedSchema is matched by every SchemaError.
var ErrMalformedSchema = errors.New("malformed timing schema")

// SchemaError reports a timing tree that does not have the shape the
// evaluator relies on. Path locates the offending node, e.g.
// "tnLst/par[0]/seq[0]/par[2]".
type SchemaError struct {
	Path   string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s at %s: %s", ErrMalformedSchema, e.Path, e.Reason)
}

func (e *SchemaError) Unwrap() error {
	return ErrMalformedSchema
}

func malformed(path, format string, args ...any) error {
	return &SchemaError{Path: path, Reason: fmt.Sprintf(format, args...)}
}

func childPath(parent string, kind string, index int) string {
	return fmt.Sprintf("%s/%s[%d]", parent, kind, index)
}
