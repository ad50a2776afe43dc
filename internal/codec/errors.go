package codec

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownColor is returned for a colour string that is neither a hex
	// code nor a known colour name.
	ErrUnknownColor = errors.New("unknown colour")
	errHexDigits    = errors.New("expected #rgb or #rrggbb hex digits")
	errNotScalar    = errors.New("expected a string or number")
)

// DecodeError reports a wire value that could not be decoded.
// Field names the JSON property when the value was part of a record.
type DecodeError struct {
	Field string
	Value string
	Err   error
}

func (e *DecodeError) Error() string {
	value := e.Value
	if len(value) > 64 {
		value = value[:64] + "..."
	}
	if e.Field == "" {
		return fmt.Sprintf("decode: invalid value %q: %v", value, e.Err)
	}
	return fmt.Sprintf("decode %s: invalid value %q: %v", e.Field, value, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// WithField returns err annotated with the JSON property it was decoded
// from. Errors that are not a *DecodeError are wrapped into one.
func WithField(err error, field string) error {
	if err == nil {
		return nil
	}
	var de *DecodeError
	if errors.As(err, &de) {
		if de.Field != "" {
			return de
		}
		return &DecodeError{Field: field, Value: de.Value, Err: de.Err}
	}
	return &DecodeError{Field: field, Err: err}
}
