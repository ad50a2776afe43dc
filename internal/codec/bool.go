package codec

import (
	"bytes"
	"database/sql/driver"
	"strings"
)

// ZeroOrOther is a flag carried as 0/1 (string or number). Only zero means
// false; every other value decodes to true, so encoding a decoded true
// always yields 1 whatever the original value was.
type ZeroOrOther bool

// ParseZeroOrOther never fails: any value other than 0 is true.
func ParseZeroOrOther(v string) ZeroOrOther {
	return strings.TrimSpace(v) != "0"
}

func (z ZeroOrOther) String() string {
	if z {
		return "1"
	}
	return "0"
}

func (z ZeroOrOther) MarshalJSON() ([]byte, error) { return []byte(z.String()), nil }

// UnmarshalJSON treats null as absent and leaves z untouched. The bare
// false literal decodes to false; the string "false" is non-zero and true.
func (z *ZeroOrOther) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("false")) {
		*z = false
		return nil
	}
	v, ok, err := wireValue(data)
	if err != nil || !ok {
		return err
	}
	*z = ParseZeroOrOther(v)
	return nil
}

func (z ZeroOrOther) Value() (driver.Value, error) { return bool(z), nil }
