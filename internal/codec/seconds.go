package codec

import (
	"database/sql/driver"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const maxSeconds = int64(math.MaxInt64 / int64(time.Second))

// Seconds is a duration carried on the wire as a whole number of seconds,
// usually inside a JSON string ("3600").
type Seconds time.Duration

// ParseSeconds decodes an integer seconds value.
func ParseSeconds(v string) (Seconds, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil {
		return 0, &DecodeError{Value: v, Err: err}
	}
	if n > maxSeconds || n < -maxSeconds {
		return 0, &DecodeError{Value: v, Err: fmt.Errorf("%d seconds is out of range", n)}
	}
	return Seconds(time.Duration(n) * time.Second), nil
}

// Duration returns s as a time.Duration.
func (s Seconds) Duration() time.Duration { return time.Duration(s) }

// String returns the total number of whole seconds.
func (s Seconds) String() string {
	return strconv.FormatInt(int64(time.Duration(s)/time.Second), 10)
}

// Hours returns the duration in fractional hours.
func (s Seconds) Hours() float64 { return time.Duration(s).Hours() }

func (s Seconds) MarshalJSON() ([]byte, error) {
	return quote(s.String()), nil
}

func (s *Seconds) UnmarshalJSON(data []byte) error {
	v, ok, err := wireValue(data)
	if err != nil || !ok {
		return err
	}
	parsed, err := ParseSeconds(v)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Value stores the duration as whole seconds.
func (s Seconds) Value() (driver.Value, error) {
	return int64(time.Duration(s) / time.Second), nil
}
