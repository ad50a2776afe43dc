package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// wireValue unwraps a JSON string or bare scalar token into its text.
// ok is false for null. Objects and arrays are rejected.
func wireValue(data []byte) (value string, ok bool, err error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return "", false, nil
	}
	if data[0] == '{' || data[0] == '[' {
		return "", false, &DecodeError{Value: string(data), Err: errNotScalar}
	}
	if data[0] != '"' {
		return string(data), true, nil
	}
	if err := json.Unmarshal(data, &value); err != nil {
		return "", false, &DecodeError{Value: string(data), Err: err}
	}
	return value, true, nil
}

func quote(s string) []byte {
	b, _ := json.Marshal(s)
	return b
}

// FormatClock formats d as hh:mm:ss, prefixed with whole days (d.hh:mm:ss)
// once d reaches 24 hours. Sub-second precision is dropped.
func FormatClock(d time.Duration) string {
	sign := ""
	if d < 0 {
		sign = "-"
		d = -d
	}
	d = d.Truncate(time.Second)
	days := d / (24 * time.Hour)
	d -= days * 24 * time.Hour
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	if days > 0 {
		return fmt.Sprintf("%s%d.%02d:%02d:%02d", sign, days, h, m, s)
	}
	return fmt.Sprintf("%s%02d:%02d:%02d", sign, h, m, s)
}

// Text decodes a plain text property that TimeCamp sometimes sends as a bare
// number. null yields "".
func Text(data []byte) (string, error) {
	v, _, err := wireValue(data)
	return v, err
}
