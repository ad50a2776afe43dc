package codec

import (
	"database/sql/driver"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// Color is an RGB colour carried as an HTML colour code: #rrggbb, #rgb or
// a CSS colour name. Valid is false when the wire value was empty.
type Color struct {
	R, G, B uint8
	Valid   bool
}

// ParseColor decodes an HTML colour code. The empty string yields an
// invalid (unset) Color and no error.
func ParseColor(v string) (Color, error) {
	s := strings.ToLower(strings.TrimSpace(v))
	if s == "" {
		return Color{}, nil
	}
	if strings.HasPrefix(s, "#") {
		if !isHexCode(s) {
			return Color{}, &DecodeError{Value: v, Err: errHexDigits}
		}
		c, err := colorful.Hex(s)
		if err != nil {
			return Color{}, &DecodeError{Value: v, Err: err}
		}
		r, g, b := c.RGB255()
		return Color{R: r, G: g, B: b, Valid: true}, nil
	}
	named, ok := colornames.Map[s]
	if !ok {
		return Color{}, &DecodeError{Value: v, Err: ErrUnknownColor}
	}
	return Color{R: named.R, G: named.G, B: named.B, Valid: true}, nil
}

func isHexCode(s string) bool {
	if len(s) != 4 && len(s) != 7 {
		return false
	}
	for _, c := range s[1:] {
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'f') {
			return false
		}
	}
	return true
}

// String returns the canonical #rrggbb form, or "" when c is unset.
func (c Color) String() string {
	if !c.Valid {
		return ""
	}
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hex()
}

// RGBA implements color.Color. An unset colour is fully transparent.
func (c Color) RGBA() (r, g, b, a uint32) {
	if !c.Valid {
		return color.Transparent.RGBA()
	}
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}.RGBA()
}

func (c Color) MarshalJSON() ([]byte, error) { return quote(c.String()), nil }

func (c *Color) UnmarshalJSON(data []byte) error {
	v, ok, err := wireValue(data)
	if err != nil || !ok {
		return err
	}
	parsed, err := ParseColor(v)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c Color) Value() (driver.Value, error) {
	if !c.Valid {
		return nil, nil
	}
	return c.String(), nil
}
