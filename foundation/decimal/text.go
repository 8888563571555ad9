package decimal

import (
	"fmt"
	"strings"
)

// MarshalText implements the encoding.TextMarshaler interface.
func (d Decimal) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface. The
// number of decimal places is the larger of the places already configured
// on d and the fractional digits present in the text, so no digits are lost.
func (d *Decimal) UnmarshalText(text []byte) error {
	s := string(text)

	places := d.places
	if _, fraction, found := strings.Cut(s, "."); found && len(fraction) > places {
		places = len(fraction)
	}

	v, err := Parse(s, places, d.rounding)
	if err != nil {
		return err
	}

	*d = v
	return nil
}

// MarshalJSON implements the json.Marshaler interface. Values are encoded
// as JSON strings to keep their exact precision.
func (d Decimal) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface. Both JSON
// strings and JSON numbers are accepted.
func (d *Decimal) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		return nil
	}

	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}

	if err := d.UnmarshalText([]byte(s)); err != nil {
		return fmt.Errorf("unmarshal json: %w", err)
	}

	return nil
}
