package models

import (
	"bytes"
	"math"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// The league's static files were exported by hand over several seasons, so
// the same column shows up as a JSON number in one file, a quoted string in
// the next and null or "" when a week was never scored. The Flex* scalars
// accept all of those spellings and record whether a usable value was present.

// FlexFloat is a nullable number that also accepts numeric strings.
type FlexFloat struct {
	Value float64
	Valid bool
}

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	*f = FlexFloat{}

	s, ok := scalarText(data)
	if !ok || s == "" {
		return nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return nil
	}
	f.Value = n
	f.Valid = true
	return nil
}

// Ptr returns nil when the value was absent.
func (f FlexFloat) Ptr() *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Value
	return &v
}

// Or returns the value, or def when absent.
func (f FlexFloat) Or(def float64) float64 {
	if !f.Valid {
		return def
	}
	return f.Value
}

// FlexInt accepts 3, 3.0, "3" and "3.0"; fractional parts are truncated.
type FlexInt struct {
	Value int
	Valid bool
}

func (i *FlexInt) UnmarshalJSON(data []byte) error {
	var f FlexFloat
	if err := f.UnmarshalJSON(data); err != nil {
		return err
	}
	*i = FlexInt{Value: int(f.Value), Valid: f.Valid}
	return nil
}

// FlexString accepts strings, numbers and booleans. Objects, arrays and null
// decode to the empty string.
type FlexString string

func (s *FlexString) UnmarshalJSON(data []byte) error {
	text, _ := scalarText(data)
	*s = FlexString(text)
	return nil
}

func (s FlexString) String() string {
	return strings.TrimSpace(string(s))
}

// scalarText returns the trimmed textual form of a JSON scalar.
func scalarText(data []byte) (string, bool) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return "", false
	}

	switch data[0] {
	case '"':
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return "", false
		}
		return strings.TrimSpace(str), true
	case '{', '[':
		return "", false
	default:
		return string(data), true
	}
}
