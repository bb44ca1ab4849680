package models

import (
	"bytes"
	"math"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// FlexInt accepts a JSON number or a numeric string. Strings are read the way
// a browser's parseInt reads them: leading sign and digits, anything else ends
// the number, no digits at all yields 0.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexInt(ParseLeadingInt(s))
		return nil
	}

	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		*f = 0
		return nil
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		*f = 0
		return nil
	}
	*f = FlexInt(int(math.Trunc(n)))
	return nil
}

func (f FlexInt) Int() int {
	return int(f)
}

// ParseLeadingInt returns the integer prefix of s, or 0.
func ParseLeadingInt(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}
