package command

import (
	"bytes"
	"encoding/json"
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// looseString decodes a JSON string, number, or null into text. Models
// often answer "details": 2 where a string was asked for.
type looseString string

func (s *looseString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*s = ""
		return nil
	case len(b) > 0 && b[0] == '"':
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = looseString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return errors.New("expected string or number")
	}
	*s = looseString(n.String())
	return nil
}

func (s looseString) String() string {
	return strings.TrimSpace(string(s))
}

var firstInteger = regexp.MustCompile(`\d+`)

// parseIdentifier finds the record number in text like "2", "task 2" or "#2".
func parseIdentifier(text string) (int, bool) {
	m := firstInteger.FindString(text)
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
