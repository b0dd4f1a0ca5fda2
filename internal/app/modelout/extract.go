// Package modelout pulls structured payloads out of free-form model text.
package modelout

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNoObject  = errors.New("no json object in model output")
	ErrMalformed = errors.New("malformed json in model output")
)

// ExtractObject returns the first balanced JSON object in text, after
// stripping a surrounding code fence.
func ExtractObject(text string) (string, bool) {
	trimmed := stripFence(text)
	start := -1
	depth := 0
	inString := false
	escape := false
	for i, r := range trimmed {
		if start == -1 {
			if r == '{' {
				start = i
				depth = 1
			}
			continue
		}
		if inString {
			switch {
			case escape:
				escape = false
			case r == '\\':
				escape = true
			case r == '"':
				inString = false
			}
			continue
		}
		switch r {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return trimmed[start : i+1], true
			}
		}
	}
	return "", false
}

func stripFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```")
		trimmed = strings.TrimLeft(trimmed, "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ")
		trimmed = strings.TrimSpace(trimmed)
	}
	if strings.HasSuffix(trimmed, "```") {
		trimmed = strings.TrimSuffix(trimmed, "```")
		trimmed = strings.TrimSpace(trimmed)
	}
	return trimmed
}

// Decode extracts the first JSON object from text and unmarshals it into out.
func Decode(text string, out any) error {
	obj, ok := ExtractObject(text)
	if !ok {
		return ErrNoObject
	}
	if err := json.Unmarshal([]byte(obj), out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return nil
}
