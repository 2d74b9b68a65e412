package llm

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	jsonFence    = regexp.MustCompile("```json\n?")
	genericFence = regexp.MustCompile("```\n?")
)

// ErrNullPayload is returned when the payload is the JSON literal null.
var ErrNullPayload = errors.New("payload is null")

// StripCodeFences removes markdown code fence markers anywhere in content.
func StripCodeFences(content string) string {
	out := strings.TrimSpace(content)
	out = jsonFence.ReplaceAllString(out, "")
	out = genericFence.ReplaceAllString(out, "")
	return strings.TrimSpace(out)
}

// DecodeCandidate parses model output into an untyped JSON object after
// stripping fences. The whole text must be one JSON value; prose around it is
// a decode error. Arrays and scalars carry no fields and decode to an empty
// object.
func DecodeCandidate(content string) (map[string]any, error) {
	text := StripCodeFences(content)
	if text == "" {
		return nil, errors.New("empty payload")
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(text)))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	if dec.More() {
		return nil, errors.New("decode payload: trailing data")
	}
	switch obj := v.(type) {
	case nil:
		return nil, ErrNullPayload
	case map[string]any:
		return obj, nil
	default:
		return map[string]any{}, nil
	}
}
