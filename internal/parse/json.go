// Package parse recovers structured JSON from LLM completions. Models wrap
// output in markdown fences, prepend prose, or leave trailing commas; the
// extractor tolerates all of that and fails only when no parseable object
// exists at all.
package parse

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// ParseError reports a completion that contained no recoverable JSON object.
type ParseError struct {
	Reason string
	Cause  error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse LLM output: %s: %v", e.Reason, e.Cause)
	}
	return fmt.Sprintf("parse LLM output: %s", e.Reason)
}

func (e *ParseError) Unwrap() error { return e.Cause }

var (
	fenceRe         = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")
	trailingCommaRe = regexp.MustCompile(`,\s*([}\]])`)
)

// JSONObject extracts the outermost JSON object from raw model output and
// decodes it. Recovery order: strip markdown fences, slice from the first
// '{' to the last '}', decode strictly, then retry once with trailing
// commas removed.
func JSONObject(raw string) (map[string]any, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return nil, &ParseError{Reason: "empty output"}
	}

	if m := fenceRe.FindStringSubmatch(text); m != nil {
		text = strings.TrimSpace(m[1])
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return nil, &ParseError{Reason: "no JSON object found"}
	}
	text = text[start : end+1]

	var obj map[string]any
	if err := json.Unmarshal([]byte(text), &obj); err == nil {
		return obj, nil
	}

	repaired := trailingCommaRe.ReplaceAllString(text, "$1")
	if err := json.Unmarshal([]byte(repaired), &obj); err != nil {
		return nil, &ParseError{Reason: "invalid JSON object", Cause: err}
	}
	return obj, nil
}
