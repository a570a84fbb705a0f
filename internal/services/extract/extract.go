// Package extract locates and parses the JSON payload inside free-form model
// output. It never returns an error: callers branch on Result.Status.
package extract

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Status tags the outcome of an extraction.
type Status int

const (
	// Found means a candidate was located and parsed.
	Found Status = iota
	// NotFound means no JSON-like span exists in the text.
	NotFound
	// ParseError means a candidate was located but is not valid JSON.
	ParseError
)

func (s Status) String() string {
	switch s {
	case Found:
		return "found"
	case NotFound:
		return "not_found"
	case ParseError:
		return "parse_error"
	default:
		return "unknown"
	}
}

// Strategy records which rule produced the candidate.
type Strategy int

const (
	StrategyNone Strategy = iota
	StrategyFenced
	StrategyLiteral
	StrategySpan
)

func (s Strategy) String() string {
	switch s {
	case StrategyFenced:
		return "fenced"
	case StrategyLiteral:
		return "literal"
	case StrategySpan:
		return "span"
	default:
		return "none"
	}
}

type Result struct {
	Status    Status
	Strategy  Strategy
	Candidate string
	Value     interface{}
	Err       error
}

// OK reports whether a value was extracted.
func (r Result) OK() bool {
	return r.Status == Found
}

const (
	jsonFence = "```json"
	fence     = "```"
)

// Greedy and leftmost; the brace alternative wins when both start at the same offset.
var spanPattern = regexp.MustCompile(`(?s)(\{.*\}|\[.*\])`)

// Candidate returns the JSON-looking substring of text, trying in order a
// ```json fenced block, the whole trimmed text when it opens with { or [,
// and the first greedy {...} or [...] span.
func Candidate(text string) (string, Strategy, bool) {
	if start := strings.Index(text, jsonFence); start >= 0 {
		body := text[start+len(jsonFence):]
		if end := strings.Index(body, fence); end >= 0 {
			body = body[:end]
		}
		return strings.TrimSpace(body), StrategyFenced, true
	}

	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		return trimmed, StrategyLiteral, true
	}

	if match := spanPattern.FindString(text); match != "" {
		return match, StrategySpan, true
	}

	return "", StrategyNone, false
}

// JSON extracts and decodes the payload of text.
func JSON(text string) Result {
	candidate, strategy, ok := Candidate(text)
	if !ok {
		return Result{Status: NotFound}
	}

	result := Result{Strategy: strategy, Candidate: candidate}
	if err := json.Unmarshal([]byte(candidate), &result.Value); err != nil {
		result.Status = ParseError
		result.Value = nil
		result.Err = err
		return result
	}

	result.Status = Found
	return result
}
