package services

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

var (
	jsonFence = regexp.MustCompile("(?i)```json\\b([\\s\\S]*?)```")
	anyFence  = regexp.MustCompile("```([\\s\\S]*?)```")
)

// SummaryResult is the structured answer the model is asked to produce.
type SummaryResult struct {
	Summary    string `json:"summary"`
	Suggestion string `json:"suggestion"`
}

var errNotObject = errors.New("model output is not a JSON object")

// StripCodeFences unwraps ```json ... ``` and ``` ... ``` blocks and trims the result.
func StripCodeFences(raw string) string {
	out := jsonFence.ReplaceAllString(raw, "$1")
	out = anyFence.ReplaceAllString(out, "$1")
	return strings.TrimSpace(out)
}

// ParseSummary strips fences and decodes {summary, suggestion}. Missing or null
// keys decode as ""; other non-string values keep their JSON text.
func ParseSummary(raw string) (SummaryResult, error) {
	cleaned := StripCodeFences(raw)
	if !strings.HasPrefix(cleaned, "{") {
		return SummaryResult{}, errNotObject
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &fields); err != nil {
		return SummaryResult{}, err
	}
	return SummaryResult{
		Summary:    fieldText(fields["summary"]),
		Suggestion: fieldText(fields["suggestion"]),
	}, nil
}

func fieldText(v json.RawMessage) string {
	if len(v) == 0 || string(v) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return s
	}
	return string(v)
}

// ParseSummaryLenient is ParseSummary with a fallback: output that does not decode
// becomes the summary verbatim (fences removed, trimmed) with no suggestion.
func ParseSummaryLenient(raw string) SummaryResult {
	res, err := ParseSummary(raw)
	if err != nil {
		return SummaryResult{Summary: StripCodeFences(raw)}
	}
	return res
}
