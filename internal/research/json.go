// Package research implements the research and outreach stage: attaching a
// qualitative profile to each company and drafting channel-specific outreach
// text per contact, delegating analysis to a text-generation collaborator.
package research

import (
	"encoding/json"
	"strings"
)

// ExtractJSON returns the first balanced JSON object or array span found in
// free-form text, or "" when the text contains none. Model replies often
// wrap JSON in prose or code fences; only the span itself is returned, and
// only if it parses.
func ExtractJSON(text string) string {
	for i := 0; i < len(text); i++ {
		open := text[i]
		if open != '{' && open != '[' {
			continue
		}
		if span := balancedSpan(text[i:], open); span != "" {
			if json.Valid([]byte(span)) {
				return span
			}
		}
	}
	return ""
}

// balancedSpan scans for the matching close bracket, honoring string
// literals and escapes. Returns "" when the text ends unbalanced.
func balancedSpan(text string, open byte) string {
	var close byte = '}'
	if open == '[' {
		close = ']'
	}

	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == open:
			depth++
		case c == close:
			depth--
			if depth == 0 {
				return text[:i+1]
			}
		}
	}
	return ""
}

// decodeInto extracts the first JSON object from text and unmarshals it.
// The ok result is false when no parseable object was found.
func decodeInto(text string, v any) bool {
	span := ExtractJSON(text)
	if span == "" {
		return false
	}
	return json.Unmarshal([]byte(span), v) == nil
}

// joinList renders a string list as one text block for storage.
func joinList(items []string) string {
	var out []string
	for _, s := range items {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return strings.Join(out, "\n")
}

// textOrList decodes a JSON string or a list of strings. Models sometimes
// return the qualitative profile fields as arrays; those flatten to one
// newline-joined block.
type textOrList string

func (t *textOrList) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = textOrList(s)
		return nil
	}
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	*t = textOrList(joinList(items))
	return nil
}
