package llm

import (
	"encoding/json"
	"regexp"
	"sort"
	"strings"

	"clementus360/focus-agents/config"
)

var (
	codeBlockRegex     = regexp.MustCompile("(?is)```json\\s*(.*?)\\s*```")
	braceRegex         = regexp.MustCompile(`(?s)\{.*?\}`)
	trailingCommaRegex = regexp.MustCompile(`,(\s*[}\]])`)
	unquotedKeyRegex   = regexp.MustCompile(`([{,]\s*)([a-zA-Z_][a-zA-Z0-9_]*)\s*:`)
	bareValueRegex     = regexp.MustCompile(`:\s*([a-zA-Z_][a-zA-Z0-9_]*)\s*([,}])`)
	whitespaceRegex    = regexp.MustCompile(`\s+`)
)

type extractor struct {
	name string
	fn   func(string) (interface{}, bool)
}

var extractors = []extractor{
	{"direct", parseDirect},
	{"code block", parseCodeBlock},
	{"brace scan", parseBraceMatches},
	{"nested span", parseLargestSpan},
}

// ParseStructured recovers a JSON object or array from generated text. It
// never fails: when nothing parses it returns FallbackValue(text).
func ParseStructured(text string) interface{} {
	for _, ex := range extractors {
		if v, ok := ex.fn(text); ok {
			config.Logger.Debugf("Parsed completion using %s strategy", ex.name)
			return v
		}
	}

	config.Logger.Warn("Failed to parse completion as JSON, returning fallback value")
	return FallbackValue(text)
}

// FallbackValue is the synthetic result for text with no recoverable JSON.
func FallbackValue(text string) map[string]interface{} {
	desc := text
	if runes := []rune(text); len(runes) > config.FallbackDescLength {
		desc = string(runes[:config.FallbackDescLength])
	}

	return map[string]interface{}{
		"insights": []interface{}{
			map[string]interface{}{
				"type":        "general",
				"title":       "Analysis Available",
				"description": desc + "...",
				"impact":      "medium",
				"actionable":  false,
			},
		},
		"performanceScore": 7.0,
		"error":            "parse failed",
	}
}

// Strategy 1: the whole text is JSON
func parseDirect(text string) (interface{}, bool) {
	return decodeStructured(strings.TrimSpace(text))
}

// Strategy 2: a ```json fenced block
func parseCodeBlock(text string) (interface{}, bool) {
	matches := codeBlockRegex.FindStringSubmatch(text)
	if len(matches) < 2 {
		return nil, false
	}
	return decodeStructured(strings.TrimSpace(matches[1]))
}

// Strategy 3: every top-level {...} found by a non-greedy scan, raw then
// repaired. Matches that start inside another object are skipped so an inner
// fragment never wins over its parent.
func parseBraceMatches(text string) (interface{}, bool) {
	depth := depthIndex(text)
	for _, loc := range braceRegex.FindAllStringIndex(text, -1) {
		if depth[loc[0]] > 0 {
			continue
		}
		if v, ok := decodeWithRepair(text[loc[0]:loc[1]]); ok {
			return v, true
		}
	}
	return nil, false
}

// Strategy 4: the largest balanced {...} or [...] span, repaired. A span
// left open at the end of the text is closed in nesting order.
func parseLargestSpan(text string) (interface{}, bool) {
	spans := balancedSpans(text)
	sort.SliceStable(spans, func(i, j int) bool {
		return len(spans[i]) > len(spans[j])
	})
	for _, span := range spans {
		if v, ok := decodeWithRepair(span); ok {
			return v, true
		}
	}
	return nil, false
}

func decodeWithRepair(candidate string) (interface{}, bool) {
	if v, ok := decodeStructured(candidate); ok {
		return v, true
	}
	return decodeStructured(repairJSON(candidate))
}

// decodeStructured accepts only objects and arrays.
func decodeStructured(candidate string) (interface{}, bool) {
	if candidate == "" {
		return nil, false
	}
	var v interface{}
	if err := json.Unmarshal([]byte(candidate), &v); err != nil {
		return nil, false
	}
	switch v.(type) {
	case map[string]interface{}, []interface{}:
		return v, true
	default:
		return nil, false
	}
}

// repairJSON fixes the usual model mistakes: trailing commas, unquoted keys,
// unquoted bare-word values and raw newlines.
func repairJSON(text string) string {
	text = strings.TrimSpace(text)
	text = trailingCommaRegex.ReplaceAllString(text, "$1")
	text = unquotedKeyRegex.ReplaceAllString(text, `$1"$2":`)
	text = bareValueRegex.ReplaceAllStringFunc(text, func(m string) string {
		sub := bareValueRegex.FindStringSubmatch(m)
		switch sub[1] {
		case "true", "false", "null":
			return m
		}
		return `:"` + sub[1] + `"` + sub[2]
	})
	text = strings.ReplaceAll(text, "\n", " ")
	return whitespaceRegex.ReplaceAllString(text, " ")
}

// depthIndex reports the object/array nesting depth before each byte,
// ignoring brackets inside strings.
func depthIndex(text string) []int {
	depth := make([]int, len(text)+1)
	level := 0
	inString := false
	escaped := false

	for i := 0; i < len(text); i++ {
		depth[i] = level
		char := text[i]

		if escaped {
			escaped = false
			continue
		}
		if char == '\\' && inString {
			escaped = true
			continue
		}
		if char == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		switch char {
		case '{', '[':
			level++
		case '}', ']':
			if level > 0 {
				level--
			}
		}
	}
	depth[len(text)] = level
	return depth
}

// balancedSpans returns the balanced span starting at every opener in the
// text, nested ones included, so a stray unclosed brace cannot hide a valid
// object after it. A top-level span left open at the end of the text is
// closed in nesting order.
func balancedSpans(text string) []string {
	depth := depthIndex(text)
	seen := map[string]bool{}
	var spans []string

	for i := 0; i < len(text); i++ {
		if text[i] != '{' && text[i] != '[' {
			continue
		}
		span, ok := spanFrom(text, i, depth[i] == 0)
		if ok && !seen[span] {
			seen[span] = true
			spans = append(spans, span)
		}
	}
	return spans
}

// spanFrom scans from the opener at start to its matching closer. Brackets
// are counted outside strings only. A mismatched closer ends the span
// without a result.
func spanFrom(text string, start int, closeOpen bool) (string, bool) {
	var stack []byte
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
		char := text[i]

		if escaped {
			escaped = false
			continue
		}
		if char == '\\' && inString {
			escaped = true
			continue
		}
		if char == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		switch char {
		case '{', '[':
			stack = append(stack, char)
		case '}', ']':
			open := stack[len(stack)-1]
			if (open == '{' && char != '}') || (open == '[' && char != ']') {
				return "", false
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return text[start : i+1], true
			}
		}
	}

	if !closeOpen {
		return "", false
	}

	var closing strings.Builder
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i] == '{' {
			closing.WriteByte('}')
		} else {
			closing.WriteByte(']')
		}
	}
	tail := strings.TrimRight(text[start:], " \t\r\n,")
	if inString {
		tail += `"`
	}
	return tail + closing.String(), true
}
