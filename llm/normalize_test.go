package llm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStructured_Strategies(t *testing.T) {
	tests := []struct {
		name  string
		input string
		key   string
		want  interface{}
	}{
		{
			name:  "direct object",
			input: `  {"message": "hi"}  `,
			key:   "message",
			want:  "hi",
		},
		{
			name:  "fenced json block",
			input: "Here you go:\n```json\n{\"a\": 1}\n```\nThanks!",
			key:   "a",
			want:  1.0,
		},
		{
			name:  "brace scan with trailing comma and bare value",
			input: `Sure! {"message": "go", "tone": upbeat,} done`,
			key:   "tone",
			want:  "upbeat",
		},
		{
			name:  "unquoted keys",
			input: `Response: {message: "hi", level: 8}`,
			key:   "level",
			want:  8.0,
		},
		{
			name:  "bare booleans stay booleans",
			input: `note {done: true, mood: great}`,
			key:   "done",
			want:  true,
		},
		{
			name:  "nested object",
			input: `Result: {"tasks": [{"id": "t1", "priority": "high"}], "feasibilityScore": 8} end`,
			key:   "feasibilityScore",
			want:  8.0,
		},
		{
			name:  "truncated output is closed",
			input: `{"message": "keep going", "actionableAdvice": ["a", "b"`,
			key:   "message",
			want:  "keep going",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseStructured(tt.input)
			obj, ok := got.(map[string]interface{})
			require.True(t, ok, "expected an object, got %T", got)
			assert.Equal(t, tt.want, obj[tt.key])
			assert.NotContains(t, obj, "error")
		})
	}
}

func TestParseStructured_NestedFragmentDoesNotWin(t *testing.T) {
	got := ParseStructured(`text {"x": {"c": 2}, "y": {"d": 3}} more`)
	obj, ok := got.(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, obj, "x")
	assert.Contains(t, obj, "y")
}

func TestParseStructured_StrayBraceBeforeObject(t *testing.T) {
	tests := []struct {
		name  string
		input string
		key   string
	}{
		{"unclosed brace in prose", `I'll use the format {like this: {"message":"Go"}`, "message"},
		{"draft marker before plan", `Plan (draft {v2 ... final: {"tasks":[{"title":"A"}]}`, "tasks"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj, ok := ParseStructured(tt.input).(map[string]interface{})
			require.True(t, ok)
			assert.Contains(t, obj, tt.key)
			assert.NotContains(t, obj, "error")
		})
	}
}

func TestBalancedSpans_RestartsAfterOpenSpan(t *testing.T) {
	spans := balancedSpans(`a {b {"c": [1]} d`)
	assert.Contains(t, spans, `{"c": [1]}`)
	assert.Contains(t, spans, `[1]`)
	assert.Contains(t, spans, `{b {"c": [1]} d}`)
}

func TestParseStructured_TopLevelArray(t *testing.T) {
	got := ParseStructured(`["a", "b"]`)
	arr, ok := got.([]interface{})
	require.True(t, ok)
	assert.Len(t, arr, 2)
}

func TestParseStructured_Fallback(t *testing.T) {
	inputs := []string{
		"no json here at all",
		"",
		"null",
		"42",
		"{{{{",
		"}]{[",
		strings.Repeat("x", 300),
	}

	for _, input := range inputs {
		got := ParseStructured(input)
		require.NotNil(t, got)

		obj, ok := got.(map[string]interface{})
		require.True(t, ok, "input %q", input)
		assert.Equal(t, 7.0, obj["performanceScore"])
		assert.Equal(t, "parse failed", obj["error"])

		insights, ok := obj["insights"].([]interface{})
		require.True(t, ok)
		require.Len(t, insights, 1)
		first := insights[0].(map[string]interface{})
		assert.Equal(t, "Analysis Available", first["title"])
		assert.Equal(t, "general", first["type"])
		assert.Equal(t, false, first["actionable"])
	}
}

func TestFallbackValue_TruncatesDescription(t *testing.T) {
	long := strings.Repeat("y", 300)
	first := FallbackValue(long)["insights"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, strings.Repeat("y", 200)+"...", first["description"])

	short := FallbackValue("oops")["insights"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "oops...", short["description"])
}

func TestRepairJSON(t *testing.T) {
	assert.Equal(t, `{"a": 1, "b": [1, 2]}`, repairJSON("{a: 1, b: [1, 2,],}"))
	assert.Equal(t, `{"s":"word", "n": null}`, repairJSON(`{"s": word, "n": null}`))
}
