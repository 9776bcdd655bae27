package research

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "bare object",
			in:   `{"a":1}`,
			want: `{"a":1}`,
		},
		{
			name: "prose wrapped",
			in:   "Here is the result:\n```json\n{\"a\": 1}\n```\nLet me know!",
			want: `{"a": 1}`,
		},
		{
			name: "nested braces",
			in:   `prefix {"a": {"b": [1, 2]}} suffix`,
			want: `{"a": {"b": [1, 2]}}`,
		},
		{
			name: "braces inside strings",
			in:   `{"a": "closing } brace and \"escape\""}`,
			want: `{"a": "closing } brace and \"escape\""}`,
		},
		{
			name: "array",
			in:   `the list: ["x", "y"]`,
			want: `["x", "y"]`,
		},
		{
			name: "no json",
			in:   "plain text only",
			want: "",
		},
		{
			name: "unbalanced",
			in:   `{"a": 1`,
			want: "",
		},
		{
			name: "invalid skipped for later valid",
			in:   `{not json} then {"ok": true}`,
			want: `{"ok": true}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractJSON(tt.in))
		})
	}
}

func TestDecodeInto(t *testing.T) {
	var out struct {
		Approved bool   `json:"approved"`
		Feedback string `json:"feedback"`
	}

	ok := decodeInto(`Sure! {"approved": true, "feedback": "looks good"}`, &out)
	require.True(t, ok)
	assert.True(t, out.Approved)
	assert.Equal(t, "looks good", out.Feedback)

	assert.False(t, decodeInto("no json here", &out))
}

func TestJoinList(t *testing.T) {
	assert.Equal(t, "a\nb", joinList([]string{" a ", "", "b"}))
	assert.Empty(t, joinList(nil))
}
