package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			"bare object",
			`{"state": "Maryland"}`,
			`{"state": "Maryland"}`,
			false,
		},
		{
			"markdown fenced",
			"```json\n{\"state\": \"Maryland\"}\n```",
			`{"state": "Maryland"}`,
			false,
		},
		{
			"surrounded by prose",
			`Sure! Here is the data you asked for: {"age": 65} Hope that helps.`,
			`{"age": 65}`,
			false,
		},
		{
			"nested objects",
			`{"verified_data": {"state": "Texas"}, "confidence": {"state": 9}}`,
			`{"verified_data": {"state": "Texas"}, "confidence": {"state": 9}}`,
			false,
		},
		{
			"braces inside strings",
			`{"note": "use {curly} braces carefully"}`,
			`{"note": "use {curly} braces carefully"}`,
			false,
		},
		{
			"escaped quote inside string",
			`{"note": "he said \"yes\""}`,
			`{"note": "he said \"yes\""}`,
			false,
		},
		{
			"no object",
			"I could not find any information.",
			"",
			true,
		},
		{
			"unbalanced",
			`{"state": "Maryland"`,
			"",
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSON(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}
