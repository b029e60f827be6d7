package prompt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirm(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		want     bool
	}{
		{"matching input confirms", "bucket-x\n", "bucket-x", true},
		{"mismatched input declines", "something-else\n", "bucket-x", false},
		{"surrounding whitespace is ignored", "  bucket-x  \n", "bucket-x", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := NewStandardPrompter(strings.NewReader(tt.input), &out)

			confirmed, err := p.Confirm("About to delete.", tt.expected)
			require.NoError(t, err)
			assert.Equal(t, tt.want, confirmed)
			assert.Contains(t, out.String(), tt.expected)
		})
	}

	t.Run("EOF declines without error", func(t *testing.T) {
		var out bytes.Buffer
		p := NewStandardPrompter(strings.NewReader(""), &out)

		confirmed, err := p.Confirm("About to delete.", "bucket-x")
		require.NoError(t, err)
		assert.False(t, confirmed)
	})

	t.Run("empty expected value is an error", func(t *testing.T) {
		var out bytes.Buffer
		p := NewStandardPrompter(strings.NewReader("\n"), &out)

		_, err := p.Confirm("About to delete.", "")
		assert.Error(t, err)
	})
}
