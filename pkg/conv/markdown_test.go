package conv

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarkdownToTelegramHTML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "plain prompt",
			input:    "Mohon masukkan NPM anda",
			expected: "Mohon masukkan NPM anda\n",
		},
		{
			name:     "bold label",
			input:    "**NPM**",
			expected: "<strong>NPM</strong>\n",
		},
		{
			name:     "identifier as inline code",
			input:    "`12345678`",
			expected: "<code>12345678</code>\n",
		},
		{
			name:     "command hint mixes bold and code",
			input:    "**Bold** and *italic* with `daftar`",
			expected: "<strong>Bold</strong> and <em>italic</em> with <code>daftar</code>\n",
		},
		{
			name:     "header tags stripped",
			input:    "# Status Akun",
			expected: "Status Akun\n",
		},
		{
			name:     "script tags sanitized",
			input:    "<script>alert('xss')</script>",
			expected: "\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MarkdownToTelegramHTML([]byte(tt.input))
			if got != tt.expected {
				t.Errorf("MarkdownToTelegramHTML(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestMarkdownToPlainText(t *testing.T) {
	got := MarkdownToPlainText([]byte("**NPM** `12345678`"))
	assert.Contains(t, got, "NPM")
	assert.Contains(t, got, "12345678")
	assert.NotContains(t, got, "`")
	assert.NotContains(t, got, "<")

	assert.Equal(t, "", MarkdownToPlainText(nil))
}
