package autosig

import "testing"

func TestPlainText(t *testing.T) {
	tests := []struct {
		name     string
		markup   string
		expected string
	}{
		{
			name:     "line breaks",
			markup:   "<strong>Jane</strong><br/>Engineer<br/>",
			expected: "Jane\nEngineer",
		},
		{
			name:     "blocks",
			markup:   "<div><div>Jane</div><div>Acme</div></div>",
			expected: "Jane\nAcme",
		},
		{
			name:     "inline link stays on its line",
			markup:   `<div>555 • <a href="https://x.com">https://x.com</a></div>`,
			expected: "555 • https://x.com",
		},
		{
			name:     "hidden elements",
			markup:   "<html><head><title>Signature</title><style>p{}</style></head><body><p>Jane</p><script>var x</script></body></html>",
			expected: "Jane",
		},
		{
			name:     "collapse whitespace and unescape",
			markup:   "<p>  Jane \n\t Doe &amp; Co </p>",
			expected: "Jane Doe & Co",
		},
		{
			name:     "empty",
			markup:   "<table><tr><td></td></tr></table>",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PlainText(tt.markup); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}
