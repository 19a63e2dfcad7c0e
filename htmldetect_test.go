package paste2md

import "testing"

func TestLooksLikeHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{"full document", "<!DOCTYPE html><html><body>x</body></html>", true},
		{"html tag only", "<html><body>x</body></html>", true},
		{"paragraph fragment", "<p>Hello world</p>", true},
		{"word export fragment", `<p class="MsoNormal">text</p>`, true},
		{"heading fragment", "<h2>Section</h2>", true},
		{"span with style", `<span style="font-weight:700">bold</span>`, true},
		{"uppercase tag", "<P>Hello</P>", true},
		{"plain text", "just some text", false},
		{"markdown", "# Heading\n\n- item", false},
		{"angle brackets in prose", "use x < y and y > z", false},
		{"code generic", "func f[T any](x T) {}", false},
		{"unknown tag", "<custom-widget>x</custom-widget>", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := LooksLikeHTML(tt.content)
			if got != tt.want {
				t.Errorf("LooksLikeHTML(%q) = %v, want %v", tt.content, got, tt.want)
			}
		})
	}
}
