package richtext

import (
	"strings"
	"testing"
)

func TestRender(t *testing.T) {
	r := New()

	tests := map[string]struct {
		input    string
		contains []string
		absent   []string
	}{
		"blank":    {input: "  \n", contains: nil},
		"emphasis": {input: "We use **glass** straws", contains: []string{"<strong>glass</strong>"}},
		"line breaks": {
			input:    "Line one\nLine two",
			contains: []string{"Line one<br"},
		},
		"links": {
			input:    "See https://cocolist.vn for more",
			contains: []string{`href="https://cocolist.vn"`, "nofollow", `target="_blank"`},
		},
		"scripts stripped": {
			input:  "hi <script>alert(1)</script>",
			absent: []string{"<script"},
		},
		"event handlers stripped": {
			input:  `<a href="/x" onclick="steal()">x</a>`,
			absent: []string{"onclick"},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			out, err := r.Render(tc.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for _, want := range tc.contains {
				if !strings.Contains(string(out), want) {
					t.Fatalf("expected %q in %s", want, out)
				}
			}
			for _, bad := range tc.absent {
				if strings.Contains(string(out), bad) {
					t.Fatalf("did not expect %q in %s", bad, out)
				}
			}
			if strings.TrimSpace(tc.input) == "" && out != "" {
				t.Fatalf("expected empty output, got %q", out)
			}
		})
	}
}

func TestMustRender(t *testing.T) {
	if got := New().MustRender("_hi_"); !strings.Contains(string(got), "<em>hi</em>") {
		t.Fatalf("unexpected output: %s", got)
	}
}
