package convert

import (
	"strings"
	"testing"
)

func TestVerifyBalance(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"balanced", "@use 'c' as c;\n\n.a {\n  width: calc(100% - #{c.$gap});\n  &[x] {}\n}\n", nil},
		{"unclosed brace", ".a {\n  color: red;\n", []string{"1 unclosed brace(s)"}},
		{"stray brace", ".a {}\n}\n", []string{"line 2: unexpected \"}\""}},
		{"unclosed function", ".a {\n  color: rgba(0, 0, 0;\n}\n", []string{"unclosed parenthesis"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := verifyBalance([]byte(tt.text))
			if len(tt.want) == 0 {
				if len(got) != 0 {
					t.Errorf("verifyBalance() = %q, want none", got)
				}
				return
			}
			joined := strings.Join(got, "; ")
			for _, w := range tt.want {
				if !strings.Contains(joined, w) {
					t.Errorf("verifyBalance() = %q, want %q", got, w)
				}
			}
		})
	}
}
