package convert

import (
	"bytes"
	"fmt"
	"io"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// verifyBalance tokenizes generated text and reports unbalanced braces,
// parentheses and brackets. Rendering problems usually show up this way.
func verifyBalance(text []byte) []string {
	l := css.NewLexer(parse.NewInput(bytes.NewReader(text)))

	var braces, parens, brackets int
	var problems []string
	line := 1
	for {
		tt, data := l.Next()
		switch tt {
		case css.ErrorToken:
			if err := l.Err(); err != nil && err != io.EOF {
				problems = append(problems, fmt.Sprintf("line %d: %v", line, err))
			}
			return appendImbalance(problems, braces, parens, brackets)
		case css.LeftBraceToken:
			braces++
		case css.RightBraceToken:
			braces--
		case css.LeftParenthesisToken, css.FunctionToken:
			parens++
		case css.RightParenthesisToken:
			parens--
		case css.LeftBracketToken:
			brackets++
		case css.RightBracketToken:
			brackets--
		}
		if braces < 0 || parens < 0 || brackets < 0 {
			problems = append(problems, fmt.Sprintf("line %d: unexpected %q", line, data))
			braces, parens, brackets = max(braces, 0), max(parens, 0), max(brackets, 0)
		}
		line += bytes.Count(data, []byte{'\n'})
	}
}

func appendImbalance(problems []string, braces, parens, brackets int) []string {
	for _, open := range []struct {
		n    int
		name string
	}{{braces, "brace"}, {parens, "parenthesis"}, {brackets, "bracket"}} {
		if open.n > 0 {
			problems = append(problems, fmt.Sprintf("%d unclosed %s(s)", open.n, open.name))
		}
	}
	return problems
}
