package convert

import (
	"regexp"
)

// Line comments do not survive parsing, when requested they are hidden in
// block comments marked with a sentinel and restored after rendering.
const signMark = "!#sign#!"

var (
	reLineComment     = regexp.MustCompile(`//\s(.*)`)
	reSignedComment   = regexp.MustCompile(`/\*\s` + regexp.QuoteMeta(signMark) + `\s(.*)\s\*/`)
	reTrailingComment = regexp.MustCompile(`(?m)^( *)(\S(.+?))( *)(/\*.*\*/)$`)
)

// prepareSource rewrites source text before it is handed to the parser.
func prepareSource(src string, signComments bool) string {
	if signComments {
		src = reLineComment.ReplaceAllString(src, "/* "+signMark+" $1 */")
	}
	// declarations followed by a comment on the same line need terminating
	// semicolon to be parsed as declarations
	return reTrailingComment.ReplaceAllString(src, "$1$2;$4$5")
}

// restoreComments turns sentinel comments back into line comments.
func restoreComments(text string) string {
	return reSignedComment.ReplaceAllString(text, "// $1")
}
