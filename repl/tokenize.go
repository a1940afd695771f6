package repl

import "regexp"

// lineSplitRegex splits an interactive line into argument tokens: a
// double-quoted run, a single-quoted run, or a bare run of word characters
// and dashes. Quote styles do not nest; a dangling quote matches nothing and
// its run is dropped.
var lineSplitRegex = regexp.MustCompile(`"([^"]*)"|'([^']*)'|([\w\-]+)`)

// Tokenize splits one line of interactive input into ordered tokens with
// quoting stripped. A quoted run may be empty and still counts as one token.
// Blank input yields an empty slice.
func Tokenize(line string) []string {
	matches := lineSplitRegex.FindAllStringSubmatchIndex(line, -1)

	tokens := make([]string, 0, len(matches))
	for _, m := range matches {
		// first participating capture group wins
		for g := 1; g <= 3; g++ {
			if m[2*g] >= 0 {
				tokens = append(tokens, line[m[2*g]:m[2*g+1]])
				break
			}
		}
	}

	return tokens
}
