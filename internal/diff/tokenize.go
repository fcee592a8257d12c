package diff

import "unicode"

// Newline is the token that separates the lines passed to TokenizeLines
const Newline = "\n"

type tokenClass int

const (
	classSpace tokenClass = iota
	classWord
	classOther
)

func classOf(r rune) tokenClass {
	switch {
	case unicode.IsSpace(r):
		return classSpace
	case unicode.IsLetter(r), unicode.IsDigit(r), unicode.IsMark(r), unicode.Is(unicode.Pc, r):
		return classWord
	default:
		return classOther
	}
}

// TokenizeLines splits every line into maximal runs of word characters, whitespace and other
// characters and joins the lines with a Newline token.
func TokenizeLines(lines []string) []string {
	var tokens []string
	for _, line := range lines {
		tokens = appendTokens(tokens, line)
		tokens = append(tokens, Newline)
	}
	if len(tokens) > 0 {
		tokens = tokens[:len(tokens)-1]
	}
	return tokens
}

func appendTokens(tokens []string, line string) []string {
	start := 0
	var current tokenClass
	for i, r := range line {
		class := classOf(r)
		if i == 0 {
			current = class
			continue
		}
		if class != current {
			tokens = append(tokens, line[start:i])
			start = i
			current = class
		}
	}
	if start < len(line) {
		tokens = append(tokens, line[start:])
	}
	return tokens
}
