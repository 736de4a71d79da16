// Package css extracts colour custom properties from stylesheets.
//
// It understands just enough CSS to find `--name: value;` declarations and
// the body of an @media block; it is not a general CSS parser.
package css

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// ErrVariableNotFound is returned when a custom property is not declared.
	ErrVariableNotFound = errors.New("variable not found")

	// ErrBlockNotFound is returned when an @media block is missing or unterminated.
	ErrBlockNotFound = errors.New("block not found")
)

// commentRegex matches /* ... */ comments, including multi-line ones.
var commentRegex = regexp.MustCompile(`(?s)/\*.*?\*/`)

// declarationRegex matches any custom property declaration.
var declarationRegex = regexp.MustCompile(`(--[A-Za-z0-9_-]+)\s*:\s*([^;{}]+?)\s*[;}]`)

// Token is a colour custom property found in a stylesheet.
type Token struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// Variable returns the normalised colour of the first declaration of the
// custom property name. The leading "--" is optional.
//
// A declaration whose value is not a colour is an error, not a miss.
func Variable(src, name string) (string, error) {
	c, err := VariableColour(src, name)
	if err != nil {
		return "", err
	}
	return c.String(), nil
}

// VariableColour is like Variable but returns the parsed colour.
func VariableColour(src, name string) (Colour, error) {
	name = "--" + strings.TrimPrefix(name, "--")

	re := regexp.MustCompile(`(?:^|[^A-Za-z0-9_-])` + regexp.QuoteMeta(name) + `\s*:\s*([^;{}]+?)\s*[;}]`)
	m := re.FindStringSubmatch(stripComments(src))
	if m == nil {
		return Colour{}, fmt.Errorf("cannot find variable %s in CSS: %w", name, ErrVariableNotFound)
	}

	c, err := ParseColour(m[1])
	if err != nil {
		return Colour{}, fmt.Errorf("variable %s: %w", name, err)
	}
	return c, nil
}

// Tokens returns every colour custom property in source order.
// Declarations whose value is not a colour are skipped.
func Tokens(src string) []Token {
	var tokens []Token
	for _, m := range declarationRegex.FindAllStringSubmatch(stripComments(src), -1) {
		c, err := ParseColour(m[2])
		if err != nil {
			continue
		}
		tokens = append(tokens, Token{Name: m[1], Value: c.String()})
	}
	return tokens
}

// MediaBlock returns the body of the first `@media <query> { ... }` block.
// Whitespace inside the query is matched loosely.
func MediaBlock(src, query string) (string, error) {
	src = stripComments(src)

	parts := strings.Fields(query)
	for i, p := range parts {
		parts[i] = regexp.QuoteMeta(p)
	}
	re := regexp.MustCompile(`@media\s+` + strings.Join(parts, `\s*`) + `\s*\{`)

	loc := re.FindStringIndex(src)
	if loc == nil {
		return "", fmt.Errorf("@media %s: %w", query, ErrBlockNotFound)
	}

	start := loc[1]
	end := findBlockEnd(src, start)
	if end < 0 {
		return "", fmt.Errorf("@media %s is unterminated: %w", query, ErrBlockNotFound)
	}
	return src[start:end], nil
}

// findBlockEnd returns the index of the brace closing a block whose opening
// brace sits just before pos, or -1 if it is never closed.
func findBlockEnd(content string, pos int) int {
	depth := 1
	for ; pos < len(content); pos++ {
		switch content[pos] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return pos
			}
		}
	}
	return -1
}

func stripComments(src string) string {
	return commentRegex.ReplaceAllString(src, "")
}
