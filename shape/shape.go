// Package shape parses SVG path data into command/parameter lists and
// blends two parsed paths into a new one.
package shape

import (
	"strings"
	"unicode"

	parsestrconv "github.com/tdewolff/parse/v2/strconv"
)

// Commands are the path command letters recognised by Parse.
const Commands = "MLHVCSQTAZ"

// Shape is a parsed path. Values[i] holds the parameters of Commands[i].
// A Shape is never modified after it has been parsed.
type Shape struct {
	Commands []byte
	Values   [][]float64
}

// Len returns the number of commands.
func (s Shape) Len() int {
	return len(s.Commands)
}

// Empty reports whether the shape has no commands.
func (s Shape) Empty() bool {
	return len(s.Commands) == 0
}

func isCommand(c byte) bool {
	return strings.IndexByte(Commands, c) >= 0
}

func isSeparator(r rune) bool {
	return r == ',' || unicode.IsSpace(r)
}

// Parse splits path data on its command letters. Anything it cannot read
// (text before the first command, a token that is not a number) gives the
// empty Shape.
func Parse(d string) Shape {
	start := strings.IndexFunc(d, func(r rune) bool { return !unicode.IsSpace(r) })
	if start < 0 || !isCommand(d[start]) {
		return Shape{}
	}

	var s Shape
	for i := start; i < len(d); {
		j := i + 1
		for j < len(d) && !isCommand(d[j]) {
			j++
		}

		values, ok := parseValues(d[i+1 : j])
		if !ok {
			return Shape{}
		}
		s.Commands = append(s.Commands, d[i])
		s.Values = append(s.Values, values)
		i = j
	}

	return s
}

func parseValues(text string) ([]float64, bool) {
	tokens := strings.FieldsFunc(text, isSeparator)
	values := make([]float64, 0, len(tokens))
	for _, tok := range tokens {
		v, n := parsestrconv.ParseFloat([]byte(tok))
		if n == 0 || n != len(tok) {
			return nil, false
		}
		values = append(values, v)
	}
	return values, true
}
