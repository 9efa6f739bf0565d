package shape

import (
	"strconv"
	"strings"
)

// Precision is the number of decimals used when rendering values.
const Precision = 2

// Blend returns a shape with a's commands whose values sit progress of the
// way from a to b. Where b has no parameter list at a position, or a list
// shorter than a's, the missing values are taken from a. progress is used
// as given.
func Blend(a, b Shape, progress float64) Shape {
	out := Shape{
		Commands: a.Commands,
		Values:   make([][]float64, len(a.Commands)),
	}

	for i := range a.Commands {
		var numsA []float64
		if i < len(a.Values) {
			numsA = a.Values[i]
		}
		numsB := numsA
		if i < len(b.Values) {
			numsB = b.Values[i]
		}

		values := make([]float64, len(numsA))
		for j, numA := range numsA {
			numB := numA
			if j < len(numsB) {
				numB = numsB[j]
			}
			values[j] = numA + (numB-numA)*progress
		}
		out.Values[i] = values
	}

	return out
}

// Interpolate blends a towards b and renders the result as path data.
func Interpolate(a, b Shape, progress float64) string {
	return Blend(a, b, progress).String()
}

// String renders the shape as path data, e.g. "M 5 5L 15 15Z".
func (s Shape) String() string {
	var sb strings.Builder
	for i, cmd := range s.Commands {
		sb.WriteByte(cmd)
		if i >= len(s.Values) {
			continue
		}
		for _, v := range s.Values[i] {
			sb.WriteByte(' ')
			sb.WriteString(formatNumber(v))
		}
	}
	return sb.String()
}

func formatNumber(v float64) string {
	num := strconv.FormatFloat(v, 'f', Precision, 64)
	if strings.IndexByte(num, '.') >= 0 {
		num = strings.TrimRight(num, "0")
		num = strings.TrimSuffix(num, ".")
	}
	if num == "-0" {
		return "0"
	}
	return num
}
