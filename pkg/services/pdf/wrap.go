package pdf

import "strings"

// wrapText greedily breaks text into lines no wider than width, using the
// supplied measurer. Words wider than the full width get a line of their own
// rather than being hyphenated. Whitespace runs collapse to single spaces, so
// joining the result with spaces reconstructs the normalized input.
func wrapText(measure func(string) float64, text string, width float64) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		candidate := current + " " + word
		if measure(candidate) <= width {
			current = candidate
			continue
		}
		lines = append(lines, current)
		current = word
	}
	return append(lines, current)
}
