package pdf

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// charMeasure treats every rune as one unit wide.
func charMeasure(s string) float64 {
	return float64(len([]rune(s)))
}

func TestWrapText(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width float64
		want  []string
	}{
		{
			name:  "fits on one line",
			text:  "short text",
			width: 40,
			want:  []string{"short text"},
		},
		{
			name:  "breaks at word boundaries",
			text:  "alpha beta gamma delta",
			width: 11,
			want:  []string{"alpha beta", "gamma delta"},
		},
		{
			name:  "oversized word gets its own line",
			text:  "hi incomprehensibilities hi",
			width: 10,
			want:  []string{"hi", "incomprehensibilities", "hi"},
		},
		{
			name:  "collapses whitespace runs",
			text:  "a   b\t\tc\n d",
			width: 40,
			want:  []string{"a b c d"},
		},
		{
			name:  "empty input",
			text:  "   ",
			width: 40,
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, wrapText(charMeasure, tt.text, tt.width))
		})
	}
}

func TestWrapTextReconstructsInput(t *testing.T) {
	text := "Every word of the paragraph must survive the page break machinery " +
		"with no loss and no duplication, regardless of where the lines fall."
	for _, width := range []float64{8, 15, 30, 72, 500} {
		lines := wrapText(charMeasure, text, width)
		assert.Equal(t, text, strings.Join(lines, " "), "width %v", width)
	}
}
