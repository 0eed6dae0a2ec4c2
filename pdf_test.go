package ocrtable

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func charsOf(text string, x, y, width, height float64) []pdfChar {
	var chars []pdfChar
	for _, r := range text {
		chars = append(chars, pdfChar{Text: r, Box: Rect{X0: x, Y0: y, X1: x + width, Y1: y + height}})
		x += width
	}
	return chars
}

func TestGroupCharsIntoWords(t *testing.T) {
	var chars []pdfChar
	chars = append(chars, charsOf("Item Qty", 0, 0, 5, 10)...)
	chars = append(chars, charsOf("Bolt", 0, 20, 5, 10)...)  // next line
	chars = append(chars, charsOf("12", 80, 20, 5, 10)...)   // far to the right
	chars = append(chars, charsOf("数量", 100, 20, 10, 10)...) // gap wider than a character

	words := groupCharsIntoWords(chars)

	texts := make([]string, len(words))
	for i, w := range words {
		texts[i] = w.Text
	}
	require.Equal(t, []string{"Item", "Qty", "Bolt", "12", "数量"}, texts)

	require.Equal(t, quad(0, 0, 20, 10), words[0].Box)
	require.Equal(t, quad(25, 0, 40, 10), words[1].Box)
	require.Equal(t, quad(80, 20, 90, 30), words[3].Box)
}

func TestGroupCharsIntoWords_Empty(t *testing.T) {
	require.Nil(t, groupCharsIntoWords(nil))
	require.Nil(t, groupCharsIntoWords(charsOf("   ", 0, 0, 5, 10)))
}
