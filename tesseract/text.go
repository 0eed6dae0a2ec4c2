package tesseract

import "strings"

// trimWord strips the surrounding whitespace Tesseract leaves on line-level text.
// Chinese text recognized by Tesseract also carries spaces between glyphs; those are
// removed when both neighbours are CJK so headers still match exactly.
func trimWord(s string) string {
	s = strings.TrimSpace(s)
	if !strings.Contains(s, " ") {
		return s
	}

	runes := []rune(s)
	var sb strings.Builder
	for i, r := range runes {
		if r == ' ' && i > 0 && i < len(runes)-1 && isCJK(runes[i-1]) && isCJK(runes[i+1]) {
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// isCJK checks for the CJK unified ideograph ranges
func isCJK(r rune) bool {
	return (r >= 0x4E00 && r <= 0x9FFF) || (r >= 0x3400 && r <= 0x4DBF) || (r >= 0xF900 && r <= 0xFAFF)
}
