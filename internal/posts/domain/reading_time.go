package domain

import (
	"math"
	"strings"
	"unicode"
)

// WordsPerMinute is the reading speed behind EstimateReadingMinutes.
const WordsPerMinute = 200

// EstimateReadingMinutes returns round(words/200) for the headings and body
// text of content, rounding halves away from zero. Empty content yields 0;
// there is no minimum of one minute.
func EstimateReadingMinutes(content []ContentSection) int {
	words := 0
	for _, section := range content {
		if section.Heading != nil {
			words += CountWords(*section.Heading)
		}
		for _, block := range section.Body {
			words += CountWords(block.Text)
		}
	}

	return int(math.Round(float64(words) / WordsPerMinute))
}

// CountWords counts the non-empty runs of word runes in s. Letters, marks,
// digits and '_' are word runes; everything else separates words.
func CountWords(s string) int {
	return len(strings.FieldsFunc(s, isSeparator))
}

func isSeparator(r rune) bool {
	return !(unicode.IsLetter(r) || unicode.IsMark(r) || unicode.IsDigit(r) || r == '_')
}
