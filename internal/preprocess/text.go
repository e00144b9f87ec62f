package preprocess

import (
	"strings"
	"unicode"

	"github.com/go-softwarelab/common/pkg/slices"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func isASCIIAlnum(r rune) bool {
	return r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r))
}

// SelectAlphanumeric removes every rune that is not an ASCII letter, an ASCII
// digit or whitespace. Case and whitespace layout are kept.
func SelectAlphanumeric(text string) string {
	return strings.Map(func(r rune) rune {
		if isASCIIAlnum(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, text)
}

// Tokenize applies SelectAlphanumeric, lowercases the result and collapses
// whitespace runs into single spaces.
func Tokenize(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(SelectAlphanumeric(text))), " ")
}

// RemoveStopwords lowercases text, splits it on whitespace and drops every
// token equal to a lowercased stopword. Tokens are rejoined with single spaces.
func RemoveStopwords(text string, stopwords []string) string {
	lower := cases.Lower(language.Und)
	drop := make(map[string]struct{}, len(stopwords))
	for _, sw := range stopwords {
		drop[lower.String(sw)] = struct{}{}
	}
	kept := slices.Filter(strings.Fields(lower.String(text)), func(word string) bool {
		_, found := drop[word]
		return !found
	})
	return strings.Join(kept, " ")
}
