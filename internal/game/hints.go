package game

import (
	"strings"

	"quotenest/internal/domain/quote"
)

// Hints returns the hints revealed after each wrong guess, in order.
func Hints(r quote.Record) []string {
	return []string{Initials(r.Author), r.BirthDetail}
}

// Initials builds the initials hint for an author name. Only the uppercase
// letters A-Z count: the first one of the first name and the first one of the
// surname, so "Jane K. Doe" gives "J. D.". A one word name such as "J.K."
// contributes its first two.
func Initials(name string) string {
	var words [][]byte
	for _, field := range strings.Fields(name) {
		if caps := capitals(field); len(caps) > 0 {
			words = append(words, caps)
		}
	}

	var letters []byte
	switch len(words) {
	case 0:
	case 1:
		letters = words[0][:min(2, len(words[0]))]
	default:
		letters = []byte{words[0][0], words[len(words)-1][0]}
	}

	if len(letters) == 0 {
		return "Author's initials are unknown."
	}

	parts := make([]string, len(letters))
	for i, l := range letters {
		parts[i] = string(l) + "."
	}
	return "Author's initials are " + strings.Join(parts, " ")
}

func capitals(word string) []byte {
	var caps []byte
	for i := 0; i < len(word); i++ {
		if c := word[i]; c >= 'A' && c <= 'Z' {
			caps = append(caps, c)
		}
	}
	return caps
}
