package game

import (
	"testing"

	"quotenest/internal/domain/quote"

	"github.com/stretchr/testify/assert"
)

func TestInitials(t *testing.T) {
	tests := []struct {
		name     string
		author   string
		expected string
	}{
		{"first and last name", "Albert Einstein", "Author's initials are A. E."},
		{"middle initial skipped", "Jane K. Doe", "Author's initials are J. D."},
		{"lowercase particle", "Ludwig van Beethoven", "Author's initials are L. B."},
		{"dotted first name", "J.K. Rowling", "Author's initials are J. R."},
		{"single dotted word", "J.K.", "Author's initials are J. K."},
		{"single word", "Voltaire", "Author's initials are V."},
		{"accented letters ignored", "Élodie Martin", "Author's initials are M."},
		{"surrounding whitespace", "  Mark   Twain ", "Author's initials are M. T."},
		{"no capitals", "anonymous", "Author's initials are unknown."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Initials(tt.author))
		})
	}
}

func TestHints_Order(t *testing.T) {
	r := quote.Record{
		Text:        "q",
		Author:      "Jane Austen",
		BirthDetail: "Author was born in Steventon Rectory on December 16, 1775.",
	}

	assert.Equal(t, []string{
		"Author's initials are J. A.",
		"Author was born in Steventon Rectory on December 16, 1775.",
	}, Hints(r))
}
