package embedding

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Vectorizer turns text into a fixed-length feature vector.
type Vectorizer interface {
	Vectorize(text string) Vector
}

// Tokenize lowercases text and splits it on the sentence delimiters,
// dropping empty tokens.
func Tokenize(text string) []string {
	lower := cases.Lower(language.Und).String(text)
	return strings.FieldsFunc(lower, isDelimiter)
}

func isDelimiter(r rune) bool {
	switch r {
	case ' ', ',', '.', '!', '?', '\t', '\n', ':', ';':
		return true
	}
	return false
}

// Vectorize returns the element-wise mean of the vectors of all known
// tokens in text, or the zero vector when none are known.
func (s *Store) Vectorize(text string) Vector {
	sum := make(Vector, Dim)
	known := 0

	for _, token := range Tokenize(text) {
		vec, ok := s.vectors[token]
		if !ok {
			continue
		}
		for i, v := range vec {
			sum[i] += v
		}
		known++
	}

	if known == 0 {
		return sum
	}

	n := float32(known)
	for i := range sum {
		sum[i] /= n
	}
	return sum
}
