package service

import (
	"math"
	"strings"
	"unicode"

	pgvector "github.com/pgvector/pgvector-go"
)

// Embed maps text to a unit vector of its letter, vowel and digit counts.
// Vectors are only compared with each other, so any stable mapping of
// model.EmbeddingDims width works here.
func Embed(text string) pgvector.Vector {
	var letters, vowels, digits float64
	for _, r := range strings.ToLower(text) {
		switch {
		case strings.ContainsRune("aeiou", r):
			vowels++
			letters++
		case unicode.IsLetter(r):
			letters++
		case unicode.IsDigit(r):
			digits++
		}
	}

	norm := math.Sqrt(letters*letters + vowels*vowels + digits*digits)
	if norm == 0 {
		return pgvector.NewVector([]float32{0, 0, 0})
	}
	return pgvector.NewVector([]float32{
		float32(letters / norm),
		float32(vowels / norm),
		float32(digits / norm),
	})
}
