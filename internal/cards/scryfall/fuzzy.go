package scryfall

import "strings"

// FuzzyName shortens a card name into a query for the fuzzy endpoint. Every
// word is lowercased; words longer than four letters keep just over half of
// their letters, counted after rounding odd lengths up. Words are joined
// with "+".
func FuzzyName(name string) string {
	words := strings.Fields(strings.ToLower(name))
	for i, w := range words {
		runes := []rune(w)
		length := len(runes)
		if length%2 != 0 {
			length++
		}
		if length <= 4 {
			continue
		}
		keep := length - length/2 + 1
		if keep > len(runes) {
			keep = len(runes)
		}
		words[i] = string(runes[:keep])
	}
	return strings.Join(words, "+")
}
