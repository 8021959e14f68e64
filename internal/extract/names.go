package extract

import (
	"regexp"
	"strings"
)

// maxCandidateNames bounds how many distinct names one document may
// contribute; beyond that the matches are list noise, not subjects.
const maxCandidateNames = 5

// namePhraseRe matches runs of two or three capitalized words, the
// usual shape of a person name in running text.
var namePhraseRe = regexp.MustCompile(`\p{Lu}[\p{Ll}'\x60-]+(?: \p{Lu}[\p{Ll}'\x60-]+){1,2}`)

// nameStopwords are capitalized tokens that start sentences or name
// competitions and clubs rather than people.
var nameStopwords = map[string]bool{
	"The": true, "This": true, "These": true, "His": true, "Her": true,
	"League": true, "Cup": true, "United": true, "City": true, "Club": true,
	"Premier": true, "Serie": true, "Champions": true, "Europa": true,
	"Football": true, "Transfer": true, "Market": true, "Season": true,
	"Player": true, "Profile": true, "Stats": true, "News": true,
}

// HarvestNames collects likely person names from text, preserving first
// appearance order and dropping duplicates.
func HarvestNames(text string) []string {
	if text == "" {
		return nil
	}

	var names []string
	seen := make(map[string]bool)
	for _, phrase := range namePhraseRe.FindAllString(text, -1) {
		if hasStopword(phrase) {
			continue
		}
		if seen[phrase] {
			continue
		}
		seen[phrase] = true
		names = append(names, phrase)
		if len(names) == maxCandidateNames {
			break
		}
	}
	return names
}

func hasStopword(phrase string) bool {
	for _, word := range strings.Fields(phrase) {
		if nameStopwords[word] {
			return true
		}
	}
	return false
}
