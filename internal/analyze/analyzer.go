// Package analyze classifies free-text scouting queries into indicator
// flags and a search difficulty tier. Analysis is a pure function of the
// query string: no I/O, no errors, unmatched categories simply leave
// their flag unset.
package analyze

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/apes-labs/scout-cli/internal/model"
)

var (
	youthPattern = regexp.MustCompile(`(?i)\bu-?(1[5-9]|2[01])\b`)
	yearPattern  = regexp.MustCompile(`\b(19\d{2}|20\d{2})\b`)
)

var youthWords = []string{"youth", "under", "academy", "primavera", "giovanili", "juvenil"}

// positionWords maps position tokens (English, Italian, Spanish) to a
// canonical position label.
var positionWords = map[string]string{
	"striker":       "Striker",
	"forward":       "Forward",
	"attaccante":    "Striker",
	"punta":         "Striker",
	"delantero":     "Striker",
	"winger":        "Winger",
	"ala":           "Winger",
	"trequartista":  "Attacking Midfielder",
	"playmaker":     "Attacking Midfielder",
	"midfielder":    "Midfielder",
	"centrocampista": "Midfielder",
	"mediano":       "Defensive Midfielder",
	"regista":       "Deep-Lying Playmaker",
	"defender":      "Defender",
	"difensore":     "Defender",
	"defensa":       "Defender",
	"centre-back":   "Centre-Back",
	"goalkeeper":    "Goalkeeper",
	"portiere":      "Goalkeeper",
	"portero":       "Goalkeeper",
}

// nationalityWords maps demonym tokens to a canonical country name.
var nationalityWords = map[string]string{
	"argentino":   "Argentina",
	"argentine":   "Argentina",
	"argentinian": "Argentina",
	"brazilian":   "Brazil",
	"brasiliano":  "Brazil",
	"spanish":     "Spain",
	"spagnolo":    "Spain",
	"espanol":     "Spain",
	"french":      "France",
	"francese":    "France",
	"italian":     "Italy",
	"italiano":    "Italy",
	"german":      "Germany",
	"tedesco":     "Germany",
	"english":     "England",
	"inglese":     "England",
	"portuguese":  "Portugal",
	"portoghese":  "Portugal",
	"dutch":       "Netherlands",
	"olandese":    "Netherlands",
	"nigerian":    "Nigeria",
	"georgian":    "Georgia",
}

// leaguePhrases are matched as substrings of the lowercased query.
var leaguePhrases = []string{
	"serie a", "serie b", "serie c",
	"premier league", "la liga", "bundesliga", "ligue 1",
	"eredivisie", "championship", "mls", "primeira liga",
}

var attributeWords = []string{
	"left-footed", "left footed", "mancino",
	"right-footed", "right footed",
	"fast", "veloce", "quick", "tall", "physical", "technical",
}

// capitalStoplist holds football-domain capitalized terms that do not
// count toward the specific-name heuristic.
var capitalStoplist = map[string]bool{
	"serie": true, "premier": true, "league": true, "liga": true,
	"bundesliga": true, "ligue": true, "eredivisie": true, "mls": true,
	"championship": true, "champions": true, "europa": true,
	"cup": true, "coppa": true, "copa": true,
	"fc": true, "ac": true, "cf": true, "sc": true, "afc": true,
	"united": true, "city": true, "real": true, "inter": true,
	"juventus": true, "barcelona": true, "atletico": true,
}

// Analyze derives the indicator set for a raw query.
func Analyze(query string) model.IndicatorSet {
	var ind model.IndicatorSet
	lower := strings.ToLower(query)
	tokens := strings.Fields(lower)

	ind.Youth = youthPattern.MatchString(query)
	if !ind.Youth {
		for _, w := range youthWords {
			if strings.Contains(lower, w) {
				ind.Youth = true
				break
			}
		}
	}

	for _, tok := range tokens {
		trimmed := strings.Trim(tok, ".,;:!?\"'()")
		if pos, ok := positionWords[trimmed]; ok && ind.Position == "" {
			ind.Position = pos
		}
		if nat, ok := nationalityWords[trimmed]; ok && ind.Nationality == "" {
			ind.Nationality = nat
		}
	}

	for _, phrase := range leaguePhrases {
		if strings.Contains(lower, phrase) {
			ind.League = phrase
			break
		}
	}

	for _, attr := range attributeWords {
		if strings.Contains(lower, attr) {
			ind.Attributes = append(ind.Attributes, attr)
		}
	}

	if m := yearPattern.FindString(query); m != "" {
		if y, err := strconv.Atoi(m); err == nil {
			ind.Year = y
		}
	}

	ind.IsSpecificName = looksLikeName(query)
	ind.Difficulty = difficulty(ind)
	return ind
}

// looksLikeName counts capitalized tokens outside the domain stoplist.
// Two or more suggest the query names a specific player.
func looksLikeName(query string) bool {
	count := 0
	for _, tok := range strings.Fields(query) {
		trimmed := strings.Trim(tok, ".,;:!?\"'()")
		if trimmed == "" {
			continue
		}
		runes := []rune(trimmed)
		if !unicode.IsUpper(runes[0]) {
			continue
		}
		if capitalStoplist[strings.ToLower(trimmed)] {
			continue
		}
		count++
	}
	return count >= 2
}

// difficulty applies the ordered classification chain: the first
// matching rule wins.
func difficulty(ind model.IndicatorSet) model.Difficulty {
	switch {
	case ind.IsSpecificName:
		return model.DifficultyEasy
	case ind.Youth && ind.League == "":
		return model.DifficultyHard
	case ind.Position != "" && ind.Nationality != "":
		return model.DifficultyMedium
	default:
		return model.DifficultyHard
	}
}
