package search

import (
	"sort"
	"strings"

	"immoxperts/server/internal/models"
)

// Scoring weights. Cities carry a higher base score than addresses so
// a plausible city always ranks above a plausible address.
const (
	cityBaseScore     = 100
	addressBaseScore  = 50
	exactTokenScore   = 30
	prefixTokenScore  = 15
	wholePrefixScore  = 25
	extraTokenPenalty = 5
	shortNameBonus    = 10
	shortNameLimit    = 15

	// ScoreRejected marks a candidate excluded from the results.
	ScoreRejected = -1
)

// ScoreCity scores a city-class candidate: every query token must
// match some candidate token.
func ScoreCity(queryNorm, candidateNorm string) int {
	return score(queryNorm, candidateNorm, cityBaseScore, false)
}

// ScoreAddress scores an address-class candidate with the relaxed
// threshold: at least half of the query tokens must match, minimum
// one for short queries.
func ScoreAddress(queryNorm, candidateNorm string) int {
	return score(queryNorm, candidateNorm, addressBaseScore, true)
}

// score is a pure function of its inputs: identical query and
// candidate always produce the same value.
func score(queryNorm, candidateNorm string, base int, relaxed bool) int {
	queryTokens := Tokens(queryNorm)
	candidateTokens := Tokens(candidateNorm)
	if len(queryTokens) == 0 || len(candidateTokens) == 0 {
		return ScoreRejected
	}

	total := base
	matched := 0
	for _, qt := range queryTokens {
		best := 0
		found := false
		for _, ct := range candidateTokens {
			switch {
			case ct == qt:
				found = true
				if exactTokenScore > best {
					best = exactTokenScore
				}
			case strings.HasPrefix(ct, qt):
				found = true
				if prefixTokenScore > best {
					best = prefixTokenScore
				}
			case strings.Contains(ct, qt):
				found = true
			}
		}
		if found {
			matched++
			total += best
		}
	}

	if relaxed {
		// At least 50% of the query tokens, minimum one.
		if matched == 0 || matched*2 < len(queryTokens) {
			return ScoreRejected
		}
	} else if matched < len(queryTokens) {
		return ScoreRejected
	}

	if strings.HasPrefix(candidateNorm, queryNorm) {
		total += wholePrefixScore
	}
	if extra := len(candidateTokens) - len(queryTokens); extra > 0 {
		total -= extra * extraTokenPenalty
	}
	if len(candidateNorm) <= shortNameLimit {
		total += shortNameBonus
	}
	return total
}

// scored pairs a candidate with its score for ordering.
type scored struct {
	candidate models.SuggestionCandidate
	score     int
}

// sortScored orders by score descending, display name ascending as the
// deterministic tie-break.
func sortScored(items []scored) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].score != items[j].score {
			return items[i].score > items[j].score
		}
		return items[i].candidate.DisplayName < items[j].candidate.DisplayName
	})
}

func unwrap(items []scored) []models.SuggestionCandidate {
	out := make([]models.SuggestionCandidate, 0, len(items))
	for _, item := range items {
		out = append(out, item.candidate)
	}
	return out
}
