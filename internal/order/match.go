// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package order

import "strings"

// MatchSong finds the order for a song title in a parsed order file. Order
// files are written by hand, so titles rarely match the PDF-derived ones
// exactly; matching degrades from exact, to substring either way, to
// sharing at least two title words. Ties at every stage go to the earlier
// file line.
func MatchSong(title string, orders []Entry) ([]string, bool) {
	want := strings.ToLower(strings.TrimSpace(title))

	for _, e := range orders {
		if strings.ToLower(strings.TrimSpace(e.Title)) == want {
			return e.Tokens, true
		}
	}

	for _, e := range orders {
		have := strings.ToLower(strings.TrimSpace(e.Title))
		if strings.Contains(want, have) || strings.Contains(have, want) {
			return e.Tokens, true
		}
	}

	wantWords := wordSet(want)
	var best []string
	bestScore := 0
	for _, e := range orders {
		common := 0
		for w := range wordSet(strings.ToLower(e.Title)) {
			if wantWords[w] {
				common++
			}
		}
		if common > bestScore {
			bestScore = common
			best = e.Tokens
		}
	}
	if bestScore >= 2 {
		return best, true
	}
	return nil, false
}

func wordSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(s) {
		set[w] = true
	}
	return set
}

// MissingSections reports which order tokens cannot be satisfied by the
// available section keys, even loosely: a token matches a key it prefixes
// ("V" satisfies "V1") or whose base type it shares ("V2" is satisfied by a
// lone "V").
func MissingSections(order []string, keys []string) []string {
	var missing []string
	for _, token := range order {
		if !satisfiable(token, keys) {
			missing = append(missing, token)
		}
	}
	return missing
}

func satisfiable(token string, keys []string) bool {
	for _, key := range keys {
		if key == token {
			return true
		}
		if strings.HasPrefix(key, token) {
			return true
		}
		if strings.HasPrefix(token, strings.TrimRight(key, "0123456789")) {
			return true
		}
	}
	return false
}
