// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package order parses performance-order annotations: which sections of a
// song are sung, and in what sequence. See docs/ARCHITECTURE.md § Ordering.
package order

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"
)

// inlineMarkerPattern finds the first order token in a colon-less line like
// "Trading My Sorrows V1 C V2 C". Everything before the match is the title.
var inlineMarkerPattern = regexp.MustCompile(
	`(?i)\s+(V\d*|C|B|Va|PC|Intro|Outro|Tag)[-\s]`)

// tokenSeparator splits an order string; dashes and whitespace both work
// ("V1-C-V2" and "V1 C V2" are the same order).
var tokenSeparator = regexp.MustCompile(`[-\s]+`)

var digitsPattern = regexp.MustCompile(`\d+`)

// ParseLine parses one line of an order file. Three forms are accepted:
//
//	Trading My Sorrows: C Va C Va V   explicit order after a colon
//	Trading My Sorrows V1 C V2 C      inline order tokens
//	Trading My Sorrows                bare title, order left to the sheet
//
// ok is false for blank lines and '#' comments.
func ParseLine(line string) (title string, tokens []string, ok bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", nil, false
	}

	if before, after, found := strings.Cut(line, ":"); found {
		return strings.TrimSpace(before), parseTokens(after), true
	}

	if loc := inlineMarkerPattern.FindStringIndex(line); loc != nil {
		return strings.TrimSpace(line[:loc[0]]), parseTokens(line[loc[0]:]), true
	}

	return line, nil, true
}

// parseTokens splits an order string and normalizes each token.
func parseTokens(s string) []string {
	s = strings.Trim(strings.TrimSpace(s), " -")
	if s == "" {
		return nil
	}
	var tokens []string
	for _, raw := range tokenSeparator.Split(s, -1) {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		tokens = append(tokens, normalizeToken(raw))
	}
	return tokens
}

// normalizeToken maps spelled-out section names onto canonical keys. Tokens
// already in key form, and anything unrecognized, pass through untouched so
// exact keys like "C1A" keep working.
func normalizeToken(s string) string {
	switch upper := strings.ToUpper(s); {
	case upper == "VERSE" || upper == "V":
		return "V"
	case upper == "CHORUS":
		return "C"
	case upper == "BRIDGE":
		return "B"
	case upper == "VAMP":
		return "Va"
	case strings.HasPrefix(upper, "VERSE"):
		return "V" + digitsPattern.FindString(s)
	}
	return s
}

// Entry is one order-file line: a song title and its section order. Entries
// keep file order so fuzzy matching can break ties by the earlier line.
type Entry struct {
	Title  string
	Tokens []string
}

// ParseFile reads a whole order file and returns an entry, in file order,
// for every line that carries an explicit order. A repeated title replaces
// the earlier tokens in place. Bare titles, comments and blank lines
// contribute nothing.
func ParseFile(r io.Reader) ([]Entry, error) {
	var orders []Entry
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		title, tokens, ok := ParseLine(scanner.Text())
		if !ok || len(tokens) == 0 {
			continue
		}
		replaced := false
		for i := range orders {
			if orders[i].Title == title {
				orders[i].Tokens = tokens
				replaced = true
				break
			}
		}
		if !replaced {
			orders = append(orders, Entry{Title: title, Tokens: tokens})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading order file: %w", err)
	}
	return orders, nil
}

// DefaultOrder is the order sections appear on the sheet.
func DefaultOrder(keys []string) []string {
	out := make([]string, len(keys))
	copy(out, keys)
	return out
}

// InterleavedOrder builds a verse/chorus alternation from the available
// section keys: each verse is followed by the chorus, then bridges, vamps
// and anything else in sheet order.
func InterleavedOrder(keys []string) []string {
	var verses, bridges, others []string
	hasChorus := false
	hasVamp := false
	for _, k := range keys {
		switch {
		case k == "Va":
			hasVamp = true
		case k == "C":
			hasChorus = true
		case strings.HasPrefix(k, "V"):
			verses = append(verses, k)
		case strings.HasPrefix(k, "B"):
			bridges = append(bridges, k)
		default:
			others = append(others, k)
		}
	}
	sort.Strings(verses)

	var out []string
	for _, v := range verses {
		out = append(out, v)
		if hasChorus {
			out = append(out, "C")
		}
	}
	out = append(out, bridges...)
	if hasVamp {
		out = append(out, "Va")
	}
	out = append(out, others...)
	return out
}
