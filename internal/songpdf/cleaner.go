// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package songpdf

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"unicode/utf8"

	"go.yaml.in/yaml/v3"
)

// defaultFooterMarkers flag legal/licensing/publisher boilerplate. Any
// case-insensitive substring match excludes the line.
var defaultFooterMarkers = []string{
	"ccli", "license", "copyright", "©", "www.", ".com", ".org",
	"all rights reserved", "used by permission", "terms of use",
	"songselect", "integrity", "hosanna", "# ", "based on the recording",
}

// defaultMergedWordPrefixes are whole words that PDF extraction repeatedly
// glues to the following word ("Jesuswalked", "kingdomfirst"). A space is
// inserted after the prefix when a lowercase letter follows. Hand-curated
// from observed hymn and worship sheets.
var defaultMergedWordPrefixes = []string{
	"Jesus", "wondrous", "daily", "never", "unchanging", "Saviour", "Savior",
	"glory", "lifted", "everlasting", "heaven", "kingdom", "summer",
	"thousand", "ransomed",
}

// ReplaceRule is one pattern → replacement rewrite in a repair table.
type ReplaceRule struct {
	Pattern     string `yaml:"pattern"`
	Replacement string `yaml:"replacement"`
}

// defaultSplitWordFixes rejoin words the extractor broke with a misplaced
// space ("Je suswalked", "wa ter"). They run before the merged-word table so
// a rejoined word can still be split at the right place. Hand-curated like
// the other tables.
var defaultSplitWordFixes = []ReplaceRule{
	{`(?i)\bje sus`, "Jesus"},
	{`(?i)\bwa ter\b`, "water"},
	{`(?i)\bsor rows\b`, "sorrows"},
}

// defaultLigatureFixes repair dropped fi/fl/ff ligatures. Order matters:
// entries are applied top to bottom and later entries assume earlier ones
// already ran. Like the merged-word table, curated per corpus.
var defaultLigatureFixes = []ReplaceRule{
	{`\brst\b`, "first"},
	{`  ght\b`, " fight"},
	{`\bght\b`, "fight"},
	{`lled\b`, "filled"},
	{`\bnd\b`, "find"},
	{`ful lled`, "fulfilled"},
	{`\beort\b`, "effort"},
	{`\becting\b`, "effecting"},
	{`\bects\b`, "effects"},
}

// fillerPattern matches non-lexical filler lines like "Lai, lai, lai-lai".
var fillerPattern = regexp.MustCompile(`(?i)^lai[\s,lai-]+$`)

// Structural repair patterns. These are fixed: they encode how extraction
// breaks text, not what corpus it came from.
var (
	hyphenSplitPattern   = regexp.MustCompile(`(\w)\s+-\s+(\w)`)  // "sor - rows" → "sorrows"
	amenLinePattern      = regexp.MustCompile(`(?i)^-\s*men$`)    // "- men" → "Amen"
	amenWordPattern      = regexp.MustCompile(`(?i)\bA\s*-\s*men\b`)
	possessivePattern    = regexp.MustCompile(`'s([a-z])`)        // "joy'sgonna" → "joy's gonna"
	leftoverDashPattern  = regexp.MustCompile(`\s+-\s+`)          // remaining " - " deleted
	commaUpperPattern    = regexp.MustCompile(`,([A-Z])`)         // "everlasting,You"
	commaLowerPattern    = regexp.MustCompile(`,([a-z])`)
	camelCasePattern     = regexp.MustCompile(`([a-z])([A-Z])`)   // "gloryAt" → "glory At"
	multipleSpacePattern = regexp.MustCompile(`\s{2,}`)
)

// Rules bundles the configurable repair tables in compiled form. The zero
// value is not usable; construct with DefaultRules or LoadRules.
type Rules struct {
	footerMarkers  []string
	splitWordFixes []compiledFix
	mergedPrefixes []*regexp.Regexp
	ligatureFixes  []compiledFix
}

type compiledFix struct {
	re          *regexp.Regexp
	replacement string
}

// DefaultRules returns the built-in repair tables.
func DefaultRules() *Rules {
	r, err := compileRules(defaultFooterMarkers, defaultMergedWordPrefixes, defaultSplitWordFixes, defaultLigatureFixes)
	if err != nil {
		panic(err) // built-in tables must compile
	}
	return r
}

// ruleFile is the YAML override schema for LoadRules. A present list
// replaces the corresponding built-in table wholesale; an absent list keeps
// the default.
type ruleFile struct {
	FooterMarkers      []string      `yaml:"footer_markers"`
	MergedWordPrefixes []string      `yaml:"merged_word_prefixes"`
	SplitWordFixes     []ReplaceRule `yaml:"split_word_fixes"`
	LigatureFixes      []ReplaceRule `yaml:"ligature_fixes"`
}

// LoadRules reads a YAML rule-table override and returns compiled Rules.
func LoadRules(path string) (*Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules file: %w", err)
	}
	var rf ruleFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing rules file %s: %w", path, err)
	}

	footers := rf.FooterMarkers
	if footers == nil {
		footers = defaultFooterMarkers
	}
	prefixes := rf.MergedWordPrefixes
	if prefixes == nil {
		prefixes = defaultMergedWordPrefixes
	}
	splits := rf.SplitWordFixes
	if splits == nil {
		splits = defaultSplitWordFixes
	}
	fixes := rf.LigatureFixes
	if fixes == nil {
		fixes = defaultLigatureFixes
	}

	r, err := compileRules(footers, prefixes, splits, fixes)
	if err != nil {
		return nil, fmt.Errorf("rules file %s: %w", path, err)
	}
	return r, nil
}

func compileRules(footers, prefixes []string, splits, fixes []ReplaceRule) (*Rules, error) {
	r := &Rules{footerMarkers: footers}

	for _, p := range prefixes {
		// The prefix matches case-insensitively but the following letter
		// must really be lowercase, hence the scoped (?i:) group.
		re, err := regexp.Compile(`((?i:` + regexp.QuoteMeta(p) + `))([a-z])`)
		if err != nil {
			return nil, fmt.Errorf("merged-word prefix %q: %w", p, err)
		}
		r.mergedPrefixes = append(r.mergedPrefixes, re)
	}

	for _, f := range splits {
		re, err := regexp.Compile(f.Pattern)
		if err != nil {
			return nil, fmt.Errorf("split-word fix %q: %w", f.Pattern, err)
		}
		r.splitWordFixes = append(r.splitWordFixes, compiledFix{re, f.Replacement})
	}

	for _, f := range fixes {
		re, err := regexp.Compile(f.Pattern)
		if err != nil {
			return nil, fmt.Errorf("ligature fix %q: %w", f.Pattern, err)
		}
		r.ligatureFixes = append(r.ligatureFixes, compiledFix{re, f.Replacement})
	}

	return r, nil
}

// IsFooterLine reports whether line is legal/licensing/publisher boilerplate.
func (r *Rules) IsFooterLine(line string) bool {
	lower := strings.ToLower(line)
	for _, marker := range r.footerMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// CleanLine cleans one raw line of sheet text. ok is false when the line
// carries nothing slide-worthy: blank lines, chord lines, footers, metadata,
// filler, section headers (the assembler consumes those separately), and
// navigation directives are all skipped.
//
// The repair rewrites run in a fixed order and later rules assume earlier
// ones already normalized the text; the leftover-dash deletion, for example,
// would eat the patterns the hyphen-join and Amen rules must see first.
// Reordering them changes behavior.
func (r *Rules) CleanLine(line string) (cleaned string, ok bool) {
	line = strings.TrimSpace(line)

	switch {
	case line == "":
		return "", false
	case IsChordLine(line):
		return "", false
	case r.IsFooterLine(line):
		return "", false
	case IsMetadataLine(line):
		return "", false
	case fillerPattern.MatchString(line):
		return "", false
	case IsIgnoredSectionHeader(line):
		return "", false
	case IsNavigationLine(line):
		return "", false
	}
	if _, _, isHeader := ParseSectionHeader(line); isHeader {
		return "", false
	}

	// Drop chord symbols and stranded bass fragments embedded between words.
	var words []string
	for _, w := range strings.Fields(line) {
		if IsChord(w) || isBassFragment(w) {
			continue
		}
		words = append(words, w)
	}
	cleaned = strings.Join(words, " ")

	// 1. Rejoin syllable-split words: "sor - rows" → "sorrows".
	cleaned = hyphenSplitPattern.ReplaceAllString(cleaned, "$1$2")

	// 2. "A - men" (and a stranded "- men") → "Amen".
	cleaned = amenLinePattern.ReplaceAllString(cleaned, "Amen")
	cleaned = amenWordPattern.ReplaceAllString(cleaned, "Amen")

	// 3. Missing space after a possessive: "joy'sgonna" → "joy's gonna".
	cleaned = possessivePattern.ReplaceAllString(cleaned, "'s $1")

	// 4. Delete whatever " - " sequences remain.
	cleaned = leftoverDashPattern.ReplaceAllString(cleaned, "")

	// 5. Missing space after a comma.
	cleaned = commaUpperPattern.ReplaceAllString(cleaned, ", $1")
	cleaned = commaLowerPattern.ReplaceAllString(cleaned, ", $1")

	// 6. camelCase splits from words glued across a case change.
	cleaned = camelCasePattern.ReplaceAllString(cleaned, "$1 $2")

	// 7. Known split words with a misplaced space, rejoined so rule 8 can
	// re-split them at the right place.
	for _, f := range r.splitWordFixes {
		cleaned = f.re.ReplaceAllString(cleaned, f.replacement)
	}

	// 8. Known merged-word prefixes.
	for _, re := range r.mergedPrefixes {
		cleaned = re.ReplaceAllString(cleaned, "$1 $2")
	}

	// 9. Ligature-loss fragments.
	for _, f := range r.ligatureFixes {
		cleaned = f.re.ReplaceAllString(cleaned, f.replacement)
	}

	// 10. Normalize whitespace.
	cleaned = multipleSpacePattern.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(cleaned)

	if utf8.RuneCountInString(cleaned) < 2 {
		return "", false
	}
	return cleaned, true
}
