package usecase

import (
	"log"
	"regexp"
	"strings"
)

// Normalizer cleans raw retailer listing titles into usable inventory labels
type Normalizer struct {
	enableDebugLogging bool
}

// Compiled regex patterns for title normalization. Order matters: later
// patterns assume earlier noise has already been blanked.
var (
	// Matches the "domestically produced" marker retailers prepend
	domesticMarkerPattern = regexp.MustCompile(`国産`)

	// Matches unit-count qualifiers meaning one sphere/piece/bag/stick/pack
	unitCountPattern = regexp.MustCompile(`1玉|1個|1袋|1本|1パック`)

	// Matches multiplier suffixes like "×2本", "× 3", "×10個"
	multiplierPattern = regexp.MustCompile(`×\s*\d+(個|袋|本|枚)?`)

	// Matches full-width parenthesized asides, shortest match
	fullWidthParenPattern = regexp.MustCompile(`（.*?）`)

	// Matches full-width bracketed asides, shortest match
	fullWidthBracketPattern = regexp.MustCompile(`【.*?】`)

	// Matches numeric amount plus unit tokens like "450g", "1.5L", "500ml"
	amountUnitPattern = regexp.MustCompile(`[\d.]+(g|kg|ml|L|個|枚)`)

	// Matches whitespace runs, including full-width space
	whitespaceRunPattern = regexp.MustCompile(`[\s　]+`)
)

// normalizationSteps is the ordered substitution pipeline. Each step blanks
// all non-overlapping matches with a single space.
var normalizationSteps = []*regexp.Regexp{
	domesticMarkerPattern,
	unitCountPattern,
	multiplierPattern,
	fullWidthParenPattern,
	fullWidthBracketPattern,
	amountUnitPattern,
	whitespaceRunPattern,
}

// NewNormalizer creates a new title normalizer
func NewNormalizer(enableDebugLogging bool) *Normalizer {
	return &Normalizer{
		enableDebugLogging: enableDebugLogging,
	}
}

// Normalize cleans a raw listing title for use as an item name.
// May return an empty string when the title is all boilerplate; the caller
// decides the fallback (the inventory enforces non-empty names at add time).
func (n *Normalizer) Normalize(raw string) string {
	cleaned := raw
	for _, step := range normalizationSteps {
		cleaned = step.ReplaceAllString(cleaned, " ")
	}
	cleaned = strings.TrimSpace(cleaned)

	if n.enableDebugLogging {
		log.Printf("[NORMALIZE] Input: %q -> Output: %q", raw, cleaned)
	}

	return cleaned
}
