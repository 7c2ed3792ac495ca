// Package parser turns raw campaign report exports into canonical campaign
// records. Each supported export format has its own parser; Detect walks a
// fixed, hand-ordered list and the first matching signature wins.
package parser

import (
	"github.com/insightdelivered/campaign-report-converter/internal/models"
)

// Parser is the contract every format parser satisfies. CanParse must be
// cheap (substring checks over a capped window of lines) and must not fail;
// Parse runs exactly once per input, on the parser whose signature matched.
type Parser interface {
	// Parse extracts zero or more campaign records from report text.
	Parse(text string) ([]models.Campaign, error)
	// CanParse checks whether this parser recognizes the text's format.
	CanParse(text string) bool
	// FormatName returns the human-readable export format name.
	FormatName() string
}

// parsers is the detection order. It is deliberately hand-ordered, not
// alphabetical: an A/B report body also satisfies the looser single-campaign
// signature, so the A/B parser must be consulted first. The slice is
// read-only after init and safe to share across concurrent callers.
var parsers = []Parser{
	&MailChimpABParser{},
	&MailChimpParser{},
	&MailChimpAggregatedParser{},
	&MailerLiteClassicParser{},
}

// Detect returns the first parser whose signature matches the text.
func Detect(text string) (Parser, error) {
	for _, p := range parsers {
		if p.CanParse(text) {
			return p, nil
		}
	}
	return nil, models.UnsupportedFormat("Unsupported or unrecognized report format")
}

// ParseReport detects the format of the given report text and parses it.
func ParseReport(text string) ([]models.Campaign, error) {
	p, err := Detect(text)
	if err != nil {
		return nil, err
	}
	return p.Parse(text)
}
