package parser

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// Matches the count part of values like "1,234 (56.7%)".
	countPattern = regexp.MustCompile(`[\d,]+`)
	// Matches the parenthesized percentage part of values like "141 (8.1%)".
	percentPattern = regexp.MustCompile(`\(([\d.]+)%\)`)
	// Characters stripped when deriving a clean title from a subject line.
	titleStripPattern = regexp.MustCompile(`[^\w\s\-.,!?]`)
	spaceRunPattern   = regexp.MustCompile(`\s+`)
)

// extractNumberAndPercent pulls the integer count and the parenthesized
// percentage out of a metric value like "1,234 (56.7%)". Either part may be
// missing; a missing part yields nil, never zero — defaulting is the
// caller's decision. The percentage is returned as a fraction.
func extractNumberAndPercent(value string) (*int, *float64) {
	if value == "" {
		return nil, nil
	}

	var num *int
	if m := countPattern.FindString(value); m != "" {
		if n, err := strconv.Atoi(strings.ReplaceAll(m, ",", "")); err == nil {
			num = &n
		}
	}

	var pct *float64
	if m := percentPattern.FindStringSubmatch(value); m != nil {
		if f, err := strconv.ParseFloat(m[1], 64); err == nil {
			frac := f / 100
			pct = &frac
		}
	}

	return num, pct
}

// parseCount converts a thousands-separated integer string like "3,902".
func parseCount(value string) (int, error) {
	return strconv.Atoi(strings.ReplaceAll(strings.TrimSpace(value), ",", ""))
}

// sanitizeTitle derives a display title from a subject line by dropping
// special characters and collapsing whitespace.
func sanitizeTitle(subject string) string {
	if subject == "" {
		return "Untitled"
	}
	cleaned := titleStripPattern.ReplaceAllString(subject, "")
	cleaned = strings.TrimSpace(spaceRunPattern.ReplaceAllString(cleaned, " "))
	if cleaned == "" {
		return "Untitled"
	}
	return cleaned
}

// parseQuotedKV splits a MailChimp report line like
// '"Subject Line:","Get 20% Off Today Only!"' into key and value. The split
// is on the quote-comma-quote boundary so commas inside values survive.
// The trailing colon is trimmed from the key.
func parseQuotedKV(line string) (string, string, bool) {
	var parts []string
	for _, p := range strings.Split(line, `","`) {
		p = strings.Trim(strings.TrimSpace(p), `"`)
		if p == "" {
			continue
		}
		parts = append(parts, p)
	}
	if len(parts) < 2 {
		return "", "", false
	}
	key := strings.TrimSpace(strings.Trim(parts[0], ":"))
	return key, strings.TrimSpace(parts[1]), true
}

// parseClassicKV splits a MailerLite report line like '"Opened:","1489 (38.91%)"'
// on plain commas. Keys keep their trailing colon; MailerLite section keys
// are matched verbatim.
func parseClassicKV(line string) (string, string, bool) {
	var parts []string
	for _, p := range strings.Split(line, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		parts = append(parts, strings.Trim(p, `"`))
	}
	if len(parts) < 2 {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// reportLines trims and drops blank lines, the shape every narrative report
// parser scans over.
func reportLines(text string) []string {
	var lines []string
	for _, l := range strings.Split(text, "\n") {
		l = strings.TrimSpace(l)
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

// containsAll reports whether the text contains every given substring.
func containsAll(text string, substrs ...string) bool {
	for _, s := range substrs {
		if !strings.Contains(text, s) {
			return false
		}
	}
	return true
}

// headContains reports whether any of the first n non-blank lines contains
// all the given substrings. Detection signatures only look at a capped
// window so can-parse checks stay cheap on large files.
func headContains(lines []string, n int, substrs ...string) bool {
	if n > len(lines) {
		n = len(lines)
	}
	for _, line := range lines[:n] {
		ok := true
		for _, s := range substrs {
			if !strings.Contains(line, s) {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}
