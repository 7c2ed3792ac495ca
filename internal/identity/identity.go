// Package identity derives stable content-hash identifiers for campaigns
// so the same campaign can be recognized across independently uploaded
// report files.
package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Known send-time layouts across MailChimp and MailerLite exports. The same
// platform varies its date format by locale and export type, so the first
// layout that parses wins.
var dateLayouts = []string{
	"Mon, Jan 2, 2006 15:04",  // Mon, Apr 26, 2021 12:25
	"2006-01-02 15:04:05",     // 2021-04-26 12:25:00
	"2006-01-02 15:04",        // already normalized
	"1/2/2006 15:04",          // 6/9/2018 21:30
	"1/2/06 15:04",            // 6/9/18 21:30
	"2/1/2006 15:04",          // 09/06/2018 21:30 (day first)
	"Jan 2, 2006 03:04 pm",    // Jun 09, 2018 09:30 pm
	"Jan 2, 2006 03:04 PM",
}

const normalizedLayout = "2006-01-02 15:04"

var whitespaceRun = regexp.MustCompile(`\s+`)

// NormalizeDatetime collapses whitespace in a send-time string and tries the
// known layouts in priority order, rendering the first match as
// "YYYY-MM-DD HH:MM". If nothing parses, the cleaned original comes back
// unchanged so callers always have something stable to hash and display.
func NormalizeDatetime(value string) string {
	if value == "" {
		return ""
	}
	clean := whitespaceRun.ReplaceAllString(strings.TrimSpace(value), " ")
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, clean); err == nil {
			return t.Format(normalizedLayout)
		}
	}
	return clean
}

var (
	idStripPattern = regexp.MustCompile(`[^\w\s-]`)
	idSpacePattern = regexp.MustCompile(`\s+`)
)

func cleanComponent(s string) string {
	s = idStripPattern.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	return idSpacePattern.ReplaceAllString(s, "_")
}

// UniqueID generates a stable 12-hex-character identifier from campaign
// title, subject, send time and platform. It is a pure function of its
// inputs: identical arguments always hash to the identical identifier.
func UniqueID(title, subject, sentAt, platform string) string {
	if title == "" && subject == "" && sentAt == "" {
		return shortHash(platform + "_unknown")
	}
	composite := fmt.Sprintf("%s_%s_%s_%s",
		cleanComponent(title),
		cleanComponent(subject),
		NormalizeDatetime(sentAt),
		platform,
	)
	return shortHash(strings.ToLower(composite))
}

// ReadableID prefixes the content hash with a cleaned name fragment, e.g.
// "my_campaign_a1b2c3d4e5f6". Handy for display; the hash part alone is
// what dedup keys on.
func ReadableID(title, subject, sentAt, platform string) string {
	name := title
	if name == "" {
		name = subject
	}
	if name == "" {
		name = "untitled"
	}
	prefix := strings.ToLower(cleanComponent(name))
	if len(prefix) > 30 {
		prefix = prefix[:30]
	}
	return prefix + "_" + UniqueID(title, subject, sentAt, platform)
}

func shortHash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])[:12]
}
