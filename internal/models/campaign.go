package models

import "strings"

// Platform identifies which export format produced a campaign record.
type Platform string

const (
	PlatformMailerLiteClassic   Platform = "mailerlite_classic"
	PlatformMailChimp           Platform = "mailchimp"
	PlatformMailChimpAB         Platform = "mailchimp_ab"
	PlatformMailChimpAggregated Platform = "mailchimp_aggregated"
)

// Campaign is the canonical record extracted from any supported report
// format. Numeric fields are pointers because absent and zero mean
// different things: a parser that never saw a metric leaves it nil, while
// a report that says "0" produces a zero value.
type Campaign struct {
	Platform        Platform `json:"platform"`
	Subject         string   `json:"subject"`
	EmailTitle      string   `json:"email_title"`
	UniqueID        string   `json:"unique_id"`
	SentAt          string   `json:"sent_at"`
	Delivered       *int     `json:"delivered"`
	Opens           *int     `json:"opens"`
	OpenRate        *float64 `json:"open_rate"`
	Clicks          *int     `json:"clicks"`
	ClickRate       *float64 `json:"click_rate"`
	CTOR            *float64 `json:"ctor"`
	Unsubscribes    *int     `json:"unsubscribes"`
	UnsubscribeRate *float64 `json:"unsubscribe_rate"`
	SpamComplaints  *int     `json:"spam_complaints"`
	Bounces         *int     `json:"bounces"`
	BounceRate      *float64 `json:"bounce_rate"`
	HardBounces     *int     `json:"hard_bounces"`
	HardBounceRate  *float64 `json:"hard_bounce_rate"`
	SoftBounces     *int     `json:"soft_bounces"`
	SoftBounceRate  *float64 `json:"soft_bounce_rate"`
}

// HasMeaningfulData reports whether the campaign carries enough real data
// to be surfaced to callers. Subject, title and send time must be non-blank,
// the core engagement metrics must all be present, and at least one email
// must actually have been delivered.
func (c *Campaign) HasMeaningfulData() bool {
	if strings.TrimSpace(c.Subject) == "" {
		return false
	}
	if strings.TrimSpace(c.EmailTitle) == "" {
		return false
	}
	if strings.TrimSpace(c.SentAt) == "" {
		return false
	}
	if c.Delivered == nil || c.Opens == nil || c.OpenRate == nil ||
		c.Clicks == nil || c.ClickRate == nil {
		return false
	}
	return *c.Delivered > 0
}
