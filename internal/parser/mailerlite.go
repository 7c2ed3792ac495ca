package parser

import (
	"github.com/insightdelivered/campaign-report-converter/internal/identity"
	"github.com/insightdelivered/campaign-report-converter/internal/models"
)

// MailerLiteClassicParser handles classic MailerLite campaign report exports.
//
// The report is divided into named sections by exact-match header lines:
//
//	Campaign report        — subject and send time
//	"Campaign results"     — delivered, opens, clicks
//	"Bad statistics"       — unsubscribes, spam complaints, hard/soft bounces
//	"Links activity"       — per-link clicks (ignored)
//
// Within a section, lines are `"key","value"` pairs. Exactly one campaign
// comes out of one report.
type MailerLiteClassicParser struct{}

func (p *MailerLiteClassicParser) FormatName() string {
	return "MailerLite classic report"
}

func (p *MailerLiteClassicParser) CanParse(text string) bool {
	// Checked last during detection; the signature is the loosest of the four.
	return containsAll(text, "Campaign report", "Campaign results")
}

func (p *MailerLiteClassicParser) Parse(text string) ([]models.Campaign, error) {
	lines := reportLines(text)
	if len(lines) == 0 {
		return nil, models.EmptyReport("Report is empty")
	}

	c := models.Campaign{Platform: models.PlatformMailerLiteClassic}
	section := ""

	for _, line := range lines {
		switch line {
		case "Campaign report":
			section = "campaign_report"
			continue
		case `"Campaign results"`:
			section = "campaign_results"
			continue
		case `"Bad statistics"`:
			section = "bad_statistics"
			continue
		case `"Links activity"`:
			section = "links_activity"
			continue
		}

		key, val, ok := parseClassicKV(line)
		if !ok {
			continue
		}

		switch section {
		case "campaign_report":
			switch key {
			case "Subject:":
				c.Subject = val
			case "Sent":
				c.SentAt = val
			}

		case "campaign_results":
			switch key {
			case "Total emails sent:":
				if n, err := parseCount(val); err == nil {
					c.Delivered = &n
				}
			case "Opened:":
				c.Opens, c.OpenRate = extractNumberAndPercent(val)
			case "Clicked:":
				c.Clicks, c.ClickRate = extractNumberAndPercent(val)
			}

		case "bad_statistics":
			num, pct := extractNumberAndPercent(val)
			switch key {
			case "Unsubscribed:":
				c.Unsubscribes, c.UnsubscribeRate = num, pct
			case "Spam complaints:":
				c.SpamComplaints = num
			case "Hard bounce:":
				c.HardBounces, c.HardBounceRate = num, pct
			case "Soft bounce:":
				c.SoftBounces, c.SoftBounceRate = num, pct
			}
		}
	}

	// This format is all-or-nothing: a report missing any metric anywhere is
	// discarded whole. Deliberately stricter than the other formats'
	// field-by-field validation.
	if !classicComplete(&c) {
		return nil, models.EmptyReport("Campaign report incomplete or contains no usable data")
	}

	if c.Opens != nil && c.Clicks != nil && *c.Opens > 0 && *c.Clicks > 0 {
		ctor := float64(*c.Clicks) / float64(*c.Opens)
		c.CTOR = &ctor
	}

	c.EmailTitle = sanitizeTitle(c.Subject)
	// Classic exports hash under the plain "mailerlite" platform name so a
	// campaign re-exported through the newer tooling dedups against it.
	c.UniqueID = identity.UniqueID(c.EmailTitle, c.Subject, c.SentAt, "mailerlite")

	return []models.Campaign{c}, nil
}

func classicComplete(c *models.Campaign) bool {
	if c.Subject == "" || c.SentAt == "" {
		return false
	}
	return c.Delivered != nil && c.Opens != nil && c.OpenRate != nil &&
		c.Clicks != nil && c.ClickRate != nil &&
		c.Unsubscribes != nil && c.UnsubscribeRate != nil &&
		c.SpamComplaints != nil &&
		c.HardBounces != nil && c.HardBounceRate != nil &&
		c.SoftBounces != nil && c.SoftBounceRate != nil
}
