package parser

import (
	"strings"

	"github.com/insightdelivered/campaign-report-converter/internal/identity"
	"github.com/insightdelivered/campaign-report-converter/internal/models"
)

// MailChimpParser handles MailChimp single-campaign report exports.
//
// The report opens with campaign metadata (title, subject line, delivery
// time) followed by an "Overall Stats" block of `"key","value"` pairs and a
// per-URL click breakdown, which is ignored. Exactly one campaign comes out
// of one report.
type MailChimpParser struct{}

func (p *MailChimpParser) FormatName() string {
	return "MailChimp campaign report"
}

func (p *MailChimpParser) CanParse(text string) bool {
	lines := reportLines(text)
	return headContains(lines, 5, "Email Campaign Report") &&
		headContains(lines, 20, "Overall Stats")
}

func (p *MailChimpParser) Parse(text string) ([]models.Campaign, error) {
	lines := reportLines(text)
	if len(lines) == 0 {
		return nil, models.EmptyReport("Report is empty")
	}

	c := models.Campaign{Platform: models.PlatformMailChimp}
	title := ""

	for _, line := range lines {
		// Everything below the per-URL click table is noise for our purposes.
		if strings.HasPrefix(line, `"Clicks by URL"`) || strings.HasPrefix(line, `"URL"`) {
			break
		}

		key, val, ok := parseQuotedKV(line)
		if !ok {
			continue
		}

		switch key {
		case "Title":
			title = val
		case "Subject Line":
			c.Subject = val
		case "Delivery Date/Time":
			c.SentAt = val
		case "Successful Deliveries":
			if n, err := parseCount(val); err == nil {
				c.Delivered = &n
			}
		case "Recipients Who Opened":
			c.Opens, c.OpenRate = extractNumberAndPercent(val)
		case "Recipients Who Clicked":
			c.Clicks, c.ClickRate = extractNumberAndPercent(val)
		case "Total Unsubs":
			if n, err := parseCount(val); err == nil {
				c.Unsubscribes = &n
			}
		case "Total Abuse Complaints":
			if n, err := parseCount(val); err == nil {
				c.SpamComplaints = &n
			}
		case "Bounces":
			c.Bounces, c.BounceRate = extractNumberAndPercent(val)
		}
	}

	deriveRates(&c)

	if title == "" {
		title = c.Subject
	}
	c.EmailTitle = sanitizeTitle(title)
	c.UniqueID = identity.UniqueID(c.EmailTitle, c.Subject, c.SentAt, "mailchimp")

	if !c.HasMeaningfulData() {
		return nil, models.InvalidCampaign("Campaign data incomplete or missing key metrics")
	}

	return []models.Campaign{c}, nil
}

// deriveRates fills in the metrics this format only reports indirectly:
// click-to-open rate from clicks/opens, and unsubscribe rate from
// unsubscribes/delivered when no rate string was given.
func deriveRates(c *models.Campaign) {
	if c.Opens != nil && c.Clicks != nil && *c.Opens > 0 && *c.Clicks > 0 {
		ctor := float64(*c.Clicks) / float64(*c.Opens)
		c.CTOR = &ctor
	}
	if c.UnsubscribeRate == nil && c.Delivered != nil && c.Unsubscribes != nil && *c.Delivered > 0 {
		rate := float64(*c.Unsubscribes) / float64(*c.Delivered)
		c.UnsubscribeRate = &rate
	}
}
