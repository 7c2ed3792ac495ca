package parser

import (
	"fmt"
	"strings"

	"github.com/insightdelivered/campaign-report-converter/internal/identity"
	"github.com/insightdelivered/campaign-report-converter/internal/models"
)

// MailChimpABParser handles MailChimp A/B test campaign report exports.
//
// The report opens with a shared campaign title and delivery time, then
// repeats one `"Combination N Stats"` block per tested variant, each with
// the same metric keys as a single-campaign report. One campaign record
// comes out per combination.
//
// An A/B report body also satisfies the single-campaign signature, so this
// parser must run before MailChimpParser during detection.
type MailChimpABParser struct{}

func (p *MailChimpABParser) FormatName() string {
	return "MailChimp A/B test report"
}

func (p *MailChimpABParser) CanParse(text string) bool {
	lines := reportLines(text)
	return headContains(lines, 5, "Campaign Report") &&
		headContains(lines, 20, "Combination", "Stats")
}

func (p *MailChimpABParser) Parse(text string) ([]models.Campaign, error) {
	lines := reportLines(text)
	if len(lines) == 0 {
		return nil, models.EmptyReport("Report is empty")
	}

	// Shared header: every combination inherits the campaign title and
	// delivery time.
	title := ""
	deliveredAt := ""
	for _, line := range lines {
		key, val, ok := parseQuotedKV(line)
		if !ok {
			continue
		}
		switch key {
		case "Title":
			title = val
		case "Delivery Date/Time":
			deliveredAt = val
		}
	}

	var campaigns []models.Campaign
	comboNum := 1

	for i := 0; i < len(lines); {
		line := lines[i]
		if !strings.HasPrefix(line, `"Combination`) || !strings.Contains(line, "Stats") {
			i++
			continue
		}

		c, next := p.parseCombination(lines, i+1)
		c.SentAt = deliveredAt

		if title != "" {
			c.EmailTitle = fmt.Sprintf("%s - Combo %d", title, comboNum)
		} else {
			c.EmailTitle = fmt.Sprintf("%s %d", sanitizeTitle(c.Subject), comboNum)
		}

		// Fold the ordinal into the hashed send time so combinations that
		// share a subject line still get distinct identifiers.
		comboSentAt := fmt.Sprintf("combo_%d", comboNum)
		if deliveredAt != "" {
			comboSentAt = fmt.Sprintf("%s_%d", deliveredAt, comboNum)
		}
		c.UniqueID = identity.UniqueID(title, c.Subject, comboSentAt, "mailchimp")

		// A combination with partial data is dropped, not fatal: cancelled
		// variants show up alongside real ones in the same export.
		if c.HasMeaningfulData() {
			campaigns = append(campaigns, c)
		}

		comboNum++
		i = next
	}

	if len(campaigns) == 0 {
		return nil, models.EmptyReport("No valid combinations found in A/B test report")
	}

	return campaigns, nil
}

// parseCombination scans one combination's metric block starting at lines[start],
// stopping at the next combination header or the per-URL click table. It
// returns the partially filled record and the index of the line it stopped on.
func (p *MailChimpABParser) parseCombination(lines []string, start int) (models.Campaign, int) {
	c := models.Campaign{Platform: models.PlatformMailChimpAB}

	i := start
	for ; i < len(lines); i++ {
		line := lines[i]
		if strings.HasPrefix(line, `"Combination`) || strings.HasPrefix(line, `"URL"`) {
			break
		}

		key, val, ok := parseQuotedKV(line)
		if !ok {
			continue
		}

		switch key {
		case "Subject Line":
			c.Subject = val
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
	return c, i
}
