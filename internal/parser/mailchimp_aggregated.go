package parser

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/insightdelivered/campaign-report-converter/internal/identity"
	"github.com/insightdelivered/campaign-report-converter/internal/models"
)

// MailChimpAggregatedParser handles MailChimp aggregated campaign exports:
// a standard CSV table with one complete campaign summary per row.
//
// Percent-typed columns carry a literal "%" suffix; bounce, unsubscribe and
// complaint columns are raw counts, with their rates derived from the row's
// delivered count. Rows that fail to parse or that carry no meaningful data
// are skipped rather than failing the whole file — cancelled and zero-send
// campaigns routinely appear between real ones.
type MailChimpAggregatedParser struct{}

func (p *MailChimpAggregatedParser) FormatName() string {
	return "MailChimp aggregated export"
}

func (p *MailChimpAggregatedParser) CanParse(text string) bool {
	return containsAll(text, "Unique Id", "Send Date", "Open Rate")
}

func (p *MailChimpAggregatedParser) Parse(text string) ([]models.Campaign, error) {
	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if err != nil {
		return nil, models.EmptyReport("Report is empty")
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}

	var campaigns []models.Campaign
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Malformed row; move on to the next one.
			continue
		}

		cell := func(name string) string {
			i, ok := col[name]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		c, ok := p.parseRow(cell)
		if !ok || !c.HasMeaningfulData() {
			continue
		}
		campaigns = append(campaigns, c)
	}

	if len(campaigns) == 0 {
		return nil, models.EmptyReport("No valid campaigns found in aggregated report")
	}

	return campaigns, nil
}

// parseRow extracts one campaign from one CSV row. A numeric cell that fails
// to parse disqualifies the whole row.
func (p *MailChimpAggregatedParser) parseRow(cell func(string) string) (models.Campaign, bool) {
	c := models.Campaign{Platform: models.PlatformMailChimpAggregated}

	c.Subject = cell("Subject")
	c.EmailTitle = cell("Title")
	c.SentAt = identity.NormalizeDatetime(cell("Send Date"))

	delivered, err := intCell(cell("Successful Deliveries"))
	if err != nil {
		return c, false
	}
	opens, err := intCell(cell("Unique Opens"))
	if err != nil {
		return c, false
	}
	clicks, err := intCell(cell("Unique Clicks"))
	if err != nil {
		return c, false
	}
	openRate, err := rateCell(cell("Open Rate"))
	if err != nil {
		return c, false
	}
	clickRate, err := rateCell(cell("Click Rate"))
	if err != nil {
		return c, false
	}
	hardBounces, err := intCell(cell("Hard Bounces"))
	if err != nil {
		return c, false
	}
	softBounces, err := intCell(cell("Soft Bounces"))
	if err != nil {
		return c, false
	}
	unsubscribes, err := intCell(cell("Unsubscribes"))
	if err != nil {
		return c, false
	}
	spamComplaints, err := intCell(cell("Abuse Complaints"))
	if err != nil {
		return c, false
	}

	c.Delivered = &delivered
	c.Opens = &opens
	c.OpenRate = &openRate
	c.Clicks = &clicks
	c.ClickRate = &clickRate
	c.Unsubscribes = &unsubscribes
	c.SpamComplaints = &spamComplaints
	c.HardBounces = &hardBounces
	c.SoftBounces = &softBounces

	// All the remaining rates are derived from the delivered count; a
	// zero-send row yields zero rates, never a division error.
	hardRate, softRate, unsubRate, ctor := 0.0, 0.0, 0.0, 0.0
	if delivered > 0 {
		hardRate = float64(hardBounces) / float64(delivered)
		softRate = float64(softBounces) / float64(delivered)
		unsubRate = float64(unsubscribes) / float64(delivered)
	}
	if opens > 0 {
		ctor = float64(clicks) / float64(opens)
	}
	c.HardBounceRate = &hardRate
	c.SoftBounceRate = &softRate
	c.UnsubscribeRate = &unsubRate
	c.CTOR = &ctor

	c.UniqueID = identity.UniqueID(c.EmailTitle, c.Subject, c.SentAt, "mailchimp")
	return c, true
}

// intCell parses a count column; a missing column counts as zero but a
// non-numeric value is a row-level parse failure.
func intCell(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(strings.ReplaceAll(s, ",", ""))
}

// rateCell parses a percent column like "27.78%" into a fraction.
func rateCell(s string) (float64, error) {
	s = strings.Trim(s, "%")
	if s == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return f / 100, nil
}
