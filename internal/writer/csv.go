// Package writer renders canonical campaign records as CSV, the CLI's
// output format.
package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/insightdelivered/campaign-report-converter/internal/models"
)

// CSVWriter writes campaign records to CSV format.
type CSVWriter struct {
	IncludeHeader bool
}

var columns = []string{
	"Platform", "Subject", "Email Title", "Unique Id", "Sent At",
	"Delivered", "Opens", "Open Rate", "Clicks", "Click Rate", "CTOR",
	"Unsubscribes", "Unsubscribe Rate", "Spam Complaints",
	"Bounces", "Bounce Rate",
	"Hard Bounces", "Hard Bounce Rate", "Soft Bounces", "Soft Bounce Rate",
}

// WriteToFile writes campaigns to a CSV file at the given path.
func (w *CSVWriter) WriteToFile(path string, campaigns []models.Campaign) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	return w.Write(f, campaigns)
}

// Write writes campaigns in CSV format to the given writer. Absent metrics
// come out as empty cells, not zeros.
func (w *CSVWriter) Write(out io.Writer, campaigns []models.Campaign) error {
	writer := csv.NewWriter(out)
	defer writer.Flush()

	if w.IncludeHeader {
		if err := writer.Write(columns); err != nil {
			return fmt.Errorf("failed to write CSV header: %w", err)
		}
	}

	for _, c := range campaigns {
		row := []string{
			string(c.Platform),
			c.Subject,
			c.EmailTitle,
			c.UniqueID,
			c.SentAt,
			formatCount(c.Delivered),
			formatCount(c.Opens),
			formatRate(c.OpenRate),
			formatCount(c.Clicks),
			formatRate(c.ClickRate),
			formatRate(c.CTOR),
			formatCount(c.Unsubscribes),
			formatRate(c.UnsubscribeRate),
			formatCount(c.SpamComplaints),
			formatCount(c.Bounces),
			formatRate(c.BounceRate),
			formatCount(c.HardBounces),
			formatRate(c.HardBounceRate),
			formatCount(c.SoftBounces),
			formatRate(c.SoftBounceRate),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	return nil
}

func formatCount(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func formatRate(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 4, 64)
}
