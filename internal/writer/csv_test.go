package writer

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/insightdelivered/campaign-report-converter/internal/models"
)

func intp(v int) *int { return &v }

func floatp(v float64) *float64 { return &v }

func TestCSVWriter_Write(t *testing.T) {
	campaigns := []models.Campaign{
		{
			Platform:   models.PlatformMailChimp,
			Subject:    "Get 20% Off Today Only!",
			EmailTitle: "Summer Sale Campaign",
			UniqueID:   "abc123def456",
			SentAt:     "2021-04-26 12:25",
			Delivered:  intp(995),
			Opens:      intp(350),
			OpenRate:   floatp(0.3518),
			Clicks:     intp(100),
			ClickRate:  floatp(0.1005),
			CTOR:       floatp(100.0 / 350.0),
		},
	}

	var buf bytes.Buffer
	w := &CSVWriter{IncludeHeader: true}
	if err := w.Write(&buf, campaigns); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading output back: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows: got %d, want 2 (header + record)", len(rows))
	}

	header := rows[0]
	if header[0] != "Platform" || header[3] != "Unique Id" {
		t.Errorf("unexpected header: %v", header)
	}

	row := rows[1]
	if row[0] != "mailchimp" {
		t.Errorf("platform cell: got %q", row[0])
	}
	if row[1] != "Get 20% Off Today Only!" {
		t.Errorf("subject cell: got %q", row[1])
	}
	if row[5] != "995" {
		t.Errorf("delivered cell: got %q", row[5])
	}
	if row[7] != "0.3518" {
		t.Errorf("open rate cell: got %q", row[7])
	}
	// Absent metrics are empty cells, not zeros.
	if row[11] != "" {
		t.Errorf("unsubscribes cell: got %q, want empty", row[11])
	}
}

func TestCSVWriter_NoHeader(t *testing.T) {
	var buf bytes.Buffer
	w := &CSVWriter{IncludeHeader: false}
	if err := w.Write(&buf, []models.Campaign{{Platform: models.PlatformMailChimp}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("lines: got %d, want 1", len(lines))
	}
	if strings.Contains(lines[0], "Platform") {
		t.Error("header row written despite IncludeHeader=false")
	}
}

func TestCSVWriter_Empty(t *testing.T) {
	var buf bytes.Buffer
	w := &CSVWriter{IncludeHeader: true}
	if err := w.Write(&buf, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading output back: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("rows: got %d, want header only", len(rows))
	}
}
