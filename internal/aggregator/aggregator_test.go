package aggregator

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightdelivered/campaign-report-converter/internal/models"
)

func classicReport(subject string, delivered int) string {
	return fmt.Sprintf(`Campaign report
"Subject:","%s"
"Sent","2021-08-07 16:00:00"

"Campaign results"
"Total emails sent:","%d"
"Opened:","100 (10%%)"
"Clicked:","10 (1%%)"

"Bad statistics"
"Unsubscribed:","5 (0.5%%)"
"Spam complaints:","0 (0%%)"
"Hard bounce:","2 (0.2%%)"
"Soft bounce:","3 (0.3%%)"
`, subject, delivered)
}

func TestProcessBatch_SingleFile(t *testing.T) {
	campaigns, failures := ProcessBatch([]Input{
		{Name: "report.csv", Index: 0, Text: classicReport("Weekly News", 1000)},
	})

	require.Len(t, campaigns, 1)
	assert.Empty(t, failures)
	assert.Equal(t, "Weekly News", campaigns[0].Subject)
	assert.Equal(t, 1000, *campaigns[0].Delivered)
}

func TestProcessBatch_LastWriteWins(t *testing.T) {
	// Same campaign identity in both files, different metrics: the record
	// from the later upload must win.
	campaigns, failures := ProcessBatch([]Input{
		{Name: "first.csv", Index: 0, Text: classicReport("Weekly News", 1000)},
		{Name: "second.csv", Index: 1, Text: classicReport("Weekly News", 2000)},
	})

	require.Len(t, campaigns, 1)
	assert.Empty(t, failures)
	assert.Equal(t, 2000, *campaigns[0].Delivered)
}

func TestProcessBatch_DistinctCampaignsKept(t *testing.T) {
	campaigns, _ := ProcessBatch([]Input{
		{Name: "first.csv", Index: 0, Text: classicReport("January Issue", 1000)},
		{Name: "second.csv", Index: 1, Text: classicReport("February Issue", 2000)},
	})

	assert.Len(t, campaigns, 2)
}

func TestProcessBatch_FailuresDoNotAbortBatch(t *testing.T) {
	campaigns, failures := ProcessBatch([]Input{
		{Name: "good.csv", Index: 0, Text: classicReport("Weekly News", 1000)},
		{Name: "junk.csv", Index: 1, Text: "not a report at all"},
		{Name: "empty.csv", Index: 2, Text: ""},
	})

	require.Len(t, campaigns, 1)
	require.Len(t, failures, 2)
	assert.Equal(t, "junk.csv", failures[0].Filename)
	assert.Equal(t, "Unsupported or unrecognized report format", failures[0].Error)
	assert.Equal(t, "empty.csv", failures[1].Filename)
}

func TestProcessBatch_Empty(t *testing.T) {
	campaigns, failures := ProcessBatch(nil)
	assert.Empty(t, campaigns)
	assert.Empty(t, failures)
}

func TestDeduplicate_PassthroughWithoutID(t *testing.T) {
	withID := models.Campaign{UniqueID: "aaa111bbb222", Subject: "Keyed"}
	anonymous1 := models.Campaign{Subject: "Anonymous 1"}
	anonymous2 := models.Campaign{Subject: "Anonymous 2"}

	out := deduplicate([]indexed{
		{campaign: anonymous1, index: 0},
		{campaign: withID, index: 0},
		{campaign: anonymous2, index: 1},
	})

	require.Len(t, out, 3)
	// Pass-through records first, in emission order; keyed winners after.
	assert.Equal(t, "Anonymous 1", out[0].Subject)
	assert.Equal(t, "Anonymous 2", out[1].Subject)
	assert.Equal(t, "Keyed", out[2].Subject)
}

func TestDeduplicate_TieKeepsFirstSeen(t *testing.T) {
	first := models.Campaign{UniqueID: "aaa111bbb222", Subject: "First"}
	second := models.Campaign{UniqueID: "aaa111bbb222", Subject: "Second"}

	out := deduplicate([]indexed{
		{campaign: first, index: 3},
		{campaign: second, index: 3},
	})

	require.Len(t, out, 1)
	assert.Equal(t, "First", out[0].Subject)
}

func TestDeduplicate_WinnersSortedByID(t *testing.T) {
	out := deduplicate([]indexed{
		{campaign: models.Campaign{UniqueID: "zzz", Subject: "Z"}, index: 0},
		{campaign: models.Campaign{UniqueID: "aaa", Subject: "A"}, index: 0},
		{campaign: models.Campaign{UniqueID: "mmm", Subject: "M"}, index: 0},
	})

	require.Len(t, out, 3)
	assert.Equal(t, []string{"A", "M", "Z"}, []string{out[0].Subject, out[1].Subject, out[2].Subject})
}
