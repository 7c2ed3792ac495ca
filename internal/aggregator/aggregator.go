// Package aggregator processes one batch of uploaded reports: each input is
// detected and parsed independently, per-input failures are collected rather
// than propagated, and records describing the same underlying campaign are
// deduplicated across the whole batch.
package aggregator

import (
	"fmt"
	"sort"

	"github.com/insightdelivered/campaign-report-converter/internal/models"
	"github.com/insightdelivered/campaign-report-converter/internal/parser"
)

// Input is one decoded report file in a batch. Index is its ordinal position
// in the upload, used as the dedup tie-breaker: a later file wins over an
// earlier one for the same campaign identity.
type Input struct {
	Name  string
	Index int
	Text  string
}

// Failure attributes a per-input error to its originating file.
type Failure struct {
	Filename string `json:"filename"`
	Error    string `json:"error"`
}

// indexed pairs a record with the input it came from; the index never leaves
// this package.
type indexed struct {
	campaign models.Campaign
	index    int
}

// ProcessBatch parses every input, collects per-input failures alongside
// successes, and returns the deduplicated campaign list. No input's failure —
// including a panic inside a parser — aborts its siblings.
func ProcessBatch(inputs []Input) ([]models.Campaign, []Failure) {
	var all []indexed
	var failures []Failure

	for _, in := range inputs {
		campaigns, err := parseOne(in.Text)
		if err != nil {
			msg := err.Error()
			if pe, ok := models.AsParseError(err); ok {
				msg = pe.Message
			}
			failures = append(failures, Failure{Filename: in.Name, Error: msg})
			continue
		}
		for _, c := range campaigns {
			all = append(all, indexed{campaign: c, index: in.Index})
		}
	}

	return deduplicate(all), failures
}

// parseOne isolates a single input's parse so an unexpected panic in one
// parser is reported as that input's failure, not a crashed batch.
func parseOne(text string) (campaigns []models.Campaign, err error) {
	defer func() {
		if r := recover(); r != nil {
			campaigns = nil
			err = fmt.Errorf("internal error while parsing report: %v", r)
		}
	}()
	return parser.ParseReport(text)
}

// deduplicate applies the cross-file merge policy:
//
//  1. Records with no unique_id pass through unchanged — there is no key to
//     merge them on.
//  2. Records sharing a unique_id are grouped; the record from the highest
//     input index wins (last upload overrides earlier ones). Ties keep the
//     first record seen.
//  3. Pass-through records come out first in emission order, then the dedup
//     winners sorted by unique_id for reproducibility.
func deduplicate(records []indexed) []models.Campaign {
	var passthrough []models.Campaign
	winners := make(map[string]indexed)

	for _, rec := range records {
		id := rec.campaign.UniqueID
		if id == "" {
			passthrough = append(passthrough, rec.campaign)
			continue
		}
		cur, seen := winners[id]
		if !seen || rec.index > cur.index {
			winners[id] = rec
		}
	}

	ids := make([]string, 0, len(winners))
	for id := range winners {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := passthrough
	for _, id := range ids {
		out = append(out, winners[id].campaign)
	}
	return out
}
