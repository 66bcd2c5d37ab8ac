package extract

import (
	"encoding/json"
	"regexp"
	"strings"
)

var fenceRe = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")

type jsonResult struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Source  string `json:"source"`
	URL     string `json:"url"`
	Date    string `json:"date"`
}

type jsonEnvelope struct {
	Results []jsonResult `json:"results"`
}

// FromJSONBlock searches the raw search content for a fenced JSON object
// with a `results` array and maps each entry to a record. Titles stay as
// the provider returned them, untranslated.
func FromJSONBlock(raw, keyword string) []Record {
	m := fenceRe.FindStringSubmatch(raw)
	if m == nil {
		return nil
	}

	var env jsonEnvelope
	if err := json.Unmarshal([]byte(m[1]), &env); err != nil {
		return nil
	}
	if len(env.Results) == 0 {
		return nil
	}

	recs := make([]Record, 0, len(env.Results))
	for _, r := range env.Results {
		recs = append(recs, Record{
			Title:   strings.TrimSpace(r.Title),
			Country: Country(r.Title, r.Source, r.Summary),
			Keyword: keyword,
			URL:     strings.TrimSpace(r.URL),
			Date:    normalizeDate(r.Date),
			Summary: strings.TrimSpace(r.Summary),
			Source:  strings.TrimSpace(r.Source),
		})
	}
	return recs
}
