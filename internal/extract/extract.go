// Package extract recovers normalized news records from the semi-structured
// report the analyze stage produces. Extraction is layered: labeled markdown
// sections first, a fenced JSON block in the raw search content second, and
// an empty list as the final degradation. Each layer is a pure function from
// text to records, so the layering contract stays independently testable.
package extract

import (
	"regexp"
	"strings"
)

// Record is one normalized news item. Records are produced transiently for
// the render stage and never persisted.
type Record struct {
	Title    string
	Country  string
	Keyword  string
	URL      string
	Date     string
	Summary  string
	Analysis string
	Source   string
}

// Records extracts news records from the rendered report, falling back to a
// fenced JSON block in the raw search content, then to an empty list. An
// empty result is a degradation, not an error.
func Records(report, raw, keyword string) []Record {
	if recs := FromMarkdown(report, keyword); len(recs) > 0 {
		return recs
	}
	if recs := FromJSONBlock(raw, keyword); len(recs) > 0 {
		return recs
	}
	return nil
}

var (
	sectionRe = regexp.MustCompile(`(?m)^###\s+\d+\.\s+(.+)$`)
	labelRe   = regexp.MustCompile(`^\s*[-*]?\s*\*\*([^*]+)\*\*\s*[:：]\s*(.*)$`)
	linkRe    = regexp.MustCompile(`\[([^\]]*)\]\((https?://[^\s)]+)\)`)
	urlRe     = regexp.MustCompile(`https?://[^\s)]+`)
)

// FromMarkdown pulls records from numbered "### N. Title" report sections.
// Within a section, fields follow a "**Label**: value" convention; a value
// runs until the next labeled line or the section boundary.
func FromMarkdown(report, keyword string) []Record {
	headings := sectionRe.FindAllStringSubmatchIndex(report, -1)
	if len(headings) == 0 {
		return nil
	}

	recs := make([]Record, 0, len(headings))
	for i, h := range headings {
		title := strings.TrimSpace(report[h[2]:h[3]])
		bodyStart := h[1]
		bodyEnd := len(report)
		if i+1 < len(headings) {
			bodyEnd = headings[i+1][0]
		}
		body := trimAtNextHeading(report[bodyStart:bodyEnd])

		fields := parseLabeledFields(body)
		source, url := splitSourceLink(fields["source"])
		if url == "" {
			// Some reports inline the URL elsewhere in the section.
			url = urlRe.FindString(body)
		}

		recs = append(recs, Record{
			Title:    title,
			Country:  Country(title, source, body),
			Keyword:  keyword,
			URL:      url,
			Date:     sectionDate(fields["date"], body),
			Summary:  fields["summary"],
			Analysis: fields["key analysis"],
			Source:   source,
		})
	}
	return recs
}

// parseLabeledFields folds the section body into label -> value, letting
// values span lines until the next labeled line.
func parseLabeledFields(body string) map[string]string {
	fields := make(map[string]string)
	var current string
	var value []string

	flush := func() {
		if current != "" {
			fields[current] = strings.TrimSpace(strings.Join(value, "\n"))
		}
		current = ""
		value = value[:0]
	}

	for _, line := range strings.Split(body, "\n") {
		if m := labelRe.FindStringSubmatch(line); m != nil {
			flush()
			current = strings.ToLower(strings.TrimSpace(m[1]))
			value = append(value, m[2])
			continue
		}
		if current != "" {
			value = append(value, line)
		}
	}
	flush()
	return fields
}

// splitSourceLink resolves "**Source**: [Name](url)" values into their name
// and URL parts, tolerating a bare name or a bare URL.
func splitSourceLink(v string) (source, url string) {
	if v == "" {
		return "", ""
	}
	if m := linkRe.FindStringSubmatch(v); m != nil {
		return strings.TrimSpace(m[1]), m[2]
	}
	if u := urlRe.FindString(v); u != "" {
		return strings.TrimSpace(strings.TrimSuffix(strings.Replace(v, u, "", 1), "()")), u
	}
	return strings.TrimSpace(v), ""
}

// trimAtNextHeading cuts a section body short at the first non-item heading,
// keeping trailing report sections (insights, sources) out of field values.
func trimAtNextHeading(body string) string {
	for _, prefix := range []string{"\n## ", "\n# "} {
		if idx := strings.Index(body, prefix); idx >= 0 {
			body = body[:idx]
		}
	}
	return body
}
