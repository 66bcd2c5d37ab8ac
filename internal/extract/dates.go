package extract

import (
	"regexp"
	"strings"
)

var (
	// Year-month-day with -, / or . separators, e.g. 2025-10-13, 2025/10/13.
	numericDateRe = regexp.MustCompile(`\d{4}[-/.]\d{1,2}[-/.]\d{1,2}`)
	// Localized long forms: 2025年10月13日, "October 13, 2025".
	cjkDateRe  = regexp.MustCompile(`\d{4}年\d{1,2}月\d{1,2}日`)
	longDateRe = regexp.MustCompile(`(?i)(?:january|february|march|april|may|june|july|august|september|october|november|december)\s+\d{1,2},?\s+\d{4}`)
)

// sectionDate resolves the publication date for a report section:
// explicit labeled field first, then a numeric pattern anywhere in the
// section, then a localized long-form expression, else empty.
func sectionDate(labeled, body string) string {
	if d := strings.TrimSpace(labeled); d != "" {
		return d
	}
	if d := numericDateRe.FindString(body); d != "" {
		return d
	}
	if d := cjkDateRe.FindString(body); d != "" {
		return d
	}
	if d := longDateRe.FindString(body); d != "" {
		return d
	}
	return ""
}

// normalizeDate applies the same preference order to a standalone value.
func normalizeDate(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	if d := numericDateRe.FindString(v); d != "" {
		return d
	}
	if d := cjkDateRe.FindString(v); d != "" {
		return d
	}
	if d := longDateRe.FindString(v); d != "" {
		return d
	}
	return v
}
