package extract

import "strings"

// countryDefault is used when no dictionary entry matches.
const countryDefault = "Southeast Asia"

// countries maps lowercase needles to canonical country names. Needles
// cover English names plus native-script and Chinese spellings seen in
// regional sources.
var countries = []struct {
	needle string
	name   string
}{
	{"singapore", "Singapore"},
	{"新加坡", "Singapore"},
	{"malaysia", "Malaysia"},
	{"馬來西亞", "Malaysia"},
	{"马来西亚", "Malaysia"},
	{"thailand", "Thailand"},
	{"泰國", "Thailand"},
	{"泰国", "Thailand"},
	{"ประเทศไทย", "Thailand"},
	{"indonesia", "Indonesia"},
	{"印尼", "Indonesia"},
	{"vietnam", "Vietnam"},
	{"việt nam", "Vietnam"},
	{"越南", "Vietnam"},
	{"philippines", "Philippines"},
	{"菲律賓", "Philippines"},
	{"菲律宾", "Philippines"},
	{"pilipinas", "Philippines"},
	{"cambodia", "Cambodia"},
	{"柬埔寨", "Cambodia"},
	{"kampuchea", "Cambodia"},
}

// Country infers the country of a news item by substring match over its
// title, source and summary. The first dictionary hit wins; no hit yields
// the generic regional tag.
func Country(title, source, summary string) string {
	text := strings.ToLower(title + " " + source + " " + summary)
	for _, c := range countries {
		if strings.Contains(text, c.needle) {
			return c.name
		}
	}
	return countryDefault
}
