package llm

import (
	"fmt"
	"strings"
	"time"
)

// TrustedSource is a whitelisted news site the research search is allowed to
// cite from.
type TrustedSource struct {
	Name   string
	Domain string
	Region string
}

// TrustedSources is the fixed whitelist of Southeast Asian news outlets.
// Search results citing any other domain are to be discarded by the model.
var TrustedSources = []TrustedSource{
	{Name: "VietJo", Domain: "viet-jo.com", Region: "Vietnam"},
	{Name: "Cafef", Domain: "cafef.vn", Region: "Vietnam"},
	{Name: "VNExpress", Domain: "vnexpress.net", Region: "Vietnam"},
	{Name: "Vietnam Finance", Domain: "vietnamfinance.vn", Region: "Vietnam"},
	{Name: "Vietnam Investment Review", Domain: "vir.com.vn", Region: "Vietnam"},
	{Name: "Vietnambiz", Domain: "vietnambiz.vn", Region: "Vietnam"},
	{Name: "Tap Chi Tai Chinh", Domain: "tapchikinhtetaichinh.vn", Region: "Vietnam"},
	{Name: "Bangkok Post", Domain: "bangkokpost.com", Region: "Thailand"},
	{Name: "Techsauce", Domain: "techsauce.co", Region: "Thailand"},
	{Name: "Fintech Singapore", Domain: "fintechnews.sg", Region: "Singapore"},
	{Name: "Fintech Philippines", Domain: "fintechnews.ph", Region: "Philippines"},
	{Name: "Khmer Times", Domain: "khmertimeskh.com", Region: "Cambodia"},
	{Name: "Cambodia China Times", Domain: "cc-times.com", Region: "Cambodia"},
	{Name: "The Phnom Penh Post", Domain: "phnompenhpost.com", Region: "Cambodia"},
	{Name: "Deal Street Asia", Domain: "dealstreetasia.com", Region: "Southeast Asia"},
	{Name: "Tech in Asia", Domain: "techinasia.com", Region: "Southeast Asia"},
	{Name: "Nikkei Asia", Domain: "asia.nikkei.com", Region: "Southeast Asia"},
	{Name: "Heaptalk", Domain: "heaptalk.com", Region: "Southeast Asia"},
}

// BuildInterpretPrompt composes the message that turns a free-form request
// into the interpretation JSON. The model is told to answer with bare JSON;
// ParseInterpretation still strips fences because models wrap anyway.
func BuildInterpretPrompt(userPrompt string) string {
	parts := []string{
		"You are a task interpretation expert. Extract four pieces of information from the user's request:",
		"1. 'keywords': the core search topic.",
		"2. 'time_instruction': the requested time range (default '" + DefaultTimeInstruction + "' when unspecified).",
		"3. 'num_instruction': how many news items are wanted (default '" + DefaultNumInstruction + "' when unspecified).",
		"4. 'language': the preferred source language (default '" + DefaultLanguage + "'. Supported: 'English', 'Chinese', 'Vietnamese', 'Thai', 'Malay', 'Indonesian').",
		"",
		"User request: " + userPrompt,
		"",
		"Return ONLY a JSON object, no markdown code blocks, no explanations. Example:",
		`{"keywords": "topic", "time_instruction": "last 7 days", "num_instruction": "5-10 items", "language": "English"}`,
	}
	return strings.Join(parts, "\n")
}

// BuildSearchPrompt composes the research instruction for the search stage:
// scope, time/count/language requirements, the source whitelist with per-region
// site: search guidance, and the JSON envelope the fallback extractor reads.
func BuildSearchPrompt(req SearchRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Act as a top-tier financial researcher. Search in depth for Southeast Asian financial news about %q.\n\n", req.Query)

	b.WriteString("Core instructions:\n")
	b.WriteString("1. Scope: strictly Southeast Asian countries (Singapore, Malaysia, Thailand, Indonesia, Vietnam, Philippines, Cambodia).\n")
	fmt.Fprintf(&b, "2. Time range: only news published within %s.\n", req.TimeInstruction)
	fmt.Fprintf(&b, "3. Quantity: aim for %s of high-quality news. Do your best to reach this target.\n", req.NumInstruction)
	fmt.Fprintf(&b, "4. Language: prefer sources in %s.\n", req.Language)
	b.WriteString("5. Source restriction (critical): you MUST only use the following trusted news sites:\n")
	for _, src := range TrustedSources {
		fmt.Fprintf(&b, "  - %s (site:%s) - %s\n", src.Name, src.Domain, src.Region)
	}

	b.WriteString("6. Search technique: use site: queries against multiple sites independently, for example ")
	examples := make([]string, 0, 5)
	for _, src := range TrustedSources[:5] {
		examples = append(examples, "site:"+src.Domain)
	}
	b.WriteString(strings.Join(examples, " OR "))
	b.WriteString(". Search the Vietnam, Thailand, Singapore, Philippines and Cambodia regions separately.\n")

	b.WriteString("7. Diversity: draw from at least 3-4 distinct sources where quality allows; vary keywords across languages and synonyms.\n")

	domains := make([]string, 0, len(TrustedSources))
	for _, src := range TrustedSources {
		domains = append(domains, src.Domain)
	}
	fmt.Fprintf(&b, "8. Domain validation: every URL's domain must be one of: %s. Exclude everything else.\n", strings.Join(domains, ", "))

	b.WriteString("9. Completeness: every item must carry a clear title, summary, source site, full URL and publication date.\n\n")

	b.WriteString("Output format: return the results in this exact JSON envelope inside a ```json code block:\n\n")
	fmt.Fprintf(&b, "```json\n{\n  \"search_query\": %q,\n", req.Query)
	b.WriteString(`  "search_date": "YYYY-MM-DD",
  "results": [
    {
      "title": "Example headline",
      "summary": "A few sentences summarizing the article...",
      "source": "Source name",
      "url": "https://example.com/article",
      "date": "YYYY-MM-DD"
    }
  ]
}
` + "```\n")

	return b.String()
}

// BuildAnalysisPrompt composes the report-writing instruction for the analyze
// stage. The section layout here is a contract: the record extractor parses
// the "### N. Title" sections and the bold Source/Date/Summary/Key Analysis
// labels out of the model's answer.
func BuildAnalysisPrompt(query, searchContent, appName string) string {
	now := time.Now()

	var b strings.Builder
	b.WriteString("Organize the following search results into a professional financial report in English.\n\n")
	fmt.Fprintf(&b, "Original query: %s\n", query)
	fmt.Fprintf(&b, "Search results:\n%s\n\n", searchContent)

	b.WriteString("Important: follow the format below exactly. Every news item must carry the bold ")
	b.WriteString("**Source**, **Date**, **Summary** and **Key Analysis** fields.\n\n")

	b.WriteString("Report format:\n\n")
	b.WriteString("# Southeast Asia Financial News Report\n\n")
	b.WriteString("## Executive Summary\n")
	b.WriteString("[2-3 sentences summarizing the core findings]\n\n")
	b.WriteString("## Search Topic\n")
	b.WriteString(query + "\n\n")
	b.WriteString("## Report Date\n")
	b.WriteString(now.Format("January 2, 2006") + "\n\n")
	b.WriteString("## News Details\n\n")
	b.WriteString("### 1. [Headline]\n")
	b.WriteString("- **Source**: [Source name](URL)\n")
	b.WriteString("- **Date**: [YYYY-MM-DD]\n")
	b.WriteString("- **Summary**: [Detailed summary, 100-300 words, covering the substance of the article]\n")
	b.WriteString("- **Key Analysis**: [Itemized analysis of the key facts, numbered 1) 2) 3)]\n\n")
	b.WriteString("### 2. [Headline]\n")
	b.WriteString("- **Source**: [Source name](URL)\n")
	b.WriteString("- **Date**: [YYYY-MM-DD]\n")
	b.WriteString("- **Summary**: [Detailed summary, 100-300 words]\n")
	b.WriteString("- **Key Analysis**: [Itemized analysis, numbered 1) 2) 3)]\n\n")
	b.WriteString("(Repeat the section layout for every item; never omit a field.)\n\n")
	b.WriteString("## Market Insights\n")
	b.WriteString("[3-5 key insights drawn from the news above]\n\n")
	b.WriteString("## Sources\n")
	b.WriteString("- [Title 1](URL)\n")
	b.WriteString("- [Title 2](URL)\n\n")
	b.WriteString("---\n")
	fmt.Fprintf(&b, "**Generated**: %s\n", now.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "**System**: %s\n\n", appName)

	b.WriteString("Notes:\n")
	b.WriteString("1. Hyperlink format: [title](url).\n")
	b.WriteString("2. Remove duplicate and redundant items.\n")
	b.WriteString("3. Order by importance and recency.\n")
	b.WriteString("4. Keep the language professional but readable.\n")
	b.WriteString("5. If no relevant news was found, say so explicitly.\n")

	return b.String()
}
