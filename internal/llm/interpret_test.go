package llm

import (
	"strings"
	"testing"
)

func TestParseInterpretationBareJSON(t *testing.T) {
	t.Parallel()

	content := `{"keywords": "Vietnam fintech funding", "time_instruction": "last 30 days", "num_instruction": "about 15 items", "language": "Vietnamese"}`
	p, err := ParseInterpretation(content, "ignored")
	if err != nil {
		t.Fatalf("ParseInterpretation: %v", err)
	}
	if p.Keywords != "Vietnam fintech funding" {
		t.Fatalf("keywords = %q", p.Keywords)
	}
	if p.TimeInstruction != "last 30 days" {
		t.Fatalf("time_instruction = %q", p.TimeInstruction)
	}
	if p.NumInstruction != "about 15 items" {
		t.Fatalf("num_instruction = %q", p.NumInstruction)
	}
	if p.Language != "Vietnamese" {
		t.Fatalf("language = %q", p.Language)
	}
}

func TestParseInterpretationFencedJSON(t *testing.T) {
	t.Parallel()

	content := "Here you go:\n```json\n{\"keywords\": \"Thailand stock market\"}\n```"
	p, err := ParseInterpretation(content, "ignored")
	if err != nil {
		t.Fatalf("ParseInterpretation: %v", err)
	}
	if p.Keywords != "Thailand stock market" {
		t.Fatalf("keywords = %q", p.Keywords)
	}
	if p.TimeInstruction != DefaultTimeInstruction {
		t.Fatalf("time_instruction = %q, want default", p.TimeInstruction)
	}
	if p.NumInstruction != DefaultNumInstruction {
		t.Fatalf("num_instruction = %q, want default", p.NumInstruction)
	}
	if p.Language != DefaultLanguage {
		t.Fatalf("language = %q, want default", p.Language)
	}
}

func TestParseInterpretationBareFence(t *testing.T) {
	t.Parallel()

	content := "```\n{\"keywords\": \"Indonesia digital banks\"}\n```"
	p, err := ParseInterpretation(content, "ignored")
	if err != nil {
		t.Fatalf("ParseInterpretation: %v", err)
	}
	if p.Keywords != "Indonesia digital banks" {
		t.Fatalf("keywords = %q", p.Keywords)
	}
}

func TestParseInterpretationRejectsInvalid(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		content string
	}{
		{"not json", "I could not determine the keywords."},
		{"missing keywords", `{"time_instruction": "last 7 days"}`},
		{"empty keywords", `{"keywords": ""}`},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if _, err := ParseInterpretation(tc.content, "raw"); err == nil {
				t.Fatalf("expected error for %q", tc.content)
			}
		})
	}
}

func TestParseInterpretationToleratesExtraFields(t *testing.T) {
	t.Parallel()

	content := `{"keywords": "Malaysia bond market", "confidence": 0.9, "notes": "padded"}`
	p, err := ParseInterpretation(content, "ignored")
	if err != nil {
		t.Fatalf("ParseInterpretation: %v", err)
	}
	if p.Keywords != "Malaysia bond market" {
		t.Fatalf("keywords = %q", p.Keywords)
	}
	if p.Language != DefaultLanguage {
		t.Fatalf("language = %q, want default", p.Language)
	}
}

func TestFallbackInterpretation(t *testing.T) {
	t.Parallel()

	p := FallbackInterpretation("latest Singapore payment news")
	if p.Keywords != "latest Singapore payment news" {
		t.Fatalf("keywords = %q", p.Keywords)
	}
	if p.TimeInstruction != DefaultTimeInstruction || p.NumInstruction != DefaultNumInstruction || p.Language != DefaultLanguage {
		t.Fatalf("defaults not applied: %+v", p)
	}
}

func TestBuildSearchPromptListsAllSources(t *testing.T) {
	t.Parallel()

	prompt := BuildSearchPrompt(SearchRequest{
		Query:           "digital banking",
		TimeInstruction: "last 7 days",
		NumInstruction:  "5-10 items",
		Language:        "English",
	})
	for _, src := range TrustedSources {
		if !strings.Contains(prompt, src.Domain) {
			t.Fatalf("prompt missing trusted domain %q", src.Domain)
		}
	}
}
