package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var (
	fencedJSONRe = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")
	fencedAnyRe  = regexp.MustCompile("(?s)```\\s*(.*?)\\s*```")
)

// ParseInterpretation decodes the interpret-stage model output. Models are
// told to return bare JSON but routinely wrap it in markdown fences, so the
// fence is stripped before decoding. The decoded object is validated against
// the interpretation schema; any failure is returned so the caller can fall
// back to the raw prompt.
func ParseInterpretation(content, rawPrompt string) (Interpretation, error) {
	content = StripJSONFence(content)

	if err := ValidateJSONAgainstSchema(BuildInterpretationJSONSchema(), []byte(content)); err != nil {
		return Interpretation{}, err
	}

	var p Interpretation
	if err := json.Unmarshal([]byte(content), &p); err != nil {
		return Interpretation{}, fmt.Errorf("decode interpretation: %w", err)
	}
	return applyDefaults(p, rawPrompt), nil
}

// FallbackInterpretation is used when interpretation degrades: the raw
// prompt becomes the search keywords and everything else takes defaults.
func FallbackInterpretation(rawPrompt string) Interpretation {
	return applyDefaults(Interpretation{}, rawPrompt)
}

// StripJSONFence extracts the body of a ```json (or bare ```) fenced block,
// returning the trimmed input unchanged when no fence is present.
func StripJSONFence(content string) string {
	content = strings.TrimSpace(content)
	if m := fencedJSONRe.FindStringSubmatch(content); m != nil {
		return m[1]
	}
	if strings.Contains(content, "```") {
		if m := fencedAnyRe.FindStringSubmatch(content); m != nil {
			return m[1]
		}
	}
	return content
}

func applyDefaults(p Interpretation, rawPrompt string) Interpretation {
	if strings.TrimSpace(p.Keywords) == "" {
		p.Keywords = rawPrompt
	}
	if strings.TrimSpace(p.TimeInstruction) == "" {
		p.TimeInstruction = DefaultTimeInstruction
	}
	if strings.TrimSpace(p.NumInstruction) == "" {
		p.NumInstruction = DefaultNumInstruction
	}
	if strings.TrimSpace(p.Language) == "" {
		p.Language = DefaultLanguage
	}
	return p
}
