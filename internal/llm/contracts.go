package llm

import (
	"context"

	"github.com/joseph-ayodele/news-alert/internal/search"
)

// Interpretation is the normalized shape extracted from a free-form request.
type Interpretation struct {
	Keywords        string `json:"keywords"`
	TimeInstruction string `json:"time_instruction"`
	NumInstruction  string `json:"num_instruction"`
	Language        string `json:"language"`
}

// Defaults used when a field is missing or interpretation degrades entirely.
const (
	DefaultTimeInstruction = "last 7 days"
	DefaultNumInstruction  = "5-10 items"
	DefaultLanguage        = "English"
)

// SearchRequest parameterizes one research search.
type SearchRequest struct {
	Query           string
	TimeInstruction string
	NumInstruction  string
	Language        string
}

// TextGenerator is the text-generation capability the pipeline depends on.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Searcher is the search capability. Implementations emit stream events in
// arrival order to handle; a handle error aborts the stream.
type Searcher interface {
	Search(ctx context.Context, req SearchRequest, handle func(search.Event) error) error
}
