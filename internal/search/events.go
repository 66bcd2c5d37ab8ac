// Package search folds the search capability's event stream into
// accumulated content, citations and progress updates. The fold is
// transport-agnostic: it only consumes an ordered event sequence, so it
// can be driven by a live connection or by a recorded fixture.
package search

// EventType discriminates the stream event variants.
type EventType string

const (
	EventCreated          EventType = "created"
	EventToolCallStarted  EventType = "tool_call_started"
	EventToolCallFinished EventType = "tool_call_finished"
	EventTextDelta        EventType = "text_delta"
	EventContentDone      EventType = "content_done"
	EventCompleted        EventType = "completed"
	EventError            EventType = "error"
)

// Citation is a source attribution attached to generated text.
type Citation struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Index int    `json:"index,omitempty"`
}

// Event is one message in the provider's ordered stream. Only the fields
// relevant to the Type are populated.
type Event struct {
	Type      EventType
	Index     int    // tool call index (ToolCallStarted/Finished)
	Status    string // tool call terminal status (ToolCallFinished)
	Text      string // delta text (TextDelta) or full text (ContentDone)
	Citations []Citation
	Detail    string // error detail (Error)
}

// Result is the finalized accumulator state returned on Completed.
type Result struct {
	Content   string
	Citations []Citation
	ToolCalls int
}
