package search

import (
	"fmt"
	"strings"
)

// Progress percentages published while the search stage runs. The stage
// owns the 25-40 band; per-event updates scale with activity but are
// clamped so no event volume can push past the band.
const (
	bandStart       = 25
	toolCallStep    = 2
	toolCallCeiling = 35
	citationCeiling = 39
)

// ProgressFunc receives clamped progress updates as events are folded.
type ProgressFunc func(progress int, message string)

// Accumulator folds stream events, in arrival order, into content,
// citations and a tool call count.
type Accumulator struct {
	content   strings.Builder
	citations []Citation
	seenURLs  map[string]bool
	toolCalls int
	done      bool
	progress  ProgressFunc
}

// NewAccumulator returns an empty accumulator. progress may be nil.
func NewAccumulator(progress ProgressFunc) *Accumulator {
	return &Accumulator{
		seenURLs: make(map[string]bool),
		progress: progress,
	}
}

// Apply folds one event. It returns done=true once a Completed event has
// been observed, after which Result holds the final state. An Error event
// aborts the fold and its detail is returned as the error.
func (a *Accumulator) Apply(ev Event) (done bool, err error) {
	if a.done {
		return true, nil
	}
	switch ev.Type {
	case EventCreated:
		// Informational only.
	case EventToolCallStarted:
		a.toolCalls++
		p := bandStart + toolCallStep*a.toolCalls
		if p > toolCallCeiling {
			p = toolCallCeiling
		}
		a.publish(p, fmt.Sprintf("Running search %d...", a.toolCalls))
	case EventToolCallFinished:
		// The provider reports per-call status; the accumulator does not
		// track it beyond the started count.
	case EventTextDelta:
		// Providers may re-segment deltas arbitrarily; append as-is.
		a.content.WriteString(ev.Text)
	case EventContentDone:
		a.appendRemainder(ev.Text)
		for _, c := range ev.Citations {
			if a.seenURLs[c.URL] {
				continue
			}
			a.seenURLs[c.URL] = true
			a.citations = append(a.citations, c)
			p := toolCallCeiling + len(a.citations)
			if p > citationCeiling {
				p = citationCeiling
			}
			a.publish(p, fmt.Sprintf("Collected %d sources", len(a.citations)))
		}
	case EventCompleted:
		a.done = true
		return true, nil
	case EventError:
		return false, fmt.Errorf("stream error: %s", ev.Detail)
	default:
		// Unknown event types from newer provider versions are skipped.
	}
	return false, nil
}

// Done reports whether a Completed event has been folded.
func (a *Accumulator) Done() bool {
	return a.done
}

// Result returns the accumulated state. Meaningful once Apply reported done.
func (a *Accumulator) Result() Result {
	return Result{
		Content:   a.content.String(),
		Citations: a.citations,
		ToolCalls: a.toolCalls,
	}
}

// appendRemainder merges the completion-time full text with what the
// deltas already produced. If the text is already contained it is a pure
// resend; otherwise only the non-overlapping tail is appended, so the
// final content never double-counts.
func (a *Accumulator) appendRemainder(text string) {
	if text == "" {
		return
	}
	current := a.content.String()
	if strings.Contains(current, text) {
		return
	}
	// Longest suffix of current that prefixes text.
	max := len(current)
	if len(text) < max {
		max = len(text)
	}
	for n := max; n > 0; n-- {
		if strings.HasSuffix(current, text[:n]) {
			a.content.WriteString(text[n:])
			return
		}
	}
	a.content.WriteString(text)
}

func (a *Accumulator) publish(progress int, message string) {
	if a.progress != nil {
		a.progress(progress, message)
	}
}
