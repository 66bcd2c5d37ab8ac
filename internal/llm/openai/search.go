package openai

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joseph-ayodele/news-alert/internal/llm"
	"github.com/joseph-ayodele/news-alert/internal/search"
)

// sseEvent is the subset of a Responses API stream event the adapter reads.
type sseEvent struct {
	Type        string `json:"type"`
	OutputIndex int    `json:"output_index"`
	Delta       string `json:"delta"`
	Item        struct {
		Type   string `json:"type"`
		Status string `json:"status"`
	} `json:"item"`
	Part struct {
		Type        string `json:"type"`
		Text        string `json:"text"`
		Annotations []struct {
			Type  string `json:"type"`
			Title string `json:"title"`
			URL   string `json:"url"`
			Index int    `json:"index"`
		} `json:"annotations"`
	} `json:"part"`
	Response struct {
		Status string `json:"status"`
	} `json:"response"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Search implements llm.Searcher against the Responses API with the
// web_search tool. Each SSE event is mapped to a stream event and handed to
// handle in arrival order; a handle error aborts the stream.
func (c *Client) Search(ctx context.Context, req llm.SearchRequest, handle func(search.Event) error) error {
	rid := uuid.New().String()
	start := time.Now()

	c.log.Info("llm.search.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"query", req.Query,
		"time_instruction", req.TimeInstruction,
		"language", req.Language,
	)

	body := map[string]any{
		"model":  c.cfg.Model,
		"input":  llm.BuildSearchPrompt(req),
		"tools":  []map[string]any{{"type": "web_search"}},
		"stream": true,
	}
	b, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/responses"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/event-stream")

	resp, err := c.streamHTTP.Do(httpReq)
	if err != nil {
		c.log.Error("llm.search.http_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return fmt.Errorf("openai http error: %w", err)
	}
	defer func(Body io.ReadCloser) {
		err := Body.Close()
		if err != nil {
			c.log.Warn("openai response body close error", "error", err)
		}
	}(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		buf := new(bytes.Buffer)
		_, _ = buf.ReadFrom(resp.Body)
		c.log.Error("llm.search.status_error",
			"req_id", rid, "status", resp.StatusCode,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return fmt.Errorf("openai status %d: %s", resp.StatusCode, buf.String())
	}

	events := 0
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if data == "" || data == "[DONE]" {
			continue
		}

		var raw sseEvent
		if err := json.Unmarshal([]byte(data), &raw); err != nil {
			c.log.Warn("llm.search.event_decode_error", "req_id", rid, "error", err)
			continue
		}
		ev, ok := mapEvent(raw)
		if !ok {
			continue
		}
		events++
		if err := handle(ev); err != nil {
			c.log.Error("llm.search.aborted",
				"req_id", rid, "error", err, "events", events,
				"elapsed_ms", time.Since(start).Milliseconds(),
			)
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		c.log.Error("llm.search.stream_error",
			"req_id", rid, "error", err, "events", events,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return fmt.Errorf("read stream: %w", err)
	}

	c.log.Info("llm.search.ok",
		"req_id", rid, "events", events,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// mapEvent translates a provider SSE event into the transport-agnostic
// stream vocabulary. Events with no mapping are dropped.
func mapEvent(raw sseEvent) (search.Event, bool) {
	switch raw.Type {
	case "response.created":
		return search.Event{Type: search.EventCreated}, true
	case "response.output_item.added":
		if raw.Item.Type != "web_search_call" {
			return search.Event{}, false
		}
		return search.Event{Type: search.EventToolCallStarted, Index: raw.OutputIndex}, true
	case "response.output_item.done":
		if raw.Item.Type != "web_search_call" {
			return search.Event{}, false
		}
		return search.Event{
			Type:   search.EventToolCallFinished,
			Index:  raw.OutputIndex,
			Status: raw.Item.Status,
		}, true
	case "response.output_text.delta":
		return search.Event{Type: search.EventTextDelta, Text: raw.Delta}, true
	case "response.content_part.done":
		if raw.Part.Type != "output_text" {
			return search.Event{}, false
		}
		ev := search.Event{Type: search.EventContentDone, Text: raw.Part.Text}
		for _, a := range raw.Part.Annotations {
			if a.Type != "url_citation" {
				continue
			}
			ev.Citations = append(ev.Citations, search.Citation{
				Title: a.Title,
				URL:   a.URL,
				Index: a.Index,
			})
		}
		return ev, true
	case "response.completed":
		return search.Event{Type: search.EventCompleted}, true
	case "response.failed":
		detail := raw.Error.Message
		if detail == "" {
			detail = "response failed with status " + raw.Response.Status
		}
		return search.Event{Type: search.EventError, Detail: detail}, true
	case "error":
		return search.Event{Type: search.EventError, Detail: raw.Error.Message}, true
	default:
		return search.Event{}, false
	}
}
