// Package pipeline orchestrates one report task end to end: interpret the
// request, run the research search, write the analysis report, render the
// artifacts and deliver them by mail. Progress checkpoints are published to
// the task store after each stage.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joseph-ayodele/news-alert/internal/extract"
	"github.com/joseph-ayodele/news-alert/internal/llm"
	"github.com/joseph-ayodele/news-alert/internal/search"
	"github.com/joseph-ayodele/news-alert/internal/task"
)

// Stage checkpoints. Progress between search checkpoints is interpolated
// by the stream accumulator inside its 25-40 band.
const (
	progressStarted      = 10
	progressInterpreting = 15
	progressSearching    = 25
	progressSearchDone   = 40
	progressAnalyzing    = 45
	progressAnalysisDone = 60
	progressRendering    = 65
	progressRenderDone   = 80
	progressDelivering   = 85
	progressDeliveryDone = 95
)

// Step identifiers surfaced through the status endpoint.
const (
	stepInterpret = "interpret"
	stepSearch    = "search"
	stepAnalyze   = "analyze"
	stepRender    = "render"
	stepDeliver   = "deliver"
)

// Renderer produces the report artifacts from the analysis markdown.
type Renderer interface {
	Generate(markdown string, records []extract.Record) (pdfPath, xlsxPath string, err error)
}

// Deliverer ships the artifacts to the recipients.
type Deliverer interface {
	SendReport(ctx context.Context, recipients, pdfPath, xlsxPath string) error
}

// Pipeline wires the stage capabilities together.
type Pipeline struct {
	store     *task.Store
	generator llm.TextGenerator
	searcher  llm.Searcher
	renderer  Renderer
	deliverer Deliverer
	appName   string
	logger    *slog.Logger
}

func New(store *task.Store, generator llm.TextGenerator, searcher llm.Searcher, renderer Renderer, deliverer Deliverer, appName string, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		store:     store,
		generator: generator,
		searcher:  searcher,
		renderer:  renderer,
		deliverer: deliverer,
		appName:   appName,
		logger:    logger,
	}
}

// Run executes the task from queued to a terminal state. A stage failure
// marks the task failed with a stage-qualified message; the returned error
// mirrors it for the worker log.
func (p *Pipeline) Run(ctx context.Context, taskID string) error {
	start := time.Now()

	t, err := p.store.Details(taskID)
	if err != nil {
		return err
	}
	if err := p.store.SetRunning(taskID, progressStarted); err != nil {
		return err
	}

	p.logger.Info("pipeline.start", "task_id", taskID, "prompt_len", len(t.Inputs.Prompt))

	// Interpret. Degradation is recoverable: the raw prompt drives the
	// search with default instructions.
	interp := p.interpret(ctx, taskID, t.Inputs)

	// Search. Fatal on failure.
	result, err := p.search(ctx, taskID, interp)
	if err != nil {
		return p.fail(taskID, stepSearch, err)
	}

	// Analyze. Fatal on failure.
	report, err := p.analyze(ctx, taskID, interp.Keywords, result)
	if err != nil {
		return p.fail(taskID, stepAnalyze, err)
	}

	// Extract. Degradation is recoverable: the spreadsheet may end up
	// empty while the PDF still carries the full report.
	records := extract.Records(report, result.Content, interp.Keywords)
	if len(records) == 0 {
		p.logger.Warn("pipeline.extract.empty", "task_id", taskID)
	}

	// Render. Fatal on failure.
	_ = p.store.SetProgress(taskID, progressRendering, stepRender, "Generating PDF and Excel reports...")
	pdfPath, xlsxPath, err := p.renderer.Generate(report, records)
	if err != nil {
		return p.fail(taskID, stepRender, err)
	}
	_ = p.store.SetProgress(taskID, progressRenderDone, stepRender, "Reports generated")

	// Deliver. Fatal on failure.
	_ = p.store.SetProgress(taskID, progressDelivering, stepDeliver, "Sending report email...")
	if err := p.deliverer.SendReport(ctx, t.Inputs.Recipient, pdfPath, xlsxPath); err != nil {
		return p.fail(taskID, stepDeliver, err)
	}
	_ = p.store.SetProgress(taskID, progressDeliveryDone, stepDeliver, "Report email sent")

	if err := p.store.SetSucceeded(taskID, task.Artifacts{
		DocumentPath:    pdfPath,
		SpreadsheetPath: xlsxPath,
	}); err != nil {
		return err
	}

	p.logger.Info("pipeline.ok",
		"task_id", taskID,
		"records", len(records),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

func (p *Pipeline) interpret(ctx context.Context, taskID string, in task.Inputs) llm.Interpretation {
	_ = p.store.SetProgress(taskID, progressInterpreting, stepInterpret, "Interpreting your request...")

	prompt := composePrompt(in)
	content, err := p.generator.Generate(ctx, llm.BuildInterpretPrompt(prompt))
	if err != nil {
		p.logger.Warn("pipeline.interpret.degraded", "task_id", taskID, "error", err)
		return llm.FallbackInterpretation(prompt)
	}
	interp, err := llm.ParseInterpretation(content, prompt)
	if err != nil {
		p.logger.Warn("pipeline.interpret.degraded", "task_id", taskID, "error", err)
		return llm.FallbackInterpretation(prompt)
	}
	return interp
}

func (p *Pipeline) search(ctx context.Context, taskID string, interp llm.Interpretation) (search.Result, error) {
	_ = p.store.SetProgress(taskID, progressSearching, stepSearch,
		fmt.Sprintf("Searching news about %q (%s, %s, %s)...",
			interp.Keywords, interp.TimeInstruction, interp.NumInstruction, interp.Language))

	acc := search.NewAccumulator(func(progress int, message string) {
		_ = p.store.SetProgress(taskID, progress, stepSearch, message)
	})
	err := p.searcher.Search(ctx, llm.SearchRequest{
		Query:           interp.Keywords,
		TimeInstruction: interp.TimeInstruction,
		NumInstruction:  interp.NumInstruction,
		Language:        interp.Language,
	}, func(ev search.Event) error {
		_, err := acc.Apply(ev)
		return err
	})
	if err != nil {
		return search.Result{}, err
	}
	if !acc.Done() {
		return search.Result{}, fmt.Errorf("stream ended without completion")
	}
	result := acc.Result()
	if strings.TrimSpace(result.Content) == "" {
		return search.Result{}, fmt.Errorf("search produced no content")
	}

	_ = p.store.SetProgress(taskID, progressSearchDone, stepSearch, "News search complete")
	return result, nil
}

func (p *Pipeline) analyze(ctx context.Context, taskID, query string, result search.Result) (string, error) {
	_ = p.store.SetProgress(taskID, progressAnalyzing, stepAnalyze, "Analyzing and structuring the findings...")

	report, err := p.generator.Generate(ctx, llm.BuildAnalysisPrompt(query, result.Content, p.appName))
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(report) == "" {
		return "", fmt.Errorf("empty report")
	}

	_ = p.store.SetProgress(taskID, progressAnalysisDone, stepAnalyze, "Analysis complete")
	return report, nil
}

func (p *Pipeline) fail(taskID, stage string, err error) error {
	msg := fmt.Sprintf("%s failed: %v", stage, err)
	if serr := p.store.SetFailed(taskID, msg); serr != nil {
		p.logger.Error("pipeline.fail_record_error", "task_id", taskID, "error", serr)
	}
	p.logger.Error("pipeline.stage_error", "task_id", taskID, "stage", stage, "error", err)
	return fmt.Errorf("%s", msg)
}

// composePrompt folds the optional request parameters into the free-form
// prompt so the interpreter sees one coherent instruction.
func composePrompt(in task.Inputs) string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(in.Prompt))
	if v := strings.TrimSpace(in.TimeRange); v != "" {
		b.WriteString("\nTime range: " + v)
	}
	if v := strings.TrimSpace(in.CountHint); v != "" {
		b.WriteString("\nNumber of items: " + v)
	}
	if v := strings.TrimSpace(in.Language); v != "" {
		b.WriteString("\nPreferred language: " + v)
	}
	return b.String()
}
