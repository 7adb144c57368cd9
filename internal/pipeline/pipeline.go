package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/vk/efgscan/internal/classify"
	"github.com/vk/efgscan/internal/ctxlog"
	"github.com/vk/efgscan/internal/dot"
	"github.com/vk/efgscan/internal/efg"
	"github.com/vk/efgscan/internal/extract"
	"github.com/vk/efgscan/internal/lexicon"
	"github.com/vk/efgscan/internal/metrics"
	"github.com/vk/efgscan/internal/source"
)

// WindowMode selects how windows are discovered.
type WindowMode string

const (
	// WindowModeScan creates one window per window-marker line.
	WindowModeScan WindowMode = "scan"
	// WindowModeSingle creates a single unnamed window without scanning.
	WindowModeSingle WindowMode = "single"
)

// Options configures a Pipeline.
type Options struct {
	// Name labels logs and metrics; defaults to the UI source name.
	Name       string
	WindowMode WindowMode
	Metrics    *metrics.Recorder
}

// Pipeline analyses file pairs with a fixed lexicon.
type Pipeline struct {
	lex  *lexicon.Lexicon
	opts Options
}

// New creates a pipeline. An empty WindowMode means WindowModeScan.
func New(lex *lexicon.Lexicon, opts Options) (*Pipeline, error) {
	if lex == nil {
		return nil, fmt.Errorf("pipeline: lexicon is required")
	}
	if err := lex.Validate(); err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	switch opts.WindowMode {
	case "":
		opts.WindowMode = WindowModeScan
	case WindowModeScan, WindowModeSingle:
	default:
		return nil, fmt.Errorf("pipeline: unknown window mode %q", opts.WindowMode)
	}
	return &Pipeline{lex: lex, opts: opts}, nil
}

// Result is the outcome of one Run.
type Result struct {
	Name     string
	Model    *efg.Model
	Document string
	Stats    classify.Stats
	Warnings []*StageError
	Duration time.Duration
}

// TerminalCount is the number of widgets made terminal by a reject() call in
// their handler.
func (r *Result) TerminalCount() int {
	return r.Stats.Terminals
}

// Run analyses one file pair. Stage I/O failures become warnings on the
// result; only context cancellation aborts the run, returning the partial
// result together with the context error.
func (p *Pipeline) Run(ctx context.Context, ui, src source.Source) (*Result, error) {
	start := time.Now()
	name := p.opts.Name
	if name == "" {
		name = ui.Name()
	}
	ctx = ctxlog.With(ctx, "analysis", name)
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Pipeline started.", "ui", ui.Name(), "source", src.Name(), "toolkit", p.lex.Dialect, "window_mode", p.opts.WindowMode)

	res := &Result{Name: name, Model: &efg.Model{}}
	warn := func(stage, path string, err error) {
		se := &StageError{Stage: stage, Path: path, Err: err}
		res.Warnings = append(res.Warnings, se)
		p.opts.Metrics.StageFailed(name, stage)
		logger.Error("Stage failed, continuing with partial results.", "stage", stage, "path", path, "error", err)
	}

	if p.opts.WindowMode == WindowModeSingle {
		extract.SingleWindow(res.Model)
	} else if err := extract.Windows(ctx, ui, p.lex, res.Model); err != nil {
		warn(StageWindows, ui.Name(), err)
	}
	if err := ctx.Err(); err != nil {
		return res, err
	}

	for _, win := range res.Model.Windows {
		if err := extract.Widgets(ctx, ui, p.lex, win); err != nil {
			warn(StageWidgets, ui.Name(), err)
		}
		if err := ctx.Err(); err != nil {
			return res, err
		}
	}

	stats, err := classify.Classify(ctx, res.Model, src, p.lex)
	res.Stats = stats
	if err != nil {
		warn(StageClassify, src.Name(), err)
	}
	if err := ctx.Err(); err != nil {
		return res, err
	}

	efg.Connect(ctx, res.Model)
	res.Document = dot.Render(res.Model)
	res.Duration = time.Since(start)

	p.opts.Metrics.ObserveModel(name, res.Model)
	p.opts.Metrics.ObserveTerminals(name, stats.Terminals)
	p.opts.Metrics.ObserveDuration(name, res.Duration)

	logger.Info("Analysis finished.",
		"windows", len(res.Model.Windows),
		"widgets", res.Model.WidgetCount(),
		"edges", res.Model.EdgeCount(),
		"terminals", stats.Terminals,
		"warnings", len(res.Warnings),
		"duration", res.Duration,
	)
	return res, nil
}
