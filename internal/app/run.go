package app

import (
	"context"
	"fmt"

	"github.com/vk/efgscan/internal/ctxlog"
	"github.com/vk/efgscan/internal/lexicon"
	"github.com/vk/efgscan/internal/pipeline"
	"github.com/vk/efgscan/internal/render"
	"github.com/vk/efgscan/internal/report"
	"github.com/vk/efgscan/internal/sink"
	"github.com/vk/efgscan/internal/source"
)

// job is one file pair with its resolved settings.
type job struct {
	name       string
	ui         string
	source     string
	output     string
	toolkit    string
	lexicon    string
	windowMode string
	render     render.Format
}

// RunScan analyses the single file pair named in the config.
func (a *App) RunScan(ctx context.Context) error {
	renderFmt, err := render.ParseFormat(a.config.RenderFormat)
	if err != nil {
		return err
	}
	summary, err := a.analyze(ctx, job{
		name:       a.config.UIPath,
		ui:         a.config.UIPath,
		source:     a.config.SourcePath,
		output:     a.config.OutputPath,
		toolkit:    a.config.Toolkit,
		lexicon:    a.config.LexiconPath,
		windowMode: a.config.WindowMode,
		render:     renderFmt,
	})
	if err != nil {
		return err
	}
	return a.writeReport(summary)
}

// analyze runs the pipeline for one job and delivers the document. Stage
// failures and rendering failures are warnings; lexicon, sink and context
// errors are returned.
func (a *App) analyze(ctx context.Context, j job) (report.Summary, error) {
	logger := ctxlog.FromContext(ctx).With("analysis", j.name)

	lex, err := lexicon.Load(ctx, lexicon.Dialect(j.toolkit), j.lexicon)
	if err != nil {
		return report.Summary{}, fmt.Errorf("failed to load lexicon: %w", err)
	}
	p, err := pipeline.New(lex, pipeline.Options{
		Name:       j.name,
		WindowMode: pipeline.WindowMode(j.windowMode),
		Metrics:    a.metrics,
	})
	if err != nil {
		return report.Summary{}, err
	}

	res, err := p.Run(ctx, source.File{Path: j.ui}, source.File{Path: j.source})
	if err != nil {
		return report.Summary{}, fmt.Errorf("analysis %s: %w", j.name, err)
	}

	out, err := sink.Open(j.output, a.outW)
	if err != nil {
		return report.Summary{}, err
	}
	doc := []byte(res.Document)
	if err := out.Write(ctx, j.name, doc); err != nil {
		return report.Summary{}, fmt.Errorf("failed to write output %s: %w", out, err)
	}
	logger.Info("Document written.", "output", out.String(), "bytes", len(doc))

	warnings := make([]error, 0, len(res.Warnings)+1)
	for _, w := range res.Warnings {
		warnings = append(warnings, w)
	}
	if err := a.renderImage(ctx, j, out, doc); err != nil {
		logger.Error("Rendering failed.", "error", err)
		warnings = append(warnings, err)
	}
	return report.Build(j.name, res.Model, res.Stats, warnings), nil
}

// renderImage produces the image next to a file output. Other sinks have no
// natural location for the image, so rendering is skipped for them.
func (a *App) renderImage(ctx context.Context, j job, out sink.Sink, doc []byte) error {
	r := render.Renderer{Binary: a.config.DotBinary, Format: j.render}
	if !r.Enabled() {
		return nil
	}
	file, ok := out.(*sink.File)
	if !ok {
		ctxlog.FromContext(ctx).Warn("Rendering needs a file output, skipping.", "output", out.String())
		return nil
	}
	return r.Render(ctx, doc, render.OutputPath(file.Path, j.render))
}

func (a *App) writeReport(summaries ...report.Summary) error {
	format, err := report.ParseFormat(a.config.ReportFormat)
	if err != nil {
		return err
	}
	if err := report.Write(a.outW, format, summaries...); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
