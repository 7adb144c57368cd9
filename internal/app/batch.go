package app

import (
	"context"
	"fmt"

	"github.com/vk/efgscan/internal/ctxlog"
	"github.com/vk/efgscan/internal/project"
	"github.com/vk/efgscan/internal/render"
	"github.com/vk/efgscan/internal/report"
	"golang.org/x/sync/errgroup"
)

// RunBatch runs every analysis of the project file with at most
// Config.Workers in flight. Each analysis is an independent pipeline. The
// first hard error cancels the remaining analyses; the report lists the
// analyses in project order.
func (a *App) RunBatch(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	proj, err := project.Load(ctx, a.config.ProjectPath)
	if err != nil {
		return err
	}
	lexPath := a.config.LexiconPath
	if lexPath == "" {
		lexPath = proj.Lexicon
	}

	jobs := make([]job, 0, len(proj.Analyses))
	for _, an := range proj.Analyses {
		renderName := an.Render
		if renderName == "" {
			renderName = a.config.RenderFormat
		}
		f, err := render.ParseFormat(renderName)
		if err != nil {
			return fmt.Errorf("analysis %s: %w", an.Name, err)
		}
		jobs = append(jobs, job{
			name:       an.Name,
			ui:         an.UI,
			source:     an.Source,
			output:     an.Output,
			toolkit:    proj.ToolkitFor(an, a.config.Toolkit),
			lexicon:    lexPath,
			windowMode: proj.WindowModeFor(an, a.config.WindowMode),
			render:     f,
		})
	}
	logger.Info("Starting batch.", "project", proj.Path, "analyses", len(jobs), "workers", a.config.Workers)

	summaries := make([]report.Summary, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.config.Workers)
	for i, j := range jobs {
		g.Go(func() error {
			s, err := a.analyze(gctx, j)
			if err != nil {
				return err
			}
			summaries[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("batch failed: %w", err)
	}

	logger.Info("Batch finished.", "analyses", len(jobs))
	return a.writeReport(summaries...)
}
