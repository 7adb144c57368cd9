package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/efgscan/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

const usageHeader = `
efgscan - extracts event-flow graphs from GUI dialogs.

Usage:
  efgscan [scan] [options] UI_FILE SOURCE_FILE
  efgscan batch [options] PROJECT_FILE
  efgscan lexicon [options]

Commands:
  scan     Analyse one UI definition and its implementation source (default).
  batch    Run every analysis of an HCL project file.
  lexicon  Print the effective toolkit token tables as HCL.

Options:
`

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")

	command := app.CommandScan
	if len(args) > 0 {
		switch args[0] {
		case app.CommandScan, app.CommandBatch, app.CommandLexicon:
			command, args = args[0], args[1:]
		}
	}

	flagSet := flag.NewFlagSet("efgscan "+command, flag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.Usage = func() {
		fmt.Fprint(output, usageHeader)
		flagSet.PrintDefaults()
	}

	var (
		uiFlag, sourceFlag, outputFlag, windowModeFlag, renderFlag, dotFlag string
		workersFlag                                                         int
	)
	toolkitFlag := flagSet.String("toolkit", "qt", "Toolkit dialect of the inputs. Options: 'qt' or 'gtk'.")
	lexiconFlag := flagSet.String("lexicon", "", "Optional HCL file overriding the built-in token tables.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	var reportFlag, metricsFlag *string
	if command != app.CommandLexicon {
		flagSet.StringVar(&windowModeFlag, "window-mode", "scan", "Window discovery. Options: 'scan' or 'single'.")
		flagSet.StringVar(&renderFlag, "render", "none", "Also render the graph with Graphviz. Options: 'none', 'pdf', 'png', 'svg'.")
		flagSet.StringVar(&dotFlag, "dot-binary", "dot", "Graphviz binary used for -render.")
		reportFlag = flagSet.String("report", "none", "Print a summary to stdout. Options: 'none', 'text', 'json', 'yaml'.")
		metricsFlag = flagSet.String("metrics-file", "", "Write prometheus metrics in textfile format to this path.")
	}
	if command == app.CommandScan {
		flagSet.StringVar(&uiFlag, "ui", "", "Path to the UI definition file.")
		flagSet.StringVar(&sourceFlag, "source", "", "Path to the implementation source file.")
		flagSet.StringVar(&outputFlag, "output", "efg.dot", "Output: file path, '-' for stdout, http(s) upload URL or socketio(s):// URL.")
		flagSet.StringVar(&outputFlag, "o", "efg.dot", "Output (shorthand).")
	}
	if command == app.CommandBatch {
		flagSet.IntVar(&workersFlag, "workers", 4, "Number of analyses run concurrently.")
	}

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.", "command", command)

	cfg := app.Config{
		Command:      command,
		Toolkit:      *toolkitFlag,
		LexiconPath:  *lexiconFlag,
		WindowMode:   windowModeFlag,
		RenderFormat: renderFlag,
		DotBinary:    dotFlag,
		LogFormat:    strings.ToLower(*logFormatFlag),
		LogLevel:     strings.ToLower(*logLevelFlag),
		Workers:      workersFlag,
	}
	if reportFlag != nil {
		cfg.ReportFormat = *reportFlag
		cfg.MetricsPath = *metricsFlag
	}

	positional := flagSet.Args()
	switch command {
	case app.CommandScan:
		cfg.UIPath, positional = firstOr(uiFlag, positional)
		cfg.SourcePath, positional = firstOr(sourceFlag, positional)
		cfg.OutputPath = outputFlag
		if cfg.UIPath == "" && cfg.SourcePath == "" {
			slog.Debug("No inputs provided, printing usage and exiting.")
			flagSet.Usage()
			return nil, true, nil
		}
	case app.CommandBatch:
		cfg.ProjectPath, positional = firstOr("", positional)
		if cfg.ProjectPath == "" {
			flagSet.Usage()
			return nil, true, nil
		}
	}
	if len(positional) > 0 {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("unexpected arguments: %s", strings.Join(positional, " "))}
	}

	config, err := app.NewConfig(cfg)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}

// firstOr returns flagValue when set, otherwise pops the next positional
// argument.
func firstOr(flagValue string, positional []string) (string, []string) {
	if flagValue != "" || len(positional) == 0 {
		return flagValue, positional
	}
	return positional[0], positional[1:]
}
