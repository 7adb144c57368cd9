package app

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Commands understood by App.Run.
const (
	CommandScan    = "scan"
	CommandBatch   = "batch"
	CommandLexicon = "lexicon"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Command string `validate:"oneof=scan batch lexicon"`

	UIPath     string `validate:"required_if=Command scan"`
	SourcePath string `validate:"required_if=Command scan"`
	// OutputPath is a file path, "-", an http(s) upload URL or a
	// socketio(s):// publish target.
	OutputPath string `validate:"required_if=Command scan"`

	Toolkit     string `validate:"oneof=qt gtk"`
	LexiconPath string
	WindowMode  string `validate:"oneof=scan single"`

	ReportFormat string `validate:"oneof=none text json yaml"`
	RenderFormat string `validate:"oneof=none pdf png svg"`
	DotBinary    string
	MetricsPath  string

	LogFormat string `validate:"oneof=text json"`
	LogLevel  string `validate:"oneof=debug info warn error"`

	ProjectPath string `validate:"required_if=Command batch"`
	Workers     int    `validate:"gte=1,lte=256"`
}

var validate = validator.New()

// NewConfig fills defaults, normalises case and validates cfg.
func NewConfig(cfg Config) (*Config, error) {
	cfg.Command = orDefault(cfg.Command, CommandScan)
	cfg.Toolkit = orDefault(cfg.Toolkit, "qt")
	cfg.WindowMode = orDefault(cfg.WindowMode, "scan")
	cfg.ReportFormat = orDefault(cfg.ReportFormat, "none")
	cfg.RenderFormat = orDefault(cfg.RenderFormat, "none")
	cfg.DotBinary = orDefault(cfg.DotBinary, "dot")
	cfg.LogFormat = orDefault(cfg.LogFormat, "text")
	cfg.LogLevel = orDefault(cfg.LogLevel, "info")
	if cfg.Workers == 0 {
		cfg.Workers = 4
	}

	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func orDefault(v, def string) string {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "" {
		return def
	}
	return v
}
