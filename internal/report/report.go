// Package report renders a readable summary of analysed models: per window,
// each widget with its kinds, bound handler and outgoing edges.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/vk/efgscan/internal/classify"
	"github.com/vk/efgscan/internal/efg"
	"gopkg.in/yaml.v3"
)

// Format selects the report encoding.
type Format string

const (
	FormatNone Format = "none"
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Summary describes one analysis.
type Summary struct {
	Analysis string          `json:"analysis" yaml:"analysis"`
	Windows  []WindowSummary `json:"windows" yaml:"windows"`
	Totals   Totals          `json:"totals" yaml:"totals"`
	Warnings []string        `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

type WindowSummary struct {
	Name    string          `json:"name" yaml:"name"`
	Line    int             `json:"line" yaml:"line"`
	Widgets []WidgetSummary `json:"widgets" yaml:"widgets"`
}

type WidgetSummary struct {
	Name     string   `json:"name" yaml:"name"`
	Kind     string   `json:"kind" yaml:"kind"`
	NodeKind string   `json:"node_kind" yaml:"node_kind"`
	Handler  string   `json:"handler,omitempty" yaml:"handler,omitempty"`
	Targets  []string `json:"targets,omitempty" yaml:"targets,omitempty"`
}

type Totals struct {
	Windows         int `json:"windows" yaml:"windows"`
	Widgets         int `json:"widgets" yaml:"widgets"`
	Edges           int `json:"edges" yaml:"edges"`
	Bound           int `json:"bound_handlers" yaml:"bound_handlers"`
	NameTerminals   int `json:"name_terminals" yaml:"name_terminals"`
	RejectTerminals int `json:"reject_terminals" yaml:"reject_terminals"`
}

// Build summarises a model.
func Build(analysis string, m *efg.Model, stats classify.Stats, warnings []error) Summary {
	s := Summary{
		Analysis: analysis,
		Totals: Totals{
			Windows:         len(m.Windows),
			Widgets:         m.WidgetCount(),
			Edges:           m.EdgeCount(),
			Bound:           stats.Bound,
			NameTerminals:   stats.NameTerminals,
			RejectTerminals: stats.Terminals,
		},
	}
	for _, w := range warnings {
		s.Warnings = append(s.Warnings, w.Error())
	}
	for _, win := range m.Windows {
		ws := WindowSummary{Name: win.Name, Line: win.Line}
		for _, w := range win.Widgets {
			entry := WidgetSummary{
				Name:     w.Name,
				Kind:     w.Kind.String(),
				NodeKind: w.NodeKind.String(),
				Handler:  w.Handler,
			}
			for _, to := range w.Edges {
				entry.Targets = append(entry.Targets, win.Widgets[to].Name)
			}
			ws.Widgets = append(ws.Widgets, entry)
		}
		s.Windows = append(s.Windows, ws)
	}
	return s
}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatNone, FormatText, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatNone, nil
	default:
		return "", fmt.Errorf("unknown report format %q", s)
	}
}

// Write encodes the summaries in the given format. FormatNone writes nothing.
func Write(w io.Writer, format Format, summaries ...Summary) error {
	switch format {
	case FormatNone, "":
		return nil
	case FormatText:
		return writeText(w, summaries)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(summaries)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(summaries); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

func writeText(w io.Writer, summaries []Summary) error {
	var b strings.Builder
	for _, s := range summaries {
		fmt.Fprintf(&b, "analysis %s\n", s.Analysis)
		for _, win := range s.Windows {
			fmt.Fprintf(&b, "EFG %q (line %d), %d widgets\n", win.Name, win.Line, len(win.Widgets))
			for _, wd := range win.Widgets {
				fmt.Fprintf(&b, "  %s [%s, %s]", wd.Name, wd.Kind, wd.NodeKind)
				if wd.Handler != "" {
					fmt.Fprintf(&b, " handler=%s", wd.Handler)
				}
				b.WriteString("\n")
				if len(wd.Targets) == 0 {
					b.WriteString("    -> nothing\n")
				}
				for _, t := range wd.Targets {
					fmt.Fprintf(&b, "    -> %s\n", t)
				}
			}
		}
		t := s.Totals
		fmt.Fprintf(&b, "totals: windows=%d widgets=%d edges=%d handlers=%d terminals(name)=%d terminals(reject)=%d\n",
			t.Windows, t.Widgets, t.Edges, t.Bound, t.NameTerminals, t.RejectTerminals)
		for _, warn := range s.Warnings {
			fmt.Fprintf(&b, "warning: %s\n", warn)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
