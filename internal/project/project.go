// Package project loads HCL files that describe several analyses to run as
// one batch.
package project

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/vk/efgscan/internal/ctxlog"
	"github.com/vk/efgscan/internal/fsutil"
	"github.com/vk/efgscan/internal/hclconf"
)

// Project is a decoded project file. Relative paths are already resolved
// against the directory holding the file.
type Project struct {
	Path       string
	Toolkit    string `validate:"omitempty,oneof=qt gtk"`
	Lexicon    string
	WindowMode string      `validate:"omitempty,oneof=scan single"`
	Analyses   []*Analysis `validate:"min=1,dive"`
}

// Analysis is one UI definition / implementation source pair.
type Analysis struct {
	Name       string `validate:"required"`
	UI         string `validate:"required"`
	Source     string `validate:"required"`
	Output     string `validate:"required"`
	Toolkit    string `validate:"omitempty,oneof=qt gtk"`
	Render     string `validate:"omitempty,oneof=none pdf png svg"`
	WindowMode string `validate:"omitempty,oneof=scan single"`
}

type fileRoot struct {
	Toolkit    string           `hcl:"toolkit,optional"`
	Lexicon    string           `hcl:"lexicon,optional"`
	WindowMode string           `hcl:"window_mode,optional"`
	Analyses   []*analysisBlock `hcl:"analysis,block"`
}

type analysisBlock struct {
	Name       string `hcl:"name,label"`
	UI         string `hcl:"ui"`
	Source     string `hcl:"source"`
	Output     string `hcl:"output"`
	Toolkit    string `hcl:"toolkit,optional"`
	Render     string `hcl:"render,optional"`
	WindowMode string `hcl:"window_mode,optional"`
}

var structValidator = validator.New()

// Load reads and validates a project. path is a single HCL file or a
// directory whose .hcl files are merged in lexical order. Relative paths
// resolve against the directory of the file that declares them.
func Load(ctx context.Context, path string) (*Project, error) {
	files, err := fsutil.FindFilesByExtension(path, ".hcl")
	if err != nil {
		return nil, fmt.Errorf("failed to find project files in %s: %w", path, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl project files found in %s", path)
	}

	p := &Project{Path: path}
	seen := make(map[string]string)
	evalCtx := hclconf.DefaultEvalContext()
	for _, file := range files {
		var root fileRoot
		if err := hclconf.DecodeFile(file, evalCtx, &root); err != nil {
			return nil, err
		}
		if err := p.merge(file, &root, seen); err != nil {
			return nil, err
		}
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	ctxlog.FromContext(ctx).Debug("Project loaded.", "path", path, "files", len(files), "analyses", len(p.Analyses))
	return p, nil
}

// LoadBytes is Load for in-memory content; dir is the base for relative
// paths.
func LoadBytes(src []byte, dir string) (*Project, error) {
	name := filepath.Join(dir, "project.hcl")
	var root fileRoot
	if err := hclconf.DecodeBytes(src, name, hclconf.DefaultEvalContext(), &root); err != nil {
		return nil, err
	}
	p := &Project{Path: name}
	if err := p.merge(name, &root, map[string]string{}); err != nil {
		return nil, err
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// merge adds the settings and analyses of one decoded file. Top-level
// settings may be repeated across files only with the same value.
func (p *Project) merge(path string, root *fileRoot, seen map[string]string) error {
	dir := filepath.Dir(path)
	settings := []struct {
		name string
		dst  *string
		val  string
	}{
		{"toolkit", &p.Toolkit, strings.ToLower(root.Toolkit)},
		{"lexicon", &p.Lexicon, resolve(dir, root.Lexicon)},
		{"window_mode", &p.WindowMode, strings.ToLower(root.WindowMode)},
	}
	for _, s := range settings {
		if s.val == "" {
			continue
		}
		if *s.dst != "" && *s.dst != s.val {
			return fmt.Errorf("%s: %s %q conflicts with %q set earlier", path, s.name, s.val, *s.dst)
		}
		*s.dst = s.val
	}

	for _, b := range root.Analyses {
		if prev, ok := seen[b.Name]; ok {
			return fmt.Errorf("%s: duplicate analysis %q (first declared in %s)", path, b.Name, prev)
		}
		seen[b.Name] = path
		p.Analyses = append(p.Analyses, &Analysis{
			Name:       b.Name,
			UI:         resolve(dir, b.UI),
			Source:     resolve(dir, b.Source),
			Output:     resolve(dir, b.Output),
			Toolkit:    strings.ToLower(b.Toolkit),
			Render:     strings.ToLower(b.Render),
			WindowMode: strings.ToLower(b.WindowMode),
		})
	}
	return nil
}

func (p *Project) validate() error {
	if err := structValidator.Struct(p); err != nil {
		return fmt.Errorf("%s: invalid project: %w", p.Path, err)
	}
	return nil
}

// ToolkitFor returns the analysis toolkit, falling back to the project's and
// then to def.
func (p *Project) ToolkitFor(a *Analysis, def string) string {
	switch {
	case a.Toolkit != "":
		return a.Toolkit
	case p.Toolkit != "":
		return p.Toolkit
	default:
		return def
	}
}

// WindowModeFor mirrors ToolkitFor for the window mode.
func (p *Project) WindowModeFor(a *Analysis, def string) string {
	switch {
	case a.WindowMode != "":
		return a.WindowMode
	case p.WindowMode != "":
		return p.WindowMode
	default:
		return def
	}
}

// resolve joins relative file paths onto dir. URLs and "-" are kept.
func resolve(dir, p string) string {
	if p == "" || p == "-" || filepath.IsAbs(p) {
		return p
	}
	if u, err := url.Parse(p); err == nil && u.Scheme != "" && u.Host != "" {
		return p
	}
	return filepath.Join(dir, p)
}
