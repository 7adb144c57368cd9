package lexicon

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/efgscan/internal/ctxlog"
	"github.com/vk/efgscan/internal/efg"
	"github.com/vk/efgscan/internal/hclconf"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// fileRoot is the top-level shape of a lexicon override file.
type fileRoot struct {
	Dialects []*dialectBlock `hcl:"dialect,block"`
	Remain   hcl.Body        `hcl:",remain"`
}

type dialectBlock struct {
	Name    string         `hcl:"name,label"`
	Window  string         `hcl:"window,optional"`
	Comment string         `hcl:"comment,optional"`
	Connect string         `hcl:"connect,optional"`
	Tokens  hcl.Expression `hcl:"tokens,optional"`
}

// Load returns the lexicon for dialect d. When path is non-empty the file is
// read as HCL and the matching `dialect "<d>"` block is laid over the built-in
// table; a dialect that has no built-in table must define every field.
func Load(ctx context.Context, d Dialect, path string) (*Lexicon, error) {
	logger := ctxlog.FromContext(ctx)
	d = Dialect(strings.ToLower(string(d)))

	lex, err := Builtin(d)
	if path == "" {
		return lex, err
	}
	if lex == nil {
		lex = &Lexicon{Dialect: d}
	}

	var root fileRoot
	evalCtx := hclconf.DefaultEvalContext()
	if err := hclconf.DecodeFile(path, evalCtx, &root); err != nil {
		return nil, err
	}

	found := false
	for _, block := range root.Dialects {
		if Dialect(strings.ToLower(block.Name)) != d {
			continue
		}
		if found {
			return nil, fmt.Errorf("%s: duplicate dialect block %q", path, block.Name)
		}
		found = true
		if err := apply(lex, block, evalCtx); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	if !found {
		logger.Warn("Lexicon file has no block for the selected dialect, using built-in tokens.", "path", path, "dialect", d)
	}

	if err := lex.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logger.Debug("Lexicon loaded.", "path", path, "dialect", d, "tokens", len(lex.Entries))
	return lex, nil
}

func apply(lex *Lexicon, block *dialectBlock, evalCtx *hcl.EvalContext) error {
	if block.Window != "" {
		lex.WindowMarker = strings.ToLower(block.Window)
	}
	if block.Comment != "" {
		lex.CommentMarker = strings.ToLower(block.Comment)
	}
	if block.Connect != "" {
		lex.ConnectMarker = strings.ToLower(block.Connect)
	}
	if !hclconf.IsExprDefined(block.Tokens) {
		return nil
	}

	val, diags := block.Tokens.Value(evalCtx)
	if diags.HasErrors() {
		return fmt.Errorf("dialect %q: tokens: %w", block.Name, diags)
	}
	if val.IsNull() {
		return nil
	}
	val, err := convert.Convert(val, cty.Map(cty.String))
	if err != nil {
		return fmt.Errorf("dialect %q: tokens must be a map of strings: %w", block.Name, err)
	}
	var tokens map[string]string
	if err := gocty.FromCtyValue(val, &tokens); err != nil {
		return fmt.Errorf("dialect %q: tokens: %w", block.Name, err)
	}

	overrides := make(map[efg.Kind]string, len(tokens))
	for name, token := range tokens {
		k, err := efg.ParseKind(strings.ToLower(name))
		if err != nil {
			return fmt.Errorf("dialect %q: %w", block.Name, err)
		}
		if k.IsValidity() || k == efg.KindFiller {
			return fmt.Errorf("dialect %q: kind %s is synthetic and has no token", block.Name, k)
		}
		overrides[k] = strings.ToLower(token)
	}

	entries := make([]Entry, 0, len(ScanOrder))
	for _, k := range ScanOrder {
		token, ok := overrides[k]
		if !ok {
			token, _ = lex.Token(k)
		}
		entries = append(entries, Entry{Kind: k, Token: token})
	}
	lex.Entries = entries
	return nil
}
