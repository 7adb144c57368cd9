// Package hclconf holds the HCL plumbing shared by the lexicon and project
// loaders: parsing with readable diagnostics and the evaluation context that
// exposes environment variables and a few string functions.
package hclconf

import (
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// EvalContext builds the context used when decoding configuration files.
// Variables: env (object of environment variables). Functions: lower, upper,
// format, join.
func EvalContext(environ []string) *hcl.EvalContext {
	env := make(map[string]cty.Value, len(environ))
	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			continue
		}
		env[name] = cty.StringVal(value)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(env),
		},
		Functions: map[string]function.Function{
			"lower":  stdlib.LowerFunc,
			"upper":  stdlib.UpperFunc,
			"format": stdlib.FormatFunc,
			"join":   stdlib.JoinFunc,
		},
	}
}

// DefaultEvalContext is EvalContext over the process environment.
func DefaultEvalContext() *hcl.EvalContext {
	return EvalContext(os.Environ())
}

// DecodeFile parses the HCL file at path and decodes its body into target.
func DecodeFile(path string, evalCtx *hcl.EvalContext, target any) error {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}
	if diags := gohcl.DecodeBody(file.Body, evalCtx, target); diags.HasErrors() {
		return fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
	}
	return nil
}

// DecodeBytes is DecodeFile for in-memory content; filename is only used in
// diagnostics.
func DecodeBytes(src []byte, filename string, evalCtx *hcl.EvalContext, target any) error {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}
	if diags := gohcl.DecodeBody(file.Body, evalCtx, target); diags.HasErrors() {
		return fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}
	return nil
}

// IsExprDefined reports whether an optional expression was actually written
// in the source. gohcl fills omitted optional expressions with a zero-width
// placeholder, so a nil check is not enough.
func IsExprDefined(expr hcl.Expression) bool {
	if expr == nil {
		return false
	}
	rng := expr.Range()
	return rng.End.Byte > rng.Start.Byte
}
