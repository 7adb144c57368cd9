package lexicon

import (
	"io"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

// Write renders the given lexicons in the same HCL shape Load accepts, so the
// output can be used as a starting point for an override file.
func Write(w io.Writer, lexicons ...*Lexicon) error {
	f := hclwrite.NewEmptyFile()
	body := f.Body()
	for i, lex := range lexicons {
		if i > 0 {
			body.AppendNewline()
		}
		block := body.AppendNewBlock("dialect", []string{string(lex.Dialect)})
		b := block.Body()
		b.SetAttributeValue("window", cty.StringVal(lex.WindowMarker))
		b.SetAttributeValue("comment", cty.StringVal(lex.CommentMarker))
		b.SetAttributeValue("connect", cty.StringVal(lex.ConnectMarker))

		tokens := make(map[string]cty.Value, len(lex.Entries))
		for _, e := range lex.Entries {
			tokens[e.Kind.String()] = cty.StringVal(e.Token)
		}
		b.SetAttributeValue("tokens", cty.ObjectVal(tokens))
	}
	_, err := w.Write(f.Bytes())
	return err
}
