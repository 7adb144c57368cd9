package app

import (
	"context"
	"fmt"

	"github.com/vk/efgscan/internal/lexicon"
)

// DumpLexicon writes every dialect's effective token table, with the
// configured override file applied, as HCL.
func (a *App) DumpLexicon(ctx context.Context) error {
	var lexicons []*lexicon.Lexicon
	for _, d := range lexicon.Dialects() {
		lex, err := lexicon.Load(ctx, d, a.config.LexiconPath)
		if err != nil {
			return fmt.Errorf("failed to load lexicon: %w", err)
		}
		lexicons = append(lexicons, lex)
	}
	return lexicon.Write(a.outW, lexicons...)
}
