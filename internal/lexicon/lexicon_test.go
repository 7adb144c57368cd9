package lexicon

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"github.com/vk/efgscan/internal/efg"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lexicon.hcl")
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

func TestBuiltin_CoversScanOrder(t *testing.T) {
	t.Parallel()

	for _, d := range Dialects() {
		lex, err := Builtin(d)
		require.NoError(t, err)
		require.NoError(t, lex.Validate(), "dialect %s", d)
	}
}

func TestBuiltin_IsCopy(t *testing.T) {
	t.Parallel()

	a, err := Builtin(Qt)
	require.NoError(t, err)
	a.Entries[0].Token = "changed"

	b, err := Builtin(Qt)
	require.NoError(t, err)
	require.Equal(t, "qpushbutton", b.Entries[0].Token)
}

func TestBuiltin_UnknownDialect(t *testing.T) {
	t.Parallel()

	_, err := Builtin("motif")
	require.ErrorContains(t, err, "unknown toolkit dialect")
}

func TestToken(t *testing.T) {
	t.Parallel()

	lex, err := Builtin(GTK)
	require.NoError(t, err)

	tok, ok := lex.Token(efg.KindComboBox)
	require.True(t, ok)
	require.Equal(t, "gtk::combobox", tok)

	_, ok = lex.Token(efg.KindFiller)
	require.False(t, ok)
}

func TestLoad_OverridesSelectedDialect(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := writeFile(t, `
dialect "qt" {
  window = "<Widget class=\"QDialog\""
  tokens = {
    button   = "QAbstractButton"
    checkbox = "QCheckBoxEx"
  }
}

dialect "gtk" {
  connect = "signal_connect"
}
`)

	// --- Act ---
	lex, err := Load(context.Background(), Qt, path)

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, `<widget class="qdialog"`, lex.WindowMarker)
	require.Equal(t, "connect", lex.ConnectMarker)

	button, _ := lex.Token(efg.KindButton)
	require.Equal(t, "qabstractbutton", button)
	checkbox, _ := lex.Token(efg.KindCheckBox)
	require.Equal(t, "qcheckboxex", checkbox)
	slider, _ := lex.Token(efg.KindSlider)
	require.Equal(t, "qslider", slider)

	var kinds []efg.Kind
	for _, e := range lex.Entries {
		kinds = append(kinds, e.Kind)
	}
	if diff := cmp.Diff(ScanOrder, kinds); diff != "" {
		t.Errorf("entry order mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_RejectsSyntheticKind(t *testing.T) {
	t.Parallel()

	path := writeFile(t, `
dialect "qt" {
  tokens = { filler = "spacer" }
}
`)

	_, err := Load(context.Background(), Qt, path)
	require.ErrorContains(t, err, "synthetic")
}

func TestLoad_CustomDialectMustBeComplete(t *testing.T) {
	t.Parallel()

	path := writeFile(t, `
dialect "wx" {
  window = "wxdialog"
  tokens = { button = "wxbutton" }
}
`)

	_, err := Load(context.Background(), "wx", path)
	require.Error(t, err)
}

func TestWrite_RoundTripsThroughLoad(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	want, err := Builtin(GTK)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, want))
	path := writeFile(t, buf.String())

	// --- Act ---
	got, err := Load(context.Background(), GTK, path)

	// --- Assert ---
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("lexicon mismatch (-want +got):\n%s", diff)
	}
	require.Contains(t, buf.String(), `dialect "gtk"`)
}
