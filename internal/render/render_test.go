package render

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDot writes an executable shell script. Tests using it do not run in
// parallel to avoid ETXTBSY when another test forks mid-write.
func fakeDot(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake dot binary is a shell script")
	}
	path := filepath.Join(t.TempDir(), "dot")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755))
	return path
}

func TestRender_InvokesBinary(t *testing.T) {
	// Arrange
	bin := fakeDot(t, `echo "$@" > "$(dirname "$0")/args"; cat > "$3"`+"\n")
	out := filepath.Join(t.TempDir(), "efg.pdf")
	r := Renderer{Binary: bin, Format: FormatPDF}

	// Act
	err := r.Render(context.Background(), []byte("strict digraph G {\n}"), out)

	// Assert
	require.NoError(t, err)
	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "strict digraph G {\n}", string(got))
	args, err := os.ReadFile(filepath.Join(filepath.Dir(bin), "args"))
	require.NoError(t, err)
	assert.Equal(t, "-Tpdf -o "+out+"\n", string(args))
}

func TestRender_ReportsStderr(t *testing.T) {
	bin := fakeDot(t, "echo 'syntax error in line 1' >&2\nexit 1\n")
	r := Renderer{Binary: bin, Format: FormatSVG}

	err := r.Render(context.Background(), []byte("x"), filepath.Join(t.TempDir(), "o.svg"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "syntax error in line 1")
}

func TestRender_DisabledIsNoop(t *testing.T) {
	t.Parallel()

	r := Renderer{Binary: "/does/not/exist", Format: FormatNone}
	require.NoError(t, r.Render(context.Background(), nil, "unused"))
	assert.False(t, r.Enabled())
}

func TestRender_MissingBinary(t *testing.T) {
	t.Parallel()

	r := Renderer{Binary: filepath.Join(t.TempDir(), "missing"), Format: FormatPNG}
	require.Error(t, r.Render(context.Background(), nil, filepath.Join(t.TempDir(), "o.png")))
}

func TestOutputPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "out/efg.pdf", OutputPath("out/efg.dot", FormatPDF))
	assert.Equal(t, "graph.svg", OutputPath("graph", FormatSVG))
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	f, err := ParseFormat("PNG")
	require.NoError(t, err)
	assert.Equal(t, FormatPNG, f)

	f, err = ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatNone, f)

	_, err = ParseFormat("jpeg")
	require.Error(t, err)
}
