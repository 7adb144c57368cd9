package project

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/efgscan/internal/testutil"
)

func TestLoad_ResolvesPaths(t *testing.T) {
	t.Setenv("EFG_OUT_DIR", "dots")

	// Arrange
	dir := t.TempDir()
	path := filepath.Join(dir, "cases.hcl")
	src := `
toolkit = "QT"
lexicon = "lex.hcl"

analysis "case1" {
  ui     = "cases/1/main.ui"
  source = "cases/1/main.cpp"
  output = "${env.EFG_OUT_DIR}/1.dot"
  render = "pdf"
}

analysis "case2" {
  ui          = "/abs/main.ui"
  source      = "cases/2/main.cpp"
  output      = "socketio://localhost:3000/efg"
  toolkit     = "gtk"
  window_mode = "single"
}

analysis "case3" {
  ui     = "cases/3/main.ui"
  source = "cases/3/main.cpp"
  output = "-"
}
`
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	// Act
	p, err := Load(context.Background(), path)

	// Assert
	require.NoError(t, err)
	want := &Project{
		Path:    path,
		Toolkit: "qt",
		Lexicon: filepath.Join(dir, "lex.hcl"),
		Analyses: []*Analysis{
			{
				Name:   "case1",
				UI:     filepath.Join(dir, "cases/1/main.ui"),
				Source: filepath.Join(dir, "cases/1/main.cpp"),
				Output: filepath.Join(dir, "dots/1.dot"),
				Render: "pdf",
			},
			{
				Name:       "case2",
				UI:         "/abs/main.ui",
				Source:     filepath.Join(dir, "cases/2/main.cpp"),
				Output:     "socketio://localhost:3000/efg",
				Toolkit:    "gtk",
				WindowMode: "single",
			},
			{
				Name:   "case3",
				UI:     filepath.Join(dir, "cases/3/main.ui"),
				Source: filepath.Join(dir, "cases/3/main.cpp"),
				Output: "-",
			},
		},
	}
	if diff := cmp.Diff(want, p); diff != "" {
		t.Errorf("project mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, "qt", p.ToolkitFor(p.Analyses[0], "gtk"))
	assert.Equal(t, "gtk", p.ToolkitFor(p.Analyses[1], "qt"))
	assert.Equal(t, "scan", p.WindowModeFor(p.Analyses[0], "scan"))
	assert.Equal(t, "single", p.WindowModeFor(p.Analyses[1], "scan"))
}

func TestLoadBytes_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		src     string
		wantErr string
	}{
		{
			name:    "no analyses",
			src:     `toolkit = "qt"`,
			wantErr: "invalid project",
		},
		{
			name: "duplicate name",
			src: `
analysis "a" {
  ui = "a.ui"
  source = "a.cpp"
  output = "a.dot"
}
analysis "a" {
  ui = "b.ui"
  source = "b.cpp"
  output = "b.dot"
}`,
			wantErr: `duplicate analysis "a"`,
		},
		{
			name: "unknown toolkit",
			src: `
analysis "a" {
  ui = "a.ui"
  source = "a.cpp"
  output = "a.dot"
  toolkit = "wx"
}`,
			wantErr: "Toolkit",
		},
		{
			name: "missing source",
			src: `
analysis "a" {
  ui = "a.ui"
  output = "a.dot"
}`,
			wantErr: "failed to decode HCL file",
		},
		{
			name:    "syntax error",
			src:     `analysis "a" {`,
			wantErr: "failed to parse HCL file",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := LoadBytes([]byte(tc.src), t.TempDir())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "nope.hcl"))
	require.Error(t, err)
}

func TestLoad_DirectoryMergesFiles(t *testing.T) {
	t.Parallel()

	// Arrange
	root := testutil.WriteFiles(t, map[string]string{
		"a.hcl": testutil.Unindent(`
			toolkit = "gtk"
			analysis "one" {
			  ui     = "one.ui"
			  source = "one.cpp"
			  output = "one.dot"
			}
		`),
		"sub/b.hcl": testutil.Unindent(`
			toolkit = "gtk"
			analysis "two" {
			  ui     = "two.ui"
			  source = "two.cpp"
			  output = "two.dot"
			}
		`),
		"notes.txt": "ignored",
	})

	// Act
	p, err := Load(context.Background(), root)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "gtk", p.Toolkit)
	require.Len(t, p.Analyses, 2)
	assert.Equal(t, "one", p.Analyses[0].Name)
	assert.Equal(t, filepath.Join(root, "one.ui"), p.Analyses[0].UI)
	assert.Equal(t, "two", p.Analyses[1].Name)
	assert.Equal(t, filepath.Join(root, "sub", "two.ui"), p.Analyses[1].UI)
}

func TestLoad_DirectoryConflicts(t *testing.T) {
	t.Parallel()

	analysis := func(name string) string {
		return `analysis "` + name + `" {
  ui     = "x.ui"
  source = "x.cpp"
  output = "x.dot"
}
`
	}

	conflict := testutil.WriteFiles(t, map[string]string{
		"a.hcl": "toolkit = \"qt\"\n" + analysis("one"),
		"b.hcl": "toolkit = \"gtk\"\n" + analysis("two"),
	})
	_, err := Load(context.Background(), conflict)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `toolkit "gtk" conflicts with "qt"`)

	dup := testutil.WriteFiles(t, map[string]string{
		"a.hcl": analysis("same"),
		"b.hcl": analysis("same"),
	})
	_, err = Load(context.Background(), dup)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate analysis "same"`)

	_, err = Load(context.Background(), t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no .hcl project files")
}
