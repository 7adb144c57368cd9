package dot

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/efgscan/internal/efg"
)

func TestRender_Empty(t *testing.T) {
	t.Parallel()
	require.Equal(t, "strict digraph G {\n}", Render(&efg.Model{}))
}

func TestRender_NodesThenEdgesAcrossWindows(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	first := efg.NewWindow("a", 1)
	first.Add("run", efg.KindButton)
	first.Add("stop", efg.KindButton)
	first.Link(0, 1)
	first.Link(0, 1)

	second := efg.NewWindow("b", 9)
	second.Add("run", efg.KindButton)
	second.Link(0, 0)

	m := &efg.Model{Windows: []*efg.Window{first, second}}

	// --- Act ---
	got := Render(m)

	// --- Assert ---
	want := "strict digraph G {\n" +
		"\trun;\n" +
		"\tstop;\n" +
		"\trun;\n" +
		"\trun -> stop;\n" +
		"\trun -> stop;\n" +
		"\trun -> run;\n" +
		"}"
	require.Equal(t, want, got)
}

type brokenWriter struct{ calls int }

func (b *brokenWriter) Write(p []byte) (int, error) {
	b.calls++
	return 0, errors.New("disk full")
}

func TestWrite_StopsAtFirstError(t *testing.T) {
	t.Parallel()

	win := efg.NewWindow("", 0)
	win.Add("a", efg.KindButton)
	w := &brokenWriter{}

	err := Write(w, &efg.Model{Windows: []*efg.Window{win}})

	require.EqualError(t, err, "disk full")
	require.Equal(t, 1, w.calls)
}
