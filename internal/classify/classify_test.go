package classify

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/efgscan/internal/efg"
	"github.com/vk/efgscan/internal/lexicon"
	"github.com/vk/efgscan/internal/source"
)

func qt(t *testing.T) *lexicon.Lexicon {
	t.Helper()
	lex, err := lexicon.Builtin(lexicon.Qt)
	require.NoError(t, err)
	return lex
}

const dialogCpp = `#include "dlg.h"

Dlg::Dlg(QWidget *parent) : QDialog(parent)
{
    connect(ui->name, SIGNAL(textChanged(QString)), this, SLOT(onNameChanged()));
    connect(ui->quit, SIGNAL(clicked()), this, SLOT(onQuit()));
    connect(ui->short);
    connect(ui->browse, SIGNAL(clicked()), this, SLOT(onBrowse()));
    // connect(ui->hidden, SIGNAL(clicked()), this, SLOT(onHidden()));
}

void Dlg::onNameChanged()
{
    if (ui->name->text().isEmpty()) {
        return;
    }
}

void Dlg::onQuit()
{
    if (dirty) {
        save();
    }
    reject();
}

void Dlg::onBrowse() {
    QString f = QFileDialog::getOpenFileName(this);
}
void Dlg::after() { reject(); }
`

func TestBind(t *testing.T) {
	t.Parallel()

	src := source.Text{Body: dialogCpp}
	lex := qt(t)

	testCases := []struct {
		widget string
		want   string
	}{
		{"name", "onnamechanged"},
		{"quit", "onquit"},
		{"short", ""},
		{"browse", "onbrowse"},
		{"hidden", ""},
		{"absent", ""},
	}
	for _, tc := range testCases {
		t.Run(tc.widget, func(t *testing.T) {
			t.Parallel()
			got, err := Bind(src, lex, tc.widget)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestBind_ShortLineDoesNotStopSearch(t *testing.T) {
	t.Parallel()

	src := source.Text{Body: "connect(ui->apply);\nconnect(ui->apply, signal(clicked()), this, slot(onApply()));\n"}

	got, err := Bind(src, qt(t), "apply")

	require.NoError(t, err)
	require.Equal(t, "onapply", got)
}

func TestCallsReject(t *testing.T) {
	t.Parallel()

	src := source.Text{Body: dialogCpp}

	testCases := []struct {
		handler string
		want    bool
	}{
		{"onquit", true},
		{"onnamechanged", false},
		{"onbrowse", false},
		{"missing", false},
	}
	for _, tc := range testCases {
		t.Run(tc.handler, func(t *testing.T) {
			t.Parallel()
			got, err := callsReject(src, "//", tc.handler)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCallsReject_CountsLinesNotBraces(t *testing.T) {
	t.Parallel()

	// The body opens two braces on one line but only counts one, so the inner
	// closing line already balances it and reject() is never reached.
	src := source.Text{Body: `void Dlg::onX()
{ if (a) {
    }
    reject();
}`}

	got, err := callsReject(src, "//", "onx")

	require.NoError(t, err)
	require.False(t, got)
}

func TestCallsReject_SameLineBodyIsBalanced(t *testing.T) {
	t.Parallel()

	src := source.Text{Body: "void Dlg::onY()\n{ reject(); }\n"}

	got, err := callsReject(src, "//", "ony")

	require.NoError(t, err)
	require.False(t, got)
}

func TestCallsReject_BraceOnDeclarationLine(t *testing.T) {
	t.Parallel()

	src := source.Text{Body: "void Dlg::onZ() {\n  if (x)\n    reject();\n}\n"}

	got, err := callsReject(src, "//", "onz")

	require.NoError(t, err)
	require.True(t, got)
}

func TestClassify_AssignsNodeKinds(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	win := efg.NewWindow("dlg", 1)
	win.AddWithValidity("name", efg.KindEditLine)
	win.Add("quit", efg.KindButton)
	win.Add("browse", efg.KindButton)
	win.Add("okbutton", efg.KindButton)
	win.Add("r_invalid_stub", efg.KindCheckBox)
	win.AddFiller()
	m := &efg.Model{Windows: []*efg.Window{win}}

	// --- Act ---
	stats, err := Classify(context.Background(), m, source.Text{Body: dialogCpp}, qt(t))

	// --- Assert ---
	require.NoError(t, err)
	got := map[string]efg.NodeKind{}
	handlers := map[string]string{}
	for _, w := range win.Widgets {
		got[w.Name] = w.NodeKind
		handlers[w.Name] = w.Handler
	}
	assert.Equal(t, efg.NodeMedium, got["name"])
	assert.Equal(t, efg.NodeValueResult, got["r_invalid_name"])
	assert.Equal(t, efg.NodeValueResult, got["r_valid_name"])
	assert.Equal(t, efg.NodeTerminal, got["quit"])
	assert.Equal(t, efg.NodeMedium, got["browse"])
	assert.Equal(t, efg.NodeTerminal, got["okbutton"])
	assert.Equal(t, efg.NodeMedium, got["r_invalid_stub"])
	assert.Equal(t, efg.NodeMedium, got[efg.FillerName])

	assert.Equal(t, "onnamechanged", handlers["name"])
	assert.Equal(t, "", handlers["r_invalid_name"])
	assert.Equal(t, "", handlers[efg.FillerName])

	assert.Equal(t, Stats{Bound: 3, NameTerminals: 1, Terminals: 1}, stats)
}

func TestClassify_NameRuleNeedsNoHandler(t *testing.T) {
	t.Parallel()

	win := efg.NewWindow("", 0)
	for _, n := range []string{"applybtn", "btnclose", "cancelar", "lookup"} {
		win.Add(n, efg.KindButton)
	}
	m := &efg.Model{Windows: []*efg.Window{win}}

	_, err := Classify(context.Background(), m, source.Text{Body: ""}, qt(t))

	require.NoError(t, err)
	for _, w := range win.Widgets {
		assert.Equal(t, efg.NodeTerminal, w.NodeKind, w.Name)
		assert.Empty(t, w.Handler)
	}
}

type failingSource struct{}

func (failingSource) Name() string                 { return "main.cpp" }
func (failingSource) Open() (io.ReadCloser, error) { return nil, errors.New("no such file") }

func TestClassify_UnreadableSourceDegrades(t *testing.T) {
	t.Parallel()

	win := efg.NewWindow("", 0)
	win.Add("okbutton", efg.KindButton)
	win.Add("browse", efg.KindButton)
	m := &efg.Model{Windows: []*efg.Window{win}}

	stats, err := Classify(context.Background(), m, failingSource{}, qt(t))

	require.ErrorContains(t, err, "no such file")
	assert.Equal(t, 2, stats.FailedScans)
	assert.Equal(t, efg.NodeTerminal, win.Widgets[0].NodeKind)
	assert.Equal(t, efg.NodeMedium, win.Widgets[1].NodeKind)
}

func TestSweep_LeavesDecidedKinds(t *testing.T) {
	t.Parallel()

	win := efg.NewWindow("", 0)
	win.Widgets = []efg.Widget{
		{Name: "a", Kind: efg.KindButton, NodeKind: efg.NodeTerminal},
		{Name: "b", Kind: efg.KindButton},
		{Name: "c", Kind: efg.KindValidityValid},
	}

	Sweep(&efg.Model{Windows: []*efg.Window{win}})

	assert.Equal(t, efg.NodeTerminal, win.Widgets[0].NodeKind)
	assert.Equal(t, efg.NodeMedium, win.Widgets[1].NodeKind)
	assert.Equal(t, efg.NodeUnset, win.Widgets[2].NodeKind)
}
