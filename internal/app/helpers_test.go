package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/efgscan/internal/testutil"
)

// setupAppTest validates cfg, forces debug logging and returns the app with
// its stdout and log buffers.
func setupAppTest(t *testing.T, cfg Config) (*App, *testutil.SafeBuffer, *testutil.SafeBuffer) {
	t.Helper()

	cfg.LogLevel = "debug"
	valid, err := NewConfig(cfg)
	require.NoError(t, err)

	out, logs := &testutil.SafeBuffer{}, &testutil.SafeBuffer{}
	testutil.LogOnDemand(t, logs)
	return NewApp(out, logs, valid), out, logs
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

const dialogUI = `<ui version="4.0">
 <class>Dlg</class> <property name="Dlg">
 <widget class="QDialog" name="Dlg">
  <widget class="QLineEdit" name="name"/>
  <widget class="QPushButton" name="okButton">
 </widget>
</ui>`

const dialogCpp = `Dlg::Dlg(QWidget *parent) : QDialog(parent)
{
    connect(ui->name, SIGNAL(textChanged(QString)), this, SLOT(onNameChanged()));
}

void Dlg::onNameChanged()
{
    update();
}
`

const dialogDOT = "strict digraph G {\n" +
	"\tname;\n\tr_invalid_name;\n\tr_valid_name;\n\tokbutton;\n\tcompletar;\n" +
	"\tname -> r_invalid_name;\n\tname -> r_valid_name;\n" +
	"\tname -> name;\n\tname -> okbutton;\n\tname -> completar;\n" +
	"\tr_invalid_name -> name;\n\tr_valid_name -> name;\n" +
	"\tcompletar -> name;\n\tcompletar -> okbutton;\n\tcompletar -> completar;\n" +
	"}"
