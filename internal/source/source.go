// Package source provides the line-oriented view of the two input texts.
//
// Every scan re-opens its Source, mirroring the stage-by-stage rereads of the
// analysis: a failure to open or read is reported for that scan only. Lines
// containing the comment marker are skipped and the remaining lines are
// case-folded before they reach the caller.
package source

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// maxLineSize bounds a single line; generated UI files can have very long ones.
const maxLineSize = 8 * 1024 * 1024

// Source is a re-readable text input.
type Source interface {
	Name() string
	Open() (io.ReadCloser, error)
}

// File reads from a path on disk.
type File struct {
	Path string
}

func (f File) Name() string { return f.Path }

func (f File) Open() (io.ReadCloser, error) {
	return os.Open(f.Path)
}

// Text is an in-memory source.
type Text struct {
	Label string
	Body  string
}

func (t Text) Name() string { return t.Label }

func (t Text) Open() (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(t.Body)), nil
}

// LineFunc receives the 1-based line number and the folded line. Returning
// false stops the scan.
type LineFunc func(lineNo int, line string) bool

// Scan opens src and feeds every non-comment line, lower-cased, to fn. Line
// numbers count every physical line, comments included.
func Scan(src Source, commentMarker string, fn LineFunc) error {
	rc, err := src.Open()
	if err != nil {
		return fmt.Errorf("open %s: %w", src.Name(), err)
	}
	defer rc.Close()

	s := bufio.NewScanner(rc)
	s.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNo := 0
	for s.Scan() {
		lineNo++
		line := s.Text()
		if commentMarker != "" && strings.Contains(line, commentMarker) {
			continue
		}
		if !fn(lineNo, strings.ToLower(line)) {
			return nil
		}
	}
	if err := s.Err(); err != nil {
		return fmt.Errorf("read %s: %w", src.Name(), err)
	}
	return nil
}
