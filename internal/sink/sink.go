// Package sink delivers rendered DOT documents to their destination: a local
// file, stdout, a pre-signed HTTP upload URL or a socket.io server.
package sink

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// Sink receives one document per analysis.
type Sink interface {
	Write(ctx context.Context, analysis string, doc []byte) error
	String() string
}

// Open resolves a target string to a sink. "-" means stdout, http(s) URLs are
// uploaded with PUT, socketio:// and socketios:// URLs are emitted as an
// event, anything else is a file path.
func Open(target string, stdout io.Writer) (Sink, error) {
	if target == "" {
		return nil, fmt.Errorf("sink: empty target")
	}
	if target == "-" {
		return &Stdout{w: stdout}, nil
	}
	if i := strings.Index(target, "://"); i > 0 {
		switch strings.ToLower(target[:i]) {
		case "http", "https":
			return NewHTTP(target)
		case "socketio", "socketios":
			return NewSocketIO(target)
		}
	}
	return &File{Path: target}, nil
}

// File writes the document to a path, creating parent directories.
type File struct {
	Path string
}

func (f *File) Write(_ context.Context, _ string, doc []byte) error {
	if dir := filepath.Dir(f.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(f.Path, doc, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", f.Path, err)
	}
	return nil
}

func (f *File) String() string { return f.Path }

// Stdout writes the document unchanged to a writer.
type Stdout struct {
	w io.Writer
}

func (s *Stdout) Write(_ context.Context, _ string, doc []byte) error {
	_, err := s.w.Write(doc)
	return err
}

func (s *Stdout) String() string { return "-" }

// redact drops the query string, which for pre-signed URLs carries the
// credentials.
func redact(u *url.URL) string {
	c := *u
	c.RawQuery = ""
	c.User = nil
	return c.String()
}
