package sink

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/vk/efgscan/internal/ctxlog"
)

// ContentType is sent with every HTTP upload.
const ContentType = "text/vnd.graphviz"

// HTTP uploads the document with a single PUT, as expected by pre-signed
// object storage URLs.
type HTTP struct {
	url    *url.URL
	Client *http.Client
}

// NewHTTP validates an upload URL.
func NewHTTP(target string) (*HTTP, error) {
	u, err := url.Parse(target)
	if err != nil {
		return nil, fmt.Errorf("failed to parse upload URL: %w", err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("upload URL %q has no host", redact(u))
	}
	return &HTTP{url: u, Client: http.DefaultClient}, nil
}

func (h *HTTP) Write(ctx context.Context, _ string, doc []byte) error {
	logger := ctxlog.FromContext(ctx).With("sink", "http", "url", h.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, h.url.String(), bytes.NewReader(doc))
	if err != nil {
		return fmt.Errorf("failed to create upload request: %w", err)
	}
	req.Header.Set("Content-Type", ContentType)
	req.ContentLength = int64(len(doc))

	logger.Info("Uploading document", "size", len(doc))
	resp, err := h.Client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute upload request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("upload failed with status: %s", resp.Status)
	}
	logger.Info("Successfully uploaded document", "status", resp.Status)
	return nil
}

func (h *HTTP) String() string { return redact(h.url) }
