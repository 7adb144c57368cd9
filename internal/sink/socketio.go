package sink

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/vk/efgscan/internal/ctxlog"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

const (
	defaultEvent   = "efg"
	defaultTimeout = 15 * time.Second
)

// SocketIO emits each document as an event to a socket.io server. The URL
// form is socketio://host[:port]/namespace?path=/socket.io/&event=efg&ack=done;
// socketios selects TLS.
//
// When ack is set the sink waits for that event from the server before
// disconnecting.
type SocketIO struct {
	BaseURL   string
	Path      string
	Namespace string
	Event     string
	Ack       string
	Timeout   time.Duration
}

// NewSocketIO parses a socketio:// or socketios:// URL.
func NewSocketIO(target string) (*SocketIO, error) {
	u, err := url.Parse(target)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("socket.io URL %q has no host", target)
	}
	scheme := "http"
	if u.Scheme == "socketios" {
		scheme = "https"
	}
	q := u.Query()
	s := &SocketIO{
		BaseURL:   fmt.Sprintf("%s://%s", scheme, u.Host),
		Path:      q.Get("path"),
		Namespace: u.Path,
		Event:     q.Get("event"),
		Ack:       q.Get("ack"),
		Timeout:   defaultTimeout,
	}
	if s.Path == "" {
		s.Path = "/socket.io/"
	}
	if s.Namespace == "" {
		s.Namespace = "/"
	}
	if s.Event == "" {
		s.Event = defaultEvent
	}
	if t := q.Get("timeout"); t != "" {
		d, err := time.ParseDuration(t)
		if err != nil {
			return nil, fmt.Errorf("invalid socket.io timeout %q: %w", t, err)
		}
		s.Timeout = d
	}
	return s, nil
}

func (s *SocketIO) Write(ctx context.Context, analysis string, doc []byte) error {
	logger := ctxlog.FromContext(ctx).With("sink", "socketio", "url", s.BaseURL, "namespace", s.Namespace, "event", s.Event)

	opts := socket.DefaultOptions()
	opts.SetPath(s.Path)
	opts.SetTransports(types.NewSet(transports.WebSocket))

	manager := socket.NewManager(s.BaseURL, opts)
	io := manager.Socket(s.Namespace, opts)
	defer io.Disconnect()

	connected := make(chan error, 2)
	io.Once(types.EventName("connect"), func(...any) {
		logger.Debug("Connected", "sid", io.Id())
		connected <- nil
	})
	io.Once(types.EventName("connect_error"), func(errs ...any) {
		err := errors.New("connect_error")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = e
			} else {
				err = fmt.Errorf("%v", errs[0])
			}
		}
		connected <- err
	})

	acked := make(chan struct{}, 1)
	if s.Ack != "" {
		io.Once(types.EventName(s.Ack), func(...any) {
			acked <- struct{}{}
		})
	}

	io.Connect()

	timer := time.NewTimer(s.Timeout)
	defer timer.Stop()

	select {
	case err := <-connected:
		if err != nil {
			return fmt.Errorf("socket.io connection failed: %w", err)
		}
	case <-ctx.Done():
		return fmt.Errorf("context cancelled while waiting for socket.io connection: %w", ctx.Err())
	case <-timer.C:
		return fmt.Errorf("timed out after %v waiting for socket.io connection", s.Timeout)
	}

	logger.Info("Emitting document", "size", len(doc))
	io.Emit(s.Event, map[string]any{
		"analysis": analysis,
		"dot":      string(doc),
	})

	if s.Ack == "" {
		return nil
	}
	select {
	case <-acked:
		logger.Debug("Server acknowledged document", "ack", s.Ack)
		return nil
	case <-ctx.Done():
		return fmt.Errorf("context cancelled while waiting for %q: %w", s.Ack, ctx.Err())
	case <-timer.C:
		return fmt.Errorf("timed out after %v waiting for %q", s.Timeout, s.Ack)
	}
}

func (s *SocketIO) String() string {
	return s.BaseURL + s.Namespace
}
