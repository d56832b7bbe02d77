// Package mbox appends compiled envelopes to an mbox file.
package mbox

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	mboxlib "github.com/emersion/go-mbox"

	"github.com/zostay/postbox/compose"
	"github.com/zostay/postbox/message/header"
	"github.com/zostay/postbox/message/transfer"
	"github.com/zostay/postbox/transport"
)

// DefaultSender is written on the "From " separator line of envelopes that
// have no usable sender.
const DefaultSender = "MAILER-DAEMON"

// Transport writes envelopes in mbox format. Documents are stored with Unix
// line breaks, as is customary for mbox files.
type Transport struct {
	path   string
	w      io.Writer
	now    func() time.Time
	logger *slog.Logger

	mu sync.Mutex
}

var _ transport.Batcher = (*Transport)(nil)

// New returns a transport appending to the mbox file at path. The file is
// created if it does not exist and is opened only while delivering.
func New(path string, logger *slog.Logger) (*Transport, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("mbox path is empty")
	}
	return &Transport{path: path, now: time.Now, logger: logger}, nil
}

// NewWithWriter returns a transport writing to w.
func NewWithWriter(w io.Writer, logger *slog.Logger) *Transport {
	return &Transport{w: w, now: time.Now, logger: logger}
}

// Name returns "mbox".
func (t *Transport) Name() string { return "mbox" }

// Deliver appends one envelope.
func (t *Transport) Deliver(ctx context.Context, env *compose.Envelope) error {
	return t.DeliverAll(ctx, []*compose.Envelope{env})
}

// DeliverAll appends the envelopes in order.
func (t *Transport) DeliverAll(ctx context.Context, envs []*compose.Envelope) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	w, closeFile, err := t.open()
	if err != nil {
		return err
	}

	mw := mboxlib.NewWriter(w)
	for i, env := range envs {
		if err := ctx.Err(); err != nil {
			_ = closeFile()
			return err
		}
		if err := t.write(mw, env); err != nil {
			_ = closeFile()
			return fmt.Errorf("write envelope %d: %w", i, err)
		}
	}

	if err := mw.Close(); err != nil {
		_ = closeFile()
		return fmt.Errorf("close mbox writer: %w", err)
	}

	if err := closeFile(); err != nil {
		return fmt.Errorf("close mbox file: %w", err)
	}

	return nil
}

func (t *Transport) open() (io.Writer, func() error, error) {
	if t.w != nil {
		return t.w, func() error { return nil }, nil
	}

	f, err := os.OpenFile(t.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open mbox %s: %w", t.path, err)
	}

	return f, f.Close, nil
}

func (t *Transport) write(mw *mboxlib.Writer, env *compose.Envelope) error {
	from := transport.AddrSpec(env.Sender)
	if from == "" {
		from = DefaultSender
	}

	date, ok := transport.DocumentDate(env.Document)
	if !ok {
		date = t.now()
	}

	msgw, err := mw.CreateMessage(from, date)
	if err != nil {
		return fmt.Errorf("create message: %w", err)
	}

	doc := transfer.NormalizeBreaks(env.Document, header.LF)
	if _, err := msgw.Write(doc); err != nil {
		return fmt.Errorf("write message: %w", err)
	}

	if t.logger != nil {
		t.logger.Debug("stored message", "from", from, "size", len(doc))
	}

	return nil
}
