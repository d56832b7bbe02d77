// Package stdout implements a transport that prints envelopes instead of
// delivering them. It is handy for development and dry runs.
package stdout

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/zostay/postbox/compose"
	"github.com/zostay/postbox/message/header"
	"github.com/zostay/postbox/message/transfer"
)

const rule = "========================================\n"

// Transport prints each envelope, the envelope addresses first, followed by
// the document with Unix line breaks.
type Transport struct {
	// writer is the output destination, defaulting to os.Stdout.
	writer io.Writer
}

// New creates a transport that writes to os.Stdout.
func New() *Transport {
	return &Transport{writer: os.Stdout}
}

// NewWithWriter creates a transport that writes to w.
func NewWithWriter(w io.Writer) *Transport {
	return &Transport{writer: w}
}

// Name returns "stdout".
func (t *Transport) Name() string { return "stdout" }

// Deliver prints the envelope.
func (t *Transport) Deliver(_ context.Context, env *compose.Envelope) error {
	var b strings.Builder

	b.WriteString(rule)
	fmt.Fprintf(&b, "MAIL FROM: %s\n", env.Sender)
	for _, rcpt := range env.Recipients {
		fmt.Fprintf(&b, "RCPT TO: %s\n", rcpt)
	}
	b.WriteString(rule)
	b.Write(transfer.NormalizeBreaks(env.Document, header.LF))
	if !strings.HasSuffix(b.String(), "\n") {
		b.WriteString("\n")
	}
	b.WriteString(rule)

	if _, err := io.WriteString(t.writer, b.String()); err != nil {
		return fmt.Errorf("print envelope: %w", err)
	}

	return nil
}
