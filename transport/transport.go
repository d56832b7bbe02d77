// Package transport defines how compiled envelopes leave the process. The
// sub-packages provide concrete transports for SMTP submission, AWS SES,
// IMAP APPEND, mbox files, and plain writers.
package transport

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/emersion/go-message/textproto"
	"github.com/zostay/go-addr/pkg/addr"

	"github.com/zostay/postbox/compose"
	"github.com/zostay/postbox/message/header"
)

var (
	// ErrNoRecipients is returned by transports asked to deliver an envelope
	// that names no recipients at all.
	ErrNoRecipients = errors.New("envelope has no recipients")

	// ErrNoSender is returned by transports asked to deliver an envelope
	// without a sender.
	ErrNoSender = errors.New("envelope has no sender")
)

// Transport delivers a compiled envelope somewhere.
type Transport interface {
	// Deliver performs a single delivery attempt for the envelope.
	Deliver(ctx context.Context, env *compose.Envelope) error

	// Name is a short name for the transport, used in logs.
	Name() string
}

// Batcher is implemented by transports that can deliver several envelopes
// more efficiently together, such as by sharing one connection.
type Batcher interface {
	Transport

	// DeliverAll delivers every envelope in order, stopping at the first
	// failure.
	DeliverAll(ctx context.Context, envs []*compose.Envelope) error
}

// Send compiles each message with the default compiler and hands the
// resulting envelopes to t. Compilation of every message happens before
// anything is delivered, so a message that fails its preconditions
// prevents the whole batch from going out.
func Send(ctx context.Context, t Transport, msgs ...*compose.Message) error {
	return SendWith(ctx, compose.NewCompiler(), t, msgs...)
}

// SendWith works like Send, but compiles with c.
func SendWith(
	ctx context.Context,
	c *compose.Compiler,
	t Transport,
	msgs ...*compose.Message,
) error {
	envs := make([]*compose.Envelope, 0, len(msgs))
	for i, m := range msgs {
		env, err := c.Compile(m)
		if err != nil {
			return fmt.Errorf("compile message %d: %w", i, err)
		}
		envs = append(envs, env)
	}

	return DeliverAll(ctx, t, envs...)
}

// DeliverAll delivers the envelopes through t, using the Batcher interface
// when t provides one. It stops at the first error.
func DeliverAll(ctx context.Context, t Transport, envs ...*compose.Envelope) error {
	if len(envs) == 0 {
		return nil
	}

	if b, isBatcher := t.(Batcher); isBatcher {
		if err := b.DeliverAll(ctx, envs); err != nil {
			return fmt.Errorf("%s: %w", t.Name(), err)
		}
		return nil
	}

	for i, env := range envs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := t.Deliver(ctx, env); err != nil {
			return fmt.Errorf("%s: envelope %d: %w", t.Name(), i, err)
		}
	}

	return nil
}

// Check returns an error if the envelope lacks a sender or recipients.
// Transports that speak to a mail server call it before connecting.
func Check(env *compose.Envelope) error {
	if AddrSpec(env.Sender) == "" {
		return ErrNoSender
	}
	if len(env.Recipients) == 0 {
		return ErrNoRecipients
	}
	return nil
}

// AddrSpec returns the bare address (the "local@domain" part) of a mailbox
// written as `Name <local@domain>` or just `local@domain`. When the string
// cannot be parsed, the text inside the last pair of angle brackets is
// used. Failing that, the trimmed input is returned as-is.
func AddrSpec(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	if a, err := addr.ParseEmailAddress(s); err == nil {
		if spec := a.Address(); spec != "" {
			return spec
		}
	}

	if open := strings.LastIndex(s, "<"); open >= 0 {
		if end := strings.Index(s[open:], ">"); end > 0 {
			return strings.TrimSpace(s[open+1 : open+end])
		}
	}

	return s
}

// AddrSpecs applies AddrSpec to every entry of list.
func AddrSpecs(list []string) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		if spec := AddrSpec(s); spec != "" {
			out = append(out, spec)
		}
	}
	return out
}

// DocumentDate reads the Date field from the header at the top of a
// compiled document. It reports false when the field is missing or cannot
// be parsed.
func DocumentDate(doc []byte) (time.Time, bool) {
	h, err := textproto.ReadHeader(bufio.NewReader(bytes.NewReader(doc)))
	if err != nil {
		return time.Time{}, false
	}

	date, err := header.ParseTime(h.Get(header.Date))
	if err != nil {
		return time.Time{}, false
	}

	return date, true
}
