// Package imap stores compiled envelopes in an IMAP folder with APPEND,
// typically to keep a copy of sent mail.
package imap

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strconv"

	imapv2 "github.com/emersion/go-imap/v2"
	"github.com/emersion/go-imap/v2/imapclient"

	"github.com/zostay/postbox/compose"
	"github.com/zostay/postbox/transport"
)

// DefaultFolder is the folder used when Options.Folder is empty.
const DefaultFolder = "Sent"

// Options configure the IMAP transport.
type Options struct {
	Host               string
	Port               int
	Username           string
	Password           string
	UseTLS             bool
	StartTLS           bool
	InsecureSkipVerify bool

	// Folder is the mailbox messages are appended to. It is created when
	// missing.
	Folder string

	// Seen marks appended messages as read.
	Seen bool
}

func (o Options) folder() string {
	if o.Folder == "" {
		return DefaultFolder
	}
	return o.Folder
}

// AppendCommand is an APPEND in progress: the literal is written to it,
// then it is closed and waited on.
type AppendCommand interface {
	io.WriteCloser
	Wait() (*imapv2.AppendData, error)
}

// Session is the part of a logged in IMAP client the transport uses.
type Session interface {
	Create(mailbox string) error
	Append(mailbox string, size int64, opts *imapv2.AppendOptions) AppendCommand
	Logout() error
	Close() error
}

// Dialer connects and logs in, returning a ready session.
type Dialer func(ctx context.Context, opts Options) (Session, error)

type session struct {
	c *imapclient.Client
}

func (s session) Create(mailbox string) error {
	return s.c.Create(mailbox, nil).Wait()
}

func (s session) Append(mailbox string, size int64, opts *imapv2.AppendOptions) AppendCommand {
	return s.c.Append(mailbox, size, opts)
}

func (s session) Logout() error {
	return s.c.Logout().Wait()
}

func (s session) Close() error {
	return s.c.Close()
}

// Dial is the Dialer used by New.
func Dial(_ context.Context, opts Options) (Session, error) {
	address := net.JoinHostPort(opts.Host, strconv.Itoa(opts.Port))
	options := &imapclient.Options{}

	if opts.UseTLS || opts.StartTLS {
		options.TLSConfig = &tls.Config{
			ServerName:         opts.Host,
			InsecureSkipVerify: opts.InsecureSkipVerify,
		}
	}

	var (
		client *imapclient.Client
		err    error
	)

	switch {
	case opts.UseTLS:
		client, err = imapclient.DialTLS(address, options)
	case opts.StartTLS:
		client, err = imapclient.DialStartTLS(address, options)
	default:
		client, err = imapclient.DialInsecure(address, options)
	}
	if err != nil {
		return nil, fmt.Errorf("dial imap %s: %w", address, err)
	}

	if err := client.Login(opts.Username, opts.Password).Wait(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("imap login failed: %w", err)
	}

	return session{client}, nil
}

// Transport appends envelopes to a folder. The recipients of the envelope
// play no part; only the document is stored.
type Transport struct {
	opts   Options
	dial   Dialer
	logger *slog.Logger
}

var _ transport.Batcher = (*Transport)(nil)

// New returns an IMAP transport. The logger may be nil.
func New(opts Options, logger *slog.Logger) (*Transport, error) {
	return NewWithDialer(opts, Dial, logger)
}

// NewWithDialer returns an IMAP transport that opens sessions with dial.
func NewWithDialer(opts Options, dial Dialer, logger *slog.Logger) (*Transport, error) {
	if opts.Host == "" {
		return nil, fmt.Errorf("imap host is empty")
	}
	if opts.Port <= 0 {
		return nil, fmt.Errorf("imap port must be positive")
	}
	return &Transport{opts: opts, dial: dial, logger: logger}, nil
}

// Name returns "imap".
func (t *Transport) Name() string { return "imap" }

// Deliver appends a single envelope.
func (t *Transport) Deliver(ctx context.Context, env *compose.Envelope) error {
	return t.DeliverAll(ctx, []*compose.Envelope{env})
}

// DeliverAll appends every envelope over one session.
func (t *Transport) DeliverAll(ctx context.Context, envs []*compose.Envelope) error {
	s, cleanup, err := t.connect(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	for i, env := range envs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := t.appendMessage(s, env); err != nil {
			return fmt.Errorf("append envelope %d: %w", i, err)
		}
	}

	return nil
}

func (t *Transport) connect(ctx context.Context) (Session, func(), error) {
	s, err := t.dial(ctx, t.opts)
	if err != nil {
		return nil, nil, err
	}

	if err := t.ensureMailbox(s); err != nil {
		_ = s.Close()
		return nil, nil, err
	}

	if t.logger != nil {
		t.logger.Debug("imap connection established",
			"host", t.opts.Host,
			"user", t.opts.Username,
			"folder", t.opts.folder(),
			"tls", t.opts.UseTLS)
	}

	stopClose := context.AfterFunc(ctx, func() {
		_ = s.Close()
	})

	cleanup := func() {
		stopClose()
		if ctx.Err() == nil {
			if err := s.Logout(); err != nil && t.logger != nil {
				t.logger.Warn("imap logout failed", "err", err)
			}
		}
		if err := s.Close(); err != nil && t.logger != nil {
			t.logger.Debug("imap connection closed", "err", err)
		}
	}

	return s, cleanup, nil
}

func (t *Transport) ensureMailbox(s Session) error {
	folder := t.opts.folder()
	if err := s.Create(folder); err != nil {
		var respErr *imapv2.Error
		if errors.As(err, &respErr) && respErr.Code == imapv2.ResponseCodeAlreadyExists {
			return nil
		}
		return fmt.Errorf("ensure mailbox %s: %w", folder, err)
	}

	if t.logger != nil {
		t.logger.Info("imap mailbox created", "mailbox", folder)
	}

	return nil
}

func (t *Transport) appendOptions(env *compose.Envelope) *imapv2.AppendOptions {
	opts := &imapv2.AppendOptions{}
	if date, ok := transport.DocumentDate(env.Document); ok {
		opts.Time = date
	}
	if t.opts.Seen {
		opts.Flags = []imapv2.Flag{imapv2.FlagSeen}
	}
	return opts
}

func (t *Transport) appendMessage(s Session, env *compose.Envelope) error {
	folder := t.opts.folder()
	cmd := s.Append(folder, int64(len(env.Document)), t.appendOptions(env))

	remaining := env.Document
	for len(remaining) > 0 {
		n, err := cmd.Write(remaining)
		if err != nil {
			_ = cmd.Close()
			return fmt.Errorf("append write: %w", err)
		}
		if n == 0 {
			_ = cmd.Close()
			return fmt.Errorf("append write: wrote 0 bytes")
		}
		remaining = remaining[n:]
	}

	if err := cmd.Close(); err != nil {
		return fmt.Errorf("append close: %w", err)
	}

	if _, err := cmd.Wait(); err != nil {
		return fmt.Errorf("append wait: %w", err)
	}

	if t.logger != nil {
		t.logger.Debug("appended message", "folder", folder, "size", len(env.Document))
	}

	return nil
}
