// Package smtp submits compiled envelopes to a mail server over SMTP.
package smtp

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/emersion/go-sasl"
	gosmtp "github.com/emersion/go-smtp"

	"github.com/zostay/postbox/compose"
	"github.com/zostay/postbox/transport"
)

// Security selects how the connection to the server is protected.
type Security int

const (
	// SecurityNone speaks plain SMTP.
	SecurityNone Security = iota

	// SecuritySTARTTLS connects in plain text and upgrades with STARTTLS
	// before authenticating.
	SecuritySTARTTLS

	// SecurityTLS connects with TLS from the start (implicit TLS, usually
	// port 465).
	SecurityTLS
)

// ErrUnknownSecurity is returned by ParseSecurity for names it does not know.
var ErrUnknownSecurity = errors.New("unknown smtp security mode")

// ParseSecurity maps a configuration name to a Security. It accepts "none"
// or "plain", "starttls", and "tls" or "ssl". The empty string means
// SecurityNone.
func ParseSecurity(s string) (Security, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "plain":
		return SecurityNone, nil
	case "starttls":
		return SecuritySTARTTLS, nil
	case "tls", "ssl":
		return SecurityTLS, nil
	}
	return SecurityNone, fmt.Errorf("%w: %q", ErrUnknownSecurity, s)
}

func (s Security) String() string {
	switch s {
	case SecuritySTARTTLS:
		return "starttls"
	case SecurityTLS:
		return "tls"
	default:
		return "none"
	}
}

// DefaultPort returns the customary submission port for the mode.
func (s Security) DefaultPort() int {
	switch s {
	case SecuritySTARTTLS:
		return 587
	case SecurityTLS:
		return 465
	default:
		return 25
	}
}

// Options configure the SMTP transport.
type Options struct {
	Host               string
	Port               int
	Username           string
	Password           string
	Security           Security
	InsecureSkipVerify bool

	// LocalName is sent with EHLO. It defaults to "localhost".
	LocalName string

	// Timeout bounds connecting, the TLS handshake, and each command. Zero
	// means no limit beyond the context.
	Timeout time.Duration

	// CertFile and KeyFile name a PEM client certificate and its key, sent
	// when the server asks for one during the TLS handshake. Set both or
	// neither.
	CertFile string
	KeyFile  string
}

func (o Options) address() string {
	port := o.Port
	if port <= 0 {
		port = o.Security.DefaultPort()
	}
	return net.JoinHostPort(o.Host, strconv.Itoa(port))
}

func (o Options) tlsConfig() (*tls.Config, error) {
	cfg := &tls.Config{
		ServerName:         o.Host,
		InsecureSkipVerify: o.InsecureSkipVerify,
	}

	if o.CertFile != "" || o.KeyFile != "" {
		cert, err := tls.LoadX509KeyPair(o.CertFile, o.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("load smtp client certificate: %w", err)
		}
		cfg.Certificates = []tls.Certificate{cert}
	}

	return cfg, nil
}

// Client is the part of an SMTP client session the transport uses.
type Client interface {
	Hello(localName string) error
	StartTLS(config *tls.Config) error
	Auth(a sasl.Client) error
	Mail(from string, opts *gosmtp.MailOptions) error
	Rcpt(to string, opts *gosmtp.RcptOptions) error
	Data() (io.WriteCloser, error)
	Quit() error
	Close() error
}

// Dialer opens a client session to the address given by the options.
type Dialer func(ctx context.Context, opts Options) (Client, error)

type client struct {
	*gosmtp.Client
}

func (c client) Data() (io.WriteCloser, error) {
	return c.Client.Data()
}

// Dial is the Dialer used by New. It connects within opts.Timeout and gives
// up when ctx is done. With SecurityTLS the TLS handshake happens before the
// client is returned, otherwise the connection is plain text.
func Dial(ctx context.Context, opts Options) (Client, error) {
	address := opts.address()

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	d := &net.Dialer{Timeout: opts.Timeout}
	conn, err := d.DialContext(ctx, "tcp", address)
	if err != nil {
		return nil, fmt.Errorf("dial smtp %s: %w", address, err)
	}

	if opts.Security == SecurityTLS {
		cfg, err := opts.tlsConfig()
		if err != nil {
			_ = conn.Close()
			return nil, err
		}

		tc := tls.Client(conn, cfg)
		if err := tc.HandshakeContext(ctx); err != nil {
			_ = tc.Close()
			return nil, fmt.Errorf("smtp tls handshake %s: %w", address, err)
		}
		conn = tc
	}

	c := gosmtp.NewClient(conn)
	if opts.Timeout > 0 {
		c.CommandTimeout = opts.Timeout
		c.SubmissionTimeout = opts.Timeout
	}

	return client{c}, nil
}

// Transport delivers envelopes by SMTP submission. Each call to Deliver or
// DeliverAll uses its own connection.
type Transport struct {
	opts   Options
	dial   Dialer
	logger *slog.Logger
}

var _ transport.Batcher = (*Transport)(nil)

// New returns an SMTP transport. The logger may be nil.
func New(opts Options, logger *slog.Logger) (*Transport, error) {
	return NewWithDialer(opts, Dial, logger)
}

// NewWithDialer returns an SMTP transport that opens sessions with dial.
func NewWithDialer(opts Options, dial Dialer, logger *slog.Logger) (*Transport, error) {
	if opts.Host == "" {
		return nil, fmt.Errorf("smtp host is empty")
	}
	if opts.Port < 0 {
		return nil, fmt.Errorf("smtp port must not be negative")
	}
	if opts.Timeout < 0 {
		return nil, fmt.Errorf("smtp timeout must not be negative")
	}
	if (opts.CertFile == "") != (opts.KeyFile == "") {
		return nil, fmt.Errorf("smtp client certificate needs both a cert file and a key file")
	}
	if opts.CertFile != "" {
		if _, err := opts.tlsConfig(); err != nil {
			return nil, err
		}
	}
	if opts.LocalName == "" {
		opts.LocalName = "localhost"
	}
	return &Transport{opts: opts, dial: dial, logger: logger}, nil
}

// Name returns "smtp".
func (t *Transport) Name() string { return "smtp" }

// Deliver submits a single envelope.
func (t *Transport) Deliver(ctx context.Context, env *compose.Envelope) error {
	return t.DeliverAll(ctx, []*compose.Envelope{env})
}

// DeliverAll submits every envelope over one connection, in order, and
// stops at the first failure.
func (t *Transport) DeliverAll(ctx context.Context, envs []*compose.Envelope) error {
	for _, env := range envs {
		if err := transport.Check(env); err != nil {
			return err
		}
	}

	c, cleanup, err := t.connect(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	for i, env := range envs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := t.submit(c, env); err != nil {
			return fmt.Errorf("envelope %d: %w", i, err)
		}
	}

	if err := c.Quit(); err != nil {
		return fmt.Errorf("smtp quit: %w", err)
	}

	return nil
}

func (t *Transport) connect(ctx context.Context) (Client, func(), error) {
	c, err := t.dial(ctx, t.opts)
	if err != nil {
		return nil, nil, err
	}

	if err := c.Hello(t.opts.LocalName); err != nil {
		_ = c.Close()
		return nil, nil, fmt.Errorf("smtp hello: %w", err)
	}

	if t.opts.Security == SecuritySTARTTLS {
		cfg, err := t.opts.tlsConfig()
		if err != nil {
			_ = c.Close()
			return nil, nil, err
		}
		if err := c.StartTLS(cfg); err != nil {
			_ = c.Close()
			return nil, nil, fmt.Errorf("smtp starttls: %w", err)
		}
	}

	if t.opts.Username != "" {
		auth := sasl.NewPlainClient("", t.opts.Username, t.opts.Password)
		if err := c.Auth(auth); err != nil {
			_ = c.Close()
			return nil, nil, fmt.Errorf("smtp auth failed: %w", err)
		}
	}

	if t.logger != nil {
		t.logger.Debug("smtp connection established",
			"address", t.opts.address(),
			"security", t.opts.Security.String(),
			"user", t.opts.Username)
	}

	stopClose := context.AfterFunc(ctx, func() {
		_ = c.Close()
	})

	cleanup := func() {
		stopClose()
		if err := c.Close(); err != nil && t.logger != nil {
			t.logger.Debug("smtp connection closed", "err", err)
		}
	}

	return c, cleanup, nil
}

func (t *Transport) submit(c Client, env *compose.Envelope) error {
	from := transport.AddrSpec(env.Sender)
	if err := c.Mail(from, nil); err != nil {
		return fmt.Errorf("smtp mail from %s: %w", from, err)
	}

	for _, rcpt := range transport.AddrSpecs(env.Recipients) {
		if err := c.Rcpt(rcpt, nil); err != nil {
			return fmt.Errorf("smtp rcpt to %s: %w", rcpt, err)
		}
	}

	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}

	if _, err := env.WriteTo(w); err != nil {
		_ = w.Close()
		return fmt.Errorf("smtp data write: %w", err)
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp data close: %w", err)
	}

	if t.logger != nil {
		t.logger.Debug("submitted message",
			"from", from,
			"recipients", len(env.Recipients),
			"size", len(env.Document))
	}

	return nil
}
