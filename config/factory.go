package config

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/zostay/postbox/transport"
	"github.com/zostay/postbox/transport/imap"
	"github.com/zostay/postbox/transport/mbox"
	"github.com/zostay/postbox/transport/ses"
	"github.com/zostay/postbox/transport/smtp"
	"github.com/zostay/postbox/transport/stdout"
)

// NewTransport builds the transport selected by cfg.Transport. The logger
// may be nil.
func NewTransport(ctx context.Context, cfg *Config, logger *slog.Logger) (transport.Transport, error) {
	switch strings.ToLower(cfg.Transport) {
	case KindSMTP:
		security, err := smtp.ParseSecurity(cfg.SMTP.Security)
		if err != nil {
			return nil, err
		}
		return built(smtp.New(smtp.Options{
			Host:               cfg.SMTP.Host,
			Port:               cfg.SMTP.Port,
			Username:           cfg.SMTP.Username,
			Password:           cfg.SMTP.Password,
			Security:           security,
			InsecureSkipVerify: cfg.SMTP.InsecureSkipVerify,
			LocalName:          cfg.SMTP.LocalName,
			Timeout:            cfg.SMTP.Timeout,
			CertFile:           cfg.SMTP.CertFile,
			KeyFile:            cfg.SMTP.KeyFile,
		}, logger))

	case KindSES:
		return built(ses.New(ctx, ses.Options{
			Region:           cfg.SES.Region,
			AccessKeyID:      cfg.SES.AccessKeyID,
			SecretAccessKey:  cfg.SES.SecretAccessKey,
			ConfigurationSet: cfg.SES.ConfigurationSet,
		}, logger))

	case KindIMAP:
		return built(imap.New(imap.Options{
			Host:               cfg.IMAP.Host,
			Port:               cfg.IMAP.Port,
			Username:           cfg.IMAP.Username,
			Password:           cfg.IMAP.Password,
			UseTLS:             cfg.IMAP.UseTLS,
			StartTLS:           cfg.IMAP.StartTLS,
			InsecureSkipVerify: cfg.IMAP.InsecureSkipVerify,
			Folder:             cfg.IMAP.Folder,
			Seen:               cfg.IMAP.Seen,
		}, logger))

	case KindMbox:
		return built(mbox.New(cfg.Mbox.Path, logger))

	case KindStdout, "":
		return stdout.New(), nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownTransport, cfg.Transport)
}

// built keeps a failed constructor from producing a non-nil interface
// holding a nil pointer.
func built[T transport.Transport](t T, err error) (transport.Transport, error) {
	if err != nil {
		return nil, err
	}
	return t, nil
}

// NewLogger returns a text logger writing to w at the named level: debug,
// info, warn, or error. Anything else means info.
func NewLogger(level string, w io.Writer) *slog.Logger {
	lv := new(slog.LevelVar)
	lv.Set(slog.LevelInfo)

	switch strings.ToLower(level) {
	case "debug":
		lv.Set(slog.LevelDebug)
	case "info":
		lv.Set(slog.LevelInfo)
	case "warn":
		lv.Set(slog.LevelWarn)
	case "error":
		lv.Set(slog.LevelError)
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lv}))
}
