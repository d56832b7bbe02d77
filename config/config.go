// Package config loads transport configuration from a YAML file with
// environment variable overrides, and builds the configured transport and
// logger from it.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvPrefix starts the name of every environment variable read by Load and
// LoadFromFile.
const EnvPrefix = "POSTBOX_"

// ErrUnknownTransport is returned when the transport kind is not one of the
// Kind constants.
var ErrUnknownTransport = errors.New("unknown transport")

// Transport kinds.
const (
	KindSMTP   = "smtp"
	KindSES    = "ses"
	KindIMAP   = "imap"
	KindMbox   = "mbox"
	KindStdout = "stdout"
)

// Config holds the complete configuration.
type Config struct {
	// Transport selects the transport by kind.
	Transport string        `yaml:"transport"`
	SMTP      SMTPConfig    `yaml:"smtp"`
	SES       SESConfig     `yaml:"ses"`
	IMAP      IMAPConfig    `yaml:"imap"`
	Mbox      MboxConfig    `yaml:"mbox"`
	Logging   LoggingConfig `yaml:"logging"`
}

// SMTPConfig configures SMTP submission.
type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`

	// Security is one of "none", "starttls", or "tls".
	Security           string `yaml:"security"`
	InsecureSkipVerify bool   `yaml:"insecure_skip_verify"`
	LocalName          string `yaml:"local_name"`

	// Timeout is a duration such as "30s".
	Timeout  time.Duration `yaml:"timeout"`
	CertFile string        `yaml:"cert_file"`
	KeyFile  string        `yaml:"key_file"`
}

// SESConfig configures AWS SES delivery.
type SESConfig struct {
	Region           string `yaml:"region"`
	AccessKeyID      string `yaml:"access_key_id"`
	SecretAccessKey  string `yaml:"secret_access_key"`
	ConfigurationSet string `yaml:"configuration_set"`
}

// IMAPConfig configures IMAP APPEND.
type IMAPConfig struct {
	Host               string `yaml:"host"`
	Port               int    `yaml:"port"`
	Username           string `yaml:"username"`
	Password           string `yaml:"password"`
	UseTLS             bool   `yaml:"use_tls"`
	StartTLS           bool   `yaml:"starttls"`
	InsecureSkipVerify bool   `yaml:"insecure_skip_verify"`
	Folder             string `yaml:"folder"`
	Seen               bool   `yaml:"seen"`
}

// MboxConfig configures the mbox file transport.
type MboxConfig struct {
	Path string `yaml:"path"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load returns the defaults overridden by environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	cfg.applyDefaults()
	if err := cfg.applyEnvVars(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromFile loads configuration from a YAML file on top of the defaults,
// then overrides it with environment variables.
func LoadFromFile(path string) (*Config, error) {
	cfg := &Config{}
	cfg.applyDefaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.applyEnvVars(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	c.Transport = KindStdout
	c.SMTP.Security = "starttls"
	c.IMAP.Port = 993
	c.IMAP.UseTLS = true
	c.Logging.Level = "info"
}

func lookup(name string) (string, bool) {
	v := os.Getenv(EnvPrefix + name)
	return v, v != ""
}

func setString(dst *string, name string) {
	if v, ok := lookup(name); ok {
		*dst = v
	}
}

func setInt(dst *int, name string) error {
	v, ok := lookup(name)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("environment %s%s: %w", EnvPrefix, name, err)
	}
	*dst = n
	return nil
}

func setDuration(dst *time.Duration, name string) error {
	v, ok := lookup(name)
	if !ok {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("environment %s%s: %w", EnvPrefix, name, err)
	}
	*dst = d
	return nil
}

func setBool(dst *bool, name string) error {
	v, ok := lookup(name)
	if !ok {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("environment %s%s: %w", EnvPrefix, name, err)
	}
	*dst = b
	return nil
}

// applyEnvVars overrides configuration with non-empty POSTBOX_*
// environment variables.
func (c *Config) applyEnvVars() error {
	if v, ok := lookup("TRANSPORT"); ok {
		c.Transport = strings.ToLower(v)
	}

	setString(&c.SMTP.Host, "SMTP_HOST")
	setString(&c.SMTP.Username, "SMTP_USERNAME")
	setString(&c.SMTP.Password, "SMTP_PASSWORD")
	setString(&c.SMTP.Security, "SMTP_SECURITY")
	setString(&c.SMTP.LocalName, "SMTP_LOCAL_NAME")
	setString(&c.SMTP.CertFile, "SMTP_CERT_FILE")
	setString(&c.SMTP.KeyFile, "SMTP_KEY_FILE")

	setString(&c.SES.Region, "SES_REGION")
	setString(&c.SES.AccessKeyID, "SES_ACCESS_KEY_ID")
	setString(&c.SES.SecretAccessKey, "SES_SECRET_ACCESS_KEY")
	setString(&c.SES.ConfigurationSet, "SES_CONFIGURATION_SET")

	setString(&c.IMAP.Host, "IMAP_HOST")
	setString(&c.IMAP.Username, "IMAP_USERNAME")
	setString(&c.IMAP.Password, "IMAP_PASSWORD")
	setString(&c.IMAP.Folder, "IMAP_FOLDER")

	setString(&c.Mbox.Path, "MBOX_PATH")

	if v, ok := lookup("LOG_LEVEL"); ok {
		c.Logging.Level = strings.ToLower(v)
	}

	for _, set := range []func() error{
		func() error { return setInt(&c.SMTP.Port, "SMTP_PORT") },
		func() error { return setBool(&c.SMTP.InsecureSkipVerify, "SMTP_INSECURE_SKIP_VERIFY") },
		func() error { return setDuration(&c.SMTP.Timeout, "SMTP_TIMEOUT") },
		func() error { return setInt(&c.IMAP.Port, "IMAP_PORT") },
		func() error { return setBool(&c.IMAP.UseTLS, "IMAP_USE_TLS") },
		func() error { return setBool(&c.IMAP.StartTLS, "IMAP_STARTTLS") },
		func() error { return setBool(&c.IMAP.InsecureSkipVerify, "IMAP_INSECURE_SKIP_VERIFY") },
		func() error { return setBool(&c.IMAP.Seen, "IMAP_SEEN") },
	} {
		if err := set(); err != nil {
			return err
		}
	}

	return nil
}
