package compose

import "time"

// Option configures a Message built with New.
type Option func(m *Message)

// New returns a new Message with the given options applied in order.
func New(opts ...Option) *Message {
	m := &Message{
		to:      []string{},
		cc:      []string{},
		bcc:     []string{},
		replyTo: []string{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// From sets the sender.
func From(addr string) Option {
	return func(m *Message) { m.SetSender(addr) }
}

// To sets the recipients.
func To(addrs ...string) Option {
	return func(m *Message) { m.SetTo(addrs...) }
}

// Cc sets the carbon copy recipients.
func Cc(addrs ...string) Option {
	return func(m *Message) { m.SetCc(addrs...) }
}

// Bcc sets the blind carbon copy recipients.
func Bcc(addrs ...string) Option {
	return func(m *Message) { m.SetBcc(addrs...) }
}

// ReplyTo sets the reply-to addresses.
func ReplyTo(addrs ...string) Option {
	return func(m *Message) { m.SetReplyTo(addrs...) }
}

// Subject sets the subject.
func Subject(s string) Option {
	return func(m *Message) { m.SetSubject(s) }
}

// Body sets the plain text body.
func Body(s string) Option {
	return func(m *Message) { m.SetBody(s) }
}

// HTML sets the HTML alternative body.
func HTML(s string) Option {
	return func(m *Message) { m.SetHTML(s) }
}

// Date sets the date.
func Date(t time.Time) Option {
	return func(m *Message) { m.SetDate(t) }
}

// DateUnix sets the date from a POSIX timestamp.
func DateUnix(ts float64) Option {
	return func(m *Message) { m.SetDateUnix(ts) }
}

// Charset sets the charset.
func Charset(cs string) Option {
	return func(m *Message) { m.SetCharset(cs) }
}

// Header sets an extra header field.
func Header(name, value string) Option {
	return func(m *Message) { m.SetHeader(name, value) }
}

// Inline adds an inline resource.
func Inline(cid string, data []byte, mediaType string) Option {
	return func(m *Message) { m.AddInline(cid, data, mediaType) }
}

// Attachment adds an attachment.
func Attachment(filename string, data []byte, mediaType string) Option {
	return func(m *Message) { m.AddAttachment(filename, data, mediaType) }
}
