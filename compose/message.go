package compose

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/zostay/postbox/internal/ordered"
	"github.com/zostay/postbox/message/header"
	"github.com/zostay/postbox/message/header/field"
)

// Resource is a binary payload attached to a Message, either inline or as an
// attachment.
type Resource struct {
	// Name is the content-id of an inline resource or the file name of an
	// attachment.
	Name string

	// Data is the payload. The Message owns its own copy.
	Data []byte

	// MediaType is the explicit media type, possibly with parameters. When
	// empty, the type is guessed from Name during compilation.
	MediaType string
}

type extraHeader struct {
	name, value string
}

// Message is the logical email message to compile. The zero value is an
// empty message using the default charset.
//
// A Message is not safe for concurrent use. Compiling only reads it.
type Message struct {
	sender  string
	to      []string
	cc      []string
	bcc     []string
	replyTo []string

	subject    string
	hasSubject bool

	body string
	html string

	date    time.Time
	charset string

	headers     ordered.Map[string, extraHeader]
	inline      ordered.Map[string, Resource]
	attachments ordered.Map[string, Resource]
}

// normalize copies the given addresses into a new, never nil, list.
func normalize(addrs []string) []string {
	out := make([]string, len(addrs))
	copy(out, addrs)
	return out
}

// Sender returns the sender address.
func (m *Message) Sender() string { return m.sender }

// SetSender sets the sender, e.g. "ann@example.com" or
// "Ann <ann@example.com>".
func (m *Message) SetSender(addr string) { m.sender = addr }

// To returns a copy of the recipient list.
func (m *Message) To() []string { return normalize(m.to) }

// SetTo replaces the recipient list. Calling it with no arguments clears the
// list.
func (m *Message) SetTo(addrs ...string) { m.to = normalize(addrs) }

// Cc returns a copy of the carbon copy list.
func (m *Message) Cc() []string { return normalize(m.cc) }

// SetCc replaces the carbon copy list.
func (m *Message) SetCc(addrs ...string) { m.cc = normalize(addrs) }

// Bcc returns a copy of the blind carbon copy list.
func (m *Message) Bcc() []string { return normalize(m.bcc) }

// SetBcc replaces the blind carbon copy list. These addresses receive the
// message but never appear in its header.
func (m *Message) SetBcc(addrs ...string) { m.bcc = normalize(addrs) }

// ReplyTo returns a copy of the reply-to list.
func (m *Message) ReplyTo() []string { return normalize(m.replyTo) }

// SetReplyTo replaces the reply-to list.
func (m *Message) SetReplyTo(addrs ...string) { m.replyTo = normalize(addrs) }

// Subject returns the subject and whether it has been set.
func (m *Message) Subject() (string, bool) { return m.subject, m.hasSubject }

// SetSubject sets the subject. The empty string is a valid subject.
func (m *Message) SetSubject(s string) {
	m.subject = s
	m.hasSubject = true
}

// ClearSubject unsets the subject.
func (m *Message) ClearSubject() {
	m.subject = ""
	m.hasSubject = false
}

// Body returns the plain text body.
func (m *Message) Body() string { return m.body }

// SetBody sets the plain text body.
func (m *Message) SetBody(s string) { m.body = s }

// HTML returns the HTML alternative body.
func (m *Message) HTML() string { return m.html }

// SetHTML sets the HTML alternative body. An empty string means the message
// has no HTML part.
func (m *Message) SetHTML(s string) { m.html = s }

// Date returns the date of the message. The zero time means the date will be
// taken from the compiler clock when the message is compiled.
func (m *Message) Date() time.Time { return m.date }

// SetDate sets the date of the message.
func (m *Message) SetDate(t time.Time) { m.date = t }

// SetDateUnix sets the date of the message from a POSIX timestamp in
// seconds. Fractional seconds are kept.
func (m *Message) SetDateUnix(ts float64) {
	sec, frac := math.Modf(ts)
	m.date = time.Unix(int64(sec), int64(math.Round(frac*1e9)))
}

// SetDateString parses s as a date in any of the common formats understood
// by header.ParseTime and sets the date of the message.
func (m *Message) SetDateString(s string) error {
	t, err := header.ParseTime(s)
	if err != nil {
		return err
	}
	m.date = t
	return nil
}

// Charset returns the charset used for the bodies, the subject, and display
// names. It is field.DefaultCharset unless set.
func (m *Message) Charset() string {
	if m.charset == "" {
		return field.DefaultCharset
	}
	return m.charset
}

// SetCharset sets the charset. Any charset known to the IANA registry may be
// used. Text the charset cannot represent is written as UTF-8 instead.
func (m *Message) SetCharset(cs string) { m.charset = cs }

// SetHeader sets an extra header field to be written verbatim after the
// standard fields. Names are compared case-insensitively. Setting the same
// name again replaces the value. A name matching a standard field, such as
// "Subject", replaces that field.
func (m *Message) SetHeader(name, value string) {
	m.headers.Set(strings.ToLower(name), extraHeader{name, value})
}

// Header returns the value of an extra header set with SetHeader.
func (m *Message) Header(name string) (string, bool) {
	h, ok := m.headers.Get(strings.ToLower(name))
	return h.value, ok
}

// DeleteHeader removes an extra header set with SetHeader.
func (m *Message) DeleteHeader(name string) {
	m.headers.Delete(strings.ToLower(name))
}

// HeaderNames returns the names of the extra headers in the order they were
// first set.
func (m *Message) HeaderNames() []string {
	names := make([]string, 0, m.headers.Len())
	m.headers.Each(func(_ string, h extraHeader) bool {
		names = append(names, h.name)
		return true
	})
	return names
}

func newResource(name string, data []byte, mediaType string) Resource {
	cp := make([]byte, len(data))
	copy(cp, data)
	return Resource{Name: name, Data: cp, MediaType: mediaType}
}

// AddInline adds a resource to be displayed as part of the body, such as an
// image referenced from the HTML as "cid:<cid>". The mediaType may be empty
// to have it guessed from cid. Adding the same cid again overwrites the
// earlier resource in place. The data is copied.
func (m *Message) AddInline(cid string, data []byte, mediaType string) {
	m.inline.Set(cid, newResource(cid, data, mediaType))
}

// Inline returns the inline resource with the given content-id.
func (m *Message) Inline(cid string) (Resource, bool) {
	return m.inline.Get(cid)
}

// InlineIDs returns the content-ids of the inline resources in insertion
// order.
func (m *Message) InlineIDs() []string {
	return m.inline.Keys()
}

// AddAttachment adds a file attachment. The mediaType may be empty to have it
// guessed from filename. Adding the same filename again overwrites the
// earlier attachment in place. The data is copied.
func (m *Message) AddAttachment(filename string, data []byte, mediaType string) {
	m.attachments.Set(filename, newResource(filename, data, mediaType))
}

// Attachment returns the attachment with the given filename.
func (m *Message) Attachment(filename string) (Resource, bool) {
	return m.attachments.Get(filename)
}

// AttachmentNames returns the attachment filenames in insertion order.
func (m *Message) AttachmentNames() []string {
	return m.attachments.Keys()
}

// Recipients returns every envelope recipient: To, then CC, then BCC.
func (m *Message) Recipients() []string {
	all := make([]string, 0, len(m.to)+len(m.cc)+len(m.bcc))
	all = append(all, m.to...)
	all = append(all, m.cc...)
	all = append(all, m.bcc...)
	return all
}

// validate checks the compile preconditions.
func (m *Message) validate() error {
	switch {
	case m.sender == "":
		return ErrMissingSender
	case len(m.to)+len(m.cc)+len(m.bcc) == 0:
		return ErrMissingRecipients
	case !m.hasSubject:
		return ErrMissingSubject
	}
	return nil
}

// String returns a short summary of the message for logging.
func (m *Message) String() string {
	return fmt.Sprintf("<Message from=%q to=%q subject=%q body_len=%d>",
		m.sender, m.to, m.subject, len(m.body))
}
