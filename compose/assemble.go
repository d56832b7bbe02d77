package compose

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/zostay/postbox/message"
	"github.com/zostay/postbox/message/header"
	"github.com/zostay/postbox/message/header/field"
	"github.com/zostay/postbox/message/header/param"
	"github.com/zostay/postbox/message/transfer"
)

const (
	// DefaultMediaType is the type given to resources whose type cannot be
	// determined or that are compressed.
	DefaultMediaType = "application/octet-stream"

	// MaxLineLength is the longest line, not counting the break, allowed in
	// a 7bit part.
	MaxLineLength = 998

	presentationInline     = "inline"
	presentationAttachment = "attachment"
)

// Assemble builds the part tree of m with the complete header on the root,
// but does not serialize it. Each leaf can only be written once.
//
// The root is a text/plain part, wrapped in multipart/alternative when there
// is HTML, then in multipart/related when there are inline resources, then in
// multipart/mixed when there are attachments.
func (c *Compiler) Assemble(m *Message) (message.Part, error) {
	if err := m.validate(); err != nil {
		return nil, err
	}

	cs := m.Charset()

	var root message.Part = c.textPart("plain", m.body, cs)

	if m.html != "" {
		root = c.container(message.MultipartAlternative(root, c.textPart("html", m.html, cs)))
	}

	if m.inline.Len() > 0 {
		parts := []message.Part{root}
		m.inline.Each(func(cid string, r Resource) bool {
			leaf := c.typedLeaf(r)
			leaf.SetContentID(cid)
			leaf.SetPresentation(presentationInline)
			parts = append(parts, leaf)
			return true
		})
		root = c.container(message.MultipartRelated(parts...))
	}

	if m.attachments.Len() > 0 {
		parts := []message.Part{root}
		m.attachments.Each(func(fn string, r Resource) bool {
			leaf := c.typedLeaf(r)
			leaf.SetParamValue(header.ContentDisposition,
				param.NewWithParams(presentationAttachment, map[string]string{
					param.Filename: fn,
				}))
			parts = append(parts, leaf)
			return true
		})
		root = c.container(message.MultipartMixed(parts...))
	}

	c.assignHeaders(root.GetHeader(), m)

	return root, nil
}

// assignHeaders puts the message fields at the top of the root header, ahead
// of the content fields already there, then applies the extra headers.
func (c *Compiler) assignHeaders(h *header.Header, m *Message) {
	cs := m.Charset()

	date := m.date
	if date.IsZero() {
		date = c.clock()
	}

	ix := 0
	insert := func(name, body string) {
		h.InsertBeforeField(ix, name, body)
		ix++
	}

	insert(header.From, header.EncodeAddress(m.sender, cs))
	insert(header.To, header.EncodeAddressList(m.to, cs))
	insert(header.Subject, field.Encode(m.subject, cs))
	if len(m.cc) > 0 {
		insert(header.Cc, header.EncodeAddressList(m.cc, cs))
	}
	if len(m.replyTo) > 0 {
		insert(header.ReplyTo, header.EncodeAddressList(m.replyTo, cs))
	}
	insert(header.Date, date.Format(time.RFC1123Z))
	insert(header.MIMEVersion, "1.0")

	m.headers.Each(func(_ string, eh extraHeader) bool {
		h.Set(eh.name, eh.value)
		return true
	})
}

func (c *Compiler) newBuffer() *message.Buffer {
	buf := &message.Buffer{}
	buf.SetBreak(c.lbr)
	return buf
}

// container gives a multipart the document's line break and, when a
// boundary generator is set, a boundary from it.
func (c *Compiler) container(mm *message.Multipart) *message.Multipart {
	mm.SetBreak(c.lbr)
	if c.boundary != nil {
		_ = mm.SetBoundary(c.boundary())
	}
	return mm
}

// isASCII reports whether every byte of b is 7-bit.
func isASCII(b []byte) bool {
	for _, c := range b {
		if c >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// encodeText transcodes s into charset. If the charset cannot represent s,
// the text is kept as UTF-8 and the UTF-8 charset is returned instead.
func encodeText(s, charset string) ([]byte, string) {
	if field.IsUTF8Charset(charset) {
		return []byte(s), charset
	}

	if field.IsASCIICharset(charset) && !isASCII([]byte(s)) {
		return []byte(s), field.DefaultCharset
	}

	b, err := field.CharsetEncoder(charset, s)
	if err != nil {
		return []byte(s), field.DefaultCharset
	}
	return b, charset
}

// textPart builds an inline text/<subtype> body part.
func (c *Compiler) textPart(subtype, text, charset string) *message.Opaque {
	data, cs := encodeText(text, charset)
	data = transfer.NormalizeBreaks(data, c.lbr)

	buf := c.newBuffer()
	buf.SetContentType(param.NewWithParams("text/"+subtype, map[string]string{
		param.Charset: cs,
	}))

	if isASCII(data) && transfer.LongestLine(data) < MaxLineLength {
		buf.SetTransferEncoding(transfer.Bit7)
	} else {
		buf.SetTransferEncoding(transfer.QuotedPrintable)
	}

	buf.SetPresentation(presentationInline)

	buf.SetSingle()
	_, _ = buf.Write(data)

	return buf.Opaque()
}

// resolveType picks the media type for a resource, falling back to
// DefaultMediaType.
func (c *Compiler) resolveType(r Resource) *param.Value {
	mt := r.MediaType
	if mt == "" {
		var enc string
		mt, enc = c.guesser.GuessType(r.Name)
		if enc != "" {
			mt = ""
		}
	}

	if mt == "" {
		return param.New(DefaultMediaType)
	}

	pv, err := param.Parse(mt)
	if err != nil || !strings.Contains(pv.MediaType(), "/") {
		return param.New(DefaultMediaType)
	}

	return pv
}

// typedLeaf builds the part for an inline resource or attachment. Text is
// labeled with a charset when one can be determined and sent as 7bit when
// possible. Everything else is base64.
func (c *Compiler) typedLeaf(r Resource) *message.Opaque {
	ct := c.resolveType(r)
	data := r.Data

	buf := c.newBuffer()

	te := transfer.Base64
	if ct.Type() == "text" {
		ascii := isASCII(data)

		if ct.Charset() == "" {
			switch {
			case ascii:
				ct = param.Modify(ct, param.Set(param.Charset, "us-ascii"))
			case utf8.Valid(data):
				ct = param.Modify(ct, param.Set(param.Charset, field.DefaultCharset))
			}
		}

		if ascii {
			data = transfer.NormalizeBreaks(data, c.lbr)
			if transfer.LongestLine(data) < MaxLineLength {
				te = transfer.Bit7
			} else {
				data = r.Data
			}
		}
	}

	buf.SetContentType(ct)
	buf.SetTransferEncoding(te)

	buf.SetSingle()
	_, _ = buf.Write(data)

	return buf.Opaque()
}
