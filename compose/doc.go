// Package compose turns a logical email message into a serialized MIME
// document ready for delivery.
//
// A Message holds the sender, recipients, subject, bodies, inline resources,
// and attachments. Compiling it builds the part tree from the inside out:
//
//	text/plain                                  body only
//	multipart/alternative [plain, html]         with HTML
//	multipart/related [..., inline...]          with inline resources
//	multipart/mixed [..., attachment...]        with attachments
//
// Each wrapper is added only when it is needed. The result is an Envelope
// holding the envelope sender, every recipient (To, then CC, then BCC), and
// the document.
//
//	m := compose.New(
//		compose.From("Ann <ann@example.com>"),
//		compose.To("bob@example.com"),
//		compose.Subject("Hi"),
//		compose.Body("hello"),
//	)
//
//	env, err := m.Compile()
//
// Non-ASCII subjects and display names are written as RFC 2047 encoded
// words in the message charset, which is UTF-8 unless changed.
package compose
