// Package postbox builds and sends email messages.
//
// The work is split by stage. A compose.Message collects what a person
// thinks of as an email: a sender, recipients, a subject, a plain text body,
// an optional HTML body, images referenced from that HTML, and attachments.
// Compiling it produces a compose.Envelope, which holds the envelope sender,
// every recipient (BCC included), and the complete RFC 5322 document.
//
// The document is put together from message.Opaque and message.Multipart
// parts. Plain text becomes a text/plain part, which is wrapped in
// multipart/alternative when there is HTML, in multipart/related when there
// are inline images, and in multipart/mixed when there are attachments.
// Header fields are folded and encoded by the message/header packages, so
// non-ASCII names and subjects arrive intact.
//
// An Envelope is handed to a transport.Transport for delivery. The transport
// sub-packages submit by SMTP, send through AWS SES, append to an IMAP
// folder, write to an mbox file, or print to a writer. The config package
// chooses and builds one from a YAML file and POSTBOX_* environment
// variables.
package postbox
