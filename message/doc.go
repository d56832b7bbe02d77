// Package message provides the part tree that a composed email is built
// from and the code that writes it out in the standard wire format.
//
// Every message is either an Opaque leaf, a header and a body, or a
// Multipart branch, a header and a list of sub-parts. Both implement Part.
// Parts are usually built with a Buffer:
//
//	text := &message.Buffer{}
//	text.SetMediaType("text/plain")
//	_, _ = fmt.Fprint(text, "Hello World!")
//
//	mixed := &message.Buffer{}
//	mixed.SetMediaType("multipart/mixed")
//	mixed.Add(text.Opaque())
//
//	msg, err := mixed.Multipart()
//
// Leaves are transfer encoded as they are written, according to their
// Content-Transfer-Encoding header.
package message
