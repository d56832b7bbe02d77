// Package transfer contains the Content-Transfer-Encoding writers used when
// a message is serialized. Only quoted-printable and base64 change the bytes
// written. The 7bit, 8bit, and binary encodings leave them as-is.
//
// Every encoder writes line breaks using the header.Break it is given, so a
// document assembled with LF breaks stays LF throughout.
package transfer
