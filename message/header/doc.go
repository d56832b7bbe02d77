// Package header provides low-level and high-level tooling for building email
// message headers. The Base type keeps an ordered list of field.Field objects
// and writes them out folded. The Header type wraps Base with getters and
// setters for the fields a MIME message needs, keeping what you read and
// write strictly correct on output.
//
// Text placed in a header must be ASCII. Use EncodeAddress, EncodeAddressList
// and field.Encode to turn arbitrary Unicode into RFC 2047 encoded words first.
package header
