// Package param provides tools for working with header fields that carry a
// primary value followed by parameters, such as Content-Type and
// Content-Disposition.
package param

import (
	"mime"
	"sort"
	"strings"
)

const (
	// Charset is the name of the charset parameter that may be present in the
	// Content-Type header.
	Charset = "charset"

	// Boundary is the name of the boundary parameter that may be present in
	// the Content-Type header.
	Boundary = "boundary"

	// Filename is the name of the filename parameter that may be present in
	// the Content-Disposition header.
	Filename = "filename"
)

// Value represents a parsed parameterized header field. A Value is
// immutable. Use Modify() to derive a changed copy.
type Value struct {
	v  string
	ps map[string]string
}

// Parse takes a header field body, parses it as a Value and returns it. If an
// error occurs in the process, it returns an error.
func Parse(v string) (*Value, error) {
	mt, ps, err := mime.ParseMediaType(v)
	if err != nil {
		return nil, err
	}

	return &Value{mt, ps}, nil
}

// New creates a new parameterized header field with no parameters.
func New(v string) *Value {
	return &Value{v, map[string]string{}}
}

// NewWithParams creates a new parameterized header field with the given
// parameters. The map is copied.
func NewWithParams(v string, ps map[string]string) *Value {
	pv := New(v)
	for k, p := range ps {
		pv.ps[strings.ToLower(k)] = p
	}
	return pv
}

// Modifier is a modification to apply to a Value when calling Modify().
type Modifier func(*Value)

// Change is a Modifier that replaces the primary value of the Value.
func Change(value string) Modifier {
	return func(pv *Value) {
		pv.v = value
	}
}

// Set is a Modifier that sets a parameter with the given name on the Value.
func Set(name, value string) Modifier {
	return func(pv *Value) {
		pv.ps[strings.ToLower(name)] = value
	}
}

// Delete is a Modifier that removes the parameter with the given name from
// the Value.
func Delete(name string) Modifier {
	return func(pv *Value) {
		delete(pv.ps, strings.ToLower(name))
	}
}

// Modify returns a copy of pv with the given modifications applied.
func Modify(pv *Value, changes ...Modifier) *Value {
	npv := pv.Clone()
	for _, change := range changes {
		change(npv)
	}
	return npv
}

// Clone returns a deep copy of the Value.
func (pv *Value) Clone() *Value {
	return NewWithParams(pv.v, pv.ps)
}

// Value returns the primary value, e.g., "text/plain" or "attachment".
func (pv *Value) Value() string {
	return pv.v
}

// MediaType is a synonym for Value, for readability with Content-Type.
func (pv *Value) MediaType() string {
	return pv.v
}

// Presentation is a synonym for Value, for readability with
// Content-Disposition.
func (pv *Value) Presentation() string {
	return pv.v
}

// Type returns the part of the media type before the slash, e.g., "text" for
// "text/plain". It returns the empty string if there is no slash.
func (pv *Value) Type() string {
	if t, _, found := strings.Cut(pv.v, "/"); found {
		return t
	}
	return ""
}

// Subtype returns the part of the media type after the slash, e.g., "plain"
// for "text/plain". It returns the empty string if there is no slash.
func (pv *Value) Subtype() string {
	if _, st, found := strings.Cut(pv.v, "/"); found {
		return st
	}
	return ""
}

// Parameter returns the named parameter or the empty string.
func (pv *Value) Parameter(k string) string {
	return pv.ps[strings.ToLower(k)]
}

// Parameters returns a copy of all parameters.
func (pv *Value) Parameters() map[string]string {
	ps := make(map[string]string, len(pv.ps))
	for k, v := range pv.ps {
		ps[k] = v
	}
	return ps
}

// Charset returns the charset parameter.
func (pv *Value) Charset() string {
	return pv.Parameter(Charset)
}

// Boundary returns the boundary parameter.
func (pv *Value) Boundary() string {
	return pv.Parameter(Boundary)
}

// Filename returns the filename parameter.
func (pv *Value) Filename() string {
	return pv.Parameter(Filename)
}

// String returns the serialized field body. Parameter values are quoted
// where required, and non-ASCII values are written using the RFC 2231
// extended syntax. Should the primary value not be a valid token, the value
// and parameters are written as-is instead.
func (pv *Value) String() string {
	if s := mime.FormatMediaType(pv.v, pv.ps); s != "" {
		return s
	}

	keys := make([]string, 0, len(pv.ps))
	for k := range pv.ps {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString(pv.v)
	for _, k := range keys {
		sb.WriteString("; ")
		sb.WriteString(k)
		sb.WriteString("=")
		sb.WriteString(pv.ps[k])
	}
	return sb.String()
}
