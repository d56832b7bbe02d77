package message

import (
	"bytes"
	"errors"

	"github.com/zostay/postbox/message/header"
)

const (
	// DefaultMultipartContentType is the Content-Type to use with a multipart
	// message when no explicit Content-Type header has been set.
	DefaultMultipartContentType = "multipart/mixed"
)

// BufferMode describes how a Buffer is being used.
type BufferMode int

const (
	// ModeUnset indicates that the Buffer has not yet been modified.
	ModeUnset BufferMode = iota

	// ModeSingle indicates that the Buffer has been used as an io.Writer.
	ModeSingle

	// ModeMultipart indicates that the Buffer has had the parts manipulated.
	ModeMultipart
)

var (
	// ErrPartsBuffer is the panic value when Write() is called after calling
	// the Add() method.
	ErrPartsBuffer = errors.New("message buffer is in parts mode")

	// ErrSingleBuffer is the panic value when Add() is called after calling
	// the Write() method. It is also returned by Multipart() when the Buffer
	// is in ModeSingle.
	ErrSingleBuffer = errors.New("message buffer is in single mode")

	// ErrModeUnset is the panic value of Opaque() and Multipart() when they
	// are called before anything has been written to the current buffer.
	ErrModeUnset = errors.New("no message has been built")

	// ErrMultipartBuffer is the panic value of Opaque() when the Buffer is in
	// ModeMultipart.
	ErrMultipartBuffer = errors.New("message buffer holds parts, not bytes")
)

// Buffer provides tools for constructing email messages. It can operate in
// either of two modes, depending on how you want to construct your message.
//
// * Single mode. When you use the Buffer as an io.Writer by calling the
// Write() method, you have chosen to treat the part as a collection of
// bytes.
//
// * Multipart mode. When you use the Buffer to manipulate the parts of the
// message, such as calling the Add() method, you have chosen to treat the
// part as a collection of sub-parts.
//
// You may not use a Buffer in both modes. Mixing them is a programming error
// and panics.
//
// The BufferMode may be checked using the Mode() method.
type Buffer struct {
	header.Header
	parts []Part
	buf   *bytes.Buffer
}

// Mode returns a constant that indicates what mode the Buffer is in. Until a
// modification method is called, this will return ModeUnset. Once a
// modification method is called, it will return ModeSingle if the Buffer has
// been used as an io.Writer or ModeMultipart if parts have been added to the
// Buffer.
func (b *Buffer) Mode() BufferMode {
	if b.parts != nil {
		return ModeMultipart
	} else if b.buf != nil {
		return ModeSingle
	}
	return ModeUnset
}

// SetMultipart sets the Mode of the buffer to ModeMultipart. When calling
// this method, you need to pass the expected capacity of the multipart
// message. This will panic if the mode is already ModeSingle.
func (b *Buffer) SetMultipart(capacity int) {
	err := b.initParts(capacity)
	if err != nil {
		panic(err)
	}
}

// SetSingle sets the Mode of the buffer to ModeSingle. This is useful when
// the content is to be empty. This will panic if the mode is already
// ModeMultipart.
func (b *Buffer) SetSingle() {
	err := b.initBuffer()
	if err != nil {
		panic(err)
	}
}

func (b *Buffer) initBuffer() error {
	if b.parts != nil {
		return ErrPartsBuffer
	}
	if b.buf == nil {
		b.buf = &bytes.Buffer{}
	}
	return nil
}

func (b *Buffer) initParts(capacity int) error {
	if capacity == 0 {
		capacity = 10
	}
	if b.buf != nil {
		return ErrSingleBuffer
	}
	if b.parts == nil {
		b.parts = make([]Part, 0, capacity)
	}
	return nil
}

// Add will add one or more parts to the message. It will panic if you attempt
// to call this function after already calling Write() or using this object as
// an io.Writer.
func (b *Buffer) Add(msgs ...Part) {
	if err := b.initParts(0); err != nil {
		panic(err)
	}
	b.parts = append(b.parts, msgs...)
}

// Write implements io.Writer so you can write the message to this buffer. This
// will panic if you attempt to call this method or use this object as an
// io.Writer after calling Add.
func (b *Buffer) Write(p []byte) (int, error) {
	if err := b.initBuffer(); err != nil {
		panic(err)
	}
	return b.buf.Write(p)
}

func (b *Buffer) prepareForMultipartOutput() {
	if _, err := b.GetMediaType(); errors.Is(err, header.ErrNoSuchField) {
		b.SetMediaType(DefaultMultipartContentType)
	}

	if _, err := b.GetBoundary(); errors.Is(err, header.ErrNoSuchFieldParameter) {
		_ = b.SetBoundary(GenerateSafeBoundary(leafBodies(b.parts)...))
	}
}

// Opaque will return an Opaque message holding the Header and the bytes
// written to the Buffer.
//
// This method will panic if the BufferMode is ModeUnset, or with
// ErrMultipartBuffer if it is ModeMultipart. Use Multipart for those.
//
// After this method is called, the Buffer should be disposed of and no longer
// used.
func (b *Buffer) Opaque() *Opaque {
	switch b.Mode() {
	case ModeSingle:
		return &Opaque{
			Header: b.Header,
			Reader: b.buf,
		}
	case ModeMultipart:
		panic(ErrMultipartBuffer)
	case ModeUnset:
		panic(ErrModeUnset)
	}
	panic("unknown buffer mode")
}

// Multipart will return a Multipart message based upon the parts added to
// the Buffer.
//
// Whenever you plan on calling this method, you should set the Content-Type
// header yourself to one of the multipart/* types (e.g.,
// multipart/alternative if you are providing text and HTML forms of the same
// message or multipart/mixed if you are providing attachments). If you do
// not provide that header yourself, this method will set it to
// DefaultMultipartContentType, which may not be what you want.
//
// It will also check to see if the Content-Type boundary is set and set it to
// something random using GenerateSafeBoundary() automatically.
//
// If the BufferMode is ModeUnset, this method will panic. If the BufferMode
// is ModeSingle, it returns ErrSingleBuffer.
//
// After this method is called, the Buffer should be disposed of and no longer
// used.
func (b *Buffer) Multipart() (*Multipart, error) {
	switch b.Mode() {
	case ModeSingle:
		return nil, ErrSingleBuffer
	case ModeMultipart:
		b.prepareForMultipartOutput()
		return &Multipart{
			Header: b.Header,
			parts:  b.parts,
		}, nil
	case ModeUnset:
		panic(ErrModeUnset)
	}
	panic("unknown buffer mode")
}
