package compose

import (
	"bytes"
	"time"

	"github.com/zostay/postbox/message/header"
	_ "github.com/zostay/postbox/message/header/encoding" // install IANA charsets
	"github.com/zostay/postbox/mimetype"
)

// Compiler turns a Message into an Envelope. A Compiler is immutable once
// built and is safe for concurrent use, but each Message being compiled must
// not be modified during compilation.
type Compiler struct {
	guesser  mimetype.Guesser
	clock    func() time.Time
	boundary func() string
	lbr      header.Break
}

func (c *Compiler) clone() *Compiler {
	cc := *c
	return &cc
}

var defaultCompiler = &Compiler{
	guesser: mimetype.Default,
	clock:   time.Now,
	lbr:     header.CRLF,
}

// CompileOption refers to options that may be passed to NewCompiler or
// Compile to modify how messages are compiled.
type CompileOption func(c *Compiler)

// WithTypeGuesser is a CompileOption that sets the Guesser used to type
// inline resources and attachments that have no explicit media type. The
// default is mimetype.Default.
func WithTypeGuesser(g mimetype.Guesser) CompileOption {
	return func(c *Compiler) { c.guesser = g }
}

// WithClock is a CompileOption that sets the function used to date messages
// with no date set. The default is time.Now.
func WithClock(clock func() time.Time) CompileOption {
	return func(c *Compiler) { c.clock = clock }
}

// WithBoundaryGenerator is a CompileOption that sets the function used to
// pick each multipart boundary. Every call must return a boundary that does
// not appear in the content. By default each boundary comes from
// message.GenerateSafeBoundary, checked against the bodies it encloses.
func WithBoundaryGenerator(gen func() string) CompileOption {
	return func(c *Compiler) { c.boundary = gen }
}

// WithBreak is a CompileOption that sets the line break used throughout the
// document. The default is header.CRLF, which is what mail transports
// expect.
func WithBreak(lbr header.Break) CompileOption {
	return func(c *Compiler) { c.lbr = lbr }
}

// NewCompiler returns a Compiler with the given options applied to the
// defaults.
func NewCompiler(opts ...CompileOption) *Compiler {
	c := defaultCompiler.clone()
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compile compiles m with the default settings modified by opts.
func Compile(m *Message, opts ...CompileOption) (*Envelope, error) {
	c := defaultCompiler
	if len(opts) > 0 {
		c = NewCompiler(opts...)
	}
	return c.Compile(m)
}

// Compile is shorthand for compose.Compile(m, opts...).
func (m *Message) Compile(opts ...CompileOption) (*Envelope, error) {
	return Compile(m, opts...)
}

// Compile assembles the message and serializes it. It fails with an error
// wrapping ErrPrecondition if the message has no sender, no recipients, or
// no subject. The message is not modified.
func (c *Compiler) Compile(m *Message) (*Envelope, error) {
	root, err := c.Assemble(m)
	if err != nil {
		return nil, err
	}

	doc := &bytes.Buffer{}
	if _, err := root.WriteTo(doc); err != nil {
		return nil, err
	}

	return &Envelope{
		Sender:     m.sender,
		Recipients: m.Recipients(),
		Document:   doc.Bytes(),
	}, nil
}
