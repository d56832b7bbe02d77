package field

import (
	"bytes"
	"errors"
	"io"
	"strings"
)

const (
	DefaultFoldIndent          = " "  // indent placed before folded lines
	DefaultPreferredFoldLength = 78   // we prefer header lines no longer than this
	DefaultForcedFoldLength    = 998  // we forcibly break header lines longer than this

	DoNotFold = -1 // we prefer not to fold at all
)

var (
	// DefaultFoldEncoding folds using the default settings. This is what a
	// header uses unless told otherwise.
	DefaultFoldEncoding = &FoldEncoding{
		DefaultFoldIndent,
		DefaultPreferredFoldLength,
		DefaultForcedFoldLength,
	}

	// DoNotFoldEncoding is a FoldEncoding that doesn't perform folding.
	DoNotFoldEncoding = &FoldEncoding{
		DefaultFoldIndent,
		DoNotFold,
		DoNotFold,
	}
)

var (
	// ErrFoldIndentSpace is returned by NewFoldEncoding when a non-space/non-tab
	// character is put in the foldIndent setting.
	ErrFoldIndentSpace = errors.New("fold indent may only contains spaces and tabs")

	// ErrFoldIndentTooShort is returned by NewFoldEncoding when the foldIndent
	// is empty.
	ErrFoldIndentTooShort = errors.New("fold indent must contain at least one space or tab")

	// ErrFoldIndentTooLong is returned by NewFoldEncoding when the foldIndent
	// setting is equal to or longer than the preferredFoldLength.
	ErrFoldIndentTooLong = errors.New("fold indent must be shorter than the preferred fold length")

	// ErrFoldLengthTooLong is returned by NewFoldEncoding when the
	// preferredFoldLength is longer than the forcedFoldLength.
	ErrFoldLengthTooLong = errors.New("preferred fold length must be no longer than the forced fold length")

	// ErrFoldLengthTooShort is returned by NewFoldEncoding when either fold
	// length is too short to be workable.
	ErrFoldLengthTooShort = errors.New("preferred fold length and forced fold length cannot be too short")

	// ErrDoNotFold is returned by NewFoldEncoding when only one of the two
	// lengths is set to DoNotFold.
	ErrDoNotFold = errors.New("preferred fold length and forced fold length must both be -1 if either are -1")
)

// FoldEncoding provides the tooling for folding email message headers.
type FoldEncoding struct {
	foldIndent          string
	preferredFoldLength int
	forcedFoldLength    int
}

// NewFoldEncoding creates a new FoldEncoding with the given settings. The
// foldIndent must be one or more space or tab characters and shorter than the
// preferredFoldLength. The preferredFoldLength must be no longer than the
// forcedFoldLength. Use DoNotFold for both lengths to turn folding off.
func NewFoldEncoding(
	foldIndent string,
	preferredFoldLength,
	forcedFoldLength int,
) (*FoldEncoding, error) {
	if ix := strings.IndexFunc(foldIndent, func(c rune) bool { return !isSpace(c) }); ix >= 0 {
		return nil, ErrFoldIndentSpace
	}

	if len(foldIndent) < 1 {
		return nil, ErrFoldIndentTooShort
	}

	if (preferredFoldLength == DoNotFold) != (forcedFoldLength == DoNotFold) {
		return nil, ErrDoNotFold
	}

	if preferredFoldLength != DoNotFold {
		if len(foldIndent) >= preferredFoldLength {
			return nil, ErrFoldIndentTooLong
		}

		if preferredFoldLength > forcedFoldLength {
			return nil, ErrFoldLengthTooLong
		}

		if preferredFoldLength < 10 {
			return nil, ErrFoldLengthTooShort
		}
	}

	return &FoldEncoding{foldIndent, preferredFoldLength, forcedFoldLength}, nil
}

// Unfold removes the line breaks from a folded header line. This gives you
// the proper header body value.
func (vf *FoldEncoding) Unfold(f []byte) []byte {
	uf := make([]byte, 0, len(f))
	for _, b := range f {
		if !isCRLF(rune(b)) {
			uf = append(uf, b)
		}
	}
	return uf
}

func isCRLF(c rune) bool     { return c == '\r' || c == '\n' }
func isSpace(c rune) bool    { return c == ' ' || c == '\t' }
func isNonSpace(c rune) bool { return c != ' ' && c != '\t' }

// Fold writes the unfolded header line f to out, breaking it with lb into
// lines no longer than the preferred length wherever there is whitespace to
// break on. The break goes in front of the existing whitespace, which then
// starts the next line, so removing the line breaks gives back f exactly.
// A run of text with no whitespace is only broken when it would exceed the
// forced length. Such a break is never placed inside an RFC 2047 encoded
// word, and the fold indent is inserted to start the next line. Every line,
// including the last, is terminated with lb.
//
// Returns the number of bytes written.
func (vf *FoldEncoding) Fold(out io.Writer, f []byte, lb []byte) (int64, error) {
	var total int64
	write := func(parts ...[]byte) error {
		for _, p := range parts {
			n, err := out.Write(p)
			total += int64(n)
			if err != nil {
				return err
			}
		}
		return nil
	}

	if vf.preferredFoldLength == DoNotFold || len(f) <= vf.preferredFoldLength {
		return total, write(f, lb)
	}

	// never fold between the field name and the start of the body
	minBreak := 0
	if colon := bytes.IndexByte(f, ':'); colon >= 0 {
		if ix := bytes.IndexFunc(f[colon+1:], isNonSpace); ix >= 0 {
			minBreak = colon + 1 + ix
		}
	}

	var indent []byte
	line := f
	for len(line) > 0 {
		limit := vf.preferredFoldLength - len(indent)
		forced := vf.forcedFoldLength - len(indent)

		if len(line) <= limit {
			return total, write(indent, line, lb)
		}

		end := lastBreak(line, minBreak, limit)
		if end < 0 {
			end = firstBreak(line, minBreak, forced)
		}

		var next []byte
		if end < 0 {
			if len(line) <= forced {
				return total, write(indent, line, lb)
			}
			end = forcedBreak(line, minBreak, forced)
			next = []byte(vf.foldIndent)
		}

		if err := write(indent, line[:end], lb); err != nil {
			return total, err
		}

		line, indent, minBreak = line[end:], next, 0
	}

	return total, nil
}

// canBreak reports whether a line break may go in front of line[i]: it must
// be the first whitespace of a run that is followed by more text.
func canBreak(line []byte, i int) bool {
	if i == 0 || !isSpace(rune(line[i])) || isSpace(rune(line[i-1])) {
		return false
	}
	return bytes.IndexFunc(line[i:], isNonSpace) >= 0
}

// lastBreak returns the last break point past after and no later than
// limit, or -1.
func lastBreak(line []byte, after, limit int) int {
	if limit >= len(line) {
		limit = len(line) - 1
	}
	for i := limit; i > after; i-- {
		if canBreak(line, i) {
			return i
		}
	}
	return -1
}

// firstBreak returns the first break point past after and no later than
// forced, or -1.
func firstBreak(line []byte, after, forced int) int {
	for i := after + 1; i <= forced && i < len(line); i++ {
		if canBreak(line, i) {
			return i
		}
	}
	return -1
}

// forcedBreak picks where to cut a line with nowhere to fold. It backs off
// to the start of an encoded word that straddles forced, or moves past its
// end when the word starts the line.
func forcedBreak(line []byte, after, forced int) int {
	start := bytes.LastIndex(line[:forced], []byte("=?"))
	if start < 0 {
		return forced
	}

	if closing := bytes.Index(line[start+2:], []byte("?=")); closing >= 0 {
		wordEnd := start + 2 + closing + 2
		if wordEnd <= forced {
			return forced
		}
		if start > after {
			return start
		}
		if wordEnd < len(line) {
			return wordEnd
		}
	}

	return forced
}
