// Package mimetype guesses the media type of a file from its name. It is
// used to type inline resources and attachments when no explicit type is
// given.
package mimetype

import (
	"mime"
	"path/filepath"
	"strings"
)

// Guesser looks up the media type for a file name.
//
// GuessType returns the media type (e.g., "image/png") or "" when the type
// is unknown. The encoding is non-empty when the name says the content is
// itself compressed (e.g., "gzip" for "notes.txt.gz"), in which case the
// media type describes the content after decompression.
type Guesser interface {
	GuessType(name string) (mediaType, encoding string)
}

// GuesserFunc adapts an ordinary function into a Guesser.
type GuesserFunc func(name string) (mediaType, encoding string)

// GuessType calls f(name).
func (f GuesserFunc) GuessType(name string) (string, string) {
	return f(name)
}

// Default is the Guesser used when none is configured. It consults a
// built-in table before falling back to the platform's mime.TypeByExtension.
var Default Guesser = &Table{
	Types:     defaultTypes,
	Encodings: defaultEncodings,
	Suffixes:  defaultSuffixes,
	Fallback:  true,
}

// Unknown is a Guesser that never knows the type.
var Unknown Guesser = GuesserFunc(func(string) (string, string) { return "", "" })

// Table is a Guesser driven by extension maps. Extensions are matched
// case-insensitively and include the leading dot.
type Table struct {
	// Types maps an extension to a media type.
	Types map[string]string

	// Encodings maps an extension to a content encoding, such as ".gz" to
	// "gzip".
	Encodings map[string]string

	// Suffixes maps shorthand extensions to the pair they stand for, such as
	// ".tgz" to ".tar.gz".
	Suffixes map[string]string

	// Fallback enables mime.TypeByExtension for extensions missing from
	// Types. Parameters it reports, such as charset, are dropped.
	Fallback bool
}

// GuessType implements Guesser.
func (t *Table) GuessType(name string) (string, string) {
	name = filepath.Base(name)
	ext := strings.ToLower(filepath.Ext(name))

	if full, ok := t.Suffixes[ext]; ok {
		name = strings.TrimSuffix(name, filepath.Ext(name)) + full
		ext = strings.ToLower(filepath.Ext(name))
	}

	encoding := ""
	if enc, ok := t.Encodings[ext]; ok {
		encoding = enc
		name = strings.TrimSuffix(name, filepath.Ext(name))
		ext = strings.ToLower(filepath.Ext(name))
	}

	if ext == "" {
		return "", encoding
	}

	if mt, ok := t.Types[ext]; ok {
		return mt, encoding
	}

	if t.Fallback {
		if mt := mime.TypeByExtension(ext); mt != "" {
			if parsed, _, err := mime.ParseMediaType(mt); err == nil {
				return parsed, encoding
			}
		}
	}

	return "", encoding
}
