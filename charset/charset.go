// Package charset resolves character encoding labels and finds the encoding
// a document declares for itself, so input can be handed to the parser as
// UTF-8.
package charset

import (
	"bytes"

	"github.com/pkg/errors"
	"github.com/tdewolff/parse/v2"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// prescanLen is how much of a document Prescan looks at.
const prescanLen = 1024

// Default is the encoding assumed when nothing else says otherwise.
const Default = "utf-8"

// ErrUnknownLabel is returned for a label no encoding answers to.
var ErrUnknownLabel = errors.New("unknown charset label")

var (
	charsetBytes     = []byte("charset")
	contentBytes     = []byte("content")
	httpEquivBytes   = []byte("http-equiv")
	contentTypeBytes = []byte("content-type")
	metaBytes        = []byte("<meta")
)

// Lookup resolves a label such as "latin1" or " UTF-8 " to an encoding and
// its canonical name.
func Lookup(label string) (encoding.Encoding, string, bool) {
	label = string(parse.ToLower(parse.TrimWhitespace([]byte(label))))
	if label == "" {
		return nil, "", false
	}
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, "", false
	}
	name, err := htmlindex.Name(enc)
	if err != nil {
		return nil, "", false
	}
	return enc, name, true
}

// ExtractFromMeta finds the charset parameter of a meta element's content
// attribute, e.g. "text/html; charset=utf-8". The label is returned as
// written.
// https://html.spec.whatwg.org/multipage/urls-and-fetching.html#extracting-character-encodings-from-meta-elements
func ExtractFromMeta(content string) (string, bool) {
	s := []byte(content)
	pos := 0
	for {
		i := indexFold(s[pos:], charsetBytes)
		if i < 0 {
			return "", false
		}
		pos += i + len(charsetBytes)
		pos = skipWhitespace(s, pos)
		if pos >= len(s) || s[pos] != '=' {
			continue
		}
		pos = skipWhitespace(s, pos+1)
		if pos >= len(s) {
			return "", false
		}

		switch q := s[pos]; q {
		case '"', '\'':
			end := bytes.IndexByte(s[pos+1:], q)
			if end < 0 {
				return "", false
			}
			return string(s[pos+1 : pos+1+end]), true
		}
		end := pos
		for end < len(s) && !parse.IsWhitespace(s[end]) && s[end] != ';' {
			end++
		}
		return string(s[pos:end]), true
	}
}

// FromBOM reports the encoding a byte order mark at the start of b names and
// the length of the mark.
func FromBOM(b []byte) (string, int, bool) {
	switch {
	case bytes.HasPrefix(b, []byte{0xEF, 0xBB, 0xBF}):
		return "utf-8", 3, true
	case bytes.HasPrefix(b, []byte{0xFE, 0xFF}):
		return "utf-16be", 2, true
	case bytes.HasPrefix(b, []byte{0xFF, 0xFE}):
		return "utf-16le", 2, true
	}
	return "", 0, false
}

// Prescan looks through the start of a document for a meta element that
// declares an encoding and returns its canonical name. Comments are skipped
// and declarations naming an unknown encoding are ignored.
// https://html.spec.whatwg.org/multipage/parsing.html#prescan-a-byte-stream-to-determine-its-encoding
func Prescan(b []byte) (string, bool) {
	if len(b) > prescanLen {
		b = b[:prescanLen]
	}

	for pos := 0; pos < len(b); {
		switch {
		case bytes.HasPrefix(b[pos:], []byte("<!--")):
			end := bytes.Index(b[pos+4:], []byte("-->"))
			if end < 0 {
				return "", false
			}
			pos += 4 + end + 3
		case hasPrefixFold(b[pos:], metaBytes) && pos+len(metaBytes) < len(b) &&
			(parse.IsWhitespace(b[pos+len(metaBytes)]) || b[pos+len(metaBytes)] == '/'):
			end := bytes.IndexByte(b[pos:], '>')
			if end < 0 {
				return "", false
			}
			if name, ok := metaCharset(b[pos+len(metaBytes) : pos+end]); ok {
				return name, true
			}
			pos += end + 1
		default:
			pos++
		}
	}
	return "", false
}

// metaCharset looks at the attributes of one meta tag.
func metaCharset(tag []byte) (string, bool) {
	var label string
	var gotCharset, gotPragma, needPragma bool
	for _, attr := range scanAttributes(tag) {
		switch {
		case bytes.Equal(attr.name, httpEquivBytes):
			if parse.EqualFold(attr.value, contentTypeBytes) {
				gotPragma = true
			}
		case bytes.Equal(attr.name, contentBytes):
			if gotCharset || label != "" {
				continue
			}
			if l, ok := ExtractFromMeta(string(attr.value)); ok {
				label = l
				needPragma = true
			}
		case bytes.Equal(attr.name, charsetBytes):
			if gotCharset {
				continue
			}
			gotCharset = true
			label = string(attr.value)
			needPragma = false
		}
	}
	if label == "" || (needPragma && !gotPragma) {
		return "", false
	}

	_, name, ok := Lookup(label)
	if !ok {
		return "", false
	}
	switch name {
	case "utf-16be", "utf-16le":
		name = "utf-8"
	case "x-user-defined":
		name = "windows-1252"
	}
	return name, true
}

type attribute struct {
	name, value []byte
}

// scanAttributes splits the inside of a tag into attributes. Names are
// lower cased.
func scanAttributes(b []byte) []attribute {
	var attrs []attribute
	pos := 0
	for {
		for pos < len(b) && (parse.IsWhitespace(b[pos]) || b[pos] == '/') {
			pos++
		}
		if pos >= len(b) {
			return attrs
		}

		start := pos
		for pos < len(b) && b[pos] != '=' && b[pos] != '/' && !parse.IsWhitespace(b[pos]) {
			pos++
		}
		attr := attribute{name: parse.ToLower(append([]byte{}, b[start:pos]...))}
		pos = skipWhitespace(b, pos)
		if pos < len(b) && b[pos] == '=' {
			pos = skipWhitespace(b, pos+1)
			if pos < len(b) && (b[pos] == '"' || b[pos] == '\'') {
				q := b[pos]
				end := bytes.IndexByte(b[pos+1:], q)
				if end < 0 {
					end = len(b) - pos - 1
				}
				attr.value = b[pos+1 : pos+1+end]
				pos += end + 2
			} else {
				start = pos
				for pos < len(b) && !parse.IsWhitespace(b[pos]) {
					pos++
				}
				attr.value = b[start:pos]
			}
		}
		attrs = append(attrs, attr)
	}
}

// DecodeToUTF8 converts a document to UTF-8. The encoding comes from a byte
// order mark, then label, then a meta declaration, then Default. The
// canonical name of the encoding used is returned with the result.
func DecodeToUTF8(b []byte, label string) ([]byte, string, error) {
	name, bom, ok := FromBOM(b)
	if !ok {
		switch {
		case label != "":
			if _, name, ok = Lookup(label); !ok {
				return nil, "", errors.Wrapf(ErrUnknownLabel, "%q", label)
			}
		default:
			if name, ok = Prescan(b); !ok {
				name = Default
			}
		}
	}

	b = b[bom:]
	if name == "utf-8" {
		return b, name, nil
	}
	enc, _, _ := Lookup(name)
	out, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return nil, name, errors.Wrapf(err, "decoding %s", name)
	}
	return out, name, nil
}

func skipWhitespace(b []byte, pos int) int {
	for pos < len(b) && parse.IsWhitespace(b[pos]) {
		pos++
	}
	return pos
}

func hasPrefixFold(b, lower []byte) bool {
	return len(b) >= len(lower) && parse.EqualFold(b[:len(lower)], lower)
}

// indexFold is bytes.Index ignoring ASCII case; lower must be lower case.
func indexFold(b, lower []byte) int {
	for i := 0; i+len(lower) <= len(b); i++ {
		if parse.EqualFold(b[i:i+len(lower)], lower) {
			return i
		}
	}
	return -1
}
