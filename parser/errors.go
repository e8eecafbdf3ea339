package parser

import "github.com/pkg/errors"

// ErrParserConsumed is returned when Start is called on a Parser that already
// ran.
var ErrParserConsumed = errors.New("parser already consumed its input")

// parseError is a recoverable error in the markup. They are logged, never
// returned.
type parseError uint

const (
	noError parseError = iota
	generalParseError
	unexpectedDoctype
	unexpectedEndTag
	unexpectedStartTag
	unexpectedEOF
	unhandledMode
)

var parseErrorNames = [...]string{
	noError:            "no error",
	generalParseError:  "parse error",
	unexpectedDoctype:  "unexpected doctype",
	unexpectedEndTag:   "unexpected end tag",
	unexpectedStartTag: "unexpected start tag",
	unexpectedEOF:      "unexpected end of file",
	unhandledMode:      "unhandled insertion mode",
}

func (e parseError) String() string {
	if int(e) < len(parseErrorNames) {
		return parseErrorNames[e]
	}
	return "unknown parse error"
}
