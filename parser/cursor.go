package parser

import (
	"io"
	"unicode/utf8"

	"github.com/tdewolff/parse/v2"
)

// inputCharacter is one consumed character, or the end of the stream.
type inputCharacter struct {
	r   rune
	eof bool
}

var eofCharacter = inputCharacter{eof: true}

func (c inputCharacter) isEOF() bool {
	return c.eof
}

func (c inputCharacter) isASCIIUpper() bool {
	return !c.eof && c.r >= 'A' && c.r <= 'Z'
}

func (c inputCharacter) isASCIILower() bool {
	return !c.eof && c.r >= 'a' && c.r <= 'z'
}

func (c inputCharacter) isASCIIAlpha() bool {
	return c.isASCIIUpper() || c.isASCIILower()
}

func (c inputCharacter) isASCIIDigit() bool {
	return !c.eof && c.r >= '0' && c.r <= '9'
}

func (c inputCharacter) isASCIIHexDigit() bool {
	return c.isASCIIDigit() || (!c.eof && ((c.r >= 'a' && c.r <= 'f') || (c.r >= 'A' && c.r <= 'F')))
}

func (c inputCharacter) isASCIIAlphanumeric() bool {
	return c.isASCIIAlpha() || c.isASCIIDigit()
}

// isWhitespace matches tab, line feed, form feed and space. Carriage returns
// never reach the tokenizer.
func (c inputCharacter) isWhitespace() bool {
	if c.eof {
		return false
	}
	switch c.r {
	case '\u0009', '\u000A', '\u000C', ' ':
		return true
	}
	return false
}

// lower folds ASCII upper case letters.
func (c inputCharacter) lower() rune {
	if c.isASCIIUpper() {
		return c.r + 0x20
	}
	return c.r
}

// characterCursor hands out the characters of the input one at a time. The
// whole input is read up front into a parse.Input.
type characterCursor struct {
	input  *parse.Input
	marked bool
	mark   int
}

func newCharacterCursor(r io.Reader) *characterCursor {
	return &characterCursor{
		input: parse.NewInput(r),
	}
}

// err returns the error the underlying reader failed with, if any.
func (c *characterCursor) err() error {
	if err := c.input.Err(); err != nil && err != io.EOF {
		return err
	}
	return nil
}

// next consumes one character. CR and CRLF both come out as LF.
func (c *characterCursor) next() inputCharacter {
	if c.input.PeekErr(0) != nil {
		c.input.Restore()
		return eofCharacter
	}

	r, n := utf8.DecodeRune(c.input.Bytes()[c.input.Offset():])
	c.input.Move(n)
	if r == '\r' {
		if c.input.PeekErr(0) == nil && c.input.Peek(0) == '\n' {
			c.input.Move(1)
		}
		r = '\n'
	}
	return inputCharacter{r: r}
}

// setMark remembers the current position so reset can return to it.
func (c *characterCursor) setMark() {
	c.marked = true
	c.mark = c.input.Pos()
}

// reset rewinds to the mark and clears it. Without a mark it does nothing.
func (c *characterCursor) reset() {
	if !c.marked {
		return
	}
	c.input.Rewind(c.mark)
	c.marked = false
}

// release drops the mark without moving.
func (c *characterCursor) release() {
	c.marked = false
}

// consumeIf consumes lit if the input continues with it. With fold set the
// comparison ignores ASCII case; lit is then expected in upper case.
func (c *characterCursor) consumeIf(lit string, fold bool) bool {
	c.setMark()
	for _, want := range lit {
		got := c.next()
		if got.isEOF() {
			c.reset()
			return false
		}
		r := got.r
		if fold && got.isASCIILower() {
			r -= 0x20
		}
		if r != want {
			c.reset()
			return false
		}
	}
	c.release()
	return true
}

// snippet returns up to n bytes of input that have not been consumed yet.
func (c *characterCursor) snippet(n int) string {
	rest := c.input.Bytes()[c.input.Offset():]
	if len(rest) > n {
		rest = rest[:n]
	}
	return string(rest)
}
