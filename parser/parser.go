package parser

import (
	"io"
	"strings"

	"github.com/heathj/gobrowse/parser/spec"
	"github.com/pkg/errors"
)

// Parser runs one document through the tokenizer and the tree constructor.
// A Parser is single use; parse several documents with several Parsers.
type Parser struct {
	Tokenizer       *HTMLTokenizer
	TreeConstructor *HTMLTreeConstructor
	consumed        bool
}

// NewParser creates a Parser reading from htmlIn.
func NewParser(htmlIn io.Reader, opts ...Option) *Parser {
	tokenizer := NewHTMLTokenizer(htmlIn, opts...)
	treeConstructor := NewHTMLTreeConstructor(tokenizer, opts...)
	return &Parser{
		Tokenizer:       tokenizer,
		TreeConstructor: treeConstructor,
	}
}

// Start parses the whole input and hands the document to the caller. It
// returns ErrParserConsumed when called a second time, and the reader's
// error, if any, along with whatever was built before it.
func (p *Parser) Start() (*spec.Node, error) {
	if p.consumed {
		return nil, ErrParserConsumed
	}
	p.consumed = true

	doc := p.TreeConstructor.ConstructTree()
	if err := p.Tokenizer.Err(); err != nil {
		return doc, errors.Wrap(err, "reading input")
	}
	return doc, nil
}

// Truncated reports whether the tokenizer ended the stream early at a state
// it does not handle, so the document may be missing trailing content.
func (p *Parser) Truncated() bool {
	return p.Tokenizer.Truncated()
}

// Parse parses a whole document from r.
func Parse(r io.Reader, opts ...Option) (*spec.Node, error) {
	return NewParser(r, opts...).Start()
}

// ParseString parses a whole document held in s.
func ParseString(s string, opts ...Option) (*spec.Node, error) {
	return Parse(strings.NewReader(s), opts...)
}

// Tokenize returns every token of r, ending with the end of file token. The
// tokenizer runs on its own, so raw text elements are tokenized as markup.
func Tokenize(r io.Reader, opts ...Option) ([]Token, error) {
	tokenizer := NewHTMLTokenizer(r, opts...)
	tokens := []Token{}
	for {
		t := tokenizer.NextToken()
		tokens = append(tokens, t)
		if t.TokenType == EndOfFileToken {
			break
		}
	}
	if err := tokenizer.Err(); err != nil {
		return tokens, errors.Wrap(err, "reading input")
	}
	return tokens, nil
}
