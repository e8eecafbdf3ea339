package parser

import (
	"io"

	"github.com/sirupsen/logrus"
)

const (
	// maxReconsume bounds how many states may hand one character to each
	// other before the tokenizer gives up on it.
	maxReconsume = 32
	// snippetLen is how much upcoming input an unhandled state reports.
	snippetLen = 40
)

// HTMLTokenizer holds state for the various state of the tokenizer.
type HTMLTokenizer struct {
	done                      bool
	sawEOF                    bool
	truncated                 bool
	returnState, currentState tokenizerState
	cursor                    *characterCursor
	pending                   *Token
	emittedTokens             []Token
	tokenBuilder              *TokenBuilder
	lastEmittedStartTagName   string
	log                       *logrus.Entry
}

// NewHTMLTokenizer creates an HTML tokenizer that can be used to process
// an HTML string. The whole of r is read before the first token comes out.
func NewHTMLTokenizer(r io.Reader, opts ...Option) *HTMLTokenizer {
	cfg := newConfig(opts)
	return &HTMLTokenizer{
		emittedTokens: []Token{},
		cursor:        newCharacterCursor(r),
		tokenBuilder:  MakeTokenBuilder(),
		log:           cfg.logger.WithField("component", "tokenizer"),
	}
}

func (p *HTMLTokenizer) stateToParser(state tokenizerState) parserStateHandler {
	switch state {
	case dataState:
		return p.dataStateParser
	case rcDataState:
		return p.rcDataStateParser
	case rawTextState:
		return p.rawTextStateParser
	case scriptDataState:
		return p.scriptDataStateParser
	case plaintextState:
		return p.plaintextStateParser
	case tagOpenState:
		return p.tagOpenStateParser
	case endTagOpenState:
		return p.endTagOpenStateParser
	case tagNameState:
		return p.tagNameStateParser
	case rcDataLessThanSignState:
		return p.rcDataLessThanSignStateParser
	case rcDataEndTagOpenState:
		return p.rcDataEndTagOpenStateParser
	case rcDataEndTagNameState:
		return p.rcDataEndTagNameStateParser
	case rawTextLessThanSignState:
		return p.rawTextLessThanSignStateParser
	case rawTextEndTagOpenState:
		return p.rawTextEndTagOpenStateParser
	case rawTextEndTagNameState:
		return p.rawTextEndTagNameStateParser
	case scriptDataLessThanSignState:
		return p.scriptDataLessThanSignStateParser
	case scriptDataEndTagOpenState:
		return p.scriptDataEndTagOpenStateParser
	case scriptDataEndTagNameState:
		return p.scriptDataEndTagNameStateParser
	case scriptDataEscapeStartState:
		return p.scriptDataEscapeStartStateParser
	case scriptDataEscapeStartDashState:
		return p.scriptDataEscapeStartDashStateParser
	case scriptDataEscapedState:
		return p.scriptDataEscapedStateParser
	case scriptDataEscapedDashState:
		return p.scriptDataEscapedDashStateParser
	case scriptDataEscapedDashDashState:
		return p.scriptDataEscapedDashDashStateParser
	case scriptDataEscapedLessThanSignState:
		return p.scriptDataEscapedLessThanSignStateParser
	case scriptDataEscapedEndTagOpenState:
		return p.scriptDataEscapedEndTagOpenStateParser
	case scriptDataEscapedEndTagNameState:
		return p.scriptDataEscapedEndTagNameStateParser
	case scriptDataDoubleEscapeStartState:
		return p.scriptDataDoubleEscapeStartStateParser
	case scriptDataDoubleEscapedState:
		return p.scriptDataDoubleEscapedStateParser
	case scriptDataDoubleEscapedDashState:
		return p.scriptDataDoubleEscapedDashStateParser
	case scriptDataDoubleEscapedDashDashState:
		return p.scriptDataDoubleEscapedDashDashStateParser
	case scriptDataDoubleEscapedLessThanSignState:
		return p.scriptDataDoubleEscapedLessThanSignStateParser
	case scriptDataDoubleEscapeEndState:
		return p.scriptDataDoubleEscapeEndStateParser
	case beforeAttributeNameState:
		return p.beforeAttributeNameStateParser
	case attributeNameState:
		return p.attributeNameStateParser
	case afterAttributeNameState:
		return p.afterAttributeNameStateParser
	case beforeAttributeValueState:
		return p.beforeAttributeValueStateParser
	case attributeValueDoubleQuotedState:
		return p.attributeValueDoubleQuotedStateParser
	case attributeValueSingleQuotedState:
		return p.attributeValueSingleQuotedStateParser
	case attributeValueUnquotedState:
		return p.attributeValueUnquotedStateParser
	case afterAttributeValueQuotedState:
		return p.afterAttributeValueQuotedStateParser
	case selfClosingStartTagState:
		return p.selfClosingStartTagStateParser
	case bogusCommentState:
		return p.bogusCommentStateParser
	case markupDeclarationOpenState:
		return p.markupDeclarationOpenStateParser
	case commentStartState:
		return p.commentStartStateParser
	case commentStartDashState:
		return p.commentStartDashStateParser
	case commentState:
		return p.commentStateParser
	case commentLessThanSignState:
		return p.commentLessThanSignStateParser
	case commentLessThanSignBangState:
		return p.commentLessThanSignBangStateParser
	case commentLessThanSignBangDashState:
		return p.commentLessThanSignBangDashStateParser
	case commentLessThanSignBangDashDashState:
		return p.commentLessThanSignBangDashDashStateParser
	case commentEndDashState:
		return p.commentEndDashStateParser
	case commentEndState:
		return p.commentEndStateParser
	case commentEndBangState:
		return p.commentEndBangStateParser
	case doctypeState:
		return p.doctypeStateParser
	case beforeDoctypeNameState:
		return p.beforeDoctypeNameStateParser
	case doctypeNameState:
		return p.doctypeNameStateParser
	case afterDoctypeNameState:
		return p.afterDoctypeNameStateParser
	case afterDoctypePublicKeywordState:
		return p.afterDoctypePublicKeywordStateParser
	case beforeDoctypePublicIdentifierState:
		return p.beforeDoctypePublicIdentifierStateParser
	case doctypePublicIdentifierDoubleQuotedState:
		return p.doctypePublicIdentifierDoubleQuotedStateParser
	case doctypePublicIdentifierSingleQuotedState:
		return p.doctypePublicIdentifierSingleQuotedStateParser
	case afterDoctypePublicIdentifierState:
		return p.afterDoctypePublicIdentifierStateParser
	case betweenDoctypePublicAndSystemIdentifiersState:
		return p.betweenDoctypePublicAndSystemIdentifiersStateParser
	case afterDoctypeSystemKeywordState:
		return p.afterDoctypeSystemKeywordStateParser
	case beforeDoctypeSystemIdentifierState:
		return p.beforeDoctypeSystemIdentifierStateParser
	case doctypeSystemIdentifierDoubleQuotedState:
		return p.doctypeSystemIdentifierDoubleQuotedStateParser
	case doctypeSystemIdentifierSingleQuotedState:
		return p.doctypeSystemIdentifierSingleQuotedStateParser
	case afterDoctypeSystemIdentifierState:
		return p.afterDoctypeSystemIdentifierStateParser
	case bogusDoctypeState:
		return p.bogusDoctypeStateParser
	case characterReferenceState:
		return p.characterReferenceStateParser
	case numericCharacterReferenceState:
		return p.numericCharacterReferenceStateParser
	case hexadecimalCharacterReferenceStartState:
		return p.hexadecimalCharacterReferenceStartStateParser
	case decimalCharacterReferenceStartState:
		return p.decimalCharacterReferenceStartStateParser
	case hexadecimalCharacterReferenceState:
		return p.hexadecimalCharacterReferenceStateParser
	case decimalCharacterReferenceState:
		return p.decimalCharacterReferenceStateParser
	case numericCharacterReferenceEndState:
		return p.numericCharacterReferenceEndStateParser
	case cdataSectionState, cdataSectionBracketState, cdataSectionEndState,
		namedCharacterReferenceState, ambiguousAmpersandState:
		return p.unhandledStateParser
	}

	return p.unhandledStateParser
}

func isNonCharacter(code int) bool {
	if code >= 0xFDD0 && code <= 0xFDEF {
		return true
	}

	// U+xFFFE and U+xFFFF in every plane.
	return code <= 0x10FFFF && code&0xFFFE == 0xFFFE
}

func isC0Control(code int) bool {
	return code >= 0x00 && code <= 0x1F
}

func isControl(code int) bool {
	return isC0Control(code) || (code >= 0x7F && code <= 0x9F)
}

func isASCIIWhitespace(code int) bool {
	switch code {
	case 0x09, 0x0A, 0x0C, 0x0D, 0x20:
		return true
	default:
		return false
	}
}

func isSurrogate(code int) bool {
	return code >= 0xD800 && code <= 0xDFFF
}

func wasConsumedByAttribute(returnState tokenizerState) bool {
	switch returnState {
	case attributeValueDoubleQuotedState, attributeValueSingleQuotedState, attributeValueUnquotedState:
		return true
	}
	return false
}

func (p *HTMLTokenizer) flushCodePointsAsCharacterReference() {
	if wasConsumedByAttribute(p.returnState) {
		p.tokenBuilder.WriteAttributeValueString(p.tokenBuilder.TempBuffer())
	} else {
		p.emit(p.tokenBuilder.TempBufferCharTokens()...)
	}
	p.tokenBuilder.ResetTempBuffer()
}

func (p *HTMLTokenizer) isApprEndTagToken() bool {
	name := p.tokenBuilder.Name()
	return name != "" && p.lastEmittedStartTagName == name
}

func (p *HTMLTokenizer) emit(tokens ...Token) {
	for _, token := range tokens {
		switch token.TokenType {
		case EndTagToken:
			token.Attributes = nil
			token.SelfClosing = false
			p.tokenBuilder.building = buildingNothing
		case StartTagToken:
			p.lastEmittedStartTagName = token.TagName
			p.tokenBuilder.building = buildingNothing
		case CommentToken, DoctypeToken:
			p.tokenBuilder.building = buildingNothing
		case EndOfFileToken:
			p.sawEOF = true
		}

		p.emittedTokens = append(p.emittedTokens, token)
	}
}

func (p *HTMLTokenizer) emitChars(rs ...rune) {
	for _, r := range rs {
		p.emit(p.tokenBuilder.CharacterToken(r))
	}
}

func (p *HTMLTokenizer) emitEOF() (bool, tokenizerState) {
	p.emit(p.tokenBuilder.EndOfFileToken())
	return false, dataState
}

func (p *HTMLTokenizer) emitCurrentTag() tokenizerState {
	p.emit(p.tokenBuilder.TagToken())
	return dataState
}

func (p *HTMLTokenizer) emitComment() tokenizerState {
	p.emit(p.tokenBuilder.CommentToken())
	return dataState
}

func (p *HTMLTokenizer) emitDoctype() tokenizerState {
	p.emit(p.tokenBuilder.DoctypeToken())
	return dataState
}

func (p *HTMLTokenizer) dataStateParser(c inputCharacter) (bool, tokenizerState) {
	if c.isEOF() {
		return p.emitEOF()
	}
	switch c.r {
	case '&':
		p.returnState = dataState
		return false, characterReferenceState
	case '<':
		return false, tagOpenState
	default:
		p.emitChars(c.r)
		return false, dataState
	}
}

func (p *HTMLTokenizer) rcDataStateParser(c inputCharacter) (bool, tokenizerState) {
	if c.isEOF() {
		return p.emitEOF()
	}
	switch c.r {
	case '&':
		p.returnState = rcDataState
		return false, characterReferenceState
	case '<':
		return false, rcDataLessThanSignState
	case '\u0000':
		p.emitChars('�')
		return false, rcDataState
	default:
		p.emitChars(c.r)
		return false, rcDataState
	}
}

func (p *HTMLTokenizer) rawTextStateParser(c inputCharacter) (bool, tokenizerState) {
	if c.isEOF() {
		return p.emitEOF()
	}
	switch c.r {
	case '<':
		return false, rawTextLessThanSignState
	case '\u0000':
		p.emitChars('�')
		return false, rawTextState
	default:
		p.emitChars(c.r)
		return false, rawTextState
	}
}

func (p *HTMLTokenizer) scriptDataStateParser(c inputCharacter) (bool, tokenizerState) {
	if c.isEOF() {
		return p.emitEOF()
	}
	switch c.r {
	case '<':
		return false, scriptDataLessThanSignState
	case '\u0000':
		p.emitChars('�')
		return false, scriptDataState
	default:
		p.emitChars(c.r)
		return false, scriptDataState
	}
}

func (p *HTMLTokenizer) plaintextStateParser(c inputCharacter) (bool, tokenizerState) {
	if c.isEOF() {
		return p.emitEOF()
	}
	switch c.r {
	case '\u0000':
		p.emitChars('�')
		return false, plaintextState
	default:
		p.emitChars(c.r)
		return false, plaintextState
	}
}

func (p *HTMLTokenizer) tagOpenStateParser(c inputCharacter) (bool, tokenizerState) {
	if c.isEOF() {
		p.emitChars('<')
		return p.emitEOF()
	}
	if c.isASCIIAlpha() {
		p.tokenBuilder.StartTag(startTag)
		return true, tagNameState
	}
	switch c.r {
	case '!':
		return false, markupDeclarationOpenState
	case '/':
		return false, endTagOpenState
	case '?':
		p.tokenBuilder.StartComment()
		return true, bogusCommentState
	default:
		p.emitChars('<')
		return true, dataState
	}
}

func (p *HTMLTokenizer) endTagOpenStateParser(c inputCharacter) (bool, tokenizerState) {
	if c.isEOF() {
		p.emitChars('<', '/')
		return p.emitEOF()
	}
	if c.isASCIIAlpha() {
		p.tokenBuilder.StartTag(endTag)
		return true, tagNameState
	}
	switch c.r {
	case '>':
		return false, dataState
	default:
		p.tokenBuilder.StartComment()
		return true, bogusCommentState
	}
}

func (p *HTMLTokenizer) tagNameStateParser(c inputCharacter) (bool, tokenizerState) {
	if c.isEOF() {
		return p.emitEOF()
	}
	switch c.r {
	case '\u0009', '\u000A', '\u000C', ' ': // tab, line feed, form feed, space
		return false, beforeAttributeNameState
	case '/':
		return false, selfClosingStartTagState
	case '>':
		return false, p.emitCurrentTag()
	case '\u0000':
		p.tokenBuilder.WriteName('�')
		return false, tagNameState
	default:
		p.tokenBuilder.WriteName(c.lower())
		return false, tagNameState
	}
}

// The RCDATA, RAWTEXT and script data end tag states only differ in the
// state they fall back to, so they share these helpers.

func (p *HTMLTokenizer) textLessThanSignState(c inputCharacter, text, endTagOpen tokenizerState) (bool, tokenizerState) {
	if !c.isEOF() && c.r == '/' {
		p.tokenBuilder.ResetTempBuffer()
		return false, endTagOpen
	}
	p.emitChars('<')
	return true, text
}

func (p *HTMLTokenizer) textEndTagOpenState(c inputCharacter, text, endTagName tokenizerState) (bool, tokenizerState) {
	if c.isASCIIAlpha() {
		p.tokenBuilder.StartTag(endTag)
		return true, endTagName
	}
	p.emitChars('<', '/')
	return true, text
}

func (p *HTMLTokenizer) textEndTagNameState(c inputCharacter, text, endTagName tokenizerState) (bool, tokenizerState) {
	if c.isASCIIAlpha() {
		p.tokenBuilder.WriteTempBuffer(c.r)
		p.tokenBuilder.WriteName(c.lower())
		return false, endTagName
	}
	if !c.isEOF() && p.isApprEndTagToken() {
		switch c.r {
		case '\u0009', '\u000A', '\u000C', ' ':
			return false, beforeAttributeNameState
		case '/':
			return false, selfClosingStartTagState
		case '>':
			return false, p.emitCurrentTag()
		}
	}

	// not an end tag after all; hand back what was read as text.
	p.tokenBuilder.Reset()
	p.emitChars('<', '/')
	p.emit(p.tokenBuilder.TempBufferCharTokens()...)
	return true, text
}

func (p *HTMLTokenizer) rcDataLessThanSignStateParser(c inputCharacter) (bool, tokenizerState) {
	return p.textLessThanSignState(c, rcDataState, rcDataEndTagOpenState)
}

func (p *HTMLTokenizer) rcDataEndTagOpenStateParser(c inputCharacter) (bool, tokenizerState) {
	return p.textEndTagOpenState(c, rcDataState, rcDataEndTagNameState)
}

func (p *HTMLTokenizer) rcDataEndTagNameStateParser(c inputCharacter) (bool, tokenizerState) {
	return p.textEndTagNameState(c, rcDataState, rcDataEndTagNameState)
}

func (p *HTMLTokenizer) rawTextLessThanSignStateParser(c inputCharacter) (bool, tokenizerState) {
	return p.textLessThanSignState(c, rawTextState, rawTextEndTagOpenState)
}

func (p *HTMLTokenizer) rawTextEndTagOpenStateParser(c inputCharacter) (bool, tokenizerState) {
	return p.textEndTagOpenState(c, rawTextState, rawTextEndTagNameState)
}

func (p *HTMLTokenizer) rawTextEndTagNameStateParser(c inputCharacter) (bool, tokenizerState) {
	return p.textEndTagNameState(c, rawTextState, rawTextEndTagNameState)
}

func (p *HTMLTokenizer) scriptDataLessThanSignStateParser(c inputCharacter) (bool, tokenizerState) {
	if !c.isEOF() && c.r == '!' {
		p.emitChars('<', '!')
		return false, scriptDataEscapeStartState
	}
	return p.textLessThanSignState(c, scriptDataState, scriptDataEndTagOpenState)
}

func (p *HTMLTokenizer) scriptDataEndTagOpenStateParser(c inputCharacter) (bool, tokenizerState) {
	return p.textEndTagOpenState(c, scriptDataState, scriptDataEndTagNameState)
}

func (p *HTMLTokenizer) scriptDataEndTagNameStateParser(c inputCharacter) (bool, tokenizerState) {
	return p.textEndTagNameState(c, scriptDataState, scriptDataEndTagNameState)
}

func (p *HTMLTokenizer) scriptDataEscapeStartStateParser(c inputCharacter) (bool, tokenizerState) {
	if !c.isEOF() && c.r == '-' {
		p.emitChars('-')
		return false, scriptDataEscapeStartDashState
	}
	return true, scriptDataState
}

func (p *HTMLTokenizer) scriptDataEscapeStartDashStateParser(c inputCharacter) (bool, tokenizerState) {
	if !c.isEOF() && c.r == '-' {
		p.emitChars('-')
		return false, scriptDataEscapedDashDashState
	}
	return true, scriptDataState
}

func (p *HTMLTokenizer) scriptDataEscapedStateParser(c inputCharacter) (bool, tokenizerState) {
	if c.isEOF() {
		return p.emitEOF()
	}
	switch c.r {
	case '-':
		p.emitChars('-')
		return false, scriptDataEscapedDashState
	case '<':
		return false, scriptDataEscapedLessThanSignState
	case '\u0000':
		p.emitChars('�')
		return false, scriptDataEscapedState
	default:
		p.emitChars(c.r)
		return false, scriptDataEscapedState
	}
}

func (p *HTMLTokenizer) scriptDataEscapedDashStateParser(c inputCharacter) (bool, tokenizerState) {
	if c.isEOF() {
		return p.emitEOF()
	}
	switch c.r {
	case '-':
		p.emitChars('-')
		return false, scriptDataEscapedDashDashState
	case '<':
		return false, scriptDataEscapedLessThanSignState
	case '\u0000':
		p.emitChars('�')
		return false, scriptDataEscapedState
	default:
		p.emitChars(c.r)
		return false, scriptDataEscapedState
	}
}

func (p *HTMLTokenizer) scriptDataEscapedDashDashStateParser(c inputCharacter) (bool, tokenizerState) {
	if c.isEOF() {
		return p.emitEOF()
	}
	switch c.r {
	case '-':
		p.emitChars('-')
		return false, scriptDataEscapedDashDashState
	case '<':
		return false, scriptDataEscapedLessThanSignState
	case '>':
		p.emitChars('>')
		return false, scriptDataState
	case '\u0000':
		p.emitChars('�')
		return false, scriptDataEscapedState
	default:
		p.emitChars(c.r)
		return false, scriptDataEscapedState
	}
}

func (p *HTMLTokenizer) scriptDataEscapedLessThanSignStateParser(c inputCharacter) (bool, tokenizerState) {
	if c.isASCIIAlpha() {
		p.tokenBuilder.ResetTempBuffer()
		p.emitChars('<')
		return true, scriptDataDoubleEscapeStartState
	}
	return p.textLessThanSignState(c, scriptDataEscapedState, scriptDataEscapedEndTagOpenState)
}

func (p *HTMLTokenizer) scriptDataEscapedEndTagOpenStateParser(c inputCharacter) (bool, tokenizerState) {
	return p.textEndTagOpenState(c, scriptDataEscapedState, scriptDataEscapedEndTagNameState)
}

func (p *HTMLTokenizer) scriptDataEscapedEndTagNameStateParser(c inputCharacter) (bool, tokenizerState) {
	return p.textEndTagNameState(c, scriptDataEscapedState, scriptDataEscapedEndTagNameState)
}

// doubleEscapeBoundary handles the shared shape of the double escape start
// and end states: the word "script" toggles between two states.
func (p *HTMLTokenizer) doubleEscapeBoundary(c inputCharacter, self, onScript, otherwise tokenizerState) (bool, tokenizerState) {
	if c.isASCIIAlpha() {
		p.tokenBuilder.WriteTempBuffer(c.lower())
		p.emitChars(c.r)
		return false, self
	}
	if !c.isEOF() {
		switch c.r {
		case '\u0009', '\u000A', '\u000C', ' ', '/', '>':
			p.emitChars(c.r)
			if p.tokenBuilder.TempBuffer() == "script" {
				return false, onScript
			}
			return false, otherwise
		}
	}
	return true, otherwise
}

func (p *HTMLTokenizer) scriptDataDoubleEscapeStartStateParser(c inputCharacter) (bool, tokenizerState) {
	return p.doubleEscapeBoundary(c, scriptDataDoubleEscapeStartState, scriptDataDoubleEscapedState, scriptDataEscapedState)
}

func (p *HTMLTokenizer) scriptDataDoubleEscapedStateParser(c inputCharacter) (bool, tokenizerState) {
	if c.isEOF() {
		return p.emitEOF()
	}
	switch c.r {
	case '-':
		p.emitChars('-')
		return false, scriptDataDoubleEscapedDashState
	case '<':
		p.emitChars('<')
		return false, scriptDataDoubleEscapedLessThanSignState
	case '\u0000':
		p.emitChars('�')
		return false, scriptDataDoubleEscapedState
	default:
		p.emitChars(c.r)
		return false, scriptDataDoubleEscapedState
	}
}

func (p *HTMLTokenizer) scriptDataDoubleEscapedDashStateParser(c inputCharacter) (bool, tokenizerState) {
	if c.isEOF() {
		return p.emitEOF()
	}
	switch c.r {
	case '-':
		p.emitChars('-')
		return false, scriptDataDoubleEscapedDashDashState
	case '<':
		p.emitChars('<')
		return false, scriptDataDoubleEscapedLessThanSignState
	case '\u0000':
		p.emitChars('�')
		return false, scriptDataDoubleEscapedState
	default:
		p.emitChars(c.r)
		return false, scriptDataDoubleEscapedState
	}
}

func (p *HTMLTokenizer) scriptDataDoubleEscapedDashDashStateParser(c inputCharacter) (bool, tokenizerState) {
	if c.isEOF() {
		return p.emitEOF()
	}
	switch c.r {
	case '-':
		p.emitChars('-')
		return false, scriptDataDoubleEscapedDashDashState
	case '<':
		p.emitChars('<')
		return false, scriptDataDoubleEscapedLessThanSignState
	case '>':
		p.emitChars('>')
		return false, scriptDataState
	case '\u0000':
		p.emitChars('�')
		return false, scriptDataDoubleEscapedState
	default:
		p.emitChars(c.r)
		return false, scriptDataDoubleEscapedState
	}
}

func (p *HTMLTokenizer) scriptDataDoubleEscapedLessThanSignStateParser(c inputCharacter) (bool, tokenizerState) {
	if !c.isEOF() && c.r == '/' {
		p.tokenBuilder.ResetTempBuffer()
		p.emitChars('/')
		return false, scriptDataDoubleEscapeEndState
	}
	return true, scriptDataDoubleEscapedState
}

func (p *HTMLTokenizer) scriptDataDoubleEscapeEndStateParser(c inputCharacter) (bool, tokenizerState) {
	return p.doubleEscapeBoundary(c, scriptDataDoubleEscapeEndState, scriptDataEscapedState, scriptDataDoubleEscapedState)
}

func (p *HTMLTokenizer) beforeAttributeNameStateParser(c inputCharacter) (bool, tokenizerState) {
	if c.isEOF() {
		return true, afterAttributeNameState
	}
	switch c.r {
	case '\u0009', '\u000A', '\u000C', ' ':
		return false, beforeAttributeNameState
	case '/', '>':
		return true, afterAttributeNameState
	case '=':
		p.tokenBuilder.StartAttribute()
		p.tokenBuilder.WriteAttributeName(c.r)
		return false, attributeNameState
	default:
		p.tokenBuilder.StartAttribute()
		return true, attributeNameState
	}
}

func (p *HTMLTokenizer) attributeNameStateParser(c inputCharacter) (bool, tokenizerState) {
	if c.isEOF() {
		return true, afterAttributeNameState
	}
	switch c.r {
	case '\u0009', '\u000A', '\u000C', ' ', '/', '>':
		return true, afterAttributeNameState
	case '=':
		return false, beforeAttributeValueState
	case '\u0000':
		p.tokenBuilder.WriteAttributeName('�')
		return false, attributeNameState
	default:
		// names keep their case; '"', '\'' and '<' are parse errors but
		// still part of the name.
		p.tokenBuilder.WriteAttributeName(c.r)
		return false, attributeNameState
	}
}

func (p *HTMLTokenizer) afterAttributeNameStateParser(c inputCharacter) (bool, tokenizerState) {
	if c.isEOF() {
		return p.emitEOF()
	}
	switch c.r {
	case '\u0009', '\u000A', '\u000C', ' ':
		return false, afterAttributeNameState
	case '/':
		return false, selfClosingStartTagState
	case '=':
		return false, beforeAttributeValueState
	case '>':
		return false, p.emitCurrentTag()
	default:
		p.tokenBuilder.StartAttribute()
		return true, attributeNameState
	}
}

func (p *HTMLTokenizer) beforeAttributeValueStateParser(c inputCharacter) (bool, tokenizerState) {
	if c.isEOF() {
		return true, attributeValueUnquotedState
	}
	switch c.r {
	case '\u0009', '\u000A', '\u000C', ' ':
		return false, beforeAttributeValueState
	case '"':
		return false, attributeValueDoubleQuotedState
	case '\'':
		return false, attributeValueSingleQuotedState
	case '>':
		return false, p.emitCurrentTag()
	default:
		return true, attributeValueUnquotedState
	}
}

func (p *HTMLTokenizer) quotedAttributeValueState(c inputCharacter, quote rune, self tokenizerState) (bool, tokenizerState) {
	if c.isEOF() {
		return p.emitEOF()
	}
	switch c.r {
	case quote:
		return false, afterAttributeValueQuotedState
	case '&':
		p.returnState = self
		return false, characterReferenceState
	case '\u0000':
		p.tokenBuilder.WriteAttributeValue('�')
		return false, self
	default:
		p.tokenBuilder.WriteAttributeValue(c.r)
		return false, self
	}
}

func (p *HTMLTokenizer) attributeValueDoubleQuotedStateParser(c inputCharacter) (bool, tokenizerState) {
	return p.quotedAttributeValueState(c, '"', attributeValueDoubleQuotedState)
}

func (p *HTMLTokenizer) attributeValueSingleQuotedStateParser(c inputCharacter) (bool, tokenizerState) {
	return p.quotedAttributeValueState(c, '\'', attributeValueSingleQuotedState)
}

func (p *HTMLTokenizer) attributeValueUnquotedStateParser(c inputCharacter) (bool, tokenizerState) {
	if c.isEOF() {
		return p.emitEOF()
	}
	switch c.r {
	case '\u0009', '\u000A', '\u000C', ' ':
		return false, beforeAttributeNameState
	case '&':
		p.returnState = attributeValueUnquotedState
		return false, characterReferenceState
	case '>':
		return false, p.emitCurrentTag()
	case '\u0000':
		p.tokenBuilder.WriteAttributeValue('�')
		return false, attributeValueUnquotedState
	default:
		p.tokenBuilder.WriteAttributeValue(c.r)
		return false, attributeValueUnquotedState
	}
}

func (p *HTMLTokenizer) afterAttributeValueQuotedStateParser(c inputCharacter) (bool, tokenizerState) {
	if c.isEOF() {
		return p.emitEOF()
	}
	switch c.r {
	case '\u0009', '\u000A', '\u000C', ' ':
		return false, beforeAttributeNameState
	case '/':
		return false, selfClosingStartTagState
	case '>':
		return false, p.emitCurrentTag()
	default:
		return true, beforeAttributeNameState
	}
}

func (p *HTMLTokenizer) selfClosingStartTagStateParser(c inputCharacter) (bool, tokenizerState) {
	if c.isEOF() {
		return p.emitEOF()
	}
	switch c.r {
	case '>':
		p.tokenBuilder.EnableSelfClosing()
		return false, p.emitCurrentTag()
	default:
		return true, beforeAttributeNameState
	}
}

func (p *HTMLTokenizer) bogusCommentStateParser(c inputCharacter) (bool, tokenizerState) {
	if c.isEOF() {
		p.emitComment()
		return p.emitEOF()
	}
	switch c.r {
	case '>':
		return false, p.emitComment()
	case '\u0000':
		p.tokenBuilder.WriteData('�')
		return false, bogusCommentState
	default:
		p.tokenBuilder.WriteData(c.r)
		return false, bogusCommentState
	}
}

// markupDeclarationOpenStateParser receives the character after "<!" and
// looks ahead for the rest of "--", "DOCTYPE" or "[CDATA[".
func (p *HTMLTokenizer) markupDeclarationOpenStateParser(c inputCharacter) (bool, tokenizerState) {
	if c.isEOF() {
		p.tokenBuilder.StartComment()
		return true, bogusCommentState
	}

	switch c.r {
	case '-':
		if p.cursor.consumeIf("-", false) {
			p.tokenBuilder.StartComment()
			return false, commentStartState
		}
	case 'D', 'd':
		if p.cursor.consumeIf("OCTYPE", true) {
			p.tokenBuilder.StartDoctype()
			return false, doctypeState
		}
	case '[':
		if p.cursor.consumeIf("CDATA[", false) {
			// there is no foreign content, so CDATA is always a bogus comment.
			p.tokenBuilder.StartComment()
			p.tokenBuilder.WriteDataString("[CDATA[")
			return false, bogusCommentState
		}
	}

	p.tokenBuilder.StartComment()
	return true, bogusCommentState
}

func (p *HTMLTokenizer) commentStartStateParser(c inputCharacter) (bool, tokenizerState) {
	if c.isEOF() {
		return true, commentState
	}
	switch c.r {
	case '-':
		return false, commentStartDashState
	case '>':
		return false, p.emitComment()
	default:
		return true, commentState
	}
}

func (p *HTMLTokenizer) commentStartDashStateParser(c inputCharacter) (bool, tokenizerState) {
	if c.isEOF() {
		p.emitComment()
		return p.emitEOF()
	}
	switch c.r {
	case '-':
		return false, commentEndState
	case '>':
		return false, p.emitComment()
	default:
		p.tokenBuilder.WriteData('-')
		return true, commentState
	}
}

func (p *HTMLTokenizer) commentStateParser(c inputCharacter) (bool, tokenizerState) {
	if c.isEOF() {
		p.emitComment()
		return p.emitEOF()
	}
	switch c.r {
	case '<':
		p.tokenBuilder.WriteData(c.r)
		return false, commentLessThanSignState
	case '-':
		return false, commentEndDashState
	case '\u0000':
		p.tokenBuilder.WriteData('�')
		return false, commentState
	default:
		p.tokenBuilder.WriteData(c.r)
		return false, commentState
	}
}

func (p *HTMLTokenizer) commentLessThanSignStateParser(c inputCharacter) (bool, tokenizerState) {
	if c.isEOF() {
		return true, commentState
	}
	switch c.r {
	case '!':
		p.tokenBuilder.WriteData(c.r)
		return false, commentLessThanSignBangState
	case '<':
		p.tokenBuilder.WriteData(c.r)
		return false, commentLessThanSignState
	default:
		return true, commentState
	}
}

func (p *HTMLTokenizer) commentLessThanSignBangStateParser(c inputCharacter) (bool, tokenizerState) {
	if !c.isEOF() && c.r == '-' {
		return false, commentLessThanSignBangDashState
	}
	return true, commentState
}

func (p *HTMLTokenizer) commentLessThanSignBangDashStateParser(c inputCharacter) (bool, tokenizerState) {
	if !c.isEOF() && c.r == '-' {
		return false, commentLessThanSignBangDashDashState
	}
	return true, commentEndDashState
}

func (p *HTMLTokenizer) commentLessThanSignBangDashDashStateParser(c inputCharacter) (bool, tokenizerState) {
	// anything but '>' or the end is a nested-comment parse error, handled the
	// same way.
	return true, commentEndState
}

func (p *HTMLTokenizer) commentEndDashStateParser(c inputCharacter) (bool, tokenizerState) {
	if c.isEOF() {
		p.emitComment()
		return p.emitEOF()
	}
	switch c.r {
	case '-':
		return false, commentEndState
	default:
		p.tokenBuilder.WriteData('-')
		return true, commentState
	}
}

func (p *HTMLTokenizer) commentEndStateParser(c inputCharacter) (bool, tokenizerState) {
	if c.isEOF() {
		p.emitComment()
		return p.emitEOF()
	}
	switch c.r {
	case '>':
		return false, p.emitComment()
	case '!':
		return false, commentEndBangState
	case '-':
		p.tokenBuilder.WriteData('-')
		return false, commentEndState
	default:
		p.tokenBuilder.WriteDataString("--")
		return true, commentState
	}
}

func (p *HTMLTokenizer) commentEndBangStateParser(c inputCharacter) (bool, tokenizerState) {
	if c.isEOF() {
		p.emitComment()
		return p.emitEOF()
	}
	switch c.r {
	case '-':
		p.tokenBuilder.WriteDataString("--!")
		return false, commentEndDashState
	case '>':
		return false, p.emitComment()
	default:
		p.tokenBuilder.WriteDataString("--!")
		return true, commentState
	}
}

// forceQuirksEOF emits the doctype in progress with force-quirks on, then the
// end of the stream.
func (p *HTMLTokenizer) forceQuirksEOF() (bool, tokenizerState) {
	p.tokenBuilder.EnableForceQuirks()
	p.emitDoctype()
	return p.emitEOF()
}

func (p *HTMLTokenizer) doctypeStateParser(c inputCharacter) (bool, tokenizerState) {
	if c.isEOF() {
		return p.forceQuirksEOF()
	}
	switch c.r {
	case '\u0009', '\u000A', '\u000C', ' ':
		return false, beforeDoctypeNameState
	default:
		return true, beforeDoctypeNameState
	}
}

func (p *HTMLTokenizer) beforeDoctypeNameStateParser(c inputCharacter) (bool, tokenizerState) {
	if c.isEOF() {
		return p.forceQuirksEOF()
	}
	switch c.r {
	case '\u0009', '\u000A', '\u000C', ' ':
		return false, beforeDoctypeNameState
	case '\u0000':
		p.tokenBuilder.WriteName('�')
		return false, doctypeNameState
	case '>':
		p.tokenBuilder.EnableForceQuirks()
		return false, p.emitDoctype()
	default:
		p.tokenBuilder.WriteName(c.lower())
		return false, doctypeNameState
	}
}

func (p *HTMLTokenizer) doctypeNameStateParser(c inputCharacter) (bool, tokenizerState) {
	if c.isEOF() {
		return p.forceQuirksEOF()
	}
	switch c.r {
	case '\u0009', '\u000A', '\u000C', ' ':
		return false, afterDoctypeNameState
	case '>':
		return false, p.emitDoctype()
	case '\u0000':
		p.tokenBuilder.WriteName('�')
		return false, doctypeNameState
	default:
		p.tokenBuilder.WriteName(c.lower())
		return false, doctypeNameState
	}
}

func (p *HTMLTokenizer) afterDoctypeNameStateParser(c inputCharacter) (bool, tokenizerState) {
	if c.isEOF() {
		return p.forceQuirksEOF()
	}
	switch c.r {
	case '\u0009', '\u000A', '\u000C', ' ':
		return false, afterDoctypeNameState
	case '>':
		return false, p.emitDoctype()
	case 'P', 'p':
		if p.cursor.consumeIf("UBLIC", true) {
			return false, afterDoctypePublicKeywordState
		}
	case 'S', 's':
		if p.cursor.consumeIf("YSTEM", true) {
			return false, afterDoctypeSystemKeywordState
		}
	}
	p.tokenBuilder.EnableForceQuirks()
	return true, bogusDoctypeState
}

// doctypeKeywordState covers the states right after PUBLIC or SYSTEM and the
// states before either identifier. Whitespace moves on to (or stays in) next.
func (p *HTMLTokenizer) doctypeKeywordState(c inputCharacter, public bool, whitespace tokenizerState) (bool, tokenizerState) {
	if c.isEOF() {
		return p.forceQuirksEOF()
	}
	switch c.r {
	case '\u0009', '\u000A', '\u000C', ' ':
		return false, whitespace
	case '"':
		if public {
			p.tokenBuilder.StartPublicIdentifier()
			return false, doctypePublicIdentifierDoubleQuotedState
		}
		p.tokenBuilder.StartSystemIdentifier()
		return false, doctypeSystemIdentifierDoubleQuotedState
	case '\'':
		if public {
			p.tokenBuilder.StartPublicIdentifier()
			return false, doctypePublicIdentifierSingleQuotedState
		}
		p.tokenBuilder.StartSystemIdentifier()
		return false, doctypeSystemIdentifierSingleQuotedState
	case '>':
		p.tokenBuilder.EnableForceQuirks()
		return false, p.emitDoctype()
	default:
		p.tokenBuilder.EnableForceQuirks()
		return true, bogusDoctypeState
	}
}

func (p *HTMLTokenizer) afterDoctypePublicKeywordStateParser(c inputCharacter) (bool, tokenizerState) {
	return p.doctypeKeywordState(c, true, beforeDoctypePublicIdentifierState)
}

func (p *HTMLTokenizer) beforeDoctypePublicIdentifierStateParser(c inputCharacter) (bool, tokenizerState) {
	return p.doctypeKeywordState(c, true, beforeDoctypePublicIdentifierState)
}

func (p *HTMLTokenizer) afterDoctypeSystemKeywordStateParser(c inputCharacter) (bool, tokenizerState) {
	return p.doctypeKeywordState(c, false, beforeDoctypeSystemIdentifierState)
}

func (p *HTMLTokenizer) beforeDoctypeSystemIdentifierStateParser(c inputCharacter) (bool, tokenizerState) {
	return p.doctypeKeywordState(c, false, beforeDoctypeSystemIdentifierState)
}

func (p *HTMLTokenizer) doctypeIdentifierState(c inputCharacter, quote rune, self, after tokenizerState, write func(rune)) (bool, tokenizerState) {
	if c.isEOF() {
		return p.forceQuirksEOF()
	}
	switch c.r {
	case quote:
		return false, after
	case '\u0000':
		write('�')
		return false, self
	case '>':
		p.tokenBuilder.EnableForceQuirks()
		return false, p.emitDoctype()
	default:
		write(c.r)
		return false, self
	}
}

func (p *HTMLTokenizer) doctypePublicIdentifierDoubleQuotedStateParser(c inputCharacter) (bool, tokenizerState) {
	return p.doctypeIdentifierState(c, '"', doctypePublicIdentifierDoubleQuotedState, afterDoctypePublicIdentifierState, p.tokenBuilder.WritePublicIdentifier)
}

func (p *HTMLTokenizer) doctypePublicIdentifierSingleQuotedStateParser(c inputCharacter) (bool, tokenizerState) {
	return p.doctypeIdentifierState(c, '\'', doctypePublicIdentifierSingleQuotedState, afterDoctypePublicIdentifierState, p.tokenBuilder.WritePublicIdentifier)
}

func (p *HTMLTokenizer) doctypeSystemIdentifierDoubleQuotedStateParser(c inputCharacter) (bool, tokenizerState) {
	return p.doctypeIdentifierState(c, '"', doctypeSystemIdentifierDoubleQuotedState, afterDoctypeSystemIdentifierState, p.tokenBuilder.WriteSystemIdentifier)
}

func (p *HTMLTokenizer) doctypeSystemIdentifierSingleQuotedStateParser(c inputCharacter) (bool, tokenizerState) {
	return p.doctypeIdentifierState(c, '\'', doctypeSystemIdentifierSingleQuotedState, afterDoctypeSystemIdentifierState, p.tokenBuilder.WriteSystemIdentifier)
}

// afterPublicIdentifier covers the state after the public identifier and the
// state between the two identifiers.
func (p *HTMLTokenizer) afterPublicIdentifier(c inputCharacter) (bool, tokenizerState) {
	if c.isEOF() {
		return p.forceQuirksEOF()
	}
	switch c.r {
	case '\u0009', '\u000A', '\u000C', ' ':
		return false, betweenDoctypePublicAndSystemIdentifiersState
	case '>':
		return false, p.emitDoctype()
	case '"':
		p.tokenBuilder.StartSystemIdentifier()
		return false, doctypeSystemIdentifierDoubleQuotedState
	case '\'':
		p.tokenBuilder.StartSystemIdentifier()
		return false, doctypeSystemIdentifierSingleQuotedState
	default:
		p.tokenBuilder.EnableForceQuirks()
		return true, bogusDoctypeState
	}
}

func (p *HTMLTokenizer) afterDoctypePublicIdentifierStateParser(c inputCharacter) (bool, tokenizerState) {
	return p.afterPublicIdentifier(c)
}

func (p *HTMLTokenizer) betweenDoctypePublicAndSystemIdentifiersStateParser(c inputCharacter) (bool, tokenizerState) {
	return p.afterPublicIdentifier(c)
}

func (p *HTMLTokenizer) afterDoctypeSystemIdentifierStateParser(c inputCharacter) (bool, tokenizerState) {
	if c.isEOF() {
		return p.forceQuirksEOF()
	}
	switch c.r {
	case '\u0009', '\u000A', '\u000C', ' ':
		return false, afterDoctypeSystemIdentifierState
	case '>':
		return false, p.emitDoctype()
	default:
		// unexpected character, but not enough to force quirks.
		return true, bogusDoctypeState
	}
}

func (p *HTMLTokenizer) bogusDoctypeStateParser(c inputCharacter) (bool, tokenizerState) {
	if c.isEOF() {
		p.emitDoctype()
		return p.emitEOF()
	}
	if c.r == '>' {
		return false, p.emitDoctype()
	}
	return false, bogusDoctypeState
}

func (p *HTMLTokenizer) characterReferenceStateParser(c inputCharacter) (bool, tokenizerState) {
	p.tokenBuilder.ResetTempBuffer()
	p.tokenBuilder.WriteTempBuffer('&')
	if c.isASCIIAlphanumeric() {
		return true, namedCharacterReferenceState
	}
	if !c.isEOF() && c.r == '#' {
		p.tokenBuilder.WriteTempBuffer('#')
		return false, numericCharacterReferenceState
	}
	p.flushCodePointsAsCharacterReference()
	return true, p.returnState
}

func (p *HTMLTokenizer) numericCharacterReferenceStateParser(c inputCharacter) (bool, tokenizerState) {
	p.tokenBuilder.SetCharRef(0)
	if !c.isEOF() && (c.r == 'x' || c.r == 'X') {
		p.tokenBuilder.WriteTempBuffer(c.r)
		return false, hexadecimalCharacterReferenceStartState
	}
	return true, decimalCharacterReferenceStartState
}

func (p *HTMLTokenizer) hexadecimalCharacterReferenceStartStateParser(c inputCharacter) (bool, tokenizerState) {
	if c.isASCIIHexDigit() {
		return true, hexadecimalCharacterReferenceState
	}
	// absence of digits: the consumed "&#x" goes back out as it was.
	p.flushCodePointsAsCharacterReference()
	return true, p.returnState
}

func (p *HTMLTokenizer) decimalCharacterReferenceStartStateParser(c inputCharacter) (bool, tokenizerState) {
	if c.isASCIIDigit() {
		return true, decimalCharacterReferenceState
	}
	p.flushCodePointsAsCharacterReference()
	return true, p.returnState
}

func (p *HTMLTokenizer) hexadecimalCharacterReferenceStateParser(c inputCharacter) (bool, tokenizerState) {
	switch {
	case c.isASCIIDigit():
		p.tokenBuilder.AccumulateCharRef(16, int(c.r-0x30))
		return false, hexadecimalCharacterReferenceState
	case c.isASCIIHexDigit() && c.isASCIIUpper():
		p.tokenBuilder.AccumulateCharRef(16, int(c.r-0x37))
		return false, hexadecimalCharacterReferenceState
	case c.isASCIIHexDigit():
		p.tokenBuilder.AccumulateCharRef(16, int(c.r-0x57))
		return false, hexadecimalCharacterReferenceState
	case !c.isEOF() && c.r == ';':
		p.finishNumericCharacterReference()
		return false, p.returnState
	default:
		return true, numericCharacterReferenceEndState
	}
}

func (p *HTMLTokenizer) decimalCharacterReferenceStateParser(c inputCharacter) (bool, tokenizerState) {
	switch {
	case c.isASCIIDigit():
		p.tokenBuilder.AccumulateCharRef(10, int(c.r-0x30))
		return false, decimalCharacterReferenceState
	case !c.isEOF() && c.r == ';':
		p.finishNumericCharacterReference()
		return false, p.returnState
	default:
		return true, numericCharacterReferenceEndState
	}
}

var numericCharacterReferenceEndStateTable = map[int]rune{
	0x80: 0x20AC,
	0x82: 0x201A,
	0x83: 0x0192,
	0x84: 0x201E,
	0x85: 0x2026,
	0x86: 0x2020,
	0x87: 0x2021,
	0x88: 0x02C6,
	0x89: 0x2030,
	0x8A: 0x0160,
	0x8B: 0x2039,
	0x8C: 0x0152,
	0x8E: 0x017D,
	0x91: 0x2018,
	0x92: 0x2019,
	0x93: 0x201C,
	0x94: 0x201D,
	0x95: 0x2022,
	0x96: 0x2013,
	0x97: 0x2014,
	0x98: 0x02DC,
	0x99: 0x2122,
	0x9A: 0x0161,
	0x9B: 0x203A,
	0x9C: 0x0153,
	0x9E: 0x017E,
	0x9F: 0x0178,
}

// numericCharacterReferenceEndStateParser is entered with the character that
// ended the digits, which goes back to the return state untouched.
func (p *HTMLTokenizer) numericCharacterReferenceEndStateParser(c inputCharacter) (bool, tokenizerState) {
	p.finishNumericCharacterReference()
	return true, p.returnState
}

func (p *HTMLTokenizer) finishNumericCharacterReference() {
	code := p.tokenBuilder.GetCharRef()
	switch {
	case code == 0, code > 0x10FFFF, isSurrogate(code):
		code = 0xFFFD
	case isNonCharacter(code):
		// parse error, the code point stays.
	case code == 0x0D || (isControl(code) && !isASCIIWhitespace(code)):
		if r, ok := numericCharacterReferenceEndStateTable[code]; ok {
			code = int(r)
		}
	}

	p.tokenBuilder.ResetTempBuffer()
	p.tokenBuilder.WriteTempBuffer(rune(code))
	p.flushCodePointsAsCharacterReference()
}

// unhandledStateParser stands in for every state the tokenizer does not
// implement. It flushes whatever was in progress, ends the stream and marks
// the output as truncated.
func (p *HTMLTokenizer) unhandledStateParser(c inputCharacter) (bool, tokenizerState) {
	fields := logrus.Fields{
		"state": p.currentState,
		"input": p.cursor.snippet(snippetLen),
	}
	if !c.isEOF() {
		fields["char"] = string(c.r)
	}
	p.log.WithFields(fields).Warn("unhandled tokenizer state, ending token stream")

	if p.tokenBuilder.TempBuffer() != "" {
		p.flushCodePointsAsCharacterReference()
	}
	if tok, ok := p.tokenBuilder.Pending(); ok {
		p.emit(tok)
	}
	p.truncated = true
	return p.emitEOF()
}

// a parserStateHandler takes the current input character and returns whether
// it should be reconsumed and the state to move to.
type parserStateHandler func(c inputCharacter) (bool, tokenizerState)

//go:generate stringer -type=tokenizerState
type tokenizerState uint

const (
	dataState tokenizerState = iota
	rcDataState
	rawTextState
	scriptDataState
	plaintextState
	tagOpenState
	endTagOpenState
	tagNameState
	rcDataLessThanSignState
	rcDataEndTagOpenState
	rcDataEndTagNameState
	rawTextLessThanSignState
	rawTextEndTagOpenState
	rawTextEndTagNameState
	scriptDataLessThanSignState
	scriptDataEndTagOpenState
	scriptDataEndTagNameState
	scriptDataEscapeStartState
	scriptDataEscapeStartDashState
	scriptDataEscapedState
	scriptDataEscapedDashState
	scriptDataEscapedDashDashState
	scriptDataEscapedLessThanSignState
	scriptDataEscapedEndTagOpenState
	scriptDataEscapedEndTagNameState
	scriptDataDoubleEscapeStartState
	scriptDataDoubleEscapedState
	scriptDataDoubleEscapedDashState
	scriptDataDoubleEscapedDashDashState
	scriptDataDoubleEscapedLessThanSignState
	scriptDataDoubleEscapeEndState
	beforeAttributeNameState
	attributeNameState
	afterAttributeNameState
	beforeAttributeValueState
	attributeValueDoubleQuotedState
	attributeValueSingleQuotedState
	attributeValueUnquotedState
	afterAttributeValueQuotedState
	selfClosingStartTagState
	bogusCommentState
	markupDeclarationOpenState
	commentStartState
	commentStartDashState
	commentState
	commentLessThanSignState
	commentLessThanSignBangState
	commentLessThanSignBangDashState
	commentLessThanSignBangDashDashState
	commentEndDashState
	commentEndState
	commentEndBangState
	doctypeState
	beforeDoctypeNameState
	doctypeNameState
	afterDoctypeNameState
	afterDoctypePublicKeywordState
	beforeDoctypePublicIdentifierState
	doctypePublicIdentifierDoubleQuotedState
	doctypePublicIdentifierSingleQuotedState
	afterDoctypePublicIdentifierState
	betweenDoctypePublicAndSystemIdentifiersState
	afterDoctypeSystemKeywordState
	beforeDoctypeSystemIdentifierState
	doctypeSystemIdentifierDoubleQuotedState
	doctypeSystemIdentifierSingleQuotedState
	afterDoctypeSystemIdentifierState
	bogusDoctypeState
	cdataSectionState
	cdataSectionBracketState
	cdataSectionEndState
	characterReferenceState
	namedCharacterReferenceState
	ambiguousAmpersandState
	numericCharacterReferenceState
	hexadecimalCharacterReferenceStartState
	decimalCharacterReferenceStartState
	hexadecimalCharacterReferenceState
	decimalCharacterReferenceState
	numericCharacterReferenceEndState
)

func (p *HTMLTokenizer) takeEmittedToken() (Token, bool) {
	if len(p.emittedTokens) == 0 {
		return Token{}, false
	}
	ret := p.emittedTokens[0]
	p.emittedTokens = p.emittedTokens[1:]
	if ret.TokenType == EndOfFileToken {
		p.done = true
		p.emittedTokens = nil
	}
	return ret, true
}

// NextToken returns the next token. A token handed to reprocess comes back
// first. Once the end of file token has been returned every later call
// returns it again.
func (p *HTMLTokenizer) NextToken() Token {
	if p.pending != nil {
		t := *p.pending
		p.pending = nil
		return t
	}

	// some states emit more than 1 token at a time and sometimes no tokens.
	// loop until at least 1 token is emitted and then take them.
	for {
		if t, ok := p.takeEmittedToken(); ok {
			return t
		}
		if p.done {
			return p.tokenBuilder.EndOfFileToken()
		}

		p.processCharacter(p.cursor.next())
	}
}

func (p *HTMLTokenizer) processCharacter(c inputCharacter) {
	reconsume := true
	for steps := 0; reconsume; steps++ {
		if steps == maxReconsume {
			p.log.WithFields(logrus.Fields{
				"state": p.currentState,
				"input": p.cursor.snippet(snippetLen),
			}).Warn("character reconsumed too many times, ending token stream")
			p.truncated = true
			p.emitEOF()
			return
		}
		if p.log.Logger.IsLevelEnabled(logrus.TraceLevel) {
			p.log.WithFields(logrus.Fields{"char": c.r, "eof": c.eof, "state": p.currentState}).Trace("step")
		}
		reconsume, p.currentState = p.stateToParser(p.currentState)(c)
	}

	if c.isEOF() && !p.sawEOF {
		p.emitEOF()
	}
}

// switchTo forces the lexical state. The tree constructor uses it for
// elements whose content is not markup.
func (p *HTMLTokenizer) switchTo(state tokenizerState) {
	p.currentState = state
}

// reprocess makes the next call to NextToken return t again without reading
// any input.
func (p *HTMLTokenizer) reprocess(t Token) {
	p.pending = &t
}

// Truncated reports whether the token stream was ended early because the
// tokenizer reached a state it does not handle.
func (p *HTMLTokenizer) Truncated() bool {
	return p.truncated
}

// Err returns the error the input reader failed with, if any.
func (p *HTMLTokenizer) Err() error {
	return p.cursor.err()
}
