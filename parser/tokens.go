package parser

import (
	"fmt"
	"strings"
)

// TokenType tells the variants of Token apart.
type TokenType uint

const (
	CharacterToken TokenType = iota
	StartTagToken
	EndTagToken
	EndOfFileToken
	CommentToken
	DoctypeToken
)

var tokenTypeNames = [...]string{
	CharacterToken: "Character",
	StartTagToken:  "StartTag",
	EndTagToken:    "EndTag",
	EndOfFileToken: "EndOfFile",
	CommentToken:   "Comment",
	DoctypeToken:   "Doctype",
}

func (t TokenType) String() string {
	if int(t) < len(tokenTypeNames) {
		return tokenTypeNames[t]
	}
	return fmt.Sprintf("TokenType(%d)", uint(t))
}

// Attribute is a name/value pair on a tag token.
type Attribute struct {
	Name  string
	Value string
}

// Token is a concrete token that is ready to be emitted.
type Token struct {
	TokenType TokenType
	// TagName is the tag name of start and end tags and the name of a doctype.
	TagName             string
	Attributes          []Attribute
	SelfClosing         bool
	PublicIdentifier    string
	SystemIdentifier    string
	HasPublicIdentifier bool
	HasSystemIdentifier bool
	ForceQuirks         bool
	// Data holds the single character of a character token and the text of a
	// comment.
	Data string
}

// Attribute returns the value of the attribute called name.
func (t Token) Attribute(name string) (string, bool) {
	for _, a := range t.Attributes {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Equal compares two tokens field by field. Attribute order matters.
func (t Token) Equal(o Token) bool {
	if t.TokenType != o.TokenType ||
		t.TagName != o.TagName ||
		t.SelfClosing != o.SelfClosing ||
		t.PublicIdentifier != o.PublicIdentifier ||
		t.SystemIdentifier != o.SystemIdentifier ||
		t.HasPublicIdentifier != o.HasPublicIdentifier ||
		t.HasSystemIdentifier != o.HasSystemIdentifier ||
		t.ForceQuirks != o.ForceQuirks ||
		t.Data != o.Data ||
		len(t.Attributes) != len(o.Attributes) {
		return false
	}
	for i := range t.Attributes {
		if t.Attributes[i] != o.Attributes[i] {
			return false
		}
	}
	return true
}

func (t Token) String() string {
	switch t.TokenType {
	case CharacterToken:
		return fmt.Sprintf("Character(%q)", t.Data)
	case CommentToken:
		return fmt.Sprintf("Comment(%q)", t.Data)
	case EndOfFileToken:
		return "EndOfFile"
	case DoctypeToken:
		var b strings.Builder
		fmt.Fprintf(&b, "Doctype(%q", t.TagName)
		if t.HasPublicIdentifier {
			fmt.Fprintf(&b, " public=%q", t.PublicIdentifier)
		}
		if t.HasSystemIdentifier {
			fmt.Fprintf(&b, " system=%q", t.SystemIdentifier)
		}
		if t.ForceQuirks {
			b.WriteString(" force-quirks")
		}
		b.WriteByte(')')
		return b.String()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s(%q", t.TokenType, t.TagName)
	for _, a := range t.Attributes {
		fmt.Fprintf(&b, " %s=%q", a.Name, a.Value)
	}
	if t.SelfClosing {
		b.WriteString(" /")
	}
	b.WriteByte(')')
	return b.String()
}

type tagType uint

const (
	startTag tagType = iota
	endTag
)

type building uint

const (
	buildingNothing building = iota
	buildingTag
	buildingComment
	buildingDoctype
)

// TokenBuilder builds various tokens up during the tokenization
// phase.
type TokenBuilder struct {
	attributes             []Attribute
	attributeKey           strings.Builder
	attributeValue         strings.Builder
	inAttribute            bool
	name                   strings.Builder
	data                   strings.Builder
	tempBuffer             strings.Builder
	publicID               strings.Builder
	systemID               strings.Builder
	hasPublicID            bool
	hasSystemID            bool
	selfClosing            bool
	forceQuirks            bool
	curTagType             tagType
	building               building
	characterReferenceCode int
}

// MakeTokenBuilder returns an empty builder.
func MakeTokenBuilder() *TokenBuilder {
	return &TokenBuilder{}
}

// Reset clears everything about the token in progress. The temporary buffer is
// left alone since the end tag name states fill it across a reset.
func (t *TokenBuilder) Reset() {
	t.attributes = nil
	t.attributeKey.Reset()
	t.attributeValue.Reset()
	t.inAttribute = false
	t.name.Reset()
	t.data.Reset()
	t.publicID.Reset()
	t.systemID.Reset()
	t.hasPublicID = false
	t.hasSystemID = false
	t.selfClosing = false
	t.forceQuirks = false
	t.building = buildingNothing
}

// StartTag begins a new start or end tag.
func (t *TokenBuilder) StartTag(tt tagType) {
	t.Reset()
	t.curTagType = tt
	t.building = buildingTag
}

// StartComment begins a new comment.
func (t *TokenBuilder) StartComment() {
	t.Reset()
	t.building = buildingComment
}

// StartDoctype begins a new doctype.
func (t *TokenBuilder) StartDoctype() {
	t.Reset()
	t.building = buildingDoctype
}

// EnableSelfClosing changes to the self-closing flag to "set".
func (t *TokenBuilder) EnableSelfClosing() {
	t.selfClosing = true
}

// EnableForceQuirks changes to the force-quirks flag to "on".
func (t *TokenBuilder) EnableForceQuirks() {
	t.forceQuirks = true
}

// StartPublicIdentifier sets the public identifier to the empty string, as
// opposed to missing.
func (t *TokenBuilder) StartPublicIdentifier() {
	t.publicID.Reset()
	t.hasPublicID = true
}

// StartSystemIdentifier sets the system identifier to the empty string.
func (t *TokenBuilder) StartSystemIdentifier() {
	t.systemID.Reset()
	t.hasSystemID = true
}

// WritePublicIdentifier appends a rune to the public identifier buffer.
func (t *TokenBuilder) WritePublicIdentifier(r rune) {
	t.publicID.WriteRune(r)
}

// WriteSystemIdentifier appends a rune to the system identifier buffer.
func (t *TokenBuilder) WriteSystemIdentifier(r rune) {
	t.systemID.WriteRune(r)
}

// StartAttribute commits the attribute in progress, if any, and begins a new
// one.
func (t *TokenBuilder) StartAttribute() {
	t.CommitAttribute()
	t.inAttribute = true
}

// WriteAttributeName appends a character to the current
// attribute's name.
func (t *TokenBuilder) WriteAttributeName(r rune) {
	t.attributeKey.WriteRune(r)
}

// WriteAttributeValue appends a character to the current
// attribute's value.
func (t *TokenBuilder) WriteAttributeValue(r rune) {
	t.attributeValue.WriteRune(r)
}

// WriteAttributeValueString appends s to the current attribute's value.
func (t *TokenBuilder) WriteAttributeValueString(s string) {
	t.attributeValue.WriteString(s)
}

// CommitAttribute moves the attribute in progress onto the tag. An attribute
// whose name is already on the tag is dropped.
func (t *TokenBuilder) CommitAttribute() {
	if !t.inAttribute {
		return
	}
	k := t.attributeKey.String()
	if !t.hasAttribute(k) {
		t.attributes = append(t.attributes, Attribute{Name: k, Value: t.attributeValue.String()})
	}
	t.attributeKey.Reset()
	t.attributeValue.Reset()
	t.inAttribute = false
}

func (t *TokenBuilder) hasAttribute(name string) bool {
	for _, a := range t.attributes {
		if a.Name == name {
			return true
		}
	}
	return false
}

// WriteName appends a character to the current name value.
func (t *TokenBuilder) WriteName(r rune) {
	t.name.WriteRune(r)
}

// Name returns the name written so far.
func (t *TokenBuilder) Name() string {
	return t.name.String()
}

// WriteData appends a character to the current data section.
func (t *TokenBuilder) WriteData(r rune) {
	t.data.WriteRune(r)
}

// WriteDataString appends s to the current data section.
func (t *TokenBuilder) WriteDataString(s string) {
	t.data.WriteString(s)
}

// WriteTempBuffer appends a character to the temporary buffer.
func (t *TokenBuilder) WriteTempBuffer(r rune) {
	t.tempBuffer.WriteRune(r)
}

// ResetTempBuffer clears the temporary buffer to be used by some other state.
func (t *TokenBuilder) ResetTempBuffer() {
	t.tempBuffer.Reset()
}

// TempBuffer returns the contents of the temporary buffer.
func (t *TokenBuilder) TempBuffer() string {
	return t.tempBuffer.String()
}

// TempBufferCharTokens returns one character token per rune in the temporary
// buffer.
func (t *TokenBuilder) TempBufferCharTokens() []Token {
	tb := t.tempBuffer.String()
	tokens := make([]Token, 0, len(tb))
	for _, r := range tb {
		tokens = append(tokens, t.CharacterToken(r))
	}
	return tokens
}

// SetCharRef sets the character reference code.
func (t *TokenBuilder) SetCharRef(i int) {
	t.characterReferenceCode = i
}

// GetCharRef returns the character reference code.
func (t *TokenBuilder) GetCharRef() int {
	return t.characterReferenceCode
}

// AccumulateCharRef shifts the character reference code by base and adds
// digit. The code saturates above the last code point so long digit runs
// cannot overflow.
func (t *TokenBuilder) AccumulateCharRef(base, digit int) {
	if t.characterReferenceCode > 0x10FFFF {
		return
	}
	t.characterReferenceCode = t.characterReferenceCode*base + digit
}

// StartTagToken creates a start tag token from the builder
// contents.
func (t *TokenBuilder) StartTagToken() Token {
	t.CommitAttribute()
	return Token{
		TokenType:   StartTagToken,
		TagName:     t.name.String(),
		Attributes:  t.attributes,
		SelfClosing: t.selfClosing,
	}
}

// EndTagToken creates an end tag token from the builder
// contents.
func (t *TokenBuilder) EndTagToken() Token {
	t.CommitAttribute()
	return Token{
		TokenType:   EndTagToken,
		TagName:     t.name.String(),
		Attributes:  t.attributes,
		SelfClosing: t.selfClosing,
	}
}

// TagToken creates whichever kind of tag is in progress.
func (t *TokenBuilder) TagToken() Token {
	if t.curTagType == endTag {
		return t.EndTagToken()
	}
	return t.StartTagToken()
}

// CharacterToken creates a character token.
func (t *TokenBuilder) CharacterToken(r rune) Token {
	return Token{
		TokenType: CharacterToken,
		Data:      string(r),
	}
}

// EndOfFileToken create an end of file token.
func (t *TokenBuilder) EndOfFileToken() Token {
	return Token{
		TokenType: EndOfFileToken,
	}
}

// CommentToken creates a comment token from the builder contents.
func (t *TokenBuilder) CommentToken() Token {
	return Token{
		TokenType: CommentToken,
		Data:      t.data.String(),
	}
}

// DoctypeToken creates a doctype token from the builder contents.
func (t *TokenBuilder) DoctypeToken() Token {
	return Token{
		TokenType:           DoctypeToken,
		TagName:             t.name.String(),
		ForceQuirks:         t.forceQuirks,
		PublicIdentifier:    t.publicID.String(),
		SystemIdentifier:    t.systemID.String(),
		HasPublicIdentifier: t.hasPublicID,
		HasSystemIdentifier: t.hasSystemID,
	}
}

// Pending returns the token in progress, if there is one. It is what gets
// flushed when the tokenizer gives up on a state it cannot handle.
func (t *TokenBuilder) Pending() (Token, bool) {
	switch t.building {
	case buildingTag:
		return t.TagToken(), true
	case buildingComment:
		return t.CommentToken(), true
	case buildingDoctype:
		return t.DoctypeToken(), true
	}
	return Token{}, false
}
