package parser

import (
	"fmt"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tdewolff/test"
)

func newTestTokenizer(in string) (*HTMLTokenizer, *logtest.Hook) {
	logger, hook := logtest.NewNullLogger()
	return NewHTMLTokenizer(strings.NewReader(in), WithLogger(logger)), hook
}

// toks flattens tokens, token slices and strings (one character token per
// rune) into one expected stream.
func toks(parts ...interface{}) []Token {
	ret := []Token{}
	for _, part := range parts {
		switch v := part.(type) {
		case Token:
			ret = append(ret, v)
		case []Token:
			ret = append(ret, v...)
		case string:
			for _, r := range v {
				ret = append(ret, Token{TokenType: CharacterToken, Data: string(r)})
			}
		}
	}
	return ret
}

func startTagTok(name string, attrs ...Attribute) Token {
	return Token{TokenType: StartTagToken, TagName: name, Attributes: attrs}
}

func endTagTok(name string) Token {
	return Token{TokenType: EndTagToken, TagName: name}
}

func comment(data string) Token {
	return Token{TokenType: CommentToken, Data: data}
}

var eof = Token{TokenType: EndOfFileToken}

func collect(p *HTMLTokenizer) []Token {
	ret := []Token{}
	for {
		t := p.NextToken()
		ret = append(ret, t)
		if t.TokenType == EndOfFileToken {
			return ret
		}
	}
}

type tokezinerAttributeAccuracyTestcase struct {
	inHTML string      // snippet of HTML to tokenize (should only be one element)
	attrs  []Attribute // expected attributes on the first token that is produced
}

var tokenizerAttributeAccuracyTests = []tokezinerAttributeAccuracyTestcase{
	{"<head></head>", nil},
	{"<script src='123' onload='test'></script>", []Attribute{{"src", "123"}, {"onload", "test"}}},
	{"<a href='https://google.com' onclick='alert(1)'>Click this</a>", []Attribute{{"href", "https://google.com"}, {"onclick", "alert(1)"}}},
	{"<script src='123' src='456'></script>", []Attribute{{"src", "123"}}},
	{"<script src=123 onload=test></script>", []Attribute{{"src", "123"}, {"onload", "test"}}},
	{"<script src='123' onload='test' ></script>", []Attribute{{"src", "123"}, {"onload", "test"}}},
	{"<script =src='123'onload='test' ></script>", []Attribute{{"=src", "123"}, {"onload", "test"}}},
	{"<div id='a'class='b'>", []Attribute{{"id", "a"}, {"class", "b"}}},
	{`<div id="a"class="b">`, []Attribute{{"id", "a"}, {"class", "b"}}},
	{"<script src></script>", []Attribute{{"src", ""}}},
	{"<script src test></script>", []Attribute{{"src", ""}, {"test", ""}}},
	{"<script 'asd></script>", []Attribute{{"'asd", ""}}},
	{"<script <asd></script>", []Attribute{{"<asd", ""}}},
	{"<script ABC=123></script>", []Attribute{{"ABC", "123"}}},
	{"<script abc='\u0000123'></script>", []Attribute{{"abc", "�123"}}},
	{"<script abc=></script>", []Attribute{{"abc", ""}}},
	{"<script\tabc=123></script>", []Attribute{{"abc", "123"}}},
	{"<a title='x&#65;y'>", []Attribute{{"title", "xAy"}}},
	{"<a title=a&>", []Attribute{{"title", "a&"}}},
	{"<img src = 'a.png' />", []Attribute{{"src", "a.png"}}},
}

// TestTokenizerAttributeAccuracy just makes sure that we have the
// correct number attribute names and values
func TestTokenizerAttributeAccuracy(t *testing.T) {
	for _, tt := range tokenizerAttributeAccuracyTests {
		tt := tt
		t.Run(tt.inHTML, func(t *testing.T) {
			t.Parallel()
			p, _ := newTestTokenizer(tt.inHTML)
			token := p.NextToken()
			require.Equal(t, StartTagToken, token.TokenType)
			assert.Equal(t, tt.attrs, token.Attributes)
		})
	}
}

func TestTokenSequences(t *testing.T) {
	tests := []struct {
		in   string
		want []Token
	}{
		{"<!DOCTYPE html><html><body></body></html>", toks(
			Token{TokenType: DoctypeToken, TagName: "html"},
			startTagTok("html"), startTagTok("body"), endTagTok("body"), endTagTok("html"), eof)},
		{"<DIV>", toks(startTagTok("div"), eof)},
		{"<p>hi</P>", toks(startTagTok("p"), "hi", endTagTok("p"), eof)},
		{"<br/>", toks(Token{TokenType: StartTagToken, TagName: "br", SelfClosing: true}, eof)},
		{"</p class=x/>", toks(endTagTok("p"), eof)},
		{"<!-- hi -->", toks(comment(" hi "), eof)},
		{"<!---->", toks(comment(""), eof)},
		{"<!-->", toks(comment(""), eof)},
		{"<!--a--!>", toks(comment("a"), eof)},
		{"<!--a--b-->", toks(comment("a--b"), eof)},
		{"<!--<!-- x -->", toks(comment("<!-- x "), eof)},
		{"<!--x", toks(comment("x"), eof)},
		{"<?xml version?>", toks(comment("?xml version?"), eof)},
		{"</3>", toks(comment("3"), eof)},
		{"<!x>", toks(comment("x"), eof)},
		{"<![CDATA[x]]>", toks(comment("[CDATA[x]]"), eof)},
		{"</>", toks(eof)},
		{"a<b", toks("a", eof)},
		{"a<", toks("a<", eof)},
		{"a</", toks("a</", eof)},
		{"1 < 2", toks("1 < 2", eof)},
		{"a\r\nb", toks("a\nb", eof)},
		{"&#65;&#x42;&#X43;", toks("ABC", eof)},
		{"&#x;", toks("&#x;", eof)},
		{"&#;", toks("&#;", eof)},
		{"& b", toks("& b", eof)},
		{"&#65x", toks("Ax", eof)},
		{"&#65", toks("A", eof)},
		{"&#128;", toks("€", eof)},
		{"&#x9F;", toks("Ÿ", eof)},
		{"&#0;", toks("�", eof)},
		{"&#xD800;", toks("�", eof)},
		{"&#x110000;", toks("�", eof)},
		{"&#99999999999999999999;", toks("�", eof)},
		{"&#xFFFF;", toks("\uFFFF", eof)},
		{"\u0000", toks("\u0000", eof)},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			p, _ := newTestTokenizer(tt.in)
			assert.Equal(t, tt.want, collect(p))
			assert.False(t, p.Truncated())
		})
	}
}

func TestDoctypeTokens(t *testing.T) {
	tests := []struct {
		in   string
		want Token
	}{
		{"<!DOCTYPE html>", Token{TokenType: DoctypeToken, TagName: "html"}},
		{"<!doctype HTML>", Token{TokenType: DoctypeToken, TagName: "html"}},
		{"<!DOCTYPE>", Token{TokenType: DoctypeToken, ForceQuirks: true}},
		{"<!DOCTYPE", Token{TokenType: DoctypeToken, ForceQuirks: true}},
		{"<!DOCTYPE html bogus>", Token{TokenType: DoctypeToken, TagName: "html", ForceQuirks: true}},
		{`<!DOCTYPE html PUBLIC "-//W3C//DTD HTML 4.01//EN" "http://www.w3.org/TR/html4/strict.dtd">`, Token{
			TokenType:           DoctypeToken,
			TagName:             "html",
			PublicIdentifier:    "-//W3C//DTD HTML 4.01//EN",
			SystemIdentifier:    "http://www.w3.org/TR/html4/strict.dtd",
			HasPublicIdentifier: true,
			HasSystemIdentifier: true,
		}},
		{"<!DOCTYPE html system 'about:legacy-compat'>", Token{
			TokenType:           DoctypeToken,
			TagName:             "html",
			SystemIdentifier:    "about:legacy-compat",
			HasSystemIdentifier: true,
		}},
		{`<!DOCTYPE html PUBLIC "">`, Token{TokenType: DoctypeToken, TagName: "html", HasPublicIdentifier: true}},
		{`<!DOCTYPE html PUBLIC "x>`, Token{
			TokenType:           DoctypeToken,
			TagName:             "html",
			PublicIdentifier:    "x",
			HasPublicIdentifier: true,
			ForceQuirks:         true,
		}},
		{`<!DOCTYPE html SYSTEM "a" junk>`, Token{
			TokenType:           DoctypeToken,
			TagName:             "html",
			SystemIdentifier:    "a",
			HasSystemIdentifier: true,
		}},
		{"<!DOCTYPE html PUBLICx>", Token{TokenType: DoctypeToken, TagName: "html", ForceQuirks: true}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			p, _ := newTestTokenizer(tt.in)
			assert.Equal(t, toks(tt.want, eof), collect(p))
		})
	}
}

func TestSwitchToTextStates(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		state tokenizerState
		want  []Token
	}{
		{"rcdata", "<title>a<b>&#65;</title>", rcDataState, toks("a<b>A", endTagTok("title"), eof)},
		{"rcdata wrong end tag", "<title>a</b></title>", rcDataState, toks("a</b>", endTagTok("title"), eof)},
		{"rcdata unclosed end tag", "<title>a</tit", rcDataState, toks("a</tit", eof)},
		{"rawtext", "<style>a&#65;<b></style>", rawTextState, toks("a&#65;<b>", endTagTok("style"), eof)},
		{"rawtext end tag case", "<style>x</STYLE >", rawTextState, toks("x", endTagTok("style"), eof)},
		{"script", "<script>if (a<b) {}</script>", scriptDataState, toks("if (a<b) {}", endTagTok("script"), eof)},
		{"script escaped", "<script>a<!--<script>x</script>-->b</script>", scriptDataState,
			toks("a<!--<script>x</script>-->b", endTagTok("script"), eof)},
		{"script escaped end", "<script><!--x</script>", scriptDataState, toks("<!--x", endTagTok("script"), eof)},
		{"plaintext", "<plaintext>a</plaintext>", plaintextState, toks("a</plaintext>", eof)},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p, _ := newTestTokenizer(tt.in)
			first := p.NextToken()
			require.Equal(t, StartTagToken, first.TokenType)
			p.switchTo(tt.state)
			assert.Equal(t, tt.want, collect(p))
		})
	}
}

func TestUnhandledState(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		want  []Token
		state tokenizerState
	}{
		{"named reference in text", "a&amp;b<p>", toks("a&", eof), namedCharacterReferenceState},
		{"named reference in attribute", `<a title="&amp;">x`, toks(startTagTok("a", Attribute{"title", "&"}), eof), namedCharacterReferenceState},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p, hook := newTestTokenizer(tt.in)
			assert.Equal(t, tt.want, collect(p))
			assert.True(t, p.Truncated())

			entry := hook.LastEntry()
			require.NotNil(t, entry)
			assert.Equal(t, logrus.WarnLevel, entry.Level)
			assert.Equal(t, tt.state, entry.Data["state"])
			assert.Equal(t, "tokenizer", entry.Data["component"])
			assert.NotEmpty(t, entry.Data["input"])
		})
	}
}

func TestUnhandledStateFlushesPendingComment(t *testing.T) {
	p, _ := newTestTokenizer("")
	p.tokenBuilder.StartComment()
	p.tokenBuilder.WriteDataString("half")
	p.currentState = cdataSectionState
	p.processCharacter(inputCharacter{r: 'x'})

	assert.Equal(t, toks(comment("half"), eof), collect(p))
	assert.True(t, p.Truncated())
}

func TestEOFIsSticky(t *testing.T) {
	p, _ := newTestTokenizer("<p>")
	assert.Equal(t, startTagTok("p"), p.NextToken())
	for i := 0; i < 3; i++ {
		assert.Equal(t, eof, p.NextToken())
	}
}

func TestReprocessDoesNotReadInput(t *testing.T) {
	p, _ := newTestTokenizer("<a><b>")
	a := p.NextToken()
	p.reprocess(a)
	assert.Equal(t, startTagTok("a"), p.NextToken())
	assert.Equal(t, startTagTok("b"), p.NextToken())
	assert.Equal(t, eof, p.NextToken())
}

func TestTokenizerReaderError(t *testing.T) {
	tokens, err := Tokenize(test.NewErrorReader(0))
	require.Error(t, err)
	assert.ErrorIs(t, err, test.ErrPlain)
	assert.Equal(t, toks(eof), tokens)
}

func TestTokenizeTerminates(t *testing.T) {
	inputs := []string{
		"", "<", "</", "<!", "<!-", "<!--", "<!--x--", "<!DOCTYPE", "<!DOCTYPE html PUBLIC",
		"<a b='", `<a b="`, "<a b=", "<a b", "<a/", "<a ", "&", "&#", "&#x", "&#x41",
		"<![CDATA[", "<!doctype html system", "<<<<>>>>", "\u0000<\u0000>",
	}
	for _, in := range inputs {
		in := in
		t.Run(in, func(t *testing.T) {
			t.Parallel()
			logger, _ := logtest.NewNullLogger()
			tokens, err := Tokenize(strings.NewReader(in), WithLogger(logger))
			require.NoError(t, err)
			require.NotEmpty(t, tokens)
			assert.Equal(t, EndOfFileToken, tokens[len(tokens)-1].TokenType)
		})
	}
}

type stateMachineTestCase struct {
	inRune            rune           // the rune to pass to the startingState
	startingState     tokenizerState // the state to start from
	shouldReconsume   bool           // the expectation if the next state should reconsume
	nextExpectedState tokenizerState // the next state
}

// TestStateParsers tests to make sure that each component of the state machine returns the next
// expected state. Cases that depend on earlier input are in TestParseStatefulness.
func TestStateParsers(t *testing.T) {
	stateParserTests := []stateMachineTestCase{
		{'&', dataState, false, characterReferenceState},
		{'<', dataState, false, tagOpenState},
		{'\u0000', dataState, false, dataState},
		{'a', dataState, false, dataState},

		{'&', rcDataState, false, characterReferenceState},
		{'<', rcDataState, false, rcDataLessThanSignState},
		{'\u0000', rcDataState, false, rcDataState},

		{'<', rawTextState, false, rawTextLessThanSignState},
		{'&', rawTextState, false, rawTextState},
		{'<', scriptDataState, false, scriptDataLessThanSignState},
		{'\u0000', plaintextState, false, plaintextState},
		{'<', plaintextState, false, plaintextState},

		{'!', tagOpenState, false, markupDeclarationOpenState},
		{'/', tagOpenState, false, endTagOpenState},
		{'a', tagOpenState, true, tagNameState},
		{'Z', tagOpenState, true, tagNameState},
		{'?', tagOpenState, true, bogusCommentState},
		{'1', tagOpenState, true, dataState},

		{'a', endTagOpenState, true, tagNameState},
		{'>', endTagOpenState, false, dataState},
		{'#', endTagOpenState, true, bogusCommentState},

		{'\t', tagNameState, false, beforeAttributeNameState},
		{'\u000C', tagNameState, false, beforeAttributeNameState},
		{'/', tagNameState, false, selfClosingStartTagState},
		{'>', tagNameState, false, dataState},
		{'A', tagNameState, false, tagNameState},

		{'/', rcDataLessThanSignState, false, rcDataEndTagOpenState},
		{'a', rcDataLessThanSignState, true, rcDataState},
		{'a', rcDataEndTagOpenState, true, rcDataEndTagNameState},
		{'1', rcDataEndTagOpenState, true, rcDataState},
		{'A', rcDataEndTagNameState, false, rcDataEndTagNameState},
		{'1', rcDataEndTagNameState, true, rcDataState},
		{' ', rcDataEndTagNameState, true, rcDataState},

		{'/', rawTextLessThanSignState, false, rawTextEndTagOpenState},
		{'z', rawTextEndTagOpenState, true, rawTextEndTagNameState},
		{'@', rawTextEndTagOpenState, true, rawTextState},
		{'#', rawTextEndTagNameState, true, rawTextState},

		{'/', scriptDataLessThanSignState, false, scriptDataEndTagOpenState},
		{'!', scriptDataLessThanSignState, false, scriptDataEscapeStartState},
		{'a', scriptDataLessThanSignState, true, scriptDataState},
		{'Z', scriptDataEndTagOpenState, true, scriptDataEndTagNameState},
		{'^', scriptDataEndTagNameState, true, scriptDataState},

		{'-', scriptDataEscapeStartState, false, scriptDataEscapeStartDashState},
		{'a', scriptDataEscapeStartState, true, scriptDataState},
		{'-', scriptDataEscapeStartDashState, false, scriptDataEscapedDashDashState},
		{'@', scriptDataEscapeStartDashState, true, scriptDataState},

		{'-', scriptDataEscapedState, false, scriptDataEscapedDashState},
		{'<', scriptDataEscapedState, false, scriptDataEscapedLessThanSignState},
		{'a', scriptDataEscapedState, false, scriptDataEscapedState},
		{'-', scriptDataEscapedDashState, false, scriptDataEscapedDashDashState},
		{'a', scriptDataEscapedDashState, false, scriptDataEscapedState},
		{'-', scriptDataEscapedDashDashState, false, scriptDataEscapedDashDashState},
		{'>', scriptDataEscapedDashDashState, false, scriptDataState},
		{'$', scriptDataEscapedDashDashState, false, scriptDataEscapedState},

		{'/', scriptDataEscapedLessThanSignState, false, scriptDataEscapedEndTagOpenState},
		{'a', scriptDataEscapedLessThanSignState, true, scriptDataDoubleEscapeStartState},
		{'1', scriptDataEscapedLessThanSignState, true, scriptDataEscapedState},
		{'a', scriptDataEscapedEndTagOpenState, true, scriptDataEscapedEndTagNameState},
		{'1', scriptDataEscapedEndTagNameState, true, scriptDataEscapedState},

		{'a', scriptDataDoubleEscapeStartState, false, scriptDataDoubleEscapeStartState},
		{' ', scriptDataDoubleEscapeStartState, false, scriptDataEscapedState},
		{'1', scriptDataDoubleEscapeStartState, true, scriptDataEscapedState},
		{'-', scriptDataDoubleEscapedState, false, scriptDataDoubleEscapedDashState},
		{'<', scriptDataDoubleEscapedState, false, scriptDataDoubleEscapedLessThanSignState},
		{'-', scriptDataDoubleEscapedDashState, false, scriptDataDoubleEscapedDashDashState},
		{'a', scriptDataDoubleEscapedDashState, false, scriptDataDoubleEscapedState},
		{'>', scriptDataDoubleEscapedDashDashState, false, scriptDataState},
		{'/', scriptDataDoubleEscapedLessThanSignState, false, scriptDataDoubleEscapeEndState},
		{'a', scriptDataDoubleEscapedLessThanSignState, true, scriptDataDoubleEscapedState},
		{' ', scriptDataDoubleEscapeEndState, false, scriptDataDoubleEscapedState},
		{'a', scriptDataDoubleEscapeEndState, false, scriptDataDoubleEscapeEndState},

		{' ', beforeAttributeNameState, false, beforeAttributeNameState},
		{'/', beforeAttributeNameState, true, afterAttributeNameState},
		{'>', beforeAttributeNameState, true, afterAttributeNameState},
		{'=', beforeAttributeNameState, false, attributeNameState},
		{'a', beforeAttributeNameState, true, attributeNameState},

		{' ', attributeNameState, true, afterAttributeNameState},
		{'>', attributeNameState, true, afterAttributeNameState},
		{'=', attributeNameState, false, beforeAttributeValueState},
		{'a', attributeNameState, false, attributeNameState},
		{'"', attributeNameState, false, attributeNameState},

		{' ', afterAttributeNameState, false, afterAttributeNameState},
		{'/', afterAttributeNameState, false, selfClosingStartTagState},
		{'=', afterAttributeNameState, false, beforeAttributeValueState},
		{'>', afterAttributeNameState, false, dataState},
		{'a', afterAttributeNameState, true, attributeNameState},

		{' ', beforeAttributeValueState, false, beforeAttributeValueState},
		{'"', beforeAttributeValueState, false, attributeValueDoubleQuotedState},
		{'\'', beforeAttributeValueState, false, attributeValueSingleQuotedState},
		{'>', beforeAttributeValueState, false, dataState},
		{'a', beforeAttributeValueState, true, attributeValueUnquotedState},

		{'"', attributeValueDoubleQuotedState, false, afterAttributeValueQuotedState},
		{'&', attributeValueDoubleQuotedState, false, characterReferenceState},
		{'\'', attributeValueDoubleQuotedState, false, attributeValueDoubleQuotedState},
		{'\'', attributeValueSingleQuotedState, false, afterAttributeValueQuotedState},
		{'"', attributeValueSingleQuotedState, false, attributeValueSingleQuotedState},
		{' ', attributeValueUnquotedState, false, beforeAttributeNameState},
		{'&', attributeValueUnquotedState, false, characterReferenceState},
		{'>', attributeValueUnquotedState, false, dataState},
		{'"', attributeValueUnquotedState, false, attributeValueUnquotedState},

		{' ', afterAttributeValueQuotedState, false, beforeAttributeNameState},
		{'/', afterAttributeValueQuotedState, false, selfClosingStartTagState},
		{'>', afterAttributeValueQuotedState, false, dataState},
		{'a', afterAttributeValueQuotedState, true, beforeAttributeNameState},

		{'>', selfClosingStartTagState, false, dataState},
		{'a', selfClosingStartTagState, true, beforeAttributeNameState},

		{'>', bogusCommentState, false, dataState},
		{'a', bogusCommentState, false, bogusCommentState},
		{'a', markupDeclarationOpenState, true, bogusCommentState},
		{'-', markupDeclarationOpenState, true, bogusCommentState},

		{'-', commentStartState, false, commentStartDashState},
		{'>', commentStartState, false, dataState},
		{'a', commentStartState, true, commentState},
		{'-', commentStartDashState, false, commentEndState},
		{'>', commentStartDashState, false, dataState},
		{'a', commentStartDashState, true, commentState},
		{'<', commentState, false, commentLessThanSignState},
		{'-', commentState, false, commentEndDashState},
		{'a', commentState, false, commentState},
		{'!', commentLessThanSignState, false, commentLessThanSignBangState},
		{'<', commentLessThanSignState, false, commentLessThanSignState},
		{'a', commentLessThanSignState, true, commentState},
		{'-', commentLessThanSignBangState, false, commentLessThanSignBangDashState},
		{'a', commentLessThanSignBangState, true, commentState},
		{'-', commentLessThanSignBangDashState, false, commentLessThanSignBangDashDashState},
		{'a', commentLessThanSignBangDashState, true, commentEndDashState},
		{'>', commentLessThanSignBangDashDashState, true, commentEndState},
		{'a', commentLessThanSignBangDashDashState, true, commentEndState},
		{'-', commentEndDashState, false, commentEndState},
		{'a', commentEndDashState, true, commentState},
		{'>', commentEndState, false, dataState},
		{'!', commentEndState, false, commentEndBangState},
		{'-', commentEndState, false, commentEndState},
		{'a', commentEndState, true, commentState},
		{'-', commentEndBangState, false, commentEndDashState},
		{'>', commentEndBangState, false, dataState},
		{'a', commentEndBangState, true, commentState},

		{' ', doctypeState, false, beforeDoctypeNameState},
		{'a', doctypeState, true, beforeDoctypeNameState},
		{' ', beforeDoctypeNameState, false, beforeDoctypeNameState},
		{'>', beforeDoctypeNameState, false, dataState},
		{'a', beforeDoctypeNameState, false, doctypeNameState},
		{' ', doctypeNameState, false, afterDoctypeNameState},
		{'>', doctypeNameState, false, dataState},
		{'a', doctypeNameState, false, doctypeNameState},
		{' ', afterDoctypeNameState, false, afterDoctypeNameState},
		{'>', afterDoctypeNameState, false, dataState},
		{'x', afterDoctypeNameState, true, bogusDoctypeState},
		{'P', afterDoctypeNameState, true, bogusDoctypeState},

		{' ', afterDoctypePublicKeywordState, false, beforeDoctypePublicIdentifierState},
		{'"', afterDoctypePublicKeywordState, false, doctypePublicIdentifierDoubleQuotedState},
		{'\'', afterDoctypePublicKeywordState, false, doctypePublicIdentifierSingleQuotedState},
		{'>', afterDoctypePublicKeywordState, false, dataState},
		{'a', afterDoctypePublicKeywordState, true, bogusDoctypeState},
		{' ', beforeDoctypePublicIdentifierState, false, beforeDoctypePublicIdentifierState},
		{'"', beforeDoctypePublicIdentifierState, false, doctypePublicIdentifierDoubleQuotedState},
		{'"', doctypePublicIdentifierDoubleQuotedState, false, afterDoctypePublicIdentifierState},
		{'>', doctypePublicIdentifierDoubleQuotedState, false, dataState},
		{'a', doctypePublicIdentifierDoubleQuotedState, false, doctypePublicIdentifierDoubleQuotedState},
		{'\'', doctypePublicIdentifierSingleQuotedState, false, afterDoctypePublicIdentifierState},
		{' ', afterDoctypePublicIdentifierState, false, betweenDoctypePublicAndSystemIdentifiersState},
		{'>', afterDoctypePublicIdentifierState, false, dataState},
		{'"', afterDoctypePublicIdentifierState, false, doctypeSystemIdentifierDoubleQuotedState},
		{'a', afterDoctypePublicIdentifierState, true, bogusDoctypeState},
		{' ', betweenDoctypePublicAndSystemIdentifiersState, false, betweenDoctypePublicAndSystemIdentifiersState},
		{'\'', betweenDoctypePublicAndSystemIdentifiersState, false, doctypeSystemIdentifierSingleQuotedState},
		{' ', afterDoctypeSystemKeywordState, false, beforeDoctypeSystemIdentifierState},
		{'"', afterDoctypeSystemKeywordState, false, doctypeSystemIdentifierDoubleQuotedState},
		{'\'', beforeDoctypeSystemIdentifierState, false, doctypeSystemIdentifierSingleQuotedState},
		{'"', doctypeSystemIdentifierDoubleQuotedState, false, afterDoctypeSystemIdentifierState},
		{'\'', doctypeSystemIdentifierSingleQuotedState, false, afterDoctypeSystemIdentifierState},
		{' ', afterDoctypeSystemIdentifierState, false, afterDoctypeSystemIdentifierState},
		{'>', afterDoctypeSystemIdentifierState, false, dataState},
		{'a', afterDoctypeSystemIdentifierState, true, bogusDoctypeState},
		{'>', bogusDoctypeState, false, dataState},
		{'a', bogusDoctypeState, false, bogusDoctypeState},

		{'a', characterReferenceState, true, namedCharacterReferenceState},
		{'1', characterReferenceState, true, namedCharacterReferenceState},
		{'#', characterReferenceState, false, numericCharacterReferenceState},
		{' ', characterReferenceState, true, dataState},
		{'x', numericCharacterReferenceState, false, hexadecimalCharacterReferenceStartState},
		{'X', numericCharacterReferenceState, false, hexadecimalCharacterReferenceStartState},
		{'1', numericCharacterReferenceState, true, decimalCharacterReferenceStartState},
		{'a', hexadecimalCharacterReferenceStartState, true, hexadecimalCharacterReferenceState},
		{'g', hexadecimalCharacterReferenceStartState, true, dataState},
		{'1', decimalCharacterReferenceStartState, true, decimalCharacterReferenceState},
		{'a', decimalCharacterReferenceStartState, true, dataState},
		{'1', hexadecimalCharacterReferenceState, false, hexadecimalCharacterReferenceState},
		{'F', hexadecimalCharacterReferenceState, false, hexadecimalCharacterReferenceState},
		{';', hexadecimalCharacterReferenceState, false, dataState},
		{'g', hexadecimalCharacterReferenceState, true, numericCharacterReferenceEndState},
		{'9', decimalCharacterReferenceState, false, decimalCharacterReferenceState},
		{';', decimalCharacterReferenceState, false, dataState},
		{'a', decimalCharacterReferenceState, true, numericCharacterReferenceEndState},
		{'a', numericCharacterReferenceEndState, true, dataState},

		{'a', cdataSectionState, false, dataState},
		{'a', ambiguousAmpersandState, false, dataState},
	}

	for _, tt := range stateParserTests {
		tt := tt
		t.Run(fmt.Sprintf("%s-%#U", tt.startingState, tt.inRune), func(t *testing.T) {
			t.Parallel()
			p, _ := newTestTokenizer("")
			p.currentState = tt.startingState
			reconsume, state := p.stateToParser(tt.startingState)(inputCharacter{r: tt.inRune})
			assert.Equal(t, tt.nextExpectedState, state)
			assert.Equal(t, tt.shouldReconsume, reconsume)
		})
	}
}

func TestStateParsersAtEOF(t *testing.T) {
	states := []tokenizerState{
		dataState, rcDataState, rawTextState, scriptDataState, plaintextState, tagOpenState,
		endTagOpenState, tagNameState, scriptDataEscapedState, scriptDataDoubleEscapedState,
		afterAttributeNameState, attributeValueDoubleQuotedState, attributeValueUnquotedState,
		selfClosingStartTagState, bogusCommentState, commentState, commentEndState,
		doctypeState, doctypeNameState, bogusDoctypeState,
	}
	for _, state := range states {
		state := state
		t.Run(state.String(), func(t *testing.T) {
			t.Parallel()
			p, _ := newTestTokenizer("")
			p.currentState = state
			p.stateToParser(state)(eofCharacter)
			require.NotEmpty(t, p.emittedTokens)
			assert.Equal(t, EndOfFileToken, p.emittedTokens[len(p.emittedTokens)-1].TokenType)
		})
	}
}

type parserStatefulnessTestCase struct {
	inHTML     string                                // the HTML to feed, one character at a time
	startState tokenizerState                        // the starting state of the tokenizer
	testFunc   func(*HTMLTokenizer) (string, string) // since we are testing internal state, we need a function that can look inside the tokenizer
	setup      func(*HTMLTokenizer)                  // any setup code will be run before tokenization
}

// TestParseStatefulness feeds characters straight into the state machine
// without an end of file, so the token builder still holds the token in
// progress when it is inspected.
func TestParseStatefulness(t *testing.T) {
	name := func(p *HTMLTokenizer) string { return p.tokenBuilder.Name() }
	data := func(p *HTMLTokenizer) string { return p.tokenBuilder.data.String() }
	quirks := func(p *HTMLTokenizer) (string, string) { return fmt.Sprintf("%t", p.tokenBuilder.forceQuirks), "true" }
	startAttr := func(p *HTMLTokenizer) {
		p.tokenBuilder.StartTag(startTag)
		p.tokenBuilder.StartAttribute()
	}

	parserStatefulnessTestCases := []parserStatefulnessTestCase{
		{"&", dataState, func(p *HTMLTokenizer) (string, string) { return p.returnState.String(), dataState.String() }, nil},
		{"&", rcDataState, func(p *HTMLTokenizer) (string, string) { return p.returnState.String(), rcDataState.String() }, nil},
		{"b", tagOpenState, func(p *HTMLTokenizer) (string, string) { return name(p), "b" }, nil},
		{"bAc", tagOpenState, func(p *HTMLTokenizer) (string, string) { return name(p), "bac" }, nil},
		{"bA\u0000c", tagOpenState, func(p *HTMLTokenizer) (string, string) { return name(p), "ba�c" }, nil},
		{"P", endTagOpenState, func(p *HTMLTokenizer) (string, string) { return name(p), "p" }, nil},
		{"1", endTagOpenState, func(p *HTMLTokenizer) (string, string) { return data(p), "1" }, nil},
		{"U", rcDataEndTagOpenState, func(p *HTMLTokenizer) (string, string) { return name(p), "u" }, nil},
		{"U", scriptDataEndTagOpenState, func(p *HTMLTokenizer) (string, string) { return p.tokenBuilder.TempBuffer(), "U" }, nil},
		{"U", scriptDataDoubleEscapeStartState, func(p *HTMLTokenizer) (string, string) { return p.tokenBuilder.TempBuffer(), "u" }, nil},
		{"U", attributeNameState, func(p *HTMLTokenizer) (string, string) { return p.tokenBuilder.attributeKey.String(), "U" }, startAttr},
		{"\u0000", attributeNameState, func(p *HTMLTokenizer) (string, string) { return p.tokenBuilder.attributeKey.String(), "�" }, startAttr},
		{"\u0000A", attributeValueDoubleQuotedState, func(p *HTMLTokenizer) (string, string) { return p.tokenBuilder.attributeValue.String(), "�A" }, startAttr},
		{"a'", attributeValueSingleQuotedState, func(p *HTMLTokenizer) (string, string) { return p.currentState.String(), afterAttributeValueQuotedState.String() }, startAttr},
		{"&", attributeValueUnquotedState, func(p *HTMLTokenizer) (string, string) {
			return p.returnState.String(), attributeValueUnquotedState.String()
		}, startAttr},
		{">", selfClosingStartTagState, func(p *HTMLTokenizer) (string, string) { return p.emittedTokens[0].String(), `StartTag("" /)` }, nil},
		{"\u0000a", bogusCommentState, func(p *HTMLTokenizer) (string, string) { return data(p), "�a" }, nil},
		{"3", commentStartDashState, func(p *HTMLTokenizer) (string, string) { return data(p), "-3" }, nil},
		{"<!", commentState, func(p *HTMLTokenizer) (string, string) { return data(p), "<!" }, nil},
		{"a", commentEndDashState, func(p *HTMLTokenizer) (string, string) { return data(p), "-a" }, nil},
		{"-", commentEndState, func(p *HTMLTokenizer) (string, string) { return data(p), "-" }, nil},
		{"A", commentEndState, func(p *HTMLTokenizer) (string, string) { return data(p), "--A" }, nil},
		{"-", commentEndBangState, func(p *HTMLTokenizer) (string, string) { return data(p), "--!" }, nil},
		{"@", commentEndBangState, func(p *HTMLTokenizer) (string, string) { return data(p), "--!@" }, nil},
		{"A", beforeDoctypeNameState, func(p *HTMLTokenizer) (string, string) { return name(p), "a" }, nil},
		{"\u0000", beforeDoctypeNameState, func(p *HTMLTokenizer) (string, string) { return name(p), "�" }, nil},
		{">", beforeDoctypeNameState, func(p *HTMLTokenizer) (string, string) { return p.emittedTokens[0].String(), `Doctype("" force-quirks)` }, nil},
		{"A", beforeDoctypePublicIdentifierState, quirks, nil},
		{"\"\u0000A", afterDoctypePublicKeywordState, func(p *HTMLTokenizer) (string, string) { return p.tokenBuilder.publicID.String(), "�A" }, nil},
		{"!", afterDoctypePublicIdentifierState, quirks, nil},
		{"'a", betweenDoctypePublicAndSystemIdentifiersState, func(p *HTMLTokenizer) (string, string) { return p.tokenBuilder.systemID.String(), "a" }, nil},
		{"x", numericCharacterReferenceState, func(p *HTMLTokenizer) (string, string) { return p.tokenBuilder.TempBuffer(), "x" }, nil},
		{"22", hexadecimalCharacterReferenceState, func(p *HTMLTokenizer) (string, string) {
			return fmt.Sprintf("%d", p.tokenBuilder.GetCharRef()), "34"
		}, nil},
		{"FF", hexadecimalCharacterReferenceState, func(p *HTMLTokenizer) (string, string) {
			return fmt.Sprintf("%d", p.tokenBuilder.GetCharRef()), "255"
		}, nil},
		{"ff", hexadecimalCharacterReferenceState, func(p *HTMLTokenizer) (string, string) {
			return fmt.Sprintf("%d", p.tokenBuilder.GetCharRef()), "255"
		}, nil},
		{"134", decimalCharacterReferenceState, func(p *HTMLTokenizer) (string, string) {
			return fmt.Sprintf("%d", p.tokenBuilder.GetCharRef()), "134"
		}, nil},
	}

	for _, testcase := range parserStatefulnessTestCases {
		testcase := testcase
		t.Run(fmt.Sprintf("%s-%s", testcase.startState, testcase.inHTML), func(t *testing.T) {
			t.Parallel()
			p, _ := newTestTokenizer("")
			if testcase.setup != nil {
				testcase.setup(p)
			}
			p.currentState = testcase.startState
			for _, r := range testcase.inHTML {
				p.processCharacter(inputCharacter{r: r})
			}
			answer, expected := testcase.testFunc(p)
			assert.Equal(t, expected, answer)
		})
	}
}

func TestTokenString(t *testing.T) {
	tok := Token{TokenType: StartTagToken, TagName: "a", Attributes: []Attribute{{"href", "x"}}, SelfClosing: true}
	assert.Equal(t, `StartTag("a" href="x" /)`, tok.String())
	assert.Equal(t, `Character("a")`, Token{TokenType: CharacterToken, Data: "a"}.String())
	assert.Equal(t, "EndOfFile", eof.String())

	v, ok := tok.Attribute("href")
	assert.True(t, ok)
	assert.Equal(t, "x", v)
	_, ok = tok.Attribute("id")
	assert.False(t, ok)

	assert.True(t, tok.Equal(tok))
	assert.False(t, tok.Equal(startTagTok("a")))
	assert.Equal(t, "TokenType(42)", TokenType(42).String())
}
