package parser

import (
	"strings"
	"weak"

	"github.com/heathj/gobrowse/parser/spec"
	"github.com/sirupsen/logrus"
)

// maxRedispatch bounds how many times one token may be handed back for
// reprocessing before it is dropped.
const maxRedispatch = 16

type frameset uint

const (
	framesetOK frameset = iota
	framesetNotOK
)

// HTMLTreeConstructor holds the state for various state of the tree construction phase.
type HTMLTreeConstructor struct {
	tokenizer             *HTMLTokenizer
	document              *spec.Node
	mode                  insertionMode
	originalInsertionMode insertionMode
	stackOfOpenElements   spec.StackOfOpenElements
	headElementPointer    weak.Pointer[spec.Node]
	formElementPointer    weak.Pointer[spec.Node]
	frameset              frameset
	scriptingEnabled      bool
	fosterParenting       bool
	ignoreNextLF          bool
	stopped               bool
	redispatches          int
	unhandled             int
	mappings              map[insertionMode]treeConstructionModeHandler
	log                   *logrus.Entry
}

// NewHTMLTreeConstructor creates an HTMLTreeConstructor that pulls its tokens
// from tokenizer.
func NewHTMLTreeConstructor(tokenizer *HTMLTokenizer, opts ...Option) *HTMLTreeConstructor {
	cfg := newConfig(opts)
	tr := HTMLTreeConstructor{
		tokenizer:        tokenizer,
		document:         spec.NewDocument(),
		scriptingEnabled: cfg.scripting,
		log:              cfg.logger.WithField("component", "tree"),
	}

	tr.createMappings()
	return &tr
}

func (c *HTMLTreeConstructor) createMappings() {
	c.mappings = map[insertionMode]treeConstructionModeHandler{
		initial:            c.initialModeHandler,
		beforeHTML:         c.beforeHTMLModeHandler,
		beforeHead:         c.beforeHeadModeHandler,
		inHead:             c.inHeadModeHandler,
		inHeadNoScript:     c.inHeadNoScriptModeHandler,
		afterHead:          c.afterHeadModeHandler,
		inBody:             c.inBodyModeHandler,
		text:               c.textModeHandler,
		inTable:            c.unhandledModeHandler,
		inTableText:        c.unhandledModeHandler,
		inCaption:          c.unhandledModeHandler,
		inColumnGroup:      c.unhandledModeHandler,
		inTableBody:        c.unhandledModeHandler,
		inRow:              c.unhandledModeHandler,
		inCell:             c.unhandledModeHandler,
		inSelect:           c.unhandledModeHandler,
		inSelectInTable:    c.unhandledModeHandler,
		inTemplate:         c.unhandledModeHandler,
		afterBody:          c.afterBodyModeHandler,
		inFrameset:         c.unhandledModeHandler,
		afterFrameset:      c.unhandledModeHandler,
		afterAfterBody:     c.afterAfterBodyModeHandler,
		afterAfterFrameset: c.unhandledModeHandler,
	}
}

func (c *HTMLTreeConstructor) getCurrentNode() *spec.Node {
	return c.stackOfOpenElements.Current()
}

// getAppropriatePlaceForInsertion returns the node new children go into.
// https://html.spec.whatwg.org/multipage/parsing.html#appropriate-place-for-inserting-a-node
func (c *HTMLTreeConstructor) getAppropriatePlaceForInsertion(override *spec.Node) *spec.Node {
	target := override
	if target == nil {
		target = c.getCurrentNode()
	}
	if target == nil {
		return c.document
	}

	if c.fosterParenting {
		switch target.NodeName {
		case "table", "tbody", "tfoot", "thead", "tr":
			c.logUnhandled("foster parenting", nil)
		}
	}
	if target.NodeName == "template" {
		c.logUnhandled("template contents", nil)
	}
	return target
}

// Inserts a comment at a specific location.
// https://html.spec.whatwg.org/multipage/parsing.html#insert-a-comment
func (c *HTMLTreeConstructor) insertCommentAt(t *Token, parent *spec.Node) {
	parent.AppendChild(spec.NewComment(t.Data))
}

// Inserts a comment at the adjusted insertion location.
func (c *HTMLTreeConstructor) insertComment(t *Token) {
	c.insertCommentAt(t, c.getAppropriatePlaceForInsertion(nil))
}

// insertCharacter appends the character to a trailing text node, creating
// one if there is none. Text never goes directly under the document.
func (c *HTMLTreeConstructor) insertCharacter(t *Token) {
	loc := c.getAppropriatePlaceForInsertion(nil)
	if loc.NodeType == spec.DocumentNode {
		return
	}

	if last := loc.LastChild(); last != nil && last.NodeType == spec.TextNode {
		last.Text.AppendData(t.Data)
		return
	}
	loc.AppendChild(spec.NewTextNode(t.Data))
}

func (c *HTMLTreeConstructor) insertHTMLElementForToken(t *Token) *spec.Node {
	loc := c.getAppropriatePlaceForInsertion(nil)
	elem := loc.AppendChild(spec.NewElement(t.TagName))
	c.stackOfOpenElements.Push(elem)
	return elem
}

// insertHTMLElement inserts an element as if a start tag with no attributes
// called name had been seen.
func (c *HTMLTreeConstructor) insertHTMLElement(name string) *spec.Node {
	return c.insertHTMLElementForToken(&Token{TokenType: StartTagToken, TagName: name})
}

// insertVoidElement inserts and immediately pops, acknowledging the
// self-closing flag.
func (c *HTMLTreeConstructor) insertVoidElement(t *Token) {
	c.insertHTMLElementForToken(t)
	c.stackOfOpenElements.Pop()
}

func (c *HTMLTreeConstructor) removeFromStack(n *spec.Node) {
	c.stackOfOpenElements.Remove(c.stackOfOpenElements.Contains(n))
}

// genericTextElement implements the generic raw text and RCDATA element
// parsing algorithms.
// https://html.spec.whatwg.org/multipage/parsing.html#generic-raw-text-element-parsing-algorithm
func (c *HTMLTreeConstructor) genericTextElement(t *Token, state tokenizerState) (bool, insertionMode, parseError) {
	c.insertHTMLElementForToken(t)
	c.tokenizer.switchTo(state)
	c.originalInsertionMode = c.mode
	return false, text, noError
}

func (c *HTMLTreeConstructor) useRulesFor(t *Token, returnState, expectedState insertionMode) (bool, insertionMode, parseError) {
	reprocess, nextstate, err := c.mappings[expectedState](t)

	// if the next state is the same as the expected state, this means that mode handler didn't
	// change the state. We should use the current return state.
	if nextstate == expectedState {
		return reprocess, returnState, err
	}
	return reprocess, nextstate, err
}

func isSpecial(n *spec.Node) bool {
	switch n.NodeName {
	case "address", "applet", "area", "article", "aside", "base", "basefont", "bgsound", "blockquote", "body", "br", "button", "caption", "center", "col", "colgroup", "dd", "details", "dir", "div", "dl", "dt", "embed", "fieldset", "figcaption", "figure", "footer", "form", "frame", "frameset", "h1", "h2", "h3", "h4", "h5", "h6", "head", "header", "hgroup", "hr", "html", "iframe", "img", "input", "keygen", "li", "link", "listing", "main", "marquee", "menu", "meta", "nav", "noembed", "noframes", "noscript", "object", "ol", "p", "param", "plaintext", "pre", "script", "search", "section", "select", "source", "style", "summary", "table", "tbody", "td", "template", "textarea", "tfoot", "th", "thead", "title", "tr", "track", "ul", "wbr", "xmp":
		return true
	}
	return false
}

func isWhitespaceToken(t *Token) bool {
	if t.TokenType != CharacterToken {
		return false
	}
	switch t.Data {
	case "\u0009", "\u000A", "\u000C", "\u000D", " ":
		return true
	}
	return false
}

func isHeading(name string) bool {
	switch name {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		return true
	}
	return false
}

// generateImpliedEndTags pops elements with optional end tags, stopping at
// one named except.
// https://html.spec.whatwg.org/multipage/parsing.html#generate-implied-end-tags
func (c *HTMLTreeConstructor) generateImpliedEndTags(except string) {
	for {
		cur := c.getCurrentNode()
		if cur == nil || cur.NodeName == except {
			return
		}
		switch cur.NodeName {
		case "dd", "dt", "li", "optgroup", "option", "p", "rb", "rp", "rt", "rtc":
			c.stackOfOpenElements.Pop()
		default:
			return
		}
	}
}

// https://html.spec.whatwg.org/multipage/parsing.html#close-a-p-element
func (c *HTMLTreeConstructor) closePElement() parseError {
	err := noError
	c.generateImpliedEndTags("p")
	if cur := c.getCurrentNode(); cur == nil || cur.NodeName != "p" {
		err = generalParseError
	}
	c.stackOfOpenElements.PopUntil("p")
	return err
}

func (c *HTMLTreeConstructor) closePElementInButtonScope() parseError {
	if c.stackOfOpenElements.ContainsElementInButtonScope("p") {
		return c.closePElement()
	}
	return noError
}

// closeElementInScope pops until an element called name once it is known to
// be in scope.
func (c *HTMLTreeConstructor) closeElementInScope(name string) parseError {
	err := noError
	c.generateImpliedEndTags(name)
	if cur := c.getCurrentNode(); cur == nil || cur.NodeName != name {
		err = generalParseError
	}
	c.stackOfOpenElements.PopUntil(name)
	return err
}

func (c *HTMLTreeConstructor) logUnhandled(what string, t *Token) {
	c.unhandled++
	entry := c.log.WithFields(logrus.Fields{
		"mode": c.mode,
		"what": what,
	})
	if t != nil {
		entry = entry.WithField("token", t.String())
	}
	entry.Warn("unhandled insertion mode")
}

func (c *HTMLTreeConstructor) stop() (bool, insertionMode, parseError) {
	c.stopped = true
	return false, c.mode, noError
}

// https://html.spec.whatwg.org/multipage/parsing.html#the-initial-insertion-mode
func (c *HTMLTreeConstructor) initialModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case CharacterToken:
		if isWhitespaceToken(t) {
			return false, initial, noError
		}
	case CommentToken:
		c.insertCommentAt(t, c.document)
		return false, initial, noError
	case DoctypeToken:
		err := noError
		if isDoctypeParseError(t) {
			err = unexpectedDoctype
		}

		doctype := spec.NewDocumentType(t.TagName, t.PublicIdentifier, t.SystemIdentifier)
		if serr := c.document.SetDoctype(doctype); serr != nil {
			c.log.WithError(serr).Warn("could not set doctype")
		}
		c.document.Document.Mode = quirksModeFor(t)
		return false, beforeHTML, err
	}

	c.document.Document.Mode = spec.Quirks
	return true, beforeHTML, generalParseError
}

func (c *HTMLTreeConstructor) defaultBeforeHTMLModeHandler(t *Token) (bool, insertionMode, parseError) {
	c.stackOfOpenElements.Push(c.document.AppendChild(spec.NewElement("html")))
	return true, beforeHead, noError
}

// https://html.spec.whatwg.org/multipage/parsing.html#the-before-html-insertion-mode
func (c *HTMLTreeConstructor) beforeHTMLModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case DoctypeToken:
		return false, beforeHTML, unexpectedDoctype
	case CommentToken:
		c.insertCommentAt(t, c.document)
		return false, beforeHTML, noError
	case CharacterToken:
		if isWhitespaceToken(t) {
			return false, beforeHTML, noError
		}
	case StartTagToken:
		if t.TagName == "html" {
			elem := c.document.AppendChild(spec.NewElement(t.TagName))
			c.stackOfOpenElements.Push(elem)
			return false, beforeHead, noError
		}
	case EndTagToken:
		switch t.TagName {
		case "head", "body", "html", "br":
		default:
			return false, beforeHTML, unexpectedEndTag
		}
	}
	return c.defaultBeforeHTMLModeHandler(t)
}

func (c *HTMLTreeConstructor) defaultBeforeHeadModeHandler(t *Token) (bool, insertionMode, parseError) {
	c.headElementPointer = weak.Make(c.insertHTMLElement("head"))
	return true, inHead, noError
}

// https://html.spec.whatwg.org/multipage/parsing.html#the-before-head-insertion-mode
func (c *HTMLTreeConstructor) beforeHeadModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case CharacterToken:
		if isWhitespaceToken(t) {
			return false, beforeHead, noError
		}
	case CommentToken:
		c.insertComment(t)
		return false, beforeHead, noError
	case DoctypeToken:
		return false, beforeHead, unexpectedDoctype
	case StartTagToken:
		switch t.TagName {
		case "html":
			return c.useRulesFor(t, beforeHead, inBody)
		case "head":
			c.headElementPointer = weak.Make(c.insertHTMLElementForToken(t))
			return false, inHead, noError
		}
	case EndTagToken:
		switch t.TagName {
		case "head", "body", "html", "br":
		default:
			return false, beforeHead, unexpectedEndTag
		}
	}

	return c.defaultBeforeHeadModeHandler(t)
}

func (c *HTMLTreeConstructor) defaultInHeadModeHandler(t *Token) (bool, insertionMode, parseError) {
	c.stackOfOpenElements.Pop()
	return true, afterHead, noError
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-inhead
func (c *HTMLTreeConstructor) inHeadModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case CharacterToken:
		if isWhitespaceToken(t) {
			c.insertCharacter(t)
			return false, inHead, noError
		}
	case CommentToken:
		c.insertComment(t)
		return false, inHead, noError
	case DoctypeToken:
		return false, inHead, unexpectedDoctype
	case StartTagToken:
		switch t.TagName {
		case "html":
			return c.useRulesFor(t, inHead, inBody)
		case "base", "basefont", "bgsound", "link", "meta":
			c.insertVoidElement(t)
			return false, inHead, noError
		case "title":
			return c.genericTextElement(t, rcDataState)
		case "noscript":
			if c.scriptingEnabled {
				return c.genericTextElement(t, rawTextState)
			}
			c.insertHTMLElementForToken(t)
			return false, inHeadNoScript, noError
		case "noframes", "style":
			return c.genericTextElement(t, rawTextState)
		case "script":
			return c.genericTextElement(t, scriptDataState)
		case "template":
			c.logUnhandled("template", t)
			return false, inHead, noError
		case "head":
			return false, inHead, unexpectedStartTag
		}
	case EndTagToken:
		switch t.TagName {
		case "head":
			c.stackOfOpenElements.Pop()
			return false, afterHead, noError
		case "body", "html", "br":
		case "template":
			c.logUnhandled("template", t)
			return false, inHead, noError
		default:
			return false, inHead, unexpectedEndTag
		}
	}

	return c.defaultInHeadModeHandler(t)
}

func (c *HTMLTreeConstructor) defaultInHeadNoScriptModeHandler(t *Token) (bool, insertionMode, parseError) {
	c.stackOfOpenElements.Pop()
	return true, inHead, generalParseError
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-inheadnoscript
func (c *HTMLTreeConstructor) inHeadNoScriptModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case CharacterToken:
		if isWhitespaceToken(t) {
			return c.useRulesFor(t, inHeadNoScript, inHead)
		}
	case CommentToken:
		return c.useRulesFor(t, inHeadNoScript, inHead)
	case DoctypeToken:
		return false, inHeadNoScript, unexpectedDoctype
	case StartTagToken:
		switch t.TagName {
		case "html":
			return c.useRulesFor(t, inHeadNoScript, inBody)
		case "basefont", "bgsound", "link", "meta", "noframes", "style":
			return c.useRulesFor(t, inHeadNoScript, inHead)
		case "head", "noscript":
			return false, inHeadNoScript, unexpectedStartTag
		}
	case EndTagToken:
		switch t.TagName {
		case "noscript":
			c.stackOfOpenElements.Pop()
			return false, inHead, noError
		case "br":
		default:
			return false, inHeadNoScript, unexpectedEndTag
		}
	}
	return c.defaultInHeadNoScriptModeHandler(t)
}

func (c *HTMLTreeConstructor) defaultAfterHeadModeHandler(t *Token) (bool, insertionMode, parseError) {
	c.insertHTMLElement("body")
	return true, inBody, noError
}

// https://html.spec.whatwg.org/multipage/parsing.html#the-after-head-insertion-mode
func (c *HTMLTreeConstructor) afterHeadModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case CharacterToken:
		if isWhitespaceToken(t) {
			c.insertCharacter(t)
			return false, afterHead, noError
		}
	case CommentToken:
		c.insertComment(t)
		return false, afterHead, noError
	case DoctypeToken:
		return false, afterHead, unexpectedDoctype
	case StartTagToken:
		switch t.TagName {
		case "html":
			return c.useRulesFor(t, afterHead, inBody)
		case "body":
			c.insertHTMLElementForToken(t)
			c.frameset = framesetNotOK
			return false, inBody, noError
		case "frameset":
			c.insertHTMLElementForToken(t)
			return false, inFrameset, noError
		case "base", "basefont", "bgsound", "link", "meta", "noframes", "script", "style", "template", "title":
			head := c.headElementPointer.Value()
			if head == nil {
				return c.useRulesFor(t, afterHead, inHead)
			}
			c.stackOfOpenElements.Push(head)
			reprocess, nextmode, _ := c.useRulesFor(t, afterHead, inHead)
			c.removeFromStack(head)
			return reprocess, nextmode, unexpectedStartTag
		case "head":
			return false, afterHead, unexpectedStartTag
		}
	case EndTagToken:
		switch t.TagName {
		case "template":
			return c.useRulesFor(t, afterHead, inHead)
		case "body", "html", "br":
		default:
			return false, afterHead, unexpectedEndTag
		}
	}
	return c.defaultAfterHeadModeHandler(t)
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-inbody
func (c *HTMLTreeConstructor) inBodyModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case CharacterToken:
		switch {
		case t.Data == "\u0000":
			return false, inBody, generalParseError
		case isWhitespaceToken(t):
			c.insertCharacter(t)
		default:
			c.insertCharacter(t)
			c.frameset = framesetNotOK
		}
		return false, inBody, noError
	case CommentToken:
		c.insertComment(t)
		return false, inBody, noError
	case DoctypeToken:
		return false, inBody, unexpectedDoctype
	case StartTagToken:
		return c.inBodyStartTag(t)
	case EndTagToken:
		return c.inBodyEndTag(t)
	case EndOfFileToken:
		return c.stop()
	}
	return false, inBody, noError
}

func (c *HTMLTreeConstructor) inBodyStartTag(t *Token) (bool, insertionMode, parseError) {
	switch t.TagName {
	case "html":
		return false, inBody, unexpectedStartTag
	case "base", "basefont", "bgsound", "link", "meta", "noframes", "script", "style", "template", "title":
		return c.useRulesFor(t, inBody, inHead)
	case "body":
		c.frameset = framesetNotOK
		return false, inBody, unexpectedStartTag
	case "frameset":
		if c.frameset == framesetOK {
			c.logUnhandled("frameset replacing body", t)
		}
		return false, inBody, unexpectedStartTag
	case "address", "article", "aside", "blockquote", "center", "details", "dialog", "dir", "div", "dl", "fieldset", "figcaption", "figure", "footer", "header", "hgroup", "main", "menu", "nav", "ol", "p", "search", "section", "summary", "ul":
		err := c.closePElementInButtonScope()
		c.insertHTMLElementForToken(t)
		return false, inBody, err
	case "h1", "h2", "h3", "h4", "h5", "h6":
		err := c.closePElementInButtonScope()
		if cur := c.getCurrentNode(); cur != nil && isHeading(cur.NodeName) {
			c.stackOfOpenElements.Pop()
			err = unexpectedStartTag
		}
		c.insertHTMLElementForToken(t)
		return false, inBody, err
	case "pre", "listing":
		err := c.closePElementInButtonScope()
		c.insertHTMLElementForToken(t)
		c.ignoreNextLF = true
		c.frameset = framesetNotOK
		return false, inBody, err
	case "form":
		if c.formElementPointer.Value() != nil {
			return false, inBody, unexpectedStartTag
		}
		err := c.closePElementInButtonScope()
		c.formElementPointer = weak.Make(c.insertHTMLElementForToken(t))
		return false, inBody, err
	case "li":
		return c.inBodyListItem(t, "li")
	case "dd", "dt":
		return c.inBodyListItem(t, "dd", "dt")
	case "plaintext":
		err := c.closePElementInButtonScope()
		c.insertHTMLElementForToken(t)
		c.tokenizer.switchTo(plaintextState)
		return false, inBody, err
	case "button":
		err := noError
		if c.stackOfOpenElements.ContainsElementInScope("button") {
			err = unexpectedStartTag
			c.generateImpliedEndTags("")
			c.stackOfOpenElements.PopUntil("button")
		}
		c.insertHTMLElementForToken(t)
		c.frameset = framesetNotOK
		return false, inBody, err
	case "applet", "marquee", "object":
		c.insertHTMLElementForToken(t)
		c.frameset = framesetNotOK
		return false, inBody, noError
	case "table":
		err := noError
		if c.document.Document.Mode != spec.Quirks {
			err = c.closePElementInButtonScope()
		}
		c.insertHTMLElementForToken(t)
		c.frameset = framesetNotOK
		return false, inTable, err
	case "area", "br", "embed", "img", "keygen", "wbr":
		c.insertVoidElement(t)
		c.frameset = framesetNotOK
		return false, inBody, noError
	case "input":
		c.insertVoidElement(t)
		if typ, ok := t.Attribute("type"); !ok || !strings.EqualFold(typ, "hidden") {
			c.frameset = framesetNotOK
		}
		return false, inBody, noError
	case "param", "source", "track":
		c.insertVoidElement(t)
		return false, inBody, noError
	case "hr":
		err := c.closePElementInButtonScope()
		c.insertVoidElement(t)
		c.frameset = framesetNotOK
		return false, inBody, err
	case "image":
		t.TagName = "img"
		return true, inBody, unexpectedStartTag
	case "textarea":
		c.insertHTMLElementForToken(t)
		c.ignoreNextLF = true
		c.tokenizer.switchTo(rcDataState)
		c.originalInsertionMode = c.mode
		c.frameset = framesetNotOK
		return false, text, noError
	case "xmp":
		err := c.closePElementInButtonScope()
		c.frameset = framesetNotOK
		reprocess, next, _ := c.genericTextElement(t, rawTextState)
		return reprocess, next, err
	case "iframe":
		c.frameset = framesetNotOK
		return c.genericTextElement(t, rawTextState)
	case "noembed":
		return c.genericTextElement(t, rawTextState)
	case "noscript":
		if c.scriptingEnabled {
			return c.genericTextElement(t, rawTextState)
		}
	case "select":
		c.insertHTMLElementForToken(t)
		c.frameset = framesetNotOK
		return false, inSelect, noError
	case "optgroup", "option":
		if cur := c.getCurrentNode(); cur != nil && cur.NodeName == "option" {
			c.stackOfOpenElements.Pop()
		}
		c.insertHTMLElementForToken(t)
		return false, inBody, noError
	case "rb", "rtc":
		err := noError
		if c.stackOfOpenElements.ContainsElementInScope("ruby") {
			c.generateImpliedEndTags("")
			if cur := c.getCurrentNode(); cur == nil || cur.NodeName != "ruby" {
				err = unexpectedStartTag
			}
		}
		c.insertHTMLElementForToken(t)
		return false, inBody, err
	case "rp", "rt":
		err := noError
		if c.stackOfOpenElements.ContainsElementInScope("ruby") {
			c.generateImpliedEndTags("rtc")
			if cur := c.getCurrentNode(); cur == nil || (cur.NodeName != "ruby" && cur.NodeName != "rtc") {
				err = unexpectedStartTag
			}
		}
		c.insertHTMLElementForToken(t)
		return false, inBody, err
	case "math", "svg":
		c.logUnhandled("foreign content", t)
	case "caption", "col", "colgroup", "frame", "head", "tbody", "td", "tfoot", "th", "thead", "tr":
		return false, inBody, unexpectedStartTag
	}

	// any other start tag. Formatting elements land here too; the list of
	// active formatting elements is not kept.
	c.insertHTMLElementForToken(t)
	return false, inBody, noError
}

// inBodyListItem handles li, dd and dt start tags, which close an open
// sibling of the same kind.
func (c *HTMLTreeConstructor) inBodyListItem(t *Token, names ...string) (bool, insertionMode, parseError) {
	c.frameset = framesetNotOK
	err := noError

	stack := c.stackOfOpenElements.NodeList
	for i := len(stack) - 1; i >= 0; i-- {
		node := stack[i]
		matched := ""
		for _, name := range names {
			if node.NodeName == name {
				matched = name
			}
		}
		if matched != "" {
			err = c.closeElementInScope(matched)
			break
		}
		if isSpecial(node) && node.NodeName != "address" && node.NodeName != "div" && node.NodeName != "p" {
			break
		}
	}

	if perr := c.closePElementInButtonScope(); perr != noError {
		err = perr
	}
	c.insertHTMLElementForToken(t)
	return false, inBody, err
}

func (c *HTMLTreeConstructor) inBodyEndTag(t *Token) (bool, insertionMode, parseError) {
	switch t.TagName {
	case "template":
		c.logUnhandled("template", t)
		return false, inBody, noError
	case "body":
		if !c.stackOfOpenElements.ContainsElementInScope("body") {
			return false, inBody, unexpectedEndTag
		}
		return false, afterBody, noError
	case "html":
		if !c.stackOfOpenElements.ContainsElementInScope("body") {
			return false, inBody, unexpectedEndTag
		}
		return true, afterBody, noError
	case "address", "article", "aside", "blockquote", "button", "center", "details", "dialog", "dir", "div", "dl", "fieldset", "figcaption", "figure", "footer", "header", "hgroup", "listing", "main", "menu", "nav", "ol", "pre", "search", "section", "summary", "ul",
		"applet", "marquee", "object":
		if !c.stackOfOpenElements.ContainsElementInScope(t.TagName) {
			return false, inBody, unexpectedEndTag
		}
		return false, inBody, c.closeElementInScope(t.TagName)
	case "form":
		node := c.formElementPointer.Value()
		c.formElementPointer = weak.Pointer[spec.Node]{}
		if node == nil || !c.stackOfOpenElements.ContainsElementInScope("form") {
			return false, inBody, unexpectedEndTag
		}
		err := noError
		c.generateImpliedEndTags("")
		if c.getCurrentNode() != node {
			err = unexpectedEndTag
		}
		c.removeFromStack(node)
		return false, inBody, err
	case "p":
		err := noError
		if !c.stackOfOpenElements.ContainsElementInButtonScope("p") {
			err = unexpectedEndTag
			c.insertHTMLElement("p")
		}
		if perr := c.closePElement(); perr != noError {
			err = perr
		}
		return false, inBody, err
	case "li":
		if !c.stackOfOpenElements.ContainsElementInListItemScope("li") {
			return false, inBody, unexpectedEndTag
		}
		return false, inBody, c.closeElementInScope("li")
	case "dd", "dt":
		if !c.stackOfOpenElements.ContainsElementInScope(t.TagName) {
			return false, inBody, unexpectedEndTag
		}
		return false, inBody, c.closeElementInScope(t.TagName)
	case "h1", "h2", "h3", "h4", "h5", "h6":
		if !c.stackOfOpenElements.ContainsElementsInScope("h1", "h2", "h3", "h4", "h5", "h6") {
			return false, inBody, unexpectedEndTag
		}
		err := noError
		c.generateImpliedEndTags("")
		if cur := c.getCurrentNode(); cur == nil || cur.NodeName != t.TagName {
			err = unexpectedEndTag
		}
		c.stackOfOpenElements.PopUntil("h1", "h2", "h3", "h4", "h5", "h6")
		return false, inBody, err
	case "br":
		c.insertVoidElement(&Token{TokenType: StartTagToken, TagName: "br"})
		c.frameset = framesetNotOK
		return false, inBody, unexpectedEndTag
	}

	return false, inBody, c.anyOtherEndTag(t)
}

// anyOtherEndTag walks down the stack looking for an element with the same
// name. A special element in the way means the end tag is ignored.
func (c *HTMLTreeConstructor) anyOtherEndTag(t *Token) parseError {
	stack := c.stackOfOpenElements.NodeList
	for i := len(stack) - 1; i >= 0; i-- {
		node := stack[i]
		if node.NodeName == t.TagName {
			err := noError
			c.generateImpliedEndTags(t.TagName)
			if c.getCurrentNode() != node {
				err = unexpectedEndTag
			}
			c.stackOfOpenElements.PopUntilNode(node)
			return err
		}
		if isSpecial(node) {
			return unexpectedEndTag
		}
	}
	return unexpectedEndTag
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-incdata
func (c *HTMLTreeConstructor) textModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case CharacterToken:
		c.insertCharacter(t)
		return false, text, noError
	case EndOfFileToken:
		c.stackOfOpenElements.Pop()
		return true, c.originalInsertionMode, unexpectedEOF
	case EndTagToken:
		c.stackOfOpenElements.Pop()
		return false, c.originalInsertionMode, noError
	}
	return false, text, noError
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-afterbody
func (c *HTMLTreeConstructor) afterBodyModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case CharacterToken:
		if isWhitespaceToken(t) {
			return c.useRulesFor(t, afterBody, inBody)
		}
	case CommentToken:
		c.insertCommentAt(t, c.stackOfOpenElements.Bottom())
		return false, afterBody, noError
	case DoctypeToken:
		return false, afterBody, unexpectedDoctype
	case StartTagToken:
		if t.TagName == "html" {
			return c.useRulesFor(t, afterBody, inBody)
		}
	case EndTagToken:
		if t.TagName == "html" {
			return false, afterAfterBody, noError
		}
	case EndOfFileToken:
		return c.stop()
	}
	return true, inBody, generalParseError
}

// https://html.spec.whatwg.org/multipage/parsing.html#the-after-after-body-insertion-mode
func (c *HTMLTreeConstructor) afterAfterBodyModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case CommentToken:
		c.insertCommentAt(t, c.document)
		return false, afterAfterBody, noError
	case DoctypeToken:
		return c.useRulesFor(t, afterAfterBody, inBody)
	case CharacterToken:
		if isWhitespaceToken(t) {
			return c.useRulesFor(t, afterAfterBody, inBody)
		}
	case StartTagToken:
		if t.TagName == "html" {
			return c.useRulesFor(t, afterAfterBody, inBody)
		}
	case EndOfFileToken:
		return c.stop()
	}
	return true, inBody, generalParseError
}

// unhandledModeHandler covers every table, select, template and frameset
// mode. The token is logged and dropped; the end of the file still ends the
// parse.
func (c *HTMLTreeConstructor) unhandledModeHandler(t *Token) (bool, insertionMode, parseError) {
	if t.TokenType == EndOfFileToken {
		return c.stop()
	}
	c.logUnhandled(c.mode.String(), t)
	return false, c.mode, unhandledMode
}

//go:generate stringer -type=insertionMode
type insertionMode uint

const (
	initial insertionMode = iota
	beforeHTML
	beforeHead
	inHead
	inHeadNoScript
	afterHead
	inBody
	text
	inTable
	inTableText
	inCaption
	inColumnGroup
	inTableBody
	inRow
	inCell
	inSelect
	inSelectInTable
	inTemplate
	afterBody
	inFrameset
	afterFrameset
	afterAfterBody
	afterAfterFrameset
)

type treeConstructionModeHandler func(t *Token) (bool, insertionMode, parseError)

// processToken runs t through the current insertion mode. A token the mode
// hands back goes into the tokenizer's pending slot so the next pull returns
// it again.
func (c *HTMLTreeConstructor) processToken(t *Token) {
	if c.ignoreNextLF {
		c.ignoreNextLF = false
		if t.TokenType == CharacterToken && t.Data == "\n" {
			return
		}
	}

	if c.log.Logger.IsLevelEnabled(logrus.TraceLevel) {
		c.log.WithFields(logrus.Fields{"mode": c.mode, "token": t.String()}).Trace("token")
	}

	reprocess, nextMode, parseErr := c.mappings[c.mode](t)
	if parseErr != noError && parseErr != unhandledMode {
		c.log.WithFields(logrus.Fields{
			"mode":  c.mode,
			"token": t.String(),
		}).Debug(parseErr)
	}
	c.mode = nextMode

	if !reprocess || c.stopped {
		c.redispatches = 0
		return
	}
	c.redispatches++
	if c.redispatches > maxRedispatch {
		c.log.WithFields(logrus.Fields{"mode": c.mode, "token": t.String()}).Warn("token reprocessed too many times, dropping it")
		c.redispatches = 0
		if t.TokenType == EndOfFileToken {
			c.stopped = true
		}
		return
	}
	c.tokenizer.reprocess(*t)
}

// ConstructTree pulls tokens until a mode stops the parse and returns the
// document. The constructor keeps no references to the tree afterwards.
func (c *HTMLTreeConstructor) ConstructTree() *spec.Node {
	for !c.stopped {
		t := c.tokenizer.NextToken()
		c.processToken(&t)
	}

	doc := c.document
	c.document = nil
	c.stackOfOpenElements = spec.StackOfOpenElements{}
	c.headElementPointer = weak.Pointer[spec.Node]{}
	c.formElementPointer = weak.Pointer[spec.Node]{}
	return doc
}

// Unhandled returns how many tokens hit an unhandled insertion mode case.
func (c *HTMLTreeConstructor) Unhandled() int {
	return c.unhandled
}
