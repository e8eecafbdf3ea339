package parser

import (
	"io"
	"strings"

	"github.com/heathj/gobrowse/parser/spec"
	"github.com/pkg/errors"
)

// https://html.spec.whatwg.org/#escapingString
func escapeString(s string, attrVal bool) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "\u00A0", "&nbsp;")
	if attrVal {
		s = strings.ReplaceAll(s, "\"", "&quot;")
	} else {
		s = strings.ReplaceAll(s, "<", "&lt;")
		s = strings.ReplaceAll(s, ">", "&gt;")
	}

	return s
}

func isVoidElement(name string) bool {
	switch name {
	case "area", "base", "basefont", "bgsound", "br", "col", "embed", "frame", "hr", "img", "input", "keygen", "link", "meta", "param", "source", "track", "wbr":
		return true
	}
	return false
}

// SerializeHTMLFragment returns the markup for the children of fragment.
// Elements are written without attributes since the tree does not keep them.
// https://html.spec.whatwg.org/#serialising-html-fragments
func SerializeHTMLFragment(fragment *spec.Node, scripting bool) string {
	var b strings.Builder
	serializeChildren(&b, fragment, scripting)
	return b.String()
}

// SerializeDocument serializes a document node, doctype included.
func SerializeDocument(doc *spec.Node, scripting bool) string {
	var b strings.Builder
	if doc.NodeType == spec.DocumentNode {
		if dt := doc.Document.Doctype(); dt != nil {
			b.WriteString("<!DOCTYPE " + dt.DocumentType.Name + ">")
		}
	}
	serializeChildren(&b, doc, scripting)
	return b.String()
}

func serializeChildren(b *strings.Builder, fragment *spec.Node, scripting bool) {
	if fragment.NodeType == spec.ElementNode && isVoidElement(fragment.NodeName) {
		return
	}

	for _, child := range fragment.ChildNodes() {
		switch child.NodeType {
		case spec.ElementNode:
			b.WriteString("<" + child.NodeName + ">")
			if isVoidElement(child.NodeName) {
				continue
			}
			serializeChildren(b, child, scripting)
			b.WriteString("</" + child.NodeName + ">")
		case spec.TextNode:
			switch fragment.NodeName {
			case "style", "script", "xmp", "iframe", "noembed", "noframes", "plaintext":
				b.WriteString(child.Text.Data())
			case "noscript":
				if scripting {
					b.WriteString(child.Text.Data())
				} else {
					b.WriteString(escapeString(child.Text.Data(), false))
				}
			default:
				b.WriteString(escapeString(child.Text.Data(), false))
			}
		case spec.CommentNode:
			b.WriteString("<!--" + child.Comment.Data() + "-->")
		case spec.DocumentTypeNode:
			b.WriteString("<!DOCTYPE " + child.DocumentType.Name + ">")
		}
	}
}

// fragmentStartState picks the tokenizer state the content of an element
// called context starts in.
func fragmentStartState(context string, scripting bool) tokenizerState {
	switch context {
	case "title", "textarea":
		return rcDataState
	case "style", "xmp", "iframe", "noembed", "noframes":
		return rawTextState
	case "script":
		return scriptDataState
	case "noscript":
		if scripting {
			return rawTextState
		}
		return dataState
	case "plaintext":
		return plaintextState
	default:
		return dataState
	}
}

// fragmentInsertionMode is the insertion mode the parse starts in when the
// context element is the only element on the stack.
// https://html.spec.whatwg.org/multipage/parsing.html#reset-the-insertion-mode-appropriately
func fragmentInsertionMode(context string) insertionMode {
	switch context {
	case "select":
		return inSelect
	case "td", "th":
		return inCell
	case "tr":
		return inRow
	case "tbody", "thead", "tfoot":
		return inTableBody
	case "caption":
		return inCaption
	case "colgroup":
		return inColumnGroup
	case "table":
		return inTable
	case "template":
		return inTemplate
	case "frameset":
		return inFrameset
	case "html":
		return beforeHead
	default:
		return inBody
	}
}

// ParseFragment parses r as the content of an element called context and
// returns the resulting top level nodes. They are detached and may be
// appended anywhere.
// https://html.spec.whatwg.org/multipage/parsing.html#parsing-html-fragments
func ParseFragment(context string, r io.Reader, opts ...Option) ([]*spec.Node, error) {
	cfg := newConfig(opts)
	tokenizer := NewHTMLTokenizer(r, opts...)
	tokenizer.switchTo(fragmentStartState(context, cfg.scripting))

	treeConstructor := NewHTMLTreeConstructor(tokenizer, opts...)
	root := treeConstructor.document.AppendChild(spec.NewElement("html"))
	treeConstructor.stackOfOpenElements.Push(root)
	treeConstructor.mode = fragmentInsertionMode(context)

	treeConstructor.ConstructTree()
	nodes := root.ChildNodes()
	for _, n := range nodes {
		if _, err := root.RemoveChild(n); err != nil {
			return nil, errors.Wrap(err, "detaching fragment")
		}
	}
	if err := tokenizer.Err(); err != nil {
		return nodes, errors.Wrap(err, "reading input")
	}
	return nodes, nil
}
