package spec

// ElementInterface names the HTML interface an element implements.
// https://html.spec.whatwg.org/multipage/indices.html#element-interfaces
type ElementInterface uint

const (
	HTMLElementInterface ElementInterface = iota
	HTMLHtmlElementInterface
	HTMLHeadElementInterface
	HTMLBodyElementInterface
	HTMLTitleElementInterface
	HTMLBaseElementInterface
	HTMLLinkElementInterface
	HTMLMetaElementInterface
	HTMLStyleElementInterface
	HTMLScriptElementInterface
	HTMLParagraphElementInterface
	HTMLDivElementInterface
	HTMLHeadingElementInterface
	HTMLPreElementInterface
	HTMLUListElementInterface
	HTMLOListElementInterface
	HTMLLIElementInterface
	HTMLFormElementInterface
	HTMLButtonElementInterface
	HTMLInputElementInterface
	HTMLTextAreaElementInterface
	HTMLSelectElementInterface
	HTMLOptionElementInterface
	HTMLTableElementInterface
	HTMLTemplateElementInterface
	HTMLImageElementInterface
	HTMLAnchorElementInterface
	HTMLBRElementInterface
	HTMLHRElementInterface
	HTMLIFrameElementInterface
	HTMLUnknownElementInterface
)

var elementInterfaceNames = [...]string{
	HTMLElementInterface:          "HTMLElement",
	HTMLHtmlElementInterface:      "HTMLHtmlElement",
	HTMLHeadElementInterface:      "HTMLHeadElement",
	HTMLBodyElementInterface:      "HTMLBodyElement",
	HTMLTitleElementInterface:     "HTMLTitleElement",
	HTMLBaseElementInterface:      "HTMLBaseElement",
	HTMLLinkElementInterface:      "HTMLLinkElement",
	HTMLMetaElementInterface:      "HTMLMetaElement",
	HTMLStyleElementInterface:     "HTMLStyleElement",
	HTMLScriptElementInterface:    "HTMLScriptElement",
	HTMLParagraphElementInterface: "HTMLParagraphElement",
	HTMLDivElementInterface:       "HTMLDivElement",
	HTMLHeadingElementInterface:   "HTMLHeadingElement",
	HTMLPreElementInterface:       "HTMLPreElement",
	HTMLUListElementInterface:     "HTMLUListElement",
	HTMLOListElementInterface:     "HTMLOListElement",
	HTMLLIElementInterface:        "HTMLLIElement",
	HTMLFormElementInterface:      "HTMLFormElement",
	HTMLButtonElementInterface:    "HTMLButtonElement",
	HTMLInputElementInterface:     "HTMLInputElement",
	HTMLTextAreaElementInterface:  "HTMLTextAreaElement",
	HTMLSelectElementInterface:    "HTMLSelectElement",
	HTMLOptionElementInterface:    "HTMLOptionElement",
	HTMLTableElementInterface:     "HTMLTableElement",
	HTMLTemplateElementInterface:  "HTMLTemplateElement",
	HTMLImageElementInterface:     "HTMLImageElement",
	HTMLAnchorElementInterface:    "HTMLAnchorElement",
	HTMLBRElementInterface:        "HTMLBRElement",
	HTMLHRElementInterface:        "HTMLHRElement",
	HTMLIFrameElementInterface:    "HTMLIFrameElement",
	HTMLUnknownElementInterface:   "HTMLUnknownElement",
}

func (i ElementInterface) String() string {
	if int(i) < len(elementInterfaceNames) {
		return elementInterfaceNames[i]
	}
	return "HTMLElement"
}

// elementInterfaces maps a tag name to its specialised interface. Names
// missing from the table are plain HTMLElements.
var elementInterfaces = map[string]ElementInterface{
	"html":     HTMLHtmlElementInterface,
	"head":     HTMLHeadElementInterface,
	"body":     HTMLBodyElementInterface,
	"title":    HTMLTitleElementInterface,
	"base":     HTMLBaseElementInterface,
	"link":     HTMLLinkElementInterface,
	"meta":     HTMLMetaElementInterface,
	"style":    HTMLStyleElementInterface,
	"script":   HTMLScriptElementInterface,
	"p":        HTMLParagraphElementInterface,
	"div":      HTMLDivElementInterface,
	"h1":       HTMLHeadingElementInterface,
	"h2":       HTMLHeadingElementInterface,
	"h3":       HTMLHeadingElementInterface,
	"h4":       HTMLHeadingElementInterface,
	"h5":       HTMLHeadingElementInterface,
	"h6":       HTMLHeadingElementInterface,
	"pre":      HTMLPreElementInterface,
	"listing":  HTMLPreElementInterface,
	"xmp":      HTMLPreElementInterface,
	"ul":       HTMLUListElementInterface,
	"ol":       HTMLOListElementInterface,
	"li":       HTMLLIElementInterface,
	"form":     HTMLFormElementInterface,
	"button":   HTMLButtonElementInterface,
	"input":    HTMLInputElementInterface,
	"textarea": HTMLTextAreaElementInterface,
	"select":   HTMLSelectElementInterface,
	"option":   HTMLOptionElementInterface,
	"table":    HTMLTableElementInterface,
	"template": HTMLTemplateElementInterface,
	"img":      HTMLImageElementInterface,
	"a":        HTMLAnchorElementInterface,
	"br":       HTMLBRElementInterface,
	"hr":       HTMLHRElementInterface,
	"iframe":   HTMLIFrameElementInterface,
	"applet":   HTMLUnknownElementInterface,
	"bgsound":  HTMLUnknownElementInterface,
	"blink":    HTMLUnknownElementInterface,
	"isindex":  HTMLUnknownElementInterface,
	"keygen":   HTMLUnknownElementInterface,
	"multicol": HTMLUnknownElementInterface,
	"nextid":   HTMLUnknownElementInterface,
	"spacer":   HTMLUnknownElementInterface,
}

// LookupElementInterface returns the interface for localName.
func LookupElementInterface(localName string) ElementInterface {
	if i, ok := elementInterfaces[localName]; ok {
		return i
	}
	return HTMLElementInterface
}
