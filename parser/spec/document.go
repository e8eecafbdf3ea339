package spec

// QuirksMode is https://dom.spec.whatwg.org/#concept-document-mode
type QuirksMode string

const (
	NoQuirks      QuirksMode = "no-quirks"
	Quirks        QuirksMode = "quirks"
	LimitedQuirks QuirksMode = "limited-quirks"
)

// Document is https://dom.spec.whatwg.org/#interface-document
type Document struct {
	doctype *Node
	Mode    QuirksMode
}

// Doctype returns the document's doctype node or nil.
func (d *Document) Doctype() *Node {
	return d.doctype
}

// CompatMode is https://dom.spec.whatwg.org/#dom-document-compatmode
func (d *Document) CompatMode() string {
	if d.Mode == Quirks {
		return "BackCompat"
	}
	return "CSS1Compat"
}

func (d *Document) CreateElementNS(namespace, qualifiedName string) (*Node, error) {
	return nil, notImplemented("CreateElementNS")
}

func (d *Document) ImportNode(node *Node, deep bool) (*Node, error) {
	return nil, notImplemented("ImportNode")
}

func (d *Document) AdoptNode(node *Node) (*Node, error) {
	return nil, notImplemented("AdoptNode")
}

func (d *Document) GetElementsByTagName(qualifiedName string) (NodeList, error) {
	return nil, notImplemented("GetElementsByTagName")
}
