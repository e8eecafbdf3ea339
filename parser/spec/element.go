package spec

// Element is an individual HTML element that gets added to the tree.
// https://dom.spec.whatwg.org/#interface-element
type Element struct {
	LocalName string
	Interface ElementInterface
}

// NewElement creates an element node for localName. The element's interface
// comes from the registry in html_element.go.
func NewElement(localName string) *Node {
	return &Node{
		NodeType: ElementNode,
		NodeName: localName,
		Element: &Element{
			LocalName: localName,
			Interface: LookupElementInterface(localName),
		},
	}
}

// TagName is https://dom.spec.whatwg.org/#dom-element-tagname
func (e *Element) TagName() string {
	return e.LocalName
}

func (e *Element) GetAttribute(qualifiedName string) (string, error) {
	return "", notImplemented("GetAttribute")
}

func (e *Element) SetAttribute(qualifiedName, value string) error {
	return notImplemented("SetAttribute")
}

func (e *Element) SetAttributeNS(namespace, qualifiedName, value string) error {
	return notImplemented("SetAttributeNS")
}

func (e *Element) RemoveAttribute(qualifiedName string) error {
	return notImplemented("RemoveAttribute")
}

func (e *Element) ToggleAttribute(qualifiedName string, force ...bool) (bool, error) {
	return false, notImplemented("ToggleAttribute")
}
