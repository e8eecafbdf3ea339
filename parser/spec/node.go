package spec

import (
	"weak"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type NodeType uint16

const (
	ElementNode NodeType = iota + 1
	AttrNode
	TextNode
	CDATASectionNode
	ProcessingInstructionNode
	CommentNode
	DocumentNode
	DocumentTypeNode
	DocumentFragmentNode
)

type DocumentPosition uint16

const (
	Disconnected           DocumentPosition = 0x01
	Preceding              DocumentPosition = 0x02
	Following              DocumentPosition = 0x04
	Contains               DocumentPosition = 0x08
	ContainedBy            DocumentPosition = 0x10
	ImplementationSpecific DocumentPosition = 0x20
)

// Node is https://dom.spec.whatwg.org/#node. Exactly one of the variant
// pointers is set, matching NodeType.
//
// A node owns its children. The parent is only a weak back reference, so a
// subtree that has been detached does not keep its old parent alive.
type Node struct {
	NodeType NodeType
	NodeName string

	parent     weak.Pointer[Node]
	childNodes NodeList

	*Element
	*Text
	*Comment
	*Document
	*DocumentType
}

// NewDocument returns an empty document node in no-quirks mode.
func NewDocument() *Node {
	return &Node{
		NodeType: DocumentNode,
		NodeName: "#document",
		Document: &Document{Mode: NoQuirks},
	}
}

// NewDocumentType returns a doctype node. The name doubles as the node name.
func NewDocumentType(name, publicID, systemID string) *Node {
	return &Node{
		NodeType: DocumentTypeNode,
		NodeName: name,
		DocumentType: &DocumentType{
			Name:     name,
			PublicID: publicID,
			SystemID: systemID,
		},
	}
}

// NewTextNode returns a text node holding data.
func NewTextNode(data string) *Node {
	return &Node{
		NodeType: TextNode,
		NodeName: "#text",
		Text:     NewText(data),
	}
}

// NewComment returns a comment node holding data.
func NewComment(data string) *Node {
	return &Node{
		NodeType: CommentNode,
		NodeName: "#comment",
		Comment:  newComment(data),
	}
}

// ParentNode returns the node's parent or nil when the node is detached.
func (n *Node) ParentNode() *Node {
	return n.parent.Value()
}

// ChildNodes returns a copy of the child list.
func (n *Node) ChildNodes() NodeList {
	cp := make(NodeList, len(n.childNodes))
	copy(cp, n.childNodes)
	return cp
}

// ChildAt returns the i-th child or nil when i is out of range.
func (n *Node) ChildAt(i int) *Node {
	return n.childNodes.Item(i)
}

func (n *Node) ChildCount() int {
	return len(n.childNodes)
}

func (n *Node) HasChildNodes() bool {
	return len(n.childNodes) > 0
}

func (n *Node) FirstChild() *Node {
	return n.childNodes.Item(0)
}

func (n *Node) LastChild() *Node {
	return n.childNodes.Item(len(n.childNodes) - 1)
}

// AppendChild adds child to the end of n's child list. A child that already
// has a parent is detached from it first.
// https://dom.spec.whatwg.org/#concept-node-append
func (n *Node) AppendChild(child *Node) *Node {
	if child == nil {
		return nil
	}
	if old := child.ParentNode(); old != nil {
		logrus.WithField("method", "AppendChild").Debugf("moving %s from %s to %s", child.NodeName, old.NodeName, n.NodeName)
		old.childNodes.Remove(old.childNodes.Contains(child))
	}
	child.parent = weak.Make(n)
	n.childNodes = append(n.childNodes, child)
	return child
}

// RemoveChild detaches child from n. It fails with ErrNotFound, leaving both
// nodes untouched, when child is not a direct child of n.
// https://dom.spec.whatwg.org/#concept-node-remove
func (n *Node) RemoveChild(child *Node) (*Node, error) {
	if child == nil {
		return nil, errors.Wrap(ErrNotFound, "RemoveChild: nil child")
	}
	i := n.childNodes.Contains(child)
	if i == -1 {
		return nil, errors.Wrapf(ErrNotFound, "RemoveChild: %s is not a child of %s", child.NodeName, n.NodeName)
	}
	n.childNodes.Remove(i)
	child.parent = weak.Pointer[Node]{}
	return child, nil
}

// SetDoctype fills the document's doctype slot. The doctype is not added to
// the child list.
func (n *Node) SetDoctype(doctype *Node) error {
	if n.NodeType != DocumentNode {
		return errors.Wrapf(ErrHierarchyRequest, "SetDoctype: %s is not a document", n.NodeName)
	}
	if doctype == nil || doctype.NodeType != DocumentTypeNode {
		return errors.Wrap(ErrHierarchyRequest, "SetDoctype: not a doctype")
	}
	n.Document.doctype = doctype
	doctype.parent = weak.Make(n)
	return nil
}

// String returns the tree dump rooted at n.
func (n *Node) String() string {
	return Dump(n)
}

func (n *Node) CloneNode(deep bool) (*Node, error) {
	return nil, notImplemented("CloneNode")
}

func (n *Node) IsEqualNode(other *Node) (bool, error) {
	return false, notImplemented("IsEqualNode")
}

func (n *Node) Normalize() error {
	return notImplemented("Normalize")
}

func (n *Node) InsertBefore(node, child *Node) (*Node, error) {
	return nil, notImplemented("InsertBefore")
}

func (n *Node) ReplaceChild(node, child *Node) (*Node, error) {
	return nil, notImplemented("ReplaceChild")
}

func (n *Node) TextContent() (string, error) {
	return "", notImplemented("TextContent")
}

func (n *Node) SetTextContent(s string) error {
	return notImplemented("SetTextContent")
}

func (n *Node) LookupPrefix(namespace string) (string, error) {
	return "", notImplemented("LookupPrefix")
}

func (n *Node) LookupNamespaceURI(prefix string) (string, error) {
	return "", notImplemented("LookupNamespaceURI")
}

func (n *Node) CompareDocumentPosition(other *Node) (DocumentPosition, error) {
	return Disconnected, notImplemented("CompareDocumentPosition")
}

func (n *Node) SetUserData(key string, data interface{}) error {
	return notImplemented("SetUserData")
}

func (n *Node) GetUserData(key string) (interface{}, error) {
	return nil, notImplemented("GetUserData")
}
