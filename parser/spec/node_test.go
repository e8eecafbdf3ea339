package spec

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendChild(t *testing.T) {
	t.Parallel()
	doc := NewDocument()
	html := doc.AppendChild(NewElement("html"))
	head := html.AppendChild(NewElement("head"))
	body := html.AppendChild(NewElement("body"))

	assert.Equal(t, 1, doc.ChildCount())
	assert.Equal(t, 2, html.ChildCount())
	assert.Same(t, head, html.FirstChild())
	assert.Same(t, body, html.LastChild())
	assert.Same(t, html, body.ParentNode())
	assert.Same(t, doc, html.ParentNode())
	assert.Nil(t, doc.ParentNode())
	assert.Nil(t, html.ChildAt(5))
	assert.Nil(t, html.ChildAt(-1))
}

func TestAppendChildReparents(t *testing.T) {
	t.Parallel()
	a := NewElement("div")
	b := NewElement("span")
	child := a.AppendChild(NewTextNode("x"))

	b.AppendChild(child)
	assert.False(t, a.HasChildNodes())
	assert.Equal(t, 1, b.ChildCount())
	assert.Same(t, b, child.ParentNode())
}

func TestRemoveChild(t *testing.T) {
	t.Parallel()
	parent := NewElement("div")
	other := NewElement("p")
	child := parent.AppendChild(NewElement("span"))
	stranger := other.AppendChild(NewElement("em"))

	_, err := parent.RemoveChild(stranger)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "#document\n", Dump(NewDocument()))
	assert.Equal(t, "div\n\tspan\n", Dump(parent))
	assert.Equal(t, "p\n\tem\n", Dump(other))
	assert.Same(t, other, stranger.ParentNode())

	removed, err := parent.RemoveChild(child)
	require.NoError(t, err)
	assert.Same(t, child, removed)
	assert.Nil(t, child.ParentNode())
	assert.False(t, parent.HasChildNodes())
}

func TestChildNodesIsACopy(t *testing.T) {
	t.Parallel()
	parent := NewElement("ul")
	parent.AppendChild(NewElement("li"))
	parent.AppendChild(NewElement("li"))

	list := parent.ChildNodes()
	require.Equal(t, 2, list.Length())
	list.Pop()
	assert.Equal(t, 2, parent.ChildCount())
	assert.Nil(t, list.Item(1))
}

func TestSetDoctype(t *testing.T) {
	t.Parallel()
	doc := NewDocument()
	dt := NewDocumentType("html", "", "")
	require.NoError(t, doc.SetDoctype(dt))
	assert.Same(t, dt, doc.Document.Doctype())
	assert.Equal(t, 0, doc.ChildCount())

	err := NewElement("div").SetDoctype(dt)
	assert.True(t, errors.Is(err, ErrHierarchyRequest))
	err = doc.SetDoctype(NewElement("div"))
	assert.True(t, errors.Is(err, ErrHierarchyRequest))
}

func TestTextAppendData(t *testing.T) {
	t.Parallel()
	n := NewTextNode("he")
	n.Text.AppendData("llo")
	assert.Equal(t, "hello", n.Text.Data())
	assert.Equal(t, 5, n.Text.Length())

	c := NewComment("note")
	assert.Equal(t, "note", c.Comment.Data())
}

func TestNotImplemented(t *testing.T) {
	t.Parallel()
	n := NewElement("div")
	doc := NewDocument()
	txt := NewTextNode("a")

	errs := map[string]error{}
	_, errs["CloneNode"] = n.CloneNode(true)
	_, errs["IsEqualNode"] = n.IsEqualNode(n)
	errs["Normalize"] = n.Normalize()
	_, errs["InsertBefore"] = n.InsertBefore(txt, nil)
	_, errs["ReplaceChild"] = n.ReplaceChild(txt, nil)
	_, errs["TextContent"] = n.TextContent()
	errs["SetTextContent"] = n.SetTextContent("x")
	_, errs["LookupPrefix"] = n.LookupPrefix("")
	_, errs["LookupNamespaceURI"] = n.LookupNamespaceURI("")
	_, errs["CompareDocumentPosition"] = n.CompareDocumentPosition(doc)
	errs["SetUserData"] = n.SetUserData("k", 1)
	_, errs["GetUserData"] = n.GetUserData("k")
	_, errs["GetAttribute"] = n.Element.GetAttribute("id")
	errs["SetAttribute"] = n.Element.SetAttribute("id", "a")
	errs["RemoveAttribute"] = n.Element.RemoveAttribute("id")
	_, errs["ToggleAttribute"] = n.Element.ToggleAttribute("hidden")
	errs["SetAttributeNS"] = n.Element.SetAttributeNS("", "id", "a")
	_, errs["SubstringData"] = txt.Text.SubstringData(0, 1)
	errs["InsertData"] = txt.Text.InsertData(0, "b")
	errs["DeleteData"] = txt.Text.DeleteData(0, 1)
	errs["ReplaceData"] = txt.Text.ReplaceData(0, 1, "b")
	_, errs["CreateElementNS"] = doc.Document.CreateElementNS("", "div")
	_, errs["ImportNode"] = doc.Document.ImportNode(n, true)
	_, errs["AdoptNode"] = doc.Document.AdoptNode(n)
	_, errs["GetElementsByTagName"] = doc.Document.GetElementsByTagName("div")

	for name, err := range errs {
		name, err := name, err
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrNotImplemented))
			assert.Contains(t, err.Error(), name)
		})
	}
}

func TestElementInterfaces(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		want ElementInterface
	}{
		{"html", HTMLHtmlElementInterface},
		{"head", HTMLHeadElementInterface},
		{"body", HTMLBodyElementInterface},
		{"title", HTMLTitleElementInterface},
		{"p", HTMLParagraphElementInterface},
		{"div", HTMLDivElementInterface},
		{"h3", HTMLHeadingElementInterface},
		{"custom-thing", HTMLElementInterface},
		{"span", HTMLElementInterface},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			n := NewElement(tt.name)
			assert.Equal(t, tt.want, n.Element.Interface)
			assert.Equal(t, tt.name, n.NodeName)
			assert.Equal(t, tt.name, n.Element.TagName())
		})
	}
}

func TestDump(t *testing.T) {
	t.Parallel()
	doc := NewDocument()
	doc.AppendChild(NewComment("c"))
	html := doc.AppendChild(NewElement("html"))
	html.AppendChild(NewElement("head"))
	body := html.AppendChild(NewElement("body"))
	body.AppendChild(NewElement("div")).AppendChild(NewTextNode("hi"))

	want := "#document\n\t#comment\n\thtml\n\t\thead\n\t\tbody\n\t\t\tdiv\n\t\t\t\t#text\n"
	assert.Equal(t, want, Dump(doc))
	assert.Equal(t, want, doc.String())
	assert.Equal(t, "", Dump(nil))
}

func TestStackOfOpenElementsScope(t *testing.T) {
	t.Parallel()
	var s StackOfOpenElements
	for _, name := range []string{"html", "body", "ul", "li", "p"} {
		s.Push(NewElement(name))
	}

	assert.Equal(t, "html", s.Bottom().NodeName)
	assert.Equal(t, "p", s.Current().NodeName)
	assert.True(t, s.ContainsElementInScope("li"))
	assert.True(t, s.ContainsElementInButtonScope("p"))
	assert.True(t, s.ContainsElementInListItemScope("li"))
	assert.False(t, s.ContainsElementInListItemScope("body"))
	assert.True(t, s.ContainsElementsInScope("h1", "ul"))
	assert.True(t, s.ContainsElementInTableScope("li"))
	assert.False(t, s.ContainsElementInTableScope("td"))

	s.Push(NewElement("button"))
	assert.False(t, s.ContainsElementInButtonScope("p"))
	assert.True(t, s.ContainsElementInScope("p"))

	popped := s.PopUntil("li")
	require.NotNil(t, popped)
	assert.Equal(t, "li", popped.NodeName)
	assert.Equal(t, "ul", s.Current().NodeName)
	assert.True(t, s.Includes("body"))
	assert.False(t, s.Includes("li"))
}
