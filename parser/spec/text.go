package spec

// https://dom.spec.whatwg.org/#text
type Text struct {
	*CharacterData
}

func NewText(data string) *Text {
	return &Text{
		CharacterData: newCharacterData(data),
	}
}

// AppendData is https://dom.spec.whatwg.org/#dom-characterdata-appenddata
// Only text nodes grow; the tree constructor uses it to merge adjacent
// characters into one node.
func (t *Text) AppendData(data string) {
	t.data.WriteString(data)
}

func (t *Text) SplitText(offset uint) (*Node, error) {
	return nil, notImplemented("SplitText")
}
