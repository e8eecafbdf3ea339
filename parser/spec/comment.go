package spec

// Comment is https://dom.spec.whatwg.org/#interface-comment
// Its data is fixed when the node is created.
type Comment struct {
	*CharacterData
}

func newComment(data string) *Comment {
	return &Comment{
		CharacterData: newCharacterData(data),
	}
}
