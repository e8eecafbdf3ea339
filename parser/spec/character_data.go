package spec

import "strings"

// CharacterData is https://dom.spec.whatwg.org/#characterdata
type CharacterData struct {
	data strings.Builder
}

func newCharacterData(data string) *CharacterData {
	c := &CharacterData{}
	c.data.WriteString(data)
	return c
}

func (c *CharacterData) Data() string {
	return c.data.String()
}

// Length is the length of the data in bytes.
func (c *CharacterData) Length() int {
	return c.data.Len()
}

func (c *CharacterData) SubstringData(offset, count uint) (string, error) {
	return "", notImplemented("SubstringData")
}

func (c *CharacterData) InsertData(offset uint, data string) error {
	return notImplemented("InsertData")
}

func (c *CharacterData) DeleteData(offset, count uint) error {
	return notImplemented("DeleteData")
}

func (c *CharacterData) ReplaceData(offset, count uint, data string) error {
	return notImplemented("ReplaceData")
}
