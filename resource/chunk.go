package resource

import (
	"encoding/base64"
	"encoding/json"
)

// Chunk is the JSON document posted to the network for every slice of a
// resource.
type Chunk struct {
	// Title is repeated on every chunk of a resource.
	Title string `json:"title"`

	// Content is the base64 representation of the raw slice.
	Content string `json:"content"`

	// Prev links to the previous chunk, nil on the first one.
	Prev *string `json:"prev"`
}

// NewChunk encodes raw into a chunk linked to prev. An empty prev marks
// the first chunk of a resource.
func NewChunk(title string, raw []byte, prev string) Chunk {
	c := Chunk{
		Title:   title,
		Content: base64.StdEncoding.EncodeToString(raw),
	}
	if prev != "" {
		c.Prev = &prev
	}
	return c
}

// DecodeChunk unmarshals a network payload into a chunk.
func DecodeChunk(payload []byte) (Chunk, error) {
	var c Chunk
	err := json.Unmarshal(payload, &c)
	return c, err
}

// Encode marshals the chunk into its wire form.
func (c Chunk) Encode() ([]byte, error) {
	return json.Marshal(c)
}

// Decode returns the raw bytes carried by the chunk.
func (c Chunk) Decode() ([]byte, error) {
	return base64.StdEncoding.DecodeString(c.Content)
}

// PrevAddress parses the prev link. ok is false on the first chunk.
func (c Chunk) PrevAddress() (addr Address, ok bool, err error) {
	if c.Prev == nil {
		return Address{}, false, nil
	}
	addr, err = ParseURI(*c.Prev)
	return addr, err == nil, err
}
