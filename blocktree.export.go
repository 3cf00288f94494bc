package blocktree

import (
	"encoding/json"
	"fmt"
	"strings"
)

// BlockDocument is the serialized form of a Block
type BlockDocument struct {
	Tokens   []string         `json:"tokens" yaml:"tokens"`
	Children []*BlockDocument `json:"children,omitempty" yaml:"children,omitempty"`
}

// Document converts the tree rooted at b into its serialized form
func (b *Block) Document() *BlockDocument {
	doc := &BlockDocument{Tokens: b.Tokens()}
	for _, child := range b.children {
		doc.Children = append(doc.Children, child.Document())
	}
	return doc
}

// MarshalJSON implements json.Marshaler
func (b *Block) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.Document())
}

// MarshalYAML implements yaml.Marshaler
func (b *Block) MarshalYAML() (interface{}, error) {
	return b.Document(), nil
}

// Dump returns an indented outline of the tree for debugging. Each block
// lists its tokens first and then its children.
func (b *Block) Dump() string {
	var sb strings.Builder
	b.Walk(func(block *Block, depth int) bool {
		indent := strings.Repeat(DumpIndent, depth)
		fmt.Fprintf(&sb, FmtDumpBlock, indent, len(block.tokens), len(block.children))
		for _, token := range block.tokens {
			fmt.Fprintf(&sb, FmtDumpToken, indent, DumpIndent, token)
		}
		return true
	})
	return sb.String()
}
