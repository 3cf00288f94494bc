package blocktree

import (
	"strings"

	"go.uber.org/zap"
)

// Block is one node of a parsed tree. It owns the tokens its text split into
// and one child per token that still contains a balanced tag group.
//
// Children are appended in token order but are not index-aligned with Tokens:
// tokens without a group have no child entry.
type Block struct {
	tokens   []string
	children []*Block
}

// NewBlock builds the full tree for text. It never fails and assumes the
// caller already checked ValidateBalancedTags; use Build for the checked path.
func NewBlock(text string, tokenizer Tokenizer) *Block {
	b := &builder{tokenizer: tokenizer}
	block, _ := b.build(text, 0)
	return block
}

// Build validates tag balance and then builds the tree for text.
// Unbalanced text yields an error carrying the tokenizer's log. With
// WithMaxDepth, trees nested deeper than the limit yield an error.
func Build(text string, tokenizer Tokenizer, opts ...Option) (*Block, error) {
	if tokenizer == nil {
		return nil, NewNilTokenizerError()
	}
	cfg := applyOptions(opts)
	cfg.logger.Debug(LogMsgBuildStart, zap.Int(LogFieldLength, len(text)))

	if !tokenizer.ValidateBalancedTags(text) {
		cfg.logger.Debug(LogMsgBuildRejected)
		return nil, NewUnbalancedTagsError(tokenizer.Log())
	}

	b := &builder{
		tokenizer: tokenizer,
		maxDepth:  cfg.maxDepth,
	}
	block, err := b.build(text, 0)
	if err != nil {
		cfg.logger.Debug(LogMsgBuildRejected, zap.Error(err))
		return nil, err
	}

	cfg.logger.Debug(LogMsgBuildComplete,
		zap.Int(LogFieldTokens, len(block.tokens)),
		zap.Int(LogFieldChildren, len(block.children)),
		zap.Int(LogFieldDepth, block.Height()))
	return block, nil
}

// builder carries the settings of one recursive build
type builder struct {
	tokenizer Tokenizer
	maxDepth  int
}

func (b *builder) build(text string, depth int) (*Block, error) {
	if b.maxDepth > 0 && depth > b.maxDepth {
		return nil, NewMaxDepthError(depth, b.maxDepth)
	}

	text = strings.TrimSpace(text)
	block := &Block{tokens: b.tokenizer.Parse(text)}

	for _, token := range block.tokens {
		if b.tokenizer.CountBlocks(token) == 0 {
			continue
		}
		// A token that is the whole text again would rebuild this same node forever,
		// e.g. "(a)(b)" without a delimiter.
		if strings.TrimSpace(token) == text {
			continue
		}
		child, err := b.build(token, depth+1)
		if err != nil {
			return nil, err
		}
		block.children = append(block.children, child)
	}

	return block, nil
}

// Tokens returns a copy of the node's tokens in scan order
func (b *Block) Tokens() []string {
	return append([]string(nil), b.tokens...)
}

// Children returns the node's child blocks in scan order
func (b *Block) Children() []*Block {
	return append([]*Block(nil), b.children...)
}

// Render joins the node's tokens with single spaces. Whitespace inside tokens
// and the input delimiter are not preserved.
func (b *Block) Render() string {
	return strings.TrimSpace(strings.Join(b.tokens, RenderSeparator))
}

// String implements fmt.Stringer
func (b *Block) String() string {
	return b.Render()
}

// Height returns the number of levels in the subtree rooted at b; a leaf is 1
func (b *Block) Height() int {
	height := 0
	for _, child := range b.children {
		if h := child.Height(); h > height {
			height = h
		}
	}
	return height + 1
}

// Walk visits b and its descendants depth-first, parents before children.
// Returning false from fn skips the children of that block.
func (b *Block) Walk(fn func(block *Block, depth int) bool) {
	b.walk(fn, 0)
}

func (b *Block) walk(fn func(block *Block, depth int) bool, depth int) {
	if !fn(b, depth) {
		return
	}
	for _, child := range b.children {
		child.walk(fn, depth+1)
	}
}
