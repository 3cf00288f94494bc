package blocktree

import (
	"fmt"
	"strings"

	"github.com/itsatony/go-blocktree/internal"
	"go.uber.org/zap"
)

// Tokenizer splits text into sibling tokens and answers the bracket questions
// the tree builder asks. Implementations may use other tag schemes; the
// builder only relies on this contract.
type Tokenizer interface {
	// Parse returns the tokens of text, split on delimiters that lie outside
	// every tag pair. A single outermost tag pair around the whole text is
	// removed first. Nested tags are left inside the tokens. The result always
	// has at least one element.
	Parse(text string) []string

	// ValidateBalancedTags reports whether text holds as many open tags as
	// close tags. On failure the details are available from Log.
	ValidateBalancedTags(text string) bool

	// BoundedByTags reports whether one outermost tag pair encloses the whole text.
	BoundedByTags(text string) bool

	// CountBlocks returns the number of top-level balanced tag groups in text.
	CountBlocks(text string) int

	// CountOccurrence returns the number of non-overlapping occurrences of
	// substring in text.
	CountOccurrence(text, substring string) int

	// Log returns the diagnostic message of the last failed validation.
	Log() string
}

// CharTokenizer is a Tokenizer for single-character tags and delimiter.
// The diagnostic log is the only mutable state; a CharTokenizer must not be
// shared by concurrent ValidateBalancedTags callers without synchronization.
type CharTokenizer struct {
	config  TagConfig
	scanner *internal.Scanner
	log     string
	logger  *zap.Logger
}

var _ Tokenizer = (*CharTokenizer)(nil)

// NewCharTokenizer creates a tokenizer for the given tag configuration
func NewCharTokenizer(cfg TagConfig, opts ...Option) *CharTokenizer {
	c := applyOptions(opts)
	c.logger.Debug(LogMsgTokenizerCreated, zap.Stringer(LogFieldConfig, cfg))
	return &CharTokenizer{
		config:  cfg,
		scanner: internal.NewScanner(cfg.open, cfg.close, c.logger),
		logger:  c.logger,
	}
}

// Config returns the tag configuration
func (t *CharTokenizer) Config() TagConfig {
	return t.config
}

// Parse implements Tokenizer
func (t *CharTokenizer) Parse(text string) []string {
	text = strings.TrimSpace(text)
	if t.BoundedByTags(text) {
		text = t.scanner.Unwrap(text)
	}

	tokens := t.scanner.Split(text, t.config.delimiter, t.config.hasDelimiter)
	t.logger.Debug(LogMsgParseComplete, zap.Int(LogFieldTokens, len(tokens)))
	return tokens
}

// ValidateBalancedTags implements Tokenizer. It compares flat counts, so ")("
// passes even though it is structurally invalid.
func (t *CharTokenizer) ValidateBalancedTags(text string) bool {
	t.log = ""

	open := t.scanner.CountRune(text, t.config.open)
	closed := t.scanner.CountRune(text, t.config.close)
	if open != closed {
		t.log = fmt.Sprintf(FmtUnbalancedLog, open, closed, text)
		t.logger.Debug(LogMsgUnbalancedTags,
			zap.Int(LogFieldOpen, open),
			zap.Int(LogFieldClosed, closed))
		return false
	}
	return true
}

// BoundedByTags implements Tokenizer
func (t *CharTokenizer) BoundedByTags(text string) bool {
	return t.scanner.Bounded(text)
}

// CountBlocks implements Tokenizer
func (t *CharTokenizer) CountBlocks(text string) int {
	return t.scanner.CountGroups(text)
}

// CountOccurrence implements Tokenizer. An empty substring never occurs.
func (t *CharTokenizer) CountOccurrence(text, substring string) int {
	if substring == "" {
		return 0
	}
	return strings.Count(text, substring)
}

// Log implements Tokenizer
func (t *CharTokenizer) Log() string {
	return t.log
}
