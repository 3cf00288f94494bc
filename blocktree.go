// Package blocktree splits text containing nested, bracket-delimited groups
// into a tree of blocks.
//
// A CharTokenizer is configured with one open tag, one close tag and an
// optional delimiter. It splits text on the delimiter only where the
// delimiter lies outside every tag pair, leaving nested groups inside the
// tokens:
//
//	tokenizer := blocktree.NewCharTokenizer(blocktree.NewDelimitedTagConfig('(', ')', ' '))
//	tokenizer.Parse("(a op b) rel (c op (d op e))")
//	// ["(a op b)", "rel", "(c op (d op e))"]
//
// # Building Trees
//
// A Block holds the tokens of its text and one child Block for every token
// that still contains a balanced group. Validate first, then build:
//
//	if !tokenizer.ValidateBalancedTags(input) {
//	    fmt.Println(tokenizer.Log())
//	    return
//	}
//	block := blocktree.NewBlock(input, tokenizer)
//	fmt.Println(block.Render())
//
// Build does both steps and reports failures as errors:
//
//	block, err := blocktree.Build(input, tokenizer, blocktree.WithMaxDepth(32))
//
// Children are not index-aligned with tokens; a token without a group has no
// child entry.
//
// # Validation Limits
//
// ValidateBalancedTags compares flat counts of open and close tags. Input
// such as ")(" passes the check; scanning it is deterministic but the depth
// counter goes negative and the resulting tree is unspecified.
//
// # Storage
//
// Expressions can be stored together with their tag configuration through
// the ExpressionStorage interface. The "memory" and "postgres" drivers are
// registered by default:
//
//	storage, err := blocktree.OpenStorage("memory", "")
package blocktree
