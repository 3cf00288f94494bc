package blocktree

import (
	"strconv"

	"github.com/itsatony/go-cuserr"
)

// Error message constants
const (
	// Validation errors
	ErrMsgUnbalancedTags   = "not all tags in the string are closed"
	ErrMsgMaxDepthExceeded = "maximum nesting depth exceeded"

	// Configuration errors
	ErrMsgInvalidTagConfig  = "invalid tag configuration"
	ErrMsgTagNotOneChar     = "tag must be exactly one character"
	ErrMsgTagsIdentical     = "open and close tags must differ"
	ErrMsgDelimiterIsTag    = "delimiter must differ from the tags"
	ErrMsgConfigReadFailed  = "failed to read tag configuration"
	ErrMsgConfigParseFailed = "failed to parse tag configuration"
	ErrMsgNilTokenizer      = "tokenizer is nil"
)

// Error code constants for categorization
const (
	ErrCodeValidation = "BLOCKTREE_VALIDATION"
	ErrCodeConfig     = "BLOCKTREE_CONFIG"
	ErrCodeBuild      = "BLOCKTREE_BUILD"
)

// NewUnbalancedTagsError creates an error for text whose open and close tag
// counts differ. log is the tokenizer's diagnostic log for the failed call.
func NewUnbalancedTagsError(log string) error {
	return cuserr.NewValidationError(ErrCodeValidation, ErrMsgUnbalancedTags).
		WithMetadata(MetaKeyLog, log)
}

// NewMaxDepthError creates an error for trees nested deeper than allowed
func NewMaxDepthError(current, max int) error {
	return cuserr.NewValidationError(ErrCodeBuild, ErrMsgMaxDepthExceeded).
		WithMetadata(MetaKeyCurrentDepth, strconv.Itoa(current)).
		WithMetadata(MetaKeyMaxDepth, strconv.Itoa(max))
}

// NewTagConfigError creates a configuration error for a single field
func NewTagConfigError(msg, field, value string) error {
	return cuserr.NewValidationError(ErrCodeConfig, msg).
		WithMetadata(MetaKeyField, field).
		WithMetadata(MetaKeyValue, value)
}

// NewConfigFileError wraps a read or decode failure of a tag configuration file
func NewConfigFileError(msg, path string, cause error) error {
	return cuserr.WrapStdError(cause, ErrCodeConfig, msg).
		WithMetadata(MetaKeyPath, path)
}

// NewNilTokenizerError creates an error for a missing tokenizer
func NewNilTokenizerError() error {
	return cuserr.NewValidationError(ErrCodeBuild, ErrMsgNilTokenizer)
}
