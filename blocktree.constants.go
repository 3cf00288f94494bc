package blocktree

import "time"

// Default tag characters
const (
	DefaultOpenTag   = '('
	DefaultCloseTag  = ')'
	DefaultDelimiter = ' '
)

// DefaultMaxDepth disables the nesting limit of Build
const DefaultMaxDepth = 0

// Log message constants
const (
	LogMsgTokenizerCreated = "tokenizer created"
	LogMsgParseComplete    = "parse complete"
	LogMsgUnbalancedTags   = "unbalanced tags"
	LogMsgBuildStart       = "starting block build"
	LogMsgBuildComplete    = "block build complete"
	LogMsgBuildRejected    = "block build rejected"
	LogMsgStorageOpened    = "storage opened"
)

// Log field name constants
const (
	LogFieldConfig   = "config"
	LogFieldTokens   = "tokens"
	LogFieldChildren = "children"
	LogFieldDepth    = "depth"
	LogFieldOpen     = "open"
	LogFieldClosed   = "closed"
	LogFieldLength   = "length"
	LogFieldDriver   = "driver"
)

// Error metadata keys
const (
	MetaKeyLog          = "log"
	MetaKeyField        = "field"
	MetaKeyValue        = "value"
	MetaKeyPath         = "path"
	MetaKeyMaxDepth     = "max_depth"
	MetaKeyCurrentDepth = "current_depth"
	MetaKeyName         = "name"
)

// Balance log format. Mirrors the message callers print when validation fails.
const FmtUnbalancedLog = "Not all tags in the string are closed. \nOpen: %d Closed: %d \n%s"

// Rendering
const (
	RenderSeparator = " "
	DumpIndent      = "  "
	FmtDumpBlock    = "%sblock tokens=%d children=%d\n"
	FmtDumpToken    = "%s%stoken %q\n"
)

// YAML tag configuration keys and file handling
const (
	TagConfigKeyOpen      = "open"
	TagConfigKeyClose     = "close"
	TagConfigKeyDelimiter = "delimiter"
)

// Storage driver names
const (
	StorageDriverNameMemory   = "memory"
	StorageDriverNamePostgres = "postgres"
)

// Storage identifiers
const (
	ExpressionIDPrefix  = "expr_"
	ExpressionIDBytes   = 12
	PostgresTablePrefix = "blocktree_"
)

// PostgreSQL defaults
const (
	PostgresDefaultMaxOpenConns    = 25
	PostgresDefaultMaxIdleConns    = 5
	PostgresDefaultConnMaxLifetime = 5 * time.Minute
	PostgresDefaultConnMaxIdleTime = 5 * time.Minute
	PostgresDefaultQueryTimeout    = 30 * time.Second
	PostgresDriverName             = "postgres"
)
