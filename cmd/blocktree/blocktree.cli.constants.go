package main

// Command names
const (
	CmdNameParse    = "parse"
	CmdNameTokens   = "tokens"
	CmdNameValidate = "validate"
	CmdNameVersion  = "version"
	CmdNameHelp     = "help"
)

// Flag names - long form
const (
	FlagInput       = "input"
	FlagExpr        = "expr"
	FlagConfig      = "config"
	FlagOpen        = "open"
	FlagClose       = "close"
	FlagDelimiter   = "delim"
	FlagNoDelimiter = "no-delim"
	FlagFormat      = "format"
	FlagMaxDepth    = "max-depth"
	FlagVerbose     = "verbose"
)

// Flag names - short form
const (
	FlagInputShort   = "i"
	FlagExprShort    = "e"
	FlagConfigShort  = "c"
	FlagFormatShort  = "F"
	FlagVerboseShort = "v"
)

// Flag default values
const (
	FlagDefaultFormat = "text"
)

// Output formats
const (
	OutputFormatText = "text"
	OutputFormatJSON = "json"
	OutputFormatYAML = "yaml"
	OutputFormatTree = "tree"
)

// Exit codes
const (
	ExitCodeSuccess         = 0
	ExitCodeError           = 1
	ExitCodeUsageError      = 2
	ExitCodeValidationError = 3
	ExitCodeInputError      = 4
)

// Input source indicators
const (
	InputSourceStdin = "-"
)

// Error messages - ALL must be constants
const (
	ErrMsgUnknownCommand    = "unknown command"
	ErrMsgMissingInput      = "expression source required (use --input or --expr)"
	ErrMsgConflictingInput  = "--input and --expr are mutually exclusive"
	ErrMsgInvalidArguments  = "invalid arguments"
	ErrMsgReadFileFailed    = "failed to read file"
	ErrMsgInvalidTags       = "invalid tag configuration"
	ErrMsgBuildFailed       = "expression parsing failed"
	ErrMsgInvalidFormat     = "invalid output format"
	ErrMsgMarshalFailed     = "failed to encode output"
	ErrMsgWriteOutputFailed = "failed to write output"
)

// Help text templates
const (
	HelpMainUsage = `blocktree - Bracket-aware expression tokenizer CLI

Usage:
    blocktree <command> [options]

Commands:
    parse       Parse an expression into a block tree
    tokens      Print the top-level tokens of an expression
    validate    Check that open and close tags are balanced
    version     Show version information
    help        Show help for a command

Use "blocktree help <command>" for more information about a command.`

	helpSourceOptions = `    -i, --input <file>      Expression file (use "-" for stdin)
    -e, --expr <text>       Expression text
    -c, --config <file>     YAML tag configuration (open, close, delimiter)
    --open <char>           Open tag (default: "(")
    --close <char>          Close tag (default: ")")
    --delim <char>          Delimiter (default: " ")
    --no-delim              Disable delimiter splitting
    -v, --verbose           Write debug logs to stderr`

	HelpParseUsage = `Parse an expression into a block tree

Usage:
    blocktree parse [options]

Options:
` + helpSourceOptions + `
    -F, --format <format>   Output format: text, tree, json, yaml (default: text)
    --max-depth <n>         Maximum nesting depth, 0 for unlimited (default: 0)

Examples:
    blocktree parse -e "(var op var) operator (var op (op var))"
    blocktree parse -e "(a op b) rel (c op (d op e))" -F json
    cat expr.txt | blocktree parse -i - -F tree`

	HelpTokensUsage = `Print the top-level tokens of an expression

Usage:
    blocktree tokens [options]

Options:
` + helpSourceOptions + `
    -F, --format <format>   Output format: text, json (default: text)

Examples:
    blocktree tokens -e "[a,[b,c],d]" --open "[" --close "]" --delim ","`

	HelpValidateUsage = `Check that open and close tags are balanced

Usage:
    blocktree validate [options]

Options:
` + helpSourceOptions + `
    -F, --format <format>   Output format: text, json (default: text)

Examples:
    blocktree validate -e "(var( op var) operator (var op (op var))"`

	HelpVersionUsage = `Show version information, default tags and registered storage drivers

Usage:
    blocktree version [options]

Options:
    -F, --format <format>   Output format: text, json (default: text)`

	HelpHelpUsage = `Show help for a command

Usage:
    blocktree help [command]

Commands:
    parse       Show help for parse command
    tokens      Show help for tokens command
    validate    Show help for validate command
    version     Show help for version command`
)

// Version output format templates
const (
	VersionTextTemplate  = "go-blocktree version %s\nCommit: %s\nBranch: %s\nBuilt: %s\nGo: %s\n"
	DefaultsTextTemplate = "Default tags: open=%q close=%q delimiter=%q\nDefault max depth: %d\nStorage drivers: %s\n"
	VersionUnknown       = "unknown"
)

// Validation output
const (
	ValidationTextSuccess = "Tags are balanced"
)

// CLI metadata
const (
	CLIName        = "blocktree"
	CLIDescription = "Bracket-aware expression tokenizer CLI"
)

// Format string constants
const (
	FmtErrorWithDetail = "%s: %s\n"
	FmtErrorWithCause  = "%s: %v\n"
	FmtTokenLine       = "%d\t%q\n"
)

// File permissions
const (
	FilePermissions = 0644
)
