package internal

// Log message constants
const (
	LogMsgScannerCreated = "scanner created"
	LogMsgSplitStart     = "starting split"
	LogMsgSplitEnd       = "split complete"
)

// Log field name constants
const (
	LogFieldOpen      = "open"
	LogFieldClose     = "close"
	LogFieldLength    = "length"
	LogFieldTokens    = "tokens"
	LogFieldDelimited = "delimited"
)
