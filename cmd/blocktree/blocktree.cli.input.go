package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/itsatony/go-blocktree"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// sourceConfig holds the flags shared by every command that reads an expression
type sourceConfig struct {
	inputPath   string
	expr        string
	configPath  string
	open        string
	close       string
	delimiter   string
	noDelimiter bool
	verbose     bool
}

// bindSourceFlags registers the shared expression and tag flags on fs
func bindSourceFlags(fs *flag.FlagSet, cfg *sourceConfig) {
	fs.StringVar(&cfg.inputPath, FlagInput, "", "")
	fs.StringVar(&cfg.inputPath, FlagInputShort, "", "")
	fs.StringVar(&cfg.expr, FlagExpr, "", "")
	fs.StringVar(&cfg.expr, FlagExprShort, "", "")
	fs.StringVar(&cfg.configPath, FlagConfig, "", "")
	fs.StringVar(&cfg.configPath, FlagConfigShort, "", "")
	fs.StringVar(&cfg.open, FlagOpen, "", "")
	fs.StringVar(&cfg.close, FlagClose, "", "")
	fs.StringVar(&cfg.delimiter, FlagDelimiter, "", "")
	fs.BoolVar(&cfg.noDelimiter, FlagNoDelimiter, false, "")
	fs.BoolVar(&cfg.verbose, FlagVerbose, false, "")
	fs.BoolVar(&cfg.verbose, FlagVerboseShort, false, "")
}

// check reports flag combinations that can never produce an expression
func (c *sourceConfig) check() error {
	if c.inputPath == "" && c.expr == "" {
		return errors.New(ErrMsgMissingInput)
	}
	if c.inputPath != "" && c.expr != "" {
		return errors.New(ErrMsgConflictingInput)
	}
	return nil
}

// readExpression returns the expression text from --expr, a file or stdin
func (c *sourceConfig) readExpression(stdin io.Reader) (string, error) {
	if c.expr != "" {
		return c.expr, nil
	}
	data, err := readInput(c.inputPath, stdin)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// tagConfig resolves the tag configuration. Defaults are applied first, then
// the YAML file, then the individual flags.
func (c *sourceConfig) tagConfig() (blocktree.TagConfig, error) {
	file := blocktree.DefaultTagConfig().File()

	if c.configPath != "" {
		loaded, err := blocktree.LoadTagConfig(c.configPath)
		if err != nil {
			return blocktree.TagConfig{}, err
		}
		file = loaded.File()
	}

	if c.open != "" {
		file.Open = c.open
	}
	if c.close != "" {
		file.Close = c.close
	}
	if c.delimiter != "" {
		file.Delimiter = c.delimiter
	}
	if c.noDelimiter {
		file.Delimiter = ""
	}

	return file.TagConfig()
}

// logger returns a debug console logger on stderr when verbose is set
func (c *sourceConfig) logger(stderr io.Writer) *zap.Logger {
	if !c.verbose {
		return zap.NewNop()
	}
	encoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	core := zapcore.NewCore(encoder, zapcore.AddSync(stderr), zapcore.DebugLevel)
	return zap.New(core)
}

// readInput reads content from a file or stdin
func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == InputSourceStdin {
		return io.ReadAll(stdin)
	}

	return os.ReadFile(path)
}

// loadSource parses shared flags into a tokenizer and the expression text.
// It writes the failure to stderr and returns a non-zero exit code on error.
func loadSource(cfg *sourceConfig, stdin io.Reader, stderr io.Writer) (*blocktree.CharTokenizer, string, *zap.Logger, int) {
	tags, err := cfg.tagConfig()
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidTags, err)
		return nil, "", nil, ExitCodeUsageError
	}

	text, err := cfg.readExpression(stdin)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgReadFileFailed, err)
		return nil, "", nil, ExitCodeInputError
	}

	logger := cfg.logger(stderr)
	return blocktree.NewCharTokenizer(tags, blocktree.WithLogger(logger)), text, logger, ExitCodeSuccess
}
