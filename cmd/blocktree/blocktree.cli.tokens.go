package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
)

// tokensConfig holds parsed tokens command configuration
type tokensConfig struct {
	source sourceConfig
	format string
}

// tokensOutput represents JSON output for tokens
type tokensOutput struct {
	Tokens  []string `json:"tokens"`
	Bounded bool     `json:"bounded"`
	Blocks  int      `json:"blocks"`
}

func runTokens(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := parseTokensFlags(args)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidArguments, err)
		return ExitCodeUsageError
	}

	tokenizer, text, logger, code := loadSource(&cfg.source, stdin, stderr)
	if code != ExitCodeSuccess {
		return code
	}
	defer func() { _ = logger.Sync() }()

	tokens := tokenizer.Parse(text)

	if cfg.format == OutputFormatJSON {
		output := tokensOutput{
			Tokens:  tokens,
			Bounded: tokenizer.BoundedByTags(text),
			Blocks:  tokenizer.CountBlocks(text),
		}
		jsonBytes, _ := json.MarshalIndent(output, "", "  ")
		fmt.Fprintln(stdout, string(jsonBytes))
		return ExitCodeSuccess
	}

	for i, token := range tokens {
		fmt.Fprintf(stdout, FmtTokenLine, i, token)
	}
	return ExitCodeSuccess
}

func parseTokensFlags(args []string) (*tokensConfig, error) {
	fs := flag.NewFlagSet(CmdNameTokens, flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	cfg := &tokensConfig{}
	bindSourceFlags(fs, &cfg.source)
	fs.StringVar(&cfg.format, FlagFormat, FlagDefaultFormat, "")
	fs.StringVar(&cfg.format, FlagFormatShort, FlagDefaultFormat, "")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if err := cfg.source.check(); err != nil {
		return nil, err
	}

	if cfg.format != OutputFormatText && cfg.format != OutputFormatJSON {
		return nil, errors.New(ErrMsgInvalidFormat)
	}

	return cfg, nil
}
