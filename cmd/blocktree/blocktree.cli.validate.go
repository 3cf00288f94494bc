package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
)

// validateConfig holds parsed validate command configuration
type validateConfig struct {
	source sourceConfig
	format string
}

// validateOutput represents JSON output for validation
type validateOutput struct {
	Valid  bool   `json:"valid"`
	Open   int    `json:"open"`
	Closed int    `json:"closed"`
	Log    string `json:"log,omitempty"`
}

func runValidate(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := parseValidateFlags(args)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidArguments, err)
		return ExitCodeUsageError
	}

	tokenizer, text, logger, code := loadSource(&cfg.source, stdin, stderr)
	if code != ExitCodeSuccess {
		return code
	}
	defer func() { _ = logger.Sync() }()

	valid := tokenizer.ValidateBalancedTags(text)
	tags := tokenizer.Config()

	if cfg.format == OutputFormatJSON {
		output := validateOutput{
			Valid:  valid,
			Open:   tokenizer.CountOccurrence(text, string(tags.Open())),
			Closed: tokenizer.CountOccurrence(text, string(tags.Close())),
			Log:    tokenizer.Log(),
		}
		jsonBytes, _ := json.MarshalIndent(output, "", "  ")
		fmt.Fprintln(stdout, string(jsonBytes))
	} else if valid {
		fmt.Fprintln(stdout, ValidationTextSuccess)
	} else {
		fmt.Fprintln(stdout, tokenizer.Log())
	}

	if !valid {
		return ExitCodeValidationError
	}
	return ExitCodeSuccess
}

func parseValidateFlags(args []string) (*validateConfig, error) {
	fs := flag.NewFlagSet(CmdNameValidate, flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	cfg := &validateConfig{}
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
