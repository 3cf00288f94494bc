package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/itsatony/go-blocktree"
	"gopkg.in/yaml.v3"
)

// parseConfig holds parsed parse command configuration
type parseConfig struct {
	source   sourceConfig
	format   string
	maxDepth int
}

func runParse(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := parseParseFlags(args)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidArguments, err)
		return ExitCodeUsageError
	}

	tokenizer, text, logger, code := loadSource(&cfg.source, stdin, stderr)
	if code != ExitCodeSuccess {
		return code
	}
	defer func() { _ = logger.Sync() }()

	block, err := blocktree.Build(text, tokenizer,
		blocktree.WithLogger(logger),
		blocktree.WithMaxDepth(cfg.maxDepth),
	)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgBuildFailed, err)
		if log := tokenizer.Log(); log != "" {
			fmt.Fprintln(stderr, log)
		}
		return ExitCodeValidationError
	}

	return writeBlock(block, cfg.format, stdout, stderr)
}

func parseParseFlags(args []string) (*parseConfig, error) {
	fs := flag.NewFlagSet(CmdNameParse, flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	cfg := &parseConfig{}
	bindSourceFlags(fs, &cfg.source)
	fs.StringVar(&cfg.format, FlagFormat, FlagDefaultFormat, "")
	fs.StringVar(&cfg.format, FlagFormatShort, FlagDefaultFormat, "")
	fs.IntVar(&cfg.maxDepth, FlagMaxDepth, blocktree.DefaultMaxDepth, "")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if err := cfg.source.check(); err != nil {
		return nil, err
	}

	switch cfg.format {
	case OutputFormatText, OutputFormatTree, OutputFormatJSON, OutputFormatYAML:
	default:
		return nil, errors.New(ErrMsgInvalidFormat)
	}

	return cfg, nil
}

func writeBlock(block *blocktree.Block, format string, stdout, stderr io.Writer) int {
	var out []byte
	var err error

	switch format {
	case OutputFormatJSON:
		out, err = json.MarshalIndent(block, "", "  ")
		out = append(out, '\n')
	case OutputFormatYAML:
		out, err = yaml.Marshal(block)
	case OutputFormatTree:
		out = []byte(block.Dump())
	default:
		out = []byte(block.Render() + "\n")
	}

	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgMarshalFailed, err)
		return ExitCodeError
	}

	if _, err := stdout.Write(out); err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgWriteOutputFailed, err)
		return ExitCodeError
	}
	return ExitCodeSuccess
}
