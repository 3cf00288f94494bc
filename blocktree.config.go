package blocktree

import (
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/itsatony/go-cuserr"
	"gopkg.in/yaml.v3"
)

// TagConfig is the immutable open/close/delimiter triple a CharTokenizer scans
// with. Without a delimiter the whole trimmed text is a single token.
type TagConfig struct {
	open         rune
	close        rune
	delimiter    rune
	hasDelimiter bool
}

// NewTagConfig creates a configuration without delimiter splitting
func NewTagConfig(open, close rune) TagConfig {
	return TagConfig{open: open, close: close}
}

// NewDelimitedTagConfig creates a configuration that splits siblings on
// delimiter wherever it appears outside every tag pair.
func NewDelimitedTagConfig(open, close, delimiter rune) TagConfig {
	return TagConfig{
		open:         open,
		close:        close,
		delimiter:    delimiter,
		hasDelimiter: true,
	}
}

// DefaultTagConfig returns parentheses delimited by a single space
func DefaultTagConfig() TagConfig {
	return NewDelimitedTagConfig(DefaultOpenTag, DefaultCloseTag, DefaultDelimiter)
}

// Open returns the opening tag
func (c TagConfig) Open() rune {
	return c.open
}

// Close returns the closing tag
func (c TagConfig) Close() rune {
	return c.close
}

// Delimiter returns the delimiter and whether delimiter splitting is enabled
func (c TagConfig) Delimiter() (rune, bool) {
	return c.delimiter, c.hasDelimiter
}

// String returns a human-readable form of the configuration
func (c TagConfig) String() string {
	if !c.hasDelimiter {
		return fmt.Sprintf("open=%q close=%q", c.open, c.close)
	}
	return fmt.Sprintf("open=%q close=%q delimiter=%q", c.open, c.close, c.delimiter)
}

// Validate checks that the tags differ from each other and from the delimiter.
// The constructors accept any characters; loaders and the CLI call Validate.
func (c TagConfig) Validate() error {
	if c.open == c.close {
		return NewTagConfigError(ErrMsgTagsIdentical, TagConfigKeyClose, string(c.close))
	}
	if c.hasDelimiter && (c.delimiter == c.open || c.delimiter == c.close) {
		return NewTagConfigError(ErrMsgDelimiterIsTag, TagConfigKeyDelimiter, string(c.delimiter))
	}
	return nil
}

// File returns the serializable form of the configuration
func (c TagConfig) File() TagConfigFile {
	f := TagConfigFile{
		Open:  string(c.open),
		Close: string(c.close),
	}
	if c.hasDelimiter {
		f.Delimiter = string(c.delimiter)
	}
	return f
}

// TagConfigFile is the YAML/JSON form of a TagConfig. Each field holds exactly
// one character; an empty Delimiter disables delimiter splitting.
//
//	open: "("
//	close: ")"
//	delimiter: " "
type TagConfigFile struct {
	Open      string `yaml:"open" json:"open"`
	Close     string `yaml:"close" json:"close"`
	Delimiter string `yaml:"delimiter,omitempty" json:"delimiter,omitempty"`
}

// TagConfig converts the file form into a validated TagConfig
func (f TagConfigFile) TagConfig() (TagConfig, error) {
	open, err := singleRune(TagConfigKeyOpen, f.Open)
	if err != nil {
		return TagConfig{}, err
	}
	close, err := singleRune(TagConfigKeyClose, f.Close)
	if err != nil {
		return TagConfig{}, err
	}

	cfg := NewTagConfig(open, close)
	if f.Delimiter != "" {
		delimiter, err := singleRune(TagConfigKeyDelimiter, f.Delimiter)
		if err != nil {
			return TagConfig{}, err
		}
		cfg = NewDelimitedTagConfig(open, close, delimiter)
	}

	if err := cfg.Validate(); err != nil {
		return TagConfig{}, err
	}
	return cfg, nil
}

// ParseTagConfigYAML decodes a YAML tag configuration document
func ParseTagConfigYAML(data []byte) (TagConfig, error) {
	var f TagConfigFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return TagConfig{}, NewConfigFileError(ErrMsgConfigParseFailed, "", err)
	}
	return f.TagConfig()
}

// LoadTagConfig reads and decodes a YAML tag configuration file. Errors carry
// the file path as metadata.
func LoadTagConfig(path string) (TagConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return TagConfig{}, NewConfigFileError(ErrMsgConfigReadFailed, path, err)
	}

	cfg, err := ParseTagConfigYAML(data)
	if err != nil {
		var customErr *cuserr.CustomError
		if errors.As(err, &customErr) {
			customErr.WithMetadata(MetaKeyPath, path)
		}
		return TagConfig{}, err
	}
	return cfg, nil
}

func singleRune(field, value string) (rune, error) {
	if utf8.RuneCountInString(value) != 1 {
		return 0, NewTagConfigError(ErrMsgTagNotOneChar, field, value)
	}
	r, _ := utf8.DecodeRuneInString(value)
	return r, nil
}
