package internal

import (
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

// Scanner walks text rune by rune and tracks bracket depth for a single
// open/close tag pair. Depth is signed and never clamped: a close tag seen
// before its open tag drives it negative and scanning simply continues.
type Scanner struct {
	Open   rune // Opening tag character
	Close  rune // Closing tag character
	logger *zap.Logger
}

// NewScanner creates a scanner for the given tag pair
func NewScanner(open, close rune, logger *zap.Logger) *Scanner {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug(LogMsgScannerCreated,
		zap.String(LogFieldOpen, string(open)),
		zap.String(LogFieldClose, string(close)))
	return &Scanner{
		Open:   open,
		Close:  close,
		logger: logger,
	}
}

// step returns the depth after consuming r. The open tag wins when both tags
// are the same character.
func (s *Scanner) step(depth int, r rune) int {
	if r == s.Open {
		return depth + 1
	}
	if r == s.Close {
		return depth - 1
	}
	return depth
}

// Split cuts text at every delimiter that sits at depth zero once the current
// segment is non-empty. A delimiter that does not split is kept in the segment.
// The trailing segment is always appended, so the result is never empty.
// Segments are byte slices of text; invalid UTF-8 bytes are carried through
// unchanged and never match a tag or the delimiter.
func (s *Scanner) Split(text string, delimiter rune, useDelimiter bool) []string {
	s.logger.Debug(LogMsgSplitStart,
		zap.Int(LogFieldLength, len(text)),
		zap.Bool(LogFieldDelimited, useDelimiter))

	var segments []string
	start := 0
	depth := 0

	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if r == utf8.RuneError && size == 1 {
			i++
			continue
		}
		depth = s.step(depth, r)

		if useDelimiter && r == delimiter && depth == 0 && i > start {
			segments = append(segments, text[start:i])
			start = i + size
		}
		i += size
	}
	segments = append(segments, text[start:])

	s.logger.Debug(LogMsgSplitEnd, zap.Int(LogFieldTokens, len(segments)))
	return segments
}

// Bounded reports whether text starts with the open tag, ends with the close
// tag, and the first return to depth zero happens on the last character.
func (s *Scanner) Bounded(text string) bool {
	runes := []rune(text)
	n := len(runes)
	if n == 0 || runes[0] != s.Open || runes[n-1] != s.Close {
		return false
	}

	depth := 0
	for i, r := range runes {
		if r == s.Open {
			depth++
			continue
		}
		if r == s.Close {
			depth--
			if depth == 0 {
				return i == n-1
			}
		}
	}
	return false
}

// Unwrap drops the first and last character of text
func (s *Scanner) Unwrap(text string) string {
	_, head := utf8.DecodeRuneInString(text)
	_, tail := utf8.DecodeLastRuneInString(text)
	if head+tail >= len(text) {
		return ""
	}
	return text[head : len(text)-tail]
}

// CountGroups counts how many times a close tag brings the depth back to
// zero, i.e. the number of top-level balanced groups.
func (s *Scanner) CountGroups(text string) int {
	depth := 0
	groups := 0
	for _, r := range text {
		if r == s.Open {
			depth++
			continue
		}
		if r == s.Close {
			depth--
			if depth == 0 {
				groups++
			}
		}
	}
	return groups
}

// CountRune counts occurrences of r anywhere in text, ignoring nesting
func (s *Scanner) CountRune(text string, r rune) int {
	return strings.Count(text, string(r))
}
