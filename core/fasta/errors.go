// core/fasta/errors.go
package fasta

import "fmt"

// Kind classifies fatal reader errors.
type Kind int

const (
	// MalformedIdentifier covers a missing '>' marker and too-short
	// identifier lines.
	MalformedIdentifier Kind = iota
	// MissingSequenceLine means end-of-stream between an identifier
	// line and its sequence line.
	MissingSequenceLine
	// InvalidSequenceContent means the sequence line holds characters
	// outside the IUPAC nucleotide alphabet.
	InvalidSequenceContent
	// LineTooLong means a line hit the configured ceiling. The input
	// may well be valid; the operator must raise the limit.
	LineTooLong
)

func (k Kind) String() string {
	switch k {
	case MalformedIdentifier:
		return "malformed identifier"
	case MissingSequenceLine:
		return "missing sequence line"
	case InvalidSequenceContent:
		return "invalid sequence content"
	case LineTooLong:
		return "line too long"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseError is a fatal reader error. Any ParseError terminates the
// whole run; the reader does not skip bad records.
type ParseError struct {
	Line int // 1-based input line the error was detected on
	Kind Kind
	msg  string
}

func (e *ParseError) Error() string { return e.msg }

func parseErrf(line int, kind Kind, format string, args ...interface{}) *ParseError {
	return &ParseError{Line: line, Kind: kind, msg: fmt.Sprintf(format, args...)}
}
