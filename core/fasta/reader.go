// core/fasta/reader.go
package fasta

import (
	"bufio"
	"errors"
	"io"

	"fastashuffle-core/alphabet"
)

// Record is one parsed single-line FASTA entry. ID retains the leading
// '>' marker. A Record is owned by the caller; the reader keeps no
// reference to it.
type Record struct {
	ID  string
	Seq []byte
}

// Limits bounds the per-line memory of a Reader. A trimmed line of
// length >= limit-1 is rejected with LineTooLong rather than grown
// without bound.
type Limits struct {
	MaxIDLen  int
	MaxSeqLen int
}

// DefaultLimits matches the original tool's ceilings, sized for
// next-gen (short) reads.
func DefaultLimits() Limits {
	return Limits{MaxIDLen: 32678, MaxSeqLen: 1000000}
}

// Reader parses a strict single-line FASTA dialect: every record is
// exactly one identifier line followed by exactly one sequence line,
// LF or CRLF terminated. The first violation puts the reader in a
// terminal failed state.
type Reader struct {
	sc   *bufio.Scanner
	lim  Limits
	line int // 1-based line number of the next identifier line
	err  error
}

// NewReader wraps r. Zero or negative limits fall back to
// DefaultLimits.
func NewReader(r io.Reader, lim Limits) *Reader {
	def := DefaultLimits()
	if lim.MaxIDLen <= 0 {
		lim.MaxIDLen = def.MaxIDLen
	}
	if lim.MaxSeqLen <= 0 {
		lim.MaxSeqLen = def.MaxSeqLen
	}
	max := lim.MaxSeqLen
	if lim.MaxIDLen > max {
		max = lim.MaxIDLen
	}
	sc := bufio.NewScanner(r)
	// Scanner ceiling sits above both limits so ordinary over-limit
	// lines surface as LineTooLong with a line number, not ErrTooLong.
	sc.Buffer(make([]byte, 64*1024), max+2)
	return &Reader{sc: sc, lim: lim, line: 1}
}

// Line reports the 1-based line number of the next unread identifier
// line. It advances by exactly 2 per record attempt.
func (r *Reader) Line() int { return r.line }

// Next returns the next record. Clean end-of-input yields io.EOF. Any
// other error is a *ParseError (or an underlying I/O error) and is
// sticky: every later call returns it again.
func (r *Reader) Next() (Record, error) {
	if r.err != nil {
		return Record{}, r.err
	}
	rec, err := r.read()
	if err != nil {
		if err != io.EOF {
			r.err = err
		}
		return Record{}, err
	}
	r.line += 2
	return rec, nil
}

func (r *Reader) read() (Record, error) {
	id, err := r.scanLine(r.line, r.lim.MaxIDLen, "--max-id-length")
	if err != nil {
		return Record{}, err // io.EOF here is clean termination
	}
	if len(id) < 2 {
		return Record{}, parseErrf(r.line, MalformedIdentifier,
			"input error: too-short identifier line (line %d)", r.line)
	}
	if id[0] != '>' {
		if alphabet.ValidNucleotides(id) {
			// The classic failure mode: a multi-line FASTA file fed
			// to a single-line-only parser.
			return Record{}, parseErrf(r.line, MalformedIdentifier,
				"input error: line %d should start with '>' but contains nucleotide sequence; this looks like a multi-line FASTA file, re-format it to single-line records", r.line)
		}
		return Record{}, parseErrf(r.line, MalformedIdentifier,
			"input error: invalid FASTA identifier on line %d (expecting a line starting with '>')", r.line)
	}

	seqLine := r.line + 1
	seq, err := r.scanLine(seqLine, r.lim.MaxSeqLen, "--max-seq-length")
	if err == io.EOF {
		return Record{}, parseErrf(seqLine, MissingSequenceLine,
			"input error: missing nucleotide sequence line (line %d)", seqLine)
	}
	if err != nil {
		return Record{}, err
	}
	if !alphabet.ValidNucleotides(seq) {
		return Record{}, parseErrf(seqLine, InvalidSequenceContent,
			"input error: expecting nucleotide sequence on line %d (allowed: %s, either case)", seqLine, alphabet.Codes)
	}

	return Record{ID: string(id), Seq: append([]byte(nil), seq...)}, nil
}

// scanLine reads one line, trimmed of its terminator, enforcing the
// given ceiling. The returned slice is only valid until the next scan.
func (r *Reader) scanLine(line, limit int, flag string) ([]byte, error) {
	if !r.sc.Scan() {
		if err := r.sc.Err(); err != nil {
			if errors.Is(err, bufio.ErrTooLong) {
				return nil, tooLong(line, limit, flag)
			}
			return nil, err
		}
		return nil, io.EOF
	}
	b := r.sc.Bytes()
	if len(b) >= limit-1 {
		return nil, tooLong(line, limit, flag)
	}
	return b, nil
}

func tooLong(line, limit int, flag string) *ParseError {
	return parseErrf(line, LineTooLong,
		"internal error: too-long input line (line %d); increase %s (currently %d)", line, flag, limit)
}
