// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"

	"fastashuffle/internal/version"
)

// Options holds all CLI flags.
type Options struct {
	// Input
	Input     string
	MaxIDLen  int
	MaxSeqLen int

	// Shuffling
	LetSize      int
	Seed         uint64
	Permutations int
	MaxRetries   int

	// Output
	PrintOriginal bool

	Version bool
}

// NewFlagSet returns a configured FlagSet with custom usage/help.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: shuffles nucleotide sequences while preserving the k-let counts.

Version: %s

Reads a single-line FASTA stream and writes, for each record, one or
more random permutations with the same k-let (k-mer) frequency
distribution as the input sequence.

Nucleotide sequences in the input must be in a single line.
This is a valid input file:
  >dummy1
  AGTAGTAGTAGTAGTAGTAGTAGTAGTAGTAGAGTG
  >dummy2
  CTGAGAGTCACACATGATTTTACAACAACCATGAAG

This is not a valid input file (re-format multi-line FASTA first):
  >dummy1
  AGTAGTAGTAGTAGTAGTAGTAG
  TAGTAGAGTG

Usage of %s:
`, name, version.Version, name)
		fs.PrintDefaults()
	}
	return fs
}

// ParseArgs registers and parses all flags, returns an Options struct.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool

	fs.StringVar(&opt.Input, "input", "-", "input FASTA file ('-' = stdin, .gz transparent) [-]")
	fs.StringVar(&opt.Input, "i", "-", "input FASTA file (shorthand) [-]")
	fs.IntVar(&opt.MaxIDLen, "max-id-length", 32678, "reject identifier lines at or beyond this length [32678]")
	fs.IntVar(&opt.MaxSeqLen, "max-seq-length", 1000000, "reject sequence lines at or beyond this length [1000000]")

	fs.IntVar(&opt.LetSize, "let-size", 2, "k-let size to preserve [2]")
	fs.IntVar(&opt.LetSize, "k", 2, "k-let size (shorthand) [2]")
	fs.Uint64Var(&opt.Seed, "seed", 0, "random seed (0 = wall-clock seconds) [0]")
	fs.Uint64Var(&opt.Seed, "s", 0, "random seed (shorthand) [0]")
	fs.IntVar(&opt.Permutations, "permutations", 1, "print N permutations per record; N>1 skips the distinctness check, use for debugging [1]")
	fs.IntVar(&opt.Permutations, "n", 1, "permutations per record (shorthand) [1]")
	fs.IntVar(&opt.MaxRetries, "max-retries", 10, "retries to find a shuffle differing from the input before warning and emitting it anyway [10]")
	fs.IntVar(&opt.MaxRetries, "r", 10, "max retries (shorthand) [10]")

	fs.BoolVar(&opt.PrintOriginal, "print-original", false, "also print the original record with an -unshuffled suffix [false]")
	fs.BoolVar(&opt.PrintOriginal, "o", false, "print original (shorthand) [false]")

	fs.BoolVar(&opt.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&opt.Version, "v", false, "print version and exit (shorthand) [false]")
	fs.BoolVar(&help, "h", false, "show this help message (shorthand) [false]")

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}
	if help {
		fs.Usage()
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}

	// Validation
	if opt.LetSize < 1 {
		return opt, fmt.Errorf("invalid --let-size (%d): must be a number larger than zero", opt.LetSize)
	}
	if opt.Permutations < 1 {
		return opt, fmt.Errorf("invalid --permutations (%d): must be a number larger than zero", opt.Permutations)
	}
	if opt.MaxRetries < 1 {
		return opt, fmt.Errorf("invalid --max-retries (%d): must be a number larger than zero", opt.MaxRetries)
	}
	if opt.MaxIDLen < 4 {
		return opt, fmt.Errorf("invalid --max-id-length (%d): too small to hold any identifier", opt.MaxIDLen)
	}
	if opt.MaxSeqLen < 4 {
		return opt, fmt.Errorf("invalid --max-seq-length (%d): too small to hold any sequence", opt.MaxSeqLen)
	}
	if opt.Input == "" {
		return opt, errors.New("--input must not be empty")
	}
	if fs.NArg() > 0 {
		return opt, fmt.Errorf("unexpected argument %q (input is read from stdin or --input)", fs.Arg(0))
	}
	return opt, nil
}
