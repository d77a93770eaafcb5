// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"time"

	"fastashuffle-core/fasta"
	"fastashuffle-core/permute"
	"fastashuffle-core/shuffle"
	"fastashuffle/internal/cli"
	"fastashuffle/internal/output"
	"fastashuffle/internal/version"
)

// Exit codes: 0 clean end of input (or downstream pipe closed), 1
// fatal parse or internal-limit error, 2 usage error, 3 write error,
// 130 interrupted.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := cli.NewFlagSet("fastashuffle")
	fs.SetOutput(io.Discard)

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(outw)
			fs.Usage()
			if e := outw.Flush(); output.IsBrokenPipe(e) {
				return 0
			} else if e != nil {
				_, _ = fmt.Fprintln(stderr, e)
				return 3
			}
			return 0
		}
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}

	if opts.Version {
		_, _ = fmt.Fprintf(outw, "fastashuffle version %s\n", version.Version)
		if e := outw.Flush(); output.IsBrokenPipe(e) {
			return 0
		} else if e != nil {
			_, _ = fmt.Fprintln(stderr, e)
			return 3
		}
		return 0
	}

	// Seeded once for the whole run; an explicit --seed makes the
	// output reproducible.
	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().Unix())
	}
	rng := rand.New(rand.NewSource(int64(seed)))

	in, err := fasta.Open(opts.Input)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}
	defer func() { _ = in.Close() }()

	reader := fasta.NewReader(in, fasta.Limits{
		MaxIDLen:  opts.MaxIDLen,
		MaxSeqLen: opts.MaxSeqLen,
	})
	orch := &permute.Orchestrator{Engine: shuffle.New(rng), Warnings: stderr}

	mode := permute.RetryUntilDistinct(opts.MaxRetries)
	if opts.Permutations > 1 {
		mode = permute.FixedCount(opts.Permutations)
	}

	emit := func(rec fasta.Record) error { return output.WriteRecord(outw, rec) }

	for {
		select {
		case <-parent.Done():
			return 130
		default:
		}

		rec, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 1
		}

		if opts.PrintOriginal {
			orig := fasta.Record{ID: rec.ID + "-unshuffled", Seq: rec.Seq}
			if werr := emit(orig); werr != nil {
				return writeFail(stderr, werr)
			}
		}
		if perr := orch.Process(rec, opts.LetSize, mode, emit); perr != nil {
			return writeFail(stderr, perr)
		}
	}

	if e := outw.Flush(); output.IsBrokenPipe(e) {
		return 0
	} else if e != nil {
		_, _ = fmt.Fprintln(stderr, e)
		return 3
	}
	return 0
}

func writeFail(stderr io.Writer, err error) int {
	if output.IsBrokenPipe(err) {
		return 0
	}
	_, _ = fmt.Fprintln(stderr, err)
	return 3
}

// Run is RunContext with a background context.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
