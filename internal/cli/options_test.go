// internal/cli/options_test.go
package cli

import (
	"errors"
	"flag"
	"testing"
)

func newFS() *flag.FlagSet { return flag.NewFlagSet("test", flag.ContinueOnError) }

func mustParse(t *testing.T, args ...string) Options {
	t.Helper()
	opts, err := ParseArgs(newFS(), args)
	if err != nil {
		t.Fatalf("parse err: %v", err)
	}
	return opts
}

func TestDefaults(t *testing.T) {
	o := mustParse(t)
	if o.Input != "-" || o.LetSize != 2 || o.Seed != 0 || o.Permutations != 1 || o.MaxRetries != 10 {
		t.Errorf("bad defaults %+v", o)
	}
	if o.PrintOriginal {
		t.Errorf("print-original should default to false")
	}
	if o.MaxIDLen != 32678 || o.MaxSeqLen != 1000000 {
		t.Errorf("bad default limits %+v", o)
	}
}

func TestShorthandFlags(t *testing.T) {
	o := mustParse(t, "-k", "3", "-n", "5", "-r", "20", "-s", "1234", "-o")
	if o.LetSize != 3 || o.Permutations != 5 || o.MaxRetries != 20 || o.Seed != 1234 || !o.PrintOriginal {
		t.Errorf("bad shorthand parse %+v", o)
	}
}

func TestLongFlags(t *testing.T) {
	o := mustParse(t,
		"--let-size", "4",
		"--permutations", "2",
		"--max-retries", "7",
		"--seed", "42",
		"--print-original",
		"--input", "reads.fa.gz",
		"--max-seq-length", "2000000",
	)
	if o.LetSize != 4 || o.Permutations != 2 || o.MaxRetries != 7 || o.Seed != 42 {
		t.Errorf("bad long-flag parse %+v", o)
	}
	if o.Input != "reads.fa.gz" || o.MaxSeqLen != 2000000 {
		t.Errorf("bad input/limit parse %+v", o)
	}
}

func TestErrorNonPositiveNumbers(t *testing.T) {
	for _, args := range [][]string{
		{"-k", "0"},
		{"-k", "-1"},
		{"-n", "0"},
		{"-r", "0"},
		{"-r", "-3"},
	} {
		if _, err := ParseArgs(newFS(), args); err == nil {
			t.Errorf("expected error for %v", args)
		}
	}
}

func TestErrorTinyLimits(t *testing.T) {
	if _, err := ParseArgs(newFS(), []string{"--max-id-length", "2"}); err == nil {
		t.Error("expected error for tiny id limit")
	}
	if _, err := ParseArgs(newFS(), []string{"--max-seq-length", "0"}); err == nil {
		t.Error("expected error for zero seq limit")
	}
}

func TestErrorPositionalArgument(t *testing.T) {
	if _, err := ParseArgs(newFS(), []string{"input.fa"}); err == nil {
		t.Error("expected error for stray positional argument")
	}
}

func TestHelpReturnsErrHelp(t *testing.T) {
	if _, err := ParseArgs(newFS(), []string{"-h"}); !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("expected flag.ErrHelp, got %v", err)
	}
}

func TestVersionSkipsValidation(t *testing.T) {
	o, err := ParseArgs(newFS(), []string{"--version", "-k", "0"})
	if err != nil {
		t.Fatalf("version parse: %v", err)
	}
	if !o.Version {
		t.Fatal("version flag lost")
	}
}
