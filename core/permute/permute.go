// core/permute/permute.go
package permute

import (
	"bytes"
	"fmt"
	"io"

	"fastashuffle-core/fasta"
)

// Engine is the three-call shuffle protocol: Init establishes
// per-sequence state, Next draws one permutation preserving all k-let
// counts (successive draws need not be distinct), Release frees the
// state so Init may run again for the next sequence.
type Engine interface {
	Init(seq []byte, k int) error
	Next() ([]byte, error)
	Release()
}

// Mode selects the output policy for one record.
type Mode struct {
	fixed bool
	n     int
}

// FixedCount emits exactly n permutations per record, duplicates
// allowed. Meant for inspecting the permutation distribution, not for
// production shuffling.
func FixedCount(n int) Mode { return Mode{fixed: true, n: n} }

// RetryUntilDistinct emits exactly one permutation per record,
// redrawing up to maxRetries times for one that differs from the
// source. Exhaustion degrades to a warning plus the last draw.
func RetryUntilDistinct(maxRetries int) Mode { return Mode{n: maxRetries} }

// Orchestrator drives an Engine over one record at a time. Warnings
// receives the retry-exhaustion warning line; nil suppresses it.
type Orchestrator struct {
	Engine   Engine
	Warnings io.Writer
}

// Process shuffles one record and hands each output record to emit, in
// order. The engine session is torn down on every exit path, so no
// state leaks into the next record. Emit and engine errors abort the
// record and propagate.
func (o *Orchestrator) Process(rec fasta.Record, k int, mode Mode, emit func(fasta.Record) error) error {
	if err := o.Engine.Init(rec.Seq, k); err != nil {
		return fmt.Errorf("%s: %w", rec.ID, err)
	}
	defer o.Engine.Release()

	if mode.fixed {
		return o.fixedCount(rec, mode.n, emit)
	}
	return o.retryDistinct(rec, mode.n, emit)
}

func (o *Orchestrator) fixedCount(rec fasta.Record, n int, emit func(fasta.Record) error) error {
	for i := 1; i <= n; i++ {
		t, err := o.Engine.Next()
		if err != nil {
			return fmt.Errorf("%s: %w", rec.ID, err)
		}
		out := fasta.Record{ID: fmt.Sprintf("%s-perm%d", rec.ID, i), Seq: t}
		if err := emit(out); err != nil {
			return err
		}
	}
	return nil
}

func (o *Orchestrator) retryDistinct(rec fasta.Record, maxRetries int, emit func(fasta.Record) error) error {
	var last []byte
	for i := 0; i < maxRetries; i++ {
		t, err := o.Engine.Next()
		if err != nil {
			return fmt.Errorf("%s: %w", rec.ID, err)
		}
		if !bytes.Equal(t, rec.Seq) {
			return emit(fasta.Record{ID: rec.ID, Seq: t})
		}
		last = t
	}
	if o.Warnings != nil {
		fmt.Fprintf(o.Warnings,
			"WARNING: failed to find new shuffle for sequence %q (%s) after %d retries\n",
			rec.Seq, rec.ID, maxRetries)
	}
	return emit(fasta.Record{ID: rec.ID, Seq: last})
}
