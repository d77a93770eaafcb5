package permute

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"fastashuffle-core/fasta"
)

// fakeEngine replays a scripted list of permutations and records its
// lifecycle calls.
type fakeEngine struct {
	script   [][]byte
	nextErr  error
	initErr  error
	inits    int
	nexts    int
	releases int
}

func (f *fakeEngine) Init(seq []byte, k int) error {
	f.inits++
	return f.initErr
}

func (f *fakeEngine) Next() ([]byte, error) {
	if f.nextErr != nil {
		return nil, f.nextErr
	}
	i := f.nexts
	f.nexts++
	if i >= len(f.script) {
		i = len(f.script) - 1
	}
	return append([]byte(nil), f.script[i]...), nil
}

func (f *fakeEngine) Release() { f.releases++ }

func collect(t *testing.T, o *Orchestrator, rec fasta.Record, k int, mode Mode) []fasta.Record {
	t.Helper()
	var out []fasta.Record
	err := o.Process(rec, k, mode, func(r fasta.Record) error {
		out = append(out, r)
		return nil
	})
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	return out
}

var testRec = fasta.Record{ID: ">seq1", Seq: []byte("AAAACCCGGT")}

func TestFixedCountEmitsExactlyN(t *testing.T) {
	eng := &fakeEngine{script: [][]byte{
		[]byte("AAAACCCGGT"), // identical draw still emitted
		[]byte("ACCCGGTAAA"),
		[]byte("CGGTAAAACC"),
	}}
	o := &Orchestrator{Engine: eng}

	out := collect(t, o, testRec, 2, FixedCount(3))
	if len(out) != 3 {
		t.Fatalf("emitted %d records, want 3", len(out))
	}
	for i, r := range out {
		want := fmt.Sprintf(">seq1-perm%d", i+1)
		if r.ID != want {
			t.Errorf("record %d id = %q, want %q", i, r.ID, want)
		}
	}
	if eng.nexts != 3 {
		t.Errorf("engine drawn %d times, want 3 (one per output)", eng.nexts)
	}
	if eng.inits != 1 || eng.releases != 1 {
		t.Errorf("lifecycle inits=%d releases=%d, want 1/1", eng.inits, eng.releases)
	}
}

func TestRetryEmitsFirstDistinct(t *testing.T) {
	eng := &fakeEngine{script: [][]byte{
		[]byte("AAAACCCGGT"),
		[]byte("AAAACCCGGT"),
		[]byte("CGGTAAAACC"),
		[]byte("ACCCGGTAAA"),
	}}
	var warn bytes.Buffer
	o := &Orchestrator{Engine: eng, Warnings: &warn}

	out := collect(t, o, testRec, 2, RetryUntilDistinct(10))
	if len(out) != 1 {
		t.Fatalf("emitted %d records, want 1", len(out))
	}
	if out[0].ID != ">seq1" {
		t.Errorf("id = %q, want unchanged >seq1", out[0].ID)
	}
	if string(out[0].Seq) != "CGGTAAAACC" {
		t.Errorf("seq = %q, want first differing draw", out[0].Seq)
	}
	if eng.nexts != 3 {
		t.Errorf("engine drawn %d times, want 3 (stop at first distinct)", eng.nexts)
	}
	if warn.Len() != 0 {
		t.Errorf("unexpected warning: %q", warn.String())
	}
	if eng.releases != 1 {
		t.Errorf("releases = %d, want 1", eng.releases)
	}
}

func TestRetryExhaustionWarnsAndEmitsLast(t *testing.T) {
	eng := &fakeEngine{script: [][]byte{[]byte("AAAACCCGGT")}}
	var warn bytes.Buffer
	o := &Orchestrator{Engine: eng, Warnings: &warn}

	out := collect(t, o, testRec, 2, RetryUntilDistinct(4))
	if len(out) != 1 {
		t.Fatalf("emitted %d records, want 1", len(out))
	}
	if string(out[0].Seq) != "AAAACCCGGT" {
		t.Errorf("seq = %q, want the last (identical) draw", out[0].Seq)
	}
	if eng.nexts != 4 {
		t.Errorf("engine drawn %d times, want 4", eng.nexts)
	}
	want := "WARNING: failed to find new shuffle for sequence \"AAAACCCGGT\" (>seq1) after 4 retries\n"
	if warn.String() != want {
		t.Errorf("warning = %q, want %q", warn.String(), want)
	}
}

func TestReleaseOnEngineError(t *testing.T) {
	boom := errors.New("boom")
	eng := &fakeEngine{nextErr: boom}
	o := &Orchestrator{Engine: eng}

	err := o.Process(testRec, 2, RetryUntilDistinct(3), func(fasta.Record) error { return nil })
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped boom", err)
	}
	if !strings.Contains(err.Error(), ">seq1") {
		t.Errorf("error should name the record: %v", err)
	}
	if eng.releases != 1 {
		t.Fatalf("engine not released after Next error (releases=%d)", eng.releases)
	}
}

func TestReleaseOnEmitError(t *testing.T) {
	eng := &fakeEngine{script: [][]byte{[]byte("CGGTAAAACC")}}
	o := &Orchestrator{Engine: eng}
	sink := errors.New("sink closed")

	err := o.Process(testRec, 2, FixedCount(2), func(fasta.Record) error { return sink })
	if !errors.Is(err, sink) {
		t.Fatalf("err = %v, want sink error", err)
	}
	if eng.releases != 1 {
		t.Fatalf("engine not released after emit error (releases=%d)", eng.releases)
	}
}

func TestNoReleaseWithoutInit(t *testing.T) {
	eng := &fakeEngine{initErr: errors.New("bad k")}
	o := &Orchestrator{Engine: eng}

	if err := o.Process(testRec, 0, FixedCount(1), func(fasta.Record) error { return nil }); err == nil {
		t.Fatal("expected init error")
	}
	if eng.releases != 0 {
		t.Fatalf("released a session that never opened (releases=%d)", eng.releases)
	}
}
