// internal/output/output.go
package output

import (
	"fmt"
	"io"

	"fastashuffle-core/fasta"
)

// WriteRecord writes one two-line FASTA record: the identifier line
// (marker included) followed by the sequence line.
func WriteRecord(w io.Writer, rec fasta.Record) error {
	_, err := fmt.Fprintf(w, "%s\n%s\n", rec.ID, rec.Seq)
	return err
}
