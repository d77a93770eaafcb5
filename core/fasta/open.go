// core/fasta/open.go
package fasta

import (
	"bufio"
	"compress/gzip"
	"io"
	"os"
)

// multiReadCloser closes every wrapped closer when Close is called.
type multiReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *multiReadCloser) Close() error {
	var err error
	for _, c := range m.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// Open returns a reader for path, with "-" meaning stdin. Gzip input
// is detected by its magic number (1F 8B) and decompressed
// transparently, for files and stdin alike.
func Open(path string) (io.ReadCloser, error) {
	if path == "-" {
		return sniff(io.NopCloser(os.Stdin))
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return sniff(fh)
}

func sniff(rc io.ReadCloser) (io.ReadCloser, error) {
	br := bufio.NewReader(rc)
	magic, _ := br.Peek(2)
	if len(magic) == 2 && magic[0] == 0x1f && magic[1] == 0x8b {
		gr, err := gzip.NewReader(br)
		if err != nil {
			_ = rc.Close()
			return nil, err
		}
		return &multiReadCloser{Reader: gr, closers: []io.Closer{gr, rc}}, nil
	}
	return &multiReadCloser{Reader: br, closers: []io.Closer{rc}}, nil
}
