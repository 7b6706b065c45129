package phonedata

import (
	"bufio"
	"bytes"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// maybeDecompress wraps br in a decompressor when it starts with a gzip or
// zstd magic. Neither magic is valid UTF-8, so a plain database whose version
// tag is text is never mistaken for a compressed one.
// The returned close func releases decoder resources and must always be called.
func maybeDecompress(br *bufio.Reader) (io.Reader, func(), error) {
	head, _ := br.Peek(len(zstdMagic))

	switch {
	case bytes.HasPrefix(head, zstdMagic):
		dec, err := zstd.NewReader(br, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, func() {}, err
		}
		return bufio.NewReaderSize(dec, readBufferSize), dec.Close, nil

	case bytes.HasPrefix(head, gzipMagic):
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, func() {}, err
		}
		return bufio.NewReaderSize(zr, readBufferSize), func() { zr.Close() }, nil
	}

	return br, func() {}, nil
}
