//go:build !nogzip

package compress

import (
	"bytes"

	"github.com/klauspost/compress/gzip"
)

func init() {
	Default().Register(Gzip, encodeGzip)
}

func encodeGzip(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := gzip.NewWriterLevel(&buf, gzip.BestCompression)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(src); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
