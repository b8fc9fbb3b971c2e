//go:build !nobrotli

package compress

import (
	"bytes"

	"github.com/andybalholm/brotli"
)

func init() {
	Default().Register(Brotli, encodeBrotli)
}

// encodeBrotli compresses at the maximum quality level
func encodeBrotli(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := brotli.NewWriterLevel(&buf, brotli.BestCompression)
	if _, err := w.Write(src); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
