//go:build !nolz4

package compress

import (
	"bytes"

	"github.com/pierrec/lz4/v4"
)

func init() {
	Default().Register(LZ4, encodeLZ4)
}

// encodeLZ4 writes the LZ4 frame format so the asset can be unpacked with
// the lz4 command line tool
func encodeLZ4(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	if err := w.Apply(lz4.CompressionLevelOption(lz4.Level9), lz4.ChecksumOption(true)); err != nil {
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
