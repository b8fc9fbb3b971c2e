//go:build !nozstd

package compress

import "github.com/klauspost/compress/zstd"

// zstd.Encoder is safe for concurrent EncodeAll calls
var zstdEncoder *zstd.Encoder

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		panic("compress: zstd encoder initialization failed: " + err.Error())
	}
	Default().Register(Zstd, encodeZstd)
}

func encodeZstd(src []byte) ([]byte, error) {
	return zstdEncoder.EncodeAll(src, make([]byte, 0, len(src)/2)), nil
}
