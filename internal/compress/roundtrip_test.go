package compress

import (
	"bytes"
	"crypto/rand"
	"io"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

func decode(t *testing.T, c Codec, compressed []byte) []byte {
	t.Helper()

	var r io.Reader
	switch c {
	case Brotli:
		r = brotli.NewReader(bytes.NewReader(compressed))
	case Gzip:
		gr, err := gzip.NewReader(bytes.NewReader(compressed))
		if err != nil {
			t.Fatalf("gzip reader: %v", err)
		}
		defer gr.Close()
		r = gr
	case Zstd:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			t.Fatalf("zstd reader: %v", err)
		}
		defer dec.Close()
		out, err := dec.DecodeAll(compressed, nil)
		if err != nil {
			t.Fatalf("zstd decode: %v", err)
		}
		return out
	case LZ4:
		r = lz4.NewReader(bytes.NewReader(compressed))
	default:
		t.Fatalf("no decoder for %s", c)
	}

	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("%s decode: %v", c, err)
	}
	return out
}

func TestRoundTrip(t *testing.T) {
	random := make([]byte, 64*1024)
	if _, err := rand.Read(random); err != nil {
		t.Fatal(err)
	}

	inputs := map[string][]byte{
		"empty":  {},
		"text":   bytes.Repeat([]byte("ELF binary with lots of repetition "), 2000),
		"random": random,
		"single": {0x7f},
	}

	for c := range codecs {
		for name, input := range inputs {
			t.Run(c.String()+"/"+name, func(t *testing.T) {
				compressed, err := Default().Compress(input, c)
				if err != nil {
					t.Fatalf("Compress failed: %v", err)
				}
				if got := decode(t, c, compressed); !bytes.Equal(got, input) {
					t.Errorf("roundtrip mismatch: got %d bytes, want %d", len(got), len(input))
				}
			})
		}
	}
}

func TestCompressShrinksRepetitiveInput(t *testing.T) {
	input := bytes.Repeat([]byte("abcdefgh"), 16*1024)
	for c := range codecs {
		compressed, err := Default().Compress(input, c)
		if err != nil {
			t.Fatalf("%s: %v", c, err)
		}
		if len(compressed) >= len(input)/10 {
			t.Errorf("%s: expected a strong ratio, got %d -> %d", c, len(input), len(compressed))
		}
	}
}
