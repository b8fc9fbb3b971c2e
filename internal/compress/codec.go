// Package compress compresses artifact bytes under a negotiated set of codecs.
package compress

import (
	"fmt"
	"strings"
)

// Codec identifies a compression format. Values are ordered by preference.
type Codec uint8

const (
	Brotli Codec = iota + 1
	Gzip
	Zstd
	LZ4
)

// DefaultCodecs are requested when nothing else is configured
var DefaultCodecs = []Codec{Brotli, Gzip}

// All lists every known codec in preference order
var All = []Codec{Brotli, Gzip, Zstd, LZ4}

type codecInfo struct {
	name        string
	label       string
	extension   string
	contentType string
}

var codecs = map[Codec]codecInfo{
	Brotli: {name: "br", label: "brotli", extension: ".br", contentType: "application/brotli"},
	Gzip:   {name: "gz", label: "gzip", extension: ".gz", contentType: "application/gzip"},
	Zstd:   {name: "zst", label: "zstd", extension: ".zst", contentType: "application/zstd"},
	LZ4:    {name: "lz4", label: "lz4", extension: ".lz4", contentType: "application/x-lz4"},
}

// String returns the short codec name used on the command line ("br", "gz", ...)
func (c Codec) String() string {
	if info, ok := codecs[c]; ok {
		return info.name
	}
	return fmt.Sprintf("unknown(%d)", uint8(c))
}

// Label is the long codec name used in asset labels ("brotli", "gzip", ...)
func (c Codec) Label() string { return codecs[c].label }

// Extension is appended to the artifact name, including the leading dot
func (c Codec) Extension() string { return codecs[c].extension }

// ContentType is sent with the upload
func (c Codec) ContentType() string { return codecs[c].contentType }

// Code is the upper-case short name used in progress messages ("BR", "GZ")
func (c Codec) Code() string { return strings.ToUpper(c.String()) }

// ParseCodec accepts either the short or the long codec name
func ParseCodec(name string) (Codec, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for c, info := range codecs {
		if name == info.name || name == info.label {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown codec %q (want one of br, gz, zst, lz4)", name)
}

// ParseCodecs parses a list of names, accepting comma separated entries
func ParseCodecs(names []string) ([]Codec, error) {
	var out []Codec
	for _, entry := range names {
		for _, name := range strings.Split(entry, ",") {
			if strings.TrimSpace(name) == "" {
				continue
			}
			c, err := ParseCodec(name)
			if err != nil {
				return nil, err
			}
			out = append(out, c)
		}
	}
	return out, nil
}
