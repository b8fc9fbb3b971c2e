// Package artifact names the published copies of a built binary.
package artifact

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// Request identifies the artifact to publish and how to decorate its name
type Request struct {
	Path   string
	Prefix string
	Suffix string
}

// Name builds the canonical base name of an artifact. It performs no
// validation: empty prefix or suffix contribute nothing.
func Name(prefix, platform, arch, abi, suffix string) string {
	return prefix + platform + "-" + arch + "-" + abi + suffix
}

// Descriptor binds a Request to the target it was built for
type Descriptor struct {
	Request
	Platform string
	Arch     string
	ABI      string
}

// BaseName is the artifact name without a codec extension
func (d Descriptor) BaseName() string {
	return Name(d.Prefix, d.Platform, d.Arch, d.ABI, d.Suffix)
}

// FileName appends a codec extension such as ".br" to the base name
func (d Descriptor) FileName(ext string) string {
	return d.BaseName() + ext
}

// Label is the human readable asset label shown on the release page
func (d Descriptor) Label(codec string) string {
	return fmt.Sprintf("Binary artifact: %s (%s, %s, %s, %s).", d.Path, d.Platform, d.Arch, d.ABI, codec)
}

// FormatBytes formats a byte count for log output (e.g. "1.2 MiB")
func FormatBytes(n int) string {
	return humanize.IBytes(uint64(n))
}
