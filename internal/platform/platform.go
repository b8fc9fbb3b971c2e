// Package platform derives the platform tag an artifact built on this host
// targets: the operating system name, refined with a libc variant on linux.
package platform

import (
	"bytes"
	"context"
	"runtime"

	"github.com/charmbracelet/log"
)

// Tag is an operating system identifier as reported by runtime.GOOS, with an
// optional libc variant suffix (for example "linux-musl").
type Tag string

func (t Tag) String() string { return string(t) }

const (
	// libcAmbiguousOS is the only OS family whose builds differ by libc
	libcAmbiguousOS = "linux"

	muslMarker = "musl"
	muslSuffix = "-musl"
)

// Detector derives a Tag. GOOS and Runner are injectable so the linux probe
// chain can be exercised on any host.
type Detector struct {
	GOOS   string
	Runner Runner
	Logger *log.Logger
}

// NewDetector returns a Detector for the current host
func NewDetector(logger *log.Logger) *Detector {
	return &Detector{
		GOOS:   runtime.GOOS,
		Runner: ExecRunner{},
		Logger: logger,
	}
}

// Detect returns the platform tag of the current host
func Detect(ctx context.Context) Tag {
	return NewDetector(nil).Detect(ctx)
}

// Detect never fails: any ambiguity falls back to the raw OS name.
//
// On linux, a successful `getconf GNU_LIBC_VERSION` means glibc. Otherwise
// `ldd --version` is inspected for a musl marker: in stdout when it exits 0,
// in stderr when it exits 1 (musl's ldd prints its banner there). If ldd is
// killed by a signal detection is abandoned.
func (d *Detector) Detect(ctx context.Context) Tag {
	osName := Tag(d.GOOS)
	if d.GOOS != libcAmbiguousOS {
		return osName
	}

	runner := d.Runner
	if runner == nil {
		runner = ExecRunner{}
	}

	glibc := runner.Run(ctx, "getconf", "GNU_LIBC_VERSION")
	if glibc.Succeeded() {
		d.debug("getconf reports glibc", "version", string(bytes.TrimSpace(glibc.Stdout)))
		return osName
	}
	d.debug("getconf probe failed, trying ldd", "exit_code", glibc.ExitCode, "err", glibc.Err)

	ldd := runner.Run(ctx, "ldd", "--version")
	if ldd.Signaled {
		d.debug("ldd was terminated by a signal, skipping libc detection")
		return osName
	}

	var output []byte
	switch {
	case ldd.Err != nil:
		d.debug("ldd could not be run", "err", ldd.Err)
		return osName
	case ldd.ExitCode == 0:
		output = ldd.Stdout
	case ldd.ExitCode == 1:
		output = ldd.Stderr
	}

	if bytes.Contains(output, []byte(muslMarker)) {
		d.debug("ldd reports musl")
		return osName + muslSuffix
	}
	return osName
}

func (d *Detector) debug(msg string, keyvals ...interface{}) {
	if d.Logger != nil {
		d.Logger.Debug(msg, keyvals...)
	}
}
