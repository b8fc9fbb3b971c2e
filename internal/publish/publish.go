// Package publish drives one publish run: read the artifact and resolve the
// release, then compress and upload every enabled codec independently.
package publish

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/relpub/relpub/internal/artifact"
	"github.com/relpub/relpub/internal/compress"
	bkErrors "github.com/relpub/relpub/internal/errors"
	"github.com/relpub/relpub/internal/release"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

// Releases is the subset of the release client a run needs
type Releases interface {
	Resolve(ctx context.Context, owner, repo, tag string) (*release.Target, error)
	Upload(ctx context.Context, target *release.Target, p *compress.Payload) (*release.Asset, error)
}

// Job describes a single publish run
type Job struct {
	Artifact artifact.Descriptor
	Owner    string
	Repo     string
	Tag      string
	Codecs   []compress.Codec
	DryRun   bool
}

// Result is the outcome of one codec branch
type Result struct {
	Codec  compress.Codec
	Name   string
	Size   int
	Asset  *release.Asset
	Err    error
	DryRun bool
}

func (r Result) OK() bool { return r.Err == nil }

// Report collects every branch outcome of a run
type Report struct {
	Name    string
	Target  *release.Target
	Results []Result
}

// Failed returns the results whose branch did not complete
func (r *Report) Failed() []Result {
	var failed []Result
	for _, res := range r.Results {
		if !res.OK() {
			failed = append(failed, res)
		}
	}
	return failed
}

// Publisher runs publish jobs
type Publisher struct {
	Fs       afero.Fs
	Releases Releases
	Codecs   *compress.Registry
	Logger   *log.Logger
	Out      io.Writer

	mu sync.Mutex
}

// Run publishes job. Failures before the upload phase are returned as
// errors. Upload failures are recorded in the report and never fail the run.
func (p *Publisher) Run(ctx context.Context, job Job) (*Report, error) {
	name := job.Artifact.BaseName()
	p.printf("Preparing artifact %s ...", name)

	codecs := p.registry().Negotiate(job.Codecs)
	if len(codecs) == 0 {
		return nil, bkErrors.NewValidationError(nil,
			"none of the requested codecs are available in this build",
			"Request one of: "+available(p.registry()))
	}

	var (
		data   []byte
		target *release.Target
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		path := filepath.Clean(job.Artifact.Path)
		b, err := afero.ReadFile(p.Fs, path)
		if err != nil {
			return bkErrors.NewValidationError(err, fmt.Sprintf("reading artifact %s", path),
				"Check that --artifact points at the built binary")
		}
		p.logger().Debug("read artifact", "path", path, "size", artifact.FormatBytes(len(b)))
		data = b
		return nil
	})
	g.Go(func() error {
		t, err := p.Releases.Resolve(gctx, job.Owner, job.Repo, job.Tag)
		if err != nil {
			return err
		}
		p.logger().Debug("resolved release", "release", t.String(), "id", t.ReleaseID)
		target = t
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	p.printf("Compressing and uploading ...")

	results := make([]Result, len(codecs))
	var branches errgroup.Group
	for i, c := range codecs {
		branches.Go(func() error {
			results[i] = p.publishCodec(ctx, job, target, c, data)
			return nil
		})
	}
	_ = branches.Wait()

	p.printf("Done.")

	return &Report{Name: name, Target: target, Results: results}, nil
}

func (p *Publisher) publishCodec(ctx context.Context, job Job, target *release.Target, c compress.Codec, data []byte) Result {
	res := Result{Codec: c, Name: job.Artifact.FileName(c.Extension()), DryRun: job.DryRun}

	payload, err := p.registry().Build(job.Artifact, c, data)
	if err != nil {
		res.Err = bkErrors.NewInternalError(err, fmt.Sprintf("compressing %s", res.Name))
		return p.fail(res)
	}
	res.Size = len(payload.Data)
	p.logger().Debug("compressed", "codec", c, "name", payload.Name, "size", artifact.FormatBytes(res.Size))

	if job.DryRun {
		p.logger().Info("dry run, skipping upload", "name", payload.Name, "release", target.String())
		p.printf("Skipped %s (dry run).", c.Code())
		return res
	}

	asset, err := p.Releases.Upload(ctx, target, payload)
	if err != nil {
		res.Err = err
		return p.fail(res)
	}
	res.Asset = asset

	p.logger().Info("uploaded", "name", asset.Name, "url", asset.DownloadURL)
	p.printf("Uploaded %s.", c.Code())
	return res
}

func (p *Publisher) fail(res Result) Result {
	p.logger().Error("upload failed", "name", res.Name, "err", res.Err)
	p.printf("%s has failed to upload.", res.Codec.Code())
	return res
}

func (p *Publisher) printf(format string, args ...interface{}) {
	if p.Out == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.Out, format+"\n", args...)
}

func (p *Publisher) registry() *compress.Registry {
	if p.Codecs == nil {
		return compress.Default()
	}
	return p.Codecs
}

func (p *Publisher) logger() *log.Logger {
	if p.Logger == nil {
		return log.New(io.Discard)
	}
	return p.Logger
}

func available(r *compress.Registry) string {
	names := make([]string, 0, len(compress.All))
	for _, c := range r.Enabled() {
		names = append(names, c.String())
	}
	return strings.Join(names, ", ")
}
