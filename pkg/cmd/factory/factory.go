package factory

import (
	"fmt"
	"net/http"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/relpub/relpub/internal/compress"
	"github.com/relpub/relpub/internal/config"
	"github.com/relpub/relpub/internal/logging"
	"github.com/relpub/relpub/internal/platform"
	"github.com/relpub/relpub/internal/publish"
	"github.com/relpub/relpub/internal/release"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// Factory carries the dependencies shared by every command
type Factory struct {
	Fs       afero.Fs
	Viper    *viper.Viper
	Logger   *log.Logger
	Detector *platform.Detector
	Codecs   *compress.Registry
	Version  string

	// Releases builds the release client for a resolved configuration
	Releases func(conf *config.Config) (publish.Releases, error)
}

func New(version string) *Factory {
	logger := logging.New(os.Stderr, false)

	f := &Factory{
		Fs:       afero.NewOsFs(),
		Viper:    viper.New(),
		Logger:   logger,
		Detector: platform.NewDetector(logger),
		Codecs:   compress.Default(),
		Version:  version,
	}
	f.Releases = f.releaseClient
	return f
}

// UserAgent identifies the CLI to the GitHub API
func (f *Factory) UserAgent() string {
	return fmt.Sprintf("relpub/%s (%s/%s)", f.Version, runtime.GOOS, runtime.GOARCH)
}

func (f *Factory) releaseClient(conf *config.Config) (publish.Releases, error) {
	opts := []release.Option{
		release.WithHTTPClient(f.httpClient(conf.Debug)),
		release.WithUserAgent(f.UserAgent()),
	}
	if conf.APIURL != "" && conf.APIURL != config.DefaultAPIURL {
		opts = append(opts, release.WithBaseURL(conf.APIURL))
	}

	return release.NewClient(conf.Token, opts...)
}

func (f *Factory) httpClient(debug bool) *http.Client {
	transport := http.DefaultTransport
	if debug {
		transport = &debugTransport{next: transport, logger: f.Logger}
	}
	return &http.Client{Transport: transport}
}

// debugTransport logs every request and response with credentials redacted
type debugTransport struct {
	next   http.RoundTripper
	logger *log.Logger
}

func (t *debugTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	headers := req.Header.Clone()
	redactHeaders(headers)
	t.logger.Debug("http request", "method", req.Method, "url", req.URL.String(), "headers", headers)

	start := time.Now()
	resp, err := t.next.RoundTrip(req)
	if err != nil {
		t.logger.Debug("http error", "url", req.URL.String(), "err", err, "duration", time.Since(start))
		return nil, err
	}

	t.logger.Debug("http response", "status", resp.StatusCode, "url", req.URL.String(), "duration", time.Since(start))
	return resp, nil
}

var sensitiveHeaders = []string{"Authorization", "Proxy-Authorization"}

// redactHeaders replaces credentials in place, keeping the auth scheme
func redactHeaders(h http.Header) {
	for _, name := range sensitiveHeaders {
		values := h.Values(name)
		if len(values) == 0 {
			continue
		}

		redacted := make([]string, len(values))
		for i, v := range values {
			if scheme, _, ok := strings.Cut(v, " "); ok {
				redacted[i] = scheme + " [REDACTED]"
			} else {
				redacted[i] = "[REDACTED]"
			}
		}
		h[http.CanonicalHeaderKey(name)] = redacted
	}
}
