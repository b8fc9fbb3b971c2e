// Package testutil provides reusable test helpers for the CLI
package testutil

import (
	"testing"

	"github.com/relpub/relpub/internal/compress"
	"github.com/relpub/relpub/internal/config"
	"github.com/relpub/relpub/internal/logging"
	"github.com/relpub/relpub/internal/platform"
	"github.com/relpub/relpub/internal/publish"
	"github.com/relpub/relpub/internal/release"
	"github.com/relpub/relpub/pkg/cmd/factory"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// CreateFactory creates a Factory backed by an in-memory filesystem whose
// release client talks to gh. The detector reports "darwin" so no probe runs.
func CreateFactory(t *testing.T, gh *GitHubServer) *factory.Factory {
	t.Helper()

	f := &factory.Factory{
		Fs:       afero.NewMemMapFs(),
		Viper:    viper.New(),
		Logger:   logging.Discard(),
		Detector: &platform.Detector{GOOS: "darwin"},
		Codecs:   compress.Default(),
		Version:  "test",
	}
	f.Releases = func(conf *config.Config) (publish.Releases, error) {
		if gh == nil {
			t.Fatal("no GitHub server configured for this factory")
		}
		return release.NewClient(conf.Token, release.WithBaseURL(gh.URL()), release.WithUploadURL(gh.URL()))
	}
	return f
}

// WriteArtifact places a fake binary in the factory's filesystem
func WriteArtifact(t *testing.T, f *factory.Factory, path string, data []byte) {
	t.Helper()

	if err := afero.WriteFile(f.Fs, path, data, 0o755); err != nil {
		t.Fatalf("writing artifact %s: %s", path, err)
	}
}

// SetActionsEnv sets the environment a tag-triggered GitHub Actions step sees
func SetActionsEnv(t *testing.T, repository, tag, token string) {
	t.Helper()

	for _, k := range []string{"RELPUB_TOKEN", "RELPUB_ABI", "RELPUB_PREFIX", "RELPUB_SUFFIX", "RELPUB_CODECS", "GITHUB_API_URL", "GITHUB_ACTIONS"} {
		t.Setenv(k, "")
	}
	t.Setenv("GITHUB_REPOSITORY", repository)
	t.Setenv("GITHUB_REF", "refs/tags/"+tag)
	t.Setenv("GITHUB_TOKEN", token)
}
