package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/joho/godotenv"
	bkErrors "github.com/relpub/relpub/internal/errors"
	"github.com/spf13/afero"
)

var tagRefPattern = regexp.MustCompile(`^refs/tags/(.*)$`)

// ParseRepository splits an owner/repo string
func ParseRepository(s string) (owner, repo string, err error) {
	owner, repo, ok := strings.Cut(strings.TrimSpace(s), "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return "", "", fmt.Errorf("%q is not in owner/repo form", s)
	}
	return owner, repo, nil
}

// TagFromRef extracts the tag name from a refs/tags/<tag> ref
func TagFromRef(ref string) (string, error) {
	m := tagRefPattern.FindStringSubmatch(ref)
	if m == nil {
		return "", fmt.Errorf("%q is not a tag ref", ref)
	}
	if m[1] == "" {
		return "", fmt.Errorf("%q has an empty tag name", ref)
	}
	return m[1], nil
}

// loadEnvFile exports the variables of a dotenv file. Variables already in
// the environment keep their value.
func loadEnvFile(fs afero.Fs, path string) error {
	f, err := fs.Open(path)
	if err != nil {
		return bkErrors.NewConfigurationError(err, fmt.Sprintf("opening env file %s", path))
	}
	defer f.Close()

	vars, err := godotenv.Parse(f)
	if err != nil {
		return bkErrors.NewConfigurationError(err, fmt.Sprintf("parsing env file %s", path))
	}

	for k, v := range vars {
		if _, set := os.LookupEnv(k); set {
			continue
		}
		if err := os.Setenv(k, v); err != nil {
			return bkErrors.NewConfigurationError(err, fmt.Sprintf("exporting %s from %s", k, path))
		}
	}
	return nil
}
