package validation

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	bkErrors "github.com/relpub/relpub/internal/errors"
	"github.com/spf13/afero"
)

// ValidateArtifact checks that path names a regular file before any network
// call is made
func ValidateArtifact(fs afero.Fs, path string) error {
	path = filepath.Clean(path)

	fi, err := fs.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return bkErrors.NewValidationError(err, fmt.Sprintf("artifact %s does not exist", path),
			"Build the binary before publishing it, or fix the --artifact path")
	}
	if err != nil {
		return bkErrors.NewValidationError(err, fmt.Sprintf("checking artifact %s", path))
	}

	if !fi.Mode().IsRegular() {
		mode := "directory"
		if !fi.IsDir() {
			mode = fi.Mode().String()
		}
		return bkErrors.NewValidationError(nil, fmt.Sprintf("artifact %s is not a regular file, was: %s", path, mode))
	}

	return nil
}
