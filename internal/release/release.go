package release

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v62/github"
	"github.com/relpub/relpub/internal/compress"
	bkErrors "github.com/relpub/relpub/internal/errors"
)

var (
	// ErrReleaseNotFound is returned when no release exists for the tag
	ErrReleaseNotFound = errors.New("release not found")

	// ErrAssetExists is returned when the release already has an asset with
	// the payload's name. Existing assets are never replaced.
	ErrAssetExists = errors.New("asset already exists")
)

// Target is a resolved release that assets can be uploaded to
type Target struct {
	Owner     string
	Repo      string
	Tag       string
	ReleaseID int64
	UploadURL string
}

func (t *Target) String() string {
	return fmt.Sprintf("%s/%s@%s", t.Owner, t.Repo, t.Tag)
}

// Asset is an uploaded release asset
type Asset struct {
	ID          int64
	Name        string
	Size        int
	DownloadURL string
}

// Resolve looks up the release for tag
func (c *Client) Resolve(ctx context.Context, owner, repo, tag string) (*Target, error) {
	rel, _, err := c.gh.Repositories.GetReleaseByTag(ctx, owner, repo, tag)
	if err != nil {
		var respErr *github.ErrorResponse
		if errors.As(err, &respErr) && respErr.Response != nil && respErr.Response.StatusCode == http.StatusNotFound {
			return nil, bkErrors.NewResourceNotFoundError(ErrReleaseNotFound,
				fmt.Sprintf("no release tagged %q in %s/%s", tag, owner, repo),
				"Create the release before publishing artifacts to it",
				"Check that GITHUB_TOKEN can read the repository")
		}
		return nil, bkErrors.WrapGitHubError(err, fmt.Sprintf("resolving release %s", tag))
	}

	if rel.GetUploadURL() == "" {
		return nil, bkErrors.NewAPIError(nil, fmt.Sprintf("release %s has no upload URL", tag))
	}

	return &Target{
		Owner:     owner,
		Repo:      repo,
		Tag:       tag,
		ReleaseID: rel.GetID(),
		UploadURL: rel.GetUploadURL(),
	}, nil
}

// Upload attaches p to the release as a new asset
func (c *Client) Upload(ctx context.Context, target *Target, p *compress.Payload) (*Asset, error) {
	u, err := expandUploadURL(target.UploadURL, p.Name, p.Label)
	if err != nil {
		return nil, bkErrors.NewInternalError(err, "building upload URL")
	}

	req, err := c.gh.NewUploadRequest(u, bytes.NewReader(p.Data), int64(len(p.Data)), p.ContentType)
	if err != nil {
		return nil, bkErrors.NewInternalError(err, "building upload request")
	}

	created := new(github.ReleaseAsset)
	if _, err := c.gh.Do(ctx, req, created); err != nil {
		if bkErrors.HasErrorCode(err, "already_exists") {
			return nil, bkErrors.NewValidationError(ErrAssetExists,
				fmt.Sprintf("release %s already has an asset named %s", target.Tag, p.Name),
				"Delete the existing asset or publish with a different --prefix or --suffix")
		}
		return nil, bkErrors.WrapGitHubError(err, fmt.Sprintf("uploading %s", p.Name))
	}

	return &Asset{
		ID:          created.GetID(),
		Name:        created.GetName(),
		Size:        created.GetSize(),
		DownloadURL: created.GetBrowserDownloadURL(),
	}, nil
}

// expandUploadURL fills the {?name,label} template GitHub returns as a
// release's upload_url
func expandUploadURL(template, name, label string) (string, error) {
	if i := strings.IndexByte(template, '{'); i >= 0 {
		template = template[:i]
	}

	u, err := url.Parse(template)
	if err != nil {
		return "", err
	}

	q := u.Query()
	q.Set("name", name)
	if label != "" {
		q.Set("label", label)
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}
