package testutil

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// UploadedAsset records one upload received by a GitHubServer
type UploadedAsset struct {
	Name        string
	Label       string
	ContentType string
	Data        []byte
}

// GitHubServer fakes the two release endpoints a publish run calls. Each
// entry of Releases maps owner/repo@tag to a release ID.
type GitHubServer struct {
	Releases map[string]int64
	// FailUploads makes uploads of these asset names return the given status
	FailUploads map[string]int

	srv      *httptest.Server
	mu       sync.Mutex
	uploaded []UploadedAsset
}

// NewGitHubServer starts a fake GitHub API, closed when the test ends
func NewGitHubServer(t *testing.T) *GitHubServer {
	t.Helper()

	gh := &GitHubServer{Releases: map[string]int64{}, FailUploads: map[string]int{}}
	gh.srv = httptest.NewServer(http.HandlerFunc(gh.serve))
	t.Cleanup(gh.srv.Close)
	return gh
}

// URL is the base URL of the fake API
func (gh *GitHubServer) URL() string {
	return gh.srv.URL
}

// Uploaded returns every asset accepted so far
func (gh *GitHubServer) Uploaded() []UploadedAsset {
	gh.mu.Lock()
	defer gh.mu.Unlock()
	return append([]UploadedAsset(nil), gh.uploaded...)
}

func (gh *GitHubServer) serve(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")

	switch {
	// repos/{owner}/{repo}/releases/tags/{tag}
	case r.Method == http.MethodGet && len(parts) == 6 && parts[0] == "repos" && parts[3] == "releases" && parts[4] == "tags":
		gh.serveRelease(w, parts[1], parts[2], parts[5])
	// uploads/repos/{owner}/{repo}/releases/{id}/assets
	case r.Method == http.MethodPost && len(parts) == 7 && parts[0] == "uploads" && parts[6] == "assets":
		gh.serveUpload(w, r)
	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Not Found"})
	}
}

func (gh *GitHubServer) serveRelease(w http.ResponseWriter, owner, repo, tag string) {
	gh.mu.Lock()
	id, ok := gh.Releases[fmt.Sprintf("%s/%s@%s", owner, repo, tag)]
	gh.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Not Found"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"id":         id,
		"tag_name":   tag,
		"upload_url": fmt.Sprintf("%s/uploads/repos/%s/%s/releases/%d/assets{?name,label}", gh.srv.URL, owner, repo, id),
	})
}

func (gh *GitHubServer) serveUpload(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		return
	}
	name := r.URL.Query().Get("name")

	gh.mu.Lock()
	defer gh.mu.Unlock()

	if status, ok := gh.FailUploads[name]; ok {
		writeJSON(w, status, map[string]string{"message": http.StatusText(status)})
		return
	}

	gh.uploaded = append(gh.uploaded, UploadedAsset{
		Name:        name,
		Label:       r.URL.Query().Get("label"),
		ContentType: r.Header.Get("Content-Type"),
		Data:        data,
	})
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"id":                   len(gh.uploaded),
		"name":                 name,
		"size":                 len(data),
		"browser_download_url": "https://github.example/download/" + name,
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
