// Package release publishes compressed artifacts as assets of an existing
// GitHub release.
package release

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"
)

// Client talks to the GitHub releases API
type Client struct {
	gh *github.Client
}

// Option configures a Client
type Option func(*options)

type options struct {
	baseURL    string
	uploadURL  string
	userAgent  string
	httpClient *http.Client
}

// WithBaseURL points the client at a GitHub Enterprise REST endpoint such as
// https://ghe.example.com/api/v3
func WithBaseURL(baseURL string) Option {
	return func(o *options) {
		o.baseURL = baseURL
	}
}

// WithUploadURL sets the upload endpoint used for relative upload paths
func WithUploadURL(uploadURL string) Option {
	return func(o *options) {
		o.uploadURL = uploadURL
	}
}

// WithUserAgent sets the User-Agent sent with every request
func WithUserAgent(userAgent string) Option {
	return func(o *options) {
		o.userAgent = userAgent
	}
}

// WithHTTPClient sets the HTTP client the token transport wraps
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// NewClient creates a release client authenticated with token. An empty
// token sends unauthenticated requests.
func NewClient(token string, opts ...Option) (*Client, error) {
	o := options{httpClient: http.DefaultClient}
	for _, opt := range opts {
		opt(&o)
	}

	httpClient := o.httpClient
	if token != "" {
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, o.httpClient)
		httpClient = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
	}

	gh := github.NewClient(httpClient)
	if o.userAgent != "" {
		gh.UserAgent = o.userAgent
	}

	if o.baseURL != "" {
		u, err := endpoint(o.baseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid API URL %q: %w", o.baseURL, err)
		}
		gh.BaseURL = u
	}
	if o.uploadURL != "" {
		u, err := endpoint(o.uploadURL)
		if err != nil {
			return nil, fmt.Errorf("invalid upload URL %q: %w", o.uploadURL, err)
		}
		gh.UploadURL = u
	}

	return &Client{gh: gh}, nil
}

// endpoint parses an absolute URL and gives it the trailing slash go-github
// requires of base URLs
func endpoint(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("URL must be absolute")
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u, nil
}
