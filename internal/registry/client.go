package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/EdwardJoke/egit/internal/httpc"
)

// Common errors.
var (
	ErrNoReleases      = errors.New("registry: no releases found")
	ErrNoAssets        = errors.New("registry: release has no assets")
	ErrVersionNotFound = errors.New("registry: version not found")
)

// DefaultBaseURL is the public GitHub API endpoint.
const DefaultBaseURL = "https://api.github.com"

// Options configures the registry client.
type Options struct {
	// BaseURL is the registry API endpoint.
	// Default: DefaultBaseURL
	BaseURL string

	// Token is an optional bearer token for authenticated requests.
	Token string
}

// Client talks to the hosted release registry.
type Client struct {
	http    *httpc.Client
	baseURL string
	token   string
}

// NewClient creates a registry client on top of the given HTTP client.
func NewClient(httpClient *httpc.Client, opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	return &Client{
		http:    httpClient,
		baseURL: opts.BaseURL,
		token:   opts.Token,
	}
}

// ListReleases fetches all releases of a repository, newest first.
func (c *Client) ListReleases(ctx context.Context, owner, repo string) ([]Release, error) {
	var releases []Release
	url := fmt.Sprintf("%s/repos/%s/%s/releases", c.baseURL, owner, repo)
	if err := c.getJSON(ctx, url, &releases); err != nil {
		return nil, fmt.Errorf("list releases: %w", err)
	}
	return releases, nil
}

// ListTags fetches all tags of a repository.
func (c *Client) ListTags(ctx context.Context, owner, repo string) ([]Tag, error) {
	var tags []Tag
	url := fmt.Sprintf("%s/repos/%s/%s/tags", c.baseURL, owner, repo)
	if err := c.getJSON(ctx, url, &tags); err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return tags, nil
}

// getJSON performs an authenticated GET against the registry API and
// decodes the JSON response into v.
func (c *Client) getJSON(ctx context.Context, url string, v any) error {
	headers := []httpc.Header{{Key: "Accept", Value: "application/vnd.github+json"}}
	if c.token != "" {
		headers = append(headers, httpc.Header{Key: "Authorization", Value: "Bearer " + c.token})
	}

	body, err := c.http.Get(ctx, url, headers...)
	if err != nil {
		return err
	}
	defer body.Close()

	if err := json.NewDecoder(body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Resolve picks the release matching version. An empty version or
// "latest" selects the first (newest) release; anything else must match
// a tag name exactly.
func Resolve(releases []Release, version string) (*Release, error) {
	if len(releases) == 0 {
		return nil, ErrNoReleases
	}
	if version == "" || version == "latest" {
		return &releases[0], nil
	}
	for i := range releases {
		if releases[i].TagName == version {
			return &releases[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrVersionNotFound, version)
}

// FirstAsset returns the first asset of a release, the artifact the
// download command selects by default.
func FirstAsset(rel *Release) (*Asset, error) {
	if len(rel.Assets) == 0 {
		return nil, ErrNoAssets
	}
	return &rel.Assets[0], nil
}
