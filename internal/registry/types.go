package registry

import "fmt"

// Release is one release of a repository as reported by the registry.
type Release struct {
	TagName     string  `json:"tag_name"`
	Name        string  `json:"name"`
	PublishedAt string  `json:"published_at"`
	Assets      []Asset `json:"assets"`
	ZipballURL  string  `json:"zipball_url"`
	TarballURL  string  `json:"tarball_url"`
}

// Asset is a downloadable artifact attached to a release.
type Asset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
	Size               int64  `json:"size"`
}

// Tag is a repository tag.
type Tag struct {
	Name string `json:"name"`
}

func (t Tag) String() string {
	return t.Name
}

func (a Asset) String() string {
	return fmt.Sprintf("- %s (%.1f KB)\n  URL: %s",
		a.Name, float64(a.Size)/1024.0, a.BrowserDownloadURL)
}

func (r Release) String() string {
	name := r.Name
	if name == "" {
		name = "Unnamed release"
	}
	date := r.PublishedAt
	if date == "" {
		date = "Unknown date"
	}
	return fmt.Sprintf("%s - %s (published: %s)\n  Assets: %d",
		r.TagName, name, date, len(r.Assets))
}
