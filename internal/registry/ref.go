package registry

import (
	"regexp"
	"runtime"
	"strings"
)

// DefaultOwner is assumed when a package reference names no owner.
const DefaultOwner = "github"

var refPattern = regexp.MustCompile(`^([^/@]+)/([^@]+)(?:@(.+))?$`)

// Ref is a parsed package reference.
type Ref struct {
	Owner   string
	Repo    string
	Version string
}

// ParseRef parses a package reference of the form "owner/repo[@version]".
// A bare "repo[@version]" falls back to DefaultOwner.
func ParseRef(s string) Ref {
	if m := refPattern.FindStringSubmatch(s); m != nil {
		return Ref{Owner: m[1], Repo: m[2], Version: m[3]}
	}

	name, version, _ := strings.Cut(s, "@")
	return Ref{Owner: DefaultOwner, Repo: name, Version: version}
}

func (r Ref) String() string {
	s := r.Owner + "/" + r.Repo
	if r.Version != "" {
		s += "@" + r.Version
	}
	return s
}

var filenameSanitizer = strings.NewReplacer(
	"@", "-",
	"/", "-",
	":", "-",
	"*", "-",
	"?", "-",
	`"`, "-",
	"<", "-",
	">", "-",
	"|", "-",
)

// SanitizeFilename replaces characters that are unsafe in file names.
func SanitizeFilename(name string) string {
	return filenameSanitizer.Replace(name)
}

// SourceArchive returns the source archive URL of a release and the local
// filename to store it under: the zipball on Windows, the tarball
// elsewhere.
func SourceArchive(rel *Release, ref Ref) (url, filename string) {
	url = rel.TarballURL
	ext := "tar.gz"
	if runtime.GOOS == "windows" {
		url = rel.ZipballURL
		ext = "zip"
	}
	return url, SanitizeFilename(ref.String()) + "-source." + ext
}
