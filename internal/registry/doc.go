// Package registry resolves package references against the GitHub
// release registry.
//
// A package reference has the form "owner/repo[@version]"; a bare
// "repo[@version]" defaults the owner. The client lists releases and
// tags, Resolve picks a release by version (or the newest), and the
// asset/source-archive helpers select the artifact to download.
package registry
