package graph

import (
	"encoding/json"

	"github.com/daemonless/depgraph/src/containerfile"
)

// UpstreamMode is the value of the io.daemonless.upstream-mode label.
type UpstreamMode string

const (
	ModeSource        UpstreamMode = "source" // default; records no upstream source
	ModePkg           UpstreamMode = "pkg"    // latest tag follows the package repo
	ModeServarr       UpstreamMode = "servarr"
	ModeSonarr        UpstreamMode = "sonarr"
	ModeGitHub        UpstreamMode = "github"
	ModeGitHubCommits UpstreamMode = "github_commits"
	ModeNPM           UpstreamMode = "npm"
	ModeUbiquiti      UpstreamMode = "ubiquiti"
)

// UbiquitiFirmwareURL is the fixed release feed for ubiquiti images.
const UbiquitiFirmwareURL = "https://fw-update.ubnt.com/api/firmware-latest"

// UpstreamSource is where the release check for an image looks. The set of
// implementations is closed; see NewUpstreamSource.
type UpstreamSource interface {
	Mode() UpstreamMode
	upstreamSource()
}

// Fields backed by a missing label serialize as null.

// ServarrSource follows a Servarr update feed.
type ServarrSource struct {
	URL *string
}

// SonarrSource follows Sonarr's own update feed.
type SonarrSource struct {
	URL *string
}

// GitHubSource follows GitHub releases.
type GitHubSource struct {
	Repo *string
}

// GitHubCommitsSource follows commits on a branch.
type GitHubCommitsSource struct {
	Repo   *string
	Branch *string
}

// NPMSource follows an npm package.
type NPMSource struct {
	Package *string
}

// UbiquitiSource follows the Ubiquiti firmware feed.
type UbiquitiSource struct{}

func (ServarrSource) Mode() UpstreamMode       { return ModeServarr }
func (SonarrSource) Mode() UpstreamMode        { return ModeSonarr }
func (GitHubSource) Mode() UpstreamMode        { return ModeGitHub }
func (GitHubCommitsSource) Mode() UpstreamMode { return ModeGitHubCommits }
func (NPMSource) Mode() UpstreamMode           { return ModeNPM }
func (UbiquitiSource) Mode() UpstreamMode      { return ModeUbiquiti }

func (ServarrSource) upstreamSource()       {}
func (SonarrSource) upstreamSource()        {}
func (GitHubSource) upstreamSource()        {}
func (GitHubCommitsSource) upstreamSource() {}
func (NPMSource) upstreamSource()           {}
func (UbiquitiSource) upstreamSource()      {}

func (s ServarrSource) MarshalJSON() ([]byte, error) {
	return json.Marshal(urlJSON{Type: s.Mode(), URL: s.URL})
}

func (s SonarrSource) MarshalJSON() ([]byte, error) {
	return json.Marshal(urlJSON{Type: s.Mode(), URL: s.URL})
}

func (s GitHubSource) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type UpstreamMode `json:"type"`
		Repo *string      `json:"repo"`
	}{s.Mode(), s.Repo})
}

func (s GitHubCommitsSource) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type   UpstreamMode `json:"type"`
		Repo   *string      `json:"repo"`
		Branch *string      `json:"branch"`
	}{s.Mode(), s.Repo, s.Branch})
}

func (s NPMSource) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    UpstreamMode `json:"type"`
		Package *string      `json:"package"`
	}{s.Mode(), s.Package})
}

func (s UbiquitiSource) MarshalJSON() ([]byte, error) {
	url := UbiquitiFirmwareURL
	return json.Marshal(urlJSON{Type: s.Mode(), URL: &url})
}

type urlJSON struct {
	Type UpstreamMode `json:"type"`
	URL  *string      `json:"url"`
}

// NewUpstreamSource returns the source recorded for mode, reading its fields
// from rec. ok is false for source, pkg and unrecognized modes.
func NewUpstreamSource(mode UpstreamMode, rec *containerfile.Record) (src UpstreamSource, ok bool) {
	switch mode {
	case ModeServarr:
		return ServarrSource{URL: rec.LabelPtr(containerfile.LabelUpstreamURL)}, true
	case ModeSonarr:
		return SonarrSource{URL: rec.LabelPtr(containerfile.LabelUpstreamURL)}, true
	case ModeGitHub:
		return GitHubSource{Repo: rec.LabelPtr(containerfile.LabelUpstreamRepo)}, true
	case ModeGitHubCommits:
		return GitHubCommitsSource{
			Repo:   rec.LabelPtr(containerfile.LabelUpstreamRepo),
			Branch: rec.LabelPtr(containerfile.LabelUpstreamBranch),
		}, true
	case ModeNPM:
		return NPMSource{Package: rec.LabelPtr(containerfile.LabelUpstreamPackage)}, true
	case ModeUbiquiti:
		return UbiquitiSource{}, true
	default:
		return nil, false
	}
}
