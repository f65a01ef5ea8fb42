// Package graph builds the daemonless image dependency graph from a tree of
// Containerfiles and serializes it as JSON.
package graph

// Graph is the document written to dependencies.json.
type Graph struct {
	Description     string                    `json:"description"`
	BaseImages      map[string]*BaseImage     `json:"base_images"`
	Images          map[string]*Image         `json:"images"`
	UpstreamSources map[string]UpstreamSource `json:"upstream_sources"`
}

func newGraph(description string) *Graph {
	return &Graph{
		Description:     description,
		BaseImages:      map[string]*BaseImage{},
		Images:          map[string]*Image{},
		UpstreamSources: map[string]UpstreamSource{},
	}
}

// BaseImage is one of the designated root images other images derive from.
type BaseImage struct {
	Packages []string `json:"packages"`
	Children []string `json:"children"`
	Parent   string   `json:"parent,omitempty"`
}

// Image is a derived (non-base) image.
type Image struct {
	Parent   *string `json:"parent"`
	Category string  `json:"category"`
	Tags     Tags    `json:"tags"`
}

// Tags are the published tags of a derived image.
type Tags struct {
	Latest    Tag `json:"latest"`
	Pkg       Tag `json:"pkg"`
	PkgLatest Tag `json:"pkg-latest"`
}

// TagType discriminates the Tag variants.
type TagType string

const (
	TagPkg    TagType = "pkg"
	TagSource TagType = "source"
)

// Package repository channels.
const (
	ChannelLatest    = "latest"
	ChannelQuarterly = "quarterly"
)

// Tag describes where a tag's payload comes from. Pkg tags carry Repo and
// Package; source tags carry Upstream and optionally WIP.
type Tag struct {
	Type     TagType `json:"type"`
	Repo     string  `json:"repo,omitempty"`
	Package  string  `json:"package,omitempty"`
	Upstream string  `json:"upstream,omitempty"`
	WIP      bool    `json:"wip,omitempty"`
}

// PkgTag builds a tag installed from a FreeBSD package repository channel.
func PkgTag(channel, pkg string) Tag {
	return Tag{Type: TagPkg, Repo: channel, Package: pkg}
}

// SourceTag builds a tag built from an upstream source.
func SourceTag(upstream string, wip bool) Tag {
	return Tag{Type: TagSource, Upstream: upstream, WIP: wip}
}
