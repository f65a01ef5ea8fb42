package graph

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"

	"github.com/daemonless/depgraph/src/config"
	"github.com/daemonless/depgraph/src/containerfile"
)

// defaultCategory is used when an image has no category label.
const defaultCategory = "Uncategorized"

// Stats summarizes one Build.
type Stats struct {
	Scanned int      // directories whose Containerfile was parsed
	Skipped []string // directories without a Containerfile, or untracked
}

// builder holds the state of a single pass. Nothing outlives Build.
type builder struct {
	cfg    config.GraphConfig
	parser *containerfile.Parser
	log    *zap.Logger

	graph    *Graph
	children map[string][]string // parent name → directories that derive from it
	stats    *Stats
}

// Build scans the immediate subdirectories of cfg.Root and assembles the graph.
// A directory without a Containerfile is skipped; any read failure aborts the
// whole run.
func Build(ctx context.Context, cfg config.GraphConfig, log *zap.Logger) (*Graph, *Stats, error) {
	if log == nil {
		log = zap.NewNop()
	}
	b := &builder{
		cfg:      cfg,
		parser:   containerfile.NewParser(cfg.RegistryPrefix),
		log:      log,
		graph:    newGraph(cfg.Description),
		children: make(map[string][]string),
		stats:    &Stats{},
	}

	entries, err := os.ReadDir(cfg.Root)
	if err != nil {
		return nil, nil, fmt.Errorf("reading root %s: %w", cfg.Root, err)
	}

	var tracked map[string]bool
	if cfg.TrackedOnly {
		tracked, err = TrackedDirs(cfg.Root)
		if err != nil {
			return nil, nil, err
		}
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		name := entry.Name()
		if cfg.IsReserved(name) {
			continue
		}
		isDir, err := b.isDir(entry)
		if err != nil {
			return nil, nil, err
		}
		if !isDir {
			continue
		}
		if tracked != nil && !tracked[name] {
			b.skip(name, "not tracked at HEAD")
			continue
		}

		path, ok, err := b.locate(name)
		if err != nil {
			return nil, nil, err
		}
		if !ok {
			b.skip(name, "no Containerfile")
			continue
		}

		rec, err := b.parser.ParseFile(path)
		if err != nil {
			return nil, nil, err
		}
		b.stats.Scanned++
		b.log.Debug("parsed containerfile", zap.String("image", name), zap.String("path", path))

		b.add(name, rec)
	}

	b.fillChildren()
	return b.graph, b.stats, nil
}

// isDir follows symlinks so a linked image directory is still scanned.
func (b *builder) isDir(entry fs.DirEntry) (bool, error) {
	if entry.Type()&fs.ModeSymlink == 0 {
		return entry.IsDir(), nil
	}
	fi, err := os.Stat(filepath.Join(b.cfg.Root, entry.Name()))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil // dangling link
		}
		return false, fmt.Errorf("stat %s: %w", entry.Name(), err)
	}
	return fi.IsDir(), nil
}

// locate returns the Containerfile path for an image directory. The nested
// base image keeps its Containerfile under a version subdirectory.
func (b *builder) locate(name string) (string, bool, error) {
	dir := filepath.Join(b.cfg.Root, name)
	if name == b.cfg.NestedBase {
		sub, ok, err := resolveBaseVersion(dir, b.cfg.BaseVersion)
		if err != nil || !ok {
			return "", false, err
		}
		dir = filepath.Join(dir, sub)
	}

	path := filepath.Join(dir, b.cfg.Containerfile)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("stat %s: %w", path, err)
	}
	return path, true, nil
}

func (b *builder) skip(name, reason string) {
	b.stats.Skipped = append(b.stats.Skipped, name)
	b.log.Debug("skipping directory", zap.String("dir", name), zap.String("reason", reason))
}

// add classifies rec as a base image or a derived image and records its
// parent edge. Base images and derived images share the children table.
func (b *builder) add(name string, rec *containerfile.Record) {
	if b.cfg.IsBaseImage(name) {
		b.graph.BaseImages[name] = newBaseImage(name, rec)
	} else {
		img, mode := newImage(name, rec)
		b.graph.Images[name] = img
		if src, ok := NewUpstreamSource(mode, rec); ok {
			b.graph.UpstreamSources[name] = src
		}
	}

	if rec.Parent != nil {
		b.children[*rec.Parent] = append(b.children[*rec.Parent], name)
	}
}

func (b *builder) fillChildren() {
	for name, base := range b.graph.BaseImages {
		kids := append([]string{}, b.children[name]...)
		sort.Strings(kids)
		base.Children = kids
	}
}

func newBaseImage(name string, rec *containerfile.Record) *BaseImage {
	base := &BaseImage{
		Packages: []string{},
		Children: []string{},
	}
	if v, ok := rec.Label(containerfile.LabelPackages); ok {
		base.Packages = v.Values()
	}
	// a base image may name itself in FROM; that is not a parent
	if rec.Parent != nil && *rec.Parent != name {
		base.Parent = *rec.Parent
	}
	return base
}

func newImage(name string, rec *containerfile.Record) (*Image, UpstreamMode) {
	mode := UpstreamMode(rec.LabelString(containerfile.LabelUpstreamMode, string(ModeSource)))

	var latest Tag
	if mode == ModePkg {
		latest = PkgTag(ChannelLatest, rec.LabelString(containerfile.LabelUpstreamPackage, name))
	} else {
		latest = SourceTag(name, rec.LabelString(containerfile.LabelWIP, "") == "true")
	}

	return &Image{
		Parent:   rec.Parent,
		Category: rec.LabelString(containerfile.LabelCategory, defaultCategory),
		Tags: Tags{
			Latest:    latest,
			Pkg:       PkgTag(ChannelQuarterly, name),
			PkgLatest: PkgTag(ChannelLatest, name),
		},
	}, mode
}
