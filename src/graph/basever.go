package graph

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/Masterminds/semver/v3"

	"github.com/daemonless/depgraph/src/config"
)

// resolveBaseVersion picks the version subdirectory holding the nested base
// image's Containerfile. An empty want means no nesting. With
// config.BaseVersionLatest the highest version-named subdirectory wins;
// ok is false when there is none.
func resolveBaseVersion(dir, want string) (sub string, ok bool, err error) {
	if want != config.BaseVersionLatest {
		return want, true, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("listing base versions in %s: %w", dir, err)
	}

	var best *semver.Version
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		v, err := semver.NewVersion(e.Name())
		if err != nil {
			continue // not a release directory
		}
		if best == nil || v.GreaterThan(best) {
			best = v
			sub = e.Name()
		}
	}
	return sub, best != nil, nil
}
