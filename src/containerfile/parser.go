// Package containerfile extracts image metadata from daemonless Containerfiles.
// It is a handful of line-oriented regex lookups, not a full Dockerfile parser.
package containerfile

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// DefaultRegistryPrefix is the registry path a FROM line must reference
// for its image to count as a parent.
const DefaultRegistryPrefix = "ghcr.io/daemonless/"

var (
	// ARG PACKAGES="curl wget"
	packagesArgRe = regexp.MustCompile(`(?m)^ARG PACKAGES="([^"]+)"`)

	// io.daemonless.<key>="<value>", first occurrence anywhere in the file
	labelRes = compileLabelPatterns(Labels)
)

// Record is what one Containerfile declares.
type Record struct {
	Parent      *string // final path segment of the registry FROM, nil if none
	PackagesArg []string
	Labels      map[LabelKey]LabelValue
}

// Label returns the value for key and whether it was declared.
func (r *Record) Label(key LabelKey) (LabelValue, bool) {
	v, ok := r.Labels[key]
	return v, ok
}

// LabelString returns the raw value for key, or def when the label is absent.
func (r *Record) LabelString(key LabelKey, def string) string {
	if v, ok := r.Labels[key]; ok {
		return v.Raw
	}
	return def
}

// LabelPtr returns the raw value for key, or nil when the label is absent.
func (r *Record) LabelPtr(key LabelKey) *string {
	v, ok := r.Labels[key]
	if !ok {
		return nil
	}
	s := v.Raw
	return &s
}

// Parser extracts Records from Containerfile text.
type Parser struct {
	fromRe *regexp.Regexp
}

// NewParser returns a parser that treats FROM lines under registryPrefix as parents.
// An empty prefix selects DefaultRegistryPrefix.
func NewParser(registryPrefix string) *Parser {
	if registryPrefix == "" {
		registryPrefix = DefaultRegistryPrefix
	}
	// FROM <prefix><path>[:tag][@digest]
	return &Parser{
		fromRe: regexp.MustCompile(`(?m)^FROM\s+` + regexp.QuoteMeta(registryPrefix) + `([^:@\s]+)`),
	}
}

// ParseFile reads and parses the Containerfile at path.
func (p *Parser) ParseFile(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return p.Parse(string(data)), nil
}

// Parse extracts the parent, PACKAGES arg and recognized labels from content.
// Duplicate labels are not an error; the first match wins.
func (p *Parser) Parse(content string) *Record {
	rec := &Record{Labels: make(map[LabelKey]LabelValue)}

	if m := p.fromRe.FindStringSubmatch(content); m != nil {
		name := m[1]
		if i := strings.LastIndex(name, "/"); i >= 0 {
			name = name[i+1:]
		}
		if name != "" {
			rec.Parent = &name
		}
	}

	if m := packagesArgRe.FindStringSubmatch(content); m != nil {
		rec.PackagesArg = strings.Split(m[1], " ")
	}

	for _, key := range Labels {
		m := labelRes[key].FindStringSubmatch(content)
		if m == nil {
			continue
		}
		if key == LabelPackages {
			rec.Labels[key] = resolvePackages(m[1], rec.PackagesArg)
			continue
		}
		rec.Labels[key] = LabelValue{Raw: m[1]}
	}

	return rec
}

func compileLabelPatterns(keys []LabelKey) map[LabelKey]*regexp.Regexp {
	out := make(map[LabelKey]*regexp.Regexp, len(keys))
	for _, k := range keys {
		out[k] = regexp.MustCompile(regexp.QuoteMeta(string(k)) + `="([^"]+)"`)
	}
	return out
}
