package containerfile

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const radarrContainerfile = `ARG BASE_VERSION=15
FROM ghcr.io/daemonless/arr-base:${BASE_VERSION}

ARG PACKAGES="radarr mediainfo"

LABEL org.opencontainers.image.title="Radarr" \
      io.daemonless.category="Media" \
      io.daemonless.packages="${PACKAGES}" \
      io.daemonless.upstream-mode="servarr" \
      io.daemonless.upstream-url="https://radarr.servarr.com/v1/update/master/changes"

RUN pkg install -y ${PACKAGES}
`

func TestParseFullContainerfile(t *testing.T) {
	rec := NewParser("").Parse(radarrContainerfile)

	require.NotNil(t, rec.Parent)
	assert.Equal(t, "arr-base", *rec.Parent)
	assert.Equal(t, []string{"radarr", "mediainfo"}, rec.PackagesArg)

	pkgs, ok := rec.Label(LabelPackages)
	require.True(t, ok)
	assert.True(t, pkgs.IsList())
	assert.Equal(t, []string{"radarr", "mediainfo"}, pkgs.Values())

	assert.Equal(t, "Media", rec.LabelString(LabelCategory, ""))
	assert.Equal(t, "servarr", rec.LabelString(LabelUpstreamMode, ""))
	assert.Equal(t, "https://radarr.servarr.com/v1/update/master/changes", rec.LabelString(LabelUpstreamURL, ""))
	assert.Nil(t, rec.LabelPtr(LabelUpstreamRepo))
}

func TestParseParent(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    *string
	}{
		{name: "no from", content: "LABEL a=b\n", want: nil},
		{name: "foreign registry", content: "FROM docker.io/library/alpine:3.20\n", want: nil},
		{name: "untagged", content: "FROM ghcr.io/daemonless/base\nRUN true\n", want: strPtr("base")},
		{name: "digest", content: "FROM ghcr.io/daemonless/nginx-base@sha256:abcd\n", want: strPtr("nginx-base")},
		{name: "nested path", content: "FROM ghcr.io/daemonless/extra/arr-base:15\n", want: strPtr("arr-base")},
		{name: "indented is ignored", content: "  FROM ghcr.io/daemonless/base:15\n", want: nil},
		{
			name:    "first from wins",
			content: "FROM ghcr.io/daemonless/base:15 AS build\nFROM ghcr.io/daemonless/nginx-base:15\n",
			want:    strPtr("base"),
		},
	}

	p := NewParser(DefaultRegistryPrefix)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := p.Parse(tt.content)
			assert.Equal(t, tt.want, rec.Parent)
		})
	}
}

func TestParseCustomRegistryPrefix(t *testing.T) {
	rec := NewParser("registry.example.test/images/").Parse("FROM registry.example.test/images/base:1\n")
	require.NotNil(t, rec.Parent)
	assert.Equal(t, "base", *rec.Parent)

	rec = NewParser("registry.example.test/images/").Parse("FROM ghcr.io/daemonless/base:15\n")
	assert.Nil(t, rec.Parent)
}

func TestParsePackagesLabel(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantList bool
		want     []string
		wantRaw  string
	}{
		{
			name:     "placeholder resolves to arg",
			content:  "ARG PACKAGES=\"curl wget\"\nLABEL io.daemonless.packages=\"${PACKAGES}\"\n",
			wantList: true,
			want:     []string{"curl", "wget"},
			wantRaw:  "${PACKAGES}",
		},
		{
			name:    "placeholder without arg stays literal",
			content: "LABEL io.daemonless.packages=\"${PACKAGES}\"\n",
			want:    []string{"${PACKAGES}"},
			wantRaw: "${PACKAGES}",
		},
		{
			name:     "comma list is split",
			content:  "LABEL io.daemonless.packages=\"nginx,openssl,ca_root_nss\"\n",
			wantList: true,
			want:     []string{"nginx", "openssl", "ca_root_nss"},
			wantRaw:  "nginx,openssl,ca_root_nss",
		},
		{
			name:     "comma list keeps spaces and empty items",
			content:  "LABEL io.daemonless.packages=\"nginx, openssl,,x\"\n",
			wantList: true,
			want:     []string{"nginx", " openssl", "", "x"},
			wantRaw:  "nginx, openssl,,x",
		},
		{
			name:     "arg split on single spaces",
			content:  "ARG PACKAGES=\"curl  wget\"\nLABEL io.daemonless.packages=\"${PACKAGES}\"\n",
			wantList: true,
			want:     []string{"curl", "", "wget"},
			wantRaw:  "${PACKAGES}",
		},
		{
			name:    "single value stays raw",
			content: "LABEL io.daemonless.packages=\"python311\"\n",
			want:    []string{"python311"},
			wantRaw: "python311",
		},
	}

	p := NewParser("")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := p.Parse(tt.content)
			v, ok := rec.Label(LabelPackages)
			require.True(t, ok)
			assert.Equal(t, tt.wantList, v.IsList())
			assert.Equal(t, tt.want, v.Values())
			assert.Equal(t, tt.wantRaw, v.Raw)
		})
	}
}

func TestParseCommaOnlySplitsPackages(t *testing.T) {
	rec := NewParser("").Parse(`LABEL io.daemonless.category="Media, Tools"`)
	v, ok := rec.Label(LabelCategory)
	require.True(t, ok)
	assert.False(t, v.IsList())
	assert.Equal(t, "Media, Tools", v.String())
}

func TestParseFirstLabelWins(t *testing.T) {
	content := `LABEL io.daemonless.category="Network"
LABEL io.daemonless.category="Media"
`
	rec := NewParser("").Parse(content)
	assert.Equal(t, "Network", rec.LabelString(LabelCategory, ""))
}

func TestParseEmptyLabelIsAbsent(t *testing.T) {
	rec := NewParser("").Parse(`LABEL io.daemonless.wip=""`)
	_, ok := rec.Label(LabelWIP)
	assert.False(t, ok)
	assert.Equal(t, "fallback", rec.LabelString(LabelWIP, "fallback"))
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Containerfile")
	require.NoError(t, os.WriteFile(path, []byte(radarrContainerfile), 0o644))

	rec, err := NewParser("").ParseFile(path)
	require.NoError(t, err)
	require.NotNil(t, rec.Parent)
	assert.Equal(t, "arr-base", *rec.Parent)

	_, err = NewParser("").ParseFile(filepath.Join(dir, "missing"))
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func strPtr(s string) *string { return &s }
